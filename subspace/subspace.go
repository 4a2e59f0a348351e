// Package subspace partitions FeatureRecords by a composite key derived
// from the policy's configured subspace field lists.
package subspace

import (
	"sort"
	"strconv"
	"strings"

	"github.com/bloomgroup/engine/normalize"
)

// Subspace is a maximal set of record indices sharing one composite key.
type Subspace struct {
	Key     string
	Indices []int
}

// globalKey is the composite key used when no subspace_keys are configured.
const globalKey = "global"

// Partition buckets records by composite key, returning subspaces sorted by
// key so that run traversal order is deterministic. keys is the policy's
// subspace_keys: a list of field-name lists; each sub-list contributes
// one "|"-joined segment, and segments join with "||".
func Partition(records []normalize.FeatureRecord, keys [][]string) []Subspace {
	buckets := make(map[string][]int)
	var order []string

	for i, rec := range records {
		key := compositeKey(rec, keys)
		if _, seen := buckets[key]; !seen {
			order = append(order, key)
		}
		buckets[key] = append(buckets[key], i)
	}

	sort.Strings(order)
	out := make([]Subspace, 0, len(order))
	for _, key := range order {
		out = append(out, Subspace{Key: key, Indices: buckets[key]})
	}
	return out
}

// compositeKey builds one record's subspace key: for each sub-list, join
// "field=value" segments with "|" (multi-valued fields serialized as
// sorted comma-joined values), then join sub-lists with "||".
func compositeKey(rec normalize.FeatureRecord, keys [][]string) string {
	if len(keys) == 0 {
		return globalKey
	}

	segments := make([]string, 0, len(keys))
	for _, fields := range keys {
		parts := make([]string, 0, len(fields))
		for _, f := range fields {
			parts = append(parts, f+"="+fieldValue(rec, f))
		}
		segments = append(segments, strings.Join(parts, "|"))
	}
	return strings.Join(segments, "||")
}

// fieldValue renders one field's value for key construction: a numeric
// value, a sorted comma-joined categorical/multi set, or the empty string
// if the field isn't present on this record in any known shape.
func fieldValue(rec normalize.FeatureRecord, f string) string {
	if set, ok := rec.Categorical[f]; ok {
		return strings.Join(set.Sorted(), ",")
	}
	if set, ok := rec.Multi[f]; ok {
		return strings.Join(set.Sorted(), ",")
	}
	if v, ok := rec.Numeric[f]; ok {
		return formatNumeric(v)
	}
	if v, ok := rec.Text[f]; ok {
		return v
	}
	return ""
}

func formatNumeric(v float64) string {
	// Trim a trailing ".0" for whole numbers so keys stay readable and
	// stable regardless of float formatting quirks.
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
