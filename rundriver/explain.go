package rundriver

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bloomgroup/engine/normalize"
	"github.com/bloomgroup/engine/policy"
	"github.com/bloomgroup/engine/score"
)

// parseSubspaceKey inverts subspace.Partition's composite key back into a
// field=value map for Explanation.Subspace.
func parseSubspaceKey(key string) map[string]string {
	out := map[string]string{}
	if key == "global" {
		return out
	}
	for _, segment := range strings.Split(key, "||") {
		for _, pair := range strings.Split(segment, "|") {
			field, value, ok := strings.Cut(pair, "=")
			if ok {
				out[field] = value
			}
		}
	}
	return out
}

// ageBandLabel renders the group's observed age range as "min-max years",
// or "" if the policy has no age rules or no member has the age field
// present.
func ageBandLabel(records []normalize.FeatureRecord, group []int, age *policy.AgeRules) string {
	if age == nil {
		return ""
	}
	lo, hi := 0.0, 0.0
	seen := false
	for _, idx := range group {
		v, ok := records[idx].NumericValue(age.Field)
		if !ok {
			continue
		}
		if !seen {
			lo, hi = v, v
			seen = true
			continue
		}
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if !seen {
		return ""
	}
	return fmt.Sprintf("%.0f-%.0f years", lo, hi)
}

// boundBy lists the constraints that bound one participant, in the order
// categorical_equal, multi_overlap, numeric_tol, age_band.
func boundBy(rec normalize.FeatureRecord, hard policy.Hard, ageBand string) []string {
	var out []string
	for _, f := range hard.CategoricalEqual {
		set := rec.CategoricalSet(f)
		if len(set) == 0 {
			continue
		}
		out = append(out, fmt.Sprintf("%s=%s", f, strings.Join(set.Sorted(), ",")))
	}
	for _, f := range hard.MultiOverlap {
		if len(rec.MultiSet(f)) == 0 {
			continue
		}
		out = append(out, f+"_overlap")
	}
	tolFields := make([]string, 0, len(hard.NumericTol))
	for f := range hard.NumericTol {
		tolFields = append(tolFields, f)
	}
	sort.Strings(tolFields)
	for _, f := range tolFields {
		if _, ok := rec.NumericValue(f); !ok {
			continue
		}
		out = append(out, fmt.Sprintf("%s±%g", f, hard.NumericTol[f]))
	}
	if ageBand != "" {
		out = append(out, "age_band:"+ageBand)
	}
	return out
}

// buildExplanation assembles one group's audit record.
func buildExplanation(records []normalize.FeatureRecord, group []int, subspaceKey string, pol *policy.Policy, result score.Result) Explanation {
	ageBand := ageBandLabel(records, group, pol.AgeRules)

	members := make([]Member, len(group))
	for i, idx := range group {
		members[i] = Member{
			ParticipantID: records[idx].ParticipantID,
			BoundBy:       boundBy(records[idx], pol.Hard, ageBand),
		}
	}

	return Explanation{
		PolicyHash: pol.PolicyHash,
		Subspace:   parseSubspaceKey(subspaceKey),
		AgeBand:    ageBand,
		HardConstraints: HardConstraintSummary{
			CategoricalEqual: pol.Hard.CategoricalEqual,
			MultiOverlap:     pol.Hard.MultiOverlap,
			NumericTol:       pol.Hard.NumericTol,
		},
		SoftScores: SoftScoreBreakdown{
			Diversity:   result.Diversity,
			Similarity:  result.Similarity,
			Categorical: result.Categorical,
			Multi:       result.Multi,
		},
		Members:    members,
		GroupScore: result.Score,
		Degraded:   result.Degraded,
	}
}
