package compat

import (
	"math"

	"github.com/bloomgroup/engine/normalize"
	"github.com/bloomgroup/engine/policy"
)

// Build constructs the compatibility matrix for one subspace's records,
// applying one rule layer at a time: categorical_equal, multi_overlap,
// numeric_tol, then age_rules, with the diagonal forced true at the end.
//
// Each layer precomputes whatever it can per-record before the O(n^2) pair
// scan (expanded sets, numeric columns) so the pair loop itself is pure
// comparison over precomputed Go slices, scanned in a single pass per
// rule.
func Build(records []normalize.FeatureRecord, hard policy.Hard, age *policy.AgeRules) (*Matrix, error) {
	n := len(records)
	m, err := NewMatrix(n)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return m, nil
	}

	for _, f := range hard.CategoricalEqual {
		applyCategoricalEqual(m, records, f)
	}
	for _, f := range hard.MultiOverlap {
		applyMultiOverlap(m, records, f)
	}
	for f, tol := range hard.NumericTol {
		applyNumericTol(m, records, f, tol)
	}
	if age != nil {
		applyAgeRules(m, records, age)
	}

	m.ForceDiagonal()
	return m, nil
}

func applyCategoricalEqual(m *Matrix, records []normalize.FeatureRecord, f string) {
	sets := make([]normalize.Set, len(records))
	for i, r := range records {
		sets[i] = r.CategoricalSet(f)
	}
	forEachPair(m, func(i, j int) bool {
		return sets[i].Intersects(sets[j])
	})
}

func applyMultiOverlap(m *Matrix, records []normalize.FeatureRecord, f string) {
	sets := make([]normalize.Set, len(records))
	for i, r := range records {
		sets[i] = r.MultiSet(f)
	}
	forEachPair(m, func(i, j int) bool {
		return sets[i].Intersects(sets[j])
	})
}

func applyNumericTol(m *Matrix, records []normalize.FeatureRecord, f string, tol float64) {
	values := make([]float64, len(records))
	present := make([]bool, len(records))
	for i, r := range records {
		v, ok := r.NumericValue(f)
		values[i] = v
		present[i] = ok
	}
	forEachPair(m, func(i, j int) bool {
		if !present[i] || !present[j] {
			return false
		}
		return math.Abs(values[i]-values[j]) <= tol
	})
}

func applyAgeRules(m *Matrix, records []normalize.FeatureRecord, age *policy.AgeRules) {
	values := make([]float64, len(records))
	present := make([]bool, len(records))
	for i, r := range records {
		v, ok := r.NumericValue(age.Field)
		values[i] = v
		present[i] = ok
	}
	forEachPair(m, func(i, j int) bool {
		if !present[i] || !present[j] {
			return false
		}
		return ageCompatible(age, values[i], values[j])
	})
}

// forEachPair scans the upper triangle once and ANDs in pred(i,j), keeping
// the matrix symmetric. Already-false pairs are skipped: once a pair fails
// one hard rule, no later rule can make it compatible again.
func forEachPair(m *Matrix, pred func(i, j int) bool) {
	n := m.Size()
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if !m.At(i, j) {
				continue
			}
			m.andPair(i, j, pred(i, j))
		}
	}
}
