package compat

import "github.com/bloomgroup/engine/policy"

// ageCompatible implements age-band invariant:
//
//   - An age-band match means the two ages share at least one band AND
//     |a-b| <= min(max_spread) across shared bands.
//   - If no shared band, compatibility requires allow_cross_band AND
//     |a-b| <= max(max_spread across both ages' bands).
//   - Records with missing age are incompatible on age (callers only invoke
//     this when both ages are present; see applyAgeRules).
func ageCompatible(rules *policy.AgeRules, ageA, ageB float64) bool {
	bandsA := bandsFor(rules, ageA)
	bandsB := bandsFor(rules, ageB)

	diff := ageA - ageB
	if diff < 0 {
		diff = -diff
	}

	shared := intersectBandIndices(bandsA, bandsB)
	if len(shared) > 0 {
		minSpread, has := minSpreadOf(rules, shared)
		if !has {
			return true // no band in the shared set constrains spread
		}
		return diff <= minSpread
	}

	if !rules.AllowCrossBand {
		return false
	}
	maxSpread, has := maxSpreadOf(rules, append(bandsA, bandsB...))
	if !has {
		return diff <= rules.BoundarySlackYears
	}
	return diff <= maxSpread
}

// bandsFor returns the indices of every band containing age (an age can sit
// in more than one band if bands overlap).
func bandsFor(rules *policy.AgeRules, age float64) []int {
	var idx []int
	for i, b := range rules.Bands {
		if age >= b.Min && age <= b.Max {
			idx = append(idx, i)
		}
	}
	return idx
}

func intersectBandIndices(a, b []int) []int {
	set := make(map[int]struct{}, len(a))
	for _, i := range a {
		set[i] = struct{}{}
	}
	var out []int
	for _, i := range b {
		if _, ok := set[i]; ok {
			out = append(out, i)
		}
	}
	return out
}

// minSpreadOf returns the smallest max_spread among the given band indices;
// has is false if none of those bands declare a max_spread (meaning no
// spread constraint applies — any same-band pair is compatible).
func minSpreadOf(rules *policy.AgeRules, bandIdx []int) (float64, bool) {
	min := 0.0
	has := false
	for _, i := range bandIdx {
		spread := rules.Bands[i].MaxSpread
		if spread == nil {
			continue
		}
		if !has || *spread < min {
			min = *spread
			has = true
		}
	}
	return min, has
}

// maxSpreadOf returns the largest max_spread among the given band indices.
func maxSpreadOf(rules *policy.AgeRules, bandIdx []int) (float64, bool) {
	max := 0.0
	has := false
	for _, i := range bandIdx {
		spread := rules.Bands[i].MaxSpread
		if spread == nil {
			continue
		}
		if !has || *spread > max {
			max = *spread
			has = true
		}
	}
	return max, has
}
