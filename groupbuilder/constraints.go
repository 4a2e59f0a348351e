package groupbuilder

import (
	"math"

	"github.com/bloomgroup/engine/normalize"
	"github.com/bloomgroup/engine/policy"
)

// wholeGroupOK reports whether candidate can join group without violating
// any configured whole-group constraint (max_age_difference,
// max_age_std). Records missing the age field are ignored by the
// constraint check itself — age presence/absence is already enforced
// pairwise by compat.Build's age_rules layer.
func wholeGroupOK(records []normalize.FeatureRecord, age *policy.AgeRules, group []int, candidate int) bool {
	if age == nil {
		return true
	}
	if age.GroupConstraints.MaxAgeDifference == nil && age.GroupConstraints.MaxAgeStd == nil {
		return true
	}

	ages := make([]float64, 0, len(group)+1)
	for _, idx := range group {
		if v, ok := records[idx].NumericValue(age.Field); ok {
			ages = append(ages, v)
		}
	}
	if v, ok := records[candidate].NumericValue(age.Field); ok {
		ages = append(ages, v)
	}
	if len(ages) < 2 {
		return true
	}

	if max := age.GroupConstraints.MaxAgeDifference; max != nil {
		lo, hi := ages[0], ages[0]
		for _, a := range ages {
			if a < lo {
				lo = a
			}
			if a > hi {
				hi = a
			}
		}
		if hi-lo > *max {
			return false
		}
	}

	if maxStd := age.GroupConstraints.MaxAgeStd; maxStd != nil {
		mean := 0.0
		for _, a := range ages {
			mean += a
		}
		mean /= float64(len(ages))
		acc := 0.0
		for _, a := range ages {
			d := a - mean
			acc += d * d
		}
		std := math.Sqrt(acc / float64(len(ages)))
		if std > *maxStd {
			return false
		}
	}

	return true
}
