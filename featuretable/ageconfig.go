package featuretable

import (
	"github.com/bloomgroup/engine/normalize"
	"github.com/bloomgroup/engine/policy"
)

// AgeConfigFromPolicy converts a bound policy.AgeRules into the
// normalize.AgeConfig its Normalizer needs. This conversion lives here
// rather than in normalize or policy themselves, so that neither of those
// two packages imports the other: the glue sits one layer up, in the
// package that already wires a Normalizer against a bound Policy.
func AgeConfigFromPolicy(age *policy.AgeRules) *normalize.AgeConfig {
	if age == nil {
		return nil
	}
	bands := make([]normalize.AgeBandSpec, len(age.Bands))
	for i, b := range age.Bands {
		bands[i] = normalize.AgeBandSpec{Name: b.Name, Min: b.Min, Max: b.Max, MaxSpread: b.MaxSpread}
	}
	return &normalize.AgeConfig{Field: age.Field, Bands: bands}
}
