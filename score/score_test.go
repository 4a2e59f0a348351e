package score_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bloomgroup/engine/normalize"
	"github.com/bloomgroup/engine/policy"
	"github.com/bloomgroup/engine/score"
)

func rec(numeric map[string]float64, categorical map[string]normalize.Set) normalize.FeatureRecord {
	return normalize.FeatureRecord{Numeric: numeric, Categorical: categorical, Multi: map[string]normalize.Set{}}
}

func defaultSoft() policy.Soft {
	return policy.Soft{
		NumericFeatures: []string{"age"},
		Categorical:     map[string]policy.CategoricalMode{"area": policy.ModeDiversity},
		Weights: policy.Weights{
			DiversityNumeric:     policy.DefaultDiversityNumeric,
			SimilarityBonus:      policy.DefaultSimilarityBonus,
			CategoricalDiversity: policy.DefaultCategoricalDiversity,
			MultiOverlapBonus:    policy.DefaultMultiOverlapBonus,
		},
	}
}

func TestScore_Deterministic(t *testing.T) {
	records := []normalize.FeatureRecord{
		rec(map[string]float64{"age": 25}, map[string]normalize.Set{"area": normalize.NewSet("north")}),
		rec(map[string]float64{"age": 30}, map[string]normalize.Set{"area": normalize.NewSet("south")}),
		rec(map[string]float64{"age": 35}, map[string]normalize.Set{"area": normalize.NewSet("north")}),
	}

	scorer := score.NewScorer(defaultSoft())
	a := scorer.Score(records, []int{0, 1, 2})
	b := scorer.Score(records, []int{0, 1, 2})
	assert.Equal(t, a, b) // repeated calls on the same group hit the cache and agree exactly
}

func TestScore_SimilaritySkipsZeroRangeColumn(t *testing.T) {
	records := []normalize.FeatureRecord{
		rec(map[string]float64{"age": 30}, nil),
		rec(map[string]float64{"age": 30}, nil),
	}
	soft := defaultSoft()
	soft.Categorical = nil

	result := score.NewScorer(soft).Score(records, []int{0, 1})
	// The only numeric column has zero observed range, so it's skipped
	// entirely rather than collapsed to a zero coordinate: no usable column
	// means no pairwise distance can be computed at all.
	assert.Equal(t, 0.0, result.Similarity)
	assert.NotEmpty(t, result.Degraded)
}

func TestScore_SimilarityNormalizesAcrossNonZeroRange(t *testing.T) {
	records := []normalize.FeatureRecord{
		rec(map[string]float64{"age": 20}, nil),
		rec(map[string]float64{"age": 30}, nil),
	}
	soft := defaultSoft()
	soft.Categorical = nil

	result := score.NewScorer(soft).Score(records, []int{0, 1})
	// min-max normalized coordinates are 0 and 1: distance 1, S = 1/(1+1).
	assert.InDelta(t, 0.5, result.Similarity, 1e-9)
}

func TestScore_DiversityDegradesWhenFieldAbsent(t *testing.T) {
	records := []normalize.FeatureRecord{
		rec(map[string]float64{}, nil),
		rec(map[string]float64{}, nil),
	}
	soft := defaultSoft()
	soft.Categorical = nil

	result := score.NewScorer(soft).Score(records, []int{0, 1})
	assert.Equal(t, 0.0, result.Diversity)
	assert.NotEmpty(t, result.Degraded)
}

func TestScore_CategoricalBalanceMode(t *testing.T) {
	records := []normalize.FeatureRecord{
		rec(nil, map[string]normalize.Set{"area": normalize.NewSet("north")}),
		rec(nil, map[string]normalize.Set{"area": normalize.NewSet("south")}),
		rec(nil, map[string]normalize.Set{"area": normalize.NewSet("east")}),
		rec(nil, map[string]normalize.Set{"area": normalize.NewSet("west")}),
	}
	soft := policy.Soft{
		Categorical: map[string]policy.CategoricalMode{"area": policy.ModeBalance},
		Weights:     policy.Weights{CategoricalDiversity: 1},
	}
	result := score.NewScorer(soft).Score(records, []int{0, 1, 2, 3})
	assert.Equal(t, 1.0, result.Categorical) // min(1, 4/3) caps at 1
}

func TestScore_MultiOverlapMeanJaccard(t *testing.T) {
	records := []normalize.FeatureRecord{
		{Multi: map[string]normalize.Set{"days": normalize.NewSet("mon", "tue")}},
		{Multi: map[string]normalize.Set{"days": normalize.NewSet("mon")}},
	}
	soft := policy.Soft{MultiChoice: []string{"days"}, Weights: policy.Weights{MultiOverlapBonus: 1}}
	result := score.NewScorer(soft).Score(records, []int{0, 1})
	assert.InDelta(t, 0.5, result.Multi, 1e-9) // |{mon}| / |{mon,tue}| = 1/2
}
