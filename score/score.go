package score

import (
	"math"

	"github.com/bloomgroup/engine/normalize"
	"github.com/bloomgroup/engine/policy"
)

// Scorer computes group-quality scores for one policy's soft-score
// configuration, memoizing by candidate-set identity via an internal Cache.
type Scorer struct {
	soft  policy.Soft
	cache *Cache
}

// NewScorer builds a Scorer for soft against a fresh cache.
func NewScorer(soft policy.Soft) *Scorer {
	return &Scorer{soft: soft, cache: NewCache()}
}

// ClearCache empties the memoization cache (rundriver calls it once a
// subspace's extraction loop ends).
func (s *Scorer) ClearCache() { s.cache.Clear() }

// Score returns the composite group-quality score for the given candidate
// group. Results are memoized by the sorted tuple of indices; explain is
// always computed (the per-term breakdown is cheap relative to the pair
// scans) so cached results serve both scoring and explanation callers.
func (s *Scorer) Score(records []normalize.FeatureRecord, group []int) Result {
	if cached, ok := s.cache.Get(group); ok {
		return cached
	}

	result := s.compute(records, group)
	s.cache.Put(group, result)
	return result
}

func (s *Scorer) compute(records []normalize.FeatureRecord, group []int) Result {
	k := len(group)
	var res Result

	d, dWarn := diversity(records, group, s.soft.NumericFeatures)
	res.Diversity = d
	if dWarn != "" {
		res.Degraded = append(res.Degraded, dWarn)
	}

	sim, sWarn := similarity(records, group, s.soft.NumericFeatures)
	res.Similarity = sim
	if sWarn != "" {
		res.Degraded = append(res.Degraded, sWarn)
	}

	res.Categorical = categoricalScore(records, group, k, s.soft.Categorical)
	res.Multi = multiOverlapScore(records, group, s.soft.MultiChoice)

	w := s.soft.Weights
	res.Score = w.DiversityNumeric*res.Diversity +
		w.SimilarityBonus*res.Similarity +
		w.CategoricalDiversity*res.Categorical +
		w.MultiOverlapBonus*res.Multi

	return res
}

// diversity is D: the mean variance across the numeric soft-feature
// columns, skipping columns whose variance is undefined for k<2 or whose
// values are all absent.
func diversity(records []normalize.FeatureRecord, group []int, fields []string) (float64, string) {
	if len(group) < 2 || len(fields) == 0 {
		return 0, ""
	}

	var sum float64
	counted := 0
	allNaNFields := 0
	for _, f := range fields {
		values := numericColumn(records, group, f)
		if len(values) < 2 {
			allNaNFields++
			continue
		}
		sum += variance(values)
		counted++
	}

	warn := ""
	if allNaNFields > 0 && counted == 0 {
		warn = "diversity: all configured numeric fields absent for this group"
	}
	if counted == 0 {
		return 0, warn
	}
	return sum / float64(counted), warn
}

func numericColumn(records []normalize.FeatureRecord, group []int, field string) []float64 {
	values := make([]float64, 0, len(group))
	for _, idx := range group {
		if v, ok := records[idx].NumericValue(field); ok {
			values = append(values, v)
		}
	}
	return values
}

func variance(values []float64) float64 {
	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	acc := 0.0
	for _, v := range values {
		d := v - mean
		acc += d * d
	}
	return acc / float64(len(values))
}

// similarity is S = 1 / (1 + mean_pairwise_distance), Euclidean over
// min-max-normalized numeric features. Columns with zero observed range are
// skipped (not collapsed to zero, ), pairs with any NaN
// coordinate excluded, S=0 when no valid pairs remain.
func similarity(records []normalize.FeatureRecord, group []int, fields []string) (float64, string) {
	if len(group) < 2 || len(fields) == 0 {
		return 0, ""
	}

	normalized, usable := minMaxNormalize(records, group, fields)
	if len(usable) == 0 {
		return 0, "similarity: no numeric columns with non-zero range"
	}

	var sumDist float64
	pairs := 0
	for a := 0; a < len(group); a++ {
		for b := a + 1; b < len(group); b++ {
			d, ok := euclidean(normalized[a], normalized[b])
			if !ok {
				continue
			}
			sumDist += d
			pairs++
		}
	}

	if pairs == 0 {
		return 0, "similarity: no valid pairs (all NaN coordinates)"
	}
	mean := sumDist / float64(pairs)
	return 1.0 / (1.0 + mean), ""
}

// minMaxNormalize returns, for each member of group (in order), its
// min-max-normalized coordinate vector over fields whose observed range is
// non-zero; usable lists which fields contributed a coordinate. A member
// missing a usable field gets math.NaN() in that slot.
func minMaxNormalize(records []normalize.FeatureRecord, group []int, fields []string) ([][]float64, []string) {
	var usable []string
	var mins, maxs []float64

	for _, f := range fields {
		values := numericColumn(records, group, f)
		if len(values) == 0 {
			continue
		}
		lo, hi := values[0], values[0]
		for _, v := range values {
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
		if hi == lo {
			continue // zero observed range: skip the column entirely
		}
		usable = append(usable, f)
		mins = append(mins, lo)
		maxs = append(maxs, hi)
	}

	out := make([][]float64, len(group))
	for i, idx := range group {
		row := make([]float64, len(usable))
		for j, f := range usable {
			v, ok := records[idx].NumericValue(f)
			if !ok {
				row[j] = math.NaN()
				continue
			}
			row[j] = (v - mins[j]) / (maxs[j] - mins[j])
		}
		out[i] = row
	}
	return out, usable
}

func euclidean(a, b []float64) (float64, bool) {
	sum := 0.0
	for i := range a {
		if math.IsNaN(a[i]) || math.IsNaN(b[i]) {
			return 0, false
		}
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum), true
}

// categoricalScore is C: summed per-field contribution, either
// unique_count/k ("diversity" mode) or min(1, unique_count/3) ("balance"
// mode).
func categoricalScore(records []normalize.FeatureRecord, group []int, k int, fields map[string]policy.CategoricalMode) float64 {
	total := 0.0
	for f, mode := range fields {
		unique := make(map[string]struct{})
		for _, idx := range group {
			for v := range records[idx].CategoricalSet(f) {
				unique[v] = struct{}{}
			}
		}
		n := float64(len(unique))
		switch mode {
		case policy.ModeBalance:
			total += math.Min(1, n/3)
		default: // ModeDiversity
			if k > 0 {
				total += n / float64(k)
			}
		}
	}
	return total
}

// multiOverlapScore is M: summed per-field mean pairwise Jaccard overlap.
func multiOverlapScore(records []normalize.FeatureRecord, group []int, fields []string) float64 {
	total := 0.0
	for _, f := range fields {
		var sum float64
		pairs := 0
		for a := 0; a < len(group); a++ {
			for b := a + 1; b < len(group); b++ {
				sa := records[group[a]].MultiSet(f)
				sb := records[group[b]].MultiSet(f)
				sum += sa.Jaccard(sb)
				pairs++
			}
		}
		if pairs > 0 {
			total += sum / float64(pairs)
		}
	}
	return total
}
