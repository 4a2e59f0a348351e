package groupbuilder

import (
	"github.com/bloomgroup/engine/compat"
	"github.com/bloomgroup/engine/normalize"
	"github.com/bloomgroup/engine/policy"
	"github.com/bloomgroup/engine/score"
)

// Builder runs the greedy seed-and-extend algorithm against one
// subspace's compatibility matrix and record set.
type Builder struct {
	groupSize    int
	minGroupSize int
	age          *policy.AgeRules
	scorer       *score.Scorer
}

// New builds a Builder bound to pol's size bounds, age group-constraints,
// and soft-scoring weights (via scorer).
func New(pol *policy.Policy, scorer *score.Scorer) *Builder {
	return &Builder{
		groupSize:    pol.GroupSize,
		minGroupSize: pol.Fallback.MinGroupSize,
		age:          pol.AgeRules,
		scorer:       scorer,
	}
}

// Build runs one seed-and-extend pass over available (local indices into
// records/matrix, the subspace's own index space — see subspace.Subspace).
// The matrix's entries are invariant to population changes, so callers
// never need to literally rebuild it between calls: restricting every
// lookup to the shrinking available set has the same effect as rebuilding
// the compatibility matrix over the now-smaller available set, without
// the reallocation.
func (b *Builder) Build(records []normalize.FeatureRecord, matrix *compat.Matrix, available []int) Outcome {
	if len(available) == 0 {
		return Outcome{Exhausted: true}
	}

	seed := selectSeed(matrix, available)
	group := []int{seed}
	pool := removeFrom(available, seed)

	for len(group) < b.groupSize && len(pool) > 0 {
		next, ok := b.bestExtension(records, matrix, group, pool)
		if !ok {
			break
		}
		group = append(group, next)
		pool = removeFrom(pool, next)
	}

	if len(group) < b.minGroupSize {
		return Outcome{Exhausted: true}
	}

	result := b.scorer.Score(records, group)
	return Outcome{Accepted: true, Members: group, Score: result.Score}
}

// selectSeed picks the candidate with smallest compatibility degree over
// available, ties broken by lowest index ( step 1).
func selectSeed(matrix *compat.Matrix, available []int) int {
	best := available[0]
	bestDeg := matrix.Degree(best, available)
	for _, i := range available[1:] {
		deg := matrix.Degree(i, available)
		if deg < bestDeg {
			best, bestDeg = i, deg
		}
	}
	return best
}

// bestExtension finds the feasible candidate in pool maximizing
// score(group ∪ {x}), ties broken by lowest index ( step 2).
func (b *Builder) bestExtension(records []normalize.FeatureRecord, matrix *compat.Matrix, group []int, pool []int) (int, bool) {
	best := -1
	bestScore := 0.0
	candidate := make([]int, len(group)+1)
	copy(candidate, group)

	for _, x := range pool {
		if !matrix.CompatibleWithAll(x, group) {
			continue
		}
		if !wholeGroupOK(records, b.age, group, x) {
			continue
		}
		candidate[len(group)] = x
		result := b.scorer.Score(records, candidate)
		if best == -1 || result.Score > bestScore {
			best, bestScore = x, result.Score
		}
	}

	if best == -1 {
		return 0, false
	}
	return best, true
}

// removeFrom returns a new slice with value removed, preserving order.
func removeFrom(indices []int, value int) []int {
	out := make([]int, 0, len(indices)-1)
	for _, i := range indices {
		if i != value {
			out = append(out, i)
		}
	}
	return out
}
