package rundriver

import (
	"context"
	"sync"

	"github.com/bloomgroup/engine/compat"
	"github.com/bloomgroup/engine/groupbuilder"
	"github.com/bloomgroup/engine/normalize"
	"github.com/bloomgroup/engine/policy"
	"github.com/bloomgroup/engine/score"
	"github.com/bloomgroup/engine/subspace"
)

// subspaceResult is one subspace's extraction output, expressed in global
// record indices so the caller never has to re-derive the local→global
// mapping.
type subspaceResult struct {
	groups       [][]int
	explanations []Explanation
	ungrouped    []int
}

// Run executes the full pipeline over records under pol: subspace
// partitioning, then repeated seed-and-extend extraction per subspace
// until the remaining pool is exhausted, in deterministic
// sorted-subspace-key order. ctx is checked between subspaces and between
// group emissions within a subspace; a cancelled context yields a
// StatusFailed result carrying the groups already extracted.
func Run(ctx context.Context, records []normalize.FeatureRecord, pol *policy.Policy, opts ...Option) RunResult {
	cfg := &runConfig{logger: defaultLogger()}
	for _, opt := range opts {
		opt(cfg)
	}

	m, err := newMetrics(cfg.registerer)
	if err != nil {
		return RunResult{Status: StatusFailed, FailReason: err.Error()}
	}

	subspaces := subspace.Partition(records, pol.Subspaces)
	cfg.logger.Info().Int("subspaces", len(subspaces)).Int("records", len(records)).Msg("run started")

	var results []subspaceResult
	cancelled := false

	if cfg.parallel {
		results, cancelled = runParallel(ctx, records, pol, subspaces, cfg, m)
	} else {
		for _, sub := range subspaces {
			if ctxDone(ctx) {
				cancelled = true
				break
			}
			results = append(results, processSubspace(ctx, records, pol, sub, cfg, m))
		}
	}
	// processSubspace stops early on cancellation without reporting it, so
	// a cancellation seen between group emissions is picked up here.
	if ctxDone(ctx) {
		cancelled = true
	}

	return assemble(records, results, cancelled, cfg)
}

// runParallel processes every subspace in its own goroutine: subspaces
// are disjoint, so no state is shared across them beyond the read-only
// Policy and records snapshot. Each worker gets its own compat.Matrix and
// score.Cache via processSubspace's per-call construction.
func runParallel(ctx context.Context, records []normalize.FeatureRecord, pol *policy.Policy, subspaces []subspace.Subspace, cfg *runConfig, m *metrics) ([]subspaceResult, bool) {
	results := make([]subspaceResult, len(subspaces))
	var wg sync.WaitGroup
	var cancelledFlag sync.Once
	cancelled := false

	for i, sub := range subspaces {
		wg.Add(1)
		go func(i int, sub subspace.Subspace) {
			defer wg.Done()
			if ctxDone(ctx) {
				cancelledFlag.Do(func() { cancelled = true })
				return
			}
			results[i] = processSubspace(ctx, records, pol, sub, cfg, m)
		}(i, sub)
	}
	wg.Wait()
	return results, cancelled
}

// processSubspace runs the greedy extraction loop over one subspace: build
// the compatibility matrix once (its entries never change as the available
// pool shrinks — see DESIGN.md), then repeatedly seed-and-extend until the
// builder reports exhaustion.
func processSubspace(ctx context.Context, records []normalize.FeatureRecord, pol *policy.Policy, sub subspace.Subspace, cfg *runConfig, m *metrics) subspaceResult {
	subRecords := make([]normalize.FeatureRecord, len(sub.Indices))
	for local, global := range sub.Indices {
		subRecords[local] = records[global]
	}

	matrix, err := compat.Build(subRecords, pol.Hard, pol.AgeRules)
	if err != nil {
		cfg.logger.Warn().Err(err).Str("subspace", sub.Key).Msg("compatibility matrix build failed")
		return subspaceResult{ungrouped: append([]int(nil), sub.Indices...)}
	}

	scorer := score.NewScorer(pol.Soft)
	builder := groupbuilder.New(pol, scorer)

	available := make([]int, len(sub.Indices))
	for i := range available {
		available[i] = i
	}

	var res subspaceResult
	for len(available) > 0 {
		if ctxDone(ctx) {
			break
		}

		outcome := builder.Build(subRecords, matrix, available)
		if !outcome.Accepted {
			break
		}

		globalGroup := make([]int, len(outcome.Members))
		for i, local := range outcome.Members {
			globalGroup[i] = sub.Indices[local]
		}
		res.groups = append(res.groups, globalGroup)

		result := scorer.Score(subRecords, outcome.Members)
		res.explanations = append(res.explanations, buildExplanation(subRecords, outcome.Members, sub.Key, pol, result))

		if m != nil {
			m.groupsEmitted.Inc()
			m.groupScore.Observe(outcome.Score)
		}
		cfg.logger.Info().Str("subspace", sub.Key).Int("size", len(outcome.Members)).Float64("score", outcome.Score).Msg("group emitted")

		available = subtractSorted(available, outcome.Members)
	}

	scorer.ClearCache()

	for _, local := range available {
		res.ungrouped = append(res.ungrouped, sub.Indices[local])
	}
	if m != nil {
		m.subspacesSeen.Inc()
		m.recordsUngrouped.Add(float64(len(res.ungrouped)))
	}
	return res
}

// subtractSorted removes every value in remove from pool (both ascending),
// preserving pool's order.
func subtractSorted(pool []int, remove []int) []int {
	removed := make(map[int]struct{}, len(remove))
	for _, v := range remove {
		removed[v] = struct{}{}
	}
	out := make([]int, 0, len(pool)-len(remove))
	for _, v := range pool {
		if _, ok := removed[v]; !ok {
			out = append(out, v)
		}
	}
	return out
}

func ctxDone(ctx context.Context) bool {
	if ctx == nil {
		return false
	}
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}

// assemble flattens per-subspace results into the run's final RunResult
// and aggregate Stats.
func assemble(records []normalize.FeatureRecord, results []subspaceResult, cancelled bool, cfg *runConfig) RunResult {
	var out RunResult
	out.Status = StatusCompleted
	if cancelled {
		out.Status = StatusFailed
		out.FailReason = ErrCancelled.Error()
	}

	var totalSize int
	var totalScore float64
	for _, r := range results {
		out.Groups = append(out.Groups, r.groups...)
		out.Explanations = append(out.Explanations, r.explanations...)
		out.Stats.UngroupedIndices = append(out.Stats.UngroupedIndices, r.ungrouped...)
		for _, g := range r.groups {
			out.Stats.GroupSizes = append(out.Stats.GroupSizes, len(g))
			totalSize += len(g)
		}
		for _, e := range r.explanations {
			totalScore += e.GroupScore
		}
	}

	out.Stats.TotalRecords = len(records)
	out.Stats.TotalGroups = len(out.Groups)
	if out.Stats.TotalGroups > 0 {
		out.Stats.AvgGroupSize = float64(totalSize) / float64(out.Stats.TotalGroups)
		out.Stats.AvgGroupScore = totalScore / float64(out.Stats.TotalGroups)
	}

	cfg.logger.Info().Int("groups", out.Stats.TotalGroups).Int("ungrouped", len(out.Stats.UngroupedIndices)).Str("status", out.Status.String()).Msg("run finished")
	return out
}
