package rundriver

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

// runConfig collects Run's optional behavior, mutated by Option values
// before the run begins.
type runConfig struct {
	logger     zerolog.Logger
	registerer prometheus.Registerer
	parallel   bool
}

// Option customizes a Run call.
type Option func(*runConfig)

// WithLogger attaches a zerolog.Logger for per-subspace/per-group progress
// lines.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *runConfig) {
		c.logger = logger
	}
}

// WithRegisterer attaches a Prometheus registerer; metrics are created but
// left unregistered when no registerer is supplied.
func WithRegisterer(registerer prometheus.Registerer) Option {
	if registerer == nil {
		panic("rundriver: WithRegisterer(nil)")
	}
	return func(c *runConfig) {
		c.registerer = registerer
	}
}

// WithParallel processes independent subspaces concurrently. Each worker
// builds its own compat.Matrix and score.Cache; no state is shared across
// subspaces, so this changes only wall-clock time, never results.
func WithParallel() Option {
	return func(c *runConfig) {
		c.parallel = true
	}
}
