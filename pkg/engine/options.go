package engine

import (
	"github.com/go-logr/logr"

	"github.com/Virtus-Training/Plans-alimentaires/internal/metrics"
	"github.com/Virtus-Training/Plans-alimentaires/pkg/solver"
)

// Option customizes an Engine at construction time.
type Option func(*Engine)

// WithLogger routes the engine and its collaborators through logger instead
// of the package-level default.
func WithLogger(logger logr.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithSeed pins the random seed so that repeated GeneratePlan calls yield
// identical plans. Without it every call draws a fresh seed from the clock.
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		e.seed = seed
		e.seedSet = true
	}
}

// WithMetrics attaches a Prometheus recorder. A nil recorder is valid and
// leaves the engine uninstrumented.
func WithMetrics(rec *metrics.Recorder) Option {
	return func(e *Engine) {
		e.metrics = rec
	}
}

// WithSolverStrategy overrides the quantity-solver strategy configured under
// solver.strategy.
func WithSolverStrategy(strategy solver.Strategy) Option {
	return func(e *Engine) {
		e.strategy = strategy
	}
}
