package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// namespace prefixes every metric name.
const namespace = "mealplan"

// Recorder holds the engine's Prometheus collectors. A nil Recorder is valid
// and records nothing, so callers never have to guard their call sites.
type Recorder struct {
	plansGenerated    prometheus.Counter
	planDuration      prometheus.Histogram
	planQuality       prometheus.Histogram
	mealsComposed     prometheus.Counter
	attempts          prometheus.Counter
	solverFallbacks   prometheus.Counter
	budgetExhaustions prometheus.Counter
}

// NewRecorder builds the collectors and registers them on reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		plansGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "plans_generated_total",
			Help:      "Number of meal plans generated.",
		}),
		planDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "plan_duration_seconds",
			Help:      "Wall time spent generating one plan.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12),
		}),
		planQuality: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "plan_quality_score",
			Help:      "Composite quality score of generated plans.",
			Buckets:   prometheus.LinearBuckets(0, 10, 11),
		}),
		mealsComposed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "meals_composed_total",
			Help:      "Number of meals accepted into plans.",
		}),
		attempts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "composition_attempts_total",
			Help:      "Greedy composition attempts across all meals.",
		}),
		solverFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "solver_fallbacks_total",
			Help:      "Meals where the primary solver failed and the fallback ran.",
		}),
		budgetExhaustions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "solver_budget_exhaustions_total",
			Help:      "Solves that returned best-so-far after exhausting their iteration budget.",
		}),
	}
	if reg != nil {
		reg.MustRegister(
			r.plansGenerated,
			r.planDuration,
			r.planQuality,
			r.mealsComposed,
			r.attempts,
			r.solverFallbacks,
			r.budgetExhaustions,
		)
	}
	return r
}

// PlanGenerated records one finished generation run.
func (r *Recorder) PlanGenerated(duration time.Duration, qualityScore float64) {
	if r == nil {
		return
	}
	r.plansGenerated.Inc()
	r.planDuration.Observe(duration.Seconds())
	r.planQuality.Observe(qualityScore)
}

// MealComposed records one accepted meal and the attempts it took.
func (r *Recorder) MealComposed(attempts int) {
	if r == nil {
		return
	}
	r.mealsComposed.Inc()
	r.attempts.Add(float64(attempts))
}

// SolverFallback records a meal whose primary solve failed.
func (r *Recorder) SolverFallback() {
	if r == nil {
		return
	}
	r.solverFallbacks.Inc()
}

// BudgetExhausted records a solve that ran out of iterations.
func (r *Recorder) BudgetExhausted() {
	if r == nil {
		return
	}
	r.budgetExhaustions.Inc()
}
