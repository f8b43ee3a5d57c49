// Package metrics instruments plan generation with Prometheus collectors.
//
// The engine is a library, so nothing here starts an HTTP listener or touches
// a default registry. The caller hands NewRecorder the prometheus.Registerer
// it wants the collectors on and exposes it however it likes; a nil *Recorder
// is a valid no-op, which keeps every call site unconditional.
//
// # Emitted Metrics
//
//	mealplan_plans_generated_total            plans returned to callers
//	mealplan_plan_duration_seconds            wall time of one generation run
//	mealplan_plan_quality_score               composite quality of finished plans
//	mealplan_meals_composed_total             meals accepted into plans
//	mealplan_composition_attempts_total       greedy attempts across all meals
//	mealplan_solver_fallbacks_total           primary solver gave up, fallback ran
//	mealplan_solver_budget_exhaustions_total  solves that hit the iteration budget
//
// # Usage
//
//	reg := prometheus.NewRegistry()
//	rec := metrics.NewRecorder(reg)
//	eng, err := engine.New(cfg, engine.WithMetrics(rec))
//
// Solver fallbacks and budget exhaustions are recovered conditions, never
// errors; these counters are how operators see them happening.
package metrics
