package engine

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/go-logr/logr"
	"github.com/google/uuid"

	"github.com/Virtus-Training/Plans-alimentaires/internal/classify"
	"github.com/Virtus-Training/Plans-alimentaires/internal/compat"
	"github.com/Virtus-Training/Plans-alimentaires/internal/engines/composer"
	"github.com/Virtus-Training/Plans-alimentaires/internal/logging"
	"github.com/Virtus-Training/Plans-alimentaires/internal/metrics"
	"github.com/Virtus-Training/Plans-alimentaires/internal/planner"
	"github.com/Virtus-Training/Plans-alimentaires/internal/quality"
	"github.com/Virtus-Training/Plans-alimentaires/internal/variety"
	"github.com/Virtus-Training/Plans-alimentaires/pkg/config"
	"github.com/Virtus-Training/Plans-alimentaires/pkg/core"
	"github.com/Virtus-Training/Plans-alimentaires/pkg/solver"
)

// Engine is the public entry point: it wires the classifier, compatibility
// matrix, solvers, composer, planner and quality scorer together and turns a
// nutrition target plus a food catalog into a scored meal plan. An Engine is
// immutable after New and safe for concurrent GeneratePlan calls.
type Engine struct {
	cfg      *config.EngineConfig
	logger   logr.Logger
	metrics  *metrics.Recorder
	strategy solver.Strategy
	seed     int64
	seedSet  bool

	planner *planner.Planner
	scorer  *quality.Scorer
}

// New builds an Engine from the configuration and options. A nil cfg selects
// config.Default(); any cfg is validated before wiring starts.
func New(cfg *config.EngineConfig, opts ...Option) (*Engine, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating configuration: %w", err)
	}

	e := &Engine{
		cfg:      cfg,
		logger:   logging.Log,
		strategy: solver.Strategy(cfg.Solver.Strategy),
	}
	for _, opt := range opts {
		opt(e)
	}

	cls, err := classify.New(classify.DefaultTable())
	if err != nil {
		return nil, fmt.Errorf("building classifier: %w", err)
	}
	matrix, err := compat.New(nil, cls)
	if err != nil {
		return nil, fmt.Errorf("building compatibility matrix: %w", err)
	}

	scfg := composer.SolverConfig(cfg)
	primary, err := solver.New(e.strategy, scfg)
	if err != nil {
		return nil, fmt.Errorf("building quantity solver: %w", err)
	}
	var fallback solver.Solver
	if e.strategy != solver.StrategyDescent {
		// The descent solver backs up the exact one on infeasible meals.
		fallback, err = solver.New(solver.StrategyDescent, scfg)
		if err != nil {
			return nil, fmt.Errorf("building fallback solver: %w", err)
		}
	}

	comp, err := composer.New(cfg, composer.Deps{
		Classifier: cls,
		Matrix:     matrix,
		Primary:    primary,
		Fallback:   fallback,
		Metrics:    e.metrics,
		Logger:     e.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("building composer: %w", err)
	}
	e.planner, err = planner.New(cfg, comp, e.logger)
	if err != nil {
		return nil, fmt.Errorf("building planner: %w", err)
	}
	e.scorer, err = quality.NewScorer(matrix, e.logger)
	if err != nil {
		return nil, fmt.Errorf("building quality scorer: %w", err)
	}
	return e, nil
}

// GeneratePlan composes a meal plan for the target out of the catalog and
// scores the result. The returned plan holds every meal over the target's
// horizon; the report grades how well the plan tracks the target.
//
// The target is rejected with a TargetInconsistentError when its stated
// calories disagree with the calories its macros imply, and with a
// CatalogTooSmallError when fewer foods survive dietary-preference filtering
// than a single meal needs. The context is honored between meals, so a
// cancelled ctx aborts a long horizon early.
func (e *Engine) GeneratePlan(ctx context.Context, target core.NutritionTarget, catalog []core.Food) (*core.MealPlan, *core.QualityReport, error) {
	start := time.Now()

	if err := target.Validate(); err != nil {
		return nil, nil, fmt.Errorf("validating target: %w", err)
	}
	if err := e.checkCoherence(target); err != nil {
		return nil, nil, err
	}

	pool := filterCatalog(catalog, target.Preferences)
	if required := e.cfg.Composition.MinFoodsPerMeal; len(pool) < required {
		return nil, nil, &CatalogTooSmallError{Usable: len(pool), Required: required}
	}

	seed := e.seed
	if !e.seedSet {
		seed = time.Now().UnixNano()
	}

	e.logger.Info("generating meal plan",
		"days", target.Days(), "mealsPerDay", target.MealCount,
		"calories", target.Calories, "foods", len(pool))

	tracker := variety.NewTracker()
	meals, err := e.planner.Assemble(ctx, target, pool, tracker, seed)
	if err != nil {
		return nil, nil, fmt.Errorf("assembling plan: %w", err)
	}

	plan := &core.MealPlan{
		ID:     planID(seed),
		Days:   target.Days(),
		Target: target,
		Meals:  meals,
	}
	report := e.scorer.Score(*plan)

	e.metrics.PlanGenerated(time.Since(start), report.CompositeScore)
	e.logger.Info("meal plan generated",
		"plan", plan.ID, "meals", len(plan.Meals),
		"quality", report.CompositeScore, "grade", report.Grade,
		"elapsed", time.Since(start))
	return plan, &report, nil
}

// checkCoherence cross-checks the stated calorie goal against the calories
// the macro goals imply, at the engine's relative tolerance.
func (e *Engine) checkCoherence(target core.NutritionTarget) error {
	implied := target.Macros().ImpliedCalories()
	if math.Abs(implied-target.Calories) > target.Calories*e.cfg.Tolerance {
		return &TargetInconsistentError{
			Stated:    target.Calories,
			Implied:   implied,
			Tolerance: e.cfg.Tolerance,
		}
	}
	return nil
}

// filterCatalog keeps the foods carrying every preference tag. The result is
// always a fresh slice so composition never shuffles the caller's catalog.
func filterCatalog(catalog []core.Food, prefs []core.DietTag) []core.Food {
	if len(prefs) == 0 {
		return append([]core.Food(nil), catalog...)
	}
	pool := make([]core.Food, 0, len(catalog))
	for _, f := range catalog {
		if f.MatchesPreferences(prefs) {
			pool = append(pool, f)
		}
	}
	return pool
}

// planID derives the plan identifier from the run seed, so pinned-seed runs
// reproduce their plan byte for byte, identifiers included.
func planID(seed int64) string {
	id, err := uuid.NewRandomFromReader(rand.New(rand.NewSource(seed)))
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
