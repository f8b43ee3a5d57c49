package composer

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strings"

	"github.com/go-logr/logr"

	"github.com/Virtus-Training/Plans-alimentaires/internal/classify"
	"github.com/Virtus-Training/Plans-alimentaires/internal/compat"
	"github.com/Virtus-Training/Plans-alimentaires/internal/logging"
	"github.com/Virtus-Training/Plans-alimentaires/internal/metrics"
	"github.com/Virtus-Training/Plans-alimentaires/internal/variety"
	"github.com/Virtus-Training/Plans-alimentaires/pkg/config"
	"github.com/Virtus-Training/Plans-alimentaires/pkg/core"
	"github.com/Virtus-Training/Plans-alimentaires/pkg/solver"
)

var (
	errEmptyPool    = errors.New("candidate pool is empty")
	errNoViableMeal = errors.New("no viable meal composition")
)

// scoreEpsilon separates genuinely better scores from float noise.
const scoreEpsilon = 1e-9

// Deps bundles the collaborators a Composer works with. Classifier, Matrix
// and Primary are required; Calendar defaults to the built-in produce
// calendar, Fallback and Metrics may be nil.
type Deps struct {
	Classifier *classify.Classifier
	Matrix     *compat.Matrix
	Calendar   *compat.Calendar
	Primary    solver.Solver
	Fallback   solver.Solver
	Metrics    *metrics.Recorder
	Logger     logr.Logger
}

// Composer builds one meal at a time: it selects foods greedily under
// culinary constraints, refines their quantities through the solver and
// keeps the best of several randomized attempts. A Composer is immutable
// after construction and safe for concurrent use; per-call state lives in
// the tracker and rng arguments.
type Composer struct {
	cfg    *config.EngineConfig
	season compat.Season
	deps   Deps
}

// New builds a Composer from the configuration and its collaborators.
func New(cfg *config.EngineConfig, deps Deps) (*Composer, error) {
	if cfg == nil {
		return nil, fmt.Errorf("composer requires a configuration")
	}
	if deps.Classifier == nil {
		return nil, fmt.Errorf("composer requires a classifier")
	}
	if deps.Matrix == nil {
		return nil, fmt.Errorf("composer requires a compatibility matrix")
	}
	if deps.Primary == nil {
		return nil, fmt.Errorf("composer requires a quantity solver")
	}
	if deps.Calendar == nil {
		deps.Calendar = compat.DefaultCalendar()
	}
	if deps.Logger.GetSink() == nil {
		deps.Logger = logging.Log
	}
	return &Composer{
		cfg:    cfg,
		season: compat.Season(cfg.Season),
		deps:   deps,
	}, nil
}

// Request describes one meal to compose.
type Request struct {
	// Target is the absolute macro goal for this meal.
	Target core.MealTarget

	// Day is the one-based day index the meal belongs to.
	Day int

	// FinalMeal marks the day's last slot, which fills against the tighter
	// stop band and never stops early by chance.
	FinalMeal bool

	// DailyCarbs is the day's total carb target; it decides whether the
	// low-carb candidate filter applies.
	DailyCarbs float64
}

// SolverConfig projects the engine configuration onto the solver's knobs.
// The engine uses it to construct solver instances and the composer uses it
// for the rounding pass, so both always agree.
func SolverConfig(cfg *config.EngineConfig) solver.Config {
	return solver.Config{
		MinQuantity:   cfg.Quantities.Min,
		MaxQuantity:   cfg.Quantities.Max,
		Tolerance:     cfg.Tolerance,
		MaxIterations: cfg.Solver.MaxIterations,
		Weights: solver.Weights{
			Calories: cfg.Composition.MealEvalWeights.Calories,
			Protein:  cfg.Composition.MealEvalWeights.Protein,
			Carbs:    cfg.Composition.MealEvalWeights.Carbs,
			Fat:      cfg.Composition.MealEvalWeights.Fat,
		},
	}
}

// Compose builds one meal from the pool. It runs the configured number of
// attempts with reshuffled candidate order, keeps the best by whole-meal
// evaluation and records the winning foods into the tracker. The returned
// meal carries its type, day, target and assignments; naming and identity
// are the caller's concern.
func (c *Composer) Compose(ctx context.Context, req Request, pool []core.Food, tracker variety.ReadRecorder, rng *rand.Rand) (core.Meal, error) {
	if err := ctx.Err(); err != nil {
		return core.Meal{}, err
	}
	if len(pool) == 0 {
		return core.Meal{}, fmt.Errorf("%s day %d: %w", req.Target.Slot.Type, req.Day, errEmptyPool)
	}

	comp := &c.cfg.Composition
	candidates := c.filterLowCarb(req, pool)
	c.maybeResetVariety(candidates, tracker)
	minFoods, _ := comp.FoodBounds(req.Target.Slot.Type)

	var best []core.FoodAssignment
	bestScore := math.Inf(1)
	bestSig := ""
	attempts := 0

	for attempt := 0; attempt < comp.Attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return core.Meal{}, err
		}
		attempts++

		order := candidates
		if attempt > 0 {
			order = shuffled(candidates, rng)
		}
		assignments := c.buildGreedy(req, order, tracker, rng)
		assignments = c.optimizeSwaps(req, assignments, candidates, rng)
		assignments, err := c.refineQuantities(ctx, req, assignments, minFoods)
		if err != nil {
			return core.Meal{}, err
		}

		score := c.evaluateMeal(assignments, req.Target.Macros)
		c.deps.Logger.V(logging.TRACE).Info("composition attempt",
			"type", req.Target.Slot.Type, "day", req.Day,
			"attempt", attempt+1, "foods", len(assignments), "score", score)
		if c.betterAttempt(score, assignments, bestScore, bestSig) {
			best = assignments
			bestScore = score
			bestSig = signature(assignments)
		}
	}
	if len(best) == 0 {
		return core.Meal{}, fmt.Errorf("%s day %d: %w", req.Target.Slot.Type, req.Day, errNoViableMeal)
	}

	for _, a := range best {
		tracker.Record(a.Food.ID)
	}
	c.deps.Metrics.MealComposed(attempts)

	meal := core.Meal{
		Type:        req.Target.Slot.Type,
		Day:         req.Day,
		Assignments: best,
		Target:      req.Target,
	}
	c.deps.Logger.V(logging.DEBUG).Info("composed meal",
		"type", meal.Type, "day", req.Day, "foods", len(best),
		"calories", meal.Macros().Calories, "targetCalories", req.Target.Macros.Calories,
		"score", bestScore)
	return meal, nil
}

// betterAttempt decides whether a finished attempt replaces the best one so
// far. Strictly better scores always win; under the lowest-id policy an
// equal score wins when its food-set signature sorts first.
func (c *Composer) betterAttempt(score float64, assignments []core.FoodAssignment, bestScore float64, bestSig string) bool {
	if score < bestScore-scoreEpsilon {
		return true
	}
	if c.cfg.Composition.TieBreak != config.TieBreakLowestID {
		return false
	}
	if math.IsInf(score, 1) || math.Abs(score-bestScore) > scoreEpsilon {
		return false
	}
	return signature(assignments) < bestSig
}

// filterLowCarb drops carb-heavy foods when the day is carb-restricted,
// sparing low-calorie foods such as green vegetables. The filter only
// applies when enough candidates survive to build a meal.
func (c *Composer) filterLowCarb(req Request, pool []core.Food) []core.Food {
	lc := c.cfg.Composition.LowCarb
	if lc.DailyThreshold <= 0 || req.DailyCarbs <= 0 || req.DailyCarbs >= lc.DailyThreshold {
		return pool
	}

	carbCap := req.Target.Macros.Carbs * lc.FoodFraction
	kept := make([]core.Food, 0, len(pool))
	for _, f := range pool {
		if f.PerHundredGrams.Carbs > carbCap && f.PerHundredGrams.Calories >= lc.ExemptCalories {
			continue
		}
		kept = append(kept, f)
	}

	minFoods, _ := c.cfg.Composition.FoodBounds(req.Target.Slot.Type)
	if len(kept) < minFoods {
		return pool
	}
	if len(kept) < len(pool) {
		c.deps.Logger.V(logging.DEBUG).Info("low-carb filter applied",
			"dailyCarbs", req.DailyCarbs, "kept", len(kept), "dropped", len(pool)-len(kept))
	}
	return kept
}

// maybeResetVariety clears the repetition history once it covers so much of
// the pool that every remaining choice would carry the penalty.
func (c *Composer) maybeResetVariety(pool []core.Food, tracker variety.ReadRecorder) {
	unseen := 0
	for _, f := range pool {
		if !tracker.Seen(f.ID) {
			unseen++
		}
	}
	floor := c.cfg.Composition.MaxFoodsPerMeal * c.cfg.Composition.VarietyResetMultiplier
	if unseen < floor {
		c.deps.Logger.V(logging.DEBUG).Info("variety history reset", "unseen", unseen, "floor", floor)
		tracker.Reset()
	}
}

// buildGreedy selects foods one at a time, cheapest composite distance
// first, until the meal fills its calorie band or runs out of room. At most
// one staple is ever admitted.
func (c *Composer) buildGreedy(req Request, order []core.Food, tracker variety.Reader, rng *rand.Rand) []core.FoodAssignment {
	comp := &c.cfg.Composition
	minFoods, maxFoods := comp.FoodBounds(req.Target.Slot.Type)
	band := comp.StopBand
	if req.FinalMeal {
		band = comp.FinalStopBand
	}

	var selected []core.FoodAssignment
	var accumulated core.MacroProfile
	used := make(map[string]bool, maxFoods)
	stapleChosen := false

	for len(selected) < maxFoods {
		bestIdx := -1
		bestQty := 0.0
		bestScore := math.Inf(1)
		for i, f := range order {
			if used[f.ID] {
				continue
			}
			if stapleChosen && c.deps.Classifier.IsStaple(f) {
				continue
			}
			qty, score := c.scoreCandidate(req, f, selected, accumulated, tracker)
			if score < bestScore {
				bestIdx, bestQty, bestScore = i, qty, score
			}
		}
		if bestIdx < 0 || math.IsInf(bestScore, 1) {
			break
		}

		food := order[bestIdx]
		used[food.ID] = true
		selected = append(selected, core.FoodAssignment{Food: food, Quantity: bestQty})
		accumulated = accumulated.Add(food.PerHundredGrams.ForQuantity(bestQty))
		if c.deps.Classifier.IsStaple(food) {
			stapleChosen = true
		}

		if len(selected) < minFoods {
			continue
		}
		ratio := accumulated.Calories / math.Max(req.Target.Macros.Calories, 1)
		if req.FinalMeal {
			if band.Contains(ratio) {
				break
			}
		} else if band.Contains(ratio) && rng.Float64() < comp.StopChance {
			break
		}
		if ratio > band.Max {
			break
		}
	}
	return selected
}

// optimizeSwaps tries to improve a built meal by replacing individual foods
// with same-category alternatives at the same quantity. Each position sees
// at most SwapCandidates alternatives in a seeded random order; a swap is
// kept only when the whole-meal evaluation improves.
func (c *Composer) optimizeSwaps(req Request, assignments []core.FoodAssignment, pool []core.Food, rng *rand.Rand) []core.FoodAssignment {
	limit := c.cfg.Composition.SwapCandidates
	if limit == 0 || len(assignments) == 0 {
		return assignments
	}
	bestScore := c.evaluateMeal(assignments, req.Target.Macros)

	for i := range assignments {
		current := assignments[i]

		// A staple may come in only where a staple goes out.
		otherStaple := false
		for j, a := range assignments {
			if j != i && c.deps.Classifier.IsStaple(a.Food) {
				otherStaple = true
				break
			}
		}

		alternatives := make([]core.Food, 0, limit)
		for _, f := range shuffled(pool, rng) {
			if len(alternatives) == limit {
				break
			}
			if f.Category != current.Food.Category || f.ID == current.Food.ID {
				continue
			}
			if containsFood(assignments, f.ID) {
				continue
			}
			if otherStaple && c.deps.Classifier.IsStaple(f) {
				continue
			}
			alternatives = append(alternatives, f)
		}

		best := current
		for _, alt := range alternatives {
			assignments[i] = core.FoodAssignment{Food: alt, Quantity: current.Quantity}
			if score := c.evaluateMeal(assignments, req.Target.Macros); score < bestScore-scoreEpsilon {
				bestScore = score
				best = assignments[i]
			}
		}
		assignments[i] = best
	}
	return assignments
}

// refineQuantities hands the selected foods to the solver for final gram
// assignment. A failed or infeasible primary solve falls back to the descent
// solver; when both fail, or the solve keeps too few foods, the greedy
// provisional quantities stand.
func (c *Composer) refineQuantities(ctx context.Context, req Request, assignments []core.FoodAssignment, minFoods int) ([]core.FoodAssignment, error) {
	if len(assignments) == 0 {
		return assignments, nil
	}
	foods := make([]core.Food, 0, len(assignments))
	for _, a := range assignments {
		foods = append(foods, a.Food)
	}
	scfg := SolverConfig(c.cfg)

	res, err := solver.SolvePractical(ctx, c.deps.Primary, scfg, foods, req.Target.Macros)
	if err != nil || res.Status == solver.StatusInfeasible {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if c.deps.Fallback == nil {
			c.deps.Logger.V(logging.DEBUG).Info("quantity solve failed, keeping provisional quantities",
				"status", res.Status, "error", errString(err))
			return assignments, nil
		}
		c.deps.Metrics.SolverFallback()
		c.deps.Logger.V(logging.DEBUG).Info("primary solve failed, trying fallback",
			"status", res.Status, "error", errString(err))
		res, err = solver.SolvePractical(ctx, c.deps.Fallback, scfg, foods, req.Target.Macros)
		if err != nil || res.Status == solver.StatusInfeasible {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			return assignments, nil
		}
	}
	if res.Status == solver.StatusBudgetExhausted {
		c.deps.Metrics.BudgetExhausted()
	}
	if len(res.Quantities) < minFoods {
		return assignments, nil
	}

	refined := make([]core.FoodAssignment, 0, len(res.Quantities))
	for _, a := range assignments {
		qty, ok := res.Quantities[a.Food.ID]
		if !ok {
			continue
		}
		refined = append(refined, core.FoodAssignment{Food: a.Food, Quantity: qty})
	}
	return refined, nil
}

// signature is a stable identity for a food set, used by the lowest-id
// tie-break.
func signature(assignments []core.FoodAssignment) string {
	ids := make([]string, 0, len(assignments))
	for _, a := range assignments {
		ids = append(ids, a.Food.ID)
	}
	sort.Strings(ids)
	return strings.Join(ids, "|")
}

func shuffled(foods []core.Food, rng *rand.Rand) []core.Food {
	out := make([]core.Food, len(foods))
	copy(out, foods)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

func containsFood(assignments []core.FoodAssignment, id string) bool {
	for _, a := range assignments {
		if a.Food.ID == id {
			return true
		}
	}
	return false
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
