package planner

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"github.com/go-logr/logr"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/Virtus-Training/Plans-alimentaires/internal/engines/composer"
	"github.com/Virtus-Training/Plans-alimentaires/internal/logging"
	"github.com/Virtus-Training/Plans-alimentaires/internal/variety"
	"github.com/Virtus-Training/Plans-alimentaires/pkg/config"
	"github.com/Virtus-Training/Plans-alimentaires/pkg/core"
)

// Target correction applied to non-final meals against the day's accumulated
// calories. A day running over budget shrinks the next meal slightly; a day
// behind by more than behindThreshold of the meal's expected share grows it.
const (
	overBudgetScale = 0.95
	behindScale     = 1.05
	behindThreshold = 0.10
)

// Composer composes one meal against its corrected target. Satisfied by
// *composer.Composer.
type Composer interface {
	Compose(ctx context.Context, req composer.Request, pool []core.Food, tracker variety.ReadRecorder, rng *rand.Rand) (core.Meal, error)
}

// Planner assembles every meal of a plan horizon, one corrected slot at a
// time. A Planner is immutable after construction and safe for concurrent
// use; mutable state lives in the tracker passed to Assemble.
type Planner struct {
	cfg      *config.EngineConfig
	composer Composer
	logger   logr.Logger
}

// New builds a Planner from the configuration and the meal composer.
func New(cfg *config.EngineConfig, comp Composer, logger logr.Logger) (*Planner, error) {
	if cfg == nil {
		return nil, fmt.Errorf("planner requires a configuration")
	}
	if comp == nil {
		return nil, fmt.Errorf("planner requires a composer")
	}
	if logger.GetSink() == nil {
		logger = logging.Log
	}
	return &Planner{cfg: cfg, composer: comp, logger: logger}, nil
}

// Assemble composes every meal of the target's horizon and returns them
// ordered by day, then slot. Days are processed in batches of the configured
// parallelism; each day in a batch works on a forked tracker and a
// seed-derived random source, and forks merge back in day order, so the
// result is the same for a given seed no matter how goroutines are scheduled.
func (p *Planner) Assemble(ctx context.Context, target core.NutritionTarget, pool []core.Food, tracker *variety.Tracker, seed int64) ([]core.Meal, error) {
	slots, err := ResolveDistribution(target)
	if err != nil {
		return nil, err
	}

	days := target.Days()
	batch := p.cfg.Parallelism
	if batch < 1 {
		batch = 1
	}

	meals := make([]core.Meal, 0, days*len(slots))
	for start := 1; start <= days; start += batch {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		end := start + batch - 1
		if end > days {
			end = days
		}

		if start == end {
			dayMeals, err := p.assembleDay(ctx, target, slots, pool, tracker, dayRNG(seed, start), start)
			if err != nil {
				return nil, err
			}
			meals = append(meals, dayMeals...)
			continue
		}

		forks := make([]*variety.Tracker, end-start+1)
		results := make([][]core.Meal, end-start+1)
		g, gctx := errgroup.WithContext(ctx)
		for day := start; day <= end; day++ {
			i := day - start
			forks[i] = tracker.Fork()
			g.Go(func() error {
				dayMeals, err := p.assembleDay(gctx, target, slots, pool, forks[i], dayRNG(seed, day), day)
				if err != nil {
					return err
				}
				results[i] = dayMeals
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
		for i := range results {
			meals = append(meals, results[i]...)
			tracker.Merge(forks[i])
		}
	}
	return meals, nil
}

// assembleDay composes one day's slots in order, correcting each slot's
// target against the calories composed so far.
func (p *Planner) assembleDay(ctx context.Context, target core.NutritionTarget, slots []core.MealSlot, pool []core.Food, tracker variety.ReadRecorder, rng *rand.Rand, day int) ([]core.Meal, error) {
	meals := make([]core.Meal, 0, len(slots))
	accumulated := 0.0
	consumedShare := 0.0

	for i, slot := range slots {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		final := i == len(slots)-1
		req := composer.Request{
			Target:     p.correctedTarget(target, slot, accumulated, consumedShare, final),
			Day:        day,
			FinalMeal:  final,
			DailyCarbs: target.Carbs,
		}
		meal, err := p.composer.Compose(ctx, req, pool, tracker, rng)
		if err != nil {
			return nil, err
		}
		meal.ID = mealID(rng)
		meal.Name = mealName(slot.Type, day)
		meals = append(meals, meal)

		accumulated += meal.Macros().Calories
		consumedShare += slot.Fraction
	}

	p.logger.V(logging.DEBUG).Info("assembled day",
		"day", day, "meals", len(meals),
		"calories", accumulated, "targetCalories", target.Calories)
	return meals, nil
}

// correctedTarget projects the daily target onto one slot and corrects it for
// the drift accumulated over the day so far. The final meal absorbs whatever
// calorie budget remains, scaled onto its macros and floored at the minimum
// plausible fraction of its distributed share; earlier meals shrink or grow
// by five percent when the day runs over or notably behind.
func (p *Planner) correctedTarget(target core.NutritionTarget, slot core.MealSlot, accumulated, consumedShare float64, final bool) core.MealTarget {
	projected := target.ForMeal(slot)
	expected := target.Calories * slot.Fraction

	if final {
		remaining := math.Max(0, target.Calories-accumulated)
		if floor := p.cfg.Composition.MinMealFraction * expected; remaining < floor {
			remaining = floor
		}
		if expected > 0 {
			projected.Macros = projected.Macros.Scale(remaining / expected)
		}
		return projected
	}

	deviation := accumulated - target.Calories*consumedShare
	switch {
	case deviation > 0:
		projected.Macros = projected.Macros.Scale(overBudgetScale)
	case deviation < -behindThreshold*expected:
		projected.Macros = projected.Macros.Scale(behindScale)
	}
	return projected
}

// dayRNG derives the random source for one day of the plan. Every day gets
// its own stream so batches compose identically whether run sequentially or
// concurrently.
func dayRNG(seed int64, day int) *rand.Rand {
	return rand.New(rand.NewSource(seed + int64(day)))
}

// mealID draws a meal identifier from the day's random stream, keeping plan
// output reproducible for a seed.
func mealID(rng *rand.Rand) string {
	id, err := uuid.NewRandomFromReader(rng)
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

var mealDisplayNames = map[core.MealType]string{
	core.MealBreakfast:      "Breakfast",
	core.MealMorningSnack:   "Morning snack",
	core.MealLunch:          "Lunch",
	core.MealAfternoonSnack: "Afternoon snack",
	core.MealDinner:         "Dinner",
	core.MealEveningSnack:   "Evening snack",
}

func mealName(t core.MealType, day int) string {
	name, ok := mealDisplayNames[t]
	if !ok {
		name = string(t)
	}
	return fmt.Sprintf("%s - day %d", name, day)
}
