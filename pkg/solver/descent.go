package solver

import (
	"context"
	"fmt"
	"math"

	"github.com/Virtus-Training/Plans-alimentaires/pkg/core"
)

// descentSolver runs coordinate descent over practical increments starting
// from a calorie-proportional assignment. Each coordinate visit tries one
// increment up and one down and keeps the best strict improvement; a full
// pass with no improvement means convergence. Quantities stay on the
// practical lattice throughout.
type descentSolver struct {
	cfg Config
}

func (s *descentSolver) Solve(ctx context.Context, foods []core.Food, target core.MacroProfile) (Result, error) {
	if len(foods) == 0 {
		return Result{}, fmt.Errorf("no foods to solve for")
	}

	q := s.start(foods, target)
	best := s.objective(foods, q, target)
	iterations := 0

	for {
		improved := false
		for i := range foods {
			if err := ctx.Err(); err != nil {
				return Result{}, err
			}
			if iterations >= s.cfg.MaxIterations {
				return s.result(foods, q, best, StatusBudgetExhausted, iterations), nil
			}
			iterations++

			base := q[i]
			step := Increment(base)
			chosen := base
			for _, candidate := range []float64{base + step, base - step} {
				candidate = math.Max(0, math.Min(candidate, s.cfg.MaxQuantity))
				if candidate == base {
					continue
				}
				q[i] = candidate
				if score := s.objective(foods, q, target); score < best-1e-12 {
					best = score
					chosen = candidate
				}
			}
			q[i] = chosen
			if chosen != base {
				improved = true
			}
		}
		if !improved {
			return s.result(foods, q, best, StatusOptimal, iterations), nil
		}
	}
}

// start assigns every food an equal share of the calorie target, snapped to
// the practical lattice.
func (s *descentSolver) start(foods []core.Food, target core.MacroProfile) []float64 {
	q := make([]float64, len(foods))
	share := target.Calories / float64(len(foods))
	for i, f := range foods {
		cal := f.PerHundredGrams.Calories
		if cal <= 0 {
			q[i] = RoundQuantity(s.cfg.MinQuantity)
			continue
		}
		grams := RoundQuantity(share / cal * 100)
		q[i] = math.Max(s.cfg.MinQuantity, math.Min(grams, s.cfg.MaxQuantity))
	}
	return q
}

func (s *descentSolver) objective(foods []core.Food, q []float64, target core.MacroProfile) float64 {
	var achieved core.MacroProfile
	for i, f := range foods {
		achieved = achieved.Add(f.PerHundredGrams.ForQuantity(q[i]))
	}

	score := 0.0
	for _, term := range []struct {
		weight, achieved, target float64
	}{
		{s.cfg.Weights.Calories, achieved.Calories, target.Calories},
		{s.cfg.Weights.Protein, achieved.Protein, target.Protein},
		{s.cfg.Weights.Carbs, achieved.Carbs, target.Carbs},
		{s.cfg.Weights.Fat, achieved.Fat, target.Fat},
	} {
		dev := (term.achieved - term.target) / normalizer(term.target)
		score += term.weight * dev * dev
	}
	return score
}

func (s *descentSolver) result(foods []core.Food, q []float64, objective float64, status Status, iterations int) Result {
	quantities := make(map[string]float64, len(foods))
	for i, f := range foods {
		if q[i] <= 0 {
			continue
		}
		quantities[f.ID] = q[i]
	}
	return Result{
		Quantities: quantities,
		Achieved:   achievedMacros(foods, quantities),
		Objective:  objective,
		Status:     status,
		Iterations: iterations,
	}
}
