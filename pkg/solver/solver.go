package solver

import (
	"context"
	"fmt"
	"math"

	"github.com/Virtus-Training/Plans-alimentaires/pkg/core"
)

// Strategy selects the quantity solving algorithm.
type Strategy string

const (
	// StrategyExact solves a linear program over continuous quantities.
	StrategyExact Strategy = "exact"

	// StrategyDescent runs coordinate descent over practical increments.
	StrategyDescent Strategy = "descent"
)

// Status reports how a solve ended.
type Status string

const (
	// StatusOptimal means the solver converged on its best solution.
	StatusOptimal Status = "optimal"

	// StatusInfeasible means no solution exists for the given foods.
	StatusInfeasible Status = "infeasible"

	// StatusBudgetExhausted means the iteration budget ran out and the
	// result carries the best solution found so far.
	StatusBudgetExhausted Status = "budget-exhausted"
)

// Weights weighs per-macro deviations in the solve objective.
type Weights struct {
	Calories float64
	Protein  float64
	Carbs    float64
	Fat      float64
}

// Config bounds and weighs a solver.
type Config struct {
	// MinQuantity is the smallest practical portion, in grams. Solved
	// quantities below it are dropped by SolvePractical.
	MinQuantity float64

	// MaxQuantity is the largest portion of one food, in grams.
	MaxQuantity float64

	// Tolerance caps the relative calorie and protein deviation in the
	// exact strategy. Relaxed stepwise when it makes the program
	// infeasible. Zero disables the caps.
	Tolerance float64

	// MaxIterations bounds the descent strategy's search.
	MaxIterations int

	// Weights weighs per-macro deviations in the objective.
	Weights Weights
}

// DefaultConfig returns the solver defaults.
func DefaultConfig() Config {
	return Config{
		MinQuantity:   10,
		MaxQuantity:   500,
		Tolerance:     0.10,
		MaxIterations: 400,
		Weights:       Weights{Calories: 2.0, Protein: 2.5, Carbs: 1.0, Fat: 1.2},
	}
}

// Validate checks for invalid solver configuration.
func (c Config) Validate() error {
	if c.MinQuantity <= 0 {
		return fmt.Errorf("minQuantity must be > 0, got %.1f", c.MinQuantity)
	}
	if c.MaxQuantity <= c.MinQuantity {
		return fmt.Errorf("maxQuantity (%.1f) must be > minQuantity (%.1f)", c.MaxQuantity, c.MinQuantity)
	}
	if c.Tolerance < 0 || c.Tolerance >= 1 {
		return fmt.Errorf("tolerance must be in [0, 1), got %.2f", c.Tolerance)
	}
	if c.MaxIterations < 1 {
		return fmt.Errorf("maxIterations must be >= 1, got %d", c.MaxIterations)
	}
	if c.Weights.Calories < 0 || c.Weights.Protein < 0 || c.Weights.Carbs < 0 || c.Weights.Fat < 0 {
		return fmt.Errorf("weights must not be negative")
	}
	if c.Weights.Calories+c.Weights.Protein+c.Weights.Carbs+c.Weights.Fat <= 0 {
		return fmt.Errorf("at least one weight must be positive")
	}
	return nil
}

// Result is the outcome of one solve.
type Result struct {
	// Quantities maps food ID to the solved portion in grams. Foods the
	// solver deselected are absent.
	Quantities map[string]float64

	// Achieved is the macro total the quantities provide.
	Achieved core.MacroProfile

	// Objective is the objective value of the continuous solution. Practical
	// rounding perturbs the achieved macros but not this figure.
	Objective float64

	// Status reports how the solve ended.
	Status Status

	// Iterations counts solver steps, including relaxation re-solves.
	Iterations int
}

// Solver assigns gram quantities to a fixed set of foods so their macro
// total approaches the target.
type Solver interface {
	// Solve computes quantities for the given foods. Infeasibility is
	// reported through Result.Status, not the error; the error is reserved
	// for invalid input and context cancellation.
	Solve(ctx context.Context, foods []core.Food, target core.MacroProfile) (Result, error)
}

// New builds a solver for the strategy.
func New(strategy Strategy, cfg Config) (Solver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid solver config: %w", err)
	}
	switch strategy {
	case StrategyExact:
		return &exactSolver{cfg: cfg}, nil
	case StrategyDescent:
		return &descentSolver{cfg: cfg}, nil
	default:
		return nil, fmt.Errorf("unknown solver strategy %q", strategy)
	}
}

// SolvePractical solves, rounds every quantity to a practical portion and
// drops foods that fall below the minimum, re-solving over the smaller set
// until the assignment is stable.
func SolvePractical(ctx context.Context, s Solver, cfg Config, foods []core.Food, target core.MacroProfile) (Result, error) {
	remaining := foods
	for {
		res, err := s.Solve(ctx, remaining, target)
		if err != nil {
			return Result{}, err
		}
		if res.Status == StatusInfeasible {
			return res, nil
		}

		kept := make([]core.Food, 0, len(remaining))
		rounded := make(map[string]float64, len(remaining))
		dropped := false
		for _, f := range remaining {
			q := RoundQuantity(res.Quantities[f.ID])
			if q < cfg.MinQuantity {
				dropped = true
				continue
			}
			q = math.Max(q, MinimumQuantity(f))
			q = math.Min(q, math.Min(MaximumQuantity(f), cfg.MaxQuantity))
			kept = append(kept, f)
			rounded[f.ID] = q
		}
		if len(kept) == 0 {
			res.Status = StatusInfeasible
			res.Quantities = nil
			res.Achieved = core.MacroProfile{}
			return res, nil
		}
		if !dropped {
			res.Quantities = rounded
			res.Achieved = achievedMacros(kept, rounded)
			return res, nil
		}
		remaining = kept
	}
}

func achievedMacros(foods []core.Food, quantities map[string]float64) core.MacroProfile {
	var total core.MacroProfile
	for _, f := range foods {
		total = total.Add(f.PerHundredGrams.ForQuantity(quantities[f.ID]))
	}
	return total
}

// normalizer keeps relative deviations meaningful for zero targets.
func normalizer(target float64) float64 {
	return math.Max(target, 1)
}
