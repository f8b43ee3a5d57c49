package solver

import (
	"context"
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"

	"github.com/Virtus-Training/Plans-alimentaires/internal/logging"
	"github.com/Virtus-Training/Plans-alimentaires/pkg/core"
)

// relaxedTolerance is the intermediate rung between the configured
// tolerance caps and solving uncapped.
const relaxedTolerance = 0.20

// exactSolver solves the quantity assignment as a linear program in
// standard form: per-food quantities with range slacks, plus one signed
// deviation pair per macro. The objective minimizes the target-normalized
// weighted L1 deviation. Calorie and protein deviations are capped at the
// configured tolerance; infeasible caps are relaxed stepwise, ending with
// an uncapped best-effort solve.
type exactSolver struct {
	cfg Config
}

func (s *exactSolver) Solve(ctx context.Context, foods []core.Food, target core.MacroProfile) (Result, error) {
	if len(foods) == 0 {
		return Result{}, fmt.Errorf("no foods to solve for")
	}

	res := Result{Status: StatusInfeasible}
	rungs := s.relaxationRungs()
	for _, rung := range rungs {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		res.Iterations++

		quantities, objective, err := s.solveOnce(foods, target, rung)
		if err != nil {
			if errors.Is(err, lp.ErrInfeasible) {
				continue
			}
			logging.Log.V(logging.DEBUG).Info("exact solve failed", "foods", len(foods), "error", err.Error())
			return res, nil
		}
		if rung != rungs[0] {
			logging.Log.V(logging.DEBUG).Info("tolerance caps relaxed", "cap", rung)
		}
		res.Quantities = quantities
		res.Achieved = achievedMacros(foods, quantities)
		res.Objective = objective
		res.Status = StatusOptimal
		return res, nil
	}
	return res, nil
}

// relaxationRungs returns the deviation caps to try in order. Zero means
// uncapped and is always the last rung.
func (s *exactSolver) relaxationRungs() []float64 {
	if s.cfg.Tolerance <= 0 {
		return []float64{0}
	}
	rungs := []float64{s.cfg.Tolerance}
	if s.cfg.Tolerance < relaxedTolerance {
		rungs = append(rungs, relaxedTolerance)
	}
	return append(rungs, 0)
}

// solveOnce builds and solves the standard-form program for one deviation
// cap. The variable layout for n foods is:
//
//	[0, n)       food quantities in grams
//	[n, 2n)      range slacks (quantity + slack = max quantity)
//	[2n, 2n+8)   deviation pairs d+, d- per macro (cal, protein, carbs, fat)
//	[2n+8, ...)  cap slacks for the calorie and protein deviations
func (s *exactSolver) solveOnce(foods []core.Food, target core.MacroProfile, rung float64) (map[string]float64, float64, error) {
	n := len(foods)
	capped := rung > 0

	vars := 2*n + 8
	rows := n + 4
	if capped {
		vars += 4
		rows += 4
	}

	targets := [4]float64{target.Calories, target.Protein, target.Carbs, target.Fat}
	weights := [4]float64{s.cfg.Weights.Calories, s.cfg.Weights.Protein, s.cfg.Weights.Carbs, s.cfg.Weights.Fat}

	c := make([]float64, vars)
	b := make([]float64, rows)
	a := mat.NewDense(rows, vars, nil)

	for i, f := range foods {
		a.Set(i, i, 1)
		a.Set(i, n+i, 1)
		b[i] = s.cfg.MaxQuantity

		per := [4]float64{
			f.PerHundredGrams.Calories,
			f.PerHundredGrams.Protein,
			f.PerHundredGrams.Carbs,
			f.PerHundredGrams.Fat,
		}
		for j := 0; j < 4; j++ {
			a.Set(n+j, i, per[j]/100.0)
		}
	}

	for j := 0; j < 4; j++ {
		plus, minus := 2*n+2*j, 2*n+2*j+1
		a.Set(n+j, plus, -1)
		a.Set(n+j, minus, 1)
		b[n+j] = targets[j]

		cost := weights[j] / normalizer(targets[j])
		c[plus], c[minus] = cost, cost
	}

	if capped {
		// One row per capped deviation variable: both signs of the calorie
		// and protein deviations stay within rung x target.
		for k := 0; k < 4; k++ {
			row := n + 4 + k
			a.Set(row, 2*n+k, 1)
			a.Set(row, 2*n+8+k, 1)
			b[row] = rung * targets[k/2]
		}
	}

	objective, x, err := lp.Simplex(c, a, b, 1e-10, nil)
	if err != nil {
		return nil, 0, err
	}

	quantities := make(map[string]float64, n)
	for i, f := range foods {
		q := math.Min(math.Max(x[i], 0), s.cfg.MaxQuantity)
		if q < 1e-9 {
			continue
		}
		quantities[f.ID] = q
	}
	return quantities, objective, nil
}
