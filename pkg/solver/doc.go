// Package solver implements quantity optimization for composed meals.
//
// The solver package contains algorithms that assign gram quantities to a
// fixed set of foods so the meal's macro totals approach a target while
// staying within practical portion bounds.
//
// Key Components:
//
//   - Solver: Abstract solver interface selected by strategy
//   - StrategyExact: Linear program over continuous quantities
//   - StrategyDescent: Coordinate descent over practical increments
//   - SolvePractical: Rounding pipeline with drop-and-resolve
//
// Solving Strategy:
//
// The exact strategy builds a standard-form linear program:
//  1. Variables are per-food quantities, range slacks and signed macro
//     deviation pairs
//  2. The objective minimizes target-normalized weighted L1 deviations
//  3. Calorie and protein deviations are capped at the tolerance
//  4. Infeasible caps are relaxed stepwise, ending with an uncapped
//     best-effort solve
//
// The descent strategy starts from a calorie-proportional assignment and
// walks one practical increment at a time until no single-food move
// improves the weighted squared relative error, or the iteration budget
// runs out.
//
// Example usage:
//
//	// Create a solver for the configured strategy
//	s, err := solver.New(solver.StrategyExact, solver.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//
//	// Solve and round to practical portions
//	result, err := solver.SolvePractical(ctx, s, cfg, foods, target)
//	if err != nil {
//	    return err
//	}
//	if result.Status == solver.StatusInfeasible {
//	    // fall back or report
//	}
//
//	for id, grams := range result.Quantities {
//	    log.Info("portion", "food", id, "grams", grams)
//	}
//
// The solver is designed to be:
//   - Fast: Sub-second solves for typical meal sizes
//   - Deterministic: Same inputs produce same outputs
//   - Forgiving: Infeasibility degrades to typed statuses, never panics
//   - Extensible: Interface-based for future strategies
package solver
