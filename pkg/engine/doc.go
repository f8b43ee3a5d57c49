// Package engine exposes the meal composition engine behind a single facade.
//
// An Engine owns the full pipeline: food classification, the compatibility
// matrix, the quantity solvers, the per-meal composer, the plan assembler and
// the quality scorer. Callers hand it a daily nutrition target and a food
// catalog; it hands back a complete meal plan and a quality report.
//
// Generation Flow:
//
//  1. Validate
//     - Check the target's structure (positive calories, meal count, ...)
//     - Cross-check stated calories against the macro-implied figure
//       (TargetInconsistentError on disagreement beyond the tolerance)
//
//  2. Filter
//     - Keep only catalog foods carrying every requested dietary tag
//     - Fail with CatalogTooSmallError when fewer foods remain than one
//       meal requires
//
//  3. Assemble
//     - Run the planner over the plan horizon with a fresh variety tracker
//     - Seed the run from WithSeed when pinned, from the clock otherwise
//
//  4. Score
//     - Grade nutrition, diversity, palatability and practicality
//     - Attach the per-day glycemic balance diagnostic
//
// Solver infeasibility and iteration-budget exhaustion never surface here;
// the composer recovers from both and the engine reports them only through
// metrics and debug logs.
//
// Example usage:
//
//	eng, err := engine.New(nil, engine.WithSeed(42))
//	if err != nil {
//		return err
//	}
//	target := core.NutritionTarget{
//		Calories: 2200, Protein: 150, Carbs: 220, Fat: 70,
//		MealCount: 4, DurationDays: 7,
//	}
//	plan, report, err := eng.GeneratePlan(ctx, target, catalog)
//	if err != nil {
//		return err
//	}
//	fmt.Println(report.Grade, report.CompositeScore)
package engine
