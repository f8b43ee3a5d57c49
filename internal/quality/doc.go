// Package quality rates finished meal plans after composition.
//
// The scorer is a read-only pass over a complete plan. It never alters
// meals; the engine attaches its report next to the plan so callers can
// judge and compare generation runs.
//
// Core Concepts:
//
// A QualityReport blends four axes, each scored 0-100:
//   - Nutrition: how closely daily totals track the macro targets
//   - Diversity: distinct foods per day, category coverage, repeat rate
//   - Palatability: mean pairwise food compatibility of composed meals
//   - Practicality: share of portions on kitchen-friendly multiples
//
// The composite weighs nutrition 40%, diversity 30%, palatability 20% and
// practicality 10%, then maps to a letter grade from A+ down to D. Axes
// that fall below their floor each contribute one recommendation string.
//
// The report also carries a per-day glycemic balance diagnostic: days that
// concentrate carbohydrates in few meals or carry too little fiber for
// their carb load score poorly. The diagnostic is informational and never
// fails a plan.
//
// Example usage:
//
//	scorer, err := quality.NewScorer(matrix, logger)
//	if err != nil {
//	    return err
//	}
//	report := scorer.Score(plan)
//	log.Info("plan scored",
//	    "composite", report.CompositeScore,
//	    "grade", report.Grade)
package quality
