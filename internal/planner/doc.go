// Package planner assembles complete meal plans from per-meal compositions.
//
// The planner sits between the engine facade and the composer: it resolves
// how a day's targets split across meal slots, walks the plan horizon day by
// day, and keeps each day's running calorie total honest by correcting the
// targets of later meals.
//
// Architecture:
//
// The planner follows a pipeline pattern:
//
//	Distribution Resolution → Day Assembly → Meal Composition
//	   (ResolveDistribution)   (Assemble)      (Composer)
//
// Assembly Flow:
//
//  1. Resolve Distribution
//     - Use the target's explicit slot fractions when present
//     - Otherwise select the preset for the target's meal count (3-6)
//     - Unsupported counts without an explicit distribution fail fast
//
//  2. Assemble Each Day
//     - Project the daily target onto each slot in order
//     - Correct non-final targets ±5 % against the accumulated calories
//     - Let the final meal absorb whatever budget remains, floored at the
//       configured minimum plausible fraction of its share
//
//  3. Compose Each Meal
//     - Delegate to the injected Composer with the corrected target
//     - Stamp identity and display name on the returned meal
//
// Parallelism:
//
// Days are composed in batches of the configured parallelism. Each day in a
// batch works on a forked variety tracker and its own seed-derived random
// source; forks are merged back in day order once the batch finishes. With
// parallelism 1 every day observes all earlier days, matching sequential
// assembly exactly; larger batches trade cross-day variety pressure inside a
// batch for throughput. For a fixed seed and configuration the output does
// not depend on goroutine scheduling.
package planner
