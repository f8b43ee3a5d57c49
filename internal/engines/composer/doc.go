// Package composer selects the foods of one meal and assigns them portions.
//
// The composer is the heart of plan generation: given a meal target and a
// candidate pool, it builds a meal that approaches the target while staying
// culinarily plausible, then hands the selected foods to the quantity solver
// for final gram assignment.
//
// Key Components:
//
//   - Composer: Stateless orchestrator of the per-meal pipeline
//   - Request: One meal's target, day position and carb context
//   - Deps: Injected classifier, matrix, calendar, solvers, metrics
//
// Composition Pipeline:
//
//  1. Low-carb filter: carb-restricted days drop carb-heavy candidates,
//     sparing low-calorie vegetables
//  2. Variety check: the repetition history resets once it covers most of
//     the pool
//  3. Greedy construction: candidates are scored at a plausible quantity
//     and added cheapest-first until the calorie band is reached; a second
//     staple is never admitted
//  4. Swap optimization: each selected food tries a bounded number of
//     same-category alternatives at the same quantity
//  5. Quantity refinement: the solver reassigns grams; infeasible solves
//     fall back to the descent solver, then to the greedy quantities
//
// The pipeline runs several attempts with reshuffled candidate order and
// keeps the best by whole-meal evaluation. All randomness flows through the
// injected *rand.Rand, so a fixed seed reproduces the same meal.
//
// Candidate Scoring:
//
// Each candidate's score is a weighted blend of six distances: macro fit,
// price, health, variety, compatibility with the foods already selected, and
// meal-type coherence. Overshooting the target inflates the score through
// convex multiplier ladders, so the greedy loop brakes hard as the meal
// fills up.
package composer
