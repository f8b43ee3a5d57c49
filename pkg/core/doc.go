// Package core provides the fundamental data structures for the meal
// composition engine.
//
// This package contains the domain models that represent the entities and
// relationships in the planning system:
//
//   - Food: catalog entries with per-100g macro profiles, pricing and indexes
//   - NutritionTarget: daily macro goals with meal distribution fractions
//   - MealTarget: a NutritionTarget projected onto a single meal
//   - FoodAssignment: a food paired with a gram quantity
//   - Meal / MealPlan: composed meals and the multi-day plan they form
//   - QualityReport: post-hoc evaluation of a finished plan
//
// These types form the foundation for the composition algorithms in the
// composer and solver packages and are used throughout the engine for
// decision-making.
//
// Example usage:
//
//	// Define a food from the external catalog
//	chicken := core.Food{
//		ID:       "chicken-breast",
//		Name:     "Chicken breast",
//		Category: core.CategoryMeat,
//		PerHundredGrams: core.MacroProfile{
//			Calories: 165, Protein: 31, Carbs: 0, Fat: 3.6,
//		},
//	}
//
//	// Define a daily target for a 3-meal plan
//	target := core.NutritionTarget{
//		Calories: 2000, Protein: 150, Carbs: 200, Fat: 65,
//		MealCount:    3,
//		DurationDays: 7,
//	}
//
//	// Recompute the macros a 150g portion provides
//	macros := chicken.PerHundredGrams.ForQuantity(150)
//
// The core package is designed to be:
//   - Immutable where possible (value types)
//   - Type-safe with strong domain boundaries
//   - Independent of the composition machinery (pure domain logic)
//   - Well-tested with comprehensive unit tests
package core
