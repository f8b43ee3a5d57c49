package core

import (
	"fmt"
	"math"
	"sort"
)

// MealPlan is the ordered collection of meals covering the full horizon.
type MealPlan struct {
	// ID uniquely identifies the generation run that produced the plan.
	ID string `json:"id"`

	// Days is the plan horizon in days.
	Days int `json:"days"`

	// Target is the daily goal the plan was generated against.
	Target NutritionTarget `json:"target"`

	// Meals holds every meal of the plan, ordered by day then slot index.
	Meals []Meal `json:"meals"`
}

// MealsForDay returns the meals of the given one-based day, ordered by slot.
func (p MealPlan) MealsForDay(day int) []Meal {
	var meals []Meal
	for _, m := range p.Meals {
		if m.Day == day {
			meals = append(meals, m)
		}
	}
	sort.SliceStable(meals, func(i, j int) bool {
		return meals[i].Target.Slot.Index < meals[j].Target.Slot.Index
	})
	return meals
}

// DayTotals sums the macros of every meal of the given day.
func (p MealPlan) DayTotals(day int) MacroProfile {
	var total MacroProfile
	for _, m := range p.Meals {
		if m.Day == day {
			total = total.Add(m.Macros())
		}
	}
	return total
}

// MacroDeviation is the relative deviation of one achieved macro from its
// daily target.
type MacroDeviation struct {
	// Macro names the deviating quantity: calories, protein, carbs or fat.
	Macro string `json:"macro"`

	// Actual is the achieved daily amount.
	Actual float64 `json:"actual"`

	// Expected is the daily target amount.
	Expected float64 `json:"expected"`

	// Deviation is |actual-expected|/expected.
	Deviation float64 `json:"deviation"`
}

// DayValidation reports how one day of the plan tracks the daily target.
type DayValidation struct {
	// Day is the one-based day index.
	Day int `json:"day"`

	// Valid is true when every macro deviation is within tolerance.
	Valid bool `json:"valid"`

	// Totals is the achieved daily macro sum.
	Totals MacroProfile `json:"totals"`

	// Deviations lists the per-macro relative deviations.
	Deviations []MacroDeviation `json:"deviations"`

	// Messages describes the macros that exceeded the tolerance.
	Messages []string `json:"messages,omitempty"`
}

// ValidateDay checks one day's totals against the plan target within the
// given relative tolerance.
func (p MealPlan) ValidateDay(day int, tolerance float64) DayValidation {
	totals := p.DayTotals(day)
	result := DayValidation{Day: day, Valid: true, Totals: totals}

	checks := []struct {
		name     string
		actual   float64
		expected float64
	}{
		{"calories", totals.Calories, p.Target.Calories},
		{"protein", totals.Protein, p.Target.Protein},
		{"carbs", totals.Carbs, p.Target.Carbs},
		{"fat", totals.Fat, p.Target.Fat},
	}
	for _, c := range checks {
		if c.expected <= 0 {
			continue
		}
		dev := math.Abs(c.actual-c.expected) / c.expected
		result.Deviations = append(result.Deviations, MacroDeviation{
			Macro:     c.name,
			Actual:    c.actual,
			Expected:  c.expected,
			Deviation: dev,
		})
		if dev > tolerance {
			result.Valid = false
			result.Messages = append(result.Messages,
				fmt.Sprintf("%s: %.1f (target %.1f, off by %.1f%%)",
					c.name, c.actual, c.expected, dev*100))
		}
	}
	return result
}

// Validate checks every day of the plan against the tolerance.
func (p MealPlan) Validate(tolerance float64) []DayValidation {
	results := make([]DayValidation, 0, p.Days)
	for day := 1; day <= p.Days; day++ {
		results = append(results, p.ValidateDay(day, tolerance))
	}
	return results
}
