package core

import (
	"fmt"
	"math"
)

// MealType identifies the kind of meal a slot represents.
type MealType string

// Supported meal types.
const (
	MealBreakfast      MealType = "breakfast"
	MealMorningSnack   MealType = "morning-snack"
	MealLunch          MealType = "lunch"
	MealAfternoonSnack MealType = "afternoon-snack"
	MealDinner         MealType = "dinner"
	MealEveningSnack   MealType = "evening-snack"
)

// IsSnack reports whether the meal type is one of the snack slots.
func (t MealType) IsSnack() bool {
	switch t {
	case MealMorningSnack, MealAfternoonSnack, MealEveningSnack:
		return true
	}
	return false
}

// MealSlot is one position in a day's meal sequence.
type MealSlot struct {
	// Index is the zero-based position of the slot within the day.
	Index int `json:"index"`

	// Type is the kind of meal served in this slot.
	Type MealType `json:"type"`

	// Fraction is the share of the daily targets assigned to this slot.
	Fraction float64 `json:"fraction"`
}

// distributionEpsilon is the allowed drift of the fraction sum from 1.0.
const distributionEpsilon = 0.01

// NutritionTarget is the daily goal a plan is generated against. It is
// created by the caller and never mutated by the engine.
type NutritionTarget struct {
	// Calories is the daily calorie goal in kcal.
	Calories float64 `json:"calories"`

	// Protein is the daily protein goal in grams.
	Protein float64 `json:"protein"`

	// Carbs is the daily carbohydrate goal in grams.
	Carbs float64 `json:"carbs"`

	// Fat is the daily fat goal in grams.
	Fat float64 `json:"fat"`

	// MealCount is the number of meals per day.
	MealCount int `json:"mealCount"`

	// Distribution optionally fixes the per-slot share of the daily targets.
	// When empty, the engine resolves a preset for MealCount. When set, the
	// fractions must sum to 1 within a small epsilon.
	Distribution []MealSlot `json:"distribution,omitempty"`

	// Preferences restricts the catalog to foods carrying every listed tag.
	Preferences []DietTag `json:"preferences,omitempty"`

	// DurationDays is the plan horizon. Zero means one day.
	DurationDays int `json:"durationDays"`
}

// Macros returns the daily goal as an absolute MacroProfile.
func (t NutritionTarget) Macros() MacroProfile {
	return MacroProfile{
		Calories: t.Calories,
		Protein:  t.Protein,
		Carbs:    t.Carbs,
		Fat:      t.Fat,
	}
}

// Days returns the plan horizon, treating zero as a single day.
func (t NutritionTarget) Days() int {
	if t.DurationDays <= 0 {
		return 1
	}
	return t.DurationDays
}

// Validate checks the target's structural invariants. Macro/calorie coherence
// is checked separately by the engine against its configured tolerance.
func (t NutritionTarget) Validate() error {
	if t.Calories <= 0 {
		return fmt.Errorf("target calories must be positive, got %.1f", t.Calories)
	}
	if t.Protein < 0 || t.Carbs < 0 || t.Fat < 0 {
		return fmt.Errorf("macro targets must not be negative")
	}
	if t.MealCount < 1 {
		return fmt.Errorf("meal count must be at least 1, got %d", t.MealCount)
	}
	if t.DurationDays < 0 {
		return fmt.Errorf("duration must not be negative, got %d days", t.DurationDays)
	}
	if len(t.Distribution) > 0 {
		if len(t.Distribution) != t.MealCount {
			return fmt.Errorf("distribution has %d slots but meal count is %d",
				len(t.Distribution), t.MealCount)
		}
		sum := 0.0
		for _, slot := range t.Distribution {
			if slot.Fraction <= 0 {
				return fmt.Errorf("distribution fraction for slot %d must be positive", slot.Index)
			}
			sum += slot.Fraction
		}
		if math.Abs(sum-1.0) > distributionEpsilon {
			return fmt.Errorf("distribution fractions sum to %.3f, want 1.0", sum)
		}
	}
	return nil
}

// ForMeal projects the daily target onto one slot.
func (t NutritionTarget) ForMeal(slot MealSlot) MealTarget {
	return MealTarget{
		Macros: t.Macros().Scale(slot.Fraction),
		Slot:   slot,
	}
}

// MealTarget is a NutritionTarget projected onto one meal. Derived and
// ephemeral; composition adjusts it, the caller never sees it.
type MealTarget struct {
	// Macros holds the absolute amounts this meal should provide.
	Macros MacroProfile `json:"macros"`

	// Slot is the day position the target belongs to.
	Slot MealSlot `json:"slot"`
}
