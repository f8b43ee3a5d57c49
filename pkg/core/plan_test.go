package core

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func makeTwoDayPlan() MealPlan {
	rice := Food{
		ID: "rice", Name: "Rice, cooked", Category: CategoryStarch,
		PerHundredGrams: MacroProfile{Calories: 130, Protein: 2.7, Carbs: 28, Fat: 0.3},
	}
	chicken := Food{
		ID: "chicken", Name: "Chicken breast", Category: CategoryMeat,
		PerHundredGrams: MacroProfile{Calories: 165, Protein: 31, Fat: 3.6},
	}

	return MealPlan{
		ID:   "plan-1",
		Days: 2,
		Target: NutritionTarget{
			Calories: 600, Protein: 60, Carbs: 60, Fat: 15,
			MealCount: 2, DurationDays: 2,
		},
		Meals: []Meal{
			{
				ID: "m1", Type: MealDinner, Day: 1,
				Target:      MealTarget{Slot: MealSlot{Index: 1, Type: MealDinner}},
				Assignments: []FoodAssignment{{Food: chicken, Quantity: 100}},
			},
			{
				ID: "m0", Type: MealLunch, Day: 1,
				Target:      MealTarget{Slot: MealSlot{Index: 0, Type: MealLunch}},
				Assignments: []FoodAssignment{{Food: rice, Quantity: 200}},
			},
			{
				ID: "m2", Type: MealLunch, Day: 2,
				Target:      MealTarget{Slot: MealSlot{Index: 0, Type: MealLunch}},
				Assignments: []FoodAssignment{{Food: rice, Quantity: 100}, {Food: chicken, Quantity: 150}},
			},
		},
	}
}

func TestMealsForDayOrdersBySlot(t *testing.T) {
	plan := makeTwoDayPlan()

	day1 := plan.MealsForDay(1)
	assert.Len(t, day1, 2)
	assert.Equal(t, "m0", day1[0].ID)
	assert.Equal(t, "m1", day1[1].ID)

	assert.Len(t, plan.MealsForDay(2), 1)
	assert.Empty(t, plan.MealsForDay(3))
}

func TestDayTotalsMatchAssignmentSums(t *testing.T) {
	plan := makeTwoDayPlan()

	// Recompute by hand from per-100g profiles.
	want := MacroProfile{
		Calories: 130*2 + 165,
		Protein:  2.7*2 + 31,
		Carbs:    28 * 2,
		Fat:      0.3*2 + 3.6,
	}
	got := plan.DayTotals(1)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("day totals mismatch (-want +got):\n%s", diff)
	}
}

func TestValidateDay(t *testing.T) {
	plan := makeTwoDayPlan()

	// Day 1 serves 425 kcal against a 600 kcal target: far outside 5%.
	res := plan.ValidateDay(1, 0.05)
	assert.False(t, res.Valid)
	assert.NotEmpty(t, res.Messages)
	assert.Len(t, res.Deviations, 4)

	// A generous tolerance accepts the same day.
	loose := plan.ValidateDay(1, 0.50)
	assert.True(t, loose.Valid)
	assert.Empty(t, loose.Messages)
}

func TestValidateCoversEveryDay(t *testing.T) {
	plan := makeTwoDayPlan()
	results := plan.Validate(0.10)
	assert.Len(t, results, 2)
	assert.Equal(t, 1, results[0].Day)
	assert.Equal(t, 2, results[1].Day)
}

func TestMealAccessors(t *testing.T) {
	plan := makeTwoDayPlan()
	meal := plan.MealsForDay(2)[0]

	assert.Equal(t, 2, meal.FoodCount())
	assert.InDelta(t, 250, meal.Weight(), 1e-9)
	assert.True(t, meal.Contains("rice"))
	assert.False(t, meal.Contains("salmon"))

	macros := meal.Macros()
	assert.InDelta(t, 130+165*1.5, macros.Calories, 1e-9)
}
