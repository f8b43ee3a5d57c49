package core

// FoodAssignment pairs a food with the gram quantity the meal serves.
type FoodAssignment struct {
	// Food is the catalog entry the quantity applies to.
	Food Food `json:"food"`

	// Quantity is the portion size in grams.
	Quantity float64 `json:"quantity"`
}

// Macros recomputes the absolute amounts this assignment provides from the
// food's per-100g profile.
func (a FoodAssignment) Macros() MacroProfile {
	return a.Food.PerHundredGrams.ForQuantity(a.Quantity)
}

// Meal is one composed meal of a plan.
type Meal struct {
	// ID uniquely identifies the meal within its plan.
	ID string `json:"id"`

	// Name is a human-readable label, e.g. "Lunch - day 2".
	Name string `json:"name"`

	// Type is the meal slot kind.
	Type MealType `json:"type"`

	// Day is the one-based day index the meal belongs to.
	Day int `json:"day"`

	// Assignments lists the foods and quantities the meal serves.
	Assignments []FoodAssignment `json:"assignments"`

	// Target is the projected goal the meal was composed against.
	Target MealTarget `json:"target"`
}

// Macros sums the absolute amounts of every assignment.
func (m Meal) Macros() MacroProfile {
	var total MacroProfile
	for _, a := range m.Assignments {
		total = total.Add(a.Macros())
	}
	return total
}

// Weight returns the total gram weight of the meal.
func (m Meal) Weight() float64 {
	var w float64
	for _, a := range m.Assignments {
		w += a.Quantity
	}
	return w
}

// FoodCount returns the number of assignments in the meal.
func (m Meal) FoodCount() int {
	return len(m.Assignments)
}

// Contains reports whether the meal already serves the given food ID.
func (m Meal) Contains(foodID string) bool {
	for _, a := range m.Assignments {
		if a.Food.ID == foodID {
			return true
		}
	}
	return false
}
