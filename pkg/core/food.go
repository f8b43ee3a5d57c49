package core

import (
	"fmt"
	"math"
	"strings"
)

// Calories contributed by one gram of each macro-nutrient.
const (
	CaloriesPerGramProtein = 4.0
	CaloriesPerGramCarbs   = 4.0
	CaloriesPerGramFat     = 9.0
)

// FoodCategory classifies a food into one culinary family.
type FoodCategory string

// Known food categories. The catalog may carry additional free-form
// categories; the engine treats unknown categories as neutral.
const (
	CategoryMeat      FoodCategory = "meat"
	CategoryFish      FoodCategory = "fish"
	CategoryEggs      FoodCategory = "eggs"
	CategoryDairy     FoodCategory = "dairy"
	CategoryVegetable FoodCategory = "vegetable"
	CategoryFruit     FoodCategory = "fruit"
	CategoryCereal    FoodCategory = "cereal"
	CategoryLegume    FoodCategory = "legume"
	CategoryStarch    FoodCategory = "starch"
	CategoryFat       FoodCategory = "fat"
	CategoryNuts      FoodCategory = "nuts"
	CategorySpice     FoodCategory = "spice"
)

// DietTag marks a food as compatible with a dietary preference.
type DietTag string

// Supported dietary preference tags.
const (
	TagVegetarian  DietTag = "vegetarian"
	TagVegan       DietTag = "vegan"
	TagGlutenFree  DietTag = "gluten-free"
	TagLactoseFree DietTag = "lactose-free"
)

// MacroProfile holds macro-nutrient amounts. On a Food it is expressed per
// 100 g; elsewhere it holds absolute totals for a portion, meal or day.
type MacroProfile struct {
	// Calories in kcal.
	Calories float64 `json:"calories"`

	// Protein in grams.
	Protein float64 `json:"protein"`

	// Carbs in grams.
	Carbs float64 `json:"carbs"`

	// Fat in grams.
	Fat float64 `json:"fat"`

	// Fiber in grams.
	Fiber float64 `json:"fiber"`
}

// Add returns the element-wise sum of two profiles.
func (m MacroProfile) Add(o MacroProfile) MacroProfile {
	return MacroProfile{
		Calories: m.Calories + o.Calories,
		Protein:  m.Protein + o.Protein,
		Carbs:    m.Carbs + o.Carbs,
		Fat:      m.Fat + o.Fat,
		Fiber:    m.Fiber + o.Fiber,
	}
}

// Scale returns the profile multiplied by factor.
func (m MacroProfile) Scale(factor float64) MacroProfile {
	return MacroProfile{
		Calories: m.Calories * factor,
		Protein:  m.Protein * factor,
		Carbs:    m.Carbs * factor,
		Fat:      m.Fat * factor,
		Fiber:    m.Fiber * factor,
	}
}

// ForQuantity converts a per-100g profile into the absolute amounts a portion
// of the given gram quantity provides.
func (m MacroProfile) ForQuantity(grams float64) MacroProfile {
	return m.Scale(grams / 100.0)
}

// ImpliedCalories computes the calories implied by the macro grams alone.
func (m MacroProfile) ImpliedCalories() float64 {
	return m.Protein*CaloriesPerGramProtein +
		m.Carbs*CaloriesPerGramCarbs +
		m.Fat*CaloriesPerGramFat
}

// Food is one entry of the external catalog. The engine only reads it.
type Food struct {
	// ID is the catalog-assigned identifier, unique within one catalog.
	ID string `json:"id"`

	// Name is the display name, e.g. "Basmati rice, cooked".
	Name string `json:"name"`

	// Category is the culinary family the food belongs to.
	Category FoodCategory `json:"category"`

	// PerHundredGrams is the macro profile for a 100 g portion.
	PerHundredGrams MacroProfile `json:"perHundredGrams"`

	// Tags lists the dietary preferences this food is compatible with.
	Tags []DietTag `json:"tags,omitempty"`

	// PricePerHundredGrams is the cost of a 100 g portion in currency units.
	PricePerHundredGrams float64 `json:"pricePerHundredGrams,omitempty"`

	// HealthIndex rates nutritional quality from 1 (poor) to 10 (excellent).
	HealthIndex int `json:"healthIndex,omitempty"`

	// VarietyIndex rates how common the food is from 1 (everyday) to
	// 10 (exotic).
	VarietyIndex int `json:"varietyIndex,omitempty"`
}

// macroCoherenceTolerance bounds how far the stated calories may drift from
// the calories implied by the macro grams before Validate rejects the food.
const macroCoherenceTolerance = 0.20

// Validate checks that the food record is internally coherent.
func (f Food) Validate() error {
	if f.Name == "" {
		return fmt.Errorf("food %q: name must not be empty", f.ID)
	}
	p := f.PerHundredGrams
	if p.Calories < 0 || p.Protein < 0 || p.Carbs < 0 || p.Fat < 0 || p.Fiber < 0 {
		return fmt.Errorf("food %q: macro values must not be negative", f.Name)
	}
	if p.Calories > 0 {
		implied := p.ImpliedCalories()
		if math.Abs(implied-p.Calories) > p.Calories*macroCoherenceTolerance {
			return fmt.Errorf("food %q: stated %.0f kcal but macros imply %.0f kcal",
				f.Name, p.Calories, implied)
		}
	}
	return nil
}

// HasTag reports whether the food carries the given dietary tag,
// case-insensitively.
func (f Food) HasTag(tag DietTag) bool {
	for _, t := range f.Tags {
		if strings.EqualFold(string(t), string(tag)) {
			return true
		}
	}
	return false
}

// MatchesPreferences reports whether the food carries every requested tag.
// An empty preference list matches all foods.
func (f Food) MatchesPreferences(prefs []DietTag) bool {
	for _, p := range prefs {
		if !f.HasTag(p) {
			return false
		}
	}
	return true
}
