// Package compat scores how well foods pair with each other inside a single
// meal and how well a food category fits a given meal type.
//
// Scores come from a Ruleset holding four tables: exact food name pairs,
// category pairs, pairwise penalties, and per-meal-type category affinities.
// The default ruleset covers common French and English food and category
// names; callers may supply their own Ruleset to override it.
package compat

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/Virtus-Training/Plans-alimentaires/pkg/core"
)

// Pair assigns a pairing score to two food or category names. Matching is
// case- and accent-insensitive.
type Pair struct {
	// A is the first name of the pair.
	A string `yaml:"a" json:"a"`
	// B is the second name of the pair.
	B string `yaml:"b" json:"b"`
	// Score is the pairing score in [0,1]; 1 means an excellent match.
	Score float64 `yaml:"score" json:"score"`
}

// Penalty flags a combination to avoid within one meal. Keys match against
// both the category and the name of a food.
type Penalty struct {
	// A is the first category or food name of the pair.
	A string `yaml:"a" json:"a"`
	// B is the second category or food name of the pair.
	B string `yaml:"b" json:"b"`
	// Value is the penalty in [0,1]; 0 means the pair is fine together.
	Value float64 `yaml:"value" json:"value"`
}

// Ruleset holds every table the pairing and coherence scorers read.
type Ruleset struct {
	// NamePairs scores specific food name pairs.
	NamePairs []Pair `yaml:"namePairs" json:"namePairs"`
	// CategoryPairs scores category pairs when no name pair applies.
	CategoryPairs []Pair `yaml:"categoryPairs" json:"categoryPairs"`
	// Penalties lists combinations to avoid within one meal.
	Penalties []Penalty `yaml:"penalties" json:"penalties"`
	// Affinities maps a meal type to per-category fit scores.
	Affinities map[core.MealType]map[string]float64 `yaml:"affinities" json:"affinities"`
	// NeutralScore is returned when no pairing rule matches.
	NeutralScore float64 `yaml:"neutralScore" json:"neutralScore"`
	// NeutralAffinity is returned when no affinity rule matches.
	NeutralAffinity float64 `yaml:"neutralAffinity" json:"neutralAffinity"`
	// StaplePairScore is the pairing score for two different staple foods.
	StaplePairScore float64 `yaml:"staplePairScore" json:"staplePairScore"`
	// StaplePairPenalty is the combination penalty for two different staple foods.
	StaplePairPenalty float64 `yaml:"staplePairPenalty" json:"staplePairPenalty"`
}

// Validate checks that every rule carries non-empty keys and scores within [0,1].
func (r *Ruleset) Validate() error {
	for i, p := range r.NamePairs {
		if p.A == "" || p.B == "" {
			return fmt.Errorf("name pair %d: empty key", i)
		}
		if p.Score < 0 || p.Score > 1 {
			return fmt.Errorf("name pair (%s, %s): score %.2f out of range [0,1]", p.A, p.B, p.Score)
		}
	}
	for i, p := range r.CategoryPairs {
		if p.A == "" || p.B == "" {
			return fmt.Errorf("category pair %d: empty key", i)
		}
		if p.Score < 0 || p.Score > 1 {
			return fmt.Errorf("category pair (%s, %s): score %.2f out of range [0,1]", p.A, p.B, p.Score)
		}
	}
	for i, p := range r.Penalties {
		if p.A == "" || p.B == "" {
			return fmt.Errorf("penalty %d: empty key", i)
		}
		if p.Value < 0 || p.Value > 1 {
			return fmt.Errorf("penalty (%s, %s): value %.2f out of range [0,1]", p.A, p.B, p.Value)
		}
	}
	for mealType, rules := range r.Affinities {
		for category, score := range rules {
			if category == "" {
				return fmt.Errorf("affinity for %s: empty category", mealType)
			}
			if score < 0 || score > 1 {
				return fmt.Errorf("affinity (%s, %s): score %.2f out of range [0,1]", mealType, category, score)
			}
		}
	}
	if r.NeutralScore < 0 || r.NeutralScore > 1 {
		return fmt.Errorf("neutral score %.2f out of range [0,1]", r.NeutralScore)
	}
	if r.NeutralAffinity < 0 || r.NeutralAffinity > 1 {
		return fmt.Errorf("neutral affinity %.2f out of range [0,1]", r.NeutralAffinity)
	}
	if r.StaplePairScore < 0 || r.StaplePairScore > 1 {
		return fmt.Errorf("staple pair score %.2f out of range [0,1]", r.StaplePairScore)
	}
	if r.StaplePairPenalty < 0 || r.StaplePairPenalty > 1 {
		return fmt.Errorf("staple pair penalty %.2f out of range [0,1]", r.StaplePairPenalty)
	}
	return nil
}

// ParseRuleset reads a Ruleset from a YAML document. Parsing starts from the
// built-in defaults, so a document only has to list what it overrides; the
// result is validated before it is returned.
func ParseRuleset(data []byte) (*Ruleset, error) {
	rules := DefaultRuleset()
	if err := yaml.Unmarshal(data, rules); err != nil {
		return nil, fmt.Errorf("parsing compatibility ruleset: %w", err)
	}
	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("invalid compatibility ruleset: %w", err)
	}
	return rules, nil
}

// DefaultRuleset returns the built-in pairing tables. Food names appear in
// French and English so catalogs in either language score sensibly.
func DefaultRuleset() *Ruleset {
	return &Ruleset{
		NamePairs: []Pair{
			// Meats with sides.
			{A: "poulet", B: "riz", Score: 1.0},
			{A: "poulet", B: "pâtes", Score: 0.9},
			{A: "poulet", B: "patate douce", Score: 0.9},
			{A: "poulet", B: "quinoa", Score: 0.8},
			{A: "chicken", B: "rice", Score: 1.0},
			{A: "chicken", B: "pasta", Score: 0.9},
			{A: "chicken", B: "sweet potato", Score: 0.9},
			{A: "chicken", B: "quinoa", Score: 0.8},

			// Fish with sides.
			{A: "saumon", B: "riz", Score: 1.0},
			{A: "saumon", B: "quinoa", Score: 0.9},
			{A: "saumon", B: "patate douce", Score: 0.8},
			{A: "thon", B: "pâtes", Score: 0.9},
			{A: "maquereau", B: "riz", Score: 0.9},
			{A: "sardines", B: "riz", Score: 0.8},
			{A: "salmon", B: "rice", Score: 1.0},
			{A: "salmon", B: "quinoa", Score: 0.9},
			{A: "tuna", B: "pasta", Score: 0.9},

			// Legumes and grains.
			{A: "tofu", B: "riz", Score: 1.0},
			{A: "tofu", B: "quinoa", Score: 0.9},
			{A: "tempeh", B: "riz", Score: 0.9},
			{A: "lentilles", B: "riz", Score: 1.0},
			{A: "pois chiches", B: "quinoa", Score: 0.9},
			{A: "haricots", B: "riz", Score: 0.9},
			{A: "tofu", B: "rice", Score: 1.0},
			{A: "lentils", B: "rice", Score: 1.0},
			{A: "chickpeas", B: "quinoa", Score: 0.9},
			{A: "beans", B: "rice", Score: 0.9},

			// Breakfast classics.
			{A: "œufs", B: "pain", Score: 1.0},
			{A: "œufs", B: "flocons d'avoine", Score: 0.6},
			{A: "yaourt", B: "flocons d'avoine", Score: 1.0},
			{A: "yaourt", B: "fruits", Score: 1.0},
			{A: "pain", B: "fromage", Score: 0.9},
			{A: "pain", B: "avocat", Score: 0.9},
			{A: "eggs", B: "bread", Score: 1.0},
			{A: "yogurt", B: "oatmeal", Score: 1.0},
			{A: "yogurt", B: "fruit", Score: 1.0},
			{A: "bread", B: "cheese", Score: 0.9},
			{A: "bread", B: "avocado", Score: 0.9},

			// Proteins with vegetables.
			{A: "poulet", B: "brocoli", Score: 0.9},
			{A: "poulet", B: "épinards", Score: 0.8},
			{A: "poulet", B: "tomates", Score: 0.8},
			{A: "poisson", B: "légumes", Score: 0.9},
			{A: "saumon", B: "épinards", Score: 0.9},
			{A: "saumon", B: "brocoli", Score: 0.8},
			{A: "chicken", B: "broccoli", Score: 0.9},
			{A: "chicken", B: "spinach", Score: 0.8},
			{A: "salmon", B: "spinach", Score: 0.9},

			// More meats.
			{A: "boeuf", B: "pommes de terre", Score: 1.0},
			{A: "boeuf", B: "carottes", Score: 0.9},
			{A: "boeuf", B: "champignons", Score: 0.9},
			{A: "boeuf", B: "oignon", Score: 1.0},
			{A: "porc", B: "pommes", Score: 0.9},
			{A: "porc", B: "chou", Score: 0.9},
			{A: "dinde", B: "cranberries", Score: 1.0},
			{A: "beef", B: "potatoes", Score: 1.0},
			{A: "beef", B: "mushrooms", Score: 0.9},
			{A: "beef", B: "onion", Score: 1.0},
			{A: "turkey", B: "cranberries", Score: 1.0},

			// More fish.
			{A: "saumon", B: "citron", Score: 1.0},
			{A: "saumon", B: "aneth", Score: 1.0},
			{A: "saumon", B: "avocat", Score: 0.9},
			{A: "thon", B: "salade", Score: 0.9},
			{A: "thon", B: "maïs", Score: 0.8},
			{A: "cabillaud", B: "légumes", Score: 0.9},
			{A: "sardines", B: "tomates", Score: 0.9},
			{A: "crevettes", B: "ail", Score: 1.0},
			{A: "crevettes", B: "pâtes", Score: 0.9},
			{A: "salmon", B: "lemon", Score: 1.0},
			{A: "salmon", B: "dill", Score: 1.0},
			{A: "shrimp", B: "garlic", Score: 1.0},
			{A: "shrimp", B: "pasta", Score: 0.9},

			// More legumes.
			{A: "lentilles", B: "curry", Score: 0.9},
			{A: "lentilles", B: "tomates", Score: 0.9},
			{A: "pois chiches", B: "tahini", Score: 1.0},
			{A: "pois chiches", B: "curry", Score: 0.9},
			{A: "haricots", B: "tomates", Score: 0.9},
			{A: "haricots", B: "maïs", Score: 0.8},
			{A: "seitan", B: "légumes", Score: 0.9},
			{A: "seitan", B: "sauce soja", Score: 0.9},
			{A: "tofu", B: "sésame", Score: 0.9},
			{A: "lentils", B: "curry", Score: 0.9},
			{A: "chickpeas", B: "tahini", Score: 1.0},

			// More breakfast.
			{A: "œufs", B: "bacon", Score: 0.9},
			{A: "œufs", B: "avocat", Score: 0.9},
			{A: "œufs", B: "fromage", Score: 0.9},
			{A: "yaourt", B: "miel", Score: 0.9},
			{A: "yaourt", B: "granola", Score: 0.9},
			{A: "pain", B: "beurre de cacahuète", Score: 0.9},
			{A: "pain", B: "confiture", Score: 0.9},
			{A: "flocons d'avoine", B: "banane", Score: 0.9},
			{A: "flocons d'avoine", B: "fruits rouges", Score: 0.9},
			{A: "eggs", B: "bacon", Score: 0.9},
			{A: "eggs", B: "avocado", Score: 0.9},
			{A: "yogurt", B: "honey", Score: 0.9},
			{A: "yogurt", B: "granola", Score: 0.9},
			{A: "oatmeal", B: "banana", Score: 0.9},

			// Complementary pairings.
			{A: "riz", B: "légumes", Score: 0.9},
			{A: "pâtes", B: "tomates", Score: 1.0},
			{A: "pâtes", B: "basilic", Score: 1.0},
			{A: "quinoa", B: "légumes", Score: 0.9},
			{A: "pommes de terre", B: "fromage", Score: 0.8},
			{A: "tomates", B: "basilic", Score: 1.0},
			{A: "tomates", B: "mozzarella", Score: 1.0},
			{A: "épinards", B: "fromage", Score: 0.8},
			{A: "brocoli", B: "fromage", Score: 0.7},
			{A: "carottes", B: "gingembre", Score: 0.9},
			{A: "pomme", B: "cannelle", Score: 1.0},
			{A: "banane", B: "chocolat", Score: 0.9},
			{A: "fraises", B: "crème", Score: 0.9},
			{A: "amandes", B: "fruits", Score: 0.8},
			{A: "noix", B: "fromage", Score: 0.8},
			{A: "pasta", B: "tomatoes", Score: 1.0},
			{A: "pasta", B: "basil", Score: 1.0},
			{A: "tomatoes", B: "basil", Score: 1.0},
			{A: "tomatoes", B: "mozzarella", Score: 1.0},
			{A: "apple", B: "cinnamon", Score: 1.0},
			{A: "banana", B: "chocolate", Score: 0.9},
			{A: "strawberries", B: "cream", Score: 0.9},

			// Chicken extras.
			{A: "poulet", B: "citron", Score: 1.0},
			{A: "poulet", B: "miel", Score: 0.7},
			{A: "poulet", B: "curry", Score: 0.9},
			{A: "chicken", B: "lemon", Score: 1.0},
			{A: "chicken", B: "honey", Score: 0.7},
			{A: "chicken", B: "curry", Score: 0.9},

			// Combinations to avoid.
			{A: "poisson", B: "fromage", Score: 0.3},
			{A: "poisson", B: "yaourt", Score: 0.2},
			{A: "chocolat", B: "viande", Score: 0.1},
			{A: "fruits", B: "viande", Score: 0.4},
			{A: "lait", B: "poisson", Score: 0.3},
			{A: "orange", B: "lait", Score: 0.4},
			{A: "melon", B: "jambon", Score: 0.5},
			{A: "ananas", B: "pizza", Score: 0.3},
			{A: "ketchup", B: "pâtes", Score: 0.4},
			{A: "mayonnaise", B: "fruits", Score: 0.2},
			{A: "fish", B: "cheese", Score: 0.3},
			{A: "fish", B: "yogurt", Score: 0.2},
			{A: "chocolate", B: "meat", Score: 0.1},
			{A: "milk", B: "fish", Score: 0.3},
			{A: "orange", B: "milk", Score: 0.4},
			{A: "melon", B: "ham", Score: 0.5},
			{A: "pineapple", B: "pizza", Score: 0.3},
			{A: "ketchup", B: "pasta", Score: 0.4},
			{A: "mayonnaise", B: "fruit", Score: 0.2},
		},
		CategoryPairs: []Pair{
			// Excellent combinations.
			{A: "viandes", B: "légumes", Score: 0.9},
			{A: "viandes", B: "féculents", Score: 0.9},
			{A: "poissons", B: "légumes", Score: 0.9},
			{A: "poissons", B: "féculents", Score: 0.9},
			{A: "légumineuses", B: "féculents", Score: 0.9},
			{A: "légumineuses", B: "légumes", Score: 0.9},
			{A: "céréales", B: "produits laitiers", Score: 0.9},
			{A: "fruits", B: "produits laitiers", Score: 0.9},
			{A: "œufs", B: "céréales", Score: 0.9},
			{A: "œufs", B: "légumes", Score: 0.8},
			{A: "meat", B: "vegetable", Score: 0.9},
			{A: "meat", B: "starch", Score: 0.9},
			{A: "fish", B: "vegetable", Score: 0.9},
			{A: "fish", B: "starch", Score: 0.9},
			{A: "legume", B: "starch", Score: 0.9},
			{A: "legume", B: "vegetable", Score: 0.9},
			{A: "cereal", B: "dairy", Score: 0.9},
			{A: "fruit", B: "dairy", Score: 0.9},
			{A: "eggs", B: "cereal", Score: 0.9},
			{A: "eggs", B: "vegetable", Score: 0.8},

			// Good combinations.
			{A: "viandes", B: "produits laitiers", Score: 0.6},
			{A: "noix", B: "fruits", Score: 0.8},
			{A: "noix", B: "céréales", Score: 0.8},
			{A: "meat", B: "dairy", Score: 0.6},
			{A: "nuts", B: "fruit", Score: 0.8},
			{A: "nuts", B: "cereal", Score: 0.8},

			// Middling combinations.
			{A: "légumes", B: "fruits", Score: 0.5},
			{A: "féculents", B: "fruits", Score: 0.4},
			{A: "vegetable", B: "fruit", Score: 0.5},
			{A: "starch", B: "fruit", Score: 0.4},

			// Combinations to avoid.
			{A: "poissons", B: "produits laitiers", Score: 0.3},
			{A: "viandes", B: "fruits", Score: 0.4},
			{A: "fish", B: "dairy", Score: 0.3},
			{A: "meat", B: "fruit", Score: 0.4},
		},
		Penalties: []Penalty{
			{A: "poissons", B: "produits laitiers", Value: 0.7},
			{A: "poissons", B: "lait", Value: 0.9},
			{A: "fish", B: "dairy", Value: 0.7},
			{A: "fish", B: "milk", Value: 0.9},
			{A: "viandes", B: "poissons", Value: 0.6},
			{A: "meat", B: "fish", Value: 0.6},
			{A: "fruits", B: "viandes", Value: 0.5},
			{A: "fruits", B: "poissons", Value: 0.5},
			{A: "fruits", B: "légumineuses", Value: 0.4},
			{A: "fruit", B: "meat", Value: 0.5},
			{A: "fruit", B: "fish", Value: 0.5},
			{A: "fruit", B: "legume", Value: 0.4},
			{A: "miel", B: "viandes", Value: 0.8},
			{A: "miel", B: "poissons", Value: 0.8},
			{A: "confiture", B: "viandes", Value: 0.9},
			{A: "confiture", B: "poissons", Value: 0.9},
			{A: "honey", B: "meat", Value: 0.8},
			{A: "honey", B: "fish", Value: 0.8},
			{A: "jam", B: "meat", Value: 0.9},
			{A: "jam", B: "fish", Value: 0.9},
			{A: "féculents", B: "féculents", Value: 0.95},
			{A: "starch", B: "starch", Value: 0.95},
			{A: "riz", B: "pâtes", Value: 0.95},
			{A: "riz", B: "pain", Value: 0.9},
			{A: "riz", B: "pommes de terre", Value: 0.95},
			{A: "pâtes", B: "pain", Value: 0.9},
			{A: "pâtes", B: "pommes de terre", Value: 0.95},
			{A: "pain", B: "pommes de terre", Value: 0.85},
			{A: "quinoa", B: "riz", Value: 0.95},
			{A: "quinoa", B: "pâtes", Value: 0.95},
			{A: "boulgour", B: "riz", Value: 0.95},
			{A: "boulgour", B: "pâtes", Value: 0.95},
			{A: "semoule", B: "riz", Value: 0.95},
			{A: "semoule", B: "pâtes", Value: 0.95},
			{A: "rice", B: "pasta", Value: 0.95},
			{A: "rice", B: "bread", Value: 0.9},
			{A: "rice", B: "potatoes", Value: 0.95},
			{A: "pasta", B: "bread", Value: 0.9},
			{A: "pasta", B: "potatoes", Value: 0.95},
			{A: "bread", B: "potatoes", Value: 0.85},
		},
		Affinities: map[core.MealType]map[string]float64{
			core.MealBreakfast: {
				"céréales": 1.0, "cereal": 1.0,
				"pain": 1.0, "bread": 1.0,
				"produits laitiers": 1.0, "dairy": 1.0,
				"œufs": 1.0, "eggs": 1.0,
				"fruits": 1.0, "fruit": 1.0,
				"miel": 1.0, "honey": 1.0,
				"confiture": 1.0, "jam": 1.0,
				"beurre": 0.9, "butter": 0.9,
				"fromage": 0.8, "cheese": 0.8,
				"noix": 0.8, "nuts": 0.8,
				"légumes": 0.5, "vegetable": 0.5,
				"féculents": 0.4, "starch": 0.4,
				"viandes": 0.1, "meat": 0.1,
				"poissons": 0.2, "fish": 0.2,
				"légumineuses": 0.2, "legume": 0.2,
				"tofu": 0.2,
			},
			core.MealLunch: {
				"viandes": 1.0, "meat": 1.0,
				"poissons": 1.0, "fish": 1.0,
				"légumes": 1.0, "vegetable": 1.0,
				"féculents": 1.0, "starch": 1.0,
				"légumineuses": 1.0, "legume": 1.0,
				"tofu": 1.0,
				"œufs": 0.9, "eggs": 0.9,
				"fromage": 0.8, "cheese": 0.8,
				"noix": 0.6, "nuts": 0.6,
				"céréales": 0.5, "cereal": 0.5,
				"produits laitiers": 0.4, "dairy": 0.4,
				"fruits": 0.3, "fruit": 0.3,
				"pain": 0.4, "bread": 0.4,
				"miel": 0.1, "honey": 0.1,
				"confiture": 0.1, "jam": 0.1,
			},
			core.MealDinner: {
				"viandes": 1.0, "meat": 1.0,
				"poissons": 1.0, "fish": 1.0,
				"légumes": 1.0, "vegetable": 1.0,
				"féculents": 0.9, "starch": 0.9,
				"légumineuses": 1.0, "legume": 1.0,
				"tofu": 1.0,
				"œufs": 0.9, "eggs": 0.9,
				"fromage": 0.7, "cheese": 0.7,
				"noix": 0.6, "nuts": 0.6,
				"céréales": 0.5, "cereal": 0.5,
				"produits laitiers": 0.4, "dairy": 0.4,
				"fruits": 0.3, "fruit": 0.3,
				"pain": 0.4, "bread": 0.4,
				"miel": 0.1, "honey": 0.1,
				"confiture": 0.1, "jam": 0.1,
			},
			core.MealMorningSnack: {
				"fruits": 1.0, "fruit": 1.0,
				"noix": 1.0, "nuts": 1.0,
				"produits laitiers": 1.0, "dairy": 1.0,
				"fromage": 0.7, "cheese": 0.7,
				"pain": 0.6, "bread": 0.6,
				"céréales": 0.7, "cereal": 0.7,
				"miel": 0.6, "honey": 0.6,
				"légumes": 0.4, "vegetable": 0.4,
				"œufs": 0.3, "eggs": 0.3,
				"viandes": 0.1, "meat": 0.1,
				"poissons": 0.1, "fish": 0.1,
				"légumineuses": 0.2, "legume": 0.2,
				"tofu": 0.2,
				"féculents": 0.3, "starch": 0.3,
			},
			core.MealAfternoonSnack: {
				"fruits": 1.0, "fruit": 1.0,
				"noix": 1.0, "nuts": 1.0,
				"produits laitiers": 1.0, "dairy": 1.0,
				"fromage": 0.8, "cheese": 0.8,
				"pain": 0.7, "bread": 0.7,
				"céréales": 0.7, "cereal": 0.7,
				"miel": 0.6, "honey": 0.6,
				"confiture": 0.5, "jam": 0.5,
				"légumes": 0.4, "vegetable": 0.4,
				"œufs": 0.2, "eggs": 0.2,
				"viandes": 0.1, "meat": 0.1,
				"poissons": 0.1, "fish": 0.1,
				"légumineuses": 0.2, "legume": 0.2,
				"tofu": 0.2,
				"féculents": 0.3, "starch": 0.3,
			},
			core.MealEveningSnack: {
				"fruits": 1.0, "fruit": 1.0,
				"produits laitiers": 1.0, "dairy": 1.0,
				"noix": 0.8, "nuts": 0.8,
				"fromage": 0.6, "cheese": 0.6,
				"légumes": 0.5, "vegetable": 0.5,
				"céréales": 0.5, "cereal": 0.5,
				"pain": 0.4, "bread": 0.4,
				"œufs": 0.2, "eggs": 0.2,
				"viandes": 0.1, "meat": 0.1,
				"poissons": 0.1, "fish": 0.1,
				"légumineuses": 0.2, "legume": 0.2,
				"tofu": 0.2,
				"féculents": 0.2, "starch": 0.2,
			},
		},
		NeutralScore:      defaultNeutralScore,
		NeutralAffinity:   defaultNeutralAffinity,
		StaplePairScore:   defaultStaplePairScore,
		StaplePairPenalty: defaultStaplePairPenalty,
	}
}

const (
	defaultNeutralScore      = 0.6
	defaultNeutralAffinity   = 0.5
	defaultStaplePairScore   = 0.05
	defaultStaplePairPenalty = 0.95
)
