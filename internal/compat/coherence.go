package compat

import (
	"strings"

	"github.com/Virtus-Training/Plans-alimentaires/internal/classify"
	"github.com/Virtus-Training/Plans-alimentaires/pkg/core"
)

// MealAffinity rates how well a food category fits a meal type, in [0,1].
// Exact category matches win; otherwise the longest affinity key contained in
// the category applies; unknown categories and meal types score neutral.
func (m *Matrix) MealAffinity(category core.FoodCategory, mealType core.MealType) float64 {
	table, ok := m.affinities[mealType]
	if !ok {
		return m.rules.NeutralAffinity
	}
	cat := classify.Normalize(string(category))
	if score, ok := table[cat]; ok {
		return score
	}
	for _, key := range m.affinityKeys[mealType] {
		if strings.Contains(cat, key) {
			return table[key]
		}
	}
	return m.rules.NeutralAffinity
}

// CombinationPenalty rates how strongly two foods clash, in [0,1]; 0 means
// they are fine together. Two different staple foods always receive the
// staple penalty; other pairs match penalty keys against both the category
// and the name of each food.
func (m *Matrix) CombinationPenalty(a, b core.Food) float64 {
	nameA, nameB := classify.Normalize(a.Name), classify.Normalize(b.Name)
	if nameA != nameB && m.cls.IsStaple(a) && m.cls.IsStaple(b) {
		return m.rules.StaplePairPenalty
	}
	catA, catB := classify.Normalize(string(a.Category)), classify.Normalize(string(b.Category))
	for _, p := range m.penalties {
		if (penaltyKeyMatches(p.a, catA, nameA) && penaltyKeyMatches(p.b, catB, nameB)) ||
			(penaltyKeyMatches(p.a, catB, nameB) && penaltyKeyMatches(p.b, catA, nameA)) {
			return p.score
		}
	}
	return 0
}

func penaltyKeyMatches(key, category, name string) bool {
	return strings.Contains(category, key) || strings.Contains(name, key)
}

// WorstPenalty returns the highest pairwise combination penalty among foods.
func (m *Matrix) WorstPenalty(foods []core.Food) float64 {
	var worst float64
	for i := 0; i < len(foods); i++ {
		for j := i + 1; j < len(foods); j++ {
			if p := m.CombinationPenalty(foods[i], foods[j]); p > worst {
				worst = p
			}
		}
	}
	return worst
}
