package compat

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Virtus-Training/Plans-alimentaires/internal/classify"
	"github.com/Virtus-Training/Plans-alimentaires/pkg/core"
)

// Matrix answers pairing and coherence queries against a compiled Ruleset.
// All lookup keys are normalized once at construction; queries are read-only
// and safe for concurrent use.
type Matrix struct {
	rules *Ruleset
	cls   *classify.Classifier

	exactPairs map[pairKey]float64
	namePairs  []scoredPair
	exactCats  map[pairKey]float64
	catPairs   []scoredPair
	penalties  []scoredPair

	affinities   map[core.MealType]map[string]float64
	affinityKeys map[core.MealType][]string
}

type pairKey struct{ a, b string }

type scoredPair struct {
	a, b  string
	score float64
}

func orderedKey(a, b string) pairKey {
	if b < a {
		a, b = b, a
	}
	return pairKey{a: a, b: b}
}

// New compiles a Ruleset into a Matrix. A nil ruleset selects the defaults.
func New(rules *Ruleset, cls *classify.Classifier) (*Matrix, error) {
	if cls == nil {
		return nil, fmt.Errorf("compat matrix requires a classifier")
	}
	if rules == nil {
		rules = DefaultRuleset()
	}
	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("invalid compatibility ruleset: %w", err)
	}

	m := &Matrix{
		rules:        rules,
		cls:          cls,
		exactPairs:   make(map[pairKey]float64, len(rules.NamePairs)),
		namePairs:    make([]scoredPair, 0, len(rules.NamePairs)),
		exactCats:    make(map[pairKey]float64, len(rules.CategoryPairs)),
		catPairs:     make([]scoredPair, 0, len(rules.CategoryPairs)),
		penalties:    make([]scoredPair, 0, len(rules.Penalties)),
		affinities:   make(map[core.MealType]map[string]float64, len(rules.Affinities)),
		affinityKeys: make(map[core.MealType][]string, len(rules.Affinities)),
	}
	for _, p := range rules.NamePairs {
		a, b := classify.Normalize(p.A), classify.Normalize(p.B)
		m.exactPairs[orderedKey(a, b)] = p.Score
		m.namePairs = append(m.namePairs, scoredPair{a: a, b: b, score: p.Score})
	}
	for _, p := range rules.CategoryPairs {
		a, b := classify.Normalize(p.A), classify.Normalize(p.B)
		m.exactCats[orderedKey(a, b)] = p.Score
		m.catPairs = append(m.catPairs, scoredPair{a: a, b: b, score: p.Score})
	}
	for _, p := range rules.Penalties {
		m.penalties = append(m.penalties, scoredPair{
			a:     classify.Normalize(p.A),
			b:     classify.Normalize(p.B),
			score: p.Value,
		})
	}
	for mealType, table := range rules.Affinities {
		compiled := make(map[string]float64, len(table))
		keys := make([]string, 0, len(table))
		for category, score := range table {
			key := classify.Normalize(category)
			compiled[key] = score
			keys = append(keys, key)
		}
		// Longer keys first so "legumes" wins over "legume" on partial matches.
		sort.Slice(keys, func(i, j int) bool {
			if len(keys[i]) != len(keys[j]) {
				return len(keys[i]) > len(keys[j])
			}
			return keys[i] < keys[j]
		})
		m.affinities[mealType] = compiled
		m.affinityKeys[mealType] = keys
	}
	return m, nil
}

// Score rates how well two foods pair within one meal, in [0,1].
//
// Lookup order: identical names score 1.0; two different staples score the
// staple floor; then exact name pairs, substring name pairs, exact category
// pairs, substring category pairs; the neutral score when nothing matches.
func (m *Matrix) Score(a, b core.Food) float64 {
	nameA, nameB := classify.Normalize(a.Name), classify.Normalize(b.Name)
	if nameA == nameB {
		return 1.0
	}
	if m.cls.IsStaple(a) && m.cls.IsStaple(b) && m.cls.BaseName(a) != m.cls.BaseName(b) {
		return m.rules.StaplePairScore
	}
	if score, ok := m.exactPairs[orderedKey(nameA, nameB)]; ok {
		return score
	}
	for _, p := range m.namePairs {
		if (strings.Contains(nameA, p.a) && strings.Contains(nameB, p.b)) ||
			(strings.Contains(nameB, p.a) && strings.Contains(nameA, p.b)) {
			return p.score
		}
	}
	catA, catB := classify.Normalize(string(a.Category)), classify.Normalize(string(b.Category))
	if catA != "" && catB != "" {
		if score, ok := m.exactCats[orderedKey(catA, catB)]; ok {
			return score
		}
		for _, p := range m.catPairs {
			if (strings.Contains(catA, p.a) && strings.Contains(catB, p.b)) ||
				(strings.Contains(catB, p.a) && strings.Contains(catA, p.b)) {
				return p.score
			}
		}
	}
	return m.rules.NeutralScore
}

// Palatability is the mean pairwise Score across all foods in a meal.
// Meals with at most one food are perfectly harmonious.
func (m *Matrix) Palatability(foods []core.Food) float64 {
	if len(foods) <= 1 {
		return 1.0
	}
	var total float64
	var pairs int
	for i := 0; i < len(foods); i++ {
		for j := i + 1; j < len(foods); j++ {
			total += m.Score(foods[i], foods[j])
			pairs++
		}
	}
	return total / float64(pairs)
}
