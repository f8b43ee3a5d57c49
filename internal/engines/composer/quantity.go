package composer

import (
	"math"
	"strings"
	"unicode"

	"github.com/Virtus-Training/Plans-alimentaires/internal/classify"
	"github.com/Virtus-Training/Plans-alimentaires/pkg/core"
	"github.com/Virtus-Training/Plans-alimentaires/pkg/solver"
)

// defaultPortionCap bounds the plausible first-guess portion of any food, in
// grams.
const defaultPortionCap = 150

// candidateQuantity proposes the grams of a food that would close the meal's
// remaining calorie gap, tamed by what a plate can plausibly hold: rich
// categories and calorie-dense foods get progressively tighter caps.
func (c *Composer) candidateQuantity(f core.Food, remainingCalories float64) float64 {
	minQ := solver.MinimumQuantity(f)
	maxQ := math.Min(solver.MaximumQuantity(f), c.cfg.Quantities.Max)
	cal := f.PerHundredGrams.Calories
	if cal <= 0 {
		return clampQuantity(minQ, minQ, maxQ)
	}

	q := math.Max(remainingCalories, 0) / cal * 100
	q = math.Min(q, portionCap(f))
	switch {
	case cal > 500:
		q = math.Min(q, 30)
	case cal > 300:
		q = math.Min(q, 100)
	}
	return clampQuantity(q, minQ, maxQ)
}

// quantityAlternatives returns practical neighbors of a base quantity, up to
// two increments away in each direction, bounded to the food's plausible
// range.
func (c *Composer) quantityAlternatives(f core.Food, base float64) []float64 {
	minQ := solver.MinimumQuantity(f)
	maxQ := math.Min(solver.MaximumQuantity(f), c.cfg.Quantities.Max)
	step := solver.Increment(base)

	alts := make([]float64, 0, 4)
	for _, delta := range []float64{-2, -1, 1, 2} {
		q := solver.RoundQuantity(base + delta*step)
		if q < minQ || q > maxQ || q == base || containsQuantity(alts, q) {
			continue
		}
		alts = append(alts, q)
	}
	return alts
}

// clampQuantity pins q into [min, max] and snaps it onto the practical
// lattice. All minimums and caps are lattice points, so snapping never
// pushes a clamped value back out of range.
func clampQuantity(q, min, max float64) float64 {
	q = math.Max(q, min)
	q = math.Min(q, max)
	return solver.RoundQuantity(q)
}

// portionCap returns the largest plausible first-guess portion for a food's
// kind, in grams.
func portionCap(f core.Food) float64 {
	name := classify.Normalize(f.Name)
	switch {
	case wordIn(name, "huile", "oil"):
		return 15
	case f.Category == core.CategoryNuts ||
		wordIn(name, "noix", "amande", "noisette", "cacahuete", "pistache"):
		return 30
	case wordIn(name, "fromage", "cheese"):
		return 40
	case f.Category == core.CategoryEggs || wordIn(name, "oeuf", "egg"):
		return 100
	case f.Category == core.CategoryMeat || f.Category == core.CategoryFish:
		return 150
	default:
		return defaultPortionCap
	}
}

// wordIn reports whether any word of the normalized text equals one of the
// keys, ignoring a plural s.
func wordIn(text string, keys ...string) bool {
	words := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	for _, w := range words {
		w = strings.TrimSuffix(w, "s")
		for _, k := range keys {
			if w == k {
				return true
			}
		}
	}
	return false
}

func containsQuantity(quantities []float64, q float64) bool {
	for _, existing := range quantities {
		if existing == q {
			return true
		}
	}
	return false
}
