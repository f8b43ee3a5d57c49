package solver

import (
	"math"
	"strings"
	"unicode"

	"github.com/Virtus-Training/Plans-alimentaires/internal/classify"
	"github.com/Virtus-Training/Plans-alimentaires/pkg/core"
)

// Increment returns the practical step size for a quantity: small portions
// move in 5 g steps, large ones in 50 g steps. Band edges are inclusive.
func Increment(q float64) float64 {
	switch {
	case q <= 20:
		return 5
	case q <= 50:
		return 10
	case q <= 100:
		return 20
	case q <= 200:
		return 25
	default:
		return 50
	}
}

// RoundQuantity snaps a quantity to the nearest practical increment.
// Rounding is idempotent: every practical quantity maps to itself.
func RoundQuantity(q float64) float64 {
	if q <= 0 {
		return 0
	}
	inc := Increment(q)
	return math.Round(q/inc) * inc
}

// MinimumQuantity returns the smallest sensible portion for a food's kind.
// A spoon of oil is a plausible serving, ten grams of milk is not.
func MinimumQuantity(f core.Food) float64 {
	name := classify.Normalize(f.Name)
	category := classify.Normalize(string(f.Category))
	switch {
	case hasWord(name, "huile", "oil"):
		return 10
	case hasWord(name, "epice", "spice", "sel", "salt") ||
		f.Category == core.CategorySpice || strings.Contains(category, "epice"):
		return 5
	case hasWord(name, "fromage", "cheese", "beurre", "butter"):
		return 20
	case hasWord(name, "lait", "milk", "yaourt", "yogurt", "yoghurt", "kefir"):
		return 100
	case hasWord(name, "oeuf", "egg") || f.Category == core.CategoryEggs:
		return 50
	default:
		return 30
	}
}

// MaximumQuantity returns the portion cap for a food's kind. Vegetables may
// fill the plate, everything else stays under 300 g.
func MaximumQuantity(f core.Food) float64 {
	category := classify.Normalize(string(f.Category))
	if f.Category == core.CategoryVegetable ||
		category == "legumes" || strings.Contains(category, "vegetable") {
		return 500
	}
	return 300
}

// hasWord reports whether any word of the normalized text matches one of
// the keys, ignoring a plural s. Word matching keeps "boiled" from
// triggering the oil rule and "laitue" the milk rule.
func hasWord(text string, keys ...string) bool {
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
