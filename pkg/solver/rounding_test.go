package solver

import (
	"testing"

	"github.com/Virtus-Training/Plans-alimentaires/pkg/core"
)

func TestIncrementBands(t *testing.T) {
	tests := []struct {
		quantity float64
		want     float64
	}{
		{5, 5},
		{20, 5},
		{20.5, 10},
		{50, 10},
		{50.5, 20},
		{100, 20},
		{100.5, 25},
		{200, 25},
		{200.5, 50},
		{450, 50},
	}
	for i, tt := range tests {
		if got := Increment(tt.quantity); got != tt.want {
			t.Errorf("Test case %d: Increment(%.1f) = %.0f, want %.0f", i, tt.quantity, got, tt.want)
		}
	}
}

func TestRoundQuantity(t *testing.T) {
	tests := []struct {
		quantity float64
		want     float64
	}{
		{0, 0},
		{2, 0},
		{3, 5},
		{12, 10},
		{13, 15},
		{48, 50},
		{52, 60},
		{98, 100},
		{112, 100},
		{113, 125},
		{210, 200},
		{230, 250},
		{487, 500},
	}
	for i, tt := range tests {
		if got := RoundQuantity(tt.quantity); got != tt.want {
			t.Errorf("Test case %d: RoundQuantity(%.1f) = %.1f, want %.1f", i, tt.quantity, got, tt.want)
		}
	}
}

// Rounding an already rounded quantity must return it unchanged, whatever
// band it lands in.
func TestRoundQuantityIsIdempotent(t *testing.T) {
	for q := 0.0; q <= 600; q += 0.5 {
		once := RoundQuantity(q)
		twice := RoundQuantity(once)
		if once != twice {
			t.Fatalf("RoundQuantity(%.1f) = %.1f, but rounding again gives %.1f", q, once, twice)
		}
	}
}

func TestMinimumQuantity(t *testing.T) {
	tests := []struct {
		name     string
		category core.FoodCategory
		want     float64
	}{
		{"Huile d'olive", core.CategoryFat, 10},
		{"Sunflower oil", core.CategoryFat, 10},
		{"Boiled eggs", core.CategoryEggs, 50},
		{"Sel fin", core.CategorySpice, 5},
		{"Paprika", core.CategorySpice, 5},
		{"Fromage comté", core.CategoryDairy, 20},
		{"Beurre doux", core.CategoryFat, 20},
		{"Lait entier", core.CategoryDairy, 100},
		{"Yaourt nature", core.CategoryDairy, 100},
		{"Laitue romaine", core.CategoryVegetable, 30},
		{"Œufs brouillés", core.CategoryEggs, 50},
		{"Poulet rôti", core.CategoryMeat, 30},
	}
	for i, tt := range tests {
		f := core.Food{Name: tt.name, Category: tt.category}
		if got := MinimumQuantity(f); got != tt.want {
			t.Errorf("Test case %d: MinimumQuantity(%s) = %.0f, want %.0f", i, tt.name, got, tt.want)
		}
	}
}

func TestMaximumQuantity(t *testing.T) {
	tests := []struct {
		name     string
		category core.FoodCategory
		want     float64
	}{
		{"Haricots verts", core.CategoryVegetable, 500},
		{"Courgettes", core.FoodCategory("légumes"), 500},
		{"Lentilles corail", core.FoodCategory("légumineuses"), 300},
		{"Poulet rôti", core.CategoryMeat, 300},
		{"Riz basmati", core.CategoryStarch, 300},
	}
	for i, tt := range tests {
		f := core.Food{Name: tt.name, Category: tt.category}
		if got := MaximumQuantity(f); got != tt.want {
			t.Errorf("Test case %d: MaximumQuantity(%s) = %.0f, want %.0f", i, tt.name, got, tt.want)
		}
	}
}
