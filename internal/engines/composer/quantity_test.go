package composer

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Virtus-Training/Plans-alimentaires/pkg/core"
)

func TestCandidateQuantity(t *testing.T) {
	comp := newTestComposer(t, nil)
	catalog := testCatalog()

	tests := []struct {
		name      string
		food      core.Food
		remaining float64
		want      float64
	}{
		{
			name:      "Test case 1: Oil stays at a spoonful no matter the gap",
			food:      catalog[14],
			remaining: 400,
			want:      15,
		},
		{
			name:      "Test case 2: Nuts capped at a handful",
			food:      catalog[15],
			remaining: 400,
			want:      30,
		},
		{
			name:      "Test case 3: Lean meat fills up to its portion cap",
			food:      catalog[0],
			remaining: 400,
			want:      150,
		},
		{
			name:      "Test case 4: Vegetables cap at the default portion",
			food:      catalog[7],
			remaining: 200,
			want:      150,
		},
		{
			name:      "Test case 5: Eggs cap at two eggs' worth",
			food:      catalog[2],
			remaining: 500,
			want:      100,
		},
		{
			name:      "Test case 6: Calorie-free food falls back to the plating minimum",
			food:      testFood("z", "Bouillon de légumes", core.CategoryVegetable, 0, 0, 0, 0, 0, 0.10, 5, 3),
			remaining: 300,
			want:      30,
		},
		{
			name:      "Test case 7: Dairy floor lifts a small gap to a real serving",
			food:      testFood("m", "Lait demi-écrémé", core.CategoryDairy, 47, 3.3, 4.8, 1.6, 0, 0.15, 7, 1),
			remaining: 50,
			want:      100,
		},
		{
			name:      "Test case 8: Overshot meal still plates the minimum",
			food:      catalog[0],
			remaining: -50,
			want:      30,
		},
		{
			name:      "Test case 9: Dense cereal hits the density cap before its portion cap",
			food:      catalog[6],
			remaining: 800,
			want:      100,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := comp.candidateQuantity(tt.food, tt.remaining); got != tt.want {
				t.Errorf("candidateQuantity(%s, %.0f) = %v, want %v", tt.food.Name, tt.remaining, got, tt.want)
			}
		})
	}
}

func TestQuantityAlternatives(t *testing.T) {
	comp := newTestComposer(t, nil)
	catalog := testCatalog()

	tests := []struct {
		name string
		food core.Food
		base float64
		want []float64
	}{
		{
			name: "Test case 1: Mid-range base explores both directions",
			food: catalog[7],
			base: 100,
			want: []float64{60, 80, 125, 150},
		},
		{
			name: "Test case 2: Oil near its minimum drops the too-small step",
			food: catalog[14],
			base: 15,
			want: []float64{10, 20, 30},
		},
		{
			name: "Test case 3: Nuts at their minimum only step up",
			food: catalog[15],
			base: 30,
			want: []float64{40, 50},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := comp.quantityAlternatives(tt.food, tt.base)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("quantityAlternatives(%s, %.0f) mismatch (-want +got):\n%s", tt.food.Name, tt.base, diff)
			}
		})
	}
}

func TestPortionCapKinds(t *testing.T) {
	tests := []struct {
		name     string
		foodName string
		category core.FoodCategory
		want     float64
	}{
		{
			name:     "Test case 1: Oils",
			foodName: "Huile d'olive",
			category: core.CategoryFat,
			want:     15,
		},
		{
			name:     "Test case 2: Nut butters match on the nut word",
			foodName: "Beurre de cacahuète",
			category: core.CategoryFat,
			want:     30,
		},
		{
			name:     "Test case 3: Nuts by category",
			foodName: "Mélange montagnard",
			category: core.CategoryNuts,
			want:     30,
		},
		{
			name:     "Test case 4: Cheese",
			foodName: "Fromage de chèvre",
			category: core.CategoryDairy,
			want:     40,
		},
		{
			name:     "Test case 5: Eggs",
			foodName: "Oeufs brouillés",
			category: core.CategoryEggs,
			want:     100,
		},
		{
			name:     "Test case 6: Meat",
			foodName: "Blanc de poulet",
			category: core.CategoryMeat,
			want:     150,
		},
		{
			name:     "Test case 7: Fish",
			foodName: "Filet de saumon",
			category: core.CategoryFish,
			want:     150,
		},
		{
			name:     "Test case 8: Fruit takes the default",
			foodName: "Pomme",
			category: core.CategoryFruit,
			want:     150,
		},
		{
			name:     "Test case 9: Boiled is not oiled",
			foodName: "Boiled potatoes",
			category: core.CategoryStarch,
			want:     150,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := testFood("pc", tt.foodName, tt.category, 100, 5, 10, 2, 1, 0.50, 6, 3)
			if got := portionCap(f); got != tt.want {
				t.Errorf("portionCap(%s) = %v, want %v", tt.foodName, got, tt.want)
			}
		})
	}
}

func TestClampQuantityIdempotentOnLattice(t *testing.T) {
	for _, q := range []float64{10, 15, 20, 30, 50, 60, 100, 125, 200, 250, 500} {
		if got := clampQuantity(q, 10, 500); got != q {
			t.Errorf("clampQuantity(%v) = %v, want the value unchanged", q, got)
		}
	}
	if got := clampQuantity(7, 10, 500); got != 10 {
		t.Errorf("clampQuantity below the floor = %v, want 10", got)
	}
	if got := clampQuantity(730, 10, 500); got != 500 {
		t.Errorf("clampQuantity above the cap = %v, want 500", got)
	}
}
