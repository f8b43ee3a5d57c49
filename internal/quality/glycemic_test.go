package quality

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Virtus-Training/Plans-alimentaires/pkg/core"
)

func TestCarbSpreadScoreBands(t *testing.T) {
	tests := []struct {
		name   string
		shares []float64
		want   float64
	}{
		{name: "Test case 1: Perfectly even thirds", shares: []float64{1.0 / 3, 1.0 / 3, 1.0 / 3}, want: 100},
		{name: "Test case 2: Mild tilt", shares: []float64{0.4, 0.35, 0.25}, want: 100},
		{name: "Test case 3: Noticeable tilt", shares: []float64{0.5, 0.3, 0.2}, want: 80},
		{name: "Test case 4: One meal dominates", shares: []float64{0.7, 0.15, 0.15}, want: 60},
		{name: "Test case 5: Nearly everything in one meal", shares: []float64{0.9, 0.05, 0.05}, want: 40},
		{name: "Test case 6: Two even meals", shares: []float64{0.5, 0.5}, want: 100},
		{name: "Test case 7: Two lopsided meals", shares: []float64{0.8, 0.2}, want: 40},
		{name: "Test case 8: A single meal has no spread to rate", shares: []float64{1}, want: 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := carbSpreadScore(tt.shares); got != tt.want {
				t.Errorf("carbSpreadScore(%v) = %v, want %v", tt.shares, got, tt.want)
			}
		})
	}
}

func TestFiberScoreBands(t *testing.T) {
	tests := []struct {
		ratio float64
		want  float64
	}{
		{ratio: 0.15, want: 100},
		{ratio: 0.12, want: 100},
		{ratio: 0.10, want: 80},
		{ratio: 0.08, want: 80},
		{ratio: 0.06, want: 60},
		{ratio: 0.05, want: 60},
		{ratio: 0.04, want: 40},
		{ratio: 0, want: 40},
	}
	for _, tt := range tests {
		if got := fiberScore(tt.ratio); got != tt.want {
			t.Errorf("fiberScore(%v) = %v, want %v", tt.ratio, got, tt.want)
		}
	}
}

func TestDayBalance(t *testing.T) {
	s := newTestScorer(t)

	fibrousCereal := testFood("Céréale fibreuse", core.CategoryCereal, 238, 5, 50, 2, 6)
	plainStarch := testFood("Féculent nature", core.CategoryStarch, 200, 0, 50, 0, 0)
	mediumStarch := testFood("Féculent moyen", core.CategoryStarch, 120, 0, 30, 0, 0)
	lightStarch := testFood("Féculent léger", core.CategoryStarch, 80, 0, 20, 0, 0)
	fibrousStarch := testFood("Féculent fibreux", core.CategoryStarch, 200, 0, 50, 0, 6)
	plainMeat := testFood("Viande nature", core.CategoryMeat, 104, 26, 0, 0, 0)

	tests := []struct {
		name string
		plan core.MealPlan
		day  int
		want core.GlycemicBalance
	}{
		{
			name: "Test case 1: Even carbs with plenty of fiber",
			plan: planOf(1, rationTarget,
				mealOn(1, portion(fibrousCereal, 100)),
				mealOn(1, portion(fibrousCereal, 100)),
				mealOn(1, portion(fibrousCereal, 100)),
			),
			day: 1,
			want: core.GlycemicBalance{
				Day: 1, Score: 100, Status: "Excellent",
				DistributionScore: 100, FiberScore: 100, FiberRatio: 0.12,
			},
		},
		{
			name: "Test case 2: Carbs piled into one meal without fiber",
			plan: planOf(1, rationTarget,
				mealOn(1, portion(plainStarch, 100)),
				mealOn(1, portion(plainMeat, 100)),
				mealOn(1, portion(plainMeat, 100)),
			),
			day: 1,
			want: core.GlycemicBalance{
				Day: 1, Score: 40, Status: "Needs improvement",
				DistributionScore: 40, FiberScore: 40, FiberRatio: 0,
			},
		},
		{
			name: "Test case 3: Single fibrous meal",
			plan: planOf(1, rationTarget, mealOn(1, portion(fibrousCereal, 100))),
			day:  1,
			want: core.GlycemicBalance{
				Day: 1, Score: 65, Status: "Acceptable",
				DistributionScore: 50, FiberScore: 100, FiberRatio: 0.12,
			},
		},
		{
			name: "Test case 4: Moderate tilt with modest fiber",
			plan: planOf(1, rationTarget,
				mealOn(1, portion(fibrousStarch, 100)),
				mealOn(1, portion(mediumStarch, 100)),
				mealOn(1, portion(lightStarch, 100)),
			),
			day: 1,
			want: core.GlycemicBalance{
				Day: 1, Score: 74, Status: "Good",
				DistributionScore: 80, FiberScore: 60, FiberRatio: 0.06,
			},
		},
		{
			name: "Test case 5: A day without carbohydrates",
			plan: planOf(1, rationTarget, mealOn(1, portion(plainMeat, 100))),
			day:  1,
			want: core.GlycemicBalance{Day: 1, Status: "No carbohydrates"},
		},
		{
			name: "Test case 6: A day without meals",
			plan: planOf(2, rationTarget, mealOn(1, portion(fibrousCereal, 100))),
			day:  2,
			want: core.GlycemicBalance{Day: 2, Status: "No meals"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.dayBalance(tt.plan, tt.day)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("day balance mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGlycemicBalanceCoversEveryDay(t *testing.T) {
	s := newTestScorer(t)

	fibrousCereal := testFood("Céréale fibreuse", core.CategoryCereal, 238, 5, 50, 2, 6)
	plainStarch := testFood("Féculent nature", core.CategoryStarch, 200, 0, 50, 0, 0)

	plan := planOf(2, rationTarget,
		mealOn(1, portion(fibrousCereal, 100)),
		mealOn(1, portion(fibrousCereal, 100)),
		mealOn(1, portion(fibrousCereal, 100)),
		mealOn(2, portion(plainStarch, 100)),
	)

	want := []core.GlycemicBalance{
		{Day: 1, Score: 100, Status: "Excellent", DistributionScore: 100, FiberScore: 100, FiberRatio: 0.12},
		{Day: 2, Score: 47, Status: "Needs improvement", DistributionScore: 50, FiberScore: 40, FiberRatio: 0},
	}
	if diff := cmp.Diff(want, s.glycemicBalance(plan)); diff != "" {
		t.Errorf("glycemic balance mismatch (-want +got):\n%s", diff)
	}
}
