package config

import (
	"strings"
	"testing"

	"github.com/Virtus-Training/Plans-alimentaires/pkg/core"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default() should validate, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*EngineConfig)
		wantErr string
	}{
		{
			name:    "unknown verbosity",
			mutate:  func(c *EngineConfig) { c.Verbosity = "loud" },
			wantErr: "verbosity",
		},
		{
			name:    "unknown season",
			mutate:  func(c *EngineConfig) { c.Season = "monsoon" },
			wantErr: "season",
		},
		{
			name:    "zero parallelism",
			mutate:  func(c *EngineConfig) { c.Parallelism = 0 },
			wantErr: "parallelism",
		},
		{
			name:    "tolerance at one",
			mutate:  func(c *EngineConfig) { c.Tolerance = 1.0 },
			wantErr: "tolerance",
		},
		{
			name:    "unknown solver strategy",
			mutate:  func(c *EngineConfig) { c.Solver.Strategy = "annealing" },
			wantErr: "solver: strategy",
		},
		{
			name:    "quantity max below min",
			mutate:  func(c *EngineConfig) { c.Quantities.Max = 5 },
			wantErr: "quantities: max",
		},
		{
			name:    "zero attempts",
			mutate:  func(c *EngineConfig) { c.Composition.Attempts = 0 },
			wantErr: "attempts",
		},
		{
			name:    "food bounds inverted",
			mutate:  func(c *EngineConfig) { c.Composition.MaxFoodsPerMeal = 2 },
			wantErr: "maxFoodsPerMeal",
		},
		{
			name:    "stop chance above one",
			mutate:  func(c *EngineConfig) { c.Composition.StopChance = 1.2 },
			wantErr: "stopChance",
		},
		{
			name:    "inverted stop band",
			mutate:  func(c *EngineConfig) { c.Composition.StopBand = Band{Min: 1.1, Max: 0.9} },
			wantErr: "stopBand",
		},
		{
			name:    "price level out of range",
			mutate:  func(c *EngineConfig) { c.Composition.PriceLevel = 11 },
			wantErr: "priceLevel",
		},
		{
			name:    "unknown tie break",
			mutate:  func(c *EngineConfig) { c.Composition.TieBreak = "random" },
			wantErr: "tieBreak",
		},
		{
			name: "all score weights zero",
			mutate: func(c *EngineConfig) {
				c.Composition.Weights = ScoreWeights{}
			},
			wantErr: "score weights",
		},
		{
			name: "overshoot ladder not decreasing",
			mutate: func(c *EngineConfig) {
				c.Composition.Overshoot.Calories = []OvershootStep{
					{Over: 0.05, Multiplier: 5},
					{Over: 0.10, Multiplier: 8},
				}
			},
			wantErr: "strictly increasing",
		},
		{
			name: "overshoot multiplier below one",
			mutate: func(c *EngineConfig) {
				c.Composition.Overshoot.Carbs = []OvershootStep{{Over: 0.10, Multiplier: 0.5}}
			},
			wantErr: "multiplier",
		},
		{
			name: "protein rich multiplier above one",
			mutate: func(c *EngineConfig) {
				c.Composition.Overshoot.ProteinRichMultiplier = 1.5
			},
			wantErr: "proteinRichMultiplier",
		},
		{
			name: "low carb fraction zero",
			mutate: func(c *EngineConfig) {
				c.Composition.LowCarb.FoodFraction = 0
			},
			wantErr: "foodFraction",
		},
		{
			name: "meal type override inverted",
			mutate: func(c *EngineConfig) {
				c.Composition.MealTypes[core.MealBreakfast] = MealTypeOverride{
					MinFoods: intPtr(5), MaxFoods: intPtr(2),
				}
			},
			wantErr: "mealTypes.breakfast",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatalf("expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %q", tt.wantErr, err.Error())
			}
		})
	}
}

func TestFoodBounds(t *testing.T) {
	cfg := Default()

	tests := []struct {
		name     string
		mealType core.MealType
		wantMin  int
		wantMax  int
	}{
		{"breakfast uses global bounds", core.MealBreakfast, 3, 9},
		{"lunch uses global bounds", core.MealLunch, 3, 9},
		{"morning snack is tightened", core.MealMorningSnack, 2, 4},
		{"afternoon snack is tightened", core.MealAfternoonSnack, 2, 4},
		{"evening snack is tightened", core.MealEveningSnack, 2, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			min, max := cfg.Composition.FoodBounds(tt.mealType)
			if min != tt.wantMin || max != tt.wantMax {
				t.Errorf("FoodBounds(%s) = [%d, %d], want [%d, %d]",
					tt.mealType, min, max, tt.wantMin, tt.wantMax)
			}
		})
	}

	t.Run("partial override inherits the other bound", func(t *testing.T) {
		cfg := Default()
		cfg.Composition.MealTypes[core.MealDinner] = MealTypeOverride{MinFoods: intPtr(4)}
		min, max := cfg.Composition.FoodBounds(core.MealDinner)
		if min != 4 || max != 9 {
			t.Errorf("FoodBounds(dinner) = [%d, %d], want [4, 9]", min, max)
		}
	})
}

func TestBandContains(t *testing.T) {
	band := Band{Min: 0.92, Max: 1.03}
	for _, tt := range []struct {
		ratio float64
		want  bool
	}{
		{0.91, false},
		{0.92, true},
		{1.0, true},
		{1.03, true},
		{1.04, false},
	} {
		if got := band.Contains(tt.ratio); got != tt.want {
			t.Errorf("Contains(%.2f) = %v, want %v", tt.ratio, got, tt.want)
		}
	}
}
