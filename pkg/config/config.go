package config

import (
	"fmt"

	"github.com/Virtus-Training/Plans-alimentaires/pkg/core"
)

// Verbosity levels accepted by EngineConfig.Verbosity.
const (
	VerbosityInfo  = "info"
	VerbosityDebug = "debug"
	VerbosityTrace = "trace"
)

// Solver strategies accepted by SolverConfig.Strategy.
const (
	SolverExact   = "exact"
	SolverDescent = "descent"
)

// Tie-break policies accepted by CompositionConfig.TieBreak.
const (
	TieBreakFirst    = "first"
	TieBreakLowestID = "lowest-id"
)

// EngineConfig is the root configuration for the composition engine.
type EngineConfig struct {
	// Verbosity selects the log level: "info", "debug" or "trace".
	Verbosity string `yaml:"verbosity" json:"verbosity"`

	// Season biases variety scoring toward in-season produce. One of
	// "spring", "summer", "fall", "winter"; empty disables seasonal scoring.
	Season string `yaml:"season,omitempty" json:"season,omitempty"`

	// Parallelism caps how many plan days are composed concurrently.
	// 1 composes days sequentially, sharing variety state between days.
	Parallelism int `yaml:"parallelism" json:"parallelism"`

	// Tolerance is the acceptable relative deviation from macro targets. It
	// drives the solver's deviation caps, target consistency checking and
	// per-day plan validation.
	Tolerance float64 `yaml:"tolerance" json:"tolerance"`

	// Solver configures the quantity solver.
	Solver SolverConfig `yaml:"solver" json:"solver"`

	// Quantities bounds the grams assignable to a single food.
	Quantities QuantityConfig `yaml:"quantities" json:"quantities"`

	// Composition configures the greedy meal composer.
	Composition CompositionConfig `yaml:"composition" json:"composition"`
}

// SolverConfig selects and bounds the quantity solver.
type SolverConfig struct {
	// Strategy selects the solver: "exact" (linear program) or "descent"
	// (coordinate descent over practical increments).
	Strategy string `yaml:"strategy" json:"strategy"`

	// MaxIterations bounds the descent solver's search.
	MaxIterations int `yaml:"maxIterations" json:"maxIterations"`
}

// QuantityConfig bounds the grams assignable to a single food.
type QuantityConfig struct {
	// Min is the smallest quantity worth plating, in grams.
	Min float64 `yaml:"min" json:"min"`

	// Max is the largest quantity of one food in one meal, in grams.
	Max float64 `yaml:"max" json:"max"`
}

// ScoreWeights weighs the terms of the composer's candidate score.
// All terms are distances, lower is better.
type ScoreWeights struct {
	Macro         float64 `yaml:"macro" json:"macro"`
	Price         float64 `yaml:"price" json:"price"`
	Health        float64 `yaml:"health" json:"health"`
	Variety       float64 `yaml:"variety" json:"variety"`
	Compatibility float64 `yaml:"compatibility" json:"compatibility"`
	Coherence     float64 `yaml:"coherence" json:"coherence"`
}

// Sum returns the total of all weights.
func (w ScoreWeights) Sum() float64 {
	return w.Macro + w.Price + w.Health + w.Variety + w.Compatibility + w.Coherence
}

// MacroWeights weighs per-macro deviations when aggregating them into one
// number.
type MacroWeights struct {
	Calories float64 `yaml:"calories" json:"calories"`
	Protein  float64 `yaml:"protein" json:"protein"`
	Carbs    float64 `yaml:"carbs" json:"carbs"`
	Fat      float64 `yaml:"fat" json:"fat"`
}

// Band is an inclusive ratio interval.
type Band struct {
	Min float64 `yaml:"min" json:"min"`
	Max float64 `yaml:"max" json:"max"`
}

// Contains reports whether the ratio falls inside the band.
func (b Band) Contains(ratio float64) bool {
	return ratio >= b.Min && ratio <= b.Max
}

// OvershootStep maps a relative overshoot threshold to a distance multiplier.
type OvershootStep struct {
	// Over is the relative overshoot that triggers the multiplier.
	Over float64 `yaml:"over" json:"over"`

	// Multiplier scales the macro distance once triggered.
	Multiplier float64 `yaml:"multiplier" json:"multiplier"`
}

// OvershootConfig penalizes exceeding macro targets. Overshoot is far worse
// than undershoot for a composed meal, so the multipliers are convex.
type OvershootConfig struct {
	// Calories steps, largest threshold first.
	Calories []OvershootStep `yaml:"calories" json:"calories"`

	// Carbs steps, largest threshold first.
	Carbs []OvershootStep `yaml:"carbs" json:"carbs"`

	// AnyCarbExcess multiplies carb distance on any overshoot smaller than
	// the last Carbs step.
	AnyCarbExcess float64 `yaml:"anyCarbExcess" json:"anyCarbExcess"`

	// GramExcess is the absolute protein or fat overshoot, in grams, that
	// triggers GramExcessMultiplier.
	GramExcess float64 `yaml:"gramExcess" json:"gramExcess"`

	// GramExcessMultiplier scales protein/fat distance past GramExcess.
	GramExcessMultiplier float64 `yaml:"gramExcessMultiplier" json:"gramExcessMultiplier"`

	// ProteinRichThreshold is the grams of protein per 100 kcal above which
	// a food counts as protein-rich.
	ProteinRichThreshold float64 `yaml:"proteinRichThreshold" json:"proteinRichThreshold"`

	// ProteinRichMultiplier discounts the macro distance of protein-rich
	// foods. Must be in (0,1] to act as a bonus.
	ProteinRichMultiplier float64 `yaml:"proteinRichMultiplier" json:"proteinRichMultiplier"`
}

// LowCarbConfig filters carb-heavy foods out of low-carb plans.
type LowCarbConfig struct {
	// DailyThreshold is the daily carb target, in grams, below which the
	// filter activates.
	DailyThreshold float64 `yaml:"dailyThreshold" json:"dailyThreshold"`

	// FoodFraction caps a food's carbs per 100 g at this fraction of the
	// meal's carb target.
	FoodFraction float64 `yaml:"foodFraction" json:"foodFraction"`

	// ExemptCalories spares low-calorie foods (vegetables) from the filter.
	ExemptCalories float64 `yaml:"exemptCalories" json:"exemptCalories"`
}

// MealTypeOverride adjusts composition settings for one meal type. Nil fields
// inherit the global value.
type MealTypeOverride struct {
	MinFoods *int `yaml:"minFoods,omitempty" json:"minFoods,omitempty"`
	MaxFoods *int `yaml:"maxFoods,omitempty" json:"maxFoods,omitempty"`
}

// CompositionConfig configures the greedy meal composer.
type CompositionConfig struct {
	// Attempts is how many compositions to try per meal, keeping the best.
	Attempts int `yaml:"attempts" json:"attempts"`

	// MinFoodsPerMeal is the smallest acceptable meal, in foods.
	MinFoodsPerMeal int `yaml:"minFoodsPerMeal" json:"minFoodsPerMeal"`

	// MaxFoodsPerMeal is the largest acceptable meal, in foods.
	MaxFoodsPerMeal int `yaml:"maxFoodsPerMeal" json:"maxFoodsPerMeal"`

	// StopChance is the probability of stopping early once the meal's
	// calorie ratio enters StopBand with at least MinFoodsPerMeal selected.
	StopChance float64 `yaml:"stopChance" json:"stopChance"`

	// StopBand is the acceptable calorie ratio for non-final meals.
	StopBand Band `yaml:"stopBand" json:"stopBand"`

	// FinalStopBand is the tighter calorie ratio for the day's last meal.
	FinalStopBand Band `yaml:"finalStopBand" json:"finalStopBand"`

	// MinMealFraction floors a corrected meal target at this fraction of its
	// distributed share, so earlier overshoot can never shrink the last meal
	// below a plausible size.
	MinMealFraction float64 `yaml:"minMealFraction" json:"minMealFraction"`

	// SwapCandidates bounds the alternatives tried per food during local
	// optimization.
	SwapCandidates int `yaml:"swapCandidates" json:"swapCandidates"`

	// VarietyResetMultiplier scales the pool-size floor below which the
	// repetition history resets: fewer than MaxFoodsPerMeal × multiplier
	// unused foods left clears the history.
	VarietyResetMultiplier int `yaml:"varietyResetMultiplier" json:"varietyResetMultiplier"`

	// PriceLevel is the desired spending level from 1 (cheap) to 10 (premium).
	PriceLevel int `yaml:"priceLevel" json:"priceLevel"`

	// HealthLevel is the desired health index from 1 to 10.
	HealthLevel int `yaml:"healthLevel" json:"healthLevel"`

	// VarietyLevel is the desired exoticness from 1 (plain) to 10 (exotic).
	VarietyLevel int `yaml:"varietyLevel" json:"varietyLevel"`

	// ReferencePricePer100g anchors price scoring, in currency per 100 g.
	ReferencePricePer100g float64 `yaml:"referencePricePer100g" json:"referencePricePer100g"`

	// TieBreak picks among equal-scoring attempts: "first" or "lowest-id".
	TieBreak string `yaml:"tieBreak" json:"tieBreak"`

	// Weights weighs the candidate score terms.
	Weights ScoreWeights `yaml:"weights" json:"weights"`

	// MacroFitWeights weighs per-macro distances in the candidate score.
	MacroFitWeights MacroWeights `yaml:"macroFitWeights" json:"macroFitWeights"`

	// MealEvalWeights weighs per-macro deviations when ranking finished
	// meal attempts.
	MealEvalWeights MacroWeights `yaml:"mealEvalWeights" json:"mealEvalWeights"`

	// PalatabilityWeight weighs (1 − palatability) when ranking finished
	// meal attempts.
	PalatabilityWeight float64 `yaml:"palatabilityWeight" json:"palatabilityWeight"`

	// Overshoot penalizes exceeding macro targets.
	Overshoot OvershootConfig `yaml:"overshoot" json:"overshoot"`

	// LowCarb filters carb-heavy foods out of low-carb plans.
	LowCarb LowCarbConfig `yaml:"lowCarb" json:"lowCarb"`

	// MealTypes overrides composition settings per meal type.
	MealTypes map[core.MealType]MealTypeOverride `yaml:"mealTypes,omitempty" json:"mealTypes,omitempty"`
}

// FoodBounds returns the effective min/max foods for a meal type, merging
// any per-meal-type override over the global values.
func (c *CompositionConfig) FoodBounds(mealType core.MealType) (min, max int) {
	min, max = c.MinFoodsPerMeal, c.MaxFoodsPerMeal
	override, ok := c.MealTypes[mealType]
	if !ok {
		return min, max
	}
	if override.MinFoods != nil {
		min = *override.MinFoods
	}
	if override.MaxFoods != nil {
		max = *override.MaxFoods
	}
	return min, max
}

// Default returns the built-in configuration.
func Default() *EngineConfig {
	snack := MealTypeOverride{MinFoods: intPtr(2), MaxFoods: intPtr(4)}
	return &EngineConfig{
		Verbosity:   VerbosityInfo,
		Season:      "",
		Parallelism: 1,
		Tolerance:   0.10,
		Solver: SolverConfig{
			Strategy:      SolverExact,
			MaxIterations: 400,
		},
		Quantities: QuantityConfig{
			Min: 10,
			Max: 500,
		},
		Composition: CompositionConfig{
			Attempts:               3,
			MinFoodsPerMeal:        3,
			MaxFoodsPerMeal:        9,
			StopChance:             0.6,
			StopBand:               Band{Min: 0.92, Max: 1.03},
			FinalStopBand:          Band{Min: 0.95, Max: 1.05},
			MinMealFraction:        0.5,
			SwapCandidates:         10,
			VarietyResetMultiplier: 5,
			PriceLevel:             5,
			HealthLevel:            5,
			VarietyLevel:           5,
			ReferencePricePer100g:  0.50,
			TieBreak:               TieBreakFirst,
			Weights: ScoreWeights{
				Macro:         0.26,
				Price:         0.06,
				Health:        0.05,
				Variety:       0.28,
				Compatibility: 0.15,
				Coherence:     0.20,
			},
			MacroFitWeights: MacroWeights{Calories: 2.0, Protein: 2.5, Carbs: 1.8, Fat: 1.2},
			MealEvalWeights: MacroWeights{Calories: 2.0, Protein: 2.5, Carbs: 1.0, Fat: 1.2},
			PalatabilityWeight: 0.3,
			Overshoot: OvershootConfig{
				Calories: []OvershootStep{
					{Over: 0.10, Multiplier: 8},
					{Over: 0.05, Multiplier: 5},
					{Over: 0.02, Multiplier: 2},
				},
				Carbs: []OvershootStep{
					{Over: 0.15, Multiplier: 15},
					{Over: 0.08, Multiplier: 8},
					{Over: 0.03, Multiplier: 4},
				},
				AnyCarbExcess:         1.5,
				GramExcess:            10,
				GramExcessMultiplier:  3,
				ProteinRichThreshold:  5,
				ProteinRichMultiplier: 0.8,
			},
			LowCarb: LowCarbConfig{
				DailyThreshold: 150,
				FoodFraction:   0.15,
				ExemptCalories: 50,
			},
			MealTypes: map[core.MealType]MealTypeOverride{
				core.MealMorningSnack:   snack,
				core.MealAfternoonSnack: snack,
				core.MealEveningSnack:   snack,
			},
		},
	}
}

// Validate checks for invalid configuration values.
func (c *EngineConfig) Validate() error {
	switch c.Verbosity {
	case VerbosityInfo, VerbosityDebug, VerbosityTrace:
	default:
		return fmt.Errorf("verbosity must be one of info, debug, trace, got %q", c.Verbosity)
	}
	switch c.Season {
	case "", "spring", "summer", "fall", "winter":
	default:
		return fmt.Errorf("season must be one of spring, summer, fall, winter or empty, got %q", c.Season)
	}
	if c.Parallelism < 1 {
		return fmt.Errorf("parallelism must be >= 1, got %d", c.Parallelism)
	}
	if c.Tolerance <= 0 || c.Tolerance >= 1 {
		return fmt.Errorf("tolerance must be between 0 and 1, got %.2f", c.Tolerance)
	}
	if err := c.Solver.validate(); err != nil {
		return fmt.Errorf("solver: %w", err)
	}
	if err := c.Quantities.validate(); err != nil {
		return fmt.Errorf("quantities: %w", err)
	}
	if err := c.Composition.validate(); err != nil {
		return fmt.Errorf("composition: %w", err)
	}
	return nil
}

func (c *SolverConfig) validate() error {
	switch c.Strategy {
	case SolverExact, SolverDescent:
	default:
		return fmt.Errorf("strategy must be %q or %q, got %q", SolverExact, SolverDescent, c.Strategy)
	}
	if c.MaxIterations < 1 {
		return fmt.Errorf("maxIterations must be >= 1, got %d", c.MaxIterations)
	}
	return nil
}

func (c *QuantityConfig) validate() error {
	if c.Min <= 0 {
		return fmt.Errorf("min must be > 0, got %.1f", c.Min)
	}
	if c.Max <= c.Min {
		return fmt.Errorf("max (%.1f) must be > min (%.1f)", c.Max, c.Min)
	}
	return nil
}

func (c *CompositionConfig) validate() error {
	if c.Attempts < 1 {
		return fmt.Errorf("attempts must be >= 1, got %d", c.Attempts)
	}
	if c.MinFoodsPerMeal < 1 {
		return fmt.Errorf("minFoodsPerMeal must be >= 1, got %d", c.MinFoodsPerMeal)
	}
	if c.MaxFoodsPerMeal < c.MinFoodsPerMeal {
		return fmt.Errorf("maxFoodsPerMeal (%d) must be >= minFoodsPerMeal (%d)",
			c.MaxFoodsPerMeal, c.MinFoodsPerMeal)
	}
	if c.StopChance < 0 || c.StopChance > 1 {
		return fmt.Errorf("stopChance must be between 0 and 1, got %.2f", c.StopChance)
	}
	for _, band := range []struct {
		name string
		b    Band
	}{{"stopBand", c.StopBand}, {"finalStopBand", c.FinalStopBand}} {
		if band.b.Min <= 0 || band.b.Max < band.b.Min {
			return fmt.Errorf("%s must satisfy 0 < min <= max, got [%.2f, %.2f]",
				band.name, band.b.Min, band.b.Max)
		}
	}
	if c.MinMealFraction <= 0 || c.MinMealFraction > 1 {
		return fmt.Errorf("minMealFraction must be in (0,1], got %.2f", c.MinMealFraction)
	}
	if c.SwapCandidates < 0 {
		return fmt.Errorf("swapCandidates must be >= 0, got %d", c.SwapCandidates)
	}
	if c.VarietyResetMultiplier < 1 {
		return fmt.Errorf("varietyResetMultiplier must be >= 1, got %d", c.VarietyResetMultiplier)
	}
	for _, level := range []struct {
		name  string
		value int
	}{{"priceLevel", c.PriceLevel}, {"healthLevel", c.HealthLevel}, {"varietyLevel", c.VarietyLevel}} {
		if level.value < 1 || level.value > 10 {
			return fmt.Errorf("%s must be between 1 and 10, got %d", level.name, level.value)
		}
	}
	if c.ReferencePricePer100g <= 0 {
		return fmt.Errorf("referencePricePer100g must be > 0, got %.2f", c.ReferencePricePer100g)
	}
	switch c.TieBreak {
	case TieBreakFirst, TieBreakLowestID:
	default:
		return fmt.Errorf("tieBreak must be %q or %q, got %q", TieBreakFirst, TieBreakLowestID, c.TieBreak)
	}
	if c.Weights.Sum() <= 0 {
		return fmt.Errorf("score weights must sum to > 0, got %.2f", c.Weights.Sum())
	}
	for _, w := range []struct {
		name  string
		value float64
	}{
		{"weights.macro", c.Weights.Macro}, {"weights.price", c.Weights.Price},
		{"weights.health", c.Weights.Health}, {"weights.variety", c.Weights.Variety},
		{"weights.compatibility", c.Weights.Compatibility}, {"weights.coherence", c.Weights.Coherence},
	} {
		if w.value < 0 {
			return fmt.Errorf("%s must be >= 0, got %.2f", w.name, w.value)
		}
	}
	if c.PalatabilityWeight < 0 {
		return fmt.Errorf("palatabilityWeight must be >= 0, got %.2f", c.PalatabilityWeight)
	}
	if err := c.Overshoot.validate(); err != nil {
		return fmt.Errorf("overshoot: %w", err)
	}
	if c.LowCarb.DailyThreshold < 0 {
		return fmt.Errorf("lowCarb.dailyThreshold must be >= 0, got %.1f", c.LowCarb.DailyThreshold)
	}
	if c.LowCarb.FoodFraction <= 0 || c.LowCarb.FoodFraction > 1 {
		return fmt.Errorf("lowCarb.foodFraction must be in (0,1], got %.2f", c.LowCarb.FoodFraction)
	}
	if c.LowCarb.ExemptCalories < 0 {
		return fmt.Errorf("lowCarb.exemptCalories must be >= 0, got %.1f", c.LowCarb.ExemptCalories)
	}
	for mealType, override := range c.MealTypes {
		min, max := c.FoodBounds(mealType)
		if min < 1 || max < min {
			return fmt.Errorf("mealTypes.%s: food bounds [%d, %d] invalid", mealType, min, max)
		}
		_ = override
	}
	return nil
}

func (c *OvershootConfig) validate() error {
	for _, ladder := range []struct {
		name  string
		steps []OvershootStep
	}{{"calories", c.Calories}, {"carbs", c.Carbs}} {
		prev := 0.0
		for i := len(ladder.steps) - 1; i >= 0; i-- {
			step := ladder.steps[i]
			if step.Over <= prev {
				return fmt.Errorf("%s steps must have strictly increasing thresholds toward the front", ladder.name)
			}
			if step.Multiplier < 1 {
				return fmt.Errorf("%s step multiplier must be >= 1, got %.1f", ladder.name, step.Multiplier)
			}
			prev = step.Over
		}
	}
	if c.AnyCarbExcess < 1 {
		return fmt.Errorf("anyCarbExcess must be >= 1, got %.2f", c.AnyCarbExcess)
	}
	if c.GramExcess <= 0 {
		return fmt.Errorf("gramExcess must be > 0, got %.1f", c.GramExcess)
	}
	if c.GramExcessMultiplier < 1 {
		return fmt.Errorf("gramExcessMultiplier must be >= 1, got %.1f", c.GramExcessMultiplier)
	}
	if c.ProteinRichThreshold < 0 {
		return fmt.Errorf("proteinRichThreshold must be >= 0, got %.1f", c.ProteinRichThreshold)
	}
	if c.ProteinRichMultiplier <= 0 || c.ProteinRichMultiplier > 1 {
		return fmt.Errorf("proteinRichMultiplier must be in (0,1], got %.2f", c.ProteinRichMultiplier)
	}
	return nil
}

func intPtr(v int) *int { return &v }
