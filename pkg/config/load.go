package config

import (
	"fmt"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to environment variable names. A key such as
// composition.attempts is read from MEALPLAN_COMPOSITION_ATTEMPTS.
const EnvPrefix = "MEALPLAN"

// Load builds the engine configuration from, in increasing precedence:
// built-in defaults, the YAML file at path (skipped when path is empty),
// and MEALPLAN_* environment variables. A .env file in the working
// directory is loaded into the environment first when present.
func Load(path string) (*EngineConfig, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	cfg := &EngineConfig{}
	if err := v.Unmarshal(cfg, decodeWithYAMLTags); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// decodeWithYAMLTags makes viper honor the same yaml tags the file format
// uses, so struct fields need a single tag set.
func decodeWithYAMLTags(dc *mapstructure.DecoderConfig) {
	dc.TagName = "yaml"
}

// setDefaults registers every key with viper. Registration is what lets
// AutomaticEnv pick up MEALPLAN_* overrides for keys absent from the file.
func setDefaults(v *viper.Viper, d *EngineConfig) {
	v.SetDefault("verbosity", d.Verbosity)
	v.SetDefault("season", d.Season)
	v.SetDefault("parallelism", d.Parallelism)
	v.SetDefault("tolerance", d.Tolerance)

	v.SetDefault("solver.strategy", d.Solver.Strategy)
	v.SetDefault("solver.maxIterations", d.Solver.MaxIterations)

	v.SetDefault("quantities.min", d.Quantities.Min)
	v.SetDefault("quantities.max", d.Quantities.Max)

	c := d.Composition
	v.SetDefault("composition.attempts", c.Attempts)
	v.SetDefault("composition.minFoodsPerMeal", c.MinFoodsPerMeal)
	v.SetDefault("composition.maxFoodsPerMeal", c.MaxFoodsPerMeal)
	v.SetDefault("composition.stopChance", c.StopChance)
	v.SetDefault("composition.stopBand.min", c.StopBand.Min)
	v.SetDefault("composition.stopBand.max", c.StopBand.Max)
	v.SetDefault("composition.finalStopBand.min", c.FinalStopBand.Min)
	v.SetDefault("composition.finalStopBand.max", c.FinalStopBand.Max)
	v.SetDefault("composition.minMealFraction", c.MinMealFraction)
	v.SetDefault("composition.swapCandidates", c.SwapCandidates)
	v.SetDefault("composition.varietyResetMultiplier", c.VarietyResetMultiplier)
	v.SetDefault("composition.priceLevel", c.PriceLevel)
	v.SetDefault("composition.healthLevel", c.HealthLevel)
	v.SetDefault("composition.varietyLevel", c.VarietyLevel)
	v.SetDefault("composition.referencePricePer100g", c.ReferencePricePer100g)
	v.SetDefault("composition.tieBreak", c.TieBreak)

	v.SetDefault("composition.weights.macro", c.Weights.Macro)
	v.SetDefault("composition.weights.price", c.Weights.Price)
	v.SetDefault("composition.weights.health", c.Weights.Health)
	v.SetDefault("composition.weights.variety", c.Weights.Variety)
	v.SetDefault("composition.weights.compatibility", c.Weights.Compatibility)
	v.SetDefault("composition.weights.coherence", c.Weights.Coherence)

	v.SetDefault("composition.macroFitWeights.calories", c.MacroFitWeights.Calories)
	v.SetDefault("composition.macroFitWeights.protein", c.MacroFitWeights.Protein)
	v.SetDefault("composition.macroFitWeights.carbs", c.MacroFitWeights.Carbs)
	v.SetDefault("composition.macroFitWeights.fat", c.MacroFitWeights.Fat)

	v.SetDefault("composition.mealEvalWeights.calories", c.MealEvalWeights.Calories)
	v.SetDefault("composition.mealEvalWeights.protein", c.MealEvalWeights.Protein)
	v.SetDefault("composition.mealEvalWeights.carbs", c.MealEvalWeights.Carbs)
	v.SetDefault("composition.mealEvalWeights.fat", c.MealEvalWeights.Fat)
	v.SetDefault("composition.palatabilityWeight", c.PalatabilityWeight)

	v.SetDefault("composition.overshoot.calories", overshootSteps(c.Overshoot.Calories))
	v.SetDefault("composition.overshoot.carbs", overshootSteps(c.Overshoot.Carbs))
	v.SetDefault("composition.overshoot.anyCarbExcess", c.Overshoot.AnyCarbExcess)
	v.SetDefault("composition.overshoot.gramExcess", c.Overshoot.GramExcess)
	v.SetDefault("composition.overshoot.gramExcessMultiplier", c.Overshoot.GramExcessMultiplier)
	v.SetDefault("composition.overshoot.proteinRichThreshold", c.Overshoot.ProteinRichThreshold)
	v.SetDefault("composition.overshoot.proteinRichMultiplier", c.Overshoot.ProteinRichMultiplier)

	v.SetDefault("composition.lowCarb.dailyThreshold", c.LowCarb.DailyThreshold)
	v.SetDefault("composition.lowCarb.foodFraction", c.LowCarb.FoodFraction)
	v.SetDefault("composition.lowCarb.exemptCalories", c.LowCarb.ExemptCalories)

	mealTypes := make(map[string]map[string]int, len(c.MealTypes))
	for mealType, override := range c.MealTypes {
		entry := make(map[string]int, 2)
		if override.MinFoods != nil {
			entry["minFoods"] = *override.MinFoods
		}
		if override.MaxFoods != nil {
			entry["maxFoods"] = *override.MaxFoods
		}
		mealTypes[string(mealType)] = entry
	}
	v.SetDefault("composition.mealTypes", mealTypes)
}

func overshootSteps(steps []OvershootStep) []map[string]float64 {
	out := make([]map[string]float64, 0, len(steps))
	for _, s := range steps {
		out = append(out, map[string]float64{"over": s.Over, "multiplier": s.Multiplier})
	}
	return out
}
