package planner

import (
	"errors"
	"fmt"

	"github.com/Virtus-Training/Plans-alimentaires/pkg/core"
)

var errNoPreset = errors.New("no distribution preset; supply an explicit distribution")

// distributionPresets maps a daily meal count to its default split of the
// daily targets. Lunch stays the largest meal throughout; snacks carry 10 %
// each.
var distributionPresets = map[int][]core.MealSlot{
	3: {
		{Index: 0, Type: core.MealBreakfast, Fraction: 0.30},
		{Index: 1, Type: core.MealLunch, Fraction: 0.40},
		{Index: 2, Type: core.MealDinner, Fraction: 0.30},
	},
	4: {
		{Index: 0, Type: core.MealBreakfast, Fraction: 0.25},
		{Index: 1, Type: core.MealLunch, Fraction: 0.35},
		{Index: 2, Type: core.MealAfternoonSnack, Fraction: 0.10},
		{Index: 3, Type: core.MealDinner, Fraction: 0.30},
	},
	5: {
		{Index: 0, Type: core.MealBreakfast, Fraction: 0.25},
		{Index: 1, Type: core.MealMorningSnack, Fraction: 0.10},
		{Index: 2, Type: core.MealLunch, Fraction: 0.30},
		{Index: 3, Type: core.MealAfternoonSnack, Fraction: 0.10},
		{Index: 4, Type: core.MealDinner, Fraction: 0.25},
	},
	6: {
		{Index: 0, Type: core.MealBreakfast, Fraction: 0.20},
		{Index: 1, Type: core.MealMorningSnack, Fraction: 0.10},
		{Index: 2, Type: core.MealLunch, Fraction: 0.25},
		{Index: 3, Type: core.MealAfternoonSnack, Fraction: 0.10},
		{Index: 4, Type: core.MealDinner, Fraction: 0.25},
		{Index: 5, Type: core.MealEveningSnack, Fraction: 0.10},
	},
}

// ResolveDistribution returns the ordered meal slots one day of the plan is
// divided into. An explicit distribution on the target wins and is re-indexed
// by position; otherwise the preset for the target's meal count applies.
// Counts without a preset require an explicit distribution.
func ResolveDistribution(target core.NutritionTarget) ([]core.MealSlot, error) {
	if len(target.Distribution) > 0 {
		slots := make([]core.MealSlot, len(target.Distribution))
		copy(slots, target.Distribution)
		for i := range slots {
			slots[i].Index = i
		}
		return slots, nil
	}

	preset, ok := distributionPresets[target.MealCount]
	if !ok {
		return nil, fmt.Errorf("meal count %d: %w", target.MealCount, errNoPreset)
	}
	slots := make([]core.MealSlot, len(preset))
	copy(slots, preset)
	return slots, nil
}
