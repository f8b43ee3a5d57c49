package composer

import (
	"math"

	"github.com/Virtus-Training/Plans-alimentaires/internal/compat"
	"github.com/Virtus-Training/Plans-alimentaires/internal/variety"
	"github.com/Virtus-Training/Plans-alimentaires/pkg/core"
)

// scoreCandidate rates adding one food to the meal under construction. It
// tries the plausible quantity and its practical neighbors and returns the
// best quantity with its composite distance; lower is better.
func (c *Composer) scoreCandidate(req Request, f core.Food, selected []core.FoodAssignment, accumulated core.MacroProfile, tracker variety.Reader) (float64, float64) {
	remaining := req.Target.Macros.Calories - accumulated.Calories
	base := c.candidateQuantity(f, remaining)
	if base <= 0 {
		return 0, math.Inf(1)
	}

	bestQty := base
	bestScore := c.compositeScore(req, f, base, selected, accumulated, tracker)
	for _, qty := range c.quantityAlternatives(f, base) {
		if score := c.compositeScore(req, f, qty, selected, accumulated, tracker); score < bestScore {
			bestQty, bestScore = qty, score
		}
	}
	return bestQty, bestScore
}

// compositeScore blends the six candidate distances and inflates the result
// when the projected totals overshoot the target.
func (c *Composer) compositeScore(req Request, f core.Food, qty float64, selected []core.FoodAssignment, accumulated core.MacroProfile, tracker variety.Reader) float64 {
	after := accumulated.Add(f.PerHundredGrams.ForQuantity(qty))

	w := c.cfg.Composition.Weights
	score := w.Macro*c.macroFitDistance(f, after, req.Target.Macros) +
		w.Price*c.priceDistance(f) +
		w.Health*c.healthDistance(f) +
		w.Variety*c.varietyDistance(f, tracker) +
		w.Compatibility*c.compatibilityDistance(f, selected) +
		w.Coherence*c.coherenceDistance(f, selected, req.Target.Slot.Type)
	score /= w.Sum()

	return score * c.overshootMultiplier(after, req.Target.Macros)
}

// macroFitDistance measures how far the projected meal totals would sit from
// the target. Overshoot counts three times as hard as undershoot, and
// protein-dense candidates get a discount.
func (c *Composer) macroFitDistance(f core.Food, after, target core.MacroProfile) float64 {
	w := c.cfg.Composition.MacroFitWeights
	var sum, weights float64
	for _, term := range []struct {
		weight, after, target float64
	}{
		{w.Calories, after.Calories, target.Calories},
		{w.Protein, after.Protein, target.Protein},
		{w.Carbs, after.Carbs, target.Carbs},
		{w.Fat, after.Fat, target.Fat},
	} {
		ratio := term.after / math.Max(term.target, 1)
		d := math.Abs(1 - ratio)
		if ratio > 1 {
			d += 2 * (ratio - 1)
		}
		sum += term.weight * d
		weights += term.weight
	}
	dist := sum / weights
	if c.proteinRich(f) {
		dist *= c.cfg.Composition.Overshoot.ProteinRichMultiplier
	}
	return dist
}

// proteinRich reports whether a food provides more protein per 100 kcal than
// the configured threshold.
func (c *Composer) proteinRich(f core.Food) bool {
	p := f.PerHundredGrams
	if p.Calories <= 0 {
		return false
	}
	return p.Protein/p.Calories*100 > c.cfg.Composition.Overshoot.ProteinRichThreshold
}

// priceDistance compares a food's price ratio against the desired spending
// level; level 5 targets the reference price exactly. Unpriced foods score
// neutral.
func (c *Composer) priceDistance(f core.Food) float64 {
	comp := &c.cfg.Composition
	if f.PricePerHundredGrams <= 0 {
		return 0.5
	}
	ratio := f.PricePerHundredGrams / comp.ReferencePricePer100g
	desired := float64(comp.PriceLevel) / 5.0
	return math.Min(1, math.Abs(ratio-desired))
}

// healthDistance measures how far a food's health index sits from the
// desired level. Unrated foods count as middling.
func (c *Composer) healthDistance(f core.Food) float64 {
	index := f.HealthIndex
	if index < 1 {
		index = 5
	}
	return math.Abs(float64(index-c.cfg.Composition.HealthLevel)) / 9.0
}

// varietyIndexSteps maps |VarietyIndex − VarietyLevel| to a distance. The
// gaps widen so near misses stay cheap and far ones saturate.
var varietyIndexSteps = []float64{0, 0.15, 0.35, 0.60, 0.85, 1.0}

// varietyDistance combines the stepped variety-index distance with the
// repetition penalty and the seasonal modifier. In-season produce can push
// the distance below zero, making it actively attractive.
func (c *Composer) varietyDistance(f core.Food, tracker variety.Reader) float64 {
	index := f.VarietyIndex
	if index < 1 {
		index = 5
	}
	diff := index - c.cfg.Composition.VarietyLevel
	if diff < 0 {
		diff = -diff
	}
	if diff >= len(varietyIndexSteps) {
		diff = len(varietyIndexSteps) - 1
	}

	dist := varietyIndexSteps[diff]
	dist += tracker.Penalty(f.ID)
	dist += compat.VarietyAdjustment(c.deps.Calendar.Bonus(f.Name, c.season))
	return dist
}

// compatibilityDistance is one minus the candidate's mean pair score with
// the foods already selected. The first food of a meal scores neutral.
func (c *Composer) compatibilityDistance(f core.Food, selected []core.FoodAssignment) float64 {
	if len(selected) == 0 {
		return 0.5
	}
	var total float64
	for _, a := range selected {
		total += c.deps.Matrix.Score(f, a.Food)
	}
	return 1 - total/float64(len(selected))
}

// coherenceDistance combines how foreign the candidate's category is to the
// meal type with the worst clash against the foods already selected.
func (c *Composer) coherenceDistance(f core.Food, selected []core.FoodAssignment, mealType core.MealType) float64 {
	dist := 1 - c.deps.Matrix.MealAffinity(f.Category, mealType)
	var worst float64
	for _, a := range selected {
		if p := c.deps.Matrix.CombinationPenalty(f, a.Food); p > worst {
			worst = p
		}
	}
	return dist + worst
}

// overshootMultiplier inflates a candidate's score when the projected totals
// overshoot the target. The ladders are convex: small excursions cost a
// little, large ones price the candidate out entirely. Step lists are walked
// largest threshold first, so only the strongest applicable multiplier per
// macro fires.
func (c *Composer) overshootMultiplier(after, target core.MacroProfile) float64 {
	o := c.cfg.Composition.Overshoot
	multiplier := 1.0

	calOver := after.Calories/math.Max(target.Calories, 1) - 1
	for _, step := range o.Calories {
		if calOver > step.Over {
			multiplier *= step.Multiplier
			break
		}
	}

	carbOver := after.Carbs/math.Max(target.Carbs, 1) - 1
	matched := false
	for _, step := range o.Carbs {
		if carbOver > step.Over {
			multiplier *= step.Multiplier
			matched = true
			break
		}
	}
	if !matched && carbOver > 0 {
		multiplier *= o.AnyCarbExcess
	}

	if after.Protein > target.Protein+o.GramExcess {
		multiplier *= o.GramExcessMultiplier
	}
	if after.Fat > target.Fat+o.GramExcess {
		multiplier *= o.GramExcessMultiplier
	}
	return multiplier
}

// evaluateMeal ranks a finished attempt: weighted relative macro deviations
// plus a disharmony penalty. Lower is better; an empty meal is infinitely
// bad.
func (c *Composer) evaluateMeal(assignments []core.FoodAssignment, target core.MacroProfile) float64 {
	if len(assignments) == 0 {
		return math.Inf(1)
	}
	var totals core.MacroProfile
	foods := make([]core.Food, 0, len(assignments))
	for _, a := range assignments {
		totals = totals.Add(a.Macros())
		foods = append(foods, a.Food)
	}

	w := c.cfg.Composition.MealEvalWeights
	var score float64
	for _, term := range []struct {
		weight, actual, target float64
	}{
		{w.Calories, totals.Calories, target.Calories},
		{w.Protein, totals.Protein, target.Protein},
		{w.Carbs, totals.Carbs, target.Carbs},
		{w.Fat, totals.Fat, target.Fat},
	} {
		score += term.weight * math.Abs(term.actual-term.target) / math.Max(term.target, 1)
	}
	score += (1 - c.deps.Matrix.Palatability(foods)) * c.cfg.Composition.PalatabilityWeight
	return score
}
