package quality

import (
	"gonum.org/v1/gonum/stat"

	"github.com/Virtus-Training/Plans-alimentaires/internal/logging"
	"github.com/Virtus-Training/Plans-alimentaires/pkg/core"
)

// Glycemic blend weights: how evenly carbs spread across the day's meals
// matters more than the fiber that accompanies them.
const (
	carbSpreadWeight = 0.70
	fiberWeight      = 0.30
)

// singleMealSpreadScore is the neutral spread score of a one-meal day, which
// has no distribution to rate.
const singleMealSpreadScore = 50.0

// glycemicWarnFloor marks days worth flagging in the logs.
const glycemicWarnFloor = 60.0

// Status labels for the blended glycemic score.
const (
	statusExcellent  = "Excellent"
	statusGood       = "Good"
	statusAcceptable = "Acceptable"
	statusImprove    = "Needs improvement"
	statusNoMeals    = "No meals"
	statusNoCarbs    = "No carbohydrates"
)

// glycemicBalance evaluates every day of the plan.
func (s *Scorer) glycemicBalance(plan core.MealPlan) []core.GlycemicBalance {
	balances := make([]core.GlycemicBalance, 0, plan.Days)
	for day := 1; day <= plan.Days; day++ {
		b := s.dayBalance(plan, day)
		if b.Score < glycemicWarnFloor {
			s.logger.V(logging.DEBUG).Info("glycemic balance below par",
				"day", day, "score", b.Score, "status", b.Status)
		}
		balances = append(balances, b)
	}
	return balances
}

// dayBalance rates how evenly one day spreads its carbohydrates across meals
// and how much fiber the day carries per gram of carbs.
func (s *Scorer) dayBalance(plan core.MealPlan, day int) core.GlycemicBalance {
	balance := core.GlycemicBalance{Day: day}

	meals := plan.MealsForDay(day)
	if len(meals) == 0 {
		balance.Status = statusNoMeals
		return balance
	}

	var totalCarbs float64
	shares := make([]float64, 0, len(meals))
	for _, m := range meals {
		carbs := m.Macros().Carbs
		totalCarbs += carbs
		shares = append(shares, carbs)
	}
	if totalCarbs == 0 {
		balance.Status = statusNoCarbs
		return balance
	}
	for i := range shares {
		shares[i] /= totalCarbs
	}

	fiberRatio := plan.DayTotals(day).Fiber / totalCarbs

	balance.DistributionScore = carbSpreadScore(shares)
	balance.FiberScore = fiberScore(fiberRatio)
	balance.FiberRatio = round2(fiberRatio)
	balance.Score = round1(balance.DistributionScore*carbSpreadWeight +
		balance.FiberScore*fiberWeight)
	balance.Status = glycemicStatus(balance.Score)
	return balance
}

// carbSpreadScore bands the sample standard deviation of the per-meal carb
// shares. Shares sum to one, so a low spread means no meal dominates the
// day's carb load.
func carbSpreadScore(shares []float64) float64 {
	if len(shares) < 2 {
		return singleMealSpreadScore
	}
	switch sd := stat.StdDev(shares, nil); {
	case sd < 0.15:
		return 100
	case sd < 0.25:
		return 80
	case sd < 0.35:
		return 60
	default:
		return 40
	}
}

// fiberScore bands grams of fiber per gram of carbohydrate. Around 10 g of
// fiber per 100 g of carbs slows absorption enough to count as balanced.
func fiberScore(ratio float64) float64 {
	switch {
	case ratio >= 0.12:
		return 100
	case ratio >= 0.08:
		return 80
	case ratio >= 0.05:
		return 60
	default:
		return 40
	}
}

func glycemicStatus(score float64) string {
	switch {
	case score >= 80:
		return statusExcellent
	case score >= 70:
		return statusGood
	case score >= 60:
		return statusAcceptable
	default:
		return statusImprove
	}
}
