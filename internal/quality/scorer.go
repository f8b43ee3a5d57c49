package quality

import (
	"fmt"
	"math"

	"github.com/go-logr/logr"

	"github.com/Virtus-Training/Plans-alimentaires/internal/compat"
	"github.com/Virtus-Training/Plans-alimentaires/internal/logging"
	"github.com/Virtus-Training/Plans-alimentaires/pkg/core"
)

// Composite weights of the four quality axes.
const (
	nutritionWeight    = 0.40
	diversityWeight    = 0.30
	palatabilityWeight = 0.20
	practicalityWeight = 0.10
)

// Diversity goals: a day should draw on this many distinct foods and the
// whole plan on this many categories to earn full marks.
const (
	distinctFoodsPerDayGoal = 20.0
	distinctCategoriesGoal  = 8.0
)

// neutralPalatability is the score of a plan with no multi-food meal to rate.
const neutralPalatability = 75.0

// practicalStep is the kitchen-measure granularity. A portion is practical
// when it lands on a multiple of this step.
const practicalStep = 5.0

// practicalEpsilon tolerates float noise when testing lattice membership.
const practicalEpsilon = 1e-6

// Sub-score floors under which an axis earns a recommendation.
const (
	nutritionFloor    = 80.0
	diversityFloor    = 70.0
	palatabilityFloor = 70.0
	practicalityFloor = 75.0
)

// Scorer rates finished plans. It is immutable after construction and safe
// for concurrent use.
type Scorer struct {
	matrix *compat.Matrix
	logger logr.Logger
}

// NewScorer builds a Scorer around the compatibility matrix the palatability
// axis reads from.
func NewScorer(matrix *compat.Matrix, logger logr.Logger) (*Scorer, error) {
	if matrix == nil {
		return nil, fmt.Errorf("quality scorer requires a compatibility matrix")
	}
	if logger.GetSink() == nil {
		logger = logging.Log
	}
	return &Scorer{matrix: matrix, logger: logger}, nil
}

// Score evaluates the plan along all four axes and attaches the per-day
// glycemic diagnostics.
func (s *Scorer) Score(plan core.MealPlan) core.QualityReport {
	nutrition := nutritionScore(plan)
	diversity := diversityScore(plan)
	palatability := s.palatabilityScore(plan)
	practicality := practicalityScore(plan)

	composite := nutrition*nutritionWeight +
		diversity*diversityWeight +
		palatability*palatabilityWeight +
		practicality*practicalityWeight

	s.logger.V(logging.DEBUG).Info("plan scored",
		"nutrition", nutrition,
		"diversity", diversity,
		"palatability", palatability,
		"practicality", practicality,
		"composite", composite)

	return core.QualityReport{
		NutritionScore:    round2(nutrition),
		DiversityScore:    round2(diversity),
		PalatabilityScore: round2(palatability),
		PracticalityScore: round2(practicality),
		CompositeScore:    round2(composite),
		Grade:             gradeFor(composite),
		Recommendations:   recommendations(nutrition, diversity, palatability, practicality),
		GlycemicBalance:   s.glycemicBalance(plan),
	}
}

// nutritionScore converts the mean daily macro deviation into a 0-100 score.
// Under 10% mean deviation is treated as on target; beyond 20% the score
// falls off linearly.
func nutritionScore(plan core.MealPlan) float64 {
	var total float64
	var days int
	for day := 1; day <= plan.Days; day++ {
		dev, ok := meanDayDeviation(plan, day)
		if !ok {
			continue
		}
		total += dev
		days++
	}
	if days == 0 {
		return 100
	}

	switch avg := total / float64(days); {
	case avg <= 0.10:
		return 100
	case avg <= 0.15:
		return 90
	case avg <= 0.20:
		return 75
	default:
		return math.Max(0, 50-(avg-0.20)*100)
	}
}

// meanDayDeviation averages the relative macro deviations of one day against
// the plan target. Macros without a positive target are skipped; ok is false
// when nothing was comparable.
func meanDayDeviation(plan core.MealPlan, day int) (dev float64, ok bool) {
	totals := plan.DayTotals(day)
	pairs := []struct {
		actual   float64
		expected float64
	}{
		{totals.Calories, plan.Target.Calories},
		{totals.Protein, plan.Target.Protein},
		{totals.Carbs, plan.Target.Carbs},
		{totals.Fat, plan.Target.Fat},
	}

	var sum float64
	var n int
	for _, p := range pairs {
		if p.expected <= 0 {
			continue
		}
		sum += math.Abs(p.actual-p.expected) / p.expected
		n++
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

// diversityScore rewards distinct foods per day, category coverage across the
// plan and a low repeat rate over all assignments.
func diversityScore(plan core.MealPlan) float64 {
	foods := make(map[string]struct{})
	categories := make(map[core.FoodCategory]struct{})
	var assignments int
	for _, meal := range plan.Meals {
		for _, a := range meal.Assignments {
			foods[a.Food.Name] = struct{}{}
			categories[a.Food.Category] = struct{}{}
			assignments++
		}
	}

	var foodsPerDay float64
	if plan.Days > 0 {
		foodsPerDay = float64(len(foods)) / float64(plan.Days)
	}
	var uniqueRatio float64
	if assignments > 0 {
		uniqueRatio = float64(len(foods)) / float64(assignments)
	}

	foodScore := math.Min(100, foodsPerDay/distinctFoodsPerDayGoal*100)
	categoryScore := math.Min(100, float64(len(categories))/distinctCategoriesGoal*100)
	ratioScore := uniqueRatio * 100

	return foodScore*0.5 + categoryScore*0.3 + ratioScore*0.2
}

// palatabilityScore averages pairwise compatibility over meals that combine
// at least two foods. Single-food meals carry no pairing signal.
func (s *Scorer) palatabilityScore(plan core.MealPlan) float64 {
	var total float64
	var rated int
	for _, meal := range plan.Meals {
		if meal.FoodCount() < 2 {
			continue
		}
		foods := make([]core.Food, 0, len(meal.Assignments))
		for _, a := range meal.Assignments {
			foods = append(foods, a.Food)
		}
		total += s.matrix.Palatability(foods)
		rated++
	}
	if rated == 0 {
		return neutralPalatability
	}
	return total / float64(rated) * 100
}

// practicalityScore is the share of portions that land on the practical
// measurement lattice.
func practicalityScore(plan core.MealPlan) float64 {
	var practical, total int
	for _, meal := range plan.Meals {
		for _, a := range meal.Assignments {
			total++
			if isPractical(a.Quantity) {
				practical++
			}
		}
	}
	if total == 0 {
		return 100
	}
	return float64(practical) / float64(total) * 100
}

// isPractical reports whether a gram quantity is a multiple of the practical
// step, within float tolerance.
func isPractical(quantity float64) bool {
	rem := math.Mod(quantity, practicalStep)
	return math.Min(rem, practicalStep-rem) < practicalEpsilon
}

// gradeFor buckets a composite score into its letter grade.
func gradeFor(score float64) core.Grade {
	switch {
	case score >= 90:
		return core.GradeAPlus
	case score >= 85:
		return core.GradeA
	case score >= 80:
		return core.GradeBPlus
	case score >= 75:
		return core.GradeB
	case score >= 70:
		return core.GradeCPlus
	case score >= 65:
		return core.GradeC
	default:
		return core.GradeD
	}
}

// recommendations lists one suggestion per axis that fell below its floor.
func recommendations(nutrition, diversity, palatability, practicality float64) []string {
	var recs []string
	if nutrition < nutritionFloor {
		recs = append(recs, "Adjust portions to track the macro targets more closely")
	}
	if diversity < diversityFloor {
		recs = append(recs, "Widen the range of foods and food categories")
	}
	if palatability < palatabilityFloor {
		recs = append(recs, "Rework food pairings into more harmonious combinations")
	}
	if practicality < practicalityFloor {
		recs = append(recs, "Round quantities to kitchen-friendly portions")
	}
	if len(recs) == 0 {
		recs = append(recs, "Excellent plan, no major adjustment needed")
	}
	return recs
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
