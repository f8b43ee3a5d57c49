package core

// Grade is the letter bucket a composite quality score falls into.
type Grade string

// Grade buckets from best to worst.
const (
	GradeAPlus Grade = "A+"
	GradeA     Grade = "A"
	GradeBPlus Grade = "B+"
	GradeB     Grade = "B"
	GradeCPlus Grade = "C+"
	GradeC     Grade = "C"
	GradeD     Grade = "D"
)

// GlycemicBalance is a per-day diagnostic of how evenly carbohydrates are
// spread across meals and how much fiber accompanies them.
type GlycemicBalance struct {
	// Day is the one-based day index.
	Day int `json:"day"`

	// Score is the blended balance score in [0,100].
	Score float64 `json:"score"`

	// Status labels the score bucket in plain words.
	Status string `json:"status"`

	// DistributionScore rates the evenness of the carb split across meals.
	DistributionScore float64 `json:"distributionScore"`

	// FiberScore rates the fiber-to-carb ratio of the day.
	FiberScore float64 `json:"fiberScore"`

	// FiberRatio is grams of fiber per gram of carbohydrate.
	FiberRatio float64 `json:"fiberRatio"`
}

// QualityReport is the post-hoc evaluation of a finished plan. All sub-scores
// are in [0,100].
type QualityReport struct {
	// NutritionScore rates how closely daily totals track the target.
	NutritionScore float64 `json:"nutritionScore"`

	// DiversityScore rates the spread of distinct foods and categories.
	DiversityScore float64 `json:"diversityScore"`

	// PalatabilityScore rates the mean pairwise food compatibility.
	PalatabilityScore float64 `json:"palatabilityScore"`

	// PracticalityScore rates the share of human-measurable quantities.
	PracticalityScore float64 `json:"practicalityScore"`

	// CompositeScore is the weighted blend of the four sub-scores.
	CompositeScore float64 `json:"compositeScore"`

	// Grade is the letter bucket of the composite score.
	Grade Grade `json:"grade"`

	// Recommendations suggests improvements for sub-scores that fell short.
	Recommendations []string `json:"recommendations,omitempty"`

	// GlycemicBalance carries the per-day carb-spread diagnostics.
	GlycemicBalance []GlycemicBalance `json:"glycemicBalance,omitempty"`
}
