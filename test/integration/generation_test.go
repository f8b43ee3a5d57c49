package integration

import (
	"context"
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/Virtus-Training/Plans-alimentaires/internal/classify"
	"github.com/Virtus-Training/Plans-alimentaires/pkg/config"
	"github.com/Virtus-Training/Plans-alimentaires/pkg/core"
	"github.com/Virtus-Training/Plans-alimentaires/pkg/engine"
)

var (
	plantTags = []core.DietTag{core.TagVegan, core.TagVegetarian, core.TagGlutenFree, core.TagLactoseFree}
	grainTags = []core.DietTag{core.TagVegan, core.TagVegetarian, core.TagLactoseFree}
	dairyTags = []core.DietTag{core.TagVegetarian, core.TagGlutenFree}
	eggTags   = []core.DietTag{core.TagVegetarian, core.TagGlutenFree, core.TagLactoseFree}
	fleshTags = []core.DietTag{core.TagGlutenFree, core.TagLactoseFree}
)

func food(id, name string, category core.FoodCategory, cal, protein, carbs, fat, fiber, price float64, health, varietyIdx int, tags []core.DietTag) core.Food {
	return core.Food{
		ID:       id,
		Name:     name,
		Category: category,
		PerHundredGrams: core.MacroProfile{
			Calories: cal,
			Protein:  protein,
			Carbs:    carbs,
			Fat:      fat,
			Fiber:    fiber,
		},
		Tags:                 tags,
		PricePerHundredGrams: price,
		HealthIndex:          health,
		VarietyIndex:         varietyIdx,
	}
}

// catalog builds the synthetic bilingual catalog the suite generates from:
// every category is represented and every plant, grain, dairy and animal food
// carries the dietary tags a filtered run needs.
func catalog() []core.Food {
	return []core.Food{
		food("f01", "Blanc de poulet", core.CategoryMeat, 120, 26, 0, 1.5, 0, 1.20, 8, 3, fleshTags),
		food("f02", "Escalope de dinde", core.CategoryMeat, 110, 24, 0, 1.2, 0, 1.10, 8, 3, fleshTags),
		food("f03", "Steak haché 5%", core.CategoryMeat, 130, 21, 0, 5, 0, 1.40, 7, 2, fleshTags),
		food("f04", "Filet de saumon", core.CategoryFish, 180, 20, 0, 12, 0, 2.50, 9, 5, fleshTags),
		food("f05", "Cabillaud", core.CategoryFish, 82, 18, 0, 0.7, 0, 1.80, 9, 4, fleshTags),
		food("f06", "Crevettes", core.CategoryFish, 99, 24, 0.9, 0.3, 0, 2.20, 8, 6, fleshTags),
		food("f07", "Oeufs", core.CategoryEggs, 145, 12.5, 1, 10, 0, 0.40, 7, 2, eggTags),
		food("f08", "Tofu ferme", core.CategoryLegume, 125, 15, 2, 7, 1, 0.80, 8, 6, plantTags),
		food("f09", "Riz basmati cuit", core.CategoryStarch, 130, 2.7, 28, 0.3, 0.6, 0.30, 6, 3, plantTags),
		food("f10", "Pâtes complètes cuites", core.CategoryStarch, 150, 5.5, 29, 1.1, 3.5, 0.35, 6, 3, grainTags),
		food("f11", "Quinoa cuit", core.CategoryStarch, 120, 4.4, 21, 1.9, 2.8, 0.60, 8, 6, plantTags),
		food("f12", "Pomme de terre vapeur", core.CategoryStarch, 87, 1.9, 20, 0.1, 1.8, 0.20, 6, 2, plantTags),
		food("f13", "Patate douce cuite", core.CategoryStarch, 90, 1.6, 21, 0.1, 3, 0.40, 8, 4, plantTags),
		food("f14", "Pain complet", core.CategoryCereal, 250, 9, 45, 3.5, 6, 0.45, 6, 2, grainTags),
		food("f15", "Flocons d'avoine", core.CategoryCereal, 370, 13, 60, 7, 10, 0.35, 8, 3, grainTags),
		food("f16", "Brocoli", core.CategoryVegetable, 35, 2.8, 4.5, 0.4, 3, 0.50, 10, 4, plantTags),
		food("f17", "Haricots verts", core.CategoryVegetable, 31, 1.8, 5, 0.2, 3.2, 0.45, 9, 3, plantTags),
		food("f18", "Courgettes", core.CategoryVegetable, 17, 1.2, 2.2, 0.3, 1.1, 0.40, 9, 3, plantTags),
		food("f19", "Épinards", core.CategoryVegetable, 23, 2.9, 1.4, 0.4, 2.2, 0.55, 10, 4, plantTags),
		food("f20", "Carottes", core.CategoryVegetable, 41, 0.9, 9.6, 0.2, 2.8, 0.30, 9, 2, plantTags),
		food("f21", "Pomme", core.CategoryFruit, 52, 0.3, 12, 0.2, 2.4, 0.35, 8, 2, plantTags),
		food("f22", "Banane", core.CategoryFruit, 89, 1.1, 20, 0.3, 2.6, 0.30, 7, 2, plantTags),
		food("f23", "Myrtilles", core.CategoryFruit, 57, 0.7, 14, 0.3, 2.4, 1.60, 9, 6, plantTags),
		food("f24", "Yaourt nature", core.CategoryDairy, 60, 4.3, 5, 3, 0, 0.25, 7, 2, dairyTags),
		food("f25", "Fromage blanc", core.CategoryDairy, 75, 8, 4, 3, 0, 0.30, 7, 2, dairyTags),
		food("f26", "Skyr", core.CategoryDairy, 63, 10, 4, 0.2, 0, 0.50, 8, 4, dairyTags),
		food("f27", "Huile d'olive", core.CategoryFat, 900, 0, 0, 100, 0, 1.00, 6, 3, plantTags),
		food("f28", "Avocat", core.CategoryFat, 160, 2, 8.5, 14.7, 6.7, 1.20, 8, 5, plantTags),
		food("f29", "Amandes", core.CategoryNuts, 580, 21, 9, 50, 12, 2.20, 8, 5, plantTags),
		food("f30", "Lentilles cuites", core.CategoryLegume, 115, 9, 20, 0.4, 8, 0.25, 9, 4, plantTags),
		food("f31", "Pois chiches cuits", core.CategoryLegume, 165, 9, 27, 2.6, 7.6, 0.28, 9, 4, plantTags),
	}
}

func balancedTarget(days int) core.NutritionTarget {
	return core.NutritionTarget{
		Calories:     2000,
		Protein:      150,
		Carbs:        200,
		Fat:          65,
		MealCount:    3,
		DurationDays: days,
	}
}

var _ = Describe("Plan generation", func() {
	var (
		classifier *classify.Classifier
		ctx        context.Context
	)

	BeforeEach(func() {
		var err error
		classifier, err = classify.New(classify.DefaultTable())
		Expect(err).NotTo(HaveOccurred())
		ctx = context.Background()
	})

	Context("over a balanced week", func() {
		var (
			plan   *core.MealPlan
			report *core.QualityReport
		)

		BeforeEach(func() {
			eng, err := engine.New(nil, engine.WithSeed(11))
			Expect(err).NotTo(HaveOccurred())

			plan, report, err = eng.GeneratePlan(ctx, balancedTarget(7), catalog())
			Expect(err).NotTo(HaveOccurred())
		})

		It("should compose every meal of the horizon", func() {
			Expect(plan.ID).NotTo(BeEmpty())
			Expect(plan.Days).To(Equal(7))
			Expect(plan.Meals).To(HaveLen(21))

			for i, meal := range plan.Meals {
				Expect(meal.Day).To(Equal(i/3+1), "meal %d out of day order", i)
				Expect(meal.ID).NotTo(BeEmpty())
				Expect(meal.Name).NotTo(BeEmpty())
				Expect(meal.FoodCount()).To(BeNumerically(">", 0), "meal %q is empty", meal.Name)
			}
		})

		It("should keep daily calories near the target", func() {
			for day := 1; day <= plan.Days; day++ {
				// Configured tolerance plus slack for practical rounding.
				Expect(plan.DayTotals(day).Calories).To(BeNumerically("~", 2000, 250),
					"day %d drifted from the calorie target", day)
			}
		})

		It("should never serve two staples in one meal", func() {
			for _, meal := range plan.Meals {
				staples := 0
				for _, a := range meal.Assignments {
					if classifier.IsStaple(a.Food) {
						staples++
					}
				}
				Expect(staples).To(BeNumerically("<=", 1), "meal %q doubles up on staples", meal.Name)
			}
		})

		It("should serve practical quantities inside the bounds", func() {
			for _, meal := range plan.Meals {
				for _, a := range meal.Assignments {
					Expect(a.Quantity).To(BeNumerically(">", 0))
					Expect(a.Quantity).To(BeNumerically("<=", 500))
					rem := math.Mod(a.Quantity, 5)
					Expect(math.Min(rem, 5-rem)).To(BeNumerically("<", 1e-9),
						"%s served at %.2f g", a.Food.Name, a.Quantity)
				}
			}
		})

		It("should derive serving macros from the per-100g profile", func() {
			for _, meal := range plan.Meals {
				var sum core.MacroProfile
				for _, a := range meal.Assignments {
					want := a.Food.PerHundredGrams.ForQuantity(a.Quantity)
					Expect(a.Macros().Calories).To(BeNumerically("~", want.Calories, 1e-9))
					Expect(a.Macros().Protein).To(BeNumerically("~", want.Protein, 1e-9))
					Expect(a.Macros().Carbs).To(BeNumerically("~", want.Carbs, 1e-9))
					Expect(a.Macros().Fat).To(BeNumerically("~", want.Fat, 1e-9))
					sum = sum.Add(a.Macros())
				}
				Expect(meal.Macros().Calories).To(BeNumerically("~", sum.Calories, 1e-9))
			}
		})

		It("should vary the menu across the week", func() {
			served := map[string]bool{}
			for _, meal := range plan.Meals {
				for _, a := range meal.Assignments {
					served[a.Food.ID] = true
				}
			}
			Expect(len(served)).To(BeNumerically(">", 9),
				"a week of meals reuses too small a menu")
		})

		It("should grade the plan and cover every day in the glycemic report", func() {
			Expect(report.CompositeScore).To(BeNumerically(">=", 0))
			Expect(report.CompositeScore).To(BeNumerically("<=", 100))
			Expect(report.Grade).NotTo(BeEmpty())
			Expect(report.GlycemicBalance).To(HaveLen(7))
			for i, gb := range report.GlycemicBalance {
				Expect(gb.Day).To(Equal(i + 1))
			}
		})
	})

	Context("with dietary preferences", func() {
		It("should serve only vegetarian foods to a vegetarian target", func() {
			eng, err := engine.New(nil, engine.WithSeed(23))
			Expect(err).NotTo(HaveOccurred())

			target := core.NutritionTarget{
				Calories: 2000, Protein: 110, Carbs: 230, Fat: 70,
				MealCount: 3, DurationDays: 2,
				Preferences: []core.DietTag{core.TagVegetarian},
			}
			plan, _, err := eng.GeneratePlan(ctx, target, catalog())
			Expect(err).NotTo(HaveOccurred())

			for _, meal := range plan.Meals {
				for _, a := range meal.Assignments {
					Expect(a.Food.HasTag(core.TagVegetarian)).To(BeTrue(),
						"%s is not vegetarian", a.Food.Name)
				}
			}
		})

		It("should serve only vegan foods to a vegan target", func() {
			eng, err := engine.New(nil, engine.WithSeed(29))
			Expect(err).NotTo(HaveOccurred())

			target := core.NutritionTarget{
				Calories: 2000, Protein: 90, Carbs: 250, Fat: 70,
				MealCount: 3, DurationDays: 2,
				Preferences: []core.DietTag{core.TagVegan},
			}
			plan, _, err := eng.GeneratePlan(ctx, target, catalog())
			Expect(err).NotTo(HaveOccurred())

			for _, meal := range plan.Meals {
				for _, a := range meal.Assignments {
					Expect(a.Food.HasTag(core.TagVegan)).To(BeTrue(),
						"%s is not vegan", a.Food.Name)
				}
			}
		})
	})

	Context("with a low-carbohydrate target", func() {
		It("should keep carb-dense foods off the menu", func() {
			eng, err := engine.New(nil, engine.WithSeed(31))
			Expect(err).NotTo(HaveOccurred())

			target := core.NutritionTarget{
				Calories: 1800, Protein: 140, Carbs: 100, Fat: 100,
				MealCount: 3, DurationDays: 1,
			}
			plan, _, err := eng.GeneratePlan(ctx, target, catalog())
			Expect(err).NotTo(HaveOccurred())

			for _, meal := range plan.Meals {
				for _, a := range meal.Assignments {
					carbs := a.Food.PerHundredGrams.Carbs
					calories := a.Food.PerHundredGrams.Calories
					Expect(carbs <= 6 || calories < 50).To(BeTrue(),
						"%s (%.1f g carbs per 100 g) on a low-carb menu", a.Food.Name, carbs)
				}
			}
		})
	})

	Context("with an unusable input", func() {
		It("should reject a target whose macros disagree with its calories", func() {
			eng, err := engine.New(nil)
			Expect(err).NotTo(HaveOccurred())

			target := core.NutritionTarget{
				Calories: 1000, Protein: 300, Carbs: 10, Fat: 5, MealCount: 3,
			}
			_, _, err = eng.GeneratePlan(ctx, target, catalog())

			var terr *engine.TargetInconsistentError
			Expect(errors.As(err, &terr)).To(BeTrue(), "got %v", err)
			Expect(terr.Implied).To(Equal(1285.0))
			Expect(terr.Stated).To(Equal(1000.0))
		})

		It("should reject a catalog too small to fill a meal", func() {
			eng, err := engine.New(nil)
			Expect(err).NotTo(HaveOccurred())

			_, _, err = eng.GeneratePlan(ctx, balancedTarget(1), catalog()[:2])

			var cerr *engine.CatalogTooSmallError
			Expect(errors.As(err, &cerr)).To(BeTrue(), "got %v", err)
			Expect(cerr.Usable).To(Equal(2))
			Expect(cerr.Required).To(Equal(3))
		})
	})

	Context("with a pinned seed", func() {
		It("should reproduce the identical plan run after run", func() {
			eng, err := engine.New(nil, engine.WithSeed(42))
			Expect(err).NotTo(HaveOccurred())

			first, firstReport, err := eng.GeneratePlan(ctx, balancedTarget(3), catalog())
			Expect(err).NotTo(HaveOccurred())
			second, secondReport, err := eng.GeneratePlan(ctx, balancedTarget(3), catalog())
			Expect(err).NotTo(HaveOccurred())

			Expect(first).To(Equal(second))
			Expect(firstReport).To(Equal(secondReport))
		})

		It("should stay deterministic when days run in parallel", func() {
			cfg := config.Default()
			cfg.Parallelism = 4

			eng, err := engine.New(cfg, engine.WithSeed(42))
			Expect(err).NotTo(HaveOccurred())

			first, _, err := eng.GeneratePlan(ctx, balancedTarget(7), catalog())
			Expect(err).NotTo(HaveOccurred())
			second, _, err := eng.GeneratePlan(ctx, balancedTarget(7), catalog())
			Expect(err).NotTo(HaveOccurred())

			Expect(first).To(Equal(second))
			for i, meal := range first.Meals {
				Expect(meal.Day).To(Equal(i/3+1), "parallel assembly broke day order")
			}
		})
	})
})
