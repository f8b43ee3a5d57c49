package classify

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/Virtus-Training/Plans-alimentaires/pkg/core"
)

func makeFood(name string, category core.FoodCategory) core.Food {
	return core.Food{ID: name, Name: name, Category: category}
}

var _ = Describe("Classifier", func() {
	var classifier *Classifier

	BeforeEach(func() {
		var err error
		classifier, err = New(DefaultTable())
		Expect(err).NotTo(HaveOccurred())
	})

	Context("staple detection", func() {
		It("should detect rice by name", func() {
			Expect(classifier.IsStaple(makeFood("Basmati rice, cooked", core.CategoryVegetable))).To(BeTrue())
		})

		It("should detect staples by category alone", func() {
			Expect(classifier.IsStaple(makeFood("Gnocchi", core.CategoryStarch))).To(BeTrue())
			Expect(classifier.IsStaple(makeFood("Cornflakes", core.CategoryCereal))).To(BeTrue())
		})

		It("should detect accented French names", func() {
			Expect(classifier.IsStaple(makeFood("Pâtes complètes", "Féculents"))).To(BeTrue())
			Expect(classifier.IsStaple(makeFood("Riz basmati (cuit)", "Féculents"))).To(BeTrue())
		})

		It("should not flag vegetables or proteins", func() {
			Expect(classifier.IsStaple(makeFood("Chicken breast", core.CategoryMeat))).To(BeFalse())
			Expect(classifier.IsStaple(makeFood("Broccoli", core.CategoryVegetable))).To(BeFalse())
		})

		It("should not match keyword fragments inside longer words", func() {
			// "vegetable" contains the letters of the French wheat keyword.
			Expect(classifier.IsStaple(makeFood("Mixed vegetables", core.CategoryVegetable))).To(BeFalse())
		})

		It("should classify unknown foods as non-staple", func() {
			Expect(classifier.IsStaple(makeFood("Dragon fruit", ""))).To(BeFalse())
		})
	})

	Context("base name extraction", func() {
		It("should collapse variants of the same staple", func() {
			rice1 := classifier.BaseName(makeFood("Basmati rice, cooked", core.CategoryStarch))
			rice2 := classifier.BaseName(makeFood("Riz (cuit)", "Féculents"))
			Expect(rice1).To(Equal("rice"))
			Expect(rice2).To(Equal("rice"))
		})

		It("should keep sweet potato distinct from potato", func() {
			sweet := classifier.BaseName(makeFood("Patate douce, cuite", core.CategoryStarch))
			plain := classifier.BaseName(makeFood("Potato, boiled", core.CategoryStarch))
			Expect(sweet).To(Equal("sweet-potato"))
			Expect(plain).To(Equal("potato"))
			Expect(sweet).NotTo(Equal(plain))
		})

		It("should strip parenthesized preparation qualifiers", func() {
			Expect(classifier.BaseName(makeFood("Quinoa (cuit)", core.CategoryStarch))).To(Equal("quinoa"))
		})

		It("should return the cleaned name for non-staples", func() {
			Expect(classifier.BaseName(makeFood("Saumon fumé", core.CategoryFish))).To(Equal("saumon fume"))
		})

		It("should never panic on empty input", func() {
			Expect(classifier.BaseName(core.Food{})).To(Equal(""))
			Expect(classifier.IsStaple(core.Food{})).To(BeFalse())
		})
	})

	Context("table validation", func() {
		It("should reject an empty table", func() {
			_, err := New(Table{})
			Expect(err).To(HaveOccurred())
		})

		It("should reject groups without a canonical token", func() {
			_, err := New(Table{Groups: []Group{{Keywords: []string{"rice"}}}})
			Expect(err).To(HaveOccurred())
		})
	})
})

var _ = Describe("Normalize", func() {
	It("should fold accents and case", func() {
		Expect(Normalize("Pâtes Complètes")).To(Equal("pates completes"))
		Expect(Normalize("RIZ")).To(Equal("riz"))
	})

	It("should fold ligatures", func() {
		Expect(Normalize("Œufs brouillés")).To(Equal("oeufs brouilles"))
	})

	It("should be idempotent", func() {
		once := Normalize("Blé dur")
		Expect(Normalize(once)).To(Equal(once))
	})
})
