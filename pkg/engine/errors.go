package engine

import "fmt"

// CatalogTooSmallError reports that too few foods survived dietary-preference
// filtering to compose even one meal. The plan cannot be generated; widen the
// catalog or relax the preferences.
type CatalogTooSmallError struct {
	// Usable counts the foods left after filtering.
	Usable int

	// Required is the smallest pool the configuration composes from.
	Required int
}

func (e *CatalogTooSmallError) Error() string {
	return fmt.Sprintf("catalog too small: %d usable foods, need at least %d",
		e.Usable, e.Required)
}

// TargetInconsistentError reports that the stated calorie goal disagrees with
// the calories the macro goals imply (4 kcal/g for protein and carbohydrates,
// 9 kcal/g for fat) by more than the engine's tolerance. Composition cannot
// satisfy both figures at once, so the target is rejected up front.
type TargetInconsistentError struct {
	// Stated is the calorie goal carried by the target.
	Stated float64

	// Implied is the calorie figure computed from the macro goals.
	Implied float64

	// Tolerance is the relative discrepancy the engine accepts.
	Tolerance float64
}

func (e *TargetInconsistentError) Error() string {
	return fmt.Sprintf("target macros imply %.0f kcal but %.0f kcal stated (tolerance %.0f%%)",
		e.Implied, e.Stated, e.Tolerance*100)
}
