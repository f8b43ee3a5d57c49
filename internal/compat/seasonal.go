package compat

import (
	"strings"
	"time"

	"github.com/Virtus-Training/Plans-alimentaires/internal/classify"
)

// Season identifies a quarter of the produce calendar.
type Season string

const (
	SeasonSpring Season = "spring"
	SeasonSummer Season = "summer"
	SeasonFall   Season = "fall"
	SeasonWinter Season = "winter"

	// SeasonNone disables seasonal scoring.
	SeasonNone Season = ""
)

// SeasonForMonth maps a calendar month to its produce season.
func SeasonForMonth(month time.Month) Season {
	switch {
	case month >= time.March && month <= time.May:
		return SeasonSpring
	case month >= time.June && month <= time.August:
		return SeasonSummer
	case month >= time.September && month <= time.November:
		return SeasonFall
	default:
		return SeasonWinter
	}
}

// Calendar lists which foods are in season when. Matching is accent- and
// case-insensitive and tolerates partial names, so "fraises gariguette"
// matches the "fraises" entry.
type Calendar struct {
	// Seasonal maps each season to the foods at their peak during it.
	Seasonal map[Season][]string `yaml:"seasonal" json:"seasonal"`
	// AllYear lists foods available regardless of season.
	AllYear []string `yaml:"allYear" json:"allYear"`
	// InSeasonBonus is the multiplier applied to in-season foods.
	InSeasonBonus float64 `yaml:"inSeasonBonus" json:"inSeasonBonus"`
	// OutOfSeasonBonus is the multiplier applied to out-of-season foods.
	OutOfSeasonBonus float64 `yaml:"outOfSeasonBonus" json:"outOfSeasonBonus"`
}

// DefaultCalendar returns the built-in produce calendar (France/Europe).
func DefaultCalendar() *Calendar {
	return &Calendar{
		Seasonal: map[Season][]string{
			SeasonSpring: {
				"asperges", "artichaut", "épinards", "radis", "petits pois",
				"fèves", "laitue", "cresson", "oseille", "blettes",
				"fraises", "rhubarbe", "cerises",
			},
			SeasonSummer: {
				"tomates", "courgettes", "aubergines", "poivrons", "concombre",
				"haricots verts", "maïs", "fenouil", "laitue", "roquette",
				"fraises", "framboises", "myrtilles", "cerises", "abricots",
				"pêches", "nectarines", "melons", "pastèque", "prunes",
			},
			SeasonFall: {
				"potiron", "courge", "champignons", "poireaux", "choux",
				"betterave", "céleri", "panais", "topinambour", "rutabaga",
				"brocoli", "chou-fleur", "épinards",
				"pommes", "poires", "raisins", "figues", "coings",
				"châtaignes", "noix", "noisettes",
			},
			SeasonWinter: {
				"choux", "poireaux", "carottes", "navets", "céleri",
				"endives", "mâche", "potiron", "courge", "topinambour",
				"panais", "rutabaga", "salsifis",
				"pommes", "poires", "oranges", "clémentines", "mandarines",
				"pamplemousses", "kiwis", "châtaignes",
			},
		},
		AllYear: []string{
			"poulet", "boeuf", "porc", "dinde", "œufs",
			"saumon", "thon", "cabillaud", "sardines",
			"tofu", "tempeh", "seitan",
			"lentilles", "pois chiches", "haricots",
			"riz", "pâtes", "pain", "quinoa", "boulgour",
			"pommes de terre",
			"lait", "yaourt", "fromage", "fromage blanc",
			"oignons", "ail", "échalotes",
		},
		InSeasonBonus:    1.3,
		OutOfSeasonBonus: 0.8,
	}
}

// InSeason reports whether a food is at its peak in the given season or
// available all year.
func (c *Calendar) InSeason(name string, season Season) bool {
	n := classify.Normalize(name)
	if n == "" {
		return false
	}
	for _, entry := range c.AllYear {
		if namesOverlap(n, classify.Normalize(entry)) {
			return true
		}
	}
	for _, entry := range c.Seasonal[season] {
		if namesOverlap(n, classify.Normalize(entry)) {
			return true
		}
	}
	return false
}

// Bonus returns the seasonal multiplier for a food. SeasonNone yields the
// neutral multiplier 1.0.
func (c *Calendar) Bonus(name string, season Season) float64 {
	if season == SeasonNone {
		return 1.0
	}
	if c.InSeason(name, season) {
		return c.InSeasonBonus
	}
	return c.OutOfSeasonBonus
}

// VarietyAdjustment converts a seasonal bonus into the additive term applied
// to a food's variety distance: negative (more attractive) in season,
// positive out of season, zero for the neutral bonus.
func VarietyAdjustment(bonus float64) float64 {
	return -(bonus - 1.0) * 0.5
}

func namesOverlap(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}
