package classify

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/Virtus-Training/Plans-alimentaires/pkg/core"
)

// Classifier answers staple questions about foods. Build one with New and
// share it freely; it is immutable after construction.
type Classifier struct {
	keywords   []keywordEntry
	categories map[string]struct{}
	suffixes   []string
}

// keywordEntry is a normalized keyword bound to its group's canonical token.
type keywordEntry struct {
	keyword   string
	canonical string
	multiWord bool
}

// New builds a Classifier from the given table.
func New(table Table) (*Classifier, error) {
	if len(table.Groups) == 0 {
		return nil, errNoKeywordGroups
	}

	c := &Classifier{
		categories: make(map[string]struct{}, len(table.StapleCategories)),
	}
	for _, g := range table.Groups {
		if g.Canonical == "" {
			return nil, errEmptyCanonical
		}
		for _, kw := range g.Keywords {
			n := Normalize(kw)
			if n == "" {
				continue
			}
			c.keywords = append(c.keywords, keywordEntry{
				keyword:   n,
				canonical: g.Canonical,
				multiWord: strings.ContainsRune(n, ' '),
			})
		}
	}
	// Longest keyword wins: "patate douce" must take the sweet-potato group
	// before "patate" can claim the potato group.
	sort.SliceStable(c.keywords, func(i, j int) bool {
		return len(c.keywords[i].keyword) > len(c.keywords[j].keyword)
	})

	for _, cat := range table.StapleCategories {
		c.categories[Normalize(string(cat))] = struct{}{}
	}
	for _, s := range table.PrepSuffixes {
		if n := Normalize(s); n != "" {
			c.suffixes = append(c.suffixes, n)
		}
	}
	return c, nil
}

// IsStaple reports whether the food is a carbohydrate-dense base food. A food
// qualifies through its category or through a staple keyword in its name.
// Unknown foods classify as non-staple.
func (c *Classifier) IsStaple(f core.Food) bool {
	cat := Normalize(string(f.Category))
	if _, ok := c.categories[cat]; ok {
		return true
	}
	if _, ok := c.match(cat); ok {
		return true
	}
	_, ok := c.match(Normalize(f.Name))
	return ok
}

// BaseName returns the canonical staple token for the food ("basmati rice,
// cooked" and "riz" both yield "rice"). Foods outside every group return
// their cleaned name, so the function stays total and distinct staples stay
// distinct.
func (c *Classifier) BaseName(f core.Food) string {
	cleaned := c.stripPreparation(Normalize(f.Name))
	if canonical, ok := c.match(cleaned); ok {
		return canonical
	}
	if canonical, ok := c.match(Normalize(string(f.Category))); ok {
		return canonical
	}
	return cleaned
}

// match finds the longest keyword present in the normalized text. Single-word
// keywords must match a whole word; multi-word keywords match as phrases.
func (c *Classifier) match(text string) (string, bool) {
	if text == "" {
		return "", false
	}
	var words []string
	for _, e := range c.keywords {
		if e.multiWord {
			if strings.Contains(text, e.keyword) {
				return e.canonical, true
			}
			continue
		}
		if words == nil {
			words = splitWords(text)
		}
		for _, w := range words {
			if w == e.keyword {
				return e.canonical, true
			}
		}
	}
	return "", false
}

// stripPreparation removes parenthesized qualifiers and trailing preparation
// suffixes from an already-normalized name.
func (c *Classifier) stripPreparation(name string) string {
	if i := strings.IndexRune(name, '('); i >= 0 {
		name = strings.TrimSpace(name[:i])
	}
	name = strings.Trim(name, " ,")
	for changed := true; changed; {
		changed = false
		for _, suffix := range c.suffixes {
			if strings.HasSuffix(name, " "+suffix) || strings.HasSuffix(name, ","+suffix) {
				name = strings.Trim(strings.TrimSuffix(name, suffix), " ,")
				changed = true
			}
		}
	}
	return name
}

// splitWords cuts normalized text on anything that is not a letter, digit or
// apostrophe, so "riz basmati, cuit" yields [riz basmati cuit].
func splitWords(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})
}

// foldTransformer builds the transform that strips combining marks so
// accented and plain spellings compare equal ("pâtes" → "pates"). A fresh
// transformer is built per call: a transform.Chain carries internal buffer
// state and is not safe for concurrent use.
func foldTransformer() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}

// ligatures maps characters the NFD decomposition leaves intact.
var ligatures = strings.NewReplacer("œ", "oe", "æ", "ae", "Œ", "oe", "Æ", "ae")

// Normalize lowercases text and folds accents and ligatures. It is the
// canonical form every comparison in this package runs on.
func Normalize(s string) string {
	s = ligatures.Replace(s)
	if folded, _, err := transform.String(foldTransformer(), s); err == nil {
		s = folded
	}
	return strings.ToLower(strings.TrimSpace(s))
}
