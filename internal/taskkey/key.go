// Package taskkey assigns and parses human-readable task keys of the
// form CATEGORY-NN, with template keys prefixed R-.
package taskkey

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/therogue/tskr/internal/model"
)

// Key is a parsed or freshly allocated task key.
type Key struct {
	Category string
	Number   int
	Template bool
}

// String renders the key, zero-padding the number to two digits and
// widening past 99.
func (k Key) String() string {
	s := fmt.Sprintf("%s-%02d", k.Category, k.Number)
	if k.Template {
		return "R-" + s
	}
	return s
}

// DateScoped reports whether the category restarts numbering per
// calendar date instead of keeping one running counter.
func DateScoped(category string) bool {
	return category == model.CategoryDaily || category == model.CategoryMeeting
}

// Scope returns the sequence key that numbers a new task: the bare
// category for sequential categories, category@date for date-scoped
// ones, with an R- prefix for templates so they count separately.
func Scope(category, date string, template bool) string {
	scope := strings.ToUpper(strings.TrimSpace(category))
	if DateScoped(scope) {
		scope = scope + "@" + date
	}
	if template {
		scope = "R-" + scope
	}
	return scope
}

// NormalizeCategory upper-cases a category and rejects anything that
// is not plain letters.
func NormalizeCategory(category string) (string, error) {
	cat := strings.ToUpper(strings.TrimSpace(category))
	if cat == "" {
		return "", fmt.Errorf("category is empty")
	}
	for _, r := range cat {
		if r < 'A' || r > 'Z' {
			return "", fmt.Errorf("invalid category %q: letters only", category)
		}
	}
	return cat, nil
}

var keyShape = regexp.MustCompile(`^(?i)(R-)?([A-Z]+)-([0-9]+)$`)

// Parse reports whether s is key-shaped and returns its parts. The
// category is normalized to upper case so lookups are
// case-insensitive.
func Parse(s string) (Key, bool) {
	m := keyShape.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return Key{}, false
	}
	n, err := strconv.Atoi(m[3])
	if err != nil || n < 1 {
		return Key{}, false
	}
	return Key{
		Category: strings.ToUpper(m[2]),
		Number:   n,
		Template: m[1] != "",
	}, true
}
