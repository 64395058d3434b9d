package recur

import (
	"fmt"

	"github.com/therogue/tskr/internal/model"
)

// DefaultWindowYears bounds the forward search for a next occurrence.
const DefaultWindowYears = 2

// BoundsError reports that a rule parsed but produced no occurrence
// inside the search window. Treated as a data problem, not a bug.
type BoundsError struct {
	Rule  string
	After string
	Years int
}

func (e BoundsError) Error() string {
	return fmt.Sprintf("no occurrence of %q within %d years after %s", e.Rule, e.Years, e.After)
}

// NextOccurrence returns the smallest YYYY-MM-DD date strictly after
// `after` that the rule matches.
func NextOccurrence(rule, after string) (string, error) {
	return NextWithin(rule, after, DefaultWindowYears)
}

// NextWithin is NextOccurrence with an explicit search window in years.
func NextWithin(rule, after string, years int) (string, error) {
	if years <= 0 {
		years = DefaultWindowYears
	}
	r, err := parsed(rule)
	if err != nil {
		return "", err
	}
	t, err := model.ParseDate(after)
	if err != nil {
		return "", err
	}
	limit := t.AddDate(years, 0, 0)
	for d := t.AddDate(0, 0, 1); !d.After(limit); d = d.AddDate(0, 0, 1) {
		if r.Matches(d) {
			return model.FormatDate(d), nil
		}
	}
	return "", BoundsError{Rule: rule, After: after, Years: years}
}
