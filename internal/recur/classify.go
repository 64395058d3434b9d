package recur

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/therogue/tskr/internal/model"
)

// Bucket is a display grouping for recurrence rules.
type Bucket int

const (
	BucketDaily Bucket = iota
	BucketWeekdays
	BucketWeekly
	BucketMonthly
	BucketOther
)

func (b Bucket) String() string {
	switch b {
	case BucketDaily:
		return "Daily"
	case BucketWeekdays:
		return "Weekdays"
	case BucketWeekly:
		return "Weekly"
	case BucketMonthly:
		return "Monthly"
	}
	return "Other"
}

var weekdayTokens = map[string]bool{
	"monday": true, "tuesday": true, "wednesday": true, "thursday": true,
	"friday": true, "saturday": true, "sunday": true,
	"mon": true, "tue": true, "wed": true, "thu": true, "fri": true,
	"sat": true, "sun": true,
}

var dayDashDay = regexp.MustCompile(`^\d{2}-\d{2}$`)

// Classify maps a rule string to a display bucket. This is a heuristic
// over free-form strings, not a parser: it never fails, and anything
// unrecognized lands in Other. The weekday check runs before the
// monthly check, so a rule naming both (monthly:3:WED) reads as
// Weekly; the weekday test is token-based so that "monthly" itself
// does not count as "mon".
func Classify(rule string) Bucket {
	norm := strings.ToLower(strings.TrimSpace(rule))
	if norm == "" {
		return BucketOther
	}
	switch norm {
	case "daily":
		return BucketDaily
	case "weekdays":
		return BucketWeekdays
	}
	for _, tok := range strings.FieldsFunc(norm, func(r rune) bool { return !unicode.IsLetter(r) }) {
		if weekdayTokens[tok] {
			return BucketWeekly
		}
	}
	if strings.Contains(norm, "monthly") || dayDashDay.MatchString(norm) {
		return BucketMonthly
	}
	return BucketOther
}

// Section is a rendered bucket of template tasks.
type Section struct {
	Bucket Bucket
	Tasks  []model.Task
}

// Group buckets template tasks by Classify for display. A named bucket
// with fewer than two members collapses into Other so single-item
// subsections do not render. Section order is Daily, Weekdays, Weekly,
// Monthly, Other; empty buckets are omitted.
func Group(templates []model.Task) []Section {
	byBucket := map[Bucket][]model.Task{}
	for _, t := range templates {
		b := Classify(t.Recurrence)
		byBucket[b] = append(byBucket[b], t)
	}
	other := byBucket[BucketOther]
	var sections []Section
	for _, b := range []Bucket{BucketDaily, BucketWeekdays, BucketWeekly, BucketMonthly} {
		ts := byBucket[b]
		switch {
		case len(ts) == 0:
		case len(ts) < 2:
			other = append(other, ts...)
		default:
			sections = append(sections, Section{Bucket: b, Tasks: ts})
		}
	}
	if len(other) > 0 {
		sections = append(sections, Section{Bucket: BucketOther, Tasks: other})
	}
	return sections
}
