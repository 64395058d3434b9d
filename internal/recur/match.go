package recur

import (
	"time"

	"github.com/therogue/tskr/internal/model"
)

// Matches reports whether the rule falls on the given YYYY-MM-DD date.
func Matches(rule, date string) (bool, error) {
	r, err := parsed(rule)
	if err != nil {
		return false, err
	}
	t, err := model.ParseDate(date)
	if err != nil {
		return false, err
	}
	return r.Matches(t), nil
}

// Matches reports whether the rule falls on the calendar date of t.
func (r Rule) Matches(t time.Time) bool {
	switch r.Kind {
	case KindDaily:
		return true
	case KindWeekdays:
		wd := t.Weekday()
		return wd >= time.Monday && wd <= time.Friday
	case KindWeekly:
		return r.Days[t.Weekday()]
	case KindMonthlyDay:
		// No clamping: monthly:31 never matches April.
		return t.Day() == r.Day
	case KindMonthlyWeekday:
		if t.Weekday() != r.Weekday {
			return false
		}
		if r.Nth == -1 {
			return t.Day()+7 > daysInMonth(t.Year(), t.Month())
		}
		return (t.Day()+6)/7 == r.Nth
	case KindYearly:
		return t.Month() == r.Month && t.Day() == r.Day
	case KindCron:
		start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
		next := r.Schedule.Next(start.Add(-time.Second))
		return !next.IsZero() && next.Before(start.AddDate(0, 0, 1))
	}
	return false
}

func daysInMonth(y int, m time.Month) int {
	// Day 0 of next month is last day of this month.
	return time.Date(y, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
