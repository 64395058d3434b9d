// Package recur parses recurrence rules, matches them against calendar
// dates, and classifies free-form rule strings into display buckets.
package recur

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// Kind identifies a parsed rule form.
type Kind int

const (
	KindDaily Kind = iota
	KindWeekdays
	KindWeekly
	KindMonthlyDay
	KindMonthlyWeekday
	KindYearly
	KindCron
)

// Rule is a parsed recurrence pattern. Which fields are meaningful
// depends on Kind.
type Rule struct {
	Kind Kind

	Days    [7]bool      // weekly, indexed by time.Weekday
	Day     int          // monthly day-of-month, yearly day
	Nth     int          // monthly nth weekday, -1 means last
	Weekday time.Weekday // monthly nth weekday

	Month time.Month // yearly

	Schedule cron.Schedule // cron
}

// PatternError reports a rule string the grammar cannot parse.
type PatternError struct {
	Rule string
}

func (e PatternError) Error() string {
	return fmt.Sprintf("unrecognized recurrence rule: %q", e.Rule)
}

var dayCodes = map[string]time.Weekday{
	"sun": time.Sunday,
	"mon": time.Monday,
	"tue": time.Tuesday,
	"wed": time.Wednesday,
	"thu": time.Thursday,
	"fri": time.Friday,
	"sat": time.Saturday,
}

var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// Parse parses a rule string. The grammar (case-insensitive):
//
//	daily
//	weekdays
//	weekly:MON,WED,...       three-letter day codes
//	monthly:DD               day of month, 1..31
//	monthly:N:DAY            Nth weekday, N in 1..5 or "last"
//	yearly:MM-DD
//	cron:<five-field spec>   standard minute-hour-dom-month-dow
func Parse(rule string) (Rule, error) {
	norm := strings.ToLower(strings.TrimSpace(rule))
	switch norm {
	case "daily":
		return Rule{Kind: KindDaily}, nil
	case "weekdays":
		return Rule{Kind: KindWeekdays}, nil
	}
	head, rest, ok := strings.Cut(norm, ":")
	if !ok || strings.TrimSpace(rest) == "" {
		return Rule{}, PatternError{Rule: rule}
	}
	switch head {
	case "weekly":
		r := Rule{Kind: KindWeekly}
		for _, code := range strings.Split(rest, ",") {
			wd, ok := dayCodes[strings.TrimSpace(code)]
			if !ok {
				return Rule{}, PatternError{Rule: rule}
			}
			r.Days[wd] = true
		}
		return r, nil
	case "monthly":
		if nth, day, ok := strings.Cut(rest, ":"); ok {
			r := Rule{Kind: KindMonthlyWeekday}
			if strings.TrimSpace(nth) == "last" {
				r.Nth = -1
			} else {
				n, err := strconv.Atoi(strings.TrimSpace(nth))
				if err != nil || n < 1 || n > 5 {
					return Rule{}, PatternError{Rule: rule}
				}
				r.Nth = n
			}
			wd, ok := dayCodes[strings.TrimSpace(day)]
			if !ok {
				return Rule{}, PatternError{Rule: rule}
			}
			r.Weekday = wd
			return r, nil
		}
		n, err := strconv.Atoi(strings.TrimSpace(rest))
		if err != nil || n < 1 || n > 31 {
			return Rule{}, PatternError{Rule: rule}
		}
		return Rule{Kind: KindMonthlyDay, Day: n}, nil
	case "yearly":
		t, err := time.Parse("01-02", strings.TrimSpace(rest))
		if err != nil {
			return Rule{}, PatternError{Rule: rule}
		}
		return Rule{Kind: KindYearly, Month: t.Month(), Day: t.Day()}, nil
	case "cron":
		sched, err := cronParser.Parse(strings.TrimSpace(rest))
		if err != nil {
			return Rule{}, PatternError{Rule: rule}
		}
		return Rule{Kind: KindCron, Schedule: sched}, nil
	}
	return Rule{}, PatternError{Rule: rule}
}

// Valid reports whether the rule string parses.
func Valid(rule string) bool {
	_, err := parsed(rule)
	return err == nil
}
