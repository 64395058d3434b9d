package model

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// DateLayout is the wire format for calendar dates. Dates are naive:
// no timezone is attached and arithmetic happens in UTC.
const DateLayout = "2006-01-02"

// TimeLayout is the wire format for clock times.
const TimeLayout = "15:04"

func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
	}
	return t, nil
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ClockMinutes parses an HH:MM string into minutes after midnight.
func ClockMinutes(s string) (int, error) {
	t, err := time.Parse(TimeLayout, s)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q (want HH:MM)", s)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// Today returns the current local calendar date as YYYY-MM-DD.
func Today() string {
	return time.Now().Format(DateLayout)
}

var (
	reDateOnly = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	reDateTime = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})[ T](\d{2}:\d{2})(?::\d{2})?$`)
)

// ParseDateTime parses the schedule forms users type:
//
//   - YYYY-MM-DD (date-only)
//   - YYYY-MM-DD HH:MM or YYYY-MM-DDTHH:MM (local date+time)
//   - RFC3339 (timezone-aware, converted to UTC)
//
// Time is nil for date-only inputs.
func ParseDateTime(s string) (*DateTime, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty datetime")
	}

	if reDateOnly.MatchString(s) {
		if _, err := ParseDate(s); err != nil {
			return nil, err
		}
		return &DateTime{Date: s}, nil
	}

	if m := reDateTime.FindStringSubmatch(s); m != nil {
		if _, err := ParseDate(m[1]); err != nil {
			return nil, err
		}
		if _, err := ClockMinutes(m[2]); err != nil {
			return nil, err
		}
		hm := m[2]
		return &DateTime{Date: m[1], Time: &hm}, nil
	}

	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		ts = ts.UTC()
		hm := ts.Format(TimeLayout)
		return &DateTime{Date: ts.Format(DateLayout), Time: &hm}, nil
	}

	return nil, fmt.Errorf("invalid datetime %q (expected YYYY-MM-DD, YYYY-MM-DD HH:MM, or RFC3339)", s)
}
