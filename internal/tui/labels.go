package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/therogue/tskr/internal/model"
)

// formatDayTitle renders the day-view heading date: "Mon Jan 20 2025",
// with today called out.
func formatDayTitle(date, today string) string {
	parsed, err := model.ParseDate(date)
	if err != nil {
		return date
	}
	label := parsed.Format("Mon Jan 2 2006")
	if date == today {
		return label + "  (today)"
	}
	return label
}

// formatClock returns the "HH:MM" of a schedule, empty for date-only values.
func formatClock(dt *model.DateTime) string {
	if !dt.Timed() {
		return ""
	}
	return strings.TrimSpace(*dt.Time)
}

// formatWhen renders a schedule for row metadata:
// - date-only: "Jan 5"
// - date+time: "Jan 5 14:30" (24h)
func formatWhen(dt *model.DateTime) string {
	if dt == nil {
		return ""
	}
	date := strings.TrimSpace(dt.Date)
	if date == "" {
		return ""
	}
	parsed, err := time.Parse(model.DateLayout, date)
	if err != nil {
		// Best-effort: fall back to the raw date string.
		if clock := formatClock(dt); clock != "" {
			return fmt.Sprintf("%s %s", date, clock)
		}
		return date
	}
	day := parsed.Format("Jan 2")
	if clock := formatClock(dt); clock != "" {
		return fmt.Sprintf("%s %s", day, clock)
	}
	return day
}

func formatScheduleLabel(dt *model.DateTime) string {
	txt := formatWhen(dt)
	if txt == "" {
		return ""
	}
	return "on " + txt
}

func formatDuration(min *int) string {
	if min == nil || *min <= 0 {
		return ""
	}
	return fmt.Sprintf("%dm", *min)
}

func formatPriority(p *int) string {
	if p == nil || *p == 0 {
		return ""
	}
	return fmt.Sprintf("p%d", *p)
}
