package model

import "time"

// Built-in categories. D and M number per calendar date; every other
// category keeps one sequential counter for its lifetime.
const (
	CategoryDaily   = "D"
	CategoryMeeting = "M"
	CategoryTask    = "T"
)

type Task struct {
	ID         string `json:"id"`
	TaskKey    string `json:"taskKey"`
	Category   string `json:"category"`
	TaskNumber int    `json:"taskNumber"`

	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
	Scheduled *DateTime `json:"scheduled,omitempty"`

	Recurrence   string  `json:"recurrence,omitempty"`
	IsTemplate   bool    `json:"isTemplate"`
	ParentTaskID *string `json:"parentTaskId,omitempty"`

	// Projected marks a synthesized occurrence of a template that has no
	// row of its own. Projected tasks are read-only.
	Projected bool `json:"projected,omitempty"`

	DurationMin *int `json:"durationMinutes,omitempty"`
	Priority    *int `json:"priority,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// Recurring reports whether completing this task should advance its
// schedule instead of marking it done. Templates and materialized
// instances carry rules too, but only a standalone task advances.
func (t Task) Recurring() bool {
	return t.Recurrence != "" && !t.IsTemplate && t.ParentTaskID == nil
}

// DateTime represents an optional time attached to a date.
// If Time is nil, the value is date-only (no time semantics).
type DateTime struct {
	Date string  `json:"date"`           // YYYY-MM-DD
	Time *string `json:"time,omitempty"` // HH:MM
}

// Timed reports whether the value carries a clock time.
func (dt *DateTime) Timed() bool {
	return dt != nil && dt.Time != nil && *dt.Time != ""
}

// On reports whether the value falls on the given YYYY-MM-DD date.
func (dt *DateTime) On(date string) bool {
	return dt != nil && dt.Date == date
}
