// Package agenda turns a flat task collection into the ordered,
// grouped, positioned views the day and list screens render.
package agenda

import (
	"github.com/therogue/tskr/internal/model"
	"github.com/therogue/tskr/internal/recur"
)

// NoDatePolicy decides on which dates undated incomplete tasks appear.
type NoDatePolicy string

const (
	// NoDateAlways shows undated tasks on every selected date.
	NoDateAlways NoDatePolicy = "always"
	// NoDateTodayOnly shows undated tasks only on the actual today.
	NoDateTodayOnly NoDatePolicy = "today-only"
)

// ProjectOptions control a day projection pass.
type ProjectOptions struct {
	Today  string // actual current date, YYYY-MM-DD
	NoDate NoDatePolicy
}

// ProjectedID returns the synthetic id of a template's occurrence on a
// date. Deterministic, so repeated projection passes agree.
func ProjectedID(templateID, date string) string {
	return templateID + "@" + date
}

// ProjectForDate returns the tasks visible on date: real tasks
// scheduled on it, incomplete undated tasks per the policy, and one
// projected occurrence for every template whose rule matches the date
// and which has no materialized instance there yet. Templates never
// project before their creation date. The result keeps input order:
// real tasks, then undated, then projections in template order.
func ProjectForDate(all []model.Task, date string, opts ProjectOptions) []model.Task {
	var out []model.Task

	for _, t := range all {
		if t.IsTemplate {
			continue
		}
		if t.Scheduled.On(date) {
			out = append(out, t)
		}
	}

	showUndated := opts.NoDate != NoDateTodayOnly || date == opts.Today
	if showUndated {
		for _, t := range all {
			if t.IsTemplate || t.Completed {
				continue
			}
			if t.Scheduled == nil || t.Scheduled.Date == "" {
				out = append(out, t)
			}
		}
	}

	for _, tpl := range all {
		if !tpl.IsTemplate || tpl.Recurrence == "" {
			continue
		}
		if date < model.FormatDate(tpl.CreatedAt) {
			continue
		}
		ok, err := recur.Matches(tpl.Recurrence, date)
		if err != nil || !ok {
			// Unparseable rules cannot project; the template still
			// shows on the recurring list, bucketed as Other.
			continue
		}
		if hasInstanceOn(all, tpl.ID, date) {
			continue
		}
		out = append(out, projected(tpl, date))
	}

	return out
}

func hasInstanceOn(all []model.Task, templateID, date string) bool {
	for _, t := range all {
		if t.ParentTaskID != nil && *t.ParentTaskID == templateID && t.Scheduled.On(date) {
			return true
		}
	}
	return false
}

// projected synthesizes the virtual occurrence of a template on a
// date. It carries the template's fields and time-of-day but its own
// id, and is read-only for callers.
func projected(tpl model.Task, date string) model.Task {
	inst := tpl
	inst.ID = ProjectedID(tpl.ID, date)
	inst.IsTemplate = false
	inst.Projected = true
	inst.Completed = false
	parent := tpl.ID
	inst.ParentTaskID = &parent
	sched := model.DateTime{Date: date}
	if tpl.Scheduled.Timed() {
		tm := *tpl.Scheduled.Time
		sched.Time = &tm
	}
	inst.Scheduled = &sched
	return inst
}
