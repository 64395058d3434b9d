package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/therogue/tskr/internal/model"
	"github.com/therogue/tskr/internal/recur"
	"github.com/therogue/tskr/internal/taskkey"
)

type DoctorIssueLevel string

const (
	DoctorIssueLevelError DoctorIssueLevel = "error"
	DoctorIssueLevelWarn  DoctorIssueLevel = "warn"
)

type DoctorIssue struct {
	Level   DoctorIssueLevel `json:"level"`
	Code    string           `json:"code"`
	Message string           `json:"message"`

	TaskID  string `json:"taskId,omitempty"`
	TaskKey string `json:"taskKey,omitempty"`
}

type DoctorReport struct {
	Issues []DoctorIssue `json:"issues"`
}

func (r DoctorReport) HasErrors() bool {
	for _, it := range r.Issues {
		if it.Level == DoctorIssueLevelError {
			return true
		}
	}
	return false
}

var ErrDoctorIssuesFound = errors.New("doctor: issues found")

// doctorRow is a task read raw, without scanTask's lenient decoding, so
// malformed stored values surface instead of being papered over.
type doctorRow struct {
	id       string
	key      string
	category string
	number   int
	done     bool
	schedule sql.NullString
	rule     sql.NullString
	template bool
	parent   sql.NullString
}

// Doctor checks the stored tasks against the invariants the rest of the
// code assumes: keys match their row fields, one key per numbering
// scope, instances point at real templates, schedules and rules parse,
// and sequence counters stay ahead of every allocated number.
func (s *Store) Doctor(ctx context.Context) (DoctorReport, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, task_key, category, task_number, completed,
	scheduled_date, recurrence_rule, is_template, parent_task_id
FROM tasks ORDER BY created_at, task_key`)
	if err != nil {
		return DoctorReport{}, err
	}
	defer rows.Close()

	var tasks []doctorRow
	for rows.Next() {
		var r doctorRow
		var done, template int
		if err := rows.Scan(&r.id, &r.key, &r.category, &r.number, &done,
			&r.schedule, &r.rule, &template, &r.parent); err != nil {
			return DoctorReport{}, err
		}
		r.done = done == 1
		r.template = template == 1
		tasks = append(tasks, r)
	}
	if err := rows.Err(); err != nil {
		return DoctorReport{}, err
	}

	var issues []DoctorIssue
	byID := make(map[string]doctorRow, len(tasks))
	type scopeHigh struct {
		n   int
		key string
	}
	high := map[string]scopeHigh{}
	firstKey := map[string]string{}

	for _, r := range tasks {
		byID[r.id] = r

		k, ok := taskkey.Parse(r.key)
		if !ok || k.Category != r.category || k.Number != r.number || k.Template != r.template {
			issues = append(issues, DoctorIssue{
				Level:   DoctorIssueLevelError,
				Code:    "key_shape",
				Message: fmt.Sprintf("key %q does not match category %s number %d", r.key, r.category, r.number),
				TaskID:  r.id,
				TaskKey: r.key,
			})
		}

		date := doctorScheduleIssues(&issues, r)

		if r.rule.Valid && strings.TrimSpace(r.rule.String) != "" && !recur.Valid(r.rule.String) {
			issues = append(issues, DoctorIssue{
				Level:   DoctorIssueLevelWarn,
				Code:    "bad_rule",
				Message: fmt.Sprintf("unparseable recurrence rule %q; occurrences will not project", r.rule.String),
				TaskID:  r.id,
				TaskKey: r.key,
			})
		}

		if r.template && r.done {
			issues = append(issues, DoctorIssue{
				Level:   DoctorIssueLevelWarn,
				Code:    "completed_template",
				Message: "template is marked completed; templates only spawn occurrences",
				TaskID:  r.id,
				TaskKey: r.key,
			})
		}

		// One number per numbering scope, the same scope Create
		// allocates from: D/M restart per date, everything else counts
		// for life, templates count apart under R-.
		scope := taskkey.Scope(r.category, date, r.template)
		slot := fmt.Sprintf("%s#%d", scope, r.number)
		if otherID, dup := firstKey[slot]; dup {
			issues = append(issues, DoctorIssue{
				Level:   DoctorIssueLevelError,
				Code:    "duplicate_key",
				Message: fmt.Sprintf("key %s allocated twice in scope %s (also on task %s)", r.key, scope, otherID),
				TaskID:  r.id,
				TaskKey: r.key,
			})
		} else {
			firstKey[slot] = r.id
		}
		if h := high[scope]; r.number > h.n {
			high[scope] = scopeHigh{n: r.number, key: r.key}
		}
	}

	for _, r := range tasks {
		if !r.parent.Valid || strings.TrimSpace(r.parent.String) == "" {
			continue
		}
		parent, ok := byID[r.parent.String]
		switch {
		case !ok:
			// Normal after deleting a template: the back-reference is
			// non-owning and instances outlive it.
			issues = append(issues, DoctorIssue{
				Level:   DoctorIssueLevelWarn,
				Code:    "dangling_parent",
				Message: fmt.Sprintf("instance references missing template %s (deleted?)", r.parent.String),
				TaskID:  r.id,
				TaskKey: r.key,
			})
		case !parent.template:
			issues = append(issues, DoctorIssue{
				Level:   DoctorIssueLevelError,
				Code:    "parent_not_template",
				Message: fmt.Sprintf("instance parent %s is not a template", parent.key),
				TaskID:  r.id,
				TaskKey: r.key,
			})
		}
	}

	next, err := s.sequenceNumbers(ctx)
	if err != nil {
		return DoctorReport{}, err
	}
	for scope, h := range high {
		if next[scope] > h.n {
			continue
		}
		issues = append(issues, DoctorIssue{
			Level:   DoctorIssueLevelError,
			Code:    "sequence_behind",
			Message: fmt.Sprintf("scope %s would allocate number %d next, colliding with existing %s", scope, next[scope], h.key),
			TaskKey: h.key,
		})
	}

	return DoctorReport{Issues: issuesOrEmpty(issues)}, nil
}

// doctorScheduleIssues validates a raw scheduled_date value and returns
// its date part for scope computation, empty when absent or broken.
func doctorScheduleIssues(issues *[]DoctorIssue, r doctorRow) string {
	if !r.schedule.Valid || r.schedule.String == "" {
		return ""
	}
	date, clock, timed := strings.Cut(r.schedule.String, "T")
	if _, err := model.ParseDate(date); err != nil {
		*issues = append(*issues, DoctorIssue{
			Level:   DoctorIssueLevelError,
			Code:    "bad_schedule",
			Message: fmt.Sprintf("stored schedule %q: %v", r.schedule.String, err),
			TaskID:  r.id,
			TaskKey: r.key,
		})
		return ""
	}
	if timed && clock != "" {
		if _, err := model.ClockMinutes(clock); err != nil {
			*issues = append(*issues, DoctorIssue{
				Level:   DoctorIssueLevelError,
				Code:    "bad_schedule",
				Message: fmt.Sprintf("stored schedule %q: %v", r.schedule.String, err),
				TaskID:  r.id,
				TaskKey: r.key,
			})
		}
	}
	return date
}

func (s *Store) sequenceNumbers(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT category, next_number FROM category_sequences`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := map[string]int{}
	for rows.Next() {
		var scope string
		var n int
		if err := rows.Scan(&scope, &n); err != nil {
			return nil, err
		}
		out[scope] = n
	}
	return out, rows.Err()
}

func issuesOrEmpty(xs []DoctorIssue) []DoctorIssue {
	if xs == nil {
		return []DoctorIssue{}
	}
	return xs
}
