package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/therogue/tskr/internal/agenda"
	"github.com/therogue/tskr/internal/model"
	"github.com/therogue/tskr/internal/recur"
	"github.com/therogue/tskr/internal/taskkey"
)

// NewTask carries the caller-supplied fields of a task to create.
// A non-empty Recurrence makes the task a template.
type NewTask struct {
	Title       string
	Category    string
	Scheduled   *model.DateTime
	Recurrence  string
	DurationMin *int
	Priority    *int
}

func (s *Store) today() string {
	return s.now().Format(model.DateLayout)
}

// guardMutable rejects writes aimed at projected ids before touching
// the database. Stored ids are UUIDs and never contain "@".
func (s *Store) guardMutable(id string) error {
	if strings.Contains(id, "@") {
		return ProjectedError{ID: id}
	}
	return nil
}

func validateSchedule(dt *model.DateTime) error {
	if dt == nil {
		return nil
	}
	if dt.Date == "" {
		if dt.Timed() {
			return errors.New("scheduled time requires a date")
		}
		return nil
	}
	if _, err := model.ParseDate(dt.Date); err != nil {
		return err
	}
	if dt.Timed() {
		if _, err := model.ClockMinutes(*dt.Time); err != nil {
			return err
		}
	}
	return nil
}

// Create stores a new task, allocating its key inside the same
// transaction. D and M tasks default to today when no date is given.
func (s *Store) Create(ctx context.Context, nt NewTask) (model.Task, error) {
	title := strings.TrimSpace(nt.Title)
	if title == "" {
		return model.Task{}, errors.New("title is empty")
	}
	if nt.Recurrence != "" {
		if _, err := recur.Parse(nt.Recurrence); err != nil {
			return model.Task{}, err
		}
	}
	cat := nt.Category
	if strings.TrimSpace(cat) == "" {
		cat = model.CategoryTask
	}
	cat, err := taskkey.NormalizeCategory(cat)
	if err != nil {
		return model.Task{}, err
	}
	if err := validateSchedule(nt.Scheduled); err != nil {
		return model.Task{}, err
	}
	sched := nt.Scheduled
	if sched == nil && taskkey.DateScoped(cat) {
		sched = &model.DateTime{Date: s.today()}
	}
	template := nt.Recurrence != ""

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Task{}, err
	}
	defer tx.Rollback()

	var schedDate string
	if sched != nil {
		schedDate = sched.Date
	}
	key, err := taskkey.NewAllocator(txSequences{ctx: ctx, tx: tx}).Allocate(cat, schedDate, template)
	if err != nil {
		return model.Task{}, err
	}

	t := model.Task{
		ID:          uuid.NewString(),
		TaskKey:     key.String(),
		Category:    cat,
		TaskNumber:  key.Number,
		Title:       title,
		Scheduled:   sched,
		Recurrence:  nt.Recurrence,
		IsTemplate:  template,
		DurationMin: nt.DurationMin,
		Priority:    nt.Priority,
		CreatedAt:   s.now(),
	}
	if err := insertTask(ctx, tx, t); err != nil {
		return model.Task{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.Task{}, err
	}
	return t, nil
}

func insertTask(ctx context.Context, tx *sql.Tx, t model.Task) error {
	_, err := tx.ExecContext(ctx, `
INSERT INTO tasks (id, task_key, category, task_number, title, completed,
	scheduled_date, recurrence_rule, is_template, parent_task_id,
	duration_minutes, priority, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.TaskKey, t.Category, t.TaskNumber, t.Title, boolInt(t.Completed),
		encodeSchedule(t.Scheduled), t.Recurrence, boolInt(t.IsTemplate), nullStr(t.ParentTaskID),
		nullInt(t.DurationMin), nullInt(t.Priority), t.CreatedAt.Format(time.RFC3339))
	return err
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nullStr(p *string) sql.NullString {
	if p == nil || *p == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: *p, Valid: true}
}

func nullInt(p *int) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*p), Valid: true}
}

// All returns every stored task, templates included, oldest first.
func (s *Store) All(ctx context.Context) ([]model.Task, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+taskColumns+` FROM tasks ORDER BY created_at, task_key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Get returns the task with the given stored id.
func (s *Store) Get(ctx context.Context, id string) (model.Task, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Task{}, NotFoundError{Ref: id}
	}
	if err != nil {
		return model.Task{}, err
	}
	return t, nil
}

// ForDate returns the tasks visible on date. today is the caller's
// current date: when date equals it, projected occurrences are
// materialized into stored instances so they can be completed and
// edited; other dates stay read-only previews.
func (s *Store) ForDate(ctx context.Context, date, today string) ([]model.Task, error) {
	if _, err := model.ParseDate(date); err != nil {
		return nil, err
	}
	all, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	tasks := agenda.ProjectForDate(all, date, s.agendaOptions(today))
	if date != today {
		return tasks, nil
	}
	for i, t := range tasks {
		if !t.Projected {
			continue
		}
		inst, err := s.materialize(ctx, t)
		if err != nil {
			return nil, err
		}
		tasks[i] = inst
	}
	return tasks, nil
}

// materialize turns a projected occurrence into a stored instance with
// its own id and key. The instance keeps the template's rule for
// display but completes like any plain task.
func (s *Store) materialize(ctx context.Context, p model.Task) (model.Task, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Task{}, err
	}
	defer tx.Rollback()

	key, err := taskkey.NewAllocator(txSequences{ctx: ctx, tx: tx}).Allocate(p.Category, p.Scheduled.Date, false)
	if err != nil {
		return model.Task{}, err
	}

	inst := p
	inst.ID = uuid.NewString()
	inst.TaskKey = key.String()
	inst.TaskNumber = key.Number
	inst.Projected = false
	inst.CreatedAt = s.now()
	if err := insertTask(ctx, tx, inst); err != nil {
		return model.Task{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.Task{}, err
	}
	return inst, nil
}

// SetCompleted marks a task done or not done. Completing a standalone
// recurring task instead advances its schedule to the rule's next
// occurrence, keeping the time of day, and leaves it incomplete.
func (s *Store) SetCompleted(ctx context.Context, id string, done bool) (model.Task, error) {
	if err := s.guardMutable(id); err != nil {
		return model.Task{}, err
	}
	t, err := s.Get(ctx, id)
	if err != nil {
		return model.Task{}, err
	}
	if t.IsTemplate {
		return model.Task{}, TemplateError{Op: "complete", Key: t.TaskKey}
	}
	if done && t.Recurring() {
		after := s.today()
		if t.Scheduled != nil && t.Scheduled.Date != "" {
			after = t.Scheduled.Date
		}
		next, err := recur.NextWithin(t.Recurrence, after, s.windowYears())
		if err != nil {
			return model.Task{}, err
		}
		sched := &model.DateTime{Date: next}
		if t.Scheduled.Timed() {
			tm := *t.Scheduled.Time
			sched.Time = &tm
		}
		if _, err := s.db.ExecContext(ctx,
			`UPDATE tasks SET scheduled_date = ?, completed = 0 WHERE id = ?`,
			encodeSchedule(sched), id); err != nil {
			return model.Task{}, err
		}
		t.Scheduled = sched
		t.Completed = false
		return t, nil
	}
	if _, err := s.db.ExecContext(ctx,
		`UPDATE tasks SET completed = ? WHERE id = ?`, boolInt(done), id); err != nil {
		return model.Task{}, err
	}
	t.Completed = done
	return t, nil
}

// SetSchedule reschedules a task. A nil value clears the date.
func (s *Store) SetSchedule(ctx context.Context, id string, dt *model.DateTime) (model.Task, error) {
	if err := s.guardMutable(id); err != nil {
		return model.Task{}, err
	}
	if err := validateSchedule(dt); err != nil {
		return model.Task{}, err
	}
	t, err := s.Get(ctx, id)
	if err != nil {
		return model.Task{}, err
	}
	if _, err := s.db.ExecContext(ctx,
		`UPDATE tasks SET scheduled_date = ? WHERE id = ?`,
		encodeSchedule(dt), id); err != nil {
		return model.Task{}, err
	}
	t.Scheduled = dt
	return t, nil
}

// SetRecurrence puts a rule on an existing task in place: the task
// keeps its id and key and starts advancing on completion instead of
// spawning occurrences. The schedule anchor is the given date, the
// existing one, or today.
func (s *Store) SetRecurrence(ctx context.Context, id, rule string, scheduled *model.DateTime) (model.Task, error) {
	if err := s.guardMutable(id); err != nil {
		return model.Task{}, err
	}
	if _, err := recur.Parse(rule); err != nil {
		return model.Task{}, err
	}
	if err := validateSchedule(scheduled); err != nil {
		return model.Task{}, err
	}
	t, err := s.Get(ctx, id)
	if err != nil {
		return model.Task{}, err
	}
	sched := scheduled
	if sched == nil {
		if t.Scheduled != nil && t.Scheduled.Date != "" {
			sched = t.Scheduled
		} else {
			sched = &model.DateTime{Date: s.today()}
		}
	}
	if _, err := s.db.ExecContext(ctx,
		`UPDATE tasks SET recurrence_rule = ?, scheduled_date = ? WHERE id = ?`,
		rule, encodeSchedule(sched), id); err != nil {
		return model.Task{}, err
	}
	t.Recurrence = rule
	t.Scheduled = sched
	return t, nil
}

// RemoveRecurrence clears a task's rule so it completes normally.
// Templates are rejected; delete the template to stop its occurrences.
func (s *Store) RemoveRecurrence(ctx context.Context, id string) (model.Task, error) {
	if err := s.guardMutable(id); err != nil {
		return model.Task{}, err
	}
	t, err := s.Get(ctx, id)
	if err != nil {
		return model.Task{}, err
	}
	if t.IsTemplate {
		return model.Task{}, TemplateError{Op: "remove recurrence from", Key: t.TaskKey}
	}
	if _, err := s.db.ExecContext(ctx,
		`UPDATE tasks SET recurrence_rule = '' WHERE id = ?`, id); err != nil {
		return model.Task{}, err
	}
	t.Recurrence = ""
	return t, nil
}

// Delete removes a task row. Deleting a template stops future
// occurrences; instances already materialized stay. Numbers are never
// reused.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := s.guardMutable(id); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return NotFoundError{Ref: id}
	}
	return nil
}

// FindByKey looks a task up by its key, case-insensitively.
func (s *Store) FindByKey(ctx context.Context, ref string) (model.Task, error) {
	k, ok := taskkey.Parse(ref)
	if !ok {
		return model.Task{}, NotFoundError{Ref: ref}
	}
	row := s.db.QueryRowContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE task_key = ?`, k.String())
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Task{}, NotFoundError{Ref: ref}
	}
	if err != nil {
		return model.Task{}, err
	}
	return t, nil
}

// FindByTitle returns the best title match: a case-insensitive
// substring search preferring open tasks, then newer ones.
func (s *Store) FindByTitle(ctx context.Context, ref string) (model.Task, error) {
	pat := "%" + strings.ToLower(strings.TrimSpace(ref)) + "%"
	row := s.db.QueryRowContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE LOWER(title) LIKE ?
		 ORDER BY completed ASC, created_at DESC LIMIT 1`, pat)
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Task{}, NotFoundError{Ref: ref}
	}
	if err != nil {
		return model.Task{}, err
	}
	return t, nil
}

// Resolve finds the task a user-supplied reference means: a task key
// first, then a stored id, then a title substring.
func (s *Store) Resolve(ctx context.Context, ref string) (model.Task, error) {
	if _, ok := taskkey.Parse(ref); ok {
		t, err := s.FindByKey(ctx, ref)
		if err == nil {
			return t, nil
		}
		if !IsNotFound(err) {
			return model.Task{}, err
		}
	}
	t, err := s.Get(ctx, ref)
	if err == nil {
		return t, nil
	}
	if !IsNotFound(err) {
		return model.Task{}, err
	}
	t, err = s.FindByTitle(ctx, ref)
	if err == nil {
		return t, nil
	}
	if !IsNotFound(err) {
		return model.Task{}, err
	}
	return model.Task{}, NotFoundError{Ref: ref}
}
