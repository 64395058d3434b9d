// Package store persists tasks and their numbering sequences in a
// local SQLite database, and serves the date-filtered reads the day
// views render.
package store

import (
	"context"
	"database/sql"
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/therogue/tskr/internal/agenda"
	"github.com/therogue/tskr/internal/model"
	"github.com/therogue/tskr/internal/recur"
)

// Options tune store behavior from config.
type Options struct {
	// WindowYears bounds next-occurrence searches when completing a
	// recurring task. Zero means the recur default.
	WindowYears int
	// NoDate is the day-view policy for undated incomplete tasks.
	NoDate agenda.NoDatePolicy
}

type Store struct {
	db   *sql.DB
	opts Options
	path string

	now func() time.Time
}

func Open(path string, opts Options) (*Store, error) {
	if path == "" {
		return nil, errors.New("db path is empty")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	db, err := sql.Open("sqlite", sqliteDSN(path))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	s := &Store{db: db, opts: opts, now: time.Now}
	if !strings.HasPrefix(path, "file:") {
		s.path = path
	}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	const ddl = `
CREATE TABLE IF NOT EXISTS tasks (
	id TEXT PRIMARY KEY,
	task_key TEXT NOT NULL,
	category TEXT NOT NULL,
	task_number INTEGER NOT NULL,
	title TEXT NOT NULL,
	completed INTEGER NOT NULL DEFAULT 0,
	scheduled_date TEXT,
	recurrence_rule TEXT,
	created_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS category_sequences (
	category TEXT PRIMARY KEY,
	next_number INTEGER NOT NULL DEFAULT 1
);`
	if _, err := s.db.Exec(ddl); err != nil {
		return err
	}
	return s.ensureTaskColumns()
}

// ensureTaskColumns adds the columns introduced after the base schema,
// so databases created by older builds keep working.
func (s *Store) ensureTaskColumns() error {
	required := map[string]string{
		"is_template":      "ALTER TABLE tasks ADD COLUMN is_template INTEGER NOT NULL DEFAULT 0;",
		"parent_task_id":   "ALTER TABLE tasks ADD COLUMN parent_task_id TEXT;",
		"duration_minutes": "ALTER TABLE tasks ADD COLUMN duration_minutes INTEGER;",
		"priority":         "ALTER TABLE tasks ADD COLUMN priority INTEGER;",
	}
	existing := map[string]struct{}{}
	rows, err := s.db.Query(`PRAGMA table_info(tasks);`)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var cid int
		var name, ctype string
		var notnull, pk int
		var dflt sql.NullString
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dflt, &pk); err != nil {
			return err
		}
		existing[name] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return err
	}
	var missing []string
	for col := range required {
		if _, ok := existing[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	if err := s.preMigrateCopy(); err != nil {
		return err
	}
	for _, col := range missing {
		if _, err := s.db.Exec(required[col]); err != nil {
			return err
		}
	}
	return nil
}

// preMigrateCopy snapshots the database file beside itself before the
// schema of a database that already holds tasks is altered.
func (s *Store) preMigrateCopy() error {
	if s.path == "" {
		return nil
	}
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM tasks`).Scan(&n); err != nil {
		return err
	}
	if n == 0 {
		return nil
	}
	return copyFile(s.path, s.path+".pre-migrate")
}

func sqliteDSN(path string) string {
	if strings.HasPrefix(path, "file:") {
		return path
	}
	abs, err := filepath.Abs(path)
	if err == nil {
		path = abs
	}
	u := url.URL{
		Scheme: "file",
		Path:   path,
	}
	q := u.Query()
	q.Set("mode", "rwc")
	q.Set("_pragma", "busy_timeout(5000)")
	u.RawQuery = q.Encode()
	return u.String()
}

func (s *Store) windowYears() int {
	if s.opts.WindowYears > 0 {
		return s.opts.WindowYears
	}
	return recur.DefaultWindowYears
}

func (s *Store) agendaOptions(today string) agenda.ProjectOptions {
	return agenda.ProjectOptions{Today: today, NoDate: s.opts.NoDate}
}

// encodeSchedule joins a DateTime into the single scheduled_date
// column: "2025-01-20" or "2025-01-20T09:00".
func encodeSchedule(dt *model.DateTime) sql.NullString {
	if dt == nil || dt.Date == "" {
		return sql.NullString{}
	}
	v := dt.Date
	if dt.Timed() {
		v += "T" + *dt.Time
	}
	return sql.NullString{String: v, Valid: true}
}

func decodeSchedule(v sql.NullString) *model.DateTime {
	if !v.Valid || v.String == "" {
		return nil
	}
	date, clock, ok := strings.Cut(v.String, "T")
	dt := &model.DateTime{Date: date}
	if ok && clock != "" {
		dt.Time = &clock
	}
	return dt
}

const taskColumns = `id, task_key, category, task_number, title, completed,
	scheduled_date, recurrence_rule, is_template, parent_task_id,
	duration_minutes, priority, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(r rowScanner) (model.Task, error) {
	var t model.Task
	var completed, isTemplate int
	var scheduled, rule, parent sql.NullString
	var duration, priority sql.NullInt64
	var created string
	err := r.Scan(&t.ID, &t.TaskKey, &t.Category, &t.TaskNumber, &t.Title, &completed,
		&scheduled, &rule, &isTemplate, &parent, &duration, &priority, &created)
	if err != nil {
		return model.Task{}, err
	}
	t.Completed = completed == 1
	t.IsTemplate = isTemplate == 1
	t.Scheduled = decodeSchedule(scheduled)
	if rule.Valid {
		t.Recurrence = rule.String
	}
	if parent.Valid && parent.String != "" {
		p := parent.String
		t.ParentTaskID = &p
	}
	if duration.Valid {
		d := int(duration.Int64)
		t.DurationMin = &d
	}
	if priority.Valid {
		p := int(priority.Int64)
		t.Priority = &p
	}
	if ts, err := time.Parse(time.RFC3339, created); err == nil {
		t.CreatedAt = ts
	}
	return t, nil
}

// txSequences implements taskkey.Sequences inside a transaction, so a
// task row and its number commit together.
type txSequences struct {
	ctx context.Context
	tx  *sql.Tx
}

func (q txSequences) Next(scope string) (int, error) {
	var n int
	err := q.tx.QueryRowContext(q.ctx,
		`SELECT next_number FROM category_sequences WHERE category = ?`, scope).Scan(&n)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		n = 1
	case err != nil:
		return 0, err
	}
	if _, err := q.tx.ExecContext(q.ctx,
		`INSERT OR REPLACE INTO category_sequences(category, next_number) VALUES(?, ?)`,
		scope, n+1); err != nil {
		return 0, err
	}
	return n, nil
}
