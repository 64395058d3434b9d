package store

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/therogue/tskr/internal/model"
	"github.com/therogue/tskr/internal/recur"
	"github.com/therogue/tskr/internal/taskkey"
)

// Backup writes a consistent snapshot of the live database to dst
// using VACUUM INTO, so it works while the store is open. dst must not
// already exist.
func (s *Store) Backup(ctx context.Context, dst string) error {
	if strings.TrimSpace(dst) == "" {
		return errors.New("backup: destination path is empty")
	}
	if _, err := os.Stat(dst); err == nil {
		return fmt.Errorf("backup: %s already exists", dst)
	}
	_, err := s.db.ExecContext(ctx, `VACUUM INTO ?`, dst)
	return err
}

// Import replaces the stored tasks with the given ones and rebuilds
// the numbering sequences from them, so later allocations continue
// past the imported numbers.
//
// This is intended for backup/restore workflows, not day-to-day
// mutations.
func (s *Store) Import(ctx context.Context, tasks []model.Task) error {
	for _, t := range tasks {
		if err := validateImport(t); err != nil {
			return err
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, stmt := range []string{
		`DELETE FROM tasks;`,
		`DELETE FROM category_sequences;`,
	} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}

	next := map[string]int{}
	for _, t := range tasks {
		if t.CreatedAt.IsZero() {
			t.CreatedAt = s.now()
		}
		if err := insertTask(ctx, tx, t); err != nil {
			return err
		}
		date := ""
		if t.Scheduled != nil {
			date = t.Scheduled.Date
		}
		scope := taskkey.Scope(t.Category, date, t.IsTemplate)
		if t.TaskNumber >= next[scope] {
			next[scope] = t.TaskNumber + 1
		}
	}
	for scope, n := range next {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR REPLACE INTO category_sequences(category, next_number) VALUES(?, ?)`,
			scope, n); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func validateImport(t model.Task) error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("import: task has empty id")
	}
	if strings.TrimSpace(t.Title) == "" {
		return fmt.Errorf("import: task %s has empty title", t.ID)
	}
	k, ok := taskkey.Parse(t.TaskKey)
	if !ok || k.Category != t.Category || k.Number != t.TaskNumber || k.Template != t.IsTemplate {
		return fmt.Errorf("import: task %s key %q does not match its fields", t.ID, t.TaskKey)
	}
	if err := validateSchedule(t.Scheduled); err != nil {
		return fmt.Errorf("import: task %s: %w", t.TaskKey, err)
	}
	if t.Recurrence != "" {
		if _, err := recur.Parse(t.Recurrence); err != nil {
			return fmt.Errorf("import: task %s: %w", t.TaskKey, err)
		}
	}
	return nil
}

// WriteTasksJSONL writes tasks as JSONL, one task per line.
func WriteTasksJSONL(path string, tasks []model.Task) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	enc := json.NewEncoder(bw)
	for _, t := range tasks {
		if err := enc.Encode(t); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadTasksJSONL reads tasks from a JSONL file, skipping blank lines.
func ReadTasksJSONL(path string) ([]model.Task, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []model.Task
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		var t model.Task
		if err := json.Unmarshal([]byte(line), &t); err != nil {
			return nil, fmt.Errorf("parse tasks jsonl: %w", err)
		}
		out = append(out, t)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if out == nil {
		out = []model.Task{}
	}
	return out, nil
}
