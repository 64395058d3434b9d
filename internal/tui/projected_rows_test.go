package tui

import (
	"context"
	"strings"
	"testing"

	"github.com/therogue/tskr/internal/store"
)

// Projected occurrences on future dates are previews without rows of
// their own: completing them is rejected by the store, and today's
// view materializes them into real instances instead.

func TestCompleteKey_ProjectedOccurrenceRejected(t *testing.T) {
	m, s := newTestApp(t)
	seedTask(t, s, store.NewTask{Title: "gym", Recurrence: "daily"})
	m = reloadApp(t, m)

	m = press(t, m, "]")
	if len(m.order) != 1 || !m.order[0].Projected {
		t.Fatalf("expected a projected task, got %+v", m.order)
	}

	m = press(t, m, "x")
	if !strings.Contains(m.minibufferText, "projected occurrence") {
		t.Fatalf("unexpected minibuffer %q", m.minibufferText)
	}
	// Still a preview, still incomplete.
	if len(m.order) != 1 || m.order[0].Completed {
		t.Fatalf("expected untouched projection, got %+v", m.order)
	}
}

func TestToday_MaterializesProjection(t *testing.T) {
	m, s := newTestApp(t)
	seedTask(t, s, store.NewTask{Title: "gym", Recurrence: "daily"})

	m = reloadApp(t, m)
	if len(m.order) != 1 {
		t.Fatalf("expected one task today, got %d", len(m.order))
	}
	inst := m.order[0]
	if inst.Projected {
		t.Fatalf("expected a materialized instance, got a preview")
	}
	if inst.ParentTaskID == nil {
		t.Fatalf("expected instance to point at its template")
	}
	if strings.Contains(inst.ID, "@") {
		t.Fatalf("expected a real id, got %q", inst.ID)
	}

	// Materialized instances complete like plain tasks.
	m = press(t, m, "x")
	got, err := s.Get(context.Background(), inst.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.Completed {
		t.Fatalf("expected instance completed")
	}
}

func TestToday_RepeatedReloadsMaterializeOnce(t *testing.T) {
	m, s := newTestApp(t)
	seedTask(t, s, store.NewTask{Title: "gym", Recurrence: "daily"})

	m = reloadApp(t, m)
	m = reloadApp(t, m)
	m = reloadApp(t, m)

	all, err := s.All(context.Background())
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	// One template, one instance, no duplicates.
	if len(all) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(all))
	}
	if len(m.order) != 1 {
		t.Fatalf("expected 1 visible task, got %d", len(m.order))
	}
}

func TestRecurringStandalone_CompleteAdvancesDate(t *testing.T) {
	m, s := newTestApp(t)
	task := seedTask(t, s, store.NewTask{Title: "water plants"})
	if _, err := s.SetRecurrence(context.Background(), task.ID, "daily", nil); err != nil {
		t.Fatalf("set recurrence: %v", err)
	}
	m = reloadApp(t, m)

	m = press(t, m, "x")
	got, err := s.Get(context.Background(), task.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Completed {
		t.Fatalf("expected recurring task to stay open")
	}
	if got.Scheduled == nil || got.Scheduled.Date <= m.date {
		t.Fatalf("expected schedule advanced past %q, got %+v", m.date, got.Scheduled)
	}
}
