package tui

import (
	"strings"
	"testing"

	"github.com/therogue/tskr/internal/model"
	"github.com/therogue/tskr/internal/store"
)

// The default config maps a 60-unit hour to two terminal rows, so the
// 24-hour grid is 48 rows and 09:00 starts at row 18.

func TestToggleGrid_PlacesTimedBlock(t *testing.T) {
	m, s := newTestApp(t)
	seedTask(t, s, store.NewTask{Title: "standup", Category: "M",
		Scheduled: &model.DateTime{Date: model.Today(), Time: strPtr("09:00")},
		DurationMin: intPtr(60)})
	m = reloadApp(t, m)

	m = press(t, m, "g")
	if !m.showGrid {
		t.Fatalf("expected grid mode on")
	}
	if len(m.rows) != 48 {
		t.Fatalf("expected 48 grid rows, got %d", len(m.rows))
	}

	if m.rows[18].taskIdx != 0 {
		t.Fatalf("expected block at row 18, owner %d", m.rows[18].taskIdx)
	}
	if !strings.Contains(m.rows[18].text, "M-01 standup (60m)") {
		t.Fatalf("unexpected block label %q", m.rows[18].text)
	}
	if m.rows[18].gutter != "09:00 " {
		t.Fatalf("expected hour gutter, got %q", m.rows[18].gutter)
	}
	// 60 minutes spans two rows; the second is a continuation.
	if m.rows[19].taskIdx != 0 {
		t.Fatalf("expected continuation row owned by block, owner %d", m.rows[19].taskIdx)
	}
	if m.rows[20].taskIdx != -1 {
		t.Fatalf("expected row 20 empty, owner %d", m.rows[20].taskIdx)
	}

	// A fresh grid scrolls to the first block.
	if m.scroll != 18 {
		t.Fatalf("expected scroll 18, got %d", m.scroll)
	}

	out := m.View()
	for _, want := range []string{"09:00", "standup", "grid"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected grid view to contain %q", want)
		}
	}
}

func TestGrid_ShortBlockStillGetsOneRow(t *testing.T) {
	m, s := newTestApp(t)
	seedTask(t, s, store.NewTask{Title: "ping",
		Scheduled: &model.DateTime{Date: model.Today(), Time: strPtr("09:15")},
		DurationMin: intPtr(5)})
	m = reloadApp(t, m)

	m = press(t, m, "g")
	if m.rows[18].taskIdx != 0 {
		t.Fatalf("expected block at row 18, owner %d", m.rows[18].taskIdx)
	}
	if m.rows[19].taskIdx != -1 {
		t.Fatalf("expected single-row block, row 19 owner %d", m.rows[19].taskIdx)
	}
}

func TestGrid_LaterBlockOverpaintsOverlap(t *testing.T) {
	m, s := newTestApp(t)
	seedTask(t, s, store.NewTask{Title: "first",
		Scheduled: &model.DateTime{Date: model.Today(), Time: strPtr("09:00")}})
	seedTask(t, s, store.NewTask{Title: "second",
		Scheduled: &model.DateTime{Date: model.Today(), Time: strPtr("09:00")}})
	m = reloadApp(t, m)

	m = press(t, m, "g")
	if m.rows[18].taskIdx != 1 {
		t.Fatalf("expected later block to own row 18, owner %d", m.rows[18].taskIdx)
	}
	if !strings.Contains(m.rows[18].text, "second") {
		t.Fatalf("unexpected label %q", m.rows[18].text)
	}
}

func TestGrid_UnscheduledTasksComeFirstInOrder(t *testing.T) {
	m, s := newTestApp(t)
	seedTask(t, s, store.NewTask{Title: "someday"})
	seedTask(t, s, store.NewTask{Title: "standup", Category: "M",
		Scheduled: &model.DateTime{Date: model.Today(), Time: strPtr("09:00")}})
	m = reloadApp(t, m)

	m = press(t, m, "g")
	if len(m.order) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(m.order))
	}
	if m.order[0].Title != "someday" {
		t.Fatalf("expected unscheduled first, got %q", m.order[0].Title)
	}

	if !m.rows[0].heading || m.rows[0].text != "Unscheduled" {
		t.Fatalf("expected Unscheduled heading, got %+v", m.rows[0])
	}
	if m.rows[1].taskIdx != 0 {
		t.Fatalf("expected unscheduled task row, owner %d", m.rows[1].taskIdx)
	}
	// Grid starts after heading, task row, and spacer.
	if m.rows[3+18].taskIdx != 1 {
		t.Fatalf("expected timed block at offset row, owner %d", m.rows[3+18].taskIdx)
	}
}

func TestGrid_ProjectedOccurrenceShowsAsPreview(t *testing.T) {
	m, s := newTestApp(t)
	seedTask(t, s, store.NewTask{Title: "gym", Recurrence: "daily",
		Scheduled: &model.DateTime{Date: model.Today(), Time: strPtr("09:00")}})
	m = reloadApp(t, m)

	m = press(t, m, "]", "g")
	if len(m.order) != 1 {
		t.Fatalf("expected 1 projected task, got %d", len(m.order))
	}
	if !m.order[0].Projected {
		t.Fatalf("expected projected occurrence, got %+v", m.order[0])
	}
	if m.rows[18].taskIdx != 0 {
		t.Fatalf("expected projected block at row 18, owner %d", m.rows[18].taskIdx)
	}
	if !strings.Contains(m.rows[18].text, "projected") {
		t.Fatalf("expected projected marker in %q", m.rows[18].text)
	}
}

func TestGrid_ToggleOffRestoresSections(t *testing.T) {
	m, s := newTestApp(t)
	seedTask(t, s, store.NewTask{Title: "standup", Category: "M",
		Scheduled: &model.DateTime{Date: model.Today(), Time: strPtr("09:00")}})
	m = reloadApp(t, m)

	m = press(t, m, "g", "g")
	if m.showGrid {
		t.Fatalf("expected grid mode off")
	}
	if !m.rows[0].heading || m.rows[0].text != "Meetings" {
		t.Fatalf("expected Meetings heading, got %+v", m.rows[0])
	}
}

func TestGrid_KeyIgnoredOutsideDayView(t *testing.T) {
	m, _ := newTestApp(t)

	m = press(t, m, "2", "g")
	if m.showGrid {
		t.Fatalf("expected grid key to be a no-op outside the day view")
	}
}

func TestGrid_SelectionWorksOnBlocks(t *testing.T) {
	m, s := newTestApp(t)
	seedTask(t, s, store.NewTask{Title: "a",
		Scheduled: &model.DateTime{Date: model.Today(), Time: strPtr("09:00")}})
	seedTask(t, s, store.NewTask{Title: "b",
		Scheduled: &model.DateTime{Date: model.Today(), Time: strPtr("11:00")}})
	m = reloadApp(t, m)

	m = press(t, m, "g")
	m = clickRow(t, m, 0, false, false)
	wantSelected(t, m, 0)
	m = clickRow(t, m, 1, true, false)
	wantSelected(t, m, 0, 1)

	// Leaving grid mode drops the selection with the ordering.
	m = press(t, m, "g")
	if m.sel.Len() != 0 {
		t.Fatalf("expected selection cleared when layout changed, got %v", m.sel.IDs())
	}
}
