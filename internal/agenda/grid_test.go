package agenda

import (
	"testing"

	"github.com/therogue/tskr/internal/model"
)

func intPtr(n int) *int { return &n }

func timedTask(id, clock string, dur *int) model.Task {
	return model.Task{
		ID:          id,
		Scheduled:   &model.DateTime{Date: "2025-01-20", Time: strPtr(clock)},
		DurationMin: dur,
	}
}

func TestBuildDayGridPositions(t *testing.T) {
	g := BuildDayGrid([]model.Task{timedTask("a", "09:30", intPtr(45))}, GridConfig{})
	if len(g.Timed) != 1 {
		t.Fatalf("expected 1 block, got %d", len(g.Timed))
	}
	b := g.Timed[0]
	if b.Top != 570 || b.Height != 45 {
		t.Fatalf("expected top=570 height=45, got top=%d height=%d", b.Top, b.Height)
	}
}

func TestBuildDayGridDefaults(t *testing.T) {
	g := BuildDayGrid([]model.Task{
		timedTask("nodur", "08:00", nil),
		timedTask("tiny", "10:00", intPtr(10)),
	}, GridConfig{})
	if g.Timed[0].Height != 30 {
		t.Fatalf("nil duration: expected default height 30, got %d", g.Timed[0].Height)
	}
	if g.Timed[1].Height != 16 {
		t.Fatalf("10min block: expected floor height 16, got %d", g.Timed[1].Height)
	}
	if g.Timed[0].Top != 480 || g.Timed[1].Top != 600 {
		t.Fatalf("expected tops 480 and 600, got %d and %d", g.Timed[0].Top, g.Timed[1].Top)
	}
}

func TestBuildDayGridCustomUnit(t *testing.T) {
	g := BuildDayGrid([]model.Task{timedTask("a", "09:30", intPtr(45))}, GridConfig{HourHeight: 120})
	b := g.Timed[0]
	if b.Top != 1140 || b.Height != 90 {
		t.Fatalf("expected top=1140 height=90 at 120/hour, got top=%d height=%d", b.Top, b.Height)
	}
}

func TestBuildDayGridSplitsAndOrders(t *testing.T) {
	tasks := []model.Task{
		timedTask("late", "15:00", nil),
		{ID: "allday", Scheduled: &model.DateTime{Date: "2025-01-20"}},
		timedTask("early", "08:00", nil),
		{ID: "loose"},
	}
	g := BuildDayGrid(tasks, GridConfig{})
	if ids := idsOf(g.Unscheduled); len(ids) != 2 || ids[0] != "allday" || ids[1] != "loose" {
		t.Fatalf("expected unscheduled [allday loose], got %v", ids)
	}
	if g.Timed[0].Task.ID != "early" || g.Timed[1].Task.ID != "late" {
		t.Fatalf("expected timed sorted by start, got %s then %s", g.Timed[0].Task.ID, g.Timed[1].Task.ID)
	}

	// Selection ordering: unscheduled first, then timed top to bottom.
	if ids := idsOf(g.Linear()); len(ids) != 4 ||
		ids[0] != "allday" || ids[1] != "loose" || ids[2] != "early" || ids[3] != "late" {
		t.Fatalf("expected [allday loose early late], got %v", ids)
	}
}

func TestBuildDayGridOverlapsUntouched(t *testing.T) {
	g := BuildDayGrid([]model.Task{
		timedTask("a", "09:00", intPtr(60)),
		timedTask("b", "09:30", intPtr(60)),
	}, GridConfig{})
	if g.Timed[0].Top != 540 || g.Timed[1].Top != 570 {
		t.Fatalf("expected overlapping tops 540 and 570, got %d and %d", g.Timed[0].Top, g.Timed[1].Top)
	}
}
