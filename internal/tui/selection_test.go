package tui

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/therogue/tskr/internal/model"
	"github.com/therogue/tskr/internal/store"
)

func seedPlain(t *testing.T, s *store.Store, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		seedTask(t, s, store.NewTask{Title: fmt.Sprintf("task %d", i),
			Scheduled: &model.DateTime{Date: model.Today()}})
	}
}

func clickRow(t *testing.T, m appModel, idx int, shift, ctrl bool) appModel {
	t.Helper()
	row := m.rowOfTask(idx)
	if row < 0 {
		t.Fatalf("no row shows order index %d", idx)
	}
	mm, _ := m.Update(tea.MouseMsg{
		X:      4,
		Y:      row - m.scroll + headerLines,
		Shift:  shift,
		Ctrl:   ctrl,
		Action: tea.MouseActionPress,
		Button: tea.MouseButtonLeft,
	})
	return mm.(appModel)
}

func selectedIndices(m appModel) []int {
	var out []int
	for i, task := range m.order {
		if m.sel.Has(task.ID) {
			out = append(out, i)
		}
	}
	return out
}

func wantSelected(t *testing.T, m appModel, want ...int) {
	t.Helper()
	got := selectedIndices(m)
	if len(got) != len(want) {
		t.Fatalf("expected selection %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected selection %v, got %v", want, got)
		}
	}
}

func TestMouse_ClickShiftCtrl_BuildsExpectedSelection(t *testing.T) {
	m, s := newTestApp(t)
	seedPlain(t, s, 6)
	m = reloadApp(t, m)
	if len(m.order) != 6 {
		t.Fatalf("expected 6 tasks, got %d", len(m.order))
	}

	m = clickRow(t, m, 2, false, false)
	wantSelected(t, m, 2)

	m = clickRow(t, m, 5, true, false)
	wantSelected(t, m, 2, 3, 4, 5)

	m = clickRow(t, m, 0, false, true)
	wantSelected(t, m, 0, 2, 3, 4, 5)
}

func TestMouse_ShiftWinsWhenBothModifiersHeld(t *testing.T) {
	m, s := newTestApp(t)
	seedPlain(t, s, 4)
	m = reloadApp(t, m)

	m = clickRow(t, m, 1, false, false)
	m = clickRow(t, m, 3, true, true)
	wantSelected(t, m, 1, 2, 3)
}

func TestMouse_PlainClickSameRowTwice_Deselects(t *testing.T) {
	m, s := newTestApp(t)
	seedPlain(t, s, 3)
	m = reloadApp(t, m)

	m = clickRow(t, m, 1, false, false)
	wantSelected(t, m, 1)
	m = clickRow(t, m, 1, false, false)
	if m.sel.Len() != 0 {
		t.Fatalf("expected empty selection, got %v", m.sel.IDs())
	}
}

func TestMouse_ClickMovesCursor(t *testing.T) {
	m, s := newTestApp(t)
	seedPlain(t, s, 4)
	m = reloadApp(t, m)

	m = clickRow(t, m, 3, false, false)
	if m.cursor != 3 {
		t.Fatalf("expected cursor 3 after click, got %d", m.cursor)
	}
}

func TestMouse_HeadingAndFooterClicksAreIgnored(t *testing.T) {
	m, s := newTestApp(t)
	seedPlain(t, s, 2)
	m = reloadApp(t, m)

	// Row 0 of the body is the "Tasks" heading.
	mm, _ := m.Update(tea.MouseMsg{X: 1, Y: headerLines,
		Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = mm.(appModel)
	if m.sel.Len() != 0 {
		t.Fatalf("heading click selected %v", m.sel.IDs())
	}

	mm, _ = m.Update(tea.MouseMsg{X: 1, Y: m.height - 1,
		Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = mm.(appModel)
	if m.sel.Len() != 0 {
		t.Fatalf("footer click selected %v", m.sel.IDs())
	}
}

func TestMouse_WheelScrollsBody(t *testing.T) {
	m, s := newTestApp(t)
	seedPlain(t, s, 40)
	m = reloadApp(t, m)

	mm, _ := m.Update(tea.MouseMsg{Button: tea.MouseButtonWheelDown})
	m = mm.(appModel)
	if m.scroll != 3 {
		t.Fatalf("expected scroll 3 after wheel down, got %d", m.scroll)
	}
	mm, _ = m.Update(tea.MouseMsg{Button: tea.MouseButtonWheelUp})
	m = mm.(appModel)
	if m.scroll != 0 {
		t.Fatalf("expected scroll 0 after wheel up, got %d", m.scroll)
	}
}

func TestKeys_SelectToggleRange_MirrorMouseSemantics(t *testing.T) {
	m, s := newTestApp(t)
	seedPlain(t, s, 6)
	m = reloadApp(t, m)

	m = press(t, m, "j", "j", " ") // cursor 2, plain select
	wantSelected(t, m, 2)

	m = press(t, m, "j", "j", "j", "v") // cursor 5, range
	wantSelected(t, m, 2, 3, 4, 5)

	m = press(t, m, "k", "k", "k", "k", "k", "m") // cursor 0, toggle
	wantSelected(t, m, 0, 2, 3, 4, 5)

	if !strings.Contains(m.View(), "5 selected") {
		t.Fatalf("expected header to count 5 selected")
	}
}

func TestKeys_ClearSelection(t *testing.T) {
	m, s := newTestApp(t)
	seedPlain(t, s, 3)
	m = reloadApp(t, m)

	m = press(t, m, " ", "j", "m")
	if m.sel.Len() != 2 {
		t.Fatalf("expected 2 selected, got %d", m.sel.Len())
	}
	m = press(t, m, "esc")
	if m.sel.Len() != 0 {
		t.Fatalf("expected selection cleared, got %v", m.sel.IDs())
	}
}

func TestSelection_ClearsWhenDateChanges(t *testing.T) {
	m, s := newTestApp(t)
	seedPlain(t, s, 3)
	m = reloadApp(t, m)

	m = press(t, m, " ")
	if m.sel.Len() != 1 {
		t.Fatalf("expected 1 selected, got %d", m.sel.Len())
	}
	m = press(t, m, "]")
	if m.sel.Len() != 0 {
		t.Fatalf("expected selection cleared on date change, got %v", m.sel.IDs())
	}
}

func TestSelection_ClearsWhenViewChanges(t *testing.T) {
	m, s := newTestApp(t)
	seedPlain(t, s, 3)
	m = reloadApp(t, m)

	m = press(t, m, "j", "m")
	if m.sel.Len() != 1 {
		t.Fatalf("expected 1 selected, got %d", m.sel.Len())
	}
	m = press(t, m, "2")
	if m.sel.Len() != 0 {
		t.Fatalf("expected selection cleared on view change, got %v", m.sel.IDs())
	}
}

func TestSelection_ClearsWhenCollectionChanges(t *testing.T) {
	m, s := newTestApp(t)
	seedPlain(t, s, 3)
	m = reloadApp(t, m)

	m = press(t, m, " ")
	if m.sel.Len() != 1 {
		t.Fatalf("expected 1 selected, got %d", m.sel.Len())
	}

	seedTask(t, s, store.NewTask{Title: "new arrival",
		Scheduled: &model.DateTime{Date: model.Today()}})
	m = reloadApp(t, m)
	if m.sel.Len() != 0 {
		t.Fatalf("expected selection cleared after collection changed, got %v", m.sel.IDs())
	}
}

func TestSelection_SurvivesReloadOfSameCollection(t *testing.T) {
	m, s := newTestApp(t)
	seedPlain(t, s, 3)
	m = reloadApp(t, m)

	m = press(t, m, "j", " ")
	m = reloadApp(t, m)
	wantSelected(t, m, 1)
}

func TestComplete_MultiSelection_ReportsCount(t *testing.T) {
	m, s := newTestApp(t)
	seedPlain(t, s, 4)
	m = reloadApp(t, m)

	m = press(t, m, " ", "j", "v", "x") // select rows 0-1, complete both
	if !strings.Contains(m.minibufferText, "updated 2 tasks") {
		t.Fatalf("expected count message, got %q", m.minibufferText)
	}
}
