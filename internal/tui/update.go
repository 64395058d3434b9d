package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/therogue/tskr/internal/agenda"
)

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.docsList.SetSize(modalBodyWidth(m.width), modalListHeight(m.height))
		(&m).ensureCursorVisible()
		return m, nil

	case reloadTickMsg:
		if m.minibufferText != "" && time.Since(m.minibufferSetAt) > minibufferAutoClearAfter {
			m.minibufferText = ""
		}
		// Refresh so edits made from a parallel CLI session show up.
		(&m).reload()
		return m, tickReload()

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.modal {
		case modalAdd:
			return m.updateAddModal(msg)
		case modalConfirmDelete:
			return m.updateConfirmModal(msg)
		case modalDocs:
			return m.updateDocsModal(msg)
		}
		return m.updateMain(msg)

	case tea.MouseMsg:
		if m.modal != modalNone {
			return m, nil
		}
		(&m).handleMouse(msg)
		return m, nil
	}

	return m, nil
}

func (m appModel) updateMain(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch {
	case keyEq(m.keys.Quit, key):
		return m, tea.Quit

	case keyEq(m.keys.Help, key):
		m.modal = modalDocs
		m.docsBody = ""
		m.docsPos = 0
		m.docsList.SetSize(modalBodyWidth(m.width), modalListHeight(m.height))
		return m, nil

	case keyEq(m.keys.Add, key):
		(&m).openAddModal()
		return m, nil

	case keyEq(m.keys.Complete, key):
		(&m).toggleCompleteTargets()
		return m, nil

	case keyEq(m.keys.Delete, key):
		(&m).openConfirmDelete()
		return m, nil

	case keyEq(m.keys.Up, key) || key == "up":
		(&m).moveCursor(-1)
		return m, nil

	case keyEq(m.keys.Down, key) || key == "down":
		(&m).moveCursor(1)
		return m, nil

	case keyEq(m.keys.Today, key):
		(&m).gotoToday()
		return m, nil

	case keyEq(m.keys.PrevDay, key):
		(&m).shiftDay(-1)
		return m, nil

	case keyEq(m.keys.NextDay, key):
		(&m).shiftDay(1)
		return m, nil

	case keyEq(m.keys.Grid, key):
		(&m).toggleGrid()
		return m, nil

	case keyEq(m.keys.ViewDay, key):
		(&m).switchView(agenda.ViewDay)
		return m, nil

	case keyEq(m.keys.ViewAll, key):
		(&m).switchView(agenda.ViewAll)
		return m, nil

	case keyEq(m.keys.ViewCompleted, key):
		(&m).switchView(agenda.ViewCompleted)
		return m, nil

	case keyEq(m.keys.Select, key):
		(&m).clickCursor(agenda.ModNone)
		return m, nil

	case keyEq(m.keys.ToggleSelect, key):
		(&m).clickCursor(agenda.ModToggle)
		return m, nil

	case keyEq(m.keys.RangeSelect, key):
		(&m).clickCursor(agenda.ModRange)
		return m, nil

	case keyEq(m.keys.ClearSelect, key):
		m.sel.Clear()
		return m, nil

	case key == "r":
		(&m).reload()
		return m, nil
	}

	return m, nil
}

// clickCursor treats a selection key as a click on the cursor row, so
// keyboard and mouse selection share one code path.
func (m *appModel) clickCursor(mod agenda.Modifier) {
	if len(m.order) == 0 {
		return
	}
	m.sel.Click(m.order, m.cursor, mod)
}

// toggleCompleteTargets flips completion on the selection, or on the
// cursor task when nothing is selected. Recurring tasks advance to
// their next occurrence instead of completing; projected previews are
// rejected by the store and reported.
func (m *appModel) toggleCompleteTargets() {
	ids := m.targetIDs()
	if len(ids) == 0 {
		return
	}
	ctx := context.Background()
	var firstErr error
	done := 0
	for _, id := range ids {
		t, ok := m.taskByID(id)
		if !ok {
			continue
		}
		if _, err := m.store.SetCompleted(ctx, id, !t.Completed); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		done++
	}
	switch {
	case firstErr != nil:
		m.showMinibuffer(firstErr.Error())
	case done > 1:
		m.showMinibuffer(fmt.Sprintf("updated %d tasks", done))
	}
	m.reload()
}

func (m *appModel) deleteTargets(ids []string) {
	ctx := context.Background()
	var firstErr error
	done := 0
	for _, id := range ids {
		if err := m.store.Delete(ctx, id); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		done++
	}
	switch {
	case firstErr != nil:
		m.showMinibuffer(firstErr.Error())
	case done == 1:
		m.showMinibuffer("deleted 1 task")
	case done > 1:
		m.showMinibuffer(fmt.Sprintf("deleted %d tasks", done))
	}
	m.sel.Clear()
	m.reload()
}
