package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type confirmState struct {
	ids   []string
	body  string
	focus confirmModalFocus
}

// openConfirmDelete arms the delete confirmation for the current
// targets. Projected previews are filtered here with a hint instead of
// letting the store reject them one by one.
func (m *appModel) openConfirmDelete() {
	ids := m.targetIDs()
	if len(ids) == 0 {
		return
	}
	var keep []string
	projected := 0
	var keys []string
	for _, id := range ids {
		t, ok := m.taskByID(id)
		if !ok {
			continue
		}
		if t.Projected {
			projected++
			continue
		}
		keep = append(keep, id)
		keys = append(keys, t.TaskKey)
	}
	if len(keep) == 0 {
		m.showMinibuffer("projected occurrences cannot be deleted; delete the template instead")
		return
	}

	body := "Delete " + strings.Join(keys, ", ") + "?"
	if len(keys) > 4 {
		body = fmt.Sprintf("Delete %d tasks?", len(keys))
	}
	if projected > 0 {
		body += styleMuted().Render(fmt.Sprintf("  (%d projected skipped)", projected))
	}

	m.confirm = confirmState{ids: keep, body: body, focus: confirmFocusCancel}
	m.modal = modalConfirmDelete
}

func (m appModel) updateConfirmModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+g", "n":
		m.modal = modalNone
		return m, nil
	case "tab", "left", "right":
		if m.confirm.focus == confirmFocusConfirm {
			m.confirm.focus = confirmFocusCancel
		} else {
			m.confirm.focus = confirmFocusConfirm
		}
		return m, nil
	case "y":
		(&m).deleteTargets(m.confirm.ids)
		m.modal = modalNone
		return m, nil
	case "enter":
		if m.confirm.focus == confirmFocusConfirm {
			(&m).deleteTargets(m.confirm.ids)
		}
		m.modal = modalNone
		return m, nil
	}
	return m, nil
}

func (m appModel) renderConfirmDelete() string {
	return renderConfirmModal(m.width, "Delete", m.confirm.body, "Delete", "Cancel", m.confirm.focus)
}

func renderConfirmModal(width int, title string, body string, confirmLabel string, cancelLabel string, focus confirmModalFocus) string {
	// Avoid borders here: some terminals show background artifacts when nesting
	// bordered components inside a modal box.
	btnBase := lipgloss.NewStyle().
		Padding(0, 1).
		Foreground(colorSurfaceFg).
		Background(colorControlBg)
	btnActive := btnBase.
		Foreground(colorSelectedFg).
		Background(colorSelectedBg).
		Bold(true)

	confirm := btnBase.Render(confirmLabel)
	cancel := btnBase.Render(cancelLabel)
	if focus == confirmFocusConfirm {
		confirm = btnActive.Render(confirmLabel)
	}
	if focus == confirmFocusCancel {
		cancel = btnActive.Render(cancelLabel)
	}

	sep := lipgloss.NewStyle().Background(colorControlBg).Render(" ")
	controls := lipgloss.JoinHorizontal(lipgloss.Top, confirm, sep, cancel)

	bodyW := modalBodyWidth(width)
	help := styleMuted().Width(bodyW).Render("tab: focus   enter: select   y/n   esc: cancel")

	content := strings.Join([]string{
		body,
		"",
		controls,
		"",
		help,
	}, "\n")
	return renderModalBox(width, title, content)
}
