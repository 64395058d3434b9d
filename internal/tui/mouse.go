package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/therogue/tskr/internal/agenda"
)

// handleMouse maps clicks onto the row they landed on and applies the
// selection semantics: plain click selects, ctrl toggles, shift extends
// from the anchor. When both modifiers are held the range wins. Wheel
// events scroll the body.
func (m *appModel) handleMouse(msg tea.MouseMsg) {
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.scrollBy(-3)
		return
	case msg.Button == tea.MouseButtonWheelDown:
		m.scrollBy(3)
		return
	}

	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return
	}

	if m.height > 0 && msg.Y >= m.height-footerLines {
		return
	}
	row := msg.Y - headerLines + m.scroll
	if row < 0 || row >= len(m.rows) {
		return
	}
	idx := m.rows[row].taskIdx
	if idx < 0 {
		return
	}

	mod := agenda.ModNone
	switch {
	case msg.Shift:
		mod = agenda.ModRange
	case msg.Ctrl:
		mod = agenda.ModToggle
	}
	m.sel.Click(m.order, idx, mod)
	m.cursor = idx
}
