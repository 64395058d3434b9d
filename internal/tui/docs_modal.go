package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/therogue/tskr/internal/docs"
)

// The help modal is a two-level overlay: a topic picker backed by the
// embedded docs, then the rendered markdown of the chosen topic.

func (m appModel) updateDocsModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.docsBody != "" {
		switch msg.String() {
		case "esc", "ctrl+g", "q", "backspace":
			m.docsBody = ""
			m.docsPos = 0
			return m, nil
		case "up", "k":
			if m.docsPos > 0 {
				m.docsPos--
			}
			return m, nil
		case "down", "j":
			// The renderer is cached, so re-measuring to clamp is cheap.
			lines := strings.Count(renderMarkdown(m.docsBody, modalBodyWidth(m.width)-2), "\n") + 1
			if max := lines - modalListHeight(m.height); m.docsPos < max {
				m.docsPos++
			}
			return m, nil
		}
		return m, nil
	}

	switch msg.String() {
	case "esc", "ctrl+g", "q":
		m.modal = modalNone
		return m, nil
	case "enter":
		if it, ok := m.docsList.SelectedItem().(docsItem); ok {
			if body, found := docs.Get(it.topic); found {
				m.docsBody = body
				m.docsPos = 0
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.docsList, cmd = m.docsList.Update(msg)
	return m, cmd
}

func (m appModel) renderDocsModal() string {
	if m.docsBody == "" {
		content := m.docsList.View() + "\n" +
			styleMuted().Render("enter: open   esc: close")
		return renderModalBox(m.width, "Help", content)
	}

	bodyW := modalBodyWidth(m.width)
	rendered := renderMarkdown(m.docsBody, bodyW-2)
	lines := strings.Split(rendered, "\n")

	h := modalListHeight(m.height)
	pos := m.docsPos
	if pos > len(lines)-h {
		pos = len(lines) - h
	}
	if pos < 0 {
		pos = 0
	}
	end := pos + h
	if end > len(lines) {
		end = len(lines)
	}

	content := strings.Join(lines[pos:end], "\n") + "\n" +
		styleMuted().Render("j/k: scroll   esc: back")
	return renderModalBox(m.width, "Help", content)
}
