package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/therogue/tskr/internal/agenda"
	"github.com/therogue/tskr/internal/model"
)

func (m appModel) View() string {
	w := m.bodyWidth()
	bodyH := m.bodyHeight()

	header := m.renderHeader(w)
	body := normalizePane(m.renderBody(w, bodyH), w, bodyH)
	footer := m.renderFooter(w)

	screen := header + "\n" + body + "\n" + footer
	if m.modal == modalNone {
		return screen
	}

	h := m.height
	if h < 10 {
		h = 24
	}
	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, m.renderModal())
}

func (m appModel) renderHeader(width int) string {
	title := lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Render("tskr")
	view := lipgloss.NewStyle().Bold(true).Render(string(m.view))

	parts := []string{title, view}
	if m.view == agenda.ViewDay {
		parts = append(parts, formatDayTitle(m.date, model.Today()))
		if m.showGrid {
			parts = append(parts, styleMuted().Render("grid"))
		}
	}
	if n := m.sel.Len(); n > 0 {
		parts = append(parts, styleMuted().Render(fmt.Sprintf("%d selected", n)))
	}
	line := strings.Join(parts, "  ")
	return normalizePane(line, width, 1) + "\n"
}

func (m appModel) renderBody(width, height int) string {
	if m.loadErr != nil {
		return lipgloss.NewStyle().Foreground(colorError).Render(m.loadErr.Error())
	}

	end := m.scroll + height
	if end > len(m.rows) {
		end = len(m.rows)
	}
	start := m.scroll
	if start > end {
		start = end
	}

	lines := make([]string, 0, end-start)
	for ri := start; ri < end; ri++ {
		lines = append(lines, m.renderRow(m.rows[ri], width))
	}
	return strings.Join(lines, "\n")
}

func (m appModel) renderRow(ln listLine, width int) string {
	if ln.grid {
		return m.renderGridRow(ln, width)
	}

	st := lipgloss.NewStyle()
	t, ok := m.taskAt(ln.taskIdx)
	switch {
	case ln.heading:
		st = lipgloss.NewStyle().Bold(true).Foreground(colorChromeMutedFg)
	case !ok:
		st = styleMuted()
	case ln.taskIdx == m.cursor:
		st = lipgloss.NewStyle().Background(colorCursorBg).Foreground(colorSelectedFg)
	case m.sel.Has(t.ID):
		st = lipgloss.NewStyle().Background(colorSelectedBg).Foreground(colorSelectedFg)
	case t.Projected:
		st = styleMuted()
	case t.Completed:
		st = styleMuted().Strikethrough(true)
	}
	return st.Render(padTo(ln.text, width))
}

// renderGridRow draws gutter and content side by side: the gutter keeps
// its muted hour label regardless of what is painted next to it.
func (m appModel) renderGridRow(ln listLine, width int) string {
	gutter := styleMuted().Render(ln.gutter)
	contentW := width - gridGutterW
	if contentW < 1 {
		return gutter
	}

	if t, ok := m.taskAt(ln.taskIdx); ok {
		st := lipgloss.NewStyle().Foreground(categoryColor(t.Category))
		switch {
		case ln.taskIdx == m.cursor:
			st = st.Background(colorCursorBg).Foreground(colorSelectedFg)
		case m.sel.Has(t.ID):
			st = st.Background(colorSelectedBg).Foreground(colorSelectedFg)
		case t.Projected:
			st = styleMuted()
		}
		return gutter + st.Render(padTo(" "+ln.text, contentW))
	}

	if ln.rule {
		return gutter + styleMuted().Render(strings.Repeat(glyphHRule(), contentW))
	}
	return gutter + strings.Repeat(" ", contentW)
}

func (m appModel) renderFooter(width int) string {
	var line string
	if m.minibufferText != "" {
		line = lipgloss.NewStyle().Foreground(colorAccent).Render(m.minibufferText)
	} else {
		line = styleMuted().Render(m.footerHints())
	}
	return "\n" + normalizePane(line, width, 1)
}

func (m appModel) footerHints() string {
	k := m.keys
	parts := []string{
		keyLabel(k.Add) + ": add",
		keyLabel(k.Complete) + ": done",
		keyLabel(k.Delete) + ": delete",
		keyLabel(k.Select) + "/" + keyLabel(k.ToggleSelect) + "/" + keyLabel(k.RangeSelect) + ": select",
	}
	if m.view == agenda.ViewDay {
		parts = append(parts,
			keyLabel(k.PrevDay)+keyLabel(k.NextDay)+": day",
			keyLabel(k.Grid)+": grid",
		)
	}
	parts = append(parts,
		keyLabel(k.ViewDay)+"/"+keyLabel(k.ViewAll)+"/"+keyLabel(k.ViewCompleted)+": view",
		keyLabel(k.Help)+": help",
		keyLabel(k.Quit)+": quit",
	)
	return strings.Join(parts, "  ")
}

func (m appModel) renderModal() string {
	switch m.modal {
	case modalAdd:
		return m.renderAddModal()
	case modalConfirmDelete:
		return m.renderConfirmDelete()
	case modalDocs:
		return m.renderDocsModal()
	}
	return ""
}

func modalBodyWidth(total int) int {
	w := total - 8
	if w > 64 {
		w = 64
	}
	if w < 24 {
		w = 24
	}
	return w
}

func modalListHeight(total int) int {
	h := total - 10
	if h > 16 {
		h = 16
	}
	if h < 4 {
		h = 4
	}
	return h
}

// renderModalBox frames modal content under a titled header. No
// background fill: painted backgrounds inside bordered boxes leave
// artifacts on some terminals.
func renderModalBox(width int, title string, content string) string {
	bodyW := modalBodyWidth(width)
	head := lipgloss.NewStyle().
		Bold(true).
		Foreground(colorModalHeaderFg).
		Background(colorModalHeaderBg).
		Padding(0, 1).
		Width(bodyW).
		Render(title)
	body := lipgloss.NewStyle().
		Padding(0, 1).
		Width(bodyW).
		Render(content)
	box := lipgloss.JoinVertical(lipgloss.Left, head, body)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorModalBorder).
		Render(box)
}
