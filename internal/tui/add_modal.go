package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"

	"github.com/therogue/tskr/internal/agenda"
	"github.com/therogue/tskr/internal/model"
	"github.com/therogue/tskr/internal/store"
)

// The add form cycles one text input through the task fields instead of
// stacking six inputs; tab/shift+tab move between fields and enter
// saves from any of them, so "a, title, enter" stays the fast path.
type addField int

const (
	addFieldTitle addField = iota
	addFieldCategory
	addFieldWhen
	addFieldEvery
	addFieldDuration
	addFieldPriority
	addFieldCount
)

type addState struct {
	field   addField
	values  [addFieldCount]string
	input   textinput.Model
	errText string
}

func addFieldLabel(f addField) string {
	switch f {
	case addFieldTitle:
		return "Title"
	case addFieldCategory:
		return "Category (T, M, D, ...)"
	case addFieldWhen:
		return "When (YYYY-MM-DD [HH:MM])"
	case addFieldEvery:
		return "Repeat (daily, weekly:mon, ...)"
	case addFieldDuration:
		return "Duration (minutes)"
	case addFieldPriority:
		return "Priority (higher sorts first)"
	}
	return ""
}

func (m *appModel) openAddModal() {
	ti := textinput.New()
	ti.Placeholder = addFieldLabel(addFieldTitle)
	ti.CharLimit = 200
	ti.Width = 40
	ti.Focus()

	st := addState{input: ti}
	if m.view == agenda.ViewDay && m.date != model.Today() {
		// Adding while browsing another day schedules there.
		st.values[addFieldWhen] = m.date
	}
	m.add = st
	m.modal = modalAdd
}

func (m *appModel) addSyncField() {
	m.add.values[m.add.field] = m.add.input.Value()
}

func (m *appModel) addShowField(f addField) {
	m.add.field = f
	m.add.input.SetValue(m.add.values[f])
	m.add.input.Placeholder = addFieldLabel(f)
	m.add.input.CursorEnd()
}

func (m appModel) updateAddModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+g":
		m.modal = modalNone
		return m, nil

	case "tab", "down":
		(&m).addSyncField()
		(&m).addShowField((m.add.field + 1) % addFieldCount)
		return m, nil

	case "shift+tab", "up":
		(&m).addSyncField()
		(&m).addShowField((m.add.field + addFieldCount - 1) % addFieldCount)
		return m, nil

	case "enter":
		(&m).addSyncField()
		(&m).submitAdd()
		return m, nil
	}

	var cmd tea.Cmd
	m.add.input, cmd = m.add.input.Update(msg)
	return m, cmd
}

func (m *appModel) submitAdd() {
	nt, err := m.buildNewTask()
	if err != nil {
		m.add.errText = err.Error()
		return
	}
	t, err := m.store.Create(context.Background(), nt)
	if err != nil {
		m.add.errText = err.Error()
		return
	}
	m.modal = modalNone
	m.showMinibuffer("added " + t.TaskKey + " " + t.Title)
	m.reload()
}

func (m *appModel) buildNewTask() (store.NewTask, error) {
	v := m.add.values
	nt := store.NewTask{
		Title:      strings.TrimSpace(v[addFieldTitle]),
		Category:   strings.TrimSpace(v[addFieldCategory]),
		Recurrence: strings.TrimSpace(v[addFieldEvery]),
	}
	if nt.Title == "" {
		return store.NewTask{}, fmt.Errorf("title is empty")
	}
	if when := strings.TrimSpace(v[addFieldWhen]); when != "" {
		dt, err := model.ParseDateTime(when)
		if err != nil {
			return store.NewTask{}, err
		}
		nt.Scheduled = dt
	}
	if s := strings.TrimSpace(v[addFieldDuration]); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			return store.NewTask{}, fmt.Errorf("duration must be a positive number of minutes")
		}
		nt.DurationMin = &n
	}
	if s := strings.TrimSpace(v[addFieldPriority]); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return store.NewTask{}, fmt.Errorf("priority must be a number")
		}
		nt.Priority = &n
	}
	return nt, nil
}

// inputLine pins a textinput view to one padded row of the modal body.
// Newlines or ANSI overflow from the cursor styling would otherwise
// wrap the modal mid-typing.
func inputLine(width int, view string) string {
	if width < 10 {
		width = 10
	}
	view = strings.NewReplacer("\n", " ", "\r", " ").Replace(view)
	line := lipgloss.PlaceHorizontal(width, lipgloss.Left, " "+view+" ",
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceBackground(colorInputBg))
	if xansi.StringWidth(line) <= width {
		return line
	}
	return xansi.Cut(line, 0, width) + "\x1b[0m"
}

func (m appModel) renderAddModal() string {
	bodyW := modalBodyWidth(m.width)

	var b strings.Builder
	for f := addField(0); f < addFieldCount; f++ {
		label := addFieldLabel(f)
		if f == m.add.field {
			b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Render("> " + label))
			b.WriteString("\n")
			b.WriteString(inputLine(bodyW-4, m.add.input.View()))
		} else {
			b.WriteString(styleMuted().Render("  " + label))
			val := strings.TrimSpace(m.add.values[f])
			if val != "" {
				b.WriteString("\n    " + val)
			}
		}
		b.WriteString("\n")
	}

	if m.add.errText != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(colorError).Render(m.add.errText))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styleMuted().Render("tab: next field   enter: save   esc: cancel"))

	return renderModalBox(m.width, "New task", b.String())
}
