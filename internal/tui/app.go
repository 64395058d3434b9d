package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/therogue/tskr/internal/agenda"
	"github.com/therogue/tskr/internal/config"
	"github.com/therogue/tskr/internal/model"
	"github.com/therogue/tskr/internal/store"
)

type modalKind int

const (
	modalNone modalKind = iota
	modalAdd
	modalConfirmDelete
	modalDocs
)

type confirmModalFocus int

const (
	confirmFocusConfirm confirmModalFocus = iota
	confirmFocusCancel
)

type reloadTickMsg struct{}

const (
	// Layout constants: header is title + blank, footer is blank + hints.
	headerLines = 2
	footerLines = 2

	minibufferAutoClearAfter = 4 * time.Second
)

// listLine is one rendered body row. taskIdx indexes the selection
// ordering snapshot, -1 for chrome rows (headings, blanks, empty grid
// rows). Grid rows carry their gutter separately so the hour labels
// stay unstyled by row state.
type listLine struct {
	text    string
	taskIdx int
	heading bool

	grid   bool
	gutter string
	rule   bool
}

type appModel struct {
	store *store.Store
	cfg   config.Config
	keys  config.Keymap

	width  int
	height int

	view     agenda.View
	date     string // day view date, YYYY-MM-DD
	showGrid bool

	// tasks is the last loaded snapshot for the current view; order is
	// the selection ordering derived from it. Clicks resolve against
	// order, so both are rebuilt together.
	tasks    []model.Task
	sections []agenda.TaskSection
	grid     agenda.DayGrid
	order    []model.Task
	rows     []listLine

	cursor int // index into order
	scroll int // first visible row

	sel *agenda.Selection
	// selFingerprint identifies the collection the selection indices
	// refer to. Any change (view, date, grid mode, task set) clears the
	// selection rather than letting stale indices land on other tasks.
	selFingerprint string

	modal   modalKind
	add     addState
	confirm confirmState

	docsList list.Model
	docsBody string
	docsPos  int

	minibufferText  string
	minibufferSetAt time.Time

	loadErr error
}

func newAppModel(s *store.Store, cfg config.Config) appModel {
	m := appModel{
		store: s,
		cfg:   cfg,
		keys:  cfg.Keys,
		view:  agenda.View(cfg.DefaultView),
		date:  model.Today(),
		sel:   agenda.NewSelection(),
	}
	switch m.view {
	case agenda.ViewDay, agenda.ViewAll, agenda.ViewCompleted:
	default:
		m.view = agenda.ViewDay
	}

	m.docsList = newList("Help", nil)
	m.docsList.SetItems(docsItems())

	m.reload()
	return m
}

func (m appModel) Init() tea.Cmd { return tickReload() }

func tickReload() tea.Cmd {
	return tea.Tick(750*time.Millisecond, func(time.Time) tea.Msg { return reloadTickMsg{} })
}

func (m *appModel) showMinibuffer(text string) {
	m.minibufferText = text
	m.minibufferSetAt = time.Now()
}

// reload pulls the current view's tasks from the store and rebuilds the
// visible rows. The day view read also materializes today's projected
// occurrences, so they become completable the moment they are shown.
func (m *appModel) reload() {
	ctx := context.Background()
	var (
		tasks []model.Task
		err   error
	)
	switch m.view {
	case agenda.ViewDay:
		tasks, err = m.store.ForDate(ctx, m.date, model.Today())
	default:
		tasks, err = m.store.All(ctx)
	}
	if err != nil {
		m.loadErr = err
		return
	}
	m.loadErr = nil
	m.tasks = tasks
	m.rebuildRows()
}

// rebuildRows derives sections (or the day grid), the selection
// ordering, and the renderable rows from the loaded snapshot.
func (m *appModel) rebuildRows() {
	if m.view == agenda.ViewDay && m.showGrid {
		m.grid = agenda.BuildDayGrid(m.tasks, m.cfg.GridConfig())
		m.sections = nil
		m.order = m.grid.Linear()
		m.rows = m.gridRows(m.grid)
	} else {
		m.sections = agenda.ForView(m.tasks, m.view)
		m.grid = agenda.DayGrid{}
		m.order = agenda.Linear(m.sections)
		m.rows = m.sectionRows(m.sections)
	}

	if m.cursor >= len(m.order) {
		m.cursor = len(m.order) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	maxScroll := len(m.rows) - m.bodyHeight()
	if maxScroll < 0 {
		maxScroll = 0
	}
	if m.scroll > maxScroll {
		m.scroll = maxScroll
	}

	if fp := m.fingerprint(); fp != m.selFingerprint {
		m.sel.Clear()
		m.selFingerprint = fp
	}
}

func (m *appModel) fingerprint() string {
	fp := string(m.view) + "|" + m.date + "|"
	if m.showGrid {
		fp += "grid|"
	}
	for _, t := range m.order {
		fp += t.ID + ","
	}
	return fp
}

func (m appModel) bodyHeight() int {
	h := m.height - headerLines - footerLines
	if h < 1 {
		h = 20
	}
	return h
}

func (m appModel) bodyWidth() int {
	if m.width < 20 {
		return 80
	}
	return m.width
}

func (m appModel) taskAt(idx int) (model.Task, bool) {
	if idx < 0 || idx >= len(m.order) {
		return model.Task{}, false
	}
	return m.order[idx], true
}

func (m appModel) taskByID(id string) (model.Task, bool) {
	for _, t := range m.order {
		if t.ID == id {
			return t, true
		}
	}
	return model.Task{}, false
}

// targets are the tasks an action applies to: the selection when one
// exists, otherwise the task under the cursor.
func (m appModel) targetIDs() []string {
	if m.sel.Len() > 0 {
		return m.sel.IDs()
	}
	if t, ok := m.taskAt(m.cursor); ok {
		return []string{t.ID}
	}
	return nil
}

func (m *appModel) moveCursor(delta int) {
	if len(m.order) == 0 {
		return
	}
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(m.order) {
		m.cursor = len(m.order) - 1
	}
	m.ensureCursorVisible()
}

// rowOfTask returns the first body row showing the given order index.
func (m appModel) rowOfTask(idx int) int {
	for ri, ln := range m.rows {
		if ln.taskIdx == idx {
			return ri
		}
	}
	return -1
}

func (m *appModel) ensureCursorVisible() {
	row := m.rowOfTask(m.cursor)
	if row < 0 {
		return
	}
	h := m.bodyHeight()
	if row < m.scroll {
		m.scroll = row
	}
	if row >= m.scroll+h {
		m.scroll = row - h + 1
	}
}

func (m *appModel) scrollBy(delta int) {
	m.scroll += delta
	max := len(m.rows) - m.bodyHeight()
	if max < 0 {
		max = 0
	}
	if m.scroll > max {
		m.scroll = max
	}
	if m.scroll < 0 {
		m.scroll = 0
	}
}

func (m *appModel) shiftDay(delta int) {
	if m.view != agenda.ViewDay {
		return
	}
	d, err := model.ParseDate(m.date)
	if err != nil {
		m.date = model.Today()
		d, _ = model.ParseDate(m.date)
	}
	m.date = model.FormatDate(d.AddDate(0, 0, delta))
	m.scroll = 0
	m.cursor = 0
	m.reload()
}

func (m *appModel) gotoToday() {
	if m.view != agenda.ViewDay {
		return
	}
	m.date = model.Today()
	m.scroll = 0
	m.cursor = 0
	m.reload()
}

func (m *appModel) switchView(v agenda.View) {
	if m.view == v {
		return
	}
	m.view = v
	m.scroll = 0
	m.cursor = 0
	m.reload()
}

func (m *appModel) toggleGrid() {
	if m.view != agenda.ViewDay {
		return
	}
	m.showGrid = !m.showGrid
	m.scroll = 0
	m.rebuildRows()
	if m.showGrid {
		m.scrollGridToMorning()
	}
}

// scrollGridToMorning starts a freshly opened grid at the first timed
// block, or at 08:00 when the day has none.
func (m *appModel) scrollGridToMorning() {
	target := -1
	for ri, ln := range m.rows {
		if !ln.grid {
			continue
		}
		if ln.taskIdx >= 0 {
			target = ri
			break
		}
	}
	if target < 0 {
		morning := 8 * gridRowsPerHour(m.cfg.GridConfig().HourHeight)
		for ri, ln := range m.rows {
			if ln.grid {
				target = ri + morning
				break
			}
		}
	}
	if target < 0 {
		return
	}
	max := len(m.rows) - m.bodyHeight()
	if max < 0 {
		max = 0
	}
	if target > max {
		target = max
	}
	m.scroll = target
}
