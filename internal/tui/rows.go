package tui

import (
	"fmt"
	"strings"

	"github.com/therogue/tskr/internal/agenda"
	"github.com/therogue/tskr/internal/model"
)

// sectionRows lays out grouped sections as heading + task rows. Task
// rows are numbered in section order, which is exactly the selection
// ordering agenda.Linear produces.
func (m *appModel) sectionRows(sections []agenda.TaskSection) []listLine {
	var rows []listLine
	idx := 0
	for si, sec := range sections {
		if si > 0 {
			rows = append(rows, listLine{taskIdx: -1})
		}
		rows = append(rows, listLine{text: sec.Title, taskIdx: -1, heading: true})
		for _, t := range sec.Tasks {
			rows = append(rows, listLine{text: m.taskLine(t), taskIdx: idx})
			idx++
		}
	}
	if len(rows) == 0 {
		hint := "No tasks here. Press " + keyLabel(m.keys.Add) + " to add one."
		rows = append(rows, listLine{text: hint, taskIdx: -1})
	}
	return rows
}

func (m *appModel) taskLine(t model.Task) string {
	var mark string
	switch {
	case t.IsTemplate:
		mark = glyphRepeat()
	case t.Completed:
		mark = glyphCheckboxDone()
	case t.Projected:
		mark = glyphBullet()
	default:
		mark = glyphCheckboxOpen()
	}
	line := padTo(mark, 3) + " " + padTo(t.TaskKey, 8) + " " + t.Title
	if meta := m.taskMeta(t); meta != "" {
		line += "  " + meta
	}
	return line
}

func (m *appModel) taskMeta(t model.Task) string {
	var parts []string
	if m.view == agenda.ViewDay {
		// The date is the screen's own; only the clock adds anything.
		if c := formatClock(t.Scheduled); c != "" {
			parts = append(parts, c)
		}
	} else if s := formatScheduleLabel(t.Scheduled); s != "" {
		parts = append(parts, s)
	}
	if d := formatDuration(t.DurationMin); d != "" {
		parts = append(parts, d)
	}
	if p := formatPriority(t.Priority); p != "" {
		parts = append(parts, p)
	}
	if t.Recurrence != "" {
		parts = append(parts, glyphRepeat()+" "+t.Recurrence)
	}
	if t.Projected {
		parts = append(parts, "projected")
	}
	return strings.Join(parts, "  ")
}

const gridGutterW = 6 // "09:00" + space

// gridRowsPerHour scales the pixel-based hour height down to terminal
// rows: the web renderer draws 60px hours, the terminal draws 2 rows.
func gridRowsPerHour(hourHeight int) int {
	if hourHeight <= 0 {
		hourHeight = agenda.DefaultHourHeight
	}
	n := hourHeight / 30
	if n < 1 {
		n = 1
	}
	if n > 4 {
		n = 4
	}
	return n
}

// gridRows lays out the day grid: the unscheduled tasks as plain rows,
// then 24 hours of slots with timed blocks painted over them. Blocks
// keep their pixel Top/Height; only the final row placement is scaled.
// Overlapping blocks overwrite earlier ones row by row, so the later
// block wins the shared rows.
func (m *appModel) gridRows(day agenda.DayGrid) []listLine {
	var rows []listLine
	idx := 0

	if len(day.Unscheduled) > 0 {
		rows = append(rows, listLine{text: "Unscheduled", taskIdx: -1, heading: true})
		for _, t := range day.Unscheduled {
			rows = append(rows, listLine{text: m.taskLine(t), taskIdx: idx})
			idx++
		}
		rows = append(rows, listLine{taskIdx: -1})
	}

	gc := m.cfg.GridConfig()
	hourH := gc.HourHeight
	if hourH <= 0 {
		hourH = agenda.DefaultHourHeight
	}
	rph := gridRowsPerHour(hourH)
	total := 24 * rph

	text := make([]string, total)
	owner := make([]int, total)
	for i := range owner {
		owner[i] = -1
	}

	for _, b := range day.Timed {
		start := b.Top * rph / hourH
		if start < 0 {
			start = 0
		}
		if start >= total {
			start = total - 1
		}
		span := b.Height * rph / hourH
		if span < 1 {
			span = 1
		}
		label := m.blockLabel(b.Task)
		cont := "┃"
		if glyphs() == glyphSetASCII {
			cont = "|"
		}
		for r := 0; r < span && start+r < total; r++ {
			if r == 0 {
				text[start+r] = label
			} else {
				text[start+r] = cont
			}
			owner[start+r] = idx
		}
		idx++
	}

	for r := 0; r < total; r++ {
		gutter := strings.Repeat(" ", gridGutterW)
		onHour := r%rph == 0
		if onHour {
			gutter = fmt.Sprintf("%02d:00 ", r/rph)
		}
		rows = append(rows, listLine{
			text:    text[r],
			taskIdx: owner[r],
			grid:    true,
			gutter:  gutter,
			rule:    onHour && owner[r] < 0,
		})
	}
	return rows
}

func (m *appModel) blockLabel(t model.Task) string {
	label := t.TaskKey + " " + t.Title
	if d := formatDuration(t.DurationMin); d != "" {
		label += " (" + d + ")"
	}
	if t.Projected {
		label += "  projected"
	}
	return label
}
