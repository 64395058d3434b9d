package agenda

import (
	"sort"

	"github.com/therogue/tskr/internal/model"
)

// Grid geometry defaults, in pixels-per-hour terms. Terminal renderers
// scale these down to rows.
const (
	DefaultHourHeight      = 60
	DefaultMinBlockHeight  = 16
	DefaultDurationMinutes = 30
)

// GridConfig sets the day-grid geometry.
type GridConfig struct {
	HourHeight      int // height of one hour
	MinBlockHeight  int // floor for rendered blocks
	DefaultDuration int // minutes assumed when a task carries none
}

func (c GridConfig) withDefaults() GridConfig {
	if c.HourHeight <= 0 {
		c.HourHeight = DefaultHourHeight
	}
	if c.MinBlockHeight <= 0 {
		c.MinBlockHeight = DefaultMinBlockHeight
	}
	if c.DefaultDuration <= 0 {
		c.DefaultDuration = DefaultDurationMinutes
	}
	return c
}

// Block is a timed task positioned on the 24-hour grid.
type Block struct {
	Task   model.Task
	Top    int
	Height int
}

// DayGrid is a day's tasks split into the unscheduled list and the
// positioned timed blocks. Unscheduled tasks precede timed ones in the
// selection ordering.
type DayGrid struct {
	Unscheduled []model.Task
	Timed       []Block
}

// BuildDayGrid lays out a day's visible tasks. Tasks without a clock
// time go to the unscheduled list in input order; timed tasks become
// blocks sorted by start. Overlapping blocks are left overlapping.
func BuildDayGrid(tasks []model.Task, cfg GridConfig) DayGrid {
	cfg = cfg.withDefaults()
	var g DayGrid
	for _, t := range tasks {
		if !t.Scheduled.Timed() {
			g.Unscheduled = append(g.Unscheduled, t)
			continue
		}
		start, err := model.ClockMinutes(*t.Scheduled.Time)
		if err != nil {
			g.Unscheduled = append(g.Unscheduled, t)
			continue
		}
		dur := cfg.DefaultDuration
		if t.DurationMin != nil && *t.DurationMin > 0 {
			dur = *t.DurationMin
		}
		top := start * cfg.HourHeight / 60
		height := dur * cfg.HourHeight / 60
		if height < cfg.MinBlockHeight {
			height = cfg.MinBlockHeight
		}
		g.Timed = append(g.Timed, Block{Task: t, Top: top, Height: height})
	}
	sort.SliceStable(g.Timed, func(i, j int) bool { return g.Timed[i].Top < g.Timed[j].Top })
	return g
}

// Linear returns the combined selection ordering: the unscheduled list
// first, then timed blocks top to bottom.
func (g DayGrid) Linear() []model.Task {
	out := make([]model.Task, 0, len(g.Unscheduled)+len(g.Timed))
	out = append(out, g.Unscheduled...)
	for _, b := range g.Timed {
		out = append(out, b.Task)
	}
	return out
}
