package cli

import (
	"github.com/spf13/cobra"

	"github.com/therogue/tskr/internal/agenda"
	"github.com/therogue/tskr/internal/model"
)

func newDayCmd(app *App) *cobra.Command {
	var grid bool

	cmd := &cobra.Command{
		Use:   "day [DATE]",
		Short: "Show a date's tasks; viewing today materializes due recurrences",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, cfg, err := loadStore(app)
			if err != nil {
				return err
			}
			defer s.Close()

			today := model.Today()
			date := today
			if len(args) == 1 {
				dt, err := model.ParseDateTime(args[0])
				if err != nil {
					return writeErr(cmd, err)
				}
				date = dt.Date
			}

			tasks, err := s.ForDate(cmd.Context(), date, today)
			if err != nil {
				return writeErr(cmd, err)
			}

			if !grid {
				sections := agenda.GroupByCategory(tasks)
				return writeOut(cmd, app, map[string]any{"data": map[string]any{
					"date":     date,
					"sections": sectionsPayload(sections),
				}})
			}

			g := agenda.BuildDayGrid(tasks, cfg.GridConfig())
			blocks := make([]blockPayload, 0, len(g.Timed))
			for _, b := range g.Timed {
				blocks = append(blocks, blockPayload{Task: b.Task, Top: b.Top, Height: b.Height})
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"date":        date,
				"unscheduled": tasksOrEmpty(g.Unscheduled),
				"timed":       blocks,
			}})
		},
	}

	cmd.Flags().BoolVar(&grid, "grid", false, "Include hour-grid layout (top/height per timed task)")

	return cmd
}
