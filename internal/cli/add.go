package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/therogue/tskr/internal/model"
	"github.com/therogue/tskr/internal/store"
)

func newAddCmd(app *App) *cobra.Command {
	var (
		category string
		on       string
		every    string
		duration int
		priority int
	)

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a task, or a recurring template with --every",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, err := loadStore(app)
			if err != nil {
				return err
			}
			defer s.Close()

			nt := store.NewTask{
				Title:      strings.Join(args, " "),
				Category:   category,
				Recurrence: every,
			}
			if on != "" {
				dt, err := model.ParseDateTime(on)
				if err != nil {
					return writeErr(cmd, err)
				}
				nt.Scheduled = dt
			}
			if cmd.Flags().Changed("duration") {
				nt.DurationMin = &duration
			}
			if cmd.Flags().Changed("priority") {
				nt.Priority = &priority
			}

			task, err := s.Create(cmd.Context(), nt)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": task})
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", `Category letters (default "T"; "D" and "M" number per date)`)
	cmd.Flags().StringVar(&on, "on", "", "Schedule (YYYY-MM-DD or YYYY-MM-DDTHH:MM)")
	cmd.Flags().StringVar(&every, "every", "", `Recurrence rule (see "tskr docs rules")`)
	cmd.Flags().IntVar(&duration, "duration", 0, "Duration in minutes, shown on the day grid")
	cmd.Flags().IntVar(&priority, "priority", 0, "Priority; higher sorts first within a section")

	return cmd
}
