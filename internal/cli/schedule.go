package cli

import (
	"github.com/spf13/cobra"

	"github.com/therogue/tskr/internal/model"
)

func newScheduleCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule <ref> <when|none>",
		Short: "Reschedule a task, or clear its date with \"none\"",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, err := loadStore(app)
			if err != nil {
				return err
			}
			defer s.Close()

			t, err := s.Resolve(cmd.Context(), args[0])
			if err != nil {
				return writeErr(cmd, err)
			}

			var dt *model.DateTime
			if args[1] != "none" {
				dt, err = model.ParseDateTime(args[1])
				if err != nil {
					return writeErr(cmd, err)
				}
			}
			updated, err := s.SetSchedule(cmd.Context(), t.ID, dt)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": updated})
		},
	}

	return cmd
}
