package cli

import (
	"github.com/spf13/cobra"
)

func newDoneCmd(app *App) *cobra.Command {
	var undo bool

	cmd := &cobra.Command{
		Use:   "done <ref>",
		Short: "Complete a task; recurring tasks advance to their next date",
		Args:  cobra.ExactArgs(1),
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
			updated, err := s.SetCompleted(cmd.Context(), t.ID, !undo)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": updated})
		},
	}

	cmd.Flags().BoolVar(&undo, "undo", false, "Reopen instead of complete")

	return cmd
}
