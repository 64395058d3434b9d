package cli

import (
	"github.com/spf13/cobra"
)

func newRmCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm <ref>",
		Short: "Delete a task; deleting a template stops future occurrences",
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
			if err := s.Delete(cmd.Context(), t.ID); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"deleted": t.TaskKey,
				"id":      t.ID,
			}})
		},
	}

	return cmd
}
