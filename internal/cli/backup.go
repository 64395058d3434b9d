package cli

import (
	"github.com/spf13/cobra"
)

func newBackupCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup <file>",
		Short: "Write a consistent snapshot of the task database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, err := loadStore(app)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.Backup(cmd.Context(), args[0]); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"backup": args[0],
			}})
		},
	}

	return cmd
}
