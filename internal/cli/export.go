package cli

import (
	"github.com/spf13/cobra"

	"github.com/therogue/tskr/internal/store"
)

func newExportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Export every task to a JSONL file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, err := loadStore(app)
			if err != nil {
				return err
			}
			defer s.Close()

			tasks, err := s.All(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := store.WriteTasksJSONL(args[0], tasks); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"exported": len(tasks),
				"path":     args[0],
			}})
		},
	}

	return cmd
}
