package cli

import (
	"github.com/spf13/cobra"

	"github.com/therogue/tskr/internal/store"
)

func newImportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace all tasks from a JSONL export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, err := loadStore(app)
			if err != nil {
				return err
			}
			defer s.Close()

			tasks, err := store.ReadTasksJSONL(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.Import(cmd.Context(), tasks); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"imported": len(tasks),
			}})
		},
	}

	return cmd
}
