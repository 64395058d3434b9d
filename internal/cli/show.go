package cli

import (
	"github.com/spf13/cobra"
)

func newShowCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <ref>",
		Short: "Show one task by key, id, or title",
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
			return writeOut(cmd, app, map[string]any{"data": t})
		},
	}

	return cmd
}
