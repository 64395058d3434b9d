package cli

import (
	"github.com/spf13/cobra"

	"github.com/therogue/tskr/internal/store"
)

func newDoctorCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check the task database for inconsistencies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, err := loadStore(app)
			if err != nil {
				return err
			}
			defer s.Close()

			report, err := s.Doctor(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := writeOut(cmd, app, map[string]any{"data": report}); err != nil {
				return err
			}
			if report.HasErrors() {
				return store.ErrDoctorIssuesFound
			}
			return nil
		},
	}

	return cmd
}
