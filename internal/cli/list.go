package cli

import (
	"github.com/spf13/cobra"

	"github.com/therogue/tskr/internal/agenda"
	"github.com/therogue/tskr/internal/model"
	"github.com/therogue/tskr/internal/taskkey"
)

func newListCmd(app *App) *cobra.Command {
	var (
		completed bool
		category  string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks in grouped sections",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, err := loadStore(app)
			if err != nil {
				return err
			}
			defer s.Close()

			all, err := s.All(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			if category != "" {
				cat, err := taskkey.NormalizeCategory(category)
				if err != nil {
					return writeErr(cmd, err)
				}
				var kept []model.Task
				for _, t := range all {
					if t.Category == cat {
						kept = append(kept, t)
					}
				}
				all = kept
			}

			view := agenda.ViewAll
			if completed {
				view = agenda.ViewCompleted
			}
			sections := agenda.ForView(all, view)
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"sections": sectionsPayload(sections),
			}})
		},
	}

	cmd.Flags().BoolVar(&completed, "completed", false, "Show completed tasks instead of open ones")
	cmd.Flags().StringVarP(&category, "category", "c", "", "Only this category")

	return cmd
}
