package cli

import (
	"github.com/spf13/cobra"

	"github.com/therogue/tskr/internal/model"
	"github.com/therogue/tskr/internal/recur"
)

func newRecurCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recur",
		Short: "Manage recurrence rules",
	}
	cmd.AddCommand(newRecurSetCmd(app))
	cmd.AddCommand(newRecurRmCmd(app))
	cmd.AddCommand(newRecurNextCmd(app))
	return cmd
}

func newRecurSetCmd(app *App) *cobra.Command {
	var on string

	cmd := &cobra.Command{
		Use:   "set <ref> <rule>",
		Short: "Put a rule on an existing task so completing it advances the date",
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

			var anchor *model.DateTime
			if on != "" {
				anchor, err = model.ParseDateTime(on)
				if err != nil {
					return writeErr(cmd, err)
				}
			}
			updated, err := s.SetRecurrence(cmd.Context(), t.ID, args[1], anchor)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": updated})
		},
	}

	cmd.Flags().StringVar(&on, "on", "", "Anchor date (default: the task's date, else today)")

	return cmd
}

func newRecurRmCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm <ref>",
		Short: "Clear a task's rule so it completes normally",
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
			updated, err := s.RemoveRecurrence(cmd.Context(), t.ID)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": updated})
		},
	}

	return cmd
}

func newRecurNextCmd(app *App) *cobra.Command {
	var (
		after string
		count int
	)

	cmd := &cobra.Command{
		Use:   "next <rule>",
		Short: "Show a rule's upcoming dates",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(app)
			if err != nil {
				return err
			}

			start := model.Today()
			if after != "" {
				dt, err := model.ParseDateTime(after)
				if err != nil {
					return writeErr(cmd, err)
				}
				start = dt.Date
			}
			if count < 1 {
				count = 1
			}

			rule := args[0]
			dates := make([]string, 0, count)
			cursor := start
			for i := 0; i < count; i++ {
				next, err := recur.NextWithin(rule, cursor, cfg.SearchWindowYears)
				if err != nil {
					return writeErr(cmd, err)
				}
				dates = append(dates, next)
				cursor = next
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"rule":  rule,
				"after": start,
				"dates": dates,
			}})
		},
	}

	cmd.Flags().StringVar(&after, "after", "", "Search after this date (default today)")
	cmd.Flags().IntVar(&count, "count", 1, "How many dates to show")

	return cmd
}
