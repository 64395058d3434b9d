// Package cli wires the scriptable commands. Every command prints a
// JSON envelope with a "data" key, so agents and shell pipelines can
// consume output without scraping.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/therogue/tskr/internal/config"
	"github.com/therogue/tskr/internal/format"
	"github.com/therogue/tskr/internal/store"
	"github.com/therogue/tskr/internal/tui"
)

type App struct {
	ConfigPath string
	DBPath     string
	PrettyJSON bool
	Format     string
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "tskr",
		Short:        "Personal task manager with recurring schedules (CLI + TUI)",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  tskr

  # Scriptable commands
  tskr add "Write report" --on 2025-02-03T14:00
  tskr add "Standup" -c D --every weekdays --on 2025-02-03T09:30
  tskr day --grid
  tskr done T-01
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", envOr("TSKR_CONFIG", ""), "Path to config file (default ~/.tskr/config.toml)")
	cmd.PersistentFlags().StringVar(&app.DBPath, "db", envOr("TSKR_DB", ""), "Path to the task database (overrides config)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("TSKR_FORMAT", "json"), "Output format (json)")

	cmd.AddCommand(newAddCmd(app))
	cmd.AddCommand(newShowCmd(app))
	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newDayCmd(app))
	cmd.AddCommand(newDoneCmd(app))
	cmd.AddCommand(newRmCmd(app))
	cmd.AddCommand(newScheduleCmd(app))
	cmd.AddCommand(newRecurCmd(app))
	cmd.AddCommand(newBackupCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newImportCmd(app))
	cmd.AddCommand(newDoctorCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

func runTUI(app *App) error {
	s, cfg, err := loadStore(app)
	if err != nil {
		return err
	}
	defer s.Close()
	return tui.Run(s, cfg)
}

func loadConfig(app *App) (config.Config, error) {
	if app.ConfigPath != "" {
		return config.LoadOrCreate(app.ConfigPath)
	}
	return config.Load()
}

func loadStore(app *App) (*store.Store, config.Config, error) {
	cfg, err := loadConfig(app)
	if err != nil {
		return nil, cfg, err
	}
	dbPath := app.DBPath
	if dbPath == "" {
		dbPath = cfg.DBPath
	}
	s, err := store.Open(dbPath, store.Options{
		WindowYears: cfg.SearchWindowYears,
		NoDate:      cfg.NoDatePolicy(),
	})
	if err != nil {
		return nil, cfg, err
	}
	return s, cfg, nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
