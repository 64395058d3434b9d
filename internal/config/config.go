// Package config loads the TOML config file that holds the database
// location, day-view policies, and the TUI keymap.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/therogue/tskr/internal/agenda"
)

const (
	DefaultConfigFileName = "config.toml"
	DefaultDBName         = "tasks.db"
)

type Day struct {
	// NoDateTasks decides where undated incomplete tasks show up:
	// "always" (every day view) or "today-only".
	NoDateTasks        string `toml:"no_date_tasks"`
	HourHeight         int    `toml:"hour_height"`
	MinBlockHeight     int    `toml:"min_block_height"`
	DefaultDurationMin int    `toml:"default_duration_minutes"`
}

type Keymap struct {
	Quit          string `toml:"quit"`
	Help          string `toml:"help"`
	Add           string `toml:"add"`
	Complete      string `toml:"complete"`
	Delete        string `toml:"delete"`
	Up            string `toml:"up"`
	Down          string `toml:"down"`
	Today         string `toml:"today"`
	PrevDay       string `toml:"prev_day"`
	NextDay       string `toml:"next_day"`
	Grid          string `toml:"grid"`
	ViewDay       string `toml:"view_day"`
	ViewAll       string `toml:"view_all"`
	ViewCompleted string `toml:"view_completed"`
	Select        string `toml:"select"`
	ToggleSelect  string `toml:"toggle_select"`
	RangeSelect   string `toml:"range_select"`
	ClearSelect   string `toml:"clear_selection"`
}

type Config struct {
	DBPath      string `toml:"db_path"`
	DefaultView string `toml:"default_view"`
	// SearchWindowYears bounds next-occurrence searches. Zero means
	// the built-in two-year window.
	SearchWindowYears int    `toml:"search_window_years"`
	Day               Day    `toml:"day"`
	Keys              Keymap `toml:"keys"`
}

// Dir returns the tskr home directory.
// Test/advanced override (keeps unit tests from touching ~/.tskr).
func Dir() (string, error) {
	if v := strings.TrimSpace(os.Getenv("TSKR_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".tskr"), nil
}

func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, DefaultConfigFileName), nil
}

// Load resolves the default config path and loads it, writing the
// default file on first run.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return defaultConfig(), err
	}
	return LoadOrCreate(path)
}

func LoadOrCreate(path string) (Config, error) {
	cfg := defaultConfig()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		cfg.normalize(filepath.Dir(path))
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	cfg.normalize(filepath.Dir(path))
	return cfg, nil
}

func write(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// normalize fills blanks and quietly repairs out-of-range values, so a
// hand-edited file degrades to defaults instead of failing.
func (c *Config) normalize(dir string) {
	if c.DBPath == "" {
		c.DBPath = filepath.Join(dir, DefaultDBName)
	}
	switch c.DefaultView {
	case "day", "all", "completed":
	default:
		c.DefaultView = "day"
	}
	if c.SearchWindowYears < 0 {
		c.SearchWindowYears = 0
	}
	if c.Day.NoDateTasks != string(agenda.NoDateTodayOnly) {
		c.Day.NoDateTasks = string(agenda.NoDateAlways)
	}
	if c.Day.HourHeight <= 0 {
		c.Day.HourHeight = agenda.DefaultHourHeight
	}
	if c.Day.MinBlockHeight <= 0 {
		c.Day.MinBlockHeight = agenda.DefaultMinBlockHeight
	}
	if c.Day.DefaultDurationMin <= 0 {
		c.Day.DefaultDurationMin = agenda.DefaultDurationMinutes
	}
	def := defaultConfig().Keys
	if c.Keys == (Keymap{}) {
		c.Keys = def
	}
}

// NoDatePolicy returns the day-view policy as the agenda type.
func (c Config) NoDatePolicy() agenda.NoDatePolicy {
	if c.Day.NoDateTasks == string(agenda.NoDateTodayOnly) {
		return agenda.NoDateTodayOnly
	}
	return agenda.NoDateAlways
}

// GridConfig returns the day-grid geometry as the agenda type.
func (c Config) GridConfig() agenda.GridConfig {
	return agenda.GridConfig{
		HourHeight:      c.Day.HourHeight,
		MinBlockHeight:  c.Day.MinBlockHeight,
		DefaultDuration: c.Day.DefaultDurationMin,
	}
}

func defaultConfig() Config {
	return Config{
		DefaultView: "day",
		Day: Day{
			NoDateTasks:        string(agenda.NoDateAlways),
			HourHeight:         agenda.DefaultHourHeight,
			MinBlockHeight:     agenda.DefaultMinBlockHeight,
			DefaultDurationMin: agenda.DefaultDurationMinutes,
		},
		Keys: Keymap{
			Quit:          "q",
			Help:          "?",
			Add:           "a",
			Complete:      "x",
			Delete:        "d",
			Up:            "k",
			Down:          "j",
			Today:         "t",
			PrevDay:       "[",
			NextDay:       "]",
			Grid:          "g",
			ViewDay:       "1",
			ViewAll:       "2",
			ViewCompleted: "3",
			Select:        " ",
			ToggleSelect:  "m",
			RangeSelect:   "v",
			ClearSelect:   "esc",
		},
	}
}
