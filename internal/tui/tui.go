package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/therogue/tskr/internal/config"
	"github.com/therogue/tskr/internal/store"
)

func Run(s *store.Store, cfg config.Config) error {
	applyColorProfilePreference()
	applyThemePreference()
	applyGlyphPreference()

	m := newAppModel(s, cfg)
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}
