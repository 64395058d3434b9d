package tui

import (
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

var (
	mdRendererMu sync.Mutex
	// Cache renderers by wrap width + style. Creating a renderer with WithAutoStyle
	// can trigger terminal capability/background queries that may block on some
	// terminals. Using a fixed style + caching keeps help rendering fast and
	// predictable.
	mdRenderers = map[string]*glamour.TermRenderer{}
)

func renderMarkdown(md string, width int) string {
	md = strings.TrimSpace(md)
	if md == "" {
		return ""
	}
	if width < 10 {
		width = 10
	}

	mdRendererMu.Lock()
	style := markdownStyle()
	key := style + ":" + strconv.Itoa(width)
	r := mdRenderers[key]
	mdRendererMu.Unlock()

	if r == nil {
		rr, err := glamour.NewTermRenderer(
			// Avoid WithAutoStyle() here: it can block waiting on terminal
			// queries in some setups.
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return md
		}
		mdRendererMu.Lock()
		// Re-check in case a concurrent goroutine filled it.
		if existing := mdRenderers[key]; existing != nil {
			r = existing
		} else {
			mdRenderers[key] = rr
			r = rr
		}
		mdRendererMu.Unlock()
	}

	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}

func markdownStyle() string {
	// Explicit override for debugging / accessibility. Shared with `tskr docs`.
	switch strings.ToLower(strings.TrimSpace(os.Getenv("TSKR_MD_STYLE"))) {
	case "light":
		return "light"
	case "dark":
		return "dark"
	case "notty":
		return "notty"
	}
	// Keep markdown styling aligned with the TUI theme preference. Without this,
	// help text can render with a dark palette even when the TUI is forced to
	// light mode, making it unreadable on light terminals.
	switch strings.ToLower(strings.TrimSpace(os.Getenv("TSKR_TUI_THEME"))) {
	case "light":
		return "light"
	case "dark":
		return "dark"
	}
	if v := strings.TrimSpace(os.Getenv("TSKR_TUI_DARKBG")); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			if b {
				return "dark"
			}
			return "light"
		}
	}
	// Final fallback: align markdown with Lip Gloss's current background
	// detection so help text doesn't end up using a dark palette on light
	// terminals (or vice versa).
	if lipgloss.HasDarkBackground() {
		return "dark"
	}
	return "light"
}
