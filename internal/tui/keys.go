package tui

import "strings"

// keyEq compares a configured binding against the key bubbletea
// reported. Bindings are free-form config strings, so "space"/" " and
// case differences are normalized here rather than at load time.
func keyEq(binding, key string) bool {
	b := normalizeKey(binding)
	k := normalizeKey(key)
	return b != "" && b == k
}

func normalizeKey(s string) string {
	v := strings.ToLower(s)
	if t := strings.TrimSpace(v); t != "" {
		v = t
	}
	if v == "space" {
		return " "
	}
	return v
}

// keyLabel renders a binding for help text.
func keyLabel(binding string) string {
	if normalizeKey(binding) == " " {
		return "space"
	}
	return normalizeKey(binding)
}
