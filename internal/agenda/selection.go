package agenda

import (
	"sort"

	"github.com/therogue/tskr/internal/model"
)

// Modifier is the click variant for selection handling.
type Modifier int

const (
	ModNone   Modifier = iota
	ModToggle          // ctrl
	ModRange           // shift; wins when both are held
)

// Selection tracks multi-select over the current visible ordering.
// The ordering is captured by the caller immediately before each
// click, since indices refer to that snapshot and nothing else. The
// anchor is the index of the last plain or toggle click; a range click
// never moves it.
type Selection struct {
	ids    map[string]bool
	anchor int
}

func NewSelection() *Selection {
	return &Selection{ids: map[string]bool{}, anchor: -1}
}

// Click applies a click at visible index i of order. Out-of-range
// indices clamp, so clicks on a list that shrank since render stay
// safe.
func (s *Selection) Click(order []model.Task, i int, mod Modifier) {
	if len(order) == 0 {
		return
	}
	i = clamp(i, len(order))
	id := order[i].ID

	switch mod {
	case ModToggle:
		if s.ids[id] {
			delete(s.ids, id)
		} else {
			s.ids[id] = true
		}
		s.anchor = i
	case ModRange:
		from := s.anchor
		if from < 0 {
			from = i
		}
		from = clamp(from, len(order))
		lo, hi := from, i
		if lo > hi {
			lo, hi = hi, lo
		}
		s.ids = map[string]bool{}
		for _, t := range order[lo : hi+1] {
			s.ids[t.ID] = true
		}
	default:
		if len(s.ids) == 1 && s.ids[id] {
			s.Clear()
			return
		}
		s.ids = map[string]bool{id: true}
		s.anchor = i
	}
}

// Clear empties the selection and forgets the anchor. Callers must
// invoke it whenever the view mode, date, or task collection changes.
func (s *Selection) Clear() {
	s.ids = map[string]bool{}
	s.anchor = -1
}

func (s *Selection) Has(id string) bool {
	return s.ids[id]
}

func (s *Selection) Len() int {
	return len(s.ids)
}

// IDs returns the selected ids, sorted for determinism.
func (s *Selection) IDs() []string {
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Anchor returns the last anchored index, -1 when none.
func (s *Selection) Anchor() int {
	return s.anchor
}

func clamp(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
