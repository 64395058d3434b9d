package taskkey

import "fmt"

// Sequences hands out the next number for a scope. Counters only ever
// move forward; deleting a task never returns its number.
type Sequences interface {
	Next(scope string) (int, error)
}

// Allocator assigns task keys from a persisted sequence source, so
// allocation order depends only on stored state, not on call count.
type Allocator struct {
	seq Sequences
}

func NewAllocator(seq Sequences) *Allocator {
	return &Allocator{seq: seq}
}

// Allocate returns the next key for a category. date is the task's
// calendar date (YYYY-MM-DD, empty for unscheduled) and only affects
// date-scoped categories.
func (a *Allocator) Allocate(category, date string, template bool) (Key, error) {
	cat, err := NormalizeCategory(category)
	if err != nil {
		return Key{}, err
	}
	n, err := a.seq.Next(Scope(cat, date, template))
	if err != nil {
		return Key{}, fmt.Errorf("allocate %s: %w", cat, err)
	}
	return Key{Category: cat, Number: n, Template: template}, nil
}

// MemSequences is an in-memory Sequences for tests and dry runs.
type MemSequences map[string]int

func (m MemSequences) Next(scope string) (int, error) {
	n := m[scope] + 1
	m[scope] = n
	return n, nil
}
