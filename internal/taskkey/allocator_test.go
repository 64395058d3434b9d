package taskkey

import "testing"

func TestAllocateDateScoped(t *testing.T) {
	a := NewAllocator(MemSequences{})

	k1, err := a.Allocate("D", "2024-01-01", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	k2, err := a.Allocate("D", "2024-01-01", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if k1.String() != "D-01" || k2.String() != "D-02" {
		t.Fatalf("same date: expected D-01, D-02; got %s, %s", k1, k2)
	}

	// A new date restarts at 1.
	k3, err := a.Allocate("D", "2024-01-02", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if k3.String() != "D-01" {
		t.Fatalf("new date: expected D-01, got %s", k3)
	}
}

func TestAllocateSequential(t *testing.T) {
	a := NewAllocator(MemSequences{})

	// T numbering ignores dates entirely.
	for i, date := range []string{"2024-01-01", "2024-02-01", ""} {
		k, err := a.Allocate("T", date, false)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if k.Number != i+1 {
			t.Fatalf("allocation %d: expected number %d, got %d", i, i+1, k.Number)
		}
	}

	// Custom categories behave the same way.
	k, err := a.Allocate("proj", "", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if k.String() != "PROJ-01" {
		t.Fatalf("expected PROJ-01, got %s", k)
	}
}

func TestAllocateTemplateSeparate(t *testing.T) {
	a := NewAllocator(MemSequences{})

	inst, err := a.Allocate("D", "2025-01-20", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tpl, err := a.Allocate("D", "2025-01-20", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	inst2, err := a.Allocate("D", "2025-01-20", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inst.String() != "D-01" || tpl.String() != "R-D-01" || inst2.String() != "D-02" {
		t.Fatalf("expected D-01, R-D-01, D-02; got %s, %s, %s", inst, tpl, inst2)
	}
}

func TestAllocateNeverReuses(t *testing.T) {
	seq := MemSequences{}
	a := NewAllocator(seq)

	for i := 0; i < 3; i++ {
		if _, err := a.Allocate("T", "", false); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	// Deleting tasks does not touch the counter; the next allocation
	// still moves forward.
	k, err := a.Allocate("T", "", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if k.String() != "T-04" {
		t.Fatalf("expected T-04, got %s", k)
	}
}

func TestAllocateRejectsBadCategory(t *testing.T) {
	a := NewAllocator(MemSequences{})
	if _, err := a.Allocate("", "", false); err == nil {
		t.Fatalf("expected error for empty category")
	}
	if _, err := a.Allocate("T2", "", false); err == nil {
		t.Fatalf("expected error for non-letter category")
	}
}
