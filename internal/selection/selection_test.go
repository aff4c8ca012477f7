package selection

import (
	"testing"

	"mathcanvas/internal/domain"
)

func TestSelectKeepsInsertionOrder(t *testing.T) {
	s := New()
	s.Select(3)
	s.Select(1)
	s.Select(3)
	s.Select(2)
	got := s.IDs()
	if len(got) != 3 || got[0] != 3 || got[1] != 1 || got[2] != 2 {
		t.Fatalf("IDs() = %v, want [3 1 2]", got)
	}
}

func TestToggleAndDeselect(t *testing.T) {
	s := New()
	if !s.Toggle(5) || !s.Has(5) {
		t.Fatalf("toggle should select")
	}
	if s.Toggle(5) || s.Has(5) {
		t.Fatalf("second toggle should deselect")
	}
	s.Deselect(99) // unknown id is fine
	if s.Len() != 0 {
		t.Fatalf("expected empty selection, got %d", s.Len())
	}
}

func TestRetainDropsStaleIDs(t *testing.T) {
	s := New()
	s.Replace([]domain.ID{1, 2, 3, 4})
	s.Retain(func(id domain.ID) bool { return id%2 == 0 })
	got := s.IDs()
	if len(got) != 2 || got[0] != 2 || got[1] != 4 || s.Has(1) {
		t.Fatalf("Retain left %v", got)
	}
}

func TestIDsReturnsCopy(t *testing.T) {
	s := New()
	s.Select(1)
	ids := s.IDs()
	ids[0] = 42
	if !s.Has(1) || s.IDs()[0] != 1 {
		t.Fatalf("IDs() leaked internal slice")
	}
}
