package editor

import (
	"testing"

	"github.com/aretw0/espalier/pkg/dsl"
)

func TestToggleCollapse(t *testing.T) {
	s, commits := newTestSession(dsl.And(dsl.Or(dsl.Literal(true))))

	if s.IsCollapsed([]int{0}) {
		t.Fatal("Groups start expanded")
	}
	s.ToggleCollapse([]int{0})
	if !s.IsCollapsed([]int{0}) {
		t.Fatal("Expected the group collapsed")
	}
	s.ToggleCollapse([]int{0})
	if s.IsCollapsed([]int{0}) {
		t.Fatal("Expected the group expanded again")
	}

	// Collapse state is presentation only, never a commit.
	if len(*commits) != 0 {
		t.Errorf("Expected no commits, got %d", len(*commits))
	}
}

func TestDragAndDrop(t *testing.T) {
	s, commits := newTestSession(dsl.And(dsl.Script("a"), dsl.Script("b"), dsl.Script("c")))

	s.StartDrag(nil, 0)
	if !s.Dragging() {
		t.Fatal("Expected a drag in progress")
	}
	if err := s.Drop(nil, 2); err != nil {
		t.Fatalf("Drop failed: %v", err)
	}
	if s.Dragging() {
		t.Error("Drag state must be discarded after drop")
	}

	got := s.Root().Children
	if got[0].ScriptID != "b" || got[1].ScriptID != "c" || got[2].ScriptID != "a" {
		t.Errorf("Expected order [b c a], got %+v", got)
	}
	if len(*commits) != 1 {
		t.Errorf("Expected exactly one commit, got %d", len(*commits))
	}
}

func TestDrop_OutsideSourceListDiscarded(t *testing.T) {
	inner := dsl.Or(dsl.Script("x"), dsl.Script("y"))
	s, commits := newTestSession(dsl.And(inner, dsl.Script("a")))

	// Drag starts in the nested group, drop lands on the root list.
	s.StartDrag([]int{0}, 0)
	if err := s.Drop(nil, 1); err != nil {
		t.Fatalf("Drop failed: %v", err)
	}
	if s.Dragging() {
		t.Error("Drag state must be discarded")
	}
	if len(*commits) != 0 {
		t.Errorf("Cross-group drops must not commit, got %d commits", len(*commits))
	}
}

func TestCancelDrag(t *testing.T) {
	s, commits := newTestSession(dsl.And(dsl.Script("a"), dsl.Script("b")))

	s.StartDrag(nil, 1)
	s.CancelDrag()
	if s.Dragging() {
		t.Error("Expected drag cancelled")
	}
	if err := s.Drop(nil, 0); err != nil {
		t.Fatalf("Drop after cancel failed: %v", err)
	}
	if len(*commits) != 0 {
		t.Errorf("Expected no commits, got %d", len(*commits))
	}
}
