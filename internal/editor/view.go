package editor

import "fmt"

// Transient presentation state. None of this is part of the condition
// value: it is never committed and never reaches the change callback.

func pathKey(path []int) string { return fmt.Sprint(path) }

// ToggleCollapse flips the collapsed flag for the group at path.
func (s *Session) ToggleCollapse(path []int) {
	key := pathKey(path)
	s.collapsed[key] = !s.collapsed[key]
}

// IsCollapsed reports whether the group at path is collapsed.
func (s *Session) IsCollapsed(path []int) bool {
	return s.collapsed[pathKey(path)]
}

// StartDrag records the drag source: child From of the group at path.
func (s *Session) StartDrag(path []int, from int) {
	s.dragging = true
	s.dragPath = append([]int(nil), path...)
	s.dragFrom = from
}

// Dragging reports whether a drag is in progress.
func (s *Session) Dragging() bool { return s.dragging }

// Drop completes a drag as a reorder within the source children list.
// Drops outside the source list are discarded; cross-group dragging is
// not supported.
func (s *Session) Drop(path []int, to int) error {
	if !s.dragging {
		return nil
	}
	source := s.dragPath
	from := s.dragFrom
	s.CancelDrag()

	if pathKey(source) != pathKey(path) {
		return nil
	}
	return s.Apply(Reorder{Path: source, From: from, To: to})
}

// CancelDrag discards the drag state without touching the tree.
func (s *Session) CancelDrag() {
	s.dragging = false
	s.dragPath = nil
	s.dragFrom = 0
}
