package sketch

// Scene is the display list. committed is drawn in order, so insertion
// order is z-order; undone is a LIFO of entities removed by Undo.
type Scene struct {
	committed []Drawable
	undone    []Drawable
}

// NewScene returns an empty scene.
func NewScene() *Scene { return &Scene{} }

// Commit appends d and discards everything that could have been redone.
// Previews are never recorded.
func (s *Scene) Commit(d Drawable) {
	if d == nil || d.Kind() == KindPreview {
		return
	}
	s.committed = append(s.committed, d)
	clear(s.undone)
	s.undone = s.undone[:0]
}

// Undo moves the newest committed entity onto the undone stack.
func (s *Scene) Undo() bool {
	n := len(s.committed)
	if n == 0 {
		return false
	}
	d := s.committed[n-1]
	s.committed[n-1] = nil
	s.committed = s.committed[:n-1]
	s.undone = append(s.undone, d)
	return true
}

// Redo moves the top of the undone stack back onto the end of committed.
func (s *Scene) Redo() bool {
	n := len(s.undone)
	if n == 0 {
		return false
	}
	d := s.undone[n-1]
	s.undone[n-1] = nil
	s.undone = s.undone[:n-1]
	s.committed = append(s.committed, d)
	return true
}

// Clear empties both sequences. Nothing cleared can be redone.
func (s *Scene) Clear() {
	clear(s.committed)
	clear(s.undone)
	s.committed = s.committed[:0]
	s.undone = s.undone[:0]
}

// Committed returns a copy of the display list in draw order.
func (s *Scene) Committed() []Drawable {
	out := make([]Drawable, len(s.committed))
	copy(out, s.committed)
	return out
}

// Undone returns a copy of the undone stack, bottom first.
func (s *Scene) Undone() []Drawable {
	out := make([]Drawable, len(s.undone))
	copy(out, s.undone)
	return out
}

func (s *Scene) Len() int      { return len(s.committed) }
func (s *Scene) CanUndo() bool { return len(s.committed) > 0 }
func (s *Scene) CanRedo() bool { return len(s.undone) > 0 }

// Render draws every committed entity in order.
func (s *Scene) Render(dst Surface) {
	for _, d := range s.committed {
		d.Render(dst)
	}
}
