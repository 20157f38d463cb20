package sketch

import (
	"testing"
)

func ids(ds []Drawable) []string {
	out := make([]string, len(ds))
	for i, d := range ds {
		switch v := d.(type) {
		case *Stroke:
			out[i] = v.ID
		case *Sticker:
			out[i] = v.ID
		}
	}
	return out
}

func sameIDs(t *testing.T, what string, got []Drawable, want ...Drawable) {
	t.Helper()
	g, w := ids(got), ids(want)
	if len(g) != len(w) {
		t.Fatalf("%s: got %d entities, want %d", what, len(g), len(w))
	}
	for i := range g {
		if g[i] != w[i] {
			t.Fatalf("%s[%d]: got %s, want %s", what, i, g[i], w[i])
		}
	}
}

func TestSceneUndoRedoScenario(t *testing.T) {
	s := NewScene()
	a := NewStroke(Pt(0, 0), 3, "#000000")
	a.Extend(Pt(10, 10))
	b := NewSticker(Pt(50, 50), "🍕")
	s.Commit(a)
	s.Commit(b)

	s.Undo()
	sameIDs(t, "committed", s.Committed(), a)
	sameIDs(t, "undone", s.Undone(), b)

	s.Undo()
	sameIDs(t, "committed", s.Committed())
	sameIDs(t, "undone", s.Undone(), b, a)

	s.Redo()
	sameIDs(t, "committed", s.Committed(), a)

	c := NewSticker(Pt(5, 5), "🐱")
	s.Commit(c)
	sameIDs(t, "committed", s.Committed(), a, c)
	sameIDs(t, "undone", s.Undone())
	if s.Redo() {
		t.Fatalf("redo after commit should be a no-op")
	}
}

func TestUndoRedoInverse(t *testing.T) {
	tests := []struct {
		name  string
		count int
	}{
		{"single", 1},
		{"pair", 2},
		{"many", 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScene()
			for i := 0; i < tt.count; i++ {
				if i%2 == 0 {
					s.Commit(NewSticker(Pt(float64(i), 0), "🌵"))
				} else {
					s.Commit(NewStroke(Pt(0, float64(i)), 4, "#ABCDEF"))
				}
			}
			before := s.Committed()
			if !s.Undo() {
				t.Fatalf("undo reported no change")
			}
			if !s.Redo() {
				t.Fatalf("redo reported no change")
			}
			sameIDs(t, "committed", s.Committed(), before...)
		})
	}
}

func TestUndoRedoOnEmptyScene(t *testing.T) {
	s := NewScene()
	if s.Undo() {
		t.Errorf("undo on empty scene changed state")
	}
	if s.Redo() {
		t.Errorf("redo on empty scene changed state")
	}
	if s.Len() != 0 || s.CanUndo() || s.CanRedo() {
		t.Errorf("empty scene reports content")
	}
}

func TestClearIsIrreversible(t *testing.T) {
	s := NewScene()
	s.Commit(NewSticker(Pt(1, 1), "🍕"))
	s.Commit(NewSticker(Pt(2, 2), "🐱"))
	s.Commit(NewSticker(Pt(3, 3), "🌵"))
	s.Undo()
	s.Clear()
	for i := 0; i < 5; i++ {
		s.Redo()
	}
	if n := len(s.Committed()); n != 0 {
		t.Fatalf("committed has %d entities after clear", n)
	}
	if n := len(s.Undone()); n != 0 {
		t.Fatalf("undone has %d entities after clear", n)
	}
}

func TestCommitInvalidatesRedo(t *testing.T) {
	s := NewScene()
	s.Commit(NewSticker(Pt(1, 1), "🍕"))
	s.Commit(NewSticker(Pt(2, 2), "🐱"))
	s.Undo()
	s.Undo()
	if !s.CanRedo() {
		t.Fatalf("expected undone entities")
	}
	s.Commit(NewStroke(Pt(0, 0), 3, "#000000"))
	if s.CanRedo() {
		t.Fatalf("commit left %d undone entities", len(s.Undone()))
	}
}

func TestCommitIgnoresPreviews(t *testing.T) {
	s := NewScene()
	s.Commit(&ToolPreview{At: Pt(1, 1), Thickness: 3, Color: "#FF0000"})
	s.Commit(nil)
	if s.Len() != 0 {
		t.Fatalf("preview was committed")
	}
}

func TestCommittedIsACopy(t *testing.T) {
	s := NewScene()
	s.Commit(NewSticker(Pt(1, 1), "🍕"))
	got := s.Committed()
	got[0] = nil
	if s.Committed()[0] == nil {
		t.Fatalf("Committed exposed internal storage")
	}
}
