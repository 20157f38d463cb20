package window

import (
	"math/rand/v2"
	"testing"
	"time"

	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"

	"github.com/example/sketchpad/internal/sketch"
)

func testModel(t *testing.T) *model {
	t.Helper()
	return newModel(256, 256, nil, []sketch.Option{sketch.WithRand(rand.New(rand.NewPCG(1, 2)))})
}

func click(m *model, x, y float32) {
	m.handleMouse(mouse.Event{X: x, Y: y, Button: mouse.ButtonLeft, Direction: mouse.DirPress})
	m.handleMouse(mouse.Event{X: x, Y: y, Button: mouse.ButtonLeft, Direction: mouse.DirRelease})
}

func clickButton(m *model, i int) {
	r := buttonRects(len(m.buttons))[i]
	click(m, float32(r.Min.X+5), float32(r.Min.Y+5))
}

func press(m *model, r rune, code key.Code, mods key.Modifiers) bool {
	return m.handleKey(key.Event{Rune: r, Code: code, Modifiers: mods, Direction: key.DirPress})
}

func labels(m *model) []string {
	out := make([]string, len(m.buttons))
	for i, b := range m.buttons {
		out[i] = b.Label
	}
	return out
}

func TestModelToolbar(t *testing.T) {
	m := testModel(t)
	want := []string{"clear", "undo", "redo", "thin", "thick", "🍕", "🐱", "🌵", "custom", "export"}
	got := labels(m)
	if len(got) != len(want) {
		t.Fatalf("buttons = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("buttons = %v, want %v", got, want)
		}
	}
	clickButton(m, 6)
	if tool := m.ctrl.Tool(); tool.Kind != sketch.ToolSticker || tool.Glyph != "🐱" {
		t.Fatalf("tool after sticker click = %+v", tool)
	}
	if !m.buttons[6].Selected || m.buttons[3].Selected {
		t.Errorf("selection not mirrored: %+v", m.buttons)
	}
}

func TestModelDrawStroke(t *testing.T) {
	m := testModel(t)
	cr := m.canvasRect()
	x0, y0 := float32(cr.Min.X+10), float32(cr.Min.Y+10)

	m.handleMouse(mouse.Event{X: x0, Y: y0, Button: mouse.ButtonLeft, Direction: mouse.DirPress})
	if m.ctrl.State() != sketch.StateDrawing {
		t.Fatalf("state = %v", m.ctrl.State())
	}
	// Dragging outside the canvas keeps extending the stroke.
	m.handleMouse(mouse.Event{X: 2, Y: 2, Direction: mouse.DirNone})
	m.handleMouse(mouse.Event{X: 2, Y: 2, Button: mouse.ButtonLeft, Direction: mouse.DirRelease})

	if m.ctrl.Scene().Len() != 1 {
		t.Fatalf("scene len = %d", m.ctrl.Scene().Len())
	}
	st := m.ctrl.Scene().Committed()[0].(*sketch.Stroke)
	if n := len(st.Points()); n != 2 {
		t.Errorf("stroke points = %d, want 2", n)
	}

	m.handleMouse(mouse.Event{X: x0, Y: y0, Direction: mouse.DirNone})
	if m.readout != "stroke @ 10,10" {
		t.Errorf("readout = %q", m.readout)
	}

	snap := m.snapshot()
	if m.dirty {
		t.Errorf("snapshot left the model dirty")
	}
	var painted bool
	for i := 3; i < len(snap.canvas.Pix); i += 4 {
		if snap.canvas.Pix[i] != 0 {
			painted = true
			break
		}
	}
	if !painted {
		t.Errorf("snapshot canvas is empty")
	}
	if &snap.canvas.Pix[0] == &m.canvas.RGBA().Pix[0] {
		t.Errorf("snapshot shares the live canvas")
	}
}

func TestModelShortcuts(t *testing.T) {
	m := testModel(t)
	cr := m.canvasRect()
	click(m, float32(cr.Min.X+5), float32(cr.Min.Y+5))
	if m.ctrl.Scene().Len() != 1 {
		t.Fatalf("click did not commit a stroke")
	}

	tests := []struct {
		name    string
		r       rune
		code    key.Code
		mods    key.Modifiers
		wantLen int
	}{
		{"undo", 'z', key.CodeZ, key.ModControl, 0},
		{"redo", 'y', key.CodeY, key.ModControl, 1},
		{"undo again", 'z', key.CodeZ, key.ModControl, 0},
		{"shift redo", 'Z', key.CodeZ, key.ModControl | key.ModShift, 1},
		{"clear", 0, key.CodeDeleteForward, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !press(m, tt.r, tt.code, tt.mods) {
				t.Fatalf("shortcut not handled")
			}
			if got := m.ctrl.Scene().Len(); got != tt.wantLen {
				t.Errorf("scene len = %d, want %d", got, tt.wantLen)
			}
		})
	}

	if press(m, 'k', key.CodeK, 0) {
		t.Errorf("unbound key reported as handled")
	}
	press(m, 'q', key.CodeQ, 0)
	if !m.quit {
		t.Errorf("q did not quit")
	}
}

func TestModelExportActions(t *testing.T) {
	m := testModel(t)
	var calls []bool
	m.onExport = func(copyOnly bool) { calls = append(calls, copyOnly) }

	press(m, 'e', key.CodeE, key.ModControl)
	press(m, 'c', key.CodeC, key.ModControl)
	clickButton(m, len(m.buttons)-1)

	want := []bool{false, true, false}
	if len(calls) != len(want) {
		t.Fatalf("export calls = %v", calls)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Errorf("export calls = %v, want %v", calls, want)
		}
	}
}

func TestModelCustomStickerPrompt(t *testing.T) {
	m := testModel(t)
	clickButton(m, 8)
	if !m.prompting || m.prompt != sketch.DefaultCustomSticker {
		t.Fatalf("prompt = %v %q", m.prompting, m.prompt)
	}

	// Clicks on the canvas are ignored while the prompt is open.
	cr := m.canvasRect()
	click(m, float32(cr.Min.X+5), float32(cr.Min.Y+5))
	if m.ctrl.Scene().Len() != 0 {
		t.Fatalf("canvas click committed while prompting")
	}

	press(m, 0, key.CodeDeleteBackspace, 0)
	if m.prompt != "" {
		t.Fatalf("backspace left %q", m.prompt)
	}
	press(m, 0, key.CodeDeleteBackspace, 0)
	press(m, 'o', key.CodeO, 0)
	press(m, 'k', key.CodeK, 0)
	press(m, 0, key.CodeReturnEnter, 0)

	if m.prompting {
		t.Fatalf("enter did not close the prompt")
	}
	if got := labels(m); got[8] != "ok" || got[9] != "custom" {
		t.Fatalf("buttons = %v", got)
	}
	if m.ctrl.Tool().Kind != sketch.ToolStroke {
		t.Errorf("custom sticker was selected")
	}

	clickButton(m, 9)
	press(m, 'x', key.CodeX, 0)
	press(m, 0, key.CodeEscape, 0)
	if m.prompting || len(m.buttons) != 11 {
		t.Errorf("escape added a sticker: %v", labels(m))
	}
}

func TestModelMessageExpires(t *testing.T) {
	m := testModel(t)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	m.flash("saved canvas_export.png")
	if got := m.snapshot().message; got != "saved canvas_export.png" {
		t.Errorf("message = %q", got)
	}
	now = now.Add(3 * time.Second)
	if got := m.snapshot().message; got != "" {
		t.Errorf("expired message still shown: %q", got)
	}
}

func TestModelResize(t *testing.T) {
	m := testModel(t)
	m.resize(toolbarWidth+2*margin+512, bottomHeight+2*margin+512)
	if m.zoom != 2 {
		t.Fatalf("zoom = %v", m.zoom)
	}
	cr := m.canvasRect()
	click(m, float32(cr.Min.X+20), float32(cr.Min.Y+40))
	st := m.ctrl.Scene().Committed()[0].(*sketch.Stroke)
	if p := st.Points()[0]; p != sketch.Pt(10, 20) {
		t.Errorf("stroke start = %v, want (10,20)", p)
	}
}

func TestOfferFrameReplacesPending(t *testing.T) {
	ch := make(chan paintState, 1)
	offerFrame(ch, paintState{readout: "first"})
	offerFrame(ch, paintState{readout: "second"})
	if got := (<-ch).readout; got != "second" {
		t.Fatalf("queued frame = %q, want second", got)
	}

	// A painter draining concurrently must never stall the sender.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 1000; i++ {
			offerFrame(ch, paintState{width: i})
		}
	}()
	go func() {
		for {
			select {
			case <-done:
				return
			case <-ch:
			}
		}
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatalf("offerFrame blocked")
	}
}
