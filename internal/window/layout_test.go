package window

import (
	"image"
	"testing"
)

func TestButtonRects(t *testing.T) {
	rects := buttonRects(2)
	want := []image.Rectangle{image.Rect(4, 8, 60, 34), image.Rect(4, 36, 60, 62)}
	for i := range want {
		if rects[i] != want[i] {
			t.Errorf("rect %d = %v, want %v", i, rects[i], want[i])
		}
	}
	if got := hitTest(rects, image.Pt(10, 40)); got != 1 {
		t.Errorf("hitTest = %d, want 1", got)
	}
	if got := hitTest(rects, image.Pt(10, 35)); got != -1 {
		t.Errorf("hitTest in gap = %d, want -1", got)
	}
}

func TestFitZoom(t *testing.T) {
	tests := []struct {
		name       string
		cw, ch     int
		winW, winH int
		want       float64
	}{
		{"exact", 256, 256, 336, 296, 1},
		{"double", 256, 256, 592, 640, 2},
		{"quarter steps", 100, 100, 250, 300, 1.5},
		{"too small", 256, 256, 100, 100, 1},
		{"empty canvas", 0, 0, 500, 500, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fitZoom(tt.cw, tt.ch, tt.winW, tt.winH); got != tt.want {
				t.Errorf("fitZoom = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestToCanvas(t *testing.T) {
	r := canvasRect(256, 256, 2)
	if r != image.Rect(72, 8, 584, 520) {
		t.Fatalf("canvasRect = %v", r)
	}
	x, y, inside := toCanvas(82, 28, r, 2)
	if x != 5 || y != 10 || !inside {
		t.Errorf("toCanvas = %v, %v, %v", x, y, inside)
	}
	if _, _, inside := toCanvas(10, 10, r, 2); inside {
		t.Errorf("toolbar position reported inside the canvas")
	}
}

func TestWindowSize(t *testing.T) {
	if w, h := windowSize(256, 256, 0); w != 336 || h != 296 {
		t.Errorf("windowSize = %dx%d", w, h)
	}
	// Many buttons make the toolbar taller than the canvas.
	if _, h := windowSize(256, 256, 10); h != 320 {
		t.Errorf("height with 10 buttons = %d, want 320", h)
	}
}
