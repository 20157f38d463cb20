package window

import (
	"image"
	"math"
)

const (
	toolbarWidth = 64
	buttonHeight = 28
	bottomHeight = 24
	margin       = 8
)

// buttonRects stacks n toolbar buttons from the top of the window.
func buttonRects(n int) []image.Rectangle {
	rects := make([]image.Rectangle, n)
	y := margin
	for i := range rects {
		rects[i] = image.Rect(4, y, toolbarWidth-4, y+buttonHeight-2)
		y += buttonHeight
	}
	return rects
}

// hitTest returns the index of the rectangle containing p or -1.
func hitTest(rects []image.Rectangle, p image.Point) int {
	for i, r := range rects {
		if p.In(r) {
			return i
		}
	}
	return -1
}

// fitZoom picks the largest zoom at which a cw x ch canvas fits the window
// area right of the toolbar and above the status bar. It never shrinks
// below 1 so canvas pixels stay addressable.
func fitZoom(cw, ch, winW, winH int) float64 {
	availW := winW - toolbarWidth - 2*margin
	availH := winH - bottomHeight - 2*margin
	if cw <= 0 || ch <= 0 {
		return 1
	}
	z := math.Min(float64(availW)/float64(cw), float64(availH)/float64(ch))
	if z < 1 {
		return 1
	}
	return math.Floor(z*4) / 4
}

// canvasRect is where the canvas is shown at zoom. The origin is anchored
// next to the toolbar so the drawing does not jump while resizing.
func canvasRect(cw, ch int, zoom float64) image.Rectangle {
	x0 := toolbarWidth + margin
	y0 := margin
	return image.Rect(x0, y0, x0+int(float64(cw)*zoom), y0+int(float64(ch)*zoom))
}

// toCanvas maps a window position to canvas coordinates.
func toCanvas(x, y float32, r image.Rectangle, zoom float64) (float64, float64, bool) {
	cx := (float64(x) - float64(r.Min.X)) / zoom
	cy := (float64(y) - float64(r.Min.Y)) / zoom
	inside := float64(x) >= float64(r.Min.X) && float64(x) < float64(r.Max.X) &&
		float64(y) >= float64(r.Min.Y) && float64(y) < float64(r.Max.Y)
	return cx, cy, inside
}

// windowSize is the initial window size for a canvas shown at zoom 1.
func windowSize(cw, ch, buttons int) (int, int) {
	w := toolbarWidth + cw + 2*margin
	h := ch + bottomHeight + 2*margin
	if minH := buttons*buttonHeight + 2*margin + bottomHeight; h < minH {
		h = minH
	}
	return w, h
}
