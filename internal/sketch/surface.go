package sketch

import (
	"errors"
	"image"
)

// ErrNoSurface is returned when a redraw or export has nothing to draw on.
// The operation is abandoned and no state changes.
var ErrNoSurface = errors.New("sketch: no drawing surface")

// Surface is the immediate-mode drawing target the entities render onto.
// It mirrors a 2D canvas context: style and transform live in a state that
// Save pushes and Restore pops, and paths are built with BeginPath, MoveTo,
// LineTo and Arc before being stroked or filled.
//
// Colors are CSS-like strings ("#RRGGBB" or a color name). Implementations
// ignore colors they cannot parse and keep the previous value.
type Surface interface {
	Size() (width, height int)
	// Clear resets every pixel to transparent. The transform is ignored.
	Clear()

	Save()
	Restore()
	Scale(sx, sy float64)

	SetLineWidth(w float64)
	SetStrokeColor(c string)
	SetFillColor(c string)
	SetFontSize(px float64)

	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	// Arc adds a full circle as a closed subpath.
	Arc(cx, cy, r float64)
	Stroke()
	Fill()

	// FillText draws text with its left edge and alphabetic baseline at (x, y).
	FillText(text string, x, y float64)
}

// ImageSurface is a Surface backed by a raster the caller can encode.
type ImageSurface interface {
	Surface
	Image() image.Image
}

// SurfaceFactory allocates an offscreen surface of the given pixel size.
type SurfaceFactory func(width, height int) (ImageSurface, error)
