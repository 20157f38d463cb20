package sketch

import (
	"github.com/google/uuid"
)

// Kind tags the closed set of drawable variants.
type Kind int

const (
	KindStroke Kind = iota
	KindSticker
	KindPreview
)

func (k Kind) String() string {
	switch k {
	case KindStroke:
		return "stroke"
	case KindSticker:
		return "sticker"
	case KindPreview:
		return "preview"
	default:
		return "unknown"
	}
}

// StickerFontSize is the pixel size glyphs are drawn at, before any
// surface transform.
const StickerFontSize = 24

// previewRing is the stroke color of the thickness ring.
const previewRing = "gray"

// Drawable is anything that can render itself onto a Surface. The set of
// implementations is closed: Stroke, Sticker and ToolPreview.
type Drawable interface {
	Kind() Kind
	Render(s Surface)
	drawable()
}

var (
	_ Drawable = (*Stroke)(nil)
	_ Drawable = (*Sticker)(nil)
	_ Drawable = (*ToolPreview)(nil)
)

// Stroke is a freehand polyline. Points are only appended while the drag
// that created it is in progress.
type Stroke struct {
	ID        string
	points    []Point
	thickness float64
	color     string
	frozen    bool
}

// NewStroke starts a stroke at p.
func NewStroke(p Point, thickness float64, color string) *Stroke {
	return &Stroke{
		ID:        uuid.NewString(),
		points:    []Point{p},
		thickness: thickness,
		color:     color,
	}
}

// Extend appends p. It reports false once the stroke is frozen.
func (s *Stroke) Extend(p Point) bool {
	if s.frozen {
		return false
	}
	s.points = append(s.points, p)
	return true
}

// Freeze ends the gesture; later Extend calls are rejected.
func (s *Stroke) Freeze() { s.frozen = true }

func (s *Stroke) Frozen() bool       { return s.frozen }
func (s *Stroke) Thickness() float64 { return s.thickness }
func (s *Stroke) Color() string      { return s.color }
func (s *Stroke) Len() int           { return len(s.points) }

// Points returns a copy of the recorded points.
func (s *Stroke) Points() []Point {
	out := make([]Point, len(s.points))
	copy(out, s.points)
	return out
}

func (s *Stroke) Kind() Kind { return KindStroke }

// Render strokes the polyline. A single point leaves no mark.
func (s *Stroke) Render(dst Surface) {
	if len(s.points) < 2 {
		return
	}
	dst.Save()
	defer dst.Restore()
	dst.SetLineWidth(s.thickness)
	dst.SetStrokeColor(s.color)
	dst.BeginPath()
	dst.MoveTo(s.points[0].X, s.points[0].Y)
	for _, p := range s.points[1:] {
		dst.LineTo(p.X, p.Y)
	}
	dst.Stroke()
}

func (s *Stroke) drawable() {}

// Sticker is a glyph stamped at a fixed position.
type Sticker struct {
	ID    string
	At    Point
	Glyph string
}

// NewSticker places glyph at p.
func NewSticker(p Point, glyph string) *Sticker {
	return &Sticker{ID: uuid.NewString(), At: p, Glyph: glyph}
}

func (s *Sticker) Kind() Kind { return KindSticker }

func (s *Sticker) Render(dst Surface) {
	dst.Save()
	defer dst.Restore()
	dst.SetFontSize(StickerFontSize)
	dst.SetFillColor("#000000")
	dst.FillText(s.Glyph, s.At.X, s.At.Y)
}

func (s *Sticker) drawable() {}

// ToolPreview shows where and how the next mark will land. It is owned by
// the Controller and never enters a Scene.
type ToolPreview struct {
	At        Point
	Thickness float64
	Color     string
	Glyph     string
}

func (p *ToolPreview) Kind() Kind { return KindPreview }

// Radius of the thickness ring drawn when no glyph is set.
func (p *ToolPreview) Radius() float64 { return p.Thickness / 2 * 1.5 }

func (p *ToolPreview) Render(dst Surface) {
	dst.Save()
	defer dst.Restore()
	if p.Glyph != "" {
		dst.SetFontSize(StickerFontSize)
		dst.SetFillColor("#000000")
		dst.FillText(p.Glyph, p.At.X, p.At.Y)
		return
	}
	dst.BeginPath()
	dst.Arc(p.At.X, p.At.Y, p.Radius())
	dst.SetLineWidth(1)
	dst.SetStrokeColor(previewRing)
	dst.Stroke()
	dst.SetFillColor(p.Color)
	dst.Fill()
}

func (p *ToolPreview) drawable() {}
