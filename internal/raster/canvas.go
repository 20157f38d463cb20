package raster

import (
	"image"
	"image/color"
	"image/draw"
	"log"
	"math"

	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/example/sketchpad/internal/sketch"
)

var _ sketch.ImageSurface = (*Canvas)(nil)

// gstate is the part of the canvas saved by Save and restored by Restore.
type gstate struct {
	sx, sy    float64
	lineWidth float64
	stroke    color.RGBA
	fill      color.RGBA
	fontSize  float64
}

func defaultState() gstate {
	return gstate{
		sx:        1,
		sy:        1,
		lineWidth: 1,
		stroke:    color.RGBA{0, 0, 0, 255},
		fill:      color.RGBA{0, 0, 0, 255},
		fontSize:  10,
	}
}

type vec struct{ X, Y float64 }

type subpath struct {
	pts    []vec
	closed bool
}

// Canvas is an anti-aliased 2D drawing context over an *image.RGBA.
// Path coordinates are transformed when they are added, as a browser
// canvas does.
type Canvas struct {
	img   *image.RGBA
	fonts *Fonts
	st    gstate
	stack []gstate
	path  []subpath
	ras   vector.Rasterizer
}

// Option configures a Canvas during creation.
type Option func(*Canvas)

// WithFonts sets the typeface used by FillText.
func WithFonts(f *Fonts) Option { return func(c *Canvas) { c.fonts = f } }

// New returns a transparent width x height canvas.
func New(width, height int, opts ...Option) *Canvas {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	c := &Canvas{
		img: image.NewRGBA(image.Rect(0, 0, width, height)),
		st:  defaultState(),
	}
	for _, o := range opts {
		o(c)
	}
	if c.fonts == nil {
		f, err := DefaultFonts()
		if err != nil {
			log.Printf("canvas fonts: %v", err)
		}
		c.fonts = f
	}
	return c
}

// NewSurfaceFactory returns a factory allocating canvases that share fonts.
func NewSurfaceFactory(fonts *Fonts) sketch.SurfaceFactory {
	return func(width, height int) (sketch.ImageSurface, error) {
		return New(width, height, WithFonts(fonts)), nil
	}
}

func (c *Canvas) Image() image.Image { return c.img }
func (c *Canvas) RGBA() *image.RGBA  { return c.img }

func (c *Canvas) Size() (int, int) {
	b := c.img.Bounds()
	return b.Dx(), b.Dy()
}

func (c *Canvas) Clear() {
	draw.Draw(c.img, c.img.Bounds(), image.Transparent, image.Point{}, draw.Src)
}

func (c *Canvas) Save() { c.stack = append(c.stack, c.st) }

// Restore pops the last saved state. An unbalanced call is ignored.
func (c *Canvas) Restore() {
	n := len(c.stack)
	if n == 0 {
		return
	}
	c.st = c.stack[n-1]
	c.stack = c.stack[:n-1]
}

func (c *Canvas) Scale(sx, sy float64) {
	c.st.sx *= sx
	c.st.sy *= sy
}

func (c *Canvas) SetLineWidth(w float64) {
	if w > 0 && !math.IsInf(w, 0) && !math.IsNaN(w) {
		c.st.lineWidth = w
	}
}

func (c *Canvas) SetStrokeColor(s string) {
	if col, err := ParseColor(s); err == nil {
		c.st.stroke = col
	}
}

func (c *Canvas) SetFillColor(s string) {
	if col, err := ParseColor(s); err == nil {
		c.st.fill = col
	}
}

func (c *Canvas) SetFontSize(px float64) {
	if px > 0 {
		c.st.fontSize = px
	}
}

func (c *Canvas) BeginPath() { c.path = c.path[:0] }

func (c *Canvas) MoveTo(x, y float64) {
	c.path = append(c.path, subpath{pts: []vec{c.device(x, y)}})
}

// LineTo without a current point behaves like MoveTo.
func (c *Canvas) LineTo(x, y float64) {
	n := len(c.path)
	if n == 0 || c.path[n-1].closed {
		c.MoveTo(x, y)
		return
	}
	c.path[n-1].pts = append(c.path[n-1].pts, c.device(x, y))
}

func (c *Canvas) Arc(cx, cy, r float64) {
	if r <= 0 {
		return
	}
	center := c.device(cx, cy)
	rx, ry := r*math.Abs(c.st.sx), r*math.Abs(c.st.sy)
	n := circleSegments(math.Max(rx, ry))
	pts := make([]vec, n)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = vec{center.X + rx*math.Cos(a), center.Y + ry*math.Sin(a)}
	}
	c.path = append(c.path, subpath{pts: pts, closed: true})
}

func (c *Canvas) Stroke() {
	w := c.st.lineWidth * math.Sqrt(math.Abs(c.st.sx*c.st.sy))
	c.fillPolygons(strokeOutline(c.path, w/2), c.st.stroke)
}

func (c *Canvas) Fill() {
	var polys [][]vec
	for _, sp := range c.path {
		if len(sp.pts) >= 3 {
			polys = append(polys, sp.pts)
		}
	}
	c.fillPolygons(polys, c.st.fill)
}

func (c *Canvas) FillText(text string, x, y float64) {
	if text == "" || c.fonts == nil {
		return
	}
	p := c.device(x, y)
	dot := fixed.Point26_6{X: fixed.Int26_6(math.Round(p.X * 64)), Y: fixed.Int26_6(math.Round(p.Y * 64))}
	if err := c.fonts.DrawString(c.img, c.st.fill, c.st.fontSize*math.Abs(c.st.sy), dot, text); err != nil {
		log.Printf("fill text: %v", err)
	}
}

func (c *Canvas) device(x, y float64) vec {
	return vec{x * c.st.sx, y * c.st.sy}
}

// fillPolygons rasterizes polys with the non-zero rule and composites col
// over the canvas. The rasterizer only covers the clipped bounding box.
func (c *Canvas) fillPolygons(polys [][]vec, col color.RGBA) {
	if len(polys) == 0 || col.A == 0 {
		return
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, poly := range polys {
		for _, p := range poly {
			minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
			minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
		}
	}
	r := image.Rect(
		int(math.Floor(minX)), int(math.Floor(minY)),
		int(math.Ceil(maxX))+1, int(math.Ceil(maxY))+1,
	).Intersect(c.img.Bounds())
	if r.Empty() {
		return
	}
	z := &c.ras
	z.Reset(r.Dx(), r.Dy())
	ox, oy := float64(r.Min.X), float64(r.Min.Y)
	for _, poly := range polys {
		if len(poly) < 3 {
			continue
		}
		z.MoveTo(float32(poly[0].X-ox), float32(poly[0].Y-oy))
		for _, p := range poly[1:] {
			z.LineTo(float32(p.X-ox), float32(p.Y-oy))
		}
		z.ClosePath()
	}
	z.DrawOp = draw.Over
	z.Draw(c.img, r, image.NewUniform(col), image.Point{})
}
