// Package export writes committed scenes to vector formats.
package export

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/example/sketchpad/internal/raster"
	"github.com/example/sketchpad/internal/sketch"
)

// PDFFilename is the name offered for PDF exports.
const PDFFilename = "canvas_export.pdf"

const fontFamily = "goregular"

// gofpdf's UTF-8 subsetter only maps the Basic Multilingual Plane; glyphs
// beyond it (most emoji) are drawn as this placeholder.
const placeholder = '?'

var _ sketch.Surface = (*PDFSurface)(nil)

type pdfState struct {
	sx, sy    float64
	lineWidth float64
	stroke    color.NRGBA
	fill      color.NRGBA
	fontSize  float64
}

type pdfPath struct {
	pts    [][2]float64
	circle bool
	rx, ry float64
}

// PDFSurface renders entities as PDF vector operations on a single page the
// size of the canvas, one PDF point per canvas pixel.
type PDFSurface struct {
	pdf   *gofpdf.Fpdf
	w, h  int
	st    pdfState
	stack []pdfState
	path  []pdfPath
}

// NewPDFSurface starts a width x height point page.
func NewPDFSurface(width, height int) *PDFSurface {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: float64(width), Ht: float64(height)},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCreator("sketchpad", true)
	pdf.AddUTF8FontFromBytes(fontFamily, "", goregular.TTF)
	pdf.AddPage()
	pdf.SetLineCapStyle("round")
	pdf.SetLineJoinStyle("round")
	return &PDFSurface{
		pdf: pdf,
		w:   width,
		h:   height,
		st: pdfState{
			sx: 1, sy: 1, lineWidth: 1, fontSize: 10,
			stroke: color.NRGBA{A: 255},
			fill:   color.NRGBA{A: 255},
		},
	}
}

// WritePDF renders the committed entities of scene as a PDF document.
func WritePDF(w io.Writer, scene *sketch.Scene, width, height int) error {
	s := NewPDFSurface(width, height)
	if scene != nil {
		scene.Render(s)
	}
	return s.Output(w)
}

// Output finishes the document. A panic inside gofpdf is reported as an error.
func (s *PDFSurface) Output(w io.Writer) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("write pdf: %v", r)
		}
	}()
	if err := s.pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// Err reports the first error gofpdf recorded, if any.
func (s *PDFSurface) Err() error { return s.pdf.Error() }

func (s *PDFSurface) Size() (int, int) { return s.w, s.h }

// Clear is a no-op: the page starts blank and PDF has no erase.
func (s *PDFSurface) Clear() {}

func (s *PDFSurface) Save() { s.stack = append(s.stack, s.st) }

func (s *PDFSurface) Restore() {
	if n := len(s.stack); n > 0 {
		s.st = s.stack[n-1]
		s.stack = s.stack[:n-1]
	}
}

func (s *PDFSurface) Scale(sx, sy float64) {
	s.st.sx *= sx
	s.st.sy *= sy
}

func (s *PDFSurface) SetLineWidth(w float64) {
	if w > 0 && !math.IsInf(w, 0) {
		s.st.lineWidth = w
	}
}

func (s *PDFSurface) SetStrokeColor(c string) {
	if col, ok := parse(c); ok {
		s.st.stroke = col
	}
}

func (s *PDFSurface) SetFillColor(c string) {
	if col, ok := parse(c); ok {
		s.st.fill = col
	}
}

func (s *PDFSurface) SetFontSize(px float64) {
	if px > 0 {
		s.st.fontSize = px
	}
}

func (s *PDFSurface) BeginPath() { s.path = s.path[:0] }

func (s *PDFSurface) MoveTo(x, y float64) {
	s.path = append(s.path, pdfPath{pts: [][2]float64{s.device(x, y)}})
}

func (s *PDFSurface) LineTo(x, y float64) {
	n := len(s.path)
	if n == 0 || s.path[n-1].circle {
		s.MoveTo(x, y)
		return
	}
	s.path[n-1].pts = append(s.path[n-1].pts, s.device(x, y))
}

func (s *PDFSurface) Arc(cx, cy, r float64) {
	if r <= 0 {
		return
	}
	s.path = append(s.path, pdfPath{
		pts:    [][2]float64{s.device(cx, cy)},
		circle: true,
		rx:     r * math.Abs(s.st.sx),
		ry:     r * math.Abs(s.st.sy),
	})
}

func (s *PDFSurface) Stroke() {
	if s.st.stroke.A == 0 {
		return
	}
	c := s.st.stroke
	s.pdf.SetDrawColor(int(c.R), int(c.G), int(c.B))
	s.pdf.SetAlpha(float64(c.A)/255, "Normal")
	s.pdf.SetLineWidth(s.st.lineWidth * math.Sqrt(math.Abs(s.st.sx*s.st.sy)))
	s.draw("D", 2)
}

func (s *PDFSurface) Fill() {
	if s.st.fill.A == 0 {
		return
	}
	c := s.st.fill
	s.pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
	s.pdf.SetAlpha(float64(c.A)/255, "Normal")
	s.draw("F", 3)
}

// draw emits every subpath with at least minPts points. Circles always qualify.
func (s *PDFSurface) draw(style string, minPts int) {
	for _, p := range s.path {
		if p.circle {
			s.pdf.Ellipse(p.pts[0][0], p.pts[0][1], p.rx, p.ry, 0, style)
			continue
		}
		if len(p.pts) < minPts {
			continue
		}
		s.pdf.MoveTo(p.pts[0][0], p.pts[0][1])
		for _, pt := range p.pts[1:] {
			s.pdf.LineTo(pt[0], pt[1])
		}
		if style == "F" {
			s.pdf.ClosePath()
		}
		s.pdf.DrawPath(style)
	}
}

func (s *PDFSurface) FillText(text string, x, y float64) {
	if text == "" || s.st.fill.A == 0 {
		return
	}
	c := s.st.fill
	s.pdf.SetTextColor(int(c.R), int(c.G), int(c.B))
	s.pdf.SetAlpha(float64(c.A)/255, "Normal")
	s.pdf.SetFont(fontFamily, "", s.st.fontSize*math.Abs(s.st.sy))
	p := s.device(x, y)
	s.pdf.Text(p[0], p[1], bmpOnly(text))
}

// bmpOnly replaces runes above U+FFFF with the placeholder.
func bmpOnly(text string) string {
	return strings.Map(func(r rune) rune {
		if r > 0xFFFF {
			return placeholder
		}
		return r
	}, text)
}

func (s *PDFSurface) device(x, y float64) [2]float64 {
	return [2]float64{x * s.st.sx, y * s.st.sy}
}

func parse(c string) (color.NRGBA, bool) {
	col, err := raster.ParseColor(c)
	if err != nil {
		return color.NRGBA{}, false
	}
	return color.NRGBAModel.Convert(col).(color.NRGBA), true
}
