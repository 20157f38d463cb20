package sketch

import (
	"fmt"
	"strings"
)

// recorder is a Surface that logs every call.
type recorder struct {
	ops []string
}

func (r *recorder) add(format string, args ...any) {
	r.ops = append(r.ops, fmt.Sprintf(format, args...))
}

func (r *recorder) String() string { return strings.Join(r.ops, "; ") }

func (r *recorder) Size() (int, int)                { return 256, 256 }
func (r *recorder) Clear()                          { r.add("Clear") }
func (r *recorder) Save()                           { r.add("Save") }
func (r *recorder) Restore()                        { r.add("Restore") }
func (r *recorder) Scale(sx, sy float64)            { r.add("Scale %g %g", sx, sy) }
func (r *recorder) SetLineWidth(w float64)          { r.add("LineWidth %g", w) }
func (r *recorder) SetStrokeColor(c string)         { r.add("StrokeColor %s", c) }
func (r *recorder) SetFillColor(c string)           { r.add("FillColor %s", c) }
func (r *recorder) SetFontSize(px float64)          { r.add("FontSize %g", px) }
func (r *recorder) BeginPath()                      { r.add("BeginPath") }
func (r *recorder) MoveTo(x, y float64)             { r.add("MoveTo %g %g", x, y) }
func (r *recorder) LineTo(x, y float64)             { r.add("LineTo %g %g", x, y) }
func (r *recorder) Arc(cx, cy, rad float64)         { r.add("Arc %g %g %g", cx, cy, rad) }
func (r *recorder) Stroke()                         { r.add("Stroke") }
func (r *recorder) Fill()                           { r.add("Fill") }
func (r *recorder) FillText(t string, x, y float64) { r.add("FillText %s %g %g", t, x, y) }
