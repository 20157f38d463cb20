package sketch

import (
	"fmt"
	"image"
	"image/png"
	"io"
)

const (
	// ExportScale is the linear upscale applied to exported images.
	ExportScale = 4
	// ExportFilename is the name offered for the exported PNG.
	ExportFilename = "canvas_export.png"
)

// Exporter renders the committed part of a scene offscreen at Scale times
// the logical canvas size.
type Exporter struct {
	Width      int
	Height     int
	Scale      float64
	NewSurface SurfaceFactory
}

// NewExporter returns an exporter for a width x height canvas using the
// default scale.
func NewExporter(width, height int, factory SurfaceFactory) *Exporter {
	return &Exporter{Width: width, Height: height, Scale: ExportScale, NewSurface: factory}
}

// Render draws every committed entity onto a fresh surface. Previews are
// never part of an export and the scene is left untouched.
func (e *Exporter) Render(scene *Scene) (image.Image, error) {
	if e == nil || e.NewSurface == nil {
		return nil, ErrNoSurface
	}
	scale := e.Scale
	if scale <= 0 {
		scale = ExportScale
	}
	w := int(float64(e.Width) * scale)
	h := int(float64(e.Height) * scale)
	dst, err := e.NewSurface(w, h)
	if err != nil {
		return nil, fmt.Errorf("allocate %dx%d export surface: %w", w, h, err)
	}
	if dst == nil {
		return nil, ErrNoSurface
	}
	dst.Clear()
	dst.Save()
	dst.Scale(scale, scale)
	if scene != nil {
		scene.Render(dst)
	}
	dst.Restore()
	return dst.Image(), nil
}

// WritePNG renders scene and encodes it as PNG to w.
func (e *Exporter) WritePNG(w io.Writer, scene *Scene) error {
	img, err := e.Render(scene)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode export: %w", err)
	}
	return nil
}
