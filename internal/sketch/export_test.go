package sketch_test

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"github.com/example/sketchpad/internal/raster"
	"github.com/example/sketchpad/internal/sketch"
)

func factory(t *testing.T) sketch.SurfaceFactory {
	t.Helper()
	fonts, err := raster.DefaultFonts()
	if err != nil {
		t.Fatalf("fonts: %v", err)
	}
	return raster.NewSurfaceFactory(fonts)
}

func paintedBounds(img *image.RGBA) image.Rectangle {
	var r image.Rectangle
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.RGBAAt(x, y).A != 0 {
				r = r.Union(image.Rect(x, y, x+1, y+1))
			}
		}
	}
	return r
}

func TestExportIsFourTimesLarger(t *testing.T) {
	c := sketch.NewController()
	c.PointerDown(10, 10)
	c.PointerMove(20, 10)
	c.PointerUp()
	c.PointerMove(200, 200)
	if _, ok := c.Preview(); !ok {
		t.Fatalf("expected a live preview")
	}

	e := sketch.NewExporter(256, 256, factory(t))
	var buf bytes.Buffer
	if err := e.WritePNG(&buf, c.Scene()); err != nil {
		t.Fatalf("WritePNG: %v", err)
	}
	decoded, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := decoded.Bounds().Size(); got != image.Pt(1024, 1024) {
		t.Fatalf("export size = %v", got)
	}

	img, err := e.Render(c.Scene())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	rgba := img.(*image.RGBA)
	// Thickness 3 at 4x is 12px wide, so the stroke covers x 34..86, y 34..46.
	got := paintedBounds(rgba)
	if got.Min.X < 32 || got.Min.X > 36 || got.Max.X < 84 || got.Max.X > 88 {
		t.Errorf("painted x range = %v", got)
	}
	if got.Min.Y < 32 || got.Min.Y > 36 || got.Max.Y < 44 || got.Max.Y > 48 {
		t.Errorf("painted y range = %v", got)
	}
	if px := rgba.RGBAAt(60, 40); px.A != 255 {
		t.Errorf("stroke centre pixel = %v, want opaque", px)
	}
	if px := rgba.RGBAAt(800, 800); px.A != 0 {
		t.Errorf("preview leaked into export: %v", px)
	}
}

func TestExportLeavesSceneUntouched(t *testing.T) {
	c := sketch.NewController()
	c.PointerDown(1, 1)
	c.PointerMove(5, 5)
	c.PointerUp()
	c.Undo()
	e := sketch.NewExporter(256, 256, factory(t))
	if _, err := e.Render(c.Scene()); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if c.Scene().Len() != 0 || !c.Scene().CanRedo() {
		t.Fatalf("export changed the history")
	}
}

func TestRedrawIsIdempotent(t *testing.T) {
	c := sketch.NewController()
	c.PointerDown(30, 30)
	c.PointerMove(60, 90)
	c.PointerMove(120, 40)
	c.PointerUp()
	c.SelectSticker("A")
	c.PointerDown(100, 100)
	c.PointerUp()
	c.PointerMove(150, 150)

	surface := raster.New(256, 256)
	if err := c.Redraw(surface); err != nil {
		t.Fatalf("Redraw: %v", err)
	}
	first := append([]byte(nil), surface.RGBA().Pix...)
	if err := c.Redraw(surface); err != nil {
		t.Fatalf("Redraw: %v", err)
	}
	if !bytes.Equal(first, surface.RGBA().Pix) {
		t.Fatalf("second redraw produced different pixels")
	}
	if paintedBounds(surface.RGBA()).Empty() {
		t.Fatalf("redraw painted nothing")
	}
}

func TestExportAnchorsStickerAtScaledPosition(t *testing.T) {
	scene := sketch.NewScene()
	scene.Commit(sketch.NewSticker(sketch.Pt(10, 10), "A"))

	e := sketch.NewExporter(256, 256, factory(t))
	img, err := e.Render(scene)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got := img.Bounds().Size(); got != image.Pt(1024, 1024) {
		t.Fatalf("export size = %v", got)
	}
	ink := paintedBounds(img.(*image.RGBA))
	if ink.Empty() {
		t.Fatalf("sticker painted nothing")
	}
	// The glyph sits on the baseline at y=40 and starts at x=40 plus its
	// side bearing.
	if ink.Max.Y < 37 || ink.Max.Y > 42 {
		t.Errorf("ink bottom = %d, want baseline near 40", ink.Max.Y)
	}
	if ink.Min.X < 38 || ink.Min.X > 48 {
		t.Errorf("ink left = %d, want near 40", ink.Min.X)
	}
	if ink.Min.Y >= 40 {
		t.Errorf("ink top = %d, glyph drawn below its baseline", ink.Min.Y)
	}
}
