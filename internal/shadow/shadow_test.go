package shadow

import (
	"image"
	"image/color"
	"testing"
)

func TestApplyExpandsBounds(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	subject := image.Pt(5, 5)
	img.Set(subject.X, subject.Y, color.RGBA{R: 255, A: 255})

	opts := Options{Radius: 4, Offset: image.Pt(8, 6), Opacity: 0.5}
	out, shift := Apply(img, opts)
	if want := image.Rect(0, 0, 22, 20); out.Bounds() != want {
		t.Fatalf("bounds = %v, want %v", out.Bounds(), want)
	}
	if shift != (image.Point{}) {
		t.Errorf("shift = %v", shift)
	}
	if got := out.RGBAAt(subject.X, subject.Y); got != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("subject pixel = %v", got)
	}
	if out.RGBAAt(subject.X+8, subject.Y+6).A == 0 {
		t.Errorf("no shadow at the offset position")
	}
	if out.RGBAAt(21, 0).A != 0 {
		t.Errorf("shadow leaked into an empty corner")
	}
}

func TestApplyNegativeOffsetShiftsContent(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(0, 0, color.RGBA{G: 255, A: 255})
	out, shift := Apply(img, Options{Radius: 1, Offset: image.Pt(-5, 0), Opacity: 1})
	if shift != image.Pt(6, 1) {
		t.Fatalf("shift = %v", shift)
	}
	if got := out.RGBAAt(shift.X, shift.Y); got.G != 255 {
		t.Errorf("content not moved by shift: %v", got)
	}
}

func TestApplyWithoutOpacity(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	fill := color.RGBA{R: 200, G: 100, B: 50, A: 255}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.SetRGBA(x, y, fill)
		}
	}
	out, _ := Apply(img, Options{Radius: 3, Offset: image.Pt(6, 6), Opacity: 0})
	if out.RGBAAt(8, 8).A != 0 {
		t.Errorf("shadow drawn with zero opacity")
	}
	if out.RGBAAt(1, 1) != fill {
		t.Errorf("content = %v", out.RGBAAt(1, 1))
	}
}

func TestCacheDrawRect(t *testing.T) {
	var c Cache
	dst := image.NewRGBA(image.Rect(0, 0, 60, 60))
	r := image.Rect(10, 10, 40, 40)
	opts := Card()
	c.DrawRect(dst, r, opts)

	// Inside the offset rectangle the shadow is at full strength.
	if got := dst.RGBAAt(30, 30).A; got != opts.alpha() {
		t.Errorf("core alpha = %d, want %d", got, opts.alpha())
	}
	if got := dst.RGBAAt(43, 25).A; got == 0 || got >= opts.alpha() {
		t.Errorf("edge alpha = %d, want a soft falloff", got)
	}
	if dst.RGBAAt(1, 1).A != 0 {
		t.Errorf("shadow far from the card")
	}

	mask := c.mask
	c.DrawRect(dst, r.Add(image.Pt(5, 5)), opts)
	if c.mask != mask {
		t.Errorf("same size recomputed the blur")
	}
	c.DrawRect(dst, image.Rect(0, 0, 10, 10), opts)
	if c.mask == mask {
		t.Errorf("new size reused a stale mask")
	}
}

func TestBoxBlurKeepsFlatSignal(t *testing.T) {
	src := []uint8{90, 90, 90, 90, 90}
	dst := make([]uint8, len(src))
	box(src, dst, make([]int, len(src)+1), 2)
	for i, v := range dst {
		if v != 90 {
			t.Fatalf("dst[%d] = %d", i, v)
		}
	}
}
