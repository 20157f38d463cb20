// Package shadow draws soft drop shadows: behind the canvas card in the
// desktop window and behind the drawing in shadowed exports.
package shadow

import (
	"image"
	"image/color"
	"image/draw"
	"sync"
)

// Options configures a drop shadow.
type Options struct {
	Radius  int
	Offset  image.Point
	Opacity float64
}

// Card is the shadow used under the canvas in the window.
func Card() Options {
	return Options{Radius: 6, Offset: image.Pt(3, 3), Opacity: 0.35}
}

// Export is the shadow added by "render -shadow".
func Export() Options {
	return Options{Radius: 24, Offset: image.Pt(16, 16), Opacity: 0.55}
}

func (o Options) alpha() uint8 {
	switch {
	case o.Opacity <= 0:
		return 0
	case o.Opacity >= 1:
		return 255
	}
	return uint8(o.Opacity*255 + 0.5)
}

// Apply returns img on a larger transparent canvas with the blurred shadow
// of its opaque parts underneath. The result starts at the origin and the
// returned point is where img's top-left corner landed.
func Apply(img image.Image, opts Options) (*image.RGBA, image.Point) {
	src := img.Bounds()
	r := max(opts.Radius, 0)
	shadowRect := src.Inset(-r).Add(opts.Offset)
	out := src.Union(shadowRect)
	shift := src.Min.Sub(out.Min)

	dst := image.NewRGBA(out.Sub(out.Min))
	if a := opts.alpha(); a > 0 && !src.Empty() {
		mask := image.NewAlpha(src.Inset(-r).Sub(src.Min.Sub(image.Pt(r, r))))
		draw.Draw(mask, src.Sub(src.Min).Add(image.Pt(r, r)), img, src.Min, draw.Src)
		blur(mask, r)
		at := shadowRect.Min.Sub(out.Min)
		draw.DrawMask(dst, mask.Bounds().Add(at), image.NewUniform(color.RGBA{A: a}), image.Point{}, mask, image.Point{}, draw.Over)
	}
	draw.Draw(dst, src.Sub(out.Min), img, src.Min, draw.Over)
	return dst, shift
}

// Cache keeps the last rectangle shadow so repaints at an unchanged size
// skip the blur. It is safe for concurrent use.
type Cache struct {
	mu   sync.Mutex
	size image.Point
	opts Options
	mask *image.Alpha
}

// DrawRect paints the shadow of rectangle r onto dst.
func (c *Cache) DrawRect(dst draw.Image, r image.Rectangle, opts Options) {
	a := opts.alpha()
	if a == 0 || r.Empty() {
		return
	}
	mask := c.rectMask(r.Size(), opts)
	pad := max(opts.Radius, 0)
	at := r.Min.Sub(image.Pt(pad, pad)).Add(opts.Offset)
	draw.DrawMask(dst, mask.Bounds().Add(at), image.NewUniform(color.RGBA{A: a}), image.Point{}, mask, image.Point{}, draw.Over)
}

func (c *Cache) rectMask(size image.Point, opts Options) *image.Alpha {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mask != nil && c.size == size && c.opts.Radius == opts.Radius {
		return c.mask
	}
	r := max(opts.Radius, 0)
	m := image.NewAlpha(image.Rect(0, 0, size.X+2*r, size.Y+2*r))
	draw.Draw(m, image.Rect(r, r, r+size.X, r+size.Y), image.Opaque, image.Point{}, draw.Src)
	blur(m, r)
	c.size, c.opts, c.mask = size, opts, m
	return m
}

// blur applies a box blur of the given radius in place, one axis at a time.
func blur(m *image.Alpha, radius int) {
	if radius <= 0 {
		return
	}
	w, h := m.Bounds().Dx(), m.Bounds().Dy()
	line := make([]uint8, max(w, h))
	prefix := make([]int, max(w, h)+1)
	for y := 0; y < h; y++ {
		row := m.Pix[y*m.Stride : y*m.Stride+w]
		box(row, line[:w], prefix[:w+1], radius)
		copy(row, line[:w])
	}
	col := make([]uint8, h)
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			col[y] = m.Pix[y*m.Stride+x]
		}
		box(col, line[:h], prefix[:h+1], radius)
		for y := 0; y < h; y++ {
			m.Pix[y*m.Stride+x] = line[y]
		}
	}
}

// box averages src over a sliding window clamped to the ends.
func box(src, dst []uint8, prefix []int, radius int) {
	n := len(src)
	for i, v := range src {
		prefix[i+1] = prefix[i] + int(v)
	}
	for i := 0; i < n; i++ {
		lo := max(i-radius, 0)
		hi := min(i+radius, n-1)
		dst[i] = uint8((prefix[hi+1] - prefix[lo]) / (hi - lo + 1))
	}
}
