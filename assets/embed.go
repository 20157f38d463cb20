package assets

import (
	"embed"
	"fmt"
	"image"
	"sync"

	"github.com/example/sketchpad/internal/raster"
	"github.com/example/sketchpad/internal/sketch"
)

// Embedded icon assets for Sketchpad.
//
//go:embed icons/sketchpad.svg
var embeddedIcons embed.FS

var (
	loadIconOnce sync.Once
	loadIconErr  error
	svgData      []byte

	rendered sync.Map // map[int]image.Image
)

func loadIcon() {
	svgData, loadIconErr = embeddedIcons.ReadFile("icons/sketchpad.svg")
}

// IconSVG returns a copy of the SVG icon.
func IconSVG() ([]byte, error) {
	loadIconOnce.Do(loadIcon)
	if loadIconErr != nil {
		return nil, loadIconErr
	}
	return append([]byte(nil), svgData...), nil
}

// iconScene is the zigzag of the SVG artwork on a 64x64 canvas.
func iconScene() *sketch.Scene {
	s := sketch.NewScene()
	zigzag := sketch.NewStroke(sketch.Pt(12, 44), 6, "#E4572E")
	for _, p := range []sketch.Point{sketch.Pt(22, 24), sketch.Pt(32, 40), sketch.Pt(42, 18), sketch.Pt(52, 34)} {
		zigzag.Extend(p)
	}
	s.Commit(zigzag)
	return s
}

// IconImage renders the icon at size x size pixels. Results are cached.
func IconImage(size int) (image.Image, error) {
	if size <= 0 {
		return nil, fmt.Errorf("icon size %d", size)
	}
	if img, ok := rendered.Load(size); ok {
		return img.(image.Image), nil
	}
	c := raster.New(size, size)
	c.Save()
	c.Scale(float64(size)/64, float64(size)/64)
	c.SetFillColor("#FFFFFF")
	c.BeginPath()
	c.MoveTo(4, 4)
	c.LineTo(60, 4)
	c.LineTo(60, 60)
	c.LineTo(4, 60)
	c.Fill()
	iconScene().Render(c)
	c.SetFillColor("#29335C")
	c.BeginPath()
	c.Arc(48, 48, 5)
	c.Fill()
	c.Restore()
	img := c.RGBA()
	rendered.Store(size, img)
	return img, nil
}
