package window

import (
	"image"
	"image/color"
	"image/draw"
	"log"

	"golang.org/x/image/math/fixed"
	"golang.org/x/mobile/event/key"

	"github.com/example/sketchpad/internal/raster"
	"github.com/example/sketchpad/internal/theme"
)

// KeyShortcut describes a keyboard combination that triggers an action.
type KeyShortcut struct {
	Rune      rune
	Code      key.Code
	Modifiers key.Modifiers
}

// ButtonState describes the visual state of a button.
type ButtonState int

const (
	StateDefault ButtonState = iota
	StateHover
	StatePressed
	StateSelected
)

// Button is a toolbar entry. Activate performs its action when clicked.
type Button struct {
	Label    string
	Action   string
	Selected bool
	rect     image.Rectangle
	cache    [4]*image.RGBA
}

func (b *Button) Rect() image.Rectangle { return b.rect }

// SetRect moves the button and drops its rendered states.
func (b *Button) SetRect(r image.Rectangle) {
	if r != b.rect {
		b.rect = r
		b.cache = [4]*image.RGBA{}
	}
}

// Draw paints the button, rendering each state once.
func (b *Button) Draw(dst *image.RGBA, state ButtonState, th *theme.Theme, fonts *raster.Fonts) {
	if b.Selected && state == StateDefault {
		state = StateSelected
	}
	if b.cache[state] == nil {
		img := image.NewRGBA(b.rect)
		drawButton(img, b.rect, b.Label, state, th, fonts)
		b.cache[state] = img
	}
	draw.Draw(dst, b.rect, b.cache[state], b.rect.Min, draw.Src)
}

func drawButton(dst *image.RGBA, r image.Rectangle, label string, state ButtonState, th *theme.Theme, fonts *raster.Fonts) {
	bg := th.ButtonBackground
	switch state {
	case StateHover:
		bg = th.ButtonBackgroundHover
	case StatePressed:
		bg = th.ButtonBackgroundPress
	case StateSelected:
		bg = th.ButtonSelected
	}
	draw.Draw(dst, r, &image.Uniform{bg}, image.Point{}, draw.Src)
	strokeRect(dst, r, th.ButtonBorder)
	drawLabel(dst, r, label, th.ButtonText, fonts, 14)
}

// drawLabel centres text in r.
func drawLabel(dst *image.RGBA, r image.Rectangle, text string, col color.Color, fonts *raster.Fonts, size float64) {
	if fonts == nil || text == "" {
		return
	}
	w, asc, desc, err := fonts.MeasureText(text, size)
	if err != nil {
		log.Printf("label %q: %v", text, err)
		return
	}
	x := r.Min.X + (r.Dx()-w)/2
	y := r.Min.Y + (r.Dy()-asc-desc)/2 + asc
	if err := fonts.DrawString(dst, col, size, fixed.P(x, y), text); err != nil {
		log.Printf("label %q: %v", text, err)
	}
}

func strokeRect(dst *image.RGBA, r image.Rectangle, col color.Color) {
	u := &image.Uniform{col}
	draw.Draw(dst, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1), u, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y), u, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y), u, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y), u, image.Point{}, draw.Src)
}
