package sketch

import (
	"math/rand/v2"
	"strings"
)

// ToolKind is the active tool.
type ToolKind string

const (
	ToolStroke  ToolKind = "stroke"
	ToolSticker ToolKind = "sticker"
)

// Default tool settings.
const (
	DefaultThickness = 3
	ThinThickness    = 4
	ThickThickness   = 6
)

// DefaultStickers is the built-in sticker palette.
var DefaultStickers = []string{"🍕", "🐱", "🌵"}

// DefaultCustomSticker is offered as the initial text when prompting for a
// custom sticker.
const DefaultCustomSticker = "🧽"

// ToolState is what the next pointer-down will produce. Color only affects
// strokes created afterwards.
type ToolState struct {
	Kind      ToolKind
	Thickness float64
	Color     string
	Glyph     string
}

const hexDigits = "0123456789ABCDEF"

// RandomColor returns "#RRGGBB" with each digit drawn uniformly from 0-F.
func RandomColor(r *rand.Rand) string {
	var b [7]byte
	b[0] = '#'
	for i := 1; i < len(b); i++ {
		var n int
		if r != nil {
			n = r.IntN(len(hexDigits))
		} else {
			n = rand.IntN(len(hexDigits))
		}
		b[i] = hexDigits[n]
	}
	return string(b[:])
}

// ButtonKind identifies what a tool button selects.
type ButtonKind int

const (
	ButtonThin ButtonKind = iota
	ButtonThick
	ButtonSticker
)

// ToolButton is one entry of the tool palette.
type ToolButton struct {
	Kind     ButtonKind
	Label    string
	Glyph    string
	Selected bool
}

// Palette holds the tool buttons. At most one is selected; none is until
// the first activation.
type Palette struct {
	buttons []ToolButton
}

// NewPalette returns thin and thick buttons followed by one button per
// distinct non-blank glyph.
func NewPalette(stickers []string) *Palette {
	p := &Palette{buttons: []ToolButton{
		{Kind: ButtonThin, Label: "thin"},
		{Kind: ButtonThick, Label: "thick"},
	}}
	for _, g := range stickers {
		p.AddSticker(g)
	}
	return p
}

// AddSticker appends a sticker button for glyph unless one exists and
// returns its index. Blank glyphs are rejected with -1.
func (p *Palette) AddSticker(glyph string) int {
	glyph = strings.TrimSpace(glyph)
	if glyph == "" {
		return -1
	}
	if i := p.find(ButtonSticker, glyph); i >= 0 {
		return i
	}
	p.buttons = append(p.buttons, ToolButton{Kind: ButtonSticker, Label: glyph, Glyph: glyph})
	return len(p.buttons) - 1
}

// Select marks button i and unmarks every other one.
func (p *Palette) Select(i int) {
	for j := range p.buttons {
		p.buttons[j].Selected = j == i
	}
}

// Selected returns the index of the marked button or -1.
func (p *Palette) Selected() int {
	for i, b := range p.buttons {
		if b.Selected {
			return i
		}
	}
	return -1
}

// Buttons returns a copy of the buttons in display order.
func (p *Palette) Buttons() []ToolButton {
	out := make([]ToolButton, len(p.buttons))
	copy(out, p.buttons)
	return out
}

// Stickers lists the registered glyphs in display order.
func (p *Palette) Stickers() []string {
	var out []string
	for _, b := range p.buttons {
		if b.Kind == ButtonSticker {
			out = append(out, b.Glyph)
		}
	}
	return out
}

func (p *Palette) find(kind ButtonKind, glyph string) int {
	for i, b := range p.buttons {
		if b.Kind == kind && b.Glyph == glyph {
			return i
		}
	}
	return -1
}
