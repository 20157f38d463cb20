package sketch

import (
	"math/rand/v2"
	"strings"
)

// State is the controller's position in the input state machine.
type State int

const (
	StateIdle State = iota
	StateDrawing
	StateIdleWithPreview
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDrawing:
		return "drawing"
	case StateIdleWithPreview:
		return "idle-with-preview"
	default:
		return "unknown"
	}
}

// ToolMoved is published on every idle pointer move and on sticker
// selection. Positioned is false when no pointer position is known yet.
type ToolMoved struct {
	X          float64  `json:"x"`
	Y          float64  `json:"y"`
	Kind       ToolKind `json:"tool"`
	Glyph      string   `json:"emoji,omitempty"`
	Positioned bool     `json:"positioned"`
}

// Controller turns pointer events and button activations into scene
// mutations and preview updates. It is not safe for concurrent use; each
// frontend drives it from a single goroutine.
type Controller struct {
	scene    *Scene
	tool     ToolState
	thin     float64
	thick    float64
	stickers []string
	palette  *Palette

	active  *Stroke
	preview *ToolPreview
	pressed bool
	last    Point
	seen    bool

	rng       *rand.Rand
	toolMoved func(ToolMoved)
	dirty     func()
}

// Option configures a Controller during creation.
type Option func(*Controller)

// WithRand sets the source used for stroke colors.
func WithRand(r *rand.Rand) Option { return func(c *Controller) { c.rng = r } }

// WithScene drives an existing scene instead of a fresh one.
func WithScene(s *Scene) Option { return func(c *Controller) { c.scene = s } }

// WithThickness sets the starting, thin and thick stroke widths. Values
// that are not positive keep their defaults.
func WithThickness(initial, thin, thick float64) Option {
	return func(c *Controller) {
		if initial > 0 {
			c.tool.Thickness = initial
		}
		if thin > 0 {
			c.thin = thin
		}
		if thick > 0 {
			c.thick = thick
		}
	}
}

// WithStickers replaces the built-in sticker palette.
func WithStickers(glyphs []string) Option {
	return func(c *Controller) { c.stickers = append([]string(nil), glyphs...) }
}

// WithToolMoved registers the tool-moved observer.
func WithToolMoved(fn func(ToolMoved)) Option { return func(c *Controller) { c.toolMoved = fn } }

// WithDirty registers a callback invoked whenever a redraw is needed.
func WithDirty(fn func()) Option { return func(c *Controller) { c.dirty = fn } }

// NewController returns an idle controller with the stroke tool active and
// a random starting color.
func NewController(opts ...Option) *Controller {
	c := &Controller{
		tool:     ToolState{Kind: ToolStroke, Thickness: DefaultThickness},
		thin:     ThinThickness,
		thick:    ThickThickness,
		stickers: DefaultStickers,
	}
	for _, o := range opts {
		o(c)
	}
	if c.scene == nil {
		c.scene = NewScene()
	}
	c.palette = NewPalette(c.stickers)
	c.tool.Color = RandomColor(c.rng)
	return c
}

func (c *Controller) Scene() *Scene         { return c.scene }
func (c *Controller) Tool() ToolState       { return c.tool }
func (c *Controller) Buttons() []ToolButton { return c.palette.Buttons() }
func (c *Controller) Stickers() []string    { return c.palette.Stickers() }

// State reports the current state machine position.
func (c *Controller) State() State {
	switch {
	case c.active != nil:
		return StateDrawing
	case c.preview != nil:
		return StateIdleWithPreview
	default:
		return StateIdle
	}
}

// Preview returns a copy of the live preview, if one is showing.
func (c *Controller) Preview() (ToolPreview, bool) {
	if c.preview == nil {
		return ToolPreview{}, false
	}
	return *c.preview, true
}

// PointerDown discards the preview and starts a stroke or stamps a sticker.
func (c *Controller) PointerDown(x, y float64) {
	p := Pt(x, y)
	c.pressed = true
	c.track(p)
	c.endStroke()
	c.preview = nil
	switch c.tool.Kind {
	case ToolStroke:
		s := NewStroke(p, c.tool.Thickness, c.tool.Color)
		c.scene.Commit(s)
		c.active = s
	case ToolSticker:
		if c.tool.Glyph != "" {
			c.scene.Commit(NewSticker(p, c.tool.Glyph))
		}
	}
	c.markDirty()
}

// PointerMove extends the active stroke, or while the pointer is up
// rebuilds the preview and publishes a ToolMoved.
func (c *Controller) PointerMove(x, y float64) {
	p := Pt(x, y)
	c.track(p)
	if c.active != nil {
		c.active.Extend(p)
		c.markDirty()
		return
	}
	if c.pressed {
		return
	}
	c.preview = c.previewAt(p)
	c.publish(p, true)
	c.markDirty()
}

// PointerUp ends any drag. The stroke being drawn is frozen.
func (c *Controller) PointerUp() {
	c.pressed = false
	c.endStroke()
}

// SelectThinStroke activates the stroke tool with the thin width.
func (c *Controller) SelectThinStroke() { c.selectThickness(ButtonThin, c.thin) }

// SelectThickStroke activates the stroke tool with the thick width.
func (c *Controller) SelectThickStroke() { c.selectThickness(ButtonThick, c.thick) }

func (c *Controller) selectThickness(kind ButtonKind, thickness float64) {
	c.tool.Kind = ToolStroke
	c.tool.Glyph = ""
	c.tool.Thickness = thickness
	c.tool.Color = RandomColor(c.rng)
	c.palette.Select(c.palette.find(kind, ""))
	c.refreshPreview()
}

// SelectSticker activates the sticker tool with glyph, registering the
// glyph first if the palette lacks it. Blank glyphs are ignored.
func (c *Controller) SelectSticker(glyph string) bool {
	glyph = strings.TrimSpace(glyph)
	i := c.palette.AddSticker(glyph)
	if i < 0 {
		return false
	}
	c.palette.Select(i)
	c.tool.Kind = ToolSticker
	c.tool.Glyph = glyph
	c.refreshPreview()
	c.publish(c.last, c.seen)
	return true
}

// AddCustomSticker registers text as a new sticker button. Blank text
// changes nothing. The sticker is not selected.
func (c *Controller) AddCustomSticker(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	before := len(c.palette.buttons)
	c.palette.AddSticker(text)
	return len(c.palette.buttons) != before
}

// Undo removes the newest committed entity. Any drag in progress ends.
func (c *Controller) Undo() {
	c.endStroke()
	if c.scene.Undo() {
		c.markDirty()
	}
}

// Redo restores the most recently undone entity.
func (c *Controller) Redo() {
	c.endStroke()
	if c.scene.Redo() {
		c.markDirty()
	}
}

// Clear empties the scene irreversibly.
func (c *Controller) Clear() {
	c.endStroke()
	c.scene.Clear()
	c.markDirty()
}

// Redraw repaints dst from the scene and the live preview.
func (c *Controller) Redraw(dst Surface) error {
	var preview Drawable
	if c.preview != nil {
		preview = c.preview
	}
	return Redraw(dst, c.scene, preview)
}

func (c *Controller) previewAt(p Point) *ToolPreview {
	pv := &ToolPreview{At: p, Thickness: c.tool.Thickness, Color: c.tool.Color}
	if c.tool.Kind == ToolSticker {
		pv.Glyph = c.tool.Glyph
	}
	return pv
}

func (c *Controller) refreshPreview() {
	if c.preview == nil {
		return
	}
	c.preview = c.previewAt(c.preview.At)
	c.markDirty()
}

func (c *Controller) endStroke() {
	if c.active == nil {
		return
	}
	c.active.Freeze()
	c.active = nil
}

func (c *Controller) track(p Point) {
	c.last = p
	c.seen = true
}

func (c *Controller) publish(p Point, positioned bool) {
	if c.toolMoved == nil {
		return
	}
	ev := ToolMoved{Kind: c.tool.Kind, Positioned: positioned}
	if positioned {
		ev.X, ev.Y = p.X, p.Y
	}
	if c.tool.Kind == ToolSticker {
		ev.Glyph = c.tool.Glyph
	}
	c.toolMoved(ev)
}

func (c *Controller) markDirty() {
	if c.dirty != nil {
		c.dirty()
	}
}
