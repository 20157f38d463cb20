package window

import (
	"fmt"
	"image"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"

	"github.com/example/sketchpad/internal/raster"
	"github.com/example/sketchpad/internal/sketch"
)

const messageDuration = 2 * time.Second

// buttonView is what the toolbar shows for one button.
type buttonView struct {
	Label    string
	Action   string
	Selected bool
}

// model is the window's state. It is owned by the event loop goroutine.
type model struct {
	ctrl   *sketch.Controller
	canvas *raster.Canvas
	cw, ch int

	winW, winH int
	zoom       float64

	buttons []buttonView
	hover   int
	dirty   bool
	readout string

	prompting bool
	prompt    string

	message      string
	messageUntil time.Time
	now          func() time.Time

	actions map[string]func()
	keys    map[KeyShortcut]string

	// set by the window to hand exports to a background goroutine
	onExport func(copyOnly bool)
	quit     bool
}

func newModel(cw, ch int, fonts *raster.Fonts, opts []sketch.Option) *model {
	m := &model{
		canvas: raster.New(cw, ch, raster.WithFonts(fonts)),
		cw:     cw,
		ch:     ch,
		zoom:   1,
		hover:  -1,
		dirty:  true,
		now:    time.Now,
	}
	opts = append(append([]sketch.Option(nil), opts...),
		sketch.WithToolMoved(m.toolMoved),
		sketch.WithDirty(func() { m.dirty = true }),
	)
	m.ctrl = sketch.NewController(opts...)
	m.registerActions()
	m.rebuildButtons()
	m.winW, m.winH = windowSize(cw, ch, len(m.buttons))
	return m
}

func (m *model) registerActions() {
	m.actions = map[string]func(){
		"clear":  m.ctrl.Clear,
		"undo":   m.ctrl.Undo,
		"redo":   m.ctrl.Redo,
		"thin":   m.ctrl.SelectThinStroke,
		"thick":  m.ctrl.SelectThickStroke,
		"custom": m.startPrompt,
		"export": func() { m.export(false) },
		"copy":   func() { m.export(true) },
		"quit":   func() { m.quit = true },
	}
	m.keys = map[KeyShortcut]string{
		{Rune: 'z', Modifiers: key.ModControl}:                "undo",
		{Rune: 'y', Modifiers: key.ModControl}:                "redo",
		{Rune: 'z', Modifiers: key.ModControl | key.ModShift}: "redo",
		{Rune: 'e', Modifiers: key.ModControl}:                "export",
		{Rune: 'c', Modifiers: key.ModControl}:                "copy",
		{Rune: 'q'}:                                           "quit",
		{Code: key.CodeDeleteForward}:                         "clear",
	}
}

// rebuildButtons mirrors the controller palette into the toolbar.
func (m *model) rebuildButtons() {
	views := []buttonView{
		{Label: "clear", Action: "clear"},
		{Label: "undo", Action: "undo"},
		{Label: "redo", Action: "redo"},
	}
	for _, b := range m.ctrl.Buttons() {
		v := buttonView{Label: b.Label, Selected: b.Selected}
		switch b.Kind {
		case sketch.ButtonThin:
			v.Action = "thin"
		case sketch.ButtonThick:
			v.Action = "thick"
		default:
			v.Action = "sticker:" + b.Glyph
		}
		views = append(views, v)
	}
	views = append(views,
		buttonView{Label: "custom", Action: "custom"},
		buttonView{Label: "export", Action: "export"},
	)
	m.buttons = views
}

func (m *model) activate(action string) {
	if glyph, ok := strings.CutPrefix(action, "sticker:"); ok {
		m.ctrl.SelectSticker(glyph)
	} else if fn, ok := m.actions[action]; ok {
		fn()
	}
	m.rebuildButtons()
	m.dirty = true
}

func (m *model) resize(w, h int) {
	m.winW, m.winH = w, h
	m.zoom = fitZoom(m.cw, m.ch, w, h)
	m.dirty = true
}

func (m *model) canvasRect() image.Rectangle { return canvasRect(m.cw, m.ch, m.zoom) }

// handleMouse feeds one pointer event and reports whether to repaint.
func (m *model) handleMouse(e mouse.Event) bool {
	if m.prompting {
		return false
	}
	p := image.Pt(int(e.X), int(e.Y))
	rects := buttonRects(len(m.buttons))

	if e.Direction == mouse.DirNone {
		if h := hitTest(rects, p); h != m.hover {
			m.hover = h
			m.dirty = true
		}
	}

	x, y, inside := toCanvas(e.X, e.Y, m.canvasRect(), m.zoom)
	switch {
	case e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress:
		if i := hitTest(rects, p); i >= 0 {
			m.activate(m.buttons[i].Action)
			break
		}
		if inside {
			m.ctrl.PointerDown(x, y)
		}
	case e.Button == mouse.ButtonLeft && e.Direction == mouse.DirRelease:
		m.ctrl.PointerUp()
	case e.Direction == mouse.DirNone:
		if inside || m.ctrl.State() == sketch.StateDrawing {
			m.ctrl.PointerMove(x, y)
		}
	}
	return m.dirty
}

// handleKey feeds one key event and reports whether to repaint.
func (m *model) handleKey(e key.Event) bool {
	if e.Direction != key.DirPress {
		return false
	}
	if m.prompting {
		switch e.Code {
		case key.CodeReturnEnter:
			m.prompting = false
			if m.ctrl.AddCustomSticker(m.prompt) {
				m.rebuildButtons()
			}
		case key.CodeEscape:
			m.prompting = false
		case key.CodeDeleteBackspace:
			if _, size := utf8.DecodeLastRuneInString(m.prompt); size > 0 {
				m.prompt = m.prompt[:len(m.prompt)-size]
			}
		default:
			if e.Rune > 0 {
				m.prompt += string(e.Rune)
			}
		}
		m.dirty = true
		return true
	}
	mods := e.Modifiers & (key.ModControl | key.ModShift)
	candidates := []KeyShortcut{
		{Rune: unicode.ToLower(e.Rune), Modifiers: mods},
		{Code: e.Code, Modifiers: mods},
	}
	for _, ks := range candidates {
		if action, ok := m.keys[ks]; ok {
			m.activate(action)
			return true
		}
	}
	return false
}

func (m *model) startPrompt() {
	m.prompting = true
	m.prompt = sketch.DefaultCustomSticker
}

func (m *model) export(copyOnly bool) {
	if m.onExport != nil {
		m.onExport(copyOnly)
	}
}

func (m *model) toolMoved(ev sketch.ToolMoved) {
	label := string(ev.Kind)
	if ev.Glyph != "" {
		label += " " + ev.Glyph
	}
	if ev.Positioned {
		m.readout = fmt.Sprintf("%s @ %.0f,%.0f", label, ev.X, ev.Y)
	} else {
		m.readout = label
	}
}

func (m *model) flash(msg string) {
	m.message = msg
	m.messageUntil = m.now().Add(messageDuration)
	m.dirty = true
}

// snapshot redraws the canvas if needed and copies what a frame shows.
func (m *model) snapshot() paintState {
	if m.dirty {
		if err := m.ctrl.Redraw(m.canvas); err != nil {
			m.flash(err.Error())
		}
		m.dirty = false
	}
	src := m.canvas.RGBA()
	img := image.NewRGBA(src.Bounds())
	copy(img.Pix, src.Pix)
	st := paintState{
		width:   m.winW,
		height:  m.winH,
		canvas:  img,
		zoom:    m.zoom,
		buttons: append([]buttonView(nil), m.buttons...),
		hover:   m.hover,
		readout: m.readout,
	}
	if m.prompting {
		st.prompt = m.prompt
		st.prompting = true
	}
	if m.message != "" && m.now().Before(m.messageUntil) {
		st.message = m.message
	}
	return st
}
