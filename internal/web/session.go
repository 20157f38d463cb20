package web

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/png"
	"io"
	"sync"

	"github.com/google/uuid"

	"github.com/example/sketchpad/internal/export"
	"github.com/example/sketchpad/internal/raster"
	"github.com/example/sketchpad/internal/sketch"
)

// Session is one browser tab's drawing. Commands are applied one at a time.
type Session struct {
	ID string

	mu       sync.Mutex
	ctrl     *sketch.Controller
	canvas   *raster.Canvas
	exporter *sketch.Exporter
	width    int
	height   int
	seq      uint64

	// filled by controller callbacks while a command is applied
	dirty   bool
	pending []Message
}

// NewSession creates a session with a fresh uuid and its own controller.
func NewSession(o Options) *Session {
	s := &Session{
		ID:       uuid.NewString(),
		canvas:   raster.New(o.Width, o.Height, raster.WithFonts(o.Fonts)),
		exporter: sketch.NewExporter(o.Width, o.Height, raster.NewSurfaceFactory(o.Fonts)),
		width:    o.Width,
		height:   o.Height,
	}
	if o.ExportScale > 0 {
		s.exporter.Scale = o.ExportScale
	}
	opts := append([]sketch.Option(nil), o.Controller...)
	opts = append(opts,
		sketch.WithToolMoved(func(ev sketch.ToolMoved) {
			s.pending = append(s.pending, Message{Type: MsgToolMoved, ToolMoved: &ev})
		}),
		sketch.WithDirty(func() { s.dirty = true }),
	)
	s.ctrl = sketch.NewController(opts...)
	return s
}

// Hello is the first message of a connection: id, palette and a frame.
func (s *Session) Hello() ([]Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	frame, err := s.frame()
	if err != nil {
		return nil, err
	}
	return []Message{
		{Type: MsgHello, Session: s.ID, Width: s.width, Height: s.height},
		paletteMessage(s.ctrl.Buttons()),
		frame,
	}, nil
}

// Apply runs cmd against the controller and returns the resulting updates
// in order: tool-moved notifications, a palette if buttons changed, then a
// frame if anything needs repainting.
func (s *Session) Apply(cmd Command) ([]Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dirty = false
	s.pending = s.pending[:0]
	paletteChanged := false

	switch cmd.Type {
	case CmdDown:
		s.ctrl.PointerDown(cmd.X, cmd.Y)
	case CmdMove:
		s.ctrl.PointerMove(cmd.X, cmd.Y)
	case CmdUp:
		s.ctrl.PointerUp()
	case CmdThin:
		s.ctrl.SelectThinStroke()
		paletteChanged = true
	case CmdThick:
		s.ctrl.SelectThickStroke()
		paletteChanged = true
	case CmdSticker:
		paletteChanged = s.ctrl.SelectSticker(cmd.Glyph)
	case CmdCustom:
		paletteChanged = s.ctrl.AddCustomSticker(cmd.Text)
	case CmdUndo:
		s.ctrl.Undo()
	case CmdRedo:
		s.ctrl.Redo()
	case CmdClear:
		s.ctrl.Clear()
	default:
		return nil, fmt.Errorf("unknown command %q", cmd.Type)
	}

	out := append([]Message(nil), s.pending...)
	if paletteChanged {
		out = append(out, paletteMessage(s.ctrl.Buttons()))
	}
	if s.dirty {
		frame, err := s.frame()
		if err != nil {
			return out, err
		}
		out = append(out, frame)
	}
	return out, nil
}

// WritePNG writes the export of the committed scene.
func (s *Session) WritePNG(w io.Writer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.exporter.WritePNG(w, s.ctrl.Scene())
}

// WritePDF writes the committed scene as a PDF page.
func (s *Session) WritePDF(w io.Writer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return export.WritePDF(w, s.ctrl.Scene(), s.width, s.height)
}

func (s *Session) frame() (Message, error) {
	if err := s.ctrl.Redraw(s.canvas); err != nil {
		return Message{}, fmt.Errorf("redraw: %w", err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, s.canvas.Image()); err != nil {
		return Message{}, fmt.Errorf("encode frame: %w", err)
	}
	scene := s.ctrl.Scene()
	s.seq++
	return Message{
		Type:    MsgFrame,
		Frame:   base64.StdEncoding.EncodeToString(buf.Bytes()),
		Seq:     s.seq,
		CanUndo: scene.CanUndo(),
		CanRedo: scene.CanRedo(),
	}, nil
}
