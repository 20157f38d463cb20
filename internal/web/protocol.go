package web

import (
	"github.com/example/sketchpad/internal/sketch"
)

// Command types sent by the page.
const (
	CmdDown    = "down"
	CmdMove    = "move"
	CmdUp      = "up"
	CmdThin    = "thin"
	CmdThick   = "thick"
	CmdSticker = "sticker"
	CmdCustom  = "custom"
	CmdUndo    = "undo"
	CmdRedo    = "redo"
	CmdClear   = "clear"
)

// Message types sent to the page.
const (
	MsgHello     = "hello"
	MsgFrame     = "frame"
	MsgToolMoved = "tool-moved"
	MsgPalette   = "palette"
	MsgError     = "error"
)

// Command is one input event from the page. X and Y are canvas
// coordinates for pointer commands.
type Command struct {
	Type  string  `json:"type"`
	X     float64 `json:"x,omitempty"`
	Y     float64 `json:"y,omitempty"`
	Glyph string  `json:"emoji,omitempty"`
	Text  string  `json:"text,omitempty"`
}

// Button mirrors sketch.ToolButton for the page.
type Button struct {
	Kind     string `json:"kind"`
	Label    string `json:"label"`
	Glyph    string `json:"emoji,omitempty"`
	Selected bool   `json:"selected"`
}

// Message is one update for the page.
type Message struct {
	Type      string            `json:"type"`
	Session   string            `json:"session,omitempty"`
	Frame     string            `json:"frame,omitempty"` // base64 PNG
	Seq       uint64            `json:"seq,omitempty"`   // frames increase per session
	Width     int               `json:"width,omitempty"`
	Height    int               `json:"height,omitempty"`
	CanUndo   bool              `json:"canUndo,omitempty"`
	CanRedo   bool              `json:"canRedo,omitempty"`
	ToolMoved *sketch.ToolMoved `json:"detail,omitempty"`
	Palette   []Button          `json:"palette,omitempty"`
	Error     string            `json:"error,omitempty"`
}

func buttonKind(k sketch.ButtonKind) string {
	switch k {
	case sketch.ButtonThin:
		return "thin"
	case sketch.ButtonThick:
		return "thick"
	default:
		return "sticker"
	}
}

func paletteMessage(buttons []sketch.ToolButton) Message {
	out := make([]Button, len(buttons))
	for i, b := range buttons {
		out[i] = Button{Kind: buttonKind(b.Kind), Label: b.Label, Glyph: b.Glyph, Selected: b.Selected}
	}
	return Message{Type: MsgPalette, Palette: out}
}
