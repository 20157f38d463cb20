package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/example/sketchpad/internal/theme"
)

// Canvas holds the drawing surface settings.
type Canvas struct {
	Width       int
	Height      int
	ExportScale float64
}

// Tools holds stroke widths and the sticker palette.
type Tools struct {
	DefaultThickness float64
	Thin             float64
	Thick            float64
	Stickers         []string
}

// Notify holds notification settings.
type Notify struct {
	Export bool
	Copy   bool
}

// Server holds settings for the browser frontend.
type Server struct {
	Addr string
	MDNS bool
}

// Config holds the application configuration.
type Config struct {
	Theme       string
	SaveDir     string
	Font        string
	EmojiFont   string
	StickerPack string
	Canvas      Canvas
	Tools       Tools
	Notify      Notify
	Server      Server
	Themes      map[string]*theme.Theme
}

// Defaults used when the config leaves a value unset.
const (
	DefaultWidth  = 256
	DefaultHeight = 256
	DefaultAddr   = "127.0.0.1:8080"
)

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		Theme:  "", // Empty allows fallback to env/default
		Canvas: Canvas{Width: DefaultWidth, Height: DefaultHeight},
		Server: Server{Addr: DefaultAddr},
		Themes: make(map[string]*theme.Theme),
	}
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	if c.SaveDir != "" {
		fmt.Fprintf(&sb, "save_dir = %s\n", c.SaveDir)
	}
	if c.Font != "" {
		fmt.Fprintf(&sb, "font = %s\n", c.Font)
	}
	if c.EmojiFont != "" {
		fmt.Fprintf(&sb, "emoji_font = %s\n", c.EmojiFont)
	}
	if c.StickerPack != "" {
		fmt.Fprintf(&sb, "sticker_pack = %s\n", c.StickerPack)
	}
	sb.WriteString("\n")

	sb.WriteString("[canvas]\n")
	fmt.Fprintf(&sb, "width = %d\n", c.Canvas.Width)
	fmt.Fprintf(&sb, "height = %d\n", c.Canvas.Height)
	if c.Canvas.ExportScale > 0 {
		fmt.Fprintf(&sb, "export_scale = %g\n", c.Canvas.ExportScale)
	}
	sb.WriteString("\n")

	sb.WriteString("[tools]\n")
	if c.Tools.DefaultThickness > 0 {
		fmt.Fprintf(&sb, "default_thickness = %g\n", c.Tools.DefaultThickness)
	}
	if c.Tools.Thin > 0 {
		fmt.Fprintf(&sb, "thin = %g\n", c.Tools.Thin)
	}
	if c.Tools.Thick > 0 {
		fmt.Fprintf(&sb, "thick = %g\n", c.Tools.Thick)
	}
	if len(c.Tools.Stickers) > 0 {
		fmt.Fprintf(&sb, "stickers = %s\n", strings.Join(c.Tools.Stickers, ", "))
	}
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "export = %v\n", c.Notify.Export)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	sb.WriteString("\n")

	sb.WriteString("[server]\n")
	fmt.Fprintf(&sb, "addr = %s\n", c.Server.Addr)
	fmt.Fprintf(&sb, "mdns = %v\n", c.Server.MDNS)
	sb.WriteString("\n")

	// Sort keys for deterministic output
	var themeNames []string
	for name := range c.Themes {
		themeNames = append(themeNames, name)
	}
	sort.Strings(themeNames)

	for _, name := range themeNames {
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		_ = theme.Write(&sb, c.Themes[name])
		sb.WriteString("\n")
	}

	return sb.String()
}
