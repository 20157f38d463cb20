package main

import (
	"fmt"
	"os"

	"github.com/example/sketchpad/internal/config"
	"github.com/example/sketchpad/internal/raster"
	"github.com/example/sketchpad/internal/sketch"
)

// sketchSetup is what every frontend derives from the config.
type sketchSetup struct {
	width, height int
	exportScale   float64
	fonts         *raster.Fonts
	controller    []sketch.Option
}

func newSketchSetup(cfg *config.Config) (*sketchSetup, error) {
	if cfg == nil {
		cfg = config.New()
	}
	emoji := cfg.EmojiFont
	if emoji == "" {
		emoji, _ = raster.SystemEmojiFont()
	}
	fonts, err := raster.LoadFonts(cfg.Font, emoji)
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}
	glyphs, err := cfg.StickerGlyphs()
	if err != nil {
		// The configured list is still usable without the pack.
		fmt.Fprintf(os.Stderr, "warning: sticker pack: %v\n", err)
	}
	s := &sketchSetup{
		width:       cfg.Canvas.Width,
		height:      cfg.Canvas.Height,
		exportScale: cfg.Canvas.ExportScale,
		fonts:       fonts,
		controller: []sketch.Option{
			sketch.WithThickness(cfg.Tools.DefaultThickness, cfg.Tools.Thin, cfg.Tools.Thick),
			sketch.WithStickers(glyphs),
		},
	}
	if s.width <= 0 {
		s.width = config.DefaultWidth
	}
	if s.height <= 0 {
		s.height = config.DefaultHeight
	}
	if s.exportScale <= 0 {
		s.exportScale = sketch.ExportScale
	}
	return s, nil
}

func (s *sketchSetup) exporter() *sketch.Exporter {
	e := sketch.NewExporter(s.width, s.height, raster.NewSurfaceFactory(s.fonts))
	e.Scale = s.exportScale
	return e
}
