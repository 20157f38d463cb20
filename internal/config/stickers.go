package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/example/sketchpad/internal/sketch"
)

// StickerPack is a named list of glyphs read from YAML:
//
//	name: food
//	stickers:
//	  - glyph: 🍕
//	    name: pizza
//	  - glyph: 🌮
type StickerPack struct {
	Name     string    `yaml:"name"`
	Stickers []Sticker `yaml:"stickers"`
}

// Sticker is one entry of a pack.
type Sticker struct {
	Glyph string `yaml:"glyph"`
	Name  string `yaml:"name,omitempty"`
}

// ParseStickerPack decodes a pack. Entries without a glyph are rejected.
func ParseStickerPack(data []byte) (*StickerPack, error) {
	var p StickerPack
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse sticker pack: %w", err)
	}
	for i, s := range p.Stickers {
		if strings.TrimSpace(s.Glyph) == "" {
			return nil, fmt.Errorf("sticker pack %q: entry %d has no glyph", p.Name, i+1)
		}
	}
	return &p, nil
}

// LoadStickerPack reads a pack file.
func LoadStickerPack(path string) (*StickerPack, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sticker pack: %w", err)
	}
	return ParseStickerPack(data)
}

// Glyphs returns the pack's glyphs in file order.
func (p *StickerPack) Glyphs() []string {
	out := make([]string, 0, len(p.Stickers))
	for _, s := range p.Stickers {
		out = append(out, strings.TrimSpace(s.Glyph))
	}
	return out
}

// StickerGlyphs returns the configured palette: the [tools] list, or the
// built-in stickers when it is empty, followed by the sticker pack.
// Duplicates are left for the palette to drop.
func (c *Config) StickerGlyphs() ([]string, error) {
	glyphs := append([]string(nil), c.Tools.Stickers...)
	if len(glyphs) == 0 {
		glyphs = append(glyphs, sketch.DefaultStickers...)
	}
	if c.StickerPack == "" {
		return glyphs, nil
	}
	pack, err := LoadStickerPack(c.StickerPack)
	if err != nil {
		return glyphs, err
	}
	return append(glyphs, pack.Glyphs()...), nil
}
