package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"os"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// EmojiFontPaths lists monochrome outline emoji fonts found on common
// systems. Colour bitmap fonts such as Noto Color Emoji cannot be
// rasterized by opentype and are not listed.
var EmojiFontPaths = []string{
	"/usr/share/fonts/truetype/noto/NotoEmoji-Regular.ttf",
	"/usr/share/fonts/noto/NotoEmoji-Regular.ttf",
	"/usr/share/fonts/google-noto-emoji/NotoEmoji-Regular.ttf",
	"/usr/share/fonts/truetype/ancient-scripts/Symbola_hint.ttf",
	"/usr/share/fonts/TTF/Symbola.ttf",
	"/Library/Fonts/Symbola.ttf",
	`C:\Windows\Fonts\seguiemj.ttf`,
	`C:\Windows\Fonts\seguisym.ttf`,
}

// SystemEmojiFont returns the first entry of EmojiFontPaths that exists.
func SystemEmojiFont() (string, bool) {
	for _, p := range EmojiFontPaths {
		if st, err := os.Stat(p); err == nil && !st.IsDir() {
			return p, true
		}
	}
	return "", false
}

type faceKey struct {
	font int
	size float64
}

// Fonts hands out faces of a typeface chain, cached per pixel size. Each
// rune is drawn with the first typeface in the chain that has a glyph for it.
type Fonts struct {
	chain []*opentype.Font
	faces sync.Map // map[faceKey]font.Face

	// mu serialises glyph lookup and rasterization; faces and buf are not
	// safe for concurrent use.
	mu  sync.Mutex
	buf sfnt.Buffer
}

var (
	defaultOnce  sync.Once
	defaultFonts *Fonts
	defaultErr   error
)

// DefaultFonts returns the shared Go Regular typeface.
func DefaultFonts() (*Fonts, error) {
	defaultOnce.Do(func() {
		f, err := opentype.Parse(goregular.TTF)
		if err != nil {
			defaultErr = fmt.Errorf("parse builtin font: %w", err)
			return
		}
		defaultFonts = &Fonts{chain: []*opentype.Font{f}}
	})
	return defaultFonts, defaultErr
}

// LoadFonts reads a TrueType or OpenType file followed by fallback
// typefaces tried for runes it lacks. An empty path selects the builtin
// typeface.
func LoadFonts(path string, fallbacks ...string) (*Fonts, error) {
	var primary *opentype.Font
	if path == "" {
		def, err := DefaultFonts()
		if err != nil {
			return nil, err
		}
		if len(fallbacks) == 0 {
			return def, nil
		}
		primary = def.chain[0]
	} else {
		f, err := parseFontFile(path)
		if err != nil {
			return nil, err
		}
		primary = f
	}
	fonts := &Fonts{chain: []*opentype.Font{primary}}
	for _, fb := range fallbacks {
		if fb == "" {
			continue
		}
		f, err := parseFontFile(fb)
		if err != nil {
			return nil, err
		}
		fonts.chain = append(fonts.chain, f)
	}
	return fonts, nil
}

func parseFontFile(path string) (*opentype.Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font: %w", err)
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font %s: %w", path, err)
	}
	return f, nil
}

// Len reports the number of typefaces in the chain.
func (f *Fonts) Len() int {
	if f == nil {
		return 0
	}
	return len(f.chain)
}

// Face returns a primary face for size pixels. Sizes are rounded to 1/100 px
// so near-equal requests share a face.
func (f *Fonts) Face(size float64) (font.Face, error) {
	return f.face(0, size)
}

func (f *Fonts) face(i int, size float64) (font.Face, error) {
	if f == nil || len(f.chain) == 0 {
		return nil, fmt.Errorf("text font not initialised")
	}
	if size <= 0 {
		size = 10
	}
	size = math.Round(size*100) / 100
	key := faceKey{font: i, size: size}
	if face, ok := f.faces.Load(key); ok {
		return face.(font.Face), nil
	}
	face, err := opentype.NewFace(f.chain[i], &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingNone})
	if err != nil {
		return nil, err
	}
	actual, _ := f.faces.LoadOrStore(key, face)
	return actual.(font.Face), nil
}

type textRun struct {
	font int
	text string
}

// runs splits text into spans drawn by the same typeface. Runes no typeface
// covers stay with the primary one. f.mu must be held.
func (f *Fonts) runs(text string) []textRun {
	if len(f.chain) == 1 {
		return []textRun{{text: text}}
	}
	var out []textRun
	start, cur := 0, -1
	for i, r := range text {
		idx := 0
		for j, tf := range f.chain {
			if g, err := tf.GlyphIndex(&f.buf, r); err == nil && g != 0 {
				idx = j
				break
			}
		}
		if idx != cur {
			if cur >= 0 {
				out = append(out, textRun{font: cur, text: text[start:i]})
			}
			start, cur = i, idx
		}
	}
	if cur >= 0 {
		out = append(out, textRun{font: cur, text: text[start:]})
	}
	return out
}

// MeasureText returns the advance width of text at size pixels along with
// the ascent and descent of the primary face.
func (f *Fonts) MeasureText(text string, size float64) (width, ascent, descent int, err error) {
	primary, err := f.Face(size)
	if err != nil {
		return 0, 0, 0, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var adv fixed.Int26_6
	for _, run := range f.runs(text) {
		face, err := f.face(run.font, size)
		if err != nil {
			return 0, 0, 0, err
		}
		adv += font.MeasureString(face, run.text)
	}
	m := primary.Metrics()
	return adv.Ceil(), m.Ascent.Ceil(), m.Descent.Ceil(), nil
}

// DrawString draws text onto dst with its baseline origin at dot.
func (f *Fonts) DrawString(dst draw.Image, col color.Color, size float64, dot fixed.Point26_6, text string) error {
	if _, err := f.Face(size); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(col), Dot: dot}
	for _, run := range f.runs(text) {
		face, err := f.face(run.font, size)
		if err != nil {
			return err
		}
		d.Face = face
		d.DrawString(run.text)
	}
	return nil
}
