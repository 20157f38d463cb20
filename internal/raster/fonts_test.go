package raster

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/math/fixed"
)

func writeFont(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "font.ttf")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFontsChain(t *testing.T) {
	mono := writeFont(t, gomono.TTF)
	tests := []struct {
		name      string
		path      string
		fallbacks []string
		want      int
		wantErr   bool
	}{
		{name: "builtin", want: 1},
		{name: "builtin with fallback", fallbacks: []string{mono}, want: 2},
		{name: "blank fallback skipped", fallbacks: []string{""}, want: 1},
		{name: "file with fallback", path: mono, fallbacks: []string{mono}, want: 2},
		{name: "missing fallback", fallbacks: []string{"/nonexistent/emoji.ttf"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := LoadFonts(tt.path, tt.fallbacks...)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("LoadFonts succeeded")
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadFonts: %v", err)
			}
			if f.Len() != tt.want {
				t.Errorf("chain length = %d, want %d", f.Len(), tt.want)
			}
		})
	}
}

func TestRunsKeepUncoveredRunesOnPrimary(t *testing.T) {
	f, err := LoadFonts("", writeFont(t, gomono.TTF))
	if err != nil {
		t.Fatalf("LoadFonts: %v", err)
	}
	f.mu.Lock()
	runs := f.runs("A🍕b")
	f.mu.Unlock()
	if len(runs) != 1 || runs[0].font != 0 || runs[0].text != "A🍕b" {
		t.Fatalf("runs = %+v", runs)
	}
	w, _, _, err := f.MeasureText("A🍕b", 24)
	if err != nil || w <= 0 {
		t.Fatalf("MeasureText = %d, %v", w, err)
	}
}

func TestEmojiFallbackDrawsGlyph(t *testing.T) {
	path, ok := SystemEmojiFont()
	if !ok {
		t.Skip("no outline emoji font installed")
	}
	f, err := LoadFonts("", path)
	if err != nil {
		t.Fatalf("LoadFonts(%s): %v", path, err)
	}
	f.mu.Lock()
	runs := f.runs("A🍕")
	f.mu.Unlock()
	if len(runs) != 2 || runs[0].font != 0 || runs[1].font != 1 || runs[1].text != "🍕" {
		t.Fatalf("runs = %+v", runs)
	}
	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
	if err := f.DrawString(img, color.Black, 32, fixed.P(4, 48), "🍕"); err != nil {
		t.Fatalf("DrawString: %v", err)
	}
	var painted int
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0 {
			painted++
		}
	}
	if painted == 0 {
		t.Fatalf("emoji painted nothing")
	}
}
