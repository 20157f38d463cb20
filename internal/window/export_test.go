package window

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestSaveExport(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 4))
	data, err := encodeExport(img)
	if err != nil {
		t.Fatalf("encodeExport: %v", err)
	}
	dir := filepath.Join(t.TempDir(), "exports")
	path, err := saveExport(dir, data)
	if err != nil {
		t.Fatalf("saveExport: %v", err)
	}
	if filepath.Base(path) != "canvas_export.png" {
		t.Errorf("path = %s", path)
	}
	written, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	decoded, err := png.Decode(bytes.NewReader(written))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Bounds() != img.Bounds() {
		t.Errorf("bounds = %v", decoded.Bounds())
	}
}

func TestSaveExportIntoFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "not-a-dir")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := saveExport(file, []byte("x")); err == nil {
		t.Fatalf("saveExport below a regular file succeeded")
	}
}

func TestExportDoneMessage(t *testing.T) {
	tests := []struct {
		done exportDone
		want string
	}{
		{exportDone{path: "out/canvas_export.png"}, "saved out/canvas_export.png"},
		{exportDone{path: "out/canvas_export.png", copied: true}, "saved and copied out/canvas_export.png"},
		{exportDone{copied: true}, "export copied to clipboard"},
		{exportDone{err: errors.New("disk full")}, "export failed: disk full"},
	}
	for _, tt := range tests {
		if got := tt.done.message(); got != tt.want {
			t.Errorf("message() = %q, want %q", got, tt.want)
		}
	}
}
