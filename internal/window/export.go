package window

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/example/sketchpad/internal/sketch"
)

// exportDone is sent back to the event loop once an export finished.
type exportDone struct {
	path   string
	copied bool
	err    error
}

// encodeExport encodes img once so the same bytes can be saved and copied.
func encodeExport(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode export: %w", err)
	}
	return buf.Bytes(), nil
}

// saveExport writes data as the export file inside dir, creating dir when
// needed, and returns the path written.
func saveExport(dir string, data []byte) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create %s: %w", dir, err)
	}
	path := filepath.Join(dir, sketch.ExportFilename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

func (e exportDone) message() string {
	switch {
	case e.err != nil:
		return "export failed: " + e.err.Error()
	case e.path == "":
		return "export copied to clipboard"
	case e.copied:
		return "saved and copied " + e.path
	default:
		return "saved " + e.path
	}
}
