// Package clipboard publishes exported drawings to the system clipboard.
package clipboard

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"sync"

	"golang.design/x/clipboard"
)

var (
	initOnce     sync.Once
	initErr      error
	errNoDisplay = errors.New("clipboard initialization requires DISPLAY or WAYLAND_DISPLAY")
)

// needsDisplay reports whether the clipboard lives in a display server.
func needsDisplay() bool {
	switch runtime.GOOS {
	case "darwin", "windows", "ios", "android":
		return false
	}
	return true
}

func ensureInit() error {
	initOnce.Do(func() {
		if needsDisplay() && os.Getenv("DISPLAY") == "" && os.Getenv("WAYLAND_DISPLAY") == "" {
			initErr = errNoDisplay
			return
		}
		if err := clipboard.Init(); err != nil {
			initErr = fmt.Errorf("clipboard init: %w", err)
		}
	})
	return initErr
}

// WritePNG publishes already encoded PNG data.
func WritePNG(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("clipboard: empty image")
	}
	if err := ensureInit(); err != nil {
		return err
	}
	clipboard.Write(clipboard.FmtImage, data)
	return nil
}
