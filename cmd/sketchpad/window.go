package main

import (
	"flag"

	"github.com/example/sketchpad/internal/window"
)

type windowCmd struct {
	*root
	fs      *flag.FlagSet
	saveDir string
	width   int
	height  int
	copyOut bool
}

func (w *windowCmd) FlagSet() *flag.FlagSet { return w.fs }
func (w *windowCmd) Program() string        { return w.root.subcommand("window") }

func parseWindowCmd(args []string, r *root) (*windowCmd, error) {
	fs := flag.NewFlagSet("window", flag.ExitOnError)
	c := &windowCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	saveDir := "."
	if cfg := r.cfg(); cfg != nil && cfg.SaveDir != "" {
		saveDir = cfg.SaveDir
	}
	fs.StringVar(&c.saveDir, "save-dir", saveDir, "directory exports are written to")
	fs.IntVar(&c.width, "width", 0, "canvas width in pixels (default from config)")
	fs.IntVar(&c.height, "height", 0, "canvas height in pixels (default from config)")
	fs.BoolVar(&c.copyOut, "copy", false, "also copy every export to the clipboard")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, &UsageError{of: c}
	}
	return c, nil
}

func (w *windowCmd) Run() error {
	setup, err := newSketchSetup(w.root.cfg())
	if err != nil {
		return err
	}
	if w.width > 0 {
		setup.width = w.width
	}
	if w.height > 0 {
		setup.height = w.height
	}
	win := window.New(
		window.WithCanvasSize(setup.width, setup.height),
		window.WithExportScale(setup.exportScale),
		window.WithSaveDir(w.saveDir),
		window.WithCopyOnExport(w.copyOut),
		window.WithTheme(w.root.currentTheme()),
		window.WithFonts(setup.fonts),
		window.WithNotifier(w.root.alerts()),
		window.WithControllerOptions(setup.controller...),
	)
	win.Run()
	return nil
}
