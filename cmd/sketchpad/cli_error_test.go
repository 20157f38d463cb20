package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/sketchpad/internal/config"
	"github.com/example/sketchpad/internal/theme"
)

func TestRootWithoutCommand(t *testing.T) {
	err := newRoot().Run(nil)
	var uerr *UsageError
	if !errors.As(err, &uerr) {
		t.Fatalf("Run(nil) = %v, want UsageError", err)
	}
	help := uerr.Error()
	for _, want := range []string{"Usage: sketchpad", "render", "-theme"} {
		if !strings.Contains(help, want) {
			t.Errorf("help lacks %q:\n%s", want, help)
		}
	}
}

func TestRootUnknownCommand(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	err := newRoot().Run([]string{"paint"})
	var uerr *UsageError
	if !errors.As(err, &uerr) {
		t.Fatalf("Run(paint) = %v, want UsageError", err)
	}
}

func TestRenderTooManyArgs(t *testing.T) {
	_, err := parseRenderCmd([]string{"a", "b"}, nil)
	var uerr *UsageError
	if !errors.As(err, &uerr) {
		t.Fatalf("parse = %v, want UsageError", err)
	}
	if help := uerr.Error(); !strings.Contains(help, "sketchpad render") || !strings.Contains(help, "-pdf") {
		t.Errorf("render help = %q", help)
	}
}

func TestDiscoverRejectsTimeout(t *testing.T) {
	if _, err := parseDiscoverCmd([]string{"-timeout", "0s"}, nil); err == nil {
		t.Fatalf("zero timeout accepted")
	}
}

func TestConfigRequiresSubcommand(t *testing.T) {
	cmd, err := parseConfigCmd(nil, nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	var uerr *UsageError
	if err := cmd.Run(); !errors.As(err, &uerr) {
		t.Fatalf("Run = %v, want UsageError", err)
	}
	cmd, _ = parseConfigCmd([]string{"reset"}, nil)
	if err := cmd.Run(); err == nil || !strings.Contains(err.Error(), "unknown config command") {
		t.Fatalf("Run(reset) = %v", err)
	}
}

func TestConfigSave(t *testing.T) {
	cfg := config.New()
	cfg.SaveDir = "/tmp/sketches"
	cfg.Canvas.Width = 320
	r := &root{program: "sketchpad", config: cfg}
	path := filepath.Join(t.TempDir(), "nested", "config.rc")

	cmd, err := parseConfigCmd([]string{"-o", path, "save"}, r)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := cmd.Run(); err != nil {
		t.Fatalf("save: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	got, err := config.Parse(f)
	if err != nil {
		t.Fatalf("parse saved config: %v", err)
	}
	if got.SaveDir != "/tmp/sketches" || got.Canvas.Width != 320 {
		t.Errorf("saved config = %+v", got)
	}
}

func TestResolveTheme(t *testing.T) {
	custom := theme.Default()
	custom.Name = "mine"
	cfg := config.New()
	cfg.Theme = "default"
	cfg.Themes["mine"] = custom

	tests := []struct {
		name string
		cli  string
		env  string
		want string
	}{
		{"config", "", "", "Default"},
		{"env beats config", "", "dark", "Dark"},
		{"cli beats env", "default", "dark", "Default"},
		{"config theme section", "mine", "", "mine"},
		{"unknown falls back", "no-such-theme", "", "Default"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("SKETCHPAD_THEME", tt.env)
			if got := resolveTheme(tt.cli, cfg).Name; got != tt.want {
				t.Errorf("theme = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSketchSetupDefaults(t *testing.T) {
	cfg := config.New()
	cfg.Canvas.Width = 0
	cfg.Tools.Stickers = []string{"⭐"}
	s, err := newSketchSetup(cfg)
	if err != nil {
		t.Fatalf("newSketchSetup: %v", err)
	}
	if s.width != config.DefaultWidth || s.height != config.DefaultHeight || s.exportScale != 4 {
		t.Errorf("setup = %dx%d scale %v", s.width, s.height, s.exportScale)
	}
	if len(s.controller) != 2 {
		t.Errorf("controller options = %d", len(s.controller))
	}

	cfg.Font = filepath.Join(t.TempDir(), "missing.ttf")
	if _, err := newSketchSetup(cfg); err == nil {
		t.Errorf("missing font accepted")
	}
	cfg.Font = ""
	cfg.EmojiFont = filepath.Join(t.TempDir(), "missing-emoji.ttf")
	if _, err := newSketchSetup(cfg); err == nil {
		t.Errorf("missing emoji font accepted")
	}
}
