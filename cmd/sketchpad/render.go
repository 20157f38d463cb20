package main

import (
	"bufio"
	"bytes"
	"flag"
	"fmt"
	"image/png"
	"io"
	"math/rand/v2"
	"os"
	"strconv"
	"strings"

	"github.com/example/sketchpad/internal/export"
	"github.com/example/sketchpad/internal/shadow"
	"github.com/example/sketchpad/internal/sketch"
)

type renderCmd struct {
	*root
	fs     *flag.FlagSet
	output string
	pdf    bool
	shadow bool
	seed   uint64
	script string
}

func (c *renderCmd) FlagSet() *flag.FlagSet { return c.fs }
func (c *renderCmd) Program() string        { return c.root.subcommand("render") }

func parseRenderCmd(args []string, r *root) (*renderCmd, error) {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	c := &renderCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.output, "o", "", "output file (default canvas_export.png, or canvas_export.pdf with -pdf)")
	fs.BoolVar(&c.pdf, "pdf", false, "write a PDF instead of a PNG")
	fs.BoolVar(&c.shadow, "shadow", false, "add a drop shadow under the drawing (PNG only)")
	fs.Uint64Var(&c.seed, "seed", 0, "seed for stroke colors; 0 picks a random seed")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	switch fs.NArg() {
	case 0:
		c.script = "-"
	case 1:
		c.script = fs.Arg(0)
	default:
		return nil, &UsageError{of: c}
	}
	if c.output == "" {
		c.output = sketch.ExportFilename
		if c.pdf {
			c.output = export.PDFFilename
		}
	}
	return c, nil
}

func (c *renderCmd) Run() error {
	var in io.Reader = os.Stdin
	if c.script != "-" {
		f, err := os.Open(c.script)
		if err != nil {
			return fmt.Errorf("open script: %w", err)
		}
		defer f.Close()
		in = f
	}

	setup, err := newSketchSetup(c.root.cfg())
	if err != nil {
		return err
	}
	opts := append([]sketch.Option(nil), setup.controller...)
	if c.seed != 0 {
		opts = append(opts, sketch.WithRand(rand.New(rand.NewPCG(c.seed, c.seed))))
	}
	ctrl := sketch.NewController(opts...)
	if err := replay(ctrl, in); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := c.write(&buf, ctrl.Scene(), setup); err != nil {
		return err
	}
	if c.output == "-" {
		_, err := os.Stdout.Write(buf.Bytes())
		return err
	}
	if err := os.WriteFile(c.output, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", c.output, err)
	}
	fmt.Fprintf(os.Stderr, "wrote %s (%d entities)\n", c.output, ctrl.Scene().Len())
	return nil
}

func (c *renderCmd) write(w io.Writer, scene *sketch.Scene, setup *sketchSetup) error {
	if c.pdf {
		return export.WritePDF(w, scene, setup.width, setup.height)
	}
	if !c.shadow {
		return setup.exporter().WritePNG(w, scene)
	}
	img, err := setup.exporter().Render(scene)
	if err != nil {
		return err
	}
	shadowed, _ := shadow.Apply(img, shadow.Export())
	if err := png.Encode(w, shadowed); err != nil {
		return fmt.Errorf("encode export: %w", err)
	}
	return nil
}

// replay feeds a script to ctrl, one command per line. Blank lines and
// lines starting with # are skipped.
func replay(ctrl *sketch.Controller, r io.Reader) error {
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		if err := step(ctrl, text); err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read script: %w", err)
	}
	return nil
}

func step(ctrl *sketch.Controller, text string) error {
	name, rest, _ := strings.Cut(text, " ")
	rest = strings.TrimSpace(rest)
	switch name {
	case "down", "move":
		x, y, err := parseXY(rest)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		if name == "down" {
			ctrl.PointerDown(x, y)
		} else {
			ctrl.PointerMove(x, y)
		}
	case "up":
		ctrl.PointerUp()
	case "thin":
		ctrl.SelectThinStroke()
	case "thick":
		ctrl.SelectThickStroke()
	case "sticker":
		if !ctrl.SelectSticker(rest) {
			return fmt.Errorf("sticker: glyph required")
		}
	case "custom":
		ctrl.AddCustomSticker(rest)
	case "undo":
		ctrl.Undo()
	case "redo":
		ctrl.Redo()
	case "clear":
		ctrl.Clear()
	default:
		return fmt.Errorf("unknown command %q", name)
	}
	return nil
}

func parseXY(s string) (float64, float64, error) {
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("want x y, got %q", s)
	}
	x, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("x: %w", err)
	}
	y, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("y: %w", err)
	}
	return x, y, nil
}
