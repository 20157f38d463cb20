package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/example/sketchpad/internal/config"
)

type stickersCmd struct {
	*root
	fs   *flag.FlagSet
	pack string
}

func (s *stickersCmd) FlagSet() *flag.FlagSet { return s.fs }
func (s *stickersCmd) Program() string        { return s.root.subcommand("stickers") }

func parseStickersCmd(args []string, r *root) (*stickersCmd, error) {
	fs := flag.NewFlagSet("stickers", flag.ExitOnError)
	c := &stickersCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.pack, "pack", "", "list a sticker pack file instead of the configured palette")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, &UsageError{of: c}
	}
	return c, nil
}

func (s *stickersCmd) Run() error {
	if s.pack != "" {
		pack, err := config.LoadStickerPack(s.pack)
		if err != nil {
			return err
		}
		if pack.Name != "" {
			fmt.Fprintf(os.Stderr, "pack %s\n", pack.Name)
		}
		for _, st := range pack.Stickers {
			fmt.Printf("%s\t%s\n", st.Glyph, st.Name)
		}
		return nil
	}
	cfg := s.root.cfg()
	if cfg == nil {
		cfg = config.New()
	}
	glyphs, err := cfg.StickerGlyphs()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: sticker pack: %v\n", err)
	}
	seen := map[string]bool{}
	for _, g := range glyphs {
		if g == "" || seen[g] {
			continue
		}
		seen[g] = true
		fmt.Println(g)
	}
	return nil
}
