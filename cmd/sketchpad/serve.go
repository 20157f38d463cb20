package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/example/sketchpad/internal/config"
	"github.com/example/sketchpad/internal/web"
)

type serveCmd struct {
	*root
	fs   *flag.FlagSet
	addr string
	mdns bool
}

func (s *serveCmd) FlagSet() *flag.FlagSet { return s.fs }
func (s *serveCmd) Program() string        { return s.root.subcommand("serve") }

func parseServeCmd(args []string, r *root) (*serveCmd, error) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	c := &serveCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	addr, advertise := config.DefaultAddr, false
	if cfg := r.cfg(); cfg != nil {
		if cfg.Server.Addr != "" {
			addr = cfg.Server.Addr
		}
		advertise = cfg.Server.MDNS
	}
	fs.StringVar(&c.addr, "addr", addr, "address to listen on")
	fs.BoolVar(&c.mdns, "mdns", advertise, "advertise the server on the local network")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, &UsageError{of: c}
	}
	return c, nil
}

func (s *serveCmd) Run() error {
	setup, err := newSketchSetup(s.root.cfg())
	if err != nil {
		return err
	}
	srv, err := web.New(web.Options{
		Width:       setup.width,
		Height:      setup.height,
		ExportScale: setup.exportScale,
		Fonts:       setup.fonts,
		Theme:       s.root.currentTheme(),
		Controller:  setup.controller,
	})
	if err != nil {
		return err
	}
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.addr, err)
	}
	port := ln.Addr().(*net.TCPAddr).Port
	fmt.Fprintf(os.Stderr, "serving on http://%s/\n", ln.Addr())

	if s.mdns {
		adv, err := web.Advertise(port)
		if err != nil {
			log.Printf("mdns: %v", err)
		} else {
			defer func() {
				if err := adv.Shutdown(); err != nil {
					log.Printf("mdns shutdown: %v", err)
				}
			}()
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.Serve(ctx, ln)
}
