package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/example/sketchpad/internal/web"
)

type discoverCmd struct {
	*root
	fs      *flag.FlagSet
	timeout time.Duration
}

func (d *discoverCmd) FlagSet() *flag.FlagSet { return d.fs }
func (d *discoverCmd) Program() string        { return d.root.subcommand("discover") }

func parseDiscoverCmd(args []string, r *root) (*discoverCmd, error) {
	fs := flag.NewFlagSet("discover", flag.ExitOnError)
	c := &discoverCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	fs.DurationVar(&c.timeout, "timeout", 2*time.Second, "how long to listen for answers")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if c.timeout <= 0 {
		return nil, fmt.Errorf("timeout must be positive, got %v", c.timeout)
	}
	return c, nil
}

func (d *discoverCmd) Run() error {
	peers, err := web.Discover(d.timeout)
	if err != nil {
		return err
	}
	if len(peers) == 0 {
		fmt.Println("no sketchpad servers found")
		return nil
	}
	for _, p := range peers {
		fmt.Printf("%s\t%s\n", p.Name, p.URL())
	}
	return nil
}
