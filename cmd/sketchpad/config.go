package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/example/sketchpad/internal/config"
)

type configCmd struct {
	*root
	fs     *flag.FlagSet
	output string
}

func (c *configCmd) FlagSet() *flag.FlagSet { return c.fs }
func (c *configCmd) Program() string        { return c.root.subcommand("config") }

func parseConfigCmd(args []string, r *root) (*configCmd, error) {
	fs := flag.NewFlagSet("config", flag.ExitOnError)
	c := &configCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.output, "o", "", "file written by save (default: the loaded config or ~/.config/sketchpad/config.rc)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *configCmd) Run() error {
	args := c.fs.Args()
	if len(args) < 1 {
		return &UsageError{of: c}
	}

	switch args[0] {
	case "print":
		return c.runPrint()
	case "save":
		return c.runSave()
	default:
		return fmt.Errorf("unknown config command: %s", args[0])
	}
}

func (c *configCmd) loaded() *config.Config {
	if cfg := c.root.cfg(); cfg != nil {
		return cfg
	}
	return config.New()
}

func (c *configCmd) runPrint() error {
	fmt.Print(c.loaded().String())
	return nil
}

func (c *configCmd) runSave() error {
	path := c.output
	if path == "" {
		configPath := ""
		if c.root != nil {
			configPath = c.root.configPath
		}
		path = config.NewLoader(version, configPath).GetConfigPath()
	}
	if path == "" {
		path = config.DefaultPath()
	}
	if path == "" {
		return fmt.Errorf("no config path: home directory unknown")
	}
	if err := config.Save(c.loaded(), path); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Configuration saved to %s\n", path)
	return nil
}
