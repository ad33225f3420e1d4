package main

import (
	"errors"
	"fmt"
	"os"

	"pomo/internal/config"
)

// ConfigCmd groups the configuration commands.
type ConfigCmd struct {
	Show ConfigShowCmd `cmd:"" default:"1" help:"Print the effective configuration."`
	Init ConfigInitCmd `cmd:"" help:"Write the default configuration file."`
}

// ConfigShowCmd prints the merged configuration as YAML.
type ConfigShowCmd struct{}

func (c *ConfigShowCmd) Run(g *Globals) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	data, err := cfg.Marshal()
	if err != nil {
		return err
	}
	fmt.Fprintf(g.out(), "# %s\n", config.Path())
	_, err = g.out().Write(data)
	return err
}

// ConfigInitCmd writes the default configuration file.
type ConfigInitCmd struct {
	Force bool `help:"Overwrite an existing configuration file."`
}

func (c *ConfigInitCmd) Run(g *Globals) error {
	path := config.Path()
	if path == "" {
		return errors.New("cannot determine the configuration directory")
	}
	if !c.Force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}
	if err := config.Default().Save(); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	fmt.Fprintf(g.out(), "Wrote %s\n", path)
	return nil
}
