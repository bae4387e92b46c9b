package main

import (
	"context"
	"fmt"
	"os"

	"github.com/d2verb/keylight/internal/config"
	"github.com/d2verb/keylight/internal/editor"
	"github.com/d2verb/keylight/internal/ui"
)

type ConfigCmd struct {
	Show ConfigShowCmd `cmd:"" default:"1" help:"Show the effective settings"`
	Init ConfigInitCmd `cmd:"" help:"Write a config file with every default"`
	Edit ConfigEditCmd `cmd:"" help:"Open the config file in $EDITOR"`
}

// configPath returns the config file the globals point at.
func configPath(g *Globals) (string, error) {
	if g.Config != "" {
		return g.Config, nil
	}
	paths, err := config.GetPaths()
	if err != nil {
		return "", fmt.Errorf("get paths: %w", err)
	}
	return paths.Config, nil
}

type ConfigShowCmd struct{}

func (c *ConfigShowCmd) Run(g *Globals) error {
	path, err := configPath(g)
	if err != nil {
		return err
	}
	cfg, err := loadSettings(g)
	if err != nil {
		return err
	}
	ui.PrintSettings(path, ui.Settings{
		Address:    cfg.Address(),
		Timeout:    cfg.Timeout,
		ClientName: cfg.ClientName,
		VendorHint: cfg.VendorHint,
		Tick:       cfg.Tick,
		LogLevel:   cfg.LogLevel,
		LogFile:    cfg.LogFile,
	})
	return nil
}

type ConfigInitCmd struct{}

func (c *ConfigInitCmd) Run(g *Globals) error {
	path, err := configPath(g)
	if err != nil {
		return err
	}
	created, err := config.Init(path)
	if err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	if !created {
		ui.PrintInfo("Config already exists: " + path)
		return nil
	}
	ui.PrintSuccess("Wrote " + path)
	return nil
}

type ConfigEditCmd struct{}

// Run opens the config file, writing the defaults first if it is missing,
// and validates it once the editor exits.
func (c *ConfigEditCmd) Run(ctx context.Context, g *Globals) error {
	path, err := configPath(g)
	if err != nil {
		return err
	}
	if _, err := config.Init(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	ed, err := editor.Find(lookupEnv)
	if err != nil {
		return err
	}
	if err := editor.Open(ctx, ed, path, editor.Streams{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}); err != nil {
		return err
	}

	if _, err := loadSettings(g); err != nil {
		return err
	}
	ui.PrintSuccess("Config is valid")
	return nil
}
