package main

import (
	"context"

	"github.com/d2verb/keylight/internal/ui"
)

type OffCmd struct{}

// Run connects and closes the session straight away. Closing a session
// always writes one all-off frame.
func (c *OffCmd) Run(ctx context.Context, g *Globals) error {
	a, err := newApp(g)
	if err != nil {
		return err
	}
	defer a.Close()

	s, err := a.connect(ctx)
	if err != nil {
		return err
	}
	if err := s.Close(); err != nil {
		return err
	}
	ui.PrintSuccess("Turned off " + s.DeviceName())
	return nil
}
