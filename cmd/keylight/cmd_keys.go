package main

import (
	"context"

	"github.com/d2verb/keylight/internal/ui"
)

type KeysCmd struct{}

func (c *KeysCmd) Run(ctx context.Context, g *Globals) error {
	a, err := newApp(g)
	if err != nil {
		return err
	}
	defer a.Close()

	s, err := a.connect(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	ui.PrintKeyMap(s.DeviceName(), s.Keys())
	return nil
}
