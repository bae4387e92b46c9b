package main

import (
	"context"
	"slices"

	"github.com/d2verb/keylight/internal/client"
	"github.com/d2verb/keylight/internal/device"
	"github.com/d2verb/keylight/internal/ui"
)

type DevicesCmd struct{}

func (c *DevicesCmd) Run(ctx context.Context, g *Globals) error {
	a, err := newApp(g)
	if err != nil {
		return err
	}
	defer a.Close()

	addr := a.cfg.Address()
	cl, err := client.Dial(ctx, a.clientOptions())
	if err != nil {
		return mapClientError(addr, err)
	}
	defer cl.Close()

	if err := cl.SetClientName(); err != nil {
		return mapClientError(addr, err)
	}
	v, err := cl.NegotiateVersion()
	if err != nil {
		return mapClientError(addr, err)
	}
	ctrls, err := cl.Controllers()
	if err != nil {
		return mapClientError(addr, err)
	}

	selected := -1
	if kb, err := device.SelectKeyboard(ctrls, a.cfg.VendorHint); err == nil {
		selected = slices.Index(ctrls, kb)
	}
	ui.PrintDevices(addr, v, ctrls, selected)
	return nil
}
