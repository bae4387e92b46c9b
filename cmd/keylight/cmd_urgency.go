package main

import (
	"context"
	"strings"
	"time"

	"github.com/d2verb/keylight/internal/compositor"
)

// urgencyCue is the urgency at which the space bar starts blinking gold.
const urgencyCue = 0.9

type UrgencyCmd struct {
	Words    []string      `arg:"" optional:"" help:"Words to light (default KEYLIGHT)"`
	TTL      time.Duration `name:"ttl" help:"Time for a word to age from green to red" default:"10s"`
	Duration time.Duration `help:"Stop after this long (0 runs until interrupted)" default:"0s"`
}

func (c *UrgencyCmd) Run(ctx context.Context, g *Globals) error {
	if c.TTL <= 0 {
		return errInvalidFlag("ttl", c.TTL.String(), "must be positive")
	}
	if c.Duration < 0 {
		return errInvalidFlag("duration", c.Duration.String(), "must not be negative")
	}
	words := c.Words
	if len(words) == 0 {
		words = []string{"KEYLIGHT"}
	}

	a, err := newApp(g)
	if err != nil {
		return err
	}
	defer a.Close()
	return a.animate(ctx, c.Duration, urgencyFrame(words, c.TTL))
}

// urgencyFrame ages each word over ttl and starts it again once it expires.
// Words are staggered evenly across ttl so they never share an age.
func urgencyFrame(words []string, ttl time.Duration) func(time.Duration) []compositor.Request {
	upper := make([]string, len(words))
	for i, w := range words {
		upper[i] = strings.ToUpper(w)
	}
	stagger := ttl / time.Duration(len(upper))
	glow := compositor.GlowRequest()
	glow.Anim = compositor.Blink{Period: compositor.DefaultBlinkPeriod}

	return func(elapsed time.Duration) []compositor.Request {
		aged := make([]compositor.AgedWord, len(upper))
		peak := 0.0
		for i, w := range upper {
			age := (elapsed + time.Duration(i)*stagger) % ttl
			aged[i] = compositor.AgedWord{Text: w, Age: age, TTL: ttl}
			peak = max(peak, compositor.Urgency(age, ttl))
		}
		reqs := compositor.UrgencyRequests(aged, compositor.PriorityPresent)
		if peak >= urgencyCue {
			reqs = append(reqs, glow)
		}
		return reqs
	}
}
