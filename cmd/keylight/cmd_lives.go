package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/d2verb/keylight/internal/compositor"
)

// maxLivesKeys is the number of digit keys available for a life counter.
const maxLivesKeys = 9

type LivesCmd struct {
	Lives    int           `arg:"" help:"Lives remaining"`
	Max      int           `help:"Lives at the start" default:"5"`
	Duration time.Duration `help:"Stop after this long (0 runs until interrupted)" default:"0s"`
}

func (c *LivesCmd) Run(ctx context.Context, g *Globals) error {
	if c.Max < 1 || c.Max > maxLivesKeys {
		return errInvalidFlag("max", strconv.Itoa(c.Max), fmt.Sprintf("must be between 1 and %d", maxLivesKeys))
	}
	if c.Lives < 0 || c.Lives > c.Max {
		return errInvalidFlag("lives", strconv.Itoa(c.Lives), fmt.Sprintf("must be between 0 and %d", c.Max))
	}
	if c.Duration < 0 {
		return errInvalidFlag("duration", c.Duration.String(), "must not be negative")
	}

	a, err := newApp(g)
	if err != nil {
		return err
	}
	defer a.Close()

	reqs := compositor.LivesRequests(c.Lives, c.Max)
	return a.animate(ctx, c.Duration, func(time.Duration) []compositor.Request { return reqs })
}
