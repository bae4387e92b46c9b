package main

import (
	"context"
	"strings"
	"time"

	"github.com/d2verb/keylight/internal/compositor"
)

// Highlight modes.
const (
	modeStatic = "static"
	modeBlink  = "blink"
	modeReveal = "reveal"
)

type HighlightCmd struct {
	Word     string        `arg:"" help:"Word whose keys are lit"`
	Mode     string        `help:"Animation: static, blink or reveal" enum:"static,blink,reveal" default:"static" predictor:"mode"`
	Color    string        `help:"Color as RRGGBB" default:"00FF00" predictor:"color"`
	Duration time.Duration `help:"Stop after this long (0 runs until interrupted)" default:"0s"`
}

func (c *HighlightCmd) Run(ctx context.Context, g *Globals) error {
	color, err := compositor.ParseHex(c.Color)
	if err != nil {
		return errInvalidFlag("color", c.Color, "want six hex digits such as 00FF00")
	}
	if c.Duration < 0 {
		return errInvalidFlag("duration", c.Duration.String(), "must not be negative")
	}
	frame, err := highlightFrame(c.Word, color, c.Mode)
	if err != nil {
		return err
	}

	a, err := newApp(g)
	if err != nil {
		return err
	}
	defer a.Close()
	return a.animate(ctx, c.Duration, frame)
}

// highlightFrame returns the per-frame requests lighting word in color with
// the given animation mode.
func highlightFrame(word string, color compositor.RGB, mode string) (func(time.Duration) []compositor.Request, error) {
	word = strings.ToUpper(word)

	var (
		anim     compositor.Animation
		priority = compositor.PriorityCue
	)
	switch mode {
	case modeStatic, "":
		anim = compositor.Static{}
		priority = compositor.PriorityPresent
	case modeBlink:
		anim = compositor.Blink{Period: compositor.DefaultBlinkPeriod}
	case modeReveal:
		anim = compositor.Reveal{Word: word}
	default:
		return nil, errInvalidFlag("mode", mode, "want static, blink or reveal")
	}

	reqs := compositor.Animate(compositor.WordRequests(word, color, priority), anim)
	return func(time.Duration) []compositor.Request { return reqs }, nil
}
