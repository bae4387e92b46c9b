package session

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/d2verb/keylight/internal/compositor"
)

// DefaultTick is the render period.
const DefaultTick = 33 * time.Millisecond

// MaxRenderFailures is the number of consecutive failed renders after which
// Run gives up.
const MaxRenderFailures = 5

// Loop renders a frame per tick until its context is cancelled, its deadline
// passes or rendering keeps failing.
type Loop struct {
	Tick time.Duration
	// Deadline ends the loop after this much time; zero runs until cancelled.
	Deadline time.Duration
	// Frame returns the requests for the frame at elapsed since the start.
	Frame  func(elapsed time.Duration) []compositor.Request
	Logger *slog.Logger
}

// Run drives r from the calling goroutine. r is closed before Run returns,
// whatever the reason, so the keyboard is always left dark. Cancellation and
// the deadline end the loop without error; they are checked between ticks.
func (l *Loop) Run(ctx context.Context, r Renderer, comp *compositor.Compositor) error {
	defer r.Close()

	logger := l.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	tick := l.Tick
	if tick <= 0 {
		tick = DefaultTick
	}
	if comp.Start.IsZero() {
		comp.Start = time.Now()
	}

	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	failures := 0
	for {
		now := time.Now()
		elapsed := now.Sub(comp.Start)
		if l.Deadline > 0 && elapsed >= l.Deadline {
			logger.Debug("loop deadline reached", "elapsed", elapsed)
			return nil
		}

		var reqs []compositor.Request
		if l.Frame != nil {
			reqs = l.Frame(elapsed)
		}
		if err := r.Render(comp.Compose(now, reqs)); err != nil {
			failures++
			logger.Warn("render failed", "error", err, "consecutive", failures)
			if failures >= MaxRenderFailures {
				return fmt.Errorf("render failed %d times in a row: %w", failures, err)
			}
		} else {
			failures = 0
		}

		select {
		case <-ctx.Done():
			logger.Debug("loop cancelled")
			return nil
		case <-ticker.C:
		}
	}
}
