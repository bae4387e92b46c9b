package session

import (
	"context"
	"log/slog"

	"github.com/d2verb/keylight/internal/compositor"
)

// Renderer is what a render loop draws on: a connected Session, or Discard
// when no hardware is available.
type Renderer interface {
	DeviceName() string
	LEDForKey(key rune) (uint32, bool)
	Render(frame compositor.Frame) error
	Close() error
}

var (
	_ Renderer = (*Session)(nil)
	_ Renderer = Discard{}
)

// Discard is a Renderer without hardware. No key has an LED and every
// render succeeds without doing anything.
type Discard struct{}

func (Discard) DeviceName() string { return "no hardware" }

func (Discard) LEDForKey(rune) (uint32, bool) { return 0, false }

func (Discard) Render(compositor.Frame) error { return nil }

func (Discard) Close() error { return nil }

// ConnectOrDiscard connects like Connect. When that fails it logs the error
// and returns Discard together with the error, so callers can warn the user
// and carry on without lighting.
func ConnectOrDiscard(ctx context.Context, cfg Config, logger *slog.Logger) (Renderer, error) {
	if cfg.Client.Logger == nil {
		cfg.Client.Logger = logger
	}
	s, err := Connect(ctx, cfg)
	if err != nil {
		if logger != nil {
			logger.Warn("continuing without hardware", "error", err)
		}
		return Discard{}, err
	}
	return s, nil
}
