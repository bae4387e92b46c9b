// Package session owns one connection to the daemon for the lifetime of a
// lighting session: it performs the handshake, picks the keyboard, keeps the
// LED frame buffer and guarantees the keyboard is turned off on the way out.
//
// A Session is owned by a single goroutine.
package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/d2verb/keylight/internal/client"
	"github.com/d2verb/keylight/internal/compositor"
	"github.com/d2verb/keylight/internal/device"
	"github.com/d2verb/keylight/internal/wire"
)

// Config configures Connect.
type Config struct {
	Client client.Options
	// VendorHint prefers a keyboard whose vendor or name contains it.
	VendorHint string
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{Client: client.DefaultOptions(), VendorHint: device.DefaultVendorHint}
}

// Session is a connected keyboard ready for rendering.
type Session struct {
	client *client.Client
	device *wire.Controller
	keys   *device.KeyMap
	buf    []uint32
	logger *slog.Logger

	closeOnce sync.Once
	closed    bool
	closeErr  error
}

// Connect performs the full handshake and returns a session driving the
// selected keyboard. On failure it returns a *ConnectError and leaves no
// connection open.
func Connect(ctx context.Context, cfg Config) (*Session, error) {
	logger := cfg.Client.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	id := uuid.NewString()
	logger = logger.With("component", "session", "session", id)
	cfg.Client.Logger = logger

	c, err := client.Dial(ctx, cfg.Client)
	if err != nil {
		return nil, &ConnectError{Kind: KindTransport, Err: err}
	}

	s, err := handshake(c, cfg, logger)
	if err != nil {
		c.Close()
		logger.Warn("connect failed", "error", err)
		return nil, err
	}
	logger.Info("session started", "device", s.DeviceName(), "leds", len(s.buf), "keys", s.keys.Len(), "version", c.Version())
	return s, nil
}

func handshake(c *client.Client, cfg Config, logger *slog.Logger) (*Session, error) {
	if err := c.SetClientName(); err != nil {
		return nil, classify(err)
	}
	if _, err := c.NegotiateVersion(); err != nil {
		return nil, classify(err)
	}

	controllers, err := c.Controllers()
	if err != nil {
		return nil, classify(err)
	}
	if len(controllers) == 0 {
		return nil, &ConnectError{Kind: KindNoControllers, Err: errors.New("daemon reports zero controllers")}
	}

	kb, err := device.SelectKeyboard(controllers, cfg.VendorHint)
	if err != nil {
		return nil, &ConnectError{Kind: KindNoKeyboard, Err: err}
	}
	if err := c.SetCustomMode(kb.Index); err != nil {
		return nil, classify(err)
	}

	keys := device.BuildKeyMap(kb.LEDNames, kb.LEDAltNames)
	if keys.Len() == 0 {
		return nil, &ConnectError{Kind: KindNoUsableLEDs, Err: errors.New(kb.DisplayName() + ": no LED name maps to a key")}
	}

	return &Session{
		client: c,
		device: kb,
		keys:   keys,
		buf:    make([]uint32, kb.LEDCount()),
		logger: logger.With("device", kb.Index),
	}, nil
}

func classify(err error) error {
	switch {
	case client.IsDeviceError(err):
		return &ConnectError{Kind: KindMalformedDevice, Err: err}
	case wire.IsProtocolError(err):
		return &ConnectError{Kind: KindProtocol, Err: err}
	default:
		return &ConnectError{Kind: KindTransport, Err: err}
	}
}

// DeviceName returns the display name of the driven keyboard.
func (s *Session) DeviceName() string { return s.device.DisplayName() }

// LEDForKey returns the LED index for a key, if the keyboard has one.
func (s *Session) LEDForKey(key rune) (uint32, bool) { return s.keys.Lookup(key) }

// LEDCount returns the size of the frame buffer.
func (s *Session) LEDCount() int { return len(s.buf) }

// Keys returns the key map.
func (s *Session) Keys() *device.KeyMap { return s.keys }

// Render shows frame on the keyboard. Every LED not in frame is turned off;
// indices beyond the keyboard's LED count are ignored. A failed render leaves
// the session usable.
func (s *Session) Render(frame compositor.Frame) error {
	if s.closed {
		return ErrClosed
	}
	clear(s.buf)
	for led, c := range frame {
		if led < uint32(len(s.buf)) {
			s.buf[led] = c.Pack()
		}
	}
	return s.client.UpdateLEDs(s.device.Index, s.buf)
}

// Close turns every LED off and closes the connection. The final update is
// best-effort; only the close error is returned. Close is safe to call more
// than once.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		s.closed = true
		clear(s.buf)
		if err := s.client.UpdateLEDs(s.device.Index, s.buf); err != nil {
			s.logger.Debug("final update failed", "error", err)
		}
		s.closeErr = s.client.Close()
		s.logger.Info("session closed")
	})
	return s.closeErr
}
