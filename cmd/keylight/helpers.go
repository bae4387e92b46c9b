package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/d2verb/keylight/internal/client"
	"github.com/d2verb/keylight/internal/compositor"
	"github.com/d2verb/keylight/internal/config"
	"github.com/d2verb/keylight/internal/logging"
	"github.com/d2verb/keylight/internal/session"
	"github.com/d2verb/keylight/internal/ui"
)

// lookupEnv is the environment source for endpoint overrides. Can be
// replaced for testing.
var lookupEnv = os.LookupEnv

// app is the per-invocation state built from the global flags.
type app struct {
	cfg     config.Config
	logger  *slog.Logger
	logFile io.Closer
	preview bool
}

// loadSettings merges the config file, the environment and the flags, in
// increasing order of precedence.
func loadSettings(g *Globals) (config.Config, error) {
	path := g.Config
	if path == "" {
		paths, err := config.GetPaths()
		if err != nil {
			return config.Config{}, errConfig(err)
		}
		path = paths.Config
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		return cfg, errConfig(err)
	}
	if err := config.ApplyEnv(&cfg, lookupEnv); err != nil {
		return cfg, errConfig(err)
	}
	if g.Host != "" {
		cfg.Host = g.Host
	}
	if g.Port != 0 {
		cfg.Port = g.Port
	}
	if g.Vendor != "" {
		cfg.VendorHint = g.Vendor
	}
	if err := cfg.Validate(); err != nil {
		return cfg, errConfig(err)
	}
	return cfg, nil
}

func newApp(g *Globals) (*app, error) {
	cfg, err := loadSettings(g)
	if err != nil {
		return nil, err
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, errConfig(err)
	}
	logCfg := logging.DefaultConfig(cfg.LogFile)
	logCfg.Level = level
	logger, logFile := logging.Open(logCfg)

	return &app{
		cfg:     cfg,
		logger:  logger.With("component", "cli"),
		logFile: logFile,
		preview: g.Preview,
	}, nil
}

func (a *app) Close() error {
	if a.logFile == nil {
		return nil
	}
	return a.logFile.Close()
}

func (a *app) clientOptions() client.Options {
	opts := client.DefaultOptions()
	opts.Address = a.cfg.Address()
	opts.Timeout = a.cfg.Timeout
	opts.ClientName = a.cfg.ClientName
	opts.Logger = a.logger.With("component", "client")
	return opts
}

func (a *app) sessionConfig() session.Config {
	return session.Config{
		Client:     a.clientOptions(),
		VendorHint: a.cfg.VendorHint,
	}
}

// connect opens a session or returns an ExitError describing why it could not.
func (a *app) connect(ctx context.Context) (*session.Session, error) {
	s, err := session.Connect(ctx, a.sessionConfig())
	if err != nil {
		return nil, mapConnectError(a.cfg.Address(), err)
	}
	return s, nil
}

// animate renders frame until ctx is cancelled or duration passes. Without a
// reachable keyboard it warns and keeps running so the preview still works.
func (a *app) animate(ctx context.Context, duration time.Duration, frame func(time.Duration) []compositor.Request) error {
	r, err := session.ConnectOrDiscard(ctx, a.sessionConfig(), a.logger)
	if err != nil {
		ui.PrintWarning(noHardwareMessage(err))
	} else {
		ui.PrintSuccess("Connected to " + r.DeviceName())
	}

	if a.preview {
		frame = (&previewer{}).wrap(frame)
	}
	loop := &session.Loop{
		Tick:     a.cfg.Tick,
		Deadline: duration,
		Frame:    frame,
		Logger:   a.logger.With("component", "loop"),
	}
	if err := loop.Run(ctx, r, compositor.New(r.LEDForKey)); err != nil {
		return err
	}
	return nil
}

func noHardwareMessage(err error) string {
	msg := "Running without hardware: " + err.Error()
	if kind, ok := session.KindOf(err); ok {
		msg += "\n  " + kind.Hint()
	}
	return msg
}

// previewEpoch anchors the preview compositor so Compose sees the loop's
// elapsed time.
var previewEpoch = time.Unix(0, 0)

// previewer prints the requested keys once per second. It composes with a
// lookup that maps every key to itself, so the preview shows what would be
// lit even when no keyboard is connected.
type previewer struct {
	next time.Duration
	comp *compositor.Compositor
}

func (p *previewer) wrap(frame func(time.Duration) []compositor.Request) func(time.Duration) []compositor.Request {
	p.comp = &compositor.Compositor{
		Keys:  func(key rune) (uint32, bool) { return uint32(key), true },
		Start: previewEpoch,
	}
	return func(elapsed time.Duration) []compositor.Request {
		reqs := frame(elapsed)
		if elapsed >= p.next {
			p.next = elapsed.Truncate(time.Second) + time.Second
			ui.PrintPreview(elapsed, p.keys(elapsed, reqs))
		}
		return reqs
	}
}

func (p *previewer) keys(elapsed time.Duration, reqs []compositor.Request) []ui.PreviewKey {
	entries := p.comp.Compose(previewEpoch.Add(elapsed), reqs).Entries()
	keys := make([]ui.PreviewKey, 0, len(entries))
	for _, e := range entries {
		keys = append(keys, ui.PreviewKey{Key: rune(e.LED), Color: e.Color})
	}
	return keys
}
