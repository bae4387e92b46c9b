package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/willabides/kongplete"

	"github.com/d2verb/keylight/internal/ui"
)

var (
	version = "dev"
	commit  = "none"
)

// Globals are flags shared by every command.
type Globals struct {
	Config  string `help:"Config file path (default ~/.keylight/config.yaml)" type:"path" predictor:"file"`
	Host    string `help:"OpenRGB SDK host (overrides config and OPENRGB_HOST)"`
	Port    int    `help:"OpenRGB SDK port (overrides config and OPENRGB_PORT)"`
	Vendor  string `help:"Preferred keyboard vendor or name" predictor:"vendor"`
	Preview bool   `help:"Print colored frame swatches to the terminal each second"`
}

type CLI struct {
	Globals

	Devices   DevicesCmd   `cmd:"" help:"List devices reported by the OpenRGB SDK server"`
	Keys      KeysCmd      `cmd:"" help:"Show the key map of the selected keyboard"`
	Highlight HighlightCmd `cmd:"" help:"Light up the keys of a word"`
	Urgency   UrgencyCmd   `cmd:"" help:"Light words with a color that ages from green to red"`
	Lives     LivesCmd     `cmd:"" help:"Show a life counter on the number keys"`
	Off       OffCmd       `cmd:"" help:"Turn every LED of the keyboard off"`
	Settings  ConfigCmd    `cmd:"" name:"config" help:"Show or edit the config file"`
	Version   VersionCmd   `cmd:"" help:"Show version"`

	InstallCompletions kongplete.InstallCompletions `cmd:"" help:"Install shell completions"`
}

func newParser(cli *CLI) (*kong.Kong, error) {
	return kong.New(cli,
		kong.Name("keylight"),
		kong.Description("Drive keyboard RGB lighting through the OpenRGB SDK server"),
		kong.UsageOnError(),
	)
}

func main() {
	var cli CLI
	parser, err := newParser(&cli)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitError)
	}

	kongplete.Complete(parser, predictors()...)

	kctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	kctx.BindTo(ctx, (*context.Context)(nil))
	err = kctx.Run(&cli.Globals)
	stop()

	if err != nil {
		ui.Output = os.Stderr
		if msg := err.Error(); msg != "" {
			ui.PrintError(msg)
		}
		os.Exit(exitCode(err))
	}
}
