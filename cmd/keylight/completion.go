package main

import (
	"github.com/posener/complete"
	"github.com/willabides/kongplete"
)

// knownVendors are keyboard vendors OpenRGB commonly reports.
var knownVendors = []string{
	"asus", "corsair", "ducky", "hyperx", "logitech", "razer", "roccat", "steelseries", "wooting",
}

// namedColors are offered when completing --color.
var namedColors = []string{"00FF00", "FF0000", "FFFF00", "FF8000", "FFD700", "508CFF", "FFFFFF"}

func predictors() []kongplete.Option {
	return []kongplete.Option{
		kongplete.WithPredictor("mode", complete.PredictSet(modeStatic, modeBlink, modeReveal)),
		kongplete.WithPredictor("vendor", complete.PredictSet(knownVendors...)),
		kongplete.WithPredictor("color", newColorPredictor()),
		kongplete.WithPredictor("file", complete.PredictFiles("*.yaml")),
	}
}

// colorPredictor completes hex colors, keeping a leading # if typed.
type colorPredictor struct {
	set complete.Predictor
}

func newColorPredictor() complete.Predictor {
	return &colorPredictor{set: complete.PredictSet(namedColors...)}
}

// Predict implements complete.Predictor interface.
func (p *colorPredictor) Predict(args complete.Args) []string {
	if len(args.Last) > 0 && args.Last[0] == '#' {
		out := make([]string, len(namedColors))
		for i, c := range namedColors {
			out[i] = "#" + c
		}
		return out
	}
	return p.set.Predict(args)
}
