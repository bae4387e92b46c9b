package main

import (
	"slices"
	"testing"

	"github.com/posener/complete"
)

func TestColorPredictor(t *testing.T) {
	p := newColorPredictor()

	tests := []struct {
		name string
		last string
		want string
	}{
		{"bare hex", "", "00FF00"},
		{"hash prefix", "#", "#00FF00"},
		{"partial hash", "#FF", "#FFD700"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.Predict(complete.Args{Last: tt.last})
			if len(got) != len(namedColors) {
				t.Fatalf("Predict() = %v, want %d colors", got, len(namedColors))
			}
			if !slices.Contains(got, tt.want) {
				t.Errorf("Predict(%q) = %v, want to contain %q", tt.last, got, tt.want)
			}
		})
	}
}

func TestPredictors(t *testing.T) {
	if got := len(predictors()); got != 4 {
		t.Errorf("len(predictors()) = %d, want 4", got)
	}
}

func TestNewParser(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		command string
		check   func(t *testing.T, cli *CLI)
	}{
		{
			name:    "highlight defaults",
			args:    []string{"highlight", "hello"},
			command: "highlight <word>",
			check: func(t *testing.T, cli *CLI) {
				if cli.Highlight.Word != "hello" || cli.Highlight.Mode != modeStatic || cli.Highlight.Color != "00FF00" {
					t.Errorf("Highlight = %+v", cli.Highlight)
				}
			},
		},
		{
			name:    "global flags",
			args:    []string{"--host", "10.0.0.2", "--port", "6800", "--preview", "lives", "2", "--max", "3"},
			command: "lives <lives>",
			check: func(t *testing.T, cli *CLI) {
				if cli.Host != "10.0.0.2" || cli.Port != 6800 || !cli.Preview {
					t.Errorf("Globals = %+v", cli.Globals)
				}
				if cli.Lives.Lives != 2 || cli.Lives.Max != 3 {
					t.Errorf("Lives = %+v", cli.Lives)
				}
			},
		},
		{
			name:    "urgency words and ttl",
			args:    []string{"urgency", "go", "rust", "--ttl", "5s"},
			command: "",
			check: func(t *testing.T, cli *CLI) {
				if !slices.Equal(cli.Urgency.Words, []string{"go", "rust"}) || cli.Urgency.TTL.String() != "5s" {
					t.Errorf("Urgency = %+v", cli.Urgency)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cli CLI
			parser, err := newParser(&cli)
			if err != nil {
				t.Fatalf("newParser() error = %v", err)
			}
			kctx, err := parser.Parse(tt.args)
			if err != nil {
				t.Fatalf("Parse(%v) error = %v", tt.args, err)
			}
			if tt.command != "" && kctx.Command() != tt.command {
				t.Errorf("Command() = %q, want %q", kctx.Command(), tt.command)
			}
			tt.check(t, &cli)
		})
	}
}

func TestNewParser_RejectsUnknownMode(t *testing.T) {
	var cli CLI
	parser, err := newParser(&cli)
	if err != nil {
		t.Fatalf("newParser() error = %v", err)
	}
	if _, err := parser.Parse([]string{"highlight", "a", "--mode", "spin"}); err == nil {
		t.Error("Parse() accepted an unknown mode")
	}
}
