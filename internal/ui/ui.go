// Package ui provides formatted output utilities for the CLI.
package ui

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/d2verb/keylight/internal/compositor"
	"github.com/d2verb/keylight/internal/device"
	"github.com/d2verb/keylight/internal/wire"
)

// Color functions for consistent styling.
var (
	Green  = color.New(color.FgGreen).SprintFunc()
	Red    = color.New(color.FgRed).SprintFunc()
	Yellow = color.New(color.FgYellow).SprintFunc()
	Blue   = color.New(color.FgBlue).SprintFunc()
	Cyan   = color.New(color.FgCyan).SprintFunc()
	Dim    = color.New(color.Faint).SprintFunc() // Dimmed text (more readable than gray)
	Bold   = color.New(color.Bold).SprintFunc()
)

// Output is the destination for UI output.
// Defaults to os.Stdout but can be overridden for testing.
var Output io.Writer = os.Stdout

// PrintSuccess prints a success message with green checkmark.
func PrintSuccess(message string) {
	fmt.Fprintf(Output, "%s %s\n", Green("✓"), message)
}

// PrintError prints an error message with red X.
func PrintError(message string) {
	fmt.Fprintf(Output, "%s %s\n", Red("✗"), message)
}

// PrintWarning prints a warning message with yellow exclamation.
func PrintWarning(message string) {
	fmt.Fprintf(Output, "%s %s\n", Yellow("⚠"), message)
}

// PrintInfo prints an info message with blue dot.
func PrintInfo(message string) {
	fmt.Fprintf(Output, "%s %s\n", Blue("•"), message)
}

// newTable returns a borderless table writing to Output.
func newTable(header []string) *tablewriter.Table {
	tw := tablewriter.NewWriter(Output)
	tw.SetHeader(header)
	tw.SetBorder(false)
	tw.SetAutoWrapText(false)
	tw.SetAlignment(tablewriter.ALIGN_LEFT)
	return tw
}

// PrintDevices prints the controllers reported by the daemon. The controller
// at selected, if any, is marked as the one keylight drives.
func PrintDevices(endpoint string, version uint32, ctrls []*wire.Controller, selected int) {
	fmt.Fprintf(Output, "%s %s %s\n", Bold("Daemon:"), Blue(endpoint), Dim(fmt.Sprintf("(protocol v%d)", version)))

	if len(ctrls) == 0 {
		fmt.Fprintln(Output, "No devices reported.")
		return
	}

	tw := newTable([]string{"", "Index", "Type", "Name", "LEDs", "Zones", "Modes"})
	for i, c := range ctrls {
		mark := ""
		if i == selected {
			mark = "*"
		}
		tw.Append([]string{
			mark,
			strconv.FormatUint(uint64(c.Index), 10),
			c.Type.String(),
			c.DisplayName(),
			strconv.Itoa(c.LEDCount()),
			zoneSummary(c.Zones),
			strconv.Itoa(len(c.Modes)),
		})
	}
	tw.Render()
}

func zoneSummary(zones []wire.Zone) string {
	if len(zones) == 0 {
		return "-"
	}
	names := make([]string, len(zones))
	for i, z := range zones {
		names[i] = z.Name
		if z.Height > 0 && z.Width > 0 {
			names[i] += fmt.Sprintf(" %dx%d", z.Height, z.Width)
		}
	}
	return strings.Join(names, ", ")
}

// KeyLabel returns a printable name for a mapped key.
func KeyLabel(key rune) string {
	if key == ' ' {
		return "SPACE"
	}
	return string(key)
}

// PrintKeyMap prints the device name and its key map in map order.
func PrintKeyMap(deviceName string, keys *device.KeyMap) {
	fmt.Fprintf(Output, "%s %s\n", Bold("Keyboard:"), Cyan(deviceName))

	entries := keys.Entries()
	if len(entries) == 0 {
		fmt.Fprintln(Output, "No keys mapped.")
		return
	}

	tw := newTable([]string{"Key", "LED"})
	for _, e := range entries {
		tw.Append([]string{KeyLabel(e.Key), strconv.FormatUint(uint64(e.LED), 10)})
	}
	tw.Render()
	fmt.Fprintf(Output, "%s\n", Dim(fmt.Sprintf("%d keys mapped", len(entries))))
}

// Swatch returns text drawn on a truecolor background of c.
func Swatch(c compositor.RGB, text string) string {
	return color.BgRGB(int(c.R), int(c.G), int(c.B)).Sprint(text)
}

// PreviewKey is one lit key in a frame preview.
type PreviewKey struct {
	Key   rune
	Color compositor.RGB
}

// PrintPreview prints one line of color swatches for the keys lit in a frame.
func PrintPreview(elapsed time.Duration, keys []PreviewKey) {
	var b strings.Builder
	fmt.Fprintf(&b, "%s", Dim(fmt.Sprintf("%6.1fs", elapsed.Seconds())))
	if len(keys) == 0 {
		b.WriteString(" " + Dim("(dark)"))
	}
	for _, k := range keys {
		fmt.Fprintf(&b, " %s%s", Swatch(k.Color, " "+KeyLabel(k.Key)+" "), Dim(k.Color.Hex()))
	}
	fmt.Fprintln(Output, b.String())
}

// Settings contains the effective configuration for display.
type Settings struct {
	Address    string
	Timeout    time.Duration
	ClientName string
	VendorHint string
	Tick       time.Duration
	LogLevel   string
	LogFile    string
}

// PrintSettings prints the effective configuration in a formatted style.
func PrintSettings(path string, s Settings) {
	fmt.Fprintf(Output, "%s %s\n", Bold("Config:"), path)
	fmt.Fprintf(Output, "%s %s\n", Bold("Server:"), Blue(s.Address))
	fmt.Fprintf(Output, "%s %s\n", Bold("Timeout:"), s.Timeout)
	fmt.Fprintf(Output, "%s %s\n", Bold("Client Name:"), s.ClientName)

	vendor := s.VendorHint
	if vendor == "" {
		vendor = Dim("(first keyboard)")
	}
	fmt.Fprintf(Output, "%s %s\n", Bold("Vendor Hint:"), vendor)
	fmt.Fprintf(Output, "%s %s\n", Bold("Tick:"), s.Tick)
	fmt.Fprintf(Output, "%s %s %s\n", Bold("Logs:"), s.LogFile, Dim("("+s.LogLevel+")"))
}
