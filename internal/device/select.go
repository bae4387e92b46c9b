// Package device picks the keyboard to drive from the controllers reported by
// the daemon and infers which character each of its LEDs stands for.
package device

import (
	"errors"
	"strings"

	"github.com/d2verb/keylight/internal/wire"
)

// DefaultVendorHint is the vendor preferred when several keyboards are present.
const DefaultVendorHint = "corsair"

// ErrNoKeyboard is returned when no controller is a keyboard.
var ErrNoKeyboard = errors.New("no keyboard devices reported")

// SelectKeyboard returns the first keyboard whose vendor or display name
// contains hint (case-insensitive), or the first keyboard when none does.
// An empty hint selects the first keyboard.
func SelectKeyboard(controllers []*wire.Controller, hint string) (*wire.Controller, error) {
	keyboards := Keyboards(controllers)
	if len(keyboards) == 0 {
		return nil, ErrNoKeyboard
	}

	hint = strings.ToLower(strings.TrimSpace(hint))
	if hint != "" {
		for _, c := range keyboards {
			if strings.Contains(strings.ToLower(c.Vendor), hint) ||
				strings.Contains(strings.ToLower(c.DisplayName()), hint) {
				return c, nil
			}
		}
	}
	return keyboards[0], nil
}

// Keyboards filters controllers down to keyboards, keeping their order.
func Keyboards(controllers []*wire.Controller) []*wire.Controller {
	var out []*wire.Controller
	for _, c := range controllers {
		if c != nil && c.Type.IsKeyboard() {
			out = append(out, c)
		}
	}
	return out
}
