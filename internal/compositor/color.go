package compositor

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/d2verb/keylight/internal/wire"
)

// RGB is an 8-bit-per-channel color.
type RGB struct {
	R, G, B uint8
}

// Named colors.
var (
	Off    = RGB{0, 0, 0}
	White  = RGB{255, 255, 255}
	Red    = RGB{255, 0, 0}
	Green  = RGB{0, 255, 0}
	Yellow = RGB{255, 255, 0}
	Orange = RGB{255, 128, 0}
	Gold   = RGB{255, 215, 0}
	Blue   = RGB{80, 140, 255}
)

// Pack returns the color in the daemon's u32 layout.
func (c RGB) Pack() uint32 {
	return wire.PackColor(c.R, c.G, c.B)
}

// Hex returns the color as RRGGBB.
func (c RGB) Hex() string {
	return fmt.Sprintf("%02X%02X%02X", c.R, c.G, c.B)
}

func (c RGB) String() string {
	return "#" + c.Hex()
}

// ParseHex parses "RRGGBB" or "#RRGGBB".
func ParseHex(s string) (RGB, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 {
		return RGB{}, fmt.Errorf("invalid color %q: want RRGGBB", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return RGB{uint8(v >> 16), uint8(v >> 8), uint8(v)}, nil
}

// UrgencyColor maps u in [0, 1] onto a green -> yellow -> orange -> red
// gradient. Values outside the range are clamped; u == 1 is pure red.
func UrgencyColor(u float64) RGB {
	u = clamp01(u)
	switch {
	case u < 0.33:
		return lerp(Green, Yellow, u/0.33)
	case u < 0.66:
		return lerp(Yellow, Orange, (u-0.33)/0.33)
	default:
		return lerp(Orange, Red, (u-0.66)/0.34)
	}
}

func lerp(from, to RGB, t float64) RGB {
	t = clamp01(t)
	ch := func(a, b uint8) uint8 {
		return uint8(float64(a) + (float64(b)-float64(a))*t)
	}
	return RGB{ch(from.R, to.R), ch(from.G, to.G), ch(from.B, to.B)}
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
