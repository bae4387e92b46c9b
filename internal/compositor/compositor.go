// Package compositor turns highlight requests for semantic keys into a frame
// of hardware LED colors. It holds no device state: the caller supplies the
// key lookup and the time, so composition is a pure function of its inputs.
package compositor

import (
	"cmp"
	"slices"
	"time"
	"unicode"
)

// Priorities used by callers. Higher wins when two requests land on the
// same LED; overlays sit above state colors.
const (
	PriorityBaseline  = 0
	PriorityAbsent    = 1
	PriorityPresent   = 2
	PrioritySolved    = 3
	PriorityIndicator = 10
	PriorityCue       = 20
)

// Request asks for one key to be lit.
type Request struct {
	Key rune
	// Color is used unless UseUrgency is set, in which case the color is
	// UrgencyColor(Urgency).
	Color      RGB
	Urgency    float64
	UseUrgency bool
	Priority   int
	// Anim gates visibility; nil means always visible.
	Anim Animation
}

// color returns the color the request resolves to.
func (r Request) color() RGB {
	if r.UseUrgency {
		return UrgencyColor(r.Urgency)
	}
	return r.Color
}

// Frame is a sparse assignment of colors to hardware LED indices. LEDs
// absent from the frame are off.
type Frame map[uint32]RGB

// FrameEntry is one LED of a frame.
type FrameEntry struct {
	LED   uint32
	Color RGB
}

// Entries returns the frame sorted by LED index.
func (f Frame) Entries() []FrameEntry {
	out := make([]FrameEntry, 0, len(f))
	for led, c := range f {
		out = append(out, FrameEntry{LED: led, Color: c})
	}
	slices.SortFunc(out, func(a, b FrameEntry) int {
		return cmp.Compare(a.LED, b.LED)
	})
	return out
}

// KeyLookup resolves a semantic key to a hardware LED index.
type KeyLookup func(key rune) (uint32, bool)

// Compositor merges requests into frames. Start is the time animations
// are measured from.
type Compositor struct {
	Keys  KeyLookup
	Start time.Time
}

// New returns a compositor whose animations start now.
func New(keys KeyLookup) *Compositor {
	return &Compositor{Keys: keys, Start: time.Now()}
}

// Compose builds the frame for now. Requests hidden by their animation or
// naming a key with no LED are dropped. Where several requests reach the
// same LED, the higher priority wins; on equal priority the later request
// in reqs wins.
func (c *Compositor) Compose(now time.Time, reqs []Request) Frame {
	elapsed := max(now.Sub(c.Start), 0)

	frame := make(Frame, len(reqs))
	prio := make(map[uint32]int, len(reqs))
	for _, r := range reqs {
		if r.Anim != nil && !r.Anim.visible(elapsed, r.Key) {
			continue
		}
		if c.Keys == nil {
			continue
		}
		led, ok := c.Keys(r.Key)
		if !ok {
			continue
		}
		if p, seen := prio[led]; seen && r.Priority < p {
			continue
		}
		prio[led] = r.Priority
		frame[led] = r.color()
	}
	return frame
}

// foldKey upper-cases ASCII letters so 'a' and 'A' name the same key.
func foldKey(r rune) rune {
	if r < unicode.MaxASCII {
		return unicode.ToUpper(r)
	}
	return r
}
