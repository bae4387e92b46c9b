package compositor

import "time"

// Default animation timings.
const (
	DefaultBlinkPeriod = 700 * time.Millisecond
	DefaultRevealStep  = 220 * time.Millisecond
	DefaultRevealOn    = 120 * time.Millisecond
	DefaultRevealPause = 2000 * time.Millisecond
)

// Animation decides whether a request is shown at a point in time.
type Animation interface {
	visible(elapsed time.Duration, key rune) bool
}

// Static is always shown.
type Static struct{}

func (Static) visible(time.Duration, rune) bool { return true }

// Blink alternates on and off every Period, starting on. Invert starts off.
type Blink struct {
	Period time.Duration
	Invert bool
}

func (b Blink) visible(elapsed time.Duration, _ rune) bool {
	return BlinkOn(elapsed, b.Period) != b.Invert
}

// Reveal walks through Word one character per Step, showing the request
// only on the key currently revealed. See RevealChar.
type Reveal struct {
	Word  string
	Step  time.Duration
	On    time.Duration
	Pause time.Duration
}

func (r Reveal) visible(elapsed time.Duration, key rune) bool {
	ch, ok := RevealChar(r.Word, elapsed, r.Step, r.On, r.Pause)
	return ok && foldKey(ch) == foldKey(key)
}

// BlinkOn reports the phase of a square wave with half-period period:
// on during even periods, counting from zero. A non-positive period uses
// DefaultBlinkPeriod.
func BlinkOn(elapsed, period time.Duration) bool {
	if period <= 0 {
		period = DefaultBlinkPeriod
	}
	ms := max(elapsed.Milliseconds(), 0)
	return (ms/max(period.Milliseconds(), 1))%2 == 0
}

// RevealChar returns the character lit at elapsed in a repeating sequence:
// each character of word gets one step, during the first on of which it is
// lit, and the sequence is followed by pause with nothing lit. Zero
// durations use the defaults.
func RevealChar(word string, elapsed, step, on, pause time.Duration) (rune, bool) {
	letters := []rune(word)
	if len(letters) == 0 {
		return 0, false
	}
	if step <= 0 {
		step = DefaultRevealStep
	}
	if on <= 0 {
		on = DefaultRevealOn
	}
	if pause < 0 {
		pause = 0
	} else if pause == 0 {
		pause = DefaultRevealPause
	}

	stepMs := max(step.Milliseconds(), 1)
	seq := stepMs * int64(len(letters))
	cycle := seq + pause.Milliseconds()
	pos := max(elapsed.Milliseconds(), 0) % cycle
	if pos >= seq {
		return 0, false
	}
	if pos%stepMs >= on.Milliseconds() {
		return 0, false
	}
	return letters[pos/stepMs], true
}
