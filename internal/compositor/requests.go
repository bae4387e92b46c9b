package compositor

import (
	"cmp"
	"slices"
	"time"
)

// WordRequests lights every character of word with one color.
func WordRequests(word string, color RGB, priority int) []Request {
	reqs := make([]Request, 0, len(word))
	for _, ch := range word {
		reqs = append(reqs, Request{Key: ch, Color: color, Priority: priority})
	}
	return reqs
}

// Animate sets anim on every request and returns reqs.
func Animate(reqs []Request, anim Animation) []Request {
	for i := range reqs {
		reqs[i].Anim = anim
	}
	return reqs
}

// Urgency returns how far age has progressed through ttl, in [0, 1].
// A zero ttl is fully urgent.
func Urgency(age, ttl time.Duration) float64 {
	if ttl <= 0 {
		return 1
	}
	return clamp01(float64(age) / float64(ttl))
}

// AgedWord is a word with a lifetime.
type AgedWord struct {
	Text string
	Age  time.Duration
	TTL  time.Duration
}

// UrgencyRequests lights each word with its urgency color. When words share
// a key, the most urgent word wins.
func UrgencyRequests(words []AgedWord, priority int) []Request {
	sorted := slices.Clone(words)
	slices.SortStableFunc(sorted, func(a, b AgedWord) int {
		return cmp.Compare(Urgency(a.Age, a.TTL), Urgency(b.Age, b.TTL))
	})

	var reqs []Request
	for _, w := range sorted {
		u := Urgency(w.Age, w.TTL)
		for _, ch := range w.Text {
			reqs = append(reqs, Request{Key: ch, Urgency: u, UseUrgency: true, Priority: priority})
		}
	}
	return reqs
}

// LivesRequests shows a life counter on the digit keys 1..maxLives: red for
// each remaining life, explicitly off for each lost one. maxLives is capped
// at 9.
func LivesRequests(lives, maxLives int) []Request {
	maxLives = min(maxLives, 9)
	reqs := make([]Request, 0, max(maxLives, 0))
	for i := 1; i <= maxLives; i++ {
		color := Off
		if i <= lives {
			color = Red
		}
		reqs = append(reqs, Request{
			Key:      '0' + rune(i),
			Color:    color,
			Priority: PriorityIndicator,
		})
	}
	return reqs
}

// GlowRequest lights the space bar gold, used to signal a finished round.
func GlowRequest() Request {
	return Request{Key: ' ', Color: Gold, Priority: PriorityCue}
}
