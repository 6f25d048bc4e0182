package animate

import (
	"time"

	"github.com/nivar/journey/internal/scroll"
)

const nbsp = "\u00a0"

// RevealOptions configures TextReveal and Grid.
type RevealOptions struct {
	Delay           time.Duration
	Duration        time.Duration
	Stagger         time.Duration
	Easing          Easing
	TriggerOnScroll bool
	Threshold       float64
}

// DefaultTextRevealOptions mirror the title reveal used across sections.
func DefaultTextRevealOptions() RevealOptions {
	return RevealOptions{
		Duration:        800 * time.Millisecond,
		Stagger:         50 * time.Millisecond,
		Easing:          EaseOutExpo,
		TriggerOnScroll: true,
		Threshold:       TextRevealThreshold,
	}
}

// DefaultGridOptions mirror the skills grid reveal.
func DefaultGridOptions() RevealOptions {
	return RevealOptions{
		Duration:        800 * time.Millisecond,
		Stagger:         50 * time.Millisecond,
		Easing:          EaseOutElastic(1, 0.5),
		TriggerOnScroll: true,
		Threshold:       GridThreshold,
	}
}

// SplitChars splits text into per-character cells, rendering spaces as
// non-breaking so they keep their width once transformed.
func SplitChars(text string) []string {
	chars := make([]string, 0, len(text))
	for _, r := range text {
		if r == ' ' {
			chars = append(chars, nbsp)
			continue
		}
		chars = append(chars, string(r))
	}
	return chars
}

// TextRevealAnimation slides each character up from below its line while
// fading it in.
func TextRevealAnimation(text string, opts RevealOptions) Staggered {
	return Staggered{
		Count:    len(SplitChars(text)),
		Duration: opts.Duration,
		Step:     opts.Stagger,
		Start:    opts.Delay,
		Easing:   opts.Easing,
		Tracks: []Track{
			{Property: "translateY", From: 100, To: 0, Unit: "%"},
			{Property: "opacity", From: 0, To: 1},
		},
	}
}

// GridAnimation fades and scales grid items into place.
func GridAnimation(count int, opts RevealOptions) Staggered {
	return Staggered{
		Count:    count,
		Duration: opts.Duration,
		Step:     opts.Stagger,
		Start:    opts.Delay,
		Easing:   opts.Easing,
		Tracks: []Track{
			{Property: "opacity", From: 0, To: 1},
			{Property: "scale", From: 0.8, To: 1},
		},
	}
}

// Reveal binds a one-shot staggered animation to a set of target elements.
type Reveal struct {
	anim    Staggered
	targets []Element
	frames  scroll.FrameSource
	trigger *OneShot
	player  *Player
	plays   int
}

// NewReveal mounts anim on targets. Targets start in their initial style.
// With TriggerOnScroll false the animation starts immediately.
func NewReveal(frames scroll.FrameSource, anim Staggered, targets []Element, opts RevealOptions) *Reveal {
	r := &Reveal{anim: anim, targets: targets, frames: frames}
	r.trigger = NewOneShot(opts.Threshold, r.play)
	anim.Apply(targets, 0)
	if !opts.TriggerOnScroll {
		r.trigger.Fire()
	}
	return r
}

// Observe feeds the visible ratio of the reveal's container.
func (r *Reveal) Observe(ratio float64) {
	r.trigger.Observe(ratio)
}

// Plays returns how many times the animation started; at most one.
func (r *Reveal) Plays() int {
	return r.plays
}

// Player returns the running player, or nil.
func (r *Reveal) Player() *Player {
	return r.player
}

// Unmount stops observation and any running animation.
func (r *Reveal) Unmount() {
	r.trigger.Disconnect()
	r.player.Stop()
}

func (r *Reveal) play() {
	if len(r.targets) == 0 {
		return
	}
	r.plays++
	r.player = Play(r.frames, r.anim, r.targets, nil)
}
