package animate

import (
	"sync"
	"time"

	"github.com/nivar/journey/internal/scroll"
)

// Track animates one property of every item.
type Track struct {
	Property string // "opacity", "translateY", "translateX", "scale"
	From     float64
	To       float64
	Unit     string // "", "px", "%"
}

// Staggered plays the same tracks over Count items, each item starting
// Step after the previous one.
type Staggered struct {
	Count    int
	Duration time.Duration
	Step     time.Duration
	Start    time.Duration
	Easing   Easing
	Tracks   []Track
}

// Total returns the time at which the last item settles.
func (s Staggered) Total() time.Duration {
	return TotalDuration(s.Count, s.Step, s.Start, s.Duration)
}

// StyleAt returns item index's style at elapsed.
func (s Staggered) StyleAt(index int, elapsed time.Duration) Style {
	tw := Tween{
		Delay:    Stagger(s.Step, s.Start, index),
		Duration: s.Duration,
		Easing:   s.Easing,
	}
	f := tw.Fraction(elapsed)

	style := Style{}
	var tr Transform
	hasTransform := false
	for _, track := range s.Tracks {
		v := lerp(track.From, track.To, f)
		switch track.Property {
		case "opacity":
			style["opacity"] = formatFloat(v)
		case "translateY":
			tr.TranslateY = formatFloat(v) + track.Unit
			hasTransform = true
		case "translateX":
			tr.TranslateX = formatFloat(v) + track.Unit
			hasTransform = true
		case "scale":
			tr.Scale = floatPtr(v)
			hasTransform = true
		}
	}
	if hasTransform {
		style["transform"] = tr.String()
	}
	return style
}

// Apply writes every item's style at elapsed to targets and reports whether
// the animation has finished.
func (s Staggered) Apply(targets []Element, elapsed time.Duration) bool {
	for i, el := range targets {
		s.StyleAt(i, elapsed).Apply(el)
	}
	return elapsed >= s.Total()
}

// Player drives a Staggered animation from a frame source.
type Player struct {
	anim    Staggered
	targets []Element

	mu       sync.Mutex
	elapsed  time.Duration
	finished bool
	loop     *scroll.Loop
	onDone   func()
}

// Play starts anim on targets. It returns nil, and schedules nothing, when
// there are no targets.
func Play(frames scroll.FrameSource, anim Staggered, targets []Element, onDone func()) *Player {
	if len(targets) == 0 {
		return nil
	}
	if anim.Count == 0 {
		anim.Count = len(targets)
	}
	p := &Player{anim: anim, targets: targets, onDone: onDone}
	p.loop = scroll.NewLoop(frames, p.frame)
	p.loop.Start()
	return p
}

// Stop cancels the animation, leaving styles where they are.
func (p *Player) Stop() {
	if p == nil {
		return
	}
	p.loop.Stop()
}

// Finished reports whether the final frame has been applied.
func (p *Player) Finished() bool {
	if p == nil {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.finished
}

func (p *Player) frame(delta time.Duration) {
	p.mu.Lock()
	p.elapsed += delta
	elapsed := p.elapsed
	p.mu.Unlock()

	if !p.anim.Apply(p.targets, elapsed) {
		return
	}
	p.loop.Stop()
	p.mu.Lock()
	p.finished = true
	p.mu.Unlock()
	if p.onDone != nil {
		p.onDone()
	}
}
