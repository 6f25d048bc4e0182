package animate

import (
	"math"
	"time"

	"github.com/nivar/journey/internal/scroll"
)

// Path drawing constants: the first path starts drawing at 10% section
// progress, each later path 10% after the previous one, and a path is fully
// drawn after half of its remaining range.
const (
	pathFirstTrigger = 0.1
	pathTriggerStep  = 0.1
	pathWindowScale  = 2
)

// PathDraw reveals SVG paths by shrinking their stroke-dash offsets as a
// section's progress grows.
type PathDraw struct {
	Lengths []float64
}

// Trigger returns the progress after which path index starts drawing.
func (d PathDraw) Trigger(index int) float64 {
	return pathFirstTrigger + float64(index)*pathTriggerStep
}

// Offsets returns the dash offset of every path at progress. The result
// depends on progress alone: paths before their trigger are undrawn, paths
// past it interpolate linearly to fully drawn.
func (d PathDraw) Offsets(progress float64) []float64 {
	out := make([]float64, len(d.Lengths))
	for i, length := range d.Lengths {
		trigger := d.Trigger(i)
		if trigger >= 1 || progress <= trigger {
			out[i] = length
			continue
		}
		rel := (progress - trigger) / (1 - trigger)
		out[i] = length * (1 - math.Min(1, rel*pathWindowScale))
	}
	return out
}

// Styles returns the stroke styles of every path at progress.
func (d PathDraw) Styles(progress float64) []Style {
	offsets := d.Offsets(progress)
	styles := make([]Style, len(offsets))
	for i, off := range offsets {
		styles[i] = Style{
			"stroke-dasharray":  formatFloat(d.Lengths[i]),
			"stroke-dashoffset": formatFloat(off),
		}
	}
	return styles
}

// Apply writes the styles at progress to paths. Paths beyond Lengths are
// ignored; it reports false when there is nothing to draw.
func (d PathDraw) Apply(paths []Element, progress float64) bool {
	if len(paths) == 0 {
		return false
	}
	for i, st := range d.Styles(progress) {
		if i >= len(paths) {
			break
		}
		st.Apply(paths[i])
	}
	return true
}

// Intro timing: each path draws in 1.5s, 300ms after the previous one.
const (
	introDuration = 1500 * time.Millisecond
	introStagger  = 300 * time.Millisecond
)

// Intro returns the path styles elapsed into the on-load draw, which runs
// without waiting for scroll.
func (d PathDraw) Intro(elapsed time.Duration) []Style {
	styles := make([]Style, len(d.Lengths))
	for i, length := range d.Lengths {
		tw := Tween{
			From:     length,
			To:       0,
			Delay:    Stagger(introStagger, 0, i),
			Duration: introDuration,
			Easing:   EaseInOutSine,
		}
		styles[i] = Style{
			"stroke-dasharray":  formatFloat(length),
			"stroke-dashoffset": formatFloat(tw.At(elapsed)),
		}
	}
	return styles
}

// IntroDuration is the time until the last path is drawn.
func (d PathDraw) IntroDuration() time.Duration {
	return TotalDuration(len(d.Lengths), introStagger, 0, introDuration)
}

// PlayIntro runs the on-load draw on paths and returns a function stopping
// it. It reports false when there is nothing to draw.
func (d PathDraw) PlayIntro(frames scroll.FrameSource, paths []Element) (stop func(), ok bool) {
	if len(paths) == 0 || len(d.Lengths) == 0 {
		return func() {}, false
	}
	total := d.IntroDuration()
	var elapsed time.Duration
	var loop *scroll.Loop
	loop = scroll.NewLoop(frames, func(delta time.Duration) {
		elapsed += delta
		for i, st := range d.Intro(elapsed) {
			if i >= len(paths) {
				break
			}
			st.Apply(paths[i])
		}
		if elapsed >= total {
			loop.Stop()
		}
	})
	loop.Start()
	return loop.Stop, true
}
