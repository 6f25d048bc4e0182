package animate

import "github.com/nivar/journey/internal/scroll"

// Default visibility thresholds of the one-shot primitives.
const (
	TextRevealThreshold = 0.1
	GridThreshold       = 0.2
)

// OneShot runs play the first time its element becomes visible and then
// disconnects. A new OneShot is needed to play again.
type OneShot struct {
	observer *scroll.Observer
	play     func()
	fired    bool
}

// NewOneShot creates a trigger for the given visibility threshold.
func NewOneShot(threshold float64, play func()) *OneShot {
	o := &OneShot{play: play}
	o.observer = scroll.NewObserver(threshold, func(intersecting bool) {
		if intersecting {
			o.fire()
		}
	})
	return o
}

// Observe feeds the element's visible ratio.
func (o *OneShot) Observe(ratio float64) {
	o.observer.Observe(ratio)
}

// ObserveRect feeds the element's bounds.
func (o *OneShot) ObserveRect(r scroll.Rect, viewportHeight float64) {
	o.observer.ObserveRect(r, viewportHeight)
}

// Fire plays immediately, as used when a primitive does not wait for
// visibility. It has no effect once fired.
func (o *OneShot) Fire() {
	o.fire()
}

// Fired reports whether the animation has been played.
func (o *OneShot) Fired() bool {
	return o.fired
}

// Disconnect stops observation without playing.
func (o *OneShot) Disconnect() {
	o.observer.Disconnect()
}

func (o *OneShot) fire() {
	if o.fired {
		return
	}
	o.fired = true
	o.observer.Disconnect()
	if o.play != nil {
		o.play()
	}
}
