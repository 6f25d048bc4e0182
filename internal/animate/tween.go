package animate

import "time"

// Tween interpolates one property from From to To.
type Tween struct {
	From     float64
	To       float64
	Delay    time.Duration
	Duration time.Duration
	Easing   Easing
}

// At returns the value elapsed time after the tween was started.
func (tw Tween) At(elapsed time.Duration) float64 {
	return lerp(tw.From, tw.To, tw.Fraction(elapsed))
}

// Fraction returns eased completion in [0,1] (or beyond, while an elastic
// easing overshoots).
func (tw Tween) Fraction(elapsed time.Duration) float64 {
	t := elapsed - tw.Delay
	if t <= 0 {
		return 0
	}
	if tw.Duration <= 0 || t >= tw.Duration {
		return 1
	}
	ease := tw.Easing
	if ease == nil {
		ease = Linear
	}
	return ease(float64(t) / float64(tw.Duration))
}

// Done reports whether the tween has finished at elapsed.
func (tw Tween) Done(elapsed time.Duration) bool {
	return elapsed >= tw.Delay+tw.Duration
}

// Stagger returns the start delay of item index: start + index*step.
func Stagger(step, start time.Duration, index int) time.Duration {
	return start + time.Duration(index)*step
}

// TotalDuration returns when the last of n staggered tweens finishes.
func TotalDuration(n int, step, start, duration time.Duration) time.Duration {
	if n <= 0 {
		return 0
	}
	return Stagger(step, start, n-1) + duration
}
