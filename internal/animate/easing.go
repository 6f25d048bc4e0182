// Package animate maps triggers and progress values to element styles.
package animate

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Easing maps linear time t in [0,1] to eased progress.
type Easing func(t float64) float64

// Linear is the identity easing.
func Linear(t float64) float64 { return clamp01(t) }

// EaseOutExpo decelerates exponentially.
func EaseOutExpo(t float64) float64 {
	t = clamp01(t)
	if t == 1 {
		return 1
	}
	return 1 - math.Pow(2, -10*t)
}

// EaseInOutSine accelerates then decelerates along a sine curve.
func EaseInOutSine(t float64) float64 {
	t = clamp01(t)
	return -(math.Cos(math.Pi*t) - 1) / 2
}

// EaseInOutCubic applies smooth cubic easing.
func EaseInOutCubic(t float64) float64 {
	t = clamp01(t)
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// EaseOutElastic overshoots and settles. amplitude is at least 1; period is
// the oscillation period as a fraction of the duration.
func EaseOutElastic(amplitude, period float64) Easing {
	a := math.Max(1, amplitude)
	p := period
	if p <= 0 {
		p = 0.5
	}
	return func(t float64) float64 {
		t = clamp01(t)
		if t == 0 || t == 1 {
			return t
		}
		s := p / (2 * math.Pi) * math.Asin(1/a)
		return a*math.Pow(2, -10*t)*math.Sin((t-s)*(2*math.Pi)/p) + 1
	}
}

// ParseEasing resolves names such as "easeOutExpo" or "easeOutElastic(1, .5)".
func ParseEasing(name string) (Easing, error) {
	name = strings.TrimSpace(name)
	switch name {
	case "", "linear":
		return Linear, nil
	case "easeOutExpo":
		return EaseOutExpo, nil
	case "easeInOutSine":
		return EaseInOutSine, nil
	case "easeInOutCubic":
		return EaseInOutCubic, nil
	}
	if rest, ok := strings.CutPrefix(name, "easeOutElastic"); ok {
		amplitude, period := 1.0, 0.5
		rest = strings.TrimSpace(rest)
		if rest != "" {
			if !strings.HasPrefix(rest, "(") || !strings.HasSuffix(rest, ")") {
				return nil, fmt.Errorf("malformed easing %q", name)
			}
			args := strings.Split(rest[1:len(rest)-1], ",")
			if len(args) != 2 {
				return nil, fmt.Errorf("easing %q: want 2 arguments", name)
			}
			var err error
			if amplitude, err = strconv.ParseFloat(strings.TrimSpace(args[0]), 64); err != nil {
				return nil, fmt.Errorf("easing %q amplitude: %w", name, err)
			}
			if period, err = strconv.ParseFloat(strings.TrimSpace(args[1]), 64); err != nil {
				return nil, fmt.Errorf("easing %q period: %w", name, err)
			}
		}
		return EaseOutElastic(amplitude, period), nil
	}
	return nil, fmt.Errorf("unknown easing %q", name)
}

func clamp01(t float64) float64 {
	if math.IsNaN(t) || t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
