// Package perf measures frame rate and picks a level of decorative detail
// the device can sustain.
package perf

import (
	"math"
	"time"
)

const (
	maxSamples     = 60
	reportInterval = 500 * time.Millisecond
)

// Band classifies a frame rate for display.
type Band string

const (
	BandGood Band = "good"
	BandFair Band = "fair"
	BandPoor Band = "poor"
)

// BandFor returns the band of fps: above 50 good, above 30 fair.
func BandFor(fps int) Band {
	switch {
	case fps > 50:
		return BandGood
	case fps > 30:
		return BandFair
	default:
		return BandPoor
	}
}

// Monitor averages instantaneous frame rates over a sliding window and
// publishes the rounded average at most every 500ms.
type Monitor struct {
	samples    []float64
	fps        int
	lastReport time.Duration
	elapsed    time.Duration
}

// NewMonitor creates an idle monitor.
func NewMonitor() *Monitor {
	return &Monitor{samples: make([]float64, 0, maxSamples)}
}

// Frame records a frame that took delta. It reports true when a new
// average was published.
func (m *Monitor) Frame(delta time.Duration) bool {
	if delta <= 0 {
		return false
	}
	m.elapsed += delta
	m.samples = append(m.samples, float64(time.Second)/float64(delta))
	if len(m.samples) > maxSamples {
		m.samples = m.samples[1:]
	}
	if m.elapsed-m.lastReport <= reportInterval {
		return false
	}
	var sum float64
	for _, s := range m.samples {
		sum += s
	}
	m.fps = int(math.Round(sum / float64(len(m.samples))))
	m.lastReport = m.elapsed
	return true
}

// FPS returns the last published average.
func (m *Monitor) FPS() int {
	return m.fps
}

// Level is a named set of decoration settings.
type Level string

const (
	High   Level = "high"
	Medium Level = "medium"
	Low    Level = "low"
)

// Detail holds the decoration budget of a level.
type Detail struct {
	StarCount            int  `json:"star_count"`
	NebulaBlur           int  `json:"nebula_blur"`
	ParticleEmissionRate int  `json:"particle_emission_rate"`
	UseBlur              bool `json:"use_blur"`
	UseTransparency      bool `json:"use_transparency"`
}

// Details per level.
var Details = map[Level]Detail{
	High:   {StarCount: 500, NebulaBlur: 30, ParticleEmissionRate: 50, UseBlur: true, UseTransparency: true},
	Medium: {StarCount: 300, NebulaBlur: 20, ParticleEmissionRate: 30, UseBlur: true, UseTransparency: true},
	Low:    {StarCount: 150, NebulaBlur: 10, ParticleEmissionRate: 15},
}

// LevelFor returns the level for fps: below 30 low, below 50 medium.
func LevelFor(fps int) Level {
	switch {
	case fps < 30:
		return Low
	case fps < 50:
		return Medium
	default:
		return High
	}
}

// Throttle re-evaluates the detail level once per interval of frame time.
type Throttle struct {
	monitor  *Monitor
	interval time.Duration
	acc      time.Duration
	level    Level
}

// NewThrottle starts at High and re-checks every interval.
func NewThrottle(monitor *Monitor, interval time.Duration) *Throttle {
	if interval <= 0 {
		interval = time.Second
	}
	return &Throttle{monitor: monitor, interval: interval, level: High}
}

// Frame feeds a frame. It reports the current level and whether it
// changed on this frame.
func (t *Throttle) Frame(delta time.Duration) (Level, bool) {
	t.monitor.Frame(delta)
	t.acc += delta
	if t.acc <= t.interval {
		return t.level, false
	}
	t.acc = 0
	if t.monitor.FPS() == 0 {
		return t.level, false
	}
	next := LevelFor(t.monitor.FPS())
	changed := next != t.level
	t.level = next
	return t.level, changed
}

// Level returns the current level.
func (t *Throttle) Level() Level {
	return t.level
}
