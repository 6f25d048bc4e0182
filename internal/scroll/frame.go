package scroll

import (
	"sync"
	"time"
)

// FrameFunc receives the time elapsed since the previous frame. The first
// frame of a loop reports zero.
type FrameFunc func(delta time.Duration)

// FrameSource schedules a single callback for the next frame and returns a
// function cancelling it.
type FrameSource interface {
	RequestFrame(fn func(now time.Time)) (cancel func())
}

// Loop re-schedules itself on every frame until stopped.
type Loop struct {
	source FrameSource
	fn     FrameFunc

	mu      sync.Mutex
	active  bool
	gen     uint64 // bumped by Start; frames of older runs are dropped
	cancel  func()
	prev    time.Time
	hasPrev bool
}

// NewLoop creates a stopped loop.
func NewLoop(source FrameSource, fn FrameFunc) *Loop {
	return &Loop{source: source, fn: fn}
}

// Start begins requesting frames. Starting a running loop is a no-op.
func (l *Loop) Start() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.active {
		return
	}
	l.active = true
	l.hasPrev = false
	l.gen++
	l.requestLocked()
}

func (l *Loop) requestLocked() {
	gen := l.gen
	l.cancel = l.source.RequestFrame(func(now time.Time) { l.frame(gen, now) })
}

// Stop cancels the pending frame. It is safe to call repeatedly and from
// inside the frame callback.
func (l *Loop) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.active = false
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
}

// Running reports whether the loop is active.
func (l *Loop) Running() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.active
}

func (l *Loop) frame(gen uint64, now time.Time) {
	l.mu.Lock()
	if !l.active || gen != l.gen {
		l.mu.Unlock()
		return
	}
	var delta time.Duration
	if l.hasPrev {
		delta = now.Sub(l.prev)
	}
	l.prev = now
	l.hasPrev = true
	l.mu.Unlock()

	l.fn(delta)

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.active && gen == l.gen {
		l.requestLocked()
	}
}
