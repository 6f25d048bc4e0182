package scroll

import (
	"context"
	"time"
)

type fakeDoc struct {
	vp    Viewport
	rects map[SectionID]Rect
}

func newFakeDoc(vp Viewport) *fakeDoc {
	return &fakeDoc{vp: vp, rects: make(map[SectionID]Rect)}
}

func (d *fakeDoc) Viewport() Viewport { return d.vp }

func (d *fakeDoc) Bounds(id SectionID) (Rect, bool) {
	r, ok := d.rects[id]
	return r, ok
}

func (d *fakeDoc) place(id SectionID, top, height float64) {
	d.rects[id] = Rect{Top: top, Bottom: top + height, Height: height}
}

// manualFrames queues frame requests until the test runs them.
type manualFrames struct {
	queue []*manualRequest
	now   time.Time
}

type manualRequest struct {
	fn        func(time.Time)
	cancelled bool
}

func (m *manualFrames) RequestFrame(fn func(time.Time)) func() {
	req := &manualRequest{fn: fn}
	m.queue = append(m.queue, req)
	return func() { req.cancelled = true }
}

// tick runs the requests queued before the call, advancing the clock.
func (m *manualFrames) tick(step time.Duration) int {
	if m.now.IsZero() {
		m.now = time.Unix(0, 0)
	}
	m.now = m.now.Add(step)
	queued := m.queue
	m.queue = nil
	ran := 0
	for _, req := range queued {
		if req.cancelled {
			continue
		}
		req.fn(m.now)
		ran++
	}
	return ran
}

func (m *manualFrames) pending() int {
	n := 0
	for _, req := range m.queue {
		if !req.cancelled {
			n++
		}
	}
	return n
}

// tickerFrames delivers frames from a timer on its own goroutine.
type tickerFrames struct {
	ctx      context.Context
	interval time.Duration
}

func (t *tickerFrames) RequestFrame(fn func(now time.Time)) func() {
	ctx, cancel := context.WithCancel(t.ctx)
	timer := time.NewTimer(t.interval)
	go func() {
		defer timer.Stop()
		select {
		case <-ctx.Done():
		case now := <-timer.C:
			if ctx.Err() == nil {
				fn(now)
			}
		}
	}()
	return cancel
}
