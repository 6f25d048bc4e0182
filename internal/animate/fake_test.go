package animate

import "time"

type fakeElement struct {
	styles map[string]string
	writes int
}

func newFakeElement() *fakeElement {
	return &fakeElement{styles: make(map[string]string)}
}

func (e *fakeElement) SetStyle(property, value string) {
	e.styles[property] = value
	e.writes++
}

func fakeElements(n int) ([]Element, []*fakeElement) {
	els := make([]Element, n)
	fakes := make([]*fakeElement, n)
	for i := range els {
		fakes[i] = newFakeElement()
		els[i] = fakes[i]
	}
	return els, fakes
}

type manualFrames struct {
	queue []*frameRequest
	now   time.Time
}

type frameRequest struct {
	fn        func(time.Time)
	cancelled bool
}

func (m *manualFrames) RequestFrame(fn func(time.Time)) func() {
	req := &frameRequest{fn: fn}
	m.queue = append(m.queue, req)
	return func() { req.cancelled = true }
}

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
