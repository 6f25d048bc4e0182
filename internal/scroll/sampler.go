package scroll

import (
	"fmt"
	"sync"
	"time"
)

// Policy decides when scroll signals are turned into samples.
type Policy int

const (
	// PerFrame coalesces all scroll signals between two frames into one
	// sample taken on the next frame.
	PerFrame Policy = iota
	// EveryEvent samples synchronously on every scroll signal.
	EveryEvent
)

func (p Policy) String() string {
	switch p {
	case PerFrame:
		return "per-frame"
	case EveryEvent:
		return "every-event"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// ParsePolicy maps a configuration string to a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "", "per-frame", "frame":
		return PerFrame, nil
	case "every-event", "event":
		return EveryEvent, nil
	default:
		return PerFrame, fmt.Errorf("unknown sampling policy %q", s)
	}
}

// Sampler is anything that reads the document on a sample.
type Sampler interface {
	Sample(doc Document)
}

// SamplerFunc adapts a function to Sampler.
type SamplerFunc func(doc Document)

// Sample implements Sampler.
func (f SamplerFunc) Sample(doc Document) { f(doc) }

// Scheduler fans scroll signals out to the container, the sections and any
// additional samplers according to a Policy.
type Scheduler struct {
	policy    Policy
	doc       Document
	frames    FrameSource
	container *Container

	mu       sync.Mutex
	sections []*Section
	extra    []Sampler
	pending  func()
	samples  int
}

// NewScheduler creates a scheduler. frames may be nil when policy is
// EveryEvent.
func NewScheduler(policy Policy, doc Document, frames FrameSource, container *Container) *Scheduler {
	if frames == nil {
		policy = EveryEvent
	}
	return &Scheduler{policy: policy, doc: doc, frames: frames, container: container}
}

// Policy returns the effective sampling policy.
func (s *Scheduler) Policy() Policy {
	return s.policy
}

// AddSection registers a section wrapper and returns a function removing
// and detaching it.
func (s *Scheduler) AddSection(sec *Section) (remove func()) {
	s.mu.Lock()
	s.sections = append(s.sections, sec)
	s.mu.Unlock()
	return func() {
		sec.Detach()
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, existing := range s.sections {
			if existing == sec {
				s.sections = append(s.sections[:i:i], s.sections[i+1:]...)
				return
			}
		}
	}
}

// AddSampler registers an additional consumer of samples, such as the
// scroll-depth tracker.
func (s *Scheduler) AddSampler(sm Sampler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.extra = append(s.extra, sm)
}

// Scroll handles one native scroll signal.
func (s *Scheduler) Scroll() {
	if s.policy == EveryEvent {
		s.Flush()
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending != nil {
		return
	}
	s.pending = s.frames.RequestFrame(func(time.Time) {
		s.mu.Lock()
		s.pending = nil
		s.mu.Unlock()
		s.Flush()
	})
}

// Flush takes one sample immediately.
func (s *Scheduler) Flush() {
	s.mu.Lock()
	sections := make([]*Section, len(s.sections))
	copy(sections, s.sections)
	extra := make([]Sampler, len(s.extra))
	copy(extra, s.extra)
	s.samples++
	s.mu.Unlock()

	if s.container != nil {
		s.container.Sample(s.doc)
	}
	for _, sec := range sections {
		sec.Sample(s.doc)
	}
	for _, sm := range extra {
		sm.Sample(s.doc)
	}
}

// Samples returns how many samples have been taken.
func (s *Scheduler) Samples() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.samples
}

// Close cancels a pending frame.
func (s *Scheduler) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending != nil {
		s.pending()
		s.pending = nil
	}
}
