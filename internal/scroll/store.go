// Package scroll coordinates scroll-driven state for the journey page.
//
// Producers (Container, Section) translate viewport geometry into progress
// values and write them to a Store; consumers subscribe to the Store and
// recompute their visual state from the latest values.
package scroll

import "sync"

// SectionID identifies one full-height content region of the page.
type SectionID string

// State is a point-in-time copy of the store contents.
type State struct {
	Active          SectionID
	HasActive       bool
	GlobalProgress  float64
	SectionProgress map[SectionID]float64
}

// Progress returns the stored progress for id, or 0 when unknown.
func (s State) Progress(id SectionID) float64 {
	return s.SectionProgress[id]
}

// Listener is notified after every store mutation.
type Listener func(State)

// Store holds the shared scroll state. It performs no validation or
// clamping; producers clamp before writing.
type Store struct {
	mu        sync.Mutex
	active    SectionID
	hasActive bool
	global    float64
	sections  map[SectionID]float64

	nextID    int
	listeners []subscription
}

type subscription struct {
	id int
	fn Listener
}

// NewStore creates an empty store. A non-empty initial section becomes the
// active section.
func NewStore(initial SectionID) *Store {
	return &Store{
		active:    initial,
		hasActive: initial != "",
		sections:  make(map[SectionID]float64),
	}
}

// ActiveSection returns the active section and whether one has been set.
func (s *Store) ActiveSection() (SectionID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active, s.hasActive
}

// GlobalProgress returns the whole-page scroll fraction.
func (s *Store) GlobalProgress() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.global
}

// Progress returns the local progress of id, defaulting to 0.
func (s *Store) Progress(id SectionID) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sections[id]
}

// Snapshot copies the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// SetActiveSection replaces the active section.
func (s *Store) SetActiveSection(id SectionID) {
	s.mu.Lock()
	s.active = id
	s.hasActive = true
	s.notifyUnlock()
}

// SetGlobalProgress replaces the global progress.
func (s *Store) SetGlobalProgress(p float64) {
	s.mu.Lock()
	s.global = p
	s.notifyUnlock()
}

// SetSectionProgress merges p into the per-section map, leaving other
// entries untouched.
func (s *Store) SetSectionProgress(id SectionID, p float64) {
	s.mu.Lock()
	s.sections[id] = p
	s.notifyUnlock()
}

// Subscribe registers fn and returns a function that removes it. Listeners
// run synchronously in subscription order.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.listeners = append(s.listeners, subscription{id: id, fn: fn})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, sub := range s.listeners {
				if sub.id == id {
					s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
					return
				}
			}
		})
	}
}

// notifyUnlock must be called with s.mu held. Listeners are invoked after
// the lock is released so they may read the store.
func (s *Store) notifyUnlock() {
	state := s.snapshotLocked()
	listeners := make([]subscription, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, sub := range listeners {
		sub.fn(state)
	}
}

func (s *Store) snapshotLocked() State {
	sections := make(map[SectionID]float64, len(s.sections))
	for id, p := range s.sections {
		sections[id] = p
	}
	return State{
		Active:          s.active,
		HasActive:       s.hasActive,
		GlobalProgress:  s.global,
		SectionProgress: sections,
	}
}
