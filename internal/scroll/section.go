package scroll

// SectionThreshold is the visible ratio at which a section counts as entered.
const SectionThreshold = 0.1

// SectionCallbacks are optional hooks a section exposes to its content.
type SectionCallbacks struct {
	OnEnter    func()
	OnLeave    func()
	OnProgress func(progress float64)
}

// Section tracks local progress and visibility for one region.
type Section struct {
	id        SectionID
	store     *Store
	callbacks SectionCallbacks
	observer  *Observer
	detached  bool
}

// NewSection creates a section writing its progress under id.
func NewSection(store *Store, id SectionID, callbacks SectionCallbacks) *Section {
	s := &Section{id: id, store: store, callbacks: callbacks}
	s.observer = NewObserver(SectionThreshold, s.visibilityChanged)
	return s
}

// ID returns the section identifier.
func (s *Section) ID() SectionID {
	return s.id
}

// Sample recomputes local progress from doc. It reports false, and writes
// nothing, when the section's element is absent or the section is detached.
func (s *Section) Sample(doc Document) (float64, bool) {
	if s.detached {
		return 0, false
	}
	r, ok := doc.Bounds(s.id)
	if !ok {
		return 0, false
	}
	vh := doc.Viewport().Height
	s.observer.ObserveRect(r, vh)

	progress := LocalProgress(r, vh)
	s.store.SetSectionProgress(s.id, progress)
	if s.callbacks.OnProgress != nil {
		s.callbacks.OnProgress(progress)
	}
	return progress, true
}

// Detach disconnects the observer; later samples are ignored.
func (s *Section) Detach() {
	s.detached = true
	s.observer.Disconnect()
}

func (s *Section) visibilityChanged(intersecting bool) {
	switch {
	case intersecting && s.callbacks.OnEnter != nil:
		s.callbacks.OnEnter()
	case !intersecting && s.callbacks.OnLeave != nil:
		s.callbacks.OnLeave()
	}
}
