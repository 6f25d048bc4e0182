package scroll

// ActiveLine is the viewport fraction, from the top, a section must span to
// become active.
const ActiveLine = 0.3

// SectionChangeFunc runs after the active section changes.
type SectionChangeFunc func(previous, current SectionID)

// Container computes global progress and detects the active section.
type Container struct {
	store    *Store
	order    []SectionID
	onChange []SectionChangeFunc
}

// NewContainer creates a container scanning sections in the given order.
// Earlier sections win when several span the active line.
func NewContainer(store *Store, order []SectionID) *Container {
	ids := make([]SectionID, len(order))
	copy(ids, order)
	return &Container{store: store, order: ids}
}

// OnSectionChange registers fn to run whenever the active section changes.
func (c *Container) OnSectionChange(fn SectionChangeFunc) {
	c.onChange = append(c.onChange, fn)
}

// Sample reads doc once, writes global progress and, when it changed, the
// active section.
func (c *Container) Sample(doc Document) {
	vp := doc.Viewport()
	progress, _ := GlobalProgress(vp)
	c.store.SetGlobalProgress(progress)

	next, found := ResolveActive(doc, c.order, vp.Height)
	if !found {
		return
	}
	prev, had := c.store.ActiveSection()
	if had && prev == next {
		return
	}
	c.store.SetActiveSection(next)
	for _, fn := range c.onChange {
		fn(prev, next)
	}
}

// ResolveActive returns the first section in order whose bounds straddle the
// active line. Sections missing from doc are skipped.
func ResolveActive(doc Document, order []SectionID, viewportHeight float64) (SectionID, bool) {
	line := viewportHeight * ActiveLine
	for _, id := range order {
		r, ok := doc.Bounds(id)
		if !ok {
			continue
		}
		if r.Straddles(line) {
			return id, true
		}
	}
	return "", false
}
