package a11y

import "github.com/nivar/journey/internal/scroll"

// Navigator moves between sections in page order from the keyboard.
type Navigator struct {
	order  []scroll.SectionID
	store  *scroll.Store
	scroll func(id scroll.SectionID) bool
}

// NewNavigator creates a navigator. scrollTo brings a section into view and
// reports false when its element is missing.
func NewNavigator(store *scroll.Store, order []scroll.SectionID, scrollTo func(scroll.SectionID) bool) *Navigator {
	ids := make([]scroll.SectionID, len(order))
	copy(ids, order)
	return &Navigator{order: ids, store: store, scroll: scrollTo}
}

// Target returns the section a key leads to from the active section.
// handled is false for keys the navigator ignores; ok is false when the key
// is handled but there is nowhere to go.
func (n *Navigator) Target(key string) (id scroll.SectionID, ok, handled bool) {
	if len(n.order) == 0 {
		return "", false, false
	}
	current, _ := n.store.ActiveSection()
	idx := n.index(current)
	switch key {
	case "ArrowDown", "PageDown":
		if idx >= len(n.order)-1 {
			return "", false, true
		}
		return n.order[idx+1], true, true
	case "ArrowUp", "PageUp":
		if idx <= 0 {
			return "", false, true
		}
		return n.order[idx-1], true, true
	case "Home":
		return n.order[0], true, true
	case "End":
		return n.order[len(n.order)-1], true, true
	}
	return "", false, false
}

// HandleKey navigates for key and reports whether the key was consumed
// (the caller should then suppress its default action).
func (n *Navigator) HandleKey(key string) bool {
	id, ok, handled := n.Target(key)
	if ok && n.scroll != nil {
		n.scroll(id)
	}
	return handled
}

func (n *Navigator) index(id scroll.SectionID) int {
	for i, s := range n.order {
		if s == id {
			return i
		}
	}
	return -1
}

// DocumentTitle returns "<section title> | <base>", or base alone when the
// section has no title.
func DocumentTitle(base, sectionTitle string) string {
	if sectionTitle == "" {
		return base
	}
	return sectionTitle + " | " + base
}
