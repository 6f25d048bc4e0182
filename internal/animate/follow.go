package animate

import "github.com/nivar/journey/internal/scroll"

// Follow calls fn with the stored progress of id now and whenever that
// value changes. Updates to other sections do not call fn.
func Follow(store *scroll.Store, id scroll.SectionID, fn func(progress float64)) (unsubscribe func()) {
	last := store.Progress(id)
	fn(last)
	return store.Subscribe(func(st scroll.State) {
		p := st.Progress(id)
		if p == last {
			return
		}
		last = p
		fn(p)
	})
}
