package scroll

// Observer mimics an intersection observer for one element: it turns visible
// ratios into enter/leave crossings of a threshold.
type Observer struct {
	threshold   float64
	intersected bool
	seen        bool
	closed      bool
	onChange    func(intersecting bool)
}

// NewObserver creates an observer firing onChange when the visible ratio
// crosses threshold in either direction.
func NewObserver(threshold float64, onChange func(intersecting bool)) *Observer {
	return &Observer{threshold: threshold, onChange: onChange}
}

// Observe feeds the latest visible ratio. The first observation only fires
// when the element is already intersecting; afterwards every crossing fires
// exactly once.
func (o *Observer) Observe(ratio float64) {
	if o.closed {
		return
	}
	intersecting := ratio > 0 && ratio >= o.threshold
	if o.seen && intersecting == o.intersected {
		return
	}
	first := !o.seen
	o.seen = true
	o.intersected = intersecting
	if first && !intersecting {
		return
	}
	if o.onChange != nil {
		o.onChange(intersecting)
	}
}

// ObserveRect computes the visible ratio of r and feeds it.
func (o *Observer) ObserveRect(r Rect, viewportHeight float64) {
	o.Observe(VisibleRatio(r, viewportHeight))
}

// Disconnect stops all further callbacks.
func (o *Observer) Disconnect() {
	o.closed = true
}
