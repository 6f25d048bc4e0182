package scroll

import "math"

// Rect is an element's bounding box relative to the top of the viewport.
type Rect struct {
	Top    float64
	Bottom float64
	Height float64
}

// Viewport describes the document scroll position and window size.
type Viewport struct {
	ScrollTop      float64
	Height         float64
	DocumentHeight float64
}

// Scrollable returns the number of pixels the document can scroll.
func (v Viewport) Scrollable() float64 {
	return v.DocumentHeight - v.Height
}

// Document exposes the geometry the producers need. Bounds reports false
// when no element carries the id.
type Document interface {
	Viewport() Viewport
	Bounds(id SectionID) (Rect, bool)
}

// Clamp limits v to [0,1]. NaN clamps to 0.
func Clamp(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// GlobalProgress returns scrollTop / (documentHeight - viewportHeight).
// A page that cannot scroll reports 0 and ok=false instead of a
// non-finite ratio.
func GlobalProgress(v Viewport) (progress float64, ok bool) {
	scrollable := v.Scrollable()
	if scrollable <= 0 {
		return 0, false
	}
	return Clamp(v.ScrollTop / scrollable), true
}

// LocalProgress maps a section's traversal of the viewport to [0,1]: 0 while
// its top edge is at the bottom of the viewport, 1 once its bottom edge has
// passed the top.
func LocalProgress(r Rect, viewportHeight float64) float64 {
	span := r.Height + viewportHeight
	if span <= 0 {
		return 0
	}
	return Clamp(1 - r.Bottom/span)
}

// VisibleRatio returns the fraction of r that lies inside a viewport of the
// given height.
func VisibleRatio(r Rect, viewportHeight float64) float64 {
	if r.Height <= 0 {
		return 0
	}
	top := math.Max(r.Top, 0)
	bottom := math.Min(r.Bottom, viewportHeight)
	if bottom <= top {
		return 0
	}
	return Clamp((bottom - top) / r.Height)
}

// Straddles reports whether r spans the horizontal line at y.
func (r Rect) Straddles(y float64) bool {
	return r.Top <= y && r.Bottom >= y
}
