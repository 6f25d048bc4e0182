package animate

import (
	"time"

	"github.com/nivar/journey/internal/scroll"
)

// Timeline reveals a vertical list of entries as its section progresses.
type Timeline struct {
	Items int
}

// TimelineState is the visual state for one progress value.
type TimelineState struct {
	// LineBottom is the CSS bottom offset of the progress line.
	LineBottom string
	Revealed   []bool
}

// Trigger returns the progress after which item index is revealed.
func (tl Timeline) Trigger(index int) float64 {
	if tl.Items <= 0 {
		return 1
	}
	return float64(index) / (float64(tl.Items) * 1.5)
}

// State computes the timeline's visual state from progress alone.
func (tl Timeline) State(progress float64) TimelineState {
	st := TimelineState{
		LineBottom: percent((1 - scroll.Clamp(progress)) * 100),
		Revealed:   make([]bool, max(tl.Items, 0)),
	}
	for i := range st.Revealed {
		st.Revealed[i] = progress > tl.Trigger(i)
	}
	return st
}

// timelineItemAnimation slides a single entry up while it fades in.
var timelineItemAnimation = Staggered{
	Count:    1,
	Duration: 800 * time.Millisecond,
	Easing:   EaseOutExpo,
	Tracks: []Track{
		{Property: "opacity", From: 0, To: 1},
		{Property: "translateY", From: 50, To: 0, Unit: "px"},
	},
}

// TimelineView binds a Timeline to its line and item elements. Each item
// animates in once, the first time its trigger is passed.
type TimelineView struct {
	timeline Timeline
	frames   scroll.FrameSource
	line     Element
	items    []Element
	played   []bool
	players  []*Player
}

// NewTimelineView mounts the view; items start hidden.
func NewTimelineView(frames scroll.FrameSource, line Element, items []Element) *TimelineView {
	v := &TimelineView{
		timeline: Timeline{Items: len(items)},
		frames:   frames,
		line:     line,
		items:    items,
		played:   make([]bool, len(items)),
		players:  make([]*Player, len(items)),
	}
	for _, el := range items {
		timelineItemAnimation.StyleAt(0, 0).Apply(el)
	}
	return v
}

// Update applies the state for progress.
func (v *TimelineView) Update(progress float64) TimelineState {
	st := v.timeline.State(progress)
	if v.line != nil {
		v.line.SetStyle("bottom", st.LineBottom)
	}
	for i, revealed := range st.Revealed {
		if !revealed || v.played[i] || v.items[i] == nil {
			continue
		}
		v.played[i] = true
		v.players[i] = Play(v.frames, timelineItemAnimation, []Element{v.items[i]}, nil)
	}
	return st
}

// Unmount stops running item animations.
func (v *TimelineView) Unmount() {
	for _, p := range v.players {
		p.Stop()
	}
}
