// Package analytics decides which engagement events the page emits.
//
// Events go to an optional Sink; a Tracker without a sink evaluates its
// rules but sends nothing.
package analytics

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/nivar/journey/internal/scroll"
)

// Event names understood by the ingest endpoint.
const (
	EventPageView       = "page_view"
	EventScrollDepth    = "scroll_depth"
	EventSectionView    = "section_view"
	EventOutboundLink   = "outbound_link"
	EventEngagementTime = "engagement_time"
)

// EventNames lists every tracked event name.
var EventNames = []string{EventPageView, EventScrollDepth, EventSectionView, EventOutboundLink, EventEngagementTime}

// KnownEvent reports whether name is one of the tracked event names.
func KnownEvent(name string) bool {
	for _, n := range EventNames {
		if n == name {
			return true
		}
	}
	return false
}

// Event is an event name with a flat payload.
type Event struct {
	Name   string            `json:"name"`
	Params map[string]string `json:"params"`
}

// Sink receives events.
type Sink interface {
	Send(Event)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Event)

// Send implements Sink.
func (f SinkFunc) Send(e Event) { f(e) }

// MultiSink fans events out to every non-nil sink.
func MultiSink(sinks ...Sink) Sink {
	var live []Sink
	for _, s := range sinks {
		if s != nil {
			live = append(live, s)
		}
	}
	if len(live) == 0 {
		return nil
	}
	return SinkFunc(func(e Event) {
		for _, s := range live {
			s.Send(e)
		}
	})
}

// Tracker applies the tracking rules of one page session.
type Tracker struct {
	sink       Sink
	depth      *DepthTracker
	engagement *Engagement
}

// NewTracker creates a tracker. sink may be nil. start is the page load time.
func NewTracker(sink Sink, start time.Time) *Tracker {
	return &Tracker{
		sink:       sink,
		depth:      NewDepthTracker(DefaultMilestones...),
		engagement: NewEngagement(start),
	}
}

// Enabled reports whether events are delivered anywhere.
func (t *Tracker) Enabled() bool {
	return t.sink != nil
}

// PageView records a page view.
func (t *Tracker) PageView(title, location, path string) Event {
	return t.emit(EventPageView, map[string]string{
		"page_title":    title,
		"page_location": location,
		"page_path":     path,
	})
}

// ScrollDepth records the milestones newly reached at vp and returns them.
func (t *Tracker) ScrollDepth(vp scroll.Viewport) []int {
	reached := t.depth.Observe(Percent(vp))
	for _, m := range reached {
		t.emit(EventScrollDepth, map[string]string{"depth": strconv.Itoa(m) + "%"})
	}
	return reached
}

// Sample implements scroll.Sampler so depth tracking follows the page's
// sampling policy.
func (t *Tracker) Sample(doc scroll.Document) {
	t.ScrollDepth(doc.Viewport())
}

// SectionView records that a section became at least half visible.
func (t *Tracker) SectionView(id scroll.SectionID) Event {
	return t.emit(EventSectionView, map[string]string{"section_id": string(id)})
}

// OutboundLink records a click on href when it leaves pageHost. It reports
// whether the link was outbound.
func (t *Tracker) OutboundLink(href, text, pageHost string) bool {
	if !IsOutbound(href, pageHost) {
		return false
	}
	t.emit(EventOutboundLink, map[string]string{
		"url":  href,
		"text": strings.TrimSpace(text),
	})
	return true
}

// VisibilityChanged records whether the page is in the foreground.
func (t *Tracker) VisibilityChanged(visible bool) {
	t.engagement.SetVisible(visible)
}

// Unload emits the engagement time when the page is being left while
// visible. It reports whether an event was produced.
func (t *Tracker) Unload(now time.Time) (int, bool) {
	seconds, ok := t.engagement.Seconds(now)
	if !ok {
		return 0, false
	}
	t.emit(EventEngagementTime, map[string]string{"time_seconds": strconv.Itoa(seconds)})
	return seconds, true
}

func (t *Tracker) emit(name string, params map[string]string) Event {
	e := Event{Name: name, Params: params}
	if t.sink != nil {
		t.sink.Send(e)
	}
	return e
}

// DefaultMilestones are the tracked scroll-depth percentages.
var DefaultMilestones = []int{25, 50, 75, 100}

// Percent returns floor(scrollTop / scrollable * 100); 0 for a page that
// cannot scroll.
func Percent(vp scroll.Viewport) int {
	scrollable := vp.Scrollable()
	if scrollable <= 0 {
		return 0
	}
	return int(math.Floor(vp.ScrollTop / scrollable * 100))
}

// DepthTracker records each milestone at most once.
type DepthTracker struct {
	milestones []int
	recorded   map[int]bool
}

// NewDepthTracker creates a tracker for ascending milestones.
func NewDepthTracker(milestones ...int) *DepthTracker {
	ms := make([]int, len(milestones))
	copy(ms, milestones)
	return &DepthTracker{milestones: ms, recorded: make(map[int]bool)}
}

// Observe returns, ascending, every milestone at or below percent that had
// not been recorded yet. Jumping past several milestones in one sample
// reports all of them.
func (d *DepthTracker) Observe(percent int) []int {
	var reached []int
	for _, m := range d.milestones {
		if percent >= m && !d.recorded[m] {
			d.recorded[m] = true
			reached = append(reached, m)
		}
	}
	return reached
}

// Recorded returns the milestones reached so far.
func (d *DepthTracker) Recorded() []int {
	var out []int
	for _, m := range d.milestones {
		if d.recorded[m] {
			out = append(out, m)
		}
	}
	return out
}

// IsOutbound reports whether href is an http(s) link to another host.
func IsOutbound(href, pageHost string) bool {
	if !strings.HasPrefix(href, "http") {
		return false
	}
	u, err := url.Parse(href)
	if err != nil || u.Hostname() == "" {
		return false
	}
	return !strings.EqualFold(u.Hostname(), hostOnly(pageHost))
}

func hostOnly(host string) string {
	if u, err := url.Parse("//" + host); err == nil && u.Hostname() != "" {
		return u.Hostname()
	}
	return host
}

// Engagement measures how long the page stayed open.
type Engagement struct {
	start   time.Time
	visible bool
}

// NewEngagement starts measuring at start with the page visible.
func NewEngagement(start time.Time) *Engagement {
	return &Engagement{start: start, visible: true}
}

// SetVisible records a visibility change.
func (e *Engagement) SetVisible(visible bool) {
	e.visible = visible
}

// Seconds returns whole seconds since start. ok is false while the page is
// hidden, in which case nothing should be reported.
func (e *Engagement) Seconds(now time.Time) (int, bool) {
	if !e.visible {
		return 0, false
	}
	d := now.Sub(e.start)
	if d < 0 {
		d = 0
	}
	return int(d / time.Second), true
}

// Validate checks an event received from a client.
func Validate(e Event) error {
	if !KnownEvent(e.Name) {
		return fmt.Errorf("unknown event %q", e.Name)
	}
	if len(e.Params) > 16 {
		return fmt.Errorf("event %q: too many params", e.Name)
	}
	for k, v := range e.Params {
		if k == "" || len(k) > 64 || len(v) > 2048 {
			return fmt.Errorf("event %q: invalid param %q", e.Name, k)
		}
	}
	return nil
}
