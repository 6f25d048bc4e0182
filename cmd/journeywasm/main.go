//go:build js && wasm

// Command journeywasm drives the scroll animations of the journey page in
// the browser.
package main

import (
	"strconv"
	"strings"
	"syscall/js"
	"time"

	"github.com/nivar/journey/internal/a11y"
	"github.com/nivar/journey/internal/analytics"
	"github.com/nivar/journey/internal/animate"
	"github.com/nivar/journey/internal/content"
	"github.com/nivar/journey/internal/perf"
	"github.com/nivar/journey/internal/scroll"
	"github.com/nivar/journey/internal/seo"
)

// sectionViewThreshold is the visible ratio at which a section counts as
// viewed for analytics.
const sectionViewThreshold = 0.5

type app struct {
	page      *page
	frames    rafFrames
	store     *scroll.Store
	scheduler *scroll.Scheduler
	tracker   *analytics.Tracker
	a11y      *a11y.Manager
	content   *content.Content
	order     []scroll.SectionID
}

func main() {
	p := newPage()
	c, err := content.Load()
	if err != nil {
		warn("journey: %v", err)
		return
	}

	order := sectionOrder(p)
	if len(order) == 0 {
		warn("journey: no sections found")
		return
	}

	body := p.body()
	policy, err := scroll.ParsePolicy(data(body, "sampling"))
	if err != nil {
		warn("journey: %v; sampling per frame", err)
	}

	a := &app{
		page:    p,
		frames:  rafFrames{win: p.win},
		store:   scroll.NewStore(order[0]),
		content: c,
		order:   order,
	}
	container := scroll.NewContainer(a.store, order)
	a.scheduler = scroll.NewScheduler(policy, p, a.frames, container)
	a.tracker = analytics.NewTracker(analytics.MultiSink(serverSink{win: p.win}, newGtagSink(p.win)), time.Now())

	a.bindA11y()
	a.bindSections(container)
	a.bindProgressBar()
	a.bindReveals()
	a.bindParallax()
	a.bindPathDraw()
	a.bindTimeline()
	a.bindJourney()
	a.bindKeyboard()
	a.bindAnalytics()
	a.bindPerf()

	onScroll := func(js.Value) { a.scheduler.Scroll() }
	listen(p.win, "scroll", map[string]any{"passive": true}, onScroll)
	listen(p.win, "resize", nil, onScroll)
	a.scheduler.Scroll()
	a.scheduler.Flush()

	select {}
}

func sectionOrder(p *page) []scroll.SectionID {
	var ids []scroll.SectionID
	for _, el := range p.all("[data-section]") {
		if id := el.Get("id").String(); id != "" {
			ids = append(ids, scroll.SectionID(id))
		}
	}
	return ids
}

func (a *app) reduceMotion() bool {
	return a.a11y != nil && a.a11y.Settings().Get(a11y.ReduceMotion)
}

func (a *app) bindA11y() {
	body := a.page.body()
	st := prefStorage{win: a.page.win, seed: data(body, "a11y")}
	m, err := a11y.NewManager(st, classList{el: body})
	if err != nil {
		warn("journey: accessibility settings: %v", err)
	}
	a.a11y = m
	buttons := a.page.all("[data-a11y-toggle]")
	pressed := func() {
		for _, btn := range buttons {
			if flag, err := a11y.ParseFlag(data(btn, "a11yToggle")); err == nil {
				btn.Call("setAttribute", "aria-pressed", strconv.FormatBool(m.Settings().Get(flag)))
			}
		}
	}

	// Another tab changed the stored record.
	listen(a.page.win, "storage", nil, func(ev js.Value) {
		if str(ev.Get("key")) != a11y.StorageKey {
			return
		}
		var s a11y.Settings
		if raw := str(ev.Get("newValue")); raw != "" {
			var err error
			if s, err = a11y.Decode(raw); err != nil {
				warn("journey: %v", err)
				return
			}
		}
		m.Sync(s)
		pressed()
	})

	for _, btn := range buttons {
		flag, err := a11y.ParseFlag(data(btn, "a11yToggle"))
		if err != nil {
			warn("journey: %v", err)
			continue
		}
		listen(btn, "click", nil, func(js.Value) {
			if _, err := m.Toggle(flag); err != nil {
				warn("journey: save accessibility settings: %v", err)
			}
			pressed()
		})
	}
	pressed()
}

func (a *app) bindSections(container *scroll.Container) {
	catalog := a.content.SEOCatalog()
	catalog.BaseURL = a.page.win.Get("location").Get("origin").String()
	h := head{doc: a.page.doc}
	announcer := a.page.doc.Call("getElementById", "sr-announcer")

	container.OnSectionChange(func(_, current scroll.SectionID) {
		if missing := seo.Apply(h, catalog.For(string(current))); len(missing) > 0 {
			warn("journey: head tags missing: %s", strings.Join(missing, ", "))
		}
		for _, link := range a.page.all("[data-nav]") {
			if data(link, "nav") == string(current) {
				link.Call("setAttribute", "aria-current", "true")
			} else {
				link.Call("removeAttribute", "aria-current")
			}
		}
		if sec, ok := a.content.Section(current); ok && !announcer.IsNull() {
			announcer.Set("textContent", a11y.DocumentTitle(a.content.Site.Owner, sec.Nav))
		}
	})

	for _, id := range a.order {
		el := a.page.doc.Call("getElementById", string(id))
		sec := scroll.NewSection(a.store, id, scroll.SectionCallbacks{
			OnEnter: func() { el.Get("classList").Call("add", "in-view") },
			OnLeave: func() { el.Get("classList").Call("remove", "in-view") },
		})
		a.scheduler.AddSection(sec)

		viewed := scroll.NewObserver(sectionViewThreshold, func(in bool) {
			if in {
				a.tracker.SectionView(id)
			}
		})
		a.scheduler.AddSampler(scroll.SamplerFunc(func(doc scroll.Document) {
			if r, ok := doc.Bounds(id); ok {
				viewed.ObserveRect(r, doc.Viewport().Height)
			}
		}))
	}
}

func (a *app) bindProgressBar() {
	bar := a.page.doc.Call("getElementById", "scroll-progress")
	if bar.IsNull() {
		return
	}
	a.store.Subscribe(func(st scroll.State) {
		pct := st.GlobalProgress * 100
		bar.Get("style").Call("setProperty", "width", strconv.FormatFloat(pct, 'f', 2, 64)+"%")
		bar.Call("setAttribute", "aria-valuenow", strconv.Itoa(int(pct)))
	})
}

// observeRatio feeds the visible ratio of el to fn on every sample.
func (a *app) observeRatio(el js.Value, fn func(ratio float64)) {
	a.scheduler.AddSampler(scroll.SamplerFunc(func(doc scroll.Document) {
		fn(scroll.VisibleRatio(rectOf(el), doc.Viewport().Height))
	}))
}

func (a *app) bindReveals() {
	for _, el := range a.page.all(`[data-reveal="text"]`) {
		chars := elements(nodes(el.Call("querySelectorAll", ".char")))
		opts := animate.DefaultTextRevealOptions()
		if a.reduceMotion() {
			opts.TriggerOnScroll = false
			opts.Duration, opts.Stagger = 0, 0
		}
		anim := animate.TextRevealAnimation(attr(el, "aria-label"), opts)
		anim.Count = len(chars)
		r := animate.NewReveal(a.frames, anim, chars, opts)
		a.observeRatio(el, r.Observe)
	}

	for _, el := range a.page.all(`[data-reveal="grid"]`) {
		cells := elements(nodes(el.Get("children")))
		opts := revealEasing(el, animate.DefaultGridOptions())
		r := animate.NewReveal(a.frames, animate.GridAnimation(len(cells), opts), cells, opts)
		a.observeRatio(el, r.Observe)
	}

	for _, el := range a.page.all(`[data-reveal="card"]`) {
		opts := revealEasing(el, animate.DefaultGridOptions())
		r := animate.NewReveal(a.frames, animate.GridAnimation(1, opts), []animate.Element{element{v: el}}, opts)
		a.observeRatio(el, r.Observe)
	}
}

// revealEasing applies the data-reveal-easing attribute of el to opts.
func revealEasing(el js.Value, opts animate.RevealOptions) animate.RevealOptions {
	name := data(el, "revealEasing")
	if name == "" {
		return opts
	}
	e, err := animate.ParseEasing(name)
	if err != nil {
		warn("journey: %v", err)
		return opts
	}
	opts.Easing = e
	return opts
}

type parallaxGroup struct {
	container js.Value
	parallax  animate.Parallax
}

func (a *app) bindParallax() {
	var groups []*parallaxGroup
	for _, el := range a.page.all("[data-parallax]") {
		container := el.Call("closest", "[data-parallax-container]")
		if container.IsNull() {
			container = el.Call("closest", "[data-section]")
		}
		if container.IsNull() {
			continue
		}
		dir, err := animate.ParseDirection(data(el, "parallaxDirection"))
		if err != nil {
			warn("journey: %v", err)
		}
		layer := animate.Layer{
			Element:   element{v: el},
			Speed:     animate.ParseSpeed(data(el, "parallax")),
			Direction: dir,
		}
		var g *parallaxGroup
		for _, existing := range groups {
			if existing.container.Equal(container) {
				g = existing
				break
			}
		}
		if g == nil {
			g = &parallaxGroup{container: container}
			groups = append(groups, g)
		}
		g.parallax.Layers = append(g.parallax.Layers, layer)
	}

	a.scheduler.AddSampler(scroll.SamplerFunc(func(doc scroll.Document) {
		if a.reduceMotion() {
			return
		}
		vh := doc.Viewport().Height
		for _, g := range groups {
			g.parallax.Update(rectOf(g.container), vh)
		}
	}))
}

func (a *app) bindPathDraw() {
	for _, svg := range a.page.all("[data-pathdraw]") {
		id := scroll.SectionID(data(svg, "pathdraw"))
		paths := nodes(svg.Call("querySelectorAll", "path"))
		lengths := make([]float64, len(paths))
		for i, path := range paths {
			lengths[i] = path.Call("getTotalLength").Float()
			path.Get("style").Call("setProperty", "stroke-dasharray", strconv.FormatFloat(lengths[i], 'f', 2, 64))
		}
		draw := animate.PathDraw{Lengths: lengths}
		els := elements(paths)
		if data(svg, "pathdrawStart") == "load" {
			if a.reduceMotion() {
				draw.Apply(els, 1)
			} else {
				draw.PlayIntro(a.frames, els)
			}
			continue
		}
		animate.Follow(a.store, id, func(progress float64) {
			if a.reduceMotion() {
				progress = 1
			}
			draw.Apply(els, progress)
		})
	}
}

func (a *app) bindTimeline() {
	for _, el := range a.page.all("[data-timeline]") {
		id := scroll.SectionID(data(el, "timeline"))
		line := wrap(el.Call("querySelector", "[data-timeline-line]"))
		items := elements(nodes(el.Call("querySelectorAll", "[data-timeline-item]")))
		view := animate.NewTimelineView(a.frames, line, items)
		animate.Follow(a.store, id, func(progress float64) { view.Update(progress) })
	}
}

// bindJourney exposes the projects section progress to CSS.
func (a *app) bindJourney() {
	for _, el := range a.page.all("[data-journey]") {
		id := scroll.SectionID(data(el, "journey"))
		animate.Follow(a.store, id, func(progress float64) {
			el.Get("style").Call("setProperty", "--journey-progress", strconv.FormatFloat(progress, 'f', 4, 64))
		})
	}
}

func (a *app) bindKeyboard() {
	scrollTo := func(id scroll.SectionID) bool {
		el := a.page.doc.Call("getElementById", string(id))
		if el.IsNull() {
			return false
		}
		behavior := "smooth"
		if a.reduceMotion() {
			behavior = "auto"
		}
		el.Call("scrollIntoView", map[string]any{"behavior": behavior, "block": "start"})
		return true
	}
	nav := a11y.NewNavigator(a.store, a.order, scrollTo)
	listen(a.page.doc, "keydown", nil, func(ev js.Value) {
		if ev.Get("altKey").Bool() || ev.Get("ctrlKey").Bool() || ev.Get("metaKey").Bool() {
			return
		}
		switch strings.ToLower(ev.Get("target").Get("tagName").String()) {
		case "input", "textarea", "select":
			return
		}
		if nav.HandleKey(ev.Get("key").String()) {
			ev.Call("preventDefault")
		}
	})
}

func (a *app) bindAnalytics() {
	loc := a.page.win.Get("location")
	a.tracker.PageView(a.page.doc.Get("title").String(), loc.Get("href").String(), loc.Get("pathname").String())
	a.scheduler.AddSampler(a.tracker)

	listen(a.page.doc, "click", map[string]any{"capture": true}, func(ev js.Value) {
		link := ev.Get("target").Call("closest", "a[href]")
		if link.IsNull() {
			return
		}
		a.tracker.OutboundLink(link.Get("href").String(), link.Get("textContent").String(), loc.Get("host").String())
	})
	listen(a.page.doc, "visibilitychange", nil, func(js.Value) {
		a.tracker.VisibilityChanged(a.page.doc.Get("visibilityState").String() == "visible")
	})
	listen(a.page.win, "pagehide", nil, func(js.Value) {
		a.tracker.Unload(time.Now())
	})
}

func (a *app) bindPerf() {
	body := a.page.body()
	monitor := perf.NewMonitor()
	throttle := perf.NewThrottle(monitor, time.Second)
	body.Get("dataset").Set("detail", string(throttle.Level()))

	var readout js.Value
	if body.Get("dataset").Get("devMonitor").Type() == js.TypeString {
		readout = a.page.doc.Call("getElementById", "perf-monitor")
	}

	loop := scroll.NewLoop(a.frames, func(delta time.Duration) {
		if level, changed := throttle.Frame(delta); changed {
			body.Get("dataset").Set("detail", string(level))
		}
		if !readout.IsUndefined() && !readout.IsNull() {
			fps := monitor.FPS()
			readout.Set("textContent", "FPS: "+strconv.Itoa(fps))
			readout.Get("dataset").Set("band", string(perf.BandFor(fps)))
		}
	})
	loop.Start()
}
