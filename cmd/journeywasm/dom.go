//go:build js && wasm

package main

import (
	"fmt"
	"syscall/js"
	"time"

	"github.com/nivar/journey/internal/animate"
	"github.com/nivar/journey/internal/scroll"
)

// element adapts a DOM node to animate.Element.
type element struct {
	v js.Value
}

func (e element) SetStyle(property, value string) {
	e.v.Get("style").Call("setProperty", property, value)
}

func wrap(v js.Value) animate.Element {
	if v.IsNull() || v.IsUndefined() {
		return nil
	}
	return element{v: v}
}

func rectOf(el js.Value) scroll.Rect {
	r := el.Call("getBoundingClientRect")
	return scroll.Rect{
		Top:    r.Get("top").Float(),
		Bottom: r.Get("bottom").Float(),
		Height: r.Get("height").Float(),
	}
}

func nodes(list js.Value) []js.Value {
	n := list.Length()
	out := make([]js.Value, n)
	for i := 0; i < n; i++ {
		out[i] = list.Index(i)
	}
	return out
}

func elements(list []js.Value) []animate.Element {
	out := make([]animate.Element, len(list))
	for i, v := range list {
		out[i] = element{v: v}
	}
	return out
}

func str(v js.Value) string {
	if v.Type() != js.TypeString {
		return ""
	}
	return v.String()
}

// data returns the data attribute key (in dataset form) of el, or "".
func data(el js.Value, key string) string {
	return str(el.Get("dataset").Get(key))
}

func attr(el js.Value, name string) string {
	return str(el.Call("getAttribute", name))
}

// page implements scroll.Document over the live document.
type page struct {
	win js.Value
	doc js.Value
}

func newPage() *page {
	win := js.Global()
	return &page{win: win, doc: win.Get("document")}
}

func (p *page) Viewport() scroll.Viewport {
	return scroll.Viewport{
		ScrollTop:      p.win.Get("scrollY").Float(),
		Height:         p.win.Get("innerHeight").Float(),
		DocumentHeight: p.doc.Get("documentElement").Get("scrollHeight").Float(),
	}
}

func (p *page) Bounds(id scroll.SectionID) (scroll.Rect, bool) {
	el := p.doc.Call("getElementById", string(id))
	if el.IsNull() {
		return scroll.Rect{}, false
	}
	return rectOf(el), true
}

func (p *page) all(selector string) []js.Value {
	return nodes(p.doc.Call("querySelectorAll", selector))
}

func (p *page) body() js.Value {
	return p.doc.Get("body")
}

// head implements seo.Head.
type head struct {
	doc js.Value
}

func (h head) SetTitle(title string) {
	h.doc.Set("title", title)
}

func (h head) SetMeta(selector, content string) bool {
	el := h.doc.Call("querySelector", selector)
	if el.IsNull() {
		return false
	}
	el.Call("setAttribute", "content", content)
	return true
}

func (h head) SetLink(rel, href string) bool {
	el := h.doc.Call("querySelector", `link[rel="`+rel+`"]`)
	if el.IsNull() {
		return false
	}
	el.Call("setAttribute", "href", href)
	return true
}

// classList implements a11y.ClassList on the body.
type classList struct {
	el js.Value
}

func (c classList) Toggle(class string, on bool) {
	c.el.Get("classList").Call("toggle", class, on)
}

// try runs fn and converts a thrown JavaScript exception into an error.
func try(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	fn()
	return nil
}

// rafFrames schedules callbacks with requestAnimationFrame.
type rafFrames struct {
	win js.Value
}

func (f rafFrames) RequestFrame(fn func(now time.Time)) (cancel func()) {
	var cb js.Func
	cb = js.FuncOf(func(js.Value, []js.Value) any {
		cb.Release()
		fn(time.Now())
		return nil
	})
	id := f.win.Call("requestAnimationFrame", cb)
	return func() {
		f.win.Call("cancelAnimationFrame", id)
		cb.Release()
	}
}

// listen registers fn for event on target for the lifetime of the page.
func listen(target js.Value, event string, opts map[string]any, fn func(ev js.Value)) {
	cb := js.FuncOf(func(_ js.Value, args []js.Value) any {
		var ev js.Value
		if len(args) > 0 {
			ev = args[0]
		}
		fn(ev)
		return nil
	})
	if opts == nil {
		target.Call("addEventListener", event, cb)
		return
	}
	target.Call("addEventListener", event, cb, opts)
}

func warn(format string, args ...any) {
	js.Global().Get("console").Call("warn", fmt.Sprintf(format, args...))
}
