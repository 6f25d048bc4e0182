//go:build js && wasm

package main

import (
	"encoding/json"
	"syscall/js"

	"github.com/nivar/journey/internal/a11y"
	"github.com/nivar/journey/internal/analytics"
)

// postJSON sends body without waiting for the response. beacon uses
// navigator.sendBeacon, which survives page unload.
func postJSON(win js.Value, method, url string, body []byte, beacon bool) {
	payload := string(body)
	if beacon && method == "POST" {
		nav := win.Get("navigator")
		if nav.Get("sendBeacon").Type() == js.TypeFunction {
			blob := win.Get("Blob").New([]any{payload}, map[string]any{"type": "application/json"})
			if nav.Call("sendBeacon", url, blob).Truthy() {
				return
			}
		}
	}
	win.Call("fetch", url, map[string]any{
		"method":      method,
		"headers":     map[string]any{"Content-Type": "application/json"},
		"body":        payload,
		"credentials": "same-origin",
		"keepalive":   true,
	})
}

// serverSink posts events to the ingest endpoint.
type serverSink struct {
	win js.Value
}

func (s serverSink) Send(e analytics.Event) {
	body, err := json.Marshal(struct {
		Events []analytics.Event `json:"events"`
	}{Events: []analytics.Event{e}})
	if err != nil {
		warn("encode event %s: %v", e.Name, err)
		return
	}
	postJSON(s.win, "POST", "/api/events", body, e.Name == analytics.EventEngagementTime)
}

// gtagSink forwards events to gtag when the page loaded it.
type gtagSink struct {
	win js.Value
}

func newGtagSink(win js.Value) analytics.Sink {
	if win.Get("gtag").Type() != js.TypeFunction {
		return nil
	}
	return gtagSink{win: win}
}

func (s gtagSink) Send(e analytics.Event) {
	params := make(map[string]any, len(e.Params))
	for k, v := range e.Params {
		params[k] = v
	}
	s.win.Call("gtag", "event", e.Name, params)
}

// prefStorage keeps accessibility settings in localStorage and mirrors
// writes to the server. A page without a readable local record starts from
// the server-rendered seed.
type prefStorage struct {
	win  js.Value
	seed string
}

func (p prefStorage) Get(key string) (value string, ok bool, err error) {
	err = try(func() {
		v := p.win.Get("localStorage").Call("getItem", key)
		if !v.IsNull() {
			value, ok = v.String(), true
		}
	})
	if err == nil && ok {
		return value, true, nil
	}
	if key == a11y.StorageKey && p.seed != "" {
		if err != nil {
			warn("journey: localStorage unavailable, using server settings: %v", err)
		}
		return p.seed, true, nil
	}
	return "", false, err
}

func (p prefStorage) Set(key, value string) error {
	err := try(func() {
		p.win.Get("localStorage").Call("setItem", key, value)
	})
	if key == a11y.StorageKey {
		postJSON(p.win, "PUT", "/api/a11y", []byte(value), false)
	}
	return err
}
