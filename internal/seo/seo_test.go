package seo

import (
	"reflect"
	"testing"
)

func testCatalog() Catalog {
	return Catalog{
		BaseURL: "https://journey.example/",
		Home:    "intro",
		Default: Entry{Title: "Journey | Portfolio", Description: "Default description."},
		Sections: map[string]Entry{
			"about":   {Title: "About Me | Journey", Description: "About description."},
			"contact": {Title: "Contact | Journey"},
		},
	}
}

func TestCatalogFor(t *testing.T) {
	t.Parallel()

	c := testCatalog()
	tests := []struct {
		section string
		want    Meta
	}{
		{"intro", Meta{"Journey | Portfolio", "Default description.", "https://journey.example"}},
		{"about", Meta{"About Me | Journey", "About description.", "https://journey.example/#about"}},
		{"contact", Meta{"Contact | Journey", "Default description.", "https://journey.example/#contact"}},
		{"", Meta{"Journey | Portfolio", "Default description.", "https://journey.example"}},
	}
	for _, tt := range tests {
		if got := c.For(tt.section); got != tt.want {
			t.Errorf("For(%q) = %+v, want %+v", tt.section, got, tt.want)
		}
	}
}

type fakeHead struct {
	title string
	metas map[string]string
	links map[string]string
}

func (h *fakeHead) SetTitle(title string) { h.title = title }

func (h *fakeHead) SetMeta(selector, content string) bool {
	if _, ok := h.metas[selector]; !ok {
		return false
	}
	h.metas[selector] = content
	return true
}

func (h *fakeHead) SetLink(rel, href string) bool {
	if _, ok := h.links[rel]; !ok {
		return false
	}
	h.links[rel] = href
	return true
}

func TestApplyWritesAllTags(t *testing.T) {
	t.Parallel()

	head := &fakeHead{
		metas: map[string]string{SelectorDescription: "", SelectorOGTitle: "", SelectorOGDescription: ""},
		links: map[string]string{RelCanonical: ""},
	}
	missing := Apply(head, testCatalog().For("about"))

	if len(missing) != 0 {
		t.Fatalf("missing = %v, want none", missing)
	}
	if head.title != "About Me | Journey" || head.metas[SelectorOGTitle] != "About Me | Journey" {
		t.Fatalf("head = %+v", head)
	}
	if head.links[RelCanonical] != "https://journey.example/#about" {
		t.Fatalf("canonical = %q", head.links[RelCanonical])
	}
}

func TestApplyReportsMissingTags(t *testing.T) {
	t.Parallel()

	head := &fakeHead{
		metas: map[string]string{SelectorDescription: ""},
		links: map[string]string{},
	}
	missing := Apply(head, testCatalog().For("intro"))

	want := []string{SelectorOGTitle, SelectorOGDescription, `link[rel="canonical"]`}
	if !reflect.DeepEqual(missing, want) {
		t.Fatalf("missing = %v, want %v", missing, want)
	}
	if head.title != "Journey | Portfolio" {
		t.Fatalf("title = %q", head.title)
	}
}
