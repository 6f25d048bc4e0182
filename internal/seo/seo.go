// Package seo keeps the document head in step with the active section.
package seo

import "strings"

// Meta is the head content for one section.
type Meta struct {
	Title       string
	Description string
	Canonical   string
}

// Entry overrides the default title and description for a section.
type Entry struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

// Catalog resolves per-section head content.
type Catalog struct {
	BaseURL  string
	Home     string
	Default  Entry
	Sections map[string]Entry
}

// For returns the head content for section. Unknown sections and the home
// section use the defaults; the canonical URL carries the section fragment
// except on the home section.
func (c Catalog) For(section string) Meta {
	m := Meta{Title: c.Default.Title, Description: c.Default.Description}
	if e, ok := c.Sections[section]; ok {
		if e.Title != "" {
			m.Title = e.Title
		}
		if e.Description != "" {
			m.Description = e.Description
		}
	}
	base := strings.TrimRight(c.BaseURL, "/")
	if section == "" || section == c.Home {
		m.Canonical = base
	} else {
		m.Canonical = base + "/#" + section
	}
	return m
}

// Head is the writable part of a document head. SetMeta and SetLink
// report false when the target tag does not exist.
type Head interface {
	SetTitle(title string)
	SetMeta(selector, content string) bool
	SetLink(rel, href string) bool
}

// Selectors of the tags Apply updates.
const (
	SelectorDescription   = `meta[name="description"]`
	SelectorOGTitle       = `meta[property="og:title"]`
	SelectorOGDescription = `meta[property="og:description"]`
	RelCanonical          = "canonical"
)

// Apply writes m into head and returns the selectors of tags that were
// missing. The title is always written.
func Apply(head Head, m Meta) (missing []string) {
	head.SetTitle(m.Title)
	if !head.SetMeta(SelectorDescription, m.Description) {
		missing = append(missing, SelectorDescription)
	}
	if !head.SetMeta(SelectorOGTitle, m.Title) {
		missing = append(missing, SelectorOGTitle)
	}
	if !head.SetMeta(SelectorOGDescription, m.Description) {
		missing = append(missing, SelectorOGDescription)
	}
	if !head.SetLink(RelCanonical, m.Canonical) {
		missing = append(missing, `link[rel="canonical"]`)
	}
	return missing
}
