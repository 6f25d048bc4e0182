// Package content loads the static portfolio data shown on the page.
package content

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nivar/journey/internal/animate"
	"github.com/nivar/journey/internal/scroll"
	"github.com/nivar/journey/internal/seo"
)

//go:embed content.yaml
var embedded []byte

// ErrNoSections is returned for content without any section.
var ErrNoSections = errors.New("content has no sections")

// Site holds page-wide metadata.
type Site struct {
	Owner       string `yaml:"owner"`
	BaseURL     string `yaml:"base_url"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Email       string `yaml:"email"`
	ResumePath  string `yaml:"resume_path"`
	Tagline     string `yaml:"tagline"`
}

// Section is one navigable page region.
type Section struct {
	ID          scroll.SectionID `yaml:"id"`
	Nav         string           `yaml:"nav"`
	Heading     string           `yaml:"heading"`
	Title       string           `yaml:"title"`
	Description string           `yaml:"description"`
}

// Paragraph is a block of about text with its parallax speed.
type Paragraph struct {
	Text     string  `yaml:"text"`
	Parallax float64 `yaml:"parallax"`
}

// Skill is one entry of the skills grid.
type Skill struct {
	Name     string `yaml:"name"`
	Category string `yaml:"category"`
	Color    string `yaml:"color"`
}

// Link is an external project link.
type Link struct {
	Text string `yaml:"text"`
	URL  string `yaml:"url"`
}

// Project is one stop on the projects journey.
type Project struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Tech        []string `yaml:"tech"`
	Image       string   `yaml:"image"`
	Links       []Link   `yaml:"links"`
}

// maxVisibleTech is how many technology tags a project card shows.
const maxVisibleTech = 4

// VisibleTech returns the tags shown on the card and how many are hidden.
func (p Project) VisibleTech() (shown []string, hidden int) {
	if len(p.Tech) <= maxVisibleTech {
		return p.Tech, 0
	}
	return p.Tech[:maxVisibleTech], len(p.Tech) - maxVisibleTech
}

// TimelineItem is one entry of the goals timeline.
type TimelineItem struct {
	Date    string `yaml:"date"`
	Title   string `yaml:"title"`
	Content string `yaml:"content"`
	Color   string `yaml:"color"`
}

// Goals is the career goals section.
type Goals struct {
	Summary    string         `yaml:"summary"`
	StartColor string         `yaml:"start_color"`
	EndColor   string         `yaml:"end_color"`
	Timeline   []TimelineItem `yaml:"timeline"`
}

// ResumeEntry is one job or degree.
type ResumeEntry struct {
	Title  string   `yaml:"title"`
	Org    string   `yaml:"org"`
	Start  string   `yaml:"start"`
	End    string   `yaml:"end"`
	Logo   string   `yaml:"logo"`
	Points []string `yaml:"points"`
}

// Resume holds the tabs of the resume section.
type Resume struct {
	Work      []ResumeEntry `yaml:"work"`
	Education []ResumeEntry `yaml:"education"`
}

// Entries returns the entries of the "work" or "education" tab.
func (r Resume) Entries(kind string) ([]ResumeEntry, bool) {
	switch kind {
	case "work":
		return r.Work, true
	case "education":
		return r.Education, true
	}
	return nil, false
}

// Motion tunes the page animations. Easings use the names accepted by
// animate.ParseEasing.
type Motion struct {
	SkillPathsStart string `yaml:"skill_paths_start"` // "scroll" or "load"
	GridEasing      string `yaml:"grid_easing"`
	CardEasing      string `yaml:"card_easing"`
}

// Content is the whole data set of the page.
type Content struct {
	Site       Site        `yaml:"site"`
	Sections   []Section   `yaml:"sections"`
	About      []Paragraph `yaml:"about"`
	Skills     []Skill     `yaml:"skills"`
	SkillPaths []string    `yaml:"skill_paths"`
	PathColors []string    `yaml:"path_colors"`
	Projects   []Project   `yaml:"projects"`
	Goals      Goals       `yaml:"goals"`
	Resume     Resume      `yaml:"resume"`
	Motion     Motion      `yaml:"motion"`
}

// Load parses the embedded content.
func Load() (*Content, error) {
	return Parse(embedded)
}

// Parse decodes and validates content from YAML.
func Parse(data []byte) (*Content, error) {
	var c Content
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse content yaml: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks that sections exist and that their ids are unique,
// non-empty and usable as URL fragments.
func (c *Content) Validate() error {
	if len(c.Sections) == 0 {
		return ErrNoSections
	}
	seen := make(map[scroll.SectionID]bool, len(c.Sections))
	for i, s := range c.Sections {
		id := string(s.ID)
		if id == "" {
			return fmt.Errorf("section %d: empty id", i)
		}
		if strings.ContainsAny(id, " #/?") {
			return fmt.Errorf("section %q: id is not a valid anchor", id)
		}
		if seen[s.ID] {
			return fmt.Errorf("section %q: duplicate id", id)
		}
		seen[s.ID] = true
	}

	switch c.Motion.SkillPathsStart {
	case "", "scroll", "load":
	default:
		return fmt.Errorf("motion: unknown skill path start %q", c.Motion.SkillPathsStart)
	}
	for _, e := range []string{c.Motion.GridEasing, c.Motion.CardEasing} {
		if _, err := animate.ParseEasing(e); err != nil {
			return fmt.Errorf("motion: %w", err)
		}
	}
	return nil
}

// SectionIDs returns section ids in page order.
func (c *Content) SectionIDs() []scroll.SectionID {
	ids := make([]scroll.SectionID, len(c.Sections))
	for i, s := range c.Sections {
		ids[i] = s.ID
	}
	return ids
}

// Section returns the section with id.
func (c *Content) Section(id scroll.SectionID) (Section, bool) {
	for _, s := range c.Sections {
		if s.ID == id {
			return s, true
		}
	}
	return Section{}, false
}

// Home returns the first section's id.
func (c *Content) Home() scroll.SectionID {
	return c.Sections[0].ID
}

// SEOCatalog builds the per-section head catalog.
func (c *Content) SEOCatalog() seo.Catalog {
	entries := make(map[string]seo.Entry, len(c.Sections))
	for _, s := range c.Sections {
		if s.Title == "" && s.Description == "" {
			continue
		}
		entries[string(s.ID)] = seo.Entry{Title: s.Title, Description: s.Description}
	}
	return seo.Catalog{
		BaseURL:  c.Site.BaseURL,
		Home:     string(c.Home()),
		Default:  seo.Entry{Title: c.Site.Title, Description: c.Site.Description},
		Sections: entries,
	}
}

// PathColor returns the stroke colour of skill path index.
func (c *Content) PathColor(index int) string {
	if len(c.PathColors) == 0 {
		return "#d4af37"
	}
	return c.PathColors[index%len(c.PathColors)]
}

// PathWidth returns the stroke width of skill path index.
func PathWidth(index int) int {
	return 1 + index%3
}
