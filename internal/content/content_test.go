package content

import (
	"strings"
	"testing"

	"github.com/nivar/journey/internal/scroll"
)

func TestLoadEmbedded(t *testing.T) {
	t.Parallel()

	c, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := []scroll.SectionID{"intro", "about", "projects", "goals", "resume", "contact"}
	got := c.SectionIDs()
	if len(got) != len(want) {
		t.Fatalf("SectionIDs() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("SectionIDs() = %v, want %v", got, want)
		}
	}
	if c.Home() != "intro" {
		t.Fatalf("Home() = %q, want intro", c.Home())
	}
	if len(c.Goals.Timeline) != 5 {
		t.Fatalf("timeline items = %d, want 5", len(c.Goals.Timeline))
	}
	if len(c.SkillPaths) != 7 {
		t.Fatalf("skill paths = %d, want 7", len(c.SkillPaths))
	}
}

func TestSEOCatalogFromContent(t *testing.T) {
	t.Parallel()

	c, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	cat := c.SEOCatalog()
	if m := cat.For("projects"); m.Title != "Projects | Angel Nivar" || !strings.HasSuffix(m.Canonical, "/#projects") {
		t.Fatalf("For(projects) = %+v", m)
	}
	if m := cat.For("intro"); m.Title != c.Site.Title || m.Canonical != c.Site.BaseURL {
		t.Fatalf("For(intro) = %+v", m)
	}
}

func TestParseRejectsInvalidSections(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"no sections": "site: {title: x}\n",
		"duplicate":   "sections:\n  - id: a\n  - id: a\n",
		"empty id":    "sections:\n  - nav: A\n",
		"bad anchor":  "sections:\n  - id: 'a b'\n",
		"bad yaml":    "sections: [\n",
		"bad start":   "sections:\n  - id: a\nmotion: {skill_paths_start: later}\n",
		"bad easing":  "sections:\n  - id: a\nmotion: {grid_easing: bouncy}\n",
	}
	for name, doc := range tests {
		if _, err := Parse([]byte(doc)); err == nil {
			t.Errorf("%s: Parse() error = nil", name)
		}
	}
}

func TestEmbeddedMotion(t *testing.T) {
	t.Parallel()

	c, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if c.Motion.SkillPathsStart != "scroll" {
		t.Fatalf("SkillPathsStart = %q, want scroll", c.Motion.SkillPathsStart)
	}
	if c.Motion.CardEasing != "easeOutExpo" {
		t.Fatalf("CardEasing = %q, want easeOutExpo", c.Motion.CardEasing)
	}
}

func TestVisibleTech(t *testing.T) {
	t.Parallel()

	p := Project{Tech: []string{"a", "b", "c", "d", "e", "f"}}
	shown, hidden := p.VisibleTech()
	if len(shown) != 4 || hidden != 2 {
		t.Fatalf("VisibleTech() = %v, %d, want 4 shown, 2 hidden", shown, hidden)
	}
	shown, hidden = Project{Tech: []string{"a"}}.VisibleTech()
	if len(shown) != 1 || hidden != 0 {
		t.Fatalf("VisibleTech() = %v, %d", shown, hidden)
	}
}

func TestPathStyle(t *testing.T) {
	t.Parallel()

	c := &Content{PathColors: []string{"#111", "#222"}}
	if c.PathColor(3) != "#222" {
		t.Fatalf("PathColor(3) = %q", c.PathColor(3))
	}
	if PathWidth(4) != 2 {
		t.Fatalf("PathWidth(4) = %d, want 2", PathWidth(4))
	}
	if (&Content{}).PathColor(0) != "#d4af37" {
		t.Fatal("PathColor without palette mismatch")
	}
}
