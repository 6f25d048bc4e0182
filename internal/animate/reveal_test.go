package animate

import (
	"testing"
	"time"
)

func TestSplitCharsUsesNonBreakingSpaces(t *testing.T) {
	t.Parallel()

	got := SplitChars("Hi yo")
	want := []string{"H", "i", " ", "y", "o"}
	if len(got) != len(want) {
		t.Fatalf("SplitChars() = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("SplitChars()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestTextRevealAnimationFrames(t *testing.T) {
	t.Parallel()

	anim := TextRevealAnimation("abc", DefaultTextRevealOptions())
	if anim.Count != 3 {
		t.Fatalf("Count = %d, want 3", anim.Count)
	}

	start := anim.StyleAt(2, 0)
	if start["opacity"] != "0" || start["transform"] != "translateY(100%)" {
		t.Fatalf("initial style = %v", start)
	}
	end := anim.StyleAt(2, anim.Total())
	if end["opacity"] != "1" || end["transform"] != "translateY(0%)" {
		t.Fatalf("final style = %v", end)
	}
	if anim.Total() != 900*time.Millisecond {
		t.Fatalf("Total() = %v, want 900ms", anim.Total())
	}
}

func TestGridAnimationScalesIn(t *testing.T) {
	t.Parallel()

	anim := GridAnimation(2, DefaultGridOptions())
	if got := anim.StyleAt(0, 0)["transform"]; got != "scale(0.8)" {
		t.Fatalf("initial transform = %q, want scale(0.8)", got)
	}
	if got := anim.StyleAt(1, anim.Total())["transform"]; got != "scale(1)" {
		t.Fatalf("final transform = %q, want scale(1)", got)
	}
}

func TestOneShotFiresOnce(t *testing.T) {
	t.Parallel()

	plays := 0
	o := NewOneShot(0.2, func() { plays++ })
	o.Observe(0.1)
	if plays != 0 {
		t.Fatalf("plays below threshold = %d, want 0", plays)
	}
	o.Observe(0.5)
	o.Observe(0)
	o.Observe(0.9)
	o.Fire()

	if plays != 1 {
		t.Fatalf("plays = %d, want 1", plays)
	}
	if !o.Fired() {
		t.Fatal("Fired() = false, want true")
	}
}

func TestRevealPlaysAtMostOncePerMount(t *testing.T) {
	t.Parallel()

	frames := &manualFrames{}
	targets, fakes := fakeElements(3)
	opts := DefaultTextRevealOptions()
	r := NewReveal(frames, TextRevealAnimation("abc", opts), targets, opts)

	if fakes[0].styles["opacity"] != "0" {
		t.Fatalf("initial opacity = %q, want 0", fakes[0].styles["opacity"])
	}

	r.Observe(0.5)
	r.Observe(0)
	r.Observe(0.5)
	if r.Plays() != 1 {
		t.Fatalf("Plays() = %d, want 1", r.Plays())
	}

	for i := 0; i < 100 && frames.pending() > 0; i++ {
		frames.tick(50 * time.Millisecond)
	}
	if !r.Player().Finished() {
		t.Fatal("player not finished")
	}
	for i, f := range fakes {
		if f.styles["opacity"] != "1" {
			t.Fatalf("target %d opacity = %q, want 1", i, f.styles["opacity"])
		}
	}
	if frames.pending() != 0 {
		t.Fatalf("pending frames = %d, want 0 after finish", frames.pending())
	}
}

func TestRevealWithoutScrollTriggerPlaysImmediately(t *testing.T) {
	t.Parallel()

	frames := &manualFrames{}
	targets, _ := fakeElements(2)
	opts := DefaultTextRevealOptions()
	opts.TriggerOnScroll = false
	r := NewReveal(frames, TextRevealAnimation("ab", opts), targets, opts)

	if r.Plays() != 1 {
		t.Fatalf("Plays() = %d, want 1", r.Plays())
	}
	r.Observe(1)
	if r.Plays() != 1 {
		t.Fatalf("Plays() after observe = %d, want 1", r.Plays())
	}
}

func TestRevealWithoutTargetsIsSkipped(t *testing.T) {
	t.Parallel()

	frames := &manualFrames{}
	opts := DefaultGridOptions()
	r := NewReveal(frames, GridAnimation(0, opts), nil, opts)
	r.Observe(1)

	if r.Plays() != 0 {
		t.Fatalf("Plays() = %d, want 0", r.Plays())
	}
	if frames.pending() != 0 {
		t.Fatalf("pending frames = %d, want 0", frames.pending())
	}
	r.Unmount()
}

func TestRevealUnmountCancelsAnimation(t *testing.T) {
	t.Parallel()

	frames := &manualFrames{}
	targets, _ := fakeElements(1)
	opts := DefaultGridOptions()
	opts.TriggerOnScroll = false
	r := NewReveal(frames, GridAnimation(1, opts), targets, opts)
	r.Unmount()

	if ran := frames.tick(16 * time.Millisecond); ran != 0 {
		t.Fatalf("frames ran after unmount = %d, want 0", ran)
	}
}
