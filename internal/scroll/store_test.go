package scroll

import "testing"

func TestStoreProgressDefaultsToZero(t *testing.T) {
	t.Parallel()

	s := NewStore("")
	if got := s.Progress("missing"); got != 0 {
		t.Fatalf("Progress(missing) = %v, want 0", got)
	}
	if _, ok := s.ActiveSection(); ok {
		t.Fatal("ActiveSection() ok = true, want false for empty store")
	}
}

func TestStoreSetSectionProgressMerges(t *testing.T) {
	t.Parallel()

	s := NewStore("intro")
	s.SetSectionProgress("about", 0.25)
	s.SetSectionProgress("goals", 0.75)
	s.SetSectionProgress("about", 0.5)

	if got := s.Progress("about"); got != 0.5 {
		t.Fatalf("Progress(about) = %v, want 0.5", got)
	}
	if got := s.Progress("goals"); got != 0.75 {
		t.Fatalf("Progress(goals) = %v, want 0.75", got)
	}
	if id, ok := s.ActiveSection(); !ok || id != "intro" {
		t.Fatalf("ActiveSection() = %q, %t, want intro, true", id, ok)
	}
}

func TestStoreDoesNotClamp(t *testing.T) {
	t.Parallel()

	s := NewStore("")
	s.SetGlobalProgress(1.5)
	if got := s.GlobalProgress(); got != 1.5 {
		t.Fatalf("GlobalProgress() = %v, want 1.5", got)
	}
}

func TestStoreNotifiesInSubscriptionOrderBeforeReturning(t *testing.T) {
	t.Parallel()

	s := NewStore("")
	var calls []string
	s.Subscribe(func(State) { calls = append(calls, "first") })
	s.Subscribe(func(st State) {
		calls = append(calls, "second")
		if st.GlobalProgress != 0.3 {
			t.Errorf("state.GlobalProgress = %v, want 0.3", st.GlobalProgress)
		}
		// Listeners may read the store without deadlocking.
		if got := s.GlobalProgress(); got != 0.3 {
			t.Errorf("GlobalProgress() in listener = %v, want 0.3", got)
		}
	})

	s.SetGlobalProgress(0.3)

	if len(calls) != 2 || calls[0] != "first" || calls[1] != "second" {
		t.Fatalf("calls = %v, want [first second]", calls)
	}
}

func TestStoreUnsubscribe(t *testing.T) {
	t.Parallel()

	s := NewStore("")
	count := 0
	unsubscribe := s.Subscribe(func(State) { count++ })
	s.SetActiveSection("about")
	unsubscribe()
	unsubscribe()
	s.SetActiveSection("projects")

	if count != 1 {
		t.Fatalf("count = %d, want 1", count)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	t.Parallel()

	s := NewStore("")
	s.SetSectionProgress("about", 0.4)
	snap := s.Snapshot()
	snap.SectionProgress["about"] = 0.9

	if got := s.Progress("about"); got != 0.4 {
		t.Fatalf("Progress(about) = %v, want 0.4", got)
	}
	if got := snap.Progress("unknown"); got != 0 {
		t.Fatalf("snapshot Progress(unknown) = %v, want 0", got)
	}
}
