package store

import (
	"errors"
	"strings"
	"testing"

	"github.com/bethropolis/stage/internal/artifact"
	"github.com/bethropolis/stage/internal/diff"
	"github.com/bethropolis/stage/internal/event"
)

func newStore() *Store {
	return New(Options{Diff: diff.Options{Context: 3}}, nil)
}

func open(id, title, content string) event.ArtifactOpen {
	return event.ArtifactOpen{
		ID:          id,
		Title:       title,
		Content:     content,
		ContentType: "code",
		Language:    "go",
	}
}

func TestOpenArtifact(t *testing.T) {
	t.Parallel()
	s := newStore()

	if err := s.OpenArtifact(open("a-1", "main.go", "package main")); err != nil {
		t.Fatalf("open: %v", err)
	}
	if s.Count() != 1 {
		t.Errorf("count %d, want 1", s.Count())
	}
	if !s.IsActive("a-1") {
		t.Error("opened artifact not active")
	}
	if got := s.Active().Title; got != "main.go" {
		t.Errorf("active title %q", got)
	}
}

func TestReopenRefreshesInPlace(t *testing.T) {
	t.Parallel()
	s := newStore()

	s.OpenArtifact(open("a-1", "a.go", "one"))
	s.OpenArtifact(open("a-2", "b.go", "two"))

	// Scroll and change mode on the first artifact, then re-open it.
	s.SetActive("a-1")
	a, _ := s.Get("a-1")
	a.ScrollLine = 7
	wantMode, err := s.CycleViewMode("a-1")
	if err != nil {
		t.Fatalf("cycle: %v", err)
	}

	if err := s.OpenArtifact(open("a-1", "a.go", "one updated")); err != nil {
		t.Fatalf("re-open: %v", err)
	}

	if s.Count() != 2 {
		t.Fatalf("re-open duplicated tab: count %d", s.Count())
	}
	a, _ = s.Get("a-1")
	if a.ContentString() != "one updated" {
		t.Errorf("content %q after re-open", a.ContentString())
	}
	if a.ScrollLine != 7 {
		t.Errorf("scroll %d after re-open, want 7", a.ScrollLine)
	}
	if a.Mode != wantMode {
		t.Errorf("mode %v after re-open, want %v", a.Mode, wantMode)
	}
	// Tab order unchanged: a-1 still first.
	if got := s.Artifacts()[0].ID; got != "a-1" {
		t.Errorf("first tab %q, want a-1", got)
	}
}

func TestOpenWithoutIDIsMalformed(t *testing.T) {
	t.Parallel()
	s := newStore()
	err := s.OpenArtifact(event.ArtifactOpen{Title: "x"})
	if !errors.Is(err, ErrMalformedEvent) {
		t.Errorf("err %v, want ErrMalformedEvent", err)
	}
}

func TestUpdateFullReplaceRetainsPrevious(t *testing.T) {
	t.Parallel()
	s := newStore()
	s.OpenArtifact(open("a-1", "a.go", "v1"))

	err := s.UpdateArtifact(event.ArtifactUpdate{ID: "a-1", Content: "v2", ChangeType: "full_replace"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	a, _ := s.Get("a-1")
	if a.ContentString() != "v2" {
		t.Errorf("content %q, want v2", a.ContentString())
	}
	if !a.Text.HasPrevious || a.Text.Previous != "v1" {
		t.Error("previous content not retained")
	}
	if !a.Dirty {
		t.Error("writable artifact not dirty after update")
	}
}

func TestUpdateUnknownArtifact(t *testing.T) {
	t.Parallel()
	s := newStore()
	err := s.UpdateArtifact(event.ArtifactUpdate{ID: "ghost", Content: "x", ChangeType: "full_replace"})
	if !errors.Is(err, ErrUnknownArtifact) {
		t.Errorf("err %v, want ErrUnknownArtifact", err)
	}
}

func TestUpdateDiffInstallsDiffContent(t *testing.T) {
	t.Parallel()
	s := newStore()
	s.OpenArtifact(open("a-1", "a.txt", "a\nb\nc"))

	patch := "@@ -2,1 +2,1 @@\n-b\n+x\n"
	err := s.UpdateArtifact(event.ArtifactUpdate{ID: "a-1", Content: patch, ChangeType: "diff"})
	if err != nil {
		t.Fatalf("diff update: %v", err)
	}

	a, _ := s.Get("a-1")
	if a.Diff == nil {
		t.Fatal("diff content not installed")
	}
	if a.Diff.Modified != "a\nx\nc" {
		t.Errorf("modified side %q, want %q", a.Diff.Modified, "a\nx\nc")
	}
	if a.Diff.Stats.Additions != 1 || a.Diff.Stats.Deletions != 1 {
		t.Errorf("stats +%d -%d", a.Diff.Stats.Additions, a.Diff.Stats.Deletions)
	}
}

func TestUpdateMalformedDiff(t *testing.T) {
	t.Parallel()
	s := newStore()
	s.OpenArtifact(open("a-1", "a.txt", "a"))

	err := s.UpdateArtifact(event.ArtifactUpdate{ID: "a-1", Content: "@@ not a header @@", ChangeType: "diff"})
	if !errors.Is(err, ErrMalformedEvent) {
		t.Errorf("err %v, want ErrMalformedEvent", err)
	}
	// Artifact survives untouched.
	a, _ := s.Get("a-1")
	if a.ContentString() != "a" {
		t.Errorf("content %q after failed patch", a.ContentString())
	}
}

func TestUpdateDiffRemovingPastEndRejected(t *testing.T) {
	t.Parallel()
	s := newStore()
	s.OpenArtifact(open("a-1", "a.txt", "a"))

	// Parses cleanly but claims to remove more lines than the artifact
	// holds. Must be rejected, not applied partially.
	patch := "@@ -1,2 +1,0 @@\n-a\n-b\n"
	err := s.UpdateArtifact(event.ArtifactUpdate{ID: "a-1", Content: patch, ChangeType: "diff"})
	if !errors.Is(err, ErrMalformedEvent) {
		t.Errorf("err %v, want ErrMalformedEvent", err)
	}

	a, _ := s.Get("a-1")
	if a.ContentString() != "a" {
		t.Errorf("content %q after rejected patch, want %q", a.ContentString(), "a")
	}
	if a.Diff != nil {
		t.Error("diff content installed from rejected patch")
	}
}

func TestUpdatePartialFallsBackToReplace(t *testing.T) {
	t.Parallel()
	s := newStore()
	s.OpenArtifact(open("a-1", "a.txt", "v1"))

	if err := s.UpdateArtifact(event.ArtifactUpdate{ID: "a-1", Content: "v2", ChangeType: "partial"}); err != nil {
		t.Fatalf("partial update: %v", err)
	}
	a, _ := s.Get("a-1")
	if a.ContentString() != "v2" {
		t.Errorf("content %q, want v2", a.ContentString())
	}
}

func TestCloseArtifactActivatesLast(t *testing.T) {
	t.Parallel()
	s := newStore()
	s.OpenArtifact(open("a-1", "a.go", "a"))
	s.OpenArtifact(open("a-2", "b.go", "b"))
	s.OpenArtifact(open("a-3", "c.go", "c"))

	if err := s.CloseArtifact("a-3"); err != nil {
		t.Fatalf("close: %v", err)
	}
	if !s.IsActive("a-2") {
		t.Errorf("active %q after closing active tab, want a-2", s.ActiveID())
	}

	// Closing an inactive tab keeps the active one.
	s.CloseArtifact("a-1")
	if !s.IsActive("a-2") {
		t.Errorf("active %q after closing inactive tab", s.ActiveID())
	}

	s.CloseArtifact("a-2")
	if s.Active() != nil {
		t.Error("active artifact after closing all tabs")
	}
}

func TestTabNavigationWraps(t *testing.T) {
	t.Parallel()
	s := newStore()
	s.OpenArtifact(open("a-1", "a.go", "a"))
	s.OpenArtifact(open("a-2", "b.go", "b"))
	s.OpenArtifact(open("a-3", "c.go", "c"))

	s.NextArtifact() // wraps from last to first
	if !s.IsActive("a-1") {
		t.Errorf("after Next from a-3: active %q, want a-1", s.ActiveID())
	}
	s.PrevArtifact() // wraps back
	if !s.IsActive("a-3") {
		t.Errorf("after Prev from a-1: active %q, want a-3", s.ActiveID())
	}
	s.PrevArtifact()
	if !s.IsActive("a-2") {
		t.Errorf("after Prev from a-3: active %q, want a-2", s.ActiveID())
	}
}

func TestApplyStateDelta(t *testing.T) {
	t.Parallel()
	s := newStore()
	s.OpenArtifact(open("a-1", "a.go", "original"))
	a, _ := s.Get("a-1")
	a.ScrollLine = 3

	delta := event.StateDelta{
		ArtifactsOpen: []event.ArtifactOpen{
			open("a-1", "a.go", "rehydrated"),
			open("a-2", "b.go", "fresh"),
		},
		ArtifactsUpdate: []event.ArtifactUpdate{
			{ID: "a-2", Content: "fresh v2", ChangeType: "full_replace"},
		},
	}
	if err := s.ApplyStateDelta(delta); err != nil {
		t.Fatalf("apply delta: %v", err)
	}

	if s.Count() != 2 {
		t.Errorf("count %d after delta, want 2", s.Count())
	}
	a, _ = s.Get("a-1")
	if a.ContentString() != "rehydrated" {
		t.Errorf("a-1 content %q", a.ContentString())
	}
	if a.ScrollLine != 3 {
		t.Errorf("a-1 scroll %d after delta, want 3", a.ScrollLine)
	}
	b, _ := s.Get("a-2")
	if b.ContentString() != "fresh v2" {
		t.Errorf("a-2 content %q", b.ContentString())
	}
}

func TestApplyStateDeltaSkipsMalformed(t *testing.T) {
	t.Parallel()
	s := newStore()

	delta := event.StateDelta{
		ArtifactsOpen: []event.ArtifactOpen{
			{Title: "no id"}, // malformed
			open("a-1", "a.go", "good"),
		},
		ArtifactsUpdate: []event.ArtifactUpdate{
			{ID: "ghost", Content: "x", ChangeType: "full_replace"}, // unknown
			{ID: "a-1", Content: "good v2", ChangeType: "full_replace"},
		},
	}

	err := s.ApplyStateDelta(delta)
	if err == nil {
		t.Error("malformed sub-events not reported")
	}
	if !errors.Is(err, ErrMalformedEvent) || !errors.Is(err, ErrUnknownArtifact) {
		t.Errorf("joined error %v missing sentinels", err)
	}

	// The valid sub-events still applied.
	a, getErr := s.Get("a-1")
	if getErr != nil {
		t.Fatalf("valid open was skipped: %v", getErr)
	}
	if a.ContentString() != "good v2" {
		t.Errorf("a-1 content %q, want %q", a.ContentString(), "good v2")
	}
}

func TestCycleViewModePerArtifact(t *testing.T) {
	t.Parallel()
	s := newStore()
	s.OpenArtifact(open("a-1", "a.go", "a"))
	s.OpenArtifact(open("a-2", "b.go", "b"))

	mode, err := s.CycleViewMode("a-2")
	if err != nil {
		t.Fatalf("cycle: %v", err)
	}
	if mode != artifact.ModeUnified {
		t.Errorf("returned mode %v, want ModeUnified", mode)
	}
	b, _ := s.Get("a-2")
	if b.Mode != artifact.ModeUnified {
		t.Errorf("a-2 mode %v, want ModeUnified", b.Mode)
	}
	a, _ := s.Get("a-1")
	if a.Mode != artifact.ModeNormal {
		t.Errorf("a-1 mode %v changed by a-2's cycle", a.Mode)
	}

	if _, err := s.CycleViewMode("ghost"); !errors.Is(err, ErrUnknownArtifact) {
		t.Errorf("cycle of unknown id: err %v, want ErrUnknownArtifact", err)
	}
	if a.Mode != artifact.ModeNormal || b.Mode != artifact.ModeUnified {
		t.Error("rejected cycle changed an artifact's mode")
	}
}

func TestVisibleLinesUseCache(t *testing.T) {
	t.Parallel()
	s := newStore()
	s.OpenArtifact(open("a-1", "main.go", "package main\n\nfunc main() {}"))

	first, err := s.VisibleLines("a-1", 0, 10)
	if err != nil {
		t.Fatalf("visible lines: %v", err)
	}
	if len(first) != 3 {
		t.Fatalf("got %d lines, want 3", len(first))
	}
	if len(first[0].Tokens) == 0 {
		t.Error("no tokens for Go source line")
	}

	second, _ := s.VisibleLines("a-1", 0, 10)
	if &first[0].Tokens[0] != &second[0].Tokens[0] {
		t.Error("second render recomputed tokens instead of hitting the cache")
	}
}

func TestVisibleLinesInvalidatedOnUpdate(t *testing.T) {
	t.Parallel()
	s := newStore()
	s.OpenArtifact(open("a-1", "main.go", "x := 1"))

	s.VisibleLines("a-1", 0, 1)
	before := s.CacheLen()
	if before == 0 {
		t.Fatal("nothing cached after render")
	}

	s.UpdateArtifact(event.ArtifactUpdate{ID: "a-1", Content: "x := 2", ChangeType: "full_replace"})
	if s.CacheLen() != 0 {
		t.Errorf("cache holds %d entries after update, want 0", s.CacheLen())
	}
}

func TestDiffViewFromPrevious(t *testing.T) {
	t.Parallel()
	s := newStore()
	s.OpenArtifact(open("a-1", "a.txt", "a\nb\nc"))
	s.UpdateArtifact(event.ArtifactUpdate{ID: "a-1", Content: "a\nx\nc", ChangeType: "full_replace"})

	d, err := s.DiffView("a-1")
	if err != nil {
		t.Fatalf("diff view: %v", err)
	}
	if d.Stats.Additions != 1 || d.Stats.Deletions != 1 {
		t.Errorf("stats +%d -%d, want +1 -1", d.Stats.Additions, d.Stats.Deletions)
	}

	// Memoized until the next change.
	again, _ := s.DiffView("a-1")
	if d != again {
		t.Error("diff view recomputed without a content change")
	}
	s.UpdateArtifact(event.ArtifactUpdate{ID: "a-1", Content: "a\ny\nc", ChangeType: "full_replace"})
	fresh, _ := s.DiffView("a-1")
	if fresh == d {
		t.Error("diff view not refreshed after update")
	}
}

func TestDiffViewNeverUpdatedDiffsAgainstEmpty(t *testing.T) {
	t.Parallel()
	s := newStore()
	s.OpenArtifact(open("a-1", "a.txt", "one\ntwo"))

	d, err := s.DiffView("a-1")
	if err != nil {
		t.Fatalf("diff view: %v", err)
	}
	if d.Stats.Additions != 2 || d.Stats.Deletions != 0 {
		t.Errorf("stats +%d -%d, want +2 -0", d.Stats.Additions, d.Stats.Deletions)
	}
}

func TestChunks(t *testing.T) {
	t.Parallel()
	s := New(Options{ChunkSize: 2}, nil)
	s.OpenArtifact(open("a-1", "a.txt", "1\n2\n3\n4\n5"))

	it, err := s.Chunks("a-1")
	if err != nil {
		t.Fatalf("chunks: %v", err)
	}
	if it.Total() != 3 {
		t.Errorf("total %d chunks, want 3", it.Total())
	}
}

func TestDirtyTracking(t *testing.T) {
	t.Parallel()
	s := newStore()
	s.OpenArtifact(open("a-1", "a.txt", "v1"))

	if s.HasUnsavedChanges() {
		t.Error("fresh store has unsaved changes")
	}
	s.UpdateActiveContent("v2")
	if !s.HasUnsavedChanges() {
		t.Error("local edit not tracked as unsaved")
	}
	if err := s.MarkSaved("a-1"); err != nil {
		t.Fatalf("mark saved: %v", err)
	}
	if s.HasUnsavedChanges() {
		t.Error("unsaved changes after save")
	}
}

func TestScrollByClamps(t *testing.T) {
	t.Parallel()
	s := newStore()
	s.OpenArtifact(open("a-1", "a.txt", strings.Repeat("x\n", 9)+"x"))

	s.ScrollBy(100)
	if got := s.Active().ScrollLine; got != 9 {
		t.Errorf("scroll %d after overscroll, want 9", got)
	}
	s.ScrollBy(-100)
	if got := s.Active().ScrollLine; got != 0 {
		t.Errorf("scroll %d after underscroll, want 0", got)
	}
}

func TestActiveChangedEvents(t *testing.T) {
	t.Parallel()
	events := event.NewManager()
	var activations []string
	events.Subscribe(event.TypeActiveChanged, func(e event.Event) bool {
		activations = append(activations, e.Data.(event.ActiveChangedData).ID)
		return false
	})

	s := New(Options{}, events)
	s.OpenArtifact(open("a-1", "a.go", "a"))
	s.OpenArtifact(open("a-2", "b.go", "b"))
	s.OpenArtifact(open("a-2", "b.go", "b again")) // already active, no event

	want := []string{"a-1", "a-2"}
	if len(activations) != len(want) {
		t.Fatalf("activations %v, want %v", activations, want)
	}
	for i := range want {
		if activations[i] != want[i] {
			t.Errorf("activation %d: %q, want %q", i, activations[i], want[i])
		}
	}
}
