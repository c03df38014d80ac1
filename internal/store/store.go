// internal/store/store.go
// Package store manages the workspace state: open artifacts, tab
// order, the active selection, per-artifact view state, and the
// highlight cache.
package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bethropolis/stage/internal/artifact"
	"github.com/bethropolis/stage/internal/cache"
	"github.com/bethropolis/stage/internal/chunk"
	"github.com/bethropolis/stage/internal/diff"
	"github.com/bethropolis/stage/internal/event"
	"github.com/bethropolis/stage/internal/logger"
	"github.com/bethropolis/stage/internal/syntax"
)

var (
	// ErrUnknownArtifact is returned for operations naming an id that
	// is not open. Callers log and continue; this is never fatal.
	ErrUnknownArtifact = errors.New("unknown artifact")

	// ErrMalformedEvent is returned for protocol events missing
	// required fields or carrying unparseable content.
	ErrMalformedEvent = errors.New("malformed event")
)

// Options configures a Store.
type Options struct {
	Diff          diff.Options
	CacheCapacity int
	ChunkSize     int
}

// Line is one displayable line with its highlight tokens.
type Line struct {
	Number int // zero-based line index
	Text   string
	Tokens []syntax.Token
}

// Store holds the open artifacts and their view state. Not safe for
// concurrent use; the app serializes access through its event loop.
type Store struct {
	artifacts map[artifact.ID]*artifact.Artifact
	order     []artifact.ID
	active    artifact.ID

	cache     *cache.Cache
	diffViews map[artifact.ID]*artifact.DiffContent

	opts   Options
	events *event.Manager
}

// New creates an empty store. events may be nil when no one listens.
func New(opts Options, events *event.Manager) *Store {
	if opts.ChunkSize < 1 {
		opts.ChunkSize = chunk.DefaultSize
	}
	return &Store{
		artifacts: make(map[artifact.ID]*artifact.Artifact),
		diffViews: make(map[artifact.ID]*artifact.DiffContent),
		cache:     cache.New(opts.CacheCapacity),
		opts:      opts,
		events:    events,
	}
}

// --- Artifact Management ---

// OpenArtifact opens a new artifact, or refreshes an already-open one
// in place: same tab position, scroll and view mode preserved. The
// artifact becomes active either way.
func (s *Store) OpenArtifact(ev event.ArtifactOpen) error {
	if ev.ID == "" {
		return fmt.Errorf("%w: open without id", ErrMalformedEvent)
	}

	if existing, ok := s.artifacts[ev.ID]; ok {
		existing.Title = ev.Title
		existing.ContentType = artifact.ContentTypeFromString(ev.ContentType)
		existing.Language = ev.Language
		existing.ReadOnly = ev.ReadOnly
		existing.Replace(ev.Content)
		existing.Dirty = false // host-sent content is the saved state
		s.invalidate(ev.ID)
		logger.Debugf("Refreshed artifact %s (%s)", ev.ID, ev.Title)
	} else {
		s.artifacts[ev.ID] = artifact.New(ev.ID, ev.Title, ev.Content, ev.ContentType, ev.ReadOnly, ev.Language)
		s.order = append(s.order, ev.ID)
		logger.Debugf("Opened artifact %s (%s)", ev.ID, ev.Title)
	}

	s.setActive(ev.ID)
	return nil
}

// UpdateArtifact applies a content change to an open artifact.
func (s *Store) UpdateArtifact(ev event.ArtifactUpdate) error {
	a, ok := s.artifacts[ev.ID]
	if !ok {
		return fmt.Errorf("update %q: %w", ev.ID, ErrUnknownArtifact)
	}

	switch ev.ChangeType {
	case "full_replace":
		a.Replace(ev.Content)
	case "diff", "patch":
		if err := s.applyPatch(a, ev.Content); err != nil {
			return err
		}
	default:
		// Partial and unrecognized change types degrade to a replace,
		// keeping the artifact usable.
		a.Replace(ev.Content)
	}

	s.invalidate(ev.ID)
	logger.Debugf("Updated artifact %s (%s)", ev.ID, ev.ChangeType)
	return nil
}

// applyPatch parses a unified diff and applies it to the artifact's
// current content, installing the result as diff content so both
// versions stay visible.
func (s *Store) applyPatch(a *artifact.Artifact, unified string) error {
	hunks, err := diff.ParseUnified(unified)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}

	original := a.ContentString()
	applied, err := diff.Apply(diff.SplitLines(original), hunks)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}
	modified := strings.Join(applied, "\n")

	content := diff.ComputeLines(diff.SplitLines(original), diff.SplitLines(modified), s.opts.Diff)
	a.SetDiff(&artifact.DiffContent{
		Original: original,
		Modified: modified,
		Unified:  diff.FormatUnified(content.Hunks),
		Hunks:    content.Hunks,
		Stats:    content.Stats,
	})
	return nil
}

// CloseArtifact closes an open artifact, activating the last remaining
// tab when the active one goes away.
func (s *Store) CloseArtifact(id artifact.ID) error {
	if _, ok := s.artifacts[id]; !ok {
		return fmt.Errorf("close %q: %w", id, ErrUnknownArtifact)
	}

	delete(s.artifacts, id)
	for i, o := range s.order {
		if o == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.invalidate(id)

	if s.active == id {
		next := artifact.ID("")
		if len(s.order) > 0 {
			next = s.order[len(s.order)-1]
		}
		s.setActive(next)
	}

	s.dispatch(event.TypeArtifactClosed, event.ArtifactClosedData{ID: id})
	logger.Debugf("Closed artifact %s", id)
	return nil
}

// CloseAll closes every artifact and clears the caches.
func (s *Store) CloseAll() {
	s.artifacts = make(map[artifact.ID]*artifact.Artifact)
	s.order = nil
	s.diffViews = make(map[artifact.ID]*artifact.DiffContent)
	s.cache.Clear()
	s.setActive("")
}

// Get returns an open artifact by id.
func (s *Store) Get(id artifact.ID) (*artifact.Artifact, error) {
	a, ok := s.artifacts[id]
	if !ok {
		return nil, fmt.Errorf("get %q: %w", id, ErrUnknownArtifact)
	}
	return a, nil
}

// Active returns the active artifact, or nil when nothing is open.
func (s *Store) Active() *artifact.Artifact {
	if s.active == "" {
		return nil
	}
	return s.artifacts[s.active]
}

// ActiveID returns the active artifact's id, empty when none.
func (s *Store) ActiveID() artifact.ID { return s.active }

// IsActive reports whether id is the active artifact.
func (s *Store) IsActive(id artifact.ID) bool { return s.active == id && id != "" }

// SetActive activates an open artifact.
func (s *Store) SetActive(id artifact.ID) error {
	if _, ok := s.artifacts[id]; !ok {
		return fmt.Errorf("activate %q: %w", id, ErrUnknownArtifact)
	}
	s.setActive(id)
	return nil
}

// Artifacts returns the open artifacts in tab order.
func (s *Store) Artifacts() []*artifact.Artifact {
	out := make([]*artifact.Artifact, 0, len(s.order))
	for _, id := range s.order {
		if a, ok := s.artifacts[id]; ok {
			out = append(out, a)
		}
	}
	return out
}

// Count reports how many artifacts are open.
func (s *Store) Count() int { return len(s.artifacts) }

// NextArtifact activates the next tab, wrapping at the end.
func (s *Store) NextArtifact() {
	if len(s.order) == 0 {
		return
	}
	idx := s.activeIndex()
	if idx >= 0 && idx+1 < len(s.order) {
		s.setActive(s.order[idx+1])
	} else {
		s.setActive(s.order[0])
	}
}

// PrevArtifact activates the previous tab, wrapping at the start.
func (s *Store) PrevArtifact() {
	if len(s.order) == 0 {
		return
	}
	idx := s.activeIndex()
	if idx > 0 {
		s.setActive(s.order[idx-1])
	} else {
		s.setActive(s.order[len(s.order)-1])
	}
}

func (s *Store) activeIndex() int {
	for i, id := range s.order {
		if id == s.active {
			return i
		}
	}
	return -1
}

func (s *Store) setActive(id artifact.ID) {
	if s.active == id {
		return
	}
	s.active = id
	s.dispatch(event.TypeActiveChanged, event.ActiveChangedData{ID: id})
}

// --- Hydration ---

// ApplyStateDelta replays a batched reconnection payload: all opens,
// then all updates. Malformed or unknown-id sub-events are skipped and
// reported together; everything else still applies. Scroll positions
// and view modes of already-open artifacts survive.
func (s *Store) ApplyStateDelta(delta event.StateDelta) error {
	var errs []error
	for _, open := range delta.ArtifactsOpen {
		if err := s.OpenArtifact(open); err != nil {
			logger.Warnf("State delta: skipping open: %v", err)
			errs = append(errs, err)
		}
	}
	for _, update := range delta.ArtifactsUpdate {
		if err := s.UpdateArtifact(update); err != nil {
			logger.Warnf("State delta: skipping update for %q: %v", update.ID, err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// --- View State ---

// CycleViewMode advances an artifact's view mode and returns the new
// mode. Unknown ids are rejected without changing anything.
func (s *Store) CycleViewMode(id artifact.ID) (artifact.ViewMode, error) {
	a, ok := s.artifacts[id]
	if !ok {
		return artifact.ModeNormal, fmt.Errorf("cycle view mode %q: %w", id, ErrUnknownArtifact)
	}
	a.Mode = a.Mode.Next()
	logger.Debugf("Artifact %s view mode: %s", a.ID, a.Mode.Label())
	return a.Mode, nil
}

// ScrollBy moves the active artifact's scroll position, clamped to
// its content.
func (s *Store) ScrollBy(delta int) {
	a := s.Active()
	if a == nil {
		return
	}
	line := a.ScrollLine + delta
	if max := a.LineCount() - 1; line > max {
		line = max
	}
	if line < 0 {
		line = 0
	}
	a.ScrollLine = line
}

// --- Rendering Support ---

// VisibleLines returns count highlighted lines starting at the
// zero-based line start, tokenized through the highlight cache.
func (s *Store) VisibleLines(id artifact.ID, start, count int) ([]Line, error) {
	a, ok := s.artifacts[id]
	if !ok {
		return nil, fmt.Errorf("lines for %q: %w", id, ErrUnknownArtifact)
	}

	lines := a.Lines()
	if start < 0 {
		start = 0
	}
	if start >= len(lines) {
		return nil, nil
	}
	end := start + count
	if end > len(lines) {
		end = len(lines)
	}

	lang := s.languageFor(a)
	out := make([]Line, 0, end-start)
	for i := start; i < end; i++ {
		out = append(out, Line{
			Number: i,
			Text:   lines[i],
			Tokens: s.cache.GetOrCompute(string(id), i, lines[i], lang),
		})
	}
	return out, nil
}

// Chunks returns a chunk iterator over the artifact's lines, for
// rendering large artifacts incrementally.
func (s *Store) Chunks(id artifact.ID) (*chunk.Iterator, error) {
	a, ok := s.artifacts[id]
	if !ok {
		return nil, fmt.Errorf("chunks for %q: %w", id, ErrUnknownArtifact)
	}
	return chunk.NewIterator(a.Lines(), s.opts.ChunkSize), nil
}

// languageFor resolves the highlight language for an artifact:
// explicit tag first, then the content type's implied language, then
// the title's extension. All misses degrade to plain text.
func (s *Store) languageFor(a *artifact.Artifact) *syntax.Language {
	if a.Language != "" {
		if lang := syntax.Get(a.Language); lang != nil {
			return lang
		}
		logger.Warnf("Unknown language %q for artifact %s", a.Language, a.ID)
	}
	if tag := a.ContentType.LanguageTag(); tag != "" {
		if lang := syntax.Get(tag); lang != nil {
			return lang
		}
	}
	return syntax.GetForTitle(a.Title)
}

// --- Diff Support ---

// DiffView returns the diff presentation of an artifact: its own diff
// content if it holds one, otherwise the change between the previous
// and current text. An artifact never updated diffs against empty.
// The result is memoized until the artifact next changes.
func (s *Store) DiffView(id artifact.ID) (*artifact.DiffContent, error) {
	a, ok := s.artifacts[id]
	if !ok {
		return nil, fmt.Errorf("diff for %q: %w", id, ErrUnknownArtifact)
	}
	if a.Diff != nil {
		return a.Diff, nil
	}
	if cached, ok := s.diffViews[id]; ok {
		return cached, nil
	}

	previous := ""
	if a.Text != nil && a.Text.HasPrevious {
		previous = a.Text.Previous
	}
	d, err := artifact.NewDiffContent(previous, a.ContentString(), s.opts.Diff)
	if err != nil {
		return nil, err
	}
	s.diffViews[id] = d
	return d, nil
}

// DiffStats returns the change summary for an artifact's diff view.
func (s *Store) DiffStats(id artifact.ID) (diff.Stats, error) {
	d, err := s.DiffView(id)
	if err != nil {
		return diff.Stats{}, err
	}
	return d.Stats, nil
}

// --- Editing ---

// UpdateActiveContent replaces the active artifact's content from a
// local edit. Read-only artifacts are left untouched.
func (s *Store) UpdateActiveContent(content string) {
	a := s.Active()
	if a == nil || a.ReadOnly {
		return
	}
	a.Replace(content)
	s.invalidate(a.ID)
}

// MarkSaved clears the dirty flag on an artifact.
func (s *Store) MarkSaved(id artifact.ID) error {
	a, ok := s.artifacts[id]
	if !ok {
		return fmt.Errorf("mark saved %q: %w", id, ErrUnknownArtifact)
	}
	a.Dirty = false
	return nil
}

// HasUnsavedChanges reports whether any artifact is dirty.
func (s *Store) HasUnsavedChanges() bool {
	for _, a := range s.artifacts {
		if a.Dirty {
			return true
		}
	}
	return false
}

// CacheLen reports how many highlight entries are cached.
func (s *Store) CacheLen() int { return s.cache.Len() }

func (s *Store) invalidate(id artifact.ID) {
	s.cache.InvalidateArtifact(string(id))
	delete(s.diffViews, id)
}

func (s *Store) dispatch(t event.Type, data interface{}) {
	if s.events != nil {
		s.events.Dispatch(t, data)
	}
}
