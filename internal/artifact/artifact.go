// internal/artifact/artifact.go
// Package artifact defines the data model for workspace artifacts:
// the open documents, their content variants and per-artifact view
// state.
package artifact

import (
	"strings"
	"time"

	"github.com/bethropolis/stage/internal/diff"
)

// ID uniquely identifies an artifact for its lifetime in the store.
type ID = string

// Thresholds above which an artifact is rendered in chunks.
const (
	largeByteThreshold = 100_000
	largeLineThreshold = 3000
)

// Artifact is one open document in the workspace.
type Artifact struct {
	ID          ID
	Title       string
	ContentType ContentType
	// Language tag for highlighting; empty means derive from the
	// title's extension, or plain text.
	Language string
	ReadOnly bool
	Dirty    bool

	// Exactly one of Text and Diff is non-nil.
	Text *TextContent
	Diff *DiffContent

	// Per-artifact view state, preserved across content updates.
	ScrollLine int
	Mode       ViewMode

	OpenedAt   time.Time
	ModifiedAt time.Time
}

// New builds an artifact from an open request. Content starts as text.
func New(id ID, title, content, contentType string, readOnly bool, language string) *Artifact {
	now := time.Now().UTC()
	return &Artifact{
		ID:          id,
		Title:       title,
		ContentType: ContentTypeFromString(contentType),
		Language:    language,
		ReadOnly:    readOnly,
		Text:        NewTextContent(content),
		OpenedAt:    now,
		ModifiedAt:  now,
	}
}

// Replace swaps in new content, retaining the old content so changed
// regions can still be shown. Read-only artifacts never become dirty.
func (a *Artifact) Replace(content string) {
	if a.Text == nil {
		a.Text = NewTextContent(content)
		if a.Diff != nil {
			a.Text.Previous = a.Diff.Modified
			a.Text.HasPrevious = true
			a.Diff = nil
		}
	} else {
		a.Text.Previous = a.Text.Content
		a.Text.HasPrevious = true
		a.Text.Content = content
	}
	a.ModifiedAt = time.Now().UTC()
	if !a.ReadOnly {
		a.Dirty = true
	}
}

// SetDiff replaces the artifact's content with parsed diff content.
func (a *Artifact) SetDiff(d *DiffContent) {
	a.Text = nil
	a.Diff = d
	a.ModifiedAt = time.Now().UTC()
}

// ContentString returns the displayable content. For diff artifacts
// this is the unified form.
func (a *Artifact) ContentString() string {
	switch {
	case a.Text != nil:
		return a.Text.Content
	case a.Diff != nil:
		return a.Diff.Unified
	}
	return ""
}

// Lines splits the displayable content into lines.
func (a *Artifact) Lines() []string {
	return diff.SplitLines(a.ContentString())
}

// LineCount reports the number of displayable lines.
func (a *Artifact) LineCount() int {
	return len(a.Lines())
}

// IsLarge reports whether the artifact should be rendered in chunks
// rather than all at once.
func (a *Artifact) IsLarge() bool {
	s := a.ContentString()
	return len(s) > largeByteThreshold || strings.Count(s, "\n")+1 > largeLineThreshold
}

// TextContent holds text or code content plus the previous version
// when the artifact has been replaced at least once.
type TextContent struct {
	Content     string
	Previous    string
	HasPrevious bool
}

// NewTextContent wraps fresh content with no history.
func NewTextContent(content string) *TextContent {
	return &TextContent{Content: content}
}

// DiffContent holds both sides of a comparison plus the computed
// structural form.
type DiffContent struct {
	Original string
	Modified string
	Unified  string
	Hunks    []diff.Hunk
	Stats    diff.Stats
}

// NewDiffContent computes the structural diff between two versions.
// Returns diff.ErrNotDiffable for binary input.
func NewDiffContent(original, modified string, opts diff.Options) (*DiffContent, error) {
	content, err := diff.Compute(original, modified, opts)
	if err != nil {
		return nil, err
	}
	return &DiffContent{
		Original: original,
		Modified: modified,
		Unified:  diff.FormatUnified(content.Hunks),
		Hunks:    content.Hunks,
		Stats:    content.Stats,
	}, nil
}
