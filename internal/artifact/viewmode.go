// internal/artifact/viewmode.go
package artifact

// ViewMode selects how an artifact is rendered.
type ViewMode int

const (
	ModeNormal ViewMode = iota
	ModeUnified
	ModeSideBySide
	ModeInlineChanges
)

// Label returns the display name shown in the status bar.
func (m ViewMode) Label() string {
	switch m {
	case ModeUnified:
		return "Unified Diff"
	case ModeSideBySide:
		return "Side by Side"
	case ModeInlineChanges:
		return "Inline Changes"
	}
	return "Normal"
}

// Next returns the following mode in the cycle:
// Normal, Unified, SideBySide, InlineChanges, back to Normal.
func (m ViewMode) Next() ViewMode {
	switch m {
	case ModeNormal:
		return ModeUnified
	case ModeUnified:
		return ModeSideBySide
	case ModeSideBySide:
		return ModeInlineChanges
	}
	return ModeNormal
}
