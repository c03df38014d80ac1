// internal/event/event.go
package event

// Type identifies the kind of event.
type Type int

// Define specific event types.
const (
	TypeUnknown Type = iota

	// Protocol Events (from the host session)
	TypeArtifactOpen   // A new artifact should be opened (or refreshed in place)
	TypeArtifactUpdate // An open artifact's content changed
	TypeStateDelta     // Batched open + update events from reconnection

	// Workspace Events
	TypeArtifactClosed // Fired after an artifact is closed
	TypeActiveChanged  // Fired when the active tab changes

	// Application Lifecycle Events
	TypeAppReady // Fired when the application is fully initialized
	TypeAppQuit  // Fired just before application termination begins
)

// Event is the structure passed through the event bus.
type Event struct {
	Type Type        // The kind of event
	Data interface{} // Payload carrying event-specific data
}

// --- Specific Event Data Structures ---

// ArtifactOpen asks the workspace to open an artifact, or to refresh
// it in place if the id is already open.
type ArtifactOpen struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Content     string `json:"content"`
	ContentType string `json:"content_type"`
	ReadOnly    bool   `json:"read_only"`
	Language    string `json:"language,omitempty"`
}

// ArtifactUpdate carries a content change for an open artifact.
// ChangeType is one of "full_replace", "diff" or "partial".
type ArtifactUpdate struct {
	ID         string `json:"id"`
	Content    string `json:"content"`
	ChangeType string `json:"change_type"`
}

// StateDelta is the batched hydration payload sent on reconnect:
// all opens first, then all updates.
type StateDelta struct {
	ArtifactsOpen   []ArtifactOpen   `json:"artifacts_open"`
	ArtifactsUpdate []ArtifactUpdate `json:"artifacts_update"`
}

// ArtifactClosedData identifies the artifact that was closed.
type ArtifactClosedData struct {
	ID string
}

// ActiveChangedData identifies the newly active artifact. Empty when
// the last tab was closed.
type ActiveChangedData struct {
	ID string
}

// AppQuitData could contain exit code or reason later.
type AppQuitData struct{}

// AppReadyData could contain initial config or state later.
type AppReadyData struct{}
