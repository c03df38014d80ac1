package app

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bethropolis/stage/internal/config"
	"github.com/bethropolis/stage/internal/event"
	"github.com/bethropolis/stage/internal/store"
)

const sampleSession = `{"type":"ARTIFACT_OPEN","id":"a-1","title":"main.go","content":"package main","content_type":"code","language":"go"}
{"type":"ARTIFACT_UPDATE","id":"a-1","content":"package main\n\nfunc main() {}","change_type":"full_replace"}
{"type":"STATE_DELTA","artifacts_open":[{"id":"a-2","title":"notes.md","content":"# Notes","content_type":"markdown"}],"artifacts_update":[]}
`

func wireStore(manager *event.Manager) *store.Store {
	st := store.New(store.Options{}, nil)
	manager.Subscribe(event.TypeArtifactOpen, func(e event.Event) bool {
		st.OpenArtifact(e.Data.(event.ArtifactOpen))
		return false
	})
	manager.Subscribe(event.TypeArtifactUpdate, func(e event.Event) bool {
		st.UpdateArtifact(e.Data.(event.ArtifactUpdate))
		return false
	})
	manager.Subscribe(event.TypeStateDelta, func(e event.Event) bool {
		st.ApplyStateDelta(e.Data.(event.StateDelta))
		return false
	})
	return st
}

func TestReplaySession(t *testing.T) {
	t.Parallel()
	manager := event.NewManager()
	st := wireStore(manager)

	if err := ReplaySession(strings.NewReader(sampleSession), manager); err != nil {
		t.Fatalf("replay: %v", err)
	}

	if st.Count() != 2 {
		t.Fatalf("count %d after replay, want 2", st.Count())
	}
	a, err := st.Get("a-1")
	if err != nil {
		t.Fatalf("a-1 not opened: %v", err)
	}
	if !strings.Contains(a.ContentString(), "func main()") {
		t.Errorf("a-1 update not applied: %q", a.ContentString())
	}
	if _, err := st.Get("a-2"); err != nil {
		t.Errorf("a-2 from state delta not opened: %v", err)
	}
}

func TestReplaySessionSkipsBadLines(t *testing.T) {
	t.Parallel()
	manager := event.NewManager()
	st := wireStore(manager)

	session := "not json at all\n" +
		`{"type":"NO_SUCH_EVENT","id":"x"}` + "\n" +
		"\n" +
		`{"type":"ARTIFACT_OPEN","id":"a-1","title":"a.txt","content":"hello","content_type":"text"}` + "\n"

	if err := ReplaySession(strings.NewReader(session), manager); err != nil {
		t.Fatalf("replay: %v", err)
	}
	if st.Count() != 1 {
		t.Errorf("count %d, want 1 (bad lines skipped, good line applied)", st.Count())
	}
}

func TestRunStats(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "session.jsonl")
	session := `{"type":"ARTIFACT_OPEN","id":"a-1","title":"a.txt","content":"a\nb\nc","content_type":"text"}
{"type":"ARTIFACT_UPDATE","id":"a-1","content":"a\nx\nc","change_type":"full_replace"}
`
	if err := os.WriteFile(path, []byte(session), 0644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := RunStats(config.NewDefaultConfig(), path, &out); err != nil {
		t.Fatalf("run stats: %v", err)
	}

	report := out.String()
	if !strings.Contains(report, "a-1") || !strings.Contains(report, "+1") || !strings.Contains(report, "-1") {
		t.Errorf("stats report missing expected fields:\n%s", report)
	}
}
