// internal/app/stats.go
package app

import (
	"fmt"
	"io"

	"github.com/bethropolis/stage/internal/config"
	"github.com/bethropolis/stage/internal/diff"
	"github.com/bethropolis/stage/internal/event"
	"github.com/bethropolis/stage/internal/store"
)

// RunStats replays a session headlessly and writes one line of diff
// stats per artifact, in tab order. No terminal is touched.
func RunStats(cfg *config.Config, sessionPath string, w io.Writer) error {
	eventManager := event.NewManager()
	st := store.New(store.Options{
		Diff: diff.Options{
			Context: cfg.Stage.ContextLines,
			DPLimit: cfg.Stage.DiffDPLimit,
		},
		CacheCapacity: cfg.Stage.CacheCapacity,
		ChunkSize:     cfg.Stage.ChunkSize,
	}, eventManager)

	eventManager.Subscribe(event.TypeArtifactOpen, func(e event.Event) bool {
		if data, ok := e.Data.(event.ArtifactOpen); ok {
			st.OpenArtifact(data) // errors surface in the report below
		}
		return false
	})
	eventManager.Subscribe(event.TypeArtifactUpdate, func(e event.Event) bool {
		if data, ok := e.Data.(event.ArtifactUpdate); ok {
			st.UpdateArtifact(data)
		}
		return false
	})
	eventManager.Subscribe(event.TypeStateDelta, func(e event.Event) bool {
		if data, ok := e.Data.(event.StateDelta); ok {
			st.ApplyStateDelta(data)
		}
		return false
	})

	if err := ReplaySessionFile(sessionPath, eventManager); err != nil {
		return err
	}

	for _, a := range st.Artifacts() {
		stats, err := st.DiffStats(a.ID)
		if err != nil {
			fmt.Fprintf(w, "%s\t%s\t(not diffable)\n", a.ID, a.Title)
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t+%d\t-%d\t%d hunks\t%d lines\n",
			a.ID, a.Title, stats.Additions, stats.Deletions, stats.Hunks, a.LineCount())
	}
	return nil
}
