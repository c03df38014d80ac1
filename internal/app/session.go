// internal/app/session.go
package app

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/bethropolis/stage/internal/event"
	"github.com/bethropolis/stage/internal/logger"
)

// envelope is the wire form of one session line: a type tag plus the
// payload fields inline.
type envelope struct {
	Type string `json:"type"`
}

// ReplaySessionFile reads a JSON-lines session file and dispatches
// each event through the bus. Malformed lines are skipped with a
// warning; only an unreadable file is an error.
func ReplaySessionFile(path string, manager *event.Manager) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open session file: %w", err)
	}
	defer f.Close()

	return ReplaySession(f, manager)
}

// ReplaySession dispatches the events of a JSON-lines stream in order.
func ReplaySession(r io.Reader, manager *event.Manager) error {
	scanner := bufio.NewScanner(r)
	// Artifact contents can make individual lines large.
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var env envelope
		if err := json.Unmarshal(line, &env); err != nil {
			logger.Warnf("Session line %d: not valid JSON, skipping: %v", lineNo, err)
			continue
		}

		switch env.Type {
		case "ARTIFACT_OPEN":
			var ev event.ArtifactOpen
			if err := json.Unmarshal(line, &ev); err != nil {
				logger.Warnf("Session line %d: bad ARTIFACT_OPEN, skipping: %v", lineNo, err)
				continue
			}
			manager.Dispatch(event.TypeArtifactOpen, ev)

		case "ARTIFACT_UPDATE":
			var ev event.ArtifactUpdate
			if err := json.Unmarshal(line, &ev); err != nil {
				logger.Warnf("Session line %d: bad ARTIFACT_UPDATE, skipping: %v", lineNo, err)
				continue
			}
			manager.Dispatch(event.TypeArtifactUpdate, ev)

		case "STATE_DELTA":
			var ev event.StateDelta
			if err := json.Unmarshal(line, &ev); err != nil {
				logger.Warnf("Session line %d: bad STATE_DELTA, skipping: %v", lineNo, err)
				continue
			}
			manager.Dispatch(event.TypeStateDelta, ev)

		default:
			logger.Warnf("Session line %d: unknown event type %q, skipping", lineNo, env.Type)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read session: %w", err)
	}
	return nil
}
