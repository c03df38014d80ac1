package tui

import (
	"testing"

	"github.com/bethropolis/stage/internal/diff"
)

func TestChangedLineSets(t *testing.T) {
	t.Parallel()
	// old: a b c d, new: a x c d e
	content := diff.ComputeLines(
		[]string{"a", "b", "c", "d"},
		[]string{"a", "x", "c", "d", "e"},
		diff.Options{Context: 1},
	)

	added := addedLineSet(content.Hunks)
	if !added[1] {
		t.Error("replacement line x (new line 2) not in added set")
	}
	if !added[4] {
		t.Error("appended line e (new line 5) not in added set")
	}
	if added[0] || added[2] {
		t.Errorf("unchanged lines marked added: %v", added)
	}

	removed := removedLineSet(content.Hunks)
	if !removed[1] {
		t.Error("replaced line b (old line 2) not in removed set")
	}
	if removed[0] || removed[3] {
		t.Errorf("unchanged lines marked removed: %v", removed)
	}
}
