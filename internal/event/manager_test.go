package event

import "testing"

func TestDispatchReachesSubscribers(t *testing.T) {
	t.Parallel()
	m := NewManager()

	var got []string
	m.Subscribe(TypeArtifactOpen, func(e Event) bool {
		open, ok := e.Data.(ArtifactOpen)
		if !ok {
			t.Fatalf("payload type %T", e.Data)
		}
		got = append(got, open.ID)
		return false
	})

	m.Dispatch(TypeArtifactOpen, ArtifactOpen{ID: "a-1"})
	m.Dispatch(TypeArtifactOpen, ArtifactOpen{ID: "a-2"})

	if len(got) != 2 || got[0] != "a-1" || got[1] != "a-2" {
		t.Errorf("handler saw %v", got)
	}
}

func TestDispatchOnlyMatchingType(t *testing.T) {
	t.Parallel()
	m := NewManager()

	calls := 0
	m.Subscribe(TypeArtifactUpdate, func(e Event) bool {
		calls++
		return false
	})

	m.Dispatch(TypeArtifactOpen, ArtifactOpen{ID: "a-1"})
	if calls != 0 {
		t.Errorf("update handler called %d times for open event", calls)
	}
}

func TestConsumedEventStopsPropagation(t *testing.T) {
	t.Parallel()
	m := NewManager()

	var order []int
	m.Subscribe(TypeAppQuit, func(e Event) bool {
		order = append(order, 1)
		return true
	})
	m.Subscribe(TypeAppQuit, func(e Event) bool {
		order = append(order, 2)
		return false
	})

	m.Dispatch(TypeAppQuit, AppQuitData{})
	if len(order) != 1 || order[0] != 1 {
		t.Errorf("propagation order %v, want [1]", order)
	}
}

func TestDispatchNoHandlers(t *testing.T) {
	t.Parallel()
	m := NewManager()
	// Must not panic.
	m.Dispatch(TypeStateDelta, StateDelta{})
}
