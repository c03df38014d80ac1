package cache

import (
	"fmt"
	"testing"

	"github.com/bethropolis/stage/internal/syntax"
)

func TestGetOrComputeHitReturnsSameValue(t *testing.T) {
	t.Parallel()
	c := New(10)
	lang := syntax.Get("go")

	first := c.GetOrCompute("a1", 0, "func main() {}", lang)
	second := c.GetOrCompute("a1", 0, "func main() {}", lang)

	if len(first) == 0 {
		t.Fatal("tokenization produced no tokens")
	}
	// A hit must return the cached slice itself, not a recomputed copy.
	if &first[0] != &second[0] {
		t.Error("cache hit recomputed tokens instead of returning the stored value")
	}
}

func TestChangedTextIsADifferentKey(t *testing.T) {
	t.Parallel()
	c := New(10)

	c.GetOrCompute("a1", 0, "x := 1", syntax.Get("go"))
	if c.Len() != 1 {
		t.Fatalf("after first insert: len %d, want 1", c.Len())
	}

	// Same artifact and line, different text: a fresh entry, the stale
	// one stays until evicted or swept.
	c.GetOrCompute("a1", 0, "x := 2", syntax.Get("go"))
	if c.Len() != 2 {
		t.Errorf("after edit: len %d, want 2", c.Len())
	}
}

func TestEvictsExactlyLeastRecentlyUsed(t *testing.T) {
	t.Parallel()
	c := New(3)
	lang := syntax.Get("go")

	for i := 0; i < 3; i++ {
		c.GetOrCompute("a1", i, fmt.Sprintf("v%d := %d", i, i), lang)
	}

	// Touch line 0 so line 1 becomes least recently used.
	line0 := c.GetOrCompute("a1", 0, "v0 := 0", lang)

	// Capacity+1th distinct key evicts exactly line 1.
	c.GetOrCompute("a1", 3, "v3 := 3", lang)
	if c.Len() != 3 {
		t.Fatalf("after eviction: len %d, want 3", c.Len())
	}

	again := c.GetOrCompute("a1", 0, "v0 := 0", lang)
	if &line0[0] != &again[0] {
		t.Error("line 0 was evicted; expected line 1 to be the victim")
	}
	line2 := c.GetOrCompute("a1", 2, "v2 := 2", lang)
	line2Again := c.GetOrCompute("a1", 2, "v2 := 2", lang)
	if &line2[0] != &line2Again[0] {
		t.Error("line 2 did not survive in cache")
	}
}

func TestInvalidateArtifact(t *testing.T) {
	t.Parallel()
	c := New(10)
	lang := syntax.Get("go")

	a := c.GetOrCompute("a1", 0, "x := 1", lang)
	b := c.GetOrCompute("a2", 0, "y := 2", lang)

	c.InvalidateArtifact("a1")

	if again := c.GetOrCompute("a1", 0, "x := 1", lang); len(a) > 0 && len(again) > 0 && &a[0] == &again[0] {
		t.Error("a1 entry survived invalidation")
	}
	if again := c.GetOrCompute("a2", 0, "y := 2", lang); &b[0] != &again[0] {
		t.Error("a2 entry was dropped by a1's invalidation")
	}
}

func TestSlotReuseAfterSweep(t *testing.T) {
	t.Parallel()
	c := New(4)
	lang := syntax.Get("go")

	for i := 0; i < 4; i++ {
		c.GetOrCompute("a1", i, fmt.Sprintf("a%d := %d", i, i), lang)
	}
	c.InvalidateArtifact("a1")
	if c.Len() != 0 {
		t.Fatalf("after sweep: len %d, want 0", c.Len())
	}

	// Freed slots must be reusable without growing past capacity.
	for i := 0; i < 6; i++ {
		c.GetOrCompute("a2", i, fmt.Sprintf("b%d := %d", i, i), lang)
	}
	if c.Len() != 4 {
		t.Errorf("after refill: len %d, want 4", c.Len())
	}
}
