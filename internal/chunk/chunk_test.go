package chunk

import (
	"fmt"
	"testing"
)

func makeLines(n int) []string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %d", i)
	}
	return lines
}

func TestIterationCoversEveryLineOnce(t *testing.T) {
	t.Parallel()
	lines := makeLines(1050)
	it := NewIterator(lines, 500)

	var got []string
	count := 0
	for {
		c, ok := it.Next()
		if !ok {
			break
		}
		if c.Index != count {
			t.Errorf("chunk %d: index %d", count, c.Index)
		}
		if c.StartLine != count*500 {
			t.Errorf("chunk %d: start %d, want %d", count, c.StartLine, count*500)
		}
		if c.EndLine-c.StartLine != len(c.Lines) {
			t.Errorf("chunk %d: bounds span %d but %d lines", count, c.EndLine-c.StartLine, len(c.Lines))
		}
		got = append(got, c.Lines...)
		count++
	}

	if count != 3 {
		t.Errorf("chunk count %d, want 3", count)
	}
	if len(got) != len(lines) {
		t.Fatalf("reassembled %d lines, want %d", len(got), len(lines))
	}
	for i := range lines {
		if got[i] != lines[i] {
			t.Fatalf("line %d: %q, want %q", i, got[i], lines[i])
		}
	}
}

func TestTotal(t *testing.T) {
	t.Parallel()
	cases := []struct {
		lines, size, want int
	}{
		{0, 500, 0},
		{1, 500, 1},
		{500, 500, 1},
		{501, 500, 2},
		{1000, 500, 2},
		{7, 3, 3},
	}
	for _, tc := range cases {
		it := NewIterator(makeLines(tc.lines), tc.size)
		if got := it.Total(); got != tc.want {
			t.Errorf("Total with %d lines, size %d: %d, want %d", tc.lines, tc.size, got, tc.want)
		}
	}
}

func TestResetRestartsFromFirstChunk(t *testing.T) {
	t.Parallel()
	it := NewIterator(makeLines(10), 4)

	first, ok := it.Next()
	if !ok {
		t.Fatal("no first chunk")
	}
	// Stop early, then restart.
	it.Reset()
	again, ok := it.Next()
	if !ok {
		t.Fatal("no chunk after reset")
	}
	if again.Index != first.Index || again.StartLine != first.StartLine {
		t.Errorf("after reset got chunk %d@%d, want %d@%d",
			again.Index, again.StartLine, first.Index, first.StartLine)
	}
}

func TestEmptyInput(t *testing.T) {
	t.Parallel()
	it := NewIterator(nil, 500)
	if _, ok := it.Next(); ok {
		t.Error("Next on empty input returned a chunk")
	}
	if it.Total() != 0 {
		t.Errorf("Total on empty input: %d, want 0", it.Total())
	}
}

func TestInvalidSizeFallsBack(t *testing.T) {
	t.Parallel()
	it := NewIterator(makeLines(DefaultSize+1), 0)
	if got := it.Total(); got != 2 {
		t.Errorf("Total with fallback size: %d, want 2", got)
	}
}

func TestChunkForLine(t *testing.T) {
	t.Parallel()
	it := NewIterator(makeLines(1200), 500)
	cases := []struct{ line, want int }{
		{0, 0}, {499, 0}, {500, 1}, {1199, 2}, {-5, 0},
	}
	for _, tc := range cases {
		if got := it.ChunkForLine(tc.line); got != tc.want {
			t.Errorf("ChunkForLine(%d) = %d, want %d", tc.line, got, tc.want)
		}
	}
}
