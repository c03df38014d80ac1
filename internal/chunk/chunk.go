// internal/chunk/chunk.go
// Package chunk segments artifact content into fixed-size line chunks
// so large artifacts can be rendered and highlighted lazily.
package chunk

import "github.com/bethropolis/stage/internal/logger"

// DefaultSize is the number of lines per chunk when the caller does
// not configure one.
const DefaultSize = 500

// Chunk is a contiguous run of lines. StartLine and EndLine are
// zero-based; EndLine is exclusive. Lines is a subslice of the
// iterator's backing slice, not a copy.
type Chunk struct {
	Index     int
	StartLine int
	EndLine   int
	Lines     []string
}

// Iterator yields the chunks of a line slice in order. A fresh
// iteration starts from the first chunk; Reset rewinds an existing
// iterator. The iterator never holds more than one chunk's bookkeeping
// at a time, so stopping early costs nothing.
type Iterator struct {
	lines []string
	size  int
	next  int
}

// NewIterator builds an iterator over lines with the given chunk size.
// A size below 1 falls back to DefaultSize.
func NewIterator(lines []string, size int) *Iterator {
	if size < 1 {
		logger.Debugf("chunk size %d invalid, using default %d", size, DefaultSize)
		size = DefaultSize
	}
	return &Iterator{lines: lines, size: size}
}

// Next returns the next chunk. The second return is false when the
// iteration is exhausted.
func (it *Iterator) Next() (Chunk, bool) {
	if it.next >= len(it.lines) {
		return Chunk{}, false
	}
	start := it.next
	end := start + it.size
	if end > len(it.lines) {
		end = len(it.lines)
	}
	it.next = end
	return Chunk{
		Index:     start / it.size,
		StartLine: start,
		EndLine:   end,
		Lines:     it.lines[start:end],
	}, true
}

// Reset rewinds the iterator to the first chunk.
func (it *Iterator) Reset() {
	it.next = 0
}

// Total reports how many chunks a full iteration yields.
func (it *Iterator) Total() int {
	return (len(it.lines) + it.size - 1) / it.size
}

// ChunkForLine returns the index of the chunk containing the
// zero-based line, without iterating.
func (it *Iterator) ChunkForLine(line int) int {
	if line < 0 {
		return 0
	}
	return line / it.size
}
