// internal/diff/diff.go

// Package diff computes structural line diffs between two versions of
// a text artifact. Matching is longest-common-subsequence based, with
// a greedy line-matching fallback for inputs whose DP table would be
// too large.
package diff

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrNotDiffable reports that an input looks like binary data.
// Callers fall back to displaying raw content without a diff.
var ErrNotDiffable = errors.New("diff: content is not text")

// LineTag classifies a hunk line.
type LineTag int

const (
	TagContext LineTag = iota
	TagRemoved
	TagAdded
)

// Line is one tagged line inside a hunk.
type Line struct {
	Tag  LineTag
	Text string
}

// Hunk is a contiguous block of changes.
//
// OldStart is the 1-based first old line the hunk covers; when
// OldLines is zero (pure insertion) it is the old line the insertion
// follows, 0 for an insertion at the top. NewStart/NewLines mirror
// this for the new side. OldLines counts Context+Removed entries,
// NewLines counts Context+Added entries.
//
// Hunks only materialize changed lines and the context between change
// regions merged into the same hunk; leading and trailing context is
// left to the renderer, which has the artifact content.
type Hunk struct {
	OldStart int
	OldLines int
	NewStart int
	NewLines int
	Lines    []Line
}

// Stats are aggregate counts over a diff.
type Stats struct {
	Additions int
	Deletions int
	Hunks     int
}

// Content is an ordered sequence of hunks plus their stats.
// Hunks are ordered by ascending old position and never overlap.
type Content struct {
	Hunks []Hunk
	Stats Stats
}

// Options tune diff computation.
type Options struct {
	// Context is the number of unchanged lines around a change region
	// considered when merging nearby regions into one hunk. Two
	// regions merge when the gap between them is at most 2*Context.
	Context int

	// DPLimit caps the LCS table size (old lines x new lines). Inputs
	// above the cap use the greedy fallback. Zero means DefaultDPLimit.
	DPLimit int
}

// DefaultDPLimit bounds the exact-LCS table at 16 MiB of int32 cells.
const DefaultDPLimit = 4 << 20

// Compute diffs two content strings. It never fails on text input;
// ErrNotDiffable is returned only when either side is detected as
// binary. A single trailing line terminator is normalized away so a
// trailing-newline-only difference produces no hunk.
func Compute(oldText, newText string, opts Options) (*Content, error) {
	if !isText(oldText) || !isText(newText) {
		return nil, ErrNotDiffable
	}
	return ComputeLines(SplitLines(oldText), SplitLines(newText), opts), nil
}

// ComputeLines diffs two line sequences. Total: any pair of line
// sequences yields a valid Content.
func ComputeLines(oldLines, newLines []string, opts Options) *Content {
	if opts.Context < 0 {
		opts.Context = 0
	}
	limit := opts.DPLimit
	if limit <= 0 {
		limit = DefaultDPLimit
	}

	var pairs []pair
	if len(oldLines) > 0 && len(newLines) > 0 && len(oldLines)*len(newLines) > limit {
		pairs = greedyPairs(oldLines, newLines)
	} else {
		pairs = lcsPairs(oldLines, newLines)
	}

	hunks := buildHunks(oldLines, newLines, pairs, opts.Context)

	c := &Content{Hunks: hunks}
	for _, h := range hunks {
		for _, l := range h.Lines {
			switch l.Tag {
			case TagAdded:
				c.Stats.Additions++
			case TagRemoved:
				c.Stats.Deletions++
			}
		}
	}
	c.Stats.Hunks = len(hunks)
	return c
}

// SplitLines splits content into lines, dropping a single trailing
// line terminator so "a\nb\n" and "a\nb" compare equal.
func SplitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.Split(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// Apply reconstructs the new line sequence from the old one plus
// hunks. Inverse of ComputeLines for any well-formed Content. Hunks
// that reach before the previous hunk or past the end of oldLines,
// such as a parsed diff claiming to remove more lines than exist,
// are rejected with an error rather than applied partially.
func Apply(oldLines []string, hunks []Hunk) ([]string, error) {
	var out []string
	oldIdx := 0

	for _, h := range hunks {
		// First old line consumed by the hunk (0-based); for a pure
		// insertion OldStart already names the preceding line, which
		// equals the 0-based insertion index.
		start := h.OldStart - 1
		if h.OldLines == 0 {
			start = h.OldStart
		}
		if start < oldIdx || start > len(oldLines) {
			return nil, fmt.Errorf("diff: hunk -%d,%d out of range for %d old lines", h.OldStart, h.OldLines, len(oldLines))
		}
		out = append(out, oldLines[oldIdx:start]...)
		oldIdx = start

		for _, l := range h.Lines {
			switch l.Tag {
			case TagContext:
				if oldIdx >= len(oldLines) {
					return nil, fmt.Errorf("diff: hunk -%d,%d consumes past %d old lines", h.OldStart, h.OldLines, len(oldLines))
				}
				out = append(out, l.Text)
				oldIdx++
			case TagRemoved:
				if oldIdx >= len(oldLines) {
					return nil, fmt.Errorf("diff: hunk -%d,%d removes past %d old lines", h.OldStart, h.OldLines, len(oldLines))
				}
				oldIdx++
			case TagAdded:
				out = append(out, l.Text)
			}
		}
	}

	out = append(out, oldLines[oldIdx:]...)
	return out, nil
}

// pair matches old line i to new line j.
type pair struct {
	i, j int
}

// lcsPairs computes the longest common subsequence of the two line
// sequences via dynamic programming over suffixes. The forward walk
// takes a match whenever one is on an optimal path, which pins each
// new line to the earliest possible old line. That is the tie-break
// among equally long subsequences, keeping output deterministic.
func lcsPairs(a, b []string) []pair {
	m, n := len(a), len(b)
	if m == 0 || n == 0 {
		return nil
	}

	// dp[i*(n+1)+j] = LCS length of a[i:], b[j:].
	dp := make([]int32, (m+1)*(n+1))
	for i := m - 1; i >= 0; i-- {
		row := i * (n + 1)
		below := (i + 1) * (n + 1)
		for j := n - 1; j >= 0; j-- {
			if a[i] == b[j] {
				dp[row+j] = dp[below+j+1] + 1
			} else if dp[below+j] >= dp[row+j+1] {
				dp[row+j] = dp[below+j]
			} else {
				dp[row+j] = dp[row+j+1]
			}
		}
	}

	var pairs []pair
	i, j := 0, 0
	for i < m && j < n {
		switch {
		case a[i] == b[j] && dp[i*(n+1)+j] == dp[(i+1)*(n+1)+j+1]+1:
			pairs = append(pairs, pair{i, j})
			i++
			j++
		case dp[(i+1)*(n+1)+j] >= dp[i*(n+1)+j+1]:
			i++
		default:
			j++
		}
	}
	return pairs
}

// greedyPairs approximates the LCS for inputs too large for the DP
// table. Occurrence positions are indexed per line value; on a
// mismatch the side with the nearer re-synchronization point is
// skipped. Deterministic and order-preserving, but not guaranteed
// optimal; a performance trade-off for very large artifacts.
func greedyPairs(a, b []string) []pair {
	occA := make(map[string][]int, len(a))
	for i, line := range a {
		occA[line] = append(occA[line], i)
	}
	occB := make(map[string][]int, len(b))
	for j, line := range b {
		occB[line] = append(occB[line], j)
	}

	nextAt := func(occ []int, min int) int {
		k := sort.SearchInts(occ, min)
		if k == len(occ) {
			return -1
		}
		return occ[k]
	}

	var pairs []pair
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if a[i] == b[j] {
			pairs = append(pairs, pair{i, j})
			i++
			j++
			continue
		}
		inB := nextAt(occB[a[i]], j) // Where a[i] reappears in b
		inA := nextAt(occA[b[j]], i) // Where b[j] reappears in a
		switch {
		case inB < 0 && inA < 0:
			i++
			j++
		case inA < 0 || (inB >= 0 && inB-j <= inA-i):
			j = inB
		default:
			i = inA
		}
	}
	return pairs
}

// changeRegion is a maximal run of removed and added lines between
// two matches.
type changeRegion struct {
	oldPos  int // 0-based old index where removals start
	newPos  int // 0-based new index where additions start
	removed []string
	added   []string
}

// buildHunks groups change regions into hunks, merging regions whose
// context windows overlap (gap of at most 2*context unchanged lines)
// and materializing the context between merged regions.
func buildHunks(oldLines, newLines []string, pairs []pair, context int) []Hunk {
	var regions []changeRegion

	oldIdx, newIdx := 0, 0
	flush := func(matchOld, matchNew int) {
		if oldIdx < matchOld || newIdx < matchNew {
			regions = append(regions, changeRegion{
				oldPos:  oldIdx,
				newPos:  newIdx,
				removed: oldLines[oldIdx:matchOld],
				added:   newLines[newIdx:matchNew],
			})
		}
	}
	for _, p := range pairs {
		flush(p.i, p.j)
		oldIdx, newIdx = p.i+1, p.j+1
	}
	flush(len(oldLines), len(newLines))

	if len(regions) == 0 {
		return nil
	}

	var hunks []Hunk
	group := []changeRegion{regions[0]}
	emit := func() {
		hunks = append(hunks, buildHunk(oldLines, group))
		group = nil
	}
	for _, r := range regions[1:] {
		prev := group[len(group)-1]
		gap := r.oldPos - (prev.oldPos + len(prev.removed))
		if gap <= 2*context {
			group = append(group, r)
		} else {
			emit()
			group = []changeRegion{r}
		}
	}
	emit()

	return hunks
}

// buildHunk assembles one hunk from a group of merged regions,
// interleaving the unchanged lines between them as Context entries.
func buildHunk(oldLines []string, group []changeRegion) Hunk {
	first := group[0]
	h := Hunk{}

	prevEnd := first.oldPos
	for _, r := range group {
		for _, text := range oldLines[prevEnd:r.oldPos] {
			h.Lines = append(h.Lines, Line{Tag: TagContext, Text: text})
		}
		for _, text := range r.removed {
			h.Lines = append(h.Lines, Line{Tag: TagRemoved, Text: text})
		}
		for _, text := range r.added {
			h.Lines = append(h.Lines, Line{Tag: TagAdded, Text: text})
		}
		prevEnd = r.oldPos + len(r.removed)
	}

	for _, l := range h.Lines {
		switch l.Tag {
		case TagContext:
			h.OldLines++
			h.NewLines++
		case TagRemoved:
			h.OldLines++
		case TagAdded:
			h.NewLines++
		}
	}

	if h.OldLines == 0 {
		h.OldStart = first.oldPos // Line the insertion follows
	} else {
		h.OldStart = first.oldPos + 1
	}
	if h.NewLines == 0 {
		h.NewStart = first.newPos
	} else {
		h.NewStart = first.newPos + 1
	}
	return h
}

// isText reports whether content looks like text. The check mirrors
// the usual binary sniff: a NUL byte or a high ratio of control bytes
// in the leading window means binary.
func isText(s string) bool {
	const window = 8192
	if len(s) > window {
		s = s[:window]
	}
	if len(s) == 0 {
		return true
	}
	nonPrintable := 0
	for i := 0; i < len(s); i++ {
		b := s[i]
		if b == 0 {
			return false
		}
		if b < 0x20 && b != '\t' && b != '\n' && b != '\r' {
			nonPrintable++
		}
	}
	return nonPrintable*10 < len(s) // Tolerate under 10% control bytes
}
