// internal/diff/unified.go
package diff

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatUnified renders hunks in unified diff format with
// "@@ -start,count +start,count @@" headers and ' ', '-', '+'
// line prefixes.
func FormatUnified(hunks []Hunk) string {
	var sb strings.Builder
	for _, h := range hunks {
		fmt.Fprintf(&sb, "@@ -%d,%d +%d,%d @@\n", h.OldStart, h.OldLines, h.NewStart, h.NewLines)
		for _, l := range h.Lines {
			switch l.Tag {
			case TagRemoved:
				sb.WriteByte('-')
			case TagAdded:
				sb.WriteByte('+')
			default:
				sb.WriteByte(' ')
			}
			sb.WriteString(l.Text)
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// ParseUnified parses unified diff text into hunks. Lines outside any
// hunk header are ignored; lines without a recognized prefix are
// treated as context, matching the tolerant behavior the viewer needs
// for externally supplied diffs.
func ParseUnified(text string) ([]Hunk, error) {
	var hunks []Hunk
	var current *Hunk

	finish := func() {
		if current == nil {
			return
		}
		// Recompute counts from the entries; externally supplied
		// headers are advisory.
		current.OldLines, current.NewLines = 0, 0
		for _, l := range current.Lines {
			switch l.Tag {
			case TagContext:
				current.OldLines++
				current.NewLines++
			case TagRemoved:
				current.OldLines++
			case TagAdded:
				current.NewLines++
			}
		}
		hunks = append(hunks, *current)
		current = nil
	}

	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(line, "@@") {
			finish()
			oldStart, newStart, err := parseHunkHeader(line)
			if err != nil {
				return nil, err
			}
			current = &Hunk{OldStart: oldStart, NewStart: newStart}
			continue
		}
		if current == nil {
			continue
		}
		switch {
		case strings.HasPrefix(line, "+"):
			current.Lines = append(current.Lines, Line{Tag: TagAdded, Text: line[1:]})
		case strings.HasPrefix(line, "-"):
			current.Lines = append(current.Lines, Line{Tag: TagRemoved, Text: line[1:]})
		case strings.HasPrefix(line, " "):
			current.Lines = append(current.Lines, Line{Tag: TagContext, Text: line[1:]})
		case line == "":
			// Blank line at end of input or an empty context line.
			continue
		default:
			current.Lines = append(current.Lines, Line{Tag: TagContext, Text: line})
		}
	}
	finish()

	return hunks, nil
}

// parseHunkHeader extracts the old and new start positions from a
// header like "@@ -2,1 +2,1 @@".
func parseHunkHeader(line string) (oldStart, newStart int, err error) {
	fields := strings.Fields(strings.Trim(line, "@ "))
	if len(fields) < 2 {
		return 0, 0, fmt.Errorf("diff: malformed hunk header %q", line)
	}
	oldStart, err = parseRangeStart(strings.TrimPrefix(fields[0], "-"))
	if err != nil {
		return 0, 0, fmt.Errorf("diff: malformed hunk header %q: %w", line, err)
	}
	newStart, err = parseRangeStart(strings.TrimPrefix(fields[1], "+"))
	if err != nil {
		return 0, 0, fmt.Errorf("diff: malformed hunk header %q: %w", line, err)
	}
	return oldStart, newStart, nil
}

// parseRangeStart parses "start,count" or bare "start".
func parseRangeStart(s string) (int, error) {
	if idx := strings.IndexByte(s, ','); idx >= 0 {
		s = s[:idx]
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("negative range start %d", n)
	}
	return n, nil
}
