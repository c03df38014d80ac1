// internal/tui/drawing.go
package tui

import (
	"fmt"
	"math"

	"github.com/bethropolis/stage/internal/artifact"
	"github.com/bethropolis/stage/internal/diff"
	"github.com/bethropolis/stage/internal/logger"
	"github.com/bethropolis/stage/internal/store"
	"github.com/bethropolis/stage/internal/syntax"
	"github.com/bethropolis/stage/internal/theme"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

const tabBarHeight = 1
const statusBarHeight = 1

// DrawWorkspace renders the full workspace: tab bar, the active
// artifact's content in its current view mode, and the status bar.
func DrawWorkspace(tuiManager *TUI, st *store.Store, activeTheme *theme.Theme) {
	if activeTheme == nil {
		logger.Warnf("DrawWorkspace called with nil theme, using package default.")
		activeTheme = &theme.DevComfortDark
	}

	width, height := tuiManager.Size()
	viewHeight := height - tabBarHeight - statusBarHeight
	if viewHeight <= 0 || width <= 0 {
		return
	}

	defaultStyle := activeTheme.GetStyle("Default")
	for y := 0; y < height; y++ {
		fillRow(tuiManager, y, width, defaultStyle)
	}

	drawTabBar(tuiManager, st, activeTheme, width)

	active := st.Active()
	if active == nil {
		drawCentered(tuiManager, width, tabBarHeight+viewHeight/2, "no artifacts open", activeTheme.GetStyle("DiffContext"))
		drawStatusBar(tuiManager, st, activeTheme, width, height-1)
		return
	}

	switch active.Mode {
	case artifact.ModeUnified:
		drawUnifiedDiff(tuiManager, st, active, activeTheme, width, viewHeight)
	case artifact.ModeSideBySide:
		drawSideBySide(tuiManager, st, active, activeTheme, width, viewHeight)
	case artifact.ModeInlineChanges:
		drawText(tuiManager, st, active, activeTheme, width, viewHeight, true)
	default:
		drawText(tuiManager, st, active, activeTheme, width, viewHeight, false)
	}

	drawStatusBar(tuiManager, st, activeTheme, width, height-1)
}

// drawTabBar renders one tab per open artifact along the top row.
func drawTabBar(tuiManager *TUI, st *store.Store, activeTheme *theme.Theme, width int) {
	barStyle := activeTheme.GetStyle("TabBar")
	fillRow(tuiManager, 0, width, barStyle)

	x := 0
	for _, a := range st.Artifacts() {
		style := barStyle
		if st.IsActive(a.ID) {
			style = activeTheme.GetStyle("TabActive")
		}
		label := " " + a.Title
		if a.Dirty {
			label += " [+]"
			if !st.IsActive(a.ID) {
				style = activeTheme.GetStyle("TabDirty")
			}
		}
		if a.ReadOnly {
			label += " [RO]"
		}
		label += " "
		x = drawString(tuiManager, x, 0, width, label, style)
		if x >= width {
			break
		}
		tuiManager.screen.SetContent(x, 0, tcell.RuneVLine, nil, barStyle)
		x++
	}
}

// drawText renders the artifact's text with syntax highlighting.
// With inline set, lines introduced by the latest change get the
// added-line style instead of their syntax styles.
func drawText(tuiManager *TUI, st *store.Store, a *artifact.Artifact, activeTheme *theme.Theme, width, viewHeight int, inline bool) {
	lines, err := st.VisibleLines(a.ID, a.ScrollLine, viewHeight)
	if err != nil {
		logger.Errorf("Drawing artifact %s: %v", a.ID, err)
		return
	}

	var changed map[int]bool
	if inline {
		if d, err := st.DiffView(a.ID); err == nil {
			changed = addedLineSet(d.Hunks)
		} else {
			logger.Warnf("Inline changes for %s unavailable: %v", a.ID, err)
		}
	}

	// --- Calculate Gutter Width ---
	lineCount := a.LineCount()
	if lineCount == 0 {
		lineCount = 1 // Avoid Log10(0)
	}
	maxDigits := int(math.Log10(float64(lineCount))) + 1
	gutterWidth := maxDigits + 1 // Space between number and text
	if gutterWidth >= width {
		gutterWidth = 0 // Disable gutter if screen too narrow
	}

	lineNumberStyle := activeTheme.GetStyle("LineNumber")
	addedStyle := activeTheme.GetStyle("DiffAdded")

	for i, line := range lines {
		screenY := tabBarHeight + i

		if gutterWidth > 0 {
			num := fmt.Sprintf("%*d", maxDigits, line.Number+1)
			drawString(tuiManager, 0, screenY, gutterWidth, num, lineNumberStyle)
		}

		if changed != nil && changed[line.Number] {
			drawString(tuiManager, gutterWidth, screenY, width, line.Text, addedStyle)
			continue
		}
		drawTokenized(tuiManager, gutterWidth, screenY, width, line.Text, line.Tokens, activeTheme)
	}
}

// drawTokenized renders one line, styling each grapheme cluster by the
// token covering its byte offset.
func drawTokenized(tuiManager *TUI, x, y, maxX int, text string, tokens []syntax.Token, activeTheme *theme.Theme) {
	defaultStyle := activeTheme.GetStyle("Default")

	byteIdx := 0
	tokenIdx := 0
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		if x >= maxX {
			break
		}
		cluster := gr.Str()

		// Advance past tokens that end before this cluster.
		for tokenIdx < len(tokens) && tokens[tokenIdx].End <= byteIdx {
			tokenIdx++
		}
		style := defaultStyle
		if tokenIdx < len(tokens) && tokens[tokenIdx].Start <= byteIdx {
			style = activeTheme.GetStyle(tokens[tokenIdx].Kind.StyleName())
		}

		runes := gr.Runes()
		clusterWidth := gr.Width()
		if runes[0] == '\t' {
			// Expand tabs to the next 4-column stop.
			spaces := 4 - (x % 4)
			for s := 0; s < spaces && x < maxX; s++ {
				tuiManager.screen.SetContent(x, y, ' ', nil, style)
				x++
			}
		} else {
			tuiManager.screen.SetContent(x, y, runes[0], runes[1:], style)
			// Fill remaining cells for wide characters
			for cw := 1; cw < clusterWidth && x+cw < maxX; cw++ {
				tuiManager.screen.SetContent(x+cw, y, ' ', nil, style)
			}
			x += clusterWidth
		}
		byteIdx += len(cluster)
	}
}

// drawUnifiedDiff renders the diff view as hunk headers plus prefixed
// change lines, scrolled as one flat list.
func drawUnifiedDiff(tuiManager *TUI, st *store.Store, a *artifact.Artifact, activeTheme *theme.Theme, width, viewHeight int) {
	d, err := st.DiffView(a.ID)
	if err != nil {
		logger.Errorf("Diff view for %s: %v", a.ID, err)
		drawCentered(tuiManager, width, tabBarHeight+viewHeight/2, "content not diffable", activeTheme.GetStyle("DiffContext"))
		return
	}

	type row struct {
		text  string
		style tcell.Style
	}
	headerStyle := activeTheme.GetStyle("DiffHeader")
	addedStyle := activeTheme.GetStyle("DiffAdded")
	removedStyle := activeTheme.GetStyle("DiffRemoved")
	contextStyle := activeTheme.GetStyle("DiffContext")

	var rows []row
	for _, h := range d.Hunks {
		rows = append(rows, row{
			text:  fmt.Sprintf("@@ -%d,%d +%d,%d @@", h.OldStart, h.OldLines, h.NewStart, h.NewLines),
			style: headerStyle,
		})
		for _, l := range h.Lines {
			switch l.Tag {
			case diff.TagAdded:
				rows = append(rows, row{text: "+" + l.Text, style: addedStyle})
			case diff.TagRemoved:
				rows = append(rows, row{text: "-" + l.Text, style: removedStyle})
			default:
				rows = append(rows, row{text: " " + l.Text, style: contextStyle})
			}
		}
	}
	if len(rows) == 0 {
		drawCentered(tuiManager, width, tabBarHeight+viewHeight/2, "no changes", contextStyle)
		return
	}

	start := a.ScrollLine
	if start >= len(rows) {
		start = len(rows) - 1
	}
	for i := 0; i < viewHeight && start+i < len(rows); i++ {
		r := rows[start+i]
		drawString(tuiManager, 0, tabBarHeight+i, width, r.text, r.style)
	}
}

// drawSideBySide renders the original version on the left and the
// modified version on the right, changed lines tinted.
func drawSideBySide(tuiManager *TUI, st *store.Store, a *artifact.Artifact, activeTheme *theme.Theme, width, viewHeight int) {
	d, err := st.DiffView(a.ID)
	if err != nil {
		logger.Errorf("Diff view for %s: %v", a.ID, err)
		drawCentered(tuiManager, width, tabBarHeight+viewHeight/2, "content not diffable", activeTheme.GetStyle("DiffContext"))
		return
	}

	oldLines := diff.SplitLines(d.Original)
	newLines := diff.SplitLines(d.Modified)
	removed := removedLineSet(d.Hunks)
	added := addedLineSet(d.Hunks)

	halfWidth := (width - 1) / 2
	if halfWidth < 1 {
		return
	}

	defaultStyle := activeTheme.GetStyle("Default")
	addedStyle := activeTheme.GetStyle("DiffAdded")
	removedStyle := activeTheme.GetStyle("DiffRemoved")

	for i := 0; i < viewHeight; i++ {
		screenY := tabBarHeight + i
		lineIdx := a.ScrollLine + i

		if lineIdx < len(oldLines) {
			style := defaultStyle
			if removed[lineIdx] {
				style = removedStyle
			}
			drawString(tuiManager, 0, screenY, halfWidth, oldLines[lineIdx], style)
		}
		tuiManager.screen.SetContent(halfWidth, screenY, tcell.RuneVLine, nil, defaultStyle)
		if lineIdx < len(newLines) {
			style := defaultStyle
			if added[lineIdx] {
				style = addedStyle
			}
			drawString(tuiManager, halfWidth+1, screenY, width, newLines[lineIdx], style)
		}
	}
}

// drawStatusBar renders the bottom row: title, content type, view
// mode, change stats and scroll position.
func drawStatusBar(tuiManager *TUI, st *store.Store, activeTheme *theme.Theme, width, y int) {
	barStyle := activeTheme.GetStyle("StatusBar")
	fillRow(tuiManager, y, width, barStyle)

	a := st.Active()
	if a == nil {
		drawString(tuiManager, 1, y, width, "stage", barStyle)
		return
	}

	x := drawString(tuiManager, 1, y, width, a.Title, barStyle)
	if a.Dirty {
		x = drawString(tuiManager, x, y, width, " [+]", activeTheme.GetStyle("StatusBarModified"))
	}
	if a.ReadOnly {
		x = drawString(tuiManager, x, y, width, " [RO]", barStyle)
	}
	x = drawString(tuiManager, x+1, y, width, a.ContentType.Label(), barStyle)
	x = drawString(tuiManager, x+1, y, width, a.Mode.Label(), activeTheme.GetStyle("StatusBarMode"))

	if stats, err := st.DiffStats(a.ID); err == nil && (stats.Additions > 0 || stats.Deletions > 0) {
		summary := fmt.Sprintf(" +%d -%d", stats.Additions, stats.Deletions)
		x = drawString(tuiManager, x+1, y, width, summary, activeTheme.GetStyle("StatusBarStats"))
	}

	position := fmt.Sprintf("%d/%d ", a.ScrollLine+1, a.LineCount())
	posWidth := uniseg.StringWidth(position)
	if width-posWidth > x {
		drawString(tuiManager, width-posWidth, y, width, position, barStyle)
	}
}

// addedLineSet returns the zero-based line numbers, in the modified
// version, of every added line.
func addedLineSet(hunks []diff.Hunk) map[int]bool {
	set := make(map[int]bool)
	for _, h := range hunks {
		newLine := h.NewStart
		for _, l := range h.Lines {
			switch l.Tag {
			case diff.TagAdded:
				set[newLine-1] = true
				newLine++
			case diff.TagContext:
				newLine++
			}
		}
	}
	return set
}

// removedLineSet returns the zero-based line numbers, in the original
// version, of every removed line.
func removedLineSet(hunks []diff.Hunk) map[int]bool {
	set := make(map[int]bool)
	for _, h := range hunks {
		oldLine := h.OldStart
		for _, l := range h.Lines {
			switch l.Tag {
			case diff.TagRemoved:
				set[oldLine-1] = true
				oldLine++
			case diff.TagContext:
				oldLine++
			}
		}
	}
	return set
}

// drawString draws text starting at x, clipped at maxX, returning the
// x position after the last cell drawn.
func drawString(tuiManager *TUI, x, y, maxX int, text string, style tcell.Style) int {
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		if x >= maxX {
			break
		}
		runes := gr.Runes()
		tuiManager.screen.SetContent(x, y, runes[0], runes[1:], style)
		x += gr.Width()
	}
	return x
}

func drawCentered(tuiManager *TUI, width, y int, text string, style tcell.Style) {
	x := (width - uniseg.StringWidth(text)) / 2
	if x < 0 {
		x = 0
	}
	drawString(tuiManager, x, y, width, text, style)
}

func fillRow(tuiManager *TUI, y, width int, style tcell.Style) {
	for x := 0; x < width; x++ {
		tuiManager.screen.SetContent(x, y, ' ', nil, style)
	}
}
