// internal/tui/tui.go

// Package tui renders the workspace onto a tcell screen: tab bar,
// artifact content in its current view mode, and the status bar.
package tui

import (
	"fmt"

	"github.com/bethropolis/stage/internal/theme"
	"github.com/gdamore/tcell/v2"
)

// TUI owns the terminal screen for the lifetime of the app.
type TUI struct {
	screen tcell.Screen
}

// New initializes the terminal screen with the current theme's
// default style as its background.
func New() (*TUI, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("creating screen: %w", err)
	}
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("initializing screen: %w", err)
	}
	s.SetStyle(theme.GetCurrentTheme().GetStyle("Default"))

	return &TUI{screen: s}, nil
}

// Close restores the terminal. Safe to call on a nil screen.
func (t *TUI) Close() {
	if t.screen != nil {
		t.screen.Fini()
	}
}

// PollEvent blocks until the next terminal event.
func (t *TUI) PollEvent() tcell.Event {
	return t.screen.PollEvent()
}

// Clear erases the pending screen contents.
func (t *TUI) Clear() {
	t.screen.Clear()
}

// Show flushes pending drawing to the terminal.
func (t *TUI) Show() {
	t.screen.Show()
}

// Sync forces a full repaint, used after a resize.
func (t *TUI) Sync() {
	t.screen.Sync()
}

// Size returns the terminal dimensions in cells.
func (t *TUI) Size() (int, int) {
	return t.screen.Size()
}
