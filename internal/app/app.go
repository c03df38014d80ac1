// internal/app/app.go
package app

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/bethropolis/stage/internal/config"
	"github.com/bethropolis/stage/internal/diff"
	"github.com/bethropolis/stage/internal/event"
	"github.com/bethropolis/stage/internal/logger"
	"github.com/bethropolis/stage/internal/store"
	"github.com/bethropolis/stage/internal/theme"
	"github.com/bethropolis/stage/internal/tui"
	"github.com/gdamore/tcell/v2"
)

// App encapsulates the core components and main loop of the workspace.
type App struct {
	tuiManager   *tui.TUI
	store        *store.Store
	eventManager *event.Manager
	themeManager *theme.Manager
	activeTheme  *theme.Theme
	cfg          *config.Config

	// Channels managed by the App
	quit          chan struct{}
	redrawRequest chan struct{}
}

// NewApp creates and initializes a new application instance. The
// session file, when given, is replayed into the store before the
// first draw.
func NewApp(cfg *config.Config, sessionPath string) (*App, error) {
	tuiManager, err := tui.New()
	if err != nil {
		return nil, fmt.Errorf("TUI initialization failed: %w", err)
	}

	eventManager := event.NewManager()
	themeManager := theme.NewManager()

	st := store.New(store.Options{
		Diff: diff.Options{
			Context: cfg.Stage.ContextLines,
			DPLimit: cfg.Stage.DiffDPLimit,
		},
		CacheCapacity: cfg.Stage.CacheCapacity,
		ChunkSize:     cfg.Stage.ChunkSize,
	}, eventManager)

	appInstance := &App{
		tuiManager:    tuiManager,
		store:         st,
		eventManager:  eventManager,
		themeManager:  themeManager,
		activeTheme:   themeManager.Current(),
		cfg:           cfg,
		quit:          make(chan struct{}),
		redrawRequest: make(chan struct{}, 1),
	}

	// --- Wire protocol events into the store ---
	eventManager.Subscribe(event.TypeArtifactOpen, appInstance.handleArtifactOpen)
	eventManager.Subscribe(event.TypeArtifactUpdate, appInstance.handleArtifactUpdate)
	eventManager.Subscribe(event.TypeStateDelta, appInstance.handleStateDelta)
	eventManager.Subscribe(event.TypeActiveChanged, appInstance.handleActiveChanged)

	if sessionPath != "" {
		if err := ReplaySessionFile(sessionPath, eventManager); err != nil {
			tuiManager.Close()
			return nil, fmt.Errorf("loading session '%s': %w", sessionPath, err)
		}
	}

	return appInstance, nil
}

// Run starts the application's main event and drawing loops.
func (a *App) Run() error {
	defer a.tuiManager.Close()

	go a.eventLoop() // Start event loop

	a.eventManager.Dispatch(event.TypeAppReady, event.AppReadyData{})
	a.requestRedraw()

	// --- Main Drawing Loop ---
	for {
		select {
		case <-a.quit:
			a.eventManager.Dispatch(event.TypeAppQuit, event.AppQuitData{})
			if a.store.HasUnsavedChanges() {
				logger.Warnf("Exited with unsaved changes.")
			}
			logger.Infof("Exiting application.")
			return nil
		case <-a.redrawRequest:
			a.draw()
		}
	}
}

// eventLoop handles TUI events, delegating key events to the keymap.
func (a *App) eventLoop() {
	for {
		ev := a.tuiManager.PollEvent()
		if ev == nil {
			return
		}

		needsRedraw := false

		switch eventData := ev.(type) {
		case *tcell.EventResize:
			a.tuiManager.Sync()
			needsRedraw = true

		case *tcell.EventKey:
			needsRedraw = a.handleKey(eventData)
		}

		if needsRedraw {
			a.requestRedraw()
		}
	}
}

// handleKey maps a key event to a workspace action. Returns true when
// the screen needs redrawing.
func (a *App) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		close(a.quit)
		return false
	case tcell.KeyTab:
		a.store.NextArtifact()
		return true
	case tcell.KeyBacktab:
		a.store.PrevArtifact()
		return true
	case tcell.KeyUp:
		a.store.ScrollBy(-1)
		return true
	case tcell.KeyDown:
		a.store.ScrollBy(1)
		return true
	case tcell.KeyPgUp:
		_, h := a.tuiManager.Size()
		a.store.ScrollBy(-(h - 2))
		return true
	case tcell.KeyPgDn:
		_, h := a.tuiManager.Size()
		a.store.ScrollBy(h - 2)
		return true
	}

	switch ev.Rune() {
	case 'q':
		close(a.quit)
		return false
	case 'j':
		a.store.ScrollBy(1)
		return true
	case 'k':
		a.store.ScrollBy(-1)
		return true
	case 'g':
		if active := a.store.Active(); active != nil {
			active.ScrollLine = 0
		}
		return true
	case 'G':
		if active := a.store.Active(); active != nil {
			active.ScrollLine = active.LineCount() - 1
			if active.ScrollLine < 0 {
				active.ScrollLine = 0
			}
		}
		return true
	case 'm':
		if active := a.store.Active(); active != nil {
			if _, err := a.store.CycleViewMode(active.ID); err != nil {
				logger.Errorf("Cycling view mode: %v", err)
			}
		}
		return true
	case 'x':
		if active := a.store.Active(); active != nil {
			if err := a.store.CloseArtifact(active.ID); err != nil {
				logger.Errorf("Closing artifact: %v", err)
			}
		}
		return true
	case 'y':
		a.yankActive()
		return false
	}
	return false
}

// yankActive copies the active artifact's content to the system
// clipboard when enabled.
func (a *App) yankActive() {
	active := a.store.Active()
	if active == nil {
		return
	}
	if !a.cfg.Stage.SystemClipboard {
		logger.Debugf("System clipboard disabled, yank ignored")
		return
	}
	if err := clipboard.WriteAll(active.ContentString()); err != nil {
		logger.Errorf("Clipboard write failed: %v", err)
		return
	}
	logger.Infof("Yanked %d bytes from %s", len(active.ContentString()), active.ID)
}

// --- Drawing ---

// draw clears the screen and redraws all components.
func (a *App) draw() {
	a.tuiManager.Clear()
	tui.DrawWorkspace(a.tuiManager, a.store, a.activeTheme)
	a.tuiManager.Show()
}

// --- Event Handlers (App reacts to protocol events) ---

func (a *App) handleArtifactOpen(e event.Event) bool {
	if data, ok := e.Data.(event.ArtifactOpen); ok {
		if err := a.store.OpenArtifact(data); err != nil {
			logger.Errorf("Opening artifact: %v", err)
		}
		a.requestRedraw()
	} else {
		logger.Warnf("ArtifactOpen event with unexpected data type: %T", e.Data)
	}
	return false
}

func (a *App) handleArtifactUpdate(e event.Event) bool {
	if data, ok := e.Data.(event.ArtifactUpdate); ok {
		if err := a.store.UpdateArtifact(data); err != nil {
			logger.Errorf("Updating artifact %s: %v", data.ID, err)
		}
		a.requestRedraw()
	} else {
		logger.Warnf("ArtifactUpdate event with unexpected data type: %T", e.Data)
	}
	return false
}

func (a *App) handleStateDelta(e event.Event) bool {
	if data, ok := e.Data.(event.StateDelta); ok {
		if err := a.store.ApplyStateDelta(data); err != nil {
			// Partial application is fine, report what was skipped.
			logger.Warnf("State delta applied with skips: %v", err)
		}
		a.requestRedraw()
	} else {
		logger.Warnf("StateDelta event with unexpected data type: %T", e.Data)
	}
	return false
}

func (a *App) handleActiveChanged(e event.Event) bool {
	if data, ok := e.Data.(event.ActiveChangedData); ok {
		logger.Debugf("Active artifact: %q", data.ID)
	}
	return false
}

// requestRedraw sends a redraw signal non-blockingly.
func (a *App) requestRedraw() {
	select {
	case a.redrawRequest <- struct{}{}:
	default: // Don't block if a redraw is already pending
	}
}

// Store exposes the workspace state, mainly for tests and the
// headless stats path.
func (a *App) Store() *store.Store {
	return a.store
}

// GetTheme returns the app's active theme.
func (a *App) GetTheme() *theme.Theme {
	return a.activeTheme
}

// SetTheme changes the app's active theme and triggers a redraw.
func (a *App) SetTheme(t *theme.Theme) {
	if t != nil {
		a.activeTheme = t
		theme.SetCurrentTheme(t)
		a.requestRedraw()
	}
}
