// internal/app/app.go
package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/lectern/internal/appstate"
	"github.com/bethropolis/lectern/internal/config"
	"github.com/bethropolis/lectern/internal/editor"
	"github.com/bethropolis/lectern/internal/event"
	"github.com/bethropolis/lectern/internal/history"
	"github.com/bethropolis/lectern/internal/input"
	"github.com/bethropolis/lectern/internal/logger"
	"github.com/bethropolis/lectern/internal/modehandler"
	"github.com/bethropolis/lectern/internal/plugin"
	"github.com/bethropolis/lectern/internal/render"
	"github.com/bethropolis/lectern/internal/script"
	"github.com/bethropolis/lectern/internal/scroll"
	"github.com/bethropolis/lectern/internal/statusbar"
	"github.com/bethropolis/lectern/internal/storage"
	"github.com/bethropolis/lectern/internal/theme"
	"github.com/bethropolis/lectern/internal/tui"
)

// Options configures New. Storage is required.
type Options struct {
	Config    *config.Config // nil uses the defaults
	Screen    tcell.Screen   // nil opens the terminal
	Storage   storage.Gateway
	Clipboard editor.Clipboard   // nil uses the system clipboard
	Confirm   appstate.Confirmer // nil asks in the status bar
	Now       func() time.Time
	ThemesDir string
	// Script seeds the Editor instead of the saved draft.
	Script *script.Script
}

// App owns every component and runs the single main loop that applies all
// state transitions. The terminal poller, the frame ticker and plugins
// only feed it through channels.
type App struct {
	cfg           *config.Config
	tuiManager    *tui.TUI
	editor        *editor.Editor
	statusBar     *statusbar.StatusBar
	eventManager  *event.Manager
	pluginManager *plugin.Manager
	modeHandler   *modehandler.ModeHandler
	themeManager  *theme.Manager
	gateway       storage.Gateway
	history       *history.Store
	ticker        *scroll.Ticker
	api           *appAPI
	confirm       appstate.Confirmer
	now           func() time.Time

	state  appstate.State
	layout render.Layout

	// Channels managed by the App
	ctx           context.Context
	quit          chan struct{}
	quitOnce      sync.Once
	redrawRequest chan struct{}
	ticks         chan scroll.Tick
	posts         chan func()
}

// New creates and initializes a new application instance.
func New(opts Options) (*App, error) {
	if opts.Storage == nil {
		return nil, fmt.Errorf("app: no storage gateway")
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	var (
		tuiManager *tui.TUI
		err        error
	)
	if opts.Screen != nil {
		tuiManager, err = tui.NewWithScreen(opts.Screen)
	} else {
		tuiManager, err = tui.New()
	}
	if err != nil {
		return nil, fmt.Errorf("TUI initialization failed: %w", err)
	}

	clip := opts.Clipboard
	if clip == nil {
		clip = &editor.SystemClipboard{}
	}

	sbConfig := statusbar.DefaultConfig()
	sbConfig.MessageTimeout = config.MessageTimeout
	sbConfig.Now = now

	a := &App{
		cfg:           cfg,
		tuiManager:    tuiManager,
		editor:        editor.New(clip),
		statusBar:     statusbar.New(sbConfig),
		eventManager:  event.NewManager(),
		pluginManager: plugin.NewManager(),
		themeManager:  theme.NewManager(opts.ThemesDir),
		gateway:       opts.Storage,
		history:       history.NewStore(opts.Storage, storage.HistoryKey),
		ticker:        scroll.NewTicker(cfg.Display.FPS),
		now:           now,
		ctx:           context.Background(),
		quit:          make(chan struct{}),
		redrawRequest: make(chan struct{}, 1),
		ticks:         make(chan scroll.Tick),
		posts:         make(chan func(), 16),
	}
	a.api = newAppAPI(a)

	a.modeHandler = modehandler.New(modehandler.Config{
		InputProcessor: input.NewInputProcessor(),
		StatusBar:      a.statusBar,
		Clipboard:      clip,
		Host:           a,
	})
	a.confirm = opts.Confirm
	if a.confirm == nil {
		a.confirm = a.modeHandler.Confirm
	}

	a.history.Load()
	a.state = appstate.New(a.initialScript(opts.Script), cfg.HistoryQuery())
	a.editor.SetText(a.state.Active.Text)
	a.editor.OnChange = a.onEditorChange

	a.subscribeCoreEvents()
	registerAppCommands(a)
	if err := registerPlugins(a.pluginManager); err != nil {
		logger.Warnf("App: %v", err)
	}
	if err := a.pluginManager.InitializePlugins(a.api); err != nil {
		logger.Warnf("App: %v", err)
	}

	a.onResize()
	return a, nil
}

// initialScript picks what the Editor starts with: the given script, the
// saved draft, or a blank script with the configured display defaults.
func (a *App) initialScript(seed *script.Script) script.Script {
	if seed != nil {
		return seed.Clone()
	}
	if drafts := a.gateway.Load(storage.DraftKey); len(drafts) > 0 {
		logger.Infof("App: restored draft '%s'", drafts[0].Title)
		return drafts[0]
	}
	return script.New(script.WithSettings(a.cfg.DefaultSettings()), script.WithClock(a.now))
}

// Run starts the application's main loop and blocks until quit or ctx is
// done.
func (a *App) Run(ctx context.Context) error {
	defer a.tuiManager.Close()
	defer a.pluginManager.ShutdownPlugins()
	defer a.ticker.Stop()

	a.ctx = ctx
	events := make(chan tcell.Event)
	go a.pollEvents(events)

	a.eventManager.Dispatch(event.TypeAppReady, event.AppReadyData{})
	a.statusBar.SetTemporaryMessage("lectern %s - Ctrl+R read | Ctrl+O history | Ctrl+E command | Esc quit", config.Version)
	a.requestRedraw()

	for {
		select {
		case <-ctx.Done():
			a.Quit()
		case <-a.quit:
			a.ticker.Stop()
			a.eventManager.Dispatch(event.TypeAppQuit, event.AppQuitData{})
			logger.Infof("Exiting application.")
			return nil
		case ev := <-events:
			a.handleEvent(ev)
		case tk := <-a.ticks:
			a.onTick(tk)
		case fn := <-a.posts:
			fn()
		case <-a.redrawRequest:
			a.draw()
		}
	}
}

// pollEvents forwards terminal events to the main loop until the screen
// is closed or the app quits.
func (a *App) pollEvents(out chan<- tcell.Event) {
	for {
		ev := a.tuiManager.PollEvent()
		if ev == nil {
			return
		}
		select {
		case out <- ev:
		case <-a.quit:
			return
		}
	}
}

func (a *App) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.tuiManager.Sync()
		a.onResize()
		a.requestRedraw()
	case *tcell.EventKey:
		if a.modeHandler.HandleKeyEvent(ev) {
			a.requestRedraw()
		}
	}
}

// Quit stops the main loop. Safe to call more than once.
func (a *App) Quit() {
	a.quitOnce.Do(func() { close(a.quit) })
}

// Post schedules fn on the main loop. It never blocks past quit.
func (a *App) Post(fn func()) {
	select {
	case a.posts <- fn:
	case <-a.quit:
	}
}

// requestRedraw sends a redraw signal non-blockingly.
func (a *App) requestRedraw() {
	select {
	case a.redrawRequest <- struct{}{}:
	default: // Don't block if a redraw is already pending
	}
}

// State returns the current application state.
func (a *App) State() appstate.State { return a.state }

// SetStatusMessage shows a temporary message in the status bar.
func (a *App) SetStatusMessage(format string, args ...any) {
	a.statusBar.SetTemporaryMessage(format, args...)
	a.requestRedraw()
}

// setView records a view change and tells subscribers about it.
func (a *App) setView(next appstate.State) {
	from := a.state.View
	a.state = next
	if from != next.View {
		logger.DebugTagf("view", "App: %s -> %s", from, next.View)
		a.eventManager.Dispatch(event.TypeViewChanged, event.ViewChangedData{From: from.String(), To: next.View.String()})
	}
}

// setActive replaces the active script, keeps the editor in sync and
// announces the change.
func (a *App) setActive(next appstate.State, reloadEditor bool) {
	a.state = next
	if reloadEditor {
		a.editor.SetText(a.state.Active.Text)
	}
	a.eventManager.Dispatch(event.TypeScriptChanged, event.ScriptChangedData{Script: a.state.Active})
}

// onEditorChange syncs the body into the active script after every edit.
func (a *App) onEditorChange(text string) {
	a.setActive(appstate.UpdateActive(a.state, func(s script.Script) script.Script {
		return s.WithText(text)
	}), false)
}

// SaveDraft persists the active script under the draft key.
func (a *App) SaveDraft() error {
	if err := a.gateway.Save(storage.DraftKey, []script.Script{a.state.Active}); err != nil {
		return fmt.Errorf("save draft: %w", err)
	}
	return nil
}

// currentSettings are the settings on screen: the session's while reading.
func (a *App) currentSettings() script.DisplaySettings {
	if a.state.Session != nil {
		return a.state.Session.Script.Settings
	}
	return a.state.Active.Settings
}

// currentTheme follows the day/night mode of the current settings.
func (a *App) currentTheme() *theme.Theme {
	return a.themeManager.ForMode(a.currentSettings().Mode)
}
