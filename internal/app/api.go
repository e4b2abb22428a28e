package app

import (
	"errors"
	"fmt"

	"github.com/bethropolis/lectern/internal/appstate"
	"github.com/bethropolis/lectern/internal/commands"
	"github.com/bethropolis/lectern/internal/event"
	"github.com/bethropolis/lectern/internal/history"
	"github.com/bethropolis/lectern/internal/logger"
	"github.com/bethropolis/lectern/internal/plugin"
	"github.com/bethropolis/lectern/internal/prompter"
	"github.com/bethropolis/lectern/internal/script"
	"github.com/bethropolis/lectern/internal/theme"
)

var errReading = errors.New("finish or leave the session first")

// appAPI is the facade handed to commands and plugins. All methods except
// Post run on the main loop.
type appAPI struct {
	app *App
}

var (
	_ plugin.AppAPI     = (*appAPI)(nil)
	_ commands.AppAPI   = (*appAPI)(nil)
	_ commands.ThemeAPI = (*appAPI)(nil)
)

func newAppAPI(app *App) *appAPI {
	return &appAPI{app: app}
}

func (api *appAPI) ActiveScript() script.Script { return api.app.state.Active.Clone() }

func (api *appAPI) DispatchEvent(eventType event.Type, data any) {
	api.app.eventManager.Dispatch(eventType, data)
}

func (api *appAPI) SubscribeEvent(eventType event.Type, handler event.Handler) {
	api.app.eventManager.Subscribe(eventType, handler)
}

func (api *appAPI) RegisterCommand(name string, cmdFunc plugin.CommandFunc) error {
	return api.app.modeHandler.RegisterCommand(name, cmdFunc)
}

func (api *appAPI) SetStatusMessage(format string, args ...any) {
	api.app.SetStatusMessage(format, args...)
}

// GetPluginConfigValue exposes the [plugins.*] config sections.
func (api *appAPI) GetPluginConfigValue(pluginName, key string) (any, bool) {
	plugins := api.app.cfg.Plugins
	switch pluginName + "." + key {
	case "autosave.enabled":
		return plugins.Autosave.Enabled, true
	case "autosave.interval":
		return plugins.Autosave.Every(), true
	case "wordcount.words_per_minute":
		return plugins.WordCount.WordsPerMinute, true
	}
	return nil, false
}

func (api *appAPI) Post(fn func()) { api.app.Post(fn) }

func (api *appAPI) SaveDraft() error { return api.app.SaveDraft() }

// ApplySetting changes the session script while reading and the active
// script otherwise.
func (api *appAPI) ApplySetting(field script.Field, value string) (script.DisplaySettings, error) {
	a := api.app
	if a.state.Session != nil {
		next, err := script.Set(a.state.Session.Script, field, value)
		if err != nil {
			return a.currentSettings(), err
		}
		a.updateSession(func(s prompter.Session) prompter.Session {
			return s.Update(func(script.Script) script.Script { return next })
		}, true)
		return a.currentSettings(), nil
	}
	next, err := script.Set(a.state.Active, field, value)
	if err != nil {
		return a.currentSettings(), err
	}
	a.setActive(appstate.UpdateActive(a.state, func(script.Script) script.Script { return next }), false)
	return a.currentSettings(), nil
}

func (api *appAPI) SetTitle(title string) {
	a := api.app
	a.setActive(appstate.UpdateActive(a.state, func(s script.Script) script.Script {
		return s.WithTitle(title)
	}), false)
}

func (api *appAPI) StartReading() error { return api.app.StartReading() }

func (api *appAPI) OpenHistory() { api.app.OpenHistory() }

func (api *appAPI) HistoryQuery() history.Query { return api.app.state.Query }

func (api *appAPI) SetHistoryQuery(q history.Query) { api.app.SetHistoryQuery(q) }

// ImportScript replaces the active script with the contents of a text
// file, keeping the current display settings.
func (api *appAPI) ImportScript(path string) error {
	a := api.app
	if a.state.Session != nil {
		return errReading
	}
	title, text, err := script.ReadFile(path)
	if err != nil {
		return err
	}
	imported := script.New(
		script.WithTitle(title),
		script.WithText(text),
		script.WithSettings(a.state.Active.Settings),
		script.WithClock(a.now),
	)
	next := appstate.UpdateActive(a.state, func(script.Script) script.Script { return imported })
	if next.View == appstate.ViewHistory {
		next = appstate.CloseHistory(next)
	}
	a.setView(next)
	a.setActive(next, true)
	logger.Infof("App: imported '%s' from %s", title, path)
	return nil
}

func (api *appAPI) ExportScript(path string) error {
	if err := script.WriteFile(path, api.app.state.Active); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	logger.Infof("App: exported '%s' to %s", api.app.state.Active.Title, path)
	return nil
}

func (api *appAPI) Quit() { api.app.Quit() }

// SetTheme makes the named theme serve the mode it was built for.
func (api *appAPI) SetTheme(name string) error {
	th, err := api.app.themeManager.SetTheme(name)
	if err != nil {
		return err
	}
	api.app.eventManager.Dispatch(event.TypeThemeChanged, event.ThemeChangedData{Name: th.Name})
	api.app.requestRedraw()
	return nil
}

// GetTheme is the theme currently on screen.
func (api *appAPI) GetTheme() *theme.Theme { return api.app.currentTheme() }

func (api *appAPI) ListThemes() []string { return api.app.themeManager.ListThemes() }
