package app

import (
	"github.com/bethropolis/lectern/internal/appstate"
	"github.com/bethropolis/lectern/internal/event"
	"github.com/bethropolis/lectern/internal/logger"
)

// subscribeCoreEvents wires the app's own reactions to the event bus.
func (a *App) subscribeCoreEvents() {
	a.eventManager.Subscribe(event.TypeViewChanged, a.handleViewChanged)
	a.eventManager.Subscribe(event.TypeThemeChanged, a.handleThemeChanged)
	a.eventManager.Subscribe(event.TypeHistoryChanged, a.handleHistoryChanged)
}

// handleViewChanged redraws with the new view's status line.
func (a *App) handleViewChanged(e event.Event) bool {
	a.updateStatusBarContent()
	a.requestRedraw()
	return false // Not consumed
}

func (a *App) handleThemeChanged(e event.Event) bool {
	if data, ok := e.Data.(event.ThemeChangedData); ok {
		logger.DebugTagf("theme", "App: theme changed to %s", data.Name)
	}
	a.statusBar.ApplyTheme(a.currentTheme())
	return false
}

// handleHistoryChanged keeps the selection inside the shorter list.
func (a *App) handleHistoryChanged(e event.Event) bool {
	if data, ok := e.Data.(event.HistoryChangedData); ok {
		logger.DebugTagf("history", "App: history now holds %d record(s)", data.Count)
	}
	a.state.Selected = appstate.ClampSelection(a.state.Selected, len(a.history.Query(a.state.Query)))
	a.requestRedraw()
	return false
}
