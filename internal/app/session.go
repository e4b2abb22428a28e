package app

import (
	"context"
	"errors"

	"github.com/bethropolis/lectern/internal/appstate"
	"github.com/bethropolis/lectern/internal/event"
	"github.com/bethropolis/lectern/internal/logger"
	"github.com/bethropolis/lectern/internal/prompter"
	"github.com/bethropolis/lectern/internal/render"
	"github.com/bethropolis/lectern/internal/scroll"
	"github.com/bethropolis/lectern/internal/statusbar"
)

var errAlreadyReading = errors.New("already reading")

// StartReading enters the Teleprompter with a session cloned from the
// active script and starts the frame ticker.
func (a *App) StartReading() error {
	if a.state.View == appstate.ViewTeleprompter {
		return errAlreadyReading
	}
	a.setView(appstate.StartSession(a.state, a.now()))
	a.relayout()
	gen := a.ticker.Start(a.ctx, a.forwardTick)

	sess := a.state.Session
	logger.Infof("App: session %s started (run %d, %d rows)", sess.Script.ID, gen, len(a.layout.Rows))
	a.eventManager.Dispatch(event.TypeSessionStarted, event.SessionData{Script: sess.Script})
	a.requestRedraw()
	return nil
}

// forwardTick runs on the ticker goroutine. It hands the tick to the main
// loop or gives up when the run is cancelled.
func (a *App) forwardTick(ctx context.Context, tk scroll.Tick) {
	select {
	case a.ticks <- tk:
	case <-ctx.Done():
	}
}

func (a *App) onTick(tk scroll.Tick) {
	if !a.ticker.IsCurrent(tk) || a.state.Session == nil {
		logger.DebugTagf("scroll", "App: dropped stale tick of run %d", tk.Gen)
		return
	}
	a.state = appstate.UpdateSession(a.state, prompter.Session.Tick)
	a.requestRedraw()
}

// ExitReading leaves the Teleprompter without saving, once confirmed.
func (a *App) ExitReading() {
	if a.state.Session == nil {
		return
	}
	appstate.Guard(a.confirm, "Leave without saving?", a.exitReading)
}

func (a *App) exitReading() {
	// The answer may arrive after the session already ended.
	if a.state.Session == nil {
		return
	}
	a.ticker.Stop()
	sess := a.state.Session.Script
	a.setView(appstate.ExitSession(a.state))
	a.layout = render.Layout{}
	a.eventManager.Dispatch(event.TypeSessionExited, event.SessionData{Script: sess})
	a.SetStatusMessage("Session discarded")
}

// FinishReading stops the session, prepends its record to history and
// returns to the Editor with a script derived from the record.
func (a *App) FinishReading() {
	if a.state.Session == nil {
		return
	}
	a.ticker.Stop()
	next, record, err := appstate.FinishSession(a.state, a.now())
	if err != nil {
		logger.Errorf("App: finish session: %v", err)
		a.SetStatusMessage("%v", err)
		return
	}
	a.setView(next)
	a.setActive(next, true)
	a.layout = render.Layout{}

	if err := a.history.Prepend(record); err != nil {
		a.SetStatusMessage("Could not save history: %v", err)
	} else if d, ok := record.Duration(); ok {
		a.SetStatusMessage("Saved '%s' (%s)", record.Title, statusbar.FormatDuration(d))
	} else {
		a.SetStatusMessage("Saved '%s'", record.Title)
	}
	a.eventManager.Dispatch(event.TypeSessionFinished, event.SessionFinishedData{Record: record})
	a.eventManager.Dispatch(event.TypeHistoryChanged, event.HistoryChangedData{Count: a.history.Len()})
}

// updateSession applies fn to the running session. Changes that move
// text between rows need relayout.
func (a *App) updateSession(fn func(prompter.Session) prompter.Session, relayout bool) {
	if a.state.Session == nil {
		return
	}
	a.state = appstate.UpdateSession(a.state, fn)
	if relayout {
		a.relayout()
	}
}

// relayout wraps the session text to the reading area and hands the
// measured length and bookmark offsets to the session.
func (a *App) relayout() {
	if a.state.Session == nil {
		return
	}
	area, _ := a.readingAreas()
	sc := a.state.Session.Script
	a.layout = render.Build(sc.Text, area.W, sc.Settings, a.cfg.Display.UnitsPerRow)
	a.state = appstate.UpdateSession(a.state, func(s prompter.Session) prompter.Session {
		return s.SetLayout(a.layout.Length(), a.layout.BookmarkOffsets())
	})
	logger.DebugTagf("draw", "App: layout %d rows, length %.0f", len(a.layout.Rows), a.layout.Length())
}
