package app

import (
	"fmt"

	"github.com/bethropolis/lectern/internal/appstate"
	"github.com/bethropolis/lectern/internal/event"
	"github.com/bethropolis/lectern/internal/history"
	"github.com/bethropolis/lectern/internal/input"
	"github.com/bethropolis/lectern/internal/logger"
	"github.com/bethropolis/lectern/internal/modehandler"
	"github.com/bethropolis/lectern/internal/prompter"
	"github.com/bethropolis/lectern/internal/script"
)

var _ modehandler.Host = (*App)(nil)

// Context is the keymap of the current view.
func (a *App) Context() input.Context {
	switch a.state.View {
	case appstate.ViewTeleprompter:
		return input.ContextTeleprompter
	case appstate.ViewHistory:
		return input.ContextHistory
	default:
		return input.ContextEditor
	}
}

// HandleAction runs a keymap action in the current view.
func (a *App) HandleAction(ev input.ActionEvent) bool {
	switch a.state.View {
	case appstate.ViewTeleprompter:
		return a.handleTeleprompterAction(ev)
	case appstate.ViewHistory:
		return a.handleHistoryAction(ev)
	default:
		return a.handleEditorAction(ev)
	}
}

// Filter is the history filter text.
func (a *App) Filter() string { return a.state.Query.Filter }

// SetFilter changes the history filter and resets the selection.
func (a *App) SetFilter(text string) {
	q := a.state.Query
	q.Filter = text
	a.state = appstate.SetQuery(a.state, q)
}

func (a *App) handleEditorAction(ev input.ActionEvent) bool {
	ed := a.editor
	switch ev.Action {
	case input.ActionQuit:
		a.Quit()
		return false
	case input.ActionStartReading:
		if err := a.StartReading(); err != nil {
			a.SetStatusMessage("%v", err)
		}
	case input.ActionOpenHistory:
		a.OpenHistory()

	case input.ActionMoveUp:
		ed.MoveCursor(-1, 0)
	case input.ActionMoveDown:
		ed.MoveCursor(1, 0)
	case input.ActionMoveLeft:
		ed.MoveCursor(0, -1)
	case input.ActionMoveRight:
		ed.MoveCursor(0, 1)
	case input.ActionMovePageUp:
		ed.PageUp()
	case input.ActionMovePageDown:
		ed.PageDown()
	case input.ActionMoveHome:
		ed.MoveHome()
	case input.ActionMoveEnd:
		ed.MoveEnd()

	case input.ActionInsertRune:
		ed.InsertRune(ev.Rune)
	case input.ActionInsertNewLine:
		ed.InsertNewline()
	case input.ActionDeleteCharBackward:
		ed.DeleteBackward()
	case input.ActionDeleteCharForward:
		ed.DeleteForward()

	case input.ActionCopyBody:
		if err := ed.Copy(); err != nil {
			a.SetStatusMessage("Copy failed: %v", err)
			logger.Debugf("Copy error: %v", err)
		} else {
			a.SetStatusMessage("Script copied to clipboard")
		}
	case input.ActionPaste:
		pasted, err := ed.Paste()
		if err != nil {
			a.SetStatusMessage("Paste failed: %v", err)
			logger.Debugf("Paste error: %v", err)
		} else if !pasted {
			a.SetStatusMessage("Clipboard empty")
		}

	case input.ActionUndo, input.ActionRedo:
		step, verb := ed.Undo, "undo"
		if ev.Action == input.ActionRedo {
			step, verb = ed.Redo, "redo"
		}
		if ok, err := step(); err != nil {
			logger.Errorf("App: %v", err)
			a.SetStatusMessage("%v", err)
		} else if !ok {
			a.SetStatusMessage("Nothing to %s", verb)
		}

	default:
		return false
	}
	return true
}

func (a *App) handleTeleprompterAction(ev input.ActionEvent) bool {
	switch ev.Action {
	case input.ActionTogglePlay:
		a.updateSession(func(s prompter.Session) prompter.Session { return s.Toggle(a.now()) }, false)
		sess := a.state.Session
		a.eventManager.Dispatch(event.TypePlaybackToggled, event.PlaybackData{Running: sess.Running(), Offset: sess.Scroll.Offset})
	case input.ActionSpeedUp:
		a.updateSession(func(s prompter.Session) prompter.Session { return s.AdjustSpeed(script.SpeedStep) }, false)
	case input.ActionSpeedDown:
		a.updateSession(func(s prompter.Session) prompter.Session { return s.AdjustSpeed(-script.SpeedStep) }, false)
	case input.ActionFontUp:
		a.updateSession(func(s prompter.Session) prompter.Session { return s.AdjustFontSize(script.FontStep) }, true)
	case input.ActionFontDown:
		a.updateSession(func(s prompter.Session) prompter.Session { return s.AdjustFontSize(-script.FontStep) }, true)
	case input.ActionCycleAlignment:
		a.updateSession(prompter.Session.CycleAlignment, false)
	case input.ActionCycleFontStyle:
		a.updateSession(prompter.Session.CycleFontStyle, false)
	case input.ActionToggleMode:
		a.updateSession(prompter.Session.ToggleMode, false)
	case input.ActionToggleDirection:
		a.updateSession(prompter.Session.ToggleDirection, true)
	case input.ActionToggleFullscreen:
		a.state = appstate.ToggleFullscreen(a.state)
		a.relayout()
	case input.ActionNextBookmark, input.ActionPrevBookmark:
		dir := prompter.JumpNext
		if ev.Action == input.ActionPrevBookmark {
			dir = prompter.JumpPrev
		}
		var moved bool
		a.updateSession(func(s prompter.Session) prompter.Session {
			s, moved = s.JumpToBookmark(dir)
			return s
		}, false)
		if !moved {
			a.SetStatusMessage("No bookmark in that direction")
		}
	case input.ActionFinish:
		a.FinishReading()
	case input.ActionBack:
		a.ExitReading()
	case input.ActionQuit:
		appstate.Guard(a.confirm, "Quit without saving this session?", a.Quit)
	default:
		return false
	}
	return true
}

func (a *App) handleHistoryAction(ev input.ActionEvent) bool {
	records := a.history.Query(a.state.Query)
	switch ev.Action {
	case input.ActionSelectUp:
		a.state = appstate.Select(a.state, -1, len(records))
	case input.ActionSelectDown:
		a.state = appstate.Select(a.state, 1, len(records))
	case input.ActionLoadRecord:
		if len(records) == 0 {
			return false
		}
		rec := records[appstate.ClampSelection(a.state.Selected, len(records))]
		next := appstate.LoadFromHistory(a.state, rec, a.now())
		a.setView(next)
		a.setActive(next, true)
		a.SetStatusMessage("Loaded '%s'", rec.Title)
	case input.ActionDeleteRecord:
		if len(records) == 0 {
			return false
		}
		rec := records[appstate.ClampSelection(a.state.Selected, len(records))]
		appstate.Guard(a.confirm, fmt.Sprintf("Delete '%s'?", rec.Title), func() {
			a.deleteRecord(rec.ID)
		})
	case input.ActionToggleSort:
		q := a.state.Query
		q.SortBy = q.SortBy.Toggle()
		a.SetHistoryQuery(q)
	case input.ActionReverseSort:
		q := a.state.Query
		q.Direction = q.Direction.Reverse()
		a.SetHistoryQuery(q)
	case input.ActionBack:
		a.setView(appstate.CloseHistory(a.state))
	case input.ActionQuit:
		a.Quit()
		return false
	default:
		return false
	}
	return true
}

func (a *App) deleteRecord(id string) {
	removed, err := a.history.Delete(id)
	if err != nil {
		logger.Errorf("App: %v", err)
		a.SetStatusMessage("Could not save history: %v", err)
	}
	if !removed {
		return
	}
	a.eventManager.Dispatch(event.TypeHistoryChanged, event.HistoryChangedData{Count: a.history.Len()})
	a.SetStatusMessage("Record deleted")
	a.requestRedraw()
}

// OpenHistory shows the History view.
func (a *App) OpenHistory() {
	if a.state.View == appstate.ViewTeleprompter {
		a.SetStatusMessage("Finish or leave the session first")
		return
	}
	a.setView(appstate.OpenHistory(a.state))
}

// SetHistoryQuery replaces the filter and ordering of the History view.
func (a *App) SetHistoryQuery(q history.Query) {
	a.state = appstate.SetQuery(a.state, q)
}
