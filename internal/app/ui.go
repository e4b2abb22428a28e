package app

import (
	"fmt"

	"github.com/bethropolis/lectern/internal/appstate"
	"github.com/bethropolis/lectern/internal/logger"
	"github.com/bethropolis/lectern/internal/modehandler"
	"github.com/bethropolis/lectern/internal/render"
	"github.com/bethropolis/lectern/internal/statusbar"
	"github.com/bethropolis/lectern/internal/theme"
)

// draw clears the screen and redraws the current view.
func (a *App) draw() {
	th := a.currentTheme()
	a.statusBar.ApplyTheme(th)
	a.updateStatusBarContent()

	screen := a.tuiManager.GetScreen()
	width, height := a.tuiManager.Size()
	a.tuiManager.SetStyle(th.GetStyle(theme.StyleDefault))
	a.tuiManager.Clear()

	body := render.Rect{W: width, H: height - 1}
	cx, cy := -1, -1
	switch a.state.View {
	case appstate.ViewTeleprompter:
		text, controls := a.readingAreas()
		sess := a.state.Session
		render.Teleprompter(screen, text, a.layout, sess.Scroll.Offset, sess.Script.Settings, th)
		render.Controls(screen, controls, render.ControlsHint, th)
	case appstate.ViewHistory:
		render.History(screen, body, render.HistoryView{
			Records:  a.history.Query(a.state.Query),
			Total:    a.history.Len(),
			Selected: a.state.Selected,
			Query:    a.state.Query,
		}, th)
	default:
		cx, cy = render.Editor(screen, body, a.editor, a.state.Active.Title, th)
	}

	if a.statusBarVisible() {
		if px := a.statusBar.Draw(screen, height-1, width); px >= 0 {
			cx, cy = px, height-1
		}
	}
	a.tuiManager.ShowCursor(cx, cy)
	a.tuiManager.Show()
}

// statusBarVisible is false in fullscreen reading unless a prompt needs
// the line.
func (a *App) statusBarVisible() bool {
	if a.state.View != appstate.ViewTeleprompter || !a.state.Fullscreen {
		return true
	}
	return a.modeHandler.GetCurrentMode() != modehandler.ModeNormal
}

// readingAreas splits the screen for the Teleprompter: text on top, then
// the controls line and the status bar. Fullscreen gives the text every
// row the status bar does not need.
func (a *App) readingAreas() (text, controls render.Rect) {
	width, height := a.tuiManager.Size()
	if a.state.Fullscreen {
		if a.statusBarVisible() {
			height--
		}
		return render.Rect{W: width, H: height}, render.Rect{}
	}
	return render.Rect{W: width, H: height - 2}, render.Rect{Y: height - 2, W: width, H: 1}
}

// updateStatusBarContent pushes the current view's state to the status bar.
func (a *App) updateStatusBarContent() {
	switch a.state.View {
	case appstate.ViewTeleprompter:
		sess := a.state.Session
		left, right := statusbar.ReadingInfo(sess.Script.Settings, sess.Running(), sess.Elapsed(a.now()), sess.Progress())
		a.statusBar.SetInfo(a.state.View.String(), left, right)
	case appstate.ViewHistory:
		q := a.state.Query
		a.statusBar.SetInfo(a.state.View.String(),
			fmt.Sprintf("%d record(s)", a.history.Len()),
			fmt.Sprintf("%s %s", q.SortBy, q.Direction))
	default:
		d := a.state.Active.Settings
		a.statusBar.SetInfo(a.state.View.String(),
			fmt.Sprintf("Ln %d, Col %d", a.editor.Cursor.Line+1, a.editor.Cursor.Col+1),
			fmt.Sprintf("speed %.1f  font %.1f  %s", d.Speed, d.FontSize, d.Mode))
	}
}

// onResize resizes the editor viewport and rewraps a running session.
func (a *App) onResize() {
	width, height := a.tuiManager.Size()
	// Title line and status bar.
	a.editor.SetViewSize(width, max(1, height-2))
	a.relayout()
	logger.DebugTagf("draw", "App: resized to %dx%d", width, height)
}
