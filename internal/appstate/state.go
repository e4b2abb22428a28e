// Package appstate holds the top-level application state and the pure
// transitions between the Editor, Teleprompter and History views.
package appstate

import (
	"errors"
	"time"

	"github.com/bethropolis/lectern/internal/history"
	"github.com/bethropolis/lectern/internal/prompter"
	"github.com/bethropolis/lectern/internal/script"
)

// ErrNoSession is returned when a session transition runs outside the
// Teleprompter.
var ErrNoSession = errors.New("no active session")

// View is the screen currently shown.
type View int

const (
	ViewEditor View = iota
	ViewTeleprompter
	ViewHistory
)

func (v View) String() string {
	switch v {
	case ViewTeleprompter:
		return "Teleprompter"
	case ViewHistory:
		return "History"
	default:
		return "Editor"
	}
}

// State is the whole application state. Transitions return a new State and
// never modify their input. Session is non-nil exactly when View is
// ViewTeleprompter.
type State struct {
	View       View
	Active     script.Script // the script being edited
	Session    *prompter.Session
	Query      history.Query
	Selected   int // index into the filtered history list
	Fullscreen bool
}

// New returns the initial state: the Editor showing active.
func New(active script.Script, q history.Query) State {
	return State{View: ViewEditor, Active: active, Query: q}
}

// StartSession enters the Teleprompter with a fresh identity cloned from
// the active script.
func StartSession(s State, now time.Time) State {
	sess := prompter.Start(s.Active, now)
	s.View = ViewTeleprompter
	s.Session = &sess
	return s
}

// ExitSession leaves the Teleprompter without recording anything.
func ExitSession(s State) State {
	s.View = ViewEditor
	s.Session = nil
	s.Fullscreen = false
	return s
}

// FinishSession stops the session and returns the record to persist. The
// Editor continues with a new script derived from the record so later
// edits cannot alias it.
func FinishSession(s State, now time.Time) (State, script.Script, error) {
	if s.Session == nil {
		return s, script.Script{}, ErrNoSession
	}
	_, record, err := s.Session.Finish(now)
	if err != nil {
		return s, script.Script{}, err
	}
	s.Active = script.Derive(record, now)
	s = ExitSession(s)
	return s, record, nil
}

// UpdateSession applies fn to a copy of the running session.
func UpdateSession(s State, fn func(prompter.Session) prompter.Session) State {
	if s.Session == nil {
		return s
	}
	next := fn(*s.Session)
	s.Session = &next
	return s
}

func OpenHistory(s State) State {
	s.View = ViewHistory
	s.Selected = 0
	return s
}

func CloseHistory(s State) State {
	s.View = ViewEditor
	return s
}

// LoadFromHistory makes a fresh script from record the active one and
// returns to the Editor. The stored record is untouched.
func LoadFromHistory(s State, record script.Script, now time.Time) State {
	s.Active = script.Derive(record, now)
	return CloseHistory(s)
}

// UpdateActive replaces the active script with fn(active).
func UpdateActive(s State, fn func(script.Script) script.Script) State {
	s.Active = fn(s.Active)
	return s
}

// SetQuery changes the history query and resets the selection.
func SetQuery(s State, q history.Query) State {
	s.Query = q
	s.Selected = 0
	return s
}

// Select moves the history selection by delta, clamped to [0, n).
func Select(s State, delta, n int) State {
	s.Selected = ClampSelection(s.Selected+delta, n)
	return s
}

// ClampSelection keeps i within a list of n entries.
func ClampSelection(i, n int) int {
	if n <= 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

func ToggleFullscreen(s State) State {
	s.Fullscreen = !s.Fullscreen
	return s
}
