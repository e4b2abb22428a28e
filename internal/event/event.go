// internal/event/event.go
package event

import (
	"github.com/bethropolis/lectern/internal/script"
)

// Type identifies the kind of event.
type Type int

const (
	TypeUnknown Type = iota

	// Editor
	TypeScriptChanged // active script text, title or settings changed

	// Teleprompter
	TypeSessionStarted
	TypePlaybackToggled
	TypeSessionFinished // a record was added to history
	TypeSessionExited   // left without saving

	// History
	TypeHistoryChanged

	TypeViewChanged

	// Application lifecycle
	TypeAppReady
	TypeAppQuit

	TypeThemeChanged
)

var typeNames = map[Type]string{
	TypeScriptChanged:   "ScriptChanged",
	TypeSessionStarted:  "SessionStarted",
	TypePlaybackToggled: "PlaybackToggled",
	TypeSessionFinished: "SessionFinished",
	TypeSessionExited:   "SessionExited",
	TypeHistoryChanged:  "HistoryChanged",
	TypeViewChanged:     "ViewChanged",
	TypeAppReady:        "AppReady",
	TypeAppQuit:         "AppQuit",
	TypeThemeChanged:    "ThemeChanged",
}

func (t Type) String() string {
	if n, ok := typeNames[t]; ok {
		return n
	}
	return "Unknown"
}

// Event is the structure passed through the event bus.
type Event struct {
	Type Type
	Data any
}

// ScriptChangedData carries the active script after the change.
type ScriptChangedData struct {
	Script script.Script
}

// SessionData identifies the session script.
type SessionData struct {
	Script script.Script
}

// PlaybackData reports the new play state.
type PlaybackData struct {
	Running bool
	Offset  float64
}

// SessionFinishedData carries the record that was persisted.
type SessionFinishedData struct {
	Record script.Script
}

// HistoryChangedData reports the list size after a change.
type HistoryChangedData struct {
	Count int
}

// ViewChangedData names the view now shown.
type ViewChangedData struct {
	From, To string
}

type ThemeChangedData struct {
	Name string
}

// AppQuitData could contain exit code or reason later.
type AppQuitData struct{}

type AppReadyData struct{}
