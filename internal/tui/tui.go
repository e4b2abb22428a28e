// internal/tui/tui.go
package tui

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
)

// TUI manages the terminal screen using tcell.
type TUI struct {
	screen    tcell.Screen
	closeOnce sync.Once
}

// New creates and initializes a terminal screen.
func New() (*TUI, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create tcell screen: %w", err)
	}
	return NewWithScreen(s)
}

// NewWithScreen initializes s, typically a tcell.SimulationScreen in tests.
func NewWithScreen(s tcell.Screen) (*TUI, error) {
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize tcell screen: %w", err)
	}
	s.HideCursor()
	return &TUI{screen: s}, nil
}

// Close finalizes the tcell screen. Calls after the first do nothing.
func (t *TUI) Close() {
	t.closeOnce.Do(func() {
		if t.screen != nil {
			t.screen.Fini()
		}
	})
}

// PollEvent blocks until the next event; it returns nil after Close.
func (t *TUI) PollEvent() tcell.Event {
	return t.screen.PollEvent()
}

// PostEvent injects an event into the poll queue.
func (t *TUI) PostEvent(ev tcell.Event) error {
	return t.screen.PostEvent(ev)
}

func (t *TUI) Clear() { t.screen.Clear() }

// SetStyle sets the background style used by Clear.
func (t *TUI) SetStyle(style tcell.Style) { t.screen.SetStyle(style) }

func (t *TUI) Show() { t.screen.Show() }

func (t *TUI) Sync() { t.screen.Sync() }

// Size returns the width and height of the terminal screen.
func (t *TUI) Size() (int, int) {
	return t.screen.Size()
}

// ShowCursor places the terminal cursor; negative coordinates hide it.
func (t *TUI) ShowCursor(x, y int) {
	if x < 0 || y < 0 {
		t.screen.HideCursor()
		return
	}
	t.screen.ShowCursor(x, y)
}

// GetScreen provides direct access (use with caution).
func (t *TUI) GetScreen() tcell.Screen {
	return t.screen
}
