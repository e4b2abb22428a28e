// internal/modehandler/modehandler.go
package modehandler

import (
	"fmt"
	"slices"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/lectern/internal/editor"
	"github.com/bethropolis/lectern/internal/input"
	"github.com/bethropolis/lectern/internal/logger"
	"github.com/bethropolis/lectern/internal/plugin"
	"github.com/bethropolis/lectern/internal/statusbar"
)

// InputMode defines the different states for user input.
type InputMode int

const (
	ModeNormal  InputMode = iota
	ModeCommand           // ":" command line
	ModeFilter            // "/" history filter, applied as typed
	ModeConfirm           // y/n question
)

func (m InputMode) String() string {
	switch m {
	case ModeCommand:
		return "command"
	case ModeFilter:
		return "filter"
	case ModeConfirm:
		return "confirm"
	default:
		return "normal"
	}
}

// Host is the application side of input handling: it owns the views and
// runs the actions the keymap produces in normal mode.
type Host interface {
	// Context is the keymap of the current view.
	Context() input.Context
	// HandleAction runs a view action. It returns true if a redraw is needed.
	HandleAction(ev input.ActionEvent) bool
	Filter() string
	SetFilter(text string)
}

// ModeHandler manages input modes, the command registry and the prompts
// shown in the status bar.
type ModeHandler struct {
	inputProcessor *input.InputProcessor
	statusBar      *statusbar.StatusBar
	clipboard      editor.Clipboard
	host           Host

	currentMode InputMode
	promptBuf   []rune
	commands    map[string]plugin.CommandFunc

	filterBefore  string
	confirmPrompt string
	confirmDone   func(ok bool)
}

// Config holds dependencies for the ModeHandler.
type Config struct {
	InputProcessor *input.InputProcessor
	StatusBar      *statusbar.StatusBar
	Clipboard      editor.Clipboard // pasted into prompts; nil disables paste
	Host           Host
}

// New creates a new ModeHandler.
func New(cfg Config) *ModeHandler {
	if cfg.InputProcessor == nil || cfg.StatusBar == nil || cfg.Host == nil {
		panic("modehandler.New: Missing required dependencies in Config")
	}
	return &ModeHandler{
		inputProcessor: cfg.InputProcessor,
		statusBar:      cfg.StatusBar,
		clipboard:      cfg.Clipboard,
		host:           cfg.Host,
		currentMode:    ModeNormal,
		commands:       make(map[string]plugin.CommandFunc),
	}
}

// HandleKeyEvent decides what to do based on current mode and key event.
// Returns true if the event resulted in an action requiring redraw.
func (mh *ModeHandler) HandleKeyEvent(ev *tcell.EventKey) bool {
	switch mh.currentMode {
	case ModeNormal:
		return mh.handleActionNormal(mh.inputProcessor.ProcessEvent(mh.host.Context(), ev))
	case ModeCommand, ModeFilter:
		return mh.handleActionPrompt(mh.inputProcessor.ProcessEvent(input.ContextPrompt, ev))
	case ModeConfirm:
		return mh.handleKeyConfirm(ev)
	default:
		logger.Debugf("Warning: Unknown input mode: %v", mh.currentMode)
		return false
	}
}

// handleActionNormal switches into the prompt modes and passes everything
// else to the host.
func (mh *ModeHandler) handleActionNormal(actionEvent input.ActionEvent) bool {
	switch actionEvent.Action {
	case input.ActionOpenCommand:
		mh.enterCommandMode()
		return true
	case input.ActionStartFilter:
		mh.enterFilterMode()
		return true
	case input.ActionUnknown:
		return false
	}
	return mh.host.HandleAction(actionEvent)
}

// RegisterCommand adds a command to the registry.
func (mh *ModeHandler) RegisterCommand(name string, cmdFunc plugin.CommandFunc) error {
	if name == "" {
		return fmt.Errorf("command name cannot be empty")
	}
	if cmdFunc == nil {
		return fmt.Errorf("command '%s' has no function", name)
	}
	if _, exists := mh.commands[name]; exists {
		return fmt.Errorf("command '%s' already registered", name)
	}
	mh.commands[name] = cmdFunc
	logger.DebugTagf("command", "ModeHandler: Registered command ':%s'", name)
	return nil
}

// Commands lists the registered command names, sorted.
func (mh *ModeHandler) Commands() []string {
	names := make([]string, 0, len(mh.commands))
	for name := range mh.commands {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// GetCurrentMode returns the current input mode.
func (mh *ModeHandler) GetCurrentMode() InputMode {
	return mh.currentMode
}

// GetPromptInput returns what has been typed into the current prompt.
func (mh *ModeHandler) GetPromptInput() string {
	if mh.currentMode == ModeCommand || mh.currentMode == ModeFilter {
		return string(mh.promptBuf)
	}
	return ""
}
