package modehandler

import (
	"strings"

	"github.com/bethropolis/lectern/internal/input"
	"github.com/bethropolis/lectern/internal/logger"
)

const (
	commandLabel = ":"
	filterLabel  = "/"
)

func (mh *ModeHandler) enterCommandMode() {
	mh.currentMode = ModeCommand
	mh.promptBuf = mh.promptBuf[:0]
	mh.statusBar.SetPrompt(commandLabel, "")
	logger.Debugf("ModeHandler: Entering Command Mode")
}

func (mh *ModeHandler) enterFilterMode() {
	mh.currentMode = ModeFilter
	mh.filterBefore = mh.host.Filter()
	mh.promptBuf = append(mh.promptBuf[:0], []rune(mh.filterBefore)...)
	mh.statusBar.SetPrompt(filterLabel, mh.filterBefore)
	logger.Debugf("ModeHandler: Entering Filter Mode")
}

func (mh *ModeHandler) leavePrompt() {
	mh.currentMode = ModeNormal
	mh.promptBuf = mh.promptBuf[:0]
	mh.statusBar.ClearPrompt()
}

func (mh *ModeHandler) promptLabel() string {
	if mh.currentMode == ModeFilter {
		return filterLabel
	}
	return commandLabel
}

// handleActionPrompt handles actions in the command and filter prompts.
// The filter is applied to the host on every edit.
func (mh *ModeHandler) handleActionPrompt(actionEvent input.ActionEvent) bool {
	edited := false

	switch actionEvent.Action {
	case input.ActionInsertRune:
		mh.promptBuf = append(mh.promptBuf, actionEvent.Rune)
		edited = true

	case input.ActionPaste:
		if mh.clipboard == nil {
			return false
		}
		text, err := mh.clipboard.ReadAll()
		if err != nil {
			mh.statusBar.SetTemporaryMessage("Paste failed: %v", err)
			return true
		}
		text, _, _ = strings.Cut(text, "\n")
		mh.promptBuf = append(mh.promptBuf, []rune(strings.TrimRight(text, "\r"))...)
		edited = true

	case input.ActionDeleteCharBackward:
		if len(mh.promptBuf) == 0 {
			// Backspace on an empty prompt cancels it
			mh.cancelPrompt()
			return true
		}
		mh.promptBuf = mh.promptBuf[:len(mh.promptBuf)-1]
		edited = true

	case input.ActionSubmit:
		if mh.currentMode == ModeCommand {
			line := string(mh.promptBuf)
			mh.leavePrompt()
			mh.executeCommand(line)
		} else {
			mh.leavePrompt()
		}

	case input.ActionBack:
		mh.cancelPrompt()

	default:
		return false
	}

	if edited {
		mh.statusBar.SetPrompt(mh.promptLabel(), string(mh.promptBuf))
		if mh.currentMode == ModeFilter {
			mh.host.SetFilter(string(mh.promptBuf))
		}
	}
	return true
}

// cancelPrompt leaves the prompt; a cancelled filter restores the previous one.
func (mh *ModeHandler) cancelPrompt() {
	if mh.currentMode == ModeFilter {
		mh.host.SetFilter(mh.filterBefore)
	}
	mh.leavePrompt()
	logger.Debugf("ModeHandler: Prompt cancelled")
}

// ExecuteCommand runs a command line such as "speed 4". Errors are shown
// in the status bar and also returned.
func (mh *ModeHandler) ExecuteCommand(line string) error {
	return mh.executeCommand(line)
}

func (mh *ModeHandler) executeCommand(line string) error {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return nil
	}
	cmdName := parts[0]
	args := parts[1:]

	cmdFunc, exists := mh.commands[cmdName]
	if !exists {
		mh.statusBar.SetTemporaryMessage("Unknown command: %s", cmdName)
		return &UnknownCommandError{Name: cmdName}
	}
	logger.DebugTagf("command", "ModeHandler: Executing command ':%s' with args %v", cmdName, args)
	if err := cmdFunc(args); err != nil {
		mh.statusBar.SetTemporaryMessage("Error executing command '%s': %v", cmdName, err)
		return err
	}
	return nil
}

// UnknownCommandError is returned for a command name nobody registered.
type UnknownCommandError struct {
	Name string
}

func (e *UnknownCommandError) Error() string {
	return "unknown command: " + e.Name
}
