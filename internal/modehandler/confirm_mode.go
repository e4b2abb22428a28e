package modehandler

import (
	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/lectern/internal/logger"
)

// Confirm asks a y/n question in the status bar and calls done with the
// answer once a key is pressed. It never blocks, so it can serve as an
// appstate.Confirmer. A question still pending is answered "no".
func (mh *ModeHandler) Confirm(prompt string, done func(ok bool)) {
	if mh.currentMode == ModeConfirm {
		mh.answer(false)
	} else if mh.currentMode != ModeNormal {
		mh.cancelPrompt()
	}
	mh.currentMode = ModeConfirm
	mh.confirmPrompt = prompt
	mh.confirmDone = done
	mh.statusBar.SetPrompt(prompt+" (y/n) ", "")
	logger.Debugf("ModeHandler: Asking '%s'", prompt)
}

// handleKeyConfirm accepts y or Y; any other key answers no.
func (mh *ModeHandler) handleKeyConfirm(ev *tcell.EventKey) bool {
	ok := ev.Key() == tcell.KeyRune && (ev.Rune() == 'y' || ev.Rune() == 'Y')
	mh.answer(ok)
	return true
}

func (mh *ModeHandler) answer(ok bool) {
	done := mh.confirmDone
	logger.Debugf("ModeHandler: '%s' answered %v", mh.confirmPrompt, ok)
	mh.confirmDone = nil
	mh.confirmPrompt = ""
	mh.currentMode = ModeNormal
	mh.statusBar.ClearPrompt()
	if done != nil {
		done(ok)
	}
}
