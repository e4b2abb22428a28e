// internal/input/keymap.go
package input

import (
	"github.com/gdamore/tcell/v2"
)

// Context selects the keymap in effect.
type Context int

const (
	ContextEditor Context = iota
	ContextTeleprompter
	ContextHistory
	ContextPrompt // single-line input: command line, filter, y/n
)

// Keymap maps special keys (Enter, arrows, Ctrl+letter) to actions.
type Keymap map[tcell.Key]Action

// RuneKeymap maps plain runes to actions.
type RuneKeymap map[rune]Action

type bindings struct {
	keys  Keymap
	runes RuneKeymap
	// insertRunes makes unmapped runes ActionInsertRune instead of unknown.
	insertRunes bool
}

// InputProcessor translates tcell events into ActionEvents per context.
type InputProcessor struct {
	contexts map[Context]*bindings
}

// NewInputProcessor creates a processor with default keybindings.
func NewInputProcessor() *InputProcessor {
	p := &InputProcessor{contexts: make(map[Context]*bindings)}
	p.loadDefaultBindings()
	return p
}

func (p *InputProcessor) loadDefaultBindings() {
	p.contexts[ContextEditor] = &bindings{
		keys: Keymap{
			tcell.KeyUp:         ActionMoveUp,
			tcell.KeyDown:       ActionMoveDown,
			tcell.KeyLeft:       ActionMoveLeft,
			tcell.KeyRight:      ActionMoveRight,
			tcell.KeyPgUp:       ActionMovePageUp,
			tcell.KeyPgDn:       ActionMovePageDown,
			tcell.KeyHome:       ActionMoveHome,
			tcell.KeyEnd:        ActionMoveEnd,
			tcell.KeyEnter:      ActionInsertNewLine,
			tcell.KeyTab:        ActionInsertRune,
			tcell.KeyBackspace:  ActionDeleteCharBackward,
			tcell.KeyBackspace2: ActionDeleteCharBackward,
			tcell.KeyDelete:     ActionDeleteCharForward,
			tcell.KeyEscape:     ActionQuit,
			tcell.KeyCtrlQ:      ActionQuit,
			tcell.KeyCtrlR:      ActionStartReading,
			tcell.KeyCtrlO:      ActionOpenHistory,
			tcell.KeyCtrlY:      ActionCopyBody,
			tcell.KeyCtrlV:      ActionPaste,
			tcell.KeyCtrlZ:      ActionUndo,
			tcell.KeyCtrlU:      ActionRedo,
			tcell.KeyCtrlE:      ActionOpenCommand,
		},
		runes:       RuneKeymap{},
		insertRunes: true,
	}

	p.contexts[ContextTeleprompter] = &bindings{
		keys: Keymap{
			tcell.KeyUp:     ActionSpeedUp,
			tcell.KeyDown:   ActionSpeedDown,
			tcell.KeyRight:  ActionFontUp,
			tcell.KeyLeft:   ActionFontDown,
			tcell.KeyEscape: ActionBack,
			tcell.KeyEnter:  ActionFinish,
			tcell.KeyF11:    ActionToggleFullscreen,
			tcell.KeyCtrlQ:  ActionQuit,
		},
		runes: RuneKeymap{
			' ': ActionTogglePlay,
			's': ActionFinish,
			'a': ActionCycleAlignment,
			'f': ActionCycleFontStyle,
			'm': ActionToggleMode,
			'd': ActionToggleDirection,
			'F': ActionToggleFullscreen,
			'n': ActionNextBookmark,
			'p': ActionPrevBookmark,
			':': ActionOpenCommand,
		},
	}

	p.contexts[ContextHistory] = &bindings{
		keys: Keymap{
			tcell.KeyUp:     ActionSelectUp,
			tcell.KeyDown:   ActionSelectDown,
			tcell.KeyEnter:  ActionLoadRecord,
			tcell.KeyDelete: ActionDeleteRecord,
			tcell.KeyEscape: ActionBack,
			tcell.KeyCtrlQ:  ActionQuit,
		},
		runes: RuneKeymap{
			'k': ActionSelectUp,
			'j': ActionSelectDown,
			'd': ActionDeleteRecord,
			'/': ActionStartFilter,
			's': ActionToggleSort,
			'r': ActionReverseSort,
			':': ActionOpenCommand,
		},
	}

	p.contexts[ContextPrompt] = &bindings{
		keys: Keymap{
			tcell.KeyEnter:      ActionSubmit,
			tcell.KeyEscape:     ActionBack,
			tcell.KeyBackspace:  ActionDeleteCharBackward,
			tcell.KeyBackspace2: ActionDeleteCharBackward,
			tcell.KeyCtrlV:      ActionPaste,
		},
		runes:       RuneKeymap{},
		insertRunes: true,
	}
}

// Bind adds or replaces a rune binding in ctx.
func (p *InputProcessor) Bind(ctx Context, r rune, action Action) {
	if b, ok := p.contexts[ctx]; ok {
		b.runes[r] = action
	}
}

// ProcessEvent maps a key event to an action in the given context.
func (p *InputProcessor) ProcessEvent(ctx Context, ev *tcell.EventKey) ActionEvent {
	b, ok := p.contexts[ctx]
	if !ok {
		return ActionEvent{Action: ActionUnknown}
	}
	key := ev.Key()
	mod := ev.Modifiers()

	// Ctrl+letter arrives as its own key; the Ctrl modifier is redundant then.
	if key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ {
		mod &^= tcell.ModCtrl
	}

	if key == tcell.KeyRune {
		if mod&(tcell.ModCtrl|tcell.ModAlt|tcell.ModMeta) != 0 {
			return ActionEvent{Action: ActionUnknown}
		}
		r := ev.Rune()
		if action, ok := b.runes[r]; ok {
			return ActionEvent{Action: action, Rune: r}
		}
		if b.insertRunes {
			return ActionEvent{Action: ActionInsertRune, Rune: r}
		}
		return ActionEvent{Action: ActionUnknown, Rune: r}
	}

	if mod == tcell.ModNone || mod == tcell.ModShift {
		if action, ok := b.keys[key]; ok {
			if key == tcell.KeyTab {
				return ActionEvent{Action: action, Rune: '\t'}
			}
			return ActionEvent{Action: action}
		}
	}
	return ActionEvent{Action: ActionUnknown}
}
