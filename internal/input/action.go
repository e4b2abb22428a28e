// internal/input/action.go
package input

// Action represents an operation requested by a key press.
type Action int

const (
	// --- Meta Actions ---
	ActionUnknown Action = iota
	ActionQuit
	ActionOpenCommand // open the ':' command line
	ActionBack        // Esc: leave the current view or prompt

	// --- Editor: cursor movement ---
	ActionMoveUp
	ActionMoveDown
	ActionMoveLeft
	ActionMoveRight
	ActionMovePageUp
	ActionMovePageDown
	ActionMoveHome
	ActionMoveEnd

	// --- Editor: text manipulation ---
	ActionInsertRune // Rune carries the character
	ActionInsertNewLine
	ActionDeleteCharForward
	ActionDeleteCharBackward
	ActionCopyBody
	ActionPaste
	ActionUndo
	ActionRedo

	// --- Editor: navigation ---
	ActionStartReading
	ActionOpenHistory

	// --- Teleprompter ---
	ActionTogglePlay
	ActionSpeedUp
	ActionSpeedDown
	ActionFontUp
	ActionFontDown
	ActionFinish
	ActionCycleAlignment
	ActionCycleFontStyle
	ActionToggleMode
	ActionToggleDirection
	ActionToggleFullscreen
	ActionNextBookmark
	ActionPrevBookmark

	// --- History ---
	ActionSelectUp
	ActionSelectDown
	ActionLoadRecord
	ActionDeleteRecord
	ActionStartFilter
	ActionToggleSort
	ActionReverseSort

	// --- Prompt line (command, filter, confirm) ---
	ActionSubmit
)

// ActionEvent represents a decoded input event resulting in an action.
type ActionEvent struct {
	Action Action
	Rune   rune // Used for ActionInsertRune
}
