// internal/editor/editor.go
package editor

import (
	"github.com/rivo/uniseg"

	"github.com/bethropolis/lectern/internal/buffer"
	"github.com/bethropolis/lectern/internal/logger"
	"github.com/bethropolis/lectern/internal/types"
)

// DefaultScrollOff is the number of lines kept visible around the cursor.
const DefaultScrollOff = 2

// Editor is a plain-text editing surface over a buffer: a cursor, a
// viewport and clipboard access. OnChange is called with the full text
// after every edit.
type Editor struct {
	buffer     buffer.Buffer
	Cursor     types.Position
	ViewportY  int // Top visible line index
	ViewportX  int // Leftmost visible cell column
	viewWidth  int
	viewHeight int
	ScrollOff  int

	clipboard Clipboard
	undo      *UndoStack
	OnChange  func(text string)
}

// New creates an editor over an empty buffer. clip may be nil, in which
// case an in-memory register is used.
func New(clip Clipboard) *Editor {
	if clip == nil {
		clip = &Register{}
	}
	return &Editor{
		buffer:    buffer.NewSliceBuffer(),
		ScrollOff: DefaultScrollOff,
		clipboard: clip,
		undo:      NewUndoStack(DefaultMaxUndo),
	}
}

// SetText replaces the content, moves the cursor to the start and clears
// the undo history. It does not call OnChange.
func (e *Editor) SetText(text string) {
	e.buffer.SetText(text)
	e.undo.Clear()
	e.Cursor = types.Position{}
	e.ViewportY, e.ViewportX = 0, 0
}

func (e *Editor) Text() string          { return e.buffer.Text() }
func (e *Editor) Buffer() buffer.Buffer { return e.buffer }

// SetViewSize updates the view dimensions
func (e *Editor) SetViewSize(width, height int) {
	e.viewWidth, e.viewHeight = width, height
	e.ScrollToCursor()
}

func (e *Editor) ViewSize() (int, int) { return e.viewWidth, e.viewHeight }

func (e *Editor) changed() {
	if e.OnChange != nil {
		e.OnChange(e.buffer.Text())
	}
	e.ScrollToCursor()
}

// InsertRune types r at the cursor.
func (e *Editor) InsertRune(r rune) {
	e.InsertText(string(r))
}

// InsertText inserts text (possibly multi-line) at the cursor and moves the
// cursor past it.
func (e *Editor) InsertText(text string) {
	if text == "" {
		return
	}
	start := e.Cursor
	end, err := e.buffer.Insert(start, text)
	if err != nil {
		logger.Warnf("Editor: insert failed: %v", err)
		return
	}
	e.undo.Record(Change{Kind: ChangeInsert, Text: text, Start: start, End: end, CursorBefore: start})
	e.Cursor = end
	e.changed()
}

func (e *Editor) InsertNewline() { e.InsertText("\n") }

// DeleteBackward removes the rune before the cursor, joining lines at
// column zero.
func (e *Editor) DeleteBackward() {
	start := e.Cursor
	switch {
	case start.Col > 0:
		start.Col--
	case start.Line > 0:
		start.Line--
		start.Col = e.buffer.LineLen(start.Line)
	default:
		return
	}
	if !e.deleteRange(start, e.Cursor) {
		return
	}
	e.Cursor = start
	e.changed()
}

// DeleteForward removes the rune under the cursor.
func (e *Editor) DeleteForward() {
	end := e.Cursor
	switch {
	case end.Col < e.buffer.LineLen(end.Line):
		end.Col++
	case end.Line < e.buffer.LineCount()-1:
		end.Line++
		end.Col = 0
	default:
		return
	}
	if !e.deleteRange(e.Cursor, end) {
		return
	}
	e.changed()
}

// deleteRange removes one rune or line break and records it for undo.
func (e *Editor) deleteRange(start, end types.Position) bool {
	removed := "\n"
	if start.Line == end.Line {
		line, _ := e.buffer.Line(start.Line)
		removed = string(line[start.Col:end.Col])
	}
	if err := e.buffer.Delete(start, end); err != nil {
		logger.Warnf("Editor: delete failed: %v", err)
		return false
	}
	e.undo.Record(Change{Kind: ChangeDelete, Text: removed, Start: start, End: end, CursorBefore: e.Cursor})
	return true
}

// Undo reverts the last edit. It reports whether there was one.
func (e *Editor) Undo() (bool, error) {
	return e.applyHistory(e.undo.Undo)
}

// Redo reapplies the last undone edit.
func (e *Editor) Redo() (bool, error) {
	return e.applyHistory(e.undo.Redo)
}

func (e *Editor) applyHistory(step func(buffer.Buffer) (types.Position, bool, error)) (bool, error) {
	cursor, ok, err := step(e.buffer)
	if err != nil || !ok {
		return false, err
	}
	e.SetCursor(cursor)
	e.changed()
	return true, nil
}

// MoveCursor moves by lines and runes. Horizontal moves wrap across line
// ends.
func (e *Editor) MoveCursor(deltaLine, deltaCol int) {
	pos := e.Cursor
	pos.Line += deltaLine
	pos.Col += deltaCol
	if deltaCol < 0 && pos.Col < 0 && pos.Line > 0 {
		pos.Line--
		pos.Col = e.buffer.LineLen(pos.Line)
	} else if deltaCol > 0 && pos.Col > e.buffer.LineLen(pos.Line) && pos.Line < e.buffer.LineCount()-1 {
		pos.Line++
		pos.Col = 0
	}
	e.SetCursor(pos)
}

// SetCursor moves the cursor, clamped to the content.
func (e *Editor) SetCursor(pos types.Position) {
	if pos.Line < 0 {
		pos.Line = 0
	}
	if last := e.buffer.LineCount() - 1; pos.Line > last {
		pos.Line = last
	}
	if pos.Col < 0 {
		pos.Col = 0
	}
	if n := e.buffer.LineLen(pos.Line); pos.Col > n {
		pos.Col = n
	}
	e.Cursor = pos
	e.ScrollToCursor()
}

func (e *Editor) MoveHome() { e.SetCursor(types.Position{Line: e.Cursor.Line}) }

func (e *Editor) MoveEnd() {
	e.SetCursor(types.Position{Line: e.Cursor.Line, Col: e.buffer.LineLen(e.Cursor.Line)})
}

func (e *Editor) PageUp()   { e.MoveCursor(-max(1, e.viewHeight-1), 0) }
func (e *Editor) PageDown() { e.MoveCursor(max(1, e.viewHeight-1), 0) }

// CursorCell is the display column of the cursor within its line.
func (e *Editor) CursorCell() int {
	line, err := e.buffer.Line(e.Cursor.Line)
	if err != nil {
		return 0
	}
	return CellWidth(string(line[:e.Cursor.Col]))
}

// CellWidth is the display width of a line prefix. A tab takes one cell.
func CellWidth(s string) int {
	w := 0
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		if gr.Str() == "\t" {
			w++
			continue
		}
		w += gr.Width()
	}
	return w
}

// ScrollToCursor adjusts the viewport so the cursor stays visible with
// ScrollOff lines of context.
func (e *Editor) ScrollToCursor() {
	if e.viewHeight <= 0 {
		return
	}
	off := e.ScrollOff
	if off*2 >= e.viewHeight {
		off = (e.viewHeight - 1) / 2
	}
	if e.Cursor.Line < e.ViewportY+off {
		e.ViewportY = e.Cursor.Line - off
	}
	if e.Cursor.Line >= e.ViewportY+e.viewHeight-off {
		e.ViewportY = e.Cursor.Line - e.viewHeight + off + 1
	}
	if e.ViewportY < 0 {
		e.ViewportY = 0
	}

	if e.viewWidth > 0 {
		cell := e.CursorCell()
		if cell < e.ViewportX {
			e.ViewportX = cell
		} else if cell >= e.ViewportX+e.viewWidth {
			e.ViewportX = cell - e.viewWidth + 1
		}
	}
}

// Copy puts the whole body on the clipboard.
func (e *Editor) Copy() error {
	return e.clipboard.WriteAll(e.buffer.Text())
}

// Paste inserts the clipboard text at the cursor. It reports whether
// anything was inserted.
func (e *Editor) Paste() (bool, error) {
	text, err := e.clipboard.ReadAll()
	if err != nil {
		return false, err
	}
	if text == "" {
		return false, nil
	}
	e.InsertText(text)
	return true, nil
}
