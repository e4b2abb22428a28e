package editor

import (
	"fmt"

	"github.com/bethropolis/lectern/internal/buffer"
	"github.com/bethropolis/lectern/internal/logger"
	"github.com/bethropolis/lectern/internal/types"
)

// DefaultMaxUndo is how many edits can be undone.
const DefaultMaxUndo = 100

// ChangeKind tells whether text was inserted or deleted.
type ChangeKind int

const (
	ChangeInsert ChangeKind = iota
	ChangeDelete
)

func (k ChangeKind) String() string {
	if k == ChangeDelete {
		return "delete"
	}
	return "insert"
}

// Change is one reversible edit.
type Change struct {
	Kind         ChangeKind
	Text         string         // text inserted or removed
	Start        types.Position // where the edit began
	End          types.Position // after inserted text, or end of the removed range
	CursorBefore types.Position
}

// UndoStack records edits for undo and redo. Recording a new edit drops
// everything that could have been redone.
type UndoStack struct {
	changes []Change
	next    int // index of the next change to redo
	max     int
}

func NewUndoStack(max int) *UndoStack {
	if max <= 0 {
		max = DefaultMaxUndo
	}
	return &UndoStack{max: max}
}

// Record adds a change, evicting the oldest past the limit.
func (u *UndoStack) Record(c Change) {
	u.changes = append(u.changes[:u.next], c)
	if len(u.changes) > u.max {
		u.changes = u.changes[len(u.changes)-u.max:]
	}
	u.next = len(u.changes)
	logger.DebugTagf("undo", "Undo: recorded %s at %v (%d/%d)", c.Kind, c.Start, u.next, len(u.changes))
}

// Undo reverts the last applied change on buf and returns where the
// cursor goes.
func (u *UndoStack) Undo(buf buffer.Buffer) (types.Position, bool, error) {
	if u.next == 0 {
		return types.Position{}, false, nil
	}
	c := u.changes[u.next-1]
	var err error
	switch c.Kind {
	case ChangeInsert:
		err = buf.Delete(c.Start, c.End)
	case ChangeDelete:
		_, err = buf.Insert(c.Start, c.Text)
	}
	if err != nil {
		return types.Position{}, false, fmt.Errorf("undo failed: %w", err)
	}
	u.next--
	return c.CursorBefore, true, nil
}

// Redo reapplies the last undone change.
func (u *UndoStack) Redo(buf buffer.Buffer) (types.Position, bool, error) {
	if u.next >= len(u.changes) {
		return types.Position{}, false, nil
	}
	c := u.changes[u.next]
	var (
		cursor types.Position
		err    error
	)
	switch c.Kind {
	case ChangeInsert:
		cursor, err = buf.Insert(c.Start, c.Text)
	case ChangeDelete:
		err = buf.Delete(c.Start, c.End)
		cursor = c.Start
	}
	if err != nil {
		return types.Position{}, false, fmt.Errorf("redo failed: %w", err)
	}
	u.next++
	return cursor, true, nil
}

// Clear forgets every change.
func (u *UndoStack) Clear() {
	u.changes = u.changes[:0]
	u.next = 0
}

func (u *UndoStack) CanUndo() bool { return u.next > 0 }
func (u *UndoStack) CanRedo() bool { return u.next < len(u.changes) }
