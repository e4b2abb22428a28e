package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/lectern/internal/types"
)

func TestUndoRedoTyping(t *testing.T) {
	e, changes := newEditor("")
	e.InsertText("Hi")
	e.InsertNewline()
	e.InsertRune('!')
	require.Equal(t, "Hi\n!", e.Text())

	ok, err := e.Undo()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Hi\n", e.Text())
	assert.Equal(t, types.Position{Line: 1}, e.Cursor)

	_, err = e.Undo()
	require.NoError(t, err)
	assert.Equal(t, "Hi", e.Text())
	assert.Equal(t, types.Position{Line: 0, Col: 2}, e.Cursor)

	ok, err = e.Redo()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Hi\n", e.Text())
	assert.Equal(t, types.Position{Line: 1}, e.Cursor)
	assert.Equal(t, "Hi\n", (*changes)[len(*changes)-1])
}

func TestUndoDeletes(t *testing.T) {
	e, _ := newEditor("ab\ncd")
	e.SetCursor(types.Position{Line: 1, Col: 0})
	e.DeleteBackward()
	require.Equal(t, "abcd", e.Text())
	e.DeleteForward()
	require.Equal(t, "abd", e.Text())

	_, err := e.Undo()
	require.NoError(t, err)
	assert.Equal(t, "abcd", e.Text())
	assert.Equal(t, types.Position{Line: 0, Col: 2}, e.Cursor)

	_, err = e.Undo()
	require.NoError(t, err)
	assert.Equal(t, "ab\ncd", e.Text())
	assert.Equal(t, types.Position{Line: 1, Col: 0}, e.Cursor)

	_, err = e.Redo()
	require.NoError(t, err)
	assert.Equal(t, "abcd", e.Text())
}

func TestUndoNothing(t *testing.T) {
	e, changes := newEditor("text")
	ok, err := e.Undo()
	require.NoError(t, err)
	assert.False(t, ok)
	ok, err = e.Redo()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, *changes)
}

func TestNewEditDropsRedo(t *testing.T) {
	e, _ := newEditor("")
	e.InsertText("a")
	e.InsertText("b")
	_, _ = e.Undo()
	e.InsertText("c")

	ok, err := e.Redo()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, "ac", e.Text())
}

func TestSetTextClearsUndo(t *testing.T) {
	e, _ := newEditor("")
	e.InsertText("draft")
	e.SetText("loaded")
	ok, _ := e.Undo()
	assert.False(t, ok)
	assert.Equal(t, "loaded", e.Text())
}

func TestUndoStackLimit(t *testing.T) {
	u := NewUndoStack(2)
	for i := 0; i < 3; i++ {
		u.Record(Change{Kind: ChangeInsert, Text: "x"})
	}
	assert.Len(t, u.changes, 2)
	assert.True(t, u.CanUndo())
	assert.False(t, u.CanRedo())
}
