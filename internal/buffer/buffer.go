// internal/buffer/buffer.go
package buffer

import "github.com/bethropolis/lectern/internal/types"

// Buffer defines the interface for text buffer operations. Positions are
// line/rune coordinates and are clamped to the content.
type Buffer interface {
	SetText(text string)
	Text() string
	Line(index int) ([]rune, error)
	LineCount() int
	LineLen(index int) int
	// Insert returns the position just after the inserted text.
	Insert(pos types.Position, text string) (types.Position, error)
	Delete(start, end types.Position) error
	IsModified() bool
	ClearModified()
}
