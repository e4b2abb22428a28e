// internal/buffer/slice_buffer.go
package buffer

import (
	"fmt"
	"strings"

	"github.com/bethropolis/lectern/internal/types"
)

// SliceBuffer stores the text as a slice of rune lines. There is always at
// least one (possibly empty) line.
type SliceBuffer struct {
	lines    [][]rune
	modified bool // set by edits, cleared by the owner
}

// NewSliceBuffer creates an empty SliceBuffer.
func NewSliceBuffer() *SliceBuffer {
	return &SliceBuffer{lines: [][]rune{{}}}
}

// SetText replaces the whole content. Windows line endings are normalized.
func (sb *SliceBuffer) SetText(text string) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	parts := strings.Split(text, "\n")
	sb.lines = make([][]rune, len(parts))
	for i, p := range parts {
		sb.lines[i] = []rune(p)
	}
	sb.modified = false
}

// Text joins the lines with '\n'.
func (sb *SliceBuffer) Text() string {
	var b strings.Builder
	for i, line := range sb.lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(string(line))
	}
	return b.String()
}

func (sb *SliceBuffer) LineCount() int { return len(sb.lines) }

// Line returns a copy of the line at index.
func (sb *SliceBuffer) Line(index int) ([]rune, error) {
	if index < 0 || index >= len(sb.lines) {
		return nil, fmt.Errorf("line index %d out of bounds (0-%d)", index, len(sb.lines)-1)
	}
	return append([]rune(nil), sb.lines[index]...), nil
}

// LineLen is the rune length of a line, 0 when out of range.
func (sb *SliceBuffer) LineLen(index int) int {
	if index < 0 || index >= len(sb.lines) {
		return 0
	}
	return len(sb.lines[index])
}

func (sb *SliceBuffer) IsModified() bool { return sb.modified }
func (sb *SliceBuffer) ClearModified()   { sb.modified = false }

// clamp pulls pos inside the buffer.
func (sb *SliceBuffer) clamp(pos types.Position) types.Position {
	if pos.Line < 0 {
		pos.Line = 0
	}
	if pos.Line >= len(sb.lines) {
		pos.Line = len(sb.lines) - 1
	}
	if pos.Col < 0 {
		pos.Col = 0
	}
	if n := len(sb.lines[pos.Line]); pos.Col > n {
		pos.Col = n
	}
	return pos
}

// Insert inserts text at pos. Multi-line text splits the current line.
func (sb *SliceBuffer) Insert(pos types.Position, text string) (types.Position, error) {
	pos = sb.clamp(pos)
	if text == "" {
		return pos, nil
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")

	current := sb.lines[pos.Line]
	head := append([]rune(nil), current[:pos.Col]...)
	tail := append([]rune(nil), current[pos.Col:]...)

	parts := strings.Split(text, "\n")
	inserted := make([][]rune, len(parts))
	for i, p := range parts {
		inserted[i] = []rune(p)
	}
	last := len(inserted) - 1
	end := types.Position{Line: pos.Line + last, Col: len(inserted[last])}
	if last == 0 {
		end.Col += pos.Col
	}

	inserted[0] = append(head, inserted[0]...)
	inserted[last] = append(inserted[last], tail...)

	next := make([][]rune, 0, len(sb.lines)+last)
	next = append(next, sb.lines[:pos.Line]...)
	next = append(next, inserted...)
	next = append(next, sb.lines[pos.Line+1:]...)
	sb.lines = next
	sb.modified = true
	return end, nil
}

// Delete removes the text in [start, end). The positions may be given in
// either order.
func (sb *SliceBuffer) Delete(start, end types.Position) error {
	start, end = types.Ordered(sb.clamp(start), sb.clamp(end))
	if start == end {
		return nil
	}

	joined := append(append([]rune(nil), sb.lines[start.Line][:start.Col]...), sb.lines[end.Line][end.Col:]...)
	next := make([][]rune, 0, len(sb.lines)-(end.Line-start.Line))
	next = append(next, sb.lines[:start.Line]...)
	next = append(next, joined)
	next = append(next, sb.lines[end.Line+1:]...)
	sb.lines = next
	sb.modified = true
	return nil
}
