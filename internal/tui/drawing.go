// internal/tui/drawing.go
package tui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// Fill paints a row segment with spaces in style.
func Fill(screen tcell.Screen, x, y, width int, style tcell.Style) {
	for i := 0; i < width; i++ {
		screen.SetContent(x+i, y, ' ', nil, style)
	}
}

// DrawText draws text from (x, y) one grapheme cluster at a time, stopping
// before maxWidth cells are exceeded. It returns the cells used.
func DrawText(screen tcell.Screen, x, y, maxWidth int, text string, style tcell.Style) int {
	used := 0
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		w := gr.Width()
		if used+w > maxWidth {
			break
		}
		runes := gr.Runes()
		if len(runes) > 0 {
			screen.SetContent(x+used, y, runes[0], runes[1:], style)
		}
		used += w
	}
	return used
}

// DrawTextRight draws text so that it ends at column right (exclusive).
func DrawTextRight(screen tcell.Screen, right, y, maxWidth int, text string, style tcell.Style) int {
	w := min(uniseg.StringWidth(text), maxWidth)
	return DrawText(screen, right-w, y, w, text, style)
}

// Truncate cuts text to at most width cells, appending an ellipsis when
// anything was dropped.
func Truncate(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if uniseg.StringWidth(text) <= width {
		return text
	}
	out := make([]byte, 0, len(text))
	used := 0
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		w := gr.Width()
		if used+w > width-1 {
			break
		}
		out = append(out, gr.Bytes()...)
		used += w
	}
	return string(out) + "…"
}
