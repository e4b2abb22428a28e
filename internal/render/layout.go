// Package render lays out script text for the reading view and draws the
// three views onto a tcell screen.
package render

import (
	"math"
	"slices"
	"unicode"

	"github.com/rivo/uniseg"

	"github.com/bethropolis/lectern/internal/markup"
	"github.com/bethropolis/lectern/internal/script"
)

const (
	// MinColumns is the narrowest text column the reading view uses.
	MinColumns = 10
	// DefaultUnitsPerRow is the scroll distance of one layout row.
	DefaultUnitsPerRow = 16
)

// Cell is one grapheme cluster.
type Cell struct {
	Runes []rune
	Width int
	Kind  markup.Kind
}

// Row is one visual line of the reading view. Blank rows have no cells.
type Row struct {
	Cells []Cell
	Width int
}

// Mark is a bookmark placed on a row.
type Mark struct {
	Row    int
	Anchor string
	Label  string
}

// Layout is the wrapped script for a given screen width and settings.
type Layout struct {
	Rows        []Row
	Cols        int
	Marks       []Mark
	UnitsPerRow int
}

// Columns maps font size to the width of the text column: size 1 uses the
// full width, size 20 about a sixth of it.
func Columns(width int, fontSize float64) int {
	fs := script.ClampFontSize(fontSize)
	cols := int(float64(width) * (24 - fs) / 23)
	if cols < MinColumns {
		cols = MinColumns
	}
	if width > 0 && cols > width {
		cols = width
	}
	return cols
}

// RowGap is the number of blank rows between text rows.
func RowGap(fontSize float64) int {
	return int(math.Floor(script.ClampFontSize(fontSize) / 7))
}

// Build wraps text into rows for a screen width. unitsPerRow <= 0 uses
// DefaultUnitsPerRow. An empty text has no rows.
func Build(text string, width int, d script.DisplaySettings, unitsPerRow int) Layout {
	if unitsPerRow <= 0 {
		unitsPerRow = DefaultUnitsPerRow
	}
	w := &wrapper{cols: Columns(width, d.FontSize)}
	for span := range markup.Spans(text) {
		if span.Kind == markup.Bookmark {
			w.pending = &Mark{Anchor: span.Anchor, Label: span.Text}
		}
		gr := uniseg.NewGraphemes(span.Text)
		for gr.Next() {
			runes := gr.Runes()
			switch {
			case runes[len(runes)-1] == '\n':
				w.hardBreak()
			case unicode.IsSpace(runes[0]):
				w.space()
			default:
				if cw := gr.Width(); cw > 0 {
					w.word = append(w.word, Cell{Runes: runes, Width: cw, Kind: span.Kind})
				}
			}
		}
	}
	w.finish()

	gap := RowGap(d.FontSize)
	l := Layout{Cols: w.cols, UnitsPerRow: unitsPerRow}
	for i, r := range w.rows {
		if i > 0 {
			for g := 0; g < gap; g++ {
				l.Rows = append(l.Rows, Row{})
			}
		}
		if d.Direction == script.DirectionRTL {
			slices.Reverse(r.Cells)
		}
		l.Rows = append(l.Rows, r)
	}
	for _, m := range w.marks {
		m.Row *= gap + 1
		l.Marks = append(l.Marks, m)
	}
	return l
}

// Length is the scrollable distance of the whole layout.
func (l Layout) Length() float64 {
	return float64(len(l.Rows) * l.UnitsPerRow)
}

// BookmarkOffsets are the scroll offsets of the bookmark rows, ascending.
func (l Layout) BookmarkOffsets() []float64 {
	out := make([]float64, 0, len(l.Marks))
	for _, m := range l.Marks {
		out = append(out, float64(m.Row*l.UnitsPerRow))
	}
	return out
}

// RowAt is the row index shown at the reading line for offset.
func (l Layout) RowAt(offset float64) int {
	if offset <= 0 || l.UnitsPerRow <= 0 {
		return 0
	}
	return int(offset / float64(l.UnitsPerRow))
}

// Indent is the number of cells before a row within the text column.
// In rtl text left and right alignment swap sides.
func (l Layout) Indent(r Row, align script.Alignment, dir script.Direction) int {
	free := l.Cols - r.Width
	if free <= 0 {
		return 0
	}
	if dir == script.DirectionRTL {
		switch align {
		case script.AlignLeft:
			align = script.AlignRight
		case script.AlignRight:
			align = script.AlignLeft
		}
	}
	switch align {
	case script.AlignCenter:
		return free / 2
	case script.AlignRight:
		return free
	default:
		return 0
	}
}

// wrapper accumulates words into rows of at most cols cells.
type wrapper struct {
	cols    int
	rows    []Row
	cur     Row
	word    []Cell
	pending *Mark
	marks   []Mark
}

func (w *wrapper) place(c Cell) {
	if w.pending != nil {
		m := *w.pending
		m.Row = len(w.rows)
		w.marks = append(w.marks, m)
		w.pending = nil
	}
	w.cur.Cells = append(w.cur.Cells, c)
	w.cur.Width += c.Width
}

func (w *wrapper) newRow() {
	// trailing spaces do not count for alignment
	for n := len(w.cur.Cells); n > 0 && w.cur.Cells[n-1].Runes[0] == ' '; n = len(w.cur.Cells) {
		w.cur.Width -= w.cur.Cells[n-1].Width
		w.cur.Cells = w.cur.Cells[:n-1]
	}
	w.rows = append(w.rows, w.cur)
	w.cur = Row{}
}

func (w *wrapper) flushWord() {
	if len(w.word) == 0 {
		return
	}
	width := 0
	for _, c := range w.word {
		width += c.Width
	}
	if w.cur.Width > 0 && w.cur.Width+width > w.cols {
		w.newRow()
	}
	for _, c := range w.word {
		if w.cur.Width > 0 && w.cur.Width+c.Width > w.cols {
			w.newRow() // word longer than a row
		}
		w.place(c)
	}
	w.word = w.word[:0]
}

func (w *wrapper) space() {
	w.flushWord()
	if w.cur.Width > 0 && w.cur.Width < w.cols {
		w.place(Cell{Runes: []rune{' '}, Width: 1, Kind: markup.Plain})
	}
}

func (w *wrapper) hardBreak() {
	w.flushWord()
	w.newRow()
}

func (w *wrapper) finish() {
	w.flushWord()
	if len(w.cur.Cells) > 0 {
		w.newRow()
	}
}
