// internal/render/draw.go
package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/bethropolis/lectern/internal/editor"
	"github.com/bethropolis/lectern/internal/history"
	"github.com/bethropolis/lectern/internal/markup"
	"github.com/bethropolis/lectern/internal/script"
	"github.com/bethropolis/lectern/internal/statusbar"
	"github.com/bethropolis/lectern/internal/theme"
	"github.com/bethropolis/lectern/internal/tui"
)

// Rect is a screen area.
type Rect struct {
	X, Y, W, H int
}

func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// kindStyle maps a span kind to its theme style.
func kindStyle(th *theme.Theme, k markup.Kind) tcell.Style {
	switch k {
	case markup.Emphasis:
		return th.GetStyle(theme.StyleEmphasis)
	case markup.Bookmark:
		return th.GetStyle(theme.StyleBookmark)
	default:
		return th.GetStyle(theme.StyleDefault)
	}
}

// FontAttrs applies the font style: serif is italic, monospace is dim.
func FontAttrs(style tcell.Style, f script.FontStyle) tcell.Style {
	switch f {
	case script.FontSerif:
		return style.Italic(true)
	case script.FontMonospace:
		return style.Dim(true)
	}
	return style
}

// ReadingLine is the row of area at which the current offset is shown.
func ReadingLine(area Rect) int {
	return area.Y + area.H/3
}

// Teleprompter draws the layout scrolled to offset.
func Teleprompter(screen tcell.Screen, area Rect, l Layout, offset float64, d script.DisplaySettings, th *theme.Theme) {
	if area.Empty() {
		return
	}
	base := th.GetStyle(theme.StyleDefault)
	for y := area.Y; y < area.Y+area.H; y++ {
		tui.Fill(screen, area.X, y, area.W, base)
	}

	marker := ReadingLine(area)
	margin := max(0, (area.W-l.Cols)/2)
	if margin >= 2 {
		screen.SetContent(area.X+margin-2, marker, '▸', nil, th.GetStyle(theme.StyleReadingLine))
	}

	top := l.RowAt(offset)
	for y := area.Y; y < area.Y+area.H; y++ {
		idx := top + (y - marker)
		if idx < 0 || idx >= len(l.Rows) {
			continue
		}
		row := l.Rows[idx]
		x := area.X + margin + l.Indent(row, d.Alignment, d.Direction)
		for _, c := range row.Cells {
			if x+c.Width > area.X+area.W {
				break
			}
			style := FontAttrs(kindStyle(th, c.Kind), d.FontStyle)
			screen.SetContent(x, y, c.Runes[0], c.Runes[1:], style)
			x += c.Width
		}
	}
}

// ControlsHint is the key help shown under the reading view.
const ControlsHint = "space play  ↑↓ speed  ←→ font  a align  f style  m mode  d dir  F full  n/p mark  s save  esc back"

// Controls draws a one-line hint row.
func Controls(screen tcell.Screen, area Rect, text string, th *theme.Theme) {
	if area.Empty() {
		return
	}
	style := th.GetStyle(theme.StyleControls)
	tui.Fill(screen, area.X, area.Y, area.W, style)
	tui.DrawText(screen, area.X, area.Y, area.W, tui.Truncate(text, area.W), style)
}

// Editor draws the title line and the visible buffer lines, with markup
// highlighted. It returns the screen position of the cursor.
func Editor(screen tcell.Screen, area Rect, ed *editor.Editor, title string, th *theme.Theme) (int, int) {
	if area.Empty() {
		return -1, -1
	}
	base := th.GetStyle(theme.StyleDefault)
	titleStyle := th.GetStyle(theme.StyleTitle)
	tui.Fill(screen, area.X, area.Y, area.W, titleStyle)
	tui.DrawText(screen, area.X, area.Y, area.W, tui.Truncate("Title: "+title, area.W), titleStyle)

	text := Rect{X: area.X, Y: area.Y + 1, W: area.W, H: area.H - 1}
	buf := ed.Buffer()
	for sy := 0; sy < text.H; sy++ {
		y := text.Y + sy
		tui.Fill(screen, text.X, y, text.W, base)
		line, err := buf.Line(ed.ViewportY + sy)
		if err != nil {
			continue
		}
		drawEditorLine(screen, text.X, y, text.W, ed.ViewportX, string(line), th)
	}

	cy := text.Y + ed.Cursor.Line - ed.ViewportY
	cx := text.X + ed.CursorCell() - ed.ViewportX
	if cy < text.Y || cy >= text.Y+text.H || cx < text.X || cx >= text.X+text.W {
		return -1, -1
	}
	return cx, cy
}

func drawEditorLine(screen tcell.Screen, x0, y, width, skip int, line string, th *theme.Theme) {
	col := 0 // cell column within the line
	for span := range markup.Spans(line) {
		style := kindStyle(th, span.Kind)
		gr := uniseg.NewGraphemes(span.Raw())
		for gr.Next() {
			w := gr.Width()
			runes := gr.Runes()
			if runes[0] == '\t' {
				runes, w = []rune{' '}, 1
			}
			if col >= skip && col-skip+w <= width && w > 0 {
				screen.SetContent(x0+col-skip, y, runes[0], runes[1:], style)
			}
			col += w
			if col-skip >= width {
				return
			}
		}
	}
}

// HistoryView is what the History screen shows.
type HistoryView struct {
	Records  []script.Script // already filtered and sorted
	Total    int
	Selected int
	Query    history.Query
}

// History draws a header and the record list, keeping the selection visible.
func History(screen tcell.Screen, area Rect, v HistoryView, th *theme.Theme) {
	if area.Empty() {
		return
	}
	base := th.GetStyle(theme.StyleDefault)
	dim := th.GetStyle(theme.StyleDim)
	titleStyle := th.GetStyle(theme.StyleTitle)
	sel := th.GetStyle(theme.StyleSelection)

	header := fmt.Sprintf("History  %d of %d  sort: %s %s", len(v.Records), v.Total, v.Query.SortBy, v.Query.Direction)
	if v.Query.Filter != "" {
		header += fmt.Sprintf("  filter: %q", v.Query.Filter)
	}
	tui.Fill(screen, area.X, area.Y, area.W, titleStyle)
	tui.DrawText(screen, area.X, area.Y, area.W, tui.Truncate(header, area.W), titleStyle)

	list := Rect{X: area.X, Y: area.Y + 1, W: area.W, H: area.H - 1}
	for y := list.Y; y < list.Y+list.H; y++ {
		tui.Fill(screen, list.X, y, list.W, base)
	}
	if len(v.Records) == 0 {
		msg := "No sessions recorded yet."
		if v.Query.Filter != "" {
			msg = "No sessions match the filter."
		}
		tui.DrawText(screen, list.X+1, list.Y, list.W-1, msg, dim)
		return
	}

	top := 0
	if v.Selected >= list.H {
		top = v.Selected - list.H + 1
	}
	for i := 0; i < list.H && top+i < len(v.Records); i++ {
		idx := top + i
		y := list.Y + i
		rowStyle, metaStyle := base, dim
		if idx == v.Selected {
			rowStyle, metaStyle = sel, sel
			tui.Fill(screen, list.X, y, list.W, sel)
		}
		meta := HistoryMeta(v.Records[idx])
		used := tui.DrawText(screen, list.X+1, y, list.W-1, meta, metaStyle)
		tui.DrawText(screen, list.X+1+used+2, y, list.W-used-3, tui.Truncate(v.Records[idx].Title, list.W-used-3), rowStyle)
	}
}

// HistoryMeta is the date and duration column of a history row.
func HistoryMeta(r script.Script) string {
	dur := "  --  "
	if d, ok := r.Duration(); ok {
		dur = fmt.Sprintf("%6s", statusbar.FormatDuration(d))
	}
	return fmt.Sprintf("%s %s", r.CreatedAt.Local().Format("2006-01-02 15:04"), dur)
}
