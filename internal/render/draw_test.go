package render

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/lectern/internal/editor"
	"github.com/bethropolis/lectern/internal/history"
	"github.com/bethropolis/lectern/internal/script"
	"github.com/bethropolis/lectern/internal/theme"
)

func simScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, sim.Init())
	sim.SetSize(w, h)
	t.Cleanup(sim.Fini)
	return sim
}

func screenRow(sim tcell.SimulationScreen, y int) string {
	sim.Show()
	cells, w, _ := sim.GetContents()
	out := make([]rune, 0, w)
	for x := 0; x < w; x++ {
		c := cells[y*w+x]
		if len(c.Runes) == 0 {
			out = append(out, ' ')
			continue
		}
		out = append(out, c.Runes...)
	}
	return string(out)
}

func TestTeleprompterPlacesOffsetAtReadingLine(t *testing.T) {
	sim := simScreen(t, 20, 6)
	th := theme.Night
	d := settings(1)
	l := Build("hello\nworld\nagain", 20, d, 16)
	area := Rect{W: 20, H: 6}

	Teleprompter(sim, area, l, 0, d, &th)
	assert.Equal(t, 2, ReadingLine(area))
	assert.Equal(t, "hello", strings.TrimSpace(screenRow(sim, 2)))
	assert.Equal(t, "world", strings.TrimSpace(screenRow(sim, 3)))
	assert.Empty(t, strings.TrimSpace(screenRow(sim, 0)))

	Teleprompter(sim, area, l, 16, d, &th)
	assert.Equal(t, "hello", strings.TrimSpace(screenRow(sim, 1)))
	assert.Equal(t, "world", strings.TrimSpace(screenRow(sim, 2)))
}

func TestTeleprompterAlignment(t *testing.T) {
	sim := simScreen(t, 20, 3)
	th := theme.Night
	d := settings(1)
	d.Alignment = script.AlignCenter
	l := Build("hello", 20, d, 16)

	Teleprompter(sim, Rect{W: 20, H: 3}, l, 0, d, &th)
	assert.Equal(t, "       hello        ", screenRow(sim, 1))
}

func TestTeleprompterStyles(t *testing.T) {
	sim := simScreen(t, 20, 3)
	th := theme.Night
	d := settings(1)
	d.FontStyle = script.FontSerif
	l := Build("a **b**", 20, d, 16)

	Teleprompter(sim, Rect{W: 20, H: 3}, l, 0, d, &th)
	_, _, plain, _ := sim.GetContent(0, 1)
	_, _, emph, _ := sim.GetContent(2, 1)
	_, _, attrs := plain.Decompose()
	assert.NotZero(t, attrs&tcell.AttrItalic)
	_, _, attrs = emph.Decompose()
	assert.NotZero(t, attrs&tcell.AttrBold)
}

func TestEditorDraw(t *testing.T) {
	sim := simScreen(t, 20, 4)
	th := theme.Day
	ed := editor.New(nil)
	ed.SetText("one\n**two**")
	ed.SetViewSize(20, 3)

	x, y := Editor(sim, Rect{W: 20, H: 4}, ed, "Demo", &th)
	assert.Equal(t, 0, x)
	assert.Equal(t, 1, y)
	assert.Equal(t, "Title: Demo", strings.TrimSpace(screenRow(sim, 0)))
	assert.Equal(t, "one", strings.TrimSpace(screenRow(sim, 1)))
	assert.Equal(t, "**two**", strings.TrimSpace(screenRow(sim, 2)))

	_, _, style, _ := sim.GetContent(2, 2)
	assert.Equal(t, th.GetStyle(theme.StyleEmphasis), style)
}

func TestHistoryDraw(t *testing.T) {
	sim := simScreen(t, 60, 4)
	th := theme.Night
	start := time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC)
	end := start.Add(75 * time.Second)
	recs := []script.Script{
		{ID: "a", Title: "Keynote", CreatedAt: start, StartTime: &start, EndTime: &end},
		{ID: "b", Title: "Standup", CreatedAt: start},
	}
	v := HistoryView{Records: recs, Total: 3, Selected: 1, Query: history.Query{Filter: "n"}}

	History(sim, Rect{W: 60, H: 4}, v, &th)
	assert.Contains(t, screenRow(sim, 0), `History  2 of 3  sort: date desc  filter: "n"`)
	assert.Contains(t, screenRow(sim, 1), "1:15")
	assert.Contains(t, screenRow(sim, 1), "Keynote")
	assert.Contains(t, screenRow(sim, 2), "--")

	_, _, style, _ := sim.GetContent(0, 2)
	assert.Equal(t, th.GetStyle(theme.StyleSelection), style)
}

func TestHistoryDrawEmpty(t *testing.T) {
	sim := simScreen(t, 40, 3)
	th := theme.Night
	History(sim, Rect{W: 40, H: 3}, HistoryView{}, &th)
	assert.Contains(t, screenRow(sim, 1), "No sessions recorded yet.")
}
