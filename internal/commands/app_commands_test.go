package commands

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/lectern/internal/history"
	"github.com/bethropolis/lectern/internal/plugin"
	"github.com/bethropolis/lectern/internal/script"
	"github.com/bethropolis/lectern/internal/theme"
)

type fakeApp struct {
	cmds     map[string]plugin.CommandFunc
	active   script.Script
	query    history.Query
	messages []string
	calls    []string
	failIO   error
	theme    *theme.Theme
}

func newFakeApp() *fakeApp {
	th := theme.Night
	return &fakeApp{cmds: map[string]plugin.CommandFunc{}, active: script.New(), theme: &th}
}

func (f *fakeApp) RegisterCommand(name string, fn plugin.CommandFunc) error {
	if _, ok := f.cmds[name]; ok {
		return fmt.Errorf("duplicate %s", name)
	}
	f.cmds[name] = fn
	return nil
}

func (f *fakeApp) SetStatusMessage(format string, args ...any) {
	f.messages = append(f.messages, fmt.Sprintf(format, args...))
}

func (f *fakeApp) last() string { return f.messages[len(f.messages)-1] }

func (f *fakeApp) ApplySetting(field script.Field, value string) (script.DisplaySettings, error) {
	next, err := script.Set(f.active, field, value)
	if err != nil {
		return f.active.Settings, err
	}
	f.active = next
	return next.Settings, nil
}

func (f *fakeApp) SetTitle(title string)           { f.active = f.active.WithTitle(title) }
func (f *fakeApp) StartReading() error             { f.calls = append(f.calls, "start"); return nil }
func (f *fakeApp) OpenHistory()                    { f.calls = append(f.calls, "history") }
func (f *fakeApp) HistoryQuery() history.Query     { return f.query }
func (f *fakeApp) SetHistoryQuery(q history.Query) { f.query = q }
func (f *fakeApp) Quit()                           { f.calls = append(f.calls, "quit") }

func (f *fakeApp) ImportScript(path string) error {
	f.calls = append(f.calls, "import "+path)
	return f.failIO
}

func (f *fakeApp) ExportScript(path string) error {
	f.calls = append(f.calls, "export "+path)
	return f.failIO
}

func (f *fakeApp) SetTheme(name string) error {
	if !strings.EqualFold(name, "day") && !strings.EqualFold(name, "night") {
		return errors.New("not found")
	}
	f.theme = &theme.Theme{Name: name}
	return nil
}

func (f *fakeApp) GetTheme() *theme.Theme { return f.theme }
func (f *fakeApp) ListThemes() []string   { return []string{"Day", "Night"} }

func run(t *testing.T, f *fakeApp, line string) error {
	t.Helper()
	parts := strings.Fields(line)
	fn, ok := f.cmds[parts[0]]
	require.True(t, ok, "command %s not registered", parts[0])
	return fn(parts[1:])
}

func setup() *fakeApp {
	f := newFakeApp()
	RegisterAppCommands(f, f)
	return f
}

func TestAllCommandsRegistered(t *testing.T) {
	f := setup()
	for _, name := range []string{"speed", "font", "align", "style", "mode", "dir", "title", "start",
		"history", "filter", "sort", "theme", "themes", "import", "export", "q"} {
		assert.Contains(t, f.cmds, name)
	}
}

func TestSettingCommands(t *testing.T) {
	f := setup()

	require.NoError(t, run(t, f, "speed 4"))
	assert.Equal(t, 4.0, f.active.Settings.Speed)
	assert.Equal(t, "speed set to 4.0", f.last())

	require.NoError(t, run(t, f, "font 99"))
	assert.Equal(t, script.MaxFontSize, f.active.Settings.FontSize)

	require.NoError(t, run(t, f, "align center"))
	require.NoError(t, run(t, f, "style serif"))
	require.NoError(t, run(t, f, "mode day"))
	require.NoError(t, run(t, f, "dir rtl"))
	assert.Equal(t, script.AlignCenter, f.active.Settings.Alignment)
	assert.Equal(t, script.FontSerif, f.active.Settings.FontStyle)
	assert.Equal(t, script.ModeDay, f.active.Settings.Mode)
	assert.Equal(t, script.DirectionRTL, f.active.Settings.Direction)
	assert.Equal(t, "dir set to rtl", f.last())

	assert.ErrorIs(t, run(t, f, "speed fast"), script.ErrInvalidValue)
	assert.ErrorIs(t, run(t, f, "speed"), ErrMissingArgument)
}

func TestTitleAndNavigation(t *testing.T) {
	f := setup()
	require.NoError(t, run(t, f, "title Quarterly review"))
	assert.Equal(t, "Quarterly review", f.active.Title)

	require.NoError(t, run(t, f, "start"))
	require.NoError(t, run(t, f, "history"))
	require.NoError(t, run(t, f, "q"))
	assert.Equal(t, []string{"start", "history", "quit"}, f.calls)
}

func TestFilterAndSort(t *testing.T) {
	f := setup()
	require.NoError(t, run(t, f, "filter launch plan"))
	assert.Equal(t, "launch plan", f.query.Filter)

	require.NoError(t, run(t, f, "sort"))
	assert.Equal(t, history.SortByTitle, f.query.SortBy)

	require.NoError(t, run(t, f, "sort date asc"))
	assert.Equal(t, history.Query{Filter: "launch plan", SortBy: history.SortByDate, Direction: history.Asc}, f.query)
	assert.Equal(t, "Sorted by date asc", f.last())

	assert.Error(t, run(t, f, "sort size"))
	assert.Error(t, run(t, f, "sort title sideways"))

	require.NoError(t, run(t, f, "filter"))
	assert.Empty(t, f.query.Filter)
	assert.Equal(t, "Filter cleared", f.last())
}

func TestFileCommands(t *testing.T) {
	f := setup()
	require.NoError(t, run(t, f, "import my talk.txt"))
	require.NoError(t, run(t, f, "export out.txt"))
	assert.Equal(t, []string{"import my talk.txt", "export out.txt"}, f.calls)

	f.failIO = errors.New("disk full")
	assert.EqualError(t, run(t, f, "export out.txt"), "disk full")
	assert.ErrorIs(t, run(t, f, "import"), ErrMissingArgument)
}

func TestThemeCommands(t *testing.T) {
	f := setup()
	require.NoError(t, run(t, f, "theme"))
	assert.Equal(t, "Current theme: Night", f.last())

	require.NoError(t, run(t, f, "theme Day"))
	assert.Equal(t, "Theme set to: Day", f.last())

	err := run(t, f, "theme Sepia")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Available: Day, Night")

	require.NoError(t, run(t, f, "themes"))
	assert.Equal(t, "Available themes: Day, Night", f.last())
}
