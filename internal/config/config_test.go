package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/lectern/internal/history"
	"github.com/bethropolis/lectern/internal/script"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir()) // no stray .env
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"), nil)
	require.NoError(t, err)

	assert.Equal(t, script.DefaultSettings(), cfg.DefaultSettings())
	assert.Equal(t, BackendFile, cfg.Storage.Backend)
	assert.Equal(t, DefaultAutosaveInterval, cfg.Plugins.Autosave.Every())
	assert.Equal(t, history.Query{SortBy: history.SortByDate, Direction: history.Desc}, cfg.HistoryQuery())
}

func TestLoad_File(t *testing.T) {
	t.Chdir(t.TempDir())
	path := writeConfig(t, `
[logger]
log_level = "debug"
enabled_tags = ["scroll"]

[display]
speed = 4.5
font_size = 9
font_style = "serif"
alignment = "center"
mode = "day"
direction = "rtl"
fps = 60

[storage]
backend = "sqlite"
data_dir = "/tmp/lectern-test"

[history]
sort_by = "title"
direction = "asc"

[plugins.autosave]
enabled = false
interval = "2m"
`)
	cfg, err := Load(path, nil)
	require.NoError(t, err)

	d := cfg.DefaultSettings()
	assert.Equal(t, 4.5, d.Speed)
	assert.Equal(t, 9.0, d.FontSize)
	assert.Equal(t, script.FontSerif, d.FontStyle)
	assert.Equal(t, script.AlignCenter, d.Alignment)
	assert.Equal(t, script.ModeDay, d.Mode)
	assert.Equal(t, script.DirectionRTL, d.Direction)
	assert.Equal(t, 60, cfg.Display.FPS)
	assert.Equal(t, "debug", cfg.Logger.LogLevel)
	assert.Equal(t, []string{"scroll"}, cfg.Logger.EnabledTags)
	assert.Equal(t, BackendSQLite, cfg.Storage.Backend)
	assert.Equal(t, "/tmp/lectern-test", cfg.DataDir())
	assert.Equal(t, history.Query{SortBy: history.SortByTitle, Direction: history.Asc}, cfg.HistoryQuery())
	assert.False(t, cfg.Plugins.Autosave.Enabled)
	assert.Equal(t, 2*time.Minute, cfg.Plugins.Autosave.Every())
}

func TestLoad_InvalidValuesReset(t *testing.T) {
	t.Chdir(t.TempDir())
	path := writeConfig(t, `
[display]
speed = 99
font_size = -3
font_style = "comic"
mode = "dusk"
fps = 0

[storage]
backend = "postgres"

[plugins.autosave]
interval = "soon"

[unknown]
key = 1
`)
	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, script.MaxSpeed, cfg.Display.Speed)
	assert.Equal(t, script.MinFontSize, cfg.Display.FontSize)
	assert.Equal(t, "sans", cfg.Display.FontStyle)
	assert.Equal(t, "night", cfg.Display.Mode)
	assert.Equal(t, 30, cfg.Display.FPS)
	assert.Equal(t, BackendFile, cfg.Storage.Backend)
	assert.Equal(t, DefaultAutosaveInterval, cfg.Plugins.Autosave.Every())
	assert.NotEmpty(t, Warnings())
	assert.Empty(t, Warnings(), "warnings are drained")
}

func TestLoad_ParseError(t *testing.T) {
	t.Chdir(t.TempDir())
	path := writeConfig(t, "[display\nspeed = ")
	cfg, err := Load(path, nil)
	assert.Error(t, err)
	require.NotNil(t, cfg, "defaults are still returned")
	assert.Equal(t, script.DefaultSpeed, cfg.Display.Speed)
}

func TestLoad_Precedence(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("LECTERN_STORAGE=memory\nLECTERN_FPS=24\n"), 0o644))
	t.Cleanup(func() {
		os.Unsetenv("LECTERN_STORAGE")
		os.Unsetenv("LECTERN_FPS")
	})
	t.Setenv("LECTERN_SPEED", "3")
	t.Setenv("LECTERN_MODE", "day")

	path := writeConfig(t, "[display]\nspeed = 1\nfont_size = 4\nmode = \"night\"\n")

	var flags Flags
	rest, err := flags.ParseFlags(flag.NewFlagSet("lectern", flag.ContinueOnError),
		[]string{"-speed", "7", "-log-tags", "scroll, history", "notes.txt"})
	require.NoError(t, err)
	assert.Equal(t, []string{"notes.txt"}, rest)

	cfg, err := Load(path, &flags)
	require.NoError(t, err)

	assert.Equal(t, 7.0, cfg.Display.Speed, "flag beats env and file")
	assert.Equal(t, 4.0, cfg.Display.FontSize, "file beats default")
	assert.Equal(t, "day", cfg.Display.Mode, "env beats file")
	assert.Equal(t, BackendMemory, cfg.Storage.Backend, ".env is loaded")
	assert.Equal(t, 24, cfg.Display.FPS)
	assert.Equal(t, []string{"scroll", "history"}, cfg.Logger.EnabledTags)
}
