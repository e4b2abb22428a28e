package theme

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/lectern/internal/script"
)

const solarized = `
name = "Solarized"
is_dark = true

[styles.Default]
fg = "#839496"
bg = "#002b36"

[styles.Emphasis]
fg = "yellow"
bold = true

[styles.StatusBar]
reverse = true
`

func TestParseTheme(t *testing.T) {
	th, err := ParseTheme(solarized)
	require.NoError(t, err)
	assert.Equal(t, "Solarized", th.Name)
	assert.True(t, th.IsDark)

	fg, bg, _ := th.GetStyle(StyleDefault).Decompose()
	assert.Equal(t, tcell.NewHexColor(0x839496), fg)
	assert.Equal(t, tcell.NewHexColor(0x002b36), bg)

	efg, ebg, attrs := th.GetStyle(StyleEmphasis).Decompose()
	assert.Equal(t, tcell.ColorYellow, efg)
	assert.Equal(t, bg, ebg, "inherits the Default background")
	assert.NotZero(t, attrs&tcell.AttrBold)

	assert.Equal(t, th.GetStyle(StyleDefault), th.GetStyle(StyleBookmark), "missing style falls back to Default")
}

func TestParseThemeErrors(t *testing.T) {
	_, err := ParseTheme("name = [")
	assert.Error(t, err)

	th, err := ParseTheme("[styles.Emphasis]\nfg = \"#12\"\n")
	require.NoError(t, err)
	_, ok := th.Styles[StyleEmphasis]
	assert.False(t, ok, "invalid colour skips the style")
}

func TestGetStyleBaseName(t *testing.T) {
	th := Night
	assert.Equal(t, th.Styles[StyleStatusBar], th.GetStyle("StatusBar.extra"))
}

func TestManagerModes(t *testing.T) {
	m := NewManager("")
	assert.Equal(t, "Day", m.ForMode(script.ModeDay).Name)
	assert.Equal(t, "Night", m.ForMode(script.ModeNight).Name)
	assert.Equal(t, []string{"Day", "Night"}, m.ListThemes())

	_, err := m.SetTheme("missing")
	assert.Error(t, err)
}

func TestManagerLoadsDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "solarized.toml"), []byte(solarized), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "paper.toml"), []byte("is_dark = false\n[styles.Default]\nfg = \"black\"\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.toml"), []byte("name = ["), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	m := NewManager(dir)
	assert.Equal(t, []string{"Day", "Night", "Solarized", "paper"}, m.ListThemes())

	th, err := m.SetTheme("SOLARIZED")
	require.NoError(t, err)
	assert.Same(t, th, m.ForMode(script.ModeNight))
	assert.Equal(t, "Day", m.ForMode(script.ModeDay).Name)

	_, err = m.SetTheme("paper")
	require.NoError(t, err)
	assert.Equal(t, "paper", m.ForMode(script.ModeDay).Name)
}

func TestManagerOverrideBuiltin(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "night.toml"), []byte("name = \"Night\"\nis_dark = true\n"), 0o644))
	m := NewManager(dir)
	_, ok := m.ForMode(script.ModeNight).Styles[StyleEmphasis]
	assert.False(t, ok, "the user file replaced the built-in night theme")
}

func TestMissingDir(t *testing.T) {
	m := NewManager(filepath.Join(t.TempDir(), "nope"))
	assert.Len(t, m.ListThemes(), 2)
}
