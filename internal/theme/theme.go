// internal/theme/theme.go
package theme

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/lectern/internal/logger"
)

// Style names used by the renderer.
const (
	StyleDefault          = "Default"
	StyleEmphasis         = "Emphasis"
	StyleBookmark         = "Bookmark"
	StyleReadingLine      = "ReadingLine"
	StyleStatusBar        = "StatusBar"
	StyleStatusBarMessage = "StatusBarMessage"
	StyleStatusBarPrompt  = "StatusBarPrompt"
	StyleControls         = "Controls"
	StyleSelection        = "Selection"
	StyleDim              = "Dim"
	StyleTitle            = "Title"
)

type Theme struct {
	Name   string
	IsDark bool
	Styles map[string]tcell.Style
}

// GetStyle looks up name, then the part before the first dot, then Default.
func (t *Theme) GetStyle(name string) tcell.Style {
	if style, ok := t.Styles[name]; ok {
		return style
	}
	if dotIndex := strings.Index(name, "."); dotIndex != -1 {
		if style, ok := t.Styles[name[:dotIndex]]; ok {
			return style
		}
	}
	if defStyle, ok := t.Styles[StyleDefault]; ok {
		if name != StyleDefault {
			logger.DebugTagf("theme", "Theme '%s': style '%s' not found, falling back to 'Default'", t.Name, name)
		}
		return defStyle
	}
	logger.Warnf("Theme '%s': style '%s' and 'Default' not found, using tcell default.", t.Name, name)
	return tcell.StyleDefault
}

// Night is the built-in dark theme: light text on black.
var Night = func() Theme {
	bg := tcell.NewHexColor(0x000000)
	fg := tcell.NewHexColor(0xf5f5f5)
	bar := tcell.NewHexColor(0x1f2329)
	muted := tcell.NewHexColor(0x7a828e)
	yellow := tcell.NewHexColor(0xf2c94c)
	cyan := tcell.NewHexColor(0x56b6c2)

	base := tcell.StyleDefault.Background(bg).Foreground(fg)
	return Theme{
		Name:   "Night",
		IsDark: true,
		Styles: map[string]tcell.Style{
			StyleDefault:          base,
			StyleEmphasis:         base.Foreground(yellow).Bold(true),
			StyleBookmark:         base.Foreground(cyan).Underline(true),
			StyleReadingLine:      base.Foreground(muted),
			StyleStatusBar:        tcell.StyleDefault.Background(bar).Foreground(fg),
			StyleStatusBarMessage: tcell.StyleDefault.Background(bar).Foreground(yellow).Bold(true),
			StyleStatusBarPrompt:  tcell.StyleDefault.Background(bar).Foreground(cyan).Bold(true),
			StyleControls:         base.Foreground(muted),
			StyleSelection:        base.Reverse(true),
			StyleDim:              base.Foreground(muted),
			StyleTitle:            base.Bold(true),
		},
	}
}()

// Day is the built-in light theme: dark text on white.
var Day = func() Theme {
	bg := tcell.NewHexColor(0xffffff)
	fg := tcell.NewHexColor(0x1a1a1a)
	bar := tcell.NewHexColor(0xe8e8e8)
	muted := tcell.NewHexColor(0x8a8a8a)
	orange := tcell.NewHexColor(0xb35900)
	blue := tcell.NewHexColor(0x005fb3)

	base := tcell.StyleDefault.Background(bg).Foreground(fg)
	return Theme{
		Name:   "Day",
		IsDark: false,
		Styles: map[string]tcell.Style{
			StyleDefault:          base,
			StyleEmphasis:         base.Foreground(orange).Bold(true),
			StyleBookmark:         base.Foreground(blue).Underline(true),
			StyleReadingLine:      base.Foreground(muted),
			StyleStatusBar:        tcell.StyleDefault.Background(bar).Foreground(fg),
			StyleStatusBarMessage: tcell.StyleDefault.Background(bar).Foreground(orange).Bold(true),
			StyleStatusBarPrompt:  tcell.StyleDefault.Background(bar).Foreground(blue).Bold(true),
			StyleControls:         base.Foreground(muted),
			StyleSelection:        base.Reverse(true),
			StyleDim:              base.Foreground(muted),
			StyleTitle:            base.Bold(true),
		},
	}
}()
