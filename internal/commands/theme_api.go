package commands

import "github.com/bethropolis/lectern/internal/theme"

// ThemeAPI is what the :theme commands need.
type ThemeAPI interface {
	SetTheme(name string) error
	GetTheme() *theme.Theme
	ListThemes() []string
	SetStatusMessage(format string, args ...any)
}
