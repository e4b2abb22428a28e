// Package commands registers the built-in command line commands.
package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bethropolis/lectern/internal/history"
	"github.com/bethropolis/lectern/internal/logger"
	"github.com/bethropolis/lectern/internal/plugin"
	"github.com/bethropolis/lectern/internal/script"
)

var ErrMissingArgument = errors.New("missing argument")

// AppAPI is the part of the application the built-in commands drive.
type AppAPI interface {
	RegisterCommand(name string, cmdFunc plugin.CommandFunc) error
	SetStatusMessage(format string, args ...any)

	// ApplySetting changes a display setting of the running session, or of
	// the active script outside the reading view. It returns the settings
	// now in effect.
	ApplySetting(field script.Field, value string) (script.DisplaySettings, error)
	SetTitle(title string)
	StartReading() error
	OpenHistory()

	HistoryQuery() history.Query
	SetHistoryQuery(q history.Query)

	ImportScript(path string) error
	ExportScript(path string) error
	Quit()
}

// RegisterAppCommands registers every built-in command.
func RegisterAppCommands(api AppAPI, themeAPI ThemeAPI) {
	RegisterSettingCommands(api)
	RegisterNavigationCommands(api)
	RegisterFileCommands(api)
	RegisterThemeCommands(api, themeAPI)
}

func register(api AppAPI, name string, fn plugin.CommandFunc) {
	if err := api.RegisterCommand(name, fn); err != nil {
		logger.Warnf("Failed to register ':%s' command: %v", name, err)
	}
}

// RegisterSettingCommands registers :speed, :font, :align, :style, :mode
// and :dir.
func RegisterSettingCommands(api AppAPI) {
	fields := []script.Field{
		script.FieldSpeed,
		script.FieldFontSize,
		script.FieldAlignment,
		script.FieldFontStyle,
		script.FieldMode,
		script.FieldDirection,
	}
	for _, field := range fields {
		register(api, string(field), func(args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("%w: usage :%s <value>", ErrMissingArgument, field)
			}
			d, err := api.ApplySetting(field, args[0])
			if err != nil {
				return err
			}
			api.SetStatusMessage("%s set to %s", field, settingValue(d, field))
			return nil
		})
	}
}

func settingValue(d script.DisplaySettings, field script.Field) string {
	switch field {
	case script.FieldSpeed:
		return fmt.Sprintf("%.1f", d.Speed)
	case script.FieldFontSize:
		return fmt.Sprintf("%.1f", d.FontSize)
	case script.FieldAlignment:
		return d.Alignment.String()
	case script.FieldFontStyle:
		return d.FontStyle.String()
	case script.FieldMode:
		return d.Mode.String()
	case script.FieldDirection:
		return d.Direction.String()
	}
	return ""
}

// RegisterNavigationCommands registers :title, :start, :history, :filter,
// :sort and :q.
func RegisterNavigationCommands(api AppAPI) {
	register(api, "title", func(args []string) error {
		title := strings.Join(args, " ")
		api.SetTitle(title)
		if title == "" {
			title = script.DefaultTitle
		}
		api.SetStatusMessage("Title: %s", title)
		return nil
	})

	register(api, "start", func([]string) error {
		return api.StartReading()
	})

	register(api, "history", func([]string) error {
		api.OpenHistory()
		return nil
	})

	register(api, "filter", func(args []string) error {
		q := api.HistoryQuery()
		q.Filter = strings.Join(args, " ")
		api.SetHistoryQuery(q)
		if q.Filter == "" {
			api.SetStatusMessage("Filter cleared")
		} else {
			api.SetStatusMessage("Filter: %s", q.Filter)
		}
		return nil
	})

	register(api, "sort", func(args []string) error {
		q := api.HistoryQuery()
		switch len(args) {
		case 0:
			q.SortBy = q.SortBy.Toggle()
		default:
			key, err := history.ParseSortKey(args[0])
			if err != nil {
				return err
			}
			q.SortBy = key
			if len(args) > 1 {
				dir, err := history.ParseDirection(args[1])
				if err != nil {
					return err
				}
				q.Direction = dir
			}
		}
		api.SetHistoryQuery(q)
		api.SetStatusMessage("Sorted by %s %s", q.SortBy, q.Direction)
		return nil
	})

	register(api, "q", func([]string) error {
		api.Quit()
		return nil
	})
}

// RegisterFileCommands registers :import and :export.
func RegisterFileCommands(api AppAPI) {
	register(api, "import", func(args []string) error {
		if len(args) == 0 {
			return fmt.Errorf("%w: usage :import <path>", ErrMissingArgument)
		}
		path := strings.Join(args, " ")
		if err := api.ImportScript(path); err != nil {
			return err
		}
		api.SetStatusMessage("Imported %s", path)
		return nil
	})

	register(api, "export", func(args []string) error {
		if len(args) == 0 {
			return fmt.Errorf("%w: usage :export <path>", ErrMissingArgument)
		}
		path := strings.Join(args, " ")
		if err := api.ExportScript(path); err != nil {
			return err
		}
		api.SetStatusMessage("Exported to %s", path)
		return nil
	})
}

// RegisterThemeCommands registers only theme-related commands
func RegisterThemeCommands(api AppAPI, themeAPI ThemeAPI) {
	themeCmdFunc := func(args []string) error {
		if len(args) == 0 {
			themeAPI.SetStatusMessage("Current theme: %s", themeAPI.GetTheme().Name)
			return nil
		}

		themeName := strings.Join(args, " ") // Allow theme names with spaces
		if err := themeAPI.SetTheme(themeName); err != nil {
			themeList := strings.Join(themeAPI.ListThemes(), ", ")
			return fmt.Errorf("theme '%s' not found. Available: %s", themeName, themeList)
		}
		themeAPI.SetStatusMessage("Theme set to: %s", themeName)
		return nil
	}

	themeListCmdFunc := func([]string) error {
		themeAPI.SetStatusMessage("Available themes: %s", strings.Join(themeAPI.ListThemes(), ", "))
		return nil
	}

	register(api, "theme", themeCmdFunc)
	register(api, "themes", themeListCmdFunc)
}
