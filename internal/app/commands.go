package app

import "github.com/bethropolis/lectern/internal/commands"

// registerAppCommands registers the built-in command line commands.
func registerAppCommands(a *App) {
	commands.RegisterAppCommands(a.api, a.api)
}
