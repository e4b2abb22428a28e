// internal/plugin/plugin.go
package plugin

import (
	"github.com/bethropolis/lectern/internal/event"
	"github.com/bethropolis/lectern/internal/script"
)

// CommandFunc defines the signature for commands registered by plugins.
// It takes the words typed after the command name.
type CommandFunc func(args []string) error

// AppAPI is what plugins may use. Every method must be called on the main
// loop goroutine except Post, which may be called from anywhere.
type AppAPI interface {
	// --- Active script (read-only) ---
	ActiveScript() script.Script

	// --- Event Bus Interaction ---
	DispatchEvent(eventType event.Type, data any)
	SubscribeEvent(eventType event.Type, handler event.Handler)

	// --- Command Registration ---
	RegisterCommand(name string, cmdFunc CommandFunc) error

	// --- Status Bar ---
	SetStatusMessage(format string, args ...any)

	// --- Configuration ---
	GetPluginConfigValue(pluginName, key string) (any, bool)

	// --- Main loop ---
	// Post schedules fn on the main loop. It is safe from any goroutine and
	// drops fn once the app is shutting down.
	Post(fn func())
	// SaveDraft persists the active script under the draft key.
	SaveDraft() error
}

// Plugin defines the interface that all plugins must implement.
type Plugin interface {
	// Name returns the unique identifier name of the plugin.
	Name() string

	// Initialize is called once when the plugin is loaded. Used for
	// subscribing to events and registering commands.
	Initialize(api AppAPI) error

	// Shutdown is called once when the app is closing.
	Shutdown() error
}
