// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/bethropolis/lectern/internal/history"
	"github.com/bethropolis/lectern/internal/logger"
	"github.com/bethropolis/lectern/internal/script"
	"github.com/bethropolis/lectern/internal/scroll"
)

// Config holds the application's combined configuration.
type Config struct {
	Logger  logger.Config `toml:"logger"`
	Display DisplayConfig `toml:"display"`
	Storage StorageConfig `toml:"storage"`
	History HistoryConfig `toml:"history"`
	Plugins PluginsConfig `toml:"plugins"`
}

// DisplayConfig holds the settings new scripts start with and the
// teleprompter frame settings.
type DisplayConfig struct {
	Speed       float64 `toml:"speed"`
	FontSize    float64 `toml:"font_size"`
	FontStyle   string  `toml:"font_style"`
	Alignment   string  `toml:"alignment"`
	Mode        string  `toml:"mode"`
	Direction   string  `toml:"direction"`
	FPS         int     `toml:"fps"`
	UnitsPerRow int     `toml:"units_per_row"`
}

// StorageConfig selects the persistence backend.
type StorageConfig struct {
	Backend string `toml:"backend"`  // file, sqlite or memory
	DataDir string `toml:"data_dir"` // empty means the user data dir
}

// HistoryConfig is the initial history ordering.
type HistoryConfig struct {
	SortBy    string `toml:"sort_by"`
	Direction string `toml:"direction"`
}

type PluginsConfig struct {
	Autosave  AutosaveConfig  `toml:"autosave"`
	WordCount WordCountConfig `toml:"wordcount"`
}

type WordCountConfig struct {
	WordsPerMinute int `toml:"words_per_minute"`
}

type AutosaveConfig struct {
	Enabled  bool   `toml:"enabled"`
	Interval string `toml:"interval"` // Go duration, e.g. "30s"

	interval time.Duration
}

// Every returns the parsed autosave interval.
func (a AutosaveConfig) Every() time.Duration {
	if a.interval <= 0 {
		return DefaultAutosaveInterval
	}
	return a.interval
}

var (
	loadedConfig *Config
	loadOnce     sync.Once
	loadErr      error
)

// NewDefaultConfig creates a Config struct with default values.
func NewDefaultConfig() *Config {
	d := script.DefaultSettings()
	return &Config{
		Logger: logger.NewConfig(),
		Display: DisplayConfig{
			Speed:       d.Speed,
			FontSize:    d.FontSize,
			FontStyle:   d.FontStyle.String(),
			Alignment:   d.Alignment.String(),
			Mode:        d.Mode.String(),
			Direction:   d.Direction.String(),
			FPS:         scroll.DefaultFPS,
			UnitsPerRow: DefaultUnitsPerRow,
		},
		Storage: StorageConfig{Backend: BackendFile},
		History: HistoryConfig{SortBy: "date", Direction: "desc"},
		Plugins: PluginsConfig{
			Autosave:  AutosaveConfig{Enabled: true, Interval: DefaultAutosaveInterval.String()},
			WordCount: WordCountConfig{WordsPerMinute: DefaultWordsPerMinute},
		},
	}
}

// DefaultPath is ~/.config/lectern/config.toml, or "" if the user config
// dir cannot be determined.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, AppName, DefaultConfigFileName)
}

// loadFromFile decodes filePath on top of cfg. A missing file is not an error.
func loadFromFile(cfg *Config, filePath string) error {
	if _, err := os.Stat(filePath); errors.Is(err, fs.ErrNotExist) {
		return nil
	} else if err != nil {
		return fmt.Errorf("error checking config file '%s': %w", filePath, err)
	}

	metadata, err := toml.DecodeFile(filePath, cfg)
	if err != nil {
		return fmt.Errorf("failed to parse config file '%s': %w", filePath, err)
	}
	if undecoded := metadata.Undecoded(); len(undecoded) > 0 {
		// The logger is not set up yet; this is replayed by Warnings.
		pendingWarnings = append(pendingWarnings, fmt.Sprintf("config file '%s': unrecognized keys: %v", filePath, undecoded))
	}
	return nil
}

var pendingWarnings []string

// Warnings returns messages collected while loading, before logging was
// available, and clears them.
func Warnings() []string {
	w := pendingWarnings
	pendingWarnings = nil
	return w
}

// validate checks config values and resets invalid ones to defaults.
func (c *Config) validate() {
	defaults := NewDefaultConfig()
	warn := func(format string, args ...any) {
		pendingWarnings = append(pendingWarnings, fmt.Sprintf(format, args...))
	}

	c.Display.Speed = script.ClampSpeed(c.Display.Speed)
	c.Display.FontSize = script.ClampFontSize(c.Display.FontSize)
	if _, err := script.ParseFontStyle(c.Display.FontStyle); err != nil {
		warn("display.font_style: %v", err)
		c.Display.FontStyle = defaults.Display.FontStyle
	}
	if _, err := script.ParseAlignment(c.Display.Alignment); err != nil {
		warn("display.alignment: %v", err)
		c.Display.Alignment = defaults.Display.Alignment
	}
	if _, err := script.ParseMode(c.Display.Mode); err != nil {
		warn("display.mode: %v", err)
		c.Display.Mode = defaults.Display.Mode
	}
	if _, err := script.ParseDirection(c.Display.Direction); err != nil {
		warn("display.direction: %v", err)
		c.Display.Direction = defaults.Display.Direction
	}
	if c.Display.FPS <= 0 || c.Display.FPS > 120 {
		c.Display.FPS = defaults.Display.FPS
	}
	if c.Display.UnitsPerRow <= 0 {
		c.Display.UnitsPerRow = defaults.Display.UnitsPerRow
	}

	switch c.Storage.Backend {
	case BackendFile, BackendSQLite, BackendMemory:
	default:
		warn("storage.backend: unknown backend %q", c.Storage.Backend)
		c.Storage.Backend = defaults.Storage.Backend
	}

	if _, err := history.ParseSortKey(c.History.SortBy); err != nil {
		c.History.SortBy = defaults.History.SortBy
	}
	if _, err := history.ParseDirection(c.History.Direction); err != nil {
		c.History.Direction = defaults.History.Direction
	}

	if d, err := time.ParseDuration(c.Plugins.Autosave.Interval); err != nil || d < time.Second {
		c.Plugins.Autosave.Interval = defaults.Plugins.Autosave.Interval
		c.Plugins.Autosave.interval = DefaultAutosaveInterval
	} else {
		c.Plugins.Autosave.interval = d
	}

	if c.Plugins.WordCount.WordsPerMinute <= 0 {
		c.Plugins.WordCount.WordsPerMinute = defaults.Plugins.WordCount.WordsPerMinute
	}

	if c.Logger.LogLevel == "" {
		c.Logger.LogLevel = defaults.Logger.LogLevel
	}
	if _, ok := logger.ParseLevel(c.Logger.LogLevel); !ok {
		warn("logger.log_level: unknown level %q", c.Logger.LogLevel)
		c.Logger.LogLevel = defaults.Logger.LogLevel
	}
}

// Load builds a Config from defaults, the TOML file, the environment and
// flags, in that order of precedence. An empty configFilePath uses
// DefaultPath. flags may be nil.
func Load(configFilePath string, flags *Flags) (*Config, error) {
	cfg := NewDefaultConfig()

	path := configFilePath
	if path == "" {
		path = DefaultPath()
	}
	var err error
	if path != "" {
		err = loadFromFile(cfg, path)
	}

	applyEnv(cfg)
	if flags != nil {
		flags.ApplyOverrides(cfg)
	}
	cfg.validate()
	return cfg, err
}

// LoadConfig calls Load once and stores the result for Get.
// It should be called only once, typically from main.
func LoadConfig(configFilePath string, flags *Flags) (*Config, error) {
	loadOnce.Do(func() {
		loadedConfig, loadErr = Load(configFilePath, flags)
	})
	return loadedConfig, loadErr
}

// Get returns the loaded application configuration. Panics if LoadConfig wasn't called.
func Get() *Config {
	if loadedConfig == nil {
		panic("config.Get() called before config.LoadConfig()")
	}
	return loadedConfig
}

// DefaultSettings converts the [display] section into settings for new scripts.
func (c *Config) DefaultSettings() script.DisplaySettings {
	d := script.DefaultSettings()
	d.Speed = c.Display.Speed
	d.FontSize = c.Display.FontSize
	d.FontStyle, _ = script.ParseFontStyle(c.Display.FontStyle)
	d.Alignment, _ = script.ParseAlignment(c.Display.Alignment)
	d.Mode, _ = script.ParseMode(c.Display.Mode)
	d.Direction, _ = script.ParseDirection(c.Display.Direction)
	return d.Clamped()
}

// HistoryQuery is the initial history view ordering.
func (c *Config) HistoryQuery() history.Query {
	key, _ := history.ParseSortKey(c.History.SortBy)
	dir, _ := history.ParseDirection(c.History.Direction)
	return history.Query{SortBy: key, Direction: dir}
}

// DataDir resolves the storage directory, defaulting to
// $XDG_DATA_HOME/lectern or ~/.local/share/lectern.
func (c *Config) DataDir() string {
	if c.Storage.DataDir != "" {
		return c.Storage.DataDir
	}
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "share", AppName)
	}
	return AppName + "-data"
}

// ThemesDir is ~/.config/lectern/themes.
func ThemesDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, AppName, ThemesDirName)
}
