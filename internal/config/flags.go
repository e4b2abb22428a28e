// internal/config/flags.go
package config

import (
	"flag"
	"fmt"

	"github.com/bethropolis/lectern/internal/logger"
)

// Flags holds values parsed from command-line flags.
// Use pointers to distinguish between unset flags and zero-value flags.
type Flags struct {
	ConfigFilePath *string
	Version        *bool
	LogLevel       *string
	LogFilePath    *string
	DataDir        *string
	Storage        *string
	FPS            *int
	Speed          *float64
	FontSize       *float64
	// logger filters
	EnableTags   *string
	DisableTags  *string
	EnablePkgs   *string
	DisablePkgs  *string
	EnableFiles  *string
	DisableFiles *string
	DebugLog     *bool

	fs *flag.FlagSet
}

// DefineFlags registers the flags on fs, or on flag.CommandLine when fs is nil.
func (f *Flags) DefineFlags(fs *flag.FlagSet) {
	if fs == nil {
		fs = flag.CommandLine
	}
	f.fs = fs
	f.ConfigFilePath = fs.String("config", "", fmt.Sprintf("Path to TOML configuration file (default ~/.config/%s/%s)", AppName, DefaultConfigFileName))
	f.Version = fs.Bool("version", false, "Show version information and exit")
	f.LogLevel = fs.String("loglevel", "", "Log level (debug, info, warn, error) - Overrides config file")
	f.LogFilePath = fs.String("logfile", "", "Path to write log file (use '-' for stderr) - Overrides config file")
	f.DataDir = fs.String("datadir", "", "Directory for history and drafts - Overrides config file")
	f.Storage = fs.String("storage", "", "Storage backend (file, sqlite) - Overrides config file")
	f.FPS = fs.Int("fps", 0, "Teleprompter frames per second - Overrides config file")
	f.Speed = fs.Float64("speed", -1, "Default scroll speed for new scripts (0-10)")
	f.FontSize = fs.Float64("fontsize", 0, "Default font size for new scripts (1-20)")
	f.EnableTags = fs.String("log-tags", "", "Comma-separated list of tags to enable - Overrides config file")
	f.DisableTags = fs.String("log-disable-tags", "", "Comma-separated list of tags to disable - Overrides config file")
	f.EnablePkgs = fs.String("log-packages", "", "Comma-separated list of packages to enable - Overrides config file")
	f.DisablePkgs = fs.String("log-disable-packages", "", "Comma-separated list of packages to disable - Overrides config file")
	f.EnableFiles = fs.String("log-files", "", "Comma-separated list of files to enable - Overrides config file")
	f.DisableFiles = fs.String("log-disable-files", "", "Comma-separated list of files to disable - Overrides config file")
	f.DebugLog = fs.Bool("debug-log", false, "Enable verbose debug logging for the logger filtering system")
}

// ParseFlags defines and parses the flags from args.
// It returns the remaining non-flag arguments (e.g., the script path).
func (f *Flags) ParseFlags(fs *flag.FlagSet, args []string) ([]string, error) {
	f.DefineFlags(fs)
	if err := f.fs.Parse(args); err != nil {
		return nil, err
	}
	if *f.DebugLog {
		logger.SetDebugFilter(true)
	}
	return f.fs.Args(), nil
}

// ApplyOverrides updates the Config struct with values from flags *if* they were set.
func (f *Flags) ApplyOverrides(cfg *Config) {
	if f.fs == nil {
		return
	}
	// Visit only processes flags that were actually set
	f.fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "loglevel":
			if *f.LogLevel != "" {
				cfg.Logger.LogLevel = *f.LogLevel
			}
		case "logfile":
			cfg.Logger.LogFilePath = *f.LogFilePath
		case "datadir":
			cfg.Storage.DataDir = *f.DataDir
		case "storage":
			cfg.Storage.Backend = *f.Storage
		case "fps":
			if *f.FPS > 0 {
				cfg.Display.FPS = *f.FPS
			}
		case "speed":
			if *f.Speed >= 0 {
				cfg.Display.Speed = *f.Speed
			}
		case "fontsize":
			if *f.FontSize > 0 {
				cfg.Display.FontSize = *f.FontSize
			}
		case "log-tags":
			cfg.Logger.EnabledTags = logger.SplitList(*f.EnableTags)
		case "log-disable-tags":
			cfg.Logger.DisabledTags = logger.SplitList(*f.DisableTags)
		case "log-packages":
			cfg.Logger.EnabledPackages = logger.SplitList(*f.EnablePkgs)
		case "log-disable-packages":
			cfg.Logger.DisabledPackages = logger.SplitList(*f.DisablePkgs)
		case "log-files":
			cfg.Logger.EnabledFiles = logger.SplitList(*f.EnableFiles)
		case "log-disable-files":
			cfg.Logger.DisabledFiles = logger.SplitList(*f.DisableFiles)
		}
	})
}
