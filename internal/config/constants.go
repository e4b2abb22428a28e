package config

import "time"

// Base application details
const AppName = "lectern"
const Version = "0.3.0"
const ThemesDirName = "themes"
const DefaultConfigFileName = "config.toml" // Main config file
const EnvPrefix = "LECTERN_"

// Status Bar
const MessageTimeout = 4 * time.Second

// Display defaults beyond the per-script settings
const DefaultUnitsPerRow = 16

// Storage backends
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

const DefaultAutosaveInterval = 30 * time.Second

// Speaking pace used for reading time estimates
const DefaultWordsPerMinute = 140
