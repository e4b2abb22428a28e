package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/bethropolis/lectern/internal/logger"
)

// applyEnv loads a .env file from the working directory, if any, and
// applies LECTERN_* variables over cfg. Variables already set in the
// process environment win over the file.
func applyEnv(cfg *Config) {
	_ = godotenv.Load()

	cfg.Logger.LogLevel = getEnv("LOG_LEVEL", cfg.Logger.LogLevel)
	cfg.Logger.LogFilePath = getEnv("LOG_FILE", cfg.Logger.LogFilePath)
	cfg.Logger.JSONFilePath = getEnv("LOG_JSON_FILE", cfg.Logger.JSONFilePath)
	if tags := getEnv("LOG_TAGS", ""); tags != "" {
		cfg.Logger.EnabledTags = logger.SplitList(tags)
	}

	cfg.Display.Speed = getEnvFloat("SPEED", cfg.Display.Speed)
	cfg.Display.FontSize = getEnvFloat("FONT_SIZE", cfg.Display.FontSize)
	cfg.Display.FontStyle = getEnv("FONT_STYLE", cfg.Display.FontStyle)
	cfg.Display.Alignment = getEnv("ALIGNMENT", cfg.Display.Alignment)
	cfg.Display.Mode = getEnv("MODE", cfg.Display.Mode)
	cfg.Display.Direction = getEnv("DIRECTION", cfg.Display.Direction)
	cfg.Display.FPS = getEnvInt("FPS", cfg.Display.FPS)

	cfg.Storage.Backend = getEnv("STORAGE", cfg.Storage.Backend)
	cfg.Storage.DataDir = getEnv("DATA_DIR", cfg.Storage.DataDir)

	cfg.Plugins.Autosave.Enabled = getEnvBool("AUTOSAVE", cfg.Plugins.Autosave.Enabled)
	cfg.Plugins.Autosave.Interval = getEnv("AUTOSAVE_INTERVAL", cfg.Plugins.Autosave.Interval)
}

// getEnv returns LECTERN_<key>, or defaultValue when unset or empty.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(EnvPrefix + key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if v, err := strconv.ParseFloat(getEnv(key, ""), 64); err == nil {
		return v
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if v, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return v
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if v, err := strconv.ParseBool(getEnv(key, "")); err == nil {
		return v
	}
	return defaultValue
}
