// internal/theme/manager.go
package theme

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/bethropolis/lectern/internal/logger"
	"github.com/bethropolis/lectern/internal/script"
)

// Manager holds the loaded themes and which one serves each display mode.
type Manager struct {
	mutex  sync.RWMutex
	themes map[string]*Theme // lowercase name -> theme
	day    *Theme
	night  *Theme
}

// NewManager registers the built-in Day and Night themes and then any
// *.toml themes found in themesDir. An empty themesDir skips loading.
func NewManager(themesDir string) *Manager {
	day, night := Day, Night
	mgr := &Manager{
		themes: map[string]*Theme{
			strings.ToLower(day.Name):   &day,
			strings.ToLower(night.Name): &night,
		},
		day:   &day,
		night: &night,
	}
	if themesDir != "" {
		if err := mgr.LoadThemesFromDir(themesDir); err != nil {
			logger.Errorf("Error loading themes from '%s': %v", themesDir, err)
		}
	}
	return mgr
}

// LoadThemesFromDir loads every .toml file in dir. A missing dir is not an
// error. Themes named like a built-in replace it in its mode slot.
func (m *Manager) LoadThemesFromDir(dir string) error {
	files, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Infof("Theme directory '%s' does not exist. No custom themes loaded.", dir)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read theme directory '%s': %w", dir, err)
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()
	loaded := 0
	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(strings.ToLower(file.Name()), ".toml") {
			continue
		}
		filePath := filepath.Join(dir, file.Name())
		theme, err := LoadThemeFromFile(filePath)
		if err != nil {
			logger.Warnf("Failed to load theme from '%s': %v", filePath, err)
			continue
		}
		key := strings.ToLower(theme.Name)
		if existing, ok := m.themes[key]; ok {
			logger.Warnf("Theme '%s' from '%s' overrides existing theme '%s'", theme.Name, filePath, existing.Name)
			if existing == m.day {
				m.day = theme
			}
			if existing == m.night {
				m.night = theme
			}
		}
		m.themes[key] = theme
		loaded++
	}
	logger.Infof("Loaded %d custom themes from %s.", loaded, dir)
	return nil
}

// ForMode returns the theme serving a display mode.
func (m *Manager) ForMode(mode script.Mode) *Theme {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	if mode == script.ModeDay {
		return m.day
	}
	return m.night
}

// SetTheme makes the named theme (case-insensitive) serve the night mode
// if it is dark and the day mode otherwise. It returns the theme.
func (m *Manager) SetTheme(name string) (*Theme, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	theme, ok := m.themes[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("theme '%s' not found", name)
	}
	if theme.IsDark {
		m.night = theme
	} else {
		m.day = theme
	}
	logger.Infof("Theme '%s' now used for %s mode", theme.Name, map[bool]string{true: "night", false: "day"}[theme.IsDark])
	return theme, nil
}

// ListThemes returns the names of all loaded themes, sorted.
func (m *Manager) ListThemes() []string {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	names := make([]string, 0, len(m.themes))
	for _, theme := range m.themes {
		names = append(names, theme.Name)
	}
	slices.Sort(names)
	return names
}

// GetTheme returns a specific theme by name (case-insensitive).
func (m *Manager) GetTheme(name string) (*Theme, bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	theme, ok := m.themes[strings.ToLower(name)]
	return theme, ok
}
