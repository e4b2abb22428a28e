package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bethropolis/lectern/internal/logger"
)

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"

	sqliteFileName = "lectern.db"
)

// Open returns the backend named by kind, rooted at dataDir.
func Open(kind, dataDir string) (Backend, error) {
	switch strings.ToLower(kind) {
	case "", BackendFile:
		logger.Infof("Storage: using JSON files in %s", dataDir)
		return NewFileGateway(dataDir), nil
	case BackendSQLite:
		if err := os.MkdirAll(dataDir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir '%s': %w", dataDir, err)
		}
		path := filepath.Join(dataDir, sqliteFileName)
		logger.Infof("Storage: using SQLite database %s", path)
		return OpenSQLite(path)
	case BackendMemory:
		logger.Infof("Storage: using in-memory store, nothing will be persisted")
		return NewMemoryGateway(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, kind)
}
