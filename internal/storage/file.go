// internal/storage/file.go
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bethropolis/lectern/internal/logger"
	"github.com/bethropolis/lectern/internal/script"
)

// FileGateway stores each key as a JSON file in a directory.
type FileGateway struct {
	dir string
}

// NewFileGateway creates a gateway rooted at dir. The directory is created
// on first save.
func NewFileGateway(dir string) *FileGateway {
	return &FileGateway{dir: dir}
}

// Path returns the file used for key.
func (g *FileGateway) Path(key string) string {
	name := strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == os.PathSeparator {
			return '_'
		}
		return r
	}, key)
	return filepath.Join(g.dir, name+".json")
}

func (g *FileGateway) Load(key string) []script.Script {
	path := g.Path(key)
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logger.Warnf("Storage: reading '%s' failed, using empty list: %v", path, err)
		}
		return []script.Script{}
	}
	records, err := decode(data)
	if err != nil {
		logger.Warnf("Storage: '%s' is corrupt, using empty list: %v", path, err)
		return []script.Script{}
	}
	logger.DebugTagf("storage", "Loaded %d record(s) from %s", len(records), path)
	return records
}

// Save writes atomically: a temp file in the same directory is renamed over
// the target.
func (g *FileGateway) Save(key string, records []script.Script) error {
	data, err := encode(records)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(g.dir, 0o755); err != nil {
		return fmt.Errorf("create data dir '%s': %w", g.dir, err)
	}
	path := g.Path(key)
	tmp, err := os.CreateTemp(g.dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file for '%s': %w", path, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write '%s': %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close '%s': %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace '%s': %w", path, err)
	}
	logger.DebugTagf("storage", "Saved %d record(s) to %s", len(records), path)
	return nil
}

// Close is a no-op; it lets FileGateway satisfy Backend.
func (g *FileGateway) Close() error { return nil }

var _ Backend = (*FileGateway)(nil)
