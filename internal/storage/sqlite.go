// internal/storage/sqlite.go
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/bethropolis/lectern/internal/logger"
	"github.com/bethropolis/lectern/internal/script"

	_ "modernc.org/sqlite"
)

const kvSchema = `CREATE TABLE IF NOT EXISTS kv (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at INTEGER NOT NULL
)`

// SQLiteGateway stores each key's JSON list as one row of a kv table.
type SQLiteGateway struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the database at path.
func OpenSQLite(path string) (*SQLiteGateway, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", pragma, err)
		}
	}
	if _, err := db.Exec(kvSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("exec schema: %w", err)
	}
	return &SQLiteGateway{db: db}, nil
}

func (g *SQLiteGateway) Load(key string) []script.Script {
	var value string
	err := g.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return []script.Script{}
	}
	if err != nil {
		logger.Warnf("Storage: query '%s' failed, using empty list: %v", key, err)
		return []script.Script{}
	}
	records, err := decode([]byte(value))
	if err != nil {
		logger.Warnf("Storage: row '%s' is corrupt, using empty list: %v", key, err)
		return []script.Script{}
	}
	return records
}

func (g *SQLiteGateway) Save(key string, records []script.Script) error {
	data, err := encode(records)
	if err != nil {
		return err
	}
	_, err = g.db.Exec(`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, string(data), time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("save '%s': %w", key, err)
	}
	logger.DebugTagf("storage", "Saved %d record(s) under %s", len(records), key)
	return nil
}

// Close closes the database.
func (g *SQLiteGateway) Close() error {
	return g.db.Close()
}

var _ Backend = (*SQLiteGateway)(nil)
