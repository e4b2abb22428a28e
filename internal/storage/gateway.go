// Package storage persists lists of scripts under fixed keys.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/bethropolis/lectern/internal/script"
)

const (
	// HistoryKey holds finished reading sessions, newest first.
	HistoryKey = "teleprompter-history"
	// DraftKey holds the single script being edited.
	DraftKey = "teleprompter-draft"
)

var ErrUnknownBackend = errors.New("unknown storage backend")

// Gateway is the only persistence surface the core depends on.
type Gateway interface {
	// Load returns the list stored under key, or an empty list if it is
	// absent or cannot be decoded.
	Load(key string) []script.Script
	// Save replaces the list stored under key.
	Save(key string, records []script.Script) error
}

// Backend is a Gateway that holds resources.
type Backend interface {
	Gateway
	Close() error
}

func encode(records []script.Script) ([]byte, error) {
	if records == nil {
		records = []script.Script{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("encode scripts: %w", err)
	}
	return data, nil
}

func decode(data []byte) ([]script.Script, error) {
	var records []script.Script
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode scripts: %w", err)
	}
	return records, nil
}
