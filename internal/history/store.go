// internal/history/store.go
package history

import (
	"fmt"

	"github.com/bethropolis/lectern/internal/logger"
	"github.com/bethropolis/lectern/internal/script"
	"github.com/bethropolis/lectern/internal/storage"
)

// Store is the in-memory copy of the persisted history list. Every mutation
// writes the whole list back through the gateway.
type Store struct {
	gateway storage.Gateway
	key     string
	records []script.Script
}

// NewStore creates an empty store bound to gateway under key.
func NewStore(gateway storage.Gateway, key string) *Store {
	if key == "" {
		key = storage.HistoryKey
	}
	return &Store{gateway: gateway, key: key}
}

// Load replaces the in-memory list with what the gateway holds.
func (s *Store) Load() {
	s.records = s.gateway.Load(s.key)
	logger.Infof("History: loaded %d record(s)", len(s.records))
}

// Records returns a copy of the list, newest first.
func (s *Store) Records() []script.Script {
	return append([]script.Script(nil), s.records...)
}

// Len is the number of records.
func (s *Store) Len() int { return len(s.records) }

// Get finds a record by id.
func (s *Store) Get(id string) (script.Script, bool) {
	for _, r := range s.records {
		if r.ID == id {
			return r, true
		}
	}
	return script.Script{}, false
}

// Query returns the filtered, sorted view.
func (s *Store) Query(q Query) []script.Script {
	return Apply(s.records, q)
}

// Prepend adds a finished record at the front and persists the list.
func (s *Store) Prepend(record script.Script) error {
	next := make([]script.Script, 0, len(s.records)+1)
	next = append(next, record.Clone())
	next = append(next, s.records...)
	s.records = next
	logger.DebugTagf("history", "Prepended record %s (%q)", record.ID, record.Title)
	return s.persist()
}

// Delete removes the record with id. Unknown ids are a no-op and do not
// touch storage. It reports whether a record was removed.
func (s *Store) Delete(id string) (bool, error) {
	idx := -1
	for i, r := range s.records {
		if r.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		logger.DebugTagf("history", "Delete: no record with id %s", id)
		return false, nil
	}
	next := make([]script.Script, 0, len(s.records)-1)
	next = append(next, s.records[:idx]...)
	next = append(next, s.records[idx+1:]...)
	s.records = next
	logger.DebugTagf("history", "Deleted record %s", id)
	return true, s.persist()
}

func (s *Store) persist() error {
	if err := s.gateway.Save(s.key, s.records); err != nil {
		logger.Errorf("History: saving %d record(s) failed: %v", len(s.records), err)
		return fmt.Errorf("save history: %w", err)
	}
	return nil
}
