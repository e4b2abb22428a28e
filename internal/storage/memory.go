package storage

import (
	"sync"

	"github.com/bethropolis/lectern/internal/script"
)

// MemoryGateway keeps lists in memory. Stored lists are copied in and out.
type MemoryGateway struct {
	mu    sync.Mutex
	data  map[string][]script.Script
	Saves int // number of successful Save calls
	Err   error
}

func NewMemoryGateway() *MemoryGateway {
	return &MemoryGateway{data: make(map[string][]script.Script)}
}

func (g *MemoryGateway) Load(key string) []script.Script {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]script.Script{}, g.data[key]...)
}

// Save stores a copy of records, or returns Err when it is set.
func (g *MemoryGateway) Save(key string, records []script.Script) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.Err != nil {
		return g.Err
	}
	g.data[key] = append([]script.Script{}, records...)
	g.Saves++
	return nil
}

func (g *MemoryGateway) Close() error { return nil }

var _ Backend = (*MemoryGateway)(nil)
