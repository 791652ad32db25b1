package store

import (
	"sync"
	"time"

	"github.com/aaronzipp/pig-dice/internal/models"
)

// TableStore manages table storage
type TableStore struct {
	tables map[string]*models.Table
	mu     sync.RWMutex
}

// NewTableStore creates a new table store
func NewTableStore() *TableStore {
	return &TableStore{
		tables: make(map[string]*models.Table),
	}
}

// Get retrieves a table by code
func (s *TableStore) Get(code string) (*models.Table, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	table, exists := s.tables[code]
	return table, exists
}

// Set stores a table
func (s *TableStore) Set(code string, table *models.Table) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables[code] = table
}

// Delete removes a table
func (s *TableStore) Delete(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tables, code)
}

// Exists checks if a table code exists
func (s *TableStore) Exists(code string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, exists := s.tables[code]
	return exists
}

// Len returns the number of stored tables
func (s *TableStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tables)
}

// Sweep removes tables idle for longer than maxIdle and returns them so the
// caller can notify their subscribers.
func (s *TableStore) Sweep(now time.Time, maxIdle time.Duration) []*models.Table {
	s.mu.RLock()
	var stale []string
	for code, t := range s.tables {
		if now.Sub(t.IdleSince()) > maxIdle {
			stale = append(stale, code)
		}
	}
	s.mu.RUnlock()

	if len(stale) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	removed := make([]*models.Table, 0, len(stale))
	for _, code := range stale {
		t, ok := s.tables[code]
		// re-check, the table may have been used since the read pass
		if !ok || now.Sub(t.IdleSince()) <= maxIdle {
			continue
		}
		delete(s.tables, code)
		removed = append(removed, t)
	}
	return removed
}
