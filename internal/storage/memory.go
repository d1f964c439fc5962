package storage

import (
	"context"
	"sync"

	"github.com/your-org/fitcheck/internal/models"
)

// MemoryStore keeps the history in process memory. It is lost on restart.
type MemoryStore struct {
	mu      sync.RWMutex
	records []models.StyleMetricsRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Append(_ context.Context, rec models.StyleMetricsRecord, capacity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = appendCapped(s.records, rec, capacity)
	return nil
}

func (s *MemoryStore) List(context.Context) ([]models.StyleMetricsRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.StyleMetricsRecord{}, s.records...), nil
}

func (s *MemoryStore) Ping(context.Context) error { return nil }

func (s *MemoryStore) Close() {}
