package storage

import (
	"context"
	"fmt"

	"github.com/your-org/fitcheck/internal/config"
	"github.com/your-org/fitcheck/internal/models"
)

// MetricsStore persists the capped metrics history as one ordered list,
// oldest first.
type MetricsStore interface {
	// Append adds rec and then evicts the oldest entries beyond capacity.
	Append(ctx context.Context, rec models.StyleMetricsRecord, capacity int) error
	List(ctx context.Context) ([]models.StyleMetricsRecord, error)
	Ping(ctx context.Context) error
	Close()
}

// Open builds the backend named by cfg.MetricsStore.Driver.
func Open(ctx context.Context, cfg *config.Config) (MetricsStore, error) {
	switch cfg.MetricsStore.Driver {
	case "memory":
		return NewMemoryStore(), nil
	case "minio":
		s, err := NewMinIOStore(cfg.MinIO, cfg.MetricsStore.Key+".json")
		if err != nil {
			return nil, err
		}
		if err := s.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		return s, nil
	case "postgres":
		s, err := NewPostgresStore(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		if err := s.EnsureSchema(ctx); err != nil {
			s.Close()
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown metrics store driver %q", cfg.MetricsStore.Driver)
	}
}

// appendCapped appends rec and keeps only the newest capacity entries.
func appendCapped(list []models.StyleMetricsRecord, rec models.StyleMetricsRecord, capacity int) []models.StyleMetricsRecord {
	list = append(list, rec)
	if capacity > 0 && len(list) > capacity {
		list = append([]models.StyleMetricsRecord(nil), list[len(list)-capacity:]...)
	}
	return list
}
