package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/your-org/fitcheck/internal/config"
	"github.com/your-org/fitcheck/internal/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS metrics_records (
	seq        BIGSERIAL PRIMARY KEY,
	id         UUID NOT NULL UNIQUE,
	style      TEXT NOT NULL,
	rating     INT NOT NULL,
	source     TEXT NOT NULL,
	record     JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// PostgresStore keeps one row per record; seq gives insertion order.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, cfg config.DatabaseConfig) (*PostgresStore, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	poolCfg.MaxConns = int32(cfg.MaxConns)

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Close() {
	s.pool.Close()
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// EnsureSchema creates the metrics_records table if needed.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("create metrics_records: %w", err)
	}
	return nil
}

func (s *PostgresStore) Append(ctx context.Context, rec models.StyleMetricsRecord, capacity int) error {
	doc, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO metrics_records (id, style, rating, source, record) VALUES ($1, $2, $3, $4, $5)`,
		rec.ID, string(rec.Style), rec.Rating, string(rec.Source), doc,
	)
	if err != nil {
		return fmt.Errorf("insert record: %w", err)
	}

	if capacity > 0 {
		_, err = tx.Exec(ctx,
			`DELETE FROM metrics_records
			 WHERE seq NOT IN (SELECT seq FROM metrics_records ORDER BY seq DESC LIMIT $1)`,
			capacity,
		)
		if err != nil {
			return fmt.Errorf("trim records: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (s *PostgresStore) List(ctx context.Context) ([]models.StyleMetricsRecord, error) {
	rows, err := s.pool.Query(ctx, `SELECT record FROM metrics_records ORDER BY seq ASC`)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	records := []models.StyleMetricsRecord{}
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		var rec models.StyleMetricsRecord
		if err := json.Unmarshal(doc, &rec); err != nil {
			return nil, fmt.Errorf("decode record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
