package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/your-org/fitcheck/internal/config"
	"github.com/your-org/fitcheck/internal/models"
)

// MinIOStore keeps the whole history as a single JSON array object.
// Appends are read-modify-write and serialized within the process only.
type MinIOStore struct {
	client *minio.Client
	bucket string
	key    string

	mu sync.Mutex
}

func NewMinIOStore(cfg config.MinIOConfig, key string) (*MinIOStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	return &MinIOStore{
		client: client,
		bucket: cfg.Bucket,
		key:    key,
	}, nil
}

// EnsureBucket creates the bucket if it doesn't exist.
func (s *MinIOStore) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("check bucket: %w", err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("create bucket: %w", err)
		}
	}
	return nil
}

func (s *MinIOStore) Append(ctx context.Context, rec models.StyleMetricsRecord, capacity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.getObject(ctx)
	if err != nil {
		return err
	}
	list, err := decodeRecords(data)
	if err != nil {
		slog.Warn("discarding unreadable metrics history", "bucket", s.bucket, "key", s.key, "error", err)
		list = nil
	}

	out, err := json.Marshal(appendCapped(list, rec, capacity))
	if err != nil {
		return fmt.Errorf("encode metrics history: %w", err)
	}
	return s.putObject(ctx, out)
}

func (s *MinIOStore) List(ctx context.Context) ([]models.StyleMetricsRecord, error) {
	data, err := s.getObject(ctx)
	if err != nil {
		return nil, err
	}
	return decodeRecords(data)
}

// Ping checks MinIO connectivity.
func (s *MinIOStore) Ping(ctx context.Context) error {
	_, err := s.client.BucketExists(ctx, s.bucket)
	return err
}

func (s *MinIOStore) Close() {}

func (s *MinIOStore) putObject(ctx context.Context, data []byte) error {
	_, err := s.client.PutObject(ctx, s.bucket, s.key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return fmt.Errorf("put object %s: %w", s.key, err)
	}
	return nil
}

// getObject returns nil data when the history object does not exist yet.
func (s *MinIOStore) getObject(ctx context.Context) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, s.key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get object %s: %w", s.key, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, nil
		}
		return nil, fmt.Errorf("read object %s: %w", s.key, err)
	}
	return data, nil
}

// decodeRecords treats an empty or missing document as an empty history.
func decodeRecords(data []byte) ([]models.StyleMetricsRecord, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return []models.StyleMetricsRecord{}, nil
	}
	var list []models.StyleMetricsRecord
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("decode metrics history: %w", err)
	}
	if list == nil {
		list = []models.StyleMetricsRecord{}
	}
	return list, nil
}
