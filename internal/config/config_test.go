package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse([]byte("{}"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, int64(10<<20), cfg.Server.MaxUploadBytes())
	assert.Equal(t, "memory", cfg.MetricsStore.Driver)
	assert.Equal(t, 100, cfg.MetricsStore.Capacity)
	assert.Equal(t, "outfitMetrics", cfg.MetricsStore.Key)
	assert.Equal(t, 10*time.Second, cfg.HuggingFace.Timeout)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAI.Model)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestParse_YAMLValues(t *testing.T) {
	data := []byte(`
server:
  port: 9000
huggingface:
  enabled: true
  timeout: 3s
metrics_store:
  driver: postgres
  capacity: 20
database:
  host: db
  name: fitcheck
  user: fc
  password: secret
`)
	cfg, err := Parse(data)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.True(t, cfg.HuggingFace.Enabled)
	assert.Equal(t, 3*time.Second, cfg.HuggingFace.Timeout)
	assert.Equal(t, 20, cfg.MetricsStore.Capacity)
	assert.Equal(t, "postgres://fc:secret@db:5432/fitcheck?sslmode=disable", cfg.Database.DSN())
}

func TestParse_EnvOverrides(t *testing.T) {
	t.Setenv("FC_SERVER_PORT", "7070")
	t.Setenv("FC_METRICS_STORE", "minio")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := Parse([]byte("server:\n  port: 9000\n"))
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "minio", cfg.MetricsStore.Driver)
	assert.Equal(t, "sk-test", cfg.OpenAI.APIKey)
}

func TestParse_UnknownDriver(t *testing.T) {
	_, err := Parse([]byte("metrics_store:\n  driver: redis\n"))
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: debug\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logging.Level)
}
