package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server       ServerConfig       `yaml:"server"`
	HuggingFace  HuggingFaceConfig  `yaml:"huggingface"`
	LocalModel   LocalModelConfig   `yaml:"local_model"`
	OpenAI       OpenAIConfig       `yaml:"openai"`
	MetricsStore MetricsStoreConfig `yaml:"metrics_store"`
	Database     DatabaseConfig     `yaml:"database"`
	MinIO        MinIOConfig        `yaml:"minio"`
	NATS         NATSConfig         `yaml:"nats"`
	Logging      LoggingConfig      `yaml:"logging"`
}

type ServerConfig struct {
	Port        int `yaml:"port"`
	MaxUploadMB int `yaml:"max_upload_mb"`
}

// MaxUploadBytes is the multipart body limit derived from MaxUploadMB.
func (s ServerConfig) MaxUploadBytes() int64 {
	return int64(s.MaxUploadMB) << 20
}

type HuggingFaceConfig struct {
	Enabled bool          `yaml:"enabled"`
	URL     string        `yaml:"url"`
	Token   string        `yaml:"token"`
	Timeout time.Duration `yaml:"timeout"`
}

type LocalModelConfig struct {
	Enabled    bool   `yaml:"enabled"`
	ModelPath  string `yaml:"model_path"`
	LabelsPath string `yaml:"labels_path"`
	ONNXLib    string `yaml:"onnx_lib"`
}

type OpenAIConfig struct {
	APIKey  string        `yaml:"api_key"`
	Model   string        `yaml:"model"`
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

type MetricsStoreConfig struct {
	// Driver is one of "memory", "minio" or "postgres".
	Driver   string `yaml:"driver"`
	Capacity int    `yaml:"capacity"`
	Key      string `yaml:"key"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	MaxConns int    `yaml:"max_conns"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		d.User, d.Password, d.Host, d.Port, d.Name)
}

type MinIOConfig struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Bucket    string `yaml:"bucket"`
	UseSSL    bool   `yaml:"use_ssl"`
}

// NATSConfig enables result event publishing when URL is set.
type NATSConfig struct {
	URL string `yaml:"url"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads config from YAML file and applies environment variable overrides.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	return Parse(data)
}

// Parse decodes YAML bytes, applies FC_* environment overrides and fills defaults.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	applyEnvOverrides(cfg)
	setDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.MetricsStore.Driver {
	case "memory", "minio", "postgres":
	default:
		return fmt.Errorf("unknown metrics_store.driver %q", c.MetricsStore.Driver)
	}
	if c.MetricsStore.Capacity < 1 {
		return fmt.Errorf("metrics_store.capacity must be positive, got %d", c.MetricsStore.Capacity)
	}
	return nil
}

func setDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.MaxUploadMB == 0 {
		cfg.Server.MaxUploadMB = 10
	}
	if cfg.HuggingFace.URL == "" {
		cfg.HuggingFace.URL = "https://api-inference.huggingface.co/models/google/vit-base-patch16-224"
	}
	if cfg.HuggingFace.Timeout == 0 {
		cfg.HuggingFace.Timeout = 10 * time.Second
	}
	if cfg.LocalModel.ModelPath == "" {
		cfg.LocalModel.ModelPath = "models/mobilenetv2-12.onnx"
	}
	if cfg.LocalModel.LabelsPath == "" {
		cfg.LocalModel.LabelsPath = "models/imagenet_labels.txt"
	}
	if cfg.OpenAI.Model == "" {
		cfg.OpenAI.Model = "gpt-4o-mini"
	}
	if cfg.OpenAI.Timeout == 0 {
		cfg.OpenAI.Timeout = 30 * time.Second
	}
	if cfg.MetricsStore.Driver == "" {
		cfg.MetricsStore.Driver = "memory"
	}
	if cfg.MetricsStore.Capacity == 0 {
		cfg.MetricsStore.Capacity = 100
	}
	if cfg.MetricsStore.Key == "" {
		cfg.MetricsStore.Key = "outfitMetrics"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.MaxConns == 0 {
		cfg.Database.MaxConns = 5
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("FC_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("FC_HF_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.HuggingFace.Enabled = b
		}
	}
	if v := os.Getenv("FC_HF_TOKEN"); v != "" {
		cfg.HuggingFace.Token = v
	}
	if v := os.Getenv("FC_LOCAL_MODEL_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.LocalModel.Enabled = b
		}
	}
	if v := os.Getenv("FC_ONNX_LIB"); v != "" {
		cfg.LocalModel.ONNXLib = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.OpenAI.APIKey = v
	}
	if v := os.Getenv("FC_OPENAI_MODEL"); v != "" {
		cfg.OpenAI.Model = v
	}
	if v := os.Getenv("FC_METRICS_STORE"); v != "" {
		cfg.MetricsStore.Driver = v
	}
	if v := os.Getenv("FC_DB_HOST"); v != "" {
		cfg.Database.Host = v
	}
	if v := os.Getenv("FC_DB_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Database.Port = port
		}
	}
	if v := os.Getenv("FC_DB_NAME"); v != "" {
		cfg.Database.Name = v
	}
	if v := os.Getenv("FC_DB_USER"); v != "" {
		cfg.Database.User = v
	}
	if v := os.Getenv("FC_DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("FC_NATS_URL"); v != "" {
		cfg.NATS.URL = v
	}
	if v := os.Getenv("FC_MINIO_ENDPOINT"); v != "" {
		cfg.MinIO.Endpoint = v
	}
	if v := os.Getenv("FC_MINIO_ACCESS_KEY"); v != "" {
		cfg.MinIO.AccessKey = v
	}
	if v := os.Getenv("FC_MINIO_SECRET_KEY"); v != "" {
		cfg.MinIO.SecretKey = v
	}
	if v := os.Getenv("FC_MINIO_BUCKET"); v != "" {
		cfg.MinIO.Bucket = v
	}
}
