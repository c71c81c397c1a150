// Package config loads the server configuration from a YAML file, applies
// environment overrides and validates the result.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ServerSection configures the HTTP listener.
type ServerSection struct {
	ListenAddr      string        `yaml:"listen_addr" validate:"required"`
	AllowedOrigins  []string      `yaml:"allowed_origins"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" validate:"gte=0"`
}

// DatabaseSection configures the SQLite store.
type DatabaseSection struct {
	Path string `yaml:"path" validate:"required"`
}

// AuthSection configures session tokens.
type AuthSection struct {
	JWTSecret string        `yaml:"jwt_secret" validate:"required,min=16"`
	TokenTTL  time.Duration `yaml:"token_ttl" validate:"gt=0"`
}

// LogFileSection configures the rotating log file. An empty path disables it.
type LogFileSection struct {
	Path       string `yaml:"path"`
	MaxSizeMB  int    `yaml:"max_size_mb" validate:"omitempty,min=1,max=100"`
	MaxBackups int    `yaml:"max_backups" validate:"omitempty,min=1,max=10"`
	MaxAgeDays int    `yaml:"max_age_days" validate:"omitempty,min=1,max=365"`
}

// LogSection configures logging.
type LogSection struct {
	Level string         `yaml:"level" validate:"omitempty,oneof=debug info warn warning error"`
	File  LogFileSection `yaml:"file"`
}

// KafkaSection configures the cross-instance change relay. No brokers means
// the relay is disabled and changes stay in-process.
type KafkaSection struct {
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic" validate:"required_with=Brokers"`
	GroupID string   `yaml:"group_id"`
}

// RealtimeSection configures the change hub.
type RealtimeSection struct {
	SubscriberBuffer int          `yaml:"subscriber_buffer" validate:"gte=1"`
	Kafka            KafkaSection `yaml:"kafka"`
}

// InferenceSection configures the external AI endpoints. An empty base URL
// disables them and enables the local fallbacks.
type InferenceSection struct {
	BaseURL string        `yaml:"base_url" validate:"omitempty,url"`
	APIKey  string        `yaml:"api_key"`
	Timeout time.Duration `yaml:"timeout" validate:"gte=0"`
}

// BackupSection limits backup payloads.
type BackupSection struct {
	MaxBytes int64 `yaml:"max_bytes" validate:"gte=0"`
}

// Config is the full server configuration.
type Config struct {
	Server    ServerSection    `yaml:"server"`
	Database  DatabaseSection  `yaml:"database"`
	Auth      AuthSection      `yaml:"auth"`
	Log       LogSection       `yaml:"log"`
	Realtime  RealtimeSection  `yaml:"realtime"`
	Inference InferenceSection `yaml:"inference"`
	Backup    BackupSection    `yaml:"backup"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Server: ServerSection{
			ListenAddr:      ":8080",
			AllowedOrigins:  []string{"*"},
			ShutdownTimeout: 10 * time.Second,
		},
		Database: DatabaseSection{Path: "./data/lostfound.db"},
		Auth:     AuthSection{TokenTTL: 24 * time.Hour},
		Log:      LogSection{Level: "info"},
		Realtime: RealtimeSection{
			SubscriberBuffer: 64,
			Kafka:            KafkaSection{Topic: "lostfound.changes"},
		},
		Inference: InferenceSection{Timeout: 15 * time.Second},
		Backup:    BackupSection{MaxBytes: 64 << 20},
	}
}

// Load reads the YAML file at path on top of the defaults. An empty path
// skips the file. Environment overrides are applied afterwards and the
// result is validated.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(filepath.Clean(path))
		if err != nil {
			return cfg, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := applyEnv(&cfg, os.LookupEnv); err != nil {
		return cfg, err
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks struct tags.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("validation failed for Config: %w", err)
	}
	return nil
}

type lookupFunc func(key string) (string, bool)

func applyEnv(cfg *Config, lookup lookupFunc) error {
	str := func(dst *string, keys ...string) {
		for _, k := range keys {
			if v, ok := lookup(k); ok && v != "" {
				*dst = v
				return
			}
		}
	}

	str(&cfg.Server.ListenAddr, "LOSTFOUND_LISTEN_ADDR")
	str(&cfg.Database.Path, "LOSTFOUND_DB_PATH", "DB_PATH")
	str(&cfg.Auth.JWTSecret, "LOSTFOUND_JWT_SECRET", "JWT_SECRET")
	str(&cfg.Log.Level, "LOSTFOUND_LOG_LEVEL", "LOG_LEVEL")
	str(&cfg.Log.File.Path, "LOSTFOUND_LOG_FILE")
	str(&cfg.Realtime.Kafka.Topic, "LOSTFOUND_KAFKA_TOPIC")
	str(&cfg.Realtime.Kafka.GroupID, "LOSTFOUND_KAFKA_GROUP")
	str(&cfg.Inference.BaseURL, "LOSTFOUND_INFERENCE_URL")
	str(&cfg.Inference.APIKey, "LOSTFOUND_INFERENCE_API_KEY")

	if v, ok := lookup("LOSTFOUND_KAFKA_BROKERS"); ok && v != "" {
		cfg.Realtime.Kafka.Brokers = splitList(v)
	}
	if v, ok := lookup("LOSTFOUND_ALLOWED_ORIGINS"); ok && v != "" {
		cfg.Server.AllowedOrigins = splitList(v)
	}
	if v, ok := lookup("LOSTFOUND_TOKEN_TTL"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid LOSTFOUND_TOKEN_TTL: %w", err)
		}
		cfg.Auth.TokenTTL = d
	}
	if v, ok := lookup("LOSTFOUND_SUBSCRIBER_BUFFER"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid LOSTFOUND_SUBSCRIBER_BUFFER: %w", err)
		}
		cfg.Realtime.SubscriberBuffer = n
	}
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
