package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lostfound.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  listen_addr: ":9090"
  allowed_origins: ["https://campus.example"]
database:
  path: /tmp/lf.db
auth:
  jwt_secret: "0123456789abcdef0123"
  token_ttl: 2h
realtime:
  subscriber_buffer: 8
  kafka:
    brokers: ["localhost:9092"]
    topic: changes
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.ListenAddr)
	assert.Equal(t, []string{"https://campus.example"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "/tmp/lf.db", cfg.Database.Path)
	assert.Equal(t, 2*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 8, cfg.Realtime.SubscriberBuffer)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Realtime.Kafka.Brokers)
	// untouched sections keep their defaults
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, int64(64<<20), cfg.Backup.MaxBytes)
}

func TestLoad_MissingSecretFailsValidation(t *testing.T) {
	path := writeConfig(t, "server:\n  listen_addr: \":8080\"\n")
	t.Setenv("LOSTFOUND_JWT_SECRET", "")
	t.Setenv("JWT_SECRET", "")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWTSecret")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	env := map[string]string{
		"DB_PATH":                   "/data/env.db",
		"LOSTFOUND_JWT_SECRET":      "env-secret-env-secret",
		"LOSTFOUND_KAFKA_BROKERS":   "a:9092, b:9092,,",
		"LOSTFOUND_TOKEN_TTL":       "30m",
		"LOSTFOUND_ALLOWED_ORIGINS": "http://localhost:3000",
	}
	err := applyEnv(&cfg, func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	})
	require.NoError(t, err)

	assert.Equal(t, "/data/env.db", cfg.Database.Path)
	assert.Equal(t, "env-secret-env-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.Realtime.Kafka.Brokers)
	assert.Equal(t, 30*time.Minute, cfg.Auth.TokenTTL)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.AllowedOrigins)
	require.NoError(t, cfg.Validate())
}

func TestApplyEnv_BadDuration(t *testing.T) {
	cfg := Default()
	err := applyEnv(&cfg, func(k string) (string, bool) {
		if k == "LOSTFOUND_TOKEN_TTL" {
			return "forever", true
		}
		return "", false
	})
	require.Error(t, err)
}

func TestValidate_KafkaTopicRequiredWithBrokers(t *testing.T) {
	cfg := Default()
	cfg.Auth.JWTSecret = "0123456789abcdef"
	cfg.Realtime.Kafka.Brokers = []string{"localhost:9092"}
	cfg.Realtime.Kafka.Topic = ""
	require.Error(t, cfg.Validate())
}
