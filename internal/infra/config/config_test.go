package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_ENV", "HTTP_ADDR", "STORAGE_MODE", "MONGO_URI", "MONGO_DB",
		"KAFKA_BROKERS", "KAFKA_TOPIC", "KAFKA_TOPIC_PREFIX", "EVENT_SOURCE",
		"REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB",
		"QUOTE_CACHE_TTL", "FIXTURES_PATH", "SHUTDOWN_TIMEOUT", "CORS_ORIGINS",
		"OUTBOX_POLL_INTERVAL", "OUTBOX_RETRY_BACKOFF",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, StorageMemory, cfg.StorageMode)
	assert.Equal(t, 5*time.Minute, cfg.QuoteCacheTTL)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, "", cfg.TopicPrefix)
	assert.Equal(t, "app://roomrates", cfg.EventSource)
	assert.Equal(t, 500*time.Millisecond, cfg.OutboxInterval)
	assert.Equal(t, []time.Duration{time.Second, 5 * time.Second, 30 * time.Second, 2 * time.Minute}, cfg.OutboxBackoff)
	assert.False(t, cfg.KafkaEnabled())
	assert.False(t, cfg.RedisEnabled())
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORAGE_MODE", "Mongo")
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("QUOTE_CACHE_TTL", "30s")
	t.Setenv("OUTBOX_RETRY_BACKOFF", "2s, 1m")
	t.Setenv("KAFKA_TOPIC_PREFIX", "staging.")
	t.Setenv("EVENT_SOURCE", "urn:roomrates:eu-1")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, StorageMongo, cfg.StorageMode)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.True(t, cfg.KafkaEnabled())
	assert.True(t, cfg.RedisEnabled())
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, 30*time.Second, cfg.QuoteCacheTTL)
	assert.Equal(t, []time.Duration{2 * time.Second, time.Minute}, cfg.OutboxBackoff)
	assert.Equal(t, "staging.", cfg.TopicPrefix)
	assert.Equal(t, "urn:roomrates:eu-1", cfg.EventSource)
}

func TestLoad_Errors(t *testing.T) {
	cases := map[string]map[string]string{
		"mongo without uri": {"STORAGE_MODE": "mongo"},
		"unknown storage":   {"STORAGE_MODE": "sqlite"},
		"bad ttl":           {"QUOTE_CACHE_TTL": "soon"},
		"bad redis db":      {"REDIS_DB": "zero"},
		"bad backoff":       {"OUTBOX_RETRY_BACKOFF": "1s,later"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
