package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	StorageMemory = "memory"
	StorageMongo  = "mongo"
)

// Config aggregates application configuration values loaded from environment variables.
type Config struct {
	Env             string
	HTTPAddr        string
	StorageMode     string
	MongoURI        string
	MongoDB         string
	KafkaBrokers    []string
	KafkaTopic      string
	TopicPrefix     string
	EventSource     string
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	QuoteCacheTTL   time.Duration
	FixturesPath    string
	ShutdownTimeout time.Duration
	CORSOrigins     []string
	OutboxInterval  time.Duration
	OutboxBackoff   []time.Duration
}

// Load parses configuration from the current environment.
func Load() (Config, error) {
	cfg := Config{
		Env:           getEnv("APP_ENV", "dev"),
		HTTPAddr:      getEnv("HTTP_ADDR", ":8080"),
		StorageMode:   strings.ToLower(strings.TrimSpace(getEnv("STORAGE_MODE", StorageMemory))),
		MongoURI:      os.Getenv("MONGO_URI"),
		MongoDB:       getEnv("MONGO_DB", "roomrates"),
		KafkaTopic:    getEnv("KAFKA_TOPIC", ""),
		TopicPrefix:   os.Getenv("KAFKA_TOPIC_PREFIX"),
		EventSource:   getEnv("EVENT_SOURCE", "app://roomrates"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		FixturesPath:  os.Getenv("FIXTURES_PATH"),
		KafkaBrokers:  splitList(os.Getenv("KAFKA_BROKERS")),
		CORSOrigins:   splitList(getEnv("CORS_ORIGINS", "*")),
	}

	redisDB, err := parseIntEnv("REDIS_DB", 0)
	if err != nil {
		return Config{}, err
	}
	cfg.RedisDB = redisDB

	ttl, err := parseDurationEnv("QUOTE_CACHE_TTL", 5*time.Minute)
	if err != nil {
		return Config{}, err
	}
	cfg.QuoteCacheTTL = ttl

	shutdown, err := parseDurationEnv("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return Config{}, err
	}
	cfg.ShutdownTimeout = shutdown

	interval, err := parseDurationEnv("OUTBOX_POLL_INTERVAL", 500*time.Millisecond)
	if err != nil {
		return Config{}, err
	}
	cfg.OutboxInterval = interval

	backoff, err := parseDurationList("OUTBOX_RETRY_BACKOFF", "1s,5s,30s,2m")
	if err != nil {
		return Config{}, err
	}
	cfg.OutboxBackoff = backoff

	switch cfg.StorageMode {
	case StorageMemory:
	case StorageMongo:
		if cfg.MongoURI == "" {
			return Config{}, fmt.Errorf("MONGO_URI is required when STORAGE_MODE=%s", StorageMongo)
		}
	default:
		return Config{}, fmt.Errorf("invalid STORAGE_MODE %q", cfg.StorageMode)
	}
	return cfg, nil
}

// KafkaEnabled reports whether events go to a broker instead of the log.
func (c Config) KafkaEnabled() bool { return len(c.KafkaBrokers) > 0 }

func (c Config) RedisEnabled() bool { return c.RedisAddr != "" }

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if v := strings.TrimSpace(part); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func parseDurationEnv(key string, def time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s duration: %w", key, err)
	}
	return d, nil
}

func parseDurationList(key, def string) ([]time.Duration, error) {
	var out []time.Duration
	for _, part := range splitList(getEnv(key, def)) {
		d, err := time.ParseDuration(part)
		if err != nil {
			return nil, fmt.Errorf("invalid %s entry %q: %w", key, part, err)
		}
		out = append(out, d)
	}
	return out, nil
}

func parseIntEnv(key string, def int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s integer: %w", key, err)
	}
	return v, nil
}
