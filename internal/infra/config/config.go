package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr     string
	SQLitePath   string
	AdminID      string
	FeeRecipient string
	FeeBps       int64
	RedisAddr    string
	RedisChannel string
	OutboxPoll   time.Duration
	OutboxBatch  int
}

// Load reads configuration from the environment, with .env support.
// Empty SQLitePath selects the in-memory repositories; empty RedisAddr
// disables the redis notifier.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		HTTPAddr:     getEnv("HTTP_ADDR", ":8080"),
		SQLitePath:   getEnv("SQLITE_PATH", ""),
		AdminID:      getEnv("ADMIN_ID", "admin"),
		FeeRecipient: getEnv("FEE_RECIPIENT", "platform"),
		FeeBps:       getEnvInt64("FEE_BPS", 25),
		RedisAddr:    getEnv("REDIS_ADDR", ""),
		RedisChannel: getEnv("REDIS_CHANNEL", "payments.events"),
		OutboxPoll:   getEnvDuration("OUTBOX_POLL_INTERVAL", 500*time.Millisecond),
		OutboxBatch:  int(getEnvInt64("OUTBOX_BATCH_SIZE", 50)),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
