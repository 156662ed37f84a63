// Package cmd loads configuration and wires the use cases of the etching service.
package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is the process configuration, read from the environment by LoadConfig.
// Empty KafkaBrokers, RedisAddr or QuoteExpirySpec switch the matching
// component off.
type Config struct {
	HTTPPort        string
	DBHost          string
	DBPort          string
	DBUser          string
	DBPassword      string
	DBName          string
	DBSslMode       string
	KafkaBrokers    []string
	KafkaOrderTopic string
	KafkaQuoteTopic string
	KafkaProducer   string
	RedisAddr       string
	StatusCacheTTL  time.Duration
	QuoteExpirySpec string
}

// LoadConfig reads envFile once (a missing file is fine) and then the
// process environment. Unset variables take their defaults.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	ttl, err := time.ParseDuration(env("STATUS_CACHE_TTL", "5m"))
	if err != nil {
		return Config{}, fmt.Errorf("STATUS_CACHE_TTL: %w", err)
	}

	return Config{
		HTTPPort:        env("HTTP_PORT", "8080"),
		DBHost:          env("DB_HOST", "localhost"),
		DBPort:          env("DB_PORT", "5432"),
		DBUser:          env("DB_USER", "postgres"),
		DBPassword:      env("DB_PASSWORD", ""),
		DBName:          env("DB_NAME", "etching"),
		DBSslMode:       env("DB_SSLMODE", "disable"),
		KafkaBrokers:    splitList(env("KAFKA_BROKERS", "")),
		KafkaOrderTopic: env("KAFKA_ORDER_EVENTS_TOPIC", "etching.order.events"),
		KafkaQuoteTopic: env("KAFKA_QUOTE_EVENTS_TOPIC", "etching.quote.events"),
		KafkaProducer:   env("KAFKA_PRODUCER", "etching-workflow"),
		RedisAddr:       env("REDIS_ADDR", ""),
		StatusCacheTTL:  ttl,
		QuoteExpirySpec: env("QUOTE_EXPIRY_CRON", ""),
	}, nil
}

// DSN is the PostgreSQL connection string for the gorm driver.
func (c Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode,
	)
}

func env(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
