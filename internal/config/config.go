package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	brokerDomain "github.com/davicafu/brokerlive/internal/broker/domain"
)

type Config struct {
	HTTPPort     string
	LogLevel     string
	RedisAddr    string
	UseKafka     bool
	KafkaBrokers []string
	KafkaTopic   string
	CacheTTL     time.Duration
	StreamBuffer int // tamaño del buffer por suscriptor del stream de cambios
}

func LoadConfig() *Config {
	getEnv := func(key, fallback string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return fallback
	}

	streamBuffer := 16
	if v, err := strconv.Atoi(getEnv("STREAM_BUFFER", "")); err == nil && v > 0 {
		streamBuffer = v
	}

	cacheTTL := 5 * time.Minute
	if v, err := time.ParseDuration(getEnv("CACHE_TTL", "")); err == nil && v > 0 {
		cacheTTL = v
	}

	return &Config{
		HTTPPort:     getEnv("HTTP_PORT", "8080"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		RedisAddr:    getEnv("REDIS_ADDR", "localhost:6379"),
		UseKafka:     getEnv("USE_KAFKA", "false") == "true",
		KafkaBrokers: strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
		KafkaTopic:   getEnv("KAFKA_TOPIC", brokerDomain.BrokerTopic),
		CacheTTL:     cacheTTL,
		StreamBuffer: streamBuffer,
	}
}
