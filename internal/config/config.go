// Package config provides runtime configuration values for the editor and the simulator.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds configuration knobs for the simulator server, the product
// service client and the effects workers.
type Config struct {
	HTTPAddr           string
	ShutdownTimeout    time.Duration
	ServiceURL         string
	RequestTimeout     time.Duration
	WorkerCount        int
	QueueHighWatermark int
	SimLatency         time.Duration
	SimSeed            bool
	MessagesFile       string
	LogLevel           string
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoienv(key string, def int) int {
	v := getenv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func boolenv(key string, def bool) bool {
	v := getenv(key, "")
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return b
}

func durenvms(key string, defMs int) time.Duration {
	ms := atoienv(key, defMs)
	return time.Duration(ms) * time.Millisecond
}

func durenvs(key string, defSec int) time.Duration {
	sec := atoienv(key, defSec)
	return time.Duration(sec) * time.Second
}

// Load collects configuration from environment with defaults.
func Load() Config {
	workers := atoienv("WORKER_COUNT", 2)
	if workers < 1 {
		workers = 1
	}
	return Config{
		HTTPAddr:           getenv("HTTP_ADDR", ":8080"),
		ShutdownTimeout:    durenvs("SHUTDOWN_TIMEOUT", 15),
		ServiceURL:         getenv("SERVICE_URL", "http://localhost:8080"),
		RequestTimeout:     durenvms("REQUEST_TIMEOUT_MS", 5000),
		WorkerCount:        workers,
		QueueHighWatermark: atoienv("QUEUE_HIGH_WATERMARK", 100),
		SimLatency:         durenvms("SIM_LATENCY_MS", 0),
		SimSeed:            boolenv("SIM_SEED", true),
		MessagesFile:       getenv("MESSAGES_FILE", ""),
		LogLevel:           getenv("LOG_LEVEL", "info"),
	}
}
