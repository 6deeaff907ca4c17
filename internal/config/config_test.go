package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{
		"HTTP_ADDR", "SHUTDOWN_TIMEOUT", "SERVICE_URL", "REQUEST_TIMEOUT_MS", "WORKER_COUNT",
		"QUEUE_HIGH_WATERMARK", "SIM_LATENCY_MS", "SIM_SEED", "MESSAGES_FILE", "LOG_LEVEL",
	} {
		t.Setenv(k, "")
	}
	c := Load()
	if c.HTTPAddr != ":8080" {
		t.Fatalf("HTTPAddr default")
	}
	if c.ShutdownTimeout != 15*time.Second {
		t.Fatalf("ShutdownTimeout default")
	}
	if c.ServiceURL != "http://localhost:8080" {
		t.Fatalf("ServiceURL default")
	}
	if c.RequestTimeout != 5*time.Second {
		t.Fatalf("RequestTimeout default")
	}
	if c.WorkerCount != 2 || c.QueueHighWatermark != 100 {
		t.Fatalf("worker defaults")
	}
	if c.SimLatency != 0 || !c.SimSeed {
		t.Fatalf("simulator defaults")
	}
	if c.MessagesFile != "" || c.LogLevel != "info" {
		t.Fatalf("messages/log defaults")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("SHUTDOWN_TIMEOUT", "2")
	t.Setenv("SERVICE_URL", "http://products.internal:9000")
	t.Setenv("REQUEST_TIMEOUT_MS", "250")
	t.Setenv("WORKER_COUNT", "4")
	t.Setenv("QUEUE_HIGH_WATERMARK", "99")
	t.Setenv("SIM_LATENCY_MS", "20")
	t.Setenv("SIM_SEED", "false")
	t.Setenv("MESSAGES_FILE", "/etc/catalog/messages.yaml")
	t.Setenv("LOG_LEVEL", "debug")
	c := Load()
	if c.HTTPAddr != ":9090" {
		t.Fatalf("HTTPAddr env")
	}
	if c.ShutdownTimeout != 2*time.Second {
		t.Fatalf("ShutdownTimeout env")
	}
	if c.ServiceURL != "http://products.internal:9000" {
		t.Fatalf("ServiceURL env")
	}
	if c.RequestTimeout != 250*time.Millisecond {
		t.Fatalf("RequestTimeout env")
	}
	if c.WorkerCount != 4 || c.QueueHighWatermark != 99 {
		t.Fatalf("workers env")
	}
	if c.SimLatency != 20*time.Millisecond || c.SimSeed {
		t.Fatalf("simulator env")
	}
	if c.MessagesFile != "/etc/catalog/messages.yaml" || c.LogLevel != "debug" {
		t.Fatalf("messages/log env")
	}
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	t.Setenv("WORKER_COUNT", "0")
	t.Setenv("REQUEST_TIMEOUT_MS", "soon")
	t.Setenv("SIM_SEED", "maybe")
	c := Load()
	if c.WorkerCount != 1 {
		t.Fatalf("expected worker floor of 1, got %d", c.WorkerCount)
	}
	if c.RequestTimeout != 5*time.Second {
		t.Fatalf("expected default timeout, got %v", c.RequestTimeout)
	}
	if !c.SimSeed {
		t.Fatalf("expected default seed")
	}
}
