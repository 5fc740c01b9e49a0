package config

import (
	"testing"
	"time"

	"github.com/zoobzio/stride"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("expected default http addr, got %q", cfg.HTTPAddr)
	}
	if cfg.Provider != ProviderIngest {
		t.Fatalf("expected default provider, got %q", cfg.Provider)
	}
	if cfg.Request != stride.DefaultRequest() {
		t.Fatalf("expected default request, got %+v", cfg.Request)
	}
	if cfg.Threshold != stride.DefaultThreshold {
		t.Fatalf("expected default threshold, got %v", cfg.Threshold)
	}
	if cfg.ErrorHistory != 10 {
		t.Fatalf("expected default error history, got %d", cfg.ErrorHistory)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("STRIDE_HTTP_ADDR", ":9000")
	t.Setenv("STRIDE_PROVIDER", "REDIS")
	t.Setenv("STRIDE_REDIS_ADDR", "redis:6379")
	t.Setenv("STRIDE_REDIS_CHANNEL", "fleet:fixes")
	t.Setenv("STRIDE_CODEC", "yaml")
	t.Setenv("STRIDE_INTERVAL", "30s")
	t.Setenv("STRIDE_FASTEST_INTERVAL", "15s")
	t.Setenv("STRIDE_PRIORITY", "low_power")
	t.Setenv("STRIDE_THRESHOLD", "2.5")
	t.Setenv("STRIDE_ERROR_HISTORY", "0")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.HTTPAddr != ":9000" {
		t.Fatalf("expected override addr")
	}
	if cfg.Provider != ProviderRedis || cfg.RedisAddr != "redis:6379" || cfg.RedisChannel != "fleet:fixes" {
		t.Fatalf("expected override redis settings, got %+v", cfg)
	}
	if cfg.Request.Interval != 30*time.Second || cfg.Request.FastestInterval != 15*time.Second {
		t.Fatalf("expected override intervals, got %+v", cfg.Request)
	}
	if cfg.Request.Priority != stride.PriorityLowPower {
		t.Fatalf("expected low power priority, got %s", cfg.Request.Priority)
	}
	if cfg.Threshold != 2.5 {
		t.Fatalf("expected override threshold, got %v", cfg.Threshold)
	}
	if cfg.ErrorHistory != 0 {
		t.Fatalf("expected override error history, got %d", cfg.ErrorHistory)
	}
	if _, ok := mustCodec(t, cfg).(stride.YAMLCodec); !ok {
		t.Fatalf("expected yaml codec")
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"STRIDE_PROVIDER":         "carrier-pigeon",
		"STRIDE_CODEC":            "xml",
		"STRIDE_INTERVAL":         "soon",
		"STRIDE_FASTEST_INTERVAL": "1m",
		"STRIDE_PRIORITY":         "turbo",
		"STRIDE_THRESHOLD":        "-1",
		"STRIDE_ERROR_HISTORY":    "lots",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			if _, err := Load(); err == nil {
				t.Errorf("expected error for %s=%q", key, value)
			}
		})
	}
}

func TestFixCodec(t *testing.T) {
	if _, ok := mustCodec(t, Config{Codec: "json"}).(stride.JSONCodec); !ok {
		t.Error("expected json codec")
	}
	if _, ok := mustCodec(t, Config{Codec: "yml"}).(stride.YAMLCodec); !ok {
		t.Error("expected yaml codec")
	}
}

func mustCodec(t *testing.T, cfg Config) stride.Codec {
	t.Helper()
	c, err := cfg.FixCodec()
	if err != nil {
		t.Fatalf("FixCodec() error = %v", err)
	}
	return c
}
