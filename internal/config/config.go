// Package config loads daemon settings from the environment.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/viper"
	"github.com/zoobzio/stride"
)

// Provider kinds.
const (
	ProviderIngest = "ingest"
	ProviderFile   = "file"
	ProviderRedis  = "redis"
)

// Config holds the daemon settings. Each field is read from the matching
// STRIDE_ variable, e.g. HTTPAddr from STRIDE_HTTP_ADDR.
type Config struct {
	HTTPAddr     string
	Provider     string
	File         string
	RedisAddr    string
	RedisChannel string
	Codec        string
	Request      stride.Request
	Threshold    float64
	ErrorHistory int
}

// Load reads the configuration from the environment, applying defaults
// for anything unset.
func Load() (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("stride")
	v.AutomaticEnv()
	v.SetDefault("http_addr", ":8080")
	v.SetDefault("provider", ProviderIngest)
	v.SetDefault("file", "fixes.jsonl")
	v.SetDefault("redis_addr", "localhost:6379")
	v.SetDefault("redis_channel", "stride:fixes")
	v.SetDefault("codec", "json")
	v.SetDefault("interval", stride.DefaultInterval.String())
	v.SetDefault("fastest_interval", stride.DefaultFastestInterval.String())
	v.SetDefault("priority", stride.PriorityHighAccuracy.String())
	v.SetDefault("threshold", stride.DefaultThreshold)
	v.SetDefault("error_history", 10)

	cfg := Config{
		HTTPAddr:     v.GetString("http_addr"),
		Provider:     strings.ToLower(v.GetString("provider")),
		File:         v.GetString("file"),
		RedisAddr:    v.GetString("redis_addr"),
		RedisChannel: v.GetString("redis_channel"),
		Codec:        strings.ToLower(v.GetString("codec")),
	}

	var err error
	if cfg.Request.Interval, err = cast.ToDurationE(v.Get("interval")); err != nil {
		return Config{}, fmt.Errorf("STRIDE_INTERVAL: %w", err)
	}
	if cfg.Request.FastestInterval, err = cast.ToDurationE(v.Get("fastest_interval")); err != nil {
		return Config{}, fmt.Errorf("STRIDE_FASTEST_INTERVAL: %w", err)
	}
	if cfg.Request.Priority, err = stride.ParsePriority(v.GetString("priority")); err != nil {
		return Config{}, fmt.Errorf("STRIDE_PRIORITY: %w", err)
	}
	if cfg.Threshold, err = cast.ToFloat64E(v.Get("threshold")); err != nil {
		return Config{}, fmt.Errorf("STRIDE_THRESHOLD: %w", err)
	}
	if cfg.ErrorHistory, err = cast.ToIntE(v.Get("error_history")); err != nil {
		return Config{}, fmt.Errorf("STRIDE_ERROR_HISTORY: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the settings for consistency.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderIngest:
	case ProviderFile:
		if c.File == "" {
			return fmt.Errorf("STRIDE_FILE is required for the file provider")
		}
	case ProviderRedis:
		if c.RedisAddr == "" || c.RedisChannel == "" {
			return fmt.Errorf("STRIDE_REDIS_ADDR and STRIDE_REDIS_CHANNEL are required for the redis provider")
		}
	default:
		return fmt.Errorf("unknown provider %q", c.Provider)
	}
	if _, err := c.FixCodec(); err != nil {
		return err
	}
	if err := c.Request.Validate(); err != nil {
		return err
	}
	if c.Threshold < 0 {
		return fmt.Errorf("threshold must not be negative, got %v", c.Threshold)
	}
	if c.ErrorHistory < 0 {
		return fmt.Errorf("error history must not be negative, got %d", c.ErrorHistory)
	}
	return nil
}

// FixCodec returns the codec named by Codec.
func (c Config) FixCodec() (stride.Codec, error) {
	switch c.Codec {
	case "json":
		return stride.JSONCodec{}, nil
	case "yaml", "yml":
		return stride.YAMLCodec{}, nil
	default:
		return nil, fmt.Errorf("unknown codec %q", c.Codec)
	}
}
