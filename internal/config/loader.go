// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Load reads configuration from environment variables.
// It attempts to load from .env file first (for local development),
// then parses environment variables into the Config struct.
func Load() (*Config, error) {
	// In production (Docker/K8s), environment variables are injected directly
	if err := godotenv.Load(); err != nil {
		logrus.Debugf("no .env file loaded: %v", err)
	} else {
		logrus.Infof("loaded environment variables from .env file")
	}

	return Parse()
}

// Parse reads the environment without touching .env files.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config from environment: %w", err)
	}
	cfg.StoreBackend = strings.ToLower(strings.TrimSpace(cfg.StoreBackend))
	return cfg, nil
}

// Validate performs custom validation on the configuration.
func (c *Config) Validate() error {
	if c.GRPCPort < 1 || c.GRPCPort > 65535 {
		return fmt.Errorf("invalid GRPC_PORT: %d (must be 1-65535)", c.GRPCPort)
	}
	if c.MetricsPort < 1 || c.MetricsPort > 65535 {
		return fmt.Errorf("invalid METRICS_PORT: %d (must be 1-65535)", c.MetricsPort)
	}
	if c.GRPCPort == c.MetricsPort {
		return fmt.Errorf("GRPC_PORT and METRICS_PORT must differ (both %d)", c.GRPCPort)
	}

	switch c.StoreBackend {
	case "file", "sqlite":
		if strings.TrimSpace(c.DataDir) == "" && c.SQLitePath == "" {
			return fmt.Errorf("DATA_DIR is required for the %s backend", c.StoreBackend)
		}
	case "redis":
		if c.RedisHost == "" || c.RedisPort == "" {
			return fmt.Errorf("REDIS_HOST and REDIS_PORT are required for the redis backend")
		}
		if c.RedisMaxRetries < 0 {
			return fmt.Errorf("invalid REDIS_MAX_RETRIES: %d (must be >= 0)", c.RedisMaxRetries)
		}
	case "postgres":
		if c.PostgresDSN == "" {
			return fmt.Errorf("DB_POSTGRES_DSN is required for the postgres backend")
		}
	default:
		return fmt.Errorf("invalid STORE_BACKEND: %q (must be file, redis, sqlite or postgres)", c.StoreBackend)
	}

	intervals := []struct {
		name  string
		value int
	}{
		{"ONLINE_TICK_SECONDS", c.OnlineTickSeconds},
		{"SAVE_INTERVAL_SECONDS", c.SaveIntervalSeconds},
		{"EVENT_TICK_SECONDS", c.EventTickSeconds},
	}
	for _, iv := range intervals {
		if iv.value < 1 {
			return fmt.Errorf("invalid %s: %d (must be positive)", iv.name, iv.value)
		}
	}

	return nil
}
