// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package config

import (
	"path/filepath"
)

// Config holds the process settings loaded from environment variables.
// Game tunables do not live here; they come from the rules document at
// RulesPath and can be reloaded at runtime.
//
// ============================================================
// DEVELOPER: Add new configuration fields here.
// ============================================================
// Use struct tags to define:
// - `env:"VAR_NAME"` - the environment variable name
// - `env:",required"` - make it required
// - `envDefault:"value"` - set a default value
//
// After adding fields here, update loader.go Validate() if custom
// validation is needed.
// ============================================================
type Config struct {
	// ============================================================
	// Server configuration
	// ============================================================
	GRPCPort    int    `env:"GRPC_PORT" envDefault:"6565"`
	MetricsPort int    `env:"METRICS_PORT" envDefault:"8080"`
	Environment string `env:"ENVIRONMENT" envDefault:"dev"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"RunnerEconomy"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	AppVersion  string `env:"APP_VERSION" envDefault:"dev"`

	// ============================================================
	// Data locations
	// ============================================================
	DataDir   string `env:"DATA_DIR" envDefault:"data"`
	RulesPath string `env:"RULES_PATH"`

	// ============================================================
	// Persistence: file, redis, sqlite or postgres
	// ============================================================
	StoreBackend string `env:"STORE_BACKEND" envDefault:"file"`

	RedisHost       string `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort       string `env:"REDIS_PORT" envDefault:"6379"`
	RedisPassword   string `env:"REDIS_PASSWORD"`
	RedisDB         int    `env:"REDIS_DB" envDefault:"0"`
	RedisMaxRetries int    `env:"REDIS_MAX_RETRIES" envDefault:"5"`
	RedisLedgerKey  string `env:"REDIS_LEDGER_KEY" envDefault:"runner_economy:ledger"`

	SQLitePath   string `env:"DB_SQLITE_PATH"`
	PostgresDSN  string `env:"DB_POSTGRES_DSN"`
	DBMaxRetries int    `env:"DB_MAX_RETRIES" envDefault:"5"`

	// ============================================================
	// Timers
	// ============================================================
	OnlineTickSeconds   int `env:"ONLINE_TICK_SECONDS" envDefault:"30"`
	SaveIntervalSeconds int `env:"SAVE_INTERVAL_SECONDS" envDefault:"60"`
	EventTickSeconds    int `env:"EVENT_TICK_SECONDS" envDefault:"60"`

	// ============================================================
	// Telemetry configuration
	// ============================================================
	OtelEnabled     bool   `env:"OTEL_ENABLED" envDefault:"false"`
	OtelEndpoint    string `env:"OTEL_EXPORTER_ZIPKIN_ENDPOINT"`
	OtelServiceName string `env:"OTEL_SERVICE_NAME" envDefault:"runner-economy"`
}

// RulesFile returns RULES_PATH, or config.json inside the data directory.
func (c *Config) RulesFile() string {
	if c.RulesPath != "" {
		return c.RulesPath
	}
	return filepath.Join(c.DataDir, "config.json")
}

// LedgerFile is the snapshot path used by the file backend.
func (c *Config) LedgerFile() string {
	return filepath.Join(c.DataDir, "data.json")
}

// SQLiteFile returns DB_SQLITE_PATH, or ledger.sqlite inside the data directory.
func (c *Config) SQLiteFile() string {
	if c.SQLitePath != "" {
		return c.SQLitePath
	}
	return filepath.Join(c.DataDir, "ledger.sqlite")
}
