// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package config

import (
	"path/filepath"
	"testing"
)

func validConfig() *Config {
	return &Config{
		GRPCPort:            6565,
		MetricsPort:         8080,
		DataDir:             "data",
		StoreBackend:        "file",
		RedisHost:           "localhost",
		RedisPort:           "6379",
		OnlineTickSeconds:   30,
		SaveIntervalSeconds: 60,
		EventTickSeconds:    60,
	}
}

func TestParse_Defaults(t *testing.T) {
	t.Setenv("STORE_BACKEND", " Redis ")

	cfg, err := Parse()
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.GRPCPort != 6565 || cfg.MetricsPort != 8080 {
		t.Errorf("ports = %d/%d, expected 6565/8080", cfg.GRPCPort, cfg.MetricsPort)
	}
	if cfg.StoreBackend != "redis" {
		t.Errorf("StoreBackend = %q, expected redis", cfg.StoreBackend)
	}
	if cfg.OnlineTickSeconds != 30 || cfg.SaveIntervalSeconds != 60 || cfg.EventTickSeconds != 60 {
		t.Errorf("timers = %d/%d/%d", cfg.OnlineTickSeconds, cfg.SaveIntervalSeconds, cfg.EventTickSeconds)
	}
	if cfg.RedisLedgerKey != "runner_economy:ledger" {
		t.Errorf("RedisLedgerKey = %q", cfg.RedisLedgerKey)
	}
}

func TestConfig_Paths(t *testing.T) {
	cfg := validConfig()
	if got := cfg.RulesFile(); got != filepath.Join("data", "config.json") {
		t.Errorf("RulesFile() = %q", got)
	}
	if got := cfg.LedgerFile(); got != filepath.Join("data", "data.json") {
		t.Errorf("LedgerFile() = %q", got)
	}
	if got := cfg.SQLiteFile(); got != filepath.Join("data", "ledger.sqlite") {
		t.Errorf("SQLiteFile() = %q", got)
	}

	cfg.RulesPath = "/etc/runner/rules.yaml"
	cfg.SQLitePath = "/var/lib/runner.db"
	if cfg.RulesFile() != "/etc/runner/rules.yaml" || cfg.SQLiteFile() != "/var/lib/runner.db" {
		t.Errorf("explicit paths ignored: %q %q", cfg.RulesFile(), cfg.SQLiteFile())
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid file", func(c *Config) {}, false},
		{"valid sqlite", func(c *Config) { c.StoreBackend = "sqlite" }, false},
		{"valid redis", func(c *Config) { c.StoreBackend = "redis" }, false},
		{"valid postgres", func(c *Config) { c.StoreBackend = "postgres"; c.PostgresDSN = "postgres://x" }, false},
		{"grpc port out of range", func(c *Config) { c.GRPCPort = 0 }, true},
		{"metrics port out of range", func(c *Config) { c.MetricsPort = 70000 }, true},
		{"ports collide", func(c *Config) { c.MetricsPort = c.GRPCPort }, true},
		{"unknown backend", func(c *Config) { c.StoreBackend = "mongo" }, true},
		{"postgres without dsn", func(c *Config) { c.StoreBackend = "postgres" }, true},
		{"redis without host", func(c *Config) { c.StoreBackend = "redis"; c.RedisHost = "" }, true},
		{"file without data dir", func(c *Config) { c.DataDir = "" }, true},
		{"zero online tick", func(c *Config) { c.OnlineTickSeconds = 0 }, true},
		{"negative save interval", func(c *Config) { c.SaveIntervalSeconds = -5 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
