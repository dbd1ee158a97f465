// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

//go:build integration
// +build integration

package store_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/AccelByte/extend-runner-economy/pkg/economy"
	"github.com/AccelByte/extend-runner-economy/pkg/rules"
	"github.com/AccelByte/extend-runner-economy/pkg/store"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Runs the economy against a real Redis.
// Run with: go test -tags integration ./pkg/store/...
// Requires: Redis at REDIS_HOST:REDIS_PORT (default localhost:6379)
func TestRedisIntegration_EconomyRoundTrip(t *testing.T) {
	logrus.SetLevel(logrus.DebugLevel)
	ctx := context.Background()

	client, err := store.ConnectRedis(ctx, store.RedisOptions{
		Host:       envOr("REDIS_HOST", "localhost"),
		Port:       envOr("REDIS_PORT", "6379"),
		Password:   os.Getenv("REDIS_PASSWORD"),
		MaxRetries: 2,
	})
	if err != nil {
		t.Fatalf("failed to connect to Redis: %v", err)
	}
	defer client.Close()

	key := fmt.Sprintf("runner_economy:integration:%d", time.Now().UnixNano())
	defer client.Del(ctx, key)

	rulesPath := filepath.Join(t.TempDir(), "config.json")
	newManager := func() *economy.Manager {
		m := economy.New(store.NewRedisStore(client, key), rules.NewLoader(rulesPath))
		if err := m.Load(ctx); err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		return m
	}

	// === load on an empty key writes an empty snapshot ===
	m := newManager()
	if exists, err := client.Exists(ctx, key).Result(); err != nil || exists != 1 {
		t.Fatalf("empty snapshot not written: exists=%d err=%v", exists, err)
	}

	// === mutate and save ===
	id := uuid.New()
	m.Connect(id, "Dixie")
	if !m.Chat(id, "Dixie", "jacking in now") {
		t.Fatal("Chat() did not award cred")
	}
	m.Ledger().AddCred(id, 20)
	if err := m.Save(ctx); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	// === a fresh manager sees the saved state ===
	reloaded := newManager()
	if got := reloaded.Ledger().Cred(id); got != 21 {
		t.Errorf("Cred() after reload = %d, expected 21", got)
	}
	if got := reloaded.Ledger().Name(id); got != "Dixie" {
		t.Errorf("Name() after reload = %q, expected Dixie", got)
	}
	if v := reloaded.Daily().View(id); v.Objectives == nil {
		t.Errorf("daily contract lost across reload: %+v", v)
	}

	if !store.NewHealthChecker(store.NewRedisStore(client, key)).IsHealthy(ctx) {
		t.Error("HealthChecker reports unhealthy against a live Redis")
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
