// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package bootstrap

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/AccelByte/extend-runner-economy/internal/config"
	"github.com/AccelByte/extend-runner-economy/pkg/store"

	"github.com/alicebob/miniredis/v2"
)

func TestInitStore(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	defer mr.Close()

	dir := t.TempDir()
	tests := []struct {
		name    string
		cfg     config.Config
		want    string
		wantErr bool
	}{
		{"file", config.Config{StoreBackend: store.BackendFile, DataDir: dir}, "*store.FileStore", false},
		{"sqlite", config.Config{StoreBackend: store.BackendSQLite, DataDir: dir}, "*store.SQLStore", false},
		{"redis", config.Config{StoreBackend: store.BackendRedis, RedisHost: mr.Host(), RedisPort: mr.Port(), RedisLedgerKey: "k"}, "*store.RedisStore", false},
		{"unknown", config.Config{StoreBackend: "etcd"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := InitStore(context.Background(), &tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("InitStore() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			defer s.Close()

			var got string
			switch s.(type) {
			case *store.FileStore:
				got = "*store.FileStore"
			case *store.SQLStore:
				got = "*store.SQLStore"
			case *store.RedisStore:
				got = "*store.RedisStore"
			}
			if got != tt.want {
				t.Errorf("InitStore() = %T, expected %s", s, tt.want)
			}
			if err := s.Check(context.Background()); err != nil {
				t.Errorf("Check() error = %v", err)
			}
		})
	}
}

func TestInitManager(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{StoreBackend: store.BackendFile, DataDir: dir, AppVersion: "9.9.9"}

	st, err := InitStore(context.Background(), cfg)
	if err != nil {
		t.Fatalf("InitStore() error = %v", err)
	}
	m, err := InitManager(context.Background(), cfg, st, InitRules(cfg))
	if err != nil {
		t.Fatalf("InitManager() error = %v", err)
	}

	if m.Status().Version != "9.9.9" {
		t.Errorf("Status().Version = %q, expected 9.9.9", m.Status().Version)
	}
	for _, name := range []string{"config.json", "data.json"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("%s not created: %v", name, err)
		}
	}
}
