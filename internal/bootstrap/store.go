// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package bootstrap

import (
	"context"
	"fmt"

	"github.com/AccelByte/extend-runner-economy/internal/config"
	"github.com/AccelByte/extend-runner-economy/pkg/store"

	"github.com/sirupsen/logrus"
)

// InitStore opens the snapshot backend selected by STORE_BACKEND.
//
// ============================================================
// DEVELOPER: Adding a persistence backend
// ============================================================
// 1. Implement store.Store in pkg/store (see file.go, redis.go, sql.go)
// 2. Add a backend name constant in pkg/store/store.go
// 3. Add a case below and accept the name in config.Validate()
// ============================================================
func InitStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	switch cfg.StoreBackend {
	case store.BackendFile:
		s := store.NewFileStore(cfg.LedgerFile())
		logrus.Infof("using file store at %s", s.Path())
		return s, nil

	case store.BackendRedis:
		client, err := store.ConnectRedis(ctx, store.RedisOptions{
			Host:       cfg.RedisHost,
			Port:       cfg.RedisPort,
			Password:   cfg.RedisPassword,
			DB:         cfg.RedisDB,
			MaxRetries: cfg.RedisMaxRetries,
		})
		if err != nil {
			return nil, err
		}
		logrus.Infof("using redis store with key %s", cfg.RedisLedgerKey)
		return store.NewRedisStore(client, cfg.RedisLedgerKey), nil

	case store.BackendSQLite:
		return openSQL(ctx, store.DialectSQLite, cfg.SQLiteFile(), cfg.DBMaxRetries)

	case store.BackendPostgres:
		return openSQL(ctx, store.DialectPostgres, cfg.PostgresDSN, cfg.DBMaxRetries)

	default:
		return nil, fmt.Errorf("unsupported store backend %q", cfg.StoreBackend)
	}
}

// openSQL returns a nil interface when the open fails.
func openSQL(ctx context.Context, dialect store.Dialect, dsn string, maxRetries int) (store.Store, error) {
	s, err := store.OpenSQL(ctx, dialect, dsn, maxRetries)
	if err != nil {
		return nil, err
	}
	return s, nil
}
