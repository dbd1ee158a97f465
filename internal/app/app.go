// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/AccelByte/extend-runner-economy/internal/bootstrap"
	"github.com/AccelByte/extend-runner-economy/internal/config"
	"github.com/AccelByte/extend-runner-economy/internal/server"
	"github.com/AccelByte/extend-runner-economy/pkg/economy"
	"github.com/AccelByte/extend-runner-economy/pkg/store"

	"github.com/sirupsen/logrus"
)

// healthInterval is how often the gRPC health status is refreshed from the store.
const healthInterval = 15 * time.Second

// App holds all application dependencies and manages the application lifecycle.
type App struct {
	cfg               *config.Config
	store             store.Store
	manager           *economy.Manager
	grpcServer        *server.GRPCServer
	metricsServer     *server.MetricsServer
	shutdownTelemetry func(context.Context) error

	stopTimers context.CancelFunc
	timers     sync.WaitGroup
}

// New creates and initializes a new application instance.
//
// ============================================================
// DEVELOPER: Application initialization order
// ============================================================
// Components are initialized in dependency order:
// 1. Telemetry (so startup spans are exported)
// 2. Snapshot store (file, redis, sqlite or postgres)
// 3. Rules loader and economy manager (loads rules and ledger)
// 4. Servers (gRPC health, metrics)
//
// The background timers start in Run, not here.
// ============================================================
func New(ctx context.Context, cfg *config.Config, opts ...economy.Option) (*App, error) {
	logrus.Info("initializing application...")

	app := &App{cfg: cfg}

	// ============================================================
	// Step 1: Setup telemetry
	// ============================================================
	if cfg.OtelEnabled {
		shutdownTelemetry, err := server.SetupTelemetry(ctx, cfg.OtelServiceName, cfg.Environment, cfg.OtelEndpoint, 0)
		if err != nil {
			return nil, fmt.Errorf("failed to setup telemetry: %w", err)
		}
		app.shutdownTelemetry = shutdownTelemetry
	} else {
		logrus.Info("telemetry disabled")
	}

	// ============================================================
	// Step 2: Open the snapshot store
	// ============================================================
	st, err := bootstrap.InitStore(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to init %s store: %w", cfg.StoreBackend, err)
	}
	app.store = st

	// ============================================================
	// Step 3: Load rules and ledger
	// ============================================================
	manager, err := bootstrap.InitManager(ctx, cfg, st, bootstrap.InitRules(cfg), opts...)
	if err != nil {
		_ = st.Close()
		return nil, err
	}
	app.manager = manager

	// ============================================================
	// Step 4: Setup servers
	// ============================================================
	app.grpcServer = server.NewGRPCServer(cfg.GRPCPort, store.NewHealthChecker(st))
	if err := app.grpcServer.Setup(); err != nil {
		return nil, fmt.Errorf("failed to setup gRPC server: %w", err)
	}

	app.metricsServer = server.NewMetricsServer(cfg.MetricsPort, "/metrics")
	if err := app.metricsServer.Setup(); err != nil {
		return nil, fmt.Errorf("failed to setup metrics server: %w", err)
	}

	logrus.Info("application initialized successfully")

	return app, nil
}

// Manager is the economy the host integration talks to.
func (a *App) Manager() *economy.Manager {
	return a.manager
}
