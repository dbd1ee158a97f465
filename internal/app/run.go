// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
)

// shutdownTimeout bounds the final save and server drain.
const shutdownTimeout = 15 * time.Second

// Run starts the application and blocks until a shutdown signal is received.
func (a *App) Run(ctx context.Context) error {
	// Start servers
	if err := a.grpcServer.Start(ctx); err != nil {
		return err
	}
	if err := a.metricsServer.Start(ctx); err != nil {
		return err
	}

	// Start background timers
	timerCtx, stopTimers := context.WithCancel(ctx)
	a.stopTimers = stopTimers
	startJobs(timerCtx, &a.timers, economyJobs(a.manager,
		a.cfg.OnlineTickSeconds, a.cfg.EventTickSeconds, a.cfg.SaveIntervalSeconds))

	a.timers.Add(1)
	go func() {
		defer a.timers.Done()
		a.grpcServer.WatchHealth(timerCtx, healthInterval)
	}()

	logrus.Info("application started successfully")

	// Wait for shutdown signal
	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-sigCtx.Done()

	logrus.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return a.Shutdown(shutdownCtx)
}

// Shutdown gracefully shuts down all application components.
//
// ============================================================
// DEVELOPER: Shutdown order is critical
// ============================================================
// Components are shut down in reverse dependency order:
// 1. Stop the timers and wait for in-flight ticks
// 2. Stop accepting new requests (gRPC + metrics servers)
// 3. Write a final ledger snapshot, then close the store
// 4. Flush telemetry data (OpenTelemetry)
//
// IMPORTANT: Shutdown errors are logged but don't stop the
// shutdown sequence. Each component gets a chance to clean up.
// ============================================================
func (a *App) Shutdown(ctx context.Context) error {
	logrus.Info("shutting down application...")

	// ============================================================
	// Step 1: Stop timers
	// ============================================================
	if a.stopTimers != nil {
		a.stopTimers()
	}
	a.timers.Wait()

	// ============================================================
	// Step 2: Shutdown servers (stop accepting new requests)
	// ============================================================
	if err := a.grpcServer.Shutdown(ctx); err != nil {
		logrus.Errorf("gRPC server shutdown error: %v", err)
	}
	if err := a.metricsServer.Shutdown(ctx); err != nil {
		logrus.Errorf("metrics server shutdown error: %v", err)
	}

	// ============================================================
	// Step 3: Final save and close the store
	// ============================================================
	if err := a.manager.Save(ctx); err != nil {
		logrus.Errorf("final ledger save error: %v", err)
	}
	if err := a.store.Close(); err != nil {
		logrus.Errorf("store close error: %v", err)
	}

	// ============================================================
	// Step 4: Flush telemetry data
	// ============================================================
	if a.shutdownTelemetry != nil {
		if err := a.shutdownTelemetry(ctx); err != nil {
			logrus.Errorf("telemetry shutdown error: %v", err)
		}
	}

	logrus.Info("application shutdown complete")
	return nil
}
