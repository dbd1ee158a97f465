// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package app

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/AccelByte/extend-runner-economy/internal/config"
	"github.com/AccelByte/extend-runner-economy/pkg/common"
	"github.com/AccelByte/extend-runner-economy/pkg/store"

	"github.com/google/uuid"
)

func TestRunJob_RecoversPanic(t *testing.T) {
	calls := 0
	j := job{name: "tick.test", interval: time.Second, run: func(*common.Scope) error {
		calls++
		panic("boom")
	}}

	runJob(context.Background(), j)
	runJob(context.Background(), j)

	if calls != 2 {
		t.Errorf("job ran %d times, expected 2", calls)
	}
}

func TestRunJob_Error(t *testing.T) {
	runJob(context.Background(), job{name: "tick.err", interval: time.Second, run: func(*common.Scope) error {
		return errors.New("store down")
	}})
}

func TestStartJobs_StopsOnCancel(t *testing.T) {
	var ticks atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup

	startJobs(ctx, &wg, []job{{
		name:     "tick.fast",
		interval: 5 * time.Millisecond,
		run: func(*common.Scope) error {
			ticks.Add(1)
			return nil
		},
	}})

	deadline := time.Now().Add(2 * time.Second)
	for ticks.Load() < 3 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	cancel()
	wg.Wait()

	if ticks.Load() < 3 {
		t.Errorf("job ticked %d times, expected at least 3", ticks.Load())
	}
}

func TestApp_NewAndShutdownSavesLedger(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{
		GRPCPort:            0,
		MetricsPort:         0,
		DataDir:             dir,
		StoreBackend:        store.BackendFile,
		OnlineTickSeconds:   30,
		SaveIntervalSeconds: 60,
		EventTickSeconds:    60,
	}

	a, err := New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	id := uuid.New()
	a.Manager().Ledger().AddCred(id, 12)

	if err := a.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}

	doc, err := store.NewFileStore(filepath.Join(dir, "data.json")).LoadLedger(context.Background())
	if err != nil {
		t.Fatalf("LoadLedger() error = %v", err)
	}
	if r := doc.Players[id.String()]; r == nil || r.Cred != 12 {
		t.Errorf("saved record = %+v, expected cred 12", r)
	}
}

func TestEconomyJobs(t *testing.T) {
	jobs := economyJobs(nil, 30, 60, 90)
	expected := map[string]time.Duration{
		"tick.online": 30 * time.Second,
		"tick.events": 60 * time.Second,
		"tick.save":   90 * time.Second,
	}
	if len(jobs) != len(expected) {
		t.Fatalf("economyJobs() returned %d jobs, expected %d", len(jobs), len(expected))
	}
	for _, j := range jobs {
		if expected[j.name] != j.interval {
			t.Errorf("%s interval = %v, expected %v", j.name, j.interval, expected[j.name])
		}
	}
}
