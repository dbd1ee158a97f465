// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/AccelByte/extend-runner-economy/pkg/common"
	"github.com/AccelByte/extend-runner-economy/pkg/economy"

	"github.com/sirupsen/logrus"
)

// job is one periodic task. It runs inside its own tracing scope.
type job struct {
	name     string
	interval time.Duration
	run      func(scope *common.Scope) error
}

// economyJobs returns the online accrual, event roll and snapshot timers.
func economyJobs(m *economy.Manager, onlineSeconds, eventSeconds, saveSeconds int) []job {
	return []job{
		{
			name:     "tick.online",
			interval: time.Duration(onlineSeconds) * time.Second,
			run: func(scope *common.Scope) error {
				paid := m.TickOnline(onlineSeconds)
				scope.SetAttributes("paid", paid)
				if paid > 0 {
					scope.Log.Debugf("online cred paid to %d players", paid)
				}
				return nil
			},
		},
		{
			name:     "tick.events",
			interval: time.Duration(eventSeconds) * time.Second,
			run: func(scope *common.Scope) error {
				started := m.TickEvents()
				scope.SetAttributes("started", len(started))
				return nil
			},
		},
		{
			name:     "tick.save",
			interval: time.Duration(saveSeconds) * time.Second,
			run: func(scope *common.Scope) error {
				return m.Save(scope.Ctx)
			},
		},
	}
}

// startJobs launches one goroutine per job. They stop when ctx is cancelled.
func startJobs(ctx context.Context, wg *sync.WaitGroup, jobs []job) {
	for _, j := range jobs {
		wg.Add(1)
		go func(j job) {
			defer wg.Done()
			ticker := time.NewTicker(j.interval)
			defer ticker.Stop()

			logrus.Infof("timer %s started: every %s", j.name, j.interval)
			for {
				select {
				case <-ctx.Done():
					logrus.Infof("timer %s stopped", j.name)
					return
				case <-ticker.C:
					runJob(ctx, j)
				}
			}
		}(j)
	}
}

// runJob runs a single tick. A panic is recovered and logged so the timer
// keeps going.
func runJob(ctx context.Context, j job) {
	scope := common.NewScope(ctx, j.name)
	defer scope.Finish()
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("panic in %s: %v", j.name, r)
			scope.TraceError(err)
			scope.Log.Errorf("%v", err)
		}
	}()

	if err := j.run(scope); err != nil {
		scope.TraceError(err)
		scope.Log.Warnf("%s failed: %v", j.name, err)
	}
}
