// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package daily

import (
	"time"

	"github.com/AccelByte/extend-runner-economy/pkg/ledger"
	"github.com/AccelByte/extend-runner-economy/pkg/metrics"
	"github.com/AccelByte/extend-runner-economy/pkg/rules"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Engine runs daily contracts against the ledger.
type Engine struct {
	ledger  *ledger.Ledger
	rules   *rules.Resolver
	now     func() time.Time
	shuffle func(n int, swap func(i, j int))
}

type Option func(*Engine)

// WithClock overrides the engine's time source.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithShuffle overrides the objective shuffler used when randomization is on.
func WithShuffle(shuffle func(n int, swap func(i, j int))) Option {
	return func(e *Engine) { e.shuffle = shuffle }
}

func NewEngine(l *ledger.Ledger, resolver *rules.Resolver, opts ...Option) *Engine {
	e := &Engine{ledger: l, rules: resolver, now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Ensure creates or refreshes today's contract for a player.
func (e *Engine) Ensure(playerID uuid.UUID) {
	rs := e.rules.Current()
	if !rs.DailyEnabled {
		return
	}
	now := e.now()
	e.ledger.Update(playerID, func(r *ledger.Record) {
		Ensure(rs, r, now, e.shuffle)
	})
}

// View returns today's contract. It refreshes a stale contract first, so it
// creates the record for an unknown player.
func (e *Engine) View(playerID uuid.UUID) View {
	rs := e.rules.Current()
	if !rs.DailyEnabled {
		return View{}
	}
	now := e.now()
	var view View
	e.ledger.Update(playerID, func(r *ledger.Record) {
		view = BuildView(r, Ensure(rs, r, now, e.shuffle))
	})
	return view
}

func (e *Engine) Claim(playerID uuid.UUID) ClaimResult {
	rs := e.rules.Current()
	now := e.now()
	var result ClaimResult
	e.ledger.Update(playerID, func(r *ledger.Record) {
		result = Claim(rs, r, now, e.shuffle)
	})
	if result.Status == ClaimClaimed {
		metrics.DailyClaimsTotal.Inc()
		metrics.Award(metrics.SourceDaily, result.Reward)
		logrus.Debugf("player %s claimed daily contract for %d cred", playerID, result.Reward)
	}
	return result
}

// RecordChat counts one chat message toward today's contract.
func (e *Engine) RecordChat(playerID uuid.UUID) {
	rs := e.rules.Current()
	if !rs.DailyEnabled {
		return
	}
	now := e.now()
	e.ledger.Update(playerID, func(r *ledger.Record) {
		RecordChat(rs, r, now, e.shuffle)
	})
}

// AddOnlineSeconds counts online time toward today's contract.
func (e *Engine) AddOnlineSeconds(playerID uuid.UUID, seconds int) {
	rs := e.rules.Current()
	if !rs.DailyEnabled || seconds <= 0 {
		return
	}
	now := e.now()
	e.ledger.Update(playerID, func(r *ledger.Record) {
		AddOnlineSeconds(rs, r, now, seconds, e.shuffle)
	})
}

// RecordChat refreshes the contract, then bumps the chat counter.
func RecordChat(rs *rules.Ruleset, r *ledger.Record, now time.Time, shuffle func(n int, swap func(i, j int))) {
	if Ensure(rs, r, now, shuffle) == nil {
		return
	}
	r.DailyChatCount++
}

func AddOnlineSeconds(rs *rules.Ruleset, r *ledger.Record, now time.Time, seconds int, shuffle func(n int, swap func(i, j int))) {
	if seconds <= 0 || Ensure(rs, r, now, shuffle) == nil {
		return
	}
	r.DailyOnlineSeconds += seconds
}
