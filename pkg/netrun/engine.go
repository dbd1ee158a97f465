// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package netrun

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/AccelByte/extend-runner-economy/pkg/daily"
	"github.com/AccelByte/extend-runner-economy/pkg/event"
	"github.com/AccelByte/extend-runner-economy/pkg/ledger"
	"github.com/AccelByte/extend-runner-economy/pkg/metrics"
	"github.com/AccelByte/extend-runner-economy/pkg/perk"
	"github.com/AccelByte/extend-runner-economy/pkg/rules"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrUnknownTier = errors.New("unknown netrun tier")
	ErrUnknownRisk = errors.New("unknown netrun risk profile")
)

type StartStatus string

const (
	StartStarted       StartStatus = "STARTED"
	StartAlreadyActive StartStatus = "ALREADY_ACTIVE"
	StartCooldown      StartStatus = "COOLDOWN"
	StartUnknownTier   StartStatus = "UNKNOWN_TIER"
	StartUnknownRisk   StartStatus = "UNKNOWN_RISK"
)

type SubmitStatus string

const (
	SubmitNoSession    SubmitStatus = "NO_SESSION"
	SubmitEmptyGuess   SubmitStatus = "EMPTY_GUESS"
	SubmitStageCleared SubmitStatus = "STAGE_CLEARED"
	SubmitCompleted    SubmitStatus = "COMPLETED"
	SubmitDenied       SubmitStatus = "DENIED"
	SubmitFailed       SubmitStatus = "FAILED"
)

// StartResult reports a start request. Options lists the valid names when
// the tier or risk was unknown.
type StartResult struct {
	Status            StartStatus
	Session           Session
	CooldownRemaining time.Duration
	Options           []string
	Lines             []string
}

// SubmitResult reports a guess. Session is the stored session after the
// guess for STAGE_CLEARED and DENIED, and the finished one otherwise.
type SubmitResult struct {
	Status          SubmitStatus
	Session         Session
	Reward          int
	EventBonus      int
	Penalty         int
	Streak          int
	CooldownSeconds int
	Lines           []string
}

// Engine drives netrun sessions for every player.
//
// ============================================================
// DEVELOPER: Atomicity
// ============================================================
// sessions and cooldowns are only written inside ledger.Update for the
// player they belong to. Completing a run clears the session, starts the
// cooldown, records the win and credits cred under one entry lock, so no
// reader sees half of it.
// ============================================================
type Engine struct {
	ledger    *ledger.Ledger
	rules     *rules.Resolver
	sessions  sync.Map // uuid.UUID -> *Session
	cooldowns sync.Map // uuid.UUID -> time.Time

	now     func() time.Time
	code    CodeGenerator
	shuffle func(n int, swap func(i, j int))
}

type Option func(*Engine)

func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func WithCodeGenerator(gen CodeGenerator) Option {
	return func(e *Engine) { e.code = gen }
}

// WithShuffle is passed through to daily contract generation.
func WithShuffle(shuffle func(n int, swap func(i, j int))) Option {
	return func(e *Engine) { e.shuffle = shuffle }
}

func NewEngine(l *ledger.Ledger, resolver *rules.Resolver, opts ...Option) *Engine {
	e := &Engine{
		ledger: l,
		rules:  resolver,
		now:    time.Now,
		code:   RandomCode,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ResolveTier looks up a tier; a blank name gives the default tier.
func ResolveTier(rs *rules.Ruleset, name string) (rules.Tier, error) {
	tier, ok := rs.Tier(name)
	if !ok {
		return rules.Tier{}, fmt.Errorf("%w: %q", ErrUnknownTier, strings.TrimSpace(name))
	}
	return tier, nil
}

// ResolveRisk looks up a risk profile; a blank name gives the default.
func ResolveRisk(rs *rules.Ruleset, name string) (rules.Risk, error) {
	risk, ok := rs.Risk(name)
	if !ok {
		return rules.Risk{}, fmt.Errorf("%w: %q", ErrUnknownRisk, strings.TrimSpace(name))
	}
	return risk, nil
}

func (e *Engine) Start(playerID uuid.UUID, tierName, riskName string) StartResult {
	rs := e.rules.Current()
	now := e.now()
	var result StartResult

	e.ledger.Update(playerID, func(r *ledger.Record) {
		if s, ok := e.session(playerID, now); ok {
			result = StartResult{Status: StartAlreadyActive, Session: s, Lines: hintLines(rs, s, now)}
			return
		}
		if remaining := e.cooldown(playerID, now); remaining > 0 {
			result = StartResult{Status: StartCooldown, CooldownRemaining: remaining, Lines: cooldownLines(rs, remaining)}
			return
		}
		tier, err := ResolveTier(rs, tierName)
		if err != nil {
			result = StartResult{Status: StartUnknownTier, Options: rs.TierNames()}
			return
		}
		risk, err := ResolveRisk(rs, riskName)
		if err != nil {
			result = StartResult{Status: StartUnknownRisk, Options: rs.RiskNames()}
			return
		}

		s := NewSession(tier, risk, perk.Compute(rs, r), rs.Stages, now, e.code)
		e.sessions.Store(playerID, &s)
		result = StartResult{Status: StartStarted, Session: s, Lines: startLines(rs, s, now)}
	})

	if result.Status == StartStarted {
		logrus.Debugf("player %s started netrun tier=%s risk=%s stages=%d", playerID, result.Session.Tier.Name, result.Session.Risk.Name, result.Session.TotalStages)
	}
	return result
}

func (e *Engine) Submit(playerID uuid.UUID, guess string) SubmitResult {
	rs := e.rules.Current()
	now := e.now()
	var result SubmitResult

	e.ledger.Update(playerID, func(r *ledger.Record) {
		s, ok := e.session(playerID, now)
		if !ok {
			result = SubmitResult{Status: SubmitNoSession}
			return
		}
		if strings.TrimSpace(guess) == "" {
			result = SubmitResult{Status: SubmitEmptyGuess, Session: s}
			return
		}

		if s.Matches(guess) {
			if next, ok := s.Advance(now, e.code); ok {
				e.sessions.Store(playerID, &next)
				result = SubmitResult{Status: SubmitStageCleared, Session: next, Lines: hintLines(rs, next, now)}
				return
			}
			result = e.complete(rs, r, playerID, s, now)
			return
		}

		s.AttemptsRemaining--
		if s.AttemptsRemaining > 0 {
			e.sessions.Store(playerID, &s)
			result = SubmitResult{Status: SubmitDenied, Session: s, Lines: deniedLines(s)}
			return
		}
		result = e.fail(rs, r, playerID, s, now)
	})

	switch result.Status {
	case SubmitCompleted:
		metrics.NetrunResultsTotal.WithLabelValues(string(SubmitCompleted)).Inc()
		metrics.Award(metrics.SourceNetrun, result.Reward)
		logrus.Debugf("player %s completed netrun for %d cred (bonus %d)", playerID, result.Reward, result.EventBonus)
	case SubmitFailed:
		metrics.NetrunResultsTotal.WithLabelValues(string(SubmitFailed)).Inc()
		metrics.Spend(metrics.SourcePenalty, result.Penalty)
	}
	return result
}

func (e *Engine) complete(rs *rules.Ruleset, r *ledger.Record, playerID uuid.UUID, s Session, now time.Time) SubmitResult {
	e.sessions.Delete(playerID)
	cooldown := s.TotalCooldownSeconds()
	e.startCooldown(playerID, now, cooldown)

	daily.Ensure(rs, r, now, e.shuffle)
	streak := r.RecordWin()
	bonus := event.ConsumeBonus(r, now)
	reward := s.TotalReward() + bonus
	r.AddCred(reward)

	return SubmitResult{
		Status:          SubmitCompleted,
		Session:         s,
		Reward:          reward,
		EventBonus:      bonus,
		Streak:          streak,
		CooldownSeconds: cooldown,
		Lines:           successLines(rs, s, reward, streak),
	}
}

func (e *Engine) fail(rs *rules.Ruleset, r *ledger.Record, playerID uuid.UUID, s Session, now time.Time) SubmitResult {
	e.sessions.Delete(playerID)
	cooldown := s.TotalCooldownSeconds()
	e.startCooldown(playerID, now, cooldown)

	r.RecordFail()
	before := r.Cred
	r.AddCred(-s.BaseFailPenalty)
	penalty := before - r.Cred

	return SubmitResult{
		Status:          SubmitFailed,
		Session:         s,
		Penalty:         penalty,
		CooldownSeconds: cooldown,
		Lines:           failLines(rs, s, penalty),
	}
}

// Active returns the player's live session and its hint lines.
func (e *Engine) Active(playerID uuid.UUID) (Session, []string, bool) {
	rs := e.rules.Current()
	now := e.now()
	var (
		s  Session
		ok bool
	)
	e.ledger.View(playerID, func(*ledger.Record) {
		s, ok = e.session(playerID, now)
	})
	if !ok {
		return Session{}, nil, false
	}
	return s, hintLines(rs, s, now), true
}

func (e *Engine) CooldownRemaining(playerID uuid.UUID) time.Duration {
	now := e.now()
	var remaining time.Duration
	e.ledger.View(playerID, func(*ledger.Record) {
		remaining = e.cooldown(playerID, now)
	})
	return remaining
}

// Clear drops the player's session without a cooldown or a result.
func (e *Engine) Clear(playerID uuid.UUID) {
	e.ledger.View(playerID, func(*ledger.Record) {
		e.sessions.Delete(playerID)
	})
}

func (e *Engine) TierNames() []string {
	return e.rules.Current().TierNames()
}

func (e *Engine) RiskNames() []string {
	return e.rules.Current().RiskNames()
}

// session loads a copy of the stored session, dropping it if expired.
// Callers hold the player's entry lock.
func (e *Engine) session(playerID uuid.UUID, now time.Time) (Session, bool) {
	v, ok := e.sessions.Load(playerID)
	if !ok {
		return Session{}, false
	}
	s := *v.(*Session)
	if s.Expired(now) {
		e.sessions.Delete(playerID)
		return Session{}, false
	}
	return s, true
}

// cooldown returns the time left, dropping an elapsed cooldown.
// Callers hold the player's entry lock.
func (e *Engine) cooldown(playerID uuid.UUID, now time.Time) time.Duration {
	v, ok := e.cooldowns.Load(playerID)
	if !ok {
		return 0
	}
	remaining := v.(time.Time).Sub(now)
	if remaining <= 0 {
		e.cooldowns.Delete(playerID)
		return 0
	}
	return remaining
}

func (e *Engine) startCooldown(playerID uuid.UUID, now time.Time, seconds int) {
	if seconds <= 0 {
		e.cooldowns.Delete(playerID)
		return
	}
	e.cooldowns.Store(playerID, now.Add(time.Duration(seconds)*time.Second))
}
