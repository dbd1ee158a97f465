// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package netrun

import (
	"math"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/AccelByte/extend-runner-economy/pkg/perk"
	"github.com/AccelByte/extend-runner-economy/pkg/rules"
)

// CodeAlphabet leaves out glyphs that read alike (0/O, 1/I).
const CodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const (
	minCodeLength     = 3
	minTimeoutSeconds = 6
)

// CodeGenerator returns a random access code of the given length.
type CodeGenerator func(length int) string

// RandomCode draws each glyph uniformly from CodeAlphabet.
func RandomCode(length int) string {
	var b strings.Builder
	b.Grow(length)
	for i := 0; i < length; i++ {
		b.WriteByte(CodeAlphabet[rand.IntN(len(CodeAlphabet))])
	}
	return b.String()
}

// Session is one player's in-flight netrun. The tier, risk and base values
// are fixed when the session starts; later stages derive from them only.
type Session struct {
	Code              string
	ExpiresAt         time.Time
	AttemptsRemaining int

	Tier        rules.Tier
	Risk        rules.Risk
	Stage       int
	TotalStages int

	CodeLength     int
	TimeoutSeconds int

	BaseCodeLength      int
	BaseTimeoutSeconds  int
	BaseAttempts        int
	BaseReward          int
	BaseCooldownSeconds int
	BaseFailPenalty     int

	StageLengthDelta   int
	StageTimeoutDelta  int
	StageRewardBonus   int
	StageCooldownBonus int
}

// NewSession derives stage 1 of a run from a tier, a risk profile and the
// player's perk effects.
func NewSession(tier rules.Tier, risk rules.Risk, effects perk.Effects, stages rules.StageRules, now time.Time, gen CodeGenerator) Session {
	s := Session{
		Tier:        tier,
		Risk:        risk,
		Stage:       1,
		TotalStages: max(1, stages.Count),

		BaseCodeLength:      tier.CodeLength,
		BaseReward:          round(float64(tier.Reward) * risk.RewardMultiplier * effects.RewardMultiplier),
		BaseCooldownSeconds: round(float64(tier.CooldownSeconds) * risk.CooldownMultiplier * effects.CooldownMultiplier),
		BaseTimeoutSeconds:  max(minTimeoutSeconds, round(float64(tier.TimeoutSeconds)*risk.TimeoutMultiplier*effects.TimeoutMultiplier)),
		BaseAttempts:        max(1, round(float64(tier.Attempts)*risk.AttemptsMultiplier)+effects.AttemptBonus),
		BaseFailPenalty:     max(0, round(float64(tier.FailPenalty)*risk.FailPenaltyMultiplier)-effects.FailPenaltyReduction),

		StageLengthDelta:   stages.LengthDelta,
		StageTimeoutDelta:  stages.TimeoutDelta,
		StageRewardBonus:   stages.RewardBonus,
		StageCooldownBonus: stages.CooldownBonus,
	}
	s.CodeLength = max(minCodeLength, s.BaseCodeLength)
	s.TimeoutSeconds = max(minTimeoutSeconds, s.BaseTimeoutSeconds)
	s.AttemptsRemaining = s.BaseAttempts
	s.Code = gen(s.CodeLength)
	s.ExpiresAt = now.Add(time.Duration(s.TimeoutSeconds) * time.Second)
	return s
}

// Advance returns the next stage. It reports false on the final stage.
func (s Session) Advance(now time.Time, gen CodeGenerator) (Session, bool) {
	if s.Stage >= s.TotalStages {
		return s, false
	}
	k := s.Stage
	next := s
	next.Stage = k + 1
	next.CodeLength = max(minCodeLength, s.BaseCodeLength+s.StageLengthDelta*k)
	next.TimeoutSeconds = max(minTimeoutSeconds, s.BaseTimeoutSeconds+s.StageTimeoutDelta*k)
	next.AttemptsRemaining = max(1, s.BaseAttempts)
	next.Code = gen(next.CodeLength)
	next.ExpiresAt = now.Add(time.Duration(next.TimeoutSeconds) * time.Second)
	return next, true
}

func (s Session) Final() bool {
	return s.Stage >= s.TotalStages
}

// Expired reports whether now is past the stage deadline.
func (s Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// Matches compares a guess to the code, ignoring case and surrounding space.
func (s Session) Matches(guess string) bool {
	return strings.EqualFold(strings.TrimSpace(guess), s.Code)
}

func (s Session) TotalReward() int {
	return s.BaseReward + s.StageRewardBonus*(s.TotalStages-1)
}

func (s Session) TotalCooldownSeconds() int {
	return s.BaseCooldownSeconds + s.StageCooldownBonus*(s.TotalStages-1)
}

// SecondsLeft rounds the time to expiry down, never below zero.
func (s Session) SecondsLeft(now time.Time) int {
	return max(0, int(s.ExpiresAt.Sub(now)/time.Second))
}

// round is half-up, so 2.5 becomes 3.
func round(v float64) int {
	return int(math.Floor(v + 0.5))
}
