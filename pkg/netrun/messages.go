// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package netrun

import (
	"fmt"
	"strconv"
	"time"

	"github.com/AccelByte/extend-runner-economy/pkg/rules"
)

func sessionTokens(s Session, now time.Time) map[string]string {
	return map[string]string{
		"tier":    s.Tier.Name,
		"risk":    s.Risk.Name,
		"stage":   strconv.Itoa(s.Stage),
		"stages":  strconv.Itoa(s.TotalStages),
		"code":    s.Code,
		"seconds": strconv.Itoa(s.SecondsLeft(now)),
	}
}

func startLines(rs *rules.Ruleset, s Session, now time.Time) []string {
	return rules.Render(rs.Messages.Start, sessionTokens(s, now))
}

func hintLines(rs *rules.Ruleset, s Session, now time.Time) []string {
	return rules.Render(rs.Messages.Hint, sessionTokens(s, now))
}

func successLines(rs *rules.Ruleset, s Session, cred, streak int) []string {
	return rules.Render(rs.Messages.Success, map[string]string{
		"tier":     s.Tier.Name,
		"risk":     s.Risk.Name,
		"cred":     strconv.Itoa(cred),
		"streak":   strconv.Itoa(streak),
		"cooldown": strconv.Itoa(s.TotalCooldownSeconds()),
	})
}

func deniedLines(s Session) []string {
	return []string{fmt.Sprintf("Access denied. Attempts left: %d.", s.AttemptsRemaining)}
}

// failLines appends the cred loss when anything was actually debited.
func failLines(rs *rules.Ruleset, s Session, penalty int) []string {
	lines := rules.Render(rs.Messages.Fail, map[string]string{
		"tier":     s.Tier.Name,
		"risk":     s.Risk.Name,
		"cooldown": strconv.Itoa(s.TotalCooldownSeconds()),
	})
	if penalty > 0 {
		lines = append(lines, fmt.Sprintf("Street Cred lost: -%d.", penalty))
	}
	return lines
}

func cooldownLines(rs *rules.Ruleset, remaining time.Duration) []string {
	return rules.Render(rs.Messages.Cooldown, map[string]string{
		"cooldown": strconv.Itoa(CooldownSeconds(remaining)),
	})
}

// CooldownSeconds is the whole-second figure shown to players. A running
// cooldown never shows as 0.
func CooldownSeconds(remaining time.Duration) int {
	if remaining <= 0 {
		return 0
	}
	return max(1, int(remaining/time.Second))
}
