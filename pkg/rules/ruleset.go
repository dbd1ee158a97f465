// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package rules

import (
	"strings"
)

// Event types understood by the scheduler.
const (
	EventTypeNetrunBonus = "netrun_bonus"
	EventTypeDrop        = "drop"
)

// Objective types understood by the daily contract engine.
const (
	ObjectiveChat   = "chat"
	ObjectiveNetrun = "netrun"
	ObjectiveOnline = "online"
)

// FallbackTitle is reported when no configured title matches.
const FallbackTitle = "Runner"

type Tier struct {
	Name            string
	CodeLength      int
	TimeoutSeconds  int
	Attempts        int
	Reward          int
	FailPenalty     int
	CooldownSeconds int
}

type Risk struct {
	Name                  string
	RewardMultiplier      float64
	CooldownMultiplier    float64
	TimeoutMultiplier     float64
	FailPenaltyMultiplier float64
	AttemptsMultiplier    float64
}

// StageRules controls how a multi-stage netrun escalates.
type StageRules struct {
	Count         int
	LengthDelta   int
	TimeoutDelta  int
	RewardBonus   int
	CooldownBonus int
}

// PerkDefinition carries per-rank modifiers. Multipliers are neutral (1.0)
// and additive fields zero when not configured.
type PerkDefinition struct {
	ID                   string
	Name                 string
	Description          string
	Cost                 int
	MaxRank              int
	CooldownMultiplier   float64
	RewardMultiplier     float64
	TimeoutMultiplier    float64
	AttemptBonus         int
	FailPenaltyReduction int
}

type EventDefinition struct {
	ID              string
	Name            string
	Description     string
	Type            string
	DurationSeconds int
	BonusCred       int
	DropCred        int
	MaxTriggers     int
}

type Title struct {
	Title   string
	MinCred int
}

type Objective struct {
	Type   string
	Target int
	Label  string
}

// Ruleset is the normalized, read-only view of a Document. A Ruleset is
// never mutated after Normalize returns it.
type Ruleset struct {
	Theme       Theme
	Prefix      string
	JoinMessage string
	Messages    Messages

	ChatCred                int
	ChatCredCooldownSeconds int
	ChatMinChars            int

	OnlineCred                int
	OnlineCredIntervalSeconds int

	DefaultTier string
	Tiers       []Tier
	DefaultRisk string
	Risks       []Risk
	Stages      StageRules

	CredTopLimit int
	Titles       []Title

	DailyEnabled             bool
	DailyReward              int
	DailyObjectivesPerDay    int
	DailyRandomizeObjectives bool
	DailyObjectivePool       []Objective

	PerksEnabled bool
	PerkSlots    int
	Perks        []PerkDefinition

	EventsEnabled        bool
	EventIntervalSeconds int
	EventChance          float64
	Events               []EventDefinition
}

// Tier resolves a tier by case-insensitive name. A blank name yields the
// configured default tier (or the first tier); an unknown name yields false.
func (r *Ruleset) Tier(name string) (Tier, bool) {
	if len(r.Tiers) == 0 {
		return Tier{}, false
	}
	requested := strings.TrimSpace(name)
	if requested == "" {
		requested = r.DefaultTier
		for _, tier := range r.Tiers {
			if strings.EqualFold(tier.Name, requested) {
				return tier, true
			}
		}
		return r.Tiers[0], true
	}
	for _, tier := range r.Tiers {
		if strings.EqualFold(tier.Name, requested) {
			return tier, true
		}
	}
	return Tier{}, false
}

// Risk resolves a risk profile with the same rules as Tier.
func (r *Ruleset) Risk(name string) (Risk, bool) {
	if len(r.Risks) == 0 {
		return Risk{}, false
	}
	requested := strings.TrimSpace(name)
	if requested == "" {
		requested = r.DefaultRisk
		for _, risk := range r.Risks {
			if strings.EqualFold(risk.Name, requested) {
				return risk, true
			}
		}
		return r.Risks[0], true
	}
	for _, risk := range r.Risks {
		if strings.EqualFold(risk.Name, requested) {
			return risk, true
		}
	}
	return Risk{}, false
}

// Perk finds a perk definition by id, ignoring case.
func (r *Ruleset) Perk(id string) (PerkDefinition, bool) {
	key := NormalizeID(id)
	if key == "" {
		return PerkDefinition{}, false
	}
	for _, def := range r.Perks {
		if def.ID == key {
			return def, true
		}
	}
	return PerkDefinition{}, false
}

func (r *Ruleset) TierNames() []string {
	names := make([]string, 0, len(r.Tiers))
	for _, tier := range r.Tiers {
		names = append(names, tier.Name)
	}
	return names
}

func (r *Ruleset) RiskNames() []string {
	names := make([]string, 0, len(r.Risks))
	for _, risk := range r.Risks {
		names = append(names, risk.Name)
	}
	return names
}

// TitleFor walks the titles in configured order and keeps the last one whose
// threshold the balance meets.
func (r *Ruleset) TitleFor(cred int) string {
	title := FallbackTitle
	for _, rank := range r.Titles {
		if cred >= rank.MinCred {
			title = rank.Title
		}
	}
	return title
}

// FormatMessage prepends the resolved chat prefix.
func (r *Ruleset) FormatMessage(message string) string {
	if strings.TrimSpace(r.Prefix) == "" {
		return message
	}
	return r.Prefix + " " + message
}

// NormalizeID trims and lower-cases a perk or event id.
func NormalizeID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}
