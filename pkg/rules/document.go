// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package rules

// Document is the on-disk shape of the ruleset. Every field is optional;
// Normalize fills whatever is missing from the built-in defaults.
//
// ============================================================
// DEVELOPER: Adding a new tunable
// ============================================================
// 1. Add an optional field here (pointer or slice) with both json
//    and yaml tags using the same camelCase key.
// 2. Add the concrete field to Ruleset and its default in defaults.go.
// 3. Resolve it in Normalize and emit it in DefaultDocument.
// ============================================================
type Document struct {
	Theme       *string `json:"theme,omitempty" yaml:"theme,omitempty"`
	Prefix      *string `json:"prefix,omitempty" yaml:"prefix,omitempty"`
	JoinMessage *string `json:"joinMessage,omitempty" yaml:"joinMessage,omitempty"`

	ChatCred                *int `json:"chatCred,omitempty" yaml:"chatCred,omitempty"`
	ChatCredCooldownSeconds *int `json:"chatCredCooldownSeconds,omitempty" yaml:"chatCredCooldownSeconds,omitempty"`
	ChatMinChars            *int `json:"chatMinChars,omitempty" yaml:"chatMinChars,omitempty"`

	OnlineCred                *int `json:"onlineCred,omitempty" yaml:"onlineCred,omitempty"`
	OnlineCredIntervalSeconds *int `json:"onlineCredIntervalSeconds,omitempty" yaml:"onlineCredIntervalSeconds,omitempty"`

	// Legacy single-tier values. They seed any tier field left unset.
	NetrunCooldownSeconds *int `json:"netrunCooldownSeconds,omitempty" yaml:"netrunCooldownSeconds,omitempty"`
	NetrunTimeoutSeconds  *int `json:"netrunTimeoutSeconds,omitempty" yaml:"netrunTimeoutSeconds,omitempty"`
	NetrunCodeLength      *int `json:"netrunCodeLength,omitempty" yaml:"netrunCodeLength,omitempty"`
	NetrunAttempts        *int `json:"netrunAttempts,omitempty" yaml:"netrunAttempts,omitempty"`
	NetrunReward          *int `json:"netrunReward,omitempty" yaml:"netrunReward,omitempty"`
	NetrunFailPenalty     *int `json:"netrunFailPenalty,omitempty" yaml:"netrunFailPenalty,omitempty"`

	NetrunDefaultTier *string        `json:"netrunDefaultTier,omitempty" yaml:"netrunDefaultTier,omitempty"`
	NetrunTiers       []TierDocument `json:"netrunTiers,omitempty" yaml:"netrunTiers,omitempty"`
	NetrunDefaultRisk *string        `json:"netrunDefaultRisk,omitempty" yaml:"netrunDefaultRisk,omitempty"`
	NetrunRisks       []RiskDocument `json:"netrunRisks,omitempty" yaml:"netrunRisks,omitempty"`

	NetrunStages             *int `json:"netrunStages,omitempty" yaml:"netrunStages,omitempty"`
	NetrunStageLengthDelta   *int `json:"netrunStageLengthDelta,omitempty" yaml:"netrunStageLengthDelta,omitempty"`
	NetrunStageTimeoutDelta  *int `json:"netrunStageTimeoutDelta,omitempty" yaml:"netrunStageTimeoutDelta,omitempty"`
	NetrunStageRewardBonus   *int `json:"netrunStageRewardBonus,omitempty" yaml:"netrunStageRewardBonus,omitempty"`
	NetrunStageCooldownBonus *int `json:"netrunStageCooldownBonus,omitempty" yaml:"netrunStageCooldownBonus,omitempty"`

	CredTopLimit *int            `json:"credTopLimit,omitempty" yaml:"credTopLimit,omitempty"`
	Titles       []TitleDocument `json:"titles,omitempty" yaml:"titles,omitempty"`

	DailyEnabled             *bool               `json:"dailyEnabled,omitempty" yaml:"dailyEnabled,omitempty"`
	DailyReward              *int                `json:"dailyReward,omitempty" yaml:"dailyReward,omitempty"`
	DailyObjectivesPerDay    *int                `json:"dailyObjectivesPerDay,omitempty" yaml:"dailyObjectivesPerDay,omitempty"`
	DailyRandomizeObjectives *bool               `json:"dailyRandomizeObjectives,omitempty" yaml:"dailyRandomizeObjectives,omitempty"`
	DailyObjectivePool       []ObjectiveDocument `json:"dailyObjectivePool,omitempty" yaml:"dailyObjectivePool,omitempty"`

	PerksEnabled *bool          `json:"perksEnabled,omitempty" yaml:"perksEnabled,omitempty"`
	PerkSlots    *int           `json:"perkSlots,omitempty" yaml:"perkSlots,omitempty"`
	Perks        []PerkDocument `json:"perks,omitempty" yaml:"perks,omitempty"`

	EventsEnabled        *bool           `json:"eventsEnabled,omitempty" yaml:"eventsEnabled,omitempty"`
	EventIntervalSeconds *int            `json:"eventIntervalSeconds,omitempty" yaml:"eventIntervalSeconds,omitempty"`
	EventChance          *float64        `json:"eventChance,omitempty" yaml:"eventChance,omitempty"`
	Events               []EventDocument `json:"events,omitempty" yaml:"events,omitempty"`

	NetrunStartLines    []string `json:"netrunStartLines,omitempty" yaml:"netrunStartLines,omitempty"`
	NetrunSuccessLines  []string `json:"netrunSuccessLines,omitempty" yaml:"netrunSuccessLines,omitempty"`
	NetrunFailLines     []string `json:"netrunFailLines,omitempty" yaml:"netrunFailLines,omitempty"`
	NetrunCooldownLines []string `json:"netrunCooldownLines,omitempty" yaml:"netrunCooldownLines,omitempty"`
	NetrunHintLines     []string `json:"netrunHintLines,omitempty" yaml:"netrunHintLines,omitempty"`
}

type TierDocument struct {
	Name            string `json:"name" yaml:"name"`
	CodeLength      *int   `json:"codeLength,omitempty" yaml:"codeLength,omitempty"`
	TimeoutSeconds  *int   `json:"timeoutSeconds,omitempty" yaml:"timeoutSeconds,omitempty"`
	Attempts        *int   `json:"attempts,omitempty" yaml:"attempts,omitempty"`
	Reward          *int   `json:"reward,omitempty" yaml:"reward,omitempty"`
	FailPenalty     *int   `json:"failPenalty,omitempty" yaml:"failPenalty,omitempty"`
	CooldownSeconds *int   `json:"cooldownSeconds,omitempty" yaml:"cooldownSeconds,omitempty"`
}

type RiskDocument struct {
	Name                  string   `json:"name" yaml:"name"`
	RewardMultiplier      *float64 `json:"rewardMultiplier,omitempty" yaml:"rewardMultiplier,omitempty"`
	CooldownMultiplier    *float64 `json:"cooldownMultiplier,omitempty" yaml:"cooldownMultiplier,omitempty"`
	TimeoutMultiplier     *float64 `json:"timeoutMultiplier,omitempty" yaml:"timeoutMultiplier,omitempty"`
	FailPenaltyMultiplier *float64 `json:"failPenaltyMultiplier,omitempty" yaml:"failPenaltyMultiplier,omitempty"`
	AttemptsMultiplier    *float64 `json:"attemptsMultiplier,omitempty" yaml:"attemptsMultiplier,omitempty"`
}

type TitleDocument struct {
	Title   string `json:"title" yaml:"title"`
	MinCred *int   `json:"minCred,omitempty" yaml:"minCred,omitempty"`
}

type ObjectiveDocument struct {
	Type   string `json:"type" yaml:"type"`
	Target *int   `json:"target,omitempty" yaml:"target,omitempty"`
	Label  string `json:"label,omitempty" yaml:"label,omitempty"`
}

type PerkDocument struct {
	ID                   string   `json:"id" yaml:"id"`
	Name                 string   `json:"name,omitempty" yaml:"name,omitempty"`
	Description          string   `json:"description,omitempty" yaml:"description,omitempty"`
	Cost                 *int     `json:"cost,omitempty" yaml:"cost,omitempty"`
	MaxRank              *int     `json:"maxRank,omitempty" yaml:"maxRank,omitempty"`
	CooldownMultiplier   *float64 `json:"cooldownMultiplier,omitempty" yaml:"cooldownMultiplier,omitempty"`
	RewardMultiplier     *float64 `json:"rewardMultiplier,omitempty" yaml:"rewardMultiplier,omitempty"`
	TimeoutMultiplier    *float64 `json:"timeoutMultiplier,omitempty" yaml:"timeoutMultiplier,omitempty"`
	AttemptBonus         *int     `json:"attemptBonus,omitempty" yaml:"attemptBonus,omitempty"`
	FailPenaltyReduction *int     `json:"failPenaltyReduction,omitempty" yaml:"failPenaltyReduction,omitempty"`
}

type EventDocument struct {
	ID              string `json:"id" yaml:"id"`
	Name            string `json:"name,omitempty" yaml:"name,omitempty"`
	Description     string `json:"description,omitempty" yaml:"description,omitempty"`
	Type            string `json:"type" yaml:"type"`
	DurationSeconds *int   `json:"durationSeconds,omitempty" yaml:"durationSeconds,omitempty"`
	BonusCred       *int   `json:"bonusCred,omitempty" yaml:"bonusCred,omitempty"`
	DropCred        *int   `json:"dropCred,omitempty" yaml:"dropCred,omitempty"`
	MaxTriggers     *int   `json:"maxTriggers,omitempty" yaml:"maxTriggers,omitempty"`
}
