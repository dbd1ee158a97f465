// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package rules

import (
	"strings"

	"github.com/sirupsen/logrus"
)

const (
	defaultChatCred                = 1
	defaultChatCredCooldownSeconds = 30
	defaultChatMinChars            = 6
	defaultOnlineCred              = 1
	defaultOnlineCredInterval      = 300

	defaultCodeLength      = 4
	defaultTimeoutSeconds  = 20
	defaultAttempts        = 2
	defaultReward          = 5
	defaultFailPenalty     = 1
	defaultCooldownSeconds = 90

	defaultTierName = "easy"
	defaultRiskName = "standard"

	defaultStages             = 3
	defaultStageLengthDelta   = 1
	defaultStageTimeoutDelta  = 2
	defaultStageRewardBonus   = 3
	defaultStageCooldownBonus = 15

	defaultCredTopLimit = 5

	defaultDailyReward   = 8
	defaultDailyPerDay   = 3
	defaultPerkSlots     = 2
	defaultEventInterval = 600
	defaultEventChance   = 0.2

	minEventDurationSeconds = 30
)

// Defaults returns the normalized built-in ruleset.
func Defaults() *Ruleset {
	return Normalize(DefaultDocument())
}

// DefaultDocument returns a fully populated document, suitable for writing
// out as a starting config file.
func DefaultDocument() *Document {
	theme := ResolveTheme(DefaultThemeName)
	return &Document{
		Theme:       ptr(theme.Name),
		Prefix:      ptr(""),
		JoinMessage: ptr(""),

		ChatCred:                ptr(defaultChatCred),
		ChatCredCooldownSeconds: ptr(defaultChatCredCooldownSeconds),
		ChatMinChars:            ptr(defaultChatMinChars),

		OnlineCred:                ptr(defaultOnlineCred),
		OnlineCredIntervalSeconds: ptr(defaultOnlineCredInterval),

		NetrunCooldownSeconds: ptr(defaultCooldownSeconds),
		NetrunTimeoutSeconds:  ptr(defaultTimeoutSeconds),
		NetrunCodeLength:      ptr(defaultCodeLength),
		NetrunAttempts:        ptr(defaultAttempts),
		NetrunReward:          ptr(defaultReward),
		NetrunFailPenalty:     ptr(defaultFailPenalty),

		NetrunDefaultTier: ptr(defaultTierName),
		NetrunTiers:       defaultTierDocuments(defaultCodeLength),
		NetrunDefaultRisk: ptr(defaultRiskName),
		NetrunRisks:       defaultRiskDocuments(),

		NetrunStages:             ptr(defaultStages),
		NetrunStageLengthDelta:   ptr(defaultStageLengthDelta),
		NetrunStageTimeoutDelta:  ptr(defaultStageTimeoutDelta),
		NetrunStageRewardBonus:   ptr(defaultStageRewardBonus),
		NetrunStageCooldownBonus: ptr(defaultStageCooldownBonus),

		CredTopLimit: ptr(defaultCredTopLimit),
		Titles:       defaultTitleDocuments(),

		DailyEnabled:             ptr(true),
		DailyReward:              ptr(defaultDailyReward),
		DailyObjectivesPerDay:    ptr(defaultDailyPerDay),
		DailyRandomizeObjectives: ptr(false),
		DailyObjectivePool:       defaultObjectiveDocuments(),

		PerksEnabled: ptr(true),
		PerkSlots:    ptr(defaultPerkSlots),
		Perks:        defaultPerkDocuments(),

		EventsEnabled:        ptr(true),
		EventIntervalSeconds: ptr(defaultEventInterval),
		EventChance:          ptr(defaultEventChance),
		Events:               defaultEventDocuments(),

		NetrunStartLines:    append([]string(nil), theme.Messages.Start...),
		NetrunSuccessLines:  append([]string(nil), theme.Messages.Success...),
		NetrunFailLines:     append([]string(nil), theme.Messages.Fail...),
		NetrunCooldownLines: append([]string(nil), theme.Messages.Cooldown...),
		NetrunHintLines:     append([]string(nil), theme.Messages.Hint...),
	}
}

func defaultTierDocuments(codeLength int) []TierDocument {
	return []TierDocument{
		{Name: "easy", CodeLength: ptr(codeLength), TimeoutSeconds: ptr(25), Attempts: ptr(3), Reward: ptr(4), FailPenalty: ptr(0), CooldownSeconds: ptr(60)},
		{Name: "medium", CodeLength: ptr(5), TimeoutSeconds: ptr(20), Attempts: ptr(2), Reward: ptr(8), FailPenalty: ptr(1), CooldownSeconds: ptr(90)},
		{Name: "hard", CodeLength: ptr(6), TimeoutSeconds: ptr(18), Attempts: ptr(2), Reward: ptr(12), FailPenalty: ptr(2), CooldownSeconds: ptr(120)},
	}
}

func defaultRiskDocuments() []RiskDocument {
	return []RiskDocument{
		{Name: "low", RewardMultiplier: ptr(0.75), CooldownMultiplier: ptr(0.75), TimeoutMultiplier: ptr(1.25), FailPenaltyMultiplier: ptr(0.5), AttemptsMultiplier: ptr(1.5)},
		{Name: "standard", RewardMultiplier: ptr(1.0), CooldownMultiplier: ptr(1.0), TimeoutMultiplier: ptr(1.0), FailPenaltyMultiplier: ptr(1.0), AttemptsMultiplier: ptr(1.0)},
		{Name: "high", RewardMultiplier: ptr(1.5), CooldownMultiplier: ptr(1.25), TimeoutMultiplier: ptr(0.8), FailPenaltyMultiplier: ptr(2.0), AttemptsMultiplier: ptr(0.75)},
	}
}

func defaultTitleDocuments() []TitleDocument {
	return []TitleDocument{
		{Title: "Rookie", MinCred: ptr(0)},
		{Title: "Runner", MinCred: ptr(25)},
		{Title: "Wire Ghost", MinCred: ptr(50)},
		{Title: "Neon Phantom", MinCred: ptr(100)},
		{Title: "Legend", MinCred: ptr(200)},
	}
}

func defaultObjectiveDocuments() []ObjectiveDocument {
	return []ObjectiveDocument{
		{Type: ObjectiveChat, Target: ptr(5), Label: "Send {target} chat messages"},
		{Type: ObjectiveNetrun, Target: ptr(1), Label: "Complete {target} netrun"},
		{Type: ObjectiveOnline, Target: ptr(10), Label: "Stay online for {target} minutes"},
	}
}

func defaultPerkDocuments() []PerkDocument {
	return []PerkDocument{
		{ID: "ice_breaker", Name: "ICE Breaker", Description: "Slows the trace. +10% breach time per rank.", Cost: ptr(20), MaxRank: ptr(3), TimeoutMultiplier: ptr(1.1)},
		{ID: "ghost_protocol", Name: "Ghost Protocol", Description: "Cools the rig faster. -10% cooldown per rank.", Cost: ptr(25), MaxRank: ptr(3), CooldownMultiplier: ptr(0.9)},
		{ID: "cred_siphon", Name: "Cred Siphon", Description: "Skims extra payout. +10% reward per rank.", Cost: ptr(30), MaxRank: ptr(3), RewardMultiplier: ptr(1.1)},
		{ID: "spare_deck", Name: "Spare Deck", Description: "One more guess per rank.", Cost: ptr(35), MaxRank: ptr(2), AttemptBonus: ptr(1)},
		{ID: "trace_dampener", Name: "Trace Dampener", Description: "Absorbs 1 cred of fail penalty.", Cost: ptr(15), MaxRank: ptr(1), FailPenaltyReduction: ptr(1)},
	}
}

func defaultEventDocuments() []EventDocument {
	return []EventDocument{
		{ID: "overclock", Name: "Overclock Surge", Description: "Grid overclocked. Netrun payouts boosted.", Type: EventTypeNetrunBonus, DurationSeconds: ptr(300), BonusCred: ptr(5), DropCred: ptr(0), MaxTriggers: ptr(3)},
		{ID: "data_cache", Name: "Data Cache", Description: "An unguarded cache surfaced. Claim it before it fades.", Type: EventTypeDrop, DurationSeconds: ptr(180), BonusCred: ptr(0), DropCred: ptr(10), MaxTriggers: ptr(1)},
	}
}

// Normalize resolves every optional field of doc exactly once. Entries that
// cannot be used (blank names, unknown event types, duplicates) are dropped
// with a warning; the rest of the document is kept.
func Normalize(doc *Document) *Ruleset {
	if doc == nil {
		doc = &Document{}
	}

	theme := ResolveTheme(strOr(doc.Theme, DefaultThemeName))
	rs := &Ruleset{
		Theme:       theme,
		Prefix:      strOr(doc.Prefix, theme.Prefix),
		JoinMessage: strOr(doc.JoinMessage, theme.JoinMessage),
		Messages: Messages{
			Start:    linesOr(doc.NetrunStartLines, theme.Messages.Start),
			Success:  linesOr(doc.NetrunSuccessLines, theme.Messages.Success),
			Fail:     linesOr(doc.NetrunFailLines, theme.Messages.Fail),
			Cooldown: linesOr(doc.NetrunCooldownLines, theme.Messages.Cooldown),
			Hint:     linesOr(doc.NetrunHintLines, theme.Messages.Hint),
		},

		ChatCred:                intOr(doc.ChatCred, defaultChatCred),
		ChatCredCooldownSeconds: max(0, intOr(doc.ChatCredCooldownSeconds, defaultChatCredCooldownSeconds)),
		ChatMinChars:            max(0, intOr(doc.ChatMinChars, defaultChatMinChars)),

		OnlineCred:                intOr(doc.OnlineCred, defaultOnlineCred),
		OnlineCredIntervalSeconds: intOr(doc.OnlineCredIntervalSeconds, defaultOnlineCredInterval),

		DefaultTier: strings.TrimSpace(strOr(doc.NetrunDefaultTier, defaultTierName)),
		DefaultRisk: strings.TrimSpace(strOr(doc.NetrunDefaultRisk, defaultRiskName)),
		Stages: StageRules{
			Count:         max(1, intOr(doc.NetrunStages, defaultStages)),
			LengthDelta:   intOr(doc.NetrunStageLengthDelta, defaultStageLengthDelta),
			TimeoutDelta:  intOr(doc.NetrunStageTimeoutDelta, defaultStageTimeoutDelta),
			RewardBonus:   intOr(doc.NetrunStageRewardBonus, defaultStageRewardBonus),
			CooldownBonus: intOr(doc.NetrunStageCooldownBonus, defaultStageCooldownBonus),
		},

		CredTopLimit: intOr(doc.CredTopLimit, defaultCredTopLimit),

		DailyEnabled:             boolOr(doc.DailyEnabled, true),
		DailyReward:              max(0, intOr(doc.DailyReward, defaultDailyReward)),
		DailyObjectivesPerDay:    intOr(doc.DailyObjectivesPerDay, defaultDailyPerDay),
		DailyRandomizeObjectives: boolOr(doc.DailyRandomizeObjectives, false),

		PerksEnabled: boolOr(doc.PerksEnabled, true),
		PerkSlots:    max(0, intOr(doc.PerkSlots, defaultPerkSlots)),

		EventsEnabled:        boolOr(doc.EventsEnabled, true),
		EventIntervalSeconds: max(1, intOr(doc.EventIntervalSeconds, defaultEventInterval)),
		EventChance:          min(1, max(0, floatOr(doc.EventChance, defaultEventChance))),
	}

	legacy := Tier{
		CodeLength:      intOr(doc.NetrunCodeLength, defaultCodeLength),
		TimeoutSeconds:  intOr(doc.NetrunTimeoutSeconds, defaultTimeoutSeconds),
		Attempts:        intOr(doc.NetrunAttempts, defaultAttempts),
		Reward:          intOr(doc.NetrunReward, defaultReward),
		FailPenalty:     intOr(doc.NetrunFailPenalty, defaultFailPenalty),
		CooldownSeconds: intOr(doc.NetrunCooldownSeconds, defaultCooldownSeconds),
	}
	tierDocs := doc.NetrunTiers
	if len(tierDocs) == 0 {
		tierDocs = defaultTierDocuments(legacy.CodeLength)
	}
	rs.Tiers = normalizeTiers(tierDocs, legacy)
	if len(rs.Tiers) == 0 {
		rs.Tiers = normalizeTiers(defaultTierDocuments(legacy.CodeLength), legacy)
	}

	riskDocs := doc.NetrunRisks
	if len(riskDocs) == 0 {
		riskDocs = defaultRiskDocuments()
	}
	rs.Risks = normalizeRisks(riskDocs)
	if len(rs.Risks) == 0 {
		rs.Risks = normalizeRisks(defaultRiskDocuments())
	}

	titleDocs := doc.Titles
	if len(titleDocs) == 0 {
		titleDocs = defaultTitleDocuments()
	}
	for _, t := range titleDocs {
		if strings.TrimSpace(t.Title) == "" || t.MinCred == nil {
			continue
		}
		rs.Titles = append(rs.Titles, Title{Title: t.Title, MinCred: *t.MinCred})
	}

	poolDocs := doc.DailyObjectivePool
	if len(poolDocs) == 0 {
		poolDocs = defaultObjectiveDocuments()
	}
	for _, o := range poolDocs {
		rs.DailyObjectivePool = append(rs.DailyObjectivePool, Objective{
			Type:   strings.ToLower(strings.TrimSpace(o.Type)),
			Target: intOr(o.Target, 0),
			Label:  o.Label,
		})
	}

	perkDocs := doc.Perks
	if len(perkDocs) == 0 {
		perkDocs = defaultPerkDocuments()
	}
	rs.Perks = normalizePerks(perkDocs)

	eventDocs := doc.Events
	if len(eventDocs) == 0 {
		eventDocs = defaultEventDocuments()
	}
	rs.Events = normalizeEvents(eventDocs)

	return rs
}

func normalizeTiers(docs []TierDocument, legacy Tier) []Tier {
	seen := make(map[string]bool, len(docs))
	tiers := make([]Tier, 0, len(docs))
	for _, t := range docs {
		name := strings.TrimSpace(t.Name)
		key := strings.ToLower(name)
		if name == "" || seen[key] {
			logrus.Warnf("skipping netrun tier with blank or duplicate name %q", t.Name)
			continue
		}
		seen[key] = true
		tiers = append(tiers, Tier{
			Name:            name,
			CodeLength:      intOr(t.CodeLength, legacy.CodeLength),
			TimeoutSeconds:  intOr(t.TimeoutSeconds, legacy.TimeoutSeconds),
			Attempts:        intOr(t.Attempts, legacy.Attempts),
			Reward:          intOr(t.Reward, legacy.Reward),
			FailPenalty:     intOr(t.FailPenalty, legacy.FailPenalty),
			CooldownSeconds: intOr(t.CooldownSeconds, legacy.CooldownSeconds),
		})
	}
	return tiers
}

func normalizeRisks(docs []RiskDocument) []Risk {
	seen := make(map[string]bool, len(docs))
	risks := make([]Risk, 0, len(docs))
	for _, r := range docs {
		name := strings.TrimSpace(r.Name)
		key := strings.ToLower(name)
		if name == "" || seen[key] {
			logrus.Warnf("skipping netrun risk with blank or duplicate name %q", r.Name)
			continue
		}
		seen[key] = true
		risks = append(risks, Risk{
			Name:                  name,
			RewardMultiplier:      multiplierOr(r.RewardMultiplier),
			CooldownMultiplier:    multiplierOr(r.CooldownMultiplier),
			TimeoutMultiplier:     multiplierOr(r.TimeoutMultiplier),
			FailPenaltyMultiplier: multiplierOr(r.FailPenaltyMultiplier),
			AttemptsMultiplier:    multiplierOr(r.AttemptsMultiplier),
		})
	}
	return risks
}

func normalizePerks(docs []PerkDocument) []PerkDefinition {
	seen := make(map[string]bool, len(docs))
	perks := make([]PerkDefinition, 0, len(docs))
	for _, p := range docs {
		id := NormalizeID(p.ID)
		if id == "" || seen[id] {
			logrus.Warnf("skipping perk with blank or duplicate id %q", p.ID)
			continue
		}
		seen[id] = true
		name := p.Name
		if strings.TrimSpace(name) == "" {
			name = id
		}
		perks = append(perks, PerkDefinition{
			ID:                   id,
			Name:                 name,
			Description:          p.Description,
			Cost:                 max(0, intOr(p.Cost, 0)),
			MaxRank:              max(1, intOr(p.MaxRank, 1)),
			CooldownMultiplier:   multiplierOr(p.CooldownMultiplier),
			RewardMultiplier:     multiplierOr(p.RewardMultiplier),
			TimeoutMultiplier:    multiplierOr(p.TimeoutMultiplier),
			AttemptBonus:         intOr(p.AttemptBonus, 0),
			FailPenaltyReduction: intOr(p.FailPenaltyReduction, 0),
		})
	}
	return perks
}

func normalizeEvents(docs []EventDocument) []EventDefinition {
	seen := make(map[string]bool, len(docs))
	events := make([]EventDefinition, 0, len(docs))
	for _, e := range docs {
		id := NormalizeID(e.ID)
		eventType := strings.ToLower(strings.TrimSpace(e.Type))
		if id == "" || seen[id] {
			logrus.Warnf("skipping event with blank or duplicate id %q", e.ID)
			continue
		}
		if eventType != EventTypeNetrunBonus && eventType != EventTypeDrop {
			logrus.Warnf("skipping event %s with unknown type %q", id, e.Type)
			continue
		}
		seen[id] = true
		name := e.Name
		if strings.TrimSpace(name) == "" {
			name = id
		}
		maxTriggers := intOr(e.MaxTriggers, 1)
		if maxTriggers <= 0 {
			maxTriggers = 1
		}
		events = append(events, EventDefinition{
			ID:              id,
			Name:            name,
			Description:     e.Description,
			Type:            eventType,
			DurationSeconds: max(minEventDurationSeconds, intOr(e.DurationSeconds, 0)),
			BonusCred:       max(0, intOr(e.BonusCred, 0)),
			DropCred:        max(0, intOr(e.DropCred, 0)),
			MaxTriggers:     maxTriggers,
		})
	}
	return events
}

func ptr[T any](v T) *T {
	return &v
}

func intOr(v *int, fallback int) int {
	if v == nil {
		return fallback
	}
	return *v
}

func floatOr(v *float64, fallback float64) float64 {
	if v == nil {
		return fallback
	}
	return *v
}

func boolOr(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}

func strOr(v *string, fallback string) string {
	if v == nil || strings.TrimSpace(*v) == "" {
		return fallback
	}
	return *v
}

// multiplierOr treats an absent or non-positive multiplier as neutral.
func multiplierOr(v *float64) float64 {
	if v == nil || *v <= 0 {
		return 1.0
	}
	return *v
}

func linesOr(preferred, fallback []string) []string {
	if len(preferred) == 0 {
		return append([]string(nil), fallback...)
	}
	return append([]string(nil), preferred...)
}
