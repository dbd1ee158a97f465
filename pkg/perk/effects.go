// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package perk

import (
	"github.com/AccelByte/extend-runner-economy/pkg/ledger"
	"github.com/AccelByte/extend-runner-economy/pkg/rules"
)

// Effects is the folded modifier set of a player's equipped perks.
type Effects struct {
	CooldownMultiplier   float64
	RewardMultiplier     float64
	TimeoutMultiplier    float64
	AttemptBonus         int
	FailPenaltyReduction int
}

// Neutral returns effects that change nothing.
func Neutral() Effects {
	return Effects{
		CooldownMultiplier: 1.0,
		RewardMultiplier:   1.0,
		TimeoutMultiplier:  1.0,
	}
}

// Compute folds every equipped and owned perk once per owned rank:
// multipliers compound, additive fields sum. Unknown or unowned ids in the
// active list contribute nothing.
func Compute(rs *rules.Ruleset, r *ledger.Record) Effects {
	effects := Neutral()
	if !rs.PerksEnabled {
		return effects
	}
	for _, id := range r.Perks.Active {
		rank := Rank(r, id)
		if rank <= 0 {
			continue
		}
		def, ok := rs.Perk(id)
		if !ok {
			continue
		}
		for i := 0; i < rank; i++ {
			effects.CooldownMultiplier *= def.CooldownMultiplier
			effects.RewardMultiplier *= def.RewardMultiplier
			effects.TimeoutMultiplier *= def.TimeoutMultiplier
			effects.AttemptBonus += def.AttemptBonus
			effects.FailPenaltyReduction += def.FailPenaltyReduction
		}
	}
	return effects
}

// Rank is the owned rank of a perk, 0 if never purchased.
func Rank(r *ledger.Record, id string) int {
	if r.Perks.Owned == nil {
		return 0
	}
	return r.Perks.Owned[rules.NormalizeID(id)]
}

// NextCost is the price of the rank after current.
func NextCost(def rules.PerkDefinition, current int) int {
	return def.Cost * (current + 1)
}

// IsActive reports whether id is in the player's loadout.
func IsActive(r *ledger.Record, id string) bool {
	key := rules.NormalizeID(id)
	for _, active := range r.Perks.Active {
		if active == key {
			return true
		}
	}
	return false
}
