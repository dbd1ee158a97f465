// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package perk

import (
	"github.com/AccelByte/extend-runner-economy/pkg/ledger"
	"github.com/AccelByte/extend-runner-economy/pkg/metrics"
	"github.com/AccelByte/extend-runner-economy/pkg/rules"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type Status string

const (
	StatusDisabled        Status = "DISABLED"
	StatusNotFound        Status = "NOT_FOUND"
	StatusMaxed           Status = "MAXED"
	StatusInsufficient    Status = "INSUFFICIENT"
	StatusPurchased       Status = "PURCHASED"
	StatusNotOwned        Status = "NOT_OWNED"
	StatusAlreadyEquipped Status = "ALREADY_EQUIPPED"
	StatusNoSlots         Status = "NO_SLOTS"
	StatusEquipped        Status = "EQUIPPED"
	StatusNotEquipped     Status = "NOT_EQUIPPED"
	StatusUnequipped      Status = "UNEQUIPPED"
)

// PurchaseResult reports a purchase attempt. Cost is the price that was
// charged, or would have been for INSUFFICIENT.
type PurchaseResult struct {
	Status   Status
	PerkID   string
	Rank     int
	Cost     int
	Equipped bool
}

type EquipResult struct {
	Status Status
	PerkID string
}

// CatalogEntry describes one perk from a player's point of view.
type CatalogEntry struct {
	Definition rules.PerkDefinition
	Rank       int
	NextCost   int
	Maxed      bool
	Equipped   bool
}

// Economy prices, sells and equips perks against the ledger.
type Economy struct {
	ledger *ledger.Ledger
	rules  *rules.Resolver
}

func NewEconomy(l *ledger.Ledger, resolver *rules.Resolver) *Economy {
	return &Economy{ledger: l, rules: resolver}
}

func (e *Economy) Rank(playerID uuid.UUID, perkID string) int {
	var rank int
	e.ledger.View(playerID, func(r *ledger.Record) { rank = Rank(r, perkID) })
	return rank
}

// Purchase buys the next rank of a perk.
func (e *Economy) Purchase(playerID uuid.UUID, perkID string) PurchaseResult {
	rs := e.rules.Current()
	var result PurchaseResult
	e.ledger.Update(playerID, func(r *ledger.Record) {
		result = Purchase(rs, r, perkID)
	})
	if result.Status == StatusPurchased {
		metrics.PerkPurchasesTotal.WithLabelValues(result.PerkID).Inc()
		metrics.Spend(metrics.SourcePerk, result.Cost)
		logrus.Debugf("player %s bought perk %s rank %d for %d cred", playerID, result.PerkID, result.Rank, result.Cost)
	}
	return result
}

func (e *Economy) Equip(playerID uuid.UUID, perkID string) EquipResult {
	rs := e.rules.Current()
	var result EquipResult
	e.ledger.Update(playerID, func(r *ledger.Record) {
		result = Equip(rs, r, perkID)
	})
	return result
}

func (e *Economy) Unequip(playerID uuid.UUID, perkID string) EquipResult {
	rs := e.rules.Current()
	var result EquipResult
	e.ledger.Update(playerID, func(r *ledger.Record) {
		result = Unequip(rs, r, perkID)
	})
	return result
}

// Active lists the player's equipped perks that still resolve to a definition.
func (e *Economy) Active(playerID uuid.UUID) []rules.PerkDefinition {
	rs := e.rules.Current()
	var defs []rules.PerkDefinition
	e.ledger.View(playerID, func(r *ledger.Record) {
		for _, id := range r.Perks.Active {
			if def, ok := rs.Perk(id); ok {
				defs = append(defs, def)
			}
		}
	})
	return defs
}

func (e *Economy) Catalog(playerID uuid.UUID) []CatalogEntry {
	rs := e.rules.Current()
	entries := make([]CatalogEntry, 0, len(rs.Perks))
	e.ledger.View(playerID, func(r *ledger.Record) {
		for _, def := range rs.Perks {
			rank := Rank(r, def.ID)
			entries = append(entries, CatalogEntry{
				Definition: def,
				Rank:       rank,
				NextCost:   NextCost(def, rank),
				Maxed:      rank >= def.MaxRank,
				Equipped:   IsActive(r, def.ID),
			})
		}
	})
	return entries
}

func (e *Economy) Effects(playerID uuid.UUID) Effects {
	rs := e.rules.Current()
	var effects Effects
	e.ledger.View(playerID, func(r *ledger.Record) { effects = Compute(rs, r) })
	return effects
}

// Purchase applies a purchase to a locked record. Auto-equip happens only if
// the perk is not active and a slot is free; a slot count of 0 is unlimited
// here.
func Purchase(rs *rules.Ruleset, r *ledger.Record, perkID string) PurchaseResult {
	if !rs.PerksEnabled {
		return PurchaseResult{Status: StatusDisabled}
	}
	def, ok := rs.Perk(perkID)
	if !ok {
		return PurchaseResult{Status: StatusNotFound, PerkID: rules.NormalizeID(perkID)}
	}
	rank := Rank(r, def.ID)
	if rank >= def.MaxRank {
		return PurchaseResult{Status: StatusMaxed, PerkID: def.ID, Rank: rank}
	}
	cost := NextCost(def, rank)
	if r.Cred < cost {
		return PurchaseResult{Status: StatusInsufficient, PerkID: def.ID, Rank: rank, Cost: cost}
	}

	r.AddCred(-cost)
	if r.Perks.Owned == nil {
		r.Perks.Owned = make(map[string]int)
	}
	r.Perks.Owned[def.ID] = rank + 1

	equipped := false
	if !IsActive(r, def.ID) && (rs.PerkSlots <= 0 || len(r.Perks.Active) < rs.PerkSlots) {
		r.Perks.Active = append(r.Perks.Active, def.ID)
		equipped = true
	}
	return PurchaseResult{Status: StatusPurchased, PerkID: def.ID, Rank: rank + 1, Cost: cost, Equipped: equipped}
}

// Equip enforces the configured slot count literally: 0 slots means none.
func Equip(rs *rules.Ruleset, r *ledger.Record, perkID string) EquipResult {
	if !rs.PerksEnabled {
		return EquipResult{Status: StatusDisabled}
	}
	def, ok := rs.Perk(perkID)
	if !ok {
		return EquipResult{Status: StatusNotFound, PerkID: rules.NormalizeID(perkID)}
	}
	if Rank(r, def.ID) <= 0 {
		return EquipResult{Status: StatusNotOwned, PerkID: def.ID}
	}
	if IsActive(r, def.ID) {
		return EquipResult{Status: StatusAlreadyEquipped, PerkID: def.ID}
	}
	if len(r.Perks.Active) >= rs.PerkSlots {
		return EquipResult{Status: StatusNoSlots, PerkID: def.ID}
	}
	r.Perks.Active = append(r.Perks.Active, def.ID)
	return EquipResult{Status: StatusEquipped, PerkID: def.ID}
}

func Unequip(rs *rules.Ruleset, r *ledger.Record, perkID string) EquipResult {
	if !rs.PerksEnabled {
		return EquipResult{Status: StatusDisabled}
	}
	key := rules.NormalizeID(perkID)
	// An id dropped from the rules by a reload can still be unequipped.
	if _, ok := rs.Perk(key); !ok && !IsActive(r, key) {
		return EquipResult{Status: StatusNotFound, PerkID: key}
	}
	for i, id := range r.Perks.Active {
		if id == key {
			r.Perks.Active = append(r.Perks.Active[:i], r.Perks.Active[i+1:]...)
			return EquipResult{Status: StatusUnequipped, PerkID: key}
		}
	}
	return EquipResult{Status: StatusNotEquipped, PerkID: key}
}
