// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package ledger

import (
	"strings"
	"time"
)

// Record holds every persisted fact about one player.
type Record struct {
	Cred             int    `json:"cred"`
	NetrunWins       int    `json:"netrunWins"`
	NetrunFails      int    `json:"netrunFails"`
	NetrunStreak     int    `json:"netrunStreak"`
	NetrunBestStreak int    `json:"netrunBestStreak"`
	Name             string `json:"name,omitempty"`

	DailyChatCount     int            `json:"dailyChatCount"`
	DailyNetrunWins    int            `json:"dailyNetrunWins"`
	DailyOnlineSeconds int            `json:"dailyOnlineSeconds"`
	DailyContract      *DailyContract `json:"dailyContract,omitempty"`

	Perks       PerkLoadout  `json:"perks"`
	ActiveEvent *ActiveEvent `json:"activeEvent,omitempty"`
}

// DailyContract is the set of objectives chosen for one calendar date.
type DailyContract struct {
	Date       string      `json:"date"`
	Reward     int         `json:"reward"`
	Objectives []Objective `json:"objectives"`
	Claimed    bool        `json:"claimed"`
}

type Objective struct {
	Type   string `json:"type"`
	Target int    `json:"target"`
	Label  string `json:"label,omitempty"`
}

// PerkLoadout maps perk id to owned rank; Active keeps equip order.
type PerkLoadout struct {
	Owned  map[string]int `json:"owned,omitempty"`
	Active []string       `json:"active,omitempty"`
}

// ActiveEvent is an instantiated event. It is logically absent once expired
// or out of uses; readers apply that check lazily.
type ActiveEvent struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	Type          string    `json:"type"`
	ExpiresAt     time.Time `json:"expiresAt"`
	BonusCred     int       `json:"bonusCred"`
	DropCred      int       `json:"dropCred"`
	UsesRemaining int       `json:"usesRemaining"`
}

// Live reports whether the event still counts at now.
func (e *ActiveEvent) Live(now time.Time) bool {
	return e != nil && e.UsesRemaining > 0 && now.Before(e.ExpiresAt)
}

// Stats is the netrun scoreboard for a player.
type Stats struct {
	Wins       int
	Fails      int
	Streak     int
	BestStreak int
}

// AddCred applies delta and floors the balance at zero. Debt is not tracked.
func (r *Record) AddCred(delta int) int {
	r.Cred = max(0, r.Cred+delta)
	return r.Cred
}

func (r *Record) SetCred(amount int) int {
	r.Cred = max(0, amount)
	return r.Cred
}

// RecordWin bumps wins, streak, best streak and the daily win counter and
// returns the new streak.
func (r *Record) RecordWin() int {
	r.NetrunWins++
	r.NetrunStreak++
	r.NetrunBestStreak = max(r.NetrunBestStreak, r.NetrunStreak)
	r.DailyNetrunWins++
	return r.NetrunStreak
}

func (r *Record) RecordFail() {
	r.NetrunFails++
	r.NetrunStreak = 0
}

func (r *Record) Stats() Stats {
	return Stats{
		Wins:       r.NetrunWins,
		Fails:      r.NetrunFails,
		Streak:     r.NetrunStreak,
		BestStreak: r.NetrunBestStreak,
	}
}

// Clone returns a deep copy.
func (r *Record) Clone() *Record {
	c := *r
	if r.DailyContract != nil {
		contract := *r.DailyContract
		contract.Objectives = append([]Objective(nil), r.DailyContract.Objectives...)
		c.DailyContract = &contract
	}
	if r.Perks.Owned != nil {
		c.Perks.Owned = make(map[string]int, len(r.Perks.Owned))
		for id, rank := range r.Perks.Owned {
			c.Perks.Owned[id] = rank
		}
	}
	c.Perks.Active = append([]string(nil), r.Perks.Active...)
	if r.ActiveEvent != nil {
		ev := *r.ActiveEvent
		c.ActiveEvent = &ev
	}
	return &c
}

// normalize repairs values a hand-edited data file may carry.
func (r *Record) normalize() {
	r.Cred = max(0, r.Cred)
	r.NetrunWins = max(0, r.NetrunWins)
	r.NetrunFails = max(0, r.NetrunFails)
	r.NetrunStreak = max(0, r.NetrunStreak)
	r.NetrunBestStreak = max(r.NetrunBestStreak, r.NetrunStreak)
	r.DailyChatCount = max(0, r.DailyChatCount)
	r.DailyNetrunWins = max(0, r.DailyNetrunWins)
	r.DailyOnlineSeconds = max(0, r.DailyOnlineSeconds)

	if len(r.Perks.Owned) > 0 {
		owned := make(map[string]int, len(r.Perks.Owned))
		for id, rank := range r.Perks.Owned {
			if key := strings.ToLower(strings.TrimSpace(id)); key != "" && rank > 0 {
				owned[key] = max(owned[key], rank)
			}
		}
		r.Perks.Owned = owned
	}
	active := r.Perks.Active[:0]
	seen := make(map[string]bool, len(r.Perks.Active))
	for _, id := range r.Perks.Active {
		key := strings.ToLower(strings.TrimSpace(id))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		active = append(active, key)
	}
	r.Perks.Active = active
}
