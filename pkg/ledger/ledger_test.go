// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package ledger

import (
	"sync"
	"testing"

	"github.com/google/uuid"
)

func TestLedger_CredNeverNegative(t *testing.T) {
	l := New()
	id := uuid.New()

	steps := []struct {
		name     string
		apply    func() int
		expected int
	}{
		{"add 10", func() int { return l.AddCred(id, 10) }, 10},
		{"debit 4", func() int { return l.AddCred(id, -4) }, 6},
		{"overdraw", func() int { return l.AddCred(id, -50) }, 0},
		{"set negative", func() int { return l.SetCred(id, -3) }, 0},
		{"set 7", func() int { return l.SetCred(id, 7) }, 7},
		{"debit to zero", func() int { return l.AddCred(id, -7) }, 0},
	}

	for _, step := range steps {
		if got := step.apply(); got != step.expected {
			t.Errorf("%s: balance = %d, expected %d", step.name, got, step.expected)
		}
		if l.Cred(id) < 0 {
			t.Fatalf("%s: balance went negative", step.name)
		}
	}
}

func TestLedger_WinsAndFails(t *testing.T) {
	l := New()
	id := uuid.New()

	l.RecordWin(id)
	l.RecordWin(id)
	if streak := l.RecordWin(id); streak != 3 {
		t.Errorf("RecordWin() streak = %d, expected 3", streak)
	}
	l.RecordFail(id)
	l.RecordWin(id)

	stats := l.Stats(id)
	if stats.Wins != 4 || stats.Fails != 1 || stats.Streak != 1 || stats.BestStreak != 3 {
		t.Errorf("Stats() = %+v, expected wins 4 fails 1 streak 1 best 3", stats)
	}

	var dailyWins int
	l.View(id, func(r *Record) { dailyWins = r.DailyNetrunWins })
	if dailyWins != 4 {
		t.Errorf("DailyNetrunWins = %d, expected 4", dailyWins)
	}
}

func TestLedger_TopCred(t *testing.T) {
	l := New()
	a, b, c, d := uuid.New(), uuid.New(), uuid.New(), uuid.New()
	l.SetCred(a, 10)
	l.SetCred(b, 30)
	l.SetCred(c, 20)
	l.SetCred(d, 5)

	top := l.TopCred(3)
	if len(top) != 3 {
		t.Fatalf("TopCred(3) returned %d entries", len(top))
	}
	expected := []uuid.UUID{b, c, a}
	for i, id := range expected {
		if top[i].ID != id {
			t.Errorf("TopCred(3)[%d] = %s, expected %s", i, top[i].ID, id)
		}
	}

	if all := l.TopCred(0); len(all) != 4 {
		t.Errorf("TopCred(0) returned %d entries, expected all 4", len(all))
	}
}

func TestLedger_TopCredTiesKeepInsertionOrder(t *testing.T) {
	l := New()
	first, second, third := uuid.New(), uuid.New(), uuid.New()
	l.SetCred(first, 5)
	l.SetCred(second, 5)
	l.SetCred(third, 9)

	top := l.TopCred(-1)
	if top[0].ID != third || top[1].ID != first || top[2].ID != second {
		t.Errorf("TopCred() order = %v, expected third, first, second", top)
	}
}

func TestLedger_NameFallback(t *testing.T) {
	l := New()
	id := uuid.MustParse("abcdef12-0000-0000-0000-000000000000")

	if got := l.Name(id); got != "Runner-abcdef" {
		t.Errorf("Name() = %s, expected Runner-abcdef", got)
	}
	l.RecordName(id, "   ")
	if got := l.Name(id); got != "Runner-abcdef" {
		t.Errorf("blank RecordName() should be ignored, got %s", got)
	}
	l.RecordName(id, "Case")
	if got := l.Name(id); got != "Case" {
		t.Errorf("Name() = %s, expected Case", got)
	}
}

func TestLedger_ViewDoesNotCreate(t *testing.T) {
	l := New()
	id := uuid.New()

	l.View(id, func(r *Record) { r.Cred = 99 })
	if l.Len() != 0 {
		t.Errorf("View() created a record")
	}
	if l.Cred(id) != 0 {
		t.Errorf("Cred() = %d, expected 0 for unknown player", l.Cred(id))
	}
}

func TestLedger_ConcurrentUpdates(t *testing.T) {
	l := New()
	id := uuid.New()
	other := uuid.New()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			l.AddCred(id, 2)
		}()
		go func() {
			defer wg.Done()
			l.AddCred(other, 1)
			_ = l.Snapshot()
		}()
	}
	wg.Wait()

	if got := l.Cred(id); got != 100 {
		t.Errorf("Cred(id) = %d, expected 100", got)
	}
	if got := l.Cred(other); got != 50 {
		t.Errorf("Cred(other) = %d, expected 50", got)
	}
}

func TestLedger_SnapshotIsDeepCopy(t *testing.T) {
	l := New()
	id := uuid.New()
	l.Update(id, func(r *Record) {
		r.Cred = 12
		r.Perks.Owned = map[string]int{"ice_breaker": 1}
		r.Perks.Active = []string{"ice_breaker"}
		r.DailyContract = &DailyContract{Date: "2026-01-02", Objectives: []Objective{{Type: "chat", Target: 5}}}
	})

	doc := l.Snapshot()
	snap := doc.Players[id.String()]
	snap.Cred = 0
	snap.Perks.Owned["ice_breaker"] = 3
	snap.DailyContract.Objectives[0].Target = 1

	l.View(id, func(r *Record) {
		if r.Cred != 12 || r.Perks.Owned["ice_breaker"] != 1 || r.DailyContract.Objectives[0].Target != 5 {
			t.Errorf("mutating the snapshot changed the ledger: %+v", r)
		}
	})
}

func TestLedger_Restore(t *testing.T) {
	id := uuid.New()
	doc := &Document{Players: map[string]*Record{
		id.String():  {Cred: -4, NetrunStreak: 2, Perks: PerkLoadout{Owned: map[string]int{"ICE_Breaker": 2}, Active: []string{"ICE_Breaker", "ice_breaker"}}},
		"not-a-uuid": {Cred: 50},
	}}

	l := New()
	l.SetCred(uuid.New(), 1)
	l.Restore(doc)

	if l.Len() != 1 {
		t.Fatalf("Len() = %d, expected 1 after Restore", l.Len())
	}
	l.View(id, func(r *Record) {
		if r.Cred != 0 {
			t.Errorf("Cred = %d, expected clamp to 0", r.Cred)
		}
		if r.NetrunBestStreak != 2 {
			t.Errorf("NetrunBestStreak = %d, expected 2", r.NetrunBestStreak)
		}
		if r.Perks.Owned["ice_breaker"] != 2 || len(r.Perks.Active) != 1 || r.Perks.Active[0] != "ice_breaker" {
			t.Errorf("Perks = %+v, expected lower-cased unique ids", r.Perks)
		}
	})
}

func TestLedger_OnlinePlayers(t *testing.T) {
	l := New()
	a, b := uuid.New(), uuid.New()
	l.MarkOnline(a)
	l.MarkOnline(b)
	l.MarkOffline(a)

	online := l.OnlinePlayers()
	if len(online) != 1 || online[0] != b {
		t.Errorf("OnlinePlayers() = %v, expected [%s]", online, b)
	}
	if l.IsOnline(a) {
		t.Error("IsOnline(a) should be false after MarkOffline")
	}
}
