// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package event

import (
	"testing"
	"time"

	"github.com/AccelByte/extend-runner-economy/pkg/ledger"
	"github.com/AccelByte/extend-runner-economy/pkg/rules"

	"github.com/google/uuid"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

var base = time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

func testRules(chance float64) *rules.Ruleset {
	return rules.Normalize(&rules.Document{
		EventIntervalSeconds: intPtr(60),
		EventChance:          floatPtr(chance),
		Events: []rules.EventDocument{
			{ID: "surge", Type: rules.EventTypeNetrunBonus, DurationSeconds: intPtr(10), BonusCred: intPtr(4), MaxTriggers: intPtr(2)},
			{ID: "cache", Type: rules.EventTypeDrop, DurationSeconds: intPtr(120), DropCred: intPtr(7)},
		},
	})
}

// newScheduler returns a scheduler whose rolls always hit and pick index pick.
func newScheduler(rs *rules.Ruleset, roll float64, pick int) (*Scheduler, *ledger.Ledger) {
	l := ledger.New()
	s := NewScheduler(l, rules.NewResolver(rs),
		WithClock(func() time.Time { return base }),
		WithRandom(func() float64 { return roll }, func(int) int { return pick }),
	)
	return s, l
}

func TestInstantiate(t *testing.T) {
	rs := testRules(1)

	surge := Instantiate(rs.Events[0], base)
	if !surge.ExpiresAt.Equal(base.Add(30*time.Second)) {
		t.Errorf("ExpiresAt = %v, expected duration floored to 30s", surge.ExpiresAt)
	}
	if surge.UsesRemaining != 2 {
		t.Errorf("UsesRemaining = %d, expected 2", surge.UsesRemaining)
	}

	cache := Instantiate(rs.Events[1], base)
	if cache.UsesRemaining != 1 || !cache.ExpiresAt.Equal(base.Add(2*time.Minute)) {
		t.Errorf("cache = %+v", cache)
	}
}

func TestTick_UntrackedPlayerRollsImmediately(t *testing.T) {
	s, l := newScheduler(testRules(0.5), 0.1, 1)
	id := uuid.New()
	l.MarkOnline(id)

	started := s.Tick(base)
	if len(started) != 1 || started[0].Event.ID != "cache" {
		t.Fatalf("Tick() = %+v, expected one cache event", started)
	}
	if ev, ok := s.Active(id); !ok || ev.ID != "cache" {
		t.Errorf("Active() = %+v, %v", ev, ok)
	}
}

func TestTick_TrackedPlayerWaitsOneInterval(t *testing.T) {
	s, l := newScheduler(testRules(1), 0, 0)
	id := uuid.New()
	l.MarkOnline(id)
	s.Track(id, base)

	if got := s.Tick(base.Add(59 * time.Second)); len(got) != 0 {
		t.Errorf("Tick() before interval started %d events", len(got))
	}
	if got := s.Tick(base.Add(60 * time.Second)); len(got) != 1 {
		t.Errorf("Tick() at interval started %d events, expected 1", len(got))
	}
}

func TestTick_MissedRollIsStillRecorded(t *testing.T) {
	s, l := newScheduler(testRules(0.3), 0.9, 0)
	id := uuid.New()
	l.MarkOnline(id)

	if got := s.Tick(base); len(got) != 0 {
		t.Fatal("roll above chance should not start an event")
	}

	s.roll = func() float64 { return 0 }
	if got := s.Tick(base.Add(30 * time.Second)); len(got) != 0 {
		t.Error("a missed roll must still wait a full interval")
	}
	if got := s.Tick(base.Add(60 * time.Second)); len(got) != 1 {
		t.Error("expected a roll after the interval")
	}
}

func TestTick_SkipsPlayersWithLiveEventAndOffline(t *testing.T) {
	s, l := newScheduler(testRules(1), 0, 0)
	busy, offline := uuid.New(), uuid.New()
	l.MarkOnline(busy)
	l.Update(busy, func(r *ledger.Record) {
		r.ActiveEvent = &ledger.ActiveEvent{ID: "x", Type: rules.EventTypeDrop, ExpiresAt: base.Add(time.Hour), UsesRemaining: 1}
	})
	l.Update(offline, func(*ledger.Record) {})

	if got := s.Tick(base); len(got) != 0 {
		t.Errorf("Tick() = %+v, expected nothing", got)
	}
	if ev, _ := s.Active(busy); ev.ID != "x" {
		t.Error("live event must not be replaced")
	}
}

func TestTick_Disabled(t *testing.T) {
	rs := testRules(1)
	rs.EventsEnabled = false
	s, l := newScheduler(rs, 0, 0)
	l.MarkOnline(uuid.New())

	if got := s.Tick(base); got != nil {
		t.Errorf("Tick() with events disabled = %+v", got)
	}
}

func TestForget_ResetsRollClock(t *testing.T) {
	s, l := newScheduler(testRules(1), 0, 0)
	id := uuid.New()
	l.MarkOnline(id)
	s.Track(id, base)
	s.Forget(id)

	if got := s.Tick(base.Add(time.Second)); len(got) != 1 {
		t.Errorf("Tick() after Forget started %d events, expected immediate roll", len(got))
	}
}

func TestConsumeBonus(t *testing.T) {
	r := &ledger.Record{ActiveEvent: &ledger.ActiveEvent{
		Type: rules.EventTypeNetrunBonus, BonusCred: 4, UsesRemaining: 2, ExpiresAt: base.Add(time.Minute),
	}}

	for i, expected := range []int{4, 4, 0} {
		if got := ConsumeBonus(r, base); got != expected {
			t.Errorf("ConsumeBonus() call %d = %d, expected %d", i, got, expected)
		}
	}
	if r.ActiveEvent != nil {
		t.Error("exhausted bonus event should be removed")
	}
}

func TestConsumeBonus_Ignored(t *testing.T) {
	tests := []struct {
		name  string
		event *ledger.ActiveEvent
	}{
		{"no event", nil},
		{"drop event", &ledger.ActiveEvent{Type: rules.EventTypeDrop, DropCred: 9, UsesRemaining: 1, ExpiresAt: base.Add(time.Minute)}},
		{"expired exactly now", &ledger.ActiveEvent{Type: rules.EventTypeNetrunBonus, BonusCred: 4, UsesRemaining: 1, ExpiresAt: base}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &ledger.Record{ActiveEvent: tt.event}
			if got := ConsumeBonus(r, base); got != 0 {
				t.Errorf("ConsumeBonus() = %d, expected 0", got)
			}
		})
	}
}

func TestClaimDrop(t *testing.T) {
	live := base.Add(time.Minute)
	tests := []struct {
		name       string
		event      *ledger.ActiveEvent
		expected   DropStatus
		cred       int
		eventAfter bool
	}{
		{name: "no event", expected: DropNoEvent},
		{name: "bonus event", event: &ledger.ActiveEvent{Type: rules.EventTypeNetrunBonus, UsesRemaining: 1, ExpiresAt: live}, expected: DropNotDrop, eventAfter: true},
		{name: "expired bonus", event: &ledger.ActiveEvent{Type: rules.EventTypeNetrunBonus, UsesRemaining: 1, ExpiresAt: base}, expected: DropNoEvent},
		{name: "expired drop", event: &ledger.ActiveEvent{Type: rules.EventTypeDrop, DropCred: 7, UsesRemaining: 1, ExpiresAt: base}, expected: DropExpired},
		{name: "exhausted drop", event: &ledger.ActiveEvent{Type: rules.EventTypeDrop, DropCred: 7, ExpiresAt: live}, expected: DropExpired},
		{name: "claim", event: &ledger.ActiveEvent{Type: rules.EventTypeDrop, DropCred: 7, UsesRemaining: 1, ExpiresAt: live}, expected: DropClaimed, cred: 7},
		{name: "claim with uses left", event: &ledger.ActiveEvent{Type: rules.EventTypeDrop, DropCred: 3, UsesRemaining: 2, ExpiresAt: live}, expected: DropClaimed, cred: 3, eventAfter: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &ledger.Record{ActiveEvent: tt.event}
			result := ClaimDrop(r, base)
			if result.Status != tt.expected {
				t.Errorf("ClaimDrop() = %s, expected %s", result.Status, tt.expected)
			}
			if r.Cred != tt.cred {
				t.Errorf("Cred = %d, expected %d", r.Cred, tt.cred)
			}
			if (r.ActiveEvent != nil) != tt.eventAfter {
				t.Errorf("event after claim = %+v, expected present=%v", r.ActiveEvent, tt.eventAfter)
			}
		})
	}
}

func TestScheduler_ClaimDropTwice(t *testing.T) {
	s, l := newScheduler(testRules(1), 0, 1)
	id := uuid.New()
	l.MarkOnline(id)
	s.Tick(base)

	if got := s.ClaimDrop(id); got.Status != DropClaimed || got.Reward != 7 {
		t.Fatalf("first ClaimDrop() = %+v, expected CLAIMED 7", got)
	}
	if got := s.ClaimDrop(id); got.Status != DropNoEvent {
		t.Errorf("second ClaimDrop() = %s, expected NO_EVENT", got.Status)
	}
	if l.Cred(id) != 7 {
		t.Errorf("Cred() = %d, expected 7", l.Cred(id))
	}
}
