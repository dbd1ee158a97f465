// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package daily

import (
	"testing"
	"time"

	"github.com/AccelByte/extend-runner-economy/pkg/ledger"
	"github.com/AccelByte/extend-runner-economy/pkg/rules"

	"github.com/google/uuid"
)

func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }

func testRules(perDay int) *rules.Ruleset {
	return rules.Normalize(&rules.Document{
		DailyReward:           intPtr(8),
		DailyObjectivesPerDay: intPtr(perDay),
		DailyObjectivePool: []rules.ObjectiveDocument{
			{Type: "chat", Target: intPtr(2)},
			{Type: "netrun", Target: intPtr(1), Label: "Win {target} run"},
			{Type: "online", Target: intPtr(1)},
			{Type: "chat", Target: intPtr(0)},
		},
	})
}

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

func newEngine(rs *rules.Ruleset) (*Engine, *ledger.Ledger, *fakeClock) {
	l := ledger.New()
	clock := &fakeClock{now: time.Date(2025, 3, 14, 10, 0, 0, 0, time.Local)}
	return NewEngine(l, rules.NewResolver(rs), WithClock(clock.Now)), l, clock
}

func TestGenerate_Selection(t *testing.T) {
	tests := []struct {
		name          string
		perDay        int
		expectedTypes []string
	}{
		{name: "capped", perDay: 2, expectedTypes: []string{"chat", "netrun"}},
		{name: "zero means all, zero targets dropped", perDay: 0, expectedTypes: []string{"chat", "netrun", "online"}},
		{name: "negative means all", perDay: -1, expectedTypes: []string{"chat", "netrun", "online"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			contract := Generate(testRules(tt.perDay), "2025-03-14", nil)
			if len(contract.Objectives) != len(tt.expectedTypes) {
				t.Fatalf("Generate() objectives = %+v, expected types %v", contract.Objectives, tt.expectedTypes)
			}
			for i, o := range contract.Objectives {
				if o.Type != tt.expectedTypes[i] {
					t.Errorf("objective %d type = %s, expected %s", i, o.Type, tt.expectedTypes[i])
				}
			}
			if contract.Reward != 8 || contract.Claimed {
				t.Errorf("Generate() contract = %+v", contract)
			}
		})
	}
}

func TestGenerate_Randomized(t *testing.T) {
	rs := testRules(1)
	rs.DailyRandomizeObjectives = true
	reverse := func(n int, swap func(i, j int)) {
		for i := 0; i < n/2; i++ {
			swap(i, n-1-i)
		}
	}

	contract := Generate(rs, "2025-03-14", reverse)

	// reversed pool leads with the zero-target chat entry, which is dropped
	if len(contract.Objectives) != 0 {
		t.Errorf("Generate() = %+v, expected no objectives", contract.Objectives)
	}
}

func TestEnsure_StaleContractResetsCounters(t *testing.T) {
	rs := testRules(3)
	r := &ledger.Record{
		DailyChatCount:     4,
		DailyNetrunWins:    2,
		DailyOnlineSeconds: 900,
		DailyContract:      &ledger.DailyContract{Date: "2025-03-13", Claimed: true},
	}

	contract := Ensure(rs, r, time.Date(2025, 3, 14, 0, 0, 1, 0, time.Local), nil)

	if contract.Date != "2025-03-14" || contract.Claimed {
		t.Errorf("Ensure() contract = %+v", contract)
	}
	if r.DailyChatCount != 0 || r.DailyNetrunWins != 0 || r.DailyOnlineSeconds != 0 {
		t.Errorf("counters not reset: %+v", r)
	}
}

func TestEnsure_RepairsEmptyObjectives(t *testing.T) {
	rs := testRules(3)
	r := &ledger.Record{
		DailyChatCount: 3,
		DailyContract:  &ledger.DailyContract{Date: "2025-03-14", Reward: 2},
	}

	contract := Ensure(rs, r, time.Date(2025, 3, 14, 12, 0, 0, 0, time.Local), nil)

	if len(contract.Objectives) != 3 {
		t.Errorf("Ensure() objectives = %d, expected 3", len(contract.Objectives))
	}
	if r.DailyChatCount != 3 || contract.Reward != 2 {
		t.Error("repairing objectives must keep counters and reward")
	}
}

func TestEnsure_Disabled(t *testing.T) {
	rs := rules.Normalize(&rules.Document{DailyEnabled: boolPtr(false)})
	r := &ledger.Record{}

	if contract := Ensure(rs, r, time.Now(), nil); contract != nil || r.DailyContract != nil {
		t.Error("Ensure() with daily disabled must not create a contract")
	}
}

func TestFormatLabel(t *testing.T) {
	tests := []struct {
		objective ledger.Objective
		expected  string
	}{
		{ledger.Objective{Type: "chat", Target: 5}, "Send 5 chat messages"},
		{ledger.Objective{Type: "netrun", Target: 1}, "Complete 1 netrun"},
		{ledger.Objective{Type: "online", Target: 10}, "Stay online for 10 minutes"},
		{ledger.Objective{Type: "dance", Target: 2}, "Complete 2 objective"},
		{ledger.Objective{Type: "chat", Target: 3, Label: "Talk x{target}"}, "Talk x3"},
	}

	for _, tt := range tests {
		if got := FormatLabel(tt.objective); got != tt.expected {
			t.Errorf("FormatLabel(%+v) = %q, expected %q", tt.objective, got, tt.expected)
		}
	}
}

func TestBuildView_OnlineCountsWholeMinutes(t *testing.T) {
	contract := &ledger.DailyContract{Objectives: []ledger.Objective{{Type: "online", Target: 2}}}

	view := BuildView(&ledger.Record{DailyOnlineSeconds: 119}, contract)
	if view.Objectives[0].Progress != 1 || view.Complete {
		t.Errorf("119s view = %+v, expected progress 1 incomplete", view)
	}

	view = BuildView(&ledger.Record{DailyOnlineSeconds: 120}, contract)
	if !view.Complete {
		t.Errorf("120s view = %+v, expected complete", view)
	}
}

func TestBuildView_NoObjectivesIsComplete(t *testing.T) {
	view := BuildView(&ledger.Record{}, &ledger.DailyContract{Date: "2025-03-14"})
	if !view.Complete {
		t.Error("contract without objectives should be complete")
	}
}

func TestEngine_ClaimFlow(t *testing.T) {
	engine, l, _ := newEngine(testRules(3))
	id := uuid.New()

	if got := engine.Claim(id); got.Status != ClaimNotComplete {
		t.Fatalf("Claim() on fresh contract = %s, expected NOT_COMPLETE", got.Status)
	}

	engine.RecordChat(id)
	engine.RecordChat(id)
	engine.AddOnlineSeconds(id, 60)
	l.Update(id, func(r *ledger.Record) { r.RecordWin() })

	view := engine.View(id)
	if !view.Complete || view.Objectives[1].Label != "Win 1 run" {
		t.Fatalf("View() = %+v, expected complete", view)
	}

	result := engine.Claim(id)
	if result.Status != ClaimClaimed || result.Reward != 8 {
		t.Fatalf("Claim() = %+v, expected CLAIMED 8", result)
	}
	if l.Cred(id) != 8 {
		t.Errorf("Cred() = %d, expected 8", l.Cred(id))
	}
	if got := engine.Claim(id); got.Status != ClaimAlreadyClaimed {
		t.Errorf("second Claim() = %s, expected ALREADY_CLAIMED", got.Status)
	}
}

func TestEngine_NewDayStartsOver(t *testing.T) {
	engine, _, clock := newEngine(testRules(3))
	id := uuid.New()
	engine.RecordChat(id)

	clock.now = clock.now.Add(24 * time.Hour)
	view := engine.View(id)

	if view.Date != "2025-03-15" {
		t.Errorf("View().Date = %s, expected 2025-03-15", view.Date)
	}
	if view.Objectives[0].Progress != 0 {
		t.Errorf("chat progress = %d, expected reset to 0", view.Objectives[0].Progress)
	}
}

func TestEngine_Disabled(t *testing.T) {
	engine, l, _ := newEngine(rules.Normalize(&rules.Document{DailyEnabled: boolPtr(false)}))
	id := uuid.New()

	engine.RecordChat(id)
	if l.Len() != 0 {
		t.Error("RecordChat() with daily disabled must not touch the ledger")
	}
	if got := engine.Claim(id); got.Status != ClaimDisabled {
		t.Errorf("Claim() = %s, expected DISABLED", got.Status)
	}
	if view := engine.View(id); view.Enabled {
		t.Error("View() should report disabled")
	}
}
