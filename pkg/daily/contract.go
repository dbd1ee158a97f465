// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package daily

import (
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/AccelByte/extend-runner-economy/pkg/ledger"
	"github.com/AccelByte/extend-runner-economy/pkg/rules"
)

// DateLayout is the calendar-date key of a contract, in local time.
const DateLayout = "2006-01-02"

type ClaimStatus string

const (
	ClaimDisabled       ClaimStatus = "DISABLED"
	ClaimNoContract     ClaimStatus = "NO_CONTRACT"
	ClaimAlreadyClaimed ClaimStatus = "ALREADY_CLAIMED"
	ClaimNotComplete    ClaimStatus = "NOT_COMPLETE"
	ClaimClaimed        ClaimStatus = "CLAIMED"
)

type ClaimResult struct {
	Status ClaimStatus
	Reward int
}

// ObjectiveView is one objective with its live progress.
type ObjectiveView struct {
	Type     string
	Label    string
	Progress int
	Target   int
	Complete bool
}

// View is a read model of the player's contract for today.
type View struct {
	Enabled    bool
	Date       string
	Claimed    bool
	Complete   bool
	Reward     int
	Objectives []ObjectiveView
}

// Ensure makes sure the record holds a contract for the date of now. A stale
// or missing contract is regenerated and the daily counters reset. It returns
// nil when the daily system is disabled.
func Ensure(rs *rules.Ruleset, r *ledger.Record, now time.Time, shuffle func(n int, swap func(i, j int))) *ledger.DailyContract {
	if !rs.DailyEnabled {
		return nil
	}
	today := now.Format(DateLayout)
	contract := r.DailyContract
	if contract == nil || contract.Date != today {
		r.DailyContract = Generate(rs, today, shuffle)
		r.DailyChatCount = 0
		r.DailyNetrunWins = 0
		r.DailyOnlineSeconds = 0
		return r.DailyContract
	}
	if len(contract.Objectives) == 0 {
		contract.Objectives = Generate(rs, today, shuffle).Objectives
	}
	return contract
}

// Generate picks up to DailyObjectivesPerDay entries of the pool, in pool
// order unless randomization is on. Objectives with a non-positive target
// are dropped. A non-positive per-day count takes the whole pool.
func Generate(rs *rules.Ruleset, date string, shuffle func(n int, swap func(i, j int))) *ledger.DailyContract {
	selected := append([]rules.Objective(nil), rs.DailyObjectivePool...)
	if rs.DailyRandomizeObjectives {
		if shuffle == nil {
			shuffle = rand.Shuffle
		}
		shuffle(len(selected), func(i, j int) { selected[i], selected[j] = selected[j], selected[i] })
	}
	if rs.DailyObjectivesPerDay > 0 && len(selected) > rs.DailyObjectivesPerDay {
		selected = selected[:rs.DailyObjectivesPerDay]
	}

	objectives := make([]ledger.Objective, 0, len(selected))
	for _, o := range selected {
		if o.Target <= 0 {
			continue
		}
		objectives = append(objectives, ledger.Objective{Type: o.Type, Target: o.Target, Label: o.Label})
	}
	return &ledger.DailyContract{
		Date:       date,
		Reward:     rs.DailyReward,
		Objectives: objectives,
	}
}

// Progress reads the counter an objective type tracks. Online time counts
// whole minutes only.
func Progress(r *ledger.Record, objectiveType string) int {
	switch strings.ToLower(objectiveType) {
	case rules.ObjectiveChat:
		return r.DailyChatCount
	case rules.ObjectiveNetrun:
		return r.DailyNetrunWins
	case rules.ObjectiveOnline:
		return r.DailyOnlineSeconds / 60
	default:
		return 0
	}
}

func BuildObjectiveView(r *ledger.Record, o ledger.Objective) ObjectiveView {
	progress := Progress(r, o.Type)
	return ObjectiveView{
		Type:     o.Type,
		Label:    FormatLabel(o),
		Progress: progress,
		Target:   o.Target,
		Complete: o.Target > 0 && progress >= o.Target,
	}
}

// FormatLabel fills {target} in the objective's label, or in the default
// label for its type.
func FormatLabel(o ledger.Objective) string {
	label := o.Label
	if strings.TrimSpace(label) == "" {
		switch strings.ToLower(o.Type) {
		case rules.ObjectiveChat:
			label = "Send {target} chat messages"
		case rules.ObjectiveNetrun:
			label = "Complete {target} netrun"
		case rules.ObjectiveOnline:
			label = "Stay online for {target} minutes"
		default:
			label = "Complete {target} objective"
		}
	}
	return strings.ReplaceAll(label, "{target}", strconv.Itoa(o.Target))
}

// BuildView renders a contract. A contract without objectives is complete.
func BuildView(r *ledger.Record, contract *ledger.DailyContract) View {
	if contract == nil {
		return View{}
	}
	view := View{
		Enabled:  true,
		Date:     contract.Date,
		Claimed:  contract.Claimed,
		Complete: true,
		Reward:   contract.Reward,
	}
	for _, o := range contract.Objectives {
		ov := BuildObjectiveView(r, o)
		view.Complete = view.Complete && ov.Complete
		view.Objectives = append(view.Objectives, ov)
	}
	return view
}

// Claim pays the contract reward once all objectives are complete.
func Claim(rs *rules.Ruleset, r *ledger.Record, now time.Time, shuffle func(n int, swap func(i, j int))) ClaimResult {
	if !rs.DailyEnabled {
		return ClaimResult{Status: ClaimDisabled}
	}
	contract := Ensure(rs, r, now, shuffle)
	if contract == nil {
		return ClaimResult{Status: ClaimNoContract}
	}
	if contract.Claimed {
		return ClaimResult{Status: ClaimAlreadyClaimed}
	}
	if !BuildView(r, contract).Complete {
		return ClaimResult{Status: ClaimNotComplete}
	}
	contract.Claimed = true
	r.AddCred(contract.Reward)
	return ClaimResult{Status: ClaimClaimed, Reward: contract.Reward}
}
