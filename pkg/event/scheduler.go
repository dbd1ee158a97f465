// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package event

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/AccelByte/extend-runner-economy/pkg/ledger"
	"github.com/AccelByte/extend-runner-economy/pkg/metrics"
	"github.com/AccelByte/extend-runner-economy/pkg/rules"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type DropStatus string

const (
	DropNoEvent DropStatus = "NO_EVENT"
	DropNotDrop DropStatus = "NOT_DROP"
	DropExpired DropStatus = "EXPIRED"
	DropClaimed DropStatus = "CLAIMED"
)

type DropResult struct {
	Status DropStatus
	Reward int
	Event  ledger.ActiveEvent
}

// Started reports an event instantiated by a tick.
type Started struct {
	PlayerID uuid.UUID
	Event    ledger.ActiveEvent
}

// Scheduler rolls time-limited events for online players.
//
// Roll times live in memory only. They are written while holding the
// player's ledger lock, so a tick and a disconnect for the same player
// never interleave.
type Scheduler struct {
	ledger   *ledger.Ledger
	rules    *rules.Resolver
	lastRoll sync.Map // uuid.UUID -> time.Time

	now   func() time.Time
	roll  func() float64
	pickN func(n int) int
}

type Option func(*Scheduler)

func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) { s.now = now }
}

// WithRandom replaces the chance roll and the definition pick.
func WithRandom(roll func() float64, pickN func(n int) int) Option {
	return func(s *Scheduler) {
		s.roll = roll
		s.pickN = pickN
	}
}

func NewScheduler(l *ledger.Ledger, resolver *rules.Resolver, opts ...Option) *Scheduler {
	s := &Scheduler{
		ledger: l,
		rules:  resolver,
		now:    time.Now,
		roll:   rand.Float64,
		pickN:  rand.IntN,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Track starts the roll clock for a player, so the first roll comes one
// interval later.
func (s *Scheduler) Track(playerID uuid.UUID, now time.Time) {
	s.ledger.Update(playerID, func(*ledger.Record) {
		s.lastRoll.Store(playerID, now)
	})
}

// Forget drops the roll clock of a player who went offline.
func (s *Scheduler) Forget(playerID uuid.UUID) {
	s.ledger.Update(playerID, func(*ledger.Record) {
		s.lastRoll.Delete(playerID)
	})
}

// Tick rolls for every online player without a live event whose interval
// has elapsed. The roll is recorded whatever its outcome.
func (s *Scheduler) Tick(now time.Time) []Started {
	rs := s.rules.Current()
	if !rs.EventsEnabled || len(rs.Events) == 0 {
		return nil
	}
	interval := time.Duration(rs.EventIntervalSeconds) * time.Second

	var started []Started
	for _, id := range s.ledger.OnlinePlayers() {
		s.ledger.Update(id, func(r *ledger.Record) {
			if r.ActiveEvent.Live(now) {
				return
			}
			r.ActiveEvent = nil

			if last, ok := s.lastRoll.Load(id); ok && now.Sub(last.(time.Time)) < interval {
				return
			}
			s.lastRoll.Store(id, now)

			if s.roll() >= rs.EventChance {
				return
			}
			def := rs.Events[s.pickN(len(rs.Events))]
			ev := Instantiate(def, now)
			r.ActiveEvent = &ev
			started = append(started, Started{PlayerID: id, Event: ev})
		})
	}

	for _, st := range started {
		metrics.EventsStartedTotal.WithLabelValues(st.Event.Type).Inc()
		logrus.Infof("event %s started for player %s until %s", st.Event.ID, st.PlayerID, st.Event.ExpiresAt.Format(time.RFC3339))
	}
	return started
}

// Active returns the player's live event, if any.
func (s *Scheduler) Active(playerID uuid.UUID) (ledger.ActiveEvent, bool) {
	now := s.now()
	var (
		ev   ledger.ActiveEvent
		live bool
	)
	s.ledger.View(playerID, func(r *ledger.Record) {
		if r.ActiveEvent.Live(now) {
			ev, live = *r.ActiveEvent, true
		}
	})
	return ev, live
}

// ClaimDrop credits the drop of the player's active drop event.
func (s *Scheduler) ClaimDrop(playerID uuid.UUID) DropResult {
	now := s.now()
	var result DropResult
	s.ledger.Update(playerID, func(r *ledger.Record) {
		result = ClaimDrop(r, now)
	})
	if result.Status == DropClaimed {
		metrics.Award(metrics.SourceDrop, result.Reward)
		logrus.Debugf("player %s claimed drop %s for %d cred", playerID, result.Event.ID, result.Reward)
	}
	return result
}

// Instantiate builds a live event from its definition.
func Instantiate(def rules.EventDefinition, now time.Time) ledger.ActiveEvent {
	return ledger.ActiveEvent{
		ID:            def.ID,
		Name:          def.Name,
		Description:   def.Description,
		Type:          def.Type,
		ExpiresAt:     now.Add(time.Duration(max(30, def.DurationSeconds)) * time.Second),
		BonusCred:     def.BonusCred,
		DropCred:      def.DropCred,
		UsesRemaining: max(1, def.MaxTriggers),
	}
}

// ConsumeBonus takes one use of a live netrun_bonus event and returns its
// bonus, or 0. A dead event is cleared.
func ConsumeBonus(r *ledger.Record, now time.Time) int {
	ev := r.ActiveEvent
	if ev == nil {
		return 0
	}
	if !ev.Live(now) {
		r.ActiveEvent = nil
		return 0
	}
	if ev.Type != rules.EventTypeNetrunBonus {
		return 0
	}
	bonus := max(0, ev.BonusCred)
	consume(r)
	return bonus
}

// ClaimDrop applies a drop claim to a locked record.
func ClaimDrop(r *ledger.Record, now time.Time) DropResult {
	ev := r.ActiveEvent
	if ev == nil {
		return DropResult{Status: DropNoEvent}
	}
	if ev.Type != rules.EventTypeDrop {
		if !ev.Live(now) {
			r.ActiveEvent = nil
			return DropResult{Status: DropNoEvent}
		}
		return DropResult{Status: DropNotDrop, Event: *ev}
	}
	if !ev.Live(now) {
		r.ActiveEvent = nil
		return DropResult{Status: DropExpired, Event: *ev}
	}

	reward := max(0, ev.DropCred)
	r.AddCred(reward)
	snapshot := *ev
	consume(r)
	return DropResult{Status: DropClaimed, Reward: reward, Event: snapshot}
}

func consume(r *ledger.Record) {
	r.ActiveEvent.UsesRemaining--
	if r.ActiveEvent.UsesRemaining <= 0 {
		r.ActiveEvent = nil
	}
}
