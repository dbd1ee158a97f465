// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package economy ties the ledger and the gameplay subsystems together and
// owns their lifecycle: loading, persistence, reloads and the periodic ticks.
package economy

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"github.com/AccelByte/extend-runner-economy/pkg/common"
	"github.com/AccelByte/extend-runner-economy/pkg/daily"
	"github.com/AccelByte/extend-runner-economy/pkg/event"
	"github.com/AccelByte/extend-runner-economy/pkg/ledger"
	"github.com/AccelByte/extend-runner-economy/pkg/metrics"
	"github.com/AccelByte/extend-runner-economy/pkg/netrun"
	"github.com/AccelByte/extend-runner-economy/pkg/perk"
	"github.com/AccelByte/extend-runner-economy/pkg/rules"
	"github.com/AccelByte/extend-runner-economy/pkg/store"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Welcome is what a connecting player is greeted with. Lines is empty for
// muted players.
type Welcome struct {
	Muted bool
	Title string
	Cred  int
	Lines []string
}

// Manager is the entry point for the host integration layer.
type Manager struct {
	version string
	started time.Time
	now     func() time.Time

	store    store.Store
	loader   *rules.Loader
	resolver *rules.Resolver
	ledger   *ledger.Ledger

	netrun *netrun.Engine
	perks  *perk.Economy
	daily  *daily.Engine
	events *event.Scheduler

	chatAwards     sync.Map // uuid.UUID -> time.Time
	muteMu         sync.Mutex
	muted          sync.Map // uuid.UUID -> struct{}, written under muteMu
	lastOnlineCred atomic.Int64
}

type settings struct {
	now     func() time.Time
	version string
	netrun  []netrun.Option
	daily   []daily.Option
	events  []event.Option
}

type Option func(*settings)

// WithClock sets the time source for the manager and every subsystem.
func WithClock(now func() time.Time) Option {
	return func(s *settings) { s.now = now }
}

func WithVersion(version string) Option {
	return func(s *settings) { s.version = version }
}

func WithNetrunOptions(opts ...netrun.Option) Option {
	return func(s *settings) { s.netrun = append(s.netrun, opts...) }
}

func WithDailyOptions(opts ...daily.Option) Option {
	return func(s *settings) { s.daily = append(s.daily, opts...) }
}

func WithEventOptions(opts ...event.Option) Option {
	return func(s *settings) { s.events = append(s.events, opts...) }
}

// New wires the subsystems around an empty ledger and the default rules.
// Call Load before serving players.
func New(st store.Store, loader *rules.Loader, opts ...Option) *Manager {
	cfg := settings{now: time.Now, version: "dev"}
	for _, opt := range opts {
		opt(&cfg)
	}

	l := ledger.New()
	resolver := rules.NewResolver(rules.Defaults())

	m := &Manager{
		version:  cfg.version,
		started:  cfg.now(),
		now:      cfg.now,
		store:    st,
		loader:   loader,
		resolver: resolver,
		ledger:   l,
	}
	m.netrun = netrun.NewEngine(l, resolver, append([]netrun.Option{netrun.WithClock(cfg.now)}, cfg.netrun...)...)
	m.perks = perk.NewEconomy(l, resolver)
	m.daily = daily.NewEngine(l, resolver, append([]daily.Option{daily.WithClock(cfg.now)}, cfg.daily...)...)
	m.events = event.NewScheduler(l, resolver, append([]event.Option{event.WithClock(cfg.now)}, cfg.events...)...)
	m.lastOnlineCred.Store(cfg.now().UnixNano())
	return m
}

// Load reads the rules and the ledger. Absent or corrupt ledger data is
// replaced with an empty ledger that is written straight back; any other
// store failure is returned.
func (m *Manager) Load(ctx context.Context) error {
	scope := common.NewScope(ctx, "economy.Load")
	defer scope.Finish()

	m.resolver.Swap(m.loader.Load())

	doc, err := m.store.LoadLedger(scope.Ctx)
	switch {
	case err == nil:
		m.ledger.Restore(doc)
		scope.Log.Infof("loaded ledger: players=%d", m.ledger.Len())
	case errors.Is(err, store.ErrNotFound), errors.Is(err, store.ErrCorrupt):
		if errors.Is(err, store.ErrCorrupt) {
			scope.Log.Warnf("ledger data unreadable, recreating defaults: %v", err)
		} else {
			scope.Log.Info("no ledger data found, starting empty")
		}
		m.ledger.Restore(nil)
		if err := m.store.SaveLedger(scope.Ctx, m.ledger.Snapshot()); err != nil {
			scope.Log.Warnf("failed to write empty ledger: %v", err)
		}
	default:
		scope.TraceError(err)
		return fmt.Errorf("failed to load ledger: %w", err)
	}

	m.lastOnlineCred.Store(m.now().UnixNano())
	return nil
}

// Save writes a snapshot of the ledger. On failure the state stays in memory
// and the next save tries again.
func (m *Manager) Save(ctx context.Context) error {
	scope := common.NewScope(ctx, "economy.Save")
	defer scope.Finish()

	doc := m.ledger.Snapshot()
	scope.SetAttributes("players", len(doc.Players))
	if err := m.store.SaveLedger(scope.Ctx, doc); err != nil {
		metrics.SnapshotSavesTotal.WithLabelValues("error").Inc()
		scope.TraceError(err)
		scope.Log.Warnf("failed to save ledger: %v", err)
		return fmt.Errorf("failed to save ledger: %w", err)
	}
	metrics.SnapshotSavesTotal.WithLabelValues("ok").Inc()
	scope.Log.Debugf("saved ledger snapshot: players=%d", len(doc.Players))
	return nil
}

// Reload re-reads the rules document. A missing document is recreated from
// the defaults; a malformed one leaves the current rules in place.
func (m *Manager) Reload(ctx context.Context) error {
	scope := common.NewScope(ctx, "economy.Reload")
	defer scope.Finish()

	rs, err := m.loader.Read()
	if errors.Is(err, rules.ErrNoDocument) {
		rs = m.loader.Load()
	} else if err != nil {
		scope.TraceError(err)
		scope.Log.Warnf("failed to reload rules: %v", err)
		return fmt.Errorf("failed to reload rules: %w", err)
	}

	m.resolver.Swap(rs)
	scope.Log.Infof("reloaded rules from %s: theme=%s", m.loader.Path(), rs.Theme.Name)
	return nil
}

// Connect handles a player joining.
func (m *Manager) Connect(playerID uuid.UUID, name string) Welcome {
	m.ledger.RecordName(playerID, name)
	// tracked before going online so an event tick in between cannot roll early
	m.events.Track(playerID, m.now())
	m.ledger.MarkOnline(playerID)
	metrics.OnlinePlayers.Set(float64(len(m.ledger.OnlinePlayers())))
	m.daily.Ensure(playerID)

	rs := m.resolver.Current()
	cred := m.ledger.Cred(playerID)
	w := Welcome{
		Muted: m.IsMuted(playerID),
		Title: rs.TitleFor(cred),
		Cred:  cred,
	}
	logrus.Debugf("player %s (%s) connected with %d cred", playerID, name, cred)
	if w.Muted {
		return w
	}
	if strings.TrimSpace(rs.JoinMessage) != "" {
		w.Lines = append(w.Lines, rs.FormatMessage(rs.JoinMessage))
	}
	w.Lines = append(w.Lines, rs.FormatMessage(fmt.Sprintf("Runner tag: %s | Cred %d.", w.Title, cred)))
	return w
}

func (m *Manager) Disconnect(playerID uuid.UUID) {
	m.ledger.MarkOffline(playerID)
	m.events.Forget(playerID)
	metrics.OnlinePlayers.Set(float64(len(m.ledger.OnlinePlayers())))
	logrus.Debugf("player %s disconnected", playerID)
}

// Chat records the sender's name, awards chat cred when the message is long
// enough and the player's cooldown has elapsed, then counts the message
// toward the daily contract. It reports whether cred was awarded.
func (m *Manager) Chat(playerID uuid.UUID, name, content string) bool {
	m.ledger.RecordName(playerID, name)
	rs := m.resolver.Current()

	awarded := false
	if rs.ChatCred > 0 && utf8.RuneCountInString(strings.TrimSpace(content)) >= rs.ChatMinChars {
		cooldown := time.Duration(max(0, rs.ChatCredCooldownSeconds)) * time.Second
		m.ledger.Update(playerID, func(r *ledger.Record) {
			now := m.now()
			if last, ok := m.chatAwards.Load(playerID); ok && now.Sub(last.(time.Time)) < cooldown {
				return
			}
			m.chatAwards.Store(playerID, now)
			r.AddCred(rs.ChatCred)
			awarded = true
		})
	}
	if awarded {
		metrics.Award(metrics.SourceChat, rs.ChatCred)
	}

	m.daily.RecordChat(playerID)
	return awarded
}

// TickOnline pays passive cred to everyone online, at most once per
// configured interval, and adds seconds of online time to their daily
// progress. It returns the number of players paid.
func (m *Manager) TickOnline(seconds int) int {
	if seconds <= 0 {
		return 0
	}
	rs := m.resolver.Current()
	online := m.ledger.OnlinePlayers()

	paid := 0
	if rs.OnlineCred > 0 && rs.OnlineCredIntervalSeconds > 0 {
		interval := time.Duration(rs.OnlineCredIntervalSeconds) * time.Second
		now := m.now().UnixNano()
		last := m.lastOnlineCred.Load()
		if now-last >= interval.Nanoseconds() && m.lastOnlineCred.CompareAndSwap(last, now) {
			for _, id := range online {
				m.ledger.AddCred(id, rs.OnlineCred)
				metrics.Award(metrics.SourceOnline, rs.OnlineCred)
				paid++
			}
		}
	}

	for _, id := range online {
		m.daily.AddOnlineSeconds(id, seconds)
	}
	return paid
}

// TickEvents rolls events for online players.
func (m *Manager) TickEvents() []event.Started {
	return m.events.Tick(m.now())
}

// ToggleMuted flips the join message mute and returns the new state. Mutes
// are not persisted.
func (m *Manager) ToggleMuted(playerID uuid.UUID) bool {
	m.muteMu.Lock()
	defer m.muteMu.Unlock()

	if _, loaded := m.muted.LoadAndDelete(playerID); loaded {
		return false
	}
	m.muted.Store(playerID, struct{}{})
	return true
}

func (m *Manager) IsMuted(playerID uuid.UUID) bool {
	_, ok := m.muted.Load(playerID)
	return ok
}

// TopCred returns the leaderboard. A non-positive limit uses the
// configured credTopLimit.
func (m *Manager) TopCred(limit int) []ledger.Entry {
	if limit <= 0 {
		limit = m.resolver.Current().CredTopLimit
	}
	return m.ledger.TopCred(limit)
}

func (m *Manager) Ledger() *ledger.Ledger   { return m.ledger }
func (m *Manager) Netrun() *netrun.Engine   { return m.netrun }
func (m *Manager) Perks() *perk.Economy     { return m.perks }
func (m *Manager) Daily() *daily.Engine     { return m.daily }
func (m *Manager) Events() *event.Scheduler { return m.events }
func (m *Manager) Rules() *rules.Ruleset    { return m.resolver.Current() }
func (m *Manager) Store() store.Store       { return m.store }
