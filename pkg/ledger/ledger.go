// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package ledger

import (
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Document is the persisted image of the ledger.
type Document struct {
	Players map[string]*Record `json:"players"`
}

// Entry is one leaderboard row.
type Entry struct {
	ID   uuid.UUID
	Name string
	Cred int
}

type entry struct {
	mu     sync.Mutex
	record *Record
}

// Ledger is the single source of truth for player records.
//
// ============================================================
// DEVELOPER: Locking model
// ============================================================
// The map is guarded by an RWMutex that is only held long enough to find
// or insert an entry. Each entry carries its own mutex; Update runs the
// callback under it, so a multi-field change to one player is atomic and
// different players never wait on each other.
//
// The callback must not call back into the Ledger for the same player.
// ============================================================
type Ledger struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]*entry
	order   []uuid.UUID

	onlineMu sync.RWMutex
	online   map[uuid.UUID]struct{}
}

func New() *Ledger {
	return &Ledger{
		entries: make(map[uuid.UUID]*entry),
		online:  make(map[uuid.UUID]struct{}),
	}
}

func (l *Ledger) lookup(id uuid.UUID) *entry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.entries[id]
}

func (l *Ledger) getOrCreate(id uuid.UUID) *entry {
	if e := l.lookup(id); e != nil {
		return e
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if e, ok := l.entries[id]; ok {
		return e
	}
	e := &entry{record: &Record{}}
	l.entries[id] = e
	l.order = append(l.order, id)
	return e
}

// Update runs fn on the player's record under its lock, creating the record
// if needed.
func (l *Ledger) Update(id uuid.UUID, fn func(r *Record)) {
	e := l.getOrCreate(id)
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(e.record)
}

// View runs fn on the player's record under its lock. Unknown players see a
// zero record that is discarded afterwards.
func (l *Ledger) View(id uuid.UUID, fn func(r *Record)) {
	e := l.lookup(id)
	if e == nil {
		fn(&Record{})
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(e.record)
}

func (l *Ledger) Cred(id uuid.UUID) int {
	var cred int
	l.View(id, func(r *Record) { cred = r.Cred })
	return cred
}

// AddCred applies delta, clamped at zero, and returns the new balance.
func (l *Ledger) AddCred(id uuid.UUID, delta int) int {
	var cred int
	l.Update(id, func(r *Record) { cred = r.AddCred(delta) })
	return cred
}

func (l *Ledger) SetCred(id uuid.UUID, amount int) int {
	var cred int
	l.Update(id, func(r *Record) { cred = r.SetCred(amount) })
	return cred
}

// RecordName caches a display name. Blank names are ignored.
func (l *Ledger) RecordName(id uuid.UUID, name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	l.Update(id, func(r *Record) { r.Name = name })
}

func (l *Ledger) Name(id uuid.UUID) string {
	var name string
	l.View(id, func(r *Record) { name = r.Name })
	return displayName(id, name)
}

func (l *Ledger) Stats(id uuid.UUID) Stats {
	var stats Stats
	l.View(id, func(r *Record) { stats = r.Stats() })
	return stats
}

func (l *Ledger) RecordWin(id uuid.UUID) int {
	var streak int
	l.Update(id, func(r *Record) { streak = r.RecordWin() })
	return streak
}

func (l *Ledger) RecordFail(id uuid.UUID) {
	l.Update(id, func(r *Record) { r.RecordFail() })
}

func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

type indexed struct {
	id    uuid.UUID
	entry *entry
}

func (l *Ledger) all() []indexed {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]indexed, 0, len(l.order))
	for _, id := range l.order {
		out = append(out, indexed{id: id, entry: l.entries[id]})
	}
	return out
}

// TopCred returns players by balance, highest first. Ties keep insertion
// order. A non-positive limit returns everyone.
func (l *Ledger) TopCred(limit int) []Entry {
	rows := l.all()
	entries := make([]Entry, 0, len(rows))
	for _, row := range rows {
		row.entry.mu.Lock()
		entries = append(entries, Entry{
			ID:   row.id,
			Name: displayName(row.id, row.entry.record.Name),
			Cred: row.entry.record.Cred,
		})
		row.entry.mu.Unlock()
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Cred > entries[j].Cred
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

// Snapshot deep-copies every record, taking each entry lock in turn. No lock
// is held once it returns, so the caller may do I/O with the result.
func (l *Ledger) Snapshot() *Document {
	rows := l.all()
	doc := &Document{Players: make(map[string]*Record, len(rows))}
	for _, row := range rows {
		row.entry.mu.Lock()
		doc.Players[row.id.String()] = row.entry.record.Clone()
		row.entry.mu.Unlock()
	}
	return doc
}

// Restore replaces the ledger contents with doc. Keys that are not valid
// UUIDs are skipped.
func (l *Ledger) Restore(doc *Document) {
	entries := make(map[uuid.UUID]*entry)
	var order []uuid.UUID

	if doc != nil {
		keys := make([]string, 0, len(doc.Players))
		for key := range doc.Players {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		for _, key := range keys {
			id, err := uuid.Parse(key)
			if err != nil {
				logrus.Warnf("skipping ledger record with invalid player id %q: %v", key, err)
				continue
			}
			record := doc.Players[key]
			if record == nil {
				continue
			}
			record = record.Clone()
			record.normalize()
			if _, dup := entries[id]; !dup {
				order = append(order, id)
			}
			entries[id] = &entry{record: record}
		}
	}

	l.mu.Lock()
	l.entries = entries
	l.order = order
	l.mu.Unlock()
}

func (l *Ledger) MarkOnline(id uuid.UUID) {
	l.onlineMu.Lock()
	defer l.onlineMu.Unlock()
	l.online[id] = struct{}{}
}

func (l *Ledger) MarkOffline(id uuid.UUID) {
	l.onlineMu.Lock()
	defer l.onlineMu.Unlock()
	delete(l.online, id)
}

func (l *Ledger) IsOnline(id uuid.UUID) bool {
	l.onlineMu.RLock()
	defer l.onlineMu.RUnlock()
	_, ok := l.online[id]
	return ok
}

// OnlinePlayers returns the online set in a stable order.
func (l *Ledger) OnlinePlayers() []uuid.UUID {
	l.onlineMu.RLock()
	ids := make([]uuid.UUID, 0, len(l.online))
	for id := range l.online {
		ids = append(ids, id)
	}
	l.onlineMu.RUnlock()

	sort.Slice(ids, func(i, j int) bool {
		return ids[i].String() < ids[j].String()
	})
	return ids
}

func displayName(id uuid.UUID, name string) string {
	if strings.TrimSpace(name) != "" {
		return name
	}
	return "Runner-" + id.String()[:6]
}
