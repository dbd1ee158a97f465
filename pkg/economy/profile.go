// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package economy

import (
	"time"

	"github.com/AccelByte/extend-runner-economy/pkg/daily"
	"github.com/AccelByte/extend-runner-economy/pkg/ledger"
	"github.com/AccelByte/extend-runner-economy/pkg/rules"

	"github.com/google/uuid"
)

// Profile is the read model behind the profile screen.
type Profile struct {
	ID     uuid.UUID
	Name   string
	Cred   int
	Title  string
	Stats  ledger.Stats
	Daily  daily.View
	Perks  []rules.PerkDefinition
	Event  *ledger.ActiveEvent
	Online bool
}

// Status describes the running service.
type Status struct {
	Version string
	Theme   string
	Uptime  time.Duration
	Players int
	Online  int
}

func (m *Manager) Title(playerID uuid.UUID) string {
	return m.resolver.Current().TitleFor(m.ledger.Cred(playerID))
}

// Profile gathers a player's balance, title, netrun stats, daily contract,
// active perks and live event.
func (m *Manager) Profile(playerID uuid.UUID) Profile {
	cred := m.ledger.Cred(playerID)
	p := Profile{
		ID:     playerID,
		Name:   m.ledger.Name(playerID),
		Cred:   cred,
		Title:  m.resolver.Current().TitleFor(cred),
		Stats:  m.ledger.Stats(playerID),
		Daily:  m.daily.View(playerID),
		Perks:  m.perks.Active(playerID),
		Online: m.ledger.IsOnline(playerID),
	}
	if ev, ok := m.events.Active(playerID); ok {
		p.Event = &ev
	}
	return p
}

func (m *Manager) Status() Status {
	return Status{
		Version: m.version,
		Theme:   m.resolver.Current().Theme.Name,
		Uptime:  max(0, m.now().Sub(m.started)),
		Players: m.ledger.Len(),
		Online:  len(m.ledger.OnlinePlayers()),
	}
}
