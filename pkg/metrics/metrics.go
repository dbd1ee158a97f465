// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package metrics defines the Prometheus collectors for economy outcomes.
// They are registered on the metrics server's registry in internal/server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "runner_economy"

// Cred sources.
const (
	SourceChat    = "chat"
	SourceOnline  = "online"
	SourceNetrun  = "netrun"
	SourceDaily   = "daily"
	SourceDrop    = "drop"
	SourcePerk    = "perk"
	SourcePenalty = "penalty"
)

var (
	NetrunResultsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "netrun_results_total",
			Help:      "Netrun outcomes by result.",
		},
		[]string{"result"},
	)

	CredAwardedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cred_awarded_total",
			Help:      "Cred credited to players by source.",
		},
		[]string{"source"},
	)

	CredSpentTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cred_spent_total",
			Help:      "Cred debited from players by reason.",
		},
		[]string{"source"},
	)

	PerkPurchasesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "perk_purchases_total",
			Help:      "Perk rank purchases by perk id.",
		},
		[]string{"perk_id"},
	)

	EventsStartedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_started_total",
			Help:      "Events instantiated by the scheduler, by type.",
		},
		[]string{"event_type"},
	)

	DailyClaimsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "daily_claims_total",
			Help:      "Daily contracts claimed.",
		},
	)

	SnapshotSavesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "snapshot_saves_total",
			Help:      "Ledger snapshot writes by outcome.",
		},
		[]string{"outcome"},
	)

	OnlinePlayers = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "online_players",
			Help:      "Players currently marked online.",
		},
	)
)

// Collectors lists every collector in this package for registration.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		NetrunResultsTotal,
		CredAwardedTotal,
		CredSpentTotal,
		PerkPurchasesTotal,
		EventsStartedTotal,
		DailyClaimsTotal,
		SnapshotSavesTotal,
		OnlinePlayers,
	}
}

// Award records a positive cred credit. Non-positive amounts are ignored.
func Award(source string, amount int) {
	if amount > 0 {
		CredAwardedTotal.WithLabelValues(source).Add(float64(amount))
	}
}

// Spend records a cred debit. Non-positive amounts are ignored.
func Spend(source string, amount int) {
	if amount > 0 {
		CredSpentTotal.WithLabelValues(source).Add(float64(amount))
	}
}
