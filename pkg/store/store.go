// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package store persists ledger snapshots. Every backend stores the whole
// ledger as one JSON document and replaces it on each save.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/AccelByte/extend-runner-economy/pkg/ledger"
)

var (
	// ErrNotFound means no snapshot has been saved yet.
	ErrNotFound = errors.New("ledger snapshot not found")
	// ErrCorrupt means a snapshot exists but cannot be decoded.
	ErrCorrupt = errors.New("ledger snapshot is corrupt")
)

// Backend names accepted by STORE_BACKEND.
const (
	BackendFile     = "file"
	BackendRedis    = "redis"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

// Store is a ledger snapshot backend.
type Store interface {
	LoadLedger(ctx context.Context) (*ledger.Document, error)
	SaveLedger(ctx context.Context, doc *ledger.Document) error
	// Check reports whether the backend is reachable.
	Check(ctx context.Context) error
	Close() error
}

func encode(doc *ledger.Document) ([]byte, error) {
	if doc == nil {
		doc = &ledger.Document{}
	}
	if doc.Players == nil {
		doc = &ledger.Document{Players: map[string]*ledger.Record{}}
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal ledger snapshot: %w", err)
	}
	return data, nil
}

func decode(data []byte) (*ledger.Document, error) {
	var doc ledger.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if doc.Players == nil {
		doc.Players = map[string]*ledger.Record{}
	}
	return &doc, nil
}
