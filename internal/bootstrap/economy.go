// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package bootstrap

import (
	"context"
	"fmt"

	"github.com/AccelByte/extend-runner-economy/internal/config"
	"github.com/AccelByte/extend-runner-economy/pkg/economy"
	"github.com/AccelByte/extend-runner-economy/pkg/rules"
	"github.com/AccelByte/extend-runner-economy/pkg/store"

	"github.com/sirupsen/logrus"
)

// InitRules creates the loader for the rules document. The document itself
// is read by the manager on Load.
func InitRules(cfg *config.Config) *rules.Loader {
	loader := rules.NewLoader(cfg.RulesFile())
	logrus.Infof("rules document: %s", loader.Path())
	return loader
}

// InitManager builds the economy manager and loads its state.
//
// ============================================================
// DEVELOPER: Manager options
// ============================================================
// Tests and tools can pass extra economy.Option values to swap the
// clock or the random sources of the subsystems, for example
// economy.WithEventOptions(event.WithRandom(...)).
// ============================================================
func InitManager(ctx context.Context, cfg *config.Config, st store.Store, loader *rules.Loader, opts ...economy.Option) (*economy.Manager, error) {
	opts = append([]economy.Option{economy.WithVersion(cfg.AppVersion)}, opts...)
	manager := economy.New(st, loader, opts...)
	if err := manager.Load(ctx); err != nil {
		return nil, fmt.Errorf("failed to load economy state: %w", err)
	}

	rs := manager.Rules()
	logrus.Infof("initialized economy manager: theme=%s tiers=%d risks=%d perks=%d events=%d players=%d",
		rs.Theme.Name, len(rs.Tiers), len(rs.Risks), len(rs.Perks), len(rs.Events), manager.Ledger().Len())
	return manager, nil
}
