// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package deploy

import (
	"context"
	"fmt"
	"reflect"

	luxlog "github.com/luxfi/log"
	"github.com/luxfi/raiden-deploy/pkg/deployinfo"
	"github.com/luxfi/raiden-deploy/pkg/models"
	"github.com/luxfi/raiden-deploy/pkg/session"
	"github.com/luxfi/raiden-deploy/pkg/ux"
	"github.com/luxfi/raiden-deploy/pkg/verify"
	"go.uber.org/zap"
)

// Verifier checks a deployment info against the ledger.
type Verifier interface {
	Verify(ctx context.Context, info *models.DeploymentInfo) error
}

// Bridge persists a fresh deployment and verifies what was persisted.
type Bridge struct {
	store    *deployinfo.Store
	verifier Verifier
	log      luxlog.Logger
}

func NewBridge(store *deployinfo.Store, verifier Verifier, log luxlog.Logger) *Bridge {
	return &Bridge{store: store, verifier: verifier, log: log}
}

// BridgeFor binds a bridge to the ledger and manifest of s. Deployments are
// verified against the inputs in expect.
func BridgeFor(env Env, s *session.Session, expect verify.Expectations) *Bridge {
	verifier := verify.NewVerifier(s.Client, s.Manifest, s.ChainID, env.Logger()).Expect(expect)
	return NewBridge(env.Store(), verifier, env.Logger())
}

// Finalize verifies info. With save, info is first persisted and the verified
// copy is the one read back from the store, which must equal info.
func (b *Bridge) Finalize(ctx context.Context, info *models.DeploymentInfo, save bool) error {
	if !save {
		return b.verifier.Verify(ctx, info)
	}
	path, err := b.store.Persist(info)
	if err != nil {
		return err
	}
	loaded, err := b.store.Load(info.Kind, info.ChainID, info.ContractsVersion)
	if err != nil {
		return err
	}
	if !reflect.DeepEqual(info, loaded) {
		return fmt.Errorf("deployment info read back from %s differs from what was written", path)
	}
	b.log.Info("deployment info saved", zap.String("path", path), zap.String("kind", string(info.Kind)))
	if err := b.verifier.Verify(ctx, loaded); err != nil {
		return err
	}
	ux.Logger.PrintToUser("Deployment info saved to %s", path)
	return nil
}
