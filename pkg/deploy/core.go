// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package deploy

import (
	"context"

	"github.com/luxfi/raiden-deploy/pkg/contract"
	"github.com/luxfi/raiden-deploy/pkg/models"
	"github.com/luxfi/raiden-deploy/pkg/ux"
	"github.com/luxfi/raiden-deploy/pkg/verify"
	"go.uber.org/zap"
)

type CoreInputs struct {
	MaxTokenNetworks *uint64
	SaveInfo         bool
}

// Core deploys the core contracts. The network cap is checked against the
// contracts version before the session is touched.
func Core(ctx context.Context, env Env, in CoreInputs) (Report, error) {
	if err := ValidateCore(env, in); err != nil {
		return nil, err
	}
	s, err := env.Session(ctx)
	if err != nil {
		return nil, err
	}

	var info *models.DeploymentInfo
	st := ux.NewStepTracker(ux.Logger)
	if err := st.Track("Deploying core contracts "+s.ContractsVersion, func() error {
		var err error
		info, err = s.Deployer.DeployCoreContracts(ctx, contract.CoreParams{MaxTokenNetworks: in.MaxTokenNetworks})
		return err
	}); err != nil {
		return nil, err
	}
	if err := s.Registry.Merge(info); err != nil {
		return nil, err
	}
	env.Logger().Info("core contracts deployed",
		zap.String("session", s.ID),
		zap.Int("contracts", len(info.Contracts)),
	)
	expect := verify.Expectations{MaxTokenNetworks: in.MaxTokenNetworks}
	if err := BridgeFor(env, s, expect).Finalize(ctx, info, in.SaveInfo); err != nil {
		return nil, err
	}
	return reportOf(info), nil
}
