// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package deploy

import (
	"context"
	"fmt"
	"math/big"

	"github.com/luxfi/geth/common"
	"github.com/luxfi/raiden-deploy/pkg/constants"
	"github.com/luxfi/raiden-deploy/pkg/contract"
	"github.com/luxfi/raiden-deploy/pkg/models"
	"github.com/luxfi/raiden-deploy/pkg/ux"
	"github.com/luxfi/raiden-deploy/pkg/verify"
	"go.uber.org/zap"
)

// ServiceInputs configures the service contracts. A nil TokenAddress falls back
// to the token deployed earlier in the chain.
type ServiceInputs struct {
	TokenAddress          *common.Address
	UserDepositWholeLimit *big.Int
	SaveInfo              bool
}

func Services(ctx context.Context, env Env, in ServiceInputs) (Report, error) {
	if err := ValidateServices(env, in); err != nil {
		return nil, err
	}
	s, err := env.Session(ctx)
	if err != nil {
		return nil, err
	}
	if in.TokenAddress != nil {
		if err := s.Registry.Set(s.TokenType, *in.TokenAddress); err != nil {
			return nil, err
		}
	}
	token, ok := s.Registry.Get(s.TokenType)
	if !ok {
		return nil, fmt.Errorf("%w: no token was specified; add --token-address or run token-deploy first",
			constants.ErrConfiguration)
	}

	var info *models.DeploymentInfo
	st := ux.NewStepTracker(ux.Logger)
	if err := st.Track("Deploying service contracts "+s.ContractsVersion, func() error {
		var err error
		info, err = s.Deployer.DeployServiceContracts(ctx, contract.ServiceParams{
			TokenAddress:          token,
			UserDepositWholeLimit: in.UserDepositWholeLimit,
		})
		return err
	}); err != nil {
		return nil, err
	}
	if err := s.Registry.Merge(info); err != nil {
		return nil, err
	}
	env.Logger().Info("service contracts deployed",
		zap.String("session", s.ID),
		zap.Stringer("token", token),
	)
	expect := verify.Expectations{TokenAddress: &token, UserDepositWholeLimit: in.UserDepositWholeLimit}
	if err := BridgeFor(env, s, expect).Finalize(ctx, info, in.SaveInfo); err != nil {
		return nil, err
	}
	return reportOf(info), nil
}
