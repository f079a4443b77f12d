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
	"go.uber.org/zap"
)

// RegisterInputs names the token and registry to link. Explicit addresses
// override whatever earlier commands recorded.
type RegisterInputs struct {
	TokenAddress                   *common.Address
	RegistryAddress                *common.Address
	ChannelParticipantDepositLimit *big.Int
	TokenNetworkDepositLimit       *big.Int
}

func Register(ctx context.Context, env Env, in RegisterInputs) (Report, error) {
	if err := ValidateRegister(env, in); err != nil {
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
	if in.RegistryAddress != nil {
		if err := s.Registry.Set(models.TokenNetworkRegistry, *in.RegistryAddress); err != nil {
			return nil, err
		}
	}
	registry, ok := s.Registry.Get(models.TokenNetworkRegistry)
	if !ok {
		return nil, fmt.Errorf("%w: no %s was specified; add --token-network-registry-address or run core-deploy first",
			constants.ErrConfiguration, models.TokenNetworkRegistry)
	}
	token, ok := s.Registry.Get(s.TokenType)
	if !ok {
		return nil, fmt.Errorf("%w: no %s address is known; run token-deploy first or pass --token-address",
			constants.ErrConfiguration, s.TokenType)
	}
	registryABI, err := s.Manifest.ABI(models.TokenNetworkRegistry)
	if err != nil {
		return nil, err
	}

	var registration *contract.Registration
	st := ux.NewStepTracker(ux.Logger)
	if err := st.Track(fmt.Sprintf("Registering %s in %s", token.Hex(), registry.Hex()), func() error {
		var err error
		registration, err = s.Deployer.RegisterToken(ctx, contract.RegisterParams{
			RegistryABI:                    registryABI,
			Registry:                       registry,
			Token:                          token,
			ChannelParticipantDepositLimit: in.ChannelParticipantDepositLimit,
			TokenNetworkDepositLimit:       in.TokenNetworkDepositLimit,
		})
		return err
	}); err != nil {
		return nil, err
	}
	if err := s.Registry.Set(models.TokenNetwork, registration.TokenNetwork); err != nil {
		return nil, err
	}
	env.Logger().Info("token registered",
		zap.String("session", s.ID),
		zap.Stringer("token", token),
		zap.Stringer("registry", registry),
		zap.Stringer("tokenNetwork", registration.TokenNetwork),
	)
	return Report{models.TokenNetwork: registration.TokenNetwork}, nil
}
