// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package deploy

import (
	"fmt"

	"github.com/luxfi/raiden-deploy/pkg/constants"
	"github.com/luxfi/raiden-deploy/pkg/contract"
	"github.com/luxfi/raiden-deploy/pkg/models"
	"github.com/luxfi/raiden-deploy/pkg/versions"
)

// The Validate functions check the inputs of a workflow against the selected
// manifest. They read the filesystem only, so a command chain can run all of
// them before its first command sends anything.

// ValidateCore checks the network cap against the contracts version.
func ValidateCore(env Env, in CoreInputs) error {
	m, err := env.Manifest()
	if err != nil {
		return err
	}
	return versions.ValidateParameters(m.Version, m.RequiresMaxTokenNetworks(), in.MaxTokenNetworks)
}

func ValidateServices(env Env, in ServiceInputs) error {
	if in.UserDepositWholeLimit == nil || in.UserDepositWholeLimit.Sign() <= 0 {
		return fmt.Errorf("%w: --user-deposit-whole-limit must be a positive integer", constants.ErrParameter)
	}
	_, err := env.Manifest()
	return err
}

func ValidateToken(env Env, in TokenInputs) error {
	if _, err := ScaleSupply(in.Supply, in.Decimals); err != nil {
		return err
	}
	_, err := env.Manifest()
	return err
}

// ValidateRegister rejects deposit limits for registries that take none.
func ValidateRegister(env Env, in RegisterInputs) error {
	m, err := env.Manifest()
	if err != nil {
		return err
	}
	if in.ChannelParticipantDepositLimit == nil && in.TokenNetworkDepositLimit == nil {
		return nil
	}
	registryABI, err := m.ABI(models.TokenNetworkRegistry)
	if err != nil {
		return err
	}
	if method, ok := registryABI.Methods[contract.CreateTokenNetworkMethod]; ok && len(method.Inputs) == 1 {
		return fmt.Errorf("%w: deposit limits are not accepted by %s of contracts version %s",
			constants.ErrParameter, models.TokenNetworkRegistry, m.Version)
	}
	return nil
}
