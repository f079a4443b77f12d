// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package deploy

import (
	"context"
	"fmt"
	"math/big"

	"github.com/luxfi/raiden-deploy/pkg/constants"
	"github.com/luxfi/raiden-deploy/pkg/contract"
	"github.com/luxfi/raiden-deploy/pkg/models"
	"github.com/luxfi/raiden-deploy/pkg/ux"
	"go.uber.org/zap"
)

const uint256Bits = 256

type TokenInputs struct {
	Supply   uint64
	Decimals uint8
	Name     string
	Symbol   string
}

// ScaleSupply converts a supply in whole tokens into base units. Results that
// do not fit an EVM uint256 are rejected.
func ScaleSupply(supply uint64, decimals uint8) (*big.Int, error) {
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	scaled := new(big.Int).Mul(new(big.Int).SetUint64(supply), scale)
	if scaled.BitLen() > uint256Bits {
		return nil, fmt.Errorf("%w: token supply %d with %d decimals does not fit in 256 bits",
			constants.ErrParameter, supply, decimals)
	}
	return scaled, nil
}

// Token deploys a settlement token. Token deployments are not persisted.
func Token(ctx context.Context, env Env, in TokenInputs) (Report, error) {
	if err := ValidateToken(env, in); err != nil {
		return nil, err
	}
	scaled, err := ScaleSupply(in.Supply, in.Decimals)
	if err != nil {
		return nil, err
	}
	s, err := env.Session(ctx)
	if err != nil {
		return nil, err
	}

	var deployed models.DeployedContract
	st := ux.NewStepTracker(ux.Logger)
	if err := st.Track(fmt.Sprintf("Deploying %s %s (%s)", s.TokenType, in.Symbol, in.Name), func() error {
		var err error
		deployed, err = s.Deployer.DeployToken(ctx, contract.TokenParams{
			Type:     s.TokenType,
			Supply:   scaled,
			Decimals: in.Decimals,
			Name:     in.Name,
			Symbol:   in.Symbol,
		})
		return err
	}); err != nil {
		return nil, err
	}
	if err := s.Registry.Set(s.TokenType, deployed.Address); err != nil {
		return nil, err
	}
	ux.Logger.PrintToUser("Minted %s %s to %s", ux.ConvertToStringWithThousandSeparator(in.Supply), in.Symbol, s.Owner.Hex())
	env.Logger().Info("token deployed",
		zap.String("session", s.ID),
		zap.Stringer("address", deployed.Address),
		zap.String("supply", scaled.String()),
	)
	return Report{s.TokenType: deployed.Address}, nil
}
