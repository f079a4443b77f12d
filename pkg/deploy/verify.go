// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package deploy

import (
	"context"
	"errors"
	"fmt"

	"github.com/luxfi/raiden-deploy/pkg/constants"
	"github.com/luxfi/raiden-deploy/pkg/deployinfo"
	"github.com/luxfi/raiden-deploy/pkg/models"
	"github.com/luxfi/raiden-deploy/pkg/ux"
	"github.com/luxfi/raiden-deploy/pkg/verify"
	"go.uber.org/zap"
)

// VerifyStandalone checks the recorded core deployment, and the service
// deployment when one was recorded, of the connected chain. It sends nothing.
// Every mismatch is collected into one *verify.MismatchError.
func VerifyStandalone(ctx context.Context, env Env) (Report, error) {
	m, err := env.Manifest()
	if err != nil {
		return nil, err
	}
	client, err := env.ReadClient(ctx)
	if err != nil {
		return nil, err
	}
	id, err := client.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: failure reading chain id: %w", constants.ErrChain, err)
	}
	chainID := id.Uint64()
	network := models.NetworkFromChainID(chainID)

	core, err := env.Store().Load(models.CoreDeployment, chainID, m.Version)
	if errors.Is(err, deployinfo.ErrNotFound) {
		return nil, fmt.Errorf("%w: no core deployment of contracts version %s recorded for %s",
			constants.ErrConfiguration, m.Version, network)
	}
	if err != nil {
		return nil, err
	}
	infos := []*models.DeploymentInfo{core}
	services, err := env.Store().Load(models.ServicesDeployment, chainID, m.Version)
	switch {
	case err == nil:
		infos = append(infos, services)
	case !errors.Is(err, deployinfo.ErrNotFound):
		return nil, err
	}

	verifier := verify.NewVerifier(client, m, chainID, env.Logger())
	report := Report{}
	var mismatches []*verify.MismatchError
	for _, info := range infos {
		err := verifier.Verify(ctx, info)
		var mismatchErr *verify.MismatchError
		switch {
		case errors.As(err, &mismatchErr):
			mismatches = append(mismatches, mismatchErr)
		case err != nil:
			return nil, err
		default:
			ux.Logger.GreenCheckmarkToUser("%s deployment %s on %s verified", info.Kind, info.ContractsVersion, network)
		}
		for name, address := range info.Addresses() {
			report[name] = address
		}
	}
	if joined := verify.Join(mismatches...); joined != nil {
		env.Logger().Warn("verification failed", zap.Int("mismatches", len(joined.Mismatches)))
		return nil, joined
	}
	return report, nil
}
