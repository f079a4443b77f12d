// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package session

import (
	"context"
	"crypto/ecdsa"

	"github.com/luxfi/raiden-deploy/pkg/contract"
	"github.com/luxfi/raiden-deploy/pkg/key"
)

// Backend supplies the collaborators a session is bound to.
type Backend interface {
	Dial(ctx context.Context, rpcURL string) (contract.Client, error)
	LoadKey(keyPath, passwordFile string) (*ecdsa.PrivateKey, error)
	NewDeployer(cfg contract.DeployerConfig) contract.Deployer
}

// EthBackend talks JSON-RPC and reads keys through Loader.
type EthBackend struct {
	Loader key.Loader
}

func (EthBackend) Dial(ctx context.Context, rpcURL string) (contract.Client, error) {
	return contract.Dial(ctx, rpcURL)
}

func (b EthBackend) LoadKey(keyPath, passwordFile string) (*ecdsa.PrivateKey, error) {
	return b.Loader.Load(keyPath, passwordFile)
}

func (EthBackend) NewDeployer(cfg contract.DeployerConfig) contract.Deployer {
	return contract.NewEthDeployer(cfg)
}
