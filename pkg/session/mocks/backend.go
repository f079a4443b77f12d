// Code generated manually for testing. DO NOT EDIT.

package mocks

import (
	"context"
	"crypto/ecdsa"

	"github.com/luxfi/raiden-deploy/pkg/contract"
	"github.com/stretchr/testify/mock"
)

// Backend is a mock implementation of session.Backend
type Backend struct {
	mock.Mock
}

func (m *Backend) Dial(ctx context.Context, rpcURL string) (contract.Client, error) {
	args := m.Called(ctx, rpcURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(contract.Client), args.Error(1)
}

func (m *Backend) LoadKey(keyPath, passwordFile string) (*ecdsa.PrivateKey, error) {
	args := m.Called(keyPath, passwordFile)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ecdsa.PrivateKey), args.Error(1)
}

func (m *Backend) NewDeployer(cfg contract.DeployerConfig) contract.Deployer {
	args := m.Called(cfg)
	return args.Get(0).(contract.Deployer)
}
