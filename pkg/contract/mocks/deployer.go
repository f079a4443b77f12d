// Code generated manually for testing. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/luxfi/geth/common"
	"github.com/luxfi/raiden-deploy/pkg/contract"
	"github.com/luxfi/raiden-deploy/pkg/models"
	"github.com/stretchr/testify/mock"
)

// Deployer is a mock implementation of contract.Deployer
type Deployer struct {
	mock.Mock
}

func (m *Deployer) Owner() common.Address {
	args := m.Called()
	return args.Get(0).(common.Address)
}

func (m *Deployer) DeployCoreContracts(ctx context.Context, params contract.CoreParams) (*models.DeploymentInfo, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DeploymentInfo), args.Error(1)
}

func (m *Deployer) DeployServiceContracts(ctx context.Context, params contract.ServiceParams) (*models.DeploymentInfo, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DeploymentInfo), args.Error(1)
}

func (m *Deployer) DeployToken(ctx context.Context, params contract.TokenParams) (models.DeployedContract, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(models.DeployedContract), args.Error(1)
}

func (m *Deployer) RegisterToken(ctx context.Context, params contract.RegisterParams) (*contract.Registration, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*contract.Registration), args.Error(1)
}
