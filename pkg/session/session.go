// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package session holds the state shared by a chain of deploy commands: the
// signing identity, gas policy, contracts version, ledger connection and the
// registry of known contract addresses.
package session

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/luxfi/crypto"
	"github.com/luxfi/geth/common"
	luxlog "github.com/luxfi/log"
	"github.com/luxfi/raiden-deploy/pkg/constants"
	"github.com/luxfi/raiden-deploy/pkg/contract"
	"github.com/luxfi/raiden-deploy/pkg/manifest"
	"github.com/luxfi/raiden-deploy/pkg/models"
	"go.uber.org/zap"
)

var gwei = big.NewInt(1_000_000_000)

// Inputs are the shared settings a session is built from.
type Inputs struct {
	KeyPath          string
	PasswordFile     string
	RPCProvider      string
	WaitSeconds      uint64
	GasPriceGwei     uint64
	GasLimit         uint64
	ContractsVersion *string
}

// Equal reports whether in and other would build the same session.
func (in Inputs) Equal(other Inputs) bool {
	if (in.ContractsVersion == nil) != (other.ContractsVersion == nil) {
		return false
	}
	if in.ContractsVersion != nil && *in.ContractsVersion != *other.ContractsVersion {
		return false
	}
	return in.KeyPath == other.KeyPath &&
		in.PasswordFile == other.PasswordFile &&
		in.RPCProvider == other.RPCProvider &&
		in.WaitSeconds == other.WaitSeconds &&
		in.GasPriceGwei == other.GasPriceGwei &&
		in.GasLimit == other.GasLimit
}

type Session struct {
	ID               string
	Owner            common.Address
	Gas              contract.GasPolicy
	Wait             time.Duration
	ContractsVersion string
	ChainID          uint64
	Registry         *Registry
	TokenType        models.ContractName

	Client   contract.Client
	Deployer contract.Deployer
	Manifest *manifest.Manifest

	inputs Inputs
}

// Setup resolves the key, connects to the ledger and binds a deployer. It only
// performs read calls; nothing is sent.
func Setup(
	ctx context.Context,
	backend Backend,
	m *manifest.Manifest,
	in Inputs,
	log luxlog.Logger,
) (*Session, error) {
	if in.KeyPath == "" {
		return nil, fmt.Errorf("%w: a private key is required (--private-key)", constants.ErrConfiguration)
	}
	pk, err := backend.LoadKey(in.KeyPath, in.PasswordFile)
	if err != nil {
		return nil, err
	}
	client, err := backend.Dial(ctx, in.RPCProvider)
	if err != nil {
		return nil, err
	}
	s, err := bind(ctx, backend, client, pk, m, in, log)
	if err != nil {
		client.Close()
		return nil, err
	}
	log.Info("deployment session ready",
		zap.String("session", s.ID),
		zap.Stringer("owner", s.Owner),
		zap.Uint64("chainID", s.ChainID),
		zap.String("contractsVersion", s.ContractsVersion),
		zap.Stringer("gasPrice", s.Gas.Price),
		zap.Uint64("gasLimit", s.Gas.Limit),
		zap.Duration("wait", s.Wait),
	)
	return s, nil
}

func bind(
	ctx context.Context,
	backend Backend,
	client contract.Client,
	pk *ecdsa.PrivateKey,
	m *manifest.Manifest,
	in Inputs,
	log luxlog.Logger,
) (*Session, error) {
	owner := common.Address(crypto.PubkeyToAddress(pk.PublicKey))
	chainID, err := client.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: failure reading chain id from %s: %w", constants.ErrChain, in.RPCProvider, err)
	}
	balance, err := client.BalanceAt(ctx, owner, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failure reading balance of %s: %w", constants.ErrChain, owner.Hex(), err)
	}
	if balance.Sign() == 0 {
		return nil, fmt.Errorf("%w: %s", constants.ErrInsufficientFunds, owner.Hex())
	}

	gas := contract.GasPolicy{
		Price: new(big.Int).Mul(new(big.Int).SetUint64(in.GasPriceGwei), gwei),
		Limit: in.GasLimit,
	}
	wait := time.Duration(in.WaitSeconds) * time.Second
	deployer := backend.NewDeployer(contract.DeployerConfig{
		Client:   client,
		Key:      pk,
		ChainID:  chainID,
		Gas:      gas,
		Wait:     wait,
		Manifest: m,
		Log:      log,
	})
	return &Session{
		ID:               uuid.NewString(),
		Owner:            owner,
		Gas:              gas,
		Wait:             wait,
		ContractsVersion: m.Version,
		ChainID:          chainID.Uint64(),
		Registry:         NewRegistry(),
		TokenType:        models.CustomToken,
		Client:           client,
		Deployer:         deployer,
		Manifest:         m,
		inputs:           in,
	}, nil
}

// CheckInputs fails when in would build a different session than s.
func (s *Session) CheckInputs(in Inputs) error {
	if !s.inputs.Equal(in) {
		return fmt.Errorf("%w: shared options differ from the ones the deployment session was created with",
			constants.ErrConfiguration)
	}
	return nil
}

func (s *Session) Close() {
	if s.Client != nil {
		s.Client.Close()
	}
}
