// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package contract

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"time"

	"github.com/luxfi/crypto"
	ethereum "github.com/luxfi/geth"
	"github.com/luxfi/geth/accounts/abi"
	"github.com/luxfi/geth/common"
	"github.com/luxfi/geth/core/types"
	luxlog "github.com/luxfi/log"
	"github.com/luxfi/raiden-deploy/pkg/constants"
	"github.com/luxfi/raiden-deploy/pkg/manifest"
	"github.com/luxfi/raiden-deploy/pkg/models"
	"go.uber.org/zap"
)

const CreateTokenNetworkMethod = "createERC20TokenNetwork"

// GasPolicy is the fixed price and limit used for every transaction of a session.
type GasPolicy struct {
	Price *big.Int
	Limit uint64
}

type CoreParams struct {
	MaxTokenNetworks *uint64
}

type ServiceParams struct {
	TokenAddress          common.Address
	UserDepositWholeLimit *big.Int
}

type TokenParams struct {
	Type     models.ContractName
	Supply   *big.Int
	Decimals uint8
	Name     string
	Symbol   string
}

// RegisterParams describes a createERC20TokenNetwork call. Nil limits mean no cap.
type RegisterParams struct {
	RegistryABI                    abi.ABI
	Registry                       common.Address
	Token                          common.Address
	ChannelParticipantDepositLimit *big.Int
	TokenNetworkDepositLimit       *big.Int
}

type Registration struct {
	Receipt      *types.Receipt
	TokenNetwork common.Address
}

// Deployer submits the contract deployments and calls of a session.
type Deployer interface {
	Owner() common.Address
	DeployCoreContracts(ctx context.Context, params CoreParams) (*models.DeploymentInfo, error)
	DeployServiceContracts(ctx context.Context, params ServiceParams) (*models.DeploymentInfo, error)
	DeployToken(ctx context.Context, params TokenParams) (models.DeployedContract, error)
	RegisterToken(ctx context.Context, params RegisterParams) (*Registration, error)
}

type DeployerConfig struct {
	Client   Client
	Key      *ecdsa.PrivateKey
	ChainID  *big.Int
	Gas      GasPolicy
	Wait     time.Duration
	Manifest *manifest.Manifest
	Log      luxlog.Logger
}

// EthDeployer sends legacy EIP-155 transactions signed with the session key and
// waits for each one to be mined before sending the next.
type EthDeployer struct {
	client       Client
	key          *ecdsa.PrivateKey
	owner        common.Address
	chainID      *big.Int
	signer       types.Signer
	gas          GasPolicy
	wait         time.Duration
	pollInterval time.Duration
	manifest     *manifest.Manifest
	log          luxlog.Logger
}

func NewEthDeployer(cfg DeployerConfig) *EthDeployer {
	log := cfg.Log
	if log == nil {
		log = luxlog.NewNoOpLogger()
	}
	return &EthDeployer{
		client:       cfg.Client,
		key:          cfg.Key,
		owner:        common.Address(crypto.PubkeyToAddress(cfg.Key.PublicKey)),
		chainID:      new(big.Int).Set(cfg.ChainID),
		signer:       types.NewEIP155Signer(cfg.ChainID),
		gas:          cfg.Gas,
		wait:         cfg.Wait,
		pollInterval: constants.ReceiptPollInterval,
		manifest:     cfg.Manifest,
		log:          log,
	}
}

func (d *EthDeployer) Owner() common.Address {
	return d.owner
}

func (d *EthDeployer) DeployCoreContracts(ctx context.Context, params CoreParams) (*models.DeploymentInfo, error) {
	info := models.NewDeploymentInfo(models.CoreDeployment, d.manifest.Version, d.chainID.Uint64())
	if d.manifest.Has(models.EndpointRegistry) {
		if _, err := d.deployInto(ctx, info, models.EndpointRegistry); err != nil {
			return nil, err
		}
	}
	secretRegistry, err := d.deployInto(ctx, info, models.SecretRegistry)
	if err != nil {
		return nil, err
	}
	args := []interface{}{
		secretRegistry.Address,
		new(big.Int).Set(d.chainID),
		big.NewInt(constants.SettleTimeoutMin),
		big.NewInt(constants.SettleTimeoutMax),
	}
	if params.MaxTokenNetworks != nil {
		args = append(args, new(big.Int).SetUint64(*params.MaxTokenNetworks))
	}
	if _, err := d.deployInto(ctx, info, models.TokenNetworkRegistry, args...); err != nil {
		return nil, err
	}
	return info, nil
}

func (d *EthDeployer) DeployServiceContracts(ctx context.Context, params ServiceParams) (*models.DeploymentInfo, error) {
	if params.UserDepositWholeLimit == nil || params.UserDepositWholeLimit.Sign() <= 0 {
		return nil, fmt.Errorf("%w: user deposit whole limit must be positive", constants.ErrParameter)
	}
	info := models.NewDeploymentInfo(models.ServicesDeployment, d.manifest.Version, d.chainID.Uint64())
	serviceRegistry, err := d.deployInto(ctx, info, models.ServiceRegistry, params.TokenAddress)
	if err != nil {
		return nil, err
	}
	userDeposit, err := d.deployInto(ctx, info, models.UserDeposit, params.TokenAddress, params.UserDepositWholeLimit)
	if err != nil {
		return nil, err
	}
	monitoringService, err := d.deployInto(
		ctx,
		info,
		models.MonitoringService,
		params.TokenAddress,
		serviceRegistry.Address,
		userDeposit.Address,
	)
	if err != nil {
		return nil, err
	}
	oneToN, err := d.deployInto(ctx, info, models.OneToN, userDeposit.Address, new(big.Int).Set(d.chainID))
	if err != nil {
		return nil, err
	}
	if _, err := d.Transact(ctx, models.UserDeposit, userDeposit.Address, "init", monitoringService.Address, oneToN.Address); err != nil {
		return nil, err
	}
	return info, nil
}

func (d *EthDeployer) DeployToken(ctx context.Context, params TokenParams) (models.DeployedContract, error) {
	return d.DeployContract(ctx, params.Type, params.Supply, params.Decimals, params.Name, params.Symbol)
}

// RegisterToken creates the token network of params.Token on params.Registry and
// reads back its address.
func (d *EthDeployer) RegisterToken(ctx context.Context, params RegisterParams) (*Registration, error) {
	method, ok := params.RegistryABI.Methods[CreateTokenNetworkMethod]
	if !ok {
		return nil, fmt.Errorf("%w: %s ABI has no %s method",
			constants.ErrConfiguration, models.TokenNetworkRegistry, CreateTokenNetworkMethod)
	}
	args := []interface{}{params.Token}
	switch len(method.Inputs) {
	case 1:
		if params.ChannelParticipantDepositLimit != nil || params.TokenNetworkDepositLimit != nil {
			return nil, fmt.Errorf("%w: deposit limits are not accepted by %s of contracts version %s",
				constants.ErrParameter, models.TokenNetworkRegistry, d.manifest.Version)
		}
	case 3:
		args = append(args,
			limitOrUnbounded(params.ChannelParticipantDepositLimit),
			limitOrUnbounded(params.TokenNetworkDepositLimit),
		)
	default:
		return nil, fmt.Errorf("%w: unexpected %s signature with %d inputs",
			constants.ErrConfiguration, CreateTokenNetworkMethod, len(method.Inputs))
	}

	data, err := params.RegistryABI.Pack(CreateTokenNetworkMethod, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: failure packing %s: %w", constants.ErrParameter, CreateTokenNetworkMethod, err)
	}
	registry := params.Registry
	receipt, err := d.send(ctx, &registry, data, fmt.Sprintf("%s of %s", CreateTokenNetworkMethod, params.Token.Hex()))
	if err != nil {
		return nil, err
	}

	out, err := d.call(ctx, params.RegistryABI, params.Registry, "token_to_token_networks", params.Token)
	if err != nil {
		return nil, err
	}
	if len(out) != 1 {
		return nil, fmt.Errorf("%w: unexpected token_to_token_networks result %v", constants.ErrChain, out)
	}
	tokenNetwork, ok := out[0].(common.Address)
	if !ok || tokenNetwork == (common.Address{}) {
		return nil, fmt.Errorf("%w: no token network registered for %s", constants.ErrChain, params.Token.Hex())
	}
	d.log.Info("token network created",
		zap.Stringer("token", params.Token),
		zap.Stringer("tokenNetwork", tokenNetwork),
		zap.Stringer("txHash", receipt.TxHash),
	)
	return &Registration{Receipt: receipt, TokenNetwork: tokenNetwork}, nil
}

// DeployContract deploys name from the manifest with the given constructor arguments.
func (d *EthDeployer) DeployContract(ctx context.Context, name models.ContractName, args ...interface{}) (models.DeployedContract, error) {
	contractABI, err := d.manifest.ABI(name)
	if err != nil {
		return models.DeployedContract{}, err
	}
	bytecode, err := d.manifest.Bytecode(name)
	if err != nil {
		return models.DeployedContract{}, err
	}
	packed, err := contractABI.Pack("", args...)
	if err != nil {
		return models.DeployedContract{}, fmt.Errorf("%w: failure packing %s constructor arguments: %w",
			constants.ErrParameter, name, err)
	}
	receipt, err := d.send(ctx, nil, append(bytecode, packed...), fmt.Sprintf("deployment of %s", name))
	if err != nil {
		return models.DeployedContract{}, err
	}
	if receipt.ContractAddress == (common.Address{}) {
		return models.DeployedContract{}, fmt.Errorf("%w: receipt of %s deployment has no contract address", constants.ErrChain, name)
	}
	deployed := models.DeployedContract{
		Address:              receipt.ContractAddress,
		TransactionHash:      receipt.TxHash,
		GasCost:              receipt.GasUsed,
		ConstructorArguments: FormatArgs(args...),
	}
	if receipt.BlockNumber != nil {
		deployed.BlockNumber = receipt.BlockNumber.Uint64()
	}
	d.log.Info("contract deployed",
		zap.String("contract", name.String()),
		zap.Stringer("address", deployed.Address),
		zap.Uint64("block", deployed.BlockNumber),
		zap.Uint64("gasUsed", deployed.GasCost),
	)
	return deployed, nil
}

// Transact calls method on the deployed contract name at address.
func (d *EthDeployer) Transact(
	ctx context.Context,
	name models.ContractName,
	address common.Address,
	method string,
	args ...interface{},
) (*types.Receipt, error) {
	contractABI, err := d.manifest.ABI(name)
	if err != nil {
		return nil, err
	}
	data, err := contractABI.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: failure packing %s.%s: %w", constants.ErrParameter, name, method, err)
	}
	return d.send(ctx, &address, data, fmt.Sprintf("%s.%s", name, method))
}

func (d *EthDeployer) deployInto(
	ctx context.Context,
	info *models.DeploymentInfo,
	name models.ContractName,
	args ...interface{},
) (models.DeployedContract, error) {
	deployed, err := d.DeployContract(ctx, name, args...)
	if err != nil {
		return models.DeployedContract{}, err
	}
	info.Contracts[name] = deployed
	return deployed, nil
}

func (d *EthDeployer) call(
	ctx context.Context,
	contractABI abi.ABI,
	address common.Address,
	method string,
	args ...interface{},
) ([]interface{}, error) {
	data, err := contractABI.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: failure packing %s: %w", constants.ErrParameter, method, err)
	}
	out, err := d.client.CallContract(ctx, ethereum.CallMsg{From: d.owner, To: &address, Data: data}, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failure calling %s on %s: %w", constants.ErrChain, method, address.Hex(), err)
	}
	values, err := contractABI.Unpack(method, out)
	if err != nil {
		return nil, fmt.Errorf("%w: failure unpacking %s result: %w", constants.ErrChain, method, err)
	}
	return values, nil
}

func (d *EthDeployer) send(ctx context.Context, to *common.Address, data []byte, description string) (*types.Receipt, error) {
	nonce, err := d.client.PendingNonceAt(ctx, d.owner)
	if err != nil {
		return nil, fmt.Errorf("%w: failure getting nonce of %s: %w", constants.ErrChain, d.owner.Hex(), err)
	}
	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		GasPrice: d.gas.Price,
		Gas:      d.gas.Limit,
		To:       to,
		Value:    big.NewInt(0),
		Data:     data,
	})
	signedTx, err := types.SignTx(tx, d.signer, d.key)
	if err != nil {
		return nil, TransactionError(nil, err, "failure signing %s", description)
	}
	if err := d.client.SendTransaction(ctx, signedTx); err != nil {
		return nil, TransactionError(nil, err, "failure sending %s", description)
	}
	d.log.Debug("transaction sent", zap.String("what", description), zap.Stringer("txHash", signedTx.Hash()))

	receipt, err := WaitMined(ctx, d.client, signedTx, d.wait, d.pollInterval)
	if err != nil {
		return nil, err
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, TransactionError(signedTx, errReverted, "%s", description)
	}
	return receipt, nil
}
