// Copyright (C) 2022-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package models

import (
	"sort"

	"github.com/luxfi/geth/common"
)

// DeploymentKind selects which contract set a DeploymentInfo describes.
type DeploymentKind string

const (
	CoreDeployment     DeploymentKind = "core"
	ServicesDeployment DeploymentKind = "services"
)

// ExpectedContracts returns the contract set a deployment of this kind is made of.
func (k DeploymentKind) ExpectedContracts() []ContractName {
	if k == ServicesDeployment {
		return ServiceContracts
	}
	return CoreContracts
}

// DeployedContract is the record of one deployed contract. Constructor arguments are
// kept in their printable form: addresses as EIP-55 hex, integers in decimal.
type DeployedContract struct {
	Address              common.Address `json:"address"`
	TransactionHash      common.Hash    `json:"transaction_hash"`
	BlockNumber          uint64         `json:"block_number"`
	GasCost              uint64         `json:"gas_cost"`
	ConstructorArguments []string       `json:"constructor_arguments"`
}

// DeploymentInfo is what gets persisted to the deployment-info artifact.
type DeploymentInfo struct {
	ContractsVersion string                            `json:"contracts_version"`
	ChainID          uint64                            `json:"chain_id"`
	Kind             DeploymentKind                    `json:"kind"`
	Contracts        map[ContractName]DeployedContract `json:"contracts"`
}

func NewDeploymentInfo(kind DeploymentKind, version string, chainID uint64) *DeploymentInfo {
	return &DeploymentInfo{
		ContractsVersion: version,
		ChainID:          chainID,
		Kind:             kind,
		Contracts:        map[ContractName]DeployedContract{},
	}
}

func (i *DeploymentInfo) Network() Network {
	return NetworkFromChainID(i.ChainID)
}

// Addresses flattens the info into name -> address.
func (i *DeploymentInfo) Addresses() map[ContractName]common.Address {
	out := make(map[ContractName]common.Address, len(i.Contracts))
	for name, c := range i.Contracts {
		out[name] = c.Address
	}
	return out
}

// Names returns the deployed contract names sorted alphabetically.
func (i *DeploymentInfo) Names() []ContractName {
	names := make([]ContractName, 0, len(i.Contracts))
	for n := range i.Contracts {
		names = append(names, n)
	}
	sort.Slice(names, func(a, b int) bool { return names[a] < names[b] })
	return names
}
