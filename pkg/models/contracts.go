// Copyright (C) 2022-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package models contains data structures and types shared by the deploy commands.
package models

import (
	"sort"
)

// ContractName is one of the fixed set of contracts this tool knows how to deploy,
// link or verify. Registry keys and manifest entries are always ContractNames.
type ContractName string

const (
	EndpointRegistry     ContractName = "EndpointRegistry"
	SecretRegistry       ContractName = "SecretRegistry"
	TokenNetworkRegistry ContractName = "TokenNetworkRegistry"
	TokenNetwork         ContractName = "TokenNetwork"
	CustomToken          ContractName = "CustomToken"
	// shipped by older manifests, never deployed
	HumanStandardToken   ContractName = "HumanStandardToken"
	ServiceRegistry      ContractName = "ServiceRegistry"
	UserDeposit          ContractName = "UserDeposit"
	MonitoringService    ContractName = "MonitoringService"
	OneToN               ContractName = "OneToN"
)

var knownContracts = map[ContractName]struct{}{
	EndpointRegistry:     {},
	SecretRegistry:       {},
	TokenNetworkRegistry: {},
	TokenNetwork:         {},
	CustomToken:          {},
	HumanStandardToken:   {},
	ServiceRegistry:      {},
	UserDeposit:          {},
	MonitoringService:    {},
	OneToN:               {},
}

// CoreContracts lists the payment-channel core set in deployment order.
// EndpointRegistry only exists in older manifests.
var CoreContracts = []ContractName{EndpointRegistry, SecretRegistry, TokenNetworkRegistry}

// ServiceContracts lists the auxiliary service set in deployment order.
var ServiceContracts = []ContractName{ServiceRegistry, UserDeposit, MonitoringService, OneToN}

func (n ContractName) String() string {
	return string(n)
}

// IsKnown reports whether n belongs to the fixed contract enumeration.
func (n ContractName) IsKnown() bool {
	_, ok := knownContracts[n]
	return ok
}

// KnownContractNames returns the enumeration sorted by name.
func KnownContractNames() []ContractName {
	names := make([]ContractName, 0, len(knownContracts))
	for n := range knownContracts {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}
