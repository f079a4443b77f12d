// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package verify

import (
	"math/big"
	"strconv"

	"github.com/luxfi/geth/common"
	"github.com/luxfi/raiden-deploy/pkg/constants"
	"github.com/luxfi/raiden-deploy/pkg/contract"
	"github.com/luxfi/raiden-deploy/pkg/models"
)

// Expectations are the inputs a deployment was requested with. A nil field is
// read back from the records instead, so the contracts of one deployment are
// still checked against each other.
type Expectations struct {
	MaxTokenNetworks      *uint64
	TokenAddress          *common.Address
	UserDepositWholeLimit *big.Int
}

func arg(v interface{}) string {
	return contract.FormatArgs(v)[0]
}

// recordedArg returns argument i of the record of name, if there is one.
func recordedArg(info *models.DeploymentInfo, name models.ContractName, i int) (string, bool) {
	c, ok := info.Contracts[name]
	if !ok || len(c.ConstructorArguments) <= i {
		return "", false
	}
	return c.ConstructorArguments[i], true
}

// expectedArguments returns the constructor arguments each contract of info
// must have been created with, in recorded form. Contracts whose arguments
// depend on a contract missing from info are left out.
func (v *Verifier) expectedArguments(info *models.DeploymentInfo) map[models.ContractName][]string {
	expected := map[models.ContractName][]string{}
	address := func(name models.ContractName) (string, bool) {
		c, ok := info.Contracts[name]
		return arg(c.Address), ok
	}
	chainID := strconv.FormatUint(v.chainID, 10)

	switch info.Kind {
	case models.CoreDeployment:
		expected[models.EndpointRegistry] = []string{}
		expected[models.SecretRegistry] = []string{}
		secretRegistry, ok := address(models.SecretRegistry)
		if !ok {
			break
		}
		args := []string{
			secretRegistry,
			chainID,
			strconv.Itoa(constants.SettleTimeoutMin),
			strconv.Itoa(constants.SettleTimeoutMax),
		}
		if v.expect.MaxTokenNetworks != nil {
			args = append(args, strconv.FormatUint(*v.expect.MaxTokenNetworks, 10))
		} else if v.constructorInputs(models.TokenNetworkRegistry) > len(args) {
			if limit, ok := recordedArg(info, models.TokenNetworkRegistry, len(args)); ok {
				args = append(args, limit)
			}
		}
		expected[models.TokenNetworkRegistry] = args

	case models.ServicesDeployment:
		token, tokenOK := recordedArg(info, models.ServiceRegistry, 0)
		if v.expect.TokenAddress != nil {
			token, tokenOK = arg(*v.expect.TokenAddress), true
		}
		limit, limitOK := recordedArg(info, models.UserDeposit, 1)
		if v.expect.UserDepositWholeLimit != nil {
			limit, limitOK = arg(v.expect.UserDepositWholeLimit), true
		}
		serviceRegistry, serviceRegistryOK := address(models.ServiceRegistry)
		userDeposit, userDepositOK := address(models.UserDeposit)

		if tokenOK {
			expected[models.ServiceRegistry] = []string{token}
		}
		if tokenOK && limitOK {
			expected[models.UserDeposit] = []string{token, limit}
		}
		if tokenOK && serviceRegistryOK && userDepositOK {
			expected[models.MonitoringService] = []string{token, serviceRegistry, userDeposit}
		}
		if userDepositOK {
			expected[models.OneToN] = []string{userDeposit, chainID}
		}
	}
	return expected
}

// constructorInputs returns how many arguments the constructor of name takes,
// or -1 when the manifest ABI cannot be read.
func (v *Verifier) constructorInputs(name models.ContractName) int {
	contractABI, err := v.manifest.ABI(name)
	if err != nil {
		return -1
	}
	return len(contractABI.Constructor.Inputs)
}
