// Copyright (C) 2022, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package models

import (
	"strconv"
)

// Network identifies the ledger a deployment targets, by chain id.
type Network uint64

const (
	Mainnet Network = 1
	Ropsten Network = 3
	Rinkeby Network = 4
	Goerli  Network = 5
	Kovan   Network = 42
	Holesky Network = 17000
	Sepolia Network = 11155111
)

var networkNames = map[Network]string{
	Mainnet: "mainnet",
	Ropsten: "ropsten",
	Rinkeby: "rinkeby",
	Goerli:  "goerli",
	Kovan:   "kovan",
	Holesky: "holesky",
	Sepolia: "sepolia",
}

// NetworkFromChainID wraps a raw chain id.
func NetworkFromChainID(chainID uint64) Network {
	return Network(chainID)
}

// Name is used as the deployment file suffix. Unnamed chains use their decimal id.
func (n Network) Name() string {
	if name, ok := networkNames[n]; ok {
		return name
	}
	return strconv.FormatUint(uint64(n), 10)
}

func (n Network) String() string {
	if name, ok := networkNames[n]; ok {
		return name + " (" + strconv.FormatUint(uint64(n), 10) + ")"
	}
	return "chain " + strconv.FormatUint(uint64(n), 10)
}
