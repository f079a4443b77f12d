// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package flags

import (
	"errors"

	"github.com/luxfi/geth/common"
	"github.com/spf13/pflag"
)

var (
	errInvalidAddress     = errors.New("must be a valid ethereum address")
	errNotChecksumAddress = errors.New("must be an EIP-55 checksummed address")
)

// addressValue accepts checksummed addresses only. The destination stays nil
// until the flag is given.
type addressValue struct {
	p **common.Address
}

func (a *addressValue) Set(s string) error {
	if !common.IsHexAddress(s) {
		return errInvalidAddress
	}
	addr := common.HexToAddress(s)
	if addr.Hex() != s {
		return errNotChecksumAddress
	}
	*a.p = &addr
	return nil
}

func (a *addressValue) String() string {
	if *a.p == nil {
		return ""
	}
	return (*a.p).Hex()
}

func (*addressValue) Type() string {
	return "address"
}

// AddressVar defines an optional address flag.
func AddressVar(fs *pflag.FlagSet, p **common.Address, name, usage string) {
	*p = nil
	fs.Var(&addressValue{p: p}, name, usage)
}
