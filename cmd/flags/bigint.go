// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package flags

import (
	"errors"
	"math/big"

	"github.com/spf13/pflag"
)

var errInvalidAmount = errors.New("must be a non-negative decimal integer")

// bigIntValue holds an arbitrary precision amount such as a deposit limit.
type bigIntValue struct {
	p **big.Int
}

func (b *bigIntValue) Set(s string) error {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok || v.Sign() < 0 {
		return errInvalidAmount
	}
	*b.p = v
	return nil
}

func (b *bigIntValue) String() string {
	if *b.p == nil {
		return ""
	}
	return (*b.p).String()
}

func (*bigIntValue) Type() string {
	return "uint256"
}

// BigIntVar defines an optional amount flag.
func BigIntVar(fs *pflag.FlagSet, p **big.Int, name, usage string) {
	*p = nil
	fs.Var(&bigIntValue{p: p}, name, usage)
}
