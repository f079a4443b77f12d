// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package contract

import (
	"fmt"
	"math/big"

	"github.com/luxfi/geth/common"
)

// MaxUint256 is sent for deposit limits the operator left unset.
var MaxUint256 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))

// FormatArgs renders constructor arguments the way deployment records keep them.
func FormatArgs(args ...interface{}) []string {
	out := make([]string, 0, len(args))
	for _, arg := range args {
		switch v := arg.(type) {
		case common.Address:
			out = append(out, v.Hex())
		case *big.Int:
			out = append(out, v.String())
		case []byte:
			out = append(out, common.Bytes2Hex(v))
		default:
			out = append(out, fmt.Sprint(v))
		}
	}
	return out
}

func limitOrUnbounded(limit *big.Int) *big.Int {
	if limit == nil {
		return new(big.Int).Set(MaxUint256)
	}
	return limit
}
