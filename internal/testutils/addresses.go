// Copyright (C) 2022, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package testutils

import (
	"crypto/ecdsa"

	"github.com/luxfi/crypto"
	"github.com/luxfi/geth/common"
)

// Address builds a deterministic address whose last byte is b.
func Address(b byte) common.Address {
	return common.BytesToAddress([]byte{b})
}

// Hash builds a deterministic transaction hash whose last byte is b.
func Hash(b byte) common.Hash {
	return common.BytesToHash([]byte{b})
}

// TestKey is a fixed secp256k1 key for tests that need a signer.
func TestKey() *ecdsa.PrivateKey {
	key, err := crypto.HexToECDSA(TestKeyHex)
	if err != nil {
		panic(err)
	}
	return key
}

const TestKeyHex = "b71c71a67e1177ad4e901695e1b4b9ee17ae16c6668d313eac2f96dbcda3f291"
