// Copyright (C) 2019-2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package key resolves the signing key of a deployment from a file: either a raw
// hex-encoded secp256k1 key or an encrypted JSON keystore.
package key

import (
	"bufio"
	"bytes"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/luxfi/crypto"
	"github.com/luxfi/geth/accounts/keystore"
	"github.com/luxfi/raiden-deploy/pkg/constants"
	"github.com/spf13/afero"
	"github.com/tidwall/gjson"
)

const privKeySize = 64

var (
	ErrInvalidPrivateKey       = errors.New("invalid private key")
	ErrInvalidPrivateKeyLen    = errors.New("invalid private key length (expect 64 bytes in hex)")
	ErrInvalidPrivateKeyEnding = errors.New("invalid private key ending")
	ErrNoPassword              = errors.New("keystore password required")
)

// PasswordFunc asks the operator for a keystore password.
type PasswordFunc func(prompt string) (string, error)

// Loader reads key material. Prompt is consulted only for keystores when no
// password file is given; a nil Prompt makes that case an error.
type Loader struct {
	Fs     afero.Fs
	Prompt PasswordFunc
}

// Load returns the private key stored at keyPath.
func (l Loader) Load(keyPath, passwordFile string) (*ecdsa.PrivateKey, error) {
	if keyPath == "" {
		return nil, fmt.Errorf("%w: no private key file given (--private-key)", constants.ErrConfiguration)
	}
	kb, err := afero.ReadFile(l.Fs, keyPath)
	if err != nil {
		return nil, fmt.Errorf("%w: failure reading key file %s: %w", constants.ErrConfiguration, keyPath, err)
	}
	var pk *ecdsa.PrivateKey
	if IsKeystore(kb) {
		pk, err = l.decryptKeystore(kb, keyPath, passwordFile)
	} else {
		pk, err = parseHexKey(kb)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failure loading key %s: %w", constants.ErrConfiguration, keyPath, err)
	}
	return pk, nil
}

// IsKeystore tells whether kb looks like a geth JSON keystore.
func IsKeystore(kb []byte) bool {
	if !gjson.ValidBytes(kb) {
		return false
	}
	doc := gjson.ParseBytes(kb)
	return doc.IsObject() && (doc.Get("crypto").Exists() || doc.Get("Crypto").Exists())
}

func (l Loader) decryptKeystore(kb []byte, keyPath, passwordFile string) (*ecdsa.PrivateKey, error) {
	password, err := l.password(keyPath, passwordFile)
	if err != nil {
		return nil, err
	}
	k, err := keystore.DecryptKey(kb, password)
	if err != nil {
		return nil, err
	}
	return k.PrivateKey, nil
}

func (l Loader) password(keyPath, passwordFile string) (string, error) {
	if passwordFile != "" {
		pb, err := afero.ReadFile(l.Fs, passwordFile)
		if err != nil {
			return "", fmt.Errorf("failure reading password file %s: %w", passwordFile, err)
		}
		return strings.TrimRight(string(pb), "\r\n"), nil
	}
	if l.Prompt == nil {
		return "", ErrNoPassword
	}
	return l.Prompt(fmt.Sprintf("Password to unlock %s", keyPath))
}

// parseHexKey accepts 64 hex characters, optionally 0x prefixed, followed by at
// most a couple of line endings.
func parseHexKey(kb []byte) (*ecdsa.PrivateKey, error) {
	kb = bytes.TrimPrefix(bytes.TrimPrefix(kb, []byte("0x")), []byte("0X"))
	r := bufio.NewReader(bytes.NewBuffer(kb))
	buf := make([]byte, privKeySize)
	n, err := readASCII(buf, r)
	if err != nil {
		return nil, err
	}
	if n != len(buf) {
		return nil, ErrInvalidPrivateKeyLen
	}
	if err := checkKeyFileEnd(r); err != nil {
		return nil, err
	}
	pk, err := crypto.HexToECDSA(string(buf))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPrivateKey, err)
	}
	return pk, nil
}

// readASCII reads into 'buf', stopping when the buffer is full or
// when a non-printable control character is encountered.
func readASCII(buf []byte, r io.ByteReader) (n int, err error) {
	for ; n < len(buf); n++ {
		buf[n], err = r.ReadByte()
		switch {
		case errors.Is(err, io.EOF) || buf[n] < '!':
			return n, nil
		case err != nil:
			return n, err
		}
	}
	return n, nil
}

const fileEndLimit = 1

// checkKeyFileEnd skips over additional newlines at the end of a key file.
func checkKeyFileEnd(r io.ByteReader) error {
	for idx := 0; ; idx++ {
		b, err := r.ReadByte()
		switch {
		case errors.Is(err, io.EOF):
			return nil
		case err != nil:
			return err
		case b != '\n' && b != '\r':
			return ErrInvalidPrivateKeyEnding
		case idx > fileEndLimit:
			return ErrInvalidPrivateKeyLen
		}
	}
}
