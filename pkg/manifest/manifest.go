// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package manifest reads the compiled contract manifests: for each contracts
// version, the ABI, creation bytecode and runtime bytecode of every contract.
package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/luxfi/geth/accounts/abi"
	"github.com/luxfi/geth/common/hexutil"
	"github.com/luxfi/raiden-deploy/pkg/constants"
	"github.com/luxfi/raiden-deploy/pkg/models"
	"github.com/luxfi/raiden-deploy/pkg/versions"
)

// ContractData is one contract entry of contracts.json.
type ContractData struct {
	ABI        json.RawMessage `json:"abi"`
	Bin        string          `json:"bin"`
	BinRuntime string          `json:"bin-runtime"`
}

// Manifest is the parsed contracts.json of one contracts version.
type Manifest struct {
	Version          string                               `json:"contracts_version"`
	MaxTokenNetworks *bool                                `json:"max_token_networks,omitempty"`
	Contracts        map[models.ContractName]ContractData `json:"contracts"`
}

// Parse decodes a contracts.json document and checks every entry names a known contract.
func Parse(data []byte) (*Manifest, error) {
	m := &Manifest{}
	if err := json.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("%w: invalid contracts manifest: %w", constants.ErrConfiguration, err)
	}
	for name := range m.Contracts {
		if !name.IsKnown() {
			return nil, fmt.Errorf("%w: manifest %s lists unknown contract %q (known: %v)",
				constants.ErrConfiguration, m.Version, name, models.KnownContractNames())
		}
	}
	return m, nil
}

func (m *Manifest) Has(name models.ContractName) bool {
	_, ok := m.Contracts[name]
	return ok
}

func (m *Manifest) contract(name models.ContractName) (ContractData, error) {
	c, ok := m.Contracts[name]
	if !ok {
		return ContractData{}, fmt.Errorf("%w: contract %s not found in manifest for contracts version %s",
			constants.ErrConfiguration, name, m.Version)
	}
	return c, nil
}

// ABI returns the parsed interface description of name.
func (m *Manifest) ABI(name models.ContractName) (abi.ABI, error) {
	c, err := m.contract(name)
	if err != nil {
		return abi.ABI{}, err
	}
	parsed, err := abi.JSON(bytes.NewReader(c.ABI))
	if err != nil {
		return abi.ABI{}, fmt.Errorf("%w: invalid ABI for %s: %w", constants.ErrConfiguration, name, err)
	}
	return parsed, nil
}

// Bytecode returns a fresh copy of the creation bytecode of name.
func (m *Manifest) Bytecode(name models.ContractName) ([]byte, error) {
	c, err := m.contract(name)
	if err != nil {
		return nil, err
	}
	return decodeHex(name, "bin", c.Bin)
}

// RuntimeBytecode returns the code expected at the address of a deployed name.
func (m *Manifest) RuntimeBytecode(name models.ContractName) ([]byte, error) {
	c, err := m.contract(name)
	if err != nil {
		return nil, err
	}
	return decodeHex(name, "bin-runtime", c.BinRuntime)
}

// Expected returns the contracts of kind that this manifest ships, in deployment order.
func (m *Manifest) Expected(kind models.DeploymentKind) []models.ContractName {
	var out []models.ContractName
	for _, name := range kind.ExpectedContracts() {
		if m.Has(name) {
			out = append(out, name)
		}
	}
	return out
}

// RequiresMaxTokenNetworks is the version policy for this manifest.
func (m *Manifest) RequiresMaxTokenNetworks() bool {
	return versions.RequiresMaxTokenNetworks(m.Version, m.MaxTokenNetworks)
}

func decodeHex(name models.ContractName, field, s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("%w: empty %s for %s", constants.ErrConfiguration, field, name)
	}
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		s = "0x" + s
	}
	b, err := hexutil.Decode(s)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid %s for %s: %w", constants.ErrConfiguration, field, name, err)
	}
	return b, nil
}
