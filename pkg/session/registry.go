// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package session

import (
	"fmt"

	"github.com/luxfi/geth/common"
	"github.com/luxfi/raiden-deploy/pkg/constants"
	"github.com/luxfi/raiden-deploy/pkg/models"
)

// Registry holds the contract addresses known to a chain of commands. Entries
// are added or overwritten, never removed.
type Registry struct {
	addresses map[models.ContractName]common.Address
}

func NewRegistry() *Registry {
	return &Registry{addresses: map[models.ContractName]common.Address{}}
}

// Set records address under name. Unknown names are rejected.
func (r *Registry) Set(name models.ContractName, address common.Address) error {
	if !name.IsKnown() {
		return fmt.Errorf("%w: unknown contract name %q", constants.ErrConfiguration, name)
	}
	r.addresses[name] = address
	return nil
}

func (r *Registry) Get(name models.ContractName) (common.Address, bool) {
	address, ok := r.addresses[name]
	return address, ok
}

// Merge records every contract of info.
func (r *Registry) Merge(info *models.DeploymentInfo) error {
	for name, c := range info.Contracts {
		if err := r.Set(name, c.Address); err != nil {
			return err
		}
	}
	return nil
}

func (r *Registry) Len() int {
	return len(r.addresses)
}
