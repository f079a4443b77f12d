// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package deploy holds the command workflows: core, service and token
// deployment, registry linking and standalone verification.
package deploy

import (
	"context"

	"github.com/luxfi/geth/common"
	luxlog "github.com/luxfi/log"
	"github.com/luxfi/raiden-deploy/pkg/contract"
	"github.com/luxfi/raiden-deploy/pkg/deployinfo"
	"github.com/luxfi/raiden-deploy/pkg/manifest"
	"github.com/luxfi/raiden-deploy/pkg/models"
	"github.com/luxfi/raiden-deploy/pkg/session"
)

// Env is what a workflow needs from the invocation running it.
type Env interface {
	// Manifest reads the selected contracts manifest. It never touches the ledger.
	Manifest() (*manifest.Manifest, error)
	// Session returns the signing session of the invocation, creating it on first use.
	Session(ctx context.Context) (*session.Session, error)
	// ReadClient returns a ledger connection for read-only use.
	ReadClient(ctx context.Context) (contract.Client, error)
	Store() *deployinfo.Store
	Logger() luxlog.Logger
}

// Report maps contract names to the addresses a workflow produced.
type Report map[models.ContractName]common.Address

// Strings renders r with EIP-55 addresses.
func (r Report) Strings() map[string]string {
	out := make(map[string]string, len(r))
	for name, address := range r {
		out[string(name)] = address.Hex()
	}
	return out
}

func reportOf(info *models.DeploymentInfo) Report {
	return Report(info.Addresses())
}
