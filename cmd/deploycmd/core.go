// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package deploycmd

import (
	"github.com/luxfi/raiden-deploy/pkg/deploy"
	"github.com/spf13/cobra"
)

func newCoreDeployCmd() *cobra.Command {
	var (
		saveInfo         bool
		maxTokenNetworks uint64
	)
	cmd := &cobra.Command{
		Use:     "core-deploy",
		Aliases: []string{"raiden"},
		Short:   "Deploy the core payment-channel contracts",
		Long: `The core-deploy command deploys the SecretRegistry and the TokenNetworkRegistry
(plus the EndpointRegistry for contracts versions that ship one).

Contracts versions whose TokenNetworkRegistry takes a network cap require
--max-token-networks; older versions reject it. The check runs before any
command of the chain contacts the ledger.`,
		Args: noArgs,
	}
	inputs := func() deploy.CoreInputs {
		in := deploy.CoreInputs{SaveInfo: saveInfo}
		if cmd.Flags().Changed(maxTokenNetworksFlag) {
			in.MaxTokenNetworks = &maxTokenNetworks
		}
		return in
	}
	cmd.PreRunE = func(*cobra.Command, []string) error {
		return deploy.ValidateCore(app, inputs())
	}
	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		report, err := deploy.Core(cmd.Context(), app, inputs())
		if err != nil {
			return err
		}
		return printReport(report)
	}
	cmd.Flags().BoolVar(&saveInfo, saveInfoFlag, true, "save deployment info to a file and verify it")
	cmd.Flags().Uint64Var(&maxTokenNetworks, maxTokenNetworksFlag, 0, "maximum number of token networks the registry accepts")
	return cmd
}
