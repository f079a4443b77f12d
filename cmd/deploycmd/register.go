// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package deploycmd

import (
	"github.com/luxfi/raiden-deploy/cmd/flags"
	"github.com/luxfi/raiden-deploy/pkg/deploy"
	"github.com/spf13/cobra"
)

func newRegistryLinkCmd() *cobra.Command {
	var in deploy.RegisterInputs
	cmd := &cobra.Command{
		Use:     "registry-link",
		Aliases: []string{"register"},
		Short:   "Register a token in the TokenNetworkRegistry",
		Long: `The registry-link command creates the token network of a token. The token and
the registry default to the ones deployed earlier in the same chain; explicit
addresses override them.

Registries taking deposit limits get 2^256-1 for every limit not given.`,
		Args: noArgs,
		PreRunE: func(*cobra.Command, []string) error {
			return deploy.ValidateRegister(app, in)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			report, err := deploy.Register(cmd.Context(), app, in)
			if err != nil {
				return err
			}
			return printReport(report)
		},
	}
	flags.AddressVar(cmd.Flags(), &in.TokenAddress, tokenAddressFlag, "address of an already deployed token")
	flags.AddressVar(cmd.Flags(), &in.RegistryAddress, tokenNetworkRegistryAddressFlag, "address of the TokenNetworkRegistry")
	flags.BigIntVar(cmd.Flags(), &in.ChannelParticipantDepositLimit, channelParticipantDepositLimitFlag,
		"per channel participant deposit limit")
	flags.BigIntVar(cmd.Flags(), &in.TokenNetworkDepositLimit, tokenNetworkDepositLimitFlag,
		"deposit limit of the whole token network")
	flags.RejectDeprecated(cmd, legacyRegistryAddressFlag, tokenNetworkRegistryAddressFlag)
	return cmd
}
