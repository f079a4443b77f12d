// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package deploycmd

import (
	"github.com/luxfi/raiden-deploy/pkg/constants"
	"github.com/luxfi/raiden-deploy/pkg/deploy"
	"github.com/spf13/cobra"
)

func newTokenDeployCmd() *cobra.Command {
	var in deploy.TokenInputs
	cmd := &cobra.Command{
		Use:     "token-deploy",
		Aliases: []string{"token"},
		Short:   "Deploy a settlement token",
		Long: `The token-deploy command deploys a CustomToken. The supply is given in whole
tokens and scaled by 10^decimals. The token address is remembered by the
chain, so a following registry-link needs no --token-address.`,
		Args: noArgs,
		PreRunE: func(*cobra.Command, []string) error {
			return deploy.ValidateToken(app, in)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			report, err := deploy.Token(cmd.Context(), app, in)
			if err != nil {
				return err
			}
			return printReport(report)
		},
	}
	cmd.Flags().Uint64Var(&in.Supply, tokenSupplyFlag, constants.DefaultTokenSupply, "token supply, in whole tokens")
	cmd.Flags().Uint8Var(&in.Decimals, tokenDecimalsFlag, constants.DefaultTokenDecimals, "token number of decimals")
	cmd.Flags().StringVar(&in.Name, tokenNameFlag, constants.DefaultTokenName, "token name")
	cmd.Flags().StringVar(&in.Symbol, tokenSymbolFlag, constants.DefaultTokenSymbol, "token symbol")
	return cmd
}
