// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package deploycmd

import (
	"github.com/luxfi/raiden-deploy/cmd/flags"
	"github.com/luxfi/raiden-deploy/pkg/deploy"
	"github.com/spf13/cobra"
)

func newServiceDeployCmd() *cobra.Command {
	in := deploy.ServiceInputs{}
	cmd := &cobra.Command{
		Use:     "service-deploy",
		Aliases: []string{"services"},
		Short:   "Deploy the service contracts",
		Long: `The service-deploy command deploys the ServiceRegistry, UserDeposit,
MonitoringService and OneToN contracts and initializes the UserDeposit.

Services are paid in the token given by --token-address, or the token deployed
earlier in the same chain.`,
		Args: noArgs,
		PreRunE: func(*cobra.Command, []string) error {
			return deploy.ValidateServices(app, in)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			report, err := deploy.Services(cmd.Context(), app, in)
			if err != nil {
				return err
			}
			return printReport(report)
		},
	}
	flags.AddressVar(cmd.Flags(), &in.TokenAddress, tokenAddressFlag, "address of the token used to pay for the services")
	flags.BigIntVar(cmd.Flags(), &in.UserDepositWholeLimit, userDepositWholeLimitFlag,
		"maximum amount of tokens the UserDeposit contract holds")
	cmd.Flags().BoolVar(&in.SaveInfo, saveInfoFlag, true, "save deployment info to a file and verify it")
	return cmd
}
