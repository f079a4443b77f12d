// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package deploycmd holds the chainable deployment commands.
package deploycmd

import (
	"fmt"

	"github.com/luxfi/raiden-deploy/pkg/application"
	"github.com/luxfi/raiden-deploy/pkg/constants"
	"github.com/luxfi/raiden-deploy/pkg/deploy"
	"github.com/luxfi/raiden-deploy/pkg/ux"
	"github.com/spf13/cobra"
)

const (
	saveInfoFlag                       = "save-info"
	maxTokenNetworksFlag               = "max-token-networks"
	tokenAddressFlag                   = "token-address"
	userDepositWholeLimitFlag          = "user-deposit-whole-limit"
	tokenSupplyFlag                    = "token-supply"
	tokenDecimalsFlag                  = "token-decimals"
	tokenNameFlag                      = "token-name"
	tokenSymbolFlag                    = "token-symbol"
	tokenNetworkRegistryAddressFlag    = "token-network-registry-address"
	channelParticipantDepositLimitFlag = "channel-participant-deposit-limit"
	tokenNetworkDepositLimitFlag       = "token-network-deposit-limit"
	legacyRegistryAddressFlag          = "registry-address"
)

var app *application.App

// NewCmds returns the commands of a deployment chain, in their usual order.
func NewCmds(injectedApp *application.App) []*cobra.Command {
	app = injectedApp
	return []*cobra.Command{
		newCoreDeployCmd(),
		newTokenDeployCmd(),
		newRegistryLinkCmd(),
		newServiceDeployCmd(),
		newVerifyCmd(),
	}
}

func printReport(report deploy.Report) error {
	return ux.PrintReport(app.Out, app.Settings.ReportFormat, report.Strings())
}

func noArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.NoArgs(cmd, args); err != nil {
		return fmt.Errorf("%w: %w", constants.ErrConfiguration, err)
	}
	return nil
}
