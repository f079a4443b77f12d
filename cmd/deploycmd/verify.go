// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package deploycmd

import (
	"errors"

	"github.com/luxfi/raiden-deploy/pkg/deploy"
	"github.com/luxfi/raiden-deploy/pkg/ux"
	"github.com/luxfi/raiden-deploy/pkg/verify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Verify recorded deployments against the ledger",
		Long: `The verify command compares the recorded core deployment, and the service
deployment when there is one, with the contracts found on the ledger. It only
reads from the ledger and needs no private key.`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			report, err := deploy.VerifyStandalone(cmd.Context(), app)
			var mismatchErr *verify.MismatchError
			if errors.As(err, &mismatchErr) {
				if tableErr := ux.Logger.PrintTable([]string{"Kind", "Contract", "Problem"}, mismatchErr.Rows()); tableErr != nil {
					app.Log.Warn("failed printing mismatches", zap.Error(tableErr))
				}
			}
			if err != nil {
				return err
			}
			return printReport(report)
		},
	}
}
