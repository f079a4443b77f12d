// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package flags

import (
	"fmt"

	"github.com/luxfi/raiden-deploy/pkg/constants"
	"github.com/spf13/cobra"
)

// RejectDeprecated registers name as a hidden flag that fails the command
// before it runs whenever it is given. The rejection runs ahead of any
// PreRunE installed earlier.
func RejectDeprecated(cmd *cobra.Command, name, replacement string) {
	cmd.Flags().String(name, "", "")
	_ = cmd.Flags().MarkHidden(name)

	rejectPreRun := func(cmd *cobra.Command, _ []string) error {
		if cmd.Flags().Changed(name) {
			return fmt.Errorf("%w: --%s is no longer supported, use --%s instead",
				constants.ErrParameter, name, replacement)
		}
		return nil
	}

	existingPreRunE := cmd.PreRunE
	cmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		if err := rejectPreRun(cmd, args); err != nil {
			return err
		}
		if existingPreRunE != nil {
			return existingPreRunE(cmd, args)
		}
		return nil
	}
}
