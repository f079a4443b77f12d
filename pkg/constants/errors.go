// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package constants

import "errors"

var (
	// ErrConfiguration covers missing or invalid flags, unreadable keys and unresolved addresses.
	ErrConfiguration = errors.New("configuration error")
	// ErrParameter covers version/parameter mismatches and legacy flag misuse.
	ErrParameter = errors.New("parameter error")
	// ErrInsufficientFunds is returned by session setup when the owner balance is zero.
	ErrInsufficientFunds = errors.New("account with insufficient funds")
	// ErrChain covers RPC failures, confirmation timeouts and reverted transactions.
	ErrChain = errors.New("chain error")
	// ErrVerificationMismatch is returned when deployed state disagrees with the manifest.
	ErrVerificationMismatch = errors.New("verification mismatch")
)

// ExitCode maps an error to the process exit status. Usage problems (configuration or
// parameter errors) exit with ExitUsageError, everything else with ExitFailure.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrConfiguration), errors.Is(err, ErrParameter):
		return ExitUsageError
	default:
		return ExitFailure
	}
}
