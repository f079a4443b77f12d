// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package contract

import (
	"context"
	"errors"
	"fmt"
	"time"

	ethereum "github.com/luxfi/geth"
	"github.com/luxfi/geth/core/types"
	"github.com/luxfi/raiden-deploy/pkg/constants"
	"github.com/luxfi/raiden-deploy/pkg/ux"
)

var (
	errReverted = errors.New("transaction reverted")
	errNotMined = errors.New("transaction not mined")
)

// transform a tx operation error into an error that contains:
// - constants.ErrChain, so callers can classify it
// - the [err] itself
// - the [tx] hash (or information on the tx not being submitted)
// - another descriptive [msg], together with formated [args]
func TransactionError(tx *types.Transaction, err error, msg string, args ...interface{}) error {
	msgSuffix := ": %w: %w"
	if tx != nil {
		msgSuffix += fmt.Sprintf(" (txHash=%s)", tx.Hash().String())
	} else {
		msgSuffix += " (tx failed to be submitted)"
	}
	args = append(args, constants.ErrChain, err)
	return fmt.Errorf(msg+msgSuffix, args...)
}

// WaitMined polls for the receipt of tx every interval until it is available or
// timeout elapses. It never resubmits.
func WaitMined(
	ctx context.Context,
	client Client,
	tx *types.Transaction,
	timeout time.Duration,
	interval time.Duration,
) (*types.Receipt, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	spinner := ux.NewWaitSpinner(fmt.Sprintf("waiting for %s", tx.Hash().Hex()))
	defer spinner.Finish()

	for {
		receipt, err := client.TransactionReceipt(ctx, tx.Hash())
		switch {
		case err == nil && receipt != nil:
			return receipt, nil
		case err != nil && !errors.Is(err, ethereum.NotFound) && ctx.Err() == nil:
			return nil, TransactionError(tx, err, "failure fetching receipt")
		}
		spinner.Tick()
		select {
		case <-ctx.Done():
			return nil, TransactionError(tx, errNotMined, "no receipt after %s", timeout)
		case <-ticker.C:
		}
	}
}
