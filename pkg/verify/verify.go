// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package verify compares deployed contracts against the manifest they were
// built from.
package verify

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	ethereum "github.com/luxfi/geth"
	luxlog "github.com/luxfi/log"
	"github.com/luxfi/raiden-deploy/pkg/constants"
	"github.com/luxfi/raiden-deploy/pkg/contract"
	"github.com/luxfi/raiden-deploy/pkg/manifest"
	"github.com/luxfi/raiden-deploy/pkg/models"
	"go.uber.org/zap"
)

// Mismatch is one disagreement. Contract is empty when the problem concerns the
// deployment as a whole.
type Mismatch struct {
	Kind     models.DeploymentKind
	Contract models.ContractName
	Problem  string
}

type MismatchError struct {
	Mismatches []Mismatch
}

func (e *MismatchError) Error() string {
	problems := make([]string, 0, len(e.Mismatches))
	for _, m := range e.Mismatches {
		if m.Contract == "" {
			problems = append(problems, fmt.Sprintf("%s deployment: %s", m.Kind, m.Problem))
			continue
		}
		problems = append(problems, fmt.Sprintf("%s deployment: %s: %s", m.Kind, m.Contract, m.Problem))
	}
	return fmt.Sprintf("%s: %s", constants.ErrVerificationMismatch, strings.Join(problems, "; "))
}

// Rows renders the mismatches for a table.
func (e *MismatchError) Rows() [][]string {
	rows := make([][]string, 0, len(e.Mismatches))
	for _, m := range e.Mismatches {
		name := string(m.Contract)
		if name == "" {
			name = "-"
		}
		rows = append(rows, []string{string(m.Kind), name, m.Problem})
	}
	return rows
}

// Join merges the mismatches of several errors; nil entries are skipped. It
// returns nil when there is nothing to report.
func Join(errs ...*MismatchError) *MismatchError {
	var all []Mismatch
	for _, e := range errs {
		if e != nil {
			all = append(all, e.Mismatches...)
		}
	}
	if len(all) == 0 {
		return nil
	}
	return &MismatchError{Mismatches: all}
}

func (e *MismatchError) Unwrap() error {
	return constants.ErrVerificationMismatch
}

// Contracts returns the distinct contract names with at least one mismatch.
func (e *MismatchError) Contracts() []models.ContractName {
	seen := map[models.ContractName]bool{}
	var out []models.ContractName
	for _, m := range e.Mismatches {
		if m.Contract != "" && !seen[m.Contract] {
			seen[m.Contract] = true
			out = append(out, m.Contract)
		}
	}
	return out
}

type Verifier struct {
	client   contract.Client
	manifest *manifest.Manifest
	chainID  uint64
	expect   Expectations
	log      luxlog.Logger
}

func NewVerifier(client contract.Client, m *manifest.Manifest, chainID uint64, log luxlog.Logger) *Verifier {
	if log == nil {
		log = luxlog.NewNoOpLogger()
	}
	return &Verifier{client: client, manifest: m, chainID: chainID, log: log}
}

// Expect returns a copy of v checking constructor arguments against expect.
func (v *Verifier) Expect(expect Expectations) *Verifier {
	out := *v
	out.expect = expect
	return &out
}

// Verify returns a *MismatchError when info disagrees with the chain or the
// manifest, and a chain error when the ledger cannot be queried.
func (v *Verifier) Verify(ctx context.Context, info *models.DeploymentInfo) error {
	var mismatches []Mismatch
	if info.ChainID != v.chainID {
		mismatches = append(mismatches, Mismatch{
			Kind:    info.Kind,
			Problem: fmt.Sprintf("deployment info is for chain %d, connected to chain %d", info.ChainID, v.chainID),
		})
	}
	if info.ContractsVersion != v.manifest.Version {
		mismatches = append(mismatches, Mismatch{
			Kind:    info.Kind,
			Problem: fmt.Sprintf("deployment info is for contracts version %s, manifest is %s", info.ContractsVersion, v.manifest.Version),
		})
	}
	for _, name := range v.manifest.Expected(info.Kind) {
		if _, ok := info.Contracts[name]; !ok {
			mismatches = append(mismatches, Mismatch{Kind: info.Kind, Contract: name, Problem: "missing from deployment info"})
		}
	}
	arguments := v.expectedArguments(info)
	for _, name := range info.Names() {
		found, err := v.verifyContract(ctx, info.Kind, name, info.Contracts[name], arguments[name])
		if err != nil {
			return err
		}
		mismatches = append(mismatches, found...)
	}
	if len(mismatches) > 0 {
		return &MismatchError{Mismatches: mismatches}
	}
	v.log.Info("deployment verified",
		zap.String("kind", string(info.Kind)),
		zap.String("version", info.ContractsVersion),
		zap.Int("contracts", len(info.Contracts)),
	)
	return nil
}

func (v *Verifier) verifyContract(
	ctx context.Context,
	kind models.DeploymentKind,
	name models.ContractName,
	deployed models.DeployedContract,
	arguments []string,
) ([]Mismatch, error) {
	var mismatches []Mismatch
	mismatch := func(format string, args ...interface{}) {
		mismatches = append(mismatches, Mismatch{Kind: kind, Contract: name, Problem: fmt.Sprintf(format, args...)})
	}

	expected, err := v.manifest.RuntimeBytecode(name)
	if err != nil {
		mismatch("not part of manifest %s", v.manifest.Version)
		return mismatches, nil
	}
	recorded := deployed.ConstructorArguments
	switch inputs := v.constructorInputs(name); {
	case inputs >= 0 && len(recorded) != inputs:
		mismatch("%d constructor arguments recorded, the constructor takes %d", len(recorded), inputs)
	case arguments != nil && !slices.Equal(recorded, arguments):
		mismatch("constructor arguments %v, expected %v", recorded, arguments)
	}
	code, err := v.client.CodeAt(ctx, deployed.Address, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failure reading code of %s at %s: %w", constants.ErrChain, name, deployed.Address.Hex(), err)
	}
	switch {
	case len(code) == 0:
		mismatch("no code at %s", deployed.Address.Hex())
	case !bytes.Equal(code, expected):
		mismatch("runtime bytecode at %s differs from manifest", deployed.Address.Hex())
	}

	receipt, err := v.client.TransactionReceipt(ctx, deployed.TransactionHash)
	switch {
	case errors.Is(err, ethereum.NotFound):
		mismatch("creation transaction %s not found", deployed.TransactionHash.Hex())
		return mismatches, nil
	case err != nil:
		return nil, fmt.Errorf("%w: failure fetching receipt %s: %w", constants.ErrChain, deployed.TransactionHash.Hex(), err)
	}
	if receipt.ContractAddress != deployed.Address {
		mismatch("creation transaction deployed %s, recorded %s", receipt.ContractAddress.Hex(), deployed.Address.Hex())
	}
	if receipt.BlockNumber == nil || receipt.BlockNumber.Uint64() != deployed.BlockNumber {
		mismatch("creation transaction mined in block %v, recorded %d", receipt.BlockNumber, deployed.BlockNumber)
	}
	return mismatches, nil
}
