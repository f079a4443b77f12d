// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package testutils

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/luxfi/geth/common/hexutil"
	"github.com/luxfi/raiden-deploy/pkg/models"
	"github.com/spf13/afero"
)

const (
	endpointRegistryABI = `[]`
	secretRegistryABI   = `[]`
	registryV1ABI       = `[
		{"type":"constructor","inputs":[
			{"name":"_secret_registry_address","type":"address"},
			{"name":"_chain_id","type":"uint256"},
			{"name":"_settlement_timeout_min","type":"uint256"},
			{"name":"_settlement_timeout_max","type":"uint256"}]},
		{"type":"function","name":"createERC20TokenNetwork","stateMutability":"nonpayable",
			"inputs":[{"name":"_token_address","type":"address"}],
			"outputs":[{"name":"token_network_address","type":"address"}]},
		{"type":"function","name":"token_to_token_networks","stateMutability":"view",
			"inputs":[{"name":"","type":"address"}],
			"outputs":[{"name":"","type":"address"}]}]`
	registryV2ABI = `[
		{"type":"constructor","inputs":[
			{"name":"_secret_registry_address","type":"address"},
			{"name":"_chain_id","type":"uint256"},
			{"name":"_settlement_timeout_min","type":"uint256"},
			{"name":"_settlement_timeout_max","type":"uint256"},
			{"name":"_max_token_networks","type":"uint256"}]},
		{"type":"function","name":"createERC20TokenNetwork","stateMutability":"nonpayable",
			"inputs":[
				{"name":"_token_address","type":"address"},
				{"name":"_channel_participant_deposit_limit","type":"uint256"},
				{"name":"_token_network_deposit_limit","type":"uint256"}],
			"outputs":[{"name":"token_network_address","type":"address"}]},
		{"type":"function","name":"token_to_token_networks","stateMutability":"view",
			"inputs":[{"name":"","type":"address"}],
			"outputs":[{"name":"","type":"address"}]}]`
	customTokenABI = `[
		{"type":"constructor","inputs":[
			{"name":"initial_supply","type":"uint256"},
			{"name":"decimal_units","type":"uint8"},
			{"name":"token_name","type":"string"},
			{"name":"token_symbol","type":"string"}]}]`
	serviceRegistryABI = `[
		{"type":"constructor","inputs":[{"name":"_token_for_registration","type":"address"}]}]`
	userDepositABI = `[
		{"type":"constructor","inputs":[
			{"name":"_token_address","type":"address"},
			{"name":"_whole_balance_limit","type":"uint256"}]},
		{"type":"function","name":"init","stateMutability":"nonpayable",
			"inputs":[
				{"name":"_msc_address","type":"address"},
				{"name":"_one_to_n_address","type":"address"}],
			"outputs":[]}]`
	monitoringServiceABI = `[
		{"type":"constructor","inputs":[
			{"name":"_token_address","type":"address"},
			{"name":"_service_registry_address","type":"address"},
			{"name":"_udc_address","type":"address"}]}]`
	oneToNABI = `[
		{"type":"constructor","inputs":[
			{"name":"_deposit_contract","type":"address"},
			{"name":"_chain_id","type":"uint256"}]}]`
)

// ManifestOptions shapes the fixture manifest.
type ManifestOptions struct {
	// WithLimits selects the TokenNetworkRegistry revision taking a network cap
	// and per-channel/per-network deposit limits.
	WithLimits bool
	// WithEndpointRegistry ships the EndpointRegistry of older versions.
	WithEndpointRegistry bool
	// MaxTokenNetworks is written as the explicit policy override when non-nil.
	MaxTokenNetworks *bool
}

// RuntimeCode returns the runtime bytecode the fixture manifest declares for name.
func RuntimeCode(name models.ContractName) []byte {
	return append([]byte{0x60, 0x80, 0x60, 0x40}, []byte(name)...)
}

// CreationCode returns the creation bytecode the fixture manifest declares for name.
func CreationCode(name models.ContractName) []byte {
	return append([]byte{0x60, 0x00}, []byte(name)...)
}

// ManifestJSON renders a contracts.json for version.
func ManifestJSON(version string, opts ManifestOptions) []byte {
	registryABI := registryV1ABI
	if opts.WithLimits {
		registryABI = registryV2ABI
	}
	abis := map[models.ContractName]string{
		models.SecretRegistry:       secretRegistryABI,
		models.TokenNetworkRegistry: registryABI,
		models.CustomToken:          customTokenABI,
		models.ServiceRegistry:      serviceRegistryABI,
		models.UserDeposit:          userDepositABI,
		models.MonitoringService:    monitoringServiceABI,
		models.OneToN:               oneToNABI,
	}
	if opts.WithEndpointRegistry {
		abis[models.EndpointRegistry] = endpointRegistryABI
	}
	contracts := map[string]any{}
	for name, a := range abis {
		contracts[string(name)] = map[string]any{
			"abi":         json.RawMessage(a),
			"bin":         hexutil.Encode(CreationCode(name)),
			"bin-runtime": hexutil.Encode(RuntimeCode(name)),
		}
	}
	doc := map[string]any{
		"contracts_version": version,
		"contracts":         contracts,
	}
	if opts.MaxTokenNetworks != nil {
		doc["max_token_networks"] = *opts.MaxTokenNetworks
	}
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		panic(fmt.Sprintf("marshal fixture manifest: %v", err))
	}
	return out
}

// WriteManifest stores the fixture manifest of version under dir.
func WriteManifest(fs afero.Fs, dir, version string, opts ManifestOptions) error {
	path := filepath.Join(dir, version, "contracts.json")
	if err := fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return afero.WriteFile(fs, path, ManifestJSON(version, opts), 0o644)
}
