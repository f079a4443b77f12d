// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package flags

import (
	"math/big"
	"testing"

	"github.com/luxfi/geth/common"
	"github.com/luxfi/raiden-deploy/pkg/config"
	"github.com/luxfi/raiden-deploy/pkg/constants"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

const checksummed = "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"

func resolveArgs(t *testing.T, args ...string) (*pflag.FlagSet, *config.Config) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	AddSharedFlags(fs)
	require.NoError(t, fs.Parse(args))
	conf := config.New()
	require.NoError(t, conf.BindFlags(fs))
	return fs, conf
}

func TestResolveDefaults(t *testing.T) {
	require := require.New(t)
	_, conf := resolveArgs(t)
	settings, err := Resolve(conf)
	require.NoError(err)
	require.Equal(constants.DefaultRPCProvider, settings.Session.RPCProvider)
	require.Equal(uint64(constants.DefaultWaitSeconds), settings.Session.WaitSeconds)
	require.Equal(uint64(constants.DefaultGasPriceGwei), settings.Session.GasPriceGwei)
	require.Equal(uint64(constants.DefaultGasLimit), settings.Session.GasLimit)
	require.Nil(settings.Session.ContractsVersion)
	require.Equal(constants.DefaultContractsDir, settings.ContractsDir)
	require.Equal(constants.DefaultDeploymentDir, settings.DeploymentDir)
	require.Equal(constants.ReportFormatJSON, settings.ReportFormat)
}

func TestResolveFlagsAndEnv(t *testing.T) {
	require := require.New(t)
	t.Setenv("RAIDEN_DEPLOY_PRIVATE_KEY", "/env/key")
	t.Setenv("RAIDEN_DEPLOY_GAS_PRICE", "20")

	_, conf := resolveArgs(t, "--gas-price", "7", "--contracts-version", "0.37.0", "--report-format", "YAML")
	settings, err := Resolve(conf)
	require.NoError(err)
	require.Equal("/env/key", settings.Session.KeyPath)
	require.Equal(uint64(7), settings.Session.GasPriceGwei)
	require.NotNil(settings.Session.ContractsVersion)
	require.Equal("0.37.0", *settings.Session.ContractsVersion)
	require.Equal(constants.ReportFormatYAML, settings.ReportFormat)
}

func TestResolveRejectsInvalid(t *testing.T) {
	for _, args := range [][]string{
		{"--wait", "0"},
		{"--gas-limit", "0"},
		{"--rpc-provider", ""},
		{"--report-format", "xml"},
	} {
		_, conf := resolveArgs(t, args...)
		_, err := Resolve(conf)
		require.ErrorIs(t, err, constants.ErrConfiguration, args)
	}
}

func TestAddressVar(t *testing.T) {
	require := require.New(t)
	var addr *common.Address
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	AddressVar(fs, &addr, "token-address", "")
	require.Nil(addr)
	require.Equal("", fs.Lookup("token-address").Value.String())

	require.NoError(fs.Set("token-address", checksummed))
	require.NotNil(addr)
	require.Equal(common.HexToAddress(checksummed), *addr)
	require.Equal(checksummed, fs.Lookup("token-address").Value.String())

	require.ErrorIs(fs.Set("token-address", "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed"), errNotChecksumAddress)
	require.ErrorIs(fs.Set("token-address", "0x1234"), errInvalidAddress)
	require.ErrorIs(fs.Set("token-address", "not-an-address"), errInvalidAddress)
}

func TestBigIntVar(t *testing.T) {
	require := require.New(t)
	var limit *big.Int
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	BigIntVar(fs, &limit, "user-deposit-whole-limit", "")
	require.Nil(limit)

	huge := "115792089237316195423570985008687907853269984665640564039457584007913129639935"
	require.NoError(fs.Set("user-deposit-whole-limit", huge))
	require.Equal(huge, limit.String())
	require.NoError(fs.Set("user-deposit-whole-limit", "0"))
	require.Zero(limit.Sign())

	require.ErrorIs(fs.Set("user-deposit-whole-limit", "-1"), errInvalidAmount)
	require.ErrorIs(fs.Set("user-deposit-whole-limit", "1e18"), errInvalidAmount)
	require.ErrorIs(fs.Set("user-deposit-whole-limit", "0x10"), errInvalidAmount)
}

func TestRejectDeprecated(t *testing.T) {
	require := require.New(t)
	ran := 0
	existing := 0
	newCmd := func() *cobra.Command {
		cmd := &cobra.Command{
			Use:  "register",
			RunE: func(*cobra.Command, []string) error { ran++; return nil },
			PreRunE: func(*cobra.Command, []string) error {
				existing++
				return nil
			},
			SilenceUsage:  true,
			SilenceErrors: true,
		}
		RejectDeprecated(cmd, "registry-address", "token-network-registry-address")
		return cmd
	}

	cmd := newCmd()
	require.True(cmd.Flags().Lookup("registry-address").Hidden)
	cmd.SetArgs([]string{"--registry-address", checksummed})
	err := cmd.Execute()
	require.ErrorIs(err, constants.ErrParameter)
	require.Contains(err.Error(), "--token-network-registry-address")
	require.Zero(existing)
	require.Zero(ran)

	cmd = newCmd()
	cmd.SetArgs([]string{})
	require.NoError(cmd.Execute())
	require.Equal(1, existing)
	require.Equal(1, ran)
}
