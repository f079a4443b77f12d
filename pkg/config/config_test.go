// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("rpc-provider", "http://127.0.0.1:8545", "")
	flags.Uint64("gas-price", 5, "")
	require.NoError(t, flags.Parse(args))
	return flags
}

func TestPrecedence(t *testing.T) {
	require := require.New(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(os.WriteFile(path, []byte(`{"rpc-provider":"http://file:8545","gas-price":7}`), 0o600))

	c := New()
	require.NoError(c.ReadFile(path))
	require.NoError(c.BindFlags(newFlags(t)))
	require.True(c.ConfigFileExists())
	require.Equal(path, c.GetConfigPath())
	require.Equal("http://file:8545", c.GetConfigStringValue("rpc-provider"))
	require.Equal(uint64(7), c.GetConfigUint64Value("gas-price"))

	t.Setenv("RAIDEN_DEPLOY_RPC_PROVIDER", "http://env:8545")
	require.Equal("http://env:8545", c.GetConfigStringValue("rpc-provider"))

	c = New()
	require.NoError(c.ReadFile(path))
	require.NoError(c.BindFlags(newFlags(t, "--rpc-provider", "http://flag:8545")))
	require.Equal("http://flag:8545", c.GetConfigStringValue("rpc-provider"))
}

func TestDefaults(t *testing.T) {
	require := require.New(t)
	c := New()
	require.NoError(c.ReadDefault(t.TempDir()))
	require.False(c.ConfigFileExists())
	require.NoError(c.BindFlags(newFlags(t)))
	require.Equal("http://127.0.0.1:8545", c.GetConfigStringValue("rpc-provider"))
	require.Equal(uint64(5), c.GetConfigUint64Value("gas-price"))
}
