// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package manifest

import (
	"errors"
	"testing"

	"github.com/luxfi/raiden-deploy/internal/testutils"
	"github.com/luxfi/raiden-deploy/pkg/constants"
	"github.com/luxfi/raiden-deploy/pkg/models"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

const contractsDir = "/contracts"

func newTestSource(t *testing.T) *Source {
	fs := afero.NewMemMapFs()
	require.NoError(t, testutils.WriteManifest(fs, contractsDir, "0.4.0", testutils.ManifestOptions{WithEndpointRegistry: true}))
	require.NoError(t, testutils.WriteManifest(fs, contractsDir, "0.37.0", testutils.ManifestOptions{WithLimits: true}))
	require.NoError(t, testutils.WriteManifest(fs, contractsDir, "0.10.0", testutils.ManifestOptions{WithLimits: true}))
	// not a release and without manifest: both ignored
	require.NoError(t, fs.MkdirAll(contractsDir+"/scratch", 0o755))
	require.NoError(t, fs.MkdirAll(contractsDir+"/0.50.0", 0o755))
	return NewSource(fs, contractsDir)
}

func TestSourceVersions(t *testing.T) {
	require := require.New(t)
	src := newTestSource(t)
	vs, err := src.Versions()
	require.NoError(err)
	require.Equal([]string{"0.4.0", "0.10.0", "0.37.0"}, vs)

	latest, err := src.Latest()
	require.NoError(err)
	require.Equal("0.37.0", latest)
}

func TestSourceLoad(t *testing.T) {
	require := require.New(t)
	src := newTestSource(t)

	m, err := src.Load(nil)
	require.NoError(err)
	require.Equal("0.37.0", m.Version)
	require.True(m.RequiresMaxTokenNetworks())
	require.False(m.Has(models.EndpointRegistry))

	v := "0.4.0"
	m, err = src.Load(&v)
	require.NoError(err)
	require.Equal("0.4.0", m.Version)
	require.False(m.RequiresMaxTokenNetworks())
	require.Equal(models.CoreContracts, m.Expected(models.CoreDeployment))

	missing := "0.5.0"
	_, err = src.Load(&missing)
	require.True(errors.Is(err, constants.ErrConfiguration))
}

func TestSourceLatestEmpty(t *testing.T) {
	src := NewSource(afero.NewMemMapFs(), contractsDir)
	_, err := src.Latest()
	require.True(t, errors.Is(err, constants.ErrConfiguration))
}

func TestManifestAccessors(t *testing.T) {
	require := require.New(t)
	m, err := Parse(testutils.ManifestJSON("0.37.0", testutils.ManifestOptions{WithLimits: true}))
	require.NoError(err)

	parsed, err := m.ABI(models.TokenNetworkRegistry)
	require.NoError(err)
	require.Len(parsed.Constructor.Inputs, 5)
	require.Contains(parsed.Methods, "createERC20TokenNetwork")

	code, err := m.Bytecode(models.SecretRegistry)
	require.NoError(err)
	require.Equal(testutils.CreationCode(models.SecretRegistry), code)

	runtime, err := m.RuntimeBytecode(models.OneToN)
	require.NoError(err)
	require.Equal(testutils.RuntimeCode(models.OneToN), runtime)

	require.Equal(models.ServiceContracts, m.Expected(models.ServicesDeployment))
	require.Equal([]models.ContractName{models.SecretRegistry, models.TokenNetworkRegistry}, m.Expected(models.CoreDeployment))

	_, err = m.ABI(models.EndpointRegistry)
	require.True(errors.Is(err, constants.ErrConfiguration))
}

func TestManifestExplicitPolicy(t *testing.T) {
	no := false
	m, err := Parse(testutils.ManifestJSON("0.37.0", testutils.ManifestOptions{MaxTokenNetworks: &no}))
	require.NoError(t, err)
	require.False(t, m.RequiresMaxTokenNetworks())
}

func TestParseRejectsUnknownContract(t *testing.T) {
	_, err := Parse([]byte(`{"contracts_version":"0.37.0","contracts":{"Whatever":{"abi":[],"bin":"0x00"}}}`))
	require.True(t, errors.Is(err, constants.ErrConfiguration))
	require.Contains(t, err.Error(), "HumanStandardToken")
}

func TestParseAcceptsLegacyToken(t *testing.T) {
	require := require.New(t)
	m, err := Parse([]byte(`{"contracts_version":"0.4.0","contracts":{
		"HumanStandardToken":{"abi":[],"bin":"0x00","bin-runtime":"0x01"}}}`))
	require.NoError(err)
	require.True(m.Has(models.HumanStandardToken))
	require.Empty(m.Expected(models.CoreDeployment))
}

func TestDecodeHex(t *testing.T) {
	require := require.New(t)
	b, err := decodeHex(models.OneToN, "bin", "6001")
	require.NoError(err)
	require.Equal([]byte{0x60, 0x01}, b)

	_, err = decodeHex(models.OneToN, "bin", "0x6")
	require.Error(err)
	_, err = decodeHex(models.OneToN, "bin", "")
	require.Error(err)
}

func TestSourceVersionMismatch(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, contractsDir+"/0.9.0/contracts.json",
		testutils.ManifestJSON("0.8.0", testutils.ManifestOptions{}), 0o644))
	v := "0.9.0"
	_, err := NewSource(fs, contractsDir).Load(&v)
	require.True(t, errors.Is(err, constants.ErrConfiguration))
}
