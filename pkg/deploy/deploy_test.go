// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package deploy

import (
	"context"
	"errors"
	"math"
	"math/big"
	"testing"

	"github.com/luxfi/geth/common"
	"github.com/luxfi/geth/core/types"
	luxlog "github.com/luxfi/log"
	"github.com/luxfi/raiden-deploy/internal/mocks"
	"github.com/luxfi/raiden-deploy/internal/testutils"
	"github.com/luxfi/raiden-deploy/pkg/constants"
	"github.com/luxfi/raiden-deploy/pkg/contract"
	contractmocks "github.com/luxfi/raiden-deploy/pkg/contract/mocks"
	"github.com/luxfi/raiden-deploy/pkg/deployinfo"
	"github.com/luxfi/raiden-deploy/pkg/manifest"
	"github.com/luxfi/raiden-deploy/pkg/models"
	"github.com/luxfi/raiden-deploy/pkg/session"
	"github.com/luxfi/raiden-deploy/pkg/verify"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testChainID = 5

type fakeEnv struct {
	fs           afero.Fs
	manifest     *manifest.Manifest
	session      *session.Session
	client       *mocks.Client
	deployer     *contractmocks.Deployer
	sessionCalls int
}

func newFakeEnv(t *testing.T, version string, opts testutils.ManifestOptions) *fakeEnv {
	m, err := manifest.Parse(testutils.ManifestJSON(version, opts))
	require.NoError(t, err)
	client := &mocks.Client{}
	deployer := &contractmocks.Deployer{}
	return &fakeEnv{
		fs:       afero.NewMemMapFs(),
		manifest: m,
		client:   client,
		deployer: deployer,
		session: &session.Session{
			ID:               "test-session",
			Owner:            testutils.Address(0xee),
			ContractsVersion: m.Version,
			ChainID:          testChainID,
			Registry:         session.NewRegistry(),
			TokenType:        models.CustomToken,
			Client:           client,
			Deployer:         deployer,
			Manifest:         m,
		},
	}
}

func (e *fakeEnv) Manifest() (*manifest.Manifest, error) {
	return e.manifest, nil
}

func (e *fakeEnv) Session(context.Context) (*session.Session, error) {
	e.sessionCalls++
	return e.session, nil
}

func (e *fakeEnv) ReadClient(context.Context) (contract.Client, error) {
	return e.client, nil
}

func (e *fakeEnv) Store() *deployinfo.Store {
	return deployinfo.NewStore(e.fs, "/deployments")
}

func (*fakeEnv) Logger() luxlog.Logger {
	return luxlog.NewNoOpLogger()
}

// coreInfo records a core deployment; maxTokenNetworks is the registry cap
// argument of versions that take one.
func coreInfo(version string, maxTokenNetworks ...string) *models.DeploymentInfo {
	info := models.NewDeploymentInfo(models.CoreDeployment, version, testChainID)
	info.Contracts[models.SecretRegistry] = models.DeployedContract{
		Address: testutils.Address(1), TransactionHash: testutils.Hash(1), BlockNumber: 10, ConstructorArguments: []string{},
	}
	info.Contracts[models.TokenNetworkRegistry] = models.DeployedContract{
		Address: testutils.Address(2), TransactionHash: testutils.Hash(2), BlockNumber: 11,
		ConstructorArguments: append([]string{testutils.Address(1).Hex(), "5", "500", "555428"}, maxTokenNetworks...),
	}
	return info
}

// servicesInfo records a service deployment paying in token with limit.
func servicesInfo(token common.Address, limit string) *models.DeploymentInfo {
	info := models.NewDeploymentInfo(models.ServicesDeployment, "0.37.0", testChainID)
	serviceRegistry, userDeposit := testutils.Address(0x30), testutils.Address(0x31)
	args := map[models.ContractName][]string{
		models.ServiceRegistry:   {token.Hex()},
		models.UserDeposit:       {token.Hex(), limit},
		models.MonitoringService: {token.Hex(), serviceRegistry.Hex(), userDeposit.Hex()},
		models.OneToN:            {userDeposit.Hex(), "5"},
	}
	for i, name := range models.ServiceContracts {
		info.Contracts[name] = models.DeployedContract{
			Address:              testutils.Address(byte(0x30 + i)),
			TransactionHash:      testutils.Hash(byte(0x30 + i)),
			BlockNumber:          uint64(20 + i),
			ConstructorArguments: args[name],
		}
	}
	return info
}

// onChain makes the ledger agree with every contract of info.
func onChain(client *mocks.Client, info *models.DeploymentInfo) {
	for name, c := range info.Contracts {
		client.On("CodeAt", mock.Anything, c.Address, mock.Anything).Return(testutils.RuntimeCode(name), nil)
		client.On("TransactionReceipt", mock.Anything, c.TransactionHash).Return(&types.Receipt{
			ContractAddress: c.Address,
			BlockNumber:     new(big.Int).SetUint64(c.BlockNumber),
		}, nil)
	}
}

func TestScaleSupply(t *testing.T) {
	require := require.New(t)
	scaled, err := ScaleSupply(1_000_000, 18)
	require.NoError(err)
	require.Equal("1000000000000000000000000", scaled.String())

	scaled, err = ScaleSupply(0, 255)
	require.NoError(err)
	require.Zero(scaled.Sign())

	scaled, err = ScaleSupply(math.MaxUint64, 57)
	require.NoError(err)
	require.LessOrEqual(scaled.BitLen(), 256)

	_, err = ScaleSupply(math.MaxUint64, 58)
	require.ErrorIs(err, constants.ErrParameter)
	_, err = ScaleSupply(1, 78)
	require.ErrorIs(err, constants.ErrParameter)
}

func TestCoreRejectsParametersBeforeSession(t *testing.T) {
	require := testutils.SetupTest(t)
	bound := uint64(10)

	env := newFakeEnv(t, "0.4.0", testutils.ManifestOptions{})
	_, err := Core(context.Background(), env, CoreInputs{MaxTokenNetworks: &bound})
	require.ErrorIs(err, constants.ErrParameter)
	require.Zero(env.sessionCalls)

	env = newFakeEnv(t, "0.37.0", testutils.ManifestOptions{WithLimits: true})
	_, err = Core(context.Background(), env, CoreInputs{})
	require.ErrorIs(err, constants.ErrParameter)
	require.Contains(err.Error(), "mandatory")
	require.Zero(env.sessionCalls)
}

func TestCoreSavesAndVerifies(t *testing.T) {
	require := testutils.SetupTest(t)
	env := newFakeEnv(t, "0.37.0", testutils.ManifestOptions{WithLimits: true})
	info := coreInfo("0.37.0", "10")
	bound := uint64(10)
	env.deployer.On("DeployCoreContracts", mock.Anything, contract.CoreParams{MaxTokenNetworks: &bound}).Return(info, nil)
	onChain(env.client, info)

	report, err := Core(context.Background(), env, CoreInputs{MaxTokenNetworks: &bound, SaveInfo: true})
	require.NoError(err)
	require.Equal(Report{
		models.SecretRegistry:       testutils.Address(1),
		models.TokenNetworkRegistry: testutils.Address(2),
	}, report)

	got, ok := env.session.Registry.Get(models.TokenNetworkRegistry)
	require.True(ok)
	require.Equal(testutils.Address(2), got)

	saved, err := env.Store().Load(models.CoreDeployment, testChainID, "0.37.0")
	require.NoError(err)
	require.Equal(info, saved)
}

func TestCoreWithoutSaveWritesNothing(t *testing.T) {
	require := testutils.SetupTest(t)
	env := newFakeEnv(t, "0.4.0", testutils.ManifestOptions{})
	info := coreInfo("0.4.0")
	env.deployer.On("DeployCoreContracts", mock.Anything, contract.CoreParams{}).Return(info, nil)
	onChain(env.client, info)

	_, err := Core(context.Background(), env, CoreInputs{})
	require.NoError(err)
	_, err = env.Store().Load(models.CoreDeployment, testChainID, "0.4.0")
	require.ErrorIs(err, deployinfo.ErrNotFound)
}

func TestCoreVerificationFailure(t *testing.T) {
	require := testutils.SetupTest(t)
	env := newFakeEnv(t, "0.4.0", testutils.ManifestOptions{})
	info := coreInfo("0.4.0")
	env.deployer.On("DeployCoreContracts", mock.Anything, contract.CoreParams{}).Return(info, nil)
	env.client.On("CodeAt", mock.Anything, testutils.Address(1), mock.Anything).Return([]byte{0x01}, nil)
	onChain(env.client, info)

	_, err := Core(context.Background(), env, CoreInputs{SaveInfo: true})
	require.ErrorIs(err, constants.ErrVerificationMismatch)
}

type recordingVerifier struct {
	verified []*models.DeploymentInfo
	err      error
}

func (v *recordingVerifier) Verify(_ context.Context, info *models.DeploymentInfo) error {
	v.verified = append(v.verified, info)
	return v.err
}

func TestBridgeVerifiesLoadedCopy(t *testing.T) {
	require := testutils.SetupTest(t)
	store := deployinfo.NewStore(afero.NewMemMapFs(), "/deployments")
	verifier := &recordingVerifier{}
	bridge := NewBridge(store, verifier, luxlog.NewNoOpLogger())
	info := coreInfo("0.37.0")

	require.NoError(bridge.Finalize(context.Background(), info, true))
	require.Len(verifier.verified, 1)
	require.NotSame(info, verifier.verified[0])
	require.Equal(info, verifier.verified[0])

	require.NoError(bridge.Finalize(context.Background(), info, false))
	require.Same(info, verifier.verified[1])

	verifier.err = errors.New("boom")
	require.Error(bridge.Finalize(context.Background(), info, true))
}

func TestServices(t *testing.T) {
	require := testutils.SetupTest(t)
	env := newFakeEnv(t, "0.37.0", testutils.ManifestOptions{})
	token := testutils.Address(0xaa)
	limit := big.NewInt(1_000)

	info := servicesInfo(token, "1000")
	env.deployer.On("DeployServiceContracts", mock.Anything, contract.ServiceParams{
		TokenAddress:          token,
		UserDepositWholeLimit: limit,
	}).Return(info, nil)
	onChain(env.client, info)

	report, err := Services(context.Background(), env, ServiceInputs{TokenAddress: &token, UserDepositWholeLimit: limit})
	require.NoError(err)
	require.Len(report, 4)
	got, ok := env.session.Registry.Get(models.OneToN)
	require.True(ok)
	require.Equal(info.Contracts[models.OneToN].Address, got)
}

func TestServicesRecordedAgainstAnotherToken(t *testing.T) {
	require := testutils.SetupTest(t)
	env := newFakeEnv(t, "0.37.0", testutils.ManifestOptions{})
	token := testutils.Address(0xaa)
	limit := big.NewInt(1_000)

	info := servicesInfo(testutils.Address(0xbb), "1000")
	env.deployer.On("DeployServiceContracts", mock.Anything, mock.Anything).Return(info, nil)
	onChain(env.client, info)

	_, err := Services(context.Background(), env, ServiceInputs{TokenAddress: &token, UserDepositWholeLimit: limit, SaveInfo: true})
	require.ErrorIs(err, constants.ErrVerificationMismatch)
	require.Contains(err.Error(), "constructor arguments")
}

func TestServicesInputErrors(t *testing.T) {
	require := testutils.SetupTest(t)
	env := newFakeEnv(t, "0.37.0", testutils.ManifestOptions{})

	_, err := Services(context.Background(), env, ServiceInputs{UserDepositWholeLimit: big.NewInt(0)})
	require.ErrorIs(err, constants.ErrParameter)
	require.Zero(env.sessionCalls)

	_, err = Services(context.Background(), env, ServiceInputs{UserDepositWholeLimit: big.NewInt(1)})
	require.ErrorIs(err, constants.ErrConfiguration)
	env.deployer.AssertNotCalled(t, "DeployServiceContracts", mock.Anything, mock.Anything)
}

func TestToken(t *testing.T) {
	require := testutils.SetupTest(t)
	env := newFakeEnv(t, "0.37.0", testutils.ManifestOptions{})
	scaled, err := ScaleSupply(10_000_000, 18)
	require.NoError(err)
	env.deployer.On("DeployToken", mock.Anything, contract.TokenParams{
		Type:     models.CustomToken,
		Supply:   scaled,
		Decimals: 18,
		Name:     "CustomToken",
		Symbol:   "TKN",
	}).Return(models.DeployedContract{Address: testutils.Address(0xaa)}, nil)

	report, err := Token(context.Background(), env, TokenInputs{Supply: 10_000_000, Decimals: 18, Name: "CustomToken", Symbol: "TKN"})
	require.NoError(err)
	require.Equal(Report{models.CustomToken: testutils.Address(0xaa)}, report)
	got, ok := env.session.Registry.Get(models.CustomToken)
	require.True(ok)
	require.Equal(testutils.Address(0xaa), got)
	_, err = env.Store().Load(models.CoreDeployment, testChainID, "0.37.0")
	require.ErrorIs(err, deployinfo.ErrNotFound)
}

func TestValidateWithoutSession(t *testing.T) {
	require := testutils.SetupTest(t)
	env := newFakeEnv(t, "0.37.0", testutils.ManifestOptions{})

	require.NoError(ValidateToken(env, TokenInputs{Supply: 1_000_000, Decimals: 18}))
	require.ErrorIs(ValidateToken(env, TokenInputs{Supply: 1, Decimals: 78}), constants.ErrParameter)

	require.NoError(ValidateRegister(env, RegisterInputs{}))
	err := ValidateRegister(env, RegisterInputs{TokenNetworkDepositLimit: big.NewInt(1)})
	require.ErrorIs(err, constants.ErrParameter)
	require.Contains(err.Error(), "deposit limits are not accepted")

	limited := newFakeEnv(t, "0.37.0", testutils.ManifestOptions{WithLimits: true})
	require.NoError(ValidateRegister(limited, RegisterInputs{TokenNetworkDepositLimit: big.NewInt(1)}))

	_, err = Register(context.Background(), env, RegisterInputs{ChannelParticipantDepositLimit: big.NewInt(1)})
	require.ErrorIs(err, constants.ErrParameter)
	require.Zero(env.sessionCalls)
	require.Zero(limited.sessionCalls)
}

func TestRegisterNeedsRegistry(t *testing.T) {
	require := testutils.SetupTest(t)
	env := newFakeEnv(t, "0.37.0", testutils.ManifestOptions{})
	token := testutils.Address(0xaa)

	_, err := Register(context.Background(), env, RegisterInputs{TokenAddress: &token})
	require.ErrorIs(err, constants.ErrConfiguration)
	require.Contains(err.Error(), "no TokenNetworkRegistry was specified")
	env.deployer.AssertNotCalled(t, "RegisterToken", mock.Anything, mock.Anything)
}

func TestRegisterNeedsToken(t *testing.T) {
	require := testutils.SetupTest(t)
	env := newFakeEnv(t, "0.37.0", testutils.ManifestOptions{})
	registry := testutils.Address(0x10)

	_, err := Register(context.Background(), env, RegisterInputs{RegistryAddress: &registry})
	require.ErrorIs(err, constants.ErrConfiguration)
	env.deployer.AssertNotCalled(t, "RegisterToken", mock.Anything, mock.Anything)
}

func TestRegisterResolution(t *testing.T) {
	require := testutils.SetupTest(t)
	env := newFakeEnv(t, "0.37.0", testutils.ManifestOptions{WithLimits: true})
	require.NoError(env.session.Registry.Set(models.CustomToken, testutils.Address(0xaa)))
	require.NoError(env.session.Registry.Set(models.TokenNetworkRegistry, testutils.Address(0x01)))
	explicit := testutils.Address(0x10)
	limit := big.NewInt(100)

	env.deployer.On("RegisterToken", mock.Anything, mock.MatchedBy(func(p contract.RegisterParams) bool {
		return p.Registry == explicit &&
			p.Token == testutils.Address(0xaa) &&
			p.ChannelParticipantDepositLimit == limit &&
			p.TokenNetworkDepositLimit == nil &&
			len(p.RegistryABI.Methods["createERC20TokenNetwork"].Inputs) == 3
	})).Return(&contract.Registration{TokenNetwork: testutils.Address(0x77)}, nil)

	report, err := Register(context.Background(), env, RegisterInputs{
		RegistryAddress:                &explicit,
		ChannelParticipantDepositLimit: limit,
	})
	require.NoError(err)
	require.Equal(Report{models.TokenNetwork: testutils.Address(0x77)}, report)
	got, _ := env.session.Registry.Get(models.TokenNetworkRegistry)
	require.Equal(explicit, got)
	got, _ = env.session.Registry.Get(models.TokenNetwork)
	require.Equal(testutils.Address(0x77), got)
}

func TestVerifyStandalone(t *testing.T) {
	require := testutils.SetupTest(t)
	env := newFakeEnv(t, "0.37.0", testutils.ManifestOptions{})
	env.client.On("ChainID", mock.Anything).Return(big.NewInt(testChainID), nil)

	_, err := VerifyStandalone(context.Background(), env)
	require.ErrorIs(err, constants.ErrConfiguration)

	info := coreInfo("0.37.0")
	_, err = env.Store().Persist(info)
	require.NoError(err)
	onChain(env.client, info)

	report, err := VerifyStandalone(context.Background(), env)
	require.NoError(err)
	require.Equal(Report(info.Addresses()), report)
	require.Zero(env.sessionCalls)
}

func TestVerifyStandaloneCollectsMismatches(t *testing.T) {
	require := testutils.SetupTest(t)
	env := newFakeEnv(t, "0.37.0", testutils.ManifestOptions{})
	env.client.On("ChainID", mock.Anything).Return(big.NewInt(testChainID), nil)

	core := coreInfo("0.37.0")
	services := models.NewDeploymentInfo(models.ServicesDeployment, "0.37.0", testChainID)
	services.Contracts[models.OneToN] = models.DeployedContract{
		Address: testutils.Address(0x40), TransactionHash: testutils.Hash(0x40), BlockNumber: 30,
		ConstructorArguments: []string{testutils.Address(0x41).Hex(), "5"},
	}
	_, err := env.Store().Persist(core)
	require.NoError(err)
	_, err = env.Store().Persist(services)
	require.NoError(err)
	env.client.On("CodeAt", mock.Anything, testutils.Address(2), mock.Anything).Return([]byte{0x01}, nil)
	onChain(env.client, core)
	onChain(env.client, services)

	_, err = VerifyStandalone(context.Background(), env)
	require.ErrorIs(err, constants.ErrVerificationMismatch)
	var mismatchErr *verify.MismatchError
	require.True(errors.As(err, &mismatchErr))
	require.Equal([]models.ContractName{
		models.TokenNetworkRegistry,
		models.ServiceRegistry,
		models.UserDeposit,
		models.MonitoringService,
	}, mismatchErr.Contracts())
}
