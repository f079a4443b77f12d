// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package flags

import (
	"fmt"
	"strings"

	"github.com/luxfi/raiden-deploy/pkg/application"
	"github.com/luxfi/raiden-deploy/pkg/config"
	"github.com/luxfi/raiden-deploy/pkg/constants"
	"github.com/luxfi/raiden-deploy/pkg/session"
	"github.com/luxfi/raiden-deploy/pkg/ux"
	"github.com/spf13/pflag"
)

const (
	PrivateKeyFlag       = "private-key"
	PasswordFileFlag     = "password-file"
	RPCProviderFlag      = "rpc-provider"
	WaitFlag             = "wait"
	GasPriceFlag         = "gas-price"
	GasLimitFlag         = "gas-limit"
	ContractsVersionFlag = "contracts-version"
	ContractsDirFlag     = "contracts-dir"
	DeploymentDirFlag    = "deployment-dir"
	ReportFormatFlag     = "report-format"
	ConfigFlag           = "config"
	EnvFileFlag          = "env-file"
	LogLevelFlag         = "log-level"
)

// AddSharedFlags registers the options every command of a chain shares.
// Values are resolved through the config layers, so flags are registered
// without destinations.
func AddSharedFlags(fs *pflag.FlagSet) {
	fs.String(PrivateKeyFlag, "", "path to a private key file or JSON keystore")
	fs.String(PasswordFileFlag, "", "file holding the keystore password")
	fs.String(RPCProviderFlag, constants.DefaultRPCProvider, "address of the Ethereum RPC provider")
	fs.Uint64(WaitFlag, constants.DefaultWaitSeconds, "max tx wait time in seconds")
	fs.Uint64(GasPriceFlag, constants.DefaultGasPriceGwei, "gas price to use in gwei")
	fs.Uint64(GasLimitFlag, constants.DefaultGasLimit, "gas limit of every transaction")
	fs.String(ContractsVersionFlag, "", "contracts version to deploy or verify (latest by default)")
	fs.String(ContractsDirFlag, constants.DefaultContractsDir, "directory of <version>/contracts.json manifests")
	fs.String(DeploymentDirFlag, constants.DefaultDeploymentDir, "directory deployment info is saved to")
	fs.String(ReportFormatFlag, constants.ReportFormatJSON, "format of the address report (json or yaml)")
	fs.String(ConfigFlag, "", "config file (default is $HOME/"+constants.BaseDirName+"/config.json)")
	fs.String(EnvFileFlag, "", "file of KEY=value lines loaded into the environment")
	fs.String(LogLevelFlag, "ERROR", "log level for the application")
}

// Resolve reads the shared options from conf, which must have the shared
// flags bound.
func Resolve(conf *config.Config) (application.Settings, error) {
	settings := application.Settings{
		Session: session.Inputs{
			KeyPath:      conf.GetConfigStringValue(PrivateKeyFlag),
			PasswordFile: conf.GetConfigStringValue(PasswordFileFlag),
			RPCProvider:  conf.GetConfigStringValue(RPCProviderFlag),
			WaitSeconds:  conf.GetConfigUint64Value(WaitFlag),
			GasPriceGwei: conf.GetConfigUint64Value(GasPriceFlag),
			GasLimit:     conf.GetConfigUint64Value(GasLimitFlag),
		},
		ContractsDir:  conf.GetConfigStringValue(ContractsDirFlag),
		DeploymentDir: conf.GetConfigStringValue(DeploymentDirFlag),
		ReportFormat:  strings.ToLower(conf.GetConfigStringValue(ReportFormatFlag)),
	}
	if v := conf.GetConfigStringValue(ContractsVersionFlag); v != "" {
		settings.Session.ContractsVersion = &v
	}
	switch {
	case settings.Session.RPCProvider == "":
		return application.Settings{}, fmt.Errorf("%w: --%s cannot be empty", constants.ErrConfiguration, RPCProviderFlag)
	case settings.Session.WaitSeconds == 0:
		return application.Settings{}, fmt.Errorf("%w: --%s must be positive", constants.ErrConfiguration, WaitFlag)
	case settings.Session.GasLimit == 0:
		return application.Settings{}, fmt.Errorf("%w: --%s must be positive", constants.ErrConfiguration, GasLimitFlag)
	}
	if err := ux.ValidateReportFormat(settings.ReportFormat); err != nil {
		return application.Settings{}, err
	}
	return settings, nil
}
