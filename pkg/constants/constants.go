// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package constants

import (
	"time"
)

const (
	BaseDirName = ".raiden-deploy"
	LogDir      = "logs"

	MaxLogFileSize   = 4
	MaxNumOfLogFiles = 5
	RetainOldFiles   = 0 // retain all old log files

	DefaultConfigFileName = "config"
	DefaultConfigFileType = "json"
	EnvPrefix             = "RAIDEN_DEPLOY"

	DefaultRPCProvider   = "http://127.0.0.1:8545"
	DefaultWaitSeconds   = 300
	DefaultGasPriceGwei  = 5
	DefaultGasLimit      = 5_500_000
	DefaultContractsDir  = "contracts"
	DefaultDeploymentDir = "deployments"

	ContractsManifestFileName = "contracts.json"
	DeploymentFilePrefix      = "deployment_"
	ServicesDeploymentPrefix  = "deployment_services_"
	JSONSuffix                = ".json"

	// TokenNetworkRegistry construction parameters, in blocks
	SettleTimeoutMin = 500
	SettleTimeoutMax = 555428

	// first contracts version whose TokenNetworkRegistry takes a network cap
	MaxTokenNetworksSinceVersion = "0.9.0"

	ReceiptPollInterval = 1 * time.Second

	DefaultTokenSupply   = 10_000_000
	DefaultTokenDecimals = 18
	DefaultTokenName     = "CustomToken"
	DefaultTokenSymbol   = "TKN"

	ReportFormatJSON = "json"
	ReportFormatYAML = "yaml"

	// exit statuses
	ExitFailure    = 1
	ExitUsageError = 2
)
