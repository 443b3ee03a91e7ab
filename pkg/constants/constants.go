// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package constants

import "time"

const (
	AppName = "xtoken-deploy"

	BaseDirName = ".xtoken"
	LogDir      = "logs"
	LogFileName = AppName + ".log"

	MaxLogFileSize   = 4 // megabytes
	MaxNumOfLogFiles = 5
	RetainOldFiles   = 0 // retain all old log files

	DefaultConfigFileName = "deploy"
	DefaultConfigFileType = "json"
	DotEnvFileName        = ".env"
	EnvPrefix             = "XTOKEN"

	// DefaultContractName is the contract this tool deploys.
	DefaultContractName = "XToken"
	// AddressLogPrefix precedes the deployed address on the success line.
	AddressLogPrefix = "tonContract address-->"

	DefaultArtifactsDir = "artifacts"
	BuildInfoDir        = "build-info"
	DebugFileSuffix     = ".dbg.json"

	LocalhostNetwork   = "localhost"
	HardhatNetwork     = "hardhat"
	DefaultNetwork     = LocalhostNetwork
	LocalRPCURL        = "http://127.0.0.1:8545"
	HardhatChainID     = 31337
	HardhatDevMnemonic = "test test test test test test test test test test test junk"

	// BIP-44 path used by Hardhat and most wallets, with the account index left open.
	EthereumDerivationPath = "m/44'/60'/0'/0/%d"

	DefaultLogLevel = "info"
	// DefaultDeployTimeout of zero waits for the deployment without a deadline.
	DefaultDeployTimeout = time.Duration(0)
)

// config keys, shared by flags, env and the config file
const (
	ConfigNetwork      = "network"
	ConfigNetworks     = "networks"
	ConfigRPCURL       = "rpc-url"
	ConfigChainID      = "chain-id"
	ConfigPrivateKey   = "private-key"
	ConfigMnemonic     = "mnemonic"
	ConfigAccountIndex = "account-index"
	ConfigArtifacts    = "artifacts"
	ConfigContract     = "contract"
	ConfigTimeout      = "timeout"
	ConfigLogLevel     = "log-level"
)
