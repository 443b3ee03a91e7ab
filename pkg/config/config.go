// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/luxfi/xtoken-deploy/pkg/constants"
	"github.com/spf13/viper"
)

// Network mirrors a Hardhat network entry
type Network struct {
	Name         string `mapstructure:"-"`
	URL          string `mapstructure:"url"`
	ChainID      uint64 `mapstructure:"chainId"`
	PrivateKey   string `mapstructure:"privateKey"`
	Mnemonic     string `mapstructure:"mnemonic"`
	AccountIndex uint32 `mapstructure:"accountIndex"`
}

// IsLocal is true for the development node networks
func (n Network) IsLocal() bool {
	return n.Name == constants.LocalhostNetwork || n.Name == constants.HardhatNetwork
}

type Config struct {
	Network      Network
	ArtifactsDir string
	ContractName string
	// Timeout bounds the whole deployment when positive
	Timeout  time.Duration
	LogLevel string
}

func presets() map[string]Network {
	return map[string]Network{
		constants.LocalhostNetwork: {URL: constants.LocalRPCURL, ChainID: constants.HardhatChainID},
		constants.HardhatNetwork:   {URL: constants.LocalRPCURL, ChainID: constants.HardhatChainID},
	}
}

func SetDefaults(v *viper.Viper) {
	v.SetDefault(constants.ConfigNetwork, constants.DefaultNetwork)
	v.SetDefault(constants.ConfigArtifacts, constants.DefaultArtifactsDir)
	v.SetDefault(constants.ConfigContract, constants.DefaultContractName)
	v.SetDefault(constants.ConfigTimeout, constants.DefaultDeployTimeout)
	v.SetDefault(constants.ConfigLogLevel, constants.DefaultLogLevel)
}

// Init wires env vars, the .env file in [workDir] and the config file into [v].
// Priority: flags > env vars > .env > config file > defaults
func Init(v *viper.Viper, cfgFile string, baseDir string, workDir string) error {
	// godotenv.Load never overrides variables that are already set
	if err := godotenv.Load(filepath.Join(workDir, constants.DotEnvFileName)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed loading %s: %w", constants.DotEnvFileName, err)
	}
	SetDefaults(v)
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(baseDir)
		v.SetConfigType(constants.DefaultConfigFileType)
		v.SetConfigName(constants.DefaultConfigFileName)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// no config file is normal, an explicit one that is missing is not
		if errors.As(err, &notFound) || (cfgFile == "" && errors.Is(err, os.ErrNotExist)) {
			return nil
		}
		return fmt.Errorf("failed reading config file: %w", err)
	}
	return nil
}

// Load resolves the effective configuration from [v]
func Load(v *viper.Viper) (*Config, error) {
	network, err := resolveNetwork(v)
	if err != nil {
		return nil, err
	}
	return &Config{
		Network:      network,
		ArtifactsDir: v.GetString(constants.ConfigArtifacts),
		ContractName: v.GetString(constants.ConfigContract),
		Timeout:      v.GetDuration(constants.ConfigTimeout),
		LogLevel:     v.GetString(constants.ConfigLogLevel),
	}, nil
}

func resolveNetwork(v *viper.Viper) (Network, error) {
	networks := presets()
	custom := map[string]Network{}
	if err := v.UnmarshalKey(constants.ConfigNetworks, &custom); err != nil {
		return Network{}, fmt.Errorf("invalid %q config: %w", constants.ConfigNetworks, err)
	}
	for name, network := range custom {
		networks[strings.ToLower(name)] = network
	}

	name := strings.ToLower(v.GetString(constants.ConfigNetwork))
	network, ok := networks[name]
	if !ok {
		if v.GetString(constants.ConfigRPCURL) == "" {
			return Network{}, fmt.Errorf("%w %q, known networks: %s", constants.ErrUnknownNetwork, name, strings.Join(sortedNames(networks), ", "))
		}
		network = Network{}
	}
	network.Name = name

	if url := v.GetString(constants.ConfigRPCURL); url != "" {
		network.URL = url
	}
	if v.IsSet(constants.ConfigChainID) {
		network.ChainID = v.GetUint64(constants.ConfigChainID)
	}
	if pk := v.GetString(constants.ConfigPrivateKey); pk != "" {
		network.PrivateKey = pk
	}
	if mnemonic := v.GetString(constants.ConfigMnemonic); mnemonic != "" {
		network.Mnemonic = mnemonic
	}
	if v.IsSet(constants.ConfigAccountIndex) {
		network.AccountIndex = v.GetUint32(constants.ConfigAccountIndex)
	}
	return network, nil
}

func sortedNames(networks map[string]Network) []string {
	names := make([]string, 0, len(networks))
	for name := range networks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
