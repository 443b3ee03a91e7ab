// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	luxlog "github.com/luxfi/log"
	"github.com/luxfi/xtoken-deploy/pkg/application"
	"github.com/luxfi/xtoken-deploy/pkg/config"
	"github.com/luxfi/xtoken-deploy/pkg/constants"
	"github.com/luxfi/xtoken-deploy/pkg/deploy"
	"github.com/luxfi/xtoken-deploy/pkg/framework"
	"github.com/luxfi/xtoken-deploy/pkg/ux"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	app *application.App

	Version = "0.1.0"
	cfgFile string

	// connect builds the deployment runtime, replaced in tests
	connect = func(ctx context.Context, cfg *config.Config, fs afero.Fs, log luxlog.Logger) (deploy.Runtime, error) {
		rt, err := framework.New(ctx, cfg, fs, log)
		if err != nil {
			return nil, err
		}
		return rt, nil
	}
)

func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   constants.AppName,
		Short: "Deploy the XToken contract and print its address",
		Long: `Deploys the compiled XToken contract with no constructor arguments and
prints the address it was deployed at.

The contract is read from Hardhat artifacts (./artifacts by default), so
compile it first with 'npx hardhat compile'. With no configuration the
contract is deployed to the local node at ` + constants.LocalRPCURL + ` using
the first Hardhat development account.

Settings can be given as flags, as XTOKEN_* environment variables (also read
from a .env file in the working directory) or in ~/` + constants.BaseDirName + `/deploy.json:

  XTOKEN_NETWORK, XTOKEN_RPC_URL, XTOKEN_CHAIN_ID, XTOKEN_PRIVATE_KEY,
  XTOKEN_MNEMONIC, XTOKEN_ACCOUNT_INDEX, XTOKEN_ARTIFACTS, XTOKEN_TIMEOUT

Exits with status 1 if the deployment fails for any reason.`,
		Args:              cobra.NoArgs,
		PersistentPreRunE: createApp,
		RunE:              deployContract,
		Version:           Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	// Disable printing the completion command
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/"+constants.BaseDirName+"/deploy.json)")
	rootCmd.PersistentFlags().String(constants.ConfigLogLevel, constants.DefaultLogLevel, "log level for the log file")
	rootCmd.Flags().String(constants.ConfigNetwork, constants.DefaultNetwork, "network to deploy to")
	rootCmd.Flags().String(constants.ConfigRPCURL, "", "RPC endpoint, overrides the network URL")
	rootCmd.Flags().String(constants.ConfigArtifacts, constants.DefaultArtifactsDir, "compiled artifacts directory")
	rootCmd.Flags().String(constants.ConfigContract, constants.DefaultContractName, "contract to deploy")
	_ = rootCmd.Flags().MarkHidden(constants.ConfigContract)
	return rootCmd
}

func createApp(cmd *cobra.Command, _ []string) error {
	baseDir, err := setupEnv()
	if err != nil {
		return err
	}
	workDir, err := os.Getwd()
	if err != nil {
		return err
	}
	v := viper.New()
	if err := config.Init(v, cfgFile, baseDir, workDir); err != nil {
		return err
	}
	for _, key := range []string{
		constants.ConfigLogLevel,
		constants.ConfigNetwork,
		constants.ConfigRPCURL,
		constants.ConfigArtifacts,
		constants.ConfigContract,
	} {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(key)); err != nil {
			return err
		}
	}
	cfg, err := config.Load(v)
	if err != nil {
		return err
	}
	runID := uuid.NewString()
	log, err := setupLogging(baseDir, cfg.LogLevel, runID)
	if err != nil {
		return err
	}
	out := ux.NewUserLog(log, cmd.OutOrStdout(), cmd.ErrOrStderr())
	app.Setup(baseDir, runID, log, out, cfg)
	if used := v.ConfigFileUsed(); used != "" {
		app.Log.Debug("using config file", luxlog.String("config-file", used))
	}
	app.Log.Info("starting deployment",
		luxlog.String("version", Version),
		luxlog.String("contract", cfg.ContractName),
		luxlog.String("network", cfg.Network.Name),
		luxlog.Stringer("timeout", cfg.Timeout),
	)
	return nil
}

func deployContract(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if app.Conf.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, app.Conf.Timeout)
		defer cancel()
	}
	rt, err := connect(ctx, app.Conf, app.FS, app.Log)
	if err != nil {
		return err
	}
	if closer, ok := rt.(interface{ Close() }); ok {
		defer closer.Close()
	}
	_, err = deploy.Run(ctx, rt, app.Conf.ContractName, app.Out)
	return err
}

func setupEnv() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("unable to get user home dir: %w", err)
	}
	baseDir := filepath.Join(home, constants.BaseDirName)
	if err := os.MkdirAll(baseDir, 0o750); err != nil {
		return "", fmt.Errorf("failed creating the basedir %s: %w", baseDir, err)
	}
	return baseDir, nil
}

func setupLogging(baseDir string, logLevel string, runID string) (luxlog.Logger, error) {
	level, err := luxlog.ToLevel(logLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", logLevel, err)
	}
	// library loggers write to stderr, hold them to the same level as the file
	luxlog.SetGlobalLevel(level)

	logConfig := luxlog.Config{}
	logConfig.LogLevel = level
	logConfig.Directory = filepath.Join(baseDir, constants.LogDir)
	if err := os.MkdirAll(logConfig.Directory, 0o750); err != nil {
		return nil, fmt.Errorf("failed creating log directory: %w", err)
	}
	logConfig.LogFormat = luxlog.JSON
	logConfig.MaxSize = constants.MaxLogFileSize
	logConfig.MaxFiles = constants.MaxNumOfLogFiles
	logConfig.MaxAge = constants.RetainOldFiles
	// stdout and stderr carry only the address or the error line
	logConfig.DisableWriterDisplaying = true

	factory := luxlog.NewFactoryWithConfig(logConfig)
	log, err := factory.Make(constants.AppName)
	if err != nil {
		factory.Close()
		return nil, fmt.Errorf("failed setting up logging, exiting: %w", err)
	}
	app.OnClose(func() error {
		factory.Close()
		return nil
	})
	return log.With().Str("runID", runID).Logger(), nil
}

// ExecuteContext runs the command line in [args] and returns the process exit code.
// Output goes to [stdout], the error line of a failed run goes to [stderr].
func ExecuteContext(ctx context.Context, args []string, stdout io.Writer, stderr io.Writer) int {
	app = application.New()
	defer app.Close()
	rootCmd := NewRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if app.Out != nil {
			app.Out.PrintError(err)
		} else {
			fmt.Fprintf(stderr, "ERROR: %s\n", err)
		}
		return 1
	}
	return 0
}

// Execute is called by main.main()
func Execute() {
	os.Exit(ExecuteContext(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}
