// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"os/user"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/luxfi/filesystem/perms"
	luxlog "github.com/luxfi/log"
	"github.com/luxfi/raiden-deploy/cmd/deploycmd"
	"github.com/luxfi/raiden-deploy/cmd/flags"
	"github.com/luxfi/raiden-deploy/pkg/application"
	"github.com/luxfi/raiden-deploy/pkg/config"
	"github.com/luxfi/raiden-deploy/pkg/constants"
	"github.com/luxfi/raiden-deploy/pkg/key"
	"github.com/luxfi/raiden-deploy/pkg/prompts"
	"github.com/luxfi/raiden-deploy/pkg/session"
	"github.com/luxfi/raiden-deploy/pkg/ux"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

var (
	app        *application.App
	logFactory luxlog.Factory

	Version = "0.1.0"
)

func NewRootCmd(app *application.App) *cobra.Command {
	// rootCmd represents the base command when called without any subcommands
	rootCmd := &cobra.Command{
		Use: "raiden-deploy",
		Long: `raiden-deploy deploys and verifies the payment-channel contracts.

Commands can be chained; they run in the given order and share one deployment
session, so a later command can use the addresses an earlier one deployed.
Shared flags go before the first command.

COMMANDS:

  core-deploy     SecretRegistry and TokenNetworkRegistry (alias: raiden)
  token-deploy    settlement token (alias: token)
  registry-link   register a token in the registry (alias: register)
  service-deploy  service contracts (alias: services)
  verify          compare recorded deployments with the ledger

EXAMPLE:

  raiden-deploy --private-key key.json --rpc-provider http://127.0.0.1:8545 \
      core-deploy --max-token-networks 10 \
      token-deploy --token-supply 1000000 \
      registry-link`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return prepare(cmd, app)
		},
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Disable printing the completion command
	rootCmd.CompletionOptions.HiddenDefaultCmd = true

	flags.AddSharedFlags(rootCmd.PersistentFlags())
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", constants.ErrConfiguration, err)
	})

	for _, cmd := range deploycmd.NewCmds(app) {
		rootCmd.AddCommand(cmd)
	}
	return rootCmd
}

// prepare runs ahead of every command of a chain. The app is only created
// by the first one; every command re-resolves the shared options.
func prepare(cmd *cobra.Command, app *application.App) error {
	shared := cmd.Root().PersistentFlags()
	if app.Log == nil {
		if err := createApp(shared, app); err != nil {
			return err
		}
	}
	if err := app.Conf.BindFlags(shared); err != nil {
		return err
	}
	settings, err := flags.Resolve(app.Conf)
	if err != nil {
		return err
	}
	app.Settings = settings
	return nil
}

func createApp(shared *pflag.FlagSet, app *application.App) error {
	if envFile, _ := shared.GetString(flags.EnvFileFlag); envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return fmt.Errorf("%w: failed loading env file %s: %w", constants.ErrConfiguration, envFile, err)
		}
	}
	baseDir, err := setupEnv()
	if err != nil {
		return err
	}

	conf, err := initConfig(shared, baseDir)
	if err != nil {
		return err
	}
	log, err := setupLogging(baseDir, conf.GetConfigStringValue(flags.LogLevelFlag))
	if err != nil {
		return err
	}
	if conf.ConfigFileExists() {
		log.Debug("using config file", zap.String("config-file", conf.GetConfigPath()))
	}

	// Interactive by default on TTY, non-interactive when
	// RAIDEN_DEPLOY_NON_INTERACTIVE=1, CI=1 or stdin is piped
	prompter := prompts.NewPrompterForMode()
	fs := afero.NewOsFs()
	backend := session.EthBackend{
		Loader: key.Loader{Fs: fs, Prompt: prompter.CapturePassword},
	}
	app.Setup(baseDir, log, conf, prompter, fs, backend, os.Stdout)
	app.Log.Info("starting", zap.String("version", Version), zap.String("base-dir", app.GetBaseDir()))
	return nil
}

func setupEnv() (string, error) {
	// Set base dir
	usr, err := user.Current()
	if err != nil {
		// no logger here yet
		fmt.Printf("unable to get system user %s\n", err)
		return "", err
	}
	baseDir := filepath.Join(usr.HomeDir, constants.BaseDirName)

	// Create base dir if it doesn't exist
	err = os.MkdirAll(baseDir, perms.ReadWriteExecute)
	if err != nil {
		// no logger here yet
		fmt.Printf("failed creating the basedir %s: %s\n", baseDir, err)
		return "", err
	}
	return baseDir, nil
}

// initConfig reads in the config file and ENV variables if set.
// Priority: flags > env vars > config file > defaults
func initConfig(shared *pflag.FlagSet, baseDir string) (*config.Config, error) {
	conf := config.New()
	if err := conf.BindFlags(shared); err != nil {
		return nil, err
	}
	if cfgFile := conf.GetConfigStringValue(flags.ConfigFlag); cfgFile != "" {
		if err := conf.ReadFile(cfgFile); err != nil {
			return nil, fmt.Errorf("%w: failed reading config file %s: %w", constants.ErrConfiguration, cfgFile, err)
		}
		return conf, nil
	}
	// No config file is normal, most operators only use flags
	if err := conf.ReadDefault(baseDir); err != nil {
		return nil, fmt.Errorf("%w: failed reading config file: %w", constants.ErrConfiguration, err)
	}
	return conf, nil
}

func setupLogging(baseDir, logLevel string) (luxlog.Logger, error) {
	config := luxlog.Config{}
	config.LogLevel = luxlog.Level(-6) // Info level for file logging

	var err error
	config.DisplayLevel, err = luxlog.ToLevel(logLevel)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid --%s %q: %w", constants.ErrConfiguration, flags.LogLevelFlag, logLevel, err)
	}

	config.Directory = filepath.Join(baseDir, constants.LogDir)
	if err := os.MkdirAll(config.Directory, perms.ReadWriteExecute); err != nil {
		return nil, fmt.Errorf("failed creating log directory: %w", err)
	}

	// some logging config params
	config.LogFormat = luxlog.Colors
	config.MaxSize = constants.MaxLogFileSize
	config.MaxFiles = constants.MaxNumOfLogFiles
	config.MaxAge = constants.RetainOldFiles

	// Register ux package as internal so caller tracking shows actual source, not the wrapper
	luxlog.RegisterInternalPackages("github.com/luxfi/raiden-deploy/pkg/ux")

	factory := luxlog.NewFactoryWithConfig(config)
	log, err := factory.Make("raiden-deploy")
	if err != nil {
		factory.Close()
		return nil, fmt.Errorf("failed setting up logging, exiting: %w", err)
	}
	logFactory = factory
	// create the user facing logger as a global var
	// progress goes to stderr so stdout only carries the address report
	ux.NewUserLog(log, os.Stderr)
	return log, nil
}

// Execute runs the command chain given on the command line.
// This is called by main.main().
func Execute() {
	app = application.New()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := RunChain(ctx, app, os.Args[1:])
	stop()
	if err != nil {
		if ux.Logger != nil {
			ux.Logger.PrintError("%s", err)
		} else {
			// failed before logging was set up
			fmt.Fprintf(os.Stderr, "\nERROR: %s\n", err)
		}
	}
	if logFactory != nil {
		logFactory.Close()
	}
	if err != nil {
		os.Exit(constants.ExitCode(err))
	}
}
