package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/m3rciful/anonrelay/core/buildinfo"
	corecmd "github.com/m3rciful/anonrelay/core/cmd"
	coredatabase "github.com/m3rciful/anonrelay/core/database"
	"github.com/m3rciful/anonrelay/core/logger"
	"github.com/m3rciful/anonrelay/relay/app"
	"github.com/m3rciful/anonrelay/relay/storage"
)

const (
	configEnvVar      = "CONFIG_PATH"
	defaultConfigPath = "config.yaml"
)

func newRootCmd() *cobra.Command {
	var cfgFile string

	root := &cobra.Command{
		Use:           "anonrelay",
		Short:         "Anonymous relay bot for Telegram",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return loadDotEnv(".env")
		},
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path (default $"+configEnvVar+" or "+defaultConfigPath+")")

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the bot until interrupted",
			Args:  cobra.NoArgs,
			RunE: func(*cobra.Command, []string) error {
				return serve(cfgFile)
			},
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Apply database migrations and exit",
			Args:  cobra.NoArgs,
			RunE: func(*cobra.Command, []string) error {
				return migrate(cfgFile)
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print build information",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, _ []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "anonrelay %s\n", buildinfo.String())
			},
		},
	)
	return root
}

// loadDotEnv reads path into the environment when it exists. Variables that
// are already set win.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil {
		log.Printf("loaded environment from %s", path)
		return nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("load %s: %w", path, err)
}

func runnerOptions(cfgFile string) corecmd.Options {
	return corecmd.Options{
		ConfigPath:        cfgFile,
		ConfigEnvVar:      configEnvVar,
		DefaultConfigPath: defaultConfigPath,
		LoadConfig: func(path string) (corecmd.ConfigCarrier, error) {
			cfg, err := app.Load(path)
			if err != nil {
				return nil, err
			}
			return cfg, nil
		},
		Bootstrap: func(c corecmd.ConfigCarrier) (corecmd.TelegramApp, error) {
			cfg, ok := c.(*app.Config)
			if !ok {
				return nil, fmt.Errorf("unexpected config type %T", c)
			}
			a, err := app.Bootstrap(cfg)
			if err != nil {
				return nil, err
			}
			return a, nil
		},
	}
}

func serve(cfgFile string) error {
	return corecmd.Run(runnerOptions(cfgFile))
}

func migrate(cfgFile string) error {
	path := corecmd.ResolveConfigPath(runnerOptions(cfgFile))
	cfg, err := app.LoadDatabase(path)
	if err != nil {
		return err
	}
	if err := logger.InitLogger(cfg.CoreConfig()); err != nil {
		return err
	}
	defer func() { _ = logger.Shutdown() }()

	src, err := storage.Migrations(cfg.Database.Driver)
	if err != nil {
		return err
	}
	return coredatabase.RunMigrations(cfg.Database, src)
}
