package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	app "github.com/rocketscienceinc/zoomingo-backend/internal"
	"github.com/rocketscienceinc/zoomingo-backend/internal/config"
)

const defaultConfigFile = "config.yml"

func newRootCmd() *cobra.Command {
	var configPath string

	serve := func(cmd *cobra.Command, _ []string) error {
		conf := initConfig(configPath)
		logger := initLogger(conf)

		if err := app.RunApp(cmd.Context(), logger, conf); err != nil {
			return fmt.Errorf("app run failed: %w", err)
		}

		return nil
	}

	cmd := &cobra.Command{
		Use:   "zoomingo",
		Short: "Backend for Zoomingo, bingo for video calls.",
		Args:  cobra.NoArgs,
		RunE:  serve,
	}

	flags := cmd.PersistentFlags()
	flags.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})
	flags.StringVarP(&configPath, "config", "c", "", "path to the config file (default ./config.yml)")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the HTTP server",
			Args:  cobra.NoArgs,
			RunE:  serve,
		},
		&cobra.Command{
			Use:   "seed",
			Short: "Load the scenario catalog into an empty store and exit",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				conf := initConfig(configPath)
				logger := initLogger(conf)

				store, err := app.OpenStore(cmd.Context(), conf)
				if err != nil {
					return err
				}
				defer store.Close()

				inserted, err := app.SeedCatalog(cmd.Context(), logger, conf, store)
				if err != nil {
					return err
				}

				cmd.Printf("inserted %d scenarios\n", inserted)

				return nil
			},
		},
	)

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	return cmd
}

// initialize config.
func initConfig(path string) *config.Config {
	if path == "" {
		baseDir, err := os.Getwd()
		if err != nil {
			panic(fmt.Errorf("failed to get current directory: %w", err))
		}

		path = filepath.Join(baseDir, defaultConfigFile)
	}

	return config.MustLoad(path)
}

// initialize logger.
func initLogger(conf *config.Config) *slog.Logger {
	var level slog.Level

	switch conf.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
