package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"sentinel-sim/internal/config"
	"sentinel-sim/internal/logging"
)

const defaultConfigPath = "config/sentinel.yaml"

var (
	configPath string
	schemaPath string
	logLevel   string
	logger     *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "sentinel-sim",
	Short: "Supply chain disruption simulator",
	Long:  "Sentinel-Sim injects random supply chain disruptions into an inventory table, flags components at risk and estimates the value of expediting them.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = logging.New(logLevel)
	},
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", defaultConfigPath, "Path to sentinel configuration YAML")
	rootCmd.PersistentFlags().StringVar(&schemaPath, "schema", "schemas/sentinel.cue", "Path to CUE schema file (empty disables validation)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(scenarioCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(dashboardCmd)
}

// loadConfig reads the config file, falling back to the built-in defaults when
// the default path is absent, and applies SENTINEL_SEED.
func loadConfig(path, schema string) (*config.SentinelConfig, error) {
	cfg, err := config.Load(path, schema)
	if errors.Is(err, fs.ErrNotExist) && path == defaultConfigPath {
		if logger != nil {
			logger.Warn("config file not found, using built-in defaults", "path", path)
		}
		cfg, err = config.Default(), nil
	}
	if err != nil {
		return nil, err
	}
	if s := os.Getenv("SENTINEL_SEED"); s != "" {
		seed, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid SENTINEL_SEED: %w", err)
		}
		cfg.Seed = seed
	}
	return cfg, nil
}
