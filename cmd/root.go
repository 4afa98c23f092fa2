package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/denysvitali/webtree/pkg/config"
	"github.com/denysvitali/webtree/pkg/telemetry"
)

var logger = logrus.New()

// errUsage is returned after a command has already printed its usage text.
var errUsage = errors.New("usage error")

// NewRootCmd builds the webtree command tree.
func NewRootCmd() *cobra.Command {
	var cfgFile string

	cmd := &cobra.Command{
		Use:   "webtree",
		Short: "Maintenance tools for a static web tree",
		Long: `webtree keeps a static file tree browsable: it regenerates index.html
listings for every directory below a web root and scaffolds new pages
from a fixed template.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return initConfig(cfgFile)
		},
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./.webtree.yaml or $XDG_CONFIG_HOME/webtree/config.yaml)")
	cmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().Bool("log-json", false, "Output logs in JSON format")

	_ = viper.BindPFlag("log.level", cmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("log.json", cmd.PersistentFlags().Lookup("log-json"))

	cmd.AddCommand(newIndexCmd())
	cmd.AddCommand(newPageCmd())
	cmd.AddCommand(newInitCmd())

	return cmd
}

// Execute runs the root command and exits 1 on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig(cfgFile string) error {
	viper.SetEnvPrefix("WEBTREE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if path := config.FindConfigFile(cfgFile); path != "" {
		viper.SetConfigFile(path)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		logger.Debugf("Using config file: %s", viper.ConfigFileUsed())
	} else if cfgFile != "" {
		return fmt.Errorf("config file not found: %s", cfgFile)
	}

	setupLogging()
	return nil
}

func setupLogging() {
	level, err := logrus.ParseLevel(viper.GetString("log.level"))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", viper.GetString("log.level"))
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if viper.GetBool("log.json") {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}
}

// GetLogger returns the logger shared by all commands
func GetLogger() *logrus.Logger {
	return logger
}

// loadConfig loads and validates the configuration for a command run.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// startTelemetry initializes OpenTelemetry when enabled and returns its cleanup.
func startTelemetry(cfg *config.Config) func() {
	if !cfg.Telemetry.Enabled {
		return func() {}
	}

	logger.Debug("Initializing OpenTelemetry")
	cleanup, err := telemetry.Initialize(cfg.Telemetry, getVersion(), logger)
	if err != nil {
		logger.Warnf("Failed to initialize telemetry: %v", err)
		return func() {}
	}
	return cleanup
}
