// Package cmd implements the CLI commands for socorro-cli using Cobra.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/crashtools/socorro-cli/core"
	"github.com/crashtools/socorro-cli/core/config"
)

// Shared state initialized in the root command's PersistentPreRunE.
var (
	flagFormat  string
	flagVerbose bool

	outputFormat core.Format
	cfg          *config.Config
	logger       *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "socorro-cli",
	Short: "Query Mozilla's Socorro crash reporting system",
	Long: `Query Mozilla's Socorro crash reporting system (https://crash-stats.mozilla.org).

Socorro collects and analyzes crash reports from Firefox, Fenix, Thunderbird,
and other Mozilla products. This tool fetches crash details, searches crash
data, and shows signature correlations, with output optimized for automation.

Examples:
  socorro-cli crash 247653e8-7a18-4836-97d1-42a720260120
  socorro-cli search --signature "OOM | small"
  socorro-cli search --product Firefox --days 30 --facet version
  socorro-cli correlations --signature "OOM | small" --channel nightly

API token:
  For higher rate limits, run 'socorro-cli auth login' to store a token.
  Tokens MUST have NO permissions attached, so the server can never return
  protected data.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		outputFormat, err = core.ParseFormat(flagFormat)
		if err != nil {
			return err
		}

		cfg, err = config.LoadDefault()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		zapCfg := zap.NewProductionConfig()
		zapCfg.Level = zap.NewAtomicLevelAt(zapcore.ErrorLevel)
		if flagVerbose {
			zapCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		logger, err = zapCfg.Build()
		if err != nil {
			return fmt.Errorf("initializing logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagFormat, "format", "compact",
		"Output format: compact (token-efficient), json (lossless), markdown, or pdf")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false,
		"Log requests and responses at debug level")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
