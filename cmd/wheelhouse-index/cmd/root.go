package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/wheelhouse/internal/config"
	"github.com/oshokin/wheelhouse/internal/logger"
	"github.com/oshokin/wheelhouse/internal/service/indexer"
	"github.com/oshokin/wheelhouse/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string
	// logLevel adjusts logger verbosity.
	logLevel string

	// rootCmd represents the base command for generating the static index.
	rootCmd = &cobra.Command{
		Use:   "wheelhouse-index",
		Short: "Render the wheel manifest into a static find-links HTML page",
		Long: `Reads the manifest (wheels.json) from the invocation root and writes a
static index page into the output directory, replacing any previous
output wholesale. The page groups wheels by package and links each file
to its GitHub release asset with a sha256 fragment.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(command *cobra.Command, _ []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			if level, ok := logger.ParseLogLevel(logLevel); ok {
				logger.SetLevel(level)
			}

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			count, err := indexer.Build(ctx, cfg)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(command.OutOrStdout(),
				"Generated %s with %d wheel(s).\n", cfg.OutputDir, count)

			return nil
		},
	}
)

// Execute runs the wheelhouse-index CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		rootCmd.PrintErrln("Error:", err.Error())
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "info", "logging level (debug, info, warn, error)")
}
