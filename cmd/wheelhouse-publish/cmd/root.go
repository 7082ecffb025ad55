package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/wheelhouse/internal/config"
	"github.com/oshokin/wheelhouse/internal/logger"
	"github.com/oshokin/wheelhouse/internal/service/publisher"
	"github.com/oshokin/wheelhouse/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string
	// tag is the release tag to create.
	tag string
	// title of the release; defaults to the tag.
	title string
	// repo optionally overrides repository resolution.
	repo string
	// notes is the release description body.
	notes string
	// logLevel adjusts logger verbosity.
	logLevel string

	// rootCmd represents the base command for publishing wheels.
	rootCmd = &cobra.Command{
		Use:   "wheelhouse-publish [wheel files...]",
		Short: "Publish wheels to a tagged GitHub release and record them in the manifest",
		Long: `Uploads the given wheel files to a new GitHub release via the gh CLI,
appends a record per wheel to the manifest (wheels.json) and regenerates
the static find-links index.

The owning repository is resolved from --repo, then the origin git
remote, then the manifest; conflicting values abort the publish. A wheel
already recorded under the same tag is rejected rather than overwritten.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, args []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			if level, ok := logger.ParseLogLevel(logLevel); ok {
				logger.SetLevel(level)
			}

			options := &publisher.Options{
				ConfigPath:    configPath,
				ArtifactPaths: args,
				Tag:           tag,
				Title:         title,
				Notes:         notes,
				Repo:          repo,
			}

			return publisher.Run(ctx, options)
		},
	}
)

// Execute runs the wheelhouse-publish CLI and exits with non-zero status on error.
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
	rootCmd.Flags().StringVarP(&tag, "tag", "t", "", "release tag to create (required)")
	rootCmd.Flags().StringVar(&title, "title", "", "release title (defaults to tag)")
	rootCmd.Flags().StringVarP(&repo, "repo", "r", "", "GitHub repo in owner/name format")
	rootCmd.Flags().StringVar(&notes, "notes", publisher.DefaultNotes, "release notes")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "info", "logging level (debug, info, warn, error)")

	// The flag is declared right above, so the lookup cannot fail.
	_ = rootCmd.MarkFlagRequired("tag")
}
