package main

import (
	"log/slog"

	"hugo-lint/pkg/config"
	"hugo-lint/pkg/logging"
	"hugo-lint/pkg/services"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	repo      string
	logLevel  string
	logFormat string

	logger *slog.Logger
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "hugo-lint",
		Short:         "Check, index and edit the content of a Hugo site",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.repo, "repo", "", "Hugo site root (overrides REPO_PATH)")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	flags.StringVar(&opts.logFormat, "log-format", "", "Log format: auto, text, json")

	rootCmd.AddCommand(newCheckCommand(opts))
	rootCmd.AddCommand(newIndexCommand(opts))
	rootCmd.AddCommand(newNewCommand(opts))
	rootCmd.AddCommand(newServeCommand(opts))

	return rootCmd
}

// setup applies .env and environment settings, then the flags on top.
func (o *rootOptions) setup(cmd *cobra.Command) error {
	config.Init()
	if o.repo != "" {
		config.SetRepoPath(o.repo)
	}
	if o.logLevel != "" {
		config.LogLevel = o.logLevel
	}
	if o.logFormat != "" {
		config.LogFormat = o.logFormat
	}

	logger, err := logging.New(logging.Options{
		Level:  config.LogLevel,
		Format: config.LogFormat,
		Output: cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}
	o.logger = logger
	services.SetLogger(logger)
	services.InvalidateCache()
	return nil
}
