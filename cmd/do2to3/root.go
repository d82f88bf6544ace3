package main

import (
	"context"
	"os"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/Honglongwu/biopython/cmd/do2to3/opts"
	"github.com/Honglongwu/biopython/pkg/config"
	"github.com/Honglongwu/biopython/pkg/convert"
	"github.com/Honglongwu/biopython/pkg/operation"
	"github.com/Honglongwu/biopython/pkg/status"
)

var (
	// Flags
	configFile string
	debug      bool
)

// newRootOpts creates a new RootOpts with initialized dependencies
func newRootOpts(ctx context.Context) (*opts.RootOpts, error) {
	// Load config
	cfg, err := config.Load(ctx, configFile)
	if err != nil {
		return nil, errors.Errorf("loading config: %w", err)
	}

	// Create reporter
	reporter := status.NewReporter(ctx)

	// Create operator
	op, err := operation.New(operation.Options{
		Config:      cfg,
		Fs:          afero.NewOsFs(),
		Transformer: convert.NewFixer2to3(cfg.Tool, cfg.Fixers),
		Reporter:    reporter,
	})
	if err != nil {
		return nil, errors.Errorf("creating operator: %w", err)
	}

	return &opts.RootOpts{
		Config:   cfg,
		Operator: op,
		Reporter: reporter,
	}, nil
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", ".do2to3.yaml", "config file path")
	cmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")
}

// setupLogging configures zerolog and pterm based on flags
func setupLogging() {
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		pterm.EnableDebugMessages()
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	log := zerolog.New(os.Stderr).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &log
}
