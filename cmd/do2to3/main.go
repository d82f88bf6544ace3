package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/Honglongwu/biopython/cmd/do2to3/commands"
	"github.com/Honglongwu/biopython/cmd/do2to3/opts"
	"github.com/Honglongwu/biopython/pkg/convert"
)

func main() {
	// An operator-issued interrupt cancels the context; the batch runner
	// turns that into checkpointed cleanup between files.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx = log.Logger.WithContext(ctx)

	// The shared options are filled in after flag parsing
	ro := &opts.RootOpts{}

	rootCmd := &cobra.Command{
		Use:   "do2to3",
		Short: "Incrementally mirror and convert source subtrees",
		Long: `do2to3 mirrors the configured source subtrees into build/<tag>/ and
runs the external conversion pass over the files that changed since the
last run. Unchanged files are skipped, deleted files are pruned from the
mirror, and a failed or interrupted conversion never leaves a
half-converted file behind.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			setupLogging()
			loaded, err := newRootOpts(cmd.Context())
			if err != nil {
				return err
			}
			*ro = *loaded
			return nil
		},
	}

	addRootFlags(rootCmd)
	rootCmd.AddCommand(
		commands.NewRunCmd(ro),
		commands.NewStatusCmd(ro),
		commands.NewCleanCmd(ro),
	)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if errors.Is(err, convert.ErrInterrupted) {
			log.Warn().Msg("interrupted, queued files discarded")
			os.Exit(1)
		}
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}
