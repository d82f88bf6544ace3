package commands

import (
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/Honglongwu/biopython/cmd/do2to3/opts"
)

// NewCleanCmd creates a new clean command
func NewCleanCmd(ro *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove the mirror tree for the configured tag",
		Long: `Clean deletes build/<tag> entirely. The next run rebuilds the mirror
and re-converts everything from scratch.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ro.Operator.Clean(cmd.Context()); err != nil {
				return errors.Errorf("cleaning mirror: %w", err)
			}
			return nil
		},
	}

	return cmd
}
