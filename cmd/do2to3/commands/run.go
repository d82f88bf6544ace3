package commands

import (
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/Honglongwu/biopython/cmd/do2to3/opts"
)

// NewRunCmd creates a new run command
func NewRunCmd(ro *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [subtree...]",
		Short: "Synchronize and convert the configured subtrees",
		Long: `Run mirrors each subtree into the build directory and applies the
conversion pass to the files that changed since the last run. It will:
1. Prune mirror entries whose source counterpart is gone
2. Copy stale or missing files, preserving modification times
3. Convert the freshly copied files in sorted order

Subtree arguments narrow the run to a subset of the configured subtrees;
unknown names are ignored.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ro.Operator.Run(cmd.Context(), args); err != nil {
				return errors.Errorf("running conversion: %w", err)
			}
			return nil
		},
	}

	return cmd
}
