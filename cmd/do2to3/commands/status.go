package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/Honglongwu/biopython/cmd/do2to3/opts"
)

// NewStatusCmd creates a new status command
func NewStatusCmd(ro *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status [subtree...]",
		Short: "Show what the next run would copy, convert and prune",
		Long: `Status compares each subtree against its mirror and lists the pending
work. Nothing is mutated.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			stale, err := ro.Operator.Status(cmd.Context(), args)
			if err != nil {
				return errors.Errorf("checking status: %w", err)
			}
			if !stale {
				pterm.Success.Println("Mirror is up to date")
			}
			return nil
		},
	}

	return cmd
}
