package opts

import (
	"github.com/Honglongwu/biopython/pkg/config"
	"github.com/Honglongwu/biopython/pkg/operation"
	"github.com/Honglongwu/biopython/pkg/status"
)

// RootOpts carries the dependencies shared by every subcommand. It is
// filled in once the persistent flags have been parsed.
type RootOpts struct {
	Config   *config.Config
	Operator operation.Operator
	Reporter *status.Reporter
}
