package operation

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"
)

// 🧹 Clean removes the mirror tree for the configured tag. The next run
// rebuilds it from scratch.
func (op *operator) Clean(ctx context.Context) error {
	dir := op.tagDir()

	exists, err := afero.DirExists(op.fs, dir)
	if err != nil {
		return errors.Errorf("checking %s: %w", dir, err)
	}
	if !exists {
		zerolog.Ctx(ctx).Debug().Str("dir", dir).Msg("nothing to clean")
		return nil
	}

	if err := op.fs.RemoveAll(dir); err != nil {
		return errors.Errorf("removing %s: %w", dir, err)
	}
	op.rep.Cleaned(dir)
	return nil
}
