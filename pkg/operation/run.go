package operation

import (
	"context"
	"path/filepath"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/Honglongwu/biopython/pkg/convert"
	"github.com/Honglongwu/biopython/pkg/sync"
)

// 🏃 Run synchronizes each requested subtree into build/<tag>/ and converts
// whatever the synchronization queued. A subtree that is configured but
// missing from the source tree is a fatal precondition error, surfaced by
// the synchronizer before anything is mutated.
func (op *operator) Run(ctx context.Context, subtrees []string) error {
	logger := zerolog.Ctx(ctx)

	if err := op.fs.MkdirAll(op.tagDir(), 0o755); err != nil {
		return errors.Errorf("creating output directory: %w", err)
	}

	runner := convert.NewRunner(op.fs, op.transformer, op.rep, op.cfg.SlowThreshold)

	for _, name := range op.selectSubtrees(subtrees) {
		op.rep.Processing(name)

		syncer := sync.NewSyncer(op.fs, op.rep, op.syncOptions(name))
		queue, err := syncer.Sync(ctx,
			filepath.Join(op.cfg.Source, name),
			filepath.Join(op.tagDir(), name))
		if err != nil {
			return errors.Errorf("synchronizing %s: %w", name, err)
		}

		if len(queue) == 0 {
			logger.Debug().Str("subtree", name).Msg("nothing to convert")
			continue
		}

		op.rep.QueueSize(len(queue))
		if err := runner.ConvertAll(ctx, queue); err != nil {
			return errors.Errorf("converting %s: %w", name, err)
		}
	}

	return nil
}
