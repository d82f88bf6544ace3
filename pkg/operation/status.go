package operation

import (
	"context"
	"path/filepath"

	"gitlab.com/tozd/go/errors"

	"github.com/Honglongwu/biopython/pkg/sync"
)

// 🔍 Status reports the work a run would do, without doing any of it
func (op *operator) Status(ctx context.Context, subtrees []string) (bool, error) {
	stale := false

	for _, name := range op.selectSubtrees(subtrees) {
		syncer := sync.NewSyncer(op.fs, op.rep, op.syncOptions(name))
		plan, err := syncer.Plan(ctx,
			filepath.Join(op.cfg.Source, name),
			filepath.Join(op.tagDir(), name))
		if err != nil {
			return false, errors.Errorf("planning %s: %w", name, err)
		}

		for _, path := range plan.Removals {
			op.rep.PendingRemoval(path)
		}
		for _, path := range plan.Copies {
			op.rep.PendingCopy(path)
		}
		if !plan.Empty() {
			stale = true
		}
	}

	return stale, nil
}
