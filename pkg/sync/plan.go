package sync

import (
	"context"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"
)

// 📋 Plan describes what Sync would do, without doing any of it
type Plan struct {
	// Removals lists mirror entries with no same-kind source counterpart
	Removals []string
	// Copies lists source files whose mirror copy is stale or missing
	Copies []string
	// Queue lists the subset of Copies that would also be converted
	Queue []string
}

// 🔍 Empty reports whether the mirror is fully up to date
func (p *Plan) Empty() bool {
	return len(p.Removals) == 0 && len(p.Copies) == 0
}

// 🔍 Plan computes the pending work for one subtree. The mirror tree is not
// touched; a missing mirror root simply means everything would be copied.
func (s *Syncer) Plan(ctx context.Context, sourceRoot, mirrorRoot string) (*Plan, error) {
	ok, err := afero.DirExists(s.fs, sourceRoot)
	if err != nil {
		return nil, errors.Errorf("checking source root: %w", err)
	}
	if !ok {
		return nil, errors.Errorf("source root %s does not exist", sourceRoot)
	}

	plan := &Plan{}

	mirrorExists, err := afero.DirExists(s.fs, mirrorRoot)
	if err != nil {
		return nil, errors.Errorf("checking mirror root: %w", err)
	}
	if mirrorExists {
		err := afero.Walk(s.fs, mirrorRoot, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if path == mirrorRoot {
				return nil
			}
			rel, err := relPath(mirrorRoot, path)
			if err != nil {
				return err
			}
			sourceInfo, statErr := s.fs.Stat(filepath.Join(sourceRoot, rel))
			if statErr == nil && sourceInfo.IsDir() == info.IsDir() {
				return nil
			}
			if statErr != nil && !os.IsNotExist(statErr) {
				return statErr
			}
			plan.Removals = append(plan.Removals, path)
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		})
		if err != nil {
			return nil, errors.Errorf("scanning mirror tree: %w", err)
		}
	}

	err = afero.Walk(s.fs, sourceRoot, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || s.ignored(info.Name()) {
			return nil
		}
		rel, err := relPath(sourceRoot, path)
		if err != nil {
			return err
		}
		target := filepath.Join(mirrorRoot, rel)
		current, err := UpToDate(s.fs, path, target)
		if err != nil {
			return err
		}
		if current {
			return nil
		}
		plan.Copies = append(plan.Copies, target)
		if s.convertible(rel) {
			plan.Queue = append(plan.Queue, target)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Errorf("scanning source tree: %w", err)
	}

	return plan, nil
}
