package sync

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"
)

// copyEpsilon is the largest modification-time drift tolerated after a
// metadata-preserving copy. Anything above it means the copy primitive on
// this host does not preserve times and the run cannot be trusted.
const copyEpsilon = 100 * time.Microsecond

// 📢 Reporter receives user-facing file events from the Syncer
type Reporter interface {
	// FileUpdated is called after a file was copied into the mirror
	FileUpdated(path string)
	// FileCurrent is called for a mirror file that was already up to date
	FileCurrent(path string)
	// FileRemoved is called after a mirror entry was pruned
	FileRemoved(path string)
}

// 🔧 Options configures what the Syncer mirrors and what it queues
type Options struct {
	// Ignore holds base-name globs that are never mirrored
	Ignore []string
	// CopyOnly holds root-relative directories that are mirrored but
	// whose files are excluded from the conversion queue
	CopyOnly []string
	// SourceExts holds the file extensions queued for conversion
	SourceExts []string
}

// 🔄 Syncer mirrors a source tree into an output tree
type Syncer struct {
	fs   afero.Fs
	rep  Reporter
	opts Options
}

// 🏭 NewSyncer creates a new Syncer over the given filesystem
func NewSyncer(fsys afero.Fs, rep Reporter, opts Options) *Syncer {
	return &Syncer{
		fs:   fsys,
		rep:  rep,
		opts: opts,
	}
}

// 🏃 Sync brings mirrorRoot in line with sourceRoot and returns the mirror
// paths that need the conversion pass. The prune pass runs first so a file
// that replaced a directory (or vice versa) is re-created cleanly by the
// copy pass. A missing source root is an error and nothing is mutated; a
// missing mirror root is created.
func (s *Syncer) Sync(ctx context.Context, sourceRoot, mirrorRoot string) ([]string, error) {
	logger := zerolog.Ctx(ctx)

	ok, err := afero.DirExists(s.fs, sourceRoot)
	if err != nil {
		return nil, errors.Errorf("checking source root: %w", err)
	}
	if !ok {
		return nil, errors.Errorf("source root %s does not exist", sourceRoot)
	}

	if err := s.fs.MkdirAll(mirrorRoot, 0o755); err != nil {
		return nil, errors.Errorf("creating mirror root: %w", err)
	}

	if err := s.prune(ctx, sourceRoot, mirrorRoot); err != nil {
		return nil, errors.Errorf("pruning mirror tree: %w", err)
	}

	queue, err := s.copyTree(ctx, sourceRoot, mirrorRoot)
	if err != nil {
		return nil, errors.Errorf("copying source tree: %w", err)
	}

	logger.Debug().
		Str("source", sourceRoot).
		Str("mirror", mirrorRoot).
		Int("queued", len(queue)).
		Msg("synchronized subtree")
	return queue, nil
}

// 🧹 prune removes every mirror entry with no same-kind source counterpart.
// Orphaned directories go with their whole subtree and are not descended
// into.
func (s *Syncer) prune(ctx context.Context, sourceRoot, mirrorRoot string) error {
	return afero.Walk(s.fs, mirrorRoot, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if path == mirrorRoot {
			return nil
		}

		rel, err := relPath(mirrorRoot, path)
		if err != nil {
			return err
		}

		counterpart := filepath.Join(sourceRoot, rel)
		sourceInfo, statErr := s.fs.Stat(counterpart)
		if statErr == nil && sourceInfo.IsDir() == info.IsDir() {
			return nil
		}
		if statErr != nil && !os.IsNotExist(statErr) {
			return errors.Errorf("stating %s: %w", counterpart, statErr)
		}

		s.rep.FileRemoved(path)
		if info.IsDir() {
			if err := s.fs.RemoveAll(path); err != nil {
				return errors.Errorf("removing directory %s: %w", path, err)
			}
			return filepath.SkipDir
		}
		if err := s.fs.Remove(path); err != nil {
			return errors.Errorf("removing file %s: %w", path, err)
		}
		return nil
	})
}

// 📄 copyTree walks the source tree, mirrors directories, copies stale
// files, and collects the conversion queue.
func (s *Syncer) copyTree(ctx context.Context, sourceRoot, mirrorRoot string) ([]string, error) {
	var queue []string

	err := afero.Walk(s.fs, sourceRoot, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		rel, err := relPath(sourceRoot, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}

		target := filepath.Join(mirrorRoot, rel)
		if info.IsDir() {
			if err := s.fs.MkdirAll(target, 0o755); err != nil {
				return errors.Errorf("creating directory %s: %w", target, err)
			}
			return nil
		}

		if s.ignored(info.Name()) {
			return nil
		}

		current, err := UpToDate(s.fs, path, target)
		if err != nil {
			return err
		}
		if current {
			s.rep.FileCurrent(target)
			return nil
		}

		if err := s.copyFile(path, target, info); err != nil {
			return err
		}
		s.rep.FileUpdated(target)

		if s.convertible(rel) {
			queue = append(queue, target)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return queue, nil
}

// 📥 copyFile copies bytes, mode and modification time, then verifies that
// the time actually survived the copy.
func (s *Syncer) copyFile(source, target string, info os.FileInfo) error {
	in, err := s.fs.Open(source)
	if err != nil {
		return errors.Errorf("opening %s: %w", source, err)
	}
	defer in.Close()

	out, err := s.fs.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode())
	if err != nil {
		return errors.Errorf("creating %s: %w", target, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return errors.Errorf("copying %s: %w", target, err)
	}
	if err := out.Close(); err != nil {
		return errors.Errorf("closing %s: %w", target, err)
	}

	if err := s.fs.Chmod(target, info.Mode()); err != nil {
		return errors.Errorf("setting mode of %s: %w", target, err)
	}
	if err := s.fs.Chtimes(target, time.Now(), info.ModTime()); err != nil {
		return errors.Errorf("setting times of %s: %w", target, err)
	}

	copied, err := s.fs.Stat(target)
	if err != nil {
		return errors.Errorf("stating %s after copy: %w", target, err)
	}
	if drift := absDuration(info.ModTime().Sub(copied.ModTime())); drift >= copyEpsilon {
		return errors.Errorf("modified time not copied for %s: source %s vs mirror %s (drift %s)",
			target, info.ModTime(), copied.ModTime(), drift)
	}
	return nil
}

// 🔍 ignored reports whether a base name matches any ignore glob
func (s *Syncer) ignored(name string) bool {
	for _, pattern := range s.opts.Ignore {
		matched, err := doublestar.Match(pattern, name)
		if err != nil {
			continue
		}
		if matched {
			return true
		}
	}
	return false
}

// 🔍 convertible reports whether a root-relative file path belongs in the
// conversion queue: recognized extension, outside every copy-only directory.
func (s *Syncer) convertible(rel string) bool {
	slashed := filepath.ToSlash(rel)
	for _, dir := range s.opts.CopyOnly {
		prefix := strings.TrimSuffix(filepath.ToSlash(dir), "/")
		if prefix == "" {
			continue
		}
		if slashed == prefix || strings.HasPrefix(slashed, prefix+"/") {
			return false
		}
	}

	ext := filepath.Ext(rel)
	for _, want := range s.opts.SourceExts {
		if ext == want {
			return true
		}
	}
	return false
}

// relPath computes the clean path of child under root. A leading "./" on
// either side must not leak into reported or converted paths.
func relPath(root, child string) (string, error) {
	rel, err := filepath.Rel(root, child)
	if err != nil {
		return "", errors.Errorf("computing path of %s under %s: %w", child, root, err)
	}
	return filepath.Clean(strings.TrimPrefix(rel, "./")), nil
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
