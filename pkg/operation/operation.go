package operation

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"

	"github.com/Honglongwu/biopython/pkg/config"
	"github.com/Honglongwu/biopython/pkg/convert"
	"github.com/Honglongwu/biopython/pkg/sync"
)

// 🎯 Operator defines the main interface for do2to3 operations
type Operator interface {
	// Run synchronizes each requested subtree and converts its stale files
	Run(ctx context.Context, subtrees []string) error
	// Status reports whether any requested subtree has pending work
	Status(ctx context.Context, subtrees []string) (bool, error)
	// Clean removes the mirror tree for the configured tag
	Clean(ctx context.Context) error
}

// 📢 Reporter is the union of the reporting surfaces the operator and its
// collaborators need
type Reporter interface {
	sync.Reporter
	convert.Reporter

	// Processing announces work on one subtree
	Processing(name string)
	// QueueSize announces how many files the batch will convert
	QueueSize(n int)
	// PendingCopy reports a file the next run would copy
	PendingCopy(path string)
	// PendingRemoval reports a mirror entry the next run would prune
	PendingRemoval(path string)
	// Cleaned reports a removed mirror tree
	Cleaned(path string)
}

// 🔧 Options contains configuration for the operator
type Options struct {
	// Config is the loaded conversion setup
	Config *config.Config
	// Fs is the filesystem everything runs on; defaults to the host fs
	Fs afero.Fs
	// Transformer is the external transformation pass
	Transformer convert.Transformer
	// Reporter receives user-facing events
	Reporter Reporter
}

// 🏭 New creates a new operator with the given options
func New(opts Options) (Operator, error) {
	if opts.Config == nil {
		return nil, errors.New("config is required")
	}
	if opts.Transformer == nil {
		return nil, errors.New("transformer is required")
	}
	if opts.Reporter == nil {
		return nil, errors.New("reporter is required")
	}
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}
	return &operator{
		cfg:         opts.Config,
		fs:          opts.Fs,
		transformer: opts.Transformer,
		rep:         opts.Reporter,
	}, nil
}

// 🎮 operator implements the Operator interface
type operator struct {
	cfg         *config.Config
	fs          afero.Fs
	transformer convert.Transformer
	rep         Reporter
}

// tagDir is where the mirror of every subtree lives
func (op *operator) tagDir() string {
	return filepath.Join(op.cfg.BuildDir, op.cfg.Tag)
}

// selectSubtrees filters the requested names against the configured set,
// keeping request order. An empty request means all configured subtrees.
func (op *operator) selectSubtrees(requested []string) []string {
	if len(requested) == 0 {
		return op.cfg.Subtrees
	}
	known := make(map[string]bool, len(op.cfg.Subtrees))
	for _, name := range op.cfg.Subtrees {
		known[name] = true
	}
	var selected []string
	for _, name := range requested {
		if known[name] {
			selected = append(selected, name)
		}
	}
	return selected
}

// syncOptions narrows the configured copy-only directories to the ones
// inside the given subtree, re-rooting them on the subtree itself.
func (op *operator) syncOptions(subtree string) sync.Options {
	var copyOnly []string
	prefix := subtree + "/"
	for _, dir := range op.cfg.CopyOnly {
		slashed := filepath.ToSlash(dir)
		if strings.HasPrefix(slashed, prefix) {
			copyOnly = append(copyOnly, strings.TrimPrefix(slashed, prefix))
		}
	}
	return sync.Options{
		Ignore:     op.cfg.Ignore,
		CopyOnly:   copyOnly,
		SourceExts: op.cfg.SourceExts,
	}
}
