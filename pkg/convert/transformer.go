package convert

import (
	"bytes"
	"context"
	"os/exec"

	"gitlab.com/tozd/go/errors"
)

// 🔌 Transformer is the narrow contract with the external transformation
// pass: submit a file, get an exit status and the captured diagnostics
// back. docTests targets embedded doctest blocks instead of the main body.
// A nonzero status means the pass rejected the file; err is reserved for
// failures to run the pass at all (including cancellation).
type Transformer interface {
	Apply(ctx context.Context, path string, docTests bool) (status int, diagnostics []byte, err error)
}

// 🔧 Fixer2to3 invokes the 2to3 command. The fixer allow-list is passed on
// every call: several of the available fixers are deliberately left out
// because the codebase's conventions make them unnecessary or unsafe.
type Fixer2to3 struct {
	tool   string
	fixers []string
}

// 🏭 NewFixer2to3 creates a transformer wrapping the given command
func NewFixer2to3(tool string, fixers []string) *Fixer2to3 {
	return &Fixer2to3{
		tool:   tool,
		fixers: fixers,
	}
}

// args builds the command line for one invocation. The -d flag switches
// the tool from the main body to the doctest blocks of the same file.
func (f *Fixer2to3) args(path string, docTests bool) []string {
	args := []string{"--no-diffs"}
	for _, fixer := range f.fixers {
		args = append(args, "--fix="+fixer)
	}
	args = append(args, "-n", "-w")
	if docTests {
		args = append(args, "-d")
	}
	return append(args, path)
}

// 🏃 Apply runs the tool on one file, capturing its output
func (f *Fixer2to3) Apply(ctx context.Context, path string, docTests bool) (int, []byte, error) {
	cmd := exec.CommandContext(ctx, f.tool, f.args(path, docTests)...)

	var diagnostics bytes.Buffer
	cmd.Stdout = &diagnostics
	cmd.Stderr = &diagnostics

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return 0, diagnostics.Bytes(), errors.Errorf("transformation cancelled: %w", ctx.Err())
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), diagnostics.Bytes(), nil
		}
		return 0, diagnostics.Bytes(), errors.Errorf("running %s: %w", f.tool, err)
	}
	return 0, diagnostics.Bytes(), nil
}
