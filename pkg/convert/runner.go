package convert

import (
	"bytes"
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"
)

var (
	// ErrConvert means the external pass rejected a file. The bad output
	// file has already been deleted and the batch is aborted.
	ErrConvert = errors.Base("conversion failed")

	// ErrInterrupted means the batch was cancelled mid-run. The in-flight
	// file and every not-yet-started file have been deleted; the next run
	// re-copies and re-converts them fresh.
	ErrInterrupted = errors.Base("conversion interrupted")
)

// slowReportCount is how many of the slowest conversions get reported
const slowReportCount = 5

// defaultSlowThreshold gates the slow report: nothing is printed unless
// the slowest file took longer than this
const defaultSlowThreshold = 2 * time.Second

// ⏱️ Timing records how long one file took to convert
type Timing struct {
	Path string
	Took time.Duration
}

// 📢 Reporter receives user-facing conversion events from the Runner
type Reporter interface {
	// Converting is called before a file's conversion starts
	Converting(path string)
	// ConvertFailed is called with the captured diagnostics of a failed file
	ConvertFailed(path string, diagnostics []byte)
	// Interrupted is called with the file that was in flight at cancellation
	Interrupted(path string)
	// SlowConversions is called with the slowest timings, slowest last
	SlowConversions(timings []Timing)
}

// 🏃 Runner converts queued files one at a time, strictly in sorted order
type Runner struct {
	fs            afero.Fs
	transformer   Transformer
	rep           Reporter
	slowThreshold time.Duration
}

// 🏭 NewRunner creates a new batch runner. A zero slowThreshold means the
// default of two seconds.
func NewRunner(fsys afero.Fs, transformer Transformer, rep Reporter, slowThreshold time.Duration) *Runner {
	if slowThreshold <= 0 {
		slowThreshold = defaultSlowThreshold
	}
	return &Runner{
		fs:            fsys,
		transformer:   transformer,
		rep:           rep,
		slowThreshold: slowThreshold,
	}
}

// 🏃 ConvertAll processes the queued paths in sorted order. Order is not a
// correctness requirement of the transformation itself; it keeps reported
// timings and interrupt cleanup deterministic. Any failure aborts the whole
// batch: a stale-but-consistent mirror beats a half-converted one, because
// the staleness check would treat a corrupted file as current and never
// retry it.
func (r *Runner) ConvertAll(ctx context.Context, paths []string) error {
	if len(paths) == 0 {
		return nil
	}

	queue := append([]string(nil), paths...)
	sort.Strings(queue)

	logger := zerolog.Ctx(ctx)
	logger.Debug().Int("files", len(queue)).Msg("starting conversion batch")

	timings := make([]Timing, 0, len(queue))
	for i, path := range queue {
		if ctx.Err() != nil {
			return r.interrupt(ctx, queue[i:])
		}

		r.rep.Converting(path)
		start := time.Now()
		if err := r.convertOne(ctx, path); err != nil {
			if ctx.Err() != nil {
				r.rep.Interrupted(path)
				return r.interrupt(ctx, queue[i+1:])
			}
			return err
		}
		timings = append(timings, Timing{Path: path, Took: time.Since(start)})
	}

	r.reportSlowest(timings)
	return nil
}

// 📄 convertOne applies the pre-pass patch and the two transformation
// invocations to a single file. On any failure the file is deleted so a
// half-converted file never masquerades as a valid one.
func (r *Runner) convertOne(ctx context.Context, path string) error {
	diag := newCapture(path)
	defer diag.release(r.rep)

	if _, err := patchFutureBuiltins(r.fs, path); err != nil {
		r.discard(ctx, path)
		return errors.Errorf("patching %s: %w", path, err)
	}

	for _, docTests := range []bool{false, true} {
		status, diagnostics, err := r.transformer.Apply(ctx, path, docTests)
		diag.write(diagnostics)
		if err != nil {
			r.discard(ctx, path)
			return errors.Errorf("invoking transformation on %s: %w", path, err)
		}
		if status != 0 {
			diag.fail()
			r.discard(ctx, path)
			mode := "main body"
			if docTests {
				mode = "doctests"
			}
			return errors.Errorf("%w: status %d from %s pass on %s", ErrConvert, status, mode, path)
		}
	}
	return nil
}

// 🗑️ discard removes a file that can no longer be trusted
func (r *Runner) discard(ctx context.Context, path string) {
	if err := r.fs.Remove(path); err != nil {
		zerolog.Ctx(ctx).Warn().Str("path", path).Err(err).Msg("could not remove untrusted file")
	}
}

// 🧹 interrupt deletes every file that did not finish converting and
// surfaces the cancellation as a distinguished error.
func (r *Runner) interrupt(ctx context.Context, pending []string) error {
	for _, path := range pending {
		exists, err := afero.Exists(r.fs, path)
		if err != nil || !exists {
			continue
		}
		r.discard(ctx, path)
	}
	return errors.Errorf("%w: %d queued files discarded", ErrInterrupted, len(pending))
}

// 📊 reportSlowest surfaces the slowest conversions of a finished batch,
// but only when the slowest one crossed the threshold
func (r *Runner) reportSlowest(timings []Timing) {
	if len(timings) == 0 {
		return
	}
	sort.Slice(timings, func(i, j int) bool { return timings[i].Took < timings[j].Took })
	if timings[len(timings)-1].Took <= r.slowThreshold {
		return
	}
	start := len(timings) - slowReportCount
	if start < 0 {
		start = 0
	}
	r.rep.SlowConversions(timings[start:])
}

// 🔇 capture buffers the transformation tool's diagnostics for one file.
// Output is withheld during normal operation so success stays quiet;
// release hands it to the reporter only when the file failed, and runs
// exactly once regardless of which exit path is taken.
type capture struct {
	path     string
	buf      bytes.Buffer
	failed   bool
	released bool
}

func newCapture(path string) *capture {
	return &capture{path: path}
}

func (c *capture) write(p []byte) {
	c.buf.Write(p)
}

func (c *capture) fail() {
	c.failed = true
}

func (c *capture) release(rep Reporter) {
	if c.released {
		return
	}
	c.released = true
	if c.failed {
		rep.ConvertFailed(c.path, c.buf.Bytes())
	}
}
