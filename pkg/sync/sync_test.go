package sync

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingReporter captures file events for assertions
type recordingReporter struct {
	updated []string
	current []string
	removed []string
}

func (r *recordingReporter) FileUpdated(path string) { r.updated = append(r.updated, path) }
func (r *recordingReporter) FileCurrent(path string) { r.current = append(r.current, path) }
func (r *recordingReporter) FileRemoved(path string) { r.removed = append(r.removed, path) }

var baseTime = time.UnixMilli(1700000000000)

func writeFile(t *testing.T, fsys afero.Fs, path, content string, mtime time.Time) {
	t.Helper()
	require.NoError(t, fsys.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, afero.WriteFile(fsys, path, []byte(content), 0o644))
	require.NoError(t, fsys.Chtimes(path, mtime, mtime))
}

func newTestSyncer(fsys afero.Fs, rep Reporter) *Syncer {
	return NewSyncer(fsys, rep, Options{
		Ignore:     []string{".*", "*~", "*.bak", "*.swp", "*.pyc", "*$py.class"},
		CopyOnly:   []string{"_py3k"},
		SourceExts: []string{".py"},
	})
}

func TestSync_CopiesAndQueues(t *testing.T) {
	ctx := context.Background()
	fsys := afero.NewMemMapFs()
	rep := &recordingReporter{}

	writeFile(t, fsys, "src/pkg/a.py", "print 'hi'", baseTime)
	writeFile(t, fsys, "src/pkg/data.bin", "\x00\x01", baseTime)

	queue, err := newTestSyncer(fsys, rep).Sync(ctx, "src", "mirror")
	require.NoError(t, err)

	// Text file is queued, the data file is copied but not queued
	assert.Equal(t, []string{filepath.Join("mirror", "pkg", "a.py")}, queue)

	content, err := afero.ReadFile(fsys, "mirror/pkg/a.py")
	require.NoError(t, err)
	assert.Equal(t, "print 'hi'", string(content))

	exists, err := afero.Exists(fsys, "mirror/pkg/data.bin")
	require.NoError(t, err)
	assert.True(t, exists)

	// Modification time survives the copy
	info, err := fsys.Stat("mirror/pkg/a.py")
	require.NoError(t, err)
	assert.Equal(t, baseTime.UnixMilli(), info.ModTime().UnixMilli())
}

func TestSync_Idempotent(t *testing.T) {
	ctx := context.Background()
	fsys := afero.NewMemMapFs()

	writeFile(t, fsys, "src/pkg/a.py", "print 'hi'", baseTime)
	writeFile(t, fsys, "src/pkg/data.bin", "\x00\x01", baseTime)

	first := &recordingReporter{}
	queue, err := newTestSyncer(fsys, first).Sync(ctx, "src", "mirror")
	require.NoError(t, err)
	assert.Len(t, queue, 1)
	assert.Len(t, first.updated, 2)

	second := &recordingReporter{}
	queue, err = newTestSyncer(fsys, second).Sync(ctx, "src", "mirror")
	require.NoError(t, err)
	assert.Empty(t, queue, "second run must convert nothing")
	assert.Empty(t, second.updated, "second run must copy nothing")
	assert.Len(t, second.current, 2)
}

func TestSync_DeletionPropagates(t *testing.T) {
	ctx := context.Background()
	fsys := afero.NewMemMapFs()
	rep := &recordingReporter{}

	writeFile(t, fsys, "src/pkg/a.py", "a", baseTime)
	writeFile(t, fsys, "src/pkg/old.py", "old", baseTime)
	writeFile(t, fsys, "src/gone/deep/x.py", "x", baseTime)

	syncer := newTestSyncer(fsys, rep)
	_, err := syncer.Sync(ctx, "src", "mirror")
	require.NoError(t, err)

	require.NoError(t, fsys.Remove("src/pkg/old.py"))
	require.NoError(t, fsys.RemoveAll("src/gone"))

	_, err = syncer.Sync(ctx, "src", "mirror")
	require.NoError(t, err)

	for _, path := range []string{"mirror/pkg/old.py", "mirror/gone", "mirror/gone/deep/x.py"} {
		exists, err := afero.Exists(fsys, path)
		require.NoError(t, err)
		assert.False(t, exists, "%s should have been pruned", path)
	}

	exists, err := afero.Exists(fsys, "mirror/pkg/a.py")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestSync_IgnoredNamesNeverMirrored(t *testing.T) {
	ctx := context.Background()
	fsys := afero.NewMemMapFs()
	rep := &recordingReporter{}

	writeFile(t, fsys, "src/a.py", "a", baseTime)
	for _, name := range []string{".hidden", "notes.bak", "cache.pyc", "edit.swp", "save~", "Seq$py.class"} {
		writeFile(t, fsys, filepath.Join("src", name), "junk", baseTime)
	}

	_, err := newTestSyncer(fsys, rep).Sync(ctx, "src", "mirror")
	require.NoError(t, err)

	for _, name := range []string{".hidden", "notes.bak", "cache.pyc", "edit.swp", "save~", "Seq$py.class"} {
		exists, err := afero.Exists(fsys, filepath.Join("mirror", name))
		require.NoError(t, err)
		assert.False(t, exists, "%s should never be mirrored", name)
	}

	exists, err := afero.Exists(fsys, "mirror/a.py")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestSync_CopyOnlyDirIsNeverQueued(t *testing.T) {
	ctx := context.Background()
	fsys := afero.NewMemMapFs()
	rep := &recordingReporter{}

	writeFile(t, fsys, "src/_py3k/compat.py", "compat", baseTime)
	writeFile(t, fsys, "src/core.py", "core", baseTime)

	queue, err := newTestSyncer(fsys, rep).Sync(ctx, "src", "mirror")
	require.NoError(t, err)

	assert.Equal(t, []string{filepath.Join("mirror", "core.py")}, queue)

	exists, err := afero.Exists(fsys, "mirror/_py3k/compat.py")
	require.NoError(t, err)
	assert.True(t, exists, "copy-only files are still mirrored")
}

func TestSync_StaleMirrorIsRecopied(t *testing.T) {
	ctx := context.Background()
	fsys := afero.NewMemMapFs()
	rep := &recordingReporter{}

	writeFile(t, fsys, "src/a.py", "new content", baseTime)
	writeFile(t, fsys, "mirror/a.py", "stale marker", baseTime.Add(-time.Second))

	queue, err := newTestSyncer(fsys, rep).Sync(ctx, "src", "mirror")
	require.NoError(t, err)
	assert.Len(t, queue, 1)

	content, err := afero.ReadFile(fsys, "mirror/a.py")
	require.NoError(t, err)
	assert.Equal(t, "new content", string(content))

	info, err := fsys.Stat("mirror/a.py")
	require.NoError(t, err)
	assert.Equal(t, baseTime.UnixMilli(), info.ModTime().UnixMilli())
}

func TestSync_CurrentMirrorIsLeftAlone(t *testing.T) {
	ctx := context.Background()
	fsys := afero.NewMemMapFs()
	rep := &recordingReporter{}

	writeFile(t, fsys, "src/a.py", "source content", baseTime)
	// A marker that would be clobbered if the file were copied again
	writeFile(t, fsys, "mirror/a.py", "converted marker", baseTime.Add(time.Second))

	queue, err := newTestSyncer(fsys, rep).Sync(ctx, "src", "mirror")
	require.NoError(t, err)
	assert.Empty(t, queue)
	assert.Empty(t, rep.updated)

	content, err := afero.ReadFile(fsys, "mirror/a.py")
	require.NoError(t, err)
	assert.Equal(t, "converted marker", string(content))
}

func TestSync_MissingSourceRoot(t *testing.T) {
	ctx := context.Background()
	fsys := afero.NewMemMapFs()
	rep := &recordingReporter{}

	_, err := newTestSyncer(fsys, rep).Sync(ctx, "nope", "mirror")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")

	// Nothing was mutated
	exists, err := afero.DirExists(fsys, "mirror")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestSync_KindFlip(t *testing.T) {
	ctx := context.Background()
	fsys := afero.NewMemMapFs()
	rep := &recordingReporter{}

	writeFile(t, fsys, "src/thing/inner.py", "inner", baseTime)
	syncer := newTestSyncer(fsys, rep)
	_, err := syncer.Sync(ctx, "src", "mirror")
	require.NoError(t, err)

	// Directory becomes a file
	require.NoError(t, fsys.RemoveAll("src/thing"))
	writeFile(t, fsys, "src/thing", "now a file", baseTime.Add(time.Second))

	_, err = syncer.Sync(ctx, "src", "mirror")
	require.NoError(t, err)

	info, err := fsys.Stat("mirror/thing")
	require.NoError(t, err)
	assert.False(t, info.IsDir())

	content, err := afero.ReadFile(fsys, "mirror/thing")
	require.NoError(t, err)
	assert.Equal(t, "now a file", string(content))
}

func TestSyncer_Plan(t *testing.T) {
	ctx := context.Background()
	fsys := afero.NewMemMapFs()
	rep := &recordingReporter{}

	writeFile(t, fsys, "src/a.py", "a", baseTime)
	writeFile(t, fsys, "src/data.bin", "d", baseTime)
	writeFile(t, fsys, "mirror/orphan.py", "gone", baseTime)

	syncer := newTestSyncer(fsys, rep)
	plan, err := syncer.Plan(ctx, "src", "mirror")
	require.NoError(t, err)

	assert.Equal(t, []string{filepath.Join("mirror", "orphan.py")}, plan.Removals)
	assert.ElementsMatch(t, []string{
		filepath.Join("mirror", "a.py"),
		filepath.Join("mirror", "data.bin"),
	}, plan.Copies)
	assert.Equal(t, []string{filepath.Join("mirror", "a.py")}, plan.Queue)
	assert.False(t, plan.Empty())

	// Planning must not touch the mirror
	exists, err := afero.Exists(fsys, "mirror/orphan.py")
	require.NoError(t, err)
	assert.True(t, exists)

	// After a real sync the plan is empty
	_, err = syncer.Sync(ctx, "src", "mirror")
	require.NoError(t, err)
	plan, err = syncer.Plan(ctx, "src", "mirror")
	require.NoError(t, err)
	assert.True(t, plan.Empty())
}
