package sync

import (
	"os"

	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"
)

// 🕐 UpToDate reports whether the mirror copy of a file is at least as new
// as its source. The comparison truncates both modification times to
// millisecond granularity: filesystems and copy APIs record sub-millisecond
// precision inconsistently, and a copied file must not look stale merely
// because nanoseconds were rounded away.
//
// A missing mirror file is simply not up to date. A missing source file is
// the caller's precondition violation and is returned as an error.
func UpToDate(fsys afero.Fs, source, mirror string) (bool, error) {
	sourceInfo, err := fsys.Stat(source)
	if err != nil {
		return false, errors.Errorf("stating source %s: %w", source, err)
	}

	mirrorInfo, err := fsys.Stat(mirror)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errors.Errorf("stating mirror %s: %w", mirror, err)
	}

	return mirrorInfo.ModTime().UnixMilli() >= sourceInfo.ModTime().UnixMilli(), nil
}
