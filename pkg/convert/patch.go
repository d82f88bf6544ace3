package convert

import (
	"strings"

	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"
)

// futureBuiltinsImport marks import lines the transformation pass chokes on
// (python.org issue 19111). They have to go before the pass runs.
const futureBuiltinsImport = "from future_builtins import "

// 🩹 patchFutureBuiltins strips every line importing the removed
// future_builtins module. The file is rewritten only when at least one line
// was dropped, so untouched files keep their content and timestamp.
func patchFutureBuiltins(fsys afero.Fs, path string) (bool, error) {
	info, err := fsys.Stat(path)
	if err != nil {
		return false, errors.Errorf("stating %s: %w", path, err)
	}
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return false, errors.Errorf("reading %s: %w", path, err)
	}

	lines := strings.SplitAfter(string(data), "\n")
	kept := make([]string, 0, len(lines))
	removed := 0
	for _, line := range lines {
		if strings.HasPrefix(line, futureBuiltinsImport) {
			removed++
			continue
		}
		kept = append(kept, line)
	}
	if removed == 0 {
		return false, nil
	}

	if err := afero.WriteFile(fsys, path, []byte(strings.Join(kept, "")), info.Mode()); err != nil {
		return false, errors.Errorf("rewriting %s: %w", path, err)
	}
	return true, nil
}
