package sync

import (
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpToDate(t *testing.T) {
	tests := []struct {
		name       string
		sourceTime time.Time
		mirrorTime *time.Time
		want       bool
	}{
		{
			name:       "missing_mirror",
			sourceTime: baseTime,
			mirrorTime: nil,
			want:       false,
		},
		{
			name:       "equal_times",
			sourceTime: baseTime,
			mirrorTime: &baseTime,
			want:       true,
		},
		{
			name:       "newer_mirror",
			sourceTime: baseTime,
			mirrorTime: timePtr(baseTime.Add(time.Second)),
			want:       true,
		},
		{
			name:       "older_mirror",
			sourceTime: baseTime,
			mirrorTime: timePtr(baseTime.Add(-time.Millisecond)),
			want:       false,
		},
		{
			name: "sub_millisecond_rounding_tolerated",
			// Copy APIs may drop sub-millisecond precision; within the
			// same millisecond the mirror still counts as current.
			sourceTime: baseTime.Add(400 * time.Microsecond),
			mirrorTime: &baseTime,
			want:       true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := afero.NewMemMapFs()
			writeFile(t, fsys, "a.py", "src", tt.sourceTime)
			if tt.mirrorTime != nil {
				writeFile(t, fsys, "b.py", "dst", *tt.mirrorTime)
			}

			got, err := UpToDate(fsys, "a.py", "b.py")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUpToDate_MissingSource(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeFile(t, fsys, "b.py", "dst", baseTime)

	_, err := UpToDate(fsys, "a.py", "b.py")
	assert.Error(t, err, "missing source is the caller's bug, not staleness")
}

func timePtr(t time.Time) *time.Time {
	return &t
}
