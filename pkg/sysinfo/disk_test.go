package sysinfo

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiskUsage(t *testing.T) {
	dir := t.TempDir()

	stats, err := DiskUsage(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, stats.Path)
	assert.Greater(t, stats.Total, uint64(0))
	assert.LessOrEqual(t, stats.Percent, 100.0)
}

func TestDiskUsage_Missing(t *testing.T) {
	_, err := DiskUsage(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestCheckDiskSpace(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	logger.SetOutput(io.Discard)

	t.Run("threshold disabled", func(t *testing.T) {
		hook.Reset()
		assert.False(t, CheckDiskSpace(logger, t.TempDir(), 0))
		for _, e := range hook.AllEntries() {
			assert.NotEqual(t, logrus.WarnLevel, e.Level)
		}
	})

	t.Run("threshold reached", func(t *testing.T) {
		hook.Reset()
		stats, err := DiskUsage(t.TempDir())
		require.NoError(t, err)
		if stats.Percent <= 0 {
			t.Skip("filesystem reports no usage")
		}

		assert.True(t, CheckDiskSpace(logger, t.TempDir(), stats.Percent/2))
		require.NotNil(t, hook.LastEntry())
		assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	})

	t.Run("missing path", func(t *testing.T) {
		hook.Reset()
		assert.False(t, CheckDiskSpace(logger, filepath.Join(t.TempDir(), "missing"), 50))
		require.NotNil(t, hook.LastEntry())
		assert.Contains(t, hook.LastEntry().Message, "Failed to get disk usage")
	})
}
