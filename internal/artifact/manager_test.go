package artifact

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreatesRunDirectoryAndSubdirs(t *testing.T) {
	root := t.TempDir()
	now := time.Date(2026, 3, 5, 14, 30, 0, 0, time.UTC)

	mgr, err := New(root, now)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(root, "run-20260305-143000"), mgr.Dir())
	for _, dir := range []string{mgr.ScreenshotsDir(), mgr.TraceDir(), mgr.VideoDir(), mgr.LogsDir()} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}

func TestNewSuffixesOnCollision(t *testing.T) {
	root := t.TempDir()
	now := time.Date(2026, 3, 5, 14, 30, 0, 0, time.UTC)

	first, err := New(root, now)
	require.NoError(t, err)
	second, err := New(root, now)
	require.NoError(t, err)

	assert.NotEqual(t, first.Dir(), second.Dir())
	assert.Contains(t, second.Dir(), "run-20260305-143000-")
}

func TestScreenshotPathZeroPadsIndexAndSanitizesName(t *testing.T) {
	mgr := Open("/runs/run-x")
	path := mgr.ScreenshotPath(7, "before", "click save/submit", "png")
	assert.Equal(t, "/runs/run-x/screenshots/0007_before-click-save-submit.png", path)
}

func TestRemoveTraceIsNoopWhenMissing(t *testing.T) {
	root := t.TempDir()
	mgr, err := New(root, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.NoError(t, mgr.RemoveTrace())
}

func TestRemoveVideosDeletesAllFiles(t *testing.T) {
	root := t.TempDir()
	mgr, err := New(root, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(mgr.VideoDir(), "a.webm"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(mgr.VideoDir(), "b.webm"), []byte("y"), 0644))

	require.NoError(t, mgr.RemoveVideos())

	entries, err := os.ReadDir(mgr.VideoDir())
	require.NoError(t, err)
	assert.Empty(t, entries)
}
