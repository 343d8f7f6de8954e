package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenWritesMainAndConsoleFiles(t *testing.T) {
	dir := t.TempDir()
	mainPath := filepath.Join(dir, "runner.log")
	consolePath := filepath.Join(dir, "console.log")

	l, err := Open(mainPath, consolePath, Options{DebugMode: true})
	require.NoError(t, err)
	defer l.Close()

	l.Info(CategoryRunner, "step %d dispatched", 1)
	l.Info(CategoryConsole, "page loaded")
	l.Close()

	main, err := os.ReadFile(mainPath)
	require.NoError(t, err)
	assert.Contains(t, string(main), "step 1 dispatched")
	assert.NotContains(t, string(main), "page loaded")

	console, err := os.ReadFile(consolePath)
	require.NoError(t, err)
	assert.Contains(t, string(console), "page loaded")
}

func TestDebugGatedByDebugMode(t *testing.T) {
	dir := t.TempDir()
	l, err := Open(filepath.Join(dir, "runner.log"), "", Options{DebugMode: false})
	require.NoError(t, err)
	defer l.Close()

	l.Debug(CategoryResolver, "candidate probe failed")
	l.Close()

	data, err := os.ReadFile(filepath.Join(dir, "runner.log"))
	require.NoError(t, err)
	assert.Empty(t, string(data))
}

func TestCategoryDisabled(t *testing.T) {
	dir := t.TempDir()
	l, err := Open(filepath.Join(dir, "runner.log"), "", Options{
		DebugMode:  true,
		Categories: map[Category]bool{CategoryResolver: false},
	})
	require.NoError(t, err)
	defer l.Close()

	l.Info(CategoryResolver, "should not appear")
	l.Info(CategoryRunner, "should appear")
	l.Close()

	data, err := os.ReadFile(filepath.Join(dir, "runner.log"))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "should not appear")
	assert.Contains(t, string(data), "should appear")
}

func TestJSONFormat(t *testing.T) {
	dir := t.TempDir()
	l, err := Open(filepath.Join(dir, "runner.log"), "", Options{DebugMode: true, JSONFormat: true})
	require.NoError(t, err)
	defer l.Close()

	l.Warn(CategoryImporter, "unrecognized call shape")
	l.Close()

	data, err := os.ReadFile(filepath.Join(dir, "runner.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"cat":"importer"`)
	assert.Contains(t, string(data), `"lvl":"WARN"`)
}
