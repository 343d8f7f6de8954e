// Package artifact owns the per-run directory layout and file naming: the
// Artifact Manager of spec §4.7, grounded on SessionManager's
// workDir-per-session convention in internal/browser/session_manager.go,
// generalized from "one directory per browser session" to "one directory
// per scenario run".
package artifact

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

const (
	screenshotsDirName = "screenshots"
	traceDirName       = "trace"
	videoDirName       = "video"
	logsDirName        = "logs"
)

// Manager owns one run-YYYYMMDD-HHMMSS directory tree under root.
type Manager struct {
	dir string
}

// New creates a fresh run directory under root, named run-YYYYMMDD-HHMMSS;
// on a name collision (two runs started within the same second) a short
// uuid suffix disambiguates it.
func New(root string, now time.Time) (*Manager, error) {
	name := "run-" + now.Format("20060102-150405")
	dir := filepath.Join(root, name)
	if _, err := os.Stat(dir); err == nil {
		dir = dir + "-" + uuid.NewString()[:8]
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("artifact: create run directory %s: %w", dir, err)
	}

	m := &Manager{dir: dir}
	for _, sub := range []string{screenshotsDirName, traceDirName, videoDirName, logsDirName} {
		if err := os.MkdirAll(m.subdir(sub), 0755); err != nil {
			return nil, fmt.Errorf("artifact: create %s: %w", sub, err)
		}
	}
	return m, nil
}

// Open wraps an already-existing run directory, for the `report` CLI
// subcommand re-rendering reports over prior artifacts.
func Open(dir string) *Manager { return &Manager{dir: dir} }

func (m *Manager) subdir(name string) string { return filepath.Join(m.dir, name) }

// Dir returns the run directory's absolute path.
func (m *Manager) Dir() string { return m.dir }

func (m *Manager) ScreenshotsDir() string { return m.subdir(screenshotsDirName) }
func (m *Manager) TraceDir() string       { return m.subdir(traceDirName) }
func (m *Manager) VideoDir() string       { return m.subdir(videoDirName) }
func (m *Manager) LogsDir() string        { return m.subdir(logsDirName) }

func (m *Manager) RunnerLogPath() string  { return filepath.Join(m.LogsDir(), "runner.log") }
func (m *Manager) ConsoleLogPath() string { return filepath.Join(m.LogsDir(), "console.log") }
func (m *Manager) TracePath() string      { return filepath.Join(m.TraceDir(), "trace.zip") }
func (m *Manager) FlowCopyPath() string   { return filepath.Join(m.dir, "flow.yaml") }
func (m *Manager) EnvSnapshotPath() string { return filepath.Join(m.dir, "env.json") }
func (m *Manager) JSONReportPath() string { return filepath.Join(m.dir, "report.json") }
func (m *Manager) HTMLReportPath() string { return filepath.Join(m.dir, "report.html") }
func (m *Manager) JUnitReportPath() string { return filepath.Join(m.dir, "junit.xml") }

// ScreenshotPath names a capture per spec §4.7's convention:
// NNNN_<phase>-<name>.<ext>, index zero-padded to four digits (Property 18).
// index is the capture's 1-based display number — callers pass a step's
// one-based position (StepResult.Index+1), not its zero-based Index, so a
// run of n steps yields files numbered 0001..n (Property 10).
func (m *Manager) ScreenshotPath(index int, phase, name, ext string) string {
	return filepath.Join(m.ScreenshotsDir(), fmt.Sprintf("%04d_%s-%s.%s", index, phase, sanitizeName(name), ext))
}

// sanitizeName keeps a step name filesystem-safe without rewriting its
// meaning; step names are already constrained to kebab-case by the schema,
// so this only guards against handler-supplied labels (e.g. the debug
// `screenshot` step's free-text label).
func sanitizeName(name string) string {
	if name == "" {
		return "step"
	}
	out := make([]rune, 0, len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			out = append(out, r)
		default:
			out = append(out, '-')
		}
	}
	return string(out)
}

// RemoveTrace deletes the trace file, used when trace.mode = on_failure
// and the run succeeded.
func (m *Manager) RemoveTrace() error {
	err := os.Remove(m.TracePath())
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("artifact: remove trace: %w", err)
	}
	return nil
}

// RemoveVideos deletes every recorded video, used when video.mode =
// on_failure and the run succeeded.
func (m *Manager) RemoveVideos() error {
	entries, err := os.ReadDir(m.VideoDir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("artifact: list videos: %w", err)
	}
	for _, e := range entries {
		if err := os.Remove(filepath.Join(m.VideoDir(), e.Name())); err != nil {
			return fmt.Errorf("artifact: remove video %s: %w", e.Name(), err)
		}
	}
	return nil
}
