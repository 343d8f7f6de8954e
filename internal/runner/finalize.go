package runner

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/flowcap/flowcap/internal/artifact"
	"github.com/flowcap/flowcap/internal/driver"
	"github.com/flowcap/flowcap/internal/scenario"
)

// SecretMask replaces any resolved-variable value whose originating step
// (or capture) was marked secret: true in the persisted environment
// snapshot (spec Property 8).
const SecretMask = "***REDACTED***"

// envSnapshot is the env.json document (spec §4.7).
type envSnapshot struct {
	Viewport     driver.Viewport   `json:"viewport"`
	Locale       string            `json:"locale,omitempty"`
	TimezoneID   string            `json:"timezoneId,omitempty"`
	ExtraHeaders map[string]string `json:"extraHeaders,omitempty"`
	Vars         map[string]string `json:"vars"`
}

// finalizeArtifacts persists flow.yaml and env.json unconditionally, then
// applies the success/failure retention policy to trace and video (spec
// §4.5's "finalize artifacts per success/failure policy").
func finalizeArtifacts(mgr *artifact.Manager, sc *scenario.Scenario, opts Options, vars *scenario.VarEnv, secretVars map[string]bool, status scenario.ScenarioStatus) error {
	if err := persistFlowCopy(mgr, sc); err != nil {
		return err
	}
	if err := persistEnvSnapshot(mgr, opts, vars, secretVars); err != nil {
		return err
	}

	if status != scenario.ScenarioFailed {
		if sc.Artifacts.Video.Mode == scenario.VideoOnFailure {
			if err := mgr.RemoveVideos(); err != nil {
				return err
			}
		}
		if sc.Artifacts.Trace.Mode == scenario.TraceOnFailure {
			if err := mgr.RemoveTrace(); err != nil {
				return err
			}
		}
	}
	return nil
}

func persistFlowCopy(mgr *artifact.Manager, sc *scenario.Scenario) error {
	data, err := sc.Dump()
	if err != nil {
		return fmt.Errorf("runner: dump scenario: %w", err)
	}
	return writeFile(mgr.FlowCopyPath(), data)
}

// persistEnvSnapshot writes env.json with every non-secret variable
// resolved to its final value (spec §4.7: "resolved variables"), not the
// as-authored template a var may have been seeded with (e.g. "${env.X}").
func persistEnvSnapshot(mgr *artifact.Manager, opts Options, vars *scenario.VarEnv, secretVars map[string]bool) error {
	snap := envSnapshot{
		Viewport: opts.Viewport, Locale: opts.Locale, TimezoneID: opts.TimezoneID,
		ExtraHeaders: opts.ExtraHeaders, Vars: make(map[string]string),
	}
	for name, val := range vars.Snapshot() {
		if secretVars[name] {
			snap.Vars[name] = SecretMask
			continue
		}
		resolved, err := vars.Substitute(val, name)
		if err != nil {
			return fmt.Errorf("runner: resolve var %q for env snapshot: %w", name, err)
		}
		snap.Vars[name] = resolved
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("runner: marshal env snapshot: %w", err)
	}
	return writeFile(mgr.EnvSnapshotPath(), data)
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("runner: mkdir for %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("runner: write %s: %w", path, err)
	}
	return nil
}
