// Package reporter renders a ScenarioResult into the three formats spec
// §4.8 names: a faithful JSON dump, a self-contained HTML page for human
// review, and a JUnit XML file for CI consumption. None of the three
// renderers mutate the result; Render just picks the right file name from
// the artifact.Manager and writes all three.
package reporter

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/flowcap/flowcap/internal/artifact"
	"github.com/flowcap/flowcap/internal/scenario"
)

// Render writes the JSON, HTML, and JUnit reports for result into mgr's
// run directory, returning the first write error encountered.
func Render(mgr *artifact.Manager, result *scenario.ScenarioResult) error {
	data, err := RenderJSON(result)
	if err != nil {
		return err
	}
	if err := writeFile(mgr.JSONReportPath(), data); err != nil {
		return err
	}

	if err := writeFile(mgr.HTMLReportPath(), []byte(RenderHTML(result))); err != nil {
		return err
	}

	junit, err := RenderJUnit(result)
	if err != nil {
		return err
	}
	return writeFile(mgr.JUnitReportPath(), junit)
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("reporter: mkdir for %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("reporter: write %s: %w", path, err)
	}
	return nil
}
