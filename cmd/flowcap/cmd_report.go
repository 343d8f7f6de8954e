package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/flowcap/flowcap/internal/artifact"
	"github.com/flowcap/flowcap/internal/reporter"
	"github.com/flowcap/flowcap/internal/scenario"
)

var reportCmd = &cobra.Command{
	Use:   "report <run-dir>",
	Short: "Re-render the JSON/HTML/JUnit reports for an existing run",
	Long: `Reads report.json from an existing run-YYYYMMDD-HHMMSS directory
and re-renders report.json, report.html, and junit.xml over it, for
regenerating reports after upgrading flowcap without re-running the
scenario.`,
	Args: cobra.ExactArgs(1),
	RunE: runReport,
}

func runReport(cmd *cobra.Command, args []string) error {
	dir := args[0]
	mgr := artifact.Open(dir)

	data, err := os.ReadFile(mgr.JSONReportPath())
	if err != nil {
		return fmt.Errorf("report: read %s: %w", mgr.JSONReportPath(), err)
	}

	var result scenario.ScenarioResult
	if err := json.Unmarshal(data, &result); err != nil {
		return fmt.Errorf("report: parse %s: %w", mgr.JSONReportPath(), err)
	}

	if err := reporter.Render(mgr, &result); err != nil {
		return fmt.Errorf("report: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Re-rendered reports in %s\n", dir)
	return nil
}
