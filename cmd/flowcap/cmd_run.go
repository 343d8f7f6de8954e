package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/flowcap/flowcap/internal/driver"
	"github.com/flowcap/flowcap/internal/runner"
	"github.com/flowcap/flowcap/internal/scenario"
)

var (
	runHeaded  bool
	runWorkers int
)

var runCmd = &cobra.Command{
	Use:   "run <scenario>...",
	Short: "Run one or more scenarios against a real browser",
	Long: `Parses, validates, and executes each scenario in turn (or up to
--workers concurrently), writing a run-YYYYMMDD-HHMMSS directory with
screenshots, trace, video, logs, and the JSON/HTML/JUnit reports under
the workspace's run root.

Exits 0 only if every scenario's status is passed (spec Property 12).`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().BoolVar(&runHeaded, "headed", false, "Run with a visible browser window")
	runCmd.Flags().Bool("headless", true, "Run with no visible browser window (default)")
	runCmd.Flags().IntVar(&runWorkers, "workers", 0, "Max scenarios run concurrently (0 uses config default)")
	runCmd.MarkFlagsMutuallyExclusive("headed", "headless")
}

func runRun(cmd *cobra.Command, args []string) error {
	workers := runWorkers
	if workers <= 0 {
		workers = cfg.DefaultWorkers
	}
	if workers < 1 {
		workers = 1
	}

	opts := runner.Options{
		ArtifactRoot:    filepath.Join(workspace, cfg.Workspace),
		Headless:        !runHeaded,
		StepTimeout:     cfg.StepTimeout(),
		ScenarioTimeout: cfg.ScenarioTimeout(),
		Viewport:        driver.Viewport{Width: 1280, Height: 800},
		Logging: runner.LoggingOptions{
			DebugMode:  verbose || cfg.Logging.DebugMode,
			JSONFormat: cfg.Logging.JSONFormat,
			Categories: cfg.Logging.Categories,
		},
	}
	if timeout > 0 {
		opts.ScenarioTimeout = timeout
	}

	jobs := make([]runner.Job, 0, len(args))
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("run: read %s: %w", path, err)
		}
		sc, err := scenario.Parse(data)
		if err != nil {
			return fmt.Errorf("run: %s: %w", path, err)
		}
		jobs = append(jobs, runner.Job{Scenario: sc, Options: opts})
	}

	results, errs := runner.RunAll(cmd.Context(), jobs, workers)

	failed := false
	for i, path := range args {
		if err := errs[i]; err != nil {
			failed = true
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", path, err)
			continue
		}
		r := results[i]
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s (%s) -> %s\n", path, r.Status, r.Duration, r.RunDir)
		if r.Failed() {
			failed = true
		}
	}

	if failed {
		return fmt.Errorf("one or more scenarios failed")
	}
	return nil
}
