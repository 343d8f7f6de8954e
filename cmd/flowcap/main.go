// Package main implements the flowcap CLI.
//
// This file is the entry point and command registration hub; each
// subcommand's implementation lives in its own cmd_*.go file.
//
// # File Index
//
//   - main.go           - entry point, rootCmd, global flags, init()
//   - cmd_init.go        - init command, materializes the workspace layout
//   - cmd_record.go      - record command, invokes the external recorder
//   - cmd_import.go      - import command, runs the Importer
//   - cmd_run.go         - run command, drives the Runner (and RunAll)
//   - cmd_validate.go    - validate command
//   - cmd_lint.go        - lint command
//   - cmd_report.go      - report command, re-renders Reporter output
//   - cmd_list_steps.go  - list-steps command, enumerates the registry
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/flowcap/flowcap/internal/config"
	"github.com/flowcap/flowcap/internal/logging"

	// Registers flowcap's built-in step handlers against
	// stepregistry.Global() via their package init().
	_ "github.com/flowcap/flowcap/internal/steps"
)

var (
	verbose   bool
	workspace string
	timeout   time.Duration

	cfg *config.Config
	log *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "flowcap",
	Short: "flowcap - record-and-replay test authoring for web UIs",
	Long: `flowcap imports recorded browser scripts into readable, healable
scenario documents, runs them against a real browser, and reports the
result as JSON, HTML, and JUnit XML.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		ws := workspace
		if ws == "" {
			var err error
			ws, err = os.Getwd()
			if err != nil {
				return fmt.Errorf("resolve workspace: %w", err)
			}
		} else if abs, err := filepath.Abs(ws); err == nil {
			ws = abs
		}
		workspace = ws

		loaded, err := config.Load(filepath.Join(workspace, ".flowcap", "config.yaml"))
		if err != nil {
			return err
		}
		cfg = loaded

		categories := cfg.Logging.Categories
		if verbose {
			categories = nil // verbose: every category enabled regardless of config
		}
		log = logging.NewStderr(logging.Options{
			DebugMode:  verbose || cfg.Logging.DebugMode,
			JSONFormat: cfg.Logging.JSONFormat,
			Categories: toCategories(categories),
		})
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&workspace, "workspace", "w", "", "Workspace directory (default: current)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "Operation timeout override (0 uses config defaults)")

	rootCmd.AddCommand(
		initCmd,
		recordCmd,
		importCmd,
		runCmd,
		validateCmd,
		lintCmd,
		reportCmd,
		listStepsCmd,
	)
}

func toCategories(m map[string]bool) map[logging.Category]bool {
	if m == nil {
		return nil
	}
	out := make(map[logging.Category]bool, len(m))
	for k, v := range m {
		out[logging.Category(k)] = v
	}
	return out
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "flowcap:", err)
		os.Exit(1)
	}
}
