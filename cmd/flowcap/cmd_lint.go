package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/flowcap/flowcap/internal/lint"
	"github.com/flowcap/flowcap/internal/scenario"
)

var lintCmd = &cobra.Command{
	Use:   "lint <scenario>",
	Short: "Report lint findings for a scenario document",
	Long: `Runs the Linter's advisory rules (spec §4.2: text-only selectors,
missing 'any' fallbacks, likely-secret fills not marked secret:true) and
prints every finding. The Linter never fails validate or run — lint is
purely advisory, and this command exits 0 whatever the findings; it exits
1 only when the document cannot be read or parsed.`,
	Args: cobra.ExactArgs(1),
	RunE: runLint,
}

func runLint(cmd *cobra.Command, args []string) error {
	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("lint: read %s: %w", path, err)
	}

	sc, err := scenario.Parse(data)
	if err != nil {
		return fmt.Errorf("lint: %s: %w", path, err)
	}

	diags := lint.Lint(sc)
	if len(diags) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: no findings\n", path)
		return nil
	}

	for _, d := range diags {
		fmt.Fprintf(cmd.OutOrStdout(), "%s:%d [%s] %s (%s): %s\n", path, d.Line, d.Severity, d.StepName, d.Rule, d.Message)
	}
	return nil
}
