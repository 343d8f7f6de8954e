package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/flowcap/flowcap/internal/scenario"
)

var validateCmd = &cobra.Command{
	Use:   "validate <scenario>",
	Short: "Parse and validate a scenario document",
	Long: `Parses the document and runs schema, selector-shape, and variable
reference validation (spec §4.1/§3). Exits 1 on any validation error.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("validate: read %s: %w", path, err)
	}

	sc, err := scenario.Parse(data)
	if err != nil {
		return fmt.Errorf("validate: %s: %w", path, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: valid (%d steps)\n", path, len(scenario.Flatten(sc.Steps)))
	return nil
}
