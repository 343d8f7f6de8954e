package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/flowcap/flowcap/internal/stepregistry"
)

var listStepsCmd = &cobra.Command{
	Use:   "list-steps",
	Short: "Enumerate every registered step type",
	Long: `Lists every step name the registry knows about (spec §4.4,
Property 11 "registry totality"): the built-ins registered at startup
plus any plugin steps a future build registers before this command runs.`,
	RunE: runListSteps,
}

func runListSteps(cmd *cobra.Command, args []string) error {
	for _, name := range stepregistry.Global().List() {
		fmt.Fprintln(cmd.OutOrStdout(), name)
	}
	return nil
}
