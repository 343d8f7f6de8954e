package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/flowcap/flowcap/internal/config"
)

var forceInit bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Materialize the flowcap workspace layout",
	Long: `Creates .flowcap/config.yaml with default settings plus the
recordings/ directory that record and import read from and write to.

Run this once per project before recording or importing scenarios.`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVarP(&forceInit, "force", "f", false, "Overwrite an existing config.yaml")
}

func runInit(cmd *cobra.Command, args []string) error {
	configPath := filepath.Join(workspace, ".flowcap", "config.yaml")

	if _, err := os.Stat(configPath); err == nil && !forceInit {
		fmt.Fprintln(cmd.OutOrStdout(), "flowcap is already initialized here. Use --force to overwrite config.yaml.")
		return nil
	}

	fresh := config.DefaultConfig()
	if err := fresh.Save(configPath); err != nil {
		return err
	}

	recordingsDir := filepath.Join(workspace, fresh.Workspace, "recordings")
	if err := os.MkdirAll(recordingsDir, 0755); err != nil {
		return fmt.Errorf("create recordings directory: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Initialized flowcap workspace at %s\n", workspace)
	return nil
}
