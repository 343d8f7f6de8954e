package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/flowcap/flowcap/internal/importer"
)

var (
	importDest        string
	importWithExpects bool
)

var importCmd = &cobra.Command{
	Use:   "import <source> -o <dest>",
	Short: "Convert a recorded script into a scenario document",
	Long: `Runs the Importer (spec §4.6) over a recorded Python script,
auto-naming and auto-sectioning its steps, detecting likely secret
fields, and writing the result as a scenario YAML document to --out.

Unrecognized statements never abort the conversion — they are carried
through as 'log' steps plus a warning, printed to stderr.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVarP(&importDest, "out", "o", "", "Destination scenario file (required)")
	importCmd.Flags().BoolVar(&importWithExpects, "with-expects", false, "Insert expectVisible after deterministic interactions")
	importCmd.MarkFlagRequired("out")
}

func runImport(cmd *cobra.Command, args []string) error {
	source := args[0]

	data, err := os.ReadFile(source)
	if err != nil {
		return fmt.Errorf("import: read %s: %w", source, err)
	}

	withExpects := importWithExpects || cfg.Importer.WithExpects
	sc, diags, err := importer.Convert(string(data), importer.ConvertOptions{
		WithExpects: withExpects,
		Importer:    cfg.Importer,
	})
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}

	for _, d := range diags {
		fmt.Fprintf(cmd.ErrOrStderr(), "flowcap import: line %d: %s\n", d.Line, d.Message)
	}

	out, err := sc.Dump()
	if err != nil {
		return fmt.Errorf("import: render scenario: %w", err)
	}
	if err := os.WriteFile(importDest, out, 0644); err != nil {
		return fmt.Errorf("import: write %s: %w", importDest, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Imported %s -> %s (%d diagnostics)\n", source, importDest, len(diags))
	return nil
}
