package main

import (
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var recorderBin string

var recordCmd = &cobra.Command{
	Use:   "record [url]",
	Short: "Invoke the external recorder and capture its script",
	Long: `Launches an external browser recorder (Playwright's codegen by
default), against url when one is given, and writes the recorded Python
script to recordings/raw_<slug>.py (raw_recording.py without a url),
ready for 'flowcap import'.

flowcap does not implement a recorder itself — it is a thin wrapper
around whatever recorder is on PATH (override with --recorder-bin).`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRecord,
}

func init() {
	recordCmd.Flags().StringVar(&recorderBin, "recorder-bin", "playwright", "External recorder executable")
}

func runRecord(cmd *cobra.Command, args []string) error {
	target := ""
	if len(args) > 0 {
		target = args[0]
	}

	recordingsDir := filepath.Join(workspace, cfg.Workspace, "recordings")
	if err := os.MkdirAll(recordingsDir, 0755); err != nil {
		return fmt.Errorf("create recordings directory: %w", err)
	}

	dest := filepath.Join(recordingsDir, "raw_"+slugify(target)+".py")

	codegenArgs := []string{"codegen", "--target", "python", "-o", dest}
	if target != "" {
		codegenArgs = append(codegenArgs, target)
	}
	c := exec.CommandContext(cmd.Context(), recorderBin, codegenArgs...)
	c.Stdout = cmd.OutOrStdout()
	c.Stderr = cmd.ErrOrStderr()
	if err := c.Run(); err != nil {
		return fmt.Errorf("record: %s codegen failed: %w", recorderBin, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Recorded script written to %s\n", dest)
	return nil
}

// slugify derives a filesystem-safe name from a recording target, used to
// name raw_<slug>.py (spec §6's run directory layout convention).
func slugify(target string) string {
	s := target
	if u, err := url.Parse(target); err == nil && u.Host != "" {
		s = strings.TrimPrefix(u.Host, "www.") + u.Path
	}
	s = strings.ToLower(s)

	var b strings.Builder
	lastDash := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash && b.Len() > 0 {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	out := strings.Trim(b.String(), "-")
	if out == "" {
		return "recording"
	}
	return out
}
