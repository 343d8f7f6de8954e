package runner

import (
	"time"

	"github.com/flowcap/flowcap/internal/driver"
)

// Options configures one Run invocation: everything about the browser
// environment and timing budget that lives outside the scenario document
// itself (spec §4.5's "open browser context honoring scenario environment
// (viewport, timezone, locale, extra headers, storage state)" — none of
// these are scenario fields per spec §3's DATA MODEL, so they arrive here
// from the CLI/config layer instead).
type Options struct {
	ArtifactRoot string

	Headless          bool
	Bin               string
	DebuggerURL       string
	ExtraFlags        []string
	Viewport          driver.Viewport
	TimezoneID        string
	Locale            string
	ExtraHeaders      map[string]string
	InitialStorageState string

	StepTimeout     time.Duration
	ScenarioTimeout time.Duration

	Logging LoggingOptions

	// Workers bounds how many scenarios RunAll executes concurrently.
	Workers int
}

// LoggingOptions mirrors config.LoggingConfig, translated at the
// internal/config boundary so this package doesn't import internal/config
// directly (its Options are a pure runtime concern).
type LoggingOptions struct {
	DebugMode  bool
	JSONFormat bool
	Categories map[string]bool
}
