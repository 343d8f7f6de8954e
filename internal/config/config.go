// Package config holds flowcap's CLI-level configuration: the settings that
// apply across every scenario run from a given workspace, as distinct from
// the per-scenario settings that live in the scenario document itself
// (see internal/scenario).
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds flowcap's workspace-level configuration, loaded from
// .flowcap/config.yaml.
type Config struct {
	// Workspace is the root directory under which run-* directories and
	// recordings/ are created. Relative to the workspace directory (the
	// directory holding .flowcap/).
	Workspace string `yaml:"workspace"`

	// DefaultStepTimeout bounds any single step's wait, absent a per-step
	// override in the scenario.
	DefaultStepTimeout string `yaml:"default_step_timeout"`

	// DefaultScenarioTimeout bounds an entire scenario run.
	DefaultScenarioTimeout string `yaml:"default_scenario_timeout"`

	// DefaultWorkers is the parallelism used by `run` when --workers is
	// not supplied.
	DefaultWorkers int `yaml:"default_workers"`

	Logging  LoggingConfig  `yaml:"logging"`
	Importer ImporterConfig `yaml:"importer"`
}

// LoggingConfig controls the ambient category logger.
type LoggingConfig struct {
	DebugMode  bool            `yaml:"debug_mode"`
	JSONFormat bool            `yaml:"json_format"`
	Categories map[string]bool `yaml:"categories"`
}

// ImporterConfig exposes the Importer's heuristic thresholds as
// configuration rather than hard-coding them (spec Open Question, §9).
type ImporterConfig struct {
	// SectionOnURLChange sections steps whenever the navigated URL path
	// changes.
	SectionOnURLChange bool `yaml:"section_on_url_change"`
	// SubmitActionLexicon lists selector/locator substrings (case
	// insensitive) that mark a step as submit-like for auto-sectioning.
	SubmitActionLexicon []string `yaml:"submit_action_lexicon"`
	// WithExpects inserts expectVisible after deterministic interactions
	// by default (the --with-expects CLI flag overrides this per-run).
	WithExpects bool `yaml:"with_expects"`
}

// DefaultConfig returns flowcap's default configuration.
func DefaultConfig() *Config {
	return &Config{
		Workspace:              ".",
		DefaultStepTimeout:     "10s",
		DefaultScenarioTimeout: "10m",
		DefaultWorkers:         1,
		Logging: LoggingConfig{
			DebugMode:  false,
			JSONFormat: false,
			Categories: nil,
		},
		Importer: ImporterConfig{
			SectionOnURLChange: true,
			SubmitActionLexicon: []string{
				"submit", "sign in", "sign-in", "log in", "login",
				"save", "continue", "next",
			},
			WithExpects: false,
		},
	}
}

// Load reads configuration from a YAML file, falling back to defaults if
// the file does not exist.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the configuration to a YAML file, creating parent
// directories as needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("config: mkdir: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

// StepTimeout parses DefaultStepTimeout, falling back to 10s on error.
func (c *Config) StepTimeout() time.Duration {
	d, err := time.ParseDuration(c.DefaultStepTimeout)
	if err != nil {
		return 10 * time.Second
	}
	return d
}

// ScenarioTimeout parses DefaultScenarioTimeout, falling back to 10m.
func (c *Config) ScenarioTimeout() time.Duration {
	d, err := time.ParseDuration(c.DefaultScenarioTimeout)
	if err != nil {
		return 10 * time.Minute
	}
	return d
}
