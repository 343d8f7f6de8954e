// Package scenario defines the scenario document model — the schema,
// variable substitution, and parse/dump machinery shared by every other
// flowcap component (spec §3, §4.1).
package scenario

import "gopkg.in/yaml.v3"

// HealingMode controls whether the Selector Resolver attempts widened
// retries after a NoMatch (spec §4.3).
type HealingMode string

const (
	HealingOff  HealingMode = "off"
	HealingSafe HealingMode = "safe"
)

// Scenario is the root document (spec §3).
type Scenario struct {
	Title   string            `yaml:"title"`
	BaseURL string            `yaml:"baseUrl"`
	Vars    map[string]string `yaml:"vars"`
	Artifacts ArtifactsPolicy `yaml:"artifacts"`
	Hooks   Hooks             `yaml:"hooks"`
	Steps   []Step            `yaml:"steps"`
	Healing HealingMode       `yaml:"healing"`

	// sourceNode retains the parsed YAML tree so Dump can remarshal with
	// comments and field order preserved (Property 1). Nil for
	// programmatically constructed scenarios.
	sourceNode *yaml.Node
}

// Hooks are two ordered step lists executed around every top-level step
// (spec §3, §4.5).
type Hooks struct {
	BeforeEachStep []Step `yaml:"beforeEachStep"`
	AfterEachStep  []Step `yaml:"afterEachStep"`
}

// ScreenshotMode controls when the Runner captures a screenshot.
type ScreenshotMode string

const (
	ScreenshotBeforeEach     ScreenshotMode = "before_each_step"
	ScreenshotBeforeAndAfter ScreenshotMode = "before_and_after"
	ScreenshotNone           ScreenshotMode = "none"
)

// TraceMode and VideoMode control when the corresponding artifact is
// retained after a run.
type TraceMode string

const (
	TraceOnFailure TraceMode = "on_failure"
	TraceAlways    TraceMode = "always"
	TraceNone      TraceMode = "none"
)

type VideoMode string

const (
	VideoOnFailure VideoMode = "on_failure"
	VideoAlways    VideoMode = "always"
	VideoNone      VideoMode = "none"
)

// ScreenshotFormat is the image encoding used for captured screenshots.
type ScreenshotFormat string

const (
	FormatJPEG ScreenshotFormat = "jpeg"
	FormatPNG  ScreenshotFormat = "png"
)

// ScreenshotPolicy is the screenshots sub-policy of ArtifactsPolicy.
type ScreenshotPolicy struct {
	Mode    ScreenshotMode   `yaml:"mode"`
	Format  ScreenshotFormat `yaml:"format"`
	Quality int              `yaml:"quality"`
}

// TracePolicy is the trace sub-policy of ArtifactsPolicy.
type TracePolicy struct {
	Mode TraceMode `yaml:"mode"`
}

// VideoPolicy is the video sub-policy of ArtifactsPolicy.
type VideoPolicy struct {
	Mode VideoMode `yaml:"mode"`
}

// ArtifactsPolicy bundles the three independent sub-policies (spec §3).
type ArtifactsPolicy struct {
	Screenshots ScreenshotPolicy `yaml:"screenshots"`
	Trace       TracePolicy      `yaml:"trace"`
	Video       VideoPolicy      `yaml:"video"`
}

// DefaultArtifactsPolicy mirrors the conservative defaults a freshly
// `init`-ed scenario gets.
func DefaultArtifactsPolicy() ArtifactsPolicy {
	return ArtifactsPolicy{
		Screenshots: ScreenshotPolicy{Mode: ScreenshotBeforeEach, Format: FormatPNG, Quality: 90},
		Trace:       TracePolicy{Mode: TraceOnFailure},
		Video:       VideoPolicy{Mode: VideoOnFailure},
	}
}

// Section is a labeled, advisory-only container for consecutive steps
// (spec §3). It has no runtime semantics beyond grouping: the Runner
// flattens sections before execution, recording the containing section
// name on each StepResult (spec §4.5).
type Section struct {
	Title string `yaml:"title"`
	Steps []Step `yaml:"steps"`
	Line  int    `yaml:"-"`
}

// Step is a tagged variant: every step carries an optional Name and a
// Secret flag; its Type names the step-type (the registry key) and
// Payload is the step's raw YAML value, decoded into a typed struct by
// the corresponding handler (spec §3, §4.4).
//
// A Step with Type == "section" is the section pseudo-step (spec §6);
// Section is populated and Payload/Name/Secret are not meaningful.
type Step struct {
	Type    string
	Name    string
	Secret  bool
	Payload *yaml.Node
	Section *Section

	Line, Column int
}

// IsSection reports whether this Step is the section pseudo-step.
func (s Step) IsSection() bool { return s.Type == "section" }

// Decode decodes the step's payload into out, which must be a pointer.
// Handlers call this to obtain their typed parameter struct (spec §4.4's
// "schema()" contract).
func (s Step) Decode(out interface{}) error {
	if s.Payload == nil {
		return nil
	}
	return s.Payload.Decode(out)
}
