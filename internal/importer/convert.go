package importer

import (
	"fmt"
	"net/url"

	"github.com/flowcap/flowcap/internal/config"
	"github.com/flowcap/flowcap/internal/scenario"
	"gopkg.in/yaml.v3"
)

// ConvertOptions configures one Import run.
type ConvertOptions struct {
	// WithExpects inserts an expectVisible after each interaction whose
	// locator is deterministic enough (testId or role+name), per spec
	// §4.6's `--with-expects` flag. Never inserted after navigation.
	WithExpects bool
	Importer    config.ImporterConfig
}

// common is the inline name/secret pair every synthesized step payload
// carries, mirroring commonStepFields in internal/scenario so a dumped
// scenario parses back identically (parse(dump(s)) == s, spec Property 1).
type common struct {
	Name   string `yaml:"name,omitempty"`
	Secret bool   `yaml:"secret,omitempty"`
}

type gotoParams struct {
	common `yaml:",inline"`
	URL    string `yaml:"url"`
}

type targetParams struct {
	common `yaml:",inline"`
	By     scenario.By `yaml:"by"`
}

type fillParams struct {
	common `yaml:",inline"`
	By     scenario.By `yaml:"by"`
	Value  string      `yaml:"value"`
}

type pressParams struct {
	common `yaml:",inline"`
	By     scenario.By `yaml:"by"`
	Key    string      `yaml:"key"`
}

type expectURLParams struct {
	common `yaml:",inline"`
	URL    string `yaml:"url"`
}

type logParams struct {
	Message string `yaml:"message"`
}

// Convert parses source and converts every recognized action into a
// Scenario, applying auto-naming, auto-sectioning, secret detection, and
// (if requested) expectVisible insertion. Unrecognized statements are
// passed through as `log` steps plus a warning Diagnostic; they never
// abort the conversion (spec §4.6).
func Convert(source string, opts ConvertOptions) (*scenario.Scenario, []Diagnostic, error) {
	actions, parseDiags := Parse(source)

	names := newNamer()
	var steps []scenario.Step
	var diags []Diagnostic
	var baseURL string

	ai := 0
	for _, d := range parseDiags {
		for ai < len(actions) && actions[ai].Line < d.Line {
			a := actions[ai]
			ai++

			step, secretDiag, err := buildStep(a, names)
			if err != nil {
				return nil, diags, fmt.Errorf("importer: line %d: %w", a.Line, err)
			}
			if secretDiag != nil {
				diags = append(diags, *secretDiag)
			}
			steps = append(steps, step)

			if a.Kind == ActionGoto && baseURL == "" {
				baseURL = originOf(a.Value)
			}
			if opts.WithExpects {
				if expect, ok := expectFor(a, names); ok {
					steps = append(steps, expect)
				}
			}
		}

		diags = append(diags, d)
		node, err := encodePayload(logParams{Message: fmt.Sprintf("importer: unrecognized statement at line %d: %s", d.Line, d.Source)})
		if err == nil {
			steps = append(steps, scenario.Step{Type: "log", Payload: node})
		}
	}
	for ; ai < len(actions); ai++ {
		a := actions[ai]
		step, secretDiag, err := buildStep(a, names)
		if err != nil {
			return nil, diags, fmt.Errorf("importer: line %d: %w", a.Line, err)
		}
		if secretDiag != nil {
			diags = append(diags, *secretDiag)
		}
		steps = append(steps, step)

		if a.Kind == ActionGoto && baseURL == "" {
			baseURL = originOf(a.Value)
		}
		if opts.WithExpects {
			if expect, ok := expectFor(a, names); ok {
				steps = append(steps, expect)
			}
		}
	}

	steps = applySections(opts.Importer, steps)

	sc := &scenario.Scenario{
		Title:     "Imported scenario",
		BaseURL:   baseURL,
		Healing:   scenario.HealingSafe,
		Artifacts: scenario.DefaultArtifactsPolicy(),
		Steps:     steps,
	}
	return sc, diags, nil
}

// buildStep maps one RawAction to its Step equivalent (spec §4.6's
// mapping table), running auto-naming and — for fill — secret detection.
func buildStep(a RawAction, names *namer) (scenario.Step, *Diagnostic, error) {
	switch a.Kind {
	case ActionGoto:
		name := names.name(a.Kind, objectFromURL(a.Value))
		node, err := encodePayload(gotoParams{common: common{Name: name}, URL: a.Value})
		return scenario.Step{Type: "goto", Name: name, Payload: node}, nil, err

	case ActionExpectURL:
		name := names.name(a.Kind, objectFromURL(a.Value))
		node, err := encodePayload(expectURLParams{common: common{Name: name}, URL: a.Value})
		return scenario.Step{Type: "expectUrl", Name: name, Payload: node}, nil, err
	}

	by, ok := locatorBy(a)
	if !ok {
		return scenario.Step{}, nil, fmt.Errorf("no locator on action %s", a.Kind)
	}
	name := names.name(a.Kind, objectFromBy(by))

	switch a.Kind {
	case ActionClick, ActionDblClick, ActionCheck, ActionUncheck, ActionExpectVisible:
		stepType := string(a.Kind)
		node, err := encodePayload(targetParams{common: common{Name: name}, By: by})
		return scenario.Step{Type: stepType, Name: name, Payload: node}, nil, err

	case ActionFill:
		secret := looksLikeSecret(by)
		var diag *Diagnostic
		if secret {
			diag = &Diagnostic{
				Line: a.Line, Source: a.Source, Severity: SeverityWarning,
				Message: fmt.Sprintf("fill step %q targets a likely password field, marked secret: true", name),
			}
		}
		node, err := encodePayload(fillParams{common: common{Name: name, Secret: secret}, By: by, Value: a.Value})
		return scenario.Step{Type: "fill", Name: name, Secret: secret, Payload: node}, diag, err

	case ActionPress:
		node, err := encodePayload(pressParams{common: common{Name: name}, By: by, Key: a.Value})
		return scenario.Step{Type: "press", Name: name, Payload: node}, nil, err
	}

	return scenario.Step{}, nil, fmt.Errorf("unhandled action kind %s", a.Kind)
}

// expectFor builds the expectVisible inserted after a.Kind when
// --with-expects is set, only when the locator is deterministic enough
// (testId, or role with an accessible name) and a is not a navigation
// step.
func expectFor(a RawAction, names *namer) (scenario.Step, bool) {
	if a.Kind == ActionGoto || a.Kind == ActionExpectURL || a.Kind == ActionExpectVisible {
		return scenario.Step{}, false
	}
	by, ok := locatorBy(a)
	if !ok {
		return scenario.Step{}, false
	}
	deterministic := by.Kind == scenario.ByTestID || (by.Kind == scenario.ByRole && by.Name != "")
	if !deterministic {
		return scenario.Step{}, false
	}

	name := names.name(ActionExpectVisible, objectFromBy(by))
	node, err := encodePayload(targetParams{common: common{Name: name}, By: by})
	if err != nil {
		return scenario.Step{}, false
	}
	return scenario.Step{Type: "expectVisible", Name: name, Payload: node}, true
}

func locatorBy(a RawAction) (scenario.By, bool) {
	if len(a.Locator) == 0 {
		return scenario.By{}, false
	}
	return parseLocator(a.Locator[0].Method)
}

func originOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return raw
	}
	return u.Scheme + "://" + u.Host
}

// encodePayload marshals v (a step's typed parameter struct) into the
// *yaml.Node shape scenario.Step.Payload expects, via yaml.Node's own
// Encode rather than a marshal-to-bytes-then-unmarshal round trip.
func encodePayload(v interface{}) (*yaml.Node, error) {
	var node yaml.Node
	if err := node.Encode(v); err != nil {
		return nil, err
	}
	return &node, nil
}
