package scenario

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

var varRefPattern = regexp.MustCompile(`\$\{([^}]*)\}`)

// Validate checks the structural rules beyond typing (spec §4.1):
// non-empty title, absolute baseUrl, non-empty steps, variable
// references using only the two recognized namespaces, and `strict`
// appearing only on single-selector steps.
func (s *Scenario) Validate() error {
	if strings.TrimSpace(s.Title) == "" {
		return &SchemaError{Path: "title", Message: "title must not be empty"}
	}

	u, err := url.Parse(s.BaseURL)
	if err != nil || !u.IsAbs() {
		return &SchemaError{Path: "baseUrl", Message: fmt.Sprintf("baseUrl must be an absolute URL, got %q", s.BaseURL)}
	}

	if len(s.Steps) == 0 {
		return &SchemaError{Path: "steps", Message: "steps must not be empty"}
	}

	switch s.Healing {
	case "", HealingOff, HealingSafe:
	default:
		return &SchemaError{Path: "healing", Message: fmt.Sprintf("healing must be 'off' or 'safe', got %q", s.Healing)}
	}

	if err := validateStepList(s.Steps, "steps"); err != nil {
		return err
	}
	if err := validateStepList(s.Hooks.BeforeEachStep, "hooks.beforeEachStep"); err != nil {
		return err
	}
	if err := validateStepList(s.Hooks.AfterEachStep, "hooks.afterEachStep"); err != nil {
		return err
	}

	for _, hookList := range [][]Step{s.Hooks.BeforeEachStep, s.Hooks.AfterEachStep} {
		for _, st := range hookList {
			if st.IsSection() {
				return &SchemaError{Path: "hooks", Message: "hooks cannot contain sections", Line: st.Line}
			}
		}
	}

	return nil
}

func validateStepList(steps []Step, path string) error {
	for i, st := range steps {
		stepPath := fmt.Sprintf("%s[%d]", path, i)
		if st.IsSection() {
			if err := validateStepList(st.Section.Steps, stepPath+".section.steps"); err != nil {
				return err
			}
			continue
		}
		if err := validateStepPayload(st, stepPath); err != nil {
			return err
		}
	}
	return nil
}

// payloadProbe decodes just the fields validation needs to see, ignoring
// any step-specific fields a handler will decode later.
type payloadProbe struct {
	By     *By    `yaml:"by"`
	Strict *bool  `yaml:"strict"`
}

func validateStepPayload(st Step, path string) error {
	if st.Payload == nil {
		return nil
	}

	if err := walkStringScalars(st.Payload, func(s string, line int) error {
		return validateVarRefs(s, st.Name, line)
	}); err != nil {
		return err
	}

	var probe payloadProbe
	if err := st.Payload.Decode(&probe); err != nil {
		// Unrecognized shape is a handler-decode concern, not a scenario
		// validation failure; handlers surface their own SchemaError.
		return nil
	}
	if probe.Strict != nil && probe.By != nil && probe.By.Kind == ByAny {
		return &SchemaError{
			Path: path + ".strict", Message: "strict is only permitted on single-selector steps, not on `any`",
			Line: st.Line, Column: st.Column,
		}
	}
	return nil
}

func validateVarRefs(s, stepName string, line int) error {
	for _, m := range varRefPattern.FindAllStringSubmatch(s, -1) {
		ref := m[1]
		if !strings.HasPrefix(ref, "env.") && !strings.HasPrefix(ref, "vars.") {
			return &VarError{
				Reference: "${" + ref + "}", Step: stepName,
				Message: "variable references must use the env. or vars. namespace",
			}
		}
	}
	return nil
}

// walkStringScalars visits every scalar string value under node, in
// document order, calling fn with its text and source line.
func walkStringScalars(node *yaml.Node, fn func(string, int) error) error {
	if node == nil {
		return nil
	}
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!str" {
			return fn(node.Value, node.Line)
		}
	case yaml.MappingNode, yaml.SequenceNode, yaml.DocumentNode:
		for _, c := range node.Content {
			if err := walkStringScalars(c, fn); err != nil {
				return err
			}
		}
	}
	return nil
}
