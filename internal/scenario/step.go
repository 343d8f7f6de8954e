package scenario

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// commonStepFields is decoded from a step's payload to pick out the two
// fields every step carries, leaving type-specific fields for the
// handler's own Decode call (spec §3: "every step carries an optional
// name ... and a secret flag").
type commonStepFields struct {
	Name   string `yaml:"name"`
	Secret bool   `yaml:"secret"`
}

// UnmarshalYAML decodes a step's single-key mapping shape: the key names
// the step type (or "section"), the value is its payload (spec §6).
func (s *Step) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode || len(node.Content) != 2 {
		return &SchemaError{
			Path: "steps[]", Message: "each step must be a single-key mapping {type: payload}",
			Line: node.Line, Column: node.Column,
		}
	}

	keyNode, valueNode := node.Content[0], node.Content[1]
	stepType := keyNode.Value

	s.Type = stepType
	s.Line, s.Column = node.Line, node.Column

	if stepType == "section" {
		var sec Section
		if err := valueNode.Decode(&sec); err != nil {
			return &SchemaError{
				Path: "steps[].section", Message: "invalid section payload", Cause: err,
				Line: valueNode.Line, Column: valueNode.Column,
			}
		}
		sec.Line = node.Line
		s.Section = &sec
		return nil
	}

	var common commonStepFields
	if err := valueNode.Decode(&common); err != nil {
		return &SchemaError{
			Path: fmt.Sprintf("steps[].%s", stepType), Message: "invalid step payload", Cause: err,
			Line: valueNode.Line, Column: valueNode.Column,
		}
	}
	s.Name = common.Name
	s.Secret = common.Secret
	s.Payload = valueNode
	return nil
}

// MarshalYAML renders a step back to its single-key mapping form.
func (s Step) MarshalYAML() (interface{}, error) {
	if s.IsSection() {
		return map[string]interface{}{"section": s.Section}, nil
	}
	if s.Payload != nil {
		return map[string]interface{}{s.Type: s.Payload}, nil
	}
	return map[string]interface{}{s.Type: map[string]interface{}{}}, nil
}

// Flatten walks a step list, expanding section pseudo-steps into their
// contained steps in order while recording each leaf step's containing
// section name. Sections have no runtime semantics beyond this grouping
// (spec §3, §4.5).
func Flatten(steps []Step) []FlatStep {
	var out []FlatStep
	flattenInto(steps, "", &out)
	return out
}

// FlatStep is one leaf (non-section) step plus the name of the section it
// was found in, if any.
type FlatStep struct {
	Step    Step
	Section string
}

func flattenInto(steps []Step, section string, out *[]FlatStep) {
	for _, st := range steps {
		if st.IsSection() {
			title := ""
			if st.Section != nil {
				title = st.Section.Title
			}
			if st.Section != nil {
				flattenInto(st.Section.Steps, title, out)
			}
			continue
		}
		*out = append(*out, FlatStep{Step: st, Section: section})
	}
}
