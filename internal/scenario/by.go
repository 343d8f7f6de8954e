package scenario

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ByKind discriminates the seven By variants. Exactly one is populated per
// By value decoded from YAML (UnmarshalYAML rejects any other count).
type ByKind string

const (
	ByTestID      ByKind = "testId"
	ByRole        ByKind = "role"
	ByLabel       ByKind = "label"
	ByPlaceholder ByKind = "placeholder"
	ByCSS         ByKind = "css"
	ByText        ByKind = "text"
	ByAny         ByKind = "any"
)

// By is a declarative selector expression: a closed sum of seven cases.
// Implemented as a tagged struct rather than an interface so that
// pattern-matching over it (in the resolver, linter, and importer) stays
// exhaustive and allocation-free.
type By struct {
	Kind ByKind

	TestID      string // ByTestID
	Role        string // ByRole
	Name        string // ByRole: optional accessible-name filter
	Label       string // ByLabel
	Placeholder string // ByPlaceholder
	CSS         string // ByCSS
	Text        string // ByCSS: optional visible-text filter; ByText: the match value
	Any         []By   // ByAny: ordered fallback candidates, each single-selector
}

// String renders a By the way diagnostics and reports pretty-print a
// failed selector.
func (b By) String() string {
	switch b.Kind {
	case ByTestID:
		return fmt.Sprintf("testId(%q)", b.TestID)
	case ByRole:
		if b.Name != "" {
			return fmt.Sprintf("role(%q, name=%q)", b.Role, b.Name)
		}
		return fmt.Sprintf("role(%q)", b.Role)
	case ByLabel:
		return fmt.Sprintf("label(%q)", b.Label)
	case ByPlaceholder:
		return fmt.Sprintf("placeholder(%q)", b.Placeholder)
	case ByCSS:
		if b.Text != "" {
			return fmt.Sprintf("css(%q, text=%q)", b.CSS, b.Text)
		}
		return fmt.Sprintf("css(%q)", b.CSS)
	case ByText:
		return fmt.Sprintf("text(%q)", b.Text)
	case ByAny:
		out := "any["
		for i, c := range b.Any {
			if i > 0 {
				out += ", "
			}
			out += c.String()
		}
		return out + "]"
	default:
		return "by(<invalid>)"
	}
}

// IsSingle reports whether b is one of the six non-any cases: a single
// selector, as opposed to an ordered fallback list.
func (b By) IsSingle() bool {
	return b.Kind != ByAny && b.Kind != ""
}

// byYAML mirrors the YAML mapping shape of a By expression.
type byYAML struct {
	TestID      *string `yaml:"testId"`
	Role        *string `yaml:"role"`
	Name        *string `yaml:"name"`
	Label       *string `yaml:"label"`
	Placeholder *string `yaml:"placeholder"`
	CSS         *string `yaml:"css"`
	Text        *string `yaml:"text"`
	Any         []By    `yaml:"any"`
}

// UnmarshalYAML decodes a By expression and enforces that exactly one
// principal key (testId, role, label, placeholder, css, text, any) is
// present.
func (b *By) UnmarshalYAML(node *yaml.Node) error {
	var raw byYAML
	if err := node.Decode(&raw); err != nil {
		return &SchemaError{
			Path:    "by",
			Message: "could not decode selector expression",
			Line:    node.Line, Column: node.Column,
			Cause: err,
		}
	}

	kinds := 0
	if raw.TestID != nil {
		b.Kind, b.TestID = ByTestID, *raw.TestID
		kinds++
	}
	if raw.Role != nil {
		b.Kind, b.Role = ByRole, *raw.Role
		if raw.Name != nil {
			b.Name = *raw.Name
		}
		kinds++
	}
	if raw.Label != nil {
		b.Kind, b.Label = ByLabel, *raw.Label
		kinds++
	}
	if raw.Placeholder != nil {
		b.Kind, b.Placeholder = ByPlaceholder, *raw.Placeholder
		kinds++
	}
	if raw.CSS != nil {
		b.Kind, b.CSS = ByCSS, *raw.CSS
		if raw.Text != nil {
			b.Text = *raw.Text
		}
		kinds++
	}
	if raw.Text != nil && raw.CSS == nil {
		b.Kind, b.Text = ByText, *raw.Text
		kinds++
	}
	if raw.Any != nil {
		b.Kind, b.Any = ByAny, raw.Any
		kinds++
	}

	if kinds != 1 {
		return &SchemaError{
			Path:    "by",
			Message: fmt.Sprintf("selector expression must populate exactly one of testId/role/label/placeholder/css/text/any, found %d", kinds),
			Line:    node.Line, Column: node.Column,
		}
	}

	if b.Kind == ByAny {
		if len(b.Any) < 2 {
			return &SchemaError{
				Path: "by.any", Message: "any requires at least two candidates",
				Line: node.Line, Column: node.Column,
			}
		}
		for _, c := range b.Any {
			if c.Kind == ByAny {
				return &SchemaError{
					Path: "by.any", Message: "any may not nest",
					Line: node.Line, Column: node.Column,
				}
			}
		}
	}

	return nil
}

// MarshalYAML renders a By expression back to its single-key mapping form,
// satisfying the parse(dump(S)) == S roundtrip property.
func (b By) MarshalYAML() (interface{}, error) {
	switch b.Kind {
	case ByTestID:
		return map[string]string{"testId": b.TestID}, nil
	case ByRole:
		m := map[string]string{"role": b.Role}
		if b.Name != "" {
			m["name"] = b.Name
		}
		return m, nil
	case ByLabel:
		return map[string]string{"label": b.Label}, nil
	case ByPlaceholder:
		return map[string]string{"placeholder": b.Placeholder}, nil
	case ByCSS:
		m := map[string]string{"css": b.CSS}
		if b.Text != "" {
			m["text"] = b.Text
		}
		return m, nil
	case ByText:
		return map[string]string{"text": b.Text}, nil
	case ByAny:
		return map[string]interface{}{"any": b.Any}, nil
	default:
		return nil, fmt.Errorf("by: invalid selector with no populated kind")
	}
}
