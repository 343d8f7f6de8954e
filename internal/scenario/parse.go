package scenario

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Parse reads a YAML scenario document, materializes it into the typed
// Scenario model, and validates it (spec §4.1). The parsed yaml.Node tree
// is retained so Dump can remarshal with comments and field order
// preserved wherever the document shape permits it (Property 1), the
// technique grounded on erraggy-oastools' sourcemap/ordered-marshal
// approach to yaml.Node-preserving round trips.
func Parse(data []byte) (*Scenario, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, &SchemaError{Path: "$", Message: "invalid YAML", Cause: err}
	}
	if len(root.Content) == 0 {
		return nil, &SchemaError{Path: "$", Message: "empty document"}
	}

	var sc Scenario
	if err := root.Content[0].Decode(&sc); err != nil {
		if se, ok := err.(*SchemaError); ok {
			return nil, se
		}
		return nil, &SchemaError{
			Path: "$", Message: "document does not match the scenario schema", Cause: err,
			Line: root.Content[0].Line, Column: root.Content[0].Column,
		}
	}
	sc.sourceNode = &root

	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Dump serializes a Scenario back to YAML. When the Scenario was produced
// by Parse, field order and comments are preserved wherever the document
// shape still matches (Property 1: parse(dump(S)) == S for every valid S).
func (s *Scenario) Dump() ([]byte, error) {
	var fresh yaml.Node
	if err := fresh.Encode(s); err != nil {
		return nil, fmt.Errorf("scenario: encode: %w", err)
	}

	if s.sourceNode != nil && len(s.sourceNode.Content) > 0 {
		mergeNodeComments(s.sourceNode.Content[0], &fresh)
	}

	out, err := yaml.Marshal(&fresh)
	if err != nil {
		return nil, fmt.Errorf("scenario: marshal: %w", err)
	}
	return out, nil
}

// mergeNodeComments copies comments (and scalar style) from orig onto
// fresh wherever their shapes still line up: same kind, mapping keys
// matched by name, sequence elements matched by index. Mapping keys that
// orig also has are put in orig's key order; keys orig lacks follow them
// in their encoded order. It never touches fresh's values, only their
// formatting metadata and key order, so content edits made to
// the typed Scenario between Parse and Dump are preserved while still
// carrying over whatever comments/ordering the edit didn't touch.
func mergeNodeComments(orig, fresh *yaml.Node) {
	if orig == nil || fresh == nil || orig.Kind != fresh.Kind {
		if orig != nil {
			fresh.HeadComment = orig.HeadComment
			fresh.LineComment = orig.LineComment
			fresh.FootComment = orig.FootComment
		}
		return
	}

	fresh.HeadComment = orig.HeadComment
	fresh.LineComment = orig.LineComment
	fresh.FootComment = orig.FootComment
	fresh.Style = orig.Style

	switch orig.Kind {
	case yaml.MappingNode:
		ordered := make([]*yaml.Node, 0, len(fresh.Content))
		taken := make(map[*yaml.Node]bool)
		for i := 0; i+1 < len(orig.Content); i += 2 {
			origKey, origVal := orig.Content[i], orig.Content[i+1]
			freshKey, freshVal := findMappingValue(fresh, origKey.Value)
			if freshKey == nil || taken[freshKey] {
				continue
			}
			freshKey.HeadComment = origKey.HeadComment
			freshKey.LineComment = origKey.LineComment
			freshKey.FootComment = origKey.FootComment
			mergeNodeComments(origVal, freshVal)
			ordered = append(ordered, freshKey, freshVal)
			taken[freshKey] = true
		}
		for i := 0; i+1 < len(fresh.Content); i += 2 {
			if !taken[fresh.Content[i]] {
				ordered = append(ordered, fresh.Content[i], fresh.Content[i+1])
			}
		}
		fresh.Content = ordered
	case yaml.SequenceNode:
		for i := 0; i < len(orig.Content) && i < len(fresh.Content); i++ {
			mergeNodeComments(orig.Content[i], fresh.Content[i])
		}
	}
}

// findMappingValue returns the key and value nodes for name within a
// mapping node, or (nil, nil) if absent.
func findMappingValue(mapping *yaml.Node, name string) (*yaml.Node, *yaml.Node) {
	if mapping.Kind != yaml.MappingNode {
		return nil, nil
	}
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == name {
			return mapping.Content[i], mapping.Content[i+1]
		}
	}
	return nil, nil
}
