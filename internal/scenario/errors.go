package scenario

import (
	"fmt"

	"github.com/flowcap/flowcap/internal/errs"
)

// SchemaError reports a malformed scenario document: the failing field
// path, expected shape, and source line (spec §4.1).
type SchemaError struct {
	Path          string
	Message       string
	Line, Column  int
	Cause         error
}

func (e *SchemaError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("schema error at %s (line %d:%d): %s", e.Path, e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("schema error at %s: %s", e.Path, e.Message)
}

func (e *SchemaError) Unwrap() error { return e.Cause }
func (e *SchemaError) Kind() errs.Kind { return errs.KindSchema }

// VarError reports an unresolved or malformed ${...} reference (spec §6).
type VarError struct {
	Reference string // the raw ${...} text
	Step      string // the referring step's name, if any
	Message   string
}

func (e *VarError) Error() string {
	if e.Step != "" {
		return fmt.Sprintf("variable error in step %q: %s (%s)", e.Step, e.Message, e.Reference)
	}
	return fmt.Sprintf("variable error: %s (%s)", e.Message, e.Reference)
}

func (e *VarError) Kind() errs.Kind { return errs.KindVar }
