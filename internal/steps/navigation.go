// Package steps implements the built-in and high-level step handlers (spec
// §4.4), each a stepregistry.Handler registered under its step-type name at
// init() time, grounded on internal/tools's handler-per-file convention
// (each tool in the teacher's internal/tools/*.go implemented one
// capability and self-registered the same way).
package steps

import (
	"fmt"

	"github.com/flowcap/flowcap/internal/errs"
	"github.com/flowcap/flowcap/internal/scenario"
	"github.com/flowcap/flowcap/internal/stepregistry"
)

// gotoPayload is the `goto` step's parameter shape.
type gotoPayload struct {
	URL string `yaml:"url"`
}

type gotoHandler struct{}

func (gotoHandler) Schema() interface{} { return &gotoPayload{} }

func (gotoHandler) Execute(ec *stepregistry.ExecContext, step scenario.Step) error {
	var p gotoPayload
	if err := step.Decode(&p); err != nil {
		return &DecodeError{Step: step.Type, Cause: err}
	}
	url, err := ec.Vars.Substitute(p.URL, step.Name)
	if err != nil {
		return err
	}
	return ec.Page.Goto(ec, url)
}

type backHandler struct{}

func (backHandler) Schema() interface{} { return &struct{}{} }
func (backHandler) Execute(ec *stepregistry.ExecContext, _ scenario.Step) error {
	return ec.Page.Back(ec)
}

type reloadHandler struct{}

func (reloadHandler) Schema() interface{} { return &struct{}{} }
func (reloadHandler) Execute(ec *stepregistry.ExecContext, _ scenario.Step) error {
	return ec.Page.Reload(ec)
}

// DecodeError wraps a step payload that failed to decode into its handler's
// expected shape — a SchemaError-class failure surfaced at execute time
// rather than at Validate time, since a handler's own payload shape isn't
// known to internal/scenario.
type DecodeError struct {
	Step  string
	Cause error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("steps: %s: invalid payload: %v", e.Step, e.Cause)
}
func (e *DecodeError) Kind() errs.Kind { return errs.KindSchema }
func (e *DecodeError) Unwrap() error   { return e.Cause }
