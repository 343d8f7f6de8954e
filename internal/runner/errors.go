package runner

import "github.com/flowcap/flowcap/internal/errs"

// Cancelled is raised when a step is aborted mid-wait by context
// cancellation (spec §5: "cancellation at any suspension point aborts the
// current step"). Hook failures are reported through the hook's own error
// verbatim, not wrapped here.
type Cancelled struct {
	Step string
}

func (e *Cancelled) Error() string   { return "run cancelled during step " + e.Step }
func (e *Cancelled) Kind() errs.Kind { return errs.KindCancelled }

// UnknownStep is raised when a scenario names a step type with no
// registered handler. scenario.Validate checks structure, not step-type
// existence (a handler registry is a Runner concern, not a parse-time
// one), so this is the Runner's own check before dispatch.
type UnknownStep struct {
	Type string
}

func (e *UnknownStep) Error() string   { return "unknown step type: " + e.Type }
func (e *UnknownStep) Kind() errs.Kind { return errs.KindUnknownStep }
