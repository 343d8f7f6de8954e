package steps

import (
	"fmt"

	"github.com/flowcap/flowcap/internal/errs"
	"github.com/flowcap/flowcap/internal/scenario"
)

// selectorTimeout is raised by waitForHidden when its target is still
// visible after its full budget elapses — a Timeout-class failure that
// doesn't go through internal/selector, since the wait is for absence
// rather than presence.
type selectorTimeout struct {
	by             scenario.By
	timeoutSeconds float64
}

func (e *selectorTimeout) Error() string {
	return fmt.Sprintf("%s was still visible after %.1fs", e.by, e.timeoutSeconds)
}
func (e *selectorTimeout) Kind() errs.Kind { return errs.KindTimeout }

// assertionFailure is raised by every `expect*` handler on a failed
// assertion (spec §7's AssertionFailure class). expected/actual are only
// populated by comparison assertions (expectText, expectUrl); expectVisible
// and expectHidden leave them empty since there is nothing to diff.
type assertionFailure struct {
	message          string
	expected, actual string
}

func (e *assertionFailure) Error() string   { return e.message }
func (e *assertionFailure) Kind() errs.Kind { return errs.KindAssertionFailure }

// ExpectedActual implements errs.ExpectedActual for comparison assertions.
func (e *assertionFailure) ExpectedActual() (expected, actual string) {
	return e.expected, e.actual
}
