package driver

import (
	"fmt"

	"github.com/flowcap/flowcap/internal/errs"
)

// DriverError wraps a browser-level failure (navigation, crash, a lookup
// call that errored rather than simply finding zero elements) in the
// flowcap error taxonomy (spec §7).
type DriverError struct {
	Op    string
	Cause error
}

func (e *DriverError) Error() string {
	return fmt.Sprintf("driver: %s: %v", e.Op, e.Cause)
}
func (e *DriverError) Kind() errs.Kind { return errs.KindDriverError }
func (e *DriverError) Unwrap() error   { return e.Cause }
