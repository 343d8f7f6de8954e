package selector

import (
	"fmt"

	"github.com/flowcap/flowcap/internal/errs"
	"github.com/flowcap/flowcap/internal/scenario"
)

// NoMatch is raised when a single (non-`any`) selector matches zero
// elements, including after an exhausted healing attempt (spec §4.3, §7).
type NoMatch struct {
	By     scenario.By
	Healed bool
}

func (e *NoMatch) Error() string {
	if e.Healed {
		return fmt.Sprintf("no match for %s (healing exhausted)", e.By)
	}
	return fmt.Sprintf("no match for %s", e.By)
}
func (e *NoMatch) Kind() errs.Kind { return errs.KindNoMatch }

// Ambiguous is raised when a strict selector matches more than one element.
// Never healed, even under healing=safe (spec §4.3's "strictness
// violations are never healed").
type Ambiguous struct {
	By      scenario.By
	MatchCount int
}

func (e *Ambiguous) Error() string {
	return fmt.Sprintf("%s matched %d elements, expected exactly one", e.By, e.MatchCount)
}
func (e *Ambiguous) Kind() errs.Kind { return errs.KindAmbiguous }

// Timeout is raised when a selector matches but never becomes visible
// within the allotted window.
type Timeout struct {
	By             scenario.By
	TimeoutSeconds float64
}

func (e *Timeout) Error() string {
	return fmt.Sprintf("%s did not become visible within %.1fs", e.By, e.TimeoutSeconds)
}
func (e *Timeout) Kind() errs.Kind { return errs.KindTimeout }

// CandidateFailure records one `any` candidate's resolution outcome, in
// declaration order (spec Property 7: "exactly n (candidate, reason)
// pairs in declaration order").
type CandidateFailure struct {
	Candidate scenario.By
	Reason    string
}

// AllCandidatesFailed is raised when every candidate in an `any` list
// fails to resolve.
type AllCandidatesFailed struct {
	Failures []CandidateFailure
}

func (e *AllCandidatesFailed) Error() string {
	msg := fmt.Sprintf("all %d candidates failed:", len(e.Failures))
	for _, f := range e.Failures {
		msg += fmt.Sprintf(" [%s: %s]", f.Candidate, f.Reason)
	}
	return msg
}
func (e *AllCandidatesFailed) Kind() errs.Kind { return errs.KindAllCandidatesFailed }
