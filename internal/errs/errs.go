// Package errs defines flowcap's error taxonomy (spec §7), shared across
// the scenario, selector, runner, and importer packages so that a Runner
// can classify any error it receives from a step body by Kind() without
// importing every subsystem's error type.
package errs

// Kind classifies a flowcap error for reporting and propagation-policy
// decisions (spec §7).
type Kind string

const (
	KindSchema           Kind = "SchemaError"
	KindVar               Kind = "VarError"
	KindNoMatch            Kind = "NoMatch"
	KindAmbiguous          Kind = "Ambiguous"
	KindTimeout            Kind = "Timeout"
	KindAllCandidatesFailed Kind = "AllCandidatesFailed"
	KindAssertionFailure   Kind = "AssertionFailure"
	KindDriverError        Kind = "DriverError"
	KindUnknownStep        Kind = "UnknownStep"
	KindCancelled          Kind = "Cancelled"
)

// FlowError is satisfied by every error flowcap raises across the
// taxonomy in spec §7, letting the Runner report a uniform error class in
// a StepResult regardless of which subsystem raised it.
type FlowError interface {
	error
	Kind() Kind
}

// ExpectedActual is implemented by assertion failures that compare two
// values (expectText, expectUrl), letting the Runner carry the raw
// expected/actual strings into a StepResult instead of just the formatted
// message, so a reporter can render a diff between them.
type ExpectedActual interface {
	error
	ExpectedActual() (expected, actual string)
}
