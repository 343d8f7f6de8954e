// Package importer implements the Importer (spec §4.6): it reads a
// recorded Playwright-style Python script, recognizes a fixed vocabulary
// of driver calls statement by statement, and converts the recognized
// actions into a Scenario — auto-naming, auto-sectioning, and flagging
// likely secret fields along the way.
//
// The recognizer is a flat statement-wise dispatch on syntactic shape, not
// a general Python parser: the recorded scripts this tool ingests only
// ever use a small, fixed set of call forms (goto, get_by_*, locator,
// click/fill/press, expect(...).to_be_visible()/to_have_url()), so a
// handful of regular expressions covers the whole recognized grammar.
package importer

// ActionKind names the recognized driver-call shapes (spec §4.6's mapping
// table).
type ActionKind string

const (
	ActionGoto          ActionKind = "goto"
	ActionClick         ActionKind = "click"
	ActionDblClick      ActionKind = "dblclick"
	ActionFill          ActionKind = "fill"
	ActionPress         ActionKind = "press"
	ActionCheck         ActionKind = "check"
	ActionUncheck       ActionKind = "uncheck"
	ActionExpectVisible ActionKind = "expectVisible"
	ActionExpectURL     ActionKind = "expectUrl"
)

// LocatorLink is one call in a locator chain. The recognizer stores the
// whole call expression as written in Method (e.g.
// `get_by_role("button", name="Sign in")`, arguments included) and leaves
// Args empty; a recognized statement yields a chain of exactly one link.
type LocatorLink struct {
	Method string
	Args   []string
}

// RawAction is one synthesized record per recognized driver call (spec
// §3's "RawAction (Importer intermediate)"): its kind, the locator chain
// that targeted it (empty for goto/expectUrl), and the source line it came
// from. The recognizer does not populate KeywordArgs: keyword arguments
// such as get_by_role's `name=` stay inside the locator link's call text.
type RawAction struct {
	Kind      ActionKind
	Locator   []LocatorLink
	Value     string // fill's value, press's key, goto/expectUrl's url
	KeywordArgs map[string]string
	Line      int
	Source    string
}

// Severity mirrors internal/lint's two-level scheme; the Importer only
// ever emits warnings (spec §4.6: "Unknown call shapes produce a warning
// diagnostic").
type Severity string

const SeverityWarning Severity = "warning"

// Diagnostic reports one recognition problem: an unrecognized statement
// shape, or a likely-secret field detected during conversion.
type Diagnostic struct {
	Line     int
	Source   string
	Severity Severity
	Message  string
}
