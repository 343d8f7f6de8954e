// Package lint implements the Linter (spec §4.2): a pure function from a
// parsed Scenario to a list of diagnostics. It never raises — a scenario
// with lint findings is still runnable; findings are advisory.
package lint

import (
	"fmt"
	"strings"

	"github.com/flowcap/flowcap/internal/scenario"
)

// Severity classifies a Diagnostic (spec §4.2's rule table).
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
)

// Rule ids, one per row of spec §4.2's table.
const (
	RuleTextOnlySelector  = "text-only-selector"
	RuleMissingAnyFallback = "missing-any-fallback"
	RuleMissingSecret     = "missing-secret"
)

// Diagnostic reports one lint finding: the step it concerns, its source
// line, severity, rule id, and a human-readable message (spec §4.2).
type Diagnostic struct {
	StepName  string
	StepIndex int
	Line      int
	Severity  Severity
	Rule      string
	Message   string
}

// interactionStepTypes are the built-in steps spec §4.2's "missing
// any-fallback" rule applies to: the ones that act on a resolved element,
// as opposed to waits, assertions, or capture steps.
var interactionStepTypes = map[string]bool{
	"click": true, "dblclick": true, "fill": true, "press": true,
	"check": true, "uncheck": true, "selectOption": true,
}

// passwordKeywords back the "missing secret" rule (spec §4.2): English
// terms plus one localized equivalent, matched case-insensitively against
// a fill step's selector identity.
var passwordKeywords = []string{"password", "secret", "token", "contraseña"}

// byProbe recovers just the "by" field a step payload carries, ignoring
// every other field; steps with no "by" key (waits with only a URL, debug
// steps, etc.) simply fail to decode a populated By and are skipped.
type byProbe struct {
	By scenario.By `yaml:"by"`
}

// Lint runs every rule over sc's flattened step list and returns the
// findings in step order.
func Lint(sc *scenario.Scenario) []Diagnostic {
	var diags []Diagnostic
	for i, fs := range scenario.Flatten(sc.Steps) {
		st := fs.Step
		by, ok := stepBy(st)
		if !ok {
			continue
		}

		diags = append(diags, textOnlySelectorDiagnostics(st, i, by)...)

		if interactionStepTypes[st.Type] && by.IsSingle() && by.Kind != scenario.ByTestID {
			diags = append(diags, Diagnostic{
				StepName: st.Name, StepIndex: i, Line: st.Line, Severity: SeverityInfo,
				Rule: RuleMissingAnyFallback,
				Message: fmt.Sprintf("%s step %q resolves via a single %s selector with no `any` fallback", st.Type, st.Name, by.Kind),
			})
		}

		if st.Type == "fill" && !st.Secret && matchesPasswordKeyword(by) {
			diags = append(diags, Diagnostic{
				StepName: st.Name, StepIndex: i, Line: st.Line, Severity: SeverityWarning,
				Rule: RuleMissingSecret,
				Message: fmt.Sprintf("fill step %q targets what looks like a password field but is not marked secret: true", st.Name),
			})
		}
	}
	return diags
}

func stepBy(st scenario.Step) (scenario.By, bool) {
	if st.IsSection() || st.Payload == nil {
		return scenario.By{}, false
	}
	var p byProbe
	if err := st.Payload.Decode(&p); err != nil || p.By.Kind == "" {
		return scenario.By{}, false
	}
	return p.By, true
}

// textOnlySelectorDiagnostics flags every ByText use in by, including
// candidates nested inside an `any` list (spec: "text(v) used outside
// css.text / role.name").
func textOnlySelectorDiagnostics(st scenario.Step, index int, by scenario.By) []Diagnostic {
	var out []Diagnostic
	var walk func(scenario.By)
	walk = func(b scenario.By) {
		if b.Kind == scenario.ByText {
			out = append(out, Diagnostic{
				StepName: st.Name, StepIndex: index, Line: st.Line, Severity: SeverityWarning,
				Rule:    RuleTextOnlySelector,
				Message: fmt.Sprintf("%s step %q matches by visible text alone, which breaks under copy changes", st.Type, st.Name),
			})
		}
		for _, c := range b.Any {
			walk(c)
		}
	}
	walk(by)
	return out
}

func matchesPasswordKeyword(by scenario.By) bool {
	candidates := []string{by.Label, by.Placeholder, by.Name, by.TestID, by.CSS, by.Text}
	for _, c := range candidates {
		lower := strings.ToLower(c)
		for _, kw := range passwordKeywords {
			if strings.Contains(lower, kw) {
				return true
			}
		}
	}
	return false
}
