package lint

import (
	"testing"

	"github.com/flowcap/flowcap/internal/scenario"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func parse(t *testing.T, yml string) *scenario.Scenario {
	t.Helper()
	var sc scenario.Scenario
	require.NoError(t, yaml.Unmarshal([]byte(yml), &sc))
	return &sc
}

func TestLintFlagsTextOnlySelector(t *testing.T) {
	sc := parse(t, `
title: t
baseUrl: https://example.com
steps:
  - click: {by: {text: "Submit"}}
`)
	diags := Lint(sc)
	require.NotEmpty(t, diags)
	assert.Equal(t, RuleTextOnlySelector, diags[0].Rule)
	assert.Equal(t, SeverityWarning, diags[0].Severity)
}

func TestLintFlagsTextOnlySelectorInsideAny(t *testing.T) {
	sc := parse(t, `
title: t
baseUrl: https://example.com
steps:
  - click: {by: {any: [{testId: save}, {text: "Save"}]}}
`)
	diags := Lint(sc)
	var found bool
	for _, d := range diags {
		if d.Rule == RuleTextOnlySelector {
			found = true
		}
	}
	assert.True(t, found)
}

func TestLintFlagsMissingAnyFallbackOnSingleNonTestIDSelector(t *testing.T) {
	sc := parse(t, `
title: t
baseUrl: https://example.com
steps:
  - click: {by: {css: ".btn-save"}}
`)
	diags := Lint(sc)
	require.Len(t, diags, 1)
	assert.Equal(t, RuleMissingAnyFallback, diags[0].Rule)
	assert.Equal(t, SeverityInfo, diags[0].Severity)
}

func TestLintDoesNotFlagMissingAnyFallbackForTestID(t *testing.T) {
	sc := parse(t, `
title: t
baseUrl: https://example.com
steps:
  - click: {by: {testId: save}}
`)
	assert.Empty(t, Lint(sc))
}

func TestLintDoesNotFlagMissingAnyFallbackWhenAnyIsUsed(t *testing.T) {
	sc := parse(t, `
title: t
baseUrl: https://example.com
steps:
  - click: {by: {any: [{testId: save}, {role: button, name: Save}]}}
`)
	assert.Empty(t, Lint(sc))
}

func TestLintFlagsMissingSecretOnPasswordLikeFill(t *testing.T) {
	sc := parse(t, `
title: t
baseUrl: https://example.com
steps:
  - fill: {by: {label: Password}, value: "x"}
`)
	diags := Lint(sc)
	var found bool
	for _, d := range diags {
		if d.Rule == RuleMissingSecret {
			found = true
		}
	}
	assert.True(t, found)
}

func TestLintDoesNotFlagMissingSecretWhenAlreadyMarked(t *testing.T) {
	sc := parse(t, `
title: t
baseUrl: https://example.com
steps:
  - fill: {by: {label: Password}, value: "x", secret: true}
`)
	diags := Lint(sc)
	for _, d := range diags {
		assert.NotEqual(t, RuleMissingSecret, d.Rule)
	}
}

func TestLintRoundtripScenarioHasNoWarnings(t *testing.T) {
	sc := parse(t, `
title: navigate-and-sign-in
baseUrl: https://example.com
steps:
  - goto: {url: "https://example.com/login"}
  - fill: {by: {label: Email}, value: "u@e.com"}
  - fill: {by: {label: Password}, value: "p@ss", secret: true}
  - click: {by: {role: button, name: "Sign in"}}
`)
	diags := Lint(sc)
	for _, d := range diags {
		assert.NotEqual(t, SeverityWarning, d.Severity, "unexpected warning: %+v", d)
	}
}
