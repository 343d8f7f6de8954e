package runner

import (
	"testing"

	"github.com/flowcap/flowcap/internal/logging"
	"github.com/flowcap/flowcap/internal/scenario"
	"github.com/flowcap/flowcap/internal/selector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestScreenshotExt(t *testing.T) {
	assert.Equal(t, "jpg", screenshotExt(scenario.FormatJPEG))
	assert.Equal(t, "png", screenshotExt(scenario.FormatPNG))
	assert.Equal(t, "png", screenshotExt(""))
}

func TestToLoggingCategoriesConvertsKeysAndNil(t *testing.T) {
	assert.Nil(t, toLoggingCategories(nil))

	out := toLoggingCategories(map[string]bool{"runner": true, "resolver": false})
	assert.Equal(t, map[logging.Category]bool{
		logging.CategoryRunner:   true,
		logging.CategoryResolver: false,
	}, out)
}

func TestDiagnosticNote(t *testing.T) {
	assert.Equal(t, "", diagnosticNote(nil))
	assert.Equal(t, "fell back to css(.btn-save)", diagnosticNote(&selector.Diagnostic{Fallback: "css(.btn-save)"}))
	assert.Equal(t, "healed via accessible name search", diagnosticNote(&selector.Diagnostic{HealedVia: "accessible name search"}))
}

func parseScenario(t *testing.T, yml string) *scenario.Scenario {
	t.Helper()
	var sc scenario.Scenario
	require.NoError(t, yaml.Unmarshal([]byte(yml), &sc))
	return &sc
}

func TestSecretVarNamesCollectsOnlySecretSteps(t *testing.T) {
	sc := parseScenario(t, `
title: t
baseUrl: https://example.com
steps:
  - storeText: {by: {testId: total}, as: total, secret: false}
  - storeText: {by: {testId: password}, as: pw, secret: true}
  - storeAttr: {by: {testId: token}, attr: value, as: token, secret: true}
`)

	secrets := secretVarNames(sc)
	assert.False(t, secrets["total"])
	assert.True(t, secrets["pw"])
	assert.True(t, secrets["token"])
}
