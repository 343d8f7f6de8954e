package importer

import (
	"testing"

	"github.com/flowcap/flowcap/internal/config"
	"github.com/flowcap/flowcap/internal/lint"
	"github.com/flowcap/flowcap/internal/scenario"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const signInScript = `page.goto("https://example.com/login")
page.get_by_label("Email").fill("u@e.com")
page.get_by_label("Password").fill("p@ss")
page.get_by_role("button", name="Sign in").click()
`

func TestConvertSignInScriptProducesExpectedSteps(t *testing.T) {
	sc, diags, err := Convert(signInScript, ConvertOptions{Importer: config.DefaultConfig().Importer})
	require.NoError(t, err)

	flat := scenario.Flatten(sc.Steps)
	require.Len(t, flat, 4)

	assert.Equal(t, "goto", flat[0].Step.Type)
	assert.Equal(t, "navigate-to-example", flat[0].Step.Name)

	assert.Equal(t, "fill", flat[1].Step.Type)
	assert.Equal(t, "fill-email", flat[1].Step.Name)
	assert.False(t, flat[1].Step.Secret)

	assert.Equal(t, "fill", flat[2].Step.Type)
	assert.Equal(t, "fill-password", flat[2].Step.Name)
	assert.True(t, flat[2].Step.Secret)

	assert.Equal(t, "click", flat[3].Step.Type)
	assert.Equal(t, "click-sign-in", flat[3].Step.Name)

	var clickParams targetParams
	require.NoError(t, flat[3].Step.Decode(&clickParams))
	assert.Equal(t, scenario.ByRole, clickParams.By.Kind)
	assert.Equal(t, "button", clickParams.By.Role)
	assert.Equal(t, "Sign in", clickParams.By.Name)

	require.Len(t, diags, 1, "only the password fill should produce a diagnostic: %+v", diags)
	assert.Equal(t, SeverityWarning, diags[0].Severity)
	assert.Contains(t, diags[0].Message, "fill-password")
	for _, d := range diags {
		assert.NotContains(t, d.Message, "unrecognized statement", "password field should not also warn as unrecognized: %+v", d)
	}
}

func TestConvertLintEmitsNoWarnings(t *testing.T) {
	sc, _, err := Convert(signInScript, ConvertOptions{Importer: config.DefaultConfig().Importer})
	require.NoError(t, err)

	require.NoError(t, sc.Validate())

	for _, d := range lint.Lint(sc) {
		assert.NotEqual(t, lint.SeverityWarning, d.Severity, "unexpected lint warning: %+v", d)
	}
}

func TestConvertDetectsUnrecognizedStatementAsLogStep(t *testing.T) {
	source := `page.goto("https://example.com/login")
page.hover(".menu")
`
	sc, diags, err := Convert(source, ConvertOptions{Importer: config.DefaultConfig().Importer})
	require.NoError(t, err)

	require.Len(t, diags, 1)
	assert.Contains(t, diags[0].Message, "unrecognized statement")

	flat := scenario.Flatten(sc.Steps)
	var sawLog bool
	for _, fs := range flat {
		if fs.Step.Type == "log" {
			sawLog = true
		}
	}
	assert.True(t, sawLog)
}

func TestConvertWithExpectsInsertsExpectVisibleAfterDeterministicInteraction(t *testing.T) {
	source := `page.goto("https://example.com/login")
page.get_by_test_id("save-btn").click()
`
	sc, _, err := Convert(source, ConvertOptions{WithExpects: true, Importer: config.DefaultConfig().Importer})
	require.NoError(t, err)

	flat := scenario.Flatten(sc.Steps)
	require.Len(t, flat, 3)
	assert.Equal(t, "goto", flat[0].Step.Type)
	assert.Equal(t, "click", flat[1].Step.Type)
	assert.Equal(t, "expectVisible", flat[2].Step.Type)
}

func TestConvertWithExpectsSkipsNonDeterministicLocator(t *testing.T) {
	source := `page.goto("https://example.com/login")
page.locator(".btn-save").click()
`
	sc, _, err := Convert(source, ConvertOptions{WithExpects: true, Importer: config.DefaultConfig().Importer})
	require.NoError(t, err)

	flat := scenario.Flatten(sc.Steps)
	require.Len(t, flat, 2)
}

func TestNameCollisionsGetNumberedSuffix(t *testing.T) {
	n := newNamer()
	assert.Equal(t, "click-save", n.name(ActionClick, "save"))
	assert.Equal(t, "click-save-2", n.name(ActionClick, "save"))
	assert.Equal(t, "click-save-3", n.name(ActionClick, "save"))
}

func TestNormalizeIsIdempotent(t *testing.T) {
	once := normalize(`css=  .btn-save  `)
	twice := normalize(once)
	assert.Equal(t, once, twice)
	assert.Equal(t, ".btn-save", once)
}

func TestParseSkipsBoilerplateAndComments(t *testing.T) {
	source := `from playwright.sync_api import sync_playwright
# this is a comment
with sync_playwright() as p:
    browser = p.chromium.launch()
    page = browser.new_page()
    page.goto("https://example.com")
    browser.close()
`
	actions, diags := Parse(source)
	require.Len(t, actions, 1)
	assert.Equal(t, ActionGoto, actions[0].Kind)
	assert.Empty(t, diags)
}
