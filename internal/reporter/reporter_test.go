package reporter

import (
	"encoding/json"
	"encoding/xml"
	"os"
	"testing"
	"time"

	"github.com/flowcap/flowcap/internal/artifact"
	"github.com/flowcap/flowcap/internal/scenario"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult() *scenario.ScenarioResult {
	return &scenario.ScenarioResult{
		Title:  "sign-in",
		Status: scenario.ScenarioFailed,
		Steps: []scenario.StepResult{
			{Index: 0, Name: "go-to-login", Type: "goto", Section: "setup", Status: scenario.StepPassed, Duration: 120 * time.Millisecond},
			{
				Index: 1, Name: "check-welcome-banner", Type: "expectText", Section: "assertions",
				Status: scenario.StepFailed, Duration: 80 * time.Millisecond,
				Error: `expectText: testId("banner") has text "Hello Guest", want "Hello Alice"`,
				Expected: "Hello Alice", Actual: "Hello Guest",
				Diagnostic: "fell back to css(.banner)",
			},
		},
		StartedAt: time.Date(2026, 3, 5, 14, 30, 0, 0, time.UTC),
		Duration:  200 * time.Millisecond,
		RunDir:    "/runs/run-20260305-143000",
	}
}

func TestRenderJSONRoundtrips(t *testing.T) {
	data, err := RenderJSON(sampleResult())
	require.NoError(t, err)

	var out scenario.ScenarioResult
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, "sign-in", out.Title)
	assert.Equal(t, scenario.ScenarioFailed, out.Status)
	require.Len(t, out.Steps, 2)
	assert.Equal(t, "Hello Alice", out.Steps[1].Expected)
	assert.Equal(t, "Hello Guest", out.Steps[1].Actual)
}

func TestRenderJUnitCountsFailures(t *testing.T) {
	data, err := RenderJUnit(sampleResult())
	require.NoError(t, err)

	var suite junitSuite
	require.NoError(t, xml.Unmarshal(data, &suite))
	assert.Equal(t, 2, suite.Tests)
	assert.Equal(t, 1, suite.Failures)
	require.Len(t, suite.Cases, 2)
	assert.NotNil(t, suite.Cases[1].Failure)
	assert.Contains(t, suite.Cases[1].Failure.Message, "Hello Alice")
	assert.Nil(t, suite.Cases[0].Failure)
}

func TestRenderHTMLIncludesFailurePanelAndDiff(t *testing.T) {
	out := RenderHTML(sampleResult())

	assert.Contains(t, out, "sign-in")
	assert.Contains(t, out, "setup")
	assert.Contains(t, out, "assertions")
	assert.Contains(t, out, "fell back to css(.banner)")
	assert.Contains(t, out, "diff-del")
	assert.Contains(t, out, "diff-ins")
	assert.Contains(t, out, "Guest")
	assert.Contains(t, out, "Alice")
}

func TestRenderWritesAllThreeFiles(t *testing.T) {
	root := t.TempDir()
	mgr, err := artifact.New(root, time.Date(2026, 3, 5, 14, 30, 0, 0, time.UTC))
	require.NoError(t, err)

	require.NoError(t, Render(mgr, sampleResult()))

	for _, path := range []string{mgr.JSONReportPath(), mgr.HTMLReportPath(), mgr.JUnitReportPath()} {
		_, statErr := os.Stat(path)
		require.NoError(t, statErr, path)
	}
}
