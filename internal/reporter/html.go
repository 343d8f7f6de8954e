package reporter

import (
	"fmt"
	"html"
	"strings"

	"github.com/flowcap/flowcap/internal/diff"
	"github.com/flowcap/flowcap/internal/scenario"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// RenderHTML renders result as a single self-contained HTML page: one row
// per step grouped under its section heading, duration, the selector
// Resolver's fallback note if any, and an expanded failure panel for any
// failed step showing its error message. StepResult has no selector field,
// so the panel shows the failing selector only where the error message
// itself names it. Comparison-assertion failures additionally
// get a word-level diff between expected and actual, adapted from
// internal/diff's line-diff engine.
func RenderHTML(result *scenario.ScenarioResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "<!DOCTYPE html>\n<html><head><meta charset=\"utf-8\"><title>%s</title>\n", html.EscapeString(result.Title))
	b.WriteString(htmlStyle)
	b.WriteString("</head><body>\n")

	fmt.Fprintf(&b, "<h1>%s <span class=\"status %s\">%s</span></h1>\n", html.EscapeString(result.Title), result.Status, result.Status)
	fmt.Fprintf(&b, "<p class=\"meta\">started %s &middot; duration %s &middot; run dir %s</p>\n",
		html.EscapeString(result.StartedAt.Format("2006-01-02 15:04:05")), result.Duration, html.EscapeString(result.RunDir))

	section := ""
	for _, sr := range result.Steps {
		if sr.Section != section {
			section = sr.Section
			if section != "" {
				fmt.Fprintf(&b, "<h2>%s</h2>\n", html.EscapeString(section))
			}
		}
		renderStep(&b, sr)
	}

	b.WriteString("</body></html>\n")
	return b.String()
}

func renderStep(b *strings.Builder, sr scenario.StepResult) {
	fmt.Fprintf(b, "<div class=\"step %s\">\n", sr.Status)
	fmt.Fprintf(b, "  <div class=\"step-head\"><span class=\"idx\">%04d</span> <span class=\"name\">%s</span> "+
		"<span class=\"type\">%s</span> <span class=\"duration\">%s</span> <span class=\"badge\">%s</span></div>\n",
		sr.Index, html.EscapeString(sr.Name), html.EscapeString(sr.Type), sr.Duration, sr.Status)

	if sr.Diagnostic != "" {
		fmt.Fprintf(b, "  <div class=\"diagnostic\">%s</div>\n", html.EscapeString(sr.Diagnostic))
	}

	if sr.Status == scenario.StepFailed {
		b.WriteString("  <div class=\"failure\">\n")
		fmt.Fprintf(b, "    <div class=\"error\">%s</div>\n", html.EscapeString(sr.Error))
		if sr.Expected != "" || sr.Actual != "" {
			renderValueDiff(b, sr.Expected, sr.Actual)
		}
		b.WriteString("  </div>\n")
	}

	if sr.ScreenshotBefore != "" {
		fmt.Fprintf(b, "  <a class=\"shot\" href=\"%s\">before</a>\n", html.EscapeString(sr.ScreenshotBefore))
	}
	if sr.ScreenshotAfter != "" {
		fmt.Fprintf(b, "  <a class=\"shot\" href=\"%s\">after</a>\n", html.EscapeString(sr.ScreenshotAfter))
	}

	b.WriteString("</div>\n")
}

// renderValueDiff renders expected/actual as two lines, each with the
// word-level differences from the other highlighted, using
// diff.DefaultEngine.ComputeWordLevelDiff (internal/diff, adapted here
// from its original line-diff-engine role into per-field highlighting).
func renderValueDiff(b *strings.Builder, expected, actual string) {
	diffs := diff.DefaultEngine.ComputeWordLevelDiff(actual, expected)

	var actualLine, expectedLine strings.Builder
	for _, d := range diffs {
		text := html.EscapeString(d.Text)
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			actualLine.WriteString(text)
			expectedLine.WriteString(text)
		case diffmatchpatch.DiffDelete:
			actualLine.WriteString("<span class=\"diff-del\">" + text + "</span>")
		case diffmatchpatch.DiffInsert:
			expectedLine.WriteString("<span class=\"diff-ins\">" + text + "</span>")
		}
	}

	fmt.Fprintf(b, "    <div class=\"diff\"><div class=\"diff-row\"><span class=\"diff-label\">actual</span>%s</div>"+
		"<div class=\"diff-row\"><span class=\"diff-label\">expected</span>%s</div></div>\n",
		actualLine.String(), expectedLine.String())
}

const htmlStyle = `<style>
body { font-family: -apple-system, sans-serif; margin: 2rem; color: #1a1a1a; }
h1 { font-size: 1.4rem; }
.status.passed { color: #1a7f37; }
.status.failed { color: #cf222e; }
.meta { color: #57606a; font-size: 0.85rem; }
.step { border: 1px solid #d0d7de; border-radius: 6px; padding: 0.5rem 0.75rem; margin: 0.4rem 0; }
.step.failed { border-color: #cf222e; background: #fff5f5; }
.step-head { display: flex; gap: 0.6rem; font-size: 0.9rem; }
.idx { color: #57606a; }
.type { color: #57606a; font-style: italic; }
.duration { color: #57606a; margin-left: auto; }
.badge { text-transform: uppercase; font-size: 0.7rem; }
.diagnostic { font-size: 0.8rem; color: #9a6700; }
.failure { margin-top: 0.4rem; }
.error { font-family: monospace; white-space: pre-wrap; color: #cf222e; }
.diff { font-family: monospace; margin-top: 0.3rem; font-size: 0.85rem; }
.diff-row { white-space: pre-wrap; }
.diff-label { display: inline-block; width: 5rem; color: #57606a; }
.diff-del { background: #ffebe9; text-decoration: line-through; }
.diff-ins { background: #dafbe1; }
.shot { margin-right: 0.5rem; font-size: 0.8rem; }
</style>
`
