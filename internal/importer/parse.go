package importer

import (
	"regexp"
	"strings"
)

var (
	reGoto = regexp.MustCompile(`^page\.goto\(\s*["']([^"']+)["']\s*\)$`)

	// reLocatorAction matches `page.<locator-call>.<action>()`, zero-arg
	// actions only (click/dblclick/check/uncheck).
	reLocatorAction = regexp.MustCompile(`^page\.([a-z_]+\([^)]*\))\.(click|dblclick|check|uncheck)\(\)$`)

	// reLocatorValueAction matches `page.<locator-call>.<action>("value")`
	// (fill/press), the only two recognized actions that take an argument.
	reLocatorValueAction = regexp.MustCompile(`^page\.([a-z_]+\([^)]*\))\.(fill|press)\(\s*["']([^"']*)["']\s*\)$`)

	reExpectVisible = regexp.MustCompile(`^expect\(\s*page\.([a-z_]+\([^)]*\))\s*\)\.to_be_visible\(\)$`)
	reExpectURL     = regexp.MustCompile(`^expect\(\s*page\s*\)\.to_have_url\(\s*["']([^"']+)["']\s*\)$`)
)

var actionKindByVerb = map[string]ActionKind{
	"click":    ActionClick,
	"dblclick": ActionDblClick,
	"check":    ActionCheck,
	"uncheck":  ActionUncheck,
	"fill":     ActionFill,
	"press":    ActionPress,
}

// Parse walks source line by line, recognizing one statement per line.
// Blank lines, comments, and import/setup boilerplate are silently
// skipped; a non-blank line that matches none of the recognized shapes
// produces a warning Diagnostic and is otherwise ignored, per spec §4.6's
// "unknown call shapes produce a warning diagnostic ... they do not abort
// the conversion."
func Parse(source string) ([]RawAction, []Diagnostic) {
	var actions []RawAction
	var diags []Diagnostic

	for i, rawLine := range strings.Split(source, "\n") {
		line := strings.TrimSpace(rawLine)
		lineNum := i + 1
		if line == "" || strings.HasPrefix(line, "#") || isBoilerplate(line) {
			continue
		}

		action, ok := recognize(line)
		if !ok {
			diags = append(diags, Diagnostic{
				Line: lineNum, Source: line, Severity: SeverityWarning,
				Message: "unrecognized statement, passed through as a log step",
			})
			continue
		}
		action.Line = lineNum
		action.Source = line
		actions = append(actions, action)
	}

	return actions, diags
}

// isBoilerplate filters the handful of non-action statements real
// recordings open with (imports, `with sync_playwright() as p:`, browser
// and context setup) that carry no driver action to synthesize.
func isBoilerplate(line string) bool {
	for _, prefix := range []string{"import ", "from ", "with ", "def ", "browser", "context", "page =", "page.close", "browser.close"} {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

func recognize(line string) (RawAction, bool) {
	if m := reGoto.FindStringSubmatch(line); m != nil {
		return RawAction{Kind: ActionGoto, Value: m[1]}, true
	}

	if m := reLocatorAction.FindStringSubmatch(line); m != nil {
		kind, ok := actionKindByVerb[m[2]]
		if !ok {
			return RawAction{}, false
		}
		return RawAction{Kind: kind, Locator: []LocatorLink{{Method: m[1]}}}, true
	}

	if m := reLocatorValueAction.FindStringSubmatch(line); m != nil {
		kind, ok := actionKindByVerb[m[2]]
		if !ok {
			return RawAction{}, false
		}
		return RawAction{Kind: kind, Locator: []LocatorLink{{Method: m[1]}}, Value: m[3]}, true
	}

	if m := reExpectVisible.FindStringSubmatch(line); m != nil {
		return RawAction{Kind: ActionExpectVisible, Locator: []LocatorLink{{Method: m[1]}}}, true
	}

	if m := reExpectURL.FindStringSubmatch(line); m != nil {
		return RawAction{Kind: ActionExpectURL, Value: m[1]}, true
	}

	return RawAction{}, false
}
