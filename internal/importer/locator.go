package importer

import (
	"regexp"
	"strings"

	"github.com/flowcap/flowcap/internal/scenario"
)

var (
	reGetByRole        = regexp.MustCompile(`^get_by_role\(\s*["']([^"']+)["'](?:\s*,\s*name\s*=\s*["']([^"']*)["'])?\s*\)$`)
	reGetByTestID      = regexp.MustCompile(`^get_by_test_id\(\s*["']([^"']+)["']\s*\)$`)
	reGetByLabel       = regexp.MustCompile(`^get_by_label\(\s*["']([^"']+)["']\s*\)$`)
	reGetByPlaceholder = regexp.MustCompile(`^get_by_placeholder\(\s*["']([^"']+)["']\s*\)$`)
	reGetByText        = regexp.MustCompile(`^get_by_text\(\s*["']([^"']+)["']\s*\)$`)
	reLocator          = regexp.MustCompile(`^locator\(\s*["']([^"']+)["']\s*\)$`)
)

// parseLocator converts one locator-call expression (the text between
// "page." and the trailing action call, e.g. `get_by_role("button",
// name="Sign in")`) into its By equivalent, per spec §4.6's mapping
// table. ok is false for a call shape this recognizer doesn't know.
func parseLocator(expr string) (scenario.By, bool) {
	expr = strings.TrimSpace(expr)

	if m := reGetByRole.FindStringSubmatch(expr); m != nil {
		return scenario.By{Kind: scenario.ByRole, Role: m[1], Name: m[2]}, true
	}
	if m := reGetByTestID.FindStringSubmatch(expr); m != nil {
		return scenario.By{Kind: scenario.ByTestID, TestID: normalize(m[1])}, true
	}
	if m := reGetByLabel.FindStringSubmatch(expr); m != nil {
		return scenario.By{Kind: scenario.ByLabel, Label: normalize(m[1])}, true
	}
	if m := reGetByPlaceholder.FindStringSubmatch(expr); m != nil {
		return scenario.By{Kind: scenario.ByPlaceholder, Placeholder: normalize(m[1])}, true
	}
	if m := reGetByText.FindStringSubmatch(expr); m != nil {
		return scenario.By{Kind: scenario.ByText, Text: normalize(m[1])}, true
	}
	if m := reLocator.FindStringSubmatch(expr); m != nil {
		return scenario.By{Kind: scenario.ByCSS, CSS: normalize(m[1])}, true
	}
	return scenario.By{}, false
}

// normalize applies spec §4.6's locator normalization: strip a redundant
// "css=" prefix, collapse surrounding whitespace, stable-quote (callers
// re-quote when rendering). Idempotent: normalize(normalize(s)) ==
// normalize(s).
func normalize(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "css=")
	s = strings.TrimSpace(s)
	for strings.Contains(s, "  ") {
		s = strings.ReplaceAll(s, "  ", " ")
	}
	return s
}
