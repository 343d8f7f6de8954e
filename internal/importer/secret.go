package importer

import (
	"strings"

	"github.com/flowcap/flowcap/internal/scenario"
)

// passwordKeywords mirrors internal/lint's list (English terms plus one
// localized equivalent); kept as its own copy rather than a shared
// dependency since the Importer's secret detection and the Linter's
// missing-secret rule are two independent heuristics over the same
// vocabulary, not one shared component (spec §4.2 and §4.6 each specify
// their own check).
var passwordKeywords = []string{"password", "secret", "token", "contraseña"}

// looksLikeSecret inspects a fill's selector identity and reports whether
// it matches the password-keyword vocabulary (spec §4.6's "Secret
// detection").
func looksLikeSecret(by scenario.By) bool {
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
