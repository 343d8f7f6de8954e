package importer

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/flowcap/flowcap/internal/scenario"
)

var verbForKind = map[ActionKind]string{
	ActionGoto:          "navigate-to",
	ActionClick:         "click",
	ActionDblClick:      "double-click",
	ActionFill:          "fill",
	ActionPress:         "press",
	ActionCheck:         "check",
	ActionUncheck:       "uncheck",
	ActionExpectVisible: "expect-visible",
	ActionExpectURL:     "expect-url",
}

var reNonKebab = regexp.MustCompile(`[^a-z0-9]+`)

// kebab lowercases s and collapses every run of non-alphanumeric
// characters into a single hyphen, trimming leading/trailing hyphens
// (spec §4.6 Property 3: "ASCII alphanumerics with hyphens").
func kebab(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = reNonKebab.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// objectFromBy derives the "object" half of a verb-object name from a
// resolved selector, preferring the most discriminating part: test-id,
// then role's accessible name (or the role itself if unnamed), then
// label, then placeholder, then visible text truncated to 30 chars (spec
// §4.6's auto-naming priority order).
func objectFromBy(by scenario.By) string {
	switch by.Kind {
	case scenario.ByTestID:
		return kebab(by.TestID)
	case scenario.ByRole:
		if by.Name != "" {
			return kebab(by.Name)
		}
		return kebab(by.Role)
	case scenario.ByLabel:
		return kebab(by.Label)
	case scenario.ByPlaceholder:
		return kebab(by.Placeholder)
	case scenario.ByText:
		return kebab(truncate(by.Text, 30))
	case scenario.ByCSS:
		return kebab(by.CSS)
	default:
		return "target"
	}
}

// objectFromURL derives the object half for goto/expectUrl from the
// URL's registrable domain label (spec's own roundtrip example names
// `https://example.com/login` "navigate-to-example", not
// "navigate-to-login").
func objectFromURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		segs := strings.Split(strings.Trim(raw, "/"), "/")
		return kebab(segs[len(segs)-1])
	}
	host := strings.TrimPrefix(u.Host, "www.")
	labels := strings.Split(host, ".")
	return kebab(labels[0])
}

// namer assigns unique, shape-conformant names across one conversion run.
type namer struct {
	used map[string]int
}

func newNamer() *namer { return &namer{used: make(map[string]int)} }

// name builds "<verb>-<object>" and disambiguates collisions with a
// "-2", "-3", ... suffix (spec §4.6).
func (n *namer) name(kind ActionKind, object string) string {
	verb := verbForKind[kind]
	if verb == "" {
		verb = string(kind)
	}
	if object == "" {
		object = "target"
	}
	base := verb + "-" + object

	count := n.used[base]
	n.used[base] = count + 1
	if count == 0 {
		return base
	}
	return base + "-" + strconv.Itoa(count+1)
}
