package importer

import (
	"net/url"
	"strings"

	"github.com/flowcap/flowcap/internal/config"
	"github.com/flowcap/flowcap/internal/scenario"
)

var interactionTypes = map[string]bool{
	"click": true, "dblclick": true, "fill": true, "press": true,
	"check": true, "uncheck": true, "selectOption": true,
}

var assertionTypes = map[string]bool{
	"expectVisible": true, "expectHidden": true, "expectText": true, "expectUrl": true,
}

func categoryOf(st scenario.Step) string {
	switch {
	case st.Type == "goto":
		return "navigation"
	case interactionTypes[st.Type]:
		return "interaction"
	case assertionTypes[st.Type]:
		return "assertion"
	default:
		return "other"
	}
}

// applySections partitions steps into advisory Section groups per spec
// §4.6's three heuristics: a new section starts on a URL-changing goto,
// or when a run of interactions is immediately followed by an assertion;
// a section also closes right after a submit-like interaction. Sectioning
// never reorders steps — it only wraps runs of the same slice in Section
// pseudo-steps.
func applySections(cfg config.ImporterConfig, steps []scenario.Step) []scenario.Step {
	if len(steps) == 0 {
		return steps
	}

	var result []scenario.Step
	var current *scenario.Section

	closeCurrent := func() {
		if current != nil && len(current.Steps) > 0 {
			result = append(result, scenario.Step{Type: "section", Section: current})
		}
		current = nil
	}
	startSection := func(title string) {
		closeCurrent()
		current = &scenario.Section{Title: title}
	}

	prevCategory := ""
	prevPath, sawGoto := "", false
	for _, st := range steps {
		cat := categoryOf(st)

		pathChanged := false
		if cat == "navigation" {
			path := ""
			var p gotoParams
			if err := st.Decode(&p); err == nil {
				if u, err := url.Parse(p.URL); err == nil {
					path = u.Path
				}
			}
			pathChanged = !sawGoto || path != prevPath
			prevPath, sawGoto = path, true
		}

		switch {
		case cat == "navigation" && cfg.SectionOnURLChange && pathChanged:
			startSection(gotoSectionTitle(st))
		case prevCategory == "interaction" && cat == "assertion":
			startSection("verification")
		}

		if current == nil {
			startSection("steps")
		}
		current.Steps = append(current.Steps, st)

		if cat == "interaction" && isSubmitLike(cfg, st) {
			closeCurrent()
		}
		prevCategory = cat
	}
	closeCurrent()
	return result
}

func gotoSectionTitle(st scenario.Step) string {
	var p gotoParams
	if err := st.Decode(&p); err != nil {
		return "navigation"
	}
	u, err := url.Parse(p.URL)
	if err != nil || u.Path == "" || u.Path == "/" {
		return "navigation"
	}
	segs := strings.Split(strings.Trim(u.Path, "/"), "/")
	return kebab(segs[len(segs)-1])
}

// isSubmitLike reports whether an interaction step's selector identity
// contains one of cfg's submit-action lexicon entries, case-insensitively
// (spec §4.6's "a sequence of input steps ends with a submit-like
// action").
func isSubmitLike(cfg config.ImporterConfig, st scenario.Step) bool {
	var p targetParams
	if err := st.Decode(&p); err != nil {
		return false
	}
	candidates := []string{p.By.Label, p.By.Name, p.By.Role, p.By.TestID, p.By.CSS, p.By.Text}
	for _, c := range candidates {
		lower := strings.ToLower(c)
		for _, kw := range cfg.SubmitActionLexicon {
			if kw != "" && strings.Contains(lower, strings.ToLower(kw)) {
				return true
			}
		}
	}
	return false
}
