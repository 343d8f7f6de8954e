package steps

import (
	"github.com/flowcap/flowcap/internal/scenario"
	"github.com/flowcap/flowcap/internal/stepregistry"
)

// target is embedded by every step payload that resolves a single element:
// a By expression plus the optional strict override (spec §4.1's "strict
// is only permitted on single-selector steps").
type target struct {
	By     scenario.By `yaml:"by"`
	Strict *bool       `yaml:"strict"`
}

// resolveOptions builds the ResolveOptions a target's strict override (or
// the strict-by-default rule) and the scenario's healing mode combine
// into, honoring the Runner-supplied per-step timeout (spec §4.3's
// "Timing" clause).
func resolveOptions(ec *stepregistry.ExecContext, t target) stepregistry.ResolveOptions {
	strict := true
	if t.Strict != nil {
		strict = *t.Strict
	}
	timeout := 5.0
	if ec.StepTimeout != nil {
		timeout = ec.StepTimeout()
	}
	return stepregistry.ResolveOptions{Strict: strict, TimeoutSeconds: timeout, Healing: ec.Healing}
}

func (t target) resolve(ec *stepregistry.ExecContext) (stepregistry.Element, error) {
	return ec.Page.Resolve(ec, t.By, resolveOptions(ec, t))
}

// resolveWithTimeout overrides the per-call timeout, used by waitForHidden
// to probe quickly rather than burn the whole step budget waiting for
// visibility it expects never to arrive.
func (t target) resolveWithTimeout(ec *stepregistry.ExecContext, timeoutSeconds float64) (stepregistry.Element, error) {
	opts := resolveOptions(ec, t)
	opts.TimeoutSeconds = timeoutSeconds
	return ec.Page.Resolve(ec, t.By, opts)
}
