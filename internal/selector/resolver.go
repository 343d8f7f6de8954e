// Package selector implements the Selector Resolver (spec §4.3): mapping a
// declarative By expression onto a live element handle under a strictness
// discipline, with ordered `any` fallback and optional safe healing.
package selector

import (
	"context"
	"fmt"
	"time"

	"github.com/flowcap/flowcap/internal/driver"
	"github.com/flowcap/flowcap/internal/scenario"
	"github.com/flowcap/flowcap/internal/stepregistry"
)

// Locator is the subset of internal/driver.Page a Resolver needs: one raw
// lookup method per By kind, each returning every DOM match so the
// resolver itself makes the singularity/visibility/timeout decisions.
// driver.Page satisfies this structurally.
type Locator interface {
	FindByTestID(ctx context.Context, id string) ([]stepregistry.Element, error)
	FindByRole(ctx context.Context, role, name string) ([]stepregistry.Element, error)
	FindByLabel(ctx context.Context, text string) ([]stepregistry.Element, error)
	FindByPlaceholder(ctx context.Context, text string) ([]stepregistry.Element, error)
	FindByCSS(ctx context.Context, selector, text string) ([]stepregistry.Element, error)
	FindByText(ctx context.Context, text string) ([]stepregistry.Element, error)
}

const pollInterval = 100 * time.Millisecond

// Diagnostic records how a resolution succeeded, beyond the bare element,
// so the Runner can attach "fell back to css.button.save"-style notes to a
// StepResult (spec E2).
type Diagnostic struct {
	// Fallback names which candidate satisfied an `any` expression, empty
	// for single-selector resolutions.
	Fallback string
	// HealedVia names the healing step that succeeded, empty if healing
	// never ran or never helped.
	HealedVia string
}

// Resolver resolves By expressions against a Locator.
type Resolver struct {
	Locator Locator
}

// New creates a Resolver over loc.
func New(loc Locator) *Resolver {
	return &Resolver{Locator: loc}
}

// Resolve implements the full contract of spec §4.3: single-selector
// strictness, `any` ordered fallback (Property 6/7), and safe healing.
func (r *Resolver) Resolve(ctx context.Context, by scenario.By, opts stepregistry.ResolveOptions) (stepregistry.Element, *Diagnostic, error) {
	if by.Kind == scenario.ByAny {
		return r.resolveAny(ctx, by, opts)
	}
	el, healedVia, err := r.resolveSingle(ctx, by, opts)
	if err != nil {
		return nil, nil, err
	}
	var diag *Diagnostic
	if healedVia != "" {
		diag = &Diagnostic{HealedVia: healedVia}
	}
	return el, diag, nil
}

// resolveSingle resolves one non-`any` By, enforcing strictness and
// applying the healing widening schedule on NoMatch when enabled.
func (r *Resolver) resolveSingle(ctx context.Context, by scenario.By, opts stepregistry.ResolveOptions) (stepregistry.Element, string, error) {
	timeout := opts.TimeoutSeconds
	if timeout <= 0 {
		timeout = 5
	}
	deadline := time.Now().Add(time.Duration(timeout * float64(time.Second)))

	sawMatch := false
	for {
		els, err := r.locate(ctx, by)
		if err != nil {
			return nil, "", &driver.DriverError{Op: "locate " + by.String(), Cause: err}
		}

		if len(els) > 1 && opts.Strict {
			return nil, "", &Ambiguous{By: by, MatchCount: len(els)}
		}

		if len(els) >= 1 {
			sawMatch = true
			candidate := els[0]
			if visible, _ := candidate.Visible(ctx); visible {
				return candidate, "", nil
			}
		}

		if time.Now().After(deadline) {
			break
		}
		if !sleepOrDone(ctx, pollInterval) {
			break
		}
	}

	if sawMatch {
		// Matched but never became visible within the window.
		return nil, "", &Timeout{By: by, TimeoutSeconds: timeout}
	}

	if opts.Healing != scenario.HealingSafe {
		return nil, "", &NoMatch{By: by}
	}

	el, via, err := r.heal(ctx, by)
	if err != nil {
		return nil, "", &NoMatch{By: by, Healed: true}
	}
	return el, via, nil
}

// resolveAny implements the `any` fallback contract: try candidates in
// order, first visible-and-singular match wins (Property 6); record a
// (candidate, reason) pair for every failure (Property 7).
func (r *Resolver) resolveAny(ctx context.Context, by scenario.By, opts stepregistry.ResolveOptions) (stepregistry.Element, *Diagnostic, error) {
	var failures []CandidateFailure
	for _, candidate := range by.Any {
		el, _, err := r.resolveSingle(ctx, candidate, opts)
		if err == nil {
			return el, &Diagnostic{Fallback: candidate.String()}, nil
		}
		failures = append(failures, CandidateFailure{Candidate: candidate, Reason: reasonFor(err)})
	}
	return nil, nil, &AllCandidatesFailed{Failures: failures}
}

func reasonFor(err error) string {
	switch err.(type) {
	case *NoMatch:
		return "no match"
	case *Ambiguous:
		return "multiple matches"
	case *Timeout:
		return "not visible (timeout)"
	default:
		return err.Error()
	}
}

// locate dispatches by.Kind to the matching Locator method.
func (r *Resolver) locate(ctx context.Context, by scenario.By) ([]stepregistry.Element, error) {
	switch by.Kind {
	case scenario.ByTestID:
		return r.Locator.FindByTestID(ctx, by.TestID)
	case scenario.ByRole:
		return r.Locator.FindByRole(ctx, by.Role, by.Name)
	case scenario.ByLabel:
		return r.Locator.FindByLabel(ctx, by.Label)
	case scenario.ByPlaceholder:
		return r.Locator.FindByPlaceholder(ctx, by.Placeholder)
	case scenario.ByCSS:
		return r.Locator.FindByCSS(ctx, by.CSS, by.Text)
	case scenario.ByText:
		return r.Locator.FindByText(ctx, by.Text)
	default:
		return nil, fmt.Errorf("selector: unresolvable by-kind %q", by.Kind)
	}
}

// heal retries a failed single selector with a fixed widening schedule
// (spec §4.3): drop non-identifying filters, then search by the target's
// accessible name, then try the identifying string as both testId and
// label. Each step that yields exactly one visible element wins.
func (r *Resolver) heal(ctx context.Context, by scenario.By) (stepregistry.Element, string, error) {
	identifier, widened := widen(by)
	attempts := []struct {
		name string
		by   scenario.By
	}{
		{"dropped filters", widened},
		{"accessible name search", scenario.By{Kind: scenario.ByText, Text: identifier}},
		{"inferred testId", scenario.By{Kind: scenario.ByTestID, TestID: identifier}},
		{"inferred label", scenario.By{Kind: scenario.ByLabel, Label: identifier}},
	}

	for _, attempt := range attempts {
		if identifier == "" && attempt.name != "dropped filters" {
			continue
		}
		els, err := r.locate(ctx, attempt.by)
		if err != nil || len(els) != 1 {
			continue
		}
		if visible, _ := els[0].Visible(ctx); visible {
			return els[0], attempt.name, nil
		}
	}
	return nil, "", fmt.Errorf("selector: healing exhausted for %s", by)
}

// widen returns the selector's identifying string (the value most likely
// to survive a DOM refactor) and a copy of by with non-identifying filters
// dropped (role's `name`, css's `text`).
func widen(by scenario.By) (string, scenario.By) {
	widened := by
	switch by.Kind {
	case scenario.ByRole:
		widened.Name = ""
		return by.Name, widened
	case scenario.ByCSS:
		widened.Text = ""
		return by.Text, widened
	case scenario.ByLabel:
		return by.Label, widened
	case scenario.ByPlaceholder:
		return by.Placeholder, widened
	case scenario.ByText:
		return by.Text, widened
	case scenario.ByTestID:
		return by.TestID, widened
	default:
		return "", widened
	}
}

// sleepOrDone waits d or until ctx is cancelled, reporting which happened.
func sleepOrDone(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}
