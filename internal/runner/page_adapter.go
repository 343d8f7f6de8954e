package runner

import (
	"context"
	"sync"

	"github.com/flowcap/flowcap/internal/driver"
	"github.com/flowcap/flowcap/internal/scenario"
	"github.com/flowcap/flowcap/internal/selector"
	"github.com/flowcap/flowcap/internal/stepregistry"
)

// pageAdapter composes a driver.Page with a selector.Resolver to satisfy
// stepregistry.Page in full. driver.Page already implements every method
// of that interface except Resolve — deliberately, since the Resolver's
// strictness/fallback/healing algebra belongs to internal/selector, not
// the driver (internal/selector/resolver.go's own doc comment). This is
// the one missing piece of plumbing the architecture calls for.
type pageAdapter struct {
	*driver.Page
	resolver *selector.Resolver

	mu         sync.Mutex
	diagnostic *selector.Diagnostic
}

func newPageAdapter(p *driver.Page) *pageAdapter {
	return &pageAdapter{Page: p, resolver: selector.New(p)}
}

// Resolve implements stepregistry.Page by delegating to the Resolver and
// stashing its Diagnostic (if any) for the Runner to read after the step
// finishes, surfacing fallback/healing notes on the StepResult (spec E2).
func (a *pageAdapter) Resolve(ctx context.Context, by scenario.By, opts stepregistry.ResolveOptions) (stepregistry.Element, error) {
	el, diag, err := a.resolver.Resolve(ctx, by, opts)
	a.mu.Lock()
	a.diagnostic = diag
	a.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return el, nil
}

// takeDiagnostic returns and clears the diagnostic recorded by the most
// recent Resolve call, so a second step's Resolve can't be misattributed
// to the first step's result.
func (a *pageAdapter) takeDiagnostic() *selector.Diagnostic {
	a.mu.Lock()
	defer a.mu.Unlock()
	d := a.diagnostic
	a.diagnostic = nil
	return d
}

func diagnosticNote(d *selector.Diagnostic) string {
	if d == nil {
		return ""
	}
	if d.Fallback != "" {
		return "fell back to " + d.Fallback
	}
	if d.HealedVia != "" {
		return "healed via " + d.HealedVia
	}
	return ""
}
