package driver

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// Page wraps a single incognito *rod.Page for the lifetime of one scenario
// run. It exposes navigation, capture, and storage primitives directly
// (satisfying most of stepregistry.Page) plus the raw per-By-kind locator
// methods the selector resolver composes into the strictness/fallback/
// healing algebra (spec §4.3) — Resolve itself is NOT implemented here,
// since that decision logic belongs to internal/selector, not the driver.
type Page struct {
	rodPage *rod.Page
	cfg     Config

	mu            sync.Mutex
	consoleErrors []string
	router        *rod.HijackRouter

	tracing bool
}

// watchConsole installs a RuntimeConsoleAPICalled listener collecting
// error/warning messages, grounded on SessionManager.startEventStream's
// EachEvent(func(ev *proto.RuntimeConsoleAPICalled)) pattern, pared down to
// the single concern a step handler needs: assertNoConsoleError (spec
// §4.4's high-level handler list) and the Reporter's console-error tally.
func (p *Page) watchConsole(ctx context.Context) {
	wait := p.rodPage.Context(ctx).EachEvent(func(ev *proto.RuntimeConsoleAPICalled) {
		if ev.Type != proto.RuntimeConsoleAPICalledTypeError && ev.Type != proto.RuntimeConsoleAPICalledTypeWarning {
			return
		}
		msg := stringifyConsoleArgs(ev.Args)
		p.mu.Lock()
		p.consoleErrors = append(p.consoleErrors, msg)
		p.mu.Unlock()
	})
	go wait()
}

func stringifyConsoleArgs(args []*proto.RuntimeRemoteObject) string {
	parts := make([]string, 0, len(args))
	for _, a := range args {
		if a == nil {
			continue
		}
		if a.Value.Nil() {
			parts = append(parts, a.Description)
			continue
		}
		parts = append(parts, a.Value.String())
	}
	return strings.Join(parts, " ")
}

// ConsoleErrors returns every console error/warning message observed so
// far on this page.
func (p *Page) ConsoleErrors() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.consoleErrors))
	copy(out, p.consoleErrors)
	return out
}

// Goto navigates and then waits, within the navigation timeout, until the
// DOM has stopped changing for 300ms; it does not listen for the
// DOMContentLoaded event itself. Grounded on SessionManager.
// Navigate's page.Context(ctx).Timeout(d).Navigate(url) call shape.
func (p *Page) Goto(ctx context.Context, url string) error {
	if err := p.rodPage.Context(ctx).Timeout(p.cfg.navigationTimeout()).Navigate(url); err != nil {
		return fmt.Errorf("driver: navigate to %s: %w", url, err)
	}
	return p.rodPage.Context(ctx).Timeout(p.cfg.navigationTimeout()).WaitDOMStable(300*time.Millisecond, 0)
}

// Back navigates one entry back in session history.
func (p *Page) Back(ctx context.Context) error {
	return p.rodPage.Context(ctx).NavigateBack()
}

// Reload reloads the current document.
func (p *Page) Reload(ctx context.Context) error {
	return p.rodPage.Context(ctx).Timeout(p.cfg.navigationTimeout()).Reload()
}

// WaitNetworkIdle blocks until no network activity has been observed for a
// quiet window or timeoutSeconds elapses, backing the waitForNetworkIdle
// built-in step (spec §4.4).
func (p *Page) WaitNetworkIdle(ctx context.Context, timeoutSeconds float64) error {
	d := time.Duration(timeoutSeconds * float64(time.Second))
	wait := p.rodPage.Context(ctx).Timeout(d).WaitRequestIdle(300*time.Millisecond, nil, nil, nil)
	wait()
	return nil
}

// Screenshot captures the current viewport (or full page) as a PNG,
// grounded on SessionManager.Screenshot's page.Context(ctx).Screenshot
// call.
func (p *Page) Screenshot(ctx context.Context, fullPage bool) ([]byte, error) {
	return p.rodPage.Context(ctx).Screenshot(fullPage, nil)
}

// DumpDOM returns the current document's outer HTML, for the dumpDom debug
// step and failure diagnostics.
func (p *Page) DumpDOM(ctx context.Context) (string, error) {
	root, err := p.rodPage.Context(ctx).Timeout(p.cfg.navigationTimeout()).Element("html")
	if err != nil {
		return "", fmt.Errorf("driver: locate document root: %w", err)
	}
	return root.HTML()
}

// URL returns the page's current address.
func (p *Page) URL() string {
	info, err := p.rodPage.Info()
	if err != nil {
		return ""
	}
	return info.URL
}

// StartTrace begins a CDP trace, writing it to tracePath on StopTrace
// (spec §4.5: "Tracing uses go-rod's page.Browser().Trace(true)").
func (p *Page) StartTrace() error {
	if err := p.rodPage.Browser().Trace(true); err != nil {
		return fmt.Errorf("driver: start trace: %w", err)
	}
	p.tracing = true
	return nil
}

// StopTrace ends a trace started with StartTrace.
func (p *Page) StopTrace() error {
	if !p.tracing {
		return nil
	}
	p.tracing = false
	return p.rodPage.Browser().Trace(false)
}

// Close releases the underlying page.
func (p *Page) Close() error {
	_ = p.stopMocking()
	return p.rodPage.Close()
}

// SetStorageState seeds cookies and localStorage/sessionStorage from a
// previously saved state file (spec §4.5's "storage state" lifecycle
// input), mirroring SessionManager.ForkSession's snapshot/restore-storage
// JS eval pattern.
func (p *Page) SetStorageState(ctx context.Context, path string) error {
	state, err := loadStorageState(path)
	if err != nil {
		return fmt.Errorf("driver: load storage state %s: %w", path, err)
	}

	if len(state.Cookies) > 0 {
		params := make([]*proto.NetworkCookieParam, 0, len(state.Cookies))
		for _, c := range state.Cookies {
			params = append(params, &proto.NetworkCookieParam{
				Name:     c.Name,
				Value:    c.Value,
				Domain:   c.Domain,
				Path:     c.Path,
				Expires:  proto.TimeSinceEpoch(c.Expires),
				HTTPOnly: c.HTTPOnly,
				Secure:   c.Secure,
			})
		}
		if err := p.rodPage.Context(ctx).SetCookies(params); err != nil {
			return fmt.Errorf("driver: restore cookies: %w", err)
		}
	}

	restoreStorage(p.rodPage.Context(ctx), state.LocalStorage, state.SessionStorage)
	return nil
}

// SaveStorageState snapshots cookies and localStorage/sessionStorage to
// path, for the saveStorageState step (spec §4.4).
func (p *Page) SaveStorageState(ctx context.Context, path string) error {
	cookiesRes, err := proto.NetworkGetCookies{}.Call(p.rodPage.Context(ctx))
	if err != nil {
		return fmt.Errorf("driver: get cookies: %w", err)
	}

	state := storageState{
		LocalStorage:   snapshotStorage(p.rodPage.Context(ctx), "localStorage"),
		SessionStorage: snapshotStorage(p.rodPage.Context(ctx), "sessionStorage"),
	}
	for _, c := range cookiesRes.Cookies {
		state.Cookies = append(state.Cookies, storageCookie{
			Name: c.Name, Value: c.Value, Domain: c.Domain, Path: c.Path,
			Expires: float64(c.Expires), HTTPOnly: c.HTTPOnly, Secure: c.Secure,
		})
	}

	return saveStorageState(path, state)
}
