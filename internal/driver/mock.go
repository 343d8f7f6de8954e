package driver

import (
	"context"
	"fmt"

	"github.com/go-rod/rod"
)

// Mock installs a request interception rule on this page's hijack router,
// fulfilling any request whose URL matches the glob pattern urlPattern with
// statusCode and body instead of letting it reach the network. Backs the
// apiMock and routeStub high-level steps (spec §4.4); go-rod has no
// declarative route-stubbing primitive, so this reaches for its lower-level
// HijackRequests router directly.
func (p *Page) Mock(ctx context.Context, urlPattern string, statusCode int, body string) error {
	p.mu.Lock()
	if p.router == nil {
		p.router = p.rodPage.HijackRequests()
		go p.router.Run()
	}
	router := p.router
	p.mu.Unlock()

	router.MustAdd(urlPattern, func(h *rod.Hijack) {
		h.Response.SetHeader("Content-Type", "application/json")
		h.Response.Payload().ResponseCode = statusCode
		_ = h.Response.SetBody(body)
	})
	return nil
}

// stopMocking tears down the hijack router, if one was ever installed,
// releasing the goroutine Mock started.
func (p *Page) stopMocking() error {
	p.mu.Lock()
	router := p.router
	p.router = nil
	p.mu.Unlock()
	if router == nil {
		return nil
	}
	if err := router.Stop(); err != nil {
		return fmt.Errorf("driver: stop hijack router: %w", err)
	}
	return nil
}
