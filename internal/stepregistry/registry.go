// Package stepregistry is the name-indexed catalog of step handlers (spec
// §4.4), grounded on codenerd's internal/tools Registry: a
// sync.RWMutex-guarded map with Register/Get/List, open for plugin
// registration so third-party handlers participate indistinguishably in
// validation, linting, listing, and execution (Property 15).
package stepregistry

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/flowcap/flowcap/internal/logging"
	"github.com/flowcap/flowcap/internal/scenario"
)

// Registry errors.
var (
	ErrHandlerNotFound        = errors.New("step handler not found")
	ErrHandlerNameEmpty       = errors.New("step type name cannot be empty")
	ErrHandlerAlreadyRegistered = errors.New("step handler already registered")
)

// ExecContext is the environment a Handler runs in: the live driver page,
// the run's variable environment, and anything else a step body needs to
// read or mutate while executing (spec §4.4's execute(page, params, context)).
type ExecContext struct {
	context.Context

	Page Page
	Vars *scenario.VarEnv

	// Healing is the scenario's configured healing mode, passed through to
	// every Resolve call a handler makes (spec §4.3).
	Healing scenario.HealingMode

	// StepTimeout bounds this step's waits, absent a per-step override.
	StepTimeout func() (timeoutSeconds float64)

	Logger *logging.Logger

	// OnScreenshot, if set, lets a handler request an ad hoc capture (the
	// `screenshot` debug step) without reaching into the Artifact Manager
	// directly.
	OnScreenshot func(label string) (path string, err error)
}

// Page is the subset of the browser driver facade a step handler needs.
// Defined here (rather than importing internal/driver) so stepregistry
// has no dependency on go-rod. internal/driver.Page implements every method
// except Resolve, which the runner's pageAdapter adds on top of it.
type Page interface {
	Resolve(ctx context.Context, by scenario.By, opts ResolveOptions) (Element, error)
	Goto(ctx context.Context, url string) error
	Back(ctx context.Context) error
	Reload(ctx context.Context) error
	WaitNetworkIdle(ctx context.Context, timeoutSeconds float64) error
	Screenshot(ctx context.Context, fullPage bool) ([]byte, error)
	ConsoleErrors() []string
	DumpDOM(ctx context.Context) (string, error)
	SetStorageState(ctx context.Context, path string) error
	SaveStorageState(ctx context.Context, path string) error
	URL() string
	// Mock installs a request interception rule: any request whose URL
	// matches urlPattern (a glob, per go-rod's hijack router) is fulfilled
	// with statusCode and body instead of reaching the network, backing
	// the apiMock/routeStub high-level steps (spec §4.4).
	Mock(ctx context.Context, urlPattern string, statusCode int, body string) error
}

// ResolveOptions mirrors the selector resolver's per-call knobs.
type ResolveOptions struct {
	Strict         bool
	TimeoutSeconds float64
	Healing        scenario.HealingMode
}

// Element is the subset of a resolved DOM handle a handler needs.
type Element interface {
	Click(ctx context.Context) error
	DoubleClick(ctx context.Context) error
	Fill(ctx context.Context, value string) error
	Press(ctx context.Context, key string) error
	Check(ctx context.Context) error
	Uncheck(ctx context.Context) error
	SelectOption(ctx context.Context, value string) error
	Text(ctx context.Context) (string, error)
	Attr(ctx context.Context, name string) (string, bool, error)
	Visible(ctx context.Context) (bool, error)
	ScrollIntoView(ctx context.Context) error
	UploadFile(ctx context.Context, path string) error
	// QueryAll returns every descendant matching a CSS selector, scoped to
	// this element, backing the high-level handlers' overlay/grid-cell
	// scoped lookups (spec §4.4).
	QueryAll(ctx context.Context, cssSelector string) ([]Element, error)
	// ScrollBy wheel-scrolls this element's nearest scroll container by dy
	// pixels, backing clickWijmoGridCell's scroll-and-retry over a
	// virtualized grid (spec §4.4, E6).
	ScrollBy(ctx context.Context, dy float64) error
}

// Handler is a registered step type: it can validate/introspect its
// parameter shape (Schema) and execute against a live page (Execute).
// Registration is open: a plugin Handler participates in validation,
// linting, listing, and execution exactly like a built-in (Property 15).
type Handler interface {
	// Schema returns a pointer to a new zero-value payload struct,
	// documenting the step's expected shape.
	Schema() interface{}
	// Execute runs the step. step.Decode(&typed) recovers the payload in
	// the shape Schema() describes.
	Execute(ec *ExecContext, step scenario.Step) error
}

// Registry is a thread-safe, name-indexed catalog of step handlers.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]Handler
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

// Register adds a handler under name. Returns an error if name is empty
// or already registered.
func (r *Registry) Register(name string, h Handler) error {
	if name == "" {
		return ErrHandlerNameEmpty
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.handlers[name]; exists {
		return fmt.Errorf("%w: %s", ErrHandlerAlreadyRegistered, name)
	}
	r.handlers[name] = h
	return nil
}

// MustRegister registers a handler, panicking on error. Used for built-in
// static registration at package init() time.
func (r *Registry) MustRegister(name string, h Handler) {
	if err := r.Register(name, h); err != nil {
		panic(fmt.Sprintf("stepregistry: %v", err))
	}
}

// Get returns the handler registered under name, or (nil, false).
func (r *Registry) Get(name string) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.handlers[name]
	return h, ok
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.Get(name)
	return ok
}

// List returns every registered step-type name, sorted (Property 11).
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Count returns the number of registered handlers.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.handlers)
}

// Global is the default registry built-in handlers register themselves
// into at init() time; the Runner uses it unless given a custom Registry
// (e.g. in tests, or with plugin handlers added).
var global = New()

// Global returns the shared default registry.
func Global() *Registry { return global }
