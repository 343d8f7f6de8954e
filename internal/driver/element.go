package driver

import (
	"context"
	"fmt"

	"github.com/flowcap/flowcap/internal/stepregistry"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/proto"
)

// Element wraps a single resolved *rod.Element, satisfying
// stepregistry.Element. Grounded on SessionManager.Click/Type's
// el.Click(proto.InputMouseButtonLeft, 1) / el.Input(text) call shapes.
type Element struct {
	rodEl *rod.Element
}

// namedKeys maps the step-facing key names (spec §4.4's `press` step) onto
// go-rod's input package key constants.
var namedKeys = map[string]input.Key{
	"Enter":      input.Enter,
	"Tab":        input.Tab,
	"Escape":     input.Escape,
	"Backspace":  input.Backspace,
	"Delete":     input.Delete,
	"ArrowUp":    input.ArrowUp,
	"ArrowDown":  input.ArrowDown,
	"ArrowLeft":  input.ArrowLeft,
	"ArrowRight": input.ArrowRight,
	"Home":       input.Home,
	"End":        input.End,
	"PageUp":     input.PageUp,
	"PageDown":   input.PageDown,
	"Space":      input.Space,
}

func (e *Element) Click(ctx context.Context) error {
	return e.rodEl.Context(ctx).Click(proto.InputMouseButtonLeft, 1)
}

func (e *Element) DoubleClick(ctx context.Context) error {
	return e.rodEl.Context(ctx).Click(proto.InputMouseButtonLeft, 2)
}

func (e *Element) Fill(ctx context.Context, value string) error {
	el := e.rodEl.Context(ctx)
	if err := el.SelectAllText(); err == nil {
		_ = el.Input("")
	}
	return el.Input(value)
}

// Press sends a single named key (Enter, Tab, ArrowDown, ...) to the
// focused element, or types the literal rune(s) in key when it names no
// recognized key.
func (e *Element) Press(ctx context.Context, key string) error {
	el := e.rodEl.Context(ctx)
	if err := el.Focus(); err != nil {
		return fmt.Errorf("driver: focus before press: %w", err)
	}
	if k, ok := namedKeys[key]; ok {
		return el.Page().Context(ctx).Keyboard.Press(k)
	}
	return el.Input(key)
}

func (e *Element) Check(ctx context.Context) error {
	return e.setChecked(ctx, true)
}

func (e *Element) Uncheck(ctx context.Context) error {
	return e.setChecked(ctx, false)
}

func (e *Element) setChecked(ctx context.Context, want bool) error {
	el := e.rodEl.Context(ctx)
	prop, err := el.Property("checked")
	if err != nil {
		return fmt.Errorf("driver: read checked state: %w", err)
	}
	if prop.Bool() == want {
		return nil
	}
	return el.Click(proto.InputMouseButtonLeft, 1)
}

func (e *Element) SelectOption(ctx context.Context, value string) error {
	return e.rodEl.Context(ctx).Select([]string{value}, true, rod.SelectorTypeValue)
}

func (e *Element) Text(ctx context.Context) (string, error) {
	return e.rodEl.Context(ctx).Text()
}

func (e *Element) Attr(ctx context.Context, name string) (string, bool, error) {
	val, err := e.rodEl.Context(ctx).Attribute(name)
	if err != nil {
		return "", false, fmt.Errorf("driver: read attribute %s: %w", name, err)
	}
	if val == nil {
		return "", false, nil
	}
	return *val, true, nil
}

func (e *Element) Visible(ctx context.Context) (bool, error) {
	return e.rodEl.Context(ctx).Visible()
}

func (e *Element) ScrollIntoView(ctx context.Context) error {
	return e.rodEl.Context(ctx).ScrollIntoView()
}

func (e *Element) UploadFile(ctx context.Context, path string) error {
	return e.rodEl.Context(ctx).SetFiles([]string{path})
}

// QueryAll runs a scoped CSS query under this element, grounded on
// SessionManager's own use of rod's el.Elements(selector) for locating
// children of a known container.
func (e *Element) QueryAll(ctx context.Context, cssSelector string) ([]stepregistry.Element, error) {
	els, err := e.rodEl.Context(ctx).Elements(cssSelector)
	if err != nil {
		return nil, fmt.Errorf("driver: query %q: %w", cssSelector, err)
	}
	return asElements(wrap(els)), nil
}

// ScrollBy hovers this element and sends a wheel-scroll event, used to
// page a virtualized grid into view a row at a time (clickWijmoGridCell,
// spec §4.4).
func (e *Element) ScrollBy(ctx context.Context, dy float64) error {
	el := e.rodEl.Context(ctx)
	if err := el.Hover(); err != nil {
		return fmt.Errorf("driver: hover before scroll: %w", err)
	}
	return el.Page().Context(ctx).Mouse.Scroll(0, dy, 1)
}
