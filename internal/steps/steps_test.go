package steps

import (
	"context"
	"strings"
	"testing"

	"github.com/flowcap/flowcap/internal/scenario"
	"github.com/flowcap/flowcap/internal/stepregistry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// fakeElement is a minimal stepregistry.Element stand-in for handler tests.
type fakeElement struct {
	text     string
	visible  bool
	attrs    map[string]string
	children []stepregistry.Element
	clicked  int
	filled   string
}

func (f *fakeElement) Click(context.Context) error       { f.clicked++; return nil }
func (f *fakeElement) DoubleClick(context.Context) error { f.clicked++; return nil }
func (f *fakeElement) Fill(_ context.Context, v string) error {
	f.filled = v
	return nil
}
func (f *fakeElement) Press(context.Context, string) error       { return nil }
func (f *fakeElement) Check(context.Context) error                { return nil }
func (f *fakeElement) Uncheck(context.Context) error               { return nil }
func (f *fakeElement) SelectOption(context.Context, string) error  { return nil }
func (f *fakeElement) Text(context.Context) (string, error)        { return f.text, nil }
func (f *fakeElement) Attr(_ context.Context, name string) (string, bool, error) {
	v, ok := f.attrs[name]
	return v, ok, nil
}
func (f *fakeElement) Visible(context.Context) (bool, error) { return f.visible, nil }
func (f *fakeElement) ScrollIntoView(context.Context) error  { return nil }
func (f *fakeElement) UploadFile(context.Context, string) error { return nil }
func (f *fakeElement) QueryAll(_ context.Context, selector string) ([]stepregistry.Element, error) {
	if selector == "*" || selector == "" {
		return f.children, nil
	}
	var out []stepregistry.Element
	for _, c := range f.children {
		fe, ok := c.(*fakeElement)
		if !ok {
			continue
		}
		if matchesAttrSelector(fe, selector) {
			out = append(out, c)
		}
	}
	return out, nil
}

// matchesAttrSelector is a toy matcher for the `[attr="value"]` selector
// forms the grid-cell handler builds; good enough to exercise that
// handler's row/column addressing logic in a test without a real DOM.
func matchesAttrSelector(fe *fakeElement, selector string) bool {
	for _, cond := range strings.Split(selector, "]") {
		cond = strings.TrimSpace(strings.TrimPrefix(cond, "["))
		if cond == "" {
			continue
		}
		parts := strings.SplitN(cond, "=", 2)
		if len(parts) != 2 {
			return false
		}
		attr := parts[0]
		want := strings.Trim(parts[1], `"`)
		if fe.attrs[attr] != want {
			return false
		}
	}
	return true
}
func (f *fakeElement) ScrollBy(context.Context, float64) error { return nil }

// fakePage is a minimal stepregistry.Page stand-in.
type fakePage struct {
	resolved      map[string]stepregistry.Element
	resolveErr    map[string]error
	consoleErrors []string
	url           string
	mockCalls     []mockCall
}

type mockCall struct {
	pattern string
	status  int
	body    string
}

func keyFor(by scenario.By) string { return by.String() }

func (p *fakePage) Resolve(_ context.Context, by scenario.By, _ stepregistry.ResolveOptions) (stepregistry.Element, error) {
	k := keyFor(by)
	if err, ok := p.resolveErr[k]; ok {
		return nil, err
	}
	if el, ok := p.resolved[k]; ok {
		return el, nil
	}
	return nil, assertErrNotFound(k)
}

type notFoundErr string

func (e notFoundErr) Error() string { return "not found: " + string(e) }
func assertErrNotFound(k string) error { return notFoundErr(k) }

func (p *fakePage) Goto(context.Context, string) error            { return nil }
func (p *fakePage) Back(context.Context) error                     { return nil }
func (p *fakePage) Reload(context.Context) error                   { return nil }
func (p *fakePage) WaitNetworkIdle(context.Context, float64) error { return nil }
func (p *fakePage) Screenshot(context.Context, bool) ([]byte, error) {
	return nil, nil
}
func (p *fakePage) ConsoleErrors() []string { return p.consoleErrors }
func (p *fakePage) DumpDOM(context.Context) (string, error) {
	return "<html></html>", nil
}
func (p *fakePage) SetStorageState(context.Context, string) error  { return nil }
func (p *fakePage) SaveStorageState(context.Context, string) error { return nil }
func (p *fakePage) URL() string                                    { return p.url }
func (p *fakePage) Mock(_ context.Context, pattern string, status int, body string) error {
	p.mockCalls = append(p.mockCalls, mockCall{pattern: pattern, status: status, body: body})
	return nil
}

func newExecContext(page *fakePage) *stepregistry.ExecContext {
	return &stepregistry.ExecContext{
		Context: context.Background(),
		Page:    page,
		Vars:    scenario.NewVarEnv(nil),
		Healing: scenario.HealingOff,
		StepTimeout: func() float64 { return 1 },
	}
}

func decodeStep(t *testing.T, stepType, yml string) scenario.Step {
	t.Helper()
	full := "{" + stepType + ": " + yml + "}"
	var steps []scenario.Step
	require.NoError(t, yaml.Unmarshal([]byte("- "+full), &steps))
	require.Len(t, steps, 1)
	return steps[0]
}

func TestClickHandlerClicksResolvedElement(t *testing.T) {
	el := &fakeElement{visible: true}
	page := &fakePage{resolved: map[string]stepregistry.Element{
		`testId("save")`: el,
	}}
	ec := newExecContext(page)
	step := decodeStep(t, "click", `{by: {testId: save}}`)

	require.NoError(t, clickHandler{}.Execute(ec, step))
	assert.Equal(t, 1, el.clicked)
}

func TestFillHandlerSubstitutesVarsBeforeFilling(t *testing.T) {
	el := &fakeElement{visible: true}
	page := &fakePage{resolved: map[string]stepregistry.Element{
		`testId("email")`: el,
	}}
	ec := newExecContext(page)
	ec.Vars.Set("address", "user@example.com")
	step := decodeStep(t, "fill", `{by: {testId: email}, value: "${vars.address}"}`)

	require.NoError(t, fillHandler{}.Execute(ec, step))
	assert.Equal(t, "user@example.com", el.filled)
}

func TestExpectTextHandlerFailsOnMismatch(t *testing.T) {
	el := &fakeElement{visible: true, text: "Pending"}
	page := &fakePage{resolved: map[string]stepregistry.Element{
		`testId("status")`: el,
	}}
	ec := newExecContext(page)
	step := decodeStep(t, "expectText", `{by: {testId: status}, text: "Done"}`)

	err := expectTextHandler{}.Execute(ec, step)
	require.Error(t, err)
	var af *assertionFailure
	require.ErrorAs(t, err, &af)
}

func TestStoreTextHandlerSetsVariable(t *testing.T) {
	el := &fakeElement{visible: true, text: "42"}
	page := &fakePage{resolved: map[string]stepregistry.Element{
		`testId("total")`: el,
	}}
	ec := newExecContext(page)
	step := decodeStep(t, "storeText", `{by: {testId: total}, as: total}`)

	require.NoError(t, storeTextHandler{}.Execute(ec, step))
	val, ok := ec.Vars.Get("total")
	require.True(t, ok)
	assert.Equal(t, "42", val)
}

func TestAssertNoConsoleErrorFailsWhenErrorsPresent(t *testing.T) {
	page := &fakePage{consoleErrors: []string{"TypeError: boom"}}
	ec := newExecContext(page)

	err := assertNoConsoleErrorHandler{}.Execute(ec, scenario.Step{Type: "assertNoConsoleError"})
	require.Error(t, err)
	var af *assertionFailure
	require.ErrorAs(t, err, &af)
}

func TestAssertNoConsoleErrorPassesWhenClean(t *testing.T) {
	page := &fakePage{}
	ec := newExecContext(page)
	require.NoError(t, assertNoConsoleErrorHandler{}.Execute(ec, scenario.Step{Type: "assertNoConsoleError"}))
}

func TestApiMockCallsPageMockWithDefaultedStatus(t *testing.T) {
	page := &fakePage{}
	ec := newExecContext(page)
	step := decodeStep(t, "apiMock", `{url: "/api/users", method: GET, response: '{"ok":true}'}`)

	require.NoError(t, apiMockHandler{}.Execute(ec, step))
	require.Len(t, page.mockCalls, 1)
	assert.Equal(t, "/api/users", page.mockCalls[0].pattern)
	assert.Equal(t, 200, page.mockCalls[0].status)
	assert.Equal(t, `{"ok":true}`, page.mockCalls[0].body)
}

func TestSelectOverlayOptionClicksMatchingVisibleOption(t *testing.T) {
	option := &fakeElement{text: "Blue", visible: true}
	other := &fakeElement{text: "Red", visible: true}
	trigger := &fakeElement{visible: true}
	list := &fakeElement{visible: true, children: []stepregistry.Element{other, option}}
	page := &fakePage{resolved: map[string]stepregistry.Element{
		`testId("color-trigger")`: trigger,
		`testId("color-list")`:    list,
	}}
	ec := newExecContext(page)
	step := decodeStep(t, "selectOverlayOption", `{open: {testId: color-trigger}, list: {testId: color-list}, optionText: Blue}`)

	require.NoError(t, selectOverlayOptionHandler{}.Execute(ec, step))
	assert.Equal(t, 1, trigger.clicked)
	assert.Equal(t, 1, option.clicked)
	assert.Equal(t, 0, other.clicked)
}

func TestClickWijmoGridCellClicksCellAtMatchedRow(t *testing.T) {
	keyCell := &fakeElement{text: "7500", visible: true, attrs: map[string]string{
		"aria-colindex": "1", "aria-rowindex": "7501",
	}}
	targetCell := &fakeElement{text: "Approve", visible: true, attrs: map[string]string{
		"aria-colindex": "3", "aria-rowindex": "7501",
	}}
	idHeader := &fakeElement{text: "ID", attrs: map[string]string{"aria-colindex": "1", "role": "columnheader"}}
	actionHeader := &fakeElement{text: "Action", attrs: map[string]string{"aria-colindex": "3", "role": "columnheader"}}

	grid := &fakeElement{visible: true}
	page := &fakePage{resolved: map[string]stepregistry.Element{
		`testId("orders-grid")`: grid,
	}}
	ec := newExecContext(page)

	// Headers and cells share the grid's one children slice;
	// fakeElement.QueryAll filters it with matchesAttrSelector, so each
	// header, key-cell and target-cell lookup sees only matching elements.
	grid.children = []stepregistry.Element{idHeader, actionHeader, keyCell, targetCell}

	step := decodeStep(t, "clickWijmoGridCell", `{grid: {testId: orders-grid}, rowKey: {column: ID, equals: "7500"}, column: Action}`)
	require.NoError(t, clickWijmoGridCellHandler{}.Execute(ec, step))
	assert.Equal(t, 1, targetCell.clicked)
}
