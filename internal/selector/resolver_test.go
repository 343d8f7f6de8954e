package selector

import (
	"context"
	"testing"

	"github.com/flowcap/flowcap/internal/scenario"
	"github.com/flowcap/flowcap/internal/stepregistry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeElement is a minimal stepregistry.Element stand-in for resolver
// tests; only Visible is exercised by the resolver itself.
type fakeElement struct {
	id      string
	visible bool
}

func (f *fakeElement) Click(context.Context) error                 { return nil }
func (f *fakeElement) DoubleClick(context.Context) error           { return nil }
func (f *fakeElement) Fill(context.Context, string) error          { return nil }
func (f *fakeElement) Press(context.Context, string) error         { return nil }
func (f *fakeElement) Check(context.Context) error                 { return nil }
func (f *fakeElement) Uncheck(context.Context) error                { return nil }
func (f *fakeElement) SelectOption(context.Context, string) error   { return nil }
func (f *fakeElement) Text(context.Context) (string, error)         { return f.id, nil }
func (f *fakeElement) Attr(context.Context, string) (string, bool, error) { return "", false, nil }
func (f *fakeElement) Visible(context.Context) (bool, error)        { return f.visible, nil }
func (f *fakeElement) ScrollIntoView(context.Context) error         { return nil }
func (f *fakeElement) UploadFile(context.Context, string) error     { return nil }
func (f *fakeElement) QueryAll(context.Context, string) ([]stepregistry.Element, error) {
	return nil, nil
}
func (f *fakeElement) ScrollBy(context.Context, float64) error { return nil }

// fakeLocator lets tests script which By kinds return which elements.
type fakeLocator struct {
	testID      map[string][]stepregistry.Element
	role        map[string][]stepregistry.Element
	label       map[string][]stepregistry.Element
	placeholder map[string][]stepregistry.Element
	css         map[string][]stepregistry.Element
	text        map[string][]stepregistry.Element
}

func newFakeLocator() *fakeLocator {
	return &fakeLocator{
		testID: map[string][]stepregistry.Element{}, role: map[string][]stepregistry.Element{},
		label: map[string][]stepregistry.Element{}, placeholder: map[string][]stepregistry.Element{},
		css: map[string][]stepregistry.Element{}, text: map[string][]stepregistry.Element{},
	}
}

func (f *fakeLocator) FindByTestID(_ context.Context, id string) ([]stepregistry.Element, error) {
	return f.testID[id], nil
}
func (f *fakeLocator) FindByRole(_ context.Context, role, name string) ([]stepregistry.Element, error) {
	return f.role[role+"|"+name], nil
}
func (f *fakeLocator) FindByLabel(_ context.Context, text string) ([]stepregistry.Element, error) {
	return f.label[text], nil
}
func (f *fakeLocator) FindByPlaceholder(_ context.Context, text string) ([]stepregistry.Element, error) {
	return f.placeholder[text], nil
}
func (f *fakeLocator) FindByCSS(_ context.Context, sel, text string) ([]stepregistry.Element, error) {
	return f.css[sel+"|"+text], nil
}
func (f *fakeLocator) FindByText(_ context.Context, text string) ([]stepregistry.Element, error) {
	return f.text[text], nil
}

func TestResolveSingleSucceedsOnOneVisibleMatch(t *testing.T) {
	loc := newFakeLocator()
	loc.testID["save"] = []stepregistry.Element{&fakeElement{id: "save", visible: true}}

	r := New(loc)
	el, diag, err := r.Resolve(context.Background(), scenario.By{Kind: scenario.ByTestID, TestID: "save"},
		stepregistry.ResolveOptions{Strict: true, TimeoutSeconds: 0.3})
	require.NoError(t, err)
	assert.Nil(t, diag)
	text, _ := el.Text(context.Background())
	assert.Equal(t, "save", text)
}

func TestResolveSingleStrictAmbiguous(t *testing.T) {
	loc := newFakeLocator()
	loc.role["button|Save"] = []stepregistry.Element{
		&fakeElement{id: "a", visible: true},
		&fakeElement{id: "b", visible: true},
	}

	r := New(loc)
	_, _, err := r.Resolve(context.Background(), scenario.By{Kind: scenario.ByRole, Role: "button", Name: "Save"},
		stepregistry.ResolveOptions{Strict: true, TimeoutSeconds: 0.3, Healing: scenario.HealingSafe})
	require.Error(t, err)
	var ambiguous *Ambiguous
	require.ErrorAs(t, err, &ambiguous)
	assert.Equal(t, 2, ambiguous.MatchCount)
}

func TestResolveAnyFallsBackToFirstSatisfyingCandidate(t *testing.T) {
	loc := newFakeLocator()
	// testId("save") and role("button","Save") both miss; css matches.
	loc.css["button.save|"] = []stepregistry.Element{&fakeElement{id: "css-match", visible: true}}

	by := scenario.By{Kind: scenario.ByAny, Any: []scenario.By{
		{Kind: scenario.ByTestID, TestID: "save"},
		{Kind: scenario.ByRole, Role: "button", Name: "Save"},
		{Kind: scenario.ByCSS, CSS: "button.save"},
	}}

	r := New(loc)
	el, diag, err := r.Resolve(context.Background(), by, stepregistry.ResolveOptions{Strict: true, TimeoutSeconds: 0.2})
	require.NoError(t, err)
	require.NotNil(t, diag)
	assert.Contains(t, diag.Fallback, "css")
	text, _ := el.Text(context.Background())
	assert.Equal(t, "css-match", text)
}

func TestResolveAnyAllCandidatesFailedPreservesOrder(t *testing.T) {
	loc := newFakeLocator()
	by := scenario.By{Kind: scenario.ByAny, Any: []scenario.By{
		{Kind: scenario.ByTestID, TestID: "a"},
		{Kind: scenario.ByTestID, TestID: "b"},
	}}

	r := New(loc)
	_, _, err := r.Resolve(context.Background(), by, stepregistry.ResolveOptions{Strict: true, TimeoutSeconds: 0.1})
	require.Error(t, err)
	var allFailed *AllCandidatesFailed
	require.ErrorAs(t, err, &allFailed)
	require.Len(t, allFailed.Failures, 2)
	assert.Equal(t, "a", allFailed.Failures[0].Candidate.TestID)
	assert.Equal(t, "b", allFailed.Failures[1].Candidate.TestID)
}

func TestResolveSingleNoMatchWithoutHealing(t *testing.T) {
	loc := newFakeLocator()
	r := New(loc)
	_, _, err := r.Resolve(context.Background(), scenario.By{Kind: scenario.ByTestID, TestID: "missing"},
		stepregistry.ResolveOptions{Strict: true, TimeoutSeconds: 0.1, Healing: scenario.HealingOff})
	require.Error(t, err)
	var noMatch *NoMatch
	require.ErrorAs(t, err, &noMatch)
	assert.False(t, noMatch.Healed)
}

func TestResolveSingleHealingFindsByInferredTestID(t *testing.T) {
	loc := newFakeLocator()
	loc.role["button|"] = nil // dropped-filter attempt still misses
	loc.testID["Save"] = []stepregistry.Element{&fakeElement{id: "healed", visible: true}}

	r := New(loc)
	el, diag, err := r.Resolve(context.Background(), scenario.By{Kind: scenario.ByRole, Role: "button", Name: "Save"},
		stepregistry.ResolveOptions{Strict: true, TimeoutSeconds: 0.1, Healing: scenario.HealingSafe})
	require.NoError(t, err)
	require.NotNil(t, diag)
	assert.Equal(t, "inferred testId", diag.HealedVia)
	text, _ := el.Text(context.Background())
	assert.Equal(t, "healed", text)
}
