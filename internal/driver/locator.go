package driver

import (
	"context"
	"fmt"

	"github.com/flowcap/flowcap/internal/stepregistry"
	"github.com/go-rod/rod"
)

// accessibleNameScript computes a crude but serviceable accessible name for
// a DOM node: aria-label, then aria-labelledby, then an associated <label>,
// then placeholder/alt, then trimmed text content. go-rod has no native
// ARIA locator (spec §4.3's AMBIENT STACK note), so role- and label-based
// By variants resolve by scanning candidate elements with this script
// rather than a CSS/XPath primitive.
const accessibleNameScript = `
function flowcapAccessibleName(el) {
	if (!el) return "";
	const ariaLabel = el.getAttribute('aria-label');
	if (ariaLabel) return ariaLabel.trim();

	const labelledBy = el.getAttribute('aria-labelledby');
	if (labelledBy) {
		const parts = labelledBy.split(/\s+/).map((id) => {
			const ref = document.getElementById(id);
			return ref ? ref.textContent.trim() : '';
		}).filter(Boolean);
		if (parts.length) return parts.join(' ');
	}

	if (el.id) {
		const label = document.querySelector('label[for="' + CSS.escape(el.id) + '"]');
		if (label) return label.textContent.trim();
	}
	const wrapping = el.closest('label');
	if (wrapping) return wrapping.textContent.trim();

	const placeholder = el.getAttribute('placeholder');
	if (placeholder) return placeholder.trim();
	const alt = el.getAttribute('alt');
	if (alt) return alt.trim();

	return (el.textContent || '').trim();
}
`

// implicitRoleScript maps an element to its implicit ARIA role when no
// explicit role attribute is present, covering the handful of interactive
// tags a scenario author is likely to target (button, link, textbox,
// checkbox, radio, combobox). This is deliberately partial: an explicit
// `role="..."` attribute always wins, matching how assistive tech resolves
// role precedence.
const implicitRoleScript = `
function flowcapRole(el) {
	const explicit = el.getAttribute('role');
	if (explicit) return explicit;

	const tag = el.tagName.toLowerCase();
	if (tag === 'button') return 'button';
	if (tag === 'a' && el.hasAttribute('href')) return 'link';
	if (tag === 'select') return 'combobox';
	if (tag === 'textarea') return 'textbox';
	if (tag === 'input') {
		const type = (el.getAttribute('type') || 'text').toLowerCase();
		switch (type) {
			case 'checkbox': return 'checkbox';
			case 'radio': return 'radio';
			case 'button': case 'submit': case 'reset': return 'button';
			default: return 'textbox';
		}
	}
	if (tag === 'img') return 'img';
	return '';
}
`

func (p *Page) evalElements(ctx context.Context, predicate string, args ...interface{}) (rod.Elements, error) {
	js := accessibleNameScript + implicitRoleScript + `
	(function() {
		const out = [];
		const all = document.querySelectorAll('*');
		for (const el of all) {
			if (` + predicate + `) out.push(el);
		}
		return out;
	})
	`
	return p.rodPage.Context(ctx).ElementsByJS(&rod.EvalOptions{JS: js, JSArgs: args})
}

func wrap(els rod.Elements) []*Element {
	out := make([]*Element, 0, len(els))
	for _, e := range els {
		out = append(out, &Element{rodEl: e})
	}
	return out
}

// asElements upcasts concrete *Element values to the stepregistry.Element
// interface, the shape the selector resolver (and everything above it)
// consumes — kept separate from wrap so FindByCSS can still filter on the
// concrete type's rodEl before converting.
func asElements(els []*Element) []stepregistry.Element {
	out := make([]stepregistry.Element, len(els))
	for i, e := range els {
		out[i] = e
	}
	return out
}

// FindByTestID locates elements by `[data-testid="id"]`, the convention
// spec.md §4.1's selector table assumes for the testId By variant.
func (p *Page) FindByTestID(ctx context.Context, id string) ([]stepregistry.Element, error) {
	els, err := p.rodPage.Context(ctx).Elements(fmt.Sprintf(`[data-testid=%q]`, id))
	if err != nil {
		return nil, nil
	}
	return asElements(wrap(els)), nil
}

// FindByRole locates elements whose implicit-or-explicit ARIA role matches
// role, optionally filtered by accessible name.
func (p *Page) FindByRole(ctx context.Context, role, name string) ([]stepregistry.Element, error) {
	els, err := p.evalElements(ctx,
		`flowcapRole(el) === arguments[0] && (arguments[1] === "" || flowcapAccessibleName(el) === arguments[1])`,
		role, name)
	if err != nil {
		return nil, nil
	}
	return asElements(wrap(els)), nil
}

// FindByLabel locates form controls whose computed accessible name equals
// text (an associated <label>, aria-label, or aria-labelledby).
func (p *Page) FindByLabel(ctx context.Context, text string) ([]stepregistry.Element, error) {
	els, err := p.evalElements(ctx,
		`(el.tagName === 'INPUT' || el.tagName === 'SELECT' || el.tagName === 'TEXTAREA') && flowcapAccessibleName(el) === arguments[0]`,
		text)
	if err != nil {
		return nil, nil
	}
	return asElements(wrap(els)), nil
}

// FindByPlaceholder locates elements whose placeholder attribute equals
// text exactly.
func (p *Page) FindByPlaceholder(ctx context.Context, text string) ([]stepregistry.Element, error) {
	els, err := p.evalElements(ctx, `el.getAttribute('placeholder') === arguments[0]`, text)
	if err != nil {
		return nil, nil
	}
	return asElements(wrap(els)), nil
}

// FindByCSS locates elements matching selector, optionally narrowed to
// those whose trimmed text content equals text.
func (p *Page) FindByCSS(ctx context.Context, selector, text string) ([]stepregistry.Element, error) {
	els, err := p.rodPage.Context(ctx).Elements(selector)
	if err != nil {
		return nil, nil
	}
	wrapped := wrap(els)
	if text == "" {
		return asElements(wrapped), nil
	}
	var filtered []*Element
	for _, e := range wrapped {
		t, err := e.rodEl.Text()
		if err == nil && t == text {
			filtered = append(filtered, e)
		}
	}
	return asElements(filtered), nil
}

// FindByText locates elements whose trimmed text content equals text
// exactly, narrowed to leaf-most matches so a container and its single
// matching child don't both count as candidates.
func (p *Page) FindByText(ctx context.Context, text string) ([]stepregistry.Element, error) {
	els, err := p.evalElements(ctx, `
		el.children.length === 0 && (el.textContent || '').trim() === arguments[0]
	`, text)
	if err != nil {
		return nil, nil
	}
	return asElements(wrap(els)), nil
}
