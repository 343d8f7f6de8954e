package steps

import (
	"fmt"

	"github.com/flowcap/flowcap/internal/scenario"
	"github.com/flowcap/flowcap/internal/stepregistry"
)

type expectVisiblePayload struct {
	target `yaml:",inline"`
}

type expectVisibleHandler struct{}

func (expectVisibleHandler) Schema() interface{} { return &expectVisiblePayload{} }
func (expectVisibleHandler) Execute(ec *stepregistry.ExecContext, step scenario.Step) error {
	var p expectVisiblePayload
	if err := step.Decode(&p); err != nil {
		return &DecodeError{Step: step.Type, Cause: err}
	}
	_, err := p.resolve(ec)
	if err != nil {
		return &assertionFailure{message: fmt.Sprintf("expectVisible: %v", err)}
	}
	return nil
}

type expectHiddenHandler struct{}

func (expectHiddenHandler) Schema() interface{} { return &expectVisiblePayload{} }
func (expectHiddenHandler) Execute(ec *stepregistry.ExecContext, step scenario.Step) error {
	var p expectVisiblePayload
	if err := step.Decode(&p); err != nil {
		return &DecodeError{Step: step.Type, Cause: err}
	}
	el, err := p.resolveWithTimeout(ec, hiddenProbeTimeout.Seconds())
	if err != nil {
		return nil
	}
	if visible, _ := el.Visible(ec); visible {
		return &assertionFailure{message: fmt.Sprintf("expectHidden: %s is visible", p.By)}
	}
	return nil
}

type expectTextPayload struct {
	target `yaml:",inline"`
	Text   string `yaml:"text"`
}

type expectTextHandler struct{}

func (expectTextHandler) Schema() interface{} { return &expectTextPayload{} }
func (expectTextHandler) Execute(ec *stepregistry.ExecContext, step scenario.Step) error {
	var p expectTextPayload
	if err := step.Decode(&p); err != nil {
		return &DecodeError{Step: step.Type, Cause: err}
	}
	want, err := ec.Vars.Substitute(p.Text, step.Name)
	if err != nil {
		return err
	}
	el, err := p.resolve(ec)
	if err != nil {
		return err
	}
	got, err := el.Text(ec)
	if err != nil {
		return err
	}
	if got != want {
		return &assertionFailure{
			message:  fmt.Sprintf("expectText: %s has text %q, want %q", p.By, got, want),
			expected: want, actual: got,
		}
	}
	return nil
}

type expectURLPayload struct {
	URL string `yaml:"url"`
}

type expectURLHandler struct{}

func (expectURLHandler) Schema() interface{} { return &expectURLPayload{} }
func (expectURLHandler) Execute(ec *stepregistry.ExecContext, step scenario.Step) error {
	var p expectURLPayload
	if err := step.Decode(&p); err != nil {
		return &DecodeError{Step: step.Type, Cause: err}
	}
	want, err := ec.Vars.Substitute(p.URL, step.Name)
	if err != nil {
		return err
	}
	got := ec.Page.URL()
	if got != want {
		return &assertionFailure{
			message:  fmt.Sprintf("expectUrl: current url %q, want %q", got, want),
			expected: want, actual: got,
		}
	}
	return nil
}
