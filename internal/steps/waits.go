package steps

import (
	"time"

	"github.com/flowcap/flowcap/internal/scenario"
	"github.com/flowcap/flowcap/internal/stepregistry"
)

type waitPayload struct {
	target  `yaml:",inline"`
	Timeout float64 `yaml:"timeout"`
}

type waitForHandler struct{}

func (waitForHandler) Schema() interface{} { return &waitPayload{} }
func (waitForHandler) Execute(ec *stepregistry.ExecContext, step scenario.Step) error {
	var p waitPayload
	if err := step.Decode(&p); err != nil {
		return &DecodeError{Step: step.Type, Cause: err}
	}
	_, err := p.resolve(ec)
	return err
}

type waitForVisibleHandler struct{}

func (waitForVisibleHandler) Schema() interface{} { return &waitPayload{} }
func (waitForVisibleHandler) Execute(ec *stepregistry.ExecContext, step scenario.Step) error {
	var p waitPayload
	if err := step.Decode(&p); err != nil {
		return &DecodeError{Step: step.Type, Cause: err}
	}
	_, err := p.resolve(ec)
	return err
}

type waitForHiddenHandler struct{}

const hiddenProbeTimeout = 50 * time.Millisecond
const hiddenPollInterval = 150 * time.Millisecond

func (waitForHiddenHandler) Schema() interface{} { return &waitPayload{} }
func (waitForHiddenHandler) Execute(ec *stepregistry.ExecContext, step scenario.Step) error {
	var p waitPayload
	if err := step.Decode(&p); err != nil {
		return &DecodeError{Step: step.Type, Cause: err}
	}

	budget := p.Timeout
	if budget <= 0 {
		budget = 5
	}
	deadline := time.Now().Add(time.Duration(budget * float64(time.Second)))

	for {
		el, err := p.resolveWithTimeout(ec, hiddenProbeTimeout.Seconds())
		if err != nil {
			return nil // no longer resolvable: hidden.
		}
		if visible, _ := el.Visible(ec); !visible {
			return nil
		}
		if time.Now().After(deadline) {
			return &selectorTimeout{by: p.By, timeoutSeconds: budget}
		}
		time.Sleep(hiddenPollInterval)
	}
}

type waitForNetworkIdlePayload struct {
	Timeout float64 `yaml:"timeout"`
}

type waitForNetworkIdleHandler struct{}

func (waitForNetworkIdleHandler) Schema() interface{} { return &waitForNetworkIdlePayload{} }
func (waitForNetworkIdleHandler) Execute(ec *stepregistry.ExecContext, step scenario.Step) error {
	var p waitForNetworkIdlePayload
	if err := step.Decode(&p); err != nil {
		return &DecodeError{Step: step.Type, Cause: err}
	}
	timeout := p.Timeout
	if timeout <= 0 && ec.StepTimeout != nil {
		timeout = ec.StepTimeout()
	}
	return ec.Page.WaitNetworkIdle(ec, timeout)
}
