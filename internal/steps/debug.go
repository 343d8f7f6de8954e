package steps

import (
	"github.com/flowcap/flowcap/internal/logging"
	"github.com/flowcap/flowcap/internal/scenario"
	"github.com/flowcap/flowcap/internal/stepregistry"
)

type screenshotPayload struct {
	Label string `yaml:"label"`
}

type screenshotHandler struct{}

func (screenshotHandler) Schema() interface{} { return &screenshotPayload{} }
func (screenshotHandler) Execute(ec *stepregistry.ExecContext, step scenario.Step) error {
	var p screenshotPayload
	if err := step.Decode(&p); err != nil {
		return &DecodeError{Step: step.Type, Cause: err}
	}
	if ec.OnScreenshot == nil {
		return nil
	}
	label := p.Label
	if label == "" {
		label = step.Name
	}
	_, err := ec.OnScreenshot(label)
	return err
}

type logPayload struct {
	Message string `yaml:"message"`
}

type logHandler struct{}

func (logHandler) Schema() interface{} { return &logPayload{} }
func (logHandler) Execute(ec *stepregistry.ExecContext, step scenario.Step) error {
	var p logPayload
	if err := step.Decode(&p); err != nil {
		return &DecodeError{Step: step.Type, Cause: err}
	}
	msg, err := ec.Vars.Substitute(p.Message, step.Name)
	if err != nil {
		return err
	}
	if ec.Logger != nil {
		ec.Logger.Info(logging.CategoryRunner, "log step %q: %s", step.Name, msg)
	}
	return nil
}

type dumpDomPayload struct {
	As string `yaml:"as"`
}

type dumpDomHandler struct{}

func (dumpDomHandler) Schema() interface{} { return &dumpDomPayload{} }
func (dumpDomHandler) Execute(ec *stepregistry.ExecContext, step scenario.Step) error {
	var p dumpDomPayload
	if err := step.Decode(&p); err != nil {
		return &DecodeError{Step: step.Type, Cause: err}
	}
	html, err := ec.Page.DumpDOM(ec)
	if err != nil {
		return err
	}
	if p.As != "" {
		ec.Vars.Set(p.As, html)
	}
	return nil
}
