package steps

import (
	"github.com/flowcap/flowcap/internal/scenario"
	"github.com/flowcap/flowcap/internal/stepregistry"
)

type storeTextPayload struct {
	target `yaml:",inline"`
	As     string `yaml:"as"`
}

type storeTextHandler struct{}

func (storeTextHandler) Schema() interface{} { return &storeTextPayload{} }
func (storeTextHandler) Execute(ec *stepregistry.ExecContext, step scenario.Step) error {
	var p storeTextPayload
	if err := step.Decode(&p); err != nil {
		return &DecodeError{Step: step.Type, Cause: err}
	}
	el, err := p.resolve(ec)
	if err != nil {
		return err
	}
	text, err := el.Text(ec)
	if err != nil {
		return err
	}
	ec.Vars.Set(p.As, text)
	return nil
}

type storeAttrPayload struct {
	target `yaml:",inline"`
	Attr   string `yaml:"attr"`
	As     string `yaml:"as"`
}

type storeAttrHandler struct{}

func (storeAttrHandler) Schema() interface{} { return &storeAttrPayload{} }
func (storeAttrHandler) Execute(ec *stepregistry.ExecContext, step scenario.Step) error {
	var p storeAttrPayload
	if err := step.Decode(&p); err != nil {
		return &DecodeError{Step: step.Type, Cause: err}
	}
	el, err := p.resolve(ec)
	if err != nil {
		return err
	}
	val, _, err := el.Attr(ec, p.Attr)
	if err != nil {
		return err
	}
	ec.Vars.Set(p.As, val)
	return nil
}
