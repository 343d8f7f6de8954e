package steps

import (
	"github.com/flowcap/flowcap/internal/scenario"
	"github.com/flowcap/flowcap/internal/stepregistry"
)

type clickPayload struct {
	target `yaml:",inline"`
}

type clickHandler struct{}

func (clickHandler) Schema() interface{} { return &clickPayload{} }
func (clickHandler) Execute(ec *stepregistry.ExecContext, step scenario.Step) error {
	var p clickPayload
	if err := step.Decode(&p); err != nil {
		return &DecodeError{Step: step.Type, Cause: err}
	}
	el, err := p.resolve(ec)
	if err != nil {
		return err
	}
	return el.Click(ec)
}

type dblclickHandler struct{}

func (dblclickHandler) Schema() interface{} { return &clickPayload{} }
func (dblclickHandler) Execute(ec *stepregistry.ExecContext, step scenario.Step) error {
	var p clickPayload
	if err := step.Decode(&p); err != nil {
		return &DecodeError{Step: step.Type, Cause: err}
	}
	el, err := p.resolve(ec)
	if err != nil {
		return err
	}
	return el.DoubleClick(ec)
}

type fillPayload struct {
	target `yaml:",inline"`
	Value  string `yaml:"value"`
}

type fillHandler struct{}

func (fillHandler) Schema() interface{} { return &fillPayload{} }
func (fillHandler) Execute(ec *stepregistry.ExecContext, step scenario.Step) error {
	var p fillPayload
	if err := step.Decode(&p); err != nil {
		return &DecodeError{Step: step.Type, Cause: err}
	}
	value, err := ec.Vars.Substitute(p.Value, step.Name)
	if err != nil {
		return err
	}
	el, err := p.resolve(ec)
	if err != nil {
		return err
	}
	return el.Fill(ec, value)
}

type pressPayload struct {
	target `yaml:",inline"`
	Key    string `yaml:"key"`
}

type pressHandler struct{}

func (pressHandler) Schema() interface{} { return &pressPayload{} }
func (pressHandler) Execute(ec *stepregistry.ExecContext, step scenario.Step) error {
	var p pressPayload
	if err := step.Decode(&p); err != nil {
		return &DecodeError{Step: step.Type, Cause: err}
	}
	el, err := p.resolve(ec)
	if err != nil {
		return err
	}
	return el.Press(ec, p.Key)
}

type checkPayload struct {
	target `yaml:",inline"`
}

type checkHandler struct{}

func (checkHandler) Schema() interface{} { return &checkPayload{} }
func (checkHandler) Execute(ec *stepregistry.ExecContext, step scenario.Step) error {
	var p checkPayload
	if err := step.Decode(&p); err != nil {
		return &DecodeError{Step: step.Type, Cause: err}
	}
	el, err := p.resolve(ec)
	if err != nil {
		return err
	}
	return el.Check(ec)
}

type uncheckHandler struct{}

func (uncheckHandler) Schema() interface{} { return &checkPayload{} }
func (uncheckHandler) Execute(ec *stepregistry.ExecContext, step scenario.Step) error {
	var p checkPayload
	if err := step.Decode(&p); err != nil {
		return &DecodeError{Step: step.Type, Cause: err}
	}
	el, err := p.resolve(ec)
	if err != nil {
		return err
	}
	return el.Uncheck(ec)
}

type selectOptionPayload struct {
	target `yaml:",inline"`
	Value  string `yaml:"value"`
}

type selectOptionHandler struct{}

func (selectOptionHandler) Schema() interface{} { return &selectOptionPayload{} }
func (selectOptionHandler) Execute(ec *stepregistry.ExecContext, step scenario.Step) error {
	var p selectOptionPayload
	if err := step.Decode(&p); err != nil {
		return &DecodeError{Step: step.Type, Cause: err}
	}
	el, err := p.resolve(ec)
	if err != nil {
		return err
	}
	return el.SelectOption(ec, p.Value)
}
