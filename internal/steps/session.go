package steps

import (
	"github.com/flowcap/flowcap/internal/scenario"
	"github.com/flowcap/flowcap/internal/stepregistry"
)

type storageStatePayload struct {
	Path string `yaml:"path"`
}

type useStorageStateHandler struct{}

func (useStorageStateHandler) Schema() interface{} { return &storageStatePayload{} }
func (useStorageStateHandler) Execute(ec *stepregistry.ExecContext, step scenario.Step) error {
	var p storageStatePayload
	if err := step.Decode(&p); err != nil {
		return &DecodeError{Step: step.Type, Cause: err}
	}
	path, err := ec.Vars.Substitute(p.Path, step.Name)
	if err != nil {
		return err
	}
	return ec.Page.SetStorageState(ec, path)
}

type saveStorageStateHandler struct{}

func (saveStorageStateHandler) Schema() interface{} { return &storageStatePayload{} }
func (saveStorageStateHandler) Execute(ec *stepregistry.ExecContext, step scenario.Step) error {
	var p storageStatePayload
	if err := step.Decode(&p); err != nil {
		return &DecodeError{Step: step.Type, Cause: err}
	}
	path, err := ec.Vars.Substitute(p.Path, step.Name)
	if err != nil {
		return err
	}
	return ec.Page.SaveStorageState(ec, path)
}
