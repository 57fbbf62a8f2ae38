package builtin

import (
	"xion/pkg/xiontypes"
)

// RunCommand implements `run`. In the main module it does nothing; modules
// that need an action entry point declare their own Run spec, which replaces
// this one in the shell-wide registry.
type RunCommand struct{}

// NewRunCommand builds a RunCommand; arguments are ignored.
func NewRunCommand(_ []string) xiontypes.Command {
	return &RunCommand{}
}

// Run is a no-op.
func (c *RunCommand) Run(_ xiontypes.Session) (xiontypes.Result, error) {
	return xiontypes.Continue, nil
}
