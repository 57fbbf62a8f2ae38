package builtin

import (
	"xion/pkg/xiontypes"
)

// ExitCommand implements `exit`. It asks the driver to end the session rather
// than terminating the process itself.
type ExitCommand struct{}

// NewExitCommand builds an ExitCommand; arguments are ignored.
func NewExitCommand(_ []string) xiontypes.Command {
	return &ExitCommand{}
}

// Run returns xiontypes.Terminate.
func (c *ExitCommand) Run(_ xiontypes.Session) (xiontypes.Result, error) {
	return xiontypes.Terminate, nil
}
