package builtin

import (
	"fmt"

	"xion/pkg/xiontypes"
)

// UseCommand implements `use <module>`, switching the active module.
type UseCommand struct {
	module string
}

// NewUseCommand builds a UseCommand from its arguments.
func NewUseCommand(args []string) xiontypes.Command {
	return &UseCommand{module: xiontypes.Arg(args, 0)}
}

// Run switches modules. An unknown module surfaces ModuleNotLoadedError.
func (c *UseCommand) Run(s xiontypes.Session) (xiontypes.Result, error) {
	if err := s.ChangeModule(c.module); err != nil {
		return xiontypes.Continue, fmt.Errorf("use: %w", err)
	}
	return xiontypes.Continue, nil
}
