package builtin

import (
	"xion/pkg/xiontypes"
)

// SetCommand implements `set <key> <value>`, storing an option.
// A missing value stores an empty string; a missing key does nothing.
type SetCommand struct {
	key   string
	value string
}

// NewSetCommand builds a SetCommand from its arguments. Extra arguments are ignored.
func NewSetCommand(args []string) xiontypes.Command {
	return &SetCommand{
		key:   xiontypes.Arg(args, 0),
		value: xiontypes.Arg(args, 1),
	}
}

// Run stores the option.
func (c *SetCommand) Run(s xiontypes.Session) (xiontypes.Result, error) {
	if c.key == "" {
		return xiontypes.Continue, nil
	}
	s.Options().Set(c.key, c.value)
	return xiontypes.Continue, nil
}
