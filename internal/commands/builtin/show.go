package builtin

import (
	"xion/pkg/xiontypes"
)

// ShowCommand implements `show`, printing session state selected by its subcommand.
// Unknown or missing subcommands print nothing.
type ShowCommand struct {
	subcommand string
}

// NewShowCommand builds a ShowCommand from its arguments.
func NewShowCommand(args []string) xiontypes.Command {
	return &ShowCommand{subcommand: xiontypes.Arg(args, 0)}
}

// Run prints the requested listing.
func (c *ShowCommand) Run(s xiontypes.Session) (xiontypes.Result, error) {
	switch c.subcommand {
	case "options":
		s.Options().Show(s.Output())
	case "help":
		s.ListCommands()
	case "modules":
		s.ListModules()
	}
	return xiontypes.Continue, nil
}
