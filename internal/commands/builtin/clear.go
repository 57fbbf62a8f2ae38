package builtin

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"

	"xion/pkg/xiontypes"
)

// ClearScreenSequence homes the cursor and erases the display.
var ClearScreenSequence = termenv.CSI + "H" + termenv.CSI + fmt.Sprintf(termenv.EraseDisplaySeq, 2)

// ClearCommand implements `clear`: `clear options` empties the option store,
// `clear screen` or a bare `clear` clears the terminal.
type ClearCommand struct {
	subcommand string
}

// NewClearCommand builds a ClearCommand from its arguments.
func NewClearCommand(args []string) xiontypes.Command {
	return &ClearCommand{subcommand: xiontypes.Arg(args, 0)}
}

// Run performs the clear.
func (c *ClearCommand) Run(s xiontypes.Session) (xiontypes.Result, error) {
	switch c.subcommand {
	case "options":
		s.Options().Clear()
	case "screen", "":
		clearScreen(s.Output())
	}
	return xiontypes.Continue, nil
}

func clearScreen(w io.Writer) {
	fmt.Fprintln(w, ClearScreenSequence)
}
