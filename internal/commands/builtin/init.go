// Package builtin provides the "main" module: the core commands every Xion
// session starts with.
package builtin

import (
	"xion/internal/commands"
	"xion/pkg/xiontypes"
)

// Module is the built-in command set, declared in the namespace as "Main" so
// that it resolves from the registration name "main".
var Module = &xiontypes.Module{
	Name: "Main",
	Help: "Core shell commands",
	Commands: []xiontypes.CommandSpec{
		{Name: "Show", Help: "Show options, help or modules: show options|help|modules", New: NewShowCommand},
		{Name: "Clear", Help: "Clear the screen or the options: clear [screen|options]", New: NewClearCommand},
		{Name: "Set", Help: "Set an option: set <key> <value>", New: NewSetCommand},
		{Name: "Run", New: NewRunCommand},
		{Name: "Exit", Help: "Exit the shell", New: NewExitCommand},
		{Name: "Use", Help: "Switch the active module: use <module>", New: NewUseCommand},
	},
}

func init() {
	commands.Declare(Module)
}
