// Package xiontypes defines the core interfaces and data structures shared by
// the Xion shell: commands, modules, the session capability handed to commands,
// and the error kinds raised by the registries.
package xiontypes

import (
	"io"
	"strings"
)

// DefaultHelp is shown for any command or module that declares no help text.
const DefaultHelp = "No help topic is available, please update"

// Result tells the driver what to do after a command has run.
type Result int

const (
	// Continue keeps the session loop running.
	Continue Result = iota
	// Terminate ends the session loop; the process exits cleanly.
	Terminate
)

func (r Result) String() string {
	switch r {
	case Continue:
		return "continue"
	case Terminate:
		return "terminate"
	default:
		return "unknown"
	}
}

// Command is one constructed invocation, ready to run against a session.
type Command interface {
	Run(session Session) (Result, error)
}

// Factory builds a Command from the tokens that followed the invocation token.
// Factories must tolerate too few or too many arguments.
type Factory func(args []string) Command

// CommandFunc adapts a plain function to the Command interface.
type CommandFunc func(session Session) (Result, error)

// Run calls f(session).
func (f CommandFunc) Run(session Session) (Result, error) {
	return f(session)
}

// CommandSpec declares a command contributed by a module.
// Name is the simple name (e.g. "Show"); the invocation token is its lowercase form.
type CommandSpec struct {
	Name string
	Help string
	New  Factory
}

// Token returns the shell-wide invocation token for the command.
func (s CommandSpec) Token() string {
	return strings.ToLower(s.Name)
}

// HelpText returns the declared help, or DefaultHelp when none was supplied.
func (s CommandSpec) HelpText() string {
	if s.Help == "" {
		return DefaultHelp
	}
	return s.Help
}

// Module is a named bundle of commands. Its commands are flattened into the
// shell-wide registry when the module is registered.
type Module struct {
	Name     string
	Help     string
	Commands []CommandSpec
}

// HelpText returns the declared help, or DefaultHelp when none was supplied.
func (m *Module) HelpText() string {
	if m.Help == "" {
		return DefaultHelp
	}
	return m.Help
}

// Arg returns args[i], or "" when the argument was not supplied.
func Arg(args []string, i int) string {
	if i < 0 || i >= len(args) {
		return ""
	}
	return args[i]
}

// OptionStore is the session's transient key/value scratch space.
type OptionStore interface {
	Set(key, value string)
	Get(key string) (string, bool)
	Clear()
	Len() int
	Show(w io.Writer)
}

// Session is the capability a running command receives. It exposes the
// session state commands are allowed to read and change.
type Session interface {
	Options() OptionStore
	Output() io.Writer
	ChangeModule(name string) error
	ActiveModuleName() string
	ListCommands()
	ListModules()
}
