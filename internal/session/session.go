// Package session implements the shell session: the module and command
// registries, the active module, the prompt label and the option store that
// commands read and change.
package session

import (
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"

	"xion/internal/commands"
	"xion/internal/logger"
	"xion/internal/options"
	"xion/pkg/xiontypes"
)

// Session owns all mutable shell state. Construct one per process and pass it
// to the driver; commands receive it through the xiontypes.Session interface.
type Session struct {
	id        string
	namespace *commands.Namespace
	commands  *commands.Registry
	modules   *commands.ModuleRegistry
	options   *options.Store
	out       io.Writer

	current     *xiontypes.Module
	currentName string
}

// Option configures a Session.
type Option func(*Session)

// WithOutput directs command output to w instead of os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(s *Session) {
		s.out = w
	}
}

// WithNamespace resolves modules from ns instead of commands.GlobalNamespace.
func WithNamespace(ns *commands.Namespace) Option {
	return func(s *Session) {
		s.namespace = ns
	}
}

// WithID sets the session identifier instead of a random UUID.
func WithID(id string) Option {
	return func(s *Session) {
		if id != "" {
			s.id = id
		}
	}
}

// New creates a session with empty registries, an empty option store and no active module.
func New(opts ...Option) *Session {
	s := &Session{
		id:        uuid.NewString(),
		namespace: commands.GlobalNamespace,
		commands:  commands.NewRegistry(),
		modules:   commands.NewModuleRegistry(),
		options:   options.NewStore(),
		out:       os.Stdout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ID returns the unique identifier of this session.
func (s *Session) ID() string {
	return s.id
}

// Options returns the session's option store.
func (s *Session) Options() xiontypes.OptionStore {
	return s.options
}

// Store returns the concrete option store, for callers that need Entries.
func (s *Session) Store() *options.Store {
	return s.options
}

// Output returns the writer commands print to.
func (s *Session) Output() io.Writer {
	return s.out
}

// Commands returns the flattened command registry.
func (s *Session) Commands() *commands.Registry {
	return s.commands
}

// Modules returns the module registry.
func (s *Session) Modules() *commands.ModuleRegistry {
	return s.modules
}

// ActiveModule returns the active module, or nil before the first ChangeModule.
func (s *Session) ActiveModule() *xiontypes.Module {
	return s.current
}

// ActiveModuleName returns the name the active module was registered under.
func (s *Session) ActiveModuleName() string {
	return s.currentName
}

// Prompt renders the prompt for the active module.
func (s *Session) Prompt() string {
	return fmt.Sprintf("%s >> ", s.currentName)
}

// RegisterModule stores module under name and flattens its commands into the
// command registry. A nil module is resolved by name from the namespace.
func (s *Session) RegisterModule(name string, module *xiontypes.Module) error {
	if module == nil {
		resolved, err := s.namespace.Resolve(name)
		if err != nil {
			return err
		}
		module = resolved
	}

	s.modules.Register(name, module)
	for _, spec := range module.Commands {
		s.commands.Register(spec)
		logger.Debug("Command registered", "command", spec.Token(), "module", name)
	}

	logger.Debug("Module registered", "module", name, "commands", len(module.Commands))
	return nil
}

// ChangeModule makes the module registered under name active, relabels the
// prompt and clears the option store. On failure nothing changes.
func (s *Session) ChangeModule(name string) error {
	module, ok := s.modules.Get(name)
	if !ok {
		return &xiontypes.ModuleNotLoadedError{Name: name}
	}

	s.current = module
	s.currentName = name
	s.options.Clear()

	logger.Debug("Module changed", "module", name)
	return nil
}

// RunCommand constructs the command registered under token with args and runs it.
func (s *Session) RunCommand(token string, args []string) (xiontypes.Result, error) {
	spec, ok := s.commands.Get(token)
	if !ok {
		return xiontypes.Continue, &xiontypes.CommandNotFoundError{Token: token}
	}

	logger.CommandDispatch(token, args)
	return spec.New(args).Run(s)
}

// Suggest returns a registered token close to token, if any.
func (s *Session) Suggest(token string) (string, bool) {
	return s.commands.Suggest(token)
}

// ListCommands prints every command token with its help, in registration order.
func (s *Session) ListCommands() {
	for _, spec := range s.commands.All() {
		fmt.Fprintf(s.out, "%s\t %s\n", spec.Token(), spec.HelpText())
	}
}

// ListModules prints every registered module name with its help.
func (s *Session) ListModules() {
	for _, name := range s.modules.Names() {
		module, _ := s.modules.Get(name)
		fmt.Fprintf(s.out, "%s\t %s\n", name, module.HelpText())
	}
}
