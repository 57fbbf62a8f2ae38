package xiontypes

import (
	"errors"
	"fmt"
)

var (
	// ErrCommandNotFound matches any CommandNotFoundError via errors.Is.
	ErrCommandNotFound = errors.New("command not found")
	// ErrModuleNotLoaded matches any ModuleNotLoadedError via errors.Is.
	ErrModuleNotLoaded = errors.New("module not loaded")
)

// CommandNotFoundError is returned when a token has no entry in the command registry.
type CommandNotFoundError struct {
	Token string
}

func (e *CommandNotFoundError) Error() string {
	return fmt.Sprintf("Command `%s` not found", e.Token)
}

// Is reports whether target is ErrCommandNotFound.
func (e *CommandNotFoundError) Is(target error) bool {
	return target == ErrCommandNotFound
}

// ModuleNotLoadedError is returned when a module name cannot be resolved or
// has not been registered.
type ModuleNotLoadedError struct {
	Name string
}

func (e *ModuleNotLoadedError) Error() string {
	return fmt.Sprintf("module `%s` not loaded", e.Name)
}

// Is reports whether target is ErrModuleNotLoaded.
func (e *ModuleNotLoadedError) Is(target error) bool {
	return target == ErrModuleNotLoaded
}
