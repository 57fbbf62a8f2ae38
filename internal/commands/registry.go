// Package commands provides module declaration, module registration and the
// flattened command registry used for dispatch.
package commands

import (
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"

	"xion/internal/logger"
	"xion/pkg/xiontypes"
)

// Registry is the flattened, shell-wide command registry mapping invocation
// tokens to command specs. Tokens keep the position of their first registration.
type Registry struct {
	mu       sync.RWMutex
	commands map[string]xiontypes.CommandSpec
	order    []string
}

// NewRegistry creates a new command registry with an empty command map.
func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]xiontypes.CommandSpec),
	}
}

// Register adds a command spec under its lowercase token. A spec already
// registered under the same token is silently replaced.
func (r *Registry) Register(spec xiontypes.CommandSpec) {
	r.mu.Lock()
	defer r.mu.Unlock()

	token := spec.Token()
	if _, exists := r.commands[token]; !exists {
		r.order = append(r.order, token)
	} else {
		logger.Debug("Command overwritten", "command", token)
	}
	r.commands[token] = spec
}

// Get retrieves a command spec by token.
func (r *Registry) Get(token string) (xiontypes.CommandSpec, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	spec, exists := r.commands[token]
	return spec, exists
}

// Tokens returns all registered tokens in registration order.
func (r *Registry) Tokens() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

// All returns a copy of all registered specs in registration order.
func (r *Registry) All() []xiontypes.CommandSpec {
	r.mu.RLock()
	defer r.mu.RUnlock()

	specs := make([]xiontypes.CommandSpec, 0, len(r.order))
	for _, token := range r.order {
		specs = append(specs, r.commands[token])
	}
	return specs
}

// Len returns the number of registered tokens.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.commands)
}

// maxSuggestDistance bounds how far a typo may be from a real token.
const maxSuggestDistance = 2

// Suggest returns the registered token closest to token, if one lies within
// maxSuggestDistance edits. Ties resolve to the earliest registered token.
func (r *Registry) Suggest(token string) (string, bool) {
	if token == "" {
		return "", false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	best, bestDist := "", maxSuggestDistance+1
	for _, candidate := range r.order {
		if d := levenshtein.ComputeDistance(token, candidate); d < bestDist {
			best, bestDist = candidate, d
		}
	}
	return best, best != ""
}

// ModuleRegistry maps registered module names to modules, in registration order.
type ModuleRegistry struct {
	mu      sync.RWMutex
	modules map[string]*xiontypes.Module
	order   []string
}

// NewModuleRegistry creates an empty module registry.
func NewModuleRegistry() *ModuleRegistry {
	return &ModuleRegistry{
		modules: make(map[string]*xiontypes.Module),
	}
}

// Register stores module under name, replacing any previous module of that name.
func (m *ModuleRegistry) Register(name string, module *xiontypes.Module) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.modules[name]; !exists {
		m.order = append(m.order, name)
	}
	m.modules[name] = module
}

// Get retrieves a registered module by the name it was registered under.
func (m *ModuleRegistry) Get(name string) (*xiontypes.Module, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	module, exists := m.modules[name]
	return module, exists
}

// Names returns registered module names in registration order.
func (m *ModuleRegistry) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.order...)
}

// Namespace is the catalog of declared modules keyed by their simple name.
// Module packages declare themselves here from init() so that a session can
// resolve them by name without an explicit reference.
type Namespace struct {
	mu      sync.RWMutex
	modules map[string]*xiontypes.Module
}

// NewNamespace creates an empty namespace.
func NewNamespace() *Namespace {
	return &Namespace{
		modules: make(map[string]*xiontypes.Module),
	}
}

// Declare publishes module under its simple name.
func (n *Namespace) Declare(module *xiontypes.Module) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.modules[module.Name] = module
}

// Lookup returns the module declared under name. A nil declaration counts as absent.
func (n *Namespace) Lookup(name string) (*xiontypes.Module, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	module, exists := n.modules[name]
	if !exists || module == nil {
		return nil, false
	}
	return module, true
}

// Resolve maps a registration name such as "main" to its declared module
// ("Main"), failing with ModuleNotLoadedError when nothing is declared.
func (n *Namespace) Resolve(name string) (*xiontypes.Module, error) {
	module, ok := n.Lookup(Capitalize(name))
	if !ok {
		return nil, &xiontypes.ModuleNotLoadedError{Name: name}
	}
	return module, nil
}

// Capitalize upper-cases the first rune and lower-cases the rest.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	first, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(first)) + strings.ToLower(s[size:])
}

// GlobalNamespace is the process-wide module namespace. Module packages
// declare themselves into it during initialization.
var GlobalNamespace = NewNamespace()

// Declare publishes module in GlobalNamespace.
func Declare(module *xiontypes.Module) {
	GlobalNamespace.Declare(module)
}
