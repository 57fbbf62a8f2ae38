// Package shell drives Xion sessions: it turns input lines into command
// dispatches, either interactively through ishell or from a script.
package shell

import (
	"errors"
	"fmt"
	"strings"

	"xion/internal/logger"
	"xion/internal/output"
	"xion/internal/session"
	"xion/pkg/xiontypes"
)

// Processor dispatches tokenized input against a session.
type Processor struct {
	session *session.Session
	printer *output.Printer
	suggest bool
}

// ProcessorOption configures a Processor.
type ProcessorOption func(*Processor)

// WithSuggestions enables the "Did you mean" hint after an unknown command.
func WithSuggestions(enabled bool) ProcessorOption {
	return func(p *Processor) {
		p.suggest = enabled
	}
}

// NewProcessor creates a Processor. Driver messages go to printer.
func NewProcessor(s *session.Session, printer *output.Printer, opts ...ProcessorOption) *Processor {
	p := &Processor{
		session: s,
		printer: printer,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Session returns the session the processor dispatches against.
func (p *Processor) Session() *session.Session {
	return p.session
}

// Process dispatches tokens[0] with tokens[1:] as arguments. An empty token
// list dispatches the empty token. Unknown commands are reported and the
// session continues; any other command error is returned as fatal.
func (p *Processor) Process(tokens []string) (xiontypes.Result, error) {
	token := ""
	var args []string
	if len(tokens) > 0 {
		token, args = tokens[0], tokens[1:]
	}

	result, err := p.session.RunCommand(token, args)
	if err == nil {
		return result, nil
	}

	if errors.Is(err, xiontypes.ErrCommandNotFound) {
		logger.Debug("Command not found", "command", token)
		p.printer.Error(err.Error())
		p.hint(token)
		return xiontypes.Continue, nil
	}

	logger.Debug("Command failed", "command", token, "error", err)
	return result, err
}

// ProcessLine tokenizes line and processes it.
func (p *Processor) ProcessLine(line string) (xiontypes.Result, error) {
	return p.Process(Tokenize(line))
}

func (p *Processor) hint(token string) {
	if !p.suggest || strings.TrimSpace(token) == "" {
		return
	}
	if suggestion, ok := p.session.Suggest(token); ok {
		p.printer.Info(fmt.Sprintf("Did you mean `%s`?", suggestion))
	}
}
