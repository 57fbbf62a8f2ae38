package shell

import (
	"errors"
	"fmt"
	"io"

	"github.com/abiosoft/ishell/v2"
	"github.com/abiosoft/readline"

	"xion/internal/logger"
	"xion/internal/version"
	"xion/pkg/xiontypes"
)

// LineReader is the part of the interactive shell the loop reads from.
// *ishell.Shell satisfies it.
type LineReader interface {
	ReadLineErr() (string, error)
	SetPrompt(prompt string)
}

// Interactive runs a Processor over lines read from an ishell. Lines are
// taken raw, so Tokenize is the only splitter.
type Interactive struct {
	processor *Processor
	reader    LineReader
	close     func()
	echo      bool
}

// NewInteractive builds the interactive loop on stdin. When stdin is not a
// terminal readline draws no prompt, so each line is echoed after the prompt
// instead.
func NewInteractive(processor *Processor) *Interactive {
	sh := ishell.New()
	sh.SetPrompt(processor.Session().Prompt())

	return &Interactive{
		processor: processor,
		reader:    sh,
		close:     sh.Close,
		echo:      !readline.DefaultIsTerminal(),
	}
}

// Banner prints the startup banner.
func (i *Interactive) Banner() {
	i.processor.printer.Banner(version.Banner())
}

// Run reads and dispatches lines until exit, end of input or a fatal error.
// The fatal error, if any, is returned.
func (i *Interactive) Run() error {
	if i.close != nil {
		defer i.close()
	}

	for {
		line, err := i.reader.ReadLineErr()
		switch {
		case errors.Is(err, readline.ErrInterrupt):
			continue
		case errors.Is(err, io.EOF):
			logger.Debug("End of input", "session", i.processor.Session().ID())
			return nil
		case err != nil:
			return fmt.Errorf("failed to read input: %w", err)
		}

		if i.echo {
			i.processor.printer.Println(i.processor.Session().Prompt() + line)
		}

		result, err := i.processor.ProcessLine(line)
		if err != nil {
			i.processor.printer.Error(err.Error())
			return err
		}
		if result == xiontypes.Terminate {
			logger.Debug("Session terminated", "session", i.processor.Session().ID())
			return nil
		}

		i.reader.SetPrompt(i.processor.Session().Prompt())
	}
}
