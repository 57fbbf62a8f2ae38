package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/x/ansi"
)

// Printer writes driver messages (banner, errors, hints) with optional styling.
type Printer struct {
	styleProvider StyleProvider
	writer        io.Writer
	mode          Mode

	mu sync.Mutex
}

// NewPrinter creates a Printer writing to os.Stdout in auto mode.
func NewPrinter(options ...Option) *Printer {
	p := &Printer{
		writer: os.Stdout,
		mode:   ModeAuto,
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

// Println outputs text with a newline and no semantic styling.
func (p *Printer) Println(text string) {
	p.output(SemanticPlain, text)
}

// Info outputs informational text.
func (p *Printer) Info(text string) {
	p.output(SemanticInfo, text)
}

// Error outputs error text.
func (p *Printer) Error(text string) {
	p.output(SemanticError, text)
}

// Banner outputs the startup banner.
func (p *Printer) Banner(text string) {
	p.output(SemanticBanner, text)
}

func (p *Printer) render(semantic SemanticType, text string) string {
	if p.mode == ModePlain || p.styleProvider == nil || semantic == SemanticPlain {
		if p.mode == ModePlain {
			return ansi.Strip(text)
		}
		return text
	}
	return p.styleProvider.GetStyle(semantic).Render(text)
}

func (p *Printer) output(semantic SemanticType, text string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	result := p.render(semantic, text)
	if !strings.HasSuffix(result, "\n") {
		result += "\n"
	}
	_, _ = fmt.Fprint(p.writer, result)
}
