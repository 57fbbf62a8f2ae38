package shell

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"xion/internal/logger"
	"xion/pkg/xiontypes"
)

// ScriptOptions controls non-interactive execution.
type ScriptOptions struct {
	// Echo prints the prompt and each line before running it.
	Echo bool
}

// RunScript reads commands from r one line per command. Blank lines and lines
// starting with # are skipped. Execution stops at exit or at the first fatal
// error, which is returned.
func RunScript(r io.Reader, p *Processor, opts ScriptOptions) error {
	scanner := bufio.NewScanner(r)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || isComment(line) {
			continue
		}

		if opts.Echo {
			p.printer.Println(p.Session().Prompt() + line)
		}

		result, err := p.ProcessLine(line)
		if err != nil {
			p.printer.Error(err.Error())
			return fmt.Errorf("line %d: %w", lineNum, err)
		}
		if result == xiontypes.Terminate {
			logger.Debug("Script terminated", "line", lineNum)
			return nil
		}
	}

	if err := scanner.Err(); err != nil {
		err = fmt.Errorf("failed to read script: %w", err)
		p.printer.Error(err.Error())
		return err
	}
	return nil
}

// RunScriptFile runs the script at path. Every returned error has already
// been printed.
func RunScriptFile(path string, p *Processor, opts ScriptOptions) error {
	file, err := os.Open(path)
	if err != nil {
		err = fmt.Errorf("failed to open script %s: %w", path, err)
		p.printer.Error(err.Error())
		return err
	}
	defer file.Close()

	logger.NewStyledLogger("script").Debug("Running script", "path", path)
	return RunScript(file, p, opts)
}

// RunRCFile runs the startup file at path. A missing file is not an error.
func RunRCFile(path string, p *Processor) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		logger.Debug("No rc file", "path", path)
		return nil
	}
	return RunScriptFile(path, p, ScriptOptions{})
}
