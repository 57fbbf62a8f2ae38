// Package logger provides centralized logging for Xion.
// It wraps charmbracelet/log with a process-wide logger configured from CLI flags and environment.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// Logger is the global logger instance used throughout Xion.
var Logger *log.Logger

// output is where Logger and component loggers write.
var output io.Writer = os.Stderr

func init() {
	Logger = log.New(output)
	Logger.SetTimeFormat("")
	Logger.SetLevel(log.InfoLevel)
}

// Configure sets up the logger based on CLI flags and environment variables.
// Precedence for the level: flag > XION_LOG_LEVEL > info.
func Configure(logLevel string, logFile string, testMode bool) error {
	level := logLevel
	if level == "" {
		level = strings.ToLower(os.Getenv("XION_LOG_LEVEL"))
	}

	var w io.Writer = os.Stderr
	if logFile != "" {
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return err
		}
		w = file
	}
	output = w

	Logger = log.New(output)
	Logger.SetTimeFormat("")
	Logger.SetLevel(ParseLevel(level))

	if testMode {
		// Deterministic output for transcript comparisons.
		Logger.SetLevel(log.WarnLevel)
	}

	return nil
}

// SetOutput redirects the global logger, keeping its level.
func SetOutput(w io.Writer) {
	level := Logger.GetLevel()
	output = w
	Logger = log.New(w)
	Logger.SetTimeFormat("")
	Logger.SetLevel(level)
}

// ParseLevel converts a level name to a log level, defaulting to info.
func ParseLevel(level string) log.Level {
	switch strings.ToLower(level) {
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "warn":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	case "fatal":
		return log.FatalLevel
	default:
		return log.InfoLevel
	}
}

// Debug logs a debug message with optional key-value pairs.
func Debug(msg interface{}, keyvals ...interface{}) {
	Logger.Debug(msg, keyvals...)
}

// Info logs an info message with optional key-value pairs.
func Info(msg interface{}, keyvals ...interface{}) {
	Logger.Info(msg, keyvals...)
}

// Warn logs a warning message with optional key-value pairs.
func Warn(msg interface{}, keyvals ...interface{}) {
	Logger.Warn(msg, keyvals...)
}

// Error logs an error message with optional key-value pairs.
func Error(msg interface{}, keyvals ...interface{}) {
	Logger.Error(msg, keyvals...)
}

// Fatal logs a fatal message with optional key-value pairs and exits.
func Fatal(msg interface{}, keyvals ...interface{}) {
	Logger.Fatal(msg, keyvals...)
}

// CommandDispatch logs a dispatched command for debugging.
func CommandDispatch(token string, args []string) {
	Debug("Dispatching command", "command", token, "args", args)
}

// NewStyledLogger creates a component logger with a prefix and colored level
// badges, writing where the global logger writes.
func NewStyledLogger(prefix string) *log.Logger {
	styles := log.DefaultStyles()

	badge := func(label, bg string) lipgloss.Style {
		return lipgloss.NewStyle().
			SetString(label).
			Padding(0, 1, 0, 1).
			Background(lipgloss.Color(bg)).
			Foreground(lipgloss.Color("15"))
	}
	styles.Levels[log.DebugLevel] = badge("DEBUG", "240")
	styles.Levels[log.InfoLevel] = badge("INFO", "33")
	styles.Levels[log.WarnLevel] = badge("WARN", "214")
	styles.Levels[log.ErrorLevel] = badge("ERROR", "196")
	styles.Levels[log.FatalLevel] = badge("FATAL", "88")

	styles.Keys["module"] = lipgloss.NewStyle().Foreground(lipgloss.Color("99"))
	styles.Keys["command"] = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	styles.Keys["error"] = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	styles.Values["error"] = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))

	componentLogger := log.NewWithOptions(output, log.Options{
		Prefix: prefix + " ",
	})
	componentLogger.SetStyles(styles)
	componentLogger.SetLevel(Logger.GetLevel())

	return componentLogger
}
