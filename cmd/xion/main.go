// Package main provides the Xion CLI entry point.
// Xion is an interactive command shell organized into switchable modules.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	_ "xion/internal/commands/builtin" // Declares the main module (init functions)
	"xion/internal/commands/network"
	"xion/internal/config"
	"xion/internal/logger"
	"xion/internal/output"
	"xion/internal/session"
	"xion/internal/shell"
	"xion/internal/testutils"
	"xion/internal/version"
)

// scriptExt is the required extension of batch scripts.
const scriptExt = ".xion"

var (
	configFile string
	echo       bool
	cfg        *config.Config
)

// errExit carries a process exit code out of a cobra Run function. A
// reported error was already printed by the shell.
type errExit struct {
	code     int
	err      error
	reported bool
}

func (e *errExit) Error() string { return e.err.Error() }
func (e *errExit) Unwrap() error { return e.err }

var rootCmd = &cobra.Command{
	Use:   "xion",
	Short: "Xion - a modular interactive command shell",
	Long: `Xion is an interactive command shell. Commands are contributed by modules;
"use <module>" switches the active module, and the options set with "set"
belong to the active module.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runShell,
}

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start interactive shell mode",
	Long:  `Start the interactive Xion shell. This is the default when no subcommand is given.`,
	RunE:  runShell,
}

var batchCmd = &cobra.Command{
	Use:   "batch <script.xion>",
	Short: "Execute a .xion script file in batch mode",
	Long: `Execute a .xion script without entering interactive mode. Each line is one
command; blank lines and lines starting with # are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version.GetDetailedVersion())
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(exitCode(err))
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String(config.KeyLogLevel, "", "Set log level (debug|info|warn|error) [default: info]")
	flags.String(config.KeyLogFile, "", "Write logs to file instead of stderr")
	flags.Bool(config.KeyTestMode, false, "Run in deterministic test mode")
	flags.Bool(config.KeyNoColor, false, "Disable colored output")
	flags.StringVar(&configFile, "config", "", "Config file (default is <config dir>/config.yaml)")

	for _, key := range []string{config.KeyLogLevel, config.KeyLogFile, config.KeyTestMode, config.KeyNoColor} {
		if err := viper.BindPFlag(key, flags.Lookup(key)); err != nil {
			fmt.Fprintf(os.Stderr, "Error binding %s flag: %v\n", key, err)
			os.Exit(1)
		}
	}

	batchCmd.Flags().BoolVar(&echo, "echo", false, "Print the prompt and each command before running it")

	rootCmd.AddCommand(shellCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(versionCmd)

	cobra.OnInitialize(initConfig)
}

func initConfig() {
	loaded, err := config.Load(viper.GetViper(), config.Paths{ConfigFile: configFile})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	cfg = loaded

	if err := logger.Configure(cfg.LogLevel, cfg.LogFile, cfg.TestMode); err != nil {
		fmt.Fprintf(os.Stderr, "Error configuring logger: %v\n", err)
		os.Exit(1)
	}
	logger.Debug("Configuration loaded", "file", cfg.ConfigFile, "env_files", cfg.EnvFiles)
}

// newSession registers the built-in modules and activates the default one.
func newSession() (*session.Session, error) {
	s := session.New(session.WithID(testutils.GenerateSessionID(cfg.TestMode)))

	if err := s.RegisterModule("main", nil); err != nil {
		return nil, err
	}
	if err := s.RegisterModule("net", network.Module); err != nil {
		return nil, err
	}
	if err := s.ChangeModule(cfg.DefaultModule); err != nil {
		return nil, fmt.Errorf("default module: %w", err)
	}

	logger.Info("Session started", "session", s.ID(), "module", s.ActiveModuleName(), "commands", s.Commands().Len())
	return s, nil
}

// newPrinter builds the driver printer, themed unless color is disabled.
func newPrinter() *output.Printer {
	if cfg.NoColor || cfg.TestMode {
		return output.NewPrinter(output.PlainText())
	}

	renderer := lipgloss.NewRenderer(os.Stdout)
	if os.Getenv("NO_COLOR") != "" {
		renderer.SetColorProfile(termenv.Ascii)
	}
	theme, err := output.DefaultTheme(renderer)
	if err != nil {
		logger.Warn("Failed to load theme", "error", err)
		return output.NewPrinter()
	}
	return output.NewPrinter(output.WithStyles(theme))
}

func newProcessor() *shell.Processor {
	s, err := newSession()
	if err != nil {
		logger.Fatal("Failed to start session", "error", err)
	}
	return shell.NewProcessor(s, newPrinter(), shell.WithSuggestions(cfg.Suggest))
}

func runShell(_ *cobra.Command, _ []string) error {
	logger.Info("Starting Xion", "version", version.Version)

	processor := newProcessor()
	interactive := shell.NewInteractive(processor)
	interactive.Banner()

	if err := shell.RunRCFile(cfg.RCFile, processor); err != nil {
		return &errExit{code: 1, err: err, reported: true}
	}

	if err := interactive.Run(); err != nil {
		return &errExit{code: 1, err: err, reported: true}
	}
	return nil
}

func runBatch(_ *cobra.Command, args []string) error {
	scriptPath := args[0]
	logger.Info("Starting Xion batch mode", "version", version.Version, "script", scriptPath)

	if err := validateScriptFile(scriptPath); err != nil {
		return &errExit{code: 1, err: err}
	}

	processor := newProcessor()

	if err := shell.RunScriptFile(scriptPath, processor, shell.ScriptOptions{Echo: echo}); err != nil {
		return &errExit{code: 1, err: err, reported: true}
	}

	logger.Info("Script executed successfully", "script", scriptPath)
	return nil
}

func validateScriptFile(scriptPath string) error {
	if _, err := os.Stat(scriptPath); os.IsNotExist(err) {
		return fmt.Errorf("script file does not exist: %s", scriptPath)
	}
	if ext := filepath.Ext(scriptPath); ext != scriptExt {
		return fmt.Errorf("script file must have %s extension, got: %s", scriptExt, ext)
	}
	return nil
}

// exitCode reports err on stderr unless the shell already printed it, and
// maps it to a process exit code.
func exitCode(err error) int {
	var exit *errExit
	if errors.As(err, &exit) {
		if exit.reported {
			logger.Debug("Xion stopped", "error", exit.err)
		} else {
			logger.Error("Xion stopped", "error", exit.err)
		}
		return exit.code
	}
	fmt.Fprintln(os.Stderr, err)
	return 1
}
