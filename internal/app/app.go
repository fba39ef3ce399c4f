package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/agbru/fibfizz/internal/cli"
	"github.com/agbru/fibfizz/internal/config"
	apperrors "github.com/agbru/fibfizz/internal/errors"
	"github.com/agbru/fibfizz/internal/logging"
	"github.com/agbru/fibfizz/internal/tui"
	"github.com/agbru/fibfizz/internal/ui"
)

// Application represents the fibfizz application instance.
type Application struct {
	Config    config.AppConfig
	ErrWriter io.Writer
	In        io.Reader
	Logger    logging.Logger

	isTerminal func(io.Writer) bool
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithInput sets the reader used by the interactive REPL.
func WithInput(in io.Reader) AppOption {
	return func(a *Application) { a.In = in }
}

// WithTerminalDetector overrides terminal detection, which decides whether
// colors and the spinner are used.
func WithTerminalDetector(isTerminal func(io.Writer) bool) AppOption {
	return func(a *Application) { a.isTerminal = isTerminal }
}

// New creates a new Application instance by parsing command-line arguments.
// Errors other than a help request are reported on errWriter.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter, In: os.Stdin, isTerminal: ui.IsTerminal}
	for _, opt := range opts {
		opt(app)
	}

	programName := "fibfizz"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, cli.Formats())
	if err == nil {
		err = checkLogLevel(cfg.LogLevel)
	}
	if err != nil {
		if !IsHelpError(err) {
			fmt.Fprintf(errWriter, "Error: %v\n", err)
		}
		return nil, err
	}

	app.Config = cfg
	return app, nil
}

func checkLogLevel(name string) error {
	if _, err := logging.ParseLevel(name); err != nil {
		return apperrors.NewConfigError("invalid --log-level: %v", err)
	}
	return nil
}

// Run executes the application based on the configured mode and returns
// the process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	level, _ := logging.ParseLevel(a.Config.LogLevel)
	a.Logger = logging.NewConsoleLogger(a.ErrWriter, level, a.Config.NoColor || !a.isTerminal(a.ErrWriter))
	ui.InitTheme(a.Config.NoColor || !a.isTerminal(out))

	a.Logger.Debug("configuration",
		logging.Int("n", a.Config.N),
		logging.String("format", a.Config.Format),
		logging.String("output", a.Config.OutputFile),
		logging.Duration("timeout", a.Config.Timeout),
		logging.String("theme", ui.GetCurrentTheme().Name))

	switch {
	case a.Config.Interactive:
		return a.runREPL(out)
	case a.Config.TUI:
		return a.runTUI(ctx)
	default:
		return a.runGenerate(ctx, out)
	}
}

// colored reports whether the active theme emits escape codes.
func (a *Application) colored() bool {
	return ui.GetCurrentTheme().Name != ui.NoColorTheme.Name
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion, cli.Formats()); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// runREPL starts the interactive session.
func (a *Application) runREPL(out io.Writer) int {
	repl := cli.NewREPL(cli.REPLConfig{
		Format:  a.Config.Format,
		Timeout: a.Config.Timeout,
		Colored: a.colored(),
	})
	repl.SetInput(a.In)
	repl.SetOutput(out)
	repl.Start()
	return apperrors.ExitSuccess
}

// runTUI launches the record browser. The run timeout does not apply to an
// interactive session.
func (a *Application) runTUI(ctx context.Context) int {
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	bound := config.DefaultTUIBound
	if a.Config.HasN() {
		bound = a.Config.N
	}
	return tui.Run(ctx, bound, Version)
}

// reportError prints err and returns its exit code.
func (a *Application) reportError(err error) int {
	fmt.Fprintf(a.ErrWriter, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
	return apperrors.ExitCodeFor(err)
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
