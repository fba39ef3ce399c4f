// Package config parses command-line flags and FIBFIZZ_ environment
// variables into an AppConfig.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/agbru/fibfizz/internal/errors"
	"github.com/agbru/fibfizz/internal/fibonacci"
)

// EnvPrefix is prepended to every environment variable read by this package.
const EnvPrefix = "FIBFIZZ_"

const (
	// FormatPlain prints the label or number only.
	FormatPlain = "plain"
	// FormatDebug prints position, term and result on one line.
	FormatDebug = "debug"

	// DefaultTimeout bounds a single run.
	DefaultTimeout = time.Minute
	// DefaultLogLevel keeps diagnostics quiet unless something goes wrong.
	DefaultLogLevel = "warn"
	// DefaultTUIBound is the initial bound of the TUI when no N is given.
	DefaultTUIBound = 20
	// unsetN marks that no bound was given on the command line or in the
	// environment.
	unsetN = -1
)

// AppConfig aggregates the application's configuration parameters.
type AppConfig struct {
	// N is the inclusive position bound. Negative until set.
	N int
	// Format selects the record format ("plain", "debug", "jsonl", "tsv").
	Format string
	// OutputFile, when set, receives a copy of the records.
	OutputFile string
	// Quiet suppresses the banner and the summary.
	Quiet bool
	// Summary prints per-label counts on stderr after the run.
	Summary bool
	// NoColor disables ANSI colours.
	NoColor bool
	// Timeout aborts the run after the given duration.
	Timeout time.Duration
	// LogLevel is the zerolog level name for diagnostics on stderr.
	LogLevel string
	// MetricsFile, when set, receives a Prometheus textfile after the run.
	MetricsFile string
	// TUI launches the interactive browser.
	TUI bool
	// Interactive launches the REPL.
	Interactive bool
	// Completion names a shell to print a completion script for.
	Completion string

	// nGiven records that N came from a flag, a positional or the
	// environment, so an explicit negative bound is not mistaken for none.
	nGiven bool

	// Raw environment inputs resolved by ParseConfig.
	envN      string
	envDebug  bool
	envFormat bool
}

// HasN reports whether a position bound was supplied.
func (c AppConfig) HasN() bool { return c.N >= 0 }

// ParseConfig parses command-line arguments, applies FIBFIZZ_ environment
// overrides for flags that were not given, and validates the result.
//
// The position bound may be given positionally (`fibfizz 20 --debug`) or with
// -n. Flags and positionals may be interleaved.
//
// Parameters:
//   - programName: The name shown in usage output.
//   - args: The arguments, without the program name.
//   - errWriter: Where usage and parse errors are written.
//   - availableFormats: The record formats the caller can render.
//
// Returns:
//   - AppConfig: The parsed configuration.
//   - error: flag.ErrHelp for --help, or a ConfigError/ValidationError.
func ParseConfig(programName string, args []string, errWriter io.Writer, availableFormats []string) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)

	config := AppConfig{}
	var debug bool

	fs.IntVar(&config.N, "n", unsetN, "Inclusive position bound (0-92). May also be given positionally.")
	fs.BoolVar(&debug, "debug", false, "Verbose records: position, term and result (same as --format=debug).")
	fs.StringVar(&config.Format, "format", FormatPlain, "Record format: "+strings.Join(availableFormats, ", ")+".")
	fs.StringVar(&config.OutputFile, "output", "", "Also write the records to this file.")
	fs.StringVar(&config.OutputFile, "o", "", "Shorthand for --output.")
	fs.BoolVar(&config.Quiet, "quiet", false, "Suppress the banner and the summary.")
	fs.BoolVar(&config.Quiet, "q", false, "Shorthand for --quiet.")
	fs.BoolVar(&config.Summary, "summary", false, "Print per-label counts on stderr after the run.")
	fs.BoolVar(&config.Summary, "s", false, "Shorthand for --summary.")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colours (also honours NO_COLOR).")
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "Abort the run after this duration.")
	fs.StringVar(&config.LogLevel, "log-level", DefaultLogLevel, "Diagnostic log level: debug, info, warn, error, disabled.")
	fs.StringVar(&config.MetricsFile, "metrics-file", "", "Write Prometheus metrics in textfile format to this path.")
	fs.BoolVar(&config.TUI, "tui", false, "Browse the records in an interactive terminal UI.")
	fs.BoolVar(&config.Interactive, "interactive", false, "Start an interactive classification session.")
	fs.BoolVar(&config.Interactive, "i", false, "Shorthand for --interactive.")
	fs.StringVar(&config.Completion, "completion", "", "Print a completion script: bash, zsh, fish, powershell.")

	fs.Usage = func() { printUsage(fs, programName) }

	flagArgs, positionals := SplitFlagsAndPositionals(fs, args)
	if err := fs.Parse(flagArgs); err != nil {
		return AppConfig{}, err
	}
	positionals = append(positionals, fs.Args()...)

	config.nGiven = isFlagSet(fs, "n")
	applyEnvOverrides(&config, fs)

	if len(positionals) > 1 {
		return AppConfig{}, apperrors.NewConfigError("expected at most one positional argument N, got %d: %s",
			len(positionals), strings.Join(positionals, " "))
	}
	if len(positionals) == 1 {
		if isFlagSet(fs, "n") {
			return AppConfig{}, apperrors.NewConfigError("N given both positionally and with -n")
		}
		n, err := parseBound("n", positionals[0])
		if err != nil {
			return AppConfig{}, err
		}
		config.N = n
		config.nGiven = true
	} else if config.envN != "" && config.Completion == "" {
		n, err := parseBound(EnvPrefix+"N", config.envN)
		if err != nil {
			return AppConfig{}, err
		}
		config.N = n
		config.nGiven = true
	}

	switch {
	case debug:
		if isFlagSet(fs, "format") && config.Format != FormatDebug {
			return AppConfig{}, apperrors.NewConfigError("--debug conflicts with --format=%s", config.Format)
		}
		config.Format = FormatDebug
	case config.envDebug:
		if config.envFormat && config.Format != FormatDebug {
			return AppConfig{}, apperrors.NewConfigError("%sDEBUG conflicts with %sFORMAT=%s", EnvPrefix, EnvPrefix, config.Format)
		}
		config.Format = FormatDebug
	}

	if err := config.Validate(availableFormats); err != nil {
		return AppConfig{}, err
	}
	return config, nil
}

// parseBound parses a bound given positionally or through FIBFIZZ_N. field
// names the source in the error. Non-integers and values outside the int
// range are rejected here, before the core runs.
func parseBound(field, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return 0, apperrors.ValidationError{Field: field, Message: fmt.Sprintf("%q is out of range", s)}
		}
		return 0, apperrors.ValidationError{Field: field, Message: fmt.Sprintf("%q is not an integer", s)}
	}
	return n, nil
}

// Validate checks the configuration for consistency.
//
// Returns:
//   - error: A ValidationError for an out-of-range N, a ConfigError otherwise,
//     or nil if the configuration is valid.
func (c AppConfig) Validate(availableFormats []string) error {
	if c.Completion != "" {
		return nil
	}
	if c.TUI && c.Interactive {
		return apperrors.NewConfigError("--tui and --interactive are mutually exclusive")
	}
	if c.N < 0 {
		if c.nGiven {
			return apperrors.ValidationError{Field: "n", Message: "must be non-negative"}
		}
		if !c.TUI && !c.Interactive {
			return apperrors.NewConfigError("missing N: run with a position bound, e.g. fibfizz 20")
		}
	}
	if c.N > fibonacci.MaxIndex {
		return apperrors.ValidationError{Field: "n", Message: fmt.Sprintf("must be at most %d (F(%d) overflows int64)", fibonacci.MaxIndex, fibonacci.MaxIndex+1)}
	}
	if !slices.Contains(availableFormats, c.Format) {
		return apperrors.NewConfigError("unknown format %q (accepted values: %s)", c.Format, strings.Join(availableFormats, ", "))
	}
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("--timeout must be positive, got %s", c.Timeout)
	}
	return nil
}

func printUsage(fs *flag.FlagSet, programName string) {
	out := fs.Output()
	fmt.Fprintf(out, "Usage: %s [flags] N\n\n", programName)
	fmt.Fprintf(out, "Fizz-buzz the Fibonacci numbers F(0) through F(N).\n")
	fmt.Fprintf(out, "Primes print BuzzFizz; multiples of 15, 3 and 5 print FizzBuzz, Fizz and Buzz.\n\n")
	fmt.Fprintf(out, "Flags:\n")
	fs.PrintDefaults()
	fmt.Fprintf(out, "\nEnvironment variables (%sN, %sFORMAT, ...) apply when the flag is not given.\n", EnvPrefix, EnvPrefix)
	fmt.Fprintf(out, "\nExample: %s 20 --debug\n", programName)
}
