package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/agbru/fibfizz/internal/fibonacci"
	"github.com/agbru/fibfizz/internal/fizzbuzz"
	"github.com/agbru/fibfizz/internal/orchestration"
	"github.com/agbru/fibfizz/internal/sysmon"
	"github.com/agbru/fibfizz/internal/ui"
)

// REPLConfig holds configuration for the REPL session.
type REPLConfig struct {
	// Format is the initial record format used by "seq".
	Format string
	// Timeout bounds each "seq" run.
	Timeout time.Duration
	// Colored enables label colors in record output.
	Colored bool
}

// REPL is an interactive session for classifying numbers and printing
// sequences.
type REPL struct {
	config REPLConfig
	in     io.Reader
	out    io.Writer
}

// NewREPL creates a new REPL instance. An unknown format falls back to
// plain.
func NewREPL(config REPLConfig) *REPL {
	if _, ok := formatters[config.Format]; !ok {
		config.Format = FormatPlain
	}
	return &REPL{
		config: config,
		in:     os.Stdin,
		out:    os.Stdout,
	}
}

// SetInput sets a custom input reader (useful for testing).
func (r *REPL) SetInput(in io.Reader) {
	r.in = in
}

// SetOutput sets a custom output writer (useful for testing).
func (r *REPL) SetOutput(out io.Writer) {
	r.out = out
}

// Start runs the session until "exit" or EOF.
func (r *REPL) Start() {
	r.printBanner()
	r.printHelp()
	fmt.Fprintln(r.out)

	reader := bufio.NewReader(r.in)

	for {
		fmt.Fprint(r.out, ui.ColorGreen()+"fizz> "+ui.ColorReset())

		input, err := reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(r.out, "\nGoodbye!")
				return
			}
			// Any other read error ends the session.
			fmt.Fprintf(r.out, "%sRead error: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
			return
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		if !r.processCommand(input) {
			return
		}
	}
}

func (r *REPL) printBanner() {
	fmt.Fprintf(r.out, "\n%s╔══════════════════════════════════════════════════╗%s\n", ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s║%s     %sFibonacci FizzBuzz - Interactive Mode%s        %s║%s\n",
		ui.ColorCyan(), ui.ColorReset(), ui.ColorBold(), ui.ColorReset(), ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s╚══════════════════════════════════════════════════╝%s\n\n", ui.ColorCyan(), ui.ColorReset())
}

func (r *REPL) printHelp() {
	fmt.Fprintf(r.out, "%sAvailable commands:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sclassify <x>%s  - Classify an integer\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sfib <n>%s       - Show F(n) and its classification\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sseq <n>%s       - Print records for positions 0..n\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sformat <name>%s - Change record format (%s)\n", ui.ColorYellow(), ui.ColorReset(), strings.Join(Formats(), ", "))
	fmt.Fprintf(r.out, "  %sstatus%s        - Display current configuration and host usage\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %shelp%s          - Display this help\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sexit%s / %squit%s   - Exit interactive mode\n", ui.ColorYellow(), ui.ColorReset(), ui.ColorYellow(), ui.ColorReset())
}

// processCommand parses and executes a user command.
// Returns false if the REPL should exit.
func (r *REPL) processCommand(input string) bool {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return true
	}

	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "classify", "c":
		r.cmdClassify(args)
	case "fib", "f":
		r.cmdFib(args)
	case "seq", "s":
		r.cmdSeq(args)
	case "format", "fmt":
		r.cmdFormat(args)
	case "status", "st":
		r.cmdStatus()
	case "help", "h", "?":
		r.printHelp()
	case "exit", "quit", "q":
		fmt.Fprintf(r.out, "%sGoodbye!%s\n", ui.ColorGreen(), ui.ColorReset())
		return false
	default:
		// A bare number prints the sequence up to it.
		if n, err := strconv.Atoi(cmd); err == nil {
			r.sequence(n)
		} else {
			fmt.Fprintf(r.out, "%sUnknown command: %s%s\n", ui.ColorRed(), cmd, ui.ColorReset())
			fmt.Fprintf(r.out, "Type %shelp%s to see available commands.\n", ui.ColorYellow(), ui.ColorReset())
		}
	}

	return true
}

func (r *REPL) cmdClassify(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: classify <x>%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}
	x, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Fprintf(r.out, "%sInvalid integer: %s%s\n", ui.ColorRed(), args[0], ui.ColorReset())
		return
	}
	fmt.Fprintf(r.out, "  %d ==> %s\n", x, FormatResult(fizzbuzz.Classify(x), r.config.Colored))
}

// parseBound parses a position argument and checks it against MaxIndex.
func (r *REPL) parseBound(cmd string, args []string) (int, bool) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: %s <n>%s\n", ui.ColorRed(), cmd, ui.ColorReset())
		return 0, false
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintf(r.out, "%sInvalid value: %s%s\n", ui.ColorRed(), args[0], ui.ColorReset())
		return 0, false
	}
	if n < 0 || n > fibonacci.MaxIndex {
		fmt.Fprintf(r.out, "%sPosition must be between 0 and %d%s\n", ui.ColorRed(), fibonacci.MaxIndex, ui.ColorReset())
		return 0, false
	}
	return n, true
}

func (r *REPL) cmdFib(args []string) {
	n, ok := r.parseBound("fib", args)
	if !ok {
		return
	}
	term, err := fibonacci.At(n)
	if err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}
	rec := orchestration.Record{Position: n, Term: term, Result: fizzbuzz.Classify(term)}
	fmt.Fprintf(r.out, "  %s\n", formatDebug(rec, r.config.Colored))
}

func (r *REPL) cmdSeq(args []string) {
	if n, ok := r.parseBound("seq", args); ok {
		r.sequence(n)
	}
}

// sequence runs the driver for 0..n with the current format.
func (r *REPL) sequence(n int) {
	if n < 0 || n > fibonacci.MaxIndex {
		fmt.Fprintf(r.out, "%sPosition must be between 0 and %d%s\n", ui.ColorRed(), fibonacci.MaxIndex, ui.ColorReset())
		return
	}
	formatter, err := NewFormatter(r.config.Format, r.config.Colored)
	if err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), r.config.Timeout)
	defer cancel()

	w := NewRecordWriter(r.out, formatter)
	summary, err := orchestration.NewDriver().Run(ctx, n, w)
	if flushErr := w.Flush(); err == nil {
		err = flushErr
	}
	if err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}
	fmt.Fprintf(r.out, "%s%d records in %s%s\n", ui.ColorGrey(), summary.Records,
		FormatExecutionDuration(summary.Elapsed), ui.ColorReset())
}

func (r *REPL) cmdFormat(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: format <name>%s\n", ui.ColorRed(), ui.ColorReset())
		fmt.Fprintf(r.out, "Available formats: %s\n", strings.Join(Formats(), ", "))
		return
	}
	name := strings.ToLower(args[0])
	if _, ok := formatters[name]; !ok {
		fmt.Fprintf(r.out, "%sUnknown format: %s%s\n", ui.ColorRed(), name, ui.ColorReset())
		fmt.Fprintf(r.out, "Available formats: %s\n", strings.Join(Formats(), ", "))
		return
	}
	r.config.Format = name
	fmt.Fprintf(r.out, "Format changed to: %s%s%s\n", ui.ColorGreen(), name, ui.ColorReset())
}

func (r *REPL) cmdStatus() {
	fmt.Fprintf(r.out, "\n%sCurrent configuration:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Format:   %s%s%s\n", ui.ColorCyan(), r.config.Format, ui.ColorReset())
	fmt.Fprintf(r.out, "  Timeout:  %s%s%s\n", ui.ColorCyan(), r.config.Timeout, ui.ColorReset())
	colors := "no"
	if r.config.Colored {
		colors = "yes"
	}
	fmt.Fprintf(r.out, "  Colors:   %s%s%s\n", ui.ColorCyan(), colors, ui.ColorReset())
	host := sysmon.Sample()
	fmt.Fprintf(r.out, "  Host:     %sCPU %.1f%%  MEM %.1f%%%s\n", ui.ColorCyan(), host.CPUPercent, host.MemPercent, ui.ColorReset())
	fmt.Fprintln(r.out)
}
