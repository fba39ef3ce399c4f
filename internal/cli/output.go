package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	apperrors "github.com/agbru/fibfizz/internal/errors"
	"github.com/agbru/fibfizz/internal/fizzbuzz"
	"github.com/agbru/fibfizz/internal/orchestration"
	"github.com/agbru/fibfizz/internal/ui"
)

// SummaryBarWidth is the width in characters of the longest bar in the
// summary table.
const SummaryBarWidth = 30

// summaryRowPrefix is the width of a summary row before its bar.
const summaryRowPrefix = 18

// RecordWriter is an orchestration.Sink that formats records onto a
// buffered writer. Call Flush when the run ends.
type RecordWriter struct {
	w          *bufio.Writer
	formatter  RecordFormatter
	headerDone bool
}

// NewRecordWriter wraps w with the given formatter.
func NewRecordWriter(w io.Writer, formatter RecordFormatter) *RecordWriter {
	return &RecordWriter{w: bufio.NewWriter(w), formatter: formatter}
}

// Emit writes one record, preceded by the format header on first use.
func (rw *RecordWriter) Emit(rec orchestration.Record) error {
	if !rw.headerDone {
		rw.headerDone = true
		if err := rw.formatter.Header(rw.w); err != nil {
			return err
		}
	}
	return rw.formatter.Format(rw.w, rec)
}

// Flush writes any buffered data to the underlying writer.
func (rw *RecordWriter) Flush() error {
	return rw.w.Flush()
}

// CreateOutputFile creates (or truncates) path, creating parent
// directories as needed. Failures are reported as apperrors.OutputError.
func CreateOutputFile(path string) (*os.File, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, apperrors.OutputError{Path: path, Cause: err}
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, apperrors.OutputError{Path: path, Cause: err}
	}
	return f, nil
}

// FormatBanner returns the startup line announcing the run.
func FormatBanner(n int) string {
	return fmt.Sprintf("Generating a Fibonacci sequence of length %d for fizz-buzzifying", n)
}

// DisplayBanner writes the startup line to out.
func DisplayBanner(out io.Writer, n int) {
	fmt.Fprintf(out, "%s%s%s\n", ui.ColorBold(), FormatBanner(n), ui.ColorReset())
}

// FormatExecutionDuration formats a time.Duration for display.
// It shows microseconds for durations less than a millisecond, milliseconds for
// durations less than a second, and the default string representation otherwise.
func FormatExecutionDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	} else if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.String()
}

// DisplaySummary writes the per-label counts of a run as a small bar chart.
//
// Parameters:
//   - out: The output writer, normally stderr.
//   - summary: The run summary.
//   - colored: Whether label names are colored.
func DisplaySummary(out io.Writer, summary orchestration.Summary, colored bool) {
	fmt.Fprintf(out, "%sSummary:%s %d records in %s\n",
		ui.ColorBold(), ui.ColorReset(), summary.Records, FormatExecutionDuration(summary.Elapsed))

	// Narrow terminals get a shorter bar instead of wrapped rows.
	barWidth := min(SummaryBarWidth, max(ui.TerminalWidth(out, 80)-summaryRowPrefix, 0))

	for _, l := range fizzbuzz.Labels {
		name := l.String()
		if colored {
			// Pad before painting so escape codes do not skew the columns.
			name = ui.Paint(LabelColor(l), fmt.Sprintf("%-9s", name))
		} else {
			name = fmt.Sprintf("%-9s", name)
		}
		displaySummaryRow(out, name, summary.Labels[l], summary.Records, barWidth)
	}
	displaySummaryRow(out, fmt.Sprintf("%-9s", "numbers"), summary.Numbers, summary.Records, barWidth)
}

func displaySummaryRow(out io.Writer, name string, count, total, barWidth int) {
	fraction := 0.0
	if total > 0 {
		fraction = float64(count) / float64(total)
	}
	fmt.Fprintf(out, "  %s %4d  %s\n", name, count, progressBar(fraction, barWidth))
}
