package app

import (
	"context"
	"errors"
	"io"
	"os/signal"
	"syscall"

	"github.com/agbru/fibfizz/internal/cli"
	apperrors "github.com/agbru/fibfizz/internal/errors"
	"github.com/agbru/fibfizz/internal/logging"
	"github.com/agbru/fibfizz/internal/metrics"
	"github.com/agbru/fibfizz/internal/orchestration"
)

const stdoutName = "stdout"

// destination is one formatted output of a run.
type destination struct {
	name   string
	writer *cli.RecordWriter
}

// Emit writes the record and reports failures as OutputError.
func (d destination) Emit(rec orchestration.Record) error {
	if err := d.writer.Emit(rec); err != nil {
		return apperrors.OutputError{Path: d.name, Cause: err}
	}
	return nil
}

func (d destination) flush() error {
	if err := d.writer.Flush(); err != nil {
		return apperrors.OutputError{Path: d.name, Cause: err}
	}
	return nil
}

// runGenerate emits the records for 0..N to out and the optional output
// file, then writes the summary and metrics.
func (a *Application) runGenerate(ctx context.Context, out io.Writer) int {
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	formatter, err := cli.NewFormatter(a.Config.Format, a.colored())
	if err != nil {
		return a.reportError(apperrors.NewConfigError("%v", err))
	}

	if !a.Config.Quiet {
		cli.DisplayBanner(a.ErrWriter, a.Config.N)
	}

	dests := []destination{{name: stdoutName, writer: cli.NewRecordWriter(out, formatter)}}
	var progress orchestration.ProgressReporter = orchestration.NullProgressReporter{}

	if path := a.Config.OutputFile; path != "" {
		f, err := cli.CreateOutputFile(path)
		if err != nil {
			return a.reportError(err)
		}
		defer f.Close()
		// Files never carry escape codes.
		fileFormatter, _ := cli.NewFormatter(a.Config.Format, false)
		dests = append(dests, destination{name: path, writer: cli.NewRecordWriter(f, fileFormatter)})
		if !a.Config.Quiet && a.isTerminal(a.ErrWriter) {
			progress = cli.NewSpinnerReporter(a.ErrWriter, path)
		}
	}

	sinks := make(orchestration.MultiSink, len(dests))
	for i, d := range dests {
		sinks[i] = d
	}

	collector := metrics.NewCollector()
	driver := orchestration.NewDriver(
		orchestration.WithLogger(a.Logger),
		orchestration.WithProgressReporter(progress),
	)
	summary, runErr := driver.Run(ctx, a.Config.N, collector.Sink(sinks))

	// Flush whatever was emitted, even after a failure.
	for _, d := range dests {
		if err := d.flush(); err != nil && runErr == nil {
			runErr = err
		}
	}
	collector.ObserveRun(summary, runErr)

	if path := a.Config.MetricsFile; path != "" {
		if err := collector.WriteTextfile(path); err != nil {
			a.Logger.Error("metrics textfile not written", err, logging.String("path", path))
			if runErr == nil {
				runErr = apperrors.OutputError{Path: path, Cause: err}
			}
		}
	}

	if runErr != nil {
		return a.handleRunError(runErr, summary)
	}

	if a.Config.Summary && !a.Config.Quiet {
		cli.DisplaySummary(a.ErrWriter, summary, a.colored())
	}
	return apperrors.ExitSuccess
}

// handleRunError maps a failed run to its exit code. A closed stdout pipe
// is a normal way for a consumer such as `head` to stop reading.
func (a *Application) handleRunError(err error, summary orchestration.Summary) int {
	var outErr apperrors.OutputError
	if cli.IsBrokenPipe(err) && errors.As(err, &outErr) && outErr.Path == stdoutName {
		a.Logger.Debug("stdout closed by reader", logging.Int("records", summary.Records))
		return apperrors.ExitSuccess
	}
	if errors.Is(err, context.DeadlineExceeded) {
		err = apperrors.TimeoutError{Operation: "generation", Limit: a.Config.Timeout}
	}
	return a.reportError(err)
}
