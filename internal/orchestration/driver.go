package orchestration

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/agbru/fibfizz/internal/errors"
	"github.com/agbru/fibfizz/internal/fibonacci"
	"github.com/agbru/fibfizz/internal/fizzbuzz"
	"github.com/agbru/fibfizz/internal/logging"
)

const tracerName = "github.com/agbru/fibfizz/internal/orchestration"

// State is the lifecycle state of a Driver.
type State int

const (
	// StateNotStarted is the state of a fresh Driver.
	StateNotStarted State = iota
	// StateEmitting is the state while records are being emitted.
	StateEmitting
	// StateDone is the state after every position up to N was emitted.
	StateDone
	// StateFailed is the state after a sink error or cancellation.
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not-started"
	case StateEmitting:
		return "emitting"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// ErrAlreadyRun is returned by Run on a Driver that has already run.
var ErrAlreadyRun = errors.New("driver has already run; construct a new one")

// Driver emits the classified records for positions 0..N. A Driver runs
// once; construct a new one for every run.
type Driver struct {
	state    State
	progress ProgressReporter
	logger   logging.Logger
	tracer   trace.Tracer
	now      func() time.Time
}

// DriverOption configures a Driver during construction.
type DriverOption func(*Driver)

// WithProgressReporter sets the reporter notified of each record.
func WithProgressReporter(p ProgressReporter) DriverOption {
	return func(d *Driver) { d.progress = p }
}

// WithLogger sets the diagnostic logger.
func WithLogger(l logging.Logger) DriverOption {
	return func(d *Driver) { d.logger = l }
}

// WithTracer overrides the OpenTelemetry tracer. By default the global
// provider is used, which is a no-op unless the embedder installs one.
func WithTracer(t trace.Tracer) DriverOption {
	return func(d *Driver) { d.tracer = t }
}

// withClock replaces time.Now in tests.
func withClock(now func() time.Time) DriverOption {
	return func(d *Driver) { d.now = now }
}

// NewDriver creates a Driver in StateNotStarted.
func NewDriver(opts ...DriverOption) *Driver {
	d := &Driver{
		state:    StateNotStarted,
		progress: NullProgressReporter{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.logger == nil {
		d.logger = logging.NewZerologAdapter(zerolog.Nop())
	}
	if d.tracer == nil {
		d.tracer = otel.Tracer(tracerName)
	}
	return d
}

// State returns the current lifecycle state.
func (d *Driver) State() State { return d.state }

// Run emits one record per position 0..n inclusive, in order, to sink.
//
// The context is checked before every record. On a sink error or
// cancellation the driver moves to StateFailed and the partial Summary is
// returned together with the error.
//
// Parameters:
//   - ctx: Cancellation and deadline for the run.
//   - n: The inclusive position bound; must be non-negative.
//   - sink: The destination of the records.
//
// Returns:
//   - Summary: Counts of what was emitted.
//   - error: A ValidationError for negative n, ErrAlreadyRun, or the wrapped
//     sink/context error.
func (d *Driver) Run(ctx context.Context, n int, sink Sink) (Summary, error) {
	if d.state != StateNotStarted {
		return Summary{}, ErrAlreadyRun
	}
	if n < 0 {
		return Summary{}, apperrors.ValidationError{Field: "n", Message: "must be non-negative"}
	}

	ctx, span := d.tracer.Start(ctx, "Driver.Run", trace.WithAttributes(attribute.Int("fibfizz.n", n)))
	defer span.End()

	d.state = StateEmitting
	start := d.now()
	summary := NewSummary()
	d.logger.Debug("run started", logging.Int("n", n))

	d.progress.Start(n + 1)
	defer d.progress.Finish()

	for rec := range Records(n) {
		if err := ctx.Err(); err != nil {
			return d.fail(span, summary, start, apperrors.WrapError(err, "before F[%d]", rec.Position))
		}
		if err := sink.Emit(rec); err != nil {
			return d.fail(span, summary, start, apperrors.WrapError(err, "emitting F[%d]", rec.Position))
		}
		summary.Add(rec)
		d.progress.Advance(rec)
		d.logger.Debug("record emitted",
			logging.Int("position", rec.Position),
			logging.Int64("term", rec.Term),
			logging.String("result", rec.Result.String()))
	}

	d.state = StateDone
	summary.Elapsed = d.now().Sub(start)
	span.SetAttributes(attribute.Int("fibfizz.records", summary.Records))
	d.logger.Debug("run finished",
		logging.Int("records", summary.Records),
		logging.Duration("elapsed", summary.Elapsed))
	return summary, nil
}

func (d *Driver) fail(span trace.Span, summary Summary, start time.Time, err error) (Summary, error) {
	d.state = StateFailed
	summary.Elapsed = d.now().Sub(start)
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	d.logger.Error("run aborted", err, logging.Int("records", summary.Records))
	return summary, err
}

// Records is the pull-based form of Run for embedders. It does not touch
// the driver state.
func (d *Driver) Records(n int) iter.Seq[Record] { return Records(n) }

// Records returns a pull-based iterator over the classified records for
// positions 0..n inclusive. It yields nothing for a negative n. Each call
// starts a fresh Sequence.
func Records(n int) iter.Seq[Record] {
	return func(yield func(Record) bool) {
		for pos, term := range fibonacci.New().All() {
			if pos > n {
				return
			}
			if !yield(Record{Position: pos, Term: term, Result: fizzbuzz.Classify(term)}) {
				return
			}
		}
	}
}
