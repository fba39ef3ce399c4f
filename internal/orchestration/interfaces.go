//go:generate mockgen -source=interfaces.go -destination=mocks/mock_interfaces.go -package=mocks

package orchestration

import (
	"github.com/agbru/fibfizz/internal/fizzbuzz"
)

// Record is one emitted row: a sequence position, its term and the
// classification of that term.
type Record struct {
	// Position is the zero-based index into the Fibonacci sequence.
	Position int
	// Term is F(Position).
	Term int64
	// Result is the classification of Term.
	Result fizzbuzz.Result
}

// Sink receives records in strictly increasing position order.
// Implementations format, store or count them.
type Sink interface {
	// Emit consumes one record. A non-nil error aborts the run.
	Emit(rec Record) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(rec Record) error

// Emit calls the underlying function.
func (f SinkFunc) Emit(rec Record) error { return f(rec) }

// MultiSink fans each record out to several sinks in order, stopping at the
// first error.
type MultiSink []Sink

// Emit forwards rec to every sink.
func (m MultiSink) Emit(rec Record) error {
	for _, s := range m {
		if err := s.Emit(rec); err != nil {
			return err
		}
	}
	return nil
}

// ProgressReporter observes a run. It decouples the driver from spinners
// and other terminal feedback.
type ProgressReporter interface {
	// Start is called once before the first record with the number of
	// records the run will emit.
	Start(total int)
	// Advance is called after each record has been emitted.
	Advance(rec Record)
	// Finish is called once when the run ends, successfully or not.
	Finish()
}

// NullProgressReporter is a no-op ProgressReporter, used in quiet mode and
// when output is not a terminal.
type NullProgressReporter struct{}

// Start does nothing.
func (NullProgressReporter) Start(int) {}

// Advance does nothing.
func (NullProgressReporter) Advance(Record) {}

// Finish does nothing.
func (NullProgressReporter) Finish() {}
