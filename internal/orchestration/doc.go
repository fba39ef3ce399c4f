// Package orchestration drives the pipeline: it pulls terms from a
// fibonacci.Sequence, classifies each one and hands the records to a Sink in
// position order. Presentation lives behind the Sink and ProgressReporter
// interfaces so this package never writes to a terminal itself.
package orchestration
