package tui

import (
	"github.com/agbru/fibfizz/internal/orchestration"
)

// ProgressMsg reports how many records of the current run are ready.
type ProgressMsg struct {
	Done       int
	Total      int
	Generation uint64
}

// RecordsLoadedMsg carries the records of a finished run.
type RecordsLoadedMsg struct {
	Records    []orchestration.Record
	Summary    orchestration.Summary
	Err        error
	Generation uint64
}

// ContextCancelledMsg is sent when the parent context ends.
type ContextCancelledMsg struct {
	Err error
}
