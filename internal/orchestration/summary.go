package orchestration

import (
	"time"

	"github.com/agbru/fibfizz/internal/fizzbuzz"
)

// Summary aggregates a finished (or aborted) run.
type Summary struct {
	// Records is the number of records emitted.
	Records int
	// Labels counts records per label.
	Labels map[fizzbuzz.Label]int
	// Numbers counts records that passed through unlabelled.
	Numbers int
	// Elapsed is the wall time of the run.
	Elapsed time.Duration
}

// NewSummary returns an empty Summary.
func NewSummary() Summary {
	return Summary{Labels: make(map[fizzbuzz.Label]int, len(fizzbuzz.Labels))}
}

// Add counts one record.
func (s *Summary) Add(rec Record) {
	s.Records++
	if rec.Result.IsLabel() {
		s.Labels[rec.Result.Label()]++
		return
	}
	s.Numbers++
}
