package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/briandowns/spinner"

	"github.com/agbru/fibfizz/internal/orchestration"
)

// MockSpinner records the calls made to it.
type MockSpinner struct {
	started  bool
	stopped  bool
	suffix   string
	suffixes []string
}

func (m *MockSpinner) Start() {
	m.started = true
}

func (m *MockSpinner) Stop() {
	m.stopped = true
}

func (m *MockSpinner) UpdateSuffix(suffix string) {
	m.suffix = suffix
	m.suffixes = append(m.suffixes, suffix)
}

// withMockSpinner swaps newSpinner for the duration of the test; callers
// must not run in parallel.
func withMockSpinner(t *testing.T) *MockSpinner {
	t.Helper()
	mock := &MockSpinner{}
	original := newSpinner
	newSpinner = func(...spinner.Option) Spinner { return mock }
	t.Cleanup(func() { newSpinner = original })
	return mock
}

func TestSpinnerReporter(t *testing.T) {
	mock := withMockSpinner(t)

	r := NewSpinnerReporter(&bytes.Buffer{}, "out.txt")
	d := orchestration.NewDriver(orchestration.WithProgressReporter(r))
	sink := orchestration.SinkFunc(func(orchestration.Record) error { return nil })
	if _, err := d.Run(t.Context(), 9, sink); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if !mock.started || !mock.stopped {
		t.Errorf("spinner started=%v stopped=%v, want both", mock.started, mock.stopped)
	}
	if len(mock.suffixes) != 11 {
		t.Errorf("UpdateSuffix called %d times, want 11", len(mock.suffixes))
	}
	if !strings.HasPrefix(mock.suffixes[0], " writing out.txt") || !strings.HasSuffix(mock.suffixes[0], "0/10") {
		t.Errorf("first suffix = %q", mock.suffixes[0])
	}
	if want := " writing out.txt " + progressBar(1, ProgressBarWidth) + " 10/10"; mock.suffix != want {
		t.Errorf("last suffix = %q, want %q", mock.suffix, want)
	}
}

func TestProgressBar(t *testing.T) {
	t.Parallel()
	tests := []struct {
		progress float64
		length   int
		want     string
	}{
		{0, 4, "░░░░"},
		{0.5, 4, "██░░"},
		{1, 4, "████"},
		{1.7, 4, "████"},
		{-0.3, 4, "░░░░"},
		{0.5, 0, ""},
	}
	for _, tt := range tests {
		if got := progressBar(tt.progress, tt.length); got != tt.want {
			t.Errorf("progressBar(%v, %d) = %q, want %q", tt.progress, tt.length, got, tt.want)
		}
	}
}
