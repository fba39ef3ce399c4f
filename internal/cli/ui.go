//go:generate mockgen -source=ui.go -destination=mocks/mock_ui.go -package=mocks

package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/fibfizz/internal/orchestration"
)

// ProgressRefreshRate defines the refresh frequency of the spinner.
const ProgressRefreshRate = 100 * time.Millisecond

// Spinner is an interface that abstracts the behavior of a terminal spinner.
// It defines the essential controls for a spinner: starting, stopping, and
// updating its status message.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts spinner.Spinner to the Spinner interface.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }

func (rs *realSpinner) Stop() { rs.s.Stop() }

// UpdateSuffix locks the spinner while changing the suffix; the animation
// goroutine reads it concurrently.
func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

// newSpinner is replaced in tests.
var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// SpinnerReporter is an orchestration.ProgressReporter that animates a
// spinner on a terminal while records are written elsewhere.
type SpinnerReporter struct {
	spinner Spinner
	total   int
	label   string
}

// NewSpinnerReporter creates a reporter drawing on out. label names the
// destination, typically the output file.
func NewSpinnerReporter(out io.Writer, label string) *SpinnerReporter {
	return &SpinnerReporter{
		spinner: newSpinner(spinner.WithWriter(out)),
		label:   label,
	}
}

// Start begins the animation.
func (r *SpinnerReporter) Start(total int) {
	r.total = total
	r.spinner.UpdateSuffix(r.suffix(0))
	r.spinner.Start()
}

// Advance updates the status line with the record just written.
func (r *SpinnerReporter) Advance(rec orchestration.Record) {
	r.spinner.UpdateSuffix(r.suffix(rec.Position + 1))
}

// Finish stops the animation.
func (r *SpinnerReporter) Finish() {
	r.spinner.Stop()
}

func (r *SpinnerReporter) suffix(done int) string {
	fraction := 0.0
	if r.total > 0 {
		fraction = float64(done) / float64(r.total)
	}
	return fmt.Sprintf(" writing %s %s %d/%d", r.label, progressBar(fraction, ProgressBarWidth), done, r.total)
}

// ProgressBarWidth defines the width in characters of the spinner's bar.
const ProgressBarWidth = 20

// progressBar generates a string representing a textual progress bar.
//
// Parameters:
//   - progress: The normalized progress value (0.0 to 1.0).
//   - length: The total character width of the progress bar.
func progressBar(progress float64, length int) string {
	if progress > 1.0 {
		progress = 1.0
	}
	if progress < 0.0 {
		progress = 0.0
	}
	count := int(progress * float64(length))
	var builder strings.Builder
	builder.Grow(length * 3)
	for i := 0; i < length; i++ {
		if i < count {
			builder.WriteRune('█')
		} else {
			builder.WriteRune('░')
		}
	}
	return builder.String()
}
