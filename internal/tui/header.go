package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/fibfizz/internal/cli"
	"github.com/agbru/fibfizz/internal/orchestration"
)

// HeaderModel renders the top bar: title, bound and run status.
type HeaderModel struct {
	version string
	bound   int
	done    int
	total   int
	loaded  bool
	elapsed string
	width   int
}

// NewHeaderModel creates a new header.
func NewHeaderModel(version string, bound int) HeaderModel {
	return HeaderModel{version: version, bound: bound, total: bound + 1}
}

// SetProgress shows a run in flight.
func (h *HeaderModel) SetProgress(done, total int) {
	h.loaded = false
	h.done, h.total = done, total
}

// SetLoaded shows the outcome of a finished run.
func (h *HeaderModel) SetLoaded(summary orchestration.Summary) {
	h.loaded = true
	h.done, h.total = summary.Records, summary.Records
	h.elapsed = cli.FormatExecutionDuration(summary.Elapsed)
}

// SetBound changes the bound shown and marks a new run as pending.
func (h *HeaderModel) SetBound(bound int) {
	h.bound = bound
	h.SetProgress(0, bound+1)
}

// SetWidth updates the available width.
func (h *HeaderModel) SetWidth(w int) {
	h.width = w
}

// View renders the header.
func (h HeaderModel) View() string {
	titleText := "fibfizz"
	if h.version != "" && h.version != "dev" {
		titleText += " " + h.version
	}
	title := titleStyle.Render(titleText)
	pipe := dimStyle.Render(" | ")
	bound := accentStyle.Render(fmt.Sprintf("F[0..%d]", h.bound))

	var status string
	if h.loaded {
		status = statusDoneStyle.Render(fmt.Sprintf("%d records in %s", h.done, h.elapsed))
	} else {
		status = statusBusyStyle.Render(fmt.Sprintf("generating %d/%d", h.done, h.total))
	}

	row := title + pipe + bound + pipe + status
	gap := h.width - 2 - lipgloss.Width(row)
	return headerStyle.Width(h.width).Render(row + spaces(gap))
}

// spaces returns a string of n space characters.
func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}
