package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/fibfizz/internal/fizzbuzz"
	"github.com/agbru/fibfizz/internal/orchestration"
)

// RecordTable is a scrollable list of records with a cursor.
type RecordTable struct {
	records []orchestration.Record
	cursor  int
	offset  int
	height  int // visible rows
	width   int
	detail  bool // show the term column
}

// NewRecordTable creates an empty table showing terms.
func NewRecordTable() RecordTable {
	return RecordTable{detail: true, height: 1}
}

// SetRecords replaces the content, keeping the cursor in range.
func (t *RecordTable) SetRecords(records []orchestration.Record) {
	t.records = records
	t.clamp()
}

// SetSize updates the panel dimensions; height counts visible rows.
func (t *RecordTable) SetSize(width, height int) {
	t.width = width
	t.height = max(height, 1)
	t.clamp()
}

// ToggleDetail shows or hides the term column.
func (t *RecordTable) ToggleDetail() { t.detail = !t.detail }

// Move shifts the cursor by delta rows.
func (t *RecordTable) Move(delta int) {
	t.cursor += delta
	t.clamp()
}

// Page shifts the cursor by delta pages.
func (t *RecordTable) Page(delta int) { t.Move(delta * t.height) }

// Top moves the cursor to the first record.
func (t *RecordTable) Top() { t.Move(-len(t.records)) }

// Bottom moves the cursor to the last record.
func (t *RecordTable) Bottom() { t.Move(len(t.records)) }

// Cursor returns the selected row index.
func (t RecordTable) Cursor() int { return t.cursor }

// Selected returns the record under the cursor.
func (t RecordTable) Selected() (orchestration.Record, bool) {
	if len(t.records) == 0 {
		return orchestration.Record{}, false
	}
	return t.records[t.cursor], true
}

func (t *RecordTable) clamp() {
	t.cursor = min(max(t.cursor, 0), max(len(t.records)-1, 0))
	// Keep the cursor inside the visible window.
	if t.cursor < t.offset {
		t.offset = t.cursor
	}
	if t.cursor >= t.offset+t.height {
		t.offset = t.cursor - t.height + 1
	}
	t.offset = min(max(t.offset, 0), max(len(t.records)-t.height, 0))
}

// View renders the visible rows inside a panel.
func (t RecordTable) View() string {
	var b strings.Builder
	end := min(t.offset+t.height, len(t.records))
	for i := t.offset; i < end; i++ {
		rec := t.records[i]
		var row string
		if t.detail {
			row = fmt.Sprintf("F[%2d] %20d  %s", rec.Position, rec.Term, renderResult(rec.Result))
		} else {
			row = fmt.Sprintf("F[%2d]  %s", rec.Position, renderResult(rec.Result))
		}
		if i == t.cursor {
			row = cursorStyle.Render(row)
		}
		b.WriteString(row)
		if i < end-1 {
			b.WriteByte('\n')
		}
	}
	// Pad to full height so the panel does not jump while loading.
	for i := end - t.offset; i < t.height; i++ {
		if i > 0 {
			b.WriteByte('\n')
		}
	}
	return panelStyle.Width(max(t.width-2, 0)).Render(b.String())
}

// SummaryPanel shows per-label counts of the loaded records.
type SummaryPanel struct {
	summary orchestration.Summary
	width   int
}

// SetSummary replaces the counts shown.
func (s *SummaryPanel) SetSummary(summary orchestration.Summary) { s.summary = summary }

// SetWidth updates the panel width.
func (s *SummaryPanel) SetWidth(w int) { s.width = w }

// View renders the panel.
func (s SummaryPanel) View() string {
	lines := []string{titleStyle.Render("Counts")}
	for _, l := range fizzbuzz.Labels {
		name := summaryNameStyle.Render(labelStyles[l].Render(l.String()))
		lines = append(lines, fmt.Sprintf("%s %3d", name, s.summary.Labels[l]))
	}
	lines = append(lines, fmt.Sprintf("%s %3d", summaryNameStyle.Render(numberStyle.Render("numbers")), s.summary.Numbers))
	return panelStyle.Width(max(s.width-2, 0)).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
