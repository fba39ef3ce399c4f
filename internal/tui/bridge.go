package tui

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/fibfizz/internal/orchestration"
)

// programRef is a shared reference to the tea.Program.
// Because bubbletea copies the model on every Update, we need a pointer
// that survives copies so the driver goroutine can send messages.
type programRef struct {
	mu      sync.RWMutex
	program *tea.Program
}

// SetProgram sets the tea.Program reference (thread-safe).
func (r *programRef) SetProgram(p *tea.Program) {
	r.mu.Lock()
	r.program = p
	r.mu.Unlock()
}

// Send sends a message to the bubbletea program (thread-safe). It is a
// no-op before SetProgram.
func (r *programRef) Send(msg tea.Msg) {
	r.mu.RLock()
	p := r.program
	r.mu.RUnlock()
	if p != nil {
		p.Send(msg)
	}
}

// TUIProgressReporter implements orchestration.ProgressReporter by
// forwarding progress as ProgressMsg.
type TUIProgressReporter struct {
	ref        *programRef
	generation uint64
	total      int
}

// Verify interface compliance.
var _ orchestration.ProgressReporter = (*TUIProgressReporter)(nil)

// Start records the run size.
func (t *TUIProgressReporter) Start(total int) {
	t.total = total
	t.ref.Send(ProgressMsg{Total: total, Generation: t.generation})
}

// Advance forwards the count of records ready so far.
func (t *TUIProgressReporter) Advance(rec orchestration.Record) {
	t.ref.Send(ProgressMsg{Done: rec.Position + 1, Total: t.total, Generation: t.generation})
}

// Finish does nothing; completion arrives as RecordsLoadedMsg.
func (t *TUIProgressReporter) Finish() {}

// loadRecordsCmd runs the driver for 0..bound and returns the collected
// records as a RecordsLoadedMsg.
func loadRecordsCmd(ref *programRef, ctx context.Context, bound int, gen uint64) tea.Cmd {
	return func() tea.Msg {
		records := make([]orchestration.Record, 0, bound+1)
		collect := orchestration.SinkFunc(func(rec orchestration.Record) error {
			records = append(records, rec)
			return nil
		})
		d := orchestration.NewDriver(orchestration.WithProgressReporter(&TUIProgressReporter{ref: ref, generation: gen}))
		summary, err := d.Run(ctx, bound, collect)
		return RecordsLoadedMsg{Records: records, Summary: summary, Err: err, Generation: gen}
	}
}

// watchContextCmd waits for context cancellation and sends a message.
func watchContextCmd(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return ContextCancelledMsg{Err: ctx.Err()}
	}
}
