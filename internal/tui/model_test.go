package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	apperrors "github.com/agbru/fibfizz/internal/errors"
	"github.com/agbru/fibfizz/internal/fibonacci"
	"github.com/agbru/fibfizz/internal/fizzbuzz"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// loaded returns a sized model with the records for 0..bound applied.
func loaded(t *testing.T, bound int) Model {
	t.Helper()
	m := NewModel(context.Background(), bound, "v1.0.0")
	t.Cleanup(m.cancel)

	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 12})
	m = next.(Model)

	msg := loadRecordsCmd(m.ref, m.ctx, m.bound, m.generation)()
	next, _ = m.Update(msg)
	return next.(Model)
}

func TestNewModel_ClampsBound(t *testing.T) {
	t.Parallel()
	tests := []struct{ in, want int }{
		{-4, 0},
		{0, 0},
		{20, 20},
		{fibonacci.MaxIndex + 50, fibonacci.MaxIndex},
	}
	for _, tt := range tests {
		m := NewModel(context.Background(), tt.in, "")
		m.cancel()
		if m.Bound() != tt.want {
			t.Errorf("NewModel(%d).Bound() = %d, want %d", tt.in, m.Bound(), tt.want)
		}
	}
}

func TestLoadRecordsCmd(t *testing.T) {
	t.Parallel()
	msg := loadRecordsCmd(&programRef{}, context.Background(), 5, 3)()
	loadedMsg, ok := msg.(RecordsLoadedMsg)
	if !ok {
		t.Fatalf("cmd returned %T, want RecordsLoadedMsg", msg)
	}
	if loadedMsg.Err != nil || loadedMsg.Generation != 3 {
		t.Fatalf("msg = %+v", loadedMsg)
	}
	if len(loadedMsg.Records) != 6 {
		t.Fatalf("got %d records, want 6", len(loadedMsg.Records))
	}
	if got := loadedMsg.Summary.Labels[fizzbuzz.LabelPrime]; got != 3 {
		t.Errorf("prime count = %d, want 3", got)
	}
}

func TestModel_ViewAfterLoad(t *testing.T) {
	t.Parallel()
	m := loaded(t, 5)
	if m.loading {
		t.Fatal("model still loading after RecordsLoadedMsg")
	}
	view := m.View()
	for _, want := range []string{"fibfizz v1.0.0", "F[0..5]", "6 records", "FizzBuzz", "BuzzFizz", "F[ 5]", "Counts", "q quit"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestModel_InitializingView(t *testing.T) {
	t.Parallel()
	m := NewModel(context.Background(), 5, "")
	defer m.cancel()
	if got := m.View(); got != "Initializing..." {
		t.Errorf("View() before size = %q", got)
	}
}

func TestModel_Navigation(t *testing.T) {
	t.Parallel()
	m := loaded(t, 30)

	steps := []struct {
		msg  tea.KeyMsg
		want int
	}{
		{tea.KeyMsg{Type: tea.KeyDown}, 1},
		{runes("j"), 2},
		{tea.KeyMsg{Type: tea.KeyUp}, 1},
		{runes("G"), 30},
		{tea.KeyMsg{Type: tea.KeyDown}, 30},
		{runes("g"), 0},
		{tea.KeyMsg{Type: tea.KeyUp}, 0},
		{tea.KeyMsg{Type: tea.KeyPgDown}, m.tableRows()},
		{tea.KeyMsg{Type: tea.KeyPgUp}, 0},
	}
	for i, s := range steps {
		next, _ := m.Update(s.msg)
		m = next.(Model)
		if got := m.table.Cursor(); got != s.want {
			t.Fatalf("step %d (%s): cursor = %d, want %d", i, s.msg, got, s.want)
		}
	}

	rec, ok := m.table.Selected()
	if !ok || rec.Position != 0 {
		t.Errorf("Selected() = %+v, %v", rec, ok)
	}
}

func TestModel_MoreAndLessRestart(t *testing.T) {
	t.Parallel()
	m := loaded(t, 5)

	next, cmd := m.Update(runes("+"))
	m = next.(Model)
	if m.Bound() != 5+BoundStep || m.generation != 1 || !m.loading || cmd == nil {
		t.Fatalf("after '+': bound=%d gen=%d loading=%v cmd=%v", m.Bound(), m.generation, m.loading, cmd != nil)
	}

	// A result from the superseded run is ignored.
	stale := loadRecordsCmd(&programRef{}, context.Background(), 2, 0)()
	next, _ = m.Update(stale)
	m = next.(Model)
	if !m.loading {
		t.Fatal("stale RecordsLoadedMsg was applied")
	}

	next, _ = m.Update(cmd())
	m = next.(Model)
	if m.loading || len(m.table.records) != 16 {
		t.Fatalf("after load: loading=%v records=%d, want 16", m.loading, len(m.table.records))
	}

	for range 5 {
		next, _ = m.Update(runes("-"))
		m = next.(Model)
	}
	if m.Bound() != 0 {
		t.Errorf("bound after repeated '-' = %d, want 0", m.Bound())
	}

	for range 20 {
		next, _ = m.Update(runes("+"))
		m = next.(Model)
	}
	if m.Bound() != fibonacci.MaxIndex {
		t.Errorf("bound after repeated '+' = %d, want %d", m.Bound(), fibonacci.MaxIndex)
	}
}

func TestModel_DetailToggle(t *testing.T) {
	t.Parallel()
	m := loaded(t, 7)
	withTerm := "F[ 7] " + fmt.Sprintf("%20d", 13)
	if !strings.Contains(m.View(), withTerm) {
		t.Fatalf("term column not shown by default:\n%s", m.View())
	}
	next, _ := m.Update(runes("d"))
	m = next.(Model)
	view := m.View()
	if strings.Contains(view, withTerm) {
		t.Error("term column still shown after toggle")
	}
	if !strings.Contains(view, "F[ 7]  BuzzFizz") {
		t.Errorf("compact row missing:\n%s", view)
	}
}

func TestModel_Quit(t *testing.T) {
	t.Parallel()
	m := loaded(t, 3)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("ctrl+c returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c did not quit")
	}
	if m.ctx.Err() == nil {
		t.Error("run context not cancelled on quit")
	}
}

func TestModel_ErrorsAndCancellation(t *testing.T) {
	t.Parallel()
	m := loaded(t, 3)

	next, _ := m.Update(RecordsLoadedMsg{Err: errors.New("boom"), Generation: m.generation})
	m = next.(Model)
	if !strings.Contains(m.View(), "error: boom") {
		t.Errorf("error not shown in footer:\n%s", m.View())
	}
	if m.exitCode != apperrors.ExitErrorGeneric {
		t.Errorf("exitCode = %d, want %d", m.exitCode, apperrors.ExitErrorGeneric)
	}

	next, cmd := m.Update(ContextCancelledMsg{Err: context.Canceled})
	m = next.(Model)
	if m.exitCode != apperrors.ExitErrorCanceled {
		t.Errorf("exitCode = %d, want %d", m.exitCode, apperrors.ExitErrorCanceled)
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("cancellation did not quit")
	}
}

func TestTUIProgressReporter_WithoutProgram(t *testing.T) {
	t.Parallel()
	r := &TUIProgressReporter{ref: &programRef{}}
	r.Start(3)
	r.Finish()
	if r.total != 3 {
		t.Errorf("total = %d, want 3", r.total)
	}
}
