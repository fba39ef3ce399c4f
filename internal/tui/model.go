package tui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	apperrors "github.com/agbru/fibfizz/internal/errors"
	"github.com/agbru/fibfizz/internal/fibonacci"
)

// Layout constants for the browser.
const (
	headerHeight      = 1
	footerHeight      = 1
	panelBorderHeight = 2
	minBodyHeight     = 3
	// SummaryPanelWidth is the fixed width of the counts panel.
	SummaryPanelWidth = 18
	// BoundStep is how many positions More and Less add or remove.
	BoundStep = 10
)

// ExecutionState holds the run-related fields of a session.
type ExecutionState struct {
	ctx        context.Context
	cancel     context.CancelFunc
	bound      int
	generation uint64
	loading    bool
	exitCode   int
}

// LayoutManager holds terminal dimensions and provides layout calculations.
type LayoutManager struct {
	width  int
	height int
}

// tableRows returns the number of record rows that fit.
func (l LayoutManager) tableRows() int {
	return max(l.height-headerHeight-footerHeight-panelBorderHeight, minBodyHeight)
}

// tableWidth returns the width of the record panel.
func (l LayoutManager) tableWidth() int {
	return max(l.width-SummaryPanelWidth, 0)
}

// Model is the root bubbletea model for the record browser.
type Model struct {
	header  HeaderModel
	table   RecordTable
	summary SummaryPanel
	footer  FooterModel

	keymap KeyMap

	ExecutionState
	LayoutManager

	parentCtx context.Context
	ref       *programRef
}

// NewModel creates a browser for positions 0..bound. The bound is clamped
// to 0..fibonacci.MaxIndex.
func NewModel(parentCtx context.Context, bound int, version string) Model {
	bound = clampBound(bound)
	ctx, cancel := context.WithCancel(parentCtx)
	keymap := DefaultKeyMap()

	return Model{
		header:  NewHeaderModel(version, bound),
		table:   NewRecordTable(),
		footer:  NewFooterModel(keymap.footerBindings()),
		keymap:  keymap,
		ExecutionState: ExecutionState{
			ctx:      ctx,
			cancel:   cancel,
			bound:    bound,
			loading:  true,
			exitCode: apperrors.ExitSuccess,
		},
		parentCtx: parentCtx,
		ref:       &programRef{},
	}
}

func clampBound(bound int) int {
	return min(max(bound, 0), fibonacci.MaxIndex)
}

// Init starts the first run.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		loadRecordsCmd(m.ref, m.ctx, m.bound, m.generation),
		watchContextCmd(m.parentCtx),
	)
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layoutPanels()
		return m, nil

	case ProgressMsg:
		if msg.Generation == m.generation && m.loading {
			m.header.SetProgress(msg.Done, msg.Total)
		}
		return m, nil

	case RecordsLoadedMsg:
		if msg.Generation != m.generation {
			return m, nil // stale message from a previous run
		}
		m.loading = false
		if msg.Err != nil {
			if errors.Is(msg.Err, context.Canceled) {
				return m, nil // superseded by a newer run
			}
			m.footer.SetError(msg.Err)
			m.exitCode = apperrors.ExitCodeFor(msg.Err)
			return m, nil
		}
		m.footer.SetError(nil)
		m.table.SetRecords(msg.Records)
		m.summary.SetSummary(msg.Summary)
		m.header.SetLoaded(msg.Summary)
		return m, nil

	case ContextCancelledMsg:
		m.exitCode = apperrors.ExitCodeFor(msg.Err)
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.cancel()
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Up):
		m.table.Move(-1)
	case key.Matches(msg, m.keymap.Down):
		m.table.Move(1)
	case key.Matches(msg, m.keymap.PageUp):
		m.table.Page(-1)
	case key.Matches(msg, m.keymap.PageDown):
		m.table.Page(1)
	case key.Matches(msg, m.keymap.Top):
		m.table.Top()
	case key.Matches(msg, m.keymap.Bottom):
		m.table.Bottom()
	case key.Matches(msg, m.keymap.Detail):
		m.table.ToggleDetail()

	case key.Matches(msg, m.keymap.More):
		return m.restart(m.bound + BoundStep)
	case key.Matches(msg, m.keymap.Less):
		return m.restart(m.bound - BoundStep)
	case key.Matches(msg, m.keymap.Reset):
		return m.restart(m.bound)
	}

	return m, nil
}

// restart cancels any run in flight and starts a new one for bound.
func (m Model) restart(bound int) (tea.Model, tea.Cmd) {
	m.cancel()

	m.generation++
	m.bound = clampBound(bound)
	m.ctx, m.cancel = context.WithCancel(m.parentCtx)
	m.loading = true
	m.header.SetBound(m.bound)
	m.footer.SetError(nil)

	return m, loadRecordsCmd(m.ref, m.ctx, m.bound, m.generation)
}

// View renders the whole browser.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, m.table.View(), m.summary.View())
	return lipgloss.JoinVertical(lipgloss.Left, m.header.View(), body, m.footer.View())
}

func (m *Model) layoutPanels() {
	m.header.SetWidth(m.width)
	m.footer.SetWidth(m.width)
	m.table.SetSize(m.tableWidth(), m.tableRows())
	m.summary.SetWidth(SummaryPanelWidth)
}

// Bound returns the current inclusive position bound.
func (m Model) Bound() int { return m.bound }

// Run is the public entry point for the TUI mode.
// It creates the bubbletea program, runs it, and returns the exit code.
func Run(ctx context.Context, bound int, version string) int {
	// Rebuild styles from the current ui theme (set by app.Run via InitTheme).
	initTUIStyles()

	model := NewModel(ctx, bound, version)
	defer model.cancel()

	p := tea.NewProgram(model, tea.WithAltScreen())
	// Inject the program reference before running so the driver can Send.
	model.ref.SetProgram(p)

	finalModel, err := p.Run()
	if err != nil {
		return apperrors.ExitErrorGeneric
	}

	if m, ok := finalModel.(Model); ok {
		m.cancel()
		return m.exitCode
	}
	return apperrors.ExitSuccess
}
