package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/fibfizz/internal/fizzbuzz"
	"github.com/agbru/fibfizz/internal/ui"
)

// Style variables for the browser.
// Initialized from the ui theme system via initTUIStyles().
var (
	panelStyle       lipgloss.Style
	headerStyle      lipgloss.Style
	titleStyle       lipgloss.Style
	dimStyle         lipgloss.Style
	accentStyle      lipgloss.Style
	cursorStyle      lipgloss.Style
	errorStyle       lipgloss.Style
	footerKeyStyle   lipgloss.Style
	footerDescStyle  lipgloss.Style
	statusDoneStyle  lipgloss.Style
	statusBusyStyle  lipgloss.Style
	labelStyles      map[fizzbuzz.Label]lipgloss.Style
	numberStyle      lipgloss.Style
	summaryNameStyle lipgloss.Style
)

func init() {
	initTUIStyles()
}

// initTUIStyles rebuilds all styles from the current ui theme.
// Called at package init and again from Run() after InitTheme has been invoked.
func initTUIStyles() {
	t := ui.GetCurrentTUITheme()

	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Foreground(t.Text)

	headerStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent).
		Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent)

	dimStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	accentStyle = lipgloss.NewStyle().
		Foreground(t.Accent)

	cursorStyle = lipgloss.NewStyle().
		Bold(true).
		Reverse(true)

	errorStyle = lipgloss.NewStyle().
		Foreground(t.Error).
		Bold(true)

	footerKeyStyle = lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	footerDescStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	statusDoneStyle = lipgloss.NewStyle().
		Foreground(t.Three).
		Bold(true)

	statusBusyStyle = lipgloss.NewStyle().
		Foreground(t.Both).
		Bold(true)

	labelStyles = map[fizzbuzz.Label]lipgloss.Style{
		fizzbuzz.LabelPrime: lipgloss.NewStyle().Foreground(t.Prime).Bold(true),
		fizzbuzz.LabelBoth:  lipgloss.NewStyle().Foreground(t.Both).Bold(true),
		fizzbuzz.LabelThree: lipgloss.NewStyle().Foreground(t.Three),
		fizzbuzz.LabelFive:  lipgloss.NewStyle().Foreground(t.Five),
	}

	numberStyle = lipgloss.NewStyle().
		Foreground(t.Text)

	summaryNameStyle = lipgloss.NewStyle().
		Width(10)
}

// renderResult styles a classification by its label.
func renderResult(r fizzbuzz.Result) string {
	if r.IsLabel() {
		return labelStyles[r.Label()].Render(r.String())
	}
	return numberStyle.Render(r.String())
}
