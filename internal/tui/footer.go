package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// FooterModel renders the key help line or the last error.
type FooterModel struct {
	bindings []key.Binding
	err      error
	width    int
}

// NewFooterModel creates a footer for the given bindings.
func NewFooterModel(bindings []key.Binding) FooterModel {
	return FooterModel{bindings: bindings}
}

// SetError shows err instead of the key help; nil restores the help.
func (f *FooterModel) SetError(err error) { f.err = err }

// SetWidth updates the available width.
func (f *FooterModel) SetWidth(w int) { f.width = w }

// View renders the footer.
func (f FooterModel) View() string {
	if f.err != nil {
		return errorStyle.Render("error: " + f.err.Error())
	}
	parts := make([]string, 0, len(f.bindings))
	for _, b := range f.bindings {
		h := b.Help()
		parts = append(parts, footerKeyStyle.Render(h.Key)+" "+footerDescStyle.Render(h.Desc))
	}
	return strings.Join(parts, footerDescStyle.Render("  "))
}
