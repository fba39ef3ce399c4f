// Package tui implements the --tui record browser on bubbletea. The driver
// runs in a tea.Cmd and the finished records are handed to the model as a
// single message; progress is forwarded through a shared program reference.
package tui
