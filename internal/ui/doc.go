// Package ui provides theme and color support for the terminal output.
// It defines ANSI color schemes for the line-oriented CLI and matching
// lipgloss palettes for the TUI, and decides whether color should be used
// at all for a given writer.
package ui
