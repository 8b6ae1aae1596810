// Package tui decides whether CLI output is styled and provides the lipgloss
// styles used for it.
package tui
