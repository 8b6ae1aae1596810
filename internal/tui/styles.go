package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jisj/bookxmp/internal/logging"
)

// Colour palette, kept minimal and accessible.
var (
	ColorPrimary   = lipgloss.Color("39")  // blue
	ColorSecondary = lipgloss.Color("245") // gray
	ColorSuccess   = lipgloss.Color("34")  // green
	ColorWarning   = lipgloss.Color("214") // orange
	ColorError     = lipgloss.Color("196") // red
	ColorMuted     = lipgloss.Color("240") // dark gray
)

// Styles renders CLI output. The zero value renders plain text.
type Styles struct {
	Heading lipgloss.Style
	Label   lipgloss.Style
	Value   lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
}

// NewStyles returns coloured styles when enabled, plain ones otherwise.
func NewStyles(enabled bool) Styles {
	if !enabled {
		plain := lipgloss.NewStyle()
		return Styles{plain, plain, plain, plain, plain, plain, plain}
	}
	return Styles{
		Heading: lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary),
		Label:   lipgloss.NewStyle().Foreground(ColorSecondary),
		Value:   lipgloss.NewStyle(),
		Muted:   lipgloss.NewStyle().Foreground(ColorMuted),
		Success: lipgloss.NewStyle().Foreground(ColorSuccess),
		Warning: lipgloss.NewStyle().Foreground(ColorWarning),
		Error:   lipgloss.NewStyle().Foreground(ColorError).Bold(true),
	}
}

// Symbols for visual feedback.
const (
	SymbolCheck  = "✓"
	SymbolCross  = "✗"
	SymbolBullet = "•"
)

// Field renders "label: value" with the label padded to width.
// Empty values render as a muted dash.
func (s Styles) Field(label string, width int, value string) string {
	padded := fmt.Sprintf("%-*s", width, label+":")
	if value == "" {
		return s.Label.Render(padded) + " " + s.Muted.Render("-")
	}
	return s.Label.Render(padded) + " " + s.Value.Render(value)
}

// List renders items as bullet lines indented by indent spaces.
func (s Styles) List(items []string, indent int) string {
	var b strings.Builder
	pad := strings.Repeat(" ", indent)
	for _, item := range items {
		b.WriteString(pad)
		b.WriteString(s.Muted.Render(SymbolBullet))
		b.WriteString(" ")
		b.WriteString(item)
		b.WriteString("\n")
	}
	return b.String()
}

// LogDecorator colours console logger prefixes.
func (s Styles) LogDecorator() logging.Decorator {
	return func(level logging.Level, prefix string) string {
		switch level {
		case logging.LevelError:
			return s.Error.Render(prefix)
		case logging.LevelVerbose:
			return s.Muted.Render(prefix)
		}
		return prefix
	}
}
