package tui

import (
	"io"
	"os"

	"golang.org/x/term"
)

// PlainEnv disables styling when set to "1".
const PlainEnv = "BOOKXMP_PLAIN"

// fdWriter is implemented by *os.File.
type fdWriter interface {
	Fd() uintptr
}

// IsStyled reports whether output written to w should carry colours.
//
// It returns false when:
//   - w is not a terminal (pipes, files, buffers)
//   - BOOKXMP_PLAIN=1 is set
//   - NO_COLOR is set
//   - CI is set
func IsStyled(w io.Writer) bool {
	if os.Getenv(PlainEnv) == "1" || os.Getenv("NO_COLOR") != "" || os.Getenv("CI") != "" {
		return false
	}
	f, ok := w.(fdWriter)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// Width returns the terminal width of w, or fallback when w is not a terminal.
func Width(w io.Writer, fallback int) int {
	f, ok := w.(fdWriter)
	if !ok {
		return fallback
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return fallback
	}
	return width
}
