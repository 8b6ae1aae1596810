package logging

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/jisj/bookxmp/pkg/bookxmp"
)

// Level tags a console line.
type Level int

const (
	LevelVerbose Level = iota
	LevelInfo
	LevelError
)

// Decorator renders the prefix of a line, e.g. to colour it.
type Decorator func(level Level, prefix string) string

// ConsoleLogger writes log lines to a writer, stderr by default.
// Safe for concurrent use by multiple goroutines.
type ConsoleLogger struct {
	mu       sync.Mutex
	out      io.Writer
	verbose  bool
	decorate Decorator
}

var _ bookxmp.Logger = (*ConsoleLogger)(nil)

// NewConsoleLogger creates a logger on stderr. Verbose lines are dropped
// unless verbose is true.
func NewConsoleLogger(verbose bool) *ConsoleLogger {
	return NewConsoleLoggerTo(os.Stderr, verbose)
}

func NewConsoleLoggerTo(out io.Writer, verbose bool) *ConsoleLogger {
	return &ConsoleLogger{out: out, verbose: verbose}
}

// WithDecorator sets how level prefixes are rendered.
func (l *ConsoleLogger) WithDecorator(d Decorator) *ConsoleLogger {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.decorate = d
	return l
}

func (l *ConsoleLogger) write(level Level, prefix, format string, args []interface{}) {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if prefix != "" {
		if l.decorate != nil {
			prefix = l.decorate(level, prefix)
		}
		msg = prefix + " " + msg
	}
	fmt.Fprintln(l.out, msg)
}

func (l *ConsoleLogger) Verbose(format string, args ...interface{}) {
	if !l.verbose {
		return
	}
	l.write(LevelVerbose, "[VERBOSE]", format, args)
}

func (l *ConsoleLogger) Info(format string, args ...interface{}) {
	l.write(LevelInfo, "", format, args)
}

func (l *ConsoleLogger) Error(format string, args ...interface{}) {
	l.write(LevelError, "[ERROR]", format, args)
}
