package logging

import "github.com/jisj/bookxmp/pkg/bookxmp"

// NullLogger discards all messages. Used by library code when the caller
// passes no logger.
type NullLogger struct{}

var _ bookxmp.Logger = (*NullLogger)(nil)

func NewNullLogger() *NullLogger {
	return &NullLogger{}
}

func (l *NullLogger) Verbose(format string, args ...interface{}) {}
func (l *NullLogger) Info(format string, args ...interface{})    {}
func (l *NullLogger) Error(format string, args ...interface{})   {}
