package rpc

import "fmt"

// Logger receives diagnostic messages about the connection.
// Log is only called when Enabled reports true.
type Logger interface {
	Enabled() bool
	Log(msg string)
}

type nopLogger struct{}

func (nopLogger) Enabled() bool { return false }
func (nopLogger) Log(string)    {}

// NopLogger discards everything.
var NopLogger Logger = nopLogger{}

func logf(l Logger, format string, args ...any) {
	if l == nil || !l.Enabled() {
		return
	}
	l.Log(fmt.Sprintf(format, args...))
}
