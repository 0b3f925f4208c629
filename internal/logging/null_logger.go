package logging

// NullLogger drops every message. It is what a rest.Parser logs to when no
// logger is configured, or when WithLogger is given nil.
type NullLogger struct{}

// NewNullLogger returns a NullLogger.
func NewNullLogger() *NullLogger {
	return &NullLogger{}
}

func (l *NullLogger) Verbose(format string, args ...interface{}) {}
func (l *NullLogger) Info(format string, args ...interface{})    {}
func (l *NullLogger) Error(format string, args ...interface{})   {}
