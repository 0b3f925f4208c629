package docstring

// Logger receives diagnostics from the parser.
//
// A rest.Parser reports each classified tag block and the final meta count
// through Verbose, and a failed parse through Error before returning the
// *ParseError. Info is never called by the parser itself; it is there for
// callers that share one logger with their own tooling.
//
// Implementations must be safe for concurrent use, since a Parser may be
// shared between goroutines.
type Logger interface {
	Verbose(format string, args ...interface{})
	Info(format string, args ...interface{})
	Error(format string, args ...interface{})
}
