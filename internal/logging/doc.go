// Package logging provides concrete implementations of the docstring.Logger interface.
//
// Available implementations:
//   - ConsoleLogger: Writes prefixed printf-style lines to stderr (or any io.Writer)
//   - ZerologLogger: Forwards messages to a zerolog.Logger as structured events
//   - NullLogger: Discards all messages (the parser default)
//
// All logger implementations are safe for concurrent use by multiple goroutines.
package logging
