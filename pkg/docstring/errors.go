package docstring

import (
	"errors"
	"fmt"
)

// Sentinel errors wrapped by ParseError and configuration helpers.
// Callers distinguish them with errors.Is().
var (
	// ErrMissingDelimiter indicates a tag block without the ':' that ends the tag line.
	ErrMissingDelimiter = errors.New("missing body delimiter")

	// ErrMissingKeyword indicates a tag block whose tag line is empty.
	ErrMissingKeyword = errors.New("missing tag keyword")

	// ErrArity indicates a tag line with the wrong number of tokens for its keyword family.
	ErrArity = errors.New("wrong number of tag arguments")

	// ErrInvalidVocabulary indicates an inconsistent keyword vocabulary.
	ErrInvalidVocabulary = errors.New("invalid vocabulary")

	// ErrUnknownStyle indicates a rendering style name that is not recognized.
	ErrUnknownStyle = errors.New("unknown rendering style")
)

// ParseError describes a tag block that could not be classified.
// A ParseError is fatal to the whole parse.
type ParseError struct {
	Block   string // Raw text of the offending block
	Line    int    // 1-based line of the block in the parsed text (0 if unknown)
	Keyword string // Tag keyword, when one was found
	Message string // Primary error message
	Hint    string // Actionable suggestion for fixing
	Err     error  // One of the sentinel errors above
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	location := fmt.Sprintf("near %q", e.Block)
	if e.Line > 0 {
		location = fmt.Sprintf("near %q (line %d)", e.Block, e.Line)
	}

	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}

	out := fmt.Sprintf("parse error %s: %s", location, msg)
	if e.Hint != "" {
		out += "\n\nHint: " + e.Hint
	}
	return out
}

// Unwrap exposes the sentinel error.
func (e *ParseError) Unwrap() error {
	return e.Err
}
