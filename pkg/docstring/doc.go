// Package docstring defines the typed model shared by the reST docstring
// parser and composer.
//
// # Overview
//
// A docstring written in the reStructuredText tag convention consists of a
// narrative preamble followed by tagged metadata blocks:
//
//	Fetch rows from the table.
//
//	Rows are returned in primary key order.
//
//	:param str table: table name
//	:param int? limit: maximum row count, defaults to 100.
//	:returns list: the fetched rows
//	:raises KeyError: when the table does not exist
//	:deprecated: 2.1.0 use fetch_many instead
//
// Parsing produces a Docstring holding the short and long descriptions, the
// blank-line layout between them, and an ordered slice of Meta records. Meta
// is a closed set of variants:
//   - Param: argument name, optional type, optional marker, default value
//   - Returns: optional type, generator flag (yields vs returns)
//   - Raises: optional exception type
//   - Deprecated: optional version
//   - Generic: any keyword not present in the Vocabulary
//
// # Vocabulary
//
// Which keyword belongs to which family is configuration, not grammar. A
// Vocabulary maps keywords such as "param", "arg" or "yields" to a Family and
// names the canonical keyword used when composing. DefaultVocabulary is
// decoded from an embedded YAML document.
//
// # Errors
//
// Malformed tag blocks produce a *ParseError wrapping one of ErrMissingDelimiter,
// ErrMissingKeyword or ErrArity:
//
//	doc, err := rest.Parse(text)
//	var perr *docstring.ParseError
//	if errors.As(err, &perr) && errors.Is(err, docstring.ErrArity) {
//	    fmt.Println(perr.Line, perr.Keyword)
//	}
//
// # Package Structure
//
//   - types.go: Docstring and the Meta variants
//   - vocabulary.go: keyword families (default_vocabulary.yaml embedded via go:embed)
//   - errors.go: ParseError and sentinel errors
//   - rendering.go: RenderingStyle and RenderOptions
//   - logger.go: Logger interface implemented by internal/logging
package docstring
