// Package splitter separates a docstring's narrative preamble from its
// tagged metadata blocks.
package splitter

import (
	"strings"

	"github.com/vvka-141/rstdoc/internal/textutil"
)

// Delimiter starts a tagged block when it is the first byte of a line.
const Delimiter = ":"

// Result is the outcome of splitting a docstring.
type Result struct {
	Short           *string
	Long            *string
	BlankAfterShort bool
	BlankAfterLong  bool

	// Tail holds every tagged block, starting with the first line that
	// begins with Delimiter. Empty when there are none.
	Tail string

	// TailLine is the 1-based line of the input text on which Tail starts.
	// Zero when Tail is empty.
	TailLine int
}

// Split normalizes text with textutil.CleanDoc and splits it into the
// preamble fields and the tagged tail. Empty or whitespace-only text yields
// the zero Result.
func Split(text string) Result {
	var res Result
	if textutil.IsBlank(text) {
		return res
	}

	cleaned, dropped := textutil.CleanDoc(text)

	preamble, tail, tailLine := cutAtFirstTag(cleaned)
	res.Tail = tail
	if tail != "" {
		res.TailLine = dropped + tailLine + 1
	}

	short, rest, hasRest := textutil.SplitFirstLine(preamble)
	if short != "" {
		res.Short = &short
	}
	if !hasRest {
		return res
	}

	res.BlankAfterShort = strings.HasPrefix(rest, "\n")
	res.BlankAfterLong = strings.HasSuffix(rest, "\n\n")
	if long := strings.TrimSpace(rest); long != "" {
		res.Long = &long
	}
	return res
}

// cutAtFirstTag splits text before the first line starting with Delimiter.
// line is the 0-based index of that line.
func cutAtFirstTag(text string) (preamble, tail string, line int) {
	offset := 0
	for i, l := range strings.Split(text, "\n") {
		if strings.HasPrefix(l, Delimiter) {
			return text[:offset], text[offset:], i
		}
		offset += len(l) + 1
	}
	return text, "", 0
}
