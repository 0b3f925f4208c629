// Package classifier turns the tagged tail of a docstring into typed meta records.
package classifier

import (
	"errors"
	"strings"

	"github.com/vvka-141/rstdoc/internal/textutil"
	"github.com/vvka-141/rstdoc/pkg/docstring"
)

// Classifier classifies tag blocks against a fixed vocabulary.
// Safe for concurrent use.
type Classifier struct {
	vocab  docstring.Vocabulary
	logger docstring.Logger
}

// New creates a Classifier. logger may be nil.
func New(vocab docstring.Vocabulary, logger docstring.Logger) *Classifier {
	return &Classifier{vocab: vocab, logger: logger}
}

// Classify parses every block of tail, in order. firstLine is the 1-based
// line of the caller's text on which tail starts; it is only used to
// attribute errors.
//
// The first malformed block aborts classification with a *docstring.ParseError.
func (c *Classifier) Classify(tail string, firstLine int) ([]docstring.Meta, error) {
	blocks := ScanBlocks(tail)
	if len(blocks) == 0 {
		return nil, nil
	}

	metas := make([]docstring.Meta, 0, len(blocks))
	for _, block := range blocks {
		meta, err := c.classifyBlock(block.Text)
		if err != nil {
			var perr *docstring.ParseError
			if errors.As(err, &perr) {
				perr.Block = block.Text
				if firstLine > 0 {
					perr.Line = firstLine + block.Line
				}
			}
			return nil, err
		}
		c.verbose("classified :%s: as %s", strings.Join(meta.RawArgs(), " "), meta.Kind())
		metas = append(metas, meta)
	}
	return metas, nil
}

func (c *Classifier) classifyBlock(text string) (docstring.Meta, error) {
	tag, body, ok := splitTag(text)
	if !ok {
		return nil, &docstring.ParseError{
			Message: "tag line is not terminated by ':'",
			Hint:    "Write tagged blocks as :keyword args: description",
			Err:     docstring.ErrMissingDelimiter,
		}
	}

	args := strings.Fields(tag)
	if len(args) == 0 {
		return nil, &docstring.ParseError{
			Message: "tag line has no keyword",
			Hint:    "Start the block with a keyword such as :param name: or :returns:",
			Err:     docstring.ErrMissingKeyword,
		}
	}

	return BuildMeta(c.vocab, args, normalizeBody(body))
}

// normalizeBody trims the block body and dedents its continuation lines.
// The first line stays as written.
func normalizeBody(body string) string {
	desc := strings.TrimSpace(body)
	first, rest, ok := textutil.SplitFirstLine(desc)
	if !ok {
		return desc
	}
	return first + "\n" + textutil.Dedent(rest)
}

func (c *Classifier) verbose(format string, args ...interface{}) {
	if c.logger != nil {
		c.logger.Verbose(format, args...)
	}
}
