// Package rest parses and composes reStructuredText-style docstrings.
//
// Parse separates the narrative preamble from the tagged blocks and
// classifies each block against a keyword vocabulary; Compose renders the
// result back into text in one of three layouts:
//
//	doc, err := rest.Parse(text)
//	if err != nil {
//	    return err
//	}
//	for _, p := range doc.Params() {
//	    fmt.Println(p.ArgName)
//	}
//	out := rest.Compose(doc, rest.WithStyle(docstring.StyleClean))
//
// A Parser bundles a vocabulary, a logger and rendering options. Parsers
// are immutable and safe for concurrent use.
package rest

import (
	"github.com/rs/zerolog"

	"github.com/vvka-141/rstdoc/internal/classifier"
	"github.com/vvka-141/rstdoc/internal/composer"
	"github.com/vvka-141/rstdoc/internal/config"
	"github.com/vvka-141/rstdoc/internal/logging"
	"github.com/vvka-141/rstdoc/internal/splitter"
	"github.com/vvka-141/rstdoc/pkg/docstring"
)

// Parser parses and composes docstrings with a fixed configuration.
type Parser struct {
	vocab      docstring.Vocabulary
	logger     docstring.Logger
	render     docstring.RenderOptions
	classifier *classifier.Classifier
}

// Option configures a Parser.
type Option func(*Parser)

// WithVocabulary sets the keyword families used to classify and compose tags.
func WithVocabulary(v docstring.Vocabulary) Option {
	return func(p *Parser) { p.vocab = v }
}

// WithLogger sets the logger. A nil logger discards messages.
func WithLogger(l docstring.Logger) Option {
	return func(p *Parser) {
		if l == nil {
			l = logging.NewNullLogger()
		}
		p.logger = l
	}
}

// WithStyle sets the rendering style used by Compose.
func WithStyle(s docstring.RenderingStyle) Option {
	return func(p *Parser) { p.render.Style = s }
}

// WithIndent sets the continuation-line indentation used by Compose.
func WithIndent(indent string) Option {
	return func(p *Parser) { p.render.Indent = indent }
}

// New creates a Parser with the default vocabulary, compact rendering,
// four-space indentation and no logging, then applies opts.
func New(opts ...Option) *Parser {
	p := &Parser{
		vocab:  docstring.DefaultVocabulary(),
		logger: logging.NewNullLogger(),
		render: docstring.DefaultRenderOptions(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.render.Vocabulary = p.vocab
	p.classifier = classifier.New(p.vocab, p.logger)
	return p
}

// NewFromConfig creates a Parser from a YAML or TOML project config file.
// opts are applied after the file, so they take precedence.
func NewFromConfig(path string, opts ...Option) (*Parser, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	return newFromProjectConfig(cfg, opts)
}

// NewFromDir creates a Parser from the first of rstdoc.yaml, rstdoc.yml and
// rstdoc.toml found in dir. It fails with config.ErrConfigNotFound when
// there is none.
func NewFromDir(dir string, opts ...Option) (*Parser, error) {
	cfg, err := config.LoadFromDir(dir)
	if err != nil {
		return nil, err
	}
	return newFromProjectConfig(cfg, opts)
}

func newFromProjectConfig(cfg *config.ProjectConfig, opts []Option) (*Parser, error) {
	vocab, err := cfg.BuildVocabulary()
	if err != nil {
		return nil, err
	}
	render, err := cfg.RenderOptions(vocab)
	if err != nil {
		return nil, err
	}

	base := []Option{
		WithVocabulary(vocab),
		WithStyle(render.Style),
		WithIndent(render.Indent),
	}
	return New(append(base, opts...)...), nil
}

// Parse parses text into a Docstring. Empty or whitespace-only text yields
// an empty Docstring. A malformed tag block fails the whole parse with a
// *docstring.ParseError and no Docstring.
func (p *Parser) Parse(text string) (*docstring.Docstring, error) {
	parts := splitter.Split(text)

	meta, err := p.classifier.Classify(parts.Tail, parts.TailLine)
	if err != nil {
		p.logger.Error("%v", err)
		return nil, err
	}

	doc := &docstring.Docstring{
		ShortDescription:           parts.Short,
		LongDescription:            parts.Long,
		BlankAfterShortDescription: parts.BlankAfterShort,
		BlankAfterLongDescription:  parts.BlankAfterLong,
		Meta:                       meta,
	}
	p.logger.Verbose("parsed docstring with %d meta entries", len(meta))
	return doc, nil
}

// Compose renders doc with the Parser's rendering options.
func (p *Parser) Compose(doc *docstring.Docstring) string {
	return composer.Compose(doc, p.render)
}

// RenderOptions returns the options Compose renders with.
func (p *Parser) RenderOptions() docstring.RenderOptions {
	return p.render
}

// Parse parses text with the default vocabulary.
func Parse(text string) (*docstring.Docstring, error) {
	return New().Parse(text)
}

// Compose renders doc; without options it uses compact style and
// four-space indentation.
func Compose(doc *docstring.Docstring, opts ...Option) string {
	return New(opts...).Compose(doc)
}

// NewConsoleLogger returns a logger writing to stderr. Verbose messages are
// only written when verbose is true.
func NewConsoleLogger(verbose bool) docstring.Logger {
	return logging.NewConsoleLogger(verbose)
}

// NewZerologLogger returns a logger forwarding to log; parser diagnostics
// are emitted at debug level.
func NewZerologLogger(log zerolog.Logger) docstring.Logger {
	return logging.NewZerologLogger(log)
}
