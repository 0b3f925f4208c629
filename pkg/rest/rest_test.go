package rest

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/rstdoc/internal/config"
	"github.com/vvka-141/rstdoc/internal/logging"
	"github.com/vvka-141/rstdoc/pkg/docstring"
)

const fullDocstring = `Short description.

Long description
spanning lines.

:param int? x: The x, defaults to 5.
:param y: The y.
:returns str: Result.
:yields int: Items.
:raises ValueError: When bad.
:deprecated: 1.2 Use z.
:note: something`

func TestParse_Full(t *testing.T) {
	doc, err := Parse(fullDocstring)
	require.NoError(t, err)

	require.NotNil(t, doc.ShortDescription)
	assert.Equal(t, "Short description.", *doc.ShortDescription)
	require.NotNil(t, doc.LongDescription)
	assert.Equal(t, "Long description\nspanning lines.", *doc.LongDescription)
	assert.True(t, doc.BlankAfterShortDescription)
	assert.True(t, doc.BlankAfterLongDescription)
	require.Len(t, doc.Meta, 7)

	params := doc.Params()
	require.Len(t, params, 2)
	assert.Equal(t, "x", params[0].ArgName)
	assert.Equal(t, "int", *params[0].TypeName)
	assert.True(t, *params[0].IsOptional)
	assert.Equal(t, "5", *params[0].Default)
	assert.Equal(t, "y", params[1].ArgName)
	assert.Nil(t, params[1].TypeName)
	assert.Nil(t, params[1].IsOptional)
	assert.Nil(t, params[1].Default)

	require.NotNil(t, doc.Returns())
	assert.Equal(t, "str", *doc.Returns().TypeName)
	require.NotNil(t, doc.Yields())
	assert.Equal(t, "int", *doc.Yields().TypeName)

	require.Len(t, doc.Raises(), 1)
	assert.Equal(t, "ValueError", *doc.Raises()[0].TypeName)

	dep := doc.Deprecation()
	require.NotNil(t, dep)
	assert.Equal(t, "1.2", *dep.Version)
	assert.Equal(t, "Use z.", dep.Description)

	generic, ok := doc.Meta[6].(*docstring.Generic)
	require.True(t, ok)
	assert.Equal(t, []string{"note"}, generic.Args)
	assert.Equal(t, "something", generic.Description)
}

func TestParse_EmptyInput(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\t\n  \n"} {
		doc, err := Parse(input)
		require.NoError(t, err)
		require.NotNil(t, doc)
		assert.True(t, doc.IsEmpty(), "input %q", input)
		assert.False(t, doc.BlankAfterShortDescription)
		assert.False(t, doc.BlankAfterLongDescription)
		assert.Equal(t, "", Compose(doc))
	}
}

func TestParse_BlankFlags(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		blankShort bool
		blankLong  bool
		hasLong    bool
	}{
		{"short only", "Short.", false, false, false},
		{"short and tags", "Short.\n:param x: y", false, false, false},
		{"blank before tags", "Short.\n\n:param x: y", true, false, false},
		{"long without blanks", "Short.\nLong.\n:param x: y", false, false, true},
		{"blank after short", "Short.\n\nLong.\n:param x: y", true, false, true},
		{"both blanks", "Short.\n\nLong.\n\n:param x: y", true, true, true},
		{"trailing blanks dropped", "Short.\n\nLong.\n\n", true, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.blankShort, doc.BlankAfterShortDescription)
			assert.Equal(t, tt.blankLong, doc.BlankAfterLongDescription)
			assert.Equal(t, tt.hasLong, doc.LongDescription != nil)
		})
	}
}

func TestParse_SourceIndentedDocstring(t *testing.T) {
	text := "Compute a thing.\n\n" +
		"        More detail here.\n\n" +
		"        :param x: the x\n" +
		"            continued\n" +
		"        :returns: the thing\n" +
		"        "

	doc, err := Parse(text)
	require.NoError(t, err)
	assert.Equal(t, "More detail here.", *doc.LongDescription)
	require.Len(t, doc.Meta, 2)
	assert.Equal(t, "the x\ncontinued", doc.Meta[0].Desc())
	assert.Equal(t, "the thing", doc.Meta[1].Desc())
}

func TestParse_TagsOnly(t *testing.T) {
	doc, err := Parse(":note: something")
	require.NoError(t, err)
	assert.Nil(t, doc.ShortDescription)
	assert.Nil(t, doc.LongDescription)
	require.Len(t, doc.Meta, 1)
	assert.Equal(t, ":note: something", Compose(doc))
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		sentinel error
		line     int
	}{
		{"param arity", ":param a b c: too many", docstring.ErrArity, 1},
		{"returns arity", "Short.\n\n:returns a b: x", docstring.ErrArity, 3},
		{"line counts dropped blank lines", "\n\n  Short.\n  :returns a b: x", docstring.ErrArity, 4},
		{"missing delimiter", "Short.\n:param x", docstring.ErrMissingDelimiter, 2},
		{"missing keyword", "Short.\n\n\n: : x", docstring.ErrMissingKeyword, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse(tt.input)
			require.Error(t, err)
			assert.Nil(t, doc)
			assert.True(t, errors.Is(err, tt.sentinel), "expected %v, got %v", tt.sentinel, err)

			var perr *docstring.ParseError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, tt.line, perr.Line)
		})
	}
}

func TestCompose_Styles(t *testing.T) {
	text := "Short.\n\n:param x: first\n  second\n:returns: done"

	tests := []struct {
		style    docstring.RenderingStyle
		expected string
	}{
		{docstring.StyleCompact, "Short.\n\n:param x: first\nsecond\n:returns: done"},
		{docstring.StyleClean, "Short.\n\n:param x: first\n    second\n:returns: done"},
		{docstring.StyleExpanded, "Short.\n\n:param x:\n    first\n    second\n:returns:\n    done"},
	}

	for _, tt := range tests {
		t.Run(tt.style.String(), func(t *testing.T) {
			p := New(WithStyle(tt.style))
			doc, err := p.Parse(text)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, p.Compose(doc))
		})
	}
}

func TestCompose_CanonicalizesKeywords(t *testing.T) {
	doc, err := Parse(":arg str name: who\n:return: x\n:raise: y\n:yield: z\n:deprecation: 3.0 old")
	require.NoError(t, err)

	assert.Equal(t,
		":param str name: who\n:returns: x\n:raises: y\n:yields: z\n:deprecated: 3.0 old",
		Compose(doc))
}

func TestCompose_DeprecatedKeepsTagArguments(t *testing.T) {
	tests := []struct {
		input    string
		args     []string
		expected string
	}{
		{":deprecated 2.1:", []string{"deprecated", "2.1"}, ":deprecated 2.1:"},
		{":deprecated foo: bar", []string{"deprecated", "foo"}, ":deprecated foo: bar"},
		{":deprecation 1.0 soon: 2.0 gone", []string{"deprecation", "1.0", "soon"}, ":deprecated 1.0 soon: 2.0 gone"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			doc, err := Parse(tt.input)
			require.NoError(t, err)
			dep := doc.Deprecation()
			require.NotNil(t, dep)
			assert.Equal(t, tt.args, dep.RawArgs())
			assert.Equal(t, tt.expected, Compose(doc))
		})
	}
}

func TestParse_DeprecatedTagArgumentIsNotAVersion(t *testing.T) {
	doc, err := Parse(":deprecated 2.1:")
	require.NoError(t, err)
	require.NotNil(t, doc.Deprecation())
	assert.Nil(t, doc.Deprecation().Version)
	assert.Equal(t, "", doc.Deprecation().Description)
}

func TestCompose_EditedVersionReparsesAsText(t *testing.T) {
	tests := []struct {
		name     string
		version  string
		desc     string
		composed string
	}{
		{"version not matching the version form", "v1", "text", ":deprecated: v1 text"},
		{"version with empty description", "1.0", "", ":deprecated: 1.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse(":deprecated: 3.0 old")
			require.NoError(t, err)
			dep := doc.Deprecation()
			require.NotNil(t, dep)
			dep.Version = &tt.version
			dep.Description = tt.desc

			composed := Compose(doc)
			assert.Equal(t, tt.composed, composed)

			again, err := Parse(composed)
			require.NoError(t, err)
			require.NotNil(t, again.Deprecation())
			assert.Nil(t, again.Deprecation().Version)
			assert.Equal(t, strings.TrimPrefix(tt.composed, ":deprecated: "), again.Deprecation().Description)
			assert.Equal(t, composed, Compose(again))
		})
	}
}

func TestParse_DefaultsToIsCaseSensitive(t *testing.T) {
	doc, err := Parse(":param int x: Defaults to 1.\n:param int y: Count, defaults to 2.")
	require.NoError(t, err)
	params := doc.Params()
	require.Len(t, params, 2)
	assert.Nil(t, params[0].Default)
	require.NotNil(t, params[1].Default)
	assert.Equal(t, "2", *params[1].Default)
}

func TestCompose_DescriptionStartingWithDelimiter(t *testing.T) {
	tests := []struct {
		input    string
		style    docstring.RenderingStyle
		composed string
	}{
		{":param x: :class:`Foo` instance", docstring.StyleExpanded, "\n:param x:\n    :class:`Foo` instance"},
		{"\n:note: a\n    :b", docstring.StyleClean, "\n:note: a\n    :b"},
		{":0::", docstring.StyleExpanded, "\n:0:\n    :"},
	}

	for _, tt := range tests {
		t.Run(tt.style.String()+"/"+tt.input, func(t *testing.T) {
			p := New(WithStyle(tt.style))
			doc, err := p.Parse(tt.input)
			require.NoError(t, err)
			composed := p.Compose(doc)
			assert.Equal(t, tt.composed, composed)

			again, err := p.Parse(composed)
			require.NoError(t, err)
			require.Len(t, again.Meta, 1)
			assert.Equal(t, doc.Meta[0].RawArgs(), again.Meta[0].RawArgs())
			assert.Equal(t, doc.Meta[0].Desc(), again.Meta[0].Desc())
			assert.Equal(t, composed, p.Compose(again))
		})
	}
}

func TestRoundTrip_Idempotent(t *testing.T) {
	inputs := []string{
		fullDocstring,
		"Short.",
		"Short.\n\n\n:param x: y",
		"Short.\nLong.\n\n:raises: boom\n    bang",
		":param ? x: optional without type",
		`:raises Err\:: weird`,
		":param x: a\n\n    b\n        c\n:note a b c: d",
		":deprecated 1.0: with text",
		"\tTabbed.\n\n\t:param x: y",
		":deprecated foo: bar",
		":param x: :class:`Foo` instance",
		":0::",
	}

	for _, style := range []docstring.RenderingStyle{docstring.StyleCompact, docstring.StyleClean, docstring.StyleExpanded} {
		p := New(WithStyle(style))
		for _, input := range inputs {
			t.Run(style.String()+"/"+input, func(t *testing.T) {
				assertIdempotent(t, p, input)
			})
		}
	}
}

// assertIdempotent checks that composing a parsed docstring and parsing it
// again reproduces the same text.
func assertIdempotent(t *testing.T, p *Parser, input string) {
	t.Helper()

	doc, err := p.Parse(input)
	require.NoError(t, err)
	first := p.Compose(doc)

	again, err := p.Parse(first)
	require.NoError(t, err, "composed text failed to parse:\n%s", first)
	second := p.Compose(again)

	assert.Equal(t, first, second)
	assert.Equal(t, doc.BlankAfterShortDescription, again.BlankAfterShortDescription)
	assert.Equal(t, doc.BlankAfterLongDescription, again.BlankAfterLongDescription)
	require.Len(t, again.Meta, len(doc.Meta))
	for i := range doc.Meta {
		assert.Equal(t, doc.Meta[i].Kind(), again.Meta[i].Kind())
		assert.Equal(t, doc.Meta[i].Desc(), again.Meta[i].Desc())
		assert.Equal(t, doc.Meta[i].RawArgs()[1:], again.Meta[i].RawArgs()[1:])
	}
}

func TestParser_Logging(t *testing.T) {
	var buf bytes.Buffer
	p := New(WithLogger(logging.NewConsoleLoggerTo(&buf, true)))

	_, err := p.Parse(":param x: a\n:returns: b")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "[VERBOSE] classified :param x: as param")
	assert.Contains(t, buf.String(), "[VERBOSE] classified :returns: as returns")
	assert.Contains(t, buf.String(), "[VERBOSE] parsed docstring with 2 meta entries")

	buf.Reset()
	_, err = p.Parse(":returns a b: x")
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(buf.String(), "[ERROR] parse error near"))
}

func TestParser_ZerologLogger(t *testing.T) {
	var buf bytes.Buffer
	p := New(WithLogger(NewZerologLogger(zerolog.New(&buf).Level(zerolog.InfoLevel))))

	_, err := p.Parse(":raises A B: two")
	require.Error(t, err)
	assert.Contains(t, buf.String(), `"level":"error"`)
	assert.NotContains(t, buf.String(), `"level":"debug"`)
}

func TestWithLogger_Nil(t *testing.T) {
	p := New(WithLogger(nil))
	assert.IsType(t, &logging.NullLogger{}, p.logger)
	_, err := p.Parse(":param a b c: x")
	assert.Error(t, err)

	assert.IsType(t, &logging.NullLogger{}, New().logger)
}

func TestParser_CustomVocabulary(t *testing.T) {
	vocab, err := docstring.NewVocabulary(map[docstring.Family]docstring.FamilySpec{
		docstring.FamilyParam: {Keywords: []string{"field"}},
	})
	require.NoError(t, err)

	p := New(WithVocabulary(vocab))
	doc, err := p.Parse(":field int n: count\n:returns: x")
	require.NoError(t, err)
	require.Len(t, doc.Params(), 1)
	assert.Equal(t, "n", doc.Params()[0].ArgName)
	assert.Nil(t, doc.Returns(), "returns is not in the vocabulary")
	assert.Equal(t, ":field int n: count\n:returns: x", p.Compose(doc))
}

func TestNewFromConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rstdoc.yaml")
	content := "rendering:\n  style: expanded\n  indent: \"  \"\nvocabulary:\n  param:\n    keywords: [field]\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	p, err := NewFromConfig(path)
	require.NoError(t, err)
	assert.Equal(t, docstring.StyleExpanded, p.RenderOptions().Style)
	assert.Equal(t, "  ", p.RenderOptions().Indent)

	doc, err := p.Parse(":field x: d")
	require.NoError(t, err)
	require.Len(t, doc.Params(), 1)
	assert.Equal(t, ":param x:\n  d", p.Compose(doc))

	p, err = NewFromConfig(path, WithStyle(docstring.StyleCompact))
	require.NoError(t, err)
	assert.Equal(t, ":param x: d", p.Compose(doc))
}

func TestNewFromConfig_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := NewFromConfig(filepath.Join(dir, "rstdoc.toml"))
	assert.ErrorIs(t, err, config.ErrConfigNotFound)

	bad := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("[rendering]\nstyle = \"fancy\"\n"), 0644))
	_, err = NewFromConfig(bad)
	assert.ErrorIs(t, err, docstring.ErrUnknownStyle)

	vocab := filepath.Join(dir, "vocab.yaml")
	require.NoError(t, os.WriteFile(vocab, []byte("vocabulary:\n  rtype:\n    keywords: [rtype]\n"), 0644))
	_, err = NewFromConfig(vocab)
	assert.ErrorIs(t, err, docstring.ErrInvalidVocabulary)
}

func TestNewFromDir(t *testing.T) {
	dir := t.TempDir()
	content := "[rendering]\nstyle = \"clean\"\n\n[vocabulary.deprecated]\nkeywords = [\"obsolete\"]\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "rstdoc.toml"), []byte(content), 0644))

	p, err := NewFromDir(dir)
	require.NoError(t, err)
	assert.Equal(t, docstring.StyleClean, p.RenderOptions().Style)

	doc, err := p.Parse(":obsolete: 1.0 gone\n    for good")
	require.NoError(t, err)
	require.NotNil(t, doc.Deprecation())
	assert.Equal(t, "1.0", *doc.Deprecation().Version)
	assert.Equal(t, ":deprecated: 1.0 gone\n    for good", p.Compose(doc))

	p, err = NewFromDir(dir, WithStyle(docstring.StyleExpanded))
	require.NoError(t, err)
	assert.Equal(t, docstring.StyleExpanded, p.RenderOptions().Style)
}

func TestNewFromDir_PrefersYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "rstdoc.toml"), []byte("[rendering]\nstyle = \"clean\"\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "rstdoc.yaml"), []byte("rendering:\n  style: expanded\n"), 0644))

	p, err := NewFromDir(dir)
	require.NoError(t, err)
	assert.Equal(t, docstring.StyleExpanded, p.RenderOptions().Style)
}

func TestNewFromDir_Errors(t *testing.T) {
	_, err := NewFromDir(t.TempDir())
	assert.ErrorIs(t, err, config.ErrConfigNotFound)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "rstdoc.yml"), []byte("rendering:\n  style: fancy\n"), 0644))
	_, err = NewFromDir(dir)
	assert.ErrorIs(t, err, docstring.ErrUnknownStyle)
}

func TestParser_ConcurrentUse(t *testing.T) {
	p := New(WithStyle(docstring.StyleClean))

	var wg sync.WaitGroup
	results := make([]string, 20)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			doc, err := p.Parse(fullDocstring)
			if err != nil {
				return
			}
			results[i] = p.Compose(doc)
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		assert.Equal(t, results[0], r)
	}
	assert.NotEmpty(t, results[0])
}
