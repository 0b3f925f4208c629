// Package composer renders a parsed docstring back into reST text.
package composer

import (
	"strings"

	"github.com/vvka-141/rstdoc/internal/textutil"
	"github.com/vvka-141/rstdoc/pkg/docstring"
)

// Compose renders doc using opts. Tag lines are rebuilt from the structured
// fields of each record, so edits made after parsing are honored; Generic
// and Deprecated records reuse their raw tokens. Lines are joined with "\n"
// and no trailing newline is added.
//
// When the first line is the only one at column 0 and removing the common
// margin of the others would start one of them with ':', the output opens
// with an empty line so the margin is kept on re-parse.
func Compose(doc *docstring.Docstring, opts docstring.RenderOptions) string {
	if doc == nil {
		return ""
	}

	var parts []string
	if doc.ShortDescription != nil && *doc.ShortDescription != "" {
		parts = append(parts, *doc.ShortDescription)
	}
	if doc.BlankAfterShortDescription {
		parts = append(parts, "")
	}
	if doc.LongDescription != nil && *doc.LongDescription != "" {
		parts = append(parts, *doc.LongDescription)
	}
	if doc.BlankAfterLongDescription {
		parts = append(parts, "")
	}

	for _, meta := range doc.Meta {
		if meta == nil {
			continue
		}
		tag, desc := tagLine(meta, opts.Vocabulary)
		parts = append(parts, tag+processDesc(desc, opts))
	}

	out := strings.Join(parts, "\n")
	if exposesDelimiter(out) {
		out = "\n" + out
	}
	return out
}

// exposesDelimiter reports whether dedenting every line but the first of
// text by their common margin would put ':' at the start of a line.
func exposesDelimiter(text string) bool {
	lines := strings.Split(textutil.ExpandTabs(text), "\n")
	if len(lines) < 2 {
		return false
	}
	rest := lines[1:]
	margin, ok := textutil.Margin(rest)
	if !ok || margin == 0 {
		return false
	}
	for _, line := range rest {
		if len(line) > margin && line[margin] == ':' {
			return true
		}
	}
	return false
}

// tagLine returns the ":...:" chunk of a record and the description to render after it.
func tagLine(meta docstring.Meta, vocab docstring.Vocabulary) (string, string) {
	switch m := meta.(type) {
	case *docstring.Param:
		fields := []string{vocab.Canonical(docstring.FamilyParam)}
		if m.TypeName != nil {
			typeName := *m.TypeName
			if m.IsOptional != nil && *m.IsOptional {
				typeName += "?"
			}
			if typeName != "" {
				fields = append(fields, typeName)
			}
		}
		fields = append(fields, m.ArgName)
		return tag(fields...), m.Description

	case *docstring.Returns:
		family := docstring.FamilyReturns
		if m.IsGenerator {
			family = docstring.FamilyYields
		}
		return tag(withType(vocab.Canonical(family), m.TypeName)...), m.Description

	case *docstring.Raises:
		return tag(withType(vocab.Canonical(docstring.FamilyRaises), m.TypeName)...), m.Description

	case *docstring.Deprecated:
		fields := []string{vocab.Canonical(docstring.FamilyDeprecated)}
		if len(m.Args) > 1 {
			fields = append(fields, m.Args[1:]...)
		}
		if m.Version == nil || *m.Version == "" {
			return tag(fields...), m.Description
		}
		if m.Description == "" {
			return tag(fields...), *m.Version
		}
		return tag(fields...), *m.Version + " " + m.Description

	default:
		return tag(meta.RawArgs()...), meta.Desc()
	}
}

func withType(keyword string, typeName *string) []string {
	if typeName == nil || *typeName == "" {
		return []string{keyword}
	}
	return []string{keyword, *typeName}
}

// tag joins the tag line fields. A trailing backslash would escape the
// closing delimiter, so it is kept apart from it.
func tag(fields ...string) string {
	joined := strings.Join(fields, " ")
	if strings.HasSuffix(joined, `\`) {
		joined += " "
	}
	return ":" + joined + ":"
}

// processDesc lays out a description according to the rendering style.
// Empty lines inside the description are never indented.
func processDesc(desc string, opts docstring.RenderOptions) string {
	if desc == "" {
		return ""
	}

	switch opts.Style {
	case docstring.StyleClean:
		lines := strings.Split(desc, "\n")
		out := []string{" " + lines[0]}
		for _, line := range lines[1:] {
			out = append(out, indentLine(line, opts.Indent))
		}
		return strings.Join(out, "\n")

	case docstring.StyleExpanded:
		lines := strings.Split(desc, "\n")
		out := []string{"\n" + indentLine(lines[0], opts.Indent)}
		for _, line := range lines[1:] {
			out = append(out, indentLine(line, opts.Indent))
		}
		return strings.Join(out, "\n")

	default:
		return " " + desc
	}
}

func indentLine(line, indent string) string {
	if line == "" {
		return ""
	}
	return indent + line
}
