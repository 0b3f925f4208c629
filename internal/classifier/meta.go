package classifier

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/vvka-141/rstdoc/pkg/docstring"
)

// optionalMarker suffixes a parameter type to mark the parameter optional.
const optionalMarker = "?"

// defaultPattern captures the text after the last "defaults to" of a
// parameter description, across line breaks. Matching is case-sensitive.
var defaultPattern = regexp.MustCompile(`(?s)^.*defaults to (.+)$`)

// versionPattern matches a version token opening a deprecation description,
// e.g. "1.2.3", "v2.0" or "3.0.0rc1", followed by the remaining text.
var versionPattern = regexp.MustCompile(`(?is)^(v?\d+\.[0-9a-z.]+) (.+)$`)

// BuildMeta classifies one tag block. args holds the tag line tokens with the
// keyword first and must not be empty; desc is the already dedented body.
//
// Returned errors are *docstring.ParseError values without Block and Line,
// which the caller fills in.
func BuildMeta(vocab docstring.Vocabulary, args []string, desc string) (docstring.Meta, error) {
	key := args[0]
	base := docstring.Base{Args: args, Description: desc}

	family, ok := vocab.Family(key)
	if !ok {
		return &docstring.Generic{Base: base}, nil
	}

	switch family {
	case docstring.FamilyParam:
		return buildParam(base, key, args, desc)

	case docstring.FamilyReturns, docstring.FamilyYields:
		typeName, err := optionalType(key, args)
		if err != nil {
			return nil, err
		}
		return &docstring.Returns{
			Base:        base,
			TypeName:    typeName,
			IsGenerator: family == docstring.FamilyYields,
		}, nil

	case docstring.FamilyDeprecated:
		dep := &docstring.Deprecated{Base: base}
		if m := versionPattern.FindStringSubmatch(desc); m != nil {
			version := m[1]
			dep.Version = &version
			dep.Description = m[2]
		}
		return dep, nil

	case docstring.FamilyRaises:
		typeName, err := optionalType(key, args)
		if err != nil {
			return nil, err
		}
		return &docstring.Raises{Base: base, TypeName: typeName}, nil
	}

	return &docstring.Generic{Base: base}, nil
}

func buildParam(base docstring.Base, key string, args []string, desc string) (docstring.Meta, error) {
	p := &docstring.Param{Base: base}

	switch len(args) {
	case 3:
		typeName := args[1]
		optional := strings.HasSuffix(typeName, optionalMarker)
		if optional {
			typeName = strings.TrimSuffix(typeName, optionalMarker)
		}
		p.TypeName = &typeName
		p.IsOptional = &optional
		p.ArgName = args[2]
	case 2:
		p.ArgName = args[1]
	default:
		return nil, arityError(key, len(args), "expected one or two arguments for a %s keyword",
			fmt.Sprintf(":%s <name>: or :%s <type> <name>:", key, key))
	}

	if m := defaultPattern.FindStringSubmatch(desc); m != nil {
		def := strings.TrimRight(m[1], ".")
		p.Default = &def
	}
	return p, nil
}

// optionalType reads the type token of families that accept one optional argument.
func optionalType(key string, args []string) (*string, error) {
	switch len(args) {
	case 1:
		return nil, nil
	case 2:
		typeName := args[1]
		return &typeName, nil
	default:
		return nil, arityError(key, len(args), "expected one or no arguments for a %s keyword",
			fmt.Sprintf(":%s: or :%s <type>:", key, key))
	}
}

func arityError(key string, got int, format, usage string) *docstring.ParseError {
	return &docstring.ParseError{
		Keyword: key,
		Message: fmt.Sprintf(format+" (got %d)", key, got-1),
		Hint:    "Use " + usage,
		Err:     docstring.ErrArity,
	}
}
