package docstring

import "strings"

// MetaKind identifies the variant of a Meta record.
type MetaKind int

const (
	KindGeneric MetaKind = iota
	KindParam
	KindReturns
	KindRaises
	KindDeprecated
)

func (k MetaKind) String() string {
	switch k {
	case KindParam:
		return "param"
	case KindReturns:
		return "returns"
	case KindRaises:
		return "raises"
	case KindDeprecated:
		return "deprecated"
	default:
		return "generic"
	}
}

// Meta is a single tagged block of a docstring.
// The set of implementations is closed: *Generic, *Param, *Returns, *Raises
// and *Deprecated.
type Meta interface {
	// Kind reports the variant.
	Kind() MetaKind

	// RawArgs returns the whitespace-split tokens of the tag line,
	// keyword first.
	RawArgs() []string

	// Desc returns the block body.
	Desc() string

	isMeta()
}

// Base holds the fields every Meta variant carries.
type Base struct {
	// Args are the literal tag tokens as written, keyword first.
	Args []string

	// Description is the block body with its continuation lines dedented.
	Description string
}

// RawArgs implements Meta.
func (b Base) RawArgs() []string { return b.Args }

// Desc implements Meta.
func (b Base) Desc() string { return b.Description }

func (Base) isMeta() {}

// Generic is a block whose keyword is not in the vocabulary.
type Generic struct {
	Base
}

// Kind implements Meta.
func (*Generic) Kind() MetaKind { return KindGeneric }

// Param documents a function argument.
type Param struct {
	Base

	// ArgName is the documented argument.
	ArgName string

	// TypeName is nil when the tag line names no type.
	TypeName *string

	// IsOptional is nil when no type was given, since the optional marker
	// lives on the type token.
	IsOptional *bool

	// Default is the text following "defaults to" in the description.
	Default *string
}

// Kind implements Meta.
func (*Param) Kind() MetaKind { return KindParam }

// Returns documents a return value, or a yielded value when IsGenerator is set.
type Returns struct {
	Base
	TypeName    *string
	IsGenerator bool
}

// Kind implements Meta.
func (*Returns) Kind() MetaKind { return KindReturns }

// Raises documents an exception.
type Raises struct {
	Base
	TypeName *string
}

// Kind implements Meta.
func (*Raises) Kind() MetaKind { return KindRaises }

// Deprecated marks the documented object as deprecated.
// When a version was found, Description holds only the text after it.
type Deprecated struct {
	Base

	// Version is read from the start of the description only, never from
	// tag arguments. Composing writes it back in front of the description,
	// so a value that does not look like a version ("1.2", "v2.0rc1") or a
	// version with an empty description re-parses as plain description text.
	Version *string
}

// Kind implements Meta.
func (*Deprecated) Kind() MetaKind { return KindDeprecated }

// Docstring is the parsed form of a reST docstring.
type Docstring struct {
	ShortDescription           *string
	LongDescription            *string
	BlankAfterShortDescription bool
	BlankAfterLongDescription  bool

	// Meta keeps the tagged blocks in source order.
	Meta []Meta
}

// Params returns all parameter records in source order.
func (d *Docstring) Params() []*Param {
	var out []*Param
	for _, m := range d.Meta {
		if p, ok := m.(*Param); ok {
			out = append(out, p)
		}
	}
	return out
}

// Raises returns all exception records in source order.
func (d *Docstring) Raises() []*Raises {
	var out []*Raises
	for _, m := range d.Meta {
		if r, ok := m.(*Raises); ok {
			out = append(out, r)
		}
	}
	return out
}

// Returns returns the first non-generator return record, or nil.
func (d *Docstring) Returns() *Returns {
	for _, m := range d.Meta {
		if r, ok := m.(*Returns); ok && !r.IsGenerator {
			return r
		}
	}
	return nil
}

// ManyReturns returns every non-generator return record.
func (d *Docstring) ManyReturns() []*Returns {
	var out []*Returns
	for _, m := range d.Meta {
		if r, ok := m.(*Returns); ok && !r.IsGenerator {
			out = append(out, r)
		}
	}
	return out
}

// Yields returns the first generator record, or nil.
func (d *Docstring) Yields() *Returns {
	for _, m := range d.Meta {
		if r, ok := m.(*Returns); ok && r.IsGenerator {
			return r
		}
	}
	return nil
}

// Deprecation returns the first deprecation record, or nil.
func (d *Docstring) Deprecation() *Deprecated {
	for _, m := range d.Meta {
		if dep, ok := m.(*Deprecated); ok {
			return dep
		}
	}
	return nil
}

// Description joins the short and long descriptions, separated by a blank
// line when the source had one.
func (d *Docstring) Description() string {
	var parts []string
	if d.ShortDescription != nil && *d.ShortDescription != "" {
		parts = append(parts, *d.ShortDescription)
		if d.BlankAfterShortDescription {
			parts = append(parts, "")
		}
	}
	if d.LongDescription != nil && *d.LongDescription != "" {
		parts = append(parts, *d.LongDescription)
	}
	return strings.TrimRight(strings.Join(parts, "\n"), "\n")
}

// IsEmpty reports whether the docstring has neither descriptions nor meta.
func (d *Docstring) IsEmpty() bool {
	return d.ShortDescription == nil && d.LongDescription == nil && len(d.Meta) == 0
}
