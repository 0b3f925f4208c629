package docstring

import (
	_ "embed"
	"errors"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Family is a group of tag keywords that share a sub-grammar.
type Family string

const (
	FamilyParam      Family = "param"
	FamilyReturns    Family = "returns"
	FamilyYields     Family = "yields"
	FamilyRaises     Family = "raises"
	FamilyDeprecated Family = "deprecated"
)

// Families lists every known family in a stable order.
var Families = []Family{FamilyParam, FamilyReturns, FamilyYields, FamilyRaises, FamilyDeprecated}

// ParseFamily converts a family name as written in configuration files.
func ParseFamily(name string) (Family, error) {
	f := Family(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Families {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown keyword family %q: %w", name, ErrInvalidVocabulary)
}

// FamilySpec is the serialized form of one family.
type FamilySpec struct {
	Canonical string   `yaml:"canonical,omitempty" toml:"canonical,omitempty"`
	Keywords  []string `yaml:"keywords" toml:"keywords"`
}

//go:embed default_vocabulary.yaml
var defaultVocabularyYAML []byte

var defaultVocabulary = mustDecodeVocabulary(defaultVocabularyYAML)

// Vocabulary maps tag keywords to families.
// The zero value recognizes no keyword; every block then parses as Generic.
// A Vocabulary is read-only after construction.
type Vocabulary struct {
	keywords  map[string]Family
	canonical map[Family]string
}

// DefaultVocabulary returns the built-in keyword families.
func DefaultVocabulary() Vocabulary {
	return defaultVocabulary
}

// DefaultFamilySpecs returns the built-in families in serialized form.
func DefaultFamilySpecs() map[Family]FamilySpec {
	return defaultVocabulary.Specs()
}

// NewVocabulary validates specs and builds a Vocabulary.
// An empty Canonical defaults to the family's first keyword. Every problem
// found is reported, joined into one error wrapping ErrInvalidVocabulary.
func NewVocabulary(specs map[Family]FamilySpec) (Vocabulary, error) {
	v := Vocabulary{
		keywords:  make(map[string]Family),
		canonical: make(map[Family]string),
	}
	var errs []error

	for _, name := range sortedFamilies(specs) {
		spec := specs[name]
		family, err := ParseFamily(string(name))
		if err != nil {
			errs = append(errs, err)
			continue
		}

		for _, kw := range spec.Keywords {
			switch {
			case strings.TrimSpace(kw) == "" || strings.ContainsAny(kw, " \t\n:"):
				errs = append(errs, fmt.Errorf("family %s: keyword %q must be a single token without ':': %w", family, kw, ErrInvalidVocabulary))
			case v.keywords[kw] != "" && v.keywords[kw] != family:
				errs = append(errs, fmt.Errorf("keyword %q is mapped to both %s and %s: %w", kw, v.keywords[kw], family, ErrInvalidVocabulary))
			default:
				v.keywords[kw] = family
			}
		}

		canonical := spec.Canonical
		if canonical == "" && len(spec.Keywords) > 0 {
			canonical = spec.Keywords[0]
		}
		if canonical == "" {
			continue
		}
		if v.keywords[canonical] != family {
			errs = append(errs, fmt.Errorf("family %s: canonical keyword %q is not one of its keywords: %w", family, canonical, ErrInvalidVocabulary))
			continue
		}
		v.canonical[family] = canonical
	}

	if err := errors.Join(errs...); err != nil {
		return Vocabulary{}, err
	}
	return v, nil
}

// Family reports the family of keyword.
func (v Vocabulary) Family(keyword string) (Family, bool) {
	f, ok := v.keywords[keyword]
	return f, ok
}

// Canonical returns the keyword used to compose tag lines of family f.
// Families without keywords fall back to the family name.
func (v Vocabulary) Canonical(f Family) string {
	if kw, ok := v.canonical[f]; ok {
		return kw
	}
	return string(f)
}

// Keywords returns the keywords of family f, sorted.
func (v Vocabulary) Keywords(f Family) []string {
	var out []string
	for kw, fam := range v.keywords {
		if fam == f {
			out = append(out, kw)
		}
	}
	sort.Strings(out)
	return out
}

// Specs returns the vocabulary in serialized form.
func (v Vocabulary) Specs() map[Family]FamilySpec {
	specs := make(map[Family]FamilySpec)
	for _, f := range Families {
		kws := v.Keywords(f)
		if len(kws) == 0 {
			continue
		}
		specs[f] = FamilySpec{Canonical: v.Canonical(f), Keywords: kws}
	}
	return specs
}

// DecodeVocabularyYAML builds a Vocabulary from a YAML document keyed by family name.
func DecodeVocabularyYAML(data []byte) (Vocabulary, error) {
	var raw map[string]FamilySpec
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Vocabulary{}, fmt.Errorf("decode vocabulary: %w", err)
	}
	specs := make(map[Family]FamilySpec, len(raw))
	for name, spec := range raw {
		specs[Family(name)] = spec
	}
	return NewVocabulary(specs)
}

func mustDecodeVocabulary(data []byte) Vocabulary {
	v, err := DecodeVocabularyYAML(data)
	if err != nil {
		panic(fmt.Sprintf("docstring: embedded default vocabulary: %v", err))
	}
	return v
}

func sortedFamilies(specs map[Family]FamilySpec) []Family {
	out := make([]Family, 0, len(specs))
	for f := range specs {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
