package docstring

import (
	"fmt"
	"strings"
)

// DefaultIndent is the continuation-line indentation used when none is configured.
const DefaultIndent = "    "

// RenderingStyle selects how block descriptions are laid out when composing.
type RenderingStyle int

const (
	// StyleCompact puts the description inline after the tag and leaves its
	// continuation lines untouched.
	StyleCompact RenderingStyle = iota

	// StyleClean puts the first description line inline and indents the rest.
	StyleClean

	// StyleExpanded moves the whole description below the tag line, indented.
	StyleExpanded
)

func (s RenderingStyle) String() string {
	switch s {
	case StyleCompact:
		return "compact"
	case StyleClean:
		return "clean"
	case StyleExpanded:
		return "expanded"
	default:
		return fmt.Sprintf("RenderingStyle(%d)", int(s))
	}
}

// ParseRenderingStyle converts a style name as written in configuration files.
// The empty string selects StyleCompact.
func ParseRenderingStyle(name string) (RenderingStyle, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "compact":
		return StyleCompact, nil
	case "clean":
		return StyleClean, nil
	case "expanded":
		return StyleExpanded, nil
	default:
		return StyleCompact, fmt.Errorf("%q: %w", name, ErrUnknownStyle)
	}
}

// RenderOptions controls composition.
type RenderOptions struct {
	Style  RenderingStyle
	Indent string

	// Vocabulary supplies the canonical keyword of each family.
	Vocabulary Vocabulary
}

// DefaultRenderOptions returns compact rendering with four-space indentation
// and the default vocabulary.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		Style:      StyleCompact,
		Indent:     DefaultIndent,
		Vocabulary: DefaultVocabulary(),
	}
}
