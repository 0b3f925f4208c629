package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/vvka-141/rstdoc/pkg/docstring"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

// ErrUnsupportedFormat is returned for config files that are neither YAML nor TOML.
var ErrUnsupportedFormat = errors.New("unsupported config format")

// ConfigFileNames are the names LoadFromDir looks for, in order.
var ConfigFileNames = []string{"rstdoc.yaml", "rstdoc.yml", "rstdoc.toml"}

type RenderingConfig struct {
	Style  string  `yaml:"style" toml:"style"`
	Indent *string `yaml:"indent,omitempty" toml:"indent,omitempty"`
}

type ProjectConfig struct {
	Rendering RenderingConfig `yaml:"rendering" toml:"rendering"`

	// Vocabulary is keyed by family name. Keywords are added to the default
	// vocabulary unless ReplaceVocabulary is set.
	Vocabulary        map[string]docstring.FamilySpec `yaml:"vocabulary" toml:"vocabulary"`
	ReplaceVocabulary bool                            `yaml:"replace_vocabulary" toml:"replace_vocabulary"`
}

// Format is the encoding of a config file.
type Format int

const (
	FormatYAML Format = iota
	FormatTOML
)

func (f Format) String() string {
	if f == FormatTOML {
		return "toml"
	}
	return "yaml"
}

// DetectFormat determines the format from the file extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return FormatYAML, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
}

// Load reads a project config file.
func Load(path string) (*ProjectConfig, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	return Parse(data, format)
}

// LoadFromDir loads the first of ConfigFileNames present in dir.
func LoadFromDir(dir string) (*ProjectConfig, error) {
	for _, name := range ConfigFileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}
	return nil, ErrConfigNotFound
}

// Parse decodes config content in the given format.
func Parse(data []byte, format Format) (*ProjectConfig, error) {
	var cfg ProjectConfig
	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("TOML parse error: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("YAML parse error: %w", err)
		}
	}
	return &cfg, nil
}

// BuildVocabulary merges the configured families into the default
// vocabulary, or replaces it when ReplaceVocabulary is set.
func (c *ProjectConfig) BuildVocabulary() (docstring.Vocabulary, error) {
	specs := make(map[docstring.Family]docstring.FamilySpec)
	if !c.ReplaceVocabulary {
		for family, spec := range docstring.DefaultFamilySpecs() {
			specs[family] = spec
		}
	}

	var errs []error
	for name, spec := range c.Vocabulary {
		family, err := docstring.ParseFamily(name)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		merged := specs[family]
		merged.Keywords = appendMissing(merged.Keywords, spec.Keywords)
		if spec.Canonical != "" {
			merged.Canonical = spec.Canonical
		}
		specs[family] = merged
	}
	if err := errors.Join(errs...); err != nil {
		return docstring.Vocabulary{}, err
	}

	return docstring.NewVocabulary(specs)
}

// RenderOptions resolves the rendering section against the defaults.
func (c *ProjectConfig) RenderOptions(vocab docstring.Vocabulary) (docstring.RenderOptions, error) {
	opts := docstring.DefaultRenderOptions()
	opts.Vocabulary = vocab

	style, err := docstring.ParseRenderingStyle(c.Rendering.Style)
	if err != nil {
		return opts, err
	}
	opts.Style = style
	if c.Rendering.Indent != nil {
		opts.Indent = *c.Rendering.Indent
	}
	return opts, nil
}

func appendMissing(dst, src []string) []string {
	seen := make(map[string]bool, len(dst))
	for _, s := range dst {
		seen[s] = true
	}
	for _, s := range src {
		if !seen[s] {
			dst = append(dst, s)
			seen[s] = true
		}
	}
	return dst
}
