package config

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/samber/oops"
)

const (
	DefaultOutput            = "doxygen_md_output"
	DefaultDisplayFormat     = "table"
	DefaultDisplayLimit      = 50
	DefaultDescriptionLength = 80

	validationTagRequiredIf = "required_if"
)

func DefaultPatterns() []string {
	return []string{"**/*.xml"}
}

func DefaultListFields() []string {
	return []string{"path", "lines", "size", "description"}
}

type Config struct {
	Output    string            `koanf:"output"  validate:"omitempty,dirpath"`
	Sources   map[string]Source `koanf:"sources" validate:"required,dive"`
	Display   Display           `koanf:"display"`
	ConfigDir string            `koanf:"-"`
}

type Source struct {
	Type     string   `koanf:"type"     validate:"required,oneof=dir url"`
	Path     string   `koanf:"path"     validate:"required_if=Type dir"`
	Patterns []string `koanf:"patterns"`
	Exclude  []string `koanf:"exclude"`
	URL      string   `koanf:"url"      validate:"required_if=Type url,omitempty,url"`
	Name     string   `koanf:"name"`
}

type Display struct {
	Format            string   `koanf:"format"`
	ListFields        []string `koanf:"fields"`
	DefaultLimit      int      `koanf:"limit"`
	DescriptionLength int      `koanf:"description_length"`
}

func newValidator() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}

func (c *Config) ApplyDefaults() {
	if c.Output == "" {
		c.Output = DefaultOutput
	}

	for sourceName, sourceCfg := range c.Sources {
		if sourceCfg.Type == "dir" && len(sourceCfg.Patterns) == 0 {
			sourceCfg.Patterns = DefaultPatterns()
		}

		c.Sources[sourceName] = sourceCfg
	}

	if c.Display.Format == "" {
		c.Display.Format = DefaultDisplayFormat
	}

	if len(c.Display.ListFields) == 0 {
		c.Display.ListFields = DefaultListFields()
	}

	if c.Display.DefaultLimit == 0 {
		c.Display.DefaultLimit = DefaultDisplayLimit
	}

	if c.Display.DescriptionLength == 0 {
		c.Display.DescriptionLength = DefaultDescriptionLength
	}
}

func (c *Config) Validate() error {
	v := newValidator()

	for sourceName, sourceCfg := range c.Sources {
		valErr := v.Struct(sourceCfg)
		if valErr == nil {
			continue
		}

		var validationErrors validator.ValidationErrors
		if !errors.As(valErr, &validationErrors) {
			return oops.
				Code("CONFIG_INVALID").
				With("source", sourceName).
				Wrapf(valErr, "validating source %q", sourceName)
		}

		for _, fe := range validationErrors {
			return mapValidationError(sourceName, sourceCfg, fe)
		}
	}

	return nil
}

func mapValidationError(sourceName string, sourceCfg Source, fe validator.FieldError) error {
	field := strings.ToLower(fe.Field())

	switch {
	case fe.Tag() == "oneof" && field == "type":
		return oops.
			Code("UNKNOWN_SOURCE_TYPE").
			With("source", sourceName).
			With("type", sourceCfg.Type).
			Hint("Supported types: dir, url").
			Errorf("unknown source type %q for source %q", sourceCfg.Type, sourceName)

	case fe.Tag() == validationTagRequiredIf && field == "path":
		return oops.
			Code("CONFIG_INVALID").
			With("source", sourceName).
			With("field", "path").
			Hint("Set path to the directory holding Doxygen XML output").
			Errorf("missing path for source %q", sourceName)

	case fe.Tag() == validationTagRequiredIf && field == "url":
		return oops.
			Code("CONFIG_INVALID").
			With("source", sourceName).
			With("field", "url").
			Hint("Set url for url sources").
			Errorf("missing url for source %q", sourceName)

	case fe.Tag() == "url":
		return oops.
			Code("CONFIG_INVALID").
			With("source", sourceName).
			With("field", "url").
			With("value", sourceCfg.URL).
			Hint("Expected an absolute http(s) URL").
			Errorf("invalid url %q for source %q", sourceCfg.URL, sourceName)

	default:
		return oops.
			Code("CONFIG_INVALID").
			With("source", sourceName).
			With("field", field).
			With("tag", fe.Tag()).
			Errorf("validation failed for field %q in source %q", field, sourceName)
	}
}

// SourcePath returns the absolute input directory for a dir source.
func (c *Config) SourcePath(sourceCfg Source) string {
	if filepath.IsAbs(sourceCfg.Path) {
		return filepath.Clean(sourceCfg.Path)
	}

	return filepath.Clean(filepath.Join(c.ConfigDir, sourceCfg.Path))
}
