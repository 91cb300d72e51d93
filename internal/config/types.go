package config

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/samber/oops"
)

const (
	DefaultLanguage         = "plain"
	DefaultUnwrapDepth      = 1
	DefaultIndent           = 2
	DefaultFetchTimeoutSecs = 30
	DefaultParallel         = 3
)

// Config holds tool-wide settings. All fields are optional; Load fills
// defaults for anything left unset.
type Config struct {
	// DefaultLanguage is applied to code blocks that name no language.
	DefaultLanguage string `koanf:"default_language" validate:"omitempty,printascii"`
	// UnwrapDepth caps JSON-string unwrapping during classification.
	UnwrapDepth int `koanf:"unwrap_depth" validate:"omitempty,min=1,max=8"`
	// Output is the directory batch results are written to. Empty means
	// stdout.
	Output string `koanf:"output"`
	// Indent is the JSON indent width for pretty output.
	Indent int `koanf:"indent" validate:"omitempty,min=0,max=8"`
	// FetchTimeoutSecs bounds --url downloads.
	FetchTimeoutSecs int `koanf:"fetch_timeout_seconds" validate:"omitempty,min=1,max=300"`
	// Parallel is the default worker count for batch normalization.
	Parallel int `koanf:"parallel" validate:"omitempty,min=1,max=64"`

	ConfigDir string `koanf:"-"`
}

// Default returns a config with every field at its default. Commands fall
// back to it when no config file exists, since blockdoc works without one.
func Default() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}

func (c *Config) ApplyDefaults() {
	if c.DefaultLanguage == "" {
		c.DefaultLanguage = DefaultLanguage
	}
	if c.UnwrapDepth == 0 {
		c.UnwrapDepth = DefaultUnwrapDepth
	}
	if c.Indent == 0 {
		c.Indent = DefaultIndent
	}
	if c.FetchTimeoutSecs == 0 {
		c.FetchTimeoutSecs = DefaultFetchTimeoutSecs
	}
	if c.Parallel == 0 {
		c.Parallel = DefaultParallel
	}
}

func (c *Config) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())

	valErr := v.Struct(c)
	if valErr == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(valErr, &validationErrors) {
		return oops.
			Code("CONFIG_INVALID").
			Wrapf(valErr, "validating config")
	}

	for _, fe := range validationErrors {
		return mapValidationError(fe)
	}

	return nil
}

func mapValidationError(fe validator.FieldError) error {
	field := strings.ToLower(fe.Field())

	switch fe.Tag() {
	case "min", "max":
		return oops.
			Code("CONFIG_INVALID").
			With("field", field).
			With("value", fe.Value()).
			Hint("Adjust the value to the documented range").
			Errorf("config field %q is out of range (%s=%s)", field, fe.Tag(), fe.Param())
	default:
		return oops.
			Code("CONFIG_INVALID").
			With("field", field).
			With("tag", fe.Tag()).
			Errorf("validation failed for config field %q", field)
	}
}
