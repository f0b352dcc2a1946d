// Package config loads and validates the pipeline run configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// validate is a singleton validator instance
var validate = validator.New()

// Config describes one analysis run.
type Config struct {
	// EdgesPath points at the friendship pair file (.csv or .csv.gz)
	EdgesPath string `yaml:"edges" validate:"required"`
	// FeaturesPath points at the per-streamer attribute file
	FeaturesPath string `yaml:"features" validate:"required"`
	// Language selects the broadcast-language subgraph, e.g. "FR"
	Language string `yaml:"language" validate:"required,alpha,min=2,max=8"`
	// OutputPath is where the subgraph GEXF lands (.gexf or .gexf.gz)
	OutputPath string `yaml:"output" validate:"required"`
	// LogLevel tunes logging verbosity; empty means info
	LogLevel string `yaml:"log_level" validate:"omitempty,oneof=debug info warn error"`
}

// Default returns a config with the defaults a flag-only invocation starts from.
func Default() *Config {
	return &Config{
		OutputPath: "subgraph.gexf",
		LogLevel:   "info",
	}
}

// Load reads a YAML config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the config via struct tags, returning the first problem
// in a user-friendly form.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config cannot be nil")
	}
	if err := validate.Struct(c); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// formatValidationError converts validator errors to a more user-friendly format
func formatValidationError(err error) error {
	if err == nil {
		return nil
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	for _, e := range validationErrs {
		field := e.Field()
		tag := e.Tag()
		param := e.Param()

		switch tag {
		case "required":
			return fmt.Errorf("%s: field is required", field)
		case "min":
			return fmt.Errorf("%s: must be at least %s", field, param)
		case "max":
			return fmt.Errorf("%s: must not exceed %s", field, param)
		case "alpha":
			return fmt.Errorf("%s: must contain letters only", field)
		case "oneof":
			return fmt.Errorf("%s: must be one of [%s]", field, param)
		default:
			return fmt.Errorf("%s: validation failed (%s)", field, tag)
		}
	}

	return err
}
