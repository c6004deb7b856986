// Package config loads and validates the optional .styleguard.yml file
// that scopes a lint run: enabled rules, excluded files, and rule tuning.
package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/styleguard/styleguard/pkg/constants"
)

//go:embed schemas/config_schema.json
var configSchema string

// Config scopes one lint run. The zero value means "all rules, no
// excludes, default tuning".
type Config struct {
	// Rules enables only the listed rule identifiers; empty means all.
	Rules []string `yaml:"rules"`
	// Exclude removes files matching these globs (relative to the lint
	// root) from the run.
	Exclude []string `yaml:"exclude"`
	// MaxNesting overrides the max-nesting-depth limit when > 0.
	MaxNesting int `yaml:"max_nesting"`
}

// Default returns the zero configuration
func Default() *Config {
	return &Config{}
}

// Load reads an explicit config file. A missing file is an error here;
// use Discover for the optional lookup.
func Load(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return parse(path, content)
}

// Discover looks for the default config file in the lint root, falling
// back to the zero configuration when none exists.
func Discover(root string) (*Config, error) {
	info, err := os.Stat(root)
	if err == nil && !info.IsDir() {
		root = filepath.Dir(root)
	}

	path := filepath.Join(root, constants.ConfigFileName)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return Load(path)
}

// parse unmarshals and schema-validates raw config content
func parse(path string, content []byte) (*Config, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(content, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := validateWithSchema(raw); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return &cfg, nil
}

// validateWithSchema checks the raw config against the embedded JSON
// schema. YAML values are round-tripped through JSON to normalize types
// the way the schema library expects.
func validateWithSchema(raw map[string]any) error {
	compiler := jsonschema.NewCompiler()

	var schemaDoc any
	if err := json.Unmarshal([]byte(configSchema), &schemaDoc); err != nil {
		return fmt.Errorf("failed to parse config schema: %w", err)
	}

	schemaURL := "http://styleguard.dev/config_schema.json"
	if err := compiler.AddResource(schemaURL, schemaDoc); err != nil {
		return fmt.Errorf("failed to add config schema resource: %w", err)
	}

	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return fmt.Errorf("failed to compile config schema: %w", err)
	}

	toValidate := raw
	if toValidate == nil {
		toValidate = make(map[string]any)
	}

	rawJSON, err := json.Marshal(toValidate)
	if err != nil {
		return fmt.Errorf("failed to marshal config for validation: %w", err)
	}
	var normalized any
	if err := json.Unmarshal(rawJSON, &normalized); err != nil {
		return fmt.Errorf("failed to normalize config for validation: %w", err)
	}

	return schema.Validate(normalized)
}
