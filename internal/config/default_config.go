package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"text/template"

	"github.com/pelletier/go-toml/v2"

	"github.com/ludo-technologies/jarscn/domain"
)

// defaultConfigTmpl contains the embedded default configuration template
//
//go:embed default_config.toml.tmpl
var defaultConfigTmpl string

// DefaultConfigValues holds all values used to render the default config template.
// All values are sourced from the domain package to ensure a single source of truth.
type DefaultConfigValues struct {
	// Analysis
	IncludePattern string
	Workers        int

	// Output
	OutputFormat string
	SortBy       string
	Top          int

	// Graph
	Neo4jURI       string
	Neo4jUsername  string
	Neo4jDatabase  string
	GraphBatchSize int
	PasswordEnv    string
}

// newDefaultConfigValues creates a DefaultConfigValues populated from domain constants.
func newDefaultConfigValues() DefaultConfigValues {
	return DefaultConfigValues{
		IncludePattern: domain.DefaultEntryIncludePattern,
		Workers:        domain.DefaultWorkers,

		OutputFormat: string(domain.DefaultOutputFormat),
		SortBy:       string(domain.DefaultSortBy),
		Top:          domain.DefaultTop,

		Neo4jURI:       domain.DefaultNeo4jURI,
		Neo4jUsername:  domain.DefaultNeo4jUsername,
		Neo4jDatabase:  domain.DefaultNeo4jDatabase,
		GraphBatchSize: domain.DefaultGraphBatchSize,
		PasswordEnv:    domain.Neo4jPasswordEnv,
	}
}

// GenerateDefaultConfigTOML renders the default config template with domain values
// and returns the resulting TOML string.
func GenerateDefaultConfigTOML() (string, error) {
	tmpl, err := template.New("default_config").Parse(defaultConfigTmpl)
	if err != nil {
		return "", fmt.Errorf("failed to parse default config template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, newDefaultConfigValues()); err != nil {
		return "", fmt.Errorf("failed to render default config template: %w", err)
	}

	return buf.String(), nil
}

// LoadDefaultConfigFromTOML parses the rendered template back into a Config,
// so `jarscn init` never writes a file the loader would reject.
func LoadDefaultConfigFromTOML() (*Config, error) {
	configTOML, err := GenerateDefaultConfigTOML()
	if err != nil {
		return nil, err
	}

	var tomlCfg JarscnTomlConfig
	if err := toml.Unmarshal([]byte(configTOML), &tomlCfg); err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	loader := &TomlConfigLoader{}
	loader.mergeTomlConfig(cfg, &tomlCfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
