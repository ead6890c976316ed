package config

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/viper"

	"github.com/ludo-technologies/jarscn/domain"
)

// Config represents the main configuration structure
type Config struct {
	// Analysis holds archive entry selection and decoding options
	Analysis AnalysisConfig `mapstructure:"analysis" yaml:"analysis" toml:"analysis"`

	// Output holds output formatting configuration
	Output OutputConfig `mapstructure:"output" yaml:"output" toml:"output"`

	// Graph holds the Neo4j export connection
	Graph GraphConfig `mapstructure:"graph" yaml:"graph" toml:"graph"`
}

// AnalysisConfig holds configuration for reading archives
type AnalysisConfig struct {
	// IncludePatterns select archive entries (doublestar globs)
	IncludePatterns []string `mapstructure:"include_patterns" yaml:"include_patterns" toml:"include_patterns"`

	// ExcludePatterns drop entries matched by IncludePatterns
	ExcludePatterns []string `mapstructure:"exclude_patterns" yaml:"exclude_patterns" toml:"exclude_patterns"`

	// Workers bounds concurrent entry decoding, 0 means one per CPU
	Workers int `mapstructure:"workers" yaml:"workers" toml:"workers"`

	// Recursive controls jar discovery below directory arguments
	Recursive bool `mapstructure:"recursive" yaml:"recursive" toml:"recursive"`
}

// OutputConfig holds configuration for output formatting
type OutputConfig struct {
	// Format specifies the output format: text, json, yaml, csv, html
	Format string `mapstructure:"format" yaml:"format" toml:"format"`

	// ShowDetails adds per-class metrics to the report
	ShowDetails bool `mapstructure:"show_details" yaml:"show_details" toml:"show_details"`

	// SortBy orders class details: name, depth, complexity, overrides, fields
	SortBy string `mapstructure:"sort_by" yaml:"sort_by" toml:"sort_by"`

	// Top limits class details per archive, 0 means all
	Top int `mapstructure:"top" yaml:"top" toml:"top"`

	// Directory receives generated report files when set
	Directory string `mapstructure:"directory" yaml:"directory" toml:"directory"`
}

// GraphConfig holds the Neo4j connection used by `jarscn graph`
type GraphConfig struct {
	URI       string `mapstructure:"uri" yaml:"uri" toml:"uri"`
	Username  string `mapstructure:"username" yaml:"username" toml:"username"`
	Password  string `mapstructure:"password" yaml:"password" toml:"password"`
	Database  string `mapstructure:"database" yaml:"database" toml:"database"`
	BatchSize int    `mapstructure:"batch_size" yaml:"batch_size" toml:"batch_size"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Analysis: AnalysisConfig{
			IncludePatterns: []string{domain.DefaultEntryIncludePattern},
			ExcludePatterns: []string{},
			Workers:         domain.DefaultWorkers,
			Recursive:       true,
		},
		Output: OutputConfig{
			Format:      string(domain.DefaultOutputFormat),
			ShowDetails: false,
			SortBy:      string(domain.DefaultSortBy),
			Top:         domain.DefaultTop,
		},
		Graph: GraphConfig{
			URI:       domain.DefaultNeo4jURI,
			Username:  domain.DefaultNeo4jUsername,
			Database:  domain.DefaultNeo4jDatabase,
			BatchSize: domain.DefaultGraphBatchSize,
		},
	}
}

// LoadConfig loads an explicit configuration file of any type viper reads
// (toml, yaml, json). An empty path returns the defaults. The Neo4j
// password may also come from the environment.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	v := viper.New()
	if err := v.BindEnv("graph.password", domain.Neo4jPasswordEnv); err != nil {
		return nil, fmt.Errorf("failed to bind environment: %w", err)
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
		}
	}

	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// Validate validates the configuration values
func (c *Config) Validate() error {
	if !domain.OutputFormat(c.Output.Format).IsValid() {
		return fmt.Errorf("invalid output.format '%s', must be one of: %s", c.Output.Format, joinFormats())
	}

	if !domain.SortCriteria(c.Output.SortBy).IsValid() {
		return fmt.Errorf("invalid output.sort_by '%s', must be one of: %s", c.Output.SortBy, joinSortCriteria())
	}

	if c.Output.Top < 0 {
		return fmt.Errorf("output.top must be >= 0, got %d", c.Output.Top)
	}

	if c.Analysis.Workers < 0 {
		return fmt.Errorf("analysis.workers must be >= 0, got %d", c.Analysis.Workers)
	}

	if len(c.Analysis.IncludePatterns) == 0 {
		return fmt.Errorf("analysis.include_patterns cannot be empty")
	}

	for _, pattern := range c.Analysis.IncludePatterns {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("invalid analysis.include_patterns entry '%s'", pattern)
		}
	}
	for _, pattern := range c.Analysis.ExcludePatterns {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("invalid analysis.exclude_patterns entry '%s'", pattern)
		}
	}

	if c.Graph.BatchSize < 1 {
		return fmt.Errorf("graph.batch_size must be >= 1, got %d", c.Graph.BatchSize)
	}

	return nil
}

func joinFormats() string {
	names := make([]string, 0, len(domain.SupportedOutputFormats))
	for _, f := range domain.SupportedOutputFormats {
		names = append(names, string(f))
	}
	return strings.Join(names, ", ")
}

func joinSortCriteria() string {
	names := make([]string, 0, len(domain.SupportedSortCriteria))
	for _, s := range domain.SupportedSortCriteria {
		names = append(names, string(s))
	}
	return strings.Join(names, ", ")
}
