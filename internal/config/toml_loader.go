package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/ludo-technologies/jarscn/domain"
)

// JarscnTomlConfig represents the structure of .jarscn.toml. Pointers
// distinguish unset keys from zero values.
type JarscnTomlConfig struct {
	Analysis JarscnTomlAnalysisConfig `toml:"analysis"`
	Output   JarscnTomlOutputConfig   `toml:"output"`
	Graph    JarscnTomlGraphConfig    `toml:"graph"`
}

type JarscnTomlAnalysisConfig struct {
	IncludePatterns []string `toml:"include_patterns"`
	ExcludePatterns []string `toml:"exclude_patterns"`
	Workers         *int     `toml:"workers"`
	Recursive       *bool    `toml:"recursive"`
}

type JarscnTomlOutputConfig struct {
	Format      string `toml:"format"`
	ShowDetails *bool  `toml:"show_details"`
	SortBy      string `toml:"sort_by"`
	Top         *int   `toml:"top"`
	Directory   string `toml:"directory"`
}

type JarscnTomlGraphConfig struct {
	URI       string `toml:"uri"`
	Username  string `toml:"username"`
	Password  string `toml:"password"`
	Database  string `toml:"database"`
	BatchSize int    `toml:"batch_size"`
}

// TomlConfigLoader discovers and loads .jarscn.toml
type TomlConfigLoader struct{}

// NewTomlConfigLoader creates a new TOML configuration loader
func NewTomlConfigLoader() *TomlConfigLoader {
	return &TomlConfigLoader{}
}

// LoadConfig loads .jarscn.toml found at or above startDir, merged over the
// defaults. When no file exists the defaults are returned.
func (l *TomlConfigLoader) LoadConfig(startDir string) (*Config, error) {
	configPath, err := l.FindConfigFile(startDir)
	if err != nil {
		config := DefaultConfig()
		applyEnvironment(config)
		return config, nil
	}
	return l.LoadFile(configPath)
}

// applyEnvironment lets the environment win over file values, matching the
// viper loader's precedence
func applyEnvironment(config *Config) {
	if pw := os.Getenv(domain.Neo4jPasswordEnv); pw != "" {
		config.Graph.Password = pw
	}
}

// LoadFile parses a specific .jarscn.toml file
func (l *TomlConfigLoader) LoadFile(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var tomlCfg JarscnTomlConfig
	if err := toml.Unmarshal(data, &tomlCfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", configPath, err)
	}

	config := DefaultConfig()
	l.mergeTomlConfig(config, &tomlCfg)

	applyEnvironment(config)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration in %s: %w", configPath, err)
	}
	return config, nil
}

// FindConfigFile walks up the directory tree from startDir to find .jarscn.toml.
// A file path starts the walk at its directory.
func (l *TomlConfigLoader) FindConfigFile(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}
	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}

	for {
		configPath := filepath.Join(dir, domain.ConfigFileName)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root directory
			break
		}
		dir = parent
	}

	return "", os.ErrNotExist
}

// mergeTomlConfig applies every key present in the file over defaults
func (l *TomlConfigLoader) mergeTomlConfig(defaults *Config, tomlCfg *JarscnTomlConfig) {
	analysis := tomlCfg.Analysis
	if len(analysis.IncludePatterns) > 0 {
		defaults.Analysis.IncludePatterns = analysis.IncludePatterns
	}
	if analysis.ExcludePatterns != nil {
		defaults.Analysis.ExcludePatterns = analysis.ExcludePatterns
	}
	if analysis.Workers != nil {
		defaults.Analysis.Workers = *analysis.Workers
	}
	if analysis.Recursive != nil {
		defaults.Analysis.Recursive = *analysis.Recursive
	}

	output := tomlCfg.Output
	if output.Format != "" {
		defaults.Output.Format = output.Format
	}
	if output.ShowDetails != nil {
		defaults.Output.ShowDetails = *output.ShowDetails
	}
	if output.SortBy != "" {
		defaults.Output.SortBy = output.SortBy
	}
	if output.Top != nil {
		defaults.Output.Top = *output.Top
	}
	if output.Directory != "" {
		defaults.Output.Directory = output.Directory
	}

	graph := tomlCfg.Graph
	if graph.URI != "" {
		defaults.Graph.URI = graph.URI
	}
	if graph.Username != "" {
		defaults.Graph.Username = graph.Username
	}
	if graph.Password != "" {
		defaults.Graph.Password = graph.Password
	}
	if graph.Database != "" {
		defaults.Graph.Database = graph.Database
	}
	if graph.BatchSize > 0 {
		defaults.Graph.BatchSize = graph.BatchSize
	}
}
