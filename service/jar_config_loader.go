package service

import (
	"fmt"
	"path/filepath"

	"github.com/ludo-technologies/jarscn/domain"
	"github.com/ludo-technologies/jarscn/internal/config"
)

// JarConfigurationLoaderImpl implements the JarConfigurationLoader interface.
// Request values override configuration only for flags the user set.
type JarConfigurationLoaderImpl struct {
	flagTracker *config.FlagTracker
	tomlLoader  *config.TomlConfigLoader
}

// NewJarConfigurationLoader creates a loader that treats every non-zero
// request value as explicit
func NewJarConfigurationLoader() *JarConfigurationLoaderImpl {
	return &JarConfigurationLoaderImpl{tomlLoader: config.NewTomlConfigLoader()}
}

// NewJarConfigurationLoaderWithFlags creates a loader that only lets the
// named flags override configuration values
func NewJarConfigurationLoaderWithFlags(tracker *config.FlagTracker) *JarConfigurationLoaderImpl {
	if tracker == nil {
		tracker = config.NewFlagTracker()
	}
	return &JarConfigurationLoaderImpl{
		flagTracker: tracker,
		tomlLoader:  config.NewTomlConfigLoader(),
	}
}

// LoadConfig loads an explicit configuration file of any type viper reads
func (cl *JarConfigurationLoaderImpl) LoadConfig(path string) (*domain.JarRequest, error) {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
	}
	return cl.configToRequest(cfg), nil
}

// LoadConfigFor searches for .jarscn.toml from target upwards. A target
// that does not exist yet is searched from its parents.
func (cl *JarConfigurationLoaderImpl) LoadConfigFor(target string) (*domain.JarRequest, error) {
	cfg, err := cl.discover(target)
	if err != nil {
		return nil, err
	}
	return cl.configToRequest(cfg), nil
}

// LoadDefaultConfig loads .jarscn.toml found from the working directory
// upwards, or the built-in defaults
func (cl *JarConfigurationLoaderImpl) LoadDefaultConfig() *domain.JarRequest {
	cfg, err := cl.discover(".")
	if err != nil {
		cfg = config.DefaultConfig()
	}
	return cl.configToRequest(cfg)
}

// LoadGraphConfig loads the Neo4j connection settings along with the
// analysis defaults, from configPath when set or by discovery from target
func (cl *JarConfigurationLoaderImpl) LoadGraphConfig(configPath, target string) (*domain.GraphExportRequest, error) {
	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadConfig(configPath)
		if err != nil {
			err = fmt.Errorf("failed to load config from %s: %w", configPath, err)
		}
	} else {
		cfg, err = cl.discover(target)
	}
	if err != nil {
		return nil, err
	}

	return &domain.GraphExportRequest{
		Jar:       *cl.configToRequest(cfg),
		URI:       cfg.Graph.URI,
		Username:  cfg.Graph.Username,
		Password:  cfg.Graph.Password,
		Database:  cfg.Graph.Database,
		BatchSize: cfg.Graph.BatchSize,
	}, nil
}

func (cl *JarConfigurationLoaderImpl) discover(target string) (*config.Config, error) {
	if target == "" {
		target = "."
	}
	cfg, err := cl.tomlLoader.LoadConfig(target)
	if err != nil {
		return nil, fmt.Errorf("failed to load config near %s: %w", target, err)
	}
	return cfg, nil
}

// configToRequest converts configuration to a jar request
func (cl *JarConfigurationLoaderImpl) configToRequest(cfg *config.Config) *domain.JarRequest {
	req := domain.DefaultJarRequest()

	req.IncludePatterns = append([]string{}, cfg.Analysis.IncludePatterns...)
	req.ExcludePatterns = append([]string{}, cfg.Analysis.ExcludePatterns...)
	req.Workers = cfg.Analysis.Workers
	req.Recursive = domain.BoolPtr(cfg.Analysis.Recursive)

	req.OutputFormat = domain.OutputFormat(cfg.Output.Format)
	req.ShowDetails = cfg.Output.ShowDetails
	req.SortBy = domain.SortCriteria(cfg.Output.SortBy)
	req.Top = cfg.Output.Top
	req.OutputDir = cfg.Output.Directory

	return req
}

// MergeConfig merges CLI flags with configuration file
func (cl *JarConfigurationLoaderImpl) MergeConfig(base *domain.JarRequest, override *domain.JarRequest) *domain.JarRequest {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	merged := *base

	// Paths and writers always come from the command
	merged.Paths = override.Paths
	merged.OutputWriter = override.OutputWriter
	merged.NoOpen = override.NoOpen
	merged.JSONOutputPath = override.JSONOutputPath
	merged.ConfigPath = override.ConfigPath

	if cl.flagTracker == nil {
		cl.mergeNonZero(&merged, override)
	} else {
		cl.mergeTracked(&merged, override)
	}

	merged.OutputPath = override.OutputPath
	if merged.OutputPath != "" && merged.OutputDir != "" && !cl.wasSet("output") && !filepath.IsAbs(merged.OutputPath) {
		merged.OutputPath = filepath.Join(merged.OutputDir, merged.OutputPath)
	}

	return &merged
}

func (cl *JarConfigurationLoaderImpl) mergeTracked(merged, override *domain.JarRequest) {
	ft := cl.flagTracker

	if ft.WasSet("json") || ft.WasSet("yaml") || ft.WasSet("csv") || ft.WasSet("html") {
		merged.OutputFormat = override.OutputFormat
	}
	merged.ShowDetails = ft.MergeBool(merged.ShowDetails, override.ShowDetails, "details")
	merged.SortBy = domain.SortCriteria(ft.MergeString(string(merged.SortBy), string(override.SortBy), "sort"))
	merged.Top = ft.MergeInt(merged.Top, override.Top, "top")
	merged.IncludePatterns = ft.MergeStringSlice(merged.IncludePatterns, override.IncludePatterns, "include")
	merged.ExcludePatterns = ft.MergeStringSlice(merged.ExcludePatterns, override.ExcludePatterns, "exclude")
	merged.Workers = ft.MergeInt(merged.Workers, override.Workers, "workers")
	merged.Recursive = ft.MergeBoolPtr(merged.Recursive, override.Recursive, "recursive")
}

// mergeNonZero is used by callers without flags, such as the MCP server
func (cl *JarConfigurationLoaderImpl) mergeNonZero(merged, override *domain.JarRequest) {
	if override.OutputFormat != "" {
		merged.OutputFormat = override.OutputFormat
	}
	if override.ShowDetails {
		merged.ShowDetails = true
	}
	if override.SortBy != "" {
		merged.SortBy = override.SortBy
	}
	if override.Top > 0 {
		merged.Top = override.Top
	}
	if len(override.IncludePatterns) > 0 {
		merged.IncludePatterns = override.IncludePatterns
	}
	if len(override.ExcludePatterns) > 0 {
		merged.ExcludePatterns = override.ExcludePatterns
	}
	if override.Workers > 0 {
		merged.Workers = override.Workers
	}
	if override.Recursive != nil {
		merged.Recursive = override.Recursive
	}
}

// MergeGraphConfig applies the connection flags the user set over base
func (cl *JarConfigurationLoaderImpl) MergeGraphConfig(base, override *domain.GraphExportRequest) *domain.GraphExportRequest {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	merged := *base
	merged.Jar = *cl.MergeConfig(&base.Jar, &override.Jar)

	if cl.flagTracker == nil {
		if override.URI != "" {
			merged.URI = override.URI
		}
		if override.Username != "" {
			merged.Username = override.Username
		}
		if override.Password != "" {
			merged.Password = override.Password
		}
		if override.Database != "" {
			merged.Database = override.Database
		}
		if override.BatchSize > 0 {
			merged.BatchSize = override.BatchSize
		}
	} else {
		ft := cl.flagTracker
		merged.URI = ft.MergeString(merged.URI, override.URI, "uri")
		merged.Username = ft.MergeString(merged.Username, override.Username, "username")
		merged.Password = ft.MergeString(merged.Password, override.Password, "password")
		merged.Database = ft.MergeString(merged.Database, override.Database, "database")
		merged.BatchSize = ft.MergeInt(merged.BatchSize, override.BatchSize, "batch-size")
	}
	merged.Clear = override.Clear

	return &merged
}

func (cl *JarConfigurationLoaderImpl) wasSet(flag string) bool {
	return cl.flagTracker != nil && cl.flagTracker.WasSet(flag)
}
