package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/jarscn/domain"
	"github.com/ludo-technologies/jarscn/internal/config"
)

const sampleTomlConfig = `
[analysis]
include_patterns = ["com/**/*.class"]
exclude_patterns = ["**/internal/**"]
workers = 3
recursive = false

[output]
format = "json"
show_details = true
sort_by = "depth"
top = 5
directory = "reports"

[graph]
uri = "neo4j://graph.example:7687"
username = "reader"
database = "jars"
batch_size = 50
`

func writeConfigFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestJarConfigurationLoader_LoadConfig_Discovery(t *testing.T) {
	root := t.TempDir()
	writeConfigFile(t, root, domain.ConfigFileName, sampleTomlConfig)
	nested := filepath.Join(root, "libs", "v1")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	req, err := NewJarConfigurationLoader().LoadConfigFor(nested)
	require.NoError(t, err)

	assert.Equal(t, []string{"com/**/*.class"}, req.IncludePatterns)
	assert.Equal(t, []string{"**/internal/**"}, req.ExcludePatterns)
	assert.Equal(t, 3, req.Workers)
	assert.False(t, domain.BoolValue(req.Recursive, true))
	assert.Equal(t, domain.OutputFormatJSON, req.OutputFormat)
	assert.True(t, req.ShowDetails)
	assert.Equal(t, domain.SortByDepth, req.SortBy)
	assert.Equal(t, 5, req.Top)
	assert.Equal(t, "reports", req.OutputDir)
}

func TestJarConfigurationLoader_LoadConfig_ExplicitYAML(t *testing.T) {
	path := writeConfigFile(t, t.TempDir(), "jarscn.yaml", `
output:
  format: csv
  sort_by: fields
analysis:
  workers: 2
`)

	req, err := NewJarConfigurationLoader().LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, domain.OutputFormatCSV, req.OutputFormat)
	assert.Equal(t, domain.SortByFields, req.SortBy)
	assert.Equal(t, 2, req.Workers)
	assert.Equal(t, []string{domain.DefaultEntryIncludePattern}, req.IncludePatterns)
}

func TestJarConfigurationLoader_LoadConfig_Errors(t *testing.T) {
	dir := t.TempDir()
	invalid := writeConfigFile(t, dir, "bad.toml", "[output]\nformat = \"xml\"\n")

	loader := NewJarConfigurationLoader()

	_, err := loader.LoadConfig(invalid)
	assert.Error(t, err)

	_, err = loader.LoadConfig(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)
}

func TestJarConfigurationLoader_LoadConfig_NoFileGivesDefaults(t *testing.T) {
	req, err := NewJarConfigurationLoader().LoadConfigFor(filepath.Join(t.TempDir(), "missing", "app.jar"))
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultOutputFormat, req.OutputFormat)
	assert.Equal(t, domain.DefaultSortBy, req.SortBy)
	assert.True(t, domain.BoolValue(req.Recursive, false))
}

func TestJarConfigurationLoader_MergeConfig_TrackedFlags(t *testing.T) {
	base := domain.DefaultJarRequest()
	base.OutputFormat = domain.OutputFormatJSON
	base.SortBy = domain.SortByDepth
	base.Top = 5
	base.Workers = 3
	base.OutputDir = "reports"

	override := domain.DefaultJarRequest()
	override.Paths = []string{"app.jar"}
	override.OutputFormat = domain.OutputFormatText
	override.SortBy = domain.SortByName
	override.Top = 1
	override.Workers = 8
	override.OutputPath = "jarscn_report.html"

	t.Run("unset flags keep config values", func(t *testing.T) {
		loader := NewJarConfigurationLoaderWithFlags(config.NewFlagTrackerWithFlags(map[string]bool{"top": true}))
		merged := loader.MergeConfig(base, override)

		assert.Equal(t, []string{"app.jar"}, merged.Paths)
		assert.Equal(t, domain.OutputFormatJSON, merged.OutputFormat)
		assert.Equal(t, domain.SortByDepth, merged.SortBy)
		assert.Equal(t, 1, merged.Top)
		assert.Equal(t, 3, merged.Workers)
		assert.Equal(t, filepath.Join("reports", "jarscn_report.html"), merged.OutputPath)
	})

	t.Run("set flags win", func(t *testing.T) {
		loader := NewJarConfigurationLoaderWithFlags(config.NewFlagTrackerWithFlags(map[string]bool{
			"html": true, "sort": true, "workers": true, "output": true,
		}))
		override := *override
		override.OutputFormat = domain.OutputFormatHTML
		merged := loader.MergeConfig(base, &override)

		assert.Equal(t, domain.OutputFormatHTML, merged.OutputFormat)
		assert.Equal(t, domain.SortByName, merged.SortBy)
		assert.Equal(t, 8, merged.Workers)
		assert.Equal(t, 5, merged.Top)
		assert.Equal(t, "jarscn_report.html", merged.OutputPath, "an explicit -o ignores the configured directory")
	})
}

func TestJarConfigurationLoader_MergeConfig_NonZero(t *testing.T) {
	base := domain.DefaultJarRequest()
	base.Top = 5

	override := &domain.JarRequest{Paths: []string{"a.jar"}, ShowDetails: true, SortBy: domain.SortByComplexity}
	merged := NewJarConfigurationLoader().MergeConfig(base, override)

	assert.True(t, merged.ShowDetails)
	assert.Equal(t, domain.SortByComplexity, merged.SortBy)
	assert.Equal(t, 5, merged.Top)
	assert.Equal(t, domain.DefaultOutputFormat, merged.OutputFormat)
	assert.Equal(t, base.IncludePatterns, merged.IncludePatterns)
}

func TestJarConfigurationLoader_MergeConfig_Nil(t *testing.T) {
	loader := NewJarConfigurationLoader()
	req := domain.DefaultJarRequest()
	assert.Same(t, req, loader.MergeConfig(nil, req))
	assert.Same(t, req, loader.MergeConfig(req, nil))
}

func TestJarConfigurationLoader_LoadGraphConfig(t *testing.T) {
	t.Setenv(domain.Neo4jPasswordEnv, "s3cret")
	root := t.TempDir()
	writeConfigFile(t, root, domain.ConfigFileName, sampleTomlConfig)

	loader := NewJarConfigurationLoaderWithFlags(config.NewFlagTrackerWithFlags(map[string]bool{"username": true}))
	base, err := loader.LoadGraphConfig("", root)
	require.NoError(t, err)

	assert.Equal(t, "neo4j://graph.example:7687", base.URI)
	assert.Equal(t, "reader", base.Username)
	assert.Equal(t, "s3cret", base.Password)
	assert.Equal(t, "jars", base.Database)
	assert.Equal(t, 50, base.BatchSize)

	override := domain.DefaultGraphExportRequest()
	override.Username = "writer"
	override.Jar.Paths = []string{"app.jar"}
	override.Clear = true

	merged := loader.MergeGraphConfig(base, override)
	assert.Equal(t, "writer", merged.Username)
	assert.Equal(t, "neo4j://graph.example:7687", merged.URI)
	assert.Equal(t, 50, merged.BatchSize)
	assert.True(t, merged.Clear)
	assert.Equal(t, []string{"app.jar"}, merged.Jar.Paths)
}
