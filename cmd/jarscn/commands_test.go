package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/jarscn/internal/archive/archivetest"
)

func writeShapesJar(t *testing.T) string {
	t.Helper()
	return archivetest.Write(t, t.TempDir(), "shapes.jar", archivetest.ShapesEntries())
}

func TestAnalyzeCommandInterface(t *testing.T) {
	cobraCmd := NewAnalyzeCommand().CreateCobraCommand()
	assert.Equal(t, "analyze [jars...] [output.json]", cobraCmd.Use)
	assert.NotEmpty(t, cobraCmd.Short)

	for _, name := range []string{"html", "json", "csv", "yaml", "output", "config", "details", "sort", "top", "include", "exclude", "workers", "recursive", "no-open"} {
		assert.NotNil(t, cobraCmd.Flags().Lookup(name), "flag %s", name)
	}
}

func TestGraphCommandInterface(t *testing.T) {
	cobraCmd := NewGraphCommand().CreateCobraCommand()
	for _, name := range []string{"uri", "username", "password", "database", "batch-size", "clear", "config", "include", "exclude", "workers"} {
		assert.NotNil(t, cobraCmd.Flags().Lookup(name), "flag %s", name)
	}
}

func TestSplitJSONOutputArg(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		wantPaths []string
		wantJSON  string
	}{
		{"single jar", []string{"app.jar"}, []string{"app.jar"}, ""},
		{"jar and json", []string{"app.jar", "out.json"}, []string{"app.jar"}, "out.json"},
		{"upper case extension", []string{"app.jar", "OUT.JSON"}, []string{"app.jar"}, "OUT.JSON"},
		{"two jars", []string{"a.jar", "b.jar"}, []string{"a.jar", "b.jar"}, ""},
		{"lone json stays an input", []string{"out.json"}, []string{"out.json"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			paths, jsonPath := splitJSONOutputArg(tt.args)
			assert.Equal(t, tt.wantPaths, paths)
			assert.Equal(t, tt.wantJSON, jsonPath)
		})
	}
}

func TestAnalyzeCommand_TextReport(t *testing.T) {
	out, err := runCLI(t, "analyze", "--no-open", writeShapesJar(t))
	require.NoError(t, err)

	for _, want := range []string{
		"JAR BYTECODE ANALYSIS REPORT",
		"File: shapes.jar",
		"Total classes: 2",
		"Total interfaces: 1",
		"Maximum inheritance depth: 2",
		"Average inheritance depth: 1.33",
		"ABC Magnitude: 4.24",
		"Average overridden methods per class: 1.50",
		"Average fields per class: 1.00",
	} {
		assert.Contains(t, out, want)
	}
}

func TestAnalyzeCommand_JSONOutputArgument(t *testing.T) {
	jar := writeShapesJar(t)
	jsonPath := filepath.Join(t.TempDir(), "metrics.json")

	out, err := runCLI(t, "analyze", jar, jsonPath)
	require.NoError(t, err)
	assert.Contains(t, out, "JAR BYTECODE ANALYSIS REPORT", "the text report still goes to stdout")

	data, err := os.ReadFile(jsonPath)
	require.NoError(t, err)

	var report struct {
		Archives []struct {
			JarFileName     string `json:"jarFileName"`
			TotalClasses    int    `json:"totalClasses"`
			TotalInterfaces int    `json:"totalInterfaces"`
			Inheritance     struct {
				MaxDepth int `json:"maxDepth"`
			} `json:"inheritance"`
		} `json:"archives"`
	}
	require.NoError(t, json.Unmarshal(data, &report))
	require.Len(t, report.Archives, 1)
	assert.Equal(t, "shapes.jar", report.Archives[0].JarFileName)
	assert.Equal(t, 2, report.Archives[0].TotalClasses)
	assert.Equal(t, 1, report.Archives[0].TotalInterfaces)
	assert.Equal(t, 2, report.Archives[0].Inheritance.MaxDepth)
}

func TestAnalyzeCommand_CSVToFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "report.csv")
	_, err := runCLI(t, "analyze", "--csv", "--details", "-o", out, writeShapesJar(t))
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 5, "header, one archive row and three class rows")
	assert.True(t, strings.HasPrefix(lines[0], "record,jar_file,class"))
}

func TestAnalyzeCommand_Errors(t *testing.T) {
	dir := t.TempDir()
	notJar := filepath.Join(dir, "app.zip")
	require.NoError(t, os.WriteFile(notJar, []byte("x"), 0o644))

	tests := []struct {
		name    string
		args    []string
		wantMsg string
	}{
		{"wrong extension", []string{"analyze", notJar}, "must be a jar file"},
		{"conflicting formats", []string{"analyze", "--json", "--csv", writeShapesJar(t)}, "only one output format"},
		{"bad sort", []string{"analyze", "--sort", "size", writeShapesJar(t)}, "unsupported sort criteria"},
		{"no arguments", []string{"analyze"}, "requires at least 1 arg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestInitCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", ".jarscn.toml")

	out, err := runCLI(t, "init", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration file created")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[analysis]")
	assert.Contains(t, string(data), "[output]")

	_, err = runCLI(t, "init", "--config", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = runCLI(t, "init", "--config", path, "--force")
	assert.NoError(t, err)
}
