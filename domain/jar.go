package domain

import (
	"context"
	"io"
)

// JarRequest represents a request for jar bytecode analysis
type JarRequest struct {
	// Jar files or directories containing jars
	Paths []string

	// Output configuration
	OutputFormat OutputFormat
	OutputWriter io.Writer
	OutputPath   string // Path to save output file
	OutputDir    string // Directory for generated report files
	NoOpen       bool   // Don't auto-open HTML in browser
	ShowDetails  bool   // Include per-class metrics

	// JSONOutputPath additionally writes the JSON report to this file,
	// independent of OutputFormat
	JSONOutputPath string

	// Class detail ordering and truncation
	SortBy SortCriteria
	Top    int // 0 means no limit

	// Configuration
	ConfigPath string

	// Discovery options for directory inputs
	Recursive *bool

	// Archive entry selection (doublestar globs matched against entry names)
	IncludePatterns []string
	ExcludePatterns []string

	// Workers bounds concurrent entry decoding; 0 uses one per CPU
	Workers int
}

// InheritanceMetrics summarizes inheritance depth across an archive
type InheritanceMetrics struct {
	MaxDepth     int     `json:"maxDepth" yaml:"max_depth"`
	AverageDepth float64 `json:"averageDepth" yaml:"average_depth"`
}

// ABCMetrics is the archive-wide ABC vector and its magnitude
type ABCMetrics struct {
	TotalAssignments int     `json:"totalAssignments" yaml:"total_assignments"`
	TotalBranches    int     `json:"totalBranches" yaml:"total_branches"`
	TotalConditions  int     `json:"totalConditions" yaml:"total_conditions"`
	Magnitude        float64 `json:"magnitude" yaml:"magnitude"`
}

// ClassABC is the ABC vector of a single class
type ClassABC struct {
	Assignments int     `json:"assignments" yaml:"assignments"`
	Branches    int     `json:"branches" yaml:"branches"`
	Conditions  int     `json:"conditions" yaml:"conditions"`
	Magnitude   float64 `json:"magnitude" yaml:"magnitude"`
}

// ClassReport holds the metrics of one class or interface
type ClassReport struct {
	Name              string   `json:"name" yaml:"name"`
	SuperName         string   `json:"superName,omitempty" yaml:"super_name,omitempty"`
	Interfaces        []string `json:"interfaces,omitempty" yaml:"interfaces,omitempty"`
	IsInterface       bool     `json:"isInterface" yaml:"is_interface"`
	InheritanceDepth  int      `json:"inheritanceDepth" yaml:"inheritance_depth"`
	OverriddenMethods int      `json:"overriddenMethods" yaml:"overridden_methods"`
	FieldCount        int      `json:"fieldCount" yaml:"field_count"`
	MethodCount       int      `json:"methodCount" yaml:"method_count"`
	ABC               ClassABC `json:"abc" yaml:"abc"`
}

// SkippedEntry is an archive entry that failed to decode
type SkippedEntry struct {
	Entry  string `json:"entry" yaml:"entry"`
	Reason string `json:"reason" yaml:"reason"`
}

// ArchiveReport is the analysis result of one jar
type ArchiveReport struct {
	JarFileName              string             `json:"jarFileName" yaml:"jar_file_name"`
	Path                     string             `json:"-" yaml:"-"`
	TotalClasses             int                `json:"totalClasses" yaml:"total_classes"`
	TotalInterfaces          int                `json:"totalInterfaces" yaml:"total_interfaces"`
	Inheritance              InheritanceMetrics `json:"inheritance" yaml:"inheritance"`
	ABC                      ABCMetrics         `json:"abc" yaml:"abc"`
	AverageOverriddenMethods float64            `json:"averageOverriddenMethods" yaml:"average_overridden_methods"`
	AverageFieldsPerClass    float64            `json:"averageFieldsPerClass" yaml:"average_fields_per_class"`

	EntriesScanned int            `json:"entriesScanned" yaml:"entries_scanned"`
	SkippedEntries []SkippedEntry `json:"skippedEntries,omitempty" yaml:"skipped_entries,omitempty"`
	Classes        []ClassReport  `json:"classes,omitempty" yaml:"classes,omitempty"`

	// AllClasses keeps every class regardless of ShowDetails or Top; it
	// feeds the graph exporter and is never serialized
	AllClasses []ClassReport `json:"-" yaml:"-"`
}

// JarSummary aggregates across every analyzed archive
type JarSummary struct {
	ArchivesAnalyzed int `json:"archivesAnalyzed" yaml:"archives_analyzed"`
	TotalClasses     int `json:"totalClasses" yaml:"total_classes"`
	TotalInterfaces  int `json:"totalInterfaces" yaml:"total_interfaces"`
	MaxDepth         int `json:"maxDepth" yaml:"max_depth"`
	SkippedEntries   int `json:"skippedEntries" yaml:"skipped_entries"`
}

// JarResponse represents the complete jar analysis result
type JarResponse struct {
	Archives []ArchiveReport `json:"archives" yaml:"archives"`
	Summary  JarSummary      `json:"summary" yaml:"summary"`

	// Warnings and issues
	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Errors   []string `json:"errors,omitempty" yaml:"errors,omitempty"`

	// Metadata
	GeneratedAt string `json:"generatedAt" yaml:"generated_at"`
	Version     string `json:"version" yaml:"version"`
}

// JarService defines the core business logic for jar analysis
type JarService interface {
	// Analyze analyzes every archive in the request. An archive that cannot
	// be opened is reported in Errors and does not stop the others.
	Analyze(ctx context.Context, req JarRequest) (*JarResponse, error)

	// AnalyzeArchive analyzes a single jar
	AnalyzeArchive(ctx context.Context, path string, req JarRequest) (*ArchiveReport, error)
}

// JarFileReader discovers jar files
type JarFileReader interface {
	// CollectJarFiles expands directories into the jars they contain
	CollectJarFiles(paths []string, recursive bool) ([]string, error)

	// IsValidJarFile checks the extension, case-insensitively
	IsValidJarFile(path string) bool

	// FileExists checks if a file exists and returns an error if not
	FileExists(path string) (bool, error)
}

// JarConfigurationLoader defines the interface for loading jar analysis configuration
type JarConfigurationLoader interface {
	// LoadConfig loads configuration from the specified path
	LoadConfig(path string) (*JarRequest, error)

	// LoadConfigFor loads the .jarscn.toml found at or above target, or the
	// defaults when there is none
	LoadConfigFor(target string) (*JarRequest, error)

	// LoadDefaultConfig loads the default configuration
	LoadDefaultConfig() *JarRequest

	// MergeConfig merges CLI flags with configuration file
	MergeConfig(base *JarRequest, override *JarRequest) *JarRequest
}

// JarOutputFormatter defines the interface for formatting jar analysis results
type JarOutputFormatter interface {
	// Format formats the analysis response according to the specified format
	Format(response *JarResponse, format OutputFormat) (string, error)

	// Write writes the formatted output to the writer
	Write(response *JarResponse, format OutputFormat, writer io.Writer) error
}

// DefaultJarRequest returns a JarRequest with default values
func DefaultJarRequest() *JarRequest {
	return &JarRequest{
		OutputFormat:    DefaultOutputFormat,
		ShowDetails:     false,
		SortBy:          DefaultSortBy,
		Top:             DefaultTop,
		Recursive:       BoolPtr(true),
		IncludePatterns: []string{DefaultEntryIncludePattern},
		ExcludePatterns: []string{},
		Workers:         DefaultWorkers,
	}
}
