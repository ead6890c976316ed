package domain

import (
	"io"
)

// OutputFormat represents the supported output formats
type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
	OutputFormatYAML OutputFormat = "yaml"
	OutputFormatCSV  OutputFormat = "csv"
	OutputFormatHTML OutputFormat = "html"
)

// SupportedOutputFormats lists every format a formatter must handle
var SupportedOutputFormats = []OutputFormat{
	OutputFormatText,
	OutputFormatJSON,
	OutputFormatYAML,
	OutputFormatCSV,
	OutputFormatHTML,
}

// IsValid reports whether the format is one of SupportedOutputFormats
func (f OutputFormat) IsValid() bool {
	for _, supported := range SupportedOutputFormats {
		if f == supported {
			return true
		}
	}
	return false
}

// SortCriteria represents the criteria for sorting class details
type SortCriteria string

const (
	SortByName       SortCriteria = "name"
	SortByDepth      SortCriteria = "depth"
	SortByComplexity SortCriteria = "complexity" // ABC magnitude
	SortByOverrides  SortCriteria = "overrides"
	SortByFields     SortCriteria = "fields"
)

// SupportedSortCriteria lists the accepted --sort values
var SupportedSortCriteria = []SortCriteria{
	SortByName,
	SortByDepth,
	SortByComplexity,
	SortByOverrides,
	SortByFields,
}

// IsValid reports whether the criteria is one of SupportedSortCriteria
func (s SortCriteria) IsValid() bool {
	for _, supported := range SupportedSortCriteria {
		if s == supported {
			return true
		}
	}
	return false
}

// ReportWriter abstracts writing reports to a destination (file or writer)
// and handling side-effects like opening HTML reports in a browser.
//
// Implementations live in the service layer.
type ReportWriter interface {
	// Write writes formatted content using the provided writeFunc.
	// - If outputPath is non-empty, implementations should create/truncate the file
	//   at that path and pass the file as the writer to writeFunc.
	// - If outputPath is empty, implementations should pass the provided writer to writeFunc.
	// Implementations may emit user-facing status messages (e.g., file paths) and
	// optionally open HTML outputs in a browser when format is OutputFormatHTML and noOpen is false.
	Write(writer io.Writer, outputPath string, format OutputFormat, noOpen bool, writeFunc func(io.Writer) error) error
}

// ProgressManager manages progress tracking for archive decoding
type ProgressManager interface {
	// Initialize sets up progress tracking with the maximum value
	Initialize(maxValue int)

	// Start starts the progress bar
	Start()

	// Complete marks the progress as completed
	Complete(success bool)

	// Update updates the progress
	Update(processed, total int)

	// SetWriter sets the output writer for progress bars
	SetWriter(writer io.Writer)

	// IsInteractive returns true if progress bars should be shown
	IsInteractive() bool

	// Close cleans up any resources
	Close()
}

// ErrorCategory represents the category of an error
type ErrorCategory string

const (
	ErrorCategoryInput      ErrorCategory = "Input Error"
	ErrorCategoryConfig     ErrorCategory = "Configuration Error"
	ErrorCategoryProcessing ErrorCategory = "Processing Error"
	ErrorCategoryOutput     ErrorCategory = "Output Error"
	ErrorCategoryTimeout    ErrorCategory = "Timeout Error"
	ErrorCategoryUnknown    ErrorCategory = "Unknown Error"
)

// CategorizedError represents an error with category information
type CategorizedError struct {
	Category ErrorCategory
	Message  string
	Original error
}

// Error implements the error interface
func (e *CategorizedError) Error() string {
	if e.Original != nil {
		return e.Original.Error()
	}
	return e.Message
}

// Unwrap returns the original error
func (e *CategorizedError) Unwrap() error {
	return e.Original
}

// ErrorCategorizer categorizes errors for better reporting
type ErrorCategorizer interface {
	// Categorize determines the category of an error
	Categorize(err error) *CategorizedError

	// GetRecoverySuggestions returns recovery suggestions for an error category
	GetRecoverySuggestions(category ErrorCategory) []string
}
