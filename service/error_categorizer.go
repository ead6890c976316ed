package service

import (
	"context"
	"errors"
	"strings"

	"github.com/ludo-technologies/jarscn/domain"
)

// ErrorCategorizerImpl implements the ErrorCategorizer interface
type ErrorCategorizerImpl struct {
	// patterns are checked in order; the first category with a match wins
	patterns []categoryPatterns
}

type categoryPatterns struct {
	category domain.ErrorCategory
	patterns []string
}

// NewErrorCategorizer creates a new error categorizer
func NewErrorCategorizer() domain.ErrorCategorizer {
	return &ErrorCategorizerImpl{
		patterns: initializeErrorPatterns(),
	}
}

// initializeErrorPatterns initializes error pattern mappings
func initializeErrorPatterns() []categoryPatterns {
	return []categoryPatterns{
		{domain.ErrorCategoryTimeout, []string{
			"timeout",
			"deadline",
			"context canceled",
			"operation timed out",
		}},
		{domain.ErrorCategoryConfig, []string{
			"config",
			"configuration",
			"invalid settings",
			"toml",
		}},
		{domain.ErrorCategoryInput, []string{
			"invalid input",
			"no jar files found",
			"not a jar",
			"file not found",
			"cannot access",
			"permission denied",
			"path",
			"directory",
		}},
		{domain.ErrorCategoryOutput, []string{
			"output",
			"write",
			"cannot create",
			"failed to generate",
			"unsupported format",
		}},
		{domain.ErrorCategoryProcessing, []string{
			"archive",
			"zip",
			"class file",
			"constant pool",
			"bytecode",
			"analysis",
			"neo4j",
			"export",
		}},
	}
}

// codeCategories maps domain error codes to categories ahead of pattern matching
var codeCategories = map[string]domain.ErrorCategory{
	domain.ErrCodeInvalidInput:      domain.ErrorCategoryInput,
	domain.ErrCodeFileNotFound:      domain.ErrorCategoryInput,
	domain.ErrCodeConfigError:       domain.ErrorCategoryConfig,
	domain.ErrCodeOutputError:       domain.ErrorCategoryOutput,
	domain.ErrCodeUnsupportedFormat: domain.ErrorCategoryOutput,
	domain.ErrCodeArchiveError:      domain.ErrorCategoryProcessing,
	domain.ErrCodeAnalysisError:     domain.ErrorCategoryProcessing,
	domain.ErrCodeExportError:       domain.ErrorCategoryProcessing,
}

// Categorize determines the category of an error
func (ec *ErrorCategorizerImpl) Categorize(err error) *domain.CategorizedError {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return ec.categorized(domain.ErrorCategoryTimeout, err)
	}
	if category, ok := codeCategories[domain.ErrorCode(err)]; ok {
		return ec.categorized(category, err)
	}

	errMsg := strings.ToLower(err.Error())
	for _, cp := range ec.patterns {
		if containsAnyPattern(errMsg, cp.patterns) {
			return ec.categorized(cp.category, err)
		}
	}

	return &domain.CategorizedError{
		Category: domain.ErrorCategoryUnknown,
		Message:  err.Error(),
		Original: err,
	}
}

func (ec *ErrorCategorizerImpl) categorized(category domain.ErrorCategory, err error) *domain.CategorizedError {
	return &domain.CategorizedError{
		Category: category,
		Message:  ec.getCategoryMessage(category),
		Original: err,
	}
}

// GetRecoverySuggestions returns recovery suggestions for an error category
func (ec *ErrorCategorizerImpl) GetRecoverySuggestions(category domain.ErrorCategory) []string {
	suggestions := map[domain.ErrorCategory][]string{
		domain.ErrorCategoryInput: {
			"Check that the paths exist and are .jar files or directories containing them",
			"Try: jarscn analyze --recursive <dir> to search subdirectories",
			"Ensure you have read permissions for the target files",
		},
		domain.ErrorCategoryConfig: {
			"Verify configuration file format and values",
			"Try: jarscn init to generate a valid config file",
			"Check for syntax errors in .jarscn.toml",
		},
		domain.ErrorCategoryTimeout: {
			"Analyze fewer archives at a time",
			"Narrow the entries decoded with --include or --exclude",
		},
		domain.ErrorCategoryOutput: {
			"Check write permissions and output format validity",
			"Ensure the output directory exists and is writable",
			"Try writing to a different location",
		},
		domain.ErrorCategoryProcessing: {
			"The archive may be truncated or not a zip file",
			"Run with --verbose to see which entries were skipped",
			"For graph export, check the Neo4j URI and credentials",
		},
		domain.ErrorCategoryUnknown: {
			"Run with --verbose for detailed error information",
			"Report the issue if it persists",
		},
	}

	if sug, ok := suggestions[category]; ok {
		return sug
	}
	return []string{"Check the error message for more details"}
}

// getCategoryMessage returns a user-friendly message for an error category
func (ec *ErrorCategorizerImpl) getCategoryMessage(category domain.ErrorCategory) string {
	messages := map[domain.ErrorCategory]string{
		domain.ErrorCategoryInput:      "Failed to process input files or directories",
		domain.ErrorCategoryConfig:     "Configuration file or settings error",
		domain.ErrorCategoryTimeout:    "Analysis cancelled or timed out",
		domain.ErrorCategoryOutput:     "Failed to generate or write output",
		domain.ErrorCategoryProcessing: "Error while reading or analyzing archives",
		domain.ErrorCategoryUnknown:    "An unexpected error occurred",
	}

	if msg, ok := messages[category]; ok {
		return msg
	}
	return "An error occurred"
}

// containsAnyPattern checks if a string contains any of the given patterns
func containsAnyPattern(str string, patterns []string) bool {
	for _, pattern := range patterns {
		if strings.Contains(str, pattern) {
			return true
		}
	}
	return false
}
