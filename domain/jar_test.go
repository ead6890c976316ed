package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestOutputFormat_IsValid(t *testing.T) {
	tests := []struct {
		name   string
		format OutputFormat
		valid  bool
	}{
		{"Text format", OutputFormatText, true},
		{"JSON format", OutputFormatJSON, true},
		{"YAML format", OutputFormatYAML, true},
		{"CSV format", OutputFormatCSV, true},
		{"HTML format", OutputFormatHTML, true},
		{"DOT is not supported", OutputFormat("dot"), false},
		{"Empty format", OutputFormat(""), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.format.IsValid(); got != tt.valid {
				t.Errorf("Format %q validity = %v, want %v", tt.format, got, tt.valid)
			}
		})
	}
}

func TestSortCriteria_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		criteria SortCriteria
		valid    bool
	}{
		{"Sort by name", SortByName, true},
		{"Sort by depth", SortByDepth, true},
		{"Sort by complexity", SortByComplexity, true},
		{"Sort by overrides", SortByOverrides, true},
		{"Sort by fields", SortByFields, true},
		{"Invalid criteria", SortCriteria("risk"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.criteria.IsValid(); got != tt.valid {
				t.Errorf("SortCriteria %q validity = %v, want %v", tt.criteria, got, tt.valid)
			}
		})
	}
}

func TestDefaultJarRequest(t *testing.T) {
	req := DefaultJarRequest()

	if req.OutputFormat != OutputFormatText {
		t.Errorf("OutputFormat = %q, want text", req.OutputFormat)
	}
	if req.SortBy != SortByName {
		t.Errorf("SortBy = %q, want name", req.SortBy)
	}
	if !BoolValue(req.Recursive, false) {
		t.Error("Recursive should default to true")
	}
	if len(req.IncludePatterns) != 1 || req.IncludePatterns[0] != DefaultEntryIncludePattern {
		t.Errorf("IncludePatterns = %v, want [%s]", req.IncludePatterns, DefaultEntryIncludePattern)
	}
	if req.Top != 0 || req.Workers != 0 {
		t.Errorf("Top/Workers should default to 0, got %d/%d", req.Top, req.Workers)
	}
}

func TestDefaultGraphExportRequest(t *testing.T) {
	req := DefaultGraphExportRequest()

	if req.URI != DefaultNeo4jURI || req.Username != DefaultNeo4jUsername || req.Database != DefaultNeo4jDatabase {
		t.Errorf("unexpected connection defaults: %+v", req)
	}
	if req.BatchSize != DefaultGraphBatchSize {
		t.Errorf("BatchSize = %d, want %d", req.BatchSize, DefaultGraphBatchSize)
	}
	if req.Jar.SortBy != SortByName {
		t.Errorf("embedded jar request should carry defaults, got sort %q", req.Jar.SortBy)
	}
}

func TestBoolValue(t *testing.T) {
	if BoolValue(nil, true) != true {
		t.Error("nil should return the default")
	}
	if BoolValue(BoolPtr(false), true) != false {
		t.Error("explicit false should win over the default")
	}
}

func TestErrorCode(t *testing.T) {
	cause := errors.New("zip: not a valid zip file")
	err := fmt.Errorf("analyze: %w", NewArchiveError("app.jar", cause))

	if got := ErrorCode(err); got != ErrCodeArchiveError {
		t.Errorf("ErrorCode = %q, want %q", got, ErrCodeArchiveError)
	}
	if !errors.Is(err, cause) {
		t.Error("cause should be reachable through the chain")
	}
	if got := ErrorCode(cause); got != "" {
		t.Errorf("plain errors carry no code, got %q", got)
	}
}
