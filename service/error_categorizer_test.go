package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/jarscn/domain"
)

func TestNewErrorCategorizer(t *testing.T) {
	categorizer := NewErrorCategorizer()
	assert.NotNil(t, categorizer)
	assert.IsType(t, &ErrorCategorizerImpl{}, categorizer)
}

func TestCategorize(t *testing.T) {
	categorizer := NewErrorCategorizer()

	tests := []struct {
		name         string
		err          error
		wantCategory domain.ErrorCategory
	}{
		{"domain invalid input", domain.NewInvalidInputError("bad", nil), domain.ErrorCategoryInput},
		{"domain file not found", domain.NewFileNotFoundError("/x.jar", nil), domain.ErrorCategoryInput},
		{"domain config", domain.NewConfigError("bad toml", nil), domain.ErrorCategoryConfig},
		{"domain output", domain.NewOutputError("disk full", nil), domain.ErrorCategoryOutput},
		{"domain archive", domain.NewArchiveError("/x.jar", errors.New("zip: not a valid zip file")), domain.ErrorCategoryProcessing},
		{"domain export", domain.NewExportError("connect", nil), domain.ErrorCategoryProcessing},
		{"wrapped domain error", fmt.Errorf("outer: %w", domain.NewConfigError("x", nil)), domain.ErrorCategoryConfig},
		{"context canceled", fmt.Errorf("jar analysis cancelled: %w", context.Canceled), domain.ErrorCategoryTimeout},
		{"deadline", context.DeadlineExceeded, domain.ErrorCategoryTimeout},
		{"config message", errors.New("failed to parse config"), domain.ErrorCategoryConfig},
		{"input message", errors.New("no jar files found in the given paths"), domain.ErrorCategoryInput},
		{"output message", errors.New("cannot create report"), domain.ErrorCategoryOutput},
		{"processing message", errors.New("truncated constant pool"), domain.ErrorCategoryProcessing},
		{"unknown", errors.New("something odd"), domain.ErrorCategoryUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := categorizer.Categorize(tt.err)
			require.NotNil(t, got)
			assert.Equal(t, tt.wantCategory, got.Category)
			assert.Equal(t, tt.err, got.Original)
			assert.NotEmpty(t, got.Message)
			assert.ErrorIs(t, got, tt.err)
		})
	}
}

func TestCategorize_Nil(t *testing.T) {
	assert.Nil(t, NewErrorCategorizer().Categorize(nil))
}

func TestCategorize_UnknownKeepsOriginalMessage(t *testing.T) {
	got := NewErrorCategorizer().Categorize(errors.New("something odd"))
	assert.Equal(t, "something odd", got.Message)
}

func TestGetRecoverySuggestions(t *testing.T) {
	categorizer := NewErrorCategorizer()
	for _, category := range []domain.ErrorCategory{
		domain.ErrorCategoryInput,
		domain.ErrorCategoryConfig,
		domain.ErrorCategoryTimeout,
		domain.ErrorCategoryOutput,
		domain.ErrorCategoryProcessing,
		domain.ErrorCategoryUnknown,
	} {
		t.Run(string(category), func(t *testing.T) {
			assert.NotEmpty(t, categorizer.GetRecoverySuggestions(category))
		})
	}
	assert.Equal(t, []string{"Check the error message for more details"},
		categorizer.GetRecoverySuggestions(domain.ErrorCategory("other")))
}
