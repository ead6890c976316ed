package service

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ludo-technologies/jarscn/domain"
)

// EncodeJSON returns an indented JSON string for the given value.
func EncodeJSON(v interface{}) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", domain.NewOutputError("failed to marshal JSON", err)
	}
	return string(data), nil
}

// WriteJSON writes indented JSON for the given value to the writer.
func WriteJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return domain.NewOutputError("failed to encode JSON", err)
	}
	return nil
}

// EncodeYAML returns a YAML string for the given value.
func EncodeYAML(v interface{}) (string, error) {
	data, err := yaml.Marshal(v)
	if err != nil {
		return "", domain.NewOutputError("failed to marshal YAML", err)
	}
	return string(data), nil
}

// WriteYAML writes YAML for the given value to the writer.
func WriteYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return domain.NewOutputError("failed to encode YAML", err)
	}
	return nil
}

// Standard formatting constants
const (
	HeaderWidth    = 60
	SectionPadding = 2
	ItemPadding    = 4
)

// FormatUtils provides shared formatting utilities
type FormatUtils struct{}

// NewFormatUtils creates a new format utilities instance
func NewFormatUtils() *FormatUtils {
	return &FormatUtils{}
}

// FormatBoxHeader frames title between two double rules
func (f *FormatUtils) FormatBoxHeader(title string) string {
	rule := strings.Repeat("═", HeaderWidth)
	return rule + "\n" + strings.Repeat(" ", SectionPadding) + title + "\n" + rule + "\n"
}

// FormatBoxSection frames a section title between two single rules
func (f *FormatUtils) FormatBoxSection(title string) string {
	rule := strings.Repeat("─", HeaderWidth)
	return rule + "\n" + strings.Repeat(" ", SectionPadding) + strings.ToUpper(title) + "\n" + rule + "\n"
}

// FormatBoxFooter closes a boxed report
func (f *FormatUtils) FormatBoxFooter() string {
	return strings.Repeat("═", HeaderWidth) + "\n"
}

// FormatSectionHeader creates a standardized section header
func (f *FormatUtils) FormatSectionHeader(title string) string {
	var builder strings.Builder
	builder.WriteString(strings.ToUpper(title) + "\n")
	builder.WriteString(strings.Repeat("-", len(title)) + "\n")
	return builder.String()
}

// FormatSectionSeparator creates a section separator
func (f *FormatUtils) FormatSectionSeparator() string {
	return "\n"
}

// FormatLabelWithIndent creates a formatted label with specific indentation
func (f *FormatUtils) FormatLabelWithIndent(indent int, label string, value interface{}) string {
	return fmt.Sprintf("%s%s: %v\n", strings.Repeat(" ", indent), label, value)
}

// FormatFloat renders metric averages with two decimals
func (f *FormatUtils) FormatFloat(value float64) string {
	return fmt.Sprintf("%.2f", value)
}

// FormatTableHeader creates a table header with consistent formatting
func (f *FormatUtils) FormatTableHeader(columns ...string) string {
	header := strings.Join(columns, "  ")
	separator := strings.Repeat("-", len(header))
	return header + "\n" + separator + "\n"
}

// FormatListSection writes one indented line per item under title
func (f *FormatUtils) FormatListSection(title, marker string, items []string) string {
	if len(items) == 0 {
		return ""
	}

	var builder strings.Builder
	builder.WriteString(f.FormatSectionHeader(title))
	for _, item := range items {
		builder.WriteString(fmt.Sprintf("%s%s %s\n", strings.Repeat(" ", SectionPadding), marker, item))
	}
	builder.WriteString(f.FormatSectionSeparator())
	return builder.String()
}

// FormatWarningsSection creates a standardized warnings section
func (f *FormatUtils) FormatWarningsSection(warnings []string) string {
	return f.FormatListSection("WARNINGS", "!", warnings)
}

// FormatErrorsSection creates a standardized errors section
func (f *FormatUtils) FormatErrorsSection(errs []string) string {
	return f.FormatListSection("ERRORS", "x", errs)
}
