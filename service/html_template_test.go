package service

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHTMLTemplate_Header(t *testing.T) {
	tmpl := &HTMLTemplate{
		Title:       "JAR <Report>",
		Subtitle:    "2 archives",
		GeneratedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Version:     "1.0.0",
	}
	header := tmpl.GenerateHTMLHeader()

	assert.True(t, strings.HasPrefix(header, "<!DOCTYPE html>"))
	assert.Contains(t, header, "JAR &lt;Report&gt;")
	assert.Contains(t, header, "Generated: 2026-01-02 03:04:05 | Version: 1.0.0")
	assert.NotContains(t, header, "%!")
}

func TestGenerateTable_Escapes(t *testing.T) {
	table := GenerateTable([]string{"Class"}, [][]string{{"a/B<T>"}})
	assert.Contains(t, table, "<th>Class</th>")
	assert.Contains(t, table, "<td>a/B&lt;T&gt;</td>")
}

func TestGenerateStatusBadge(t *testing.T) {
	tests := []struct {
		severity string
		class    string
	}{
		{"success", "status-success"},
		{"warning", "status-warning"},
		{"danger", "status-danger"},
		{"other", "status-info"},
	}
	for _, tt := range tests {
		t.Run(tt.severity, func(t *testing.T) {
			assert.Contains(t, GenerateStatusBadge("x", tt.severity), tt.class)
		})
	}
}

func TestGenerateHTMLFooter(t *testing.T) {
	assert.Contains(t, GenerateHTMLFooter(), "jarscn")
	assert.Contains(t, GenerateHTMLFooter(), "</html>")
}
