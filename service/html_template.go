package service

import (
	"fmt"
	"html"
	"strings"
	"time"
)

// HTMLTemplate holds the page chrome shared by HTML reports
type HTMLTemplate struct {
	Title       string
	Subtitle    string
	GeneratedAt time.Time
	Version     string
}

// GenerateHTMLHeader renders the document head, stylesheet and page banner
func (t *HTMLTemplate) GenerateHTMLHeader() string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>%s</title>
    <style>
        * { margin: 0; padding: 0; box-sizing: border-box; }
        body {
            font-family: 'JetBrains Mono', Menlo, Consolas, monospace;
            font-size: 14px;
            line-height: 1.5;
            color: #1f2933;
            background: #eef1f4;
        }
        .container { max-width: 1280px; margin: 0 auto; padding: 24px; }
        .header {
            background: #1f2933;
            color: #f5f7fa;
            border-radius: 6px;
            padding: 24px 28px;
            margin-bottom: 16px;
        }
        .header h1 { font-size: 22px; letter-spacing: 0.04em; margin-bottom: 6px; }
        .header p { color: #9aa5b1; font-size: 12px; }
        .content {
            background: #ffffff;
            border: 1px solid #d9e2ec;
            border-radius: 6px;
            padding: 24px 28px;
        }
        .section-header {
            font-size: 17px;
            color: #243b53;
            margin: 28px 0 12px;
            padding-bottom: 6px;
            border-bottom: 1px solid #d9e2ec;
        }
        .section-header:first-child { margin-top: 0; }
        .metric-grid {
            display: grid;
            grid-template-columns: repeat(auto-fill, minmax(170px, 1fr));
            gap: 12px;
            margin: 12px 0 20px;
        }
        .metric-card {
            padding: 14px 16px;
            border: 1px solid #d9e2ec;
            border-top: 3px solid #d97706;
            border-radius: 4px;
        }
        .metric-value { font-size: 24px; font-weight: 700; color: #b45309; }
        .metric-label { font-size: 11px; text-transform: uppercase; color: #627d98; }
        .table { width: 100%%; border-collapse: collapse; margin: 8px 0 20px; font-size: 12px; }
        .table th {
            text-align: left;
            padding: 8px 10px;
            background: #f0f4f8;
            color: #334e68;
            border-bottom: 2px solid #bcccdc;
        }
        .table td { padding: 6px 10px; border-bottom: 1px solid #f0f4f8; white-space: nowrap; }
        .table tbody tr:nth-child(even) { background: #fafbfc; }
        .status-badge {
            display: inline-block;
            padding: 2px 8px;
            border-radius: 3px;
            font-size: 11px;
            font-weight: 600;
        }
        .status-success { background: #e3f9e5; color: #1f7a33; }
        .status-warning { background: #fff3c4; color: #8d5b00; }
        .status-danger { background: #ffe3e3; color: #a61b1b; }
        .status-info { background: #e0f2fe; color: #075985; }
        .footer { margin-top: 20px; text-align: center; color: #829ab1; font-size: 11px; }
        @media (max-width: 768px) {
            .container { padding: 8px; }
            .table td { white-space: normal; }
        }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>%s</h1>
            <p>%s</p>
            <p>Generated: %s | Version: %s</p>
        </div>`,
		html.EscapeString(t.Title),
		html.EscapeString(t.Title),
		html.EscapeString(t.Subtitle),
		t.GeneratedAt.Format("2006-01-02 15:04:05"),
		html.EscapeString(t.Version))
}

// GenerateSinglePageContent wraps content in the report card
func GenerateSinglePageContent(content string) string {
	return fmt.Sprintf(`
        <div class="content">
            %s
        </div>`, content)
}

// GenerateHTMLFooter generates the standard HTML footer
func GenerateHTMLFooter() string {
	return `
        <div class="footer">
            Generated by jarscn - JAR Bytecode Metrics Analyzer
        </div>
    </div>
    </body>
</html>`
}

// GenerateMetricCard generates a metric card HTML
func GenerateMetricCard(value, label string) string {
	return fmt.Sprintf(`
        <div class="metric-card">
            <div class="metric-value">%s</div>
            <div class="metric-label">%s</div>
        </div>`, html.EscapeString(value), html.EscapeString(label))
}

// GenerateSectionHeader generates a section header
func GenerateSectionHeader(title string) string {
	return fmt.Sprintf(`
        <h2 class="section-header">%s</h2>`, html.EscapeString(title))
}

// GenerateStatusBadge generates a status badge based on severity
func GenerateStatusBadge(text, severity string) string {
	class := "status-info"
	switch strings.ToLower(severity) {
	case "success", "good", "low":
		class = "status-success"
	case "warning", "medium":
		class = "status-warning"
	case "danger", "high", "critical":
		class = "status-danger"
	}
	return fmt.Sprintf(`<span class="status-badge %s">%s</span>`, class, html.EscapeString(text))
}

// GenerateTable renders a table with escaped header and cell text
func GenerateTable(headers []string, rows [][]string) string {
	var b strings.Builder
	b.WriteString(`
        <table class="table">
            <thead><tr>`)
	for _, h := range headers {
		b.WriteString("<th>" + html.EscapeString(h) + "</th>")
	}
	b.WriteString(`</tr></thead>
            <tbody>`)
	for _, row := range rows {
		b.WriteString("\n                <tr>")
		for _, cell := range row {
			b.WriteString("<td>" + html.EscapeString(cell) + "</td>")
		}
		b.WriteString("</tr>")
	}
	b.WriteString(`
            </tbody>
        </table>`)
	return b.String()
}
