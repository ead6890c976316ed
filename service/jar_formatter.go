package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/ludo-technologies/jarscn/domain"
)

// JarFormatterImpl implements the JarOutputFormatter interface
type JarFormatterImpl struct{}

// NewJarFormatter creates a new jar report formatter
func NewJarFormatter() *JarFormatterImpl {
	return &JarFormatterImpl{}
}

// Format formats the jar analysis response according to the specified format
func (f *JarFormatterImpl) Format(response *domain.JarResponse, format domain.OutputFormat) (string, error) {
	switch format {
	case domain.OutputFormatText:
		return f.formatText(response), nil
	case domain.OutputFormatJSON:
		return EncodeJSON(response)
	case domain.OutputFormatYAML:
		return EncodeYAML(response)
	case domain.OutputFormatCSV:
		return f.formatCSV(response)
	case domain.OutputFormatHTML:
		return f.formatHTML(response), nil
	default:
		return "", domain.NewUnsupportedFormatError(string(format))
	}
}

// Write writes the formatted output to the writer
func (f *JarFormatterImpl) Write(response *domain.JarResponse, format domain.OutputFormat, writer io.Writer) error {
	switch format {
	case domain.OutputFormatJSON:
		return WriteJSON(writer, response)
	case domain.OutputFormatYAML:
		return WriteYAML(writer, response)
	}

	formatted, err := f.Format(response, format)
	if err != nil {
		return err
	}
	_, err = io.WriteString(writer, formatted)
	return err
}

// formatText renders one boxed report per archive
func (f *JarFormatterImpl) formatText(response *domain.JarResponse) string {
	var builder strings.Builder
	utils := NewFormatUtils()

	for _, report := range response.Archives {
		f.writeArchiveText(&builder, report, utils)
	}

	if len(response.Archives) > 1 {
		builder.WriteString(utils.FormatSectionHeader("SUMMARY"))
		builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Archives analyzed", response.Summary.ArchivesAnalyzed))
		builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Total classes", response.Summary.TotalClasses))
		builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Total interfaces", response.Summary.TotalInterfaces))
		builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Maximum inheritance depth", response.Summary.MaxDepth))
		builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Skipped entries", response.Summary.SkippedEntries))
		builder.WriteString(utils.FormatSectionSeparator())
	}

	builder.WriteString(utils.FormatWarningsSection(response.Warnings))
	builder.WriteString(utils.FormatErrorsSection(response.Errors))

	return builder.String()
}

func (f *JarFormatterImpl) writeArchiveText(builder *strings.Builder, report domain.ArchiveReport, utils *FormatUtils) {
	builder.WriteString("\n")
	builder.WriteString(utils.FormatBoxHeader("JAR BYTECODE ANALYSIS REPORT"))
	builder.WriteString("\n")
	builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "File", report.JarFileName))
	builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Total classes", report.TotalClasses))
	builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Total interfaces", report.TotalInterfaces))
	builder.WriteString("\n")

	builder.WriteString(utils.FormatBoxSection("Inheritance Metrics"))
	builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Maximum inheritance depth", report.Inheritance.MaxDepth))
	builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Average inheritance depth", utils.FormatFloat(report.Inheritance.AverageDepth)))
	builder.WriteString("\n")

	builder.WriteString(utils.FormatBoxSection("ABC Metrics"))
	builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Assignments (A)", report.ABC.TotalAssignments))
	builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Branches (B)", report.ABC.TotalBranches))
	builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Conditions/Calls (C)", report.ABC.TotalConditions))
	builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "ABC Magnitude", utils.FormatFloat(report.ABC.Magnitude)))
	builder.WriteString("\n")

	builder.WriteString(utils.FormatBoxSection("Class Structure Metrics"))
	builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Average overridden methods per class", utils.FormatFloat(report.AverageOverriddenMethods)))
	builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Average fields per class", utils.FormatFloat(report.AverageFieldsPerClass)))
	builder.WriteString("\n")

	if len(report.Classes) > 0 {
		builder.WriteString(utils.FormatBoxSection("Class Details"))
		builder.WriteString(strings.Repeat(" ", SectionPadding))
		builder.WriteString(utils.FormatTableHeader(
			fmt.Sprintf("%-40s", "Class"), "Depth", "Overrides", "Fields", "Methods", "    A", "    B", "    C", "  |ABC|"))
		for _, class := range report.Classes {
			name := class.Name
			if class.IsInterface {
				name += " (interface)"
			}
			builder.WriteString(fmt.Sprintf("%s%-40s  %5d  %9d  %6d  %7d  %5d  %5d  %5d  %7.2f\n",
				strings.Repeat(" ", SectionPadding), name,
				class.InheritanceDepth, class.OverriddenMethods, class.FieldCount, class.MethodCount,
				class.ABC.Assignments, class.ABC.Branches, class.ABC.Conditions, class.ABC.Magnitude))
		}
		builder.WriteString("\n")
	}

	builder.WriteString(utils.FormatBoxFooter())
	builder.WriteString("\n")
}

// csvHeader is shared by archive rows and class rows; the record column
// tells them apart and cells that do not apply are empty
var csvHeader = []string{
	"record", "jar_file", "class", "is_interface",
	"inheritance_depth", "average_depth",
	"overridden_methods", "fields", "methods",
	"assignments", "branches", "conditions", "abc_magnitude",
	"total_classes", "total_interfaces",
}

// formatCSV writes one row per archive followed by its detailed classes
func (f *JarFormatterImpl) formatCSV(response *domain.JarResponse) (string, error) {
	var builder strings.Builder
	w := csv.NewWriter(&builder)

	if err := w.Write(csvHeader); err != nil {
		return "", domain.NewOutputError("failed to write CSV header", err)
	}

	for _, report := range response.Archives {
		row := []string{
			"archive", report.JarFileName, "", "",
			strconv.Itoa(report.Inheritance.MaxDepth), formatCSVFloat(report.Inheritance.AverageDepth),
			formatCSVFloat(report.AverageOverriddenMethods), formatCSVFloat(report.AverageFieldsPerClass), "",
			strconv.Itoa(report.ABC.TotalAssignments), strconv.Itoa(report.ABC.TotalBranches),
			strconv.Itoa(report.ABC.TotalConditions), formatCSVFloat(report.ABC.Magnitude),
			strconv.Itoa(report.TotalClasses), strconv.Itoa(report.TotalInterfaces),
		}
		if err := w.Write(row); err != nil {
			return "", domain.NewOutputError("failed to write CSV row", err)
		}

		for _, class := range report.Classes {
			row := []string{
				"class", report.JarFileName, class.Name, strconv.FormatBool(class.IsInterface),
				strconv.Itoa(class.InheritanceDepth), "",
				strconv.Itoa(class.OverriddenMethods), strconv.Itoa(class.FieldCount), strconv.Itoa(class.MethodCount),
				strconv.Itoa(class.ABC.Assignments), strconv.Itoa(class.ABC.Branches),
				strconv.Itoa(class.ABC.Conditions), formatCSVFloat(class.ABC.Magnitude),
				"", "",
			}
			if err := w.Write(row); err != nil {
				return "", domain.NewOutputError("failed to write CSV row", err)
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", domain.NewOutputError("failed to flush CSV", err)
	}
	return builder.String(), nil
}

func formatCSVFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}

// formatHTML renders a single page report
func (f *JarFormatterImpl) formatHTML(response *domain.JarResponse) string {
	generatedAt, err := time.Parse(time.RFC3339, response.GeneratedAt)
	if err != nil {
		generatedAt = time.Now()
	}

	tmpl := &HTMLTemplate{
		Title:       "JAR Bytecode Analysis Report",
		Subtitle:    fmt.Sprintf("%d archive(s), %d classes, %d interfaces", response.Summary.ArchivesAnalyzed, response.Summary.TotalClasses, response.Summary.TotalInterfaces),
		GeneratedAt: generatedAt,
		Version:     response.Version,
	}

	var content strings.Builder
	for _, report := range response.Archives {
		content.WriteString(GenerateSectionHeader(report.JarFileName))
		content.WriteString(`
        <div class="metric-grid">`)
		content.WriteString(GenerateMetricCard(strconv.Itoa(report.TotalClasses), "Classes"))
		content.WriteString(GenerateMetricCard(strconv.Itoa(report.TotalInterfaces), "Interfaces"))
		content.WriteString(GenerateMetricCard(strconv.Itoa(report.Inheritance.MaxDepth), "Max Inheritance Depth"))
		content.WriteString(GenerateMetricCard(fmt.Sprintf("%.2f", report.Inheritance.AverageDepth), "Average Inheritance Depth"))
		content.WriteString(GenerateMetricCard(fmt.Sprintf("%.2f", report.ABC.Magnitude), "ABC Magnitude"))
		content.WriteString(GenerateMetricCard(fmt.Sprintf("%.2f", report.AverageOverriddenMethods), "Avg Overridden Methods"))
		content.WriteString(GenerateMetricCard(fmt.Sprintf("%.2f", report.AverageFieldsPerClass), "Avg Fields per Class"))
		content.WriteString(`
        </div>`)

		content.WriteString(GenerateTable(
			[]string{"Assignments (A)", "Branches (B)", "Conditions/Calls (C)"},
			[][]string{{
				strconv.Itoa(report.ABC.TotalAssignments),
				strconv.Itoa(report.ABC.TotalBranches),
				strconv.Itoa(report.ABC.TotalConditions),
			}}))

		if len(report.Classes) > 0 {
			rows := make([][]string, 0, len(report.Classes))
			for _, class := range report.Classes {
				kind := "class"
				if class.IsInterface {
					kind = "interface"
				}
				rows = append(rows, []string{
					class.Name, kind,
					strconv.Itoa(class.InheritanceDepth), strconv.Itoa(class.OverriddenMethods),
					strconv.Itoa(class.FieldCount), strconv.Itoa(class.MethodCount),
					fmt.Sprintf("<%d,%d,%d>", class.ABC.Assignments, class.ABC.Branches, class.ABC.Conditions),
					fmt.Sprintf("%.2f", class.ABC.Magnitude),
				})
			}
			content.WriteString(GenerateTable(
				[]string{"Class", "Kind", "Depth", "Overrides", "Fields", "Methods", "ABC", "|ABC|"}, rows))
		}

		if len(report.SkippedEntries) > 0 {
			content.WriteString(" " + GenerateStatusBadge(fmt.Sprintf("%d entries skipped", len(report.SkippedEntries)), "warning"))
		}
	}

	if len(response.Warnings) > 0 {
		content.WriteString(GenerateSectionHeader("Warnings"))
		content.WriteString(GenerateTable([]string{"Warning"}, singleColumn(response.Warnings)))
	}
	if len(response.Errors) > 0 {
		content.WriteString(GenerateSectionHeader("Errors"))
		content.WriteString(GenerateTable([]string{"Error"}, singleColumn(response.Errors)))
	}

	return tmpl.GenerateHTMLHeader() + GenerateSinglePageContent(content.String()) + GenerateHTMLFooter()
}

func singleColumn(items []string) [][]string {
	rows := make([][]string, len(items))
	for i, item := range items {
		rows[i] = []string{item}
	}
	return rows
}
