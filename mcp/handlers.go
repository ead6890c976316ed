package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ludo-technologies/jarscn/domain"
)

const defaultListTop = 20

// HandlerSet exposes MCP tool handlers with shared dependencies.
type HandlerSet struct {
	deps *Dependencies
}

// NewHandlerSet constructs a handler set.
func NewHandlerSet(deps *Dependencies) *HandlerSet {
	if deps == nil {
		deps = NewDependencies("", nil)
	}
	return &HandlerSet{deps: deps}
}

// HandleAnalyzeJar handles the analyze_jar tool
func (h *HandlerSet) HandleAnalyzeJar(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, path, errResult := parsePathArgs(request)
	if errResult != nil {
		return errResult, nil
	}

	req := h.newRequest(path)
	if r, ok := args["recursive"].(bool); ok {
		req.Recursive = domain.BoolPtr(r)
	}
	req.IncludePatterns = stringSlice(args["include"])
	req.ExcludePatterns = stringSlice(args["exclude"])

	outputMode := "summary"
	if om, ok := args["output_mode"].(string); ok && om != "" {
		outputMode = om
	}
	if outputMode == "full" {
		req.ShowDetails = true
	}

	response, errResult := h.analyze(ctx, req)
	if errResult != nil {
		return errResult, nil
	}

	var responseData interface{}
	switch outputMode {
	case "full":
		responseData = response
	default:
		responseData = formatArchiveSummary(response)
	}
	return jsonResult(responseData)
}

// HandleListClasses handles the list_classes tool
func (h *HandlerSet) HandleListClasses(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, path, errResult := parsePathArgs(request)
	if errResult != nil {
		return errResult, nil
	}

	req := h.newRequest(path)
	req.ShowDetails = true
	req.SortBy = domain.SortByComplexity
	req.Top = defaultListTop

	if s, ok := args["sort"].(string); ok && s != "" {
		req.SortBy = domain.SortCriteria(s)
		if !req.SortBy.IsValid() {
			return mcp.NewToolResultError(fmt.Sprintf("unsupported sort criteria: %s", s)), nil
		}
	}
	if top, ok := args["top"].(float64); ok {
		if top < 0 {
			return mcp.NewToolResultError("top cannot be negative"), nil
		}
		req.Top = int(top)
	}

	response, errResult := h.analyze(ctx, req)
	if errResult != nil {
		return errResult, nil
	}

	archives := make([]map[string]interface{}, 0, len(response.Archives))
	for _, report := range response.Archives {
		archives = append(archives, map[string]interface{}{
			"jar_file":      report.JarFileName,
			"total_classes": report.TotalClasses,
			"classes":       report.Classes,
		})
	}
	return jsonResult(map[string]interface{}{
		"sort_by":  req.SortBy,
		"archives": archives,
		"errors":   response.Errors,
	})
}

// newRequest builds a request whose zero values leave configuration in charge
func (h *HandlerSet) newRequest(path string) domain.JarRequest {
	return domain.JarRequest{
		Paths:        []string{path},
		OutputWriter: io.Discard,
		ConfigPath:   h.deps.ConfigPath(),
	}
}

func (h *HandlerSet) analyze(ctx context.Context, req domain.JarRequest) (*domain.JarResponse, *mcp.CallToolResult) {
	uc, err := h.deps.BuildJarUseCase()
	if err != nil {
		return nil, mcp.NewToolResultError(fmt.Sprintf("failed to create analyzer: %v", err))
	}

	response, err := uc.AnalyzeAndReturn(ctx, req)
	if err != nil {
		return nil, mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err))
	}
	return response, nil
}

func parsePathArgs(request mcp.CallToolRequest) (map[string]interface{}, string, *mcp.CallToolResult) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, "", mcp.NewToolResultError("invalid arguments format")
	}

	path, ok := args["path"].(string)
	if !ok || path == "" {
		return nil, "", mcp.NewToolResultError("path parameter is required and must be a string")
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, "", mcp.NewToolResultError(fmt.Sprintf("path does not exist: %s", path))
	}
	return args, path, nil
}

func stringSlice(raw interface{}) []string {
	items, ok := raw.([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}

func formatArchiveSummary(response *domain.JarResponse) map[string]interface{} {
	archives := make([]map[string]interface{}, 0, len(response.Archives))
	for _, report := range response.Archives {
		archives = append(archives, map[string]interface{}{
			"jar_file":         report.JarFileName,
			"total_classes":    report.TotalClasses,
			"total_interfaces": report.TotalInterfaces,
			"inheritance": map[string]interface{}{
				"max_depth":     report.Inheritance.MaxDepth,
				"average_depth": report.Inheritance.AverageDepth,
			},
			"abc": map[string]interface{}{
				"assignments": report.ABC.TotalAssignments,
				"branches":    report.ABC.TotalBranches,
				"conditions":  report.ABC.TotalConditions,
				"magnitude":   report.ABC.Magnitude,
			},
			"average_overridden_methods": report.AverageOverriddenMethods,
			"average_fields_per_class":   report.AverageFieldsPerClass,
			"skipped_entries":            len(report.SkippedEntries),
		})
	}

	return map[string]interface{}{
		"archives": archives,
		"summary": map[string]interface{}{
			"archives_analyzed": response.Summary.ArchivesAnalyzed,
			"total_classes":     response.Summary.TotalClasses,
			"total_interfaces":  response.Summary.TotalInterfaces,
			"max_depth":         response.Summary.MaxDepth,
			"skipped_entries":   response.Summary.SkippedEntries,
		},
		"warnings": response.Warnings,
		"errors":   response.Errors,
	}
}

func jsonResult(data interface{}) (*mcp.CallToolResult, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}
