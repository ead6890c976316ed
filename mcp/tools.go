package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

var sortOptions = []string{"name", "depth", "complexity", "overrides", "fields"}

// RegisterTools registers all jarscn MCP tools with the server
func RegisterTools(s *server.MCPServer, h *HandlerSet) {
	if h == nil {
		h = NewHandlerSet(nil)
	}

	// Tool 1: analyze_jar - archive-level metrics
	s.AddTool(mcp.NewTool("analyze_jar",
		mcp.WithDescription("Compute inheritance depth, overridden methods, fields per class and ABC metrics from the bytecode of JAR files"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to a .jar file or a directory containing jars")),
		mcp.WithBoolean("recursive",
			mcp.Description("Recursively search directories for jars (default: true)")),
		mcp.WithArray("include",
			mcp.WithStringItems(),
			mcp.Description("Glob patterns selecting archive entries (default: **/*.class)")),
		mcp.WithArray("exclude",
			mcp.WithStringItems(),
			mcp.Description("Glob patterns of archive entries to skip")),
		mcp.WithString("output_mode",
			mcp.Enum("summary", "full"),
			mcp.Description("summary returns archive metrics, full adds per-class metrics (default: summary)")),
	), h.HandleAnalyzeJar)

	// Tool 2: list_classes - per-class metrics
	s.AddTool(mcp.NewTool("list_classes",
		mcp.WithDescription("List per-class metrics of JAR files sorted by a criterion"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to a .jar file or a directory containing jars")),
		mcp.WithString("sort",
			mcp.Enum(sortOptions...),
			mcp.Description("Sort criterion (default: complexity)")),
		mcp.WithNumber("top",
			mcp.Description("Maximum classes per archive, 0 = all (default: 20)")),
	), h.HandleListClasses)
}
