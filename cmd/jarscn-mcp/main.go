package main

import (
	"os"

	mcpserver "github.com/mark3labs/mcp-go/server"
	flag "github.com/spf13/pflag"

	"github.com/ludo-technologies/jarscn/internal/logging"
	"github.com/ludo-technologies/jarscn/internal/version"
	"github.com/ludo-technologies/jarscn/mcp"
)

const serverName = "jarscn"

func main() {
	configPath := flag.StringP("config", "c", "", "Configuration file path (default: discover .jarscn.toml)")
	verbose := flag.Bool("verbose", false, "Enable debug logging")
	flag.Parse()

	// MCP uses stdout for JSON-RPC; the logger writes to stderr
	logger := logging.Configure(*verbose)

	server := mcpserver.NewMCPServer(
		serverName,
		version.Short(),
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithLogging(),
	)

	mcp.RegisterTools(server, mcp.NewHandlerSet(mcp.NewDependencies(*configPath, logger)))

	logger.Info("starting MCP server", "name", serverName, "version", version.Short())
	logger.Info("registered tools", "tools", []string{"analyze_jar", "list_classes"})

	// Blocks until the client disconnects
	if err := mcpserver.ServeStdio(server); err != nil {
		logger.Error("server error", "err", err)
		os.Exit(1)
	}
}
