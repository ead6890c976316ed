package main

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ludo-technologies/jarscn/app"
	"github.com/ludo-technologies/jarscn/domain"
	"github.com/ludo-technologies/jarscn/internal/logging"
	"github.com/ludo-technologies/jarscn/service"
)

// GraphCommand exports class hierarchies to Neo4j
type GraphCommand struct {
	uri       string
	username  string
	password  string
	database  string
	batchSize int
	clear     bool

	configFile      string
	recursive       bool
	includePatterns []string
	excludePatterns []string
	workers         int
}

// NewGraphCommand creates a new graph command
func NewGraphCommand() *GraphCommand {
	return &GraphCommand{
		uri:             domain.DefaultNeo4jURI,
		username:        domain.DefaultNeo4jUsername,
		database:        domain.DefaultNeo4jDatabase,
		batchSize:       domain.DefaultGraphBatchSize,
		recursive:       true,
		includePatterns: []string{domain.DefaultEntryIncludePattern},
	}
}

// CreateCobraCommand creates the cobra command for the Neo4j export
func (g *GraphCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph [jars...]",
		Short: "Export class hierarchies to Neo4j",
		Long: `Analyze JAR files and load their classes into Neo4j.

Every class becomes a :JvmClass node carrying its metrics, linked to its
:Jar node by IN_JAR. EXTENDS and IMPLEMENTS relationships connect types
declared in the same archive.

The password is read from --password, the [graph] config section, or the
JARSCN_NEO4J_PASSWORD environment variable, which takes precedence over
the config file. A .env file in the working directory is read first; it
never overrides variables already set.

Examples:
  jarscn graph app.jar
  jarscn graph --uri neo4j://db:7687 --username neo4j lib/
  jarscn graph --clear --batch-size 1000 app.jar`,
		Args: cobra.MinimumNArgs(1),
		RunE: g.runGraph,
	}

	cmd.Flags().StringVar(&g.uri, "uri", domain.DefaultNeo4jURI, "Neo4j connection URI")
	cmd.Flags().StringVar(&g.username, "username", domain.DefaultNeo4jUsername, "Neo4j username")
	cmd.Flags().StringVar(&g.password, "password", "", "Neo4j password")
	cmd.Flags().StringVar(&g.database, "database", domain.DefaultNeo4jDatabase, "Neo4j database")
	cmd.Flags().IntVar(&g.batchSize, "batch-size", domain.DefaultGraphBatchSize, "Rows per UNWIND statement")
	cmd.Flags().BoolVar(&g.clear, "clear", false, "Delete the classes of each archive before writing")

	cmd.Flags().StringVarP(&g.configFile, "config", "c", "", "Configuration file path")
	cmd.Flags().BoolVar(&g.recursive, "recursive", true, "Recursively search directories for jars")
	cmd.Flags().StringSliceVar(&g.includePatterns, "include", []string{domain.DefaultEntryIncludePattern}, "Archive entry patterns to analyze")
	cmd.Flags().StringSliceVar(&g.excludePatterns, "exclude", []string{}, "Archive entry patterns to skip")
	cmd.Flags().IntVar(&g.workers, "workers", domain.DefaultWorkers, "Concurrent entry decoders (0 = one per CPU)")

	return cmd
}

func (g *GraphCommand) runGraph(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()
	loader := newConfigLoader(cmd)

	base, err := loader.LoadGraphConfig(g.configFile, args[0])
	if err != nil {
		return domain.NewConfigError("failed to load configuration", err)
	}
	request := loader.MergeGraphConfig(base, g.override(cmd, args))

	logger := logging.Default()
	progress := service.NewProgressManager()
	progress.SetWriter(cmd.ErrOrStderr())
	defer progress.Close()

	useCase := app.NewGraphUseCase(
		service.NewJarService(progress, logger),
		service.NewFileReader(),
		func(ctx context.Context, req domain.GraphExportRequest) (domain.GraphExporter, error) {
			exporter, err := service.NewNeo4jGraphExporter(ctx, req, logger)
			if err != nil {
				return nil, err
			}
			return exporter, nil
		},
	)

	summary, response, err := useCase.Execute(cmd.Context(), *request)
	if response != nil {
		for _, msg := range response.Errors {
			fmt.Fprintf(cmd.ErrOrStderr(), "x %s\n", msg)
		}
	}
	if err != nil {
		return fmt.Errorf("graph export failed: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d archive(s) to %s: %d classes, %d EXTENDS, %d IMPLEMENTS\n",
		summary.Archives, request.URI, summary.Classes, summary.Extends, summary.Implements)
	return nil
}

func (g *GraphCommand) override(cmd *cobra.Command, args []string) *domain.GraphExportRequest {
	return &domain.GraphExportRequest{
		Jar: domain.JarRequest{
			Paths:           args,
			OutputWriter:    cmd.OutOrStdout(),
			ConfigPath:      g.configFile,
			Recursive:       domain.BoolPtr(g.recursive),
			IncludePatterns: g.includePatterns,
			ExcludePatterns: g.excludePatterns,
			Workers:         g.workers,
		},
		URI:       g.uri,
		Username:  g.username,
		Password:  g.password,
		Database:  g.database,
		BatchSize: g.batchSize,
		Clear:     g.clear,
	}
}

// NewGraphCmd creates and returns the graph cobra command
func NewGraphCmd() *cobra.Command {
	return NewGraphCommand().CreateCobraCommand()
}
