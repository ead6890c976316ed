package domain

import (
	"context"
)

// GraphExportRequest represents a request to push class hierarchies into Neo4j
type GraphExportRequest struct {
	// Analysis input; details are always collected for export
	Jar JarRequest

	// Connection
	URI      string
	Username string
	Password string
	Database string

	// BatchSize bounds the rows sent per UNWIND statement
	BatchSize int

	// Clear removes the nodes of each exported archive before writing
	Clear bool
}

// GraphExportSummary reports what was written
type GraphExportSummary struct {
	Archives   int `json:"archives" yaml:"archives"`
	Classes    int `json:"classes" yaml:"classes"`
	Extends    int `json:"extends" yaml:"extends"`
	Implements int `json:"implements" yaml:"implements"`
}

// GraphExporter writes analyzed archives to a graph store
type GraphExporter interface {
	// Export writes every archive of the response
	Export(ctx context.Context, response *JarResponse) (*GraphExportSummary, error)

	// Close releases the underlying connection
	Close(ctx context.Context) error
}

// DefaultGraphExportRequest returns a GraphExportRequest with default values
func DefaultGraphExportRequest() *GraphExportRequest {
	return &GraphExportRequest{
		Jar:       *DefaultJarRequest(),
		URI:       DefaultNeo4jURI,
		Username:  DefaultNeo4jUsername,
		Database:  DefaultNeo4jDatabase,
		BatchSize: DefaultGraphBatchSize,
	}
}
