package app

import (
	"context"
	"fmt"

	"github.com/ludo-technologies/jarscn/domain"
)

// ExporterFactory opens a graph exporter for the connection in req
type ExporterFactory func(ctx context.Context, req domain.GraphExportRequest) (domain.GraphExporter, error)

// GraphUseCase analyzes jars and loads their class hierarchies into a graph store
type GraphUseCase struct {
	service     domain.JarService
	fileReader  domain.JarFileReader
	newExporter ExporterFactory
}

// NewGraphUseCase creates a new graph export use case
func NewGraphUseCase(service domain.JarService, fileReader domain.JarFileReader, newExporter ExporterFactory) *GraphUseCase {
	return &GraphUseCase{
		service:     service,
		fileReader:  fileReader,
		newExporter: newExporter,
	}
}

// Execute analyzes the requested archives and exports them. Archives that
// fail to open are left out of the export and reported by the service.
func (uc *GraphUseCase) Execute(ctx context.Context, req domain.GraphExportRequest) (*domain.GraphExportSummary, *domain.JarResponse, error) {
	if err := uc.validate(req); err != nil {
		return nil, nil, domain.NewInvalidInputError("invalid graph export request", err)
	}

	files, err := resolveJarFiles(uc.fileReader, req.Jar.Paths, domain.BoolValue(req.Jar.Recursive, true))
	if err != nil {
		return nil, nil, err
	}

	jarReq := req.Jar
	jarReq.Paths = files

	response, err := uc.service.Analyze(ctx, jarReq)
	if err != nil {
		return nil, nil, domain.NewAnalysisError("jar analysis failed", err)
	}

	exporter, err := uc.newExporter(ctx, req)
	if err != nil {
		return nil, response, err
	}
	defer func() { _ = exporter.Close(ctx) }()

	summary, err := exporter.Export(ctx, response)
	if err != nil {
		return nil, response, err
	}
	return summary, response, nil
}

func (uc *GraphUseCase) validate(req domain.GraphExportRequest) error {
	if len(req.Jar.Paths) == 0 {
		return fmt.Errorf("no input paths specified")
	}
	if req.URI == "" {
		return fmt.Errorf("neo4j uri is required")
	}
	if req.BatchSize < 0 {
		return fmt.Errorf("batch size cannot be negative")
	}
	if req.Jar.Workers < 0 {
		return fmt.Errorf("workers cannot be negative")
	}
	return nil
}
