package app

import (
	"context"
	"fmt"
	"io"

	"github.com/ludo-technologies/jarscn/domain"
	svc "github.com/ludo-technologies/jarscn/service"
)

// JarUseCase orchestrates the jar analysis workflow
type JarUseCase struct {
	service      domain.JarService
	fileReader   domain.JarFileReader
	formatter    domain.JarOutputFormatter
	configLoader domain.JarConfigurationLoader
	output       domain.ReportWriter
}

// NewJarUseCase creates a new jar analysis use case
func NewJarUseCase(
	service domain.JarService,
	fileReader domain.JarFileReader,
	formatter domain.JarOutputFormatter,
	configLoader domain.JarConfigurationLoader,
) *JarUseCase {
	return &JarUseCase{
		service:      service,
		fileReader:   fileReader,
		formatter:    formatter,
		configLoader: configLoader,
		output:       svc.NewFileOutputWriter(nil),
	}
}

// prepareAnalysis validates the request, applies configuration and expands
// directories into the jar files to analyze
func (uc *JarUseCase) prepareAnalysis(ctx context.Context, req domain.JarRequest) (domain.JarRequest, error) {
	if err := uc.validateRequest(req); err != nil {
		return req, domain.NewInvalidInputError("invalid request", err)
	}

	finalReq, err := uc.loadAndMergeConfig(req)
	if err != nil {
		return req, domain.NewConfigError("failed to load configuration", err)
	}

	if err := uc.validateFormats(finalReq); err != nil {
		return req, domain.NewInvalidInputError("invalid configuration values", err)
	}

	files, err := resolveJarFiles(uc.fileReader, finalReq.Paths, domain.BoolValue(finalReq.Recursive, true))
	if err != nil {
		return req, err
	}

	finalReq.Paths = files
	return finalReq, nil
}

// resolveJarFiles expands directories and checks every resulting path
func resolveJarFiles(reader domain.JarFileReader, paths []string, recursive bool) ([]string, error) {
	files, err := reader.CollectJarFiles(paths, recursive)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, domain.NewInvalidInputError("no jar files found in the specified paths", nil)
	}

	for _, file := range files {
		if err := validateJarFile(reader, file); err != nil {
			return nil, err
		}
	}
	return files, nil
}

// Execute performs the complete jar analysis workflow
func (uc *JarUseCase) Execute(ctx context.Context, req domain.JarRequest) error {
	response, finalReq, err := uc.analyze(ctx, req)
	if err != nil {
		return err
	}

	if finalReq.JSONOutputPath != "" {
		if err := uc.output.Write(nil, finalReq.JSONOutputPath, domain.OutputFormatJSON, true, func(w io.Writer) error {
			return uc.formatter.Write(response, domain.OutputFormatJSON, w)
		}); err != nil {
			return domain.NewOutputError("failed to write JSON report", err)
		}
	}

	// Delegate output handling to ReportWriter
	var out io.Writer
	if finalReq.OutputPath == "" {
		out = finalReq.OutputWriter
	}
	if err := uc.output.Write(out, finalReq.OutputPath, finalReq.OutputFormat, finalReq.NoOpen, func(w io.Writer) error {
		return uc.formatter.Write(response, finalReq.OutputFormat, w)
	}); err != nil {
		return domain.NewOutputError("failed to write output", err)
	}

	return nil
}

// AnalyzeAndReturn performs jar analysis and returns the response without formatting
func (uc *JarUseCase) AnalyzeAndReturn(ctx context.Context, req domain.JarRequest) (*domain.JarResponse, error) {
	response, _, err := uc.analyze(ctx, req)
	return response, err
}

func (uc *JarUseCase) analyze(ctx context.Context, req domain.JarRequest) (*domain.JarResponse, domain.JarRequest, error) {
	finalReq, err := uc.prepareAnalysis(ctx, req)
	if err != nil {
		return nil, req, err
	}

	response, err := uc.service.Analyze(ctx, finalReq)
	if err != nil {
		return nil, finalReq, domain.NewAnalysisError("jar analysis failed", err)
	}
	return response, finalReq, nil
}

// validateJarFile applies the input rules of the original tool: the path
// exists, is a regular file and has a .jar extension
func validateJarFile(reader domain.JarFileReader, path string) error {
	exists, err := reader.FileExists(path)
	if err != nil {
		return domain.NewFileNotFoundError(path, err)
	}
	if !exists {
		return domain.NewInvalidInputError(fmt.Sprintf("input path is not a file: %s", path), nil)
	}
	if !reader.IsValidJarFile(path) {
		return domain.NewInvalidInputError(fmt.Sprintf("input file must be a jar file: %s", path), nil)
	}
	return nil
}

// validatePaths validates input paths
func (uc *JarUseCase) validatePaths(req domain.JarRequest) error {
	if len(req.Paths) == 0 {
		return fmt.Errorf("no input paths specified")
	}
	return nil
}

// validateOutput validates output configuration
func (uc *JarUseCase) validateOutput(req domain.JarRequest) error {
	if req.OutputWriter == nil && req.OutputPath == "" {
		return fmt.Errorf("output writer or output path is required")
	}
	return nil
}

// validateLimits validates numeric options
func (uc *JarUseCase) validateLimits(req domain.JarRequest) error {
	if req.Top < 0 {
		return fmt.Errorf("top cannot be negative")
	}
	if req.Workers < 0 {
		return fmt.Errorf("workers cannot be negative")
	}
	return nil
}

// validateFormats validates output format and sort criteria. Empty values
// are filled from configuration later.
func (uc *JarUseCase) validateFormats(req domain.JarRequest) error {
	if req.OutputFormat != "" && !req.OutputFormat.IsValid() {
		return fmt.Errorf("unsupported output format: %s", req.OutputFormat)
	}
	if req.SortBy != "" && !req.SortBy.IsValid() {
		return fmt.Errorf("unsupported sort criteria: %s", req.SortBy)
	}
	return nil
}

// validateRequest validates the jar request
func (uc *JarUseCase) validateRequest(req domain.JarRequest) error {
	validators := []func(domain.JarRequest) error{
		uc.validatePaths,
		uc.validateOutput,
		uc.validateLimits,
		uc.validateFormats,
	}

	for _, validator := range validators {
		if err := validator(req); err != nil {
			return err
		}
	}

	return nil
}

// loadAndMergeConfig loads configuration and merges the request over it.
// Without an explicit file, .jarscn.toml is searched for from the first
// input path upwards.
func (uc *JarUseCase) loadAndMergeConfig(req domain.JarRequest) (domain.JarRequest, error) {
	if uc.configLoader == nil {
		return req, nil
	}

	var configReq *domain.JarRequest
	var err error

	if req.ConfigPath != "" {
		configReq, err = uc.configLoader.LoadConfig(req.ConfigPath)
		if err != nil {
			return req, fmt.Errorf("failed to load config from %s: %w", req.ConfigPath, err)
		}
	} else {
		configReq, err = uc.configLoader.LoadConfigFor(req.Paths[0])
		if err != nil {
			return req, err
		}
	}

	if configReq == nil {
		configReq = uc.configLoader.LoadDefaultConfig()
	}

	if configReq != nil {
		// Merge config with request (request takes precedence)
		merged := uc.configLoader.MergeConfig(configReq, &req)
		return *merged, nil
	}

	return req, nil
}

// JarUseCaseBuilder provides a builder pattern for creating JarUseCase
type JarUseCaseBuilder struct {
	service      domain.JarService
	fileReader   domain.JarFileReader
	formatter    domain.JarOutputFormatter
	configLoader domain.JarConfigurationLoader
	output       domain.ReportWriter
}

// NewJarUseCaseBuilder creates a new builder
func NewJarUseCaseBuilder() *JarUseCaseBuilder {
	return &JarUseCaseBuilder{}
}

// WithService sets the jar service
func (b *JarUseCaseBuilder) WithService(service domain.JarService) *JarUseCaseBuilder {
	b.service = service
	return b
}

// WithFileReader sets the file reader
func (b *JarUseCaseBuilder) WithFileReader(fileReader domain.JarFileReader) *JarUseCaseBuilder {
	b.fileReader = fileReader
	return b
}

// WithFormatter sets the output formatter
func (b *JarUseCaseBuilder) WithFormatter(formatter domain.JarOutputFormatter) *JarUseCaseBuilder {
	b.formatter = formatter
	return b
}

// WithConfigLoader sets the configuration loader
func (b *JarUseCaseBuilder) WithConfigLoader(configLoader domain.JarConfigurationLoader) *JarUseCaseBuilder {
	b.configLoader = configLoader
	return b
}

// WithOutputWriter sets the report writer
func (b *JarUseCaseBuilder) WithOutputWriter(output domain.ReportWriter) *JarUseCaseBuilder {
	b.output = output
	return b
}

// Build creates the JarUseCase with the configured dependencies. The
// configuration loader is optional; without one no config is read.
func (b *JarUseCaseBuilder) Build() (*JarUseCase, error) {
	if b.service == nil {
		return nil, fmt.Errorf("jar service is required")
	}
	if b.fileReader == nil {
		return nil, fmt.Errorf("file reader is required")
	}
	if b.formatter == nil {
		return nil, fmt.Errorf("output formatter is required")
	}

	uc := NewJarUseCase(
		b.service,
		b.fileReader,
		b.formatter,
		b.configLoader,
	)
	if b.output != nil {
		uc.output = b.output
	}
	return uc, nil
}

// BuildWithDefaults creates the JarUseCase, filling optional dependencies
// with defaults
func (b *JarUseCaseBuilder) BuildWithDefaults() (*JarUseCase, error) {
	if b.configLoader == nil {
		b.configLoader = &noOpJarConfigLoader{}
	}
	return b.Build()
}

// noOpJarConfigLoader is a no-op implementation of JarConfigurationLoader
type noOpJarConfigLoader struct{}

func (n *noOpJarConfigLoader) LoadConfig(path string) (*domain.JarRequest, error) {
	return nil, nil
}

func (n *noOpJarConfigLoader) LoadConfigFor(target string) (*domain.JarRequest, error) {
	return nil, nil
}

func (n *noOpJarConfigLoader) LoadDefaultConfig() *domain.JarRequest {
	return nil
}

func (n *noOpJarConfigLoader) MergeConfig(base *domain.JarRequest, override *domain.JarRequest) *domain.JarRequest {
	return override
}
