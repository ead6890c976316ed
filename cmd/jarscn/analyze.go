package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ludo-technologies/jarscn/app"
	"github.com/ludo-technologies/jarscn/domain"
	"github.com/ludo-technologies/jarscn/internal/logging"
	"github.com/ludo-technologies/jarscn/service"
)

// AnalyzeCommand represents the jar analysis command
type AnalyzeCommand struct {
	// Output format flags (only one should be true)
	html   bool
	json   bool
	csv    bool
	yaml   bool
	noOpen bool

	outputPath string
	configFile string

	// Class details
	details bool
	sortBy  string
	top     int

	// Entry selection and decoding
	recursive       bool
	includePatterns []string
	excludePatterns []string
	workers         int
}

// NewAnalyzeCommand creates a new analyze command
func NewAnalyzeCommand() *AnalyzeCommand {
	return &AnalyzeCommand{
		sortBy:          string(domain.DefaultSortBy),
		recursive:       true,
		includePatterns: []string{domain.DefaultEntryIncludePattern},
		excludePatterns: []string{},
	}
}

// CreateCobraCommand creates the cobra command for jar analysis
func (c *AnalyzeCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [jars...] [output.json]",
		Short: "Compute bytecode metrics for JAR files",
		Long: `Compute object-oriented metrics from the bytecode of JAR files.

For every archive jarscn reports:
• Total classes and interfaces
• Maximum and average inheritance depth
• ABC metrics: assignments, branches, conditions and magnitude
• Average overridden methods and fields per class

Entries that fail to decode are skipped and listed as warnings.

Examples:
  # Print the text report
  jarscn analyze app.jar

  # Print the report and also write JSON to a file
  jarscn analyze app.jar metrics.json

  # Every jar under lib/, with per-class details sorted by ABC magnitude
  jarscn analyze --details --sort complexity --top 20 lib/

  # Only classes of one package
  jarscn analyze --include 'com/example/**' app.jar

  # HTML report
  jarscn analyze --html app.jar

Sort options:
  name        - Sort alphabetically by class name (default)
  depth       - Sort by inheritance depth
  complexity  - Sort by ABC magnitude
  overrides   - Sort by overridden methods
  fields      - Sort by field count`,
		Args: cobra.MinimumNArgs(1),
		RunE: c.runAnalyze,
	}

	// Output format flags
	cmd.Flags().BoolVar(&c.html, "html", false, "Generate HTML report file")
	cmd.Flags().BoolVar(&c.json, "json", false, "Generate JSON report file")
	cmd.Flags().BoolVar(&c.csv, "csv", false, "Generate CSV report file")
	cmd.Flags().BoolVar(&c.yaml, "yaml", false, "Generate YAML report file")
	cmd.Flags().BoolVar(&c.noOpen, "no-open", false, "Don't auto-open HTML in browser")
	cmd.Flags().StringVarP(&c.outputPath, "output", "o", "", "Output file path")
	cmd.Flags().StringVarP(&c.configFile, "config", "c", "", "Configuration file path")

	// Class detail flags
	cmd.Flags().BoolVar(&c.details, "details", false, "Include per-class metrics")
	cmd.Flags().StringVar(&c.sortBy, "sort", string(domain.DefaultSortBy), "Sort criteria (name|depth|complexity|overrides|fields)")
	cmd.Flags().IntVar(&c.top, "top", domain.DefaultTop, "Maximum classes listed per archive (0 = all)")

	// Selection flags
	cmd.Flags().BoolVar(&c.recursive, "recursive", true, "Recursively search directories for jars")
	cmd.Flags().StringSliceVar(&c.includePatterns, "include", []string{domain.DefaultEntryIncludePattern}, "Archive entry patterns to analyze")
	cmd.Flags().StringSliceVar(&c.excludePatterns, "exclude", []string{}, "Archive entry patterns to skip")
	cmd.Flags().IntVar(&c.workers, "workers", domain.DefaultWorkers, "Concurrent entry decoders (0 = one per CPU)")

	return cmd
}

func (c *AnalyzeCommand) runAnalyze(cmd *cobra.Command, args []string) error {
	paths, jsonOutputPath := splitJSONOutputArg(args)

	request, err := c.buildRequest(cmd, paths, jsonOutputPath)
	if err != nil {
		return err
	}

	useCase, progress, err := c.createUseCase(cmd)
	if err != nil {
		return err
	}
	defer progress.Close()

	if err := useCase.Execute(cmd.Context(), request); err != nil {
		return fmt.Errorf("jar analysis failed: %w", err)
	}
	return nil
}

// buildRequest converts flags into a request. A format flag without -o
// writes to a timestamped file, placed in output.directory when configured.
func (c *AnalyzeCommand) buildRequest(cmd *cobra.Command, paths []string, jsonOutputPath string) (domain.JarRequest, error) {
	format, extension, err := service.NewOutputFormatResolver().Determine(c.html, c.json, c.csv, c.yaml)
	if err != nil {
		return domain.JarRequest{}, err
	}

	outputPath := c.outputPath
	if outputPath == "" && extension != "" {
		outputPath = generateTimestampedFileName("jarscn", extension)
	}

	return domain.JarRequest{
		Paths:           paths,
		OutputFormat:    format,
		OutputWriter:    cmd.OutOrStdout(),
		OutputPath:      outputPath,
		NoOpen:          c.noOpen || !isInteractiveEnvironment(),
		ShowDetails:     c.details,
		JSONOutputPath:  jsonOutputPath,
		SortBy:          domain.SortCriteria(c.sortBy),
		Top:             c.top,
		ConfigPath:      c.configFile,
		Recursive:       domain.BoolPtr(c.recursive),
		IncludePatterns: c.includePatterns,
		ExcludePatterns: c.excludePatterns,
		Workers:         c.workers,
	}, nil
}

func (c *AnalyzeCommand) createUseCase(cmd *cobra.Command) (*app.JarUseCase, domain.ProgressManager, error) {
	progress := service.NewProgressManager()
	progress.SetWriter(cmd.ErrOrStderr())

	useCase, err := app.NewJarUseCaseBuilder().
		WithService(service.NewJarService(progress, logging.Default())).
		WithFileReader(service.NewFileReader()).
		WithFormatter(service.NewJarFormatter()).
		WithConfigLoader(newConfigLoader(cmd)).
		WithOutputWriter(service.NewFileOutputWriter(cmd.ErrOrStderr())).
		Build()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create jar use case: %w", err)
	}
	return useCase, progress, nil
}

// NewAnalyzeCmd creates and returns the analyze cobra command
func NewAnalyzeCmd() *cobra.Command {
	return NewAnalyzeCommand().CreateCobraCommand()
}
