package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	charmlog "github.com/charmbracelet/log"

	"github.com/ludo-technologies/jarscn/domain"
	"github.com/ludo-technologies/jarscn/internal/analyzer"
	"github.com/ludo-technologies/jarscn/internal/archive"
	"github.com/ludo-technologies/jarscn/internal/logging"
	"github.com/ludo-technologies/jarscn/internal/version"
)

// JarServiceImpl implements the JarService interface
type JarServiceImpl struct {
	progress domain.ProgressManager
	logger   *charmlog.Logger
}

// NewJarService creates a new jar analysis service. A nil progress manager
// disables progress and a nil logger uses the process-wide logger.
func NewJarService(progress domain.ProgressManager, logger *charmlog.Logger) *JarServiceImpl {
	if progress == nil {
		progress = NewNoOpProgressManager()
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &JarServiceImpl{progress: progress, logger: logger}
}

// Analyze analyzes every archive in req.Paths in order
func (s *JarServiceImpl) Analyze(ctx context.Context, req domain.JarRequest) (*domain.JarResponse, error) {
	response := &domain.JarResponse{
		Archives:    []domain.ArchiveReport{},
		GeneratedAt: time.Now().Format(time.RFC3339),
		Version:     version.Version,
	}

	for _, path := range req.Paths {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("jar analysis cancelled: %w", ctx.Err())
		default:
		}

		report, err := s.AnalyzeArchive(ctx, path, req)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil, fmt.Errorf("jar analysis cancelled: %w", err)
			}
			response.Errors = append(response.Errors, fmt.Sprintf("[%s] %v", path, err))
			continue
		}

		for _, skipped := range report.SkippedEntries {
			response.Warnings = append(response.Warnings,
				fmt.Sprintf("[%s] skipped %s: %s", report.JarFileName, skipped.Entry, skipped.Reason))
		}
		if report.EntriesScanned == 0 {
			response.Warnings = append(response.Warnings,
				fmt.Sprintf("[%s] no class entries matched", report.JarFileName))
		}

		response.Archives = append(response.Archives, *report)
	}

	response.Summary = s.generateSummary(response.Archives)
	return response, nil
}

// AnalyzeArchive reads one jar, builds its class graph and aggregates metrics
func (s *JarServiceImpl) AnalyzeArchive(ctx context.Context, path string, req domain.JarRequest) (*domain.ArchiveReport, error) {
	reader := archive.NewReader(s.buildReaderOptions(req), s.logger)

	s.progress.Initialize(0)
	reader.OnProgress(func(processed, total int) {
		s.progress.Update(processed, total)
	})

	started := time.Now()
	read, err := reader.ReadArchive(ctx, path)
	if err != nil {
		s.progress.Complete(false)
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, domain.NewArchiveError(path, err)
	}
	s.progress.Complete(true)

	result := analyzer.ComputeArchiveResult(filepath.Base(path), read.Records)
	s.logger.Info("analyzed archive",
		"jar", result.ArchiveName,
		"classes", result.TotalClasses,
		"interfaces", result.TotalInterfaces,
		"skipped", len(read.Skipped),
		"elapsed", time.Since(started).Round(time.Millisecond))

	report := s.buildReport(path, result, read)
	if req.ShowDetails {
		report.Classes = s.selectClasses(report.AllClasses, req.SortBy, req.Top)
	}
	return report, nil
}

func (s *JarServiceImpl) buildReaderOptions(req domain.JarRequest) *archive.Options {
	options := archive.DefaultOptions()
	if len(req.IncludePatterns) > 0 {
		options.IncludePatterns = req.IncludePatterns
	}
	if len(req.ExcludePatterns) > 0 {
		options.ExcludePatterns = req.ExcludePatterns
	}
	if req.Workers > 0 {
		options.Workers = req.Workers
	}
	return options
}

// buildReport converts analyzer results to the domain report
func (s *JarServiceImpl) buildReport(path string, result *analyzer.ArchiveResult, read *archive.Result) *domain.ArchiveReport {
	report := &domain.ArchiveReport{
		JarFileName:     result.ArchiveName,
		Path:            path,
		TotalClasses:    result.TotalClasses,
		TotalInterfaces: result.TotalInterfaces,
		Inheritance: domain.InheritanceMetrics{
			MaxDepth:     result.Inheritance.MaxDepth,
			AverageDepth: result.Inheritance.AverageDepth,
		},
		ABC: domain.ABCMetrics{
			TotalAssignments: result.ABC.Total.Assignments,
			TotalBranches:    result.ABC.Total.Branches,
			TotalConditions:  result.ABC.Total.Conditions,
			Magnitude:        result.ABC.Magnitude,
		},
		AverageOverriddenMethods: result.AverageOverriddenMethods,
		AverageFieldsPerClass:    result.AverageFieldsPerClass,
		EntriesScanned:           read.Entries,
		AllClasses:               make([]domain.ClassReport, 0, len(result.Classes)),
	}

	for _, skipped := range read.Skipped {
		report.SkippedEntries = append(report.SkippedEntries, domain.SkippedEntry{
			Entry:  skipped.Entry,
			Reason: skipped.Err.Error(),
		})
	}

	for _, c := range result.Classes {
		report.AllClasses = append(report.AllClasses, domain.ClassReport{
			Name:              c.Name,
			SuperName:         c.SuperName,
			Interfaces:        c.ImplementedTypes,
			IsInterface:       c.IsInterface,
			InheritanceDepth:  c.InheritanceDepth,
			OverriddenMethods: c.OverriddenMethods,
			FieldCount:        c.FieldCount,
			MethodCount:       c.MethodCount,
			ABC: domain.ClassABC{
				Assignments: c.ABC.Assignments,
				Branches:    c.ABC.Branches,
				Conditions:  c.ABC.Conditions,
				Magnitude:   c.ABCMagnitude,
			},
		})
	}

	return report
}

// selectClasses sorts a copy of classes and keeps at most top of them
func (s *JarServiceImpl) selectClasses(classes []domain.ClassReport, sortBy domain.SortCriteria, top int) []domain.ClassReport {
	sorted := make([]domain.ClassReport, len(classes))
	copy(sorted, classes)

	// Ties always fall back to name so the order is total
	var key func(c domain.ClassReport) float64
	switch sortBy {
	case domain.SortByDepth:
		key = func(c domain.ClassReport) float64 { return float64(c.InheritanceDepth) }
	case domain.SortByComplexity:
		key = func(c domain.ClassReport) float64 { return c.ABC.Magnitude }
	case domain.SortByOverrides:
		key = func(c domain.ClassReport) float64 { return float64(c.OverriddenMethods) }
	case domain.SortByFields:
		key = func(c domain.ClassReport) float64 { return float64(c.FieldCount) }
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		if key != nil {
			ki, kj := key(sorted[i]), key(sorted[j])
			if ki != kj {
				return ki > kj
			}
		}
		return sorted[i].Name < sorted[j].Name
	})

	if top > 0 && len(sorted) > top {
		sorted = sorted[:top]
	}
	return sorted
}

// generateSummary aggregates across archives
func (s *JarServiceImpl) generateSummary(archives []domain.ArchiveReport) domain.JarSummary {
	summary := domain.JarSummary{ArchivesAnalyzed: len(archives)}
	for _, a := range archives {
		summary.TotalClasses += a.TotalClasses
		summary.TotalInterfaces += a.TotalInterfaces
		summary.SkippedEntries += len(a.SkippedEntries)
		if a.Inheritance.MaxDepth > summary.MaxDepth {
			summary.MaxDepth = a.Inheritance.MaxDepth
		}
	}
	return summary
}
